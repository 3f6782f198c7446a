package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	OpenAI   OpenAIConfig
	Analyzer AnalyzerConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type OpenAIConfig struct {
	Provider    string
	APIKey      string
	APIEndpoint string
	Model       string
	APIVersion  string
}

type AnalyzerConfig struct {
	LLMTimeout       time.Duration
	BatchConcurrency int
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8000")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("openai.provider", "openai")
	viper.SetDefault("openai.endpoint", "https://api.openai.com/v1")
	viper.SetDefault("openai.model", "gpt-4o-mini")
	viper.SetDefault("openai.api_version", "2023-05-15")
	viper.SetDefault("analyzer.llm_timeout", "30s")
	viper.SetDefault("analyzer.batch_concurrency", 8)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	cfg.Server.Host = viper.GetString("server.host")
	cfg.Server.Port = viper.GetString("server.port")
	cfg.Server.ReadTimeout = viper.GetDuration("server.read_timeout")
	cfg.Server.WriteTimeout = viper.GetDuration("server.write_timeout")
	cfg.OpenAI.Provider = viper.GetString("openai.provider")
	cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAI.APIEndpoint = viper.GetString("openai.endpoint")
	cfg.OpenAI.Model = viper.GetString("openai.model")
	cfg.OpenAI.APIVersion = viper.GetString("openai.api_version")
	cfg.Analyzer.LLMTimeout = viper.GetDuration("analyzer.llm_timeout")
	cfg.Analyzer.BatchConcurrency = viper.GetInt("analyzer.batch_concurrency")

	return &cfg, nil
}
