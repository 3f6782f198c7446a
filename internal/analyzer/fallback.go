package analyzer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/presenton/search-advisor/api/models"
)

// keywordTable holds the three keyword sets matched by the fallback path.
type keywordTable struct {
	temporal   map[string]struct{}
	news       map[string]struct{}
	statistics map[string]struct{}
}

// keywordTables maps a primary language subtag to its keyword sets. Loaded
// once at init and never mutated. Unknown languages use the English table.
var keywordTables = map[string]keywordTable{
	"en": makeTable(
		[]string{"current", "latest", "recent", "today", "now", "up-to-date", "trends"},
		[]string{"news", "events", "announcements", "developments", "headlines"},
		[]string{"statistics", "data", "figures", "numbers", "analysis", "report"},
	),
	"ru": makeTable(
		[]string{"текущий", "последний", "недавно", "сегодня", "сейчас", "актуальный", "тренды"},
		[]string{"новости", "события", "объявления", "заголовки"},
		[]string{"статистика", "данные", "цифры", "анализ", "отчет"},
	),
	"es": makeTable(
		[]string{"actual", "último", "reciente", "hoy", "ahora", "tendencias"},
		[]string{"noticias", "eventos", "anuncios", "titulares"},
		[]string{"estadísticas", "datos", "cifras", "análisis", "informe"},
	),
	"fr": makeTable(
		[]string{"actuel", "dernier", "récent", "aujourd'hui", "maintenant", "tendances"},
		[]string{"actualités", "nouvelles", "événements", "annonces"},
		[]string{"statistiques", "données", "chiffres", "analyse", "rapport"},
	),
	"de": makeTable(
		[]string{"aktuell", "neueste", "kürzlich", "heute", "jetzt", "trends"},
		[]string{"nachrichten", "ereignisse", "ankündigungen", "schlagzeilen"},
		[]string{"statistiken", "daten", "zahlen", "analyse", "bericht"},
	),
}

// yearPattern matches standalone 4-digit year tokens, which count as
// temporal cues ("AI trends in 2025").
var yearPattern = regexp.MustCompile(`^(19|20)\d{2}$`)

func makeTable(temporal, news, statistics []string) keywordTable {
	return keywordTable{
		temporal:   makeSet(temporal),
		news:       makeSet(news),
		statistics: makeSet(statistics),
	}
}

func makeSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Heuristic is the deterministic keyword-based decision path. It performs no
// I/O and never fails, making it a safe substitute whenever the LLM path is
// unavailable.
type Heuristic struct{}

func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Match reports which keyword sets the query hits for the given language.
type Match struct {
	Temporal   bool
	News       bool
	Statistics bool
}

// Count returns the number of distinct keyword sets that matched.
func (m Match) Count() int {
	n := 0
	for _, hit := range []bool{m.Temporal, m.News, m.Statistics} {
		if hit {
			n++
		}
	}
	return n
}

// Triggers derives taxonomy triggers from the matched sets. Temporal is
// listed first as it is checked first.
func (m Match) Triggers() []models.Trigger {
	var triggers []models.Trigger
	if m.Temporal {
		triggers = append(triggers, models.TriggerTemporal)
	}
	if m.News {
		triggers = append(triggers, models.TriggerNews)
	}
	if m.Statistics {
		triggers = append(triggers, models.TriggerStatistics)
	}
	return triggers
}

// Match tokenizes the query and tests each token against the language's
// keyword sets. Matching is on whole tokens only, so "dated" does not hit
// "date". Empty or whitespace-only queries match nothing.
func (h *Heuristic) Match(query, language string) Match {
	table := tableFor(language)

	var m Match
	for _, token := range tokenize(query) {
		if _, ok := table.temporal[token]; ok || yearPattern.MatchString(token) {
			m.Temporal = true
		}
		if _, ok := table.news[token]; ok {
			m.News = true
		}
		if _, ok := table.statistics[token]; ok {
			m.Statistics = true
		}
	}
	return m
}

// Decide is the fallback decision: true when the number of distinct keyword
// sets hit meets the sensitivity threshold. The thresholds are fixed and
// documented: low requires two distinct sets, medium and high require one.
// High sensitivity widens the decision only on the LLM path, where the model
// is instructed to prefer recall.
func (h *Heuristic) Decide(query, language, sensitivity string) bool {
	return h.Match(query, language).Count() >= requiredHits(sensitivity)
}

func requiredHits(sensitivity string) int {
	if sensitivity == models.SensitivityLow {
		return 2
	}
	return 1
}

func tableFor(language string) keywordTable {
	primary := language
	if i := strings.IndexByte(primary, '-'); i >= 0 {
		primary = primary[:i]
	}
	if table, ok := keywordTables[strings.ToLower(primary)]; ok {
		return table
	}
	return keywordTables["en"]
}

func tokenize(query string) []string {
	lower := strings.ToLower(query)
	return strings.FieldsFunc(lower, func(r rune) bool {
		// Keep hyphens and apostrophes so compound keywords like
		// "up-to-date" and "aujourd'hui" survive as single tokens.
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '\''
	})
}
