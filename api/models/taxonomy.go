package models

// Trigger is a category of signal indicating a query may need up-to-date
// external information. The set of triggers is fixed; both the LLM analysis
// path and the keyword fallback speak this vocabulary.
type Trigger string

const (
	TriggerTemporal         Trigger = "temporal"
	TriggerNews             Trigger = "news"
	TriggerStatistics       Trigger = "statistics"
	TriggerCurrentEvents    Trigger = "current_events"
	TriggerPrices           Trigger = "prices"
	TriggerResearch         Trigger = "research"
	TriggerTechnology       Trigger = "technology"
	TriggerFinance          Trigger = "finance"
	TriggerGeneralKnowledge Trigger = "general_knowledge"
)

var triggerDescriptions = map[Trigger]string{
	TriggerTemporal:         "Time-sensitive indicators such as current, latest, or explicit years",
	TriggerNews:             "News and announcement queries",
	TriggerStatistics:       "Statistical data, figures, and reports",
	TriggerCurrentEvents:    "Ongoing political, economic, or social events",
	TriggerPrices:           "Prices, rates, and market quotes",
	TriggerResearch:         "Studies, papers, and research findings",
	TriggerTechnology:       "Technology and innovation news",
	TriggerFinance:          "Financial and business data",
	TriggerGeneralKnowledge: "Stable general knowledge unlikely to change",
}

// Triggers returns the full taxonomy in its canonical order.
func Triggers() []Trigger {
	return []Trigger{
		TriggerTemporal,
		TriggerNews,
		TriggerStatistics,
		TriggerCurrentEvents,
		TriggerPrices,
		TriggerResearch,
		TriggerTechnology,
		TriggerFinance,
		TriggerGeneralKnowledge,
	}
}

// ParseTrigger maps a raw string to a taxonomy value. Unknown values are
// rejected, never coerced.
func ParseTrigger(s string) (Trigger, bool) {
	t := Trigger(s)
	if _, ok := triggerDescriptions[t]; !ok {
		return "", false
	}
	return t, true
}

// Description returns the human-readable description for the trigger.
func (t Trigger) Description() string {
	return triggerDescriptions[t]
}
