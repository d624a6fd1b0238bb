package survey

import (
	"strconv"

	"github.com/Chandima0406/NovaScript/model"
)

// QuestionAnalytics is the aggregate for one question. Free-text questions
// carry Answers; choice questions carry Distribution.
type QuestionAnalytics struct {
	Question     string             `json:"question"`
	Kind         model.QuestionKind `json:"type"`
	Answers      []string           `json:"answers,omitempty"`
	Distribution map[string]int     `json:"distribution,omitempty"`
}

// Aggregate computes per-question analytics over the full response set,
// one result per question in question order. It is a pure read: nothing
// is cached and responses are trusted as validated at submission time.
func Aggregate(questions []model.Question, responses []model.SurveyResponse) []QuestionAnalytics {
	results := make([]QuestionAnalytics, len(questions))
	for i, q := range questions {
		key := strconv.Itoa(i)

		result := QuestionAnalytics{Question: q.Text, Kind: q.Kind}
		if q.Kind.Choice() {
			result.Distribution = aggregateChoices(q, key, responses)
		} else {
			result.Answers = aggregateFreeText(key, responses)
		}
		results[i] = result
	}
	return results
}

// aggregateFreeText collects answers in response order, skipping empty
// strings. The predicate is exactly "empty string": a literal "0" is a
// real answer and stays in.
func aggregateFreeText(key string, responses []model.SurveyResponse) []string {
	answers := []string{}
	for _, resp := range responses {
		if s, ok := resp.Answers[key].(string); ok && s != "" {
			answers = append(answers, s)
		}
	}
	return answers
}

// aggregateChoices tallies picks per option. Every declared option gets an
// entry, even at count zero. Checkbox answers only count picks that are
// still valid options; a scalar answer is counted as-is, trusting
// submission-time validation, so a stale value shows up as its own key.
func aggregateChoices(q model.Question, key string, responses []model.SurveyResponse) map[string]int {
	distribution := make(map[string]int, len(q.Options))
	for _, opt := range q.Options {
		distribution[opt] = 0
	}

	for _, resp := range responses {
		switch answer := resp.Answers[key].(type) {
		case []any:
			for _, pick := range answer {
				if s, ok := pick.(string); ok && containsOption(q.Options, s) {
					distribution[s]++
				}
			}
		case string:
			distribution[answer]++
		}
	}
	return distribution
}
