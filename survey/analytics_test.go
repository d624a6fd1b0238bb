package survey

import (
	"reflect"
	"testing"

	"github.com/Chandima0406/NovaScript/model"
)

func responsesWith(answers ...map[string]any) []model.SurveyResponse {
	responses := make([]model.SurveyResponse, len(answers))
	for i, a := range answers {
		responses[i] = model.SurveyResponse{Answers: a}
	}
	return responses
}

func TestAggregateSingleChoiceDistribution(t *testing.T) {
	questions := []model.Question{
		{Text: "Pick", Kind: model.KindSingleChoice, Options: []string{"A", "B"}},
	}
	responses := responsesWith(
		map[string]any{"0": "A"},
		map[string]any{"0": "A"},
		map[string]any{"0": "B"},
	)

	results := Aggregate(questions, responses)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	want := map[string]int{"A": 2, "B": 1}
	if !reflect.DeepEqual(results[0].Distribution, want) {
		t.Errorf("expected %v, got %v", want, results[0].Distribution)
	}
}

func TestAggregateSeedsZeroCounts(t *testing.T) {
	questions := []model.Question{
		{Text: "Pick", Kind: model.KindSingleChoice, Options: []string{"Red", "Blue"}},
	}
	responses := responsesWith(map[string]any{"0": "Red"})

	results := Aggregate(questions, responses)
	want := map[string]int{"Red": 1, "Blue": 0}
	if !reflect.DeepEqual(results[0].Distribution, want) {
		t.Errorf("expected zero-seeded distribution %v, got %v", want, results[0].Distribution)
	}
}

func TestAggregateMultiChoiceDistribution(t *testing.T) {
	questions := []model.Question{
		{Text: "Pick many", Kind: model.KindMultiChoice, Options: []string{"X", "Y"}},
	}
	responses := responsesWith(
		map[string]any{"0": []any{"X", "Y"}},
		map[string]any{"0": []any{"X"}},
	)

	results := Aggregate(questions, responses)
	want := map[string]int{"X": 2, "Y": 1}
	if !reflect.DeepEqual(results[0].Distribution, want) {
		t.Errorf("expected %v, got %v", want, results[0].Distribution)
	}
}

func TestAggregateMultiChoiceSkipsInvalidPicks(t *testing.T) {
	questions := []model.Question{
		{Text: "Pick many", Kind: model.KindMultiChoice, Options: []string{"X", "Y"}},
	}
	responses := responsesWith(map[string]any{"0": []any{"X", "Z"}})

	results := Aggregate(questions, responses)
	want := map[string]int{"X": 1, "Y": 0}
	if !reflect.DeepEqual(results[0].Distribution, want) {
		t.Errorf("expected stale checkbox pick ignored, got %v", results[0].Distribution)
	}
}

func TestAggregateScalarCountsAsIs(t *testing.T) {
	// a stale scalar answer is not re-validated at read time and shows up
	// as its own key
	questions := []model.Question{
		{Text: "Pick", Kind: model.KindSingleChoice, Options: []string{"A", "B"}},
	}
	responses := responsesWith(map[string]any{"0": "Removed"})

	results := Aggregate(questions, responses)
	want := map[string]int{"A": 0, "B": 0, "Removed": 1}
	if !reflect.DeepEqual(results[0].Distribution, want) {
		t.Errorf("expected %v, got %v", want, results[0].Distribution)
	}
}

func TestAggregateFreeTextExcludesEmpty(t *testing.T) {
	questions := []model.Question{
		{Text: "Comments?", Kind: model.KindFreeText},
	}
	responses := responsesWith(
		map[string]any{"0": "hello"},
		map[string]any{"0": ""},
		map[string]any{"0": "world"},
	)

	results := Aggregate(questions, responses)
	want := []string{"hello", "world"}
	if !reflect.DeepEqual(results[0].Answers, want) {
		t.Errorf("expected %v, got %v", want, results[0].Answers)
	}
}

func TestAggregateFreeTextKeepsZeroString(t *testing.T) {
	// only the empty string is excluded; "0" is a real answer
	questions := []model.Question{
		{Text: "Comments?", Kind: model.KindFreeText},
	}
	responses := responsesWith(map[string]any{"0": "0"})

	results := Aggregate(questions, responses)
	if !reflect.DeepEqual(results[0].Answers, []string{"0"}) {
		t.Errorf(`expected ["0"], got %v`, results[0].Answers)
	}
}

func TestAggregateMissingAnswersContributeNothing(t *testing.T) {
	questions := []model.Question{
		{Text: "Comments?", Kind: model.KindFreeText},
		{Text: "Pick", Kind: model.KindSingleChoice, Options: []string{"A", "B"}},
	}
	responses := responsesWith(map[string]any{"1": "A"})

	results := Aggregate(questions, responses)
	if len(results[0].Answers) != 0 {
		t.Errorf("expected no free-text answers, got %v", results[0].Answers)
	}
	if results[1].Distribution["A"] != 1 {
		t.Errorf("expected A counted once, got %v", results[1].Distribution)
	}
}

func TestAggregateAlignsWithQuestionOrder(t *testing.T) {
	questions := []model.Question{
		{Text: "First", Kind: model.KindFreeText},
		{Text: "Second", Kind: model.KindSingleChoice, Options: []string{"A", "B"}},
		{Text: "Third", Kind: model.KindMultiChoice, Options: []string{"X", "Y"}},
	}

	results := Aggregate(questions, nil)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, q := range questions {
		if results[i].Question != q.Text || results[i].Kind != q.Kind {
			t.Errorf("result %d does not align with question %q", i, q.Text)
		}
	}
}
