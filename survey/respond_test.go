package survey

import (
	"testing"

	"github.com/Chandima0406/NovaScript/model"
)

var testQuestions = []model.Question{
	{Text: "Comments?", Kind: model.KindFreeText, Options: []string{}},
	{Text: "Favourite colour?", Kind: model.KindSingleChoice, Options: []string{"Red", "Blue"}},
	{Text: "Languages used?", Kind: model.KindMultiChoice, Options: []string{"Go", "Python"}},
}

func TestValidateAnswersAcceptsValidSubmission(t *testing.T) {
	err := ValidateAnswers(testQuestions, map[string]any{
		"0": "looks good",
		"1": "Red",
		"2": []any{"Go", "Python"},
	})
	if err != nil {
		t.Fatalf("expected valid submission, got %v", err)
	}
}

func TestValidateAnswersUnknownIndex(t *testing.T) {
	cases := []struct {
		name string
		key  string
	}{
		{"out of range", "3"},
		{"negative", "-1"},
		{"not a number", "first"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAnswers(testQuestions, map[string]any{tc.key: "Red"})
			if err == nil {
				t.Fatalf("expected error for key %q", tc.key)
			}
		})
	}
}

func TestValidateAnswersSingleChoice(t *testing.T) {
	if err := ValidateAnswers(testQuestions, map[string]any{"1": "Blue"}); err != nil {
		t.Errorf("expected Blue accepted, got %v", err)
	}

	if err := ValidateAnswers(testQuestions, map[string]any{"1": "Green"}); err == nil {
		t.Error("expected out-of-set value rejected")
	}

	// the question's kind decides the expected shape, not the value
	if err := ValidateAnswers(testQuestions, map[string]any{"1": []any{"Red"}}); err == nil {
		t.Error("expected array answer to a single-choice question rejected")
	}
}

func TestValidateAnswersMultiChoice(t *testing.T) {
	if err := ValidateAnswers(testQuestions, map[string]any{"2": "Go"}); err == nil {
		t.Error("expected non-array answer rejected")
	}

	if err := ValidateAnswers(testQuestions, map[string]any{"2": []any{"Go", "Rust"}}); err == nil {
		t.Error("expected array with an out-of-set element rejected")
	}

	if err := ValidateAnswers(testQuestions, map[string]any{"2": []any{"Go", "Go"}}); err != nil {
		t.Errorf("expected duplicate picks accepted, got %v", err)
	}

	if err := ValidateAnswers(testQuestions, map[string]any{"2": []any{}}); err != nil {
		t.Errorf("expected empty pick list accepted, got %v", err)
	}
}

func TestValidateAnswersFreeTextIsPermissive(t *testing.T) {
	for _, value := range []any{"anything", "", float64(42), true} {
		if err := ValidateAnswers(testQuestions, map[string]any{"0": value}); err != nil {
			t.Errorf("expected free-text value %v accepted, got %v", value, err)
		}
	}
}

func TestValidateAnswersEmptySubmission(t *testing.T) {
	if err := ValidateAnswers(testQuestions, map[string]any{}); err != nil {
		t.Errorf("expected empty answers accepted, got %v", err)
	}
}
