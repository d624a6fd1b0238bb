package survey

import (
	"strconv"

	"github.com/Chandima0406/NovaScript/model"
)

// ValidateAnswers checks a candidate answers map against a survey's
// already-normalized question list. Keys are question indices; the
// expected value shape is decided by the referenced question's kind, not
// by inspecting the value. Validation is all-or-nothing: the first
// failure aborts the submission.
func ValidateAnswers(questions []model.Question, answers map[string]any) error {
	for key, value := range answers {
		index, err := strconv.Atoi(key)
		if err != nil || index < 0 || index >= len(questions) {
			return errUnknownQuestionIndex(key)
		}

		q := questions[index]
		switch q.Kind {
		case model.KindFreeText:
			// any value is accepted

		case model.KindSingleChoice:
			s, ok := value.(string)
			if !ok || !containsOption(q.Options, s) {
				return errInvalidOptionSelected(index)
			}

		case model.KindMultiChoice:
			picks, ok := value.([]any)
			if !ok {
				return errInvalidOptionSelected(index)
			}
			for _, pick := range picks {
				s, ok := pick.(string)
				if !ok || !containsOption(q.Options, s) {
					return errInvalidOptionSelected(index)
				}
			}
		}
	}
	return nil
}

func containsOption(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
