package survey

import (
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/Chandima0406/NovaScript/model"
)

// NormalizeQuestions validates a candidate question list in place and
// returns the cleaned copy. For choice questions the options are trimmed,
// blank entries dropped, and at least 2 must survive. Free-text questions
// have their options discarded silently, whatever was sent.
//
// Every offending question is reported, with 1-based indices, so a client
// can fix the whole form in one round trip.
func NormalizeQuestions(questions []model.Question) ([]model.Question, error) {
	var errs *multierror.Error

	out := make([]model.Question, len(questions))
	for i, q := range questions {
		q.Text = strings.TrimSpace(q.Text)
		if q.Text == "" {
			errs = multierror.Append(errs, errInvalidQuestionText(i+1))
		}

		switch {
		case q.Kind.Choice():
			opts := make([]string, 0, len(q.Options))
			for _, opt := range q.Options {
				opt = strings.TrimSpace(opt)
				if opt != "" {
					opts = append(opts, opt)
				}
			}
			if len(opts) < 2 {
				errs = multierror.Append(errs, errInvalidQuestionOptions(i+1))
			}
			q.Options = opts
		case q.Kind == model.KindFreeText:
			q.Options = []string{}
		default:
			errs = multierror.Append(errs, errInvalidQuestionKind(i+1))
		}

		out[i] = q
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}
