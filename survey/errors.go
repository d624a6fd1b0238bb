package survey

import "fmt"

// ValidationError marks input the submitter can fix. Handlers map any
// ValidationError to a 400 with the error text as the message.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// ErrDuplicateResponse is returned when a (survey, user) pair already has
// a stored response.
const ErrDuplicateResponse = ValidationError("you have already responded to this survey")

func errInvalidQuestionOptions(index int) error {
	// index is 1-based: it refers to the question's position in the payload
	return ValidationError(fmt.Sprintf("question %d must have at least 2 options", index))
}

func errInvalidQuestionText(index int) error {
	return ValidationError(fmt.Sprintf("question %d must have a prompt", index))
}

func errInvalidQuestionKind(index int) error {
	return ValidationError(fmt.Sprintf("question %d has an unknown type", index))
}

func errUnknownQuestionIndex(key string) error {
	return ValidationError(fmt.Sprintf("no question with index %q", key))
}

func errInvalidOptionSelected(index int) error {
	return ValidationError(fmt.Sprintf("invalid option selected for question %d", index+1))
}
