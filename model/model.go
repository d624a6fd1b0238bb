package model

import "time"

// QuestionKind discriminates how a question is answered and how its
// answers are validated and aggregated.
type QuestionKind string

const (
	// KindFreeText takes an arbitrary string answer.
	KindFreeText QuestionKind = "text"
	// KindSingleChoice takes exactly one of the declared options.
	KindSingleChoice QuestionKind = "multiple-choice"
	// KindMultiChoice takes any subset of the declared options.
	KindMultiChoice QuestionKind = "checkboxes"
)

// Choice reports whether answers to this kind are picked from options.
func (k QuestionKind) Choice() bool {
	return k == KindSingleChoice || k == KindMultiChoice
}

type Question struct {
	Text    string       `json:"text"`
	Kind    QuestionKind `json:"type"`
	Options []string     `json:"options"`
}

// Creator is a {name, role} snapshot taken when the survey is created,
// not a live reference to the user record.
type Creator struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type Survey struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Creator     Creator    `json:"creator"`
	OwnerID     string     `json:"ownerId"`
	Questions   []Question `json:"questions"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// SurveyResponse holds one user's answers to one survey. Answers are keyed
// by question index; the value shape depends on the question's kind and is
// resolved by looking the question up, never by sniffing the value.
type SurveyResponse struct {
	ID          string         `json:"id"`
	SurveyID    string         `json:"surveyId"`
	UserID      string         `json:"userId"`
	Answers     map[string]any `json:"answers"`
	SubmittedAt time.Time      `json:"submittedAt"`
}

type User struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type Author struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Project is a published research paper. The PDF blob is kept out of the
// struct and streamed straight from the store.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Author      Author    `json:"author"`
	OwnerID     string    `json:"ownerId"`
	PDFName     string    `json:"pdfName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
