package planner

// Kind discriminates which extractor produced an item. It is set exactly
// once by classification and never reassigned downstream.
type Kind string

const (
	KindUnknown    Kind = ""
	KindAssignment Kind = "assignment"
	KindQuiz       Kind = "quiz"
	KindDiscussion Kind = "discussion"
)

// DueDate carries the due/publish date exactly as the portal rendered it,
// minus lead-in phrases. It is free text, not a normalized timestamp;
// downstream consumers parse it contextually.
type DueDate struct {
	Text string `json:"text"`
}

type Item struct {
	Title   string  `json:"title"`
	DueDate DueDate `json:"dueDate"`
	// Description is nil for quizzes, the portal's quiz template has no
	// descriptive body.
	Description *string `json:"description"`
	ClassName   string  `json:"className"`
	SourceUrl   string  `json:"sourceUrl"`
	Kind        Kind    `json:"kind"`
}
