package planner

import (
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"canvassync/lib/htmlutil"
	"canvassync/lib/scrapers/canvas/selectors"
	"canvassync/lib/textutil"
)

// Extract dispatches to the extractor matching the classified kind. The
// returned item is partial: ClassName, SourceUrl and Kind are the caller's
// to fill in.
func Extract(kind Kind, doc *goquery.Document, sel selectors.Registry) (Item, error) {
	switch kind {
	case KindAssignment:
		return ExtractAssignment(doc, sel), nil
	case KindQuiz:
		return ExtractQuiz(doc, sel), nil
	case KindDiscussion:
		return ExtractDiscussion(doc, sel), nil
	}
	return Item{}, fmt.Errorf("no extractor for kind '%s'", kind)
}

// every field is guarded independently: a stale locator substitutes the
// field's default instead of failing the extraction. the policy is
// best-effort completeness, not fail fast.
func guardedText(doc *goquery.Document, locator, field, fallback string) string {
	found := doc.Find(locator)
	if found.Length() == 0 {
		slog.Warn(
			"element not found, substituting default",
			"field", field,
			"locator", locator,
			"default", fallback,
		)
		return fallback
	}
	text := htmlutil.CleanText(found.First().Text())
	if text == "" {
		return fallback
	}
	return text
}

func guardedDescription(doc *goquery.Document, locator, field string) *string {
	found := doc.Find(locator)
	if found.Length() == 0 {
		slog.Warn("element not found, leaving description empty", "field", field, "locator", locator)
		return nil
	}
	text := htmlutil.CleanText(found.First().Text())
	return &text
}

func ExtractAssignment(doc *goquery.Document, sel selectors.Registry) Item {
	return Item{
		Title: guardedText(doc, sel.Assignment.Title, "assignment.title", "Untitled Assignment"),
		DueDate: DueDate{
			Text: textutil.NormalizeDueText(
				guardedText(doc, sel.Assignment.DueDate, "assignment.due_date", "No due date"),
			),
		},
		Description: guardedDescription(doc, sel.Assignment.Description, "assignment.description"),
	}
}

func ExtractQuiz(doc *goquery.Document, sel selectors.Registry) Item {
	return Item{
		Title: guardedText(doc, sel.Quiz.Title, "quiz.title", "Untitled Quiz"),
		DueDate: DueDate{
			Text: textutil.NormalizeDueText(
				guardedText(doc, sel.Quiz.DueDate, "quiz.due_date", "No due date"),
			),
		},
		Description: nil,
	}
}

func ExtractDiscussion(doc *goquery.Document, sel selectors.Registry) Item {
	return Item{
		Title: guardedText(doc, sel.Discussion.Title, "discussion.title", "Untitled Discussion"),
		DueDate: DueDate{
			Text: textutil.NormalizeDueText(
				guardedText(doc, sel.Discussion.DueDate, "discussion.due_date", "No due date"),
			),
		},
		Description: guardedDescription(doc, sel.Discussion.Description, "discussion.description"),
	}
}
