package planner

import (
	"github.com/PuerkitoBio/goquery"

	"canvassync/lib/htmlutil"
	"canvassync/lib/scrapers/canvas/selectors"
)

// Classify probes a loaded item page for the type-specific marker elements.
// The priority order (assignment, quiz, discussion) is fixed: ambiguous or
// legacy markup that satisfies more than one marker resolves to the earlier
// kind.
func Classify(doc *goquery.Document, sel selectors.Registry) Kind {
	if doc.Find(sel.Assignment.Marker).Length() > 0 {
		return KindAssignment
	}
	if doc.Find(sel.Quiz.Marker).Length() > 0 {
		return KindQuiz
	}
	if doc.Find(sel.Discussion.Marker).Length() > 0 &&
		BreadcrumbContains(doc, sel, "Announcements") {
		return KindDiscussion
	}
	return KindUnknown
}

// BreadcrumbClassName reads the course name out of the breadcrumb trail,
// falling back to a sentinel when the trail is missing or reshaped.
func BreadcrumbClassName(doc *goquery.Document, sel selectors.Registry) string {
	crumb := doc.Find(sel.Breadcrumbs.ClassName)
	if crumb.Length() == 0 {
		return "Unknown Class"
	}
	name := htmlutil.CleanText(crumb.First().Text())
	if name == "" {
		return "Unknown Class"
	}
	return name
}

// BreadcrumbContains reports whether any breadcrumb segment equals the given
// text exactly.
func BreadcrumbContains(doc *goquery.Document, sel selectors.Registry, text string) bool {
	found := false
	doc.Find(sel.Breadcrumbs.FirstLevel).Each(func(_ int, s *goquery.Selection) {
		if htmlutil.CleanText(s.Text()) == text {
			found = true
		}
	})
	return found
}
