// Package selectors is the single source of truth for the CSS locators that
// couple this module to the portal's markup. Nothing outside this package
// may construct a locator inline; when the portal UI changes, this is the
// one seam to update.
package selectors

type Login struct {
	Username  string
	Password  string
	CSRFToken string
	Submit    string
}

type Navigation struct {
	DashboardLink string
	PlannerButton string
}

type Planner struct {
	// Items matches every candidate coursework link in the aggregated
	// planner view.
	Items string
}

type Content struct {
	Main    string
	Spinner string
}

type Breadcrumbs struct {
	ClassName  string
	FirstLevel string
}

type Assignment struct {
	Marker      string
	Title       string
	DueDate     string
	Description string
}

type Quiz struct {
	Marker  string
	Title   string
	DueDate string
}

type Discussion struct {
	Marker      string
	Title       string
	DueDate     string
	Description string
}

type Registry struct {
	Version     string
	Login       Login
	Navigation  Navigation
	Planner     Planner
	Content     Content
	Breadcrumbs Breadcrumbs
	Assignment  Assignment
	Quiz        Quiz
	Discussion  Discussion
}

// Default returns the registry for the portal UI as of the version below.
// A lookup here never fails, locators only turn out to be stale when applied
// against a live document.
func Default() Registry {
	return Registry{
		Version: "2025-08",
		Login: Login{
			Username:  "input#pseudonym_session_unique_id",
			Password:  "input#pseudonym_session_password",
			CSRFToken: "input[name=authenticity_token]",
			Submit:    "form#login_form button[type=submit]",
		},
		Navigation: Navigation{
			DashboardLink: "a#global_nav_dashboard_link",
			PlannerButton: "button#planner-today-btn",
		},
		Planner: Planner{
			Items: "div.planner-item a[href*='/courses/']",
		},
		Content: Content{
			Main:    "div#content",
			Spinner: "div.loading-spinner",
		},
		Breadcrumbs: Breadcrumbs{
			ClassName:  "nav#breadcrumbs li:nth-child(2) span",
			FirstLevel: "nav#breadcrumbs li span",
		},
		Assignment: Assignment{
			Marker:      "div#assignment_show",
			Title:       "h1.title",
			DueDate:     "span.date_text",
			Description: "div.description.user_content",
		},
		Quiz: Quiz{
			Marker:  "div#quiz_show, div.quiz-header",
			Title:   "h1#quiz_title",
			DueDate: "span.due_at",
		},
		Discussion: Discussion{
			Marker:      "div.discussion-title, h1[data-testid='message_title']",
			Title:       "h1[data-testid='message_title']",
			DueDate:     "span.discussion-pubdate",
			Description: "div.message.user_content",
		},
	}
}
