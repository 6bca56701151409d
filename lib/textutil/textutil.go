package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)
var nonAlnumSpace = regexp.MustCompile(`[^a-z0-9 ]+`)
var sectionSuffix = regexp.MustCompile(` section ?\d+$`)
var courseNumberSuffix = regexp.MustCompile(` ?\d{3,}$`)

// NormalizeClassName reduces a portal course name down to the bare subject
// words so it can be matched against remote project names.
// Section markers ("Section 003", "-001") and trailing course numbers are
// noise that varies per term and per registrar export.
func NormalizeClassName(name string) string {
	name = strings.ToLower(name)
	name = nonAlnumSpace.ReplaceAllString(name, "")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	name = strings.Trim(name, " ")
	name = sectionSuffix.ReplaceAllString(name, "")
	name = courseNumberSuffix.ReplaceAllString(name, "")
	return strings.Trim(name, " ")
}

// MatchClass reports whether a remote project name contains the normalized
// class name as whole words, case-insensitively. Whole-word containment
// keeps short subject codes like "cs" from landing inside unrelated words
// ("physics").
func MatchClass(projectName, normalizedClass string) bool {
	if normalizedClass == "" {
		return false
	}
	name := strings.ToLower(projectName)
	name = nonAlnumSpace.ReplaceAllString(name, " ")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	name = strings.Trim(name, " ")
	return strings.Contains(" "+name+" ", " "+normalizedClass+" ")
}

// NormalizeDueText strips the lead-in phrases that differ between the
// assignment, quiz and announcement templates so all three produce
// comparably-shaped date text.
func NormalizeDueText(text string) string {
	text = strings.Trim(text, " \t\n")
	text = strings.TrimPrefix(text, "Due: ")
	text = strings.Replace(text, " by ", " ", 1)
	return text
}
