package extract

import "strings"

const linkedInBase = "https://www.linkedin.com/in/"

var (
	linkedInTable = Table{
		rule(`(?i)linkedin\.com/in/([\w-]+)`, 1),
		rule(`(?i)linkedin:\s*(https?://\S+)`, 1),
		rule(`(?i)linkedin[^\n:]*:\s*(\S+)`, 1),
	}

	websiteTable = Table{
		rule(`(?i)website:\s*(https?://\S+)`, 1),
		rule(`(?i)personal\s*site:\s*(https?://\S+)`, 1),
		rule(`(?i)portfolio:\s*(https?://\S+)`, 1),
		rule(`(?i)(https?://(?:www\.)?[a-zA-Z0-9][a-zA-Z0-9-]+\.[a-zA-Z0-9.-]+)`, 1),
	}

	blogTable = Table{
		rule(`(?i)blog:\s*(https?://\S+)`, 1),
		rule(`(?i)medium:\s*(https?://\S+)`, 1),
		rule(`(?i)(https?://(?:www\.)?medium\.com/\S+)`, 1),
		rule(`(?i)(https?://(?:www\.)?[a-zA-Z0-9][a-zA-Z0-9-]*\.(?:wordpress|blogspot|tumblr)\.com)`, 1),
	}

	youTubeTable = Table{
		rule(`(?i)youtube:\s*(https?://\S+)`, 1),
		rule(`(?i)youtube\s*channel:\s*(https?://\S+)`, 1),
		rule(`(?i)(https?://(?:www\.)?youtube\.com/(?:c/|channel/|user/)\S+)`, 1),
	}
)

// LinkedIn returns the LinkedIn profile URL. A bare handle is expanded to
// the canonical profile URL.
func LinkedIn(text string) string {
	v, ok := linkedInTable.First(text)
	if !ok || v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "http") {
		return linkedInBase + v
	}
	return v
}

// Website returns a personal site URL, or the first URL in the text.
func Website(text string) string {
	v, _ := websiteTable.First(text)
	return v
}

// Blog returns a blog URL.
func Blog(text string) string {
	v, _ := blogTable.First(text)
	return v
}

// YouTube returns a YouTube channel URL.
func YouTube(text string) string {
	v, _ := youTubeTable.First(text)
	return v
}
