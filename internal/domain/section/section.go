// Package section narrows résumé text to the range that most likely belongs to
// one named section, such as "education" or "work experience".
package section

import (
	"regexp"
	"strings"
)

// Definition describes how a section opens and where it stops.
//
// Headings are tried in order; the first one that matches anywhere in the text
// opens the section. The section runs from the start of that heading up to,
// but not including, the earliest boundary word found after the heading.
type Definition struct {
	Name       string
	Headings   []*regexp.Regexp
	Boundaries []string

	boundary *regexp.Regexp
}

// New compiles a Definition. Heading patterns are matched case-insensitively
// and across line breaks; boundary words are literal and case-insensitive.
func New(name string, boundaries []string, headings ...string) Definition {
	d := Definition{Name: name, Boundaries: boundaries}
	for _, h := range headings {
		d.Headings = append(d.Headings, regexp.MustCompile(`(?is)`+h))
	}
	if len(boundaries) > 0 {
		quoted := make([]string, len(boundaries))
		for i, b := range boundaries {
			quoted[i] = regexp.QuoteMeta(b)
		}
		d.boundary = regexp.MustCompile(`(?i)` + strings.Join(quoted, "|"))
	}
	return d
}

// Find returns the located section and whether any heading matched.
func (d Definition) Find(text string) (string, bool) {
	for _, h := range d.Headings {
		loc := h.FindStringIndex(text)
		if loc == nil {
			continue
		}
		end := len(text)
		if d.boundary != nil {
			if b := d.boundary.FindStringIndex(text[loc[1]:]); b != nil {
				end = loc[1] + b[0]
			}
		}
		return text[loc[0]:end], true
	}
	return "", false
}

// Locate returns the located section, or the whole text when no heading
// matches.
func (d Definition) Locate(text string) string {
	if s, ok := d.Find(text); ok {
		return s
	}
	return text
}

// Section definitions shared by the extractors and the classifiers.
var (
	// Experience is the broad work history section used by the experience extractor.
	Experience = New("experience",
		[]string{"education", "skills", "projects"},
		`(?:work\s*experience|employment|professional\s*experience)`,
		`(?:experience|work history|employment history)`,
		`(?:career|professional background)`,
	)

	// WorkExperience only accepts explicit work history headings. The
	// classifiers use it so that a stray "experience" in a summary line does
	// not count as in-section evidence.
	WorkExperience = New("work_experience",
		[]string{"education", "skills", "projects"},
		`(?:work\s*experience|employment|professional\s*experience)`,
	)

	Education = New("education",
		[]string{"experience", "skills", "projects"},
		`(?:education|academic|qualification)`,
		`(?:education|academic background|academic history)`,
		`(?:degree|university|college)`,
	)

	Projects = New("projects",
		[]string{"experience", "education", "skills"},
		`(?:projects|personal\s*projects)`,
		`(?:portfolio|selected\s*projects|key\s*projects)`,
		`(?:github|repositories|open\s*source)`,
	)

	Certifications = New("certifications",
		[]string{"experience", "education", "skills", "projects"},
		`(?:certifications|certificates|qualifications)`,
		`(?:professional certifications|technical certifications|credentials)`,
		`(?:licenses|accreditations)`,
	)

	Languages = New("languages",
		[]string{"skills", "experience", "education"},
		`(?:languages?|linguistic skills|communication skills)`,
	)
)
