package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/okian/cvparse/internal/domain/section"
)

// SkillVocabulary is the fixed list of detectable skills, in output order.
var SkillVocabulary = []string{
	"Python", "JavaScript", "Java", "C++", "C#", "Ruby", "PHP", "Swift",
	"React", "Angular", "Vue", "Node.js", "Django", "Flask", "Spring",
	"SQL", "MongoDB", "AWS", "Azure", "Docker", "Kubernetes", "Git",
	"HTML", "CSS", "TypeScript", "REST API", "GraphQL", "Redux", "Express",
	"TensorFlow", "PyTorch", "Machine Learning", "Data Science", "Agile",
	"Scrum", "DevOps", "CI/CD", "Testing", "Debugging", "Problem Solving",
}

var skillRes = compileWords(SkillVocabulary)

func compileWords(terms []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(terms))
	for i, t := range terms {
		out[i] = wordRe(t)
	}
	return out
}

// Skills returns the vocabulary skills mentioned in text, comma joined in
// vocabulary order.
func Skills(text string) string {
	var found []string
	for i, re := range skillRes {
		if re.MatchString(text) {
			found = append(found, SkillVocabulary[i])
		}
	}
	return strings.Join(found, ", ")
}

type language struct {
	name     string
	patterns []*regexp.Regexp
}

func newLanguage(name, alt string) language {
	return language{name: name, patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:speak|know|fluent|native|proficient|advanced|intermediate|basic)\s+(?:in\s+)?` + alt),
		regexp.MustCompile(`(?i)` + alt + `\s+(?:speaker|language|proficiency|skills?)`),
		regexp.MustCompile(`(?i)Languages?[^.]*?` + alt),
	}}
}

var languages = []language{
	newLanguage("English", "English"),
	newLanguage("Spanish", "Spanish"),
	newLanguage("French", "French"),
	newLanguage("German", "German"),
	newLanguage("Chinese", "(?:Chinese|Mandarin|Cantonese)"),
	newLanguage("Japanese", "Japanese"),
	newLanguage("Russian", "Russian"),
	newLanguage("Arabic", "Arabic"),
	newLanguage("Portuguese", "Portuguese"),
	newLanguage("Italian", "Italian"),
	newLanguage("Hindi", "Hindi"),
}

// Languages returns the spoken languages named in the languages section (or
// the whole text), comma joined in a fixed order.
func Languages(text string) string {
	scope := section.Languages.Locate(text)
	var found []string
	for _, l := range languages {
		for _, re := range l.patterns {
			if re.MatchString(scope) {
				found = append(found, l.name)
				break
			}
		}
	}
	return strings.Join(found, ", ")
}

const certSuffix = `(?:Certification|Certificate|Certified|Professional|Specialist|Expert|Associate|Practitioner)`

var certificationTable = Table{
	rule(`(?i)([A-Za-z][A-Za-z0-9\s\-]+(?:Certification|Certificate|Certified))`, 1),
	rule(`(?i)([A-Za-z][A-Za-z0-9\s\-]+\s+(?:Professional|Specialist|Expert|Associate|Practitioner))`, 1),
	rule(`(?i)((?:AWS|Azure|Google|Microsoft|Oracle|Cisco|CompTIA|PMI|ITIL|Scrum|SAFe|PMP|CISSP|CISA|CISM|CEH|CCNA|MCSA|MCSE|MCTS|RHCE|RHCSA|Security\+|Network\+|A\+|CAPM|CSM|CSPO|ACP|PgMP|PfMP|PMI-ACP|PMI-PBA|PMI-RMP|PMI-SP)[A-Za-z0-9\s\-]*)`, 1),
	rule(`(?i)(?:•|-|\*)\s*([A-Za-z][A-Za-z0-9\s\-]{3,}`+certSuffix+`)`, 1),
	rule(`(?i)(?:earned|achieved|obtained|received|completed)\s+([A-Za-z][A-Za-z0-9\s\-]+`+certSuffix+`)`, 1),
}

// WellKnownCertifications are reported when no certification pattern
// matches but the first word of one of them appears in the text.
var WellKnownCertifications = []string{
	"AWS Certified Solutions Architect",
	"Microsoft Certified Professional",
	"Certified ScrumMaster",
	"Project Management Professional",
	"Certified Information Systems Security Professional",
	"CompTIA Security+",
	"Cisco Certified Network Associate",
	"Google Cloud Professional",
	"Oracle Certified Professional",
	"Certified Kubernetes Administrator",
}

var wellKnownRes = func() []*regexp.Regexp {
	firsts := make([]string, len(WellKnownCertifications))
	for i, c := range WellKnownCertifications {
		firsts[i] = strings.Fields(c)[0]
	}
	return compileWords(firsts)
}()

const minCertificationLen = 5

// Certifications returns the certifications found in the certifications
// section (or the whole text), deduplicated case-insensitively.
func Certifications(text string) string {
	scope := section.Certifications.Locate(text)
	seen := make(map[string]struct{})
	var out []string
	for _, c := range certificationTable.All(scope) {
		key := strings.ToLower(c)
		if _, dup := seen[key]; dup || utf8.RuneCountInString(c) <= minCertificationLen {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	if len(out) > 0 {
		return strings.Join(out, ", ")
	}
	for i, re := range wellKnownRes {
		if re.MatchString(text) {
			return WellKnownCertifications[i]
		}
	}
	return ""
}
