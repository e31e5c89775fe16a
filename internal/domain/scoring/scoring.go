// Package scoring infers a candidate's field of work and seniority by
// accumulating weighted evidence and picking the best scoring label.
package scoring

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/okian/cvparse/internal/domain/section"
)

// Seniority labels.
const (
	LevelIntern  = "Intern"
	LevelEntry   = "Entry Level"
	LevelJunior  = "Junior"
	LevelMid     = "Mid-Level"
	LevelSenior  = "Senior"
	LevelLead    = "Lead"
	LevelManager = "Manager"
)

// Evidence weights.
const (
	keywordWeight = 1
	skillWeight   = 2
	titleWeight   = 3
)

const (
	defaultYearsPerRole = 2
	defaultMaxYears     = 15
)

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithFields replaces the field-of-work categories. Their order breaks ties.
func WithFields(fields []Category) Option {
	return func(c *Classifier) {
		if len(fields) > 0 {
			c.fields = fields
		}
	}
}

// WithLevels replaces the seniority keyword table. Its order breaks ties.
func WithLevels(levels []Level) Option {
	return func(c *Classifier) {
		if len(levels) > 0 {
			c.levels = levels
		}
	}
}

// WithYearsEstimate sets how many years each role or date range counts for,
// and the cap on the estimate.
func WithYearsEstimate(perRole, maxYears int) Option {
	return func(c *Classifier) {
		if perRole > 0 && maxYears > 0 {
			c.yearsPerRole = perRole
			c.maxYears = maxYears
		}
	}
}

// Classifier holds the evidence tables. It is immutable after New and safe
// for concurrent use.
type Classifier struct {
	fields       []Category
	levels       []Level
	yearsPerRole int
	maxYears     int
}

// New creates a Classifier with the built-in tables.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		fields:       DefaultFields(),
		levels:       DefaultLevels(),
		yearsPerRole: defaultYearsPerRole,
		maxYears:     defaultMaxYears,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FieldOfWork returns the most likely field of work. skills is the comma
// separated value produced by the skills extractor.
func (c *Classifier) FieldOfWork(text, skills string) string {
	for _, f := range c.fields {
		if anyMatch(f.Titles, text) {
			return f.Name
		}
	}

	labels := make([]string, len(c.fields))
	for i, f := range c.fields {
		labels[i] = f.Name
	}
	t := NewTable(labels...)

	for _, f := range c.fields {
		for _, re := range f.Keywords {
			t.Add(f.Name, keywordWeight*len(re.FindAllStringIndex(text, -1)))
		}
	}

	if skills != "" {
		have := lowerList(skills)
		for _, f := range c.fields {
			for _, s := range f.Skills {
				if containsSkill(have, strings.ToLower(s)) {
					t.Add(f.Name, skillWeight)
				}
			}
		}
	}

	// Never adds evidence: the section is part of text, so a title found
	// here has already returned above.
	if work, ok := section.WorkExperience.Find(text); ok {
		for _, f := range c.fields {
			for _, re := range f.Titles {
				if re.MatchString(work) {
					t.Add(f.Name, titleWeight)
				}
			}
		}
	}

	return t.Best()
}

func lowerList(v string) []string {
	parts := strings.Split(v, ",")
	for i := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(parts[i]))
	}
	return parts
}

// containsSkill reports whether skill equals, or is part of, any of have.
func containsSkill(have []string, skill string) bool {
	for _, h := range have {
		if h == skill || strings.Contains(h, skill) {
			return true
		}
	}
	return false
}

func anyMatch(res []*regexp.Regexp, text string) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

var (
	explicitYears = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years|yrs|year)\s*(?:of)?\s*(?:experience|exp)`),
		regexp.MustCompile(`(?i)experience\s*(?:of)?\s*(\d+)\+?\s*(?:years|yrs|year)`),
		regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years|yrs|year)\s*(?:in|of)\s*(?:industry|professional|work)`),
		regexp.MustCompile(`(?i)(?:professional|work|industry)\s*experience\s*(?:of)?\s*(\d+)\+?\s*(?:years|yrs|year)`),
		regexp.MustCompile(`(?i)(?:career|work)\s*(?:spanning|of)\s*(\d+)\+?\s*(?:years|yrs|year)`),
	}
	roleWords  = regexp.MustCompile(`(?i)(?:Developer|Engineer|Manager|Designer|Analyst|Consultant|Director|Specialist|Lead|Architect)`)
	dateRanges = regexp.MustCompile(`(?i)(?:\d{4}|\d{2})\s*(?:-|to|–)\s*(?:\d{4}|\d{2}|present|current)`)
)

// Experience returns the seniority level and years of experience. years is
// "" when it could not be determined; the level then comes from keywords.
func (c *Classifier) Experience(text string) (level, years string) {
	if years, n, ok := statedYears(text); ok {
		return LevelForYears(n), years
	}
	if n, ok := c.estimate(text); ok {
		return LevelForYears(n), strconv.Itoa(n)
	}
	labels := make([]string, len(c.levels))
	for i, l := range c.levels {
		labels[i] = l.Name
	}
	t := NewTable(labels...)
	for _, l := range c.levels {
		for _, re := range l.Keywords {
			t.Add(l.Name, len(re.FindAllStringIndex(text, -1)))
		}
	}
	return t.Best(), ""
}

// Years returns the explicitly stated years of experience, or an estimate
// from the roles and date ranges listed in the work experience section.
func (c *Classifier) Years(text string) (int, bool) {
	if _, n, ok := statedYears(text); ok {
		return n, true
	}
	return c.estimate(text)
}

// statedYears returns the first explicit years phrase. A number too large
// for int keeps its digits and counts as math.MaxInt.
func statedYears(text string) (string, int, bool) {
	for _, re := range explicitYears {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		switch {
		case err == nil:
			return strconv.Itoa(n), n, true
		case errors.Is(err, strconv.ErrRange):
			digits := strings.TrimLeft(m[1], "0")
			return digits, math.MaxInt, true
		}
	}
	return "", 0, false
}

func (c *Classifier) estimate(text string) (int, bool) {
	work, ok := section.WorkExperience.Find(text)
	if !ok {
		return 0, false
	}
	roles := len(roleWords.FindAllStringIndex(work, -1))
	ranges := len(dateRanges.FindAllStringIndex(work, -1))
	if roles == 0 && ranges == 0 {
		return 0, false
	}
	return min(max(roles, ranges)*c.yearsPerRole, c.maxYears), true
}

// LevelForYears maps years of experience to a seniority label.
func LevelForYears(n int) string {
	switch {
	case n <= 0:
		return LevelIntern
	case n <= 1:
		return LevelEntry
	case n <= 3:
		return LevelJunior
	case n <= 6:
		return LevelMid
	case n <= 9:
		return LevelSenior
	case n <= 12:
		return LevelLead
	default:
		return LevelManager
	}
}
