package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/okian/cvparse/internal/domain/model"
	"github.com/okian/cvparse/internal/domain/section"
)

const (
	titleWords = `(?:Developer|Engineer|Manager|Designer|Analyst|Consultant|Director|Specialist|Lead|Architect|Administrator|Programmer|Scientist|Officer|Coordinator|Associate)`
	orgSuffix  = `(?:Inc|LLC|Ltd|Corp|Corporation|Technologies|Solutions|Group|Systems)?`
	org        = `([A-Z][A-Za-z0-9\s&.,]+` + orgSuffix + `)`
	title      = `([A-Za-z0-9\s&.,]+` + titleWords + `[^\n]*)`
	dateStart  = `(?:\d{1,2}/\d{1,2}/\d{2,4}|\d{1,2}-\d{1,2}-\d{2,4}|\d{4}-\d{1,2}|\d{4})`
	dateEnd    = `(?:\d{1,2}/\d{1,2}/\d{2,4}|\d{1,2}-\d{1,2}-\d{2,4}|\d{4}-\d{1,2}|\d{4}|Present|Current)`
)

// Each employment rule yields (company, position). A missing position is
// reported as an empty string.
var employmentRules = []pairRule{
	// Company - Position
	pair(`(?i)`+org+`\s*[-–—]\s*`+title, 1, 2),
	// Position at Company
	pair(`(?i)`+title+`\s+(?:at|@|for|with)\s+`+org, 2, 1),
	// Company, newline, Position
	pair(`(?i)`+org+`\s*[\n\r]+\s*`+title, 1, 2),
	// date range, Company, optional Position
	pair(`(?i)`+dateStart+`\s*(?:to|-)\s*`+dateEnd+`\s*([A-Z][A-Za-z0-9\s&.,]+)\s*([A-Za-z0-9\s&.,]+(?:Developer|Engineer|Manager|Designer|Analyst|Consultant|Director|Specialist)[^\n]*)?`, 1, 2),
	// Position, Company
	pair(`(?i)`+title+`,\s*`+org, 2, 1),
	// Company followed by a date range
	pair(`(?i)`+org+`\s*(?:\(|\[)?`+dateStart+`\s*(?:to|-)\s*`+dateEnd, 1, 0),
}

var (
	bullet           = regexp.MustCompile(`(?:•|-|\*)\s*([^\n•\-*]+)`)
	looseCompanies   = regexp.MustCompile(`([A-Z][A-Za-z\s&.,]+` + orgSuffix + `)`)
	loosePositions   = regexp.MustCompile(`([A-Za-z\s&.,]+` + titleWords + `)`)
	companyLikeWords = regexp.MustCompile(`(?i)(?:Inc|LLC|Ltd|Corp|Corporation|Technologies|Solutions|Group|Systems)`)
)

const (
	positionUnknown    = "Position not specified"
	maxDescriptionLen  = 100
	descriptionCut     = 97
	maxLooseEmployment = 3
	maxEducation       = 2
	maxProjects        = 3
	projectDefaultDesc = "A project in the portfolio"
)

// EmploymentHistory returns the structured work history found in the
// experience section (or the whole text).
func EmploymentHistory(text string) []model.Employment {
	scope := section.Experience.Locate(text)

	var bullets []string
	for _, m := range bullet.FindAllStringSubmatch(scope, -1) {
		bullets = append(bullets, m[1])
	}

	var jobs []model.Employment
	for _, r := range employmentRules {
		for _, m := range r.matches(scope) {
			company, position := m[0], m[1]
			if position == "" {
				position = positionUnknown
			}
			jobs = append(jobs, model.Employment{
				Company:     company,
				Position:    position,
				Description: describe(bullets, company),
			})
		}
	}
	if len(jobs) > 0 {
		return jobs
	}

	companies := trimAll(looseCompanies.FindAllString(scope, -1))
	positions := trimAll(loosePositions.FindAllString(scope, -1))
	if len(companies) > maxLooseEmployment {
		companies = companies[:maxLooseEmployment]
	}
	for i, company := range companies {
		j := model.Employment{Company: company}
		switch {
		case len(positions) == 0:
			j.Position = "Professional"
			j.Description = "Worked at " + company
		case i < len(positions):
			j.Position = positions[i]
			j.Description = genericDescription(company)
		default:
			j.Position = positionUnknown
			j.Description = genericDescription(company)
		}
		jobs = append(jobs, j)
	}
	return jobs
}

// Experience returns the flat form of EmploymentHistory.
func Experience(text string) string {
	return model.JoinEntries(EmploymentHistory(text), 0)
}

func describe(bullets []string, company string) string {
	if len(bullets) == 0 {
		return genericDescription(company)
	}
	d := strings.Join(bullets[:min(2, len(bullets))], " ")
	if utf8.RuneCountInString(d) > maxDescriptionLen {
		d = string([]rune(d)[:descriptionCut]) + "..."
	}
	return d
}

func genericDescription(company string) string {
	return "Worked on various projects and initiatives at " + company
}

func trimAll(in []string) []string {
	for i := range in {
		in[i] = strings.TrimSpace(in[i])
	}
	return in
}

var (
	degreeTable = Table{
		rule(`(?i)(Bachelor|Master|PhD|Doctorate|B\.S\.|M\.S\.|B\.A\.|M\.A\.|B\.E\.|M\.E\.|B\.Tech|M\.Tech|B\.Sc|M\.Sc|B\.Com|M\.Com|B\.B\.A|M\.B\.A)[^\n]*`, 1),
		rule(`(?i)(Bachelor[^\n]*?|Master[^\n]*?|Doctor[^\n]*?|Ph\.?D\.?)[^\n]*?(?:in|of)[^\n]*?([A-Za-z\s]+)`, 1),
		rule(`(?i)([A-Za-z]+\s+(?:in|of)\s+[A-Za-z\s]+)`, 1),
		rule(`(?i)([A-Za-z]+\s+[A-Za-z]+\s+Degree)`, 1),
	}

	institutionTable = Table{
		rule(`(?i)(?:University|College|Institute|School)\s+of\s+[A-Za-z\s]+`, 0),
		rule(`(?i)([A-Z][A-Za-z]+\s+(?:University|College|Institute|School))`, 1),
		rule(`(?i)([A-Z][A-Za-z\s]+\s+(?:University|College|Institute|School))`, 1),
		rule(`(?i)([A-Z][A-Za-z\s&.,-]+)`, 1),
	}

	yearTable = Table{
		rule(`(?i)(20\d{2}|19\d{2})`, 1),
		rule(`(?i)(\d{2}/\d{2})`, 1),
		rule(`(?i)(\d{2}-\d{2})`, 1),
		rule(`(?i)(?:in|year|graduated)\s+(\d{4})`, 1),
	}
)

const minInstitutionLen = 5

// EducationHistory returns the degrees found in the education section (or the
// whole text). Degrees and institutions are paired by position.
func EducationHistory(text string) []model.Degree {
	scope := section.Education.Locate(text)
	degrees := degreeTable.All(scope)
	institutions := schools(institutionTable.All(scope))
	years := yearTable.All(scope)

	yearAt := func(i int) string {
		switch {
		case i < len(years):
			return years[i]
		case len(years) > 0:
			return years[0]
		default:
			return "Present"
		}
	}

	var out []model.Degree
	switch {
	case len(degrees) > 0 && len(institutions) > 0:
		for i := 0; i < min(len(degrees), len(institutions)); i++ {
			out = append(out, model.Degree{Degree: degrees[i], Institution: institutions[i], Year: yearAt(i)})
		}
	case len(institutions) > 0:
		for i, inst := range institutions[:min(maxEducation, len(institutions))] {
			out = append(out, model.Degree{Degree: "Degree", Institution: inst, Year: yearAt(i)})
		}
	case len(degrees) > 0:
		for i, d := range degrees[:min(maxEducation, len(degrees))] {
			out = append(out, model.Degree{Degree: d, Institution: "University", Year: yearAt(i)})
		}
	}
	return out
}

// schools drops candidates that look like companies or are too short, unless
// that would drop all of them.
func schools(candidates []string) []string {
	var kept []string
	for _, c := range candidates {
		if companyLikeWords.MatchString(c) || utf8.RuneCountInString(c) < minInstitutionLen {
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		return candidates
	}
	return kept
}

// Education returns the flat form of EducationHistory, at most two entries.
func Education(text string) string {
	return model.JoinEntries(EducationHistory(text), maxEducation)
}

var projectRules = []pairRule{
	pair(`(?m)([A-Z][A-Za-z0-9\s]+)(?::|-)([^\n]+)`, 1, 2),
	pair(`(?m)([A-Z][A-Za-z0-9\s]+)\s*\(([^\)]+)\)`, 1, 2),
	pair(`(?m)(?:•|\*|-)\s*([A-Z][A-Za-z0-9\s]+)(?::|-)([^\n]+)`, 1, 2),
	pair(`(?m)(?:•|\*|-)\s*([A-Z][A-Za-z0-9\s]+)\s*\(([^\)]+)\)`, 1, 2),
	pair(`(?m)(?:•|\*|-)\s*([A-Z][A-Za-z0-9\s]+)[^\n]*`, 1, 0),
}

// ProjectList returns the projects of the projects section. Without such a
// section there are no projects.
func ProjectList(text string) []model.Project {
	scope, ok := section.Projects.Find(text)
	if !ok {
		return nil
	}
	var out []model.Project
	for _, r := range projectRules {
		for _, m := range r.matches(scope) {
			p := model.Project{Name: m[0], Description: m[1]}
			// A blank description ("Foo:   ") also gets the default.
			if p.Description == "" {
				p.Description = projectDefaultDesc
			}
			out = append(out, p)
		}
	}
	return out
}

// Projects returns the flat form of ProjectList, at most three entries.
func Projects(text string) string {
	return model.JoinEntries(ProjectList(text), maxProjects)
}
