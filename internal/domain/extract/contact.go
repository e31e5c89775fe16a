package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	emailTable = Table{rule(`[\w.-]+@[\w.-]+\.[a-zA-Z]{2,}`, 0)}
	phoneTable = Table{rule(`(\+\d{1,3}[- ]?)?\(?\d{3}\)?[- ]?\d{3}[- ]?\d{4}`, 0)}
)

// Email returns the first e-mail address in text.
func Email(text string) string {
	v, _ := emailTable.First(text)
	return v
}

// Phone returns the first phone number in text.
func Phone(text string) string {
	v, _ := phoneTable.First(text)
	return v
}

// Name patterns keep a name on one line: words are separated by blanks, not
// by line breaks.
var nameTable = Table{
	rule(`(?im)(?:name|Name)[,:][ \t]*([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)+)[.,]?`, 1),
	rule(`(?im)(?:name:|^)\s*([A-Z][a-z]+([ \t][A-Z][a-z]+)+)`, 1),
	rule(`(?im)^([A-Z][a-z]+[ \t]+[A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)?)[ \t]*$`, 1),
	rule(`(?im)^([A-Z][A-Z]+[ \t]+[A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)?)[ \t]*$`, 1),
	rule(`(?im)(?:name:|resume of:|cv of:|curriculum vitae:|profile:)[ \t]*([A-Z][a-z]+[ \t]+[A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)?)`, 1),
	rule(`(?im)([A-Z][a-z]+[ \t]+[A-Z]\.[ \t]+[A-Z][a-z]+)`, 1),
}

var nameLabel = regexp.MustCompile(`(?i)^Name[,:]\s*(.+?)[.,]?$`)

const nameScanLines = 10

// Name returns the candidate's full name. When no pattern matches it looks at
// the first lines for a "Name, X" label or a short line of capitalized words.
func Name(text string) string {
	if v, ok := nameTable.First(text); ok {
		return v
	}
	lines := strings.Split(text, "\n")
	if len(lines) > nameScanLines {
		lines = lines[:nameScanLines]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if m := nameLabel.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}
		words := strings.Fields(line)
		if len(words) == 0 || len(words) > 4 {
			continue
		}
		capitalized := true
		for _, w := range words {
			r, _ := utf8.DecodeRuneInString(w)
			if !unicode.IsUpper(r) {
				capitalized = false
				break
			}
		}
		if capitalized {
			return line
		}
	}
	return ""
}

var locationTable = Table{
	rule(`(?i)(?:location|address|city|state):\s*([^\n,]+(?:,\s*[^\n]+){0,2})`, 1),
	rule(`(?i)([A-Z][a-z]+(?:,\s*[A-Z]{2})(?:,\s*\d{5})?)`, 1),
	rule(`(?i)([A-Z][a-z]+(?:,\s*[A-Z][a-z]+))`, 1),
	rule(`(?i)([A-Z][a-z]+(?:,\s*[A-Z]{2}))`, 1),
	rule(`(?i)([A-Z][a-z]+,\s*[A-Z][a-z]+)`, 1),
	rule(`(?i)(?:located in|based in|living in)\s+([A-Z][a-z]+(?:[,\s]+[A-Z][a-z]+)*)`, 1),
	rule(`(?i)(?:^|\n)([A-Z][a-z]+(?:[,\s]+[A-Z][a-z]+){1,2})(?:$|\n)`, 1),
}

var (
	contactKeyword = regexp.MustCompile(`(?i)(?:contact|email|phone|tel|mobile)[^\n]{0,50}`)
	commonCities   = regexp.MustCompile(`(?i)(?:New York|Los Angeles|Chicago|Houston|Phoenix|Philadelphia|San Antonio|San Diego|Dallas|San Jose|Austin|Jacksonville|Fort Worth|Columbus|San Francisco|Charlotte|Indianapolis|Seattle|Denver|Washington|Boston|El Paso|Nashville|Detroit|Portland|Las Vegas|Memphis|Louisville|Baltimore|Milwaukee|Albuquerque|Tucson|Fresno|Sacramento|Long Beach|Kansas City|Mesa|Atlanta|Colorado Springs|Raleigh|Omaha|Miami|Oakland|Minneapolis|Tulsa|Cleveland|Wichita|Arlington|New Orleans|Bakersfield|Tampa|Honolulu|Aurora|Anaheim|Santa Ana|St\. Louis|Riverside|Corpus Christi|Lexington|Pittsburgh|Anchorage|Stockton|Cincinnati|Saint Paul|Toledo|Newark|Greensboro|Plano|Henderson|Lincoln|Buffalo|Fort Wayne|Jersey City|Chula Vista|Orlando|St\. Petersburg|Norfolk|Chandler|Laredo|Madison|Durham|Lubbock|Winston-Salem|Garland|Glendale|Hialeah|Reno|Baton Rouge|Irvine|Chesapeake|Irving|Scottsdale|North Las Vegas|Fremont|Gilbert|San Bernardino|Boise|Birmingham)`)
)

const cityWindow = 100

// Location returns where the candidate is based. name is the already
// extracted full name; a candidate that overlaps the name in the text, or
// that directly follows a name label, is rejected.
func Location(text, name string) string {
	nameAt := -1
	if name != "" {
		nameAt = strings.Index(text, name)
	}
	for _, r := range locationTable {
		m := r.Re.FindStringSubmatchIndex(text)
		if m == nil || m[2*r.Group] < 0 {
			continue
		}
		start, end := m[2*r.Group], m[2*r.Group+1]
		if nameAt >= 0 && start < nameAt+len(name) && nameAt < end {
			continue
		}
		loc := strings.TrimSpace(text[start:end])
		if loc == "" || labelled(text, loc) {
			continue
		}
		return loc
	}

	span := contactKeyword.FindStringIndex(text)
	if span == nil {
		return ""
	}
	start := max(0, span[0]-cityWindow)
	end := min(len(text), span[1]+cityWindow)
	return commonCities.FindString(text[start:end])
}

// labelled reports whether loc directly follows a name label, which makes it
// part of the name rather than a place.
func labelled(text, loc string) bool {
	re := regexp.MustCompile(`(?i)(?:name:|resume of:|cv of:|curriculum vitae:|profile:)\s*` + regexp.QuoteMeta(loc))
	return re.MatchString(text)
}

// Summary returns the first line longer than 50 characters.
func Summary(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if utf8.RuneCountInString(line) > 50 {
			return strings.TrimSpace(line)
		}
	}
	return ""
}
