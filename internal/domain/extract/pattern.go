// Package extract turns free-form résumé text into a model.Record.
//
// Every field is produced by its own extractor. Extractors read the raw text,
// optionally narrowed by the section package, and try an ordered table of
// patterns from most to least specific.
package extract

import (
	"regexp"
	"strings"
)

// Rule is one entry of a pattern table: a pattern and the capture group that
// holds the value. Group 0 is the whole match.
type Rule struct {
	Re    *regexp.Regexp
	Group int
}

func rule(expr string, group int) Rule {
	return Rule{Re: regexp.MustCompile(expr), Group: group}
}

// Table is an ordered pattern cascade.
type Table []Rule

// First returns the trimmed capture of the first rule that matches.
func (t Table) First(text string) (string, bool) {
	for _, r := range t {
		if m := r.Re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[r.Group]), true
		}
	}
	return "", false
}

// All returns the trimmed captures of every non-overlapping match of every
// rule, rule by rule.
func (t Table) All(text string) []string {
	var out []string
	for _, r := range t {
		for _, m := range r.Re.FindAllStringSubmatch(text, -1) {
			out = append(out, strings.TrimSpace(m[r.Group]))
		}
	}
	return out
}

// pairRule captures two related values, such as a company and a position.
// A group of 0 means the pattern does not capture that value.
type pairRule struct {
	re     *regexp.Regexp
	first  int
	second int
}

func pair(expr string, first, second int) pairRule {
	return pairRule{re: regexp.MustCompile(expr), first: first, second: second}
}

// matches returns (first, second) for every match; values are trimmed.
func (p pairRule) matches(text string) [][2]string {
	var out [][2]string
	for _, m := range p.re.FindAllStringSubmatch(text, -1) {
		var v [2]string
		if p.first > 0 {
			v[0] = strings.TrimSpace(m[p.first])
		}
		if p.second > 0 {
			v[1] = strings.TrimSpace(m[p.second])
		}
		out = append(out, v)
	}
	return out
}

// wordRe matches term as a whole token, case-insensitively. A side of the
// term that does not end in a word character (as in "C++") is bounded by a
// non-word character or the end of the text instead of \b.
func wordRe(term string) *regexp.Regexp {
	expr := regexp.QuoteMeta(term)
	if isWordByte(term[0]) {
		expr = `\b` + expr
	} else {
		expr = `(?:^|\W)` + expr
	}
	if isWordByte(term[len(term)-1]) {
		expr += `\b`
	} else {
		expr += `(?:\W|$)`
	}
	return regexp.MustCompile(`(?i)` + expr)
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
