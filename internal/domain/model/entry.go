package model

import "strings"

// Delimiters of the flat composite encoding: sub-fields inside one entry are
// joined by PartSep, entries by EntrySep.
const (
	PartSep  = ", "
	EntrySep = " | "
)

// Employment is one work history entry.
type Employment struct {
	Company     string
	Position    string
	Description string
}

// String renders "company, position, description".
func (j Employment) String() string {
	return strings.Join([]string{j.Company, j.Position, j.Description}, PartSep)
}

// Degree is one education entry.
type Degree struct {
	Degree      string
	Institution string
	Year        string
}

// String renders "degree, institution, year".
func (d Degree) String() string {
	return strings.Join([]string{d.Degree, d.Institution, d.Year}, PartSep)
}

// Project is one portfolio entry.
type Project struct {
	Name        string
	Description string
}

// String renders "name, description".
func (p Project) String() string {
	return p.Name + PartSep + p.Description
}

// JoinEntries flattens entries into one value, keeping the first occurrence
// of each distinct rendering and at most limit of them (limit <= 0 means no
// cap).
func JoinEntries[T interface{ String() string }](entries []T, limit int) string {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		s := e.String()
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return strings.Join(out, EntrySep)
}

// SplitEntries splits a flat value on "|" and trims each entry. Blank entries
// are dropped.
func SplitEntries(v string) []string {
	var out []string
	for _, e := range strings.Split(v, "|") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// SplitParts splits one entry on "," into at most n trimmed parts; the last
// part keeps any remaining commas. n <= 0 means no limit.
func SplitParts(entry string, n int) []string {
	if n <= 0 {
		n = -1
	}
	parts := strings.SplitN(entry, ",", n)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(v string) []string {
	var out []string
	for _, p := range SplitParts(v, 0) {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
