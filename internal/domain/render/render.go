// Package render lays a model.Record out as an ordered list of styled text
// blocks. It knows nothing about file formats; the docx adapter turns blocks
// into a document.
package render

import (
	"fmt"
	"strings"

	"github.com/okian/cvparse/internal/domain/model"
)

// Style names a paragraph style.
type Style string

const (
	StyleTitle      Style = "Title"
	StyleHeading    Style = "ResumeHeading"
	StyleSubheading Style = "ResumeSubheading"
	StyleNormal     Style = "ResumeNormal"
	StylePlain      Style = "Normal"
)

// Align is a paragraph alignment.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// Font used by every style.
const Font = "Calibri"

// Point sizes per style.
const (
	SizeTitle      = 18
	SizeFieldLine  = 12
	SizeHeading    = 16
	SizeSubheading = 14
	SizeNormal     = 11
)

const (
	unnamed   = "Unnamed"
	separator = 80
)

// Block is one paragraph of output.
type Block struct {
	Text   string
	Style  Style
	Align  Align
	Bold   bool
	Italic bool
	Size   int // points
}

func heading(text string) Block {
	return Block{Text: text, Style: StyleHeading, Align: AlignLeft, Bold: true, Size: SizeHeading}
}

func subheading(text string) Block {
	return Block{Text: text, Style: StyleSubheading, Align: AlignLeft, Bold: true, Size: SizeSubheading}
}

func normal(text string) Block {
	return Block{Text: text, Style: StyleNormal, Align: AlignLeft, Size: SizeNormal}
}

// Blocks renders rec. The header, summary, skills, experience and education
// sections are always present; projects, certifications and languages only
// when they have content.
func Blocks(rec model.Record) []Block {
	name := rec.FullName
	if strings.TrimSpace(name) == "" {
		name = unnamed
	}
	out := []Block{
		{Text: name, Style: StyleTitle, Align: AlignCenter, Bold: true, Size: SizeTitle},
		{Text: fmt.Sprintf("%s | %s | %s", rec.Email, rec.Phone, rec.Location), Style: StylePlain, Align: AlignCenter, Size: SizeNormal},
		{Text: fmt.Sprintf("%s - %s (%s years)", rec.FieldOfWork, rec.ExperienceLevel, rec.YearsOfExperience), Style: StylePlain, Align: AlignCenter, Italic: true, Size: SizeFieldLine},
		{Text: strings.Repeat("_", separator), Style: StylePlain, Align: AlignLeft, Size: SizeNormal},
		heading("PROFESSIONAL SUMMARY"),
		normal(rec.Summary),
		heading("SKILLS"),
		normal(rec.Skills),
		heading("WORK EXPERIENCE"),
	}

	for _, e := range model.SplitEntries(rec.Experience) {
		parts := model.SplitParts(e, 3)
		if len(parts) < 2 {
			out = append(out, normal(e))
			continue
		}
		out = append(out, subheading(parts[0]+" - "+parts[1]))
		if len(parts) > 2 {
			out = append(out, normal(parts[2]))
		}
	}

	out = append(out, heading("EDUCATION"))
	for _, e := range model.SplitEntries(rec.Education) {
		parts := model.SplitParts(e, 0)
		if len(parts) < 2 {
			out = append(out, normal(e))
			continue
		}
		out = append(out, subheading(parts[0]+", "+parts[1]))
		if len(parts) > 2 {
			out = append(out, normal("Graduation Year: "+parts[2]))
		}
	}

	if strings.TrimSpace(rec.Projects) != "" {
		out = append(out, heading("PROJECTS"))
		for _, e := range model.SplitEntries(rec.Projects) {
			parts := model.SplitParts(e, 2)
			out = append(out, subheading(parts[0]))
			if len(parts) > 1 {
				out = append(out, normal(parts[1]))
			}
		}
	}

	if strings.TrimSpace(rec.Certifications) != "" {
		out = append(out, heading("CERTIFICATIONS"))
		for _, c := range model.SplitList(rec.Certifications) {
			out = append(out, normal(c))
		}
	}

	if strings.TrimSpace(rec.Languages) != "" {
		out = append(out, heading("LANGUAGES"), normal(rec.Languages))
	}
	return out
}

// Text flattens blocks into plain lines, one per block.
func Text(blocks []Block) string {
	lines := make([]string, len(blocks))
	for i, b := range blocks {
		lines[i] = b.Text
	}
	return strings.Join(lines, "\n")
}
