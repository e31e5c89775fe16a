// Package docx writes rendered blocks as a minimal WordprocessingML package.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/okian/cvparse/internal/domain/render"
)

// ContentType is the media type of a .docx file.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Name returns a fresh document name.
func Name() string {
	return "resume_" + uuid.NewString() + ".docx"
}

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const packageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

type val struct {
	Val string `xml:"w:val,attr"`
}

type fonts struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
}

type runProps struct {
	Fonts  *fonts    `xml:"w:rFonts,omitempty"`
	Bold   *struct{} `xml:"w:b,omitempty"`
	Italic *struct{} `xml:"w:i,omitempty"`
	Size   *val      `xml:"w:sz,omitempty"`
}

type text struct {
	Space string `xml:"xml:space,attr"`
	Value string `xml:",chardata"`
}

type run struct {
	Props runProps `xml:"w:rPr"`
	Text  text     `xml:"w:t"`
}

type paraProps struct {
	Style   *val `xml:"w:pStyle,omitempty"`
	Justify *val `xml:"w:jc,omitempty"`
}

type paragraph struct {
	Props paraProps `xml:"w:pPr"`
	Runs  []run     `xml:"w:r"`
}

type document struct {
	XMLName xml.Name    `xml:"w:document"`
	NS      string      `xml:"xmlns:w,attr"`
	Body    []paragraph `xml:"w:body>w:p"`
}

type style struct {
	Type    string   `xml:"w:type,attr"`
	ID      string   `xml:"w:styleId,attr"`
	Name    val      `xml:"w:name"`
	BasedOn *val     `xml:"w:basedOn,omitempty"`
	Run     runProps `xml:"w:rPr"`
}

type styles struct {
	XMLName xml.Name `xml:"w:styles"`
	NS      string   `xml:"xmlns:w,attr"`
	Styles  []style  `xml:"w:style"`
}

var (
	on     = &struct{}{}
	calibri = &fonts{ASCII: render.Font, HAnsi: render.Font}
)

func halfPoints(size int) *val {
	return &val{Val: fmt.Sprint(size * 2)}
}

func paragraphStyle(id string, size int, bold bool) style {
	s := style{
		Type: "paragraph",
		ID:   id,
		Name: val{Val: id},
		Run:  runProps{Fonts: calibri, Size: halfPoints(size)},
	}
	if id != string(render.StylePlain) {
		s.BasedOn = &val{Val: string(render.StylePlain)}
	}
	if bold {
		s.Run.Bold = on
	}
	return s
}

func styleSheet() styles {
	return styles{
		NS: wordNS,
		Styles: []style{
			paragraphStyle(string(render.StylePlain), render.SizeNormal, false),
			paragraphStyle(string(render.StyleTitle), render.SizeTitle, true),
			paragraphStyle(string(render.StyleHeading), render.SizeHeading, true),
			paragraphStyle(string(render.StyleSubheading), render.SizeSubheading, true),
			paragraphStyle(string(render.StyleNormal), render.SizeNormal, false),
		},
	}
}

func toParagraph(b render.Block) paragraph {
	p := paragraph{Props: paraProps{Style: &val{Val: string(b.Style)}}}
	if b.Align == render.AlignCenter {
		p.Props.Justify = &val{Val: "center"}
	}
	r := run{
		Props: runProps{Fonts: calibri},
		Text:  text{Space: "preserve", Value: b.Text},
	}
	if b.Bold {
		r.Props.Bold = on
	}
	if b.Italic {
		r.Props.Italic = on
	}
	if b.Size > 0 {
		r.Props.Size = halfPoints(b.Size)
	}
	p.Runs = []run{r}
	return p
}

// Write encodes blocks as a .docx package to w.
func Write(w io.Writer, blocks []render.Block) error {
	doc := document{NS: wordNS, Body: make([]paragraph, len(blocks))}
	for i, b := range blocks {
		doc.Body[i] = toParagraph(b)
	}

	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		body any
	}{
		{"[Content_Types].xml", contentTypes},
		{"_rels/.rels", packageRels},
		{"word/_rels/document.xml.rels", documentRels},
		{"word/styles.xml", styleSheet()},
		{"word/document.xml", doc},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("create %s: %w", p.name, err)
		}
		if err := writePart(f, p.body); err != nil {
			return fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	return zw.Close()
}

func writePart(w io.Writer, body any) error {
	if s, ok := body.(string); ok {
		_, err := io.WriteString(w, s)
		return err
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(body)
}

// Bytes returns blocks encoded as a .docx package.
func Bytes(blocks []render.Block) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, blocks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
