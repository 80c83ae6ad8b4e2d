// Package docx writes WordprocessingML (.docx) packages directly with
// archive/zip, enough for the built-in Word designs: styled paragraphs,
// headings, tables and core document properties.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Run is a formatted span of text within a paragraph.
type Run struct {
	Text  string
	Bold  bool
	Ital  bool
	Size  float64 // points; 0 means inherit
	Color string  // RRGGBB hex without '#'
	Font  string
}

// Paragraph is a block of runs with an optional named style.
type Paragraph struct {
	Style string // Title, Heading1, Heading2, or empty for Normal
	Align string // left, center, right
	Runs  []Run
}

// Table is a simple grid with a styled header row.
type Table struct {
	Header     []string
	Rows       [][]string
	HeaderFill string // RRGGBB, defaults to 1E3A5F
}

type block interface{ isBlock() }

func (Paragraph) isBlock() {}
func (Table) isBlock()     {}

// CoreProperties populate docProps/core.xml.
type CoreProperties struct {
	Title   string
	Author  string
	Created time.Time
}

// Document accumulates blocks and writes the .docx package.
type Document struct {
	Props  CoreProperties
	blocks []block
}

// New creates an empty document.
func New() *Document {
	return &Document{Props: CoreProperties{Author: "Doc Studio", Created: time.Now()}}
}

// AddParagraph appends a plain paragraph.
func (d *Document) AddParagraph(text string) {
	d.blocks = append(d.blocks, Paragraph{Runs: []Run{{Text: text}}})
}

// AddHeading appends a heading paragraph at the given level (0 = Title).
func (d *Document) AddHeading(text string, level int) {
	style := "Title"
	if level > 0 {
		style = fmt.Sprintf("Heading%d", level)
	}
	d.blocks = append(d.blocks, Paragraph{Style: style, Runs: []Run{{Text: text}}})
}

// Add appends an arbitrary paragraph.
func (d *Document) Add(p Paragraph) {
	d.blocks = append(d.blocks, p)
}

// AddTable appends a table.
func (d *Document) AddTable(t Table) {
	d.blocks = append(d.blocks, t)
}

func esc(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func (r Run) xml() string {
	var props strings.Builder
	if r.Bold {
		props.WriteString(`<w:b/>`)
	}
	if r.Ital {
		props.WriteString(`<w:i/>`)
	}
	if r.Size > 0 {
		// sz is measured in half-points
		fmt.Fprintf(&props, `<w:sz w:val="%d"/>`, int(r.Size*2))
	}
	if r.Color != "" {
		fmt.Fprintf(&props, `<w:color w:val="%s"/>`, r.Color)
	}
	if r.Font != "" {
		fmt.Fprintf(&props, `<w:rFonts w:ascii="%s" w:hAnsi="%s"/>`, esc(r.Font), esc(r.Font))
	}
	rPr := ""
	if props.Len() > 0 {
		rPr = "<w:rPr>" + props.String() + "</w:rPr>"
	}
	return fmt.Sprintf(`<w:r>%s<w:t xml:space="preserve">%s</w:t></w:r>`, rPr, esc(r.Text))
}

func (p Paragraph) xml() string {
	var pPr strings.Builder
	if p.Style != "" {
		fmt.Fprintf(&pPr, `<w:pStyle w:val="%s"/>`, p.Style)
	}
	if p.Align != "" {
		fmt.Fprintf(&pPr, `<w:jc w:val="%s"/>`, p.Align)
	}
	var b strings.Builder
	b.WriteString("<w:p>")
	if pPr.Len() > 0 {
		b.WriteString("<w:pPr>" + pPr.String() + "</w:pPr>")
	}
	for _, r := range p.Runs {
		b.WriteString(r.xml())
	}
	b.WriteString("</w:p>")
	return b.String()
}

func (t Table) xml() string {
	fill := t.HeaderFill
	if fill == "" {
		fill = "1E3A5F"
	}
	var b strings.Builder
	b.WriteString(`<w:tbl><w:tblPr><w:tblStyle w:val="TableGrid"/>` +
		`<w:tblW w:w="5000" w:type="pct"/>` +
		`<w:tblBorders>` +
		`<w:top w:val="single" w:sz="4" w:color="CCCCCC"/>` +
		`<w:bottom w:val="single" w:sz="4" w:color="CCCCCC"/>` +
		`<w:left w:val="single" w:sz="4" w:color="CCCCCC"/>` +
		`<w:right w:val="single" w:sz="4" w:color="CCCCCC"/>` +
		`<w:insideH w:val="single" w:sz="4" w:color="CCCCCC"/>` +
		`<w:insideV w:val="single" w:sz="4" w:color="CCCCCC"/>` +
		`</w:tblBorders></w:tblPr>`)

	cell := func(text string, header bool) string {
		var c strings.Builder
		c.WriteString("<w:tc><w:tcPr>")
		if header {
			fmt.Fprintf(&c, `<w:shd w:val="clear" w:fill="%s"/>`, fill)
		}
		c.WriteString("</w:tcPr>")
		run := Run{Text: text}
		if header {
			run.Bold = true
			run.Color = "FFFFFF"
		}
		c.WriteString(Paragraph{Runs: []Run{run}}.xml())
		c.WriteString("</w:tc>")
		return c.String()
	}

	if len(t.Header) > 0 {
		b.WriteString("<w:tr>")
		for _, h := range t.Header {
			b.WriteString(cell(h, true))
		}
		b.WriteString("</w:tr>")
	}
	for _, row := range t.Rows {
		b.WriteString("<w:tr>")
		for _, v := range row {
			b.WriteString(cell(v, false))
		}
		b.WriteString("</w:tr>")
	}
	b.WriteString("</w:tbl>")
	return b.String()
}

func (d *Document) documentXML() string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, blk := range d.blocks {
		switch v := blk.(type) {
		case Paragraph:
			b.WriteString(v.xml())
		case Table:
			b.WriteString(v.xml())
			// Word requires a paragraph between/after tables
			b.WriteString("<w:p/>")
		}
	}
	b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>` +
		`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440"/></w:sectPr>`)
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>
<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>
</Types>`

const rootRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>
<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>
</Relationships>`

const documentRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

const stylesXML = xml.Header + `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/>
<w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri"/><w:sz w:val="22"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/>
<w:pPr><w:spacing w:after="240"/></w:pPr>
<w:rPr><w:b/><w:sz w:val="56"/><w:color w:val="1E3A5F"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/>
<w:pPr><w:outlineLvl w:val="0"/><w:spacing w:before="240" w:after="120"/></w:pPr>
<w:rPr><w:b/><w:sz w:val="32"/><w:color w:val="1E3A5F"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/>
<w:pPr><w:outlineLvl w:val="1"/><w:spacing w:before="200" w:after="100"/></w:pPr>
<w:rPr><w:b/><w:sz w:val="26"/><w:color w:val="2C5282"/></w:rPr></w:style>
<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/></w:style>
</w:styles>`

func (d *Document) coreXML() string {
	created := d.Props.Created.UTC().Format(time.RFC3339)
	return xml.Header + fmt.Sprintf(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
<dc:title>%s</dc:title>
<dc:creator>%s</dc:creator>
<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>
<dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>
</cp:coreProperties>`, esc(d.Props.Title), esc(d.Props.Author), created, created)
}

const appXML = xml.Header + `<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">
<Application>Doc Studio</Application>
</Properties>`

// WriteTo writes the complete package.
func (d *Document) WriteTo(w io.Writer) error {
	zw := zip.NewWriter(w)
	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", rootRelsXML},
		{"word/document.xml", d.documentXML()},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"docProps/core.xml", d.coreXML()},
		{"docProps/app.xml", appXML},
	}
	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", part.name, err)
		}
		if _, err := f.Write([]byte(part.content)); err != nil {
			return fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}
	return zw.Close()
}

// Bytes returns the package as a byte slice.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the package to path, creating parent directories.
func (d *Document) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return d.WriteTo(f)
}
