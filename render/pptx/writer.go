// Package pptx writes PresentationML (.pptx) packages with archive/zip.
// Decks are 16:9 and composed of filled rectangles and text boxes, which
// covers every built-in slide design.
package pptx

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

// Slide dimensions in EMU (16:9).
const (
	SlideWidth  = 12192000
	SlideHeight = 6858000
	emuPerInch  = 914400
)

// Inches converts inches to EMU.
func Inches(in float64) int64 { return int64(in * emuPerInch) }

// Fill is a solid or two-stop linear gradient fill.
type Fill struct {
	Color     string // RRGGBB
	GradTo    string // second gradient stop; empty means solid
	GradAngle int    // degrees, clockwise from horizontal
}

// Rect is a filled rectangle shape.
type Rect struct {
	X, Y, W, H int64
	Fill       Fill
}

// TextRun is a formatted span inside a paragraph.
type TextRun struct {
	Text  string
	Size  float64 // points
	Bold  bool
	Ital  bool
	Color string // RRGGBB
	Font  string
}

// TextPara is one paragraph in a text box.
type TextPara struct {
	Align  string // l, ctr, r
	Bullet bool
	Runs   []TextRun
}

// TextBox is a borderless text frame.
type TextBox struct {
	X, Y, W, H int64
	Anchor     string // t, ctr, b
	Paras      []TextPara
}

type shape interface{ isShape() }

func (Rect) isShape()    {}
func (TextBox) isShape() {}

// Slide is an ordered list of shapes over an optional background fill.
type Slide struct {
	Background Fill
	shapes     []shape
}

// AddRect appends a rectangle.
func (s *Slide) AddRect(r Rect) { s.shapes = append(s.shapes, r) }

// AddText appends a text box.
func (s *Slide) AddText(t TextBox) { s.shapes = append(s.shapes, t) }

// Text is a shorthand for a single-paragraph text box.
func (s *Slide) Text(x, y, w, h int64, run TextRun) {
	s.AddText(TextBox{X: x, Y: y, W: w, H: h, Paras: []TextPara{{Runs: []TextRun{run}}}})
}

// Presentation accumulates slides and writes the .pptx package.
type Presentation struct {
	Title   string
	Author  string
	Created time.Time
	slides  []*Slide
}

// New creates an empty presentation.
func New() *Presentation {
	return &Presentation{Author: "Doc Studio", Created: time.Now()}
}

// AddSlide appends a slide and returns it for population.
func (p *Presentation) AddSlide() *Slide {
	s := &Slide{}
	p.slides = append(p.slides, s)
	return s
}

// SlideCount reports the number of slides added so far.
func (p *Presentation) SlideCount() int { return len(p.slides) }

func esc(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func (f Fill) xml() string {
	if f.Color == "" {
		return "<a:noFill/>"
	}
	if f.GradTo == "" {
		return fmt.Sprintf(`<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, f.Color)
	}
	// angle is in 60000ths of a degree
	return fmt.Sprintf(`<a:gradFill><a:gsLst>`+
		`<a:gs pos="0"><a:srgbClr val="%s"/></a:gs>`+
		`<a:gs pos="100000"><a:srgbClr val="%s"/></a:gs>`+
		`</a:gsLst><a:lin ang="%d" scaled="1"/></a:gradFill>`,
		f.Color, f.GradTo, f.GradAngle*60000)
}

func (r TextRun) xml() string {
	var props strings.Builder
	size := r.Size
	if size == 0 {
		size = 18
	}
	// sz is in hundredths of a point
	fmt.Fprintf(&props, ` sz="%d"`, int(size*100))
	if r.Bold {
		props.WriteString(` b="1"`)
	}
	if r.Ital {
		props.WriteString(` i="1"`)
	}
	var children strings.Builder
	if r.Color != "" {
		fmt.Fprintf(&children, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, r.Color)
	}
	if r.Font != "" {
		fmt.Fprintf(&children, `<a:latin typeface="%s"/>`, esc(r.Font))
	}
	return fmt.Sprintf(`<a:r><a:rPr lang="en-US"%s dirty="0">%s</a:rPr><a:t>%s</a:t></a:r>`,
		props.String(), children.String(), esc(r.Text))
}

func (p TextPara) xml() string {
	var pPr strings.Builder
	if p.Align != "" {
		fmt.Fprintf(&pPr, ` algn="%s"`, p.Align)
	}
	bullet := "<a:buNone/>"
	if p.Bullet {
		bullet = `<a:buChar char="•"/>`
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<a:p><a:pPr%s>%s</a:pPr>`, pPr.String(), bullet)
	for _, r := range p.Runs {
		b.WriteString(r.xml())
	}
	b.WriteString("</a:p>")
	return b.String()
}

func shapeXML(id int, s shape) string {
	switch v := s.(type) {
	case Rect:
		return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Rect %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`+
			`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>%s<a:ln><a:noFill/></a:ln></p:spPr>`+
			`<p:txBody><a:bodyPr/><a:lstStyle/><a:p/></p:txBody></p:sp>`,
			id, id, v.X, v.Y, v.W, v.H, v.Fill.xml())
	case TextBox:
		anchor := v.Anchor
		if anchor == "" {
			anchor = "t"
		}
		var paras strings.Builder
		for _, para := range v.Paras {
			paras.WriteString(para.xml())
		}
		return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Text %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`+
			`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`+
			`<p:txBody><a:bodyPr wrap="square" anchor="%s"/><a:lstStyle/>%s</p:txBody></p:sp>`,
			id, id, v.X, v.Y, v.W, v.H, anchor, paras.String())
	}
	return ""
}

func (s *Slide) xml() string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
		` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
		` xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	b.WriteString(`<p:cSld>`)
	if s.Background.Color != "" {
		b.WriteString(`<p:bg><p:bgPr>` + s.Background.xml() + `<a:effectLst/></p:bgPr></p:bg>`)
	}
	b.WriteString(`<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
		`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/>` +
		`<a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)
	for i, sh := range s.shapes {
		b.WriteString(shapeXML(i+2, sh))
	}
	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:overrideClrMapping bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/></p:clrMapOvr></p:sld>`)
	return b.String()
}

func (p *Presentation) contentTypesXML() string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>` +
		`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>` +
		`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>` +
		`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>` +
		`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
		`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`)
	for i := range p.slides {
		fmt.Fprintf(&b, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i+1)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

const rootRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`

func (p *Presentation) presentationXML() string {
	var slides strings.Builder
	for i := range p.slides {
		// rId1 is the slide master
		fmt.Fprintf(&slides, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+2)
	}
	return xml.Header + fmt.Sprintf(`<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`+
		` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`+
		` xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`+
		`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`+
		`<p:sldIdLst>%s</p:sldIdLst>`+
		`<p:sldSz cx="%d" cy="%d"/><p:notesSz cx="%d" cy="%d"/>`+
		`</p:presentation>`, slides.String(), SlideWidth, SlideHeight, SlideHeight, SlideWidth)
}

func (p *Presentation) presentationRelsXML() string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	for i := range p.slides {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, i+2, i+1)
	}
	fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="theme/theme1.xml"/>`, len(p.slides)+2)
	b.WriteString(`</Relationships>`)
	return b.String()
}

const slideMasterXML = xml.Header + `<p:sldMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
	`<p:cSld><p:bg><p:bgPr><a:solidFill><a:srgbClr val="FFFFFF"/></a:solidFill><a:effectLst/></p:bgPr></p:bg>` +
	`<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>` +
	`</p:spTree></p:cSld>` +
	`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
	`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
	`</p:sldMaster>`

const slideMasterRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/>` +
	`</Relationships>`

const slideLayoutXML = xml.Header + `<p:sldLayout xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" type="blank">` +
	`<p:cSld name="Blank"><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>` +
	`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`

const slideLayoutRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/>` +
	`</Relationships>`

const slideRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
	`</Relationships>`

const themeXML = xml.Header + `<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Doc Studio">` +
	`<a:themeElements><a:clrScheme name="Doc Studio">` +
	`<a:dk1><a:srgbClr val="1A202C"/></a:dk1><a:lt1><a:srgbClr val="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="2D3748"/></a:dk2><a:lt2><a:srgbClr val="F7FAFC"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="1E3A5F"/></a:accent1><a:accent2><a:srgbClr val="D69E2E"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="2C5282"/></a:accent3><a:accent4><a:srgbClr val="718096"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="C53030"/></a:accent5><a:accent6><a:srgbClr val="2F855A"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="2B6CB0"/></a:hlink><a:folHlink><a:srgbClr val="553C9A"/></a:folHlink>` +
	`</a:clrScheme>` +
	`<a:fontScheme name="Doc Studio"><a:majorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont></a:fontScheme>` +
	`<a:fmtScheme name="Office"><a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst>` +
	`<a:lnStyleLst><a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst>` +
	`<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>` +
	`<a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst>` +
	`</a:fmtScheme></a:themeElements></a:theme>`

func (p *Presentation) coreXML() string {
	created := p.Created.UTC().Format(time.RFC3339)
	return xml.Header + fmt.Sprintf(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`+
		`<dc:title>%s</dc:title><dc:creator>%s</dc:creator>`+
		`<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`+
		`<dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>`+
		`</cp:coreProperties>`, esc(p.Title), esc(p.Author), created, created)
}

const appXML = xml.Header + `<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
	`<Application>Doc Studio</Application></Properties>`

type part struct {
	name    string
	content string
}

// WriteTo writes the complete package.
func (p *Presentation) WriteTo(w io.Writer) error {
	zw := zip.NewWriter(w)
	parts := []part{
		{"[Content_Types].xml", p.contentTypesXML()},
		{"_rels/.rels", rootRelsXML},
		{"ppt/presentation.xml", p.presentationXML()},
		{"ppt/_rels/presentation.xml.rels", p.presentationRelsXML()},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML},
		{"ppt/theme/theme1.xml", themeXML},
		{"docProps/core.xml", p.coreXML()},
		{"docProps/app.xml", appXML},
	}
	for i, slide := range p.slides {
		parts = append(parts,
			part{fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slide.xml()},
			part{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), slideRelsXML},
		)
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
func (p *Presentation) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the package to path, creating parent directories.
func (p *Presentation) Save(path string) error {
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
	return p.WriteTo(f)
}
