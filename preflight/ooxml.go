package preflight

import (
	"archive/zip"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"
)

type zipPart struct {
	name string
	size uint64
}

// readParts opens an OOXML package and returns part names and uncompressed
// sizes plus the contents of selected parts. A wanted entry ending in "/"
// matches every part under that prefix.
func readParts(path string, wanted ...string) (parts []zipPart, contents map[string]string, err error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, err
	}
	defer zr.Close()

	contents = map[string]string{}
	for _, f := range zr.File {
		parts = append(parts, zipPart{name: f.Name, size: f.UncompressedSize64})
		for _, want := range wanted {
			if f.Name != want && !(strings.HasSuffix(want, "/") && strings.HasPrefix(f.Name, want)) {
				continue
			}
			rc, err := f.Open()
			if err != nil {
				return nil, nil, err
			}
			raw, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return nil, nil, err
			}
			contents[f.Name] = string(raw)
			break
		}
	}
	return parts, contents, nil
}

func corruptResult(kind string, err error) []Result {
	return []Result{{
		Check:         "metadata",
		Severity:      Error,
		Message:       fmt.Sprintf("%s package cannot be opened", kind),
		Details:       err.Error(),
		FixSuggestion: "regenerate the document; the output is corrupt",
	}}
}

func checkCoreMetadata(core string) []Result {
	var results []Result
	for _, field := range []string{"dc:title", "dc:creator"} {
		openTag := "<" + field + ">"
		closeTag := "</" + field + ">"
		start := strings.Index(core, openTag)
		end := strings.Index(core, closeTag)
		value := ""
		if start >= 0 && end > start {
			value = strings.TrimSpace(core[start+len(openTag) : end])
		}
		name := strings.TrimPrefix(field, "dc:")
		if value == "" {
			results = append(results, Result{
				Check:         "metadata",
				Severity:      Warning,
				Message:       fmt.Sprintf("document %s is not set", name),
				FixSuggestion: "set title and author in the template data",
			})
		} else {
			results = append(results, Result{
				Check:    "metadata",
				Severity: Info,
				Message:  fmt.Sprintf("%s: %s", name, value),
			})
		}
	}
	return results
}

// lowResMediaBytes is the uncompressed size below which an embedded image
// is treated as low resolution.
const lowResMediaBytes = 10 << 10

var typefaceRe = regexp.MustCompile(`<a:latin typeface="([^"]+)"`)

func (c *Checker) checkPPTX(path string) []Result {
	parts, contents, err := readParts(path, "docProps/core.xml", "ppt/slides/")
	if err != nil {
		return corruptResult("PPTX", err)
	}

	var results []Result
	slides := 0
	mediaCount, lowRes := 0, 0
	for _, part := range parts {
		if strings.HasPrefix(part.name, "ppt/slides/slide") && strings.HasSuffix(part.name, ".xml") {
			slides++
		}
		if strings.HasPrefix(part.name, "ppt/media/") {
			mediaCount++
			if part.size < lowResMediaBytes {
				lowRes++
			}
		}
	}

	if slides == 0 {
		results = append(results, Result{
			Check:         "accessibility",
			Severity:      Error,
			Message:       "presentation contains no slides",
			FixSuggestion: "regenerate with at least one section",
		})
	} else {
		results = append(results, Result{
			Check:    "accessibility",
			Severity: Info,
			Message:  fmt.Sprintf("presentation has %d slides", slides),
		})
	}

	if c.enabled("images") && mediaCount > 0 {
		if lowRes > 0 {
			results = append(results, Result{
				Check:         "images",
				Severity:      Warning,
				Message:       fmt.Sprintf("%d low resolution images detected", lowRes),
				FixSuggestion: "replace images with higher resolution versions",
			})
		} else {
			results = append(results, Result{
				Check:    "images",
				Severity: Info,
				Message:  fmt.Sprintf("%d embedded images have adequate resolution", mediaCount),
			})
		}
	}

	if c.enabled("fonts") {
		fonts := map[string]bool{}
		for name, slide := range contents {
			if !strings.HasPrefix(name, "ppt/slides/") {
				continue
			}
			for _, m := range typefaceRe.FindAllStringSubmatch(slide, -1) {
				fonts[m[1]] = true
			}
		}
		if len(fonts) > 0 {
			names := lo.Keys(fonts)
			sort.Strings(names)
			results = append(results, Result{
				Check:    "fonts",
				Severity: Info,
				Message:  "fonts used: " + strings.Join(names, ", "),
			})
		}
	}

	if c.enabled("metadata") {
		results = append(results, checkCoreMetadata(contents["docProps/core.xml"])...)
	}
	return results
}

func (c *Checker) checkDOCX(path string) []Result {
	_, contents, err := readParts(path, "docProps/core.xml", "word/document.xml")
	if err != nil {
		return corruptResult("DOCX", err)
	}

	var results []Result
	body := contents["word/document.xml"]
	if body == "" {
		results = append(results, Result{
			Check:    "accessibility",
			Severity: Error,
			Message:  "document body is missing",
		})
	} else if c.enabled("accessibility") {
		if strings.Contains(body, `w:val="Heading1"`) || strings.Contains(body, `w:val="Title"`) {
			results = append(results, Result{
				Check:    "accessibility",
				Severity: Info,
				Message:  "document uses heading styles",
			})
		} else {
			results = append(results, Result{
				Check:         "accessibility",
				Severity:      Warning,
				Message:       "document has no heading structure",
				FixSuggestion: "use heading styles so navigation and screen readers work",
			})
		}
	}

	if c.enabled("metadata") {
		results = append(results, checkCoreMetadata(contents["docProps/core.xml"])...)
	}
	return results
}
