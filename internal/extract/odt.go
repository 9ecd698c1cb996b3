package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// odtContentPath is the path to the main content inside an .odt zip (OpenDocument Text).
const odtContentPath = "content.xml"

// odtTextTags match OpenDocument text elements (with optional attributes). Separate
// patterns keep opening and closing tags paired (e.g. <text:p>...</text:p> only).
var (
	odtTextP    = regexp.MustCompile(`<text:p[^>]*>([^<]*)</text:p>`)
	odtTextSpan = regexp.MustCompile(`<text:span[^>]*>([^<]*)</text:span>`)
	odtTextH    = regexp.MustCompile(`<text:h[^>]*>([^<]*)</text:h>`)
)

// extractODT extracts text from .odt bytes. ODT is a ZIP containing content.xml
// (OpenDocument). We extract all text from text:p, text:span, and text:h elements;
// a paragraph whose content is split into styled spans is picked up by the span
// pattern, an unstyled one by the paragraph pattern.
func extractODT(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract ODT: not a zip: %w", err)
	}
	contentXML, err := readArchiveFile(zr, odtContentPath)
	if err != nil {
		return "", fmt.Errorf("extract ODT: %w", err)
	}
	if contentXML == nil {
		return "", fmt.Errorf("extract ODT: %s not found", odtContentPath)
	}
	s := string(contentXML)
	var b strings.Builder
	appendMatches := func(parts [][]string) {
		for _, p := range parts {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strings.TrimSpace(p[1]))
		}
	}
	appendMatches(odtTextH.FindAllStringSubmatch(s, -1))
	appendMatches(odtTextP.FindAllStringSubmatch(s, -1))
	appendMatches(odtTextSpan.FindAllStringSubmatch(s, -1))
	return strings.TrimSpace(b.String()), nil
}
