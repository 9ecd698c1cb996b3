package e2e

import (
	"strings"
	"testing"

	"github.com/hyperjump/jinzai/internal/extract"
)

// Every fixture the suite submits must round-trip through extraction, or the
// end-to-end failures would point at the wrong layer.
func TestBuildMinimalFile_AllExtensionsExtractable(t *testing.T) {
	const sample = "Quinn Harper. Staff engineer building search infrastructure."
	extractor := extract.NewExtractor()

	for _, ext := range SupportedFileExtensions {
		t.Run(ext, func(t *testing.T) {
			if !extract.IsSupported(ext) {
				t.Fatalf("%s is not a supported extension", ext)
			}
			blob, err := BuildMinimalFile(ext, sample)
			if err != nil {
				t.Fatalf("BuildMinimalFile(%s): %v", ext, err)
			}
			if len(blob) == 0 {
				t.Fatalf("BuildMinimalFile(%s) returned no bytes", ext)
			}
			text, err := extractor.ExtractBytes(blob, ext)
			if err != nil {
				t.Fatalf("ExtractBytes(%s): %v", ext, err)
			}
			if !strings.Contains(text, sample) {
				t.Errorf("extracted text from %s fixture does not contain the sample: %q", ext, text)
			}
		})
	}
}

func TestBuildMinimalFile_UnknownExtension(t *testing.T) {
	if _, err := BuildMinimalFile(".pptx", "text"); err == nil {
		t.Error("expected an error for an extension without a fixture builder")
	}
}
