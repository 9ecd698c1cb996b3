package extract

import (
	"fmt"

	"github.com/lu4p/cat"
)

// extractRTF extracts text from .rtf bytes. cat's RTF path is a tokenizing
// parser, so it is safe to use here even though its docx path is not (see docx.go).
func extractRTF(content []byte) (string, error) {
	text, err := cat.FromBytes(content)
	if err != nil {
		return "", fmt.Errorf("extract RTF: %w", err)
	}
	return text, nil
}
