package reader

import (
	"errors"
	"fmt"
)

// ErrNoDocumentPart is returned when a .docx archive has no word/document.xml.
var ErrNoDocumentPart = errors.New("docx: word/document.xml not found")

// ExtractionError reports that a single document could not be parsed.
type ExtractionError struct {
	Path string
	Kind Kind
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
