package reader

import "path/filepath"

// Kind is the closed set of document formats the reader understands.
type Kind int

const (
	Unsupported Kind = iota
	Text
	PDF
	Docx
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case PDF:
		return "pdf"
	case Docx:
		return "docx"
	default:
		return "unsupported"
	}
}

// KindOf maps a file path to its Kind by extension. Matching is case-sensitive.
func KindOf(path string) Kind {
	switch filepath.Ext(path) {
	case ".txt":
		return Text
	case ".pdf":
		return PDF
	case ".docx":
		return Docx
	default:
		return Unsupported
	}
}

// Supported reports whether the reader has an extraction strategy for path.
func Supported(path string) bool { return KindOf(path) != Unsupported }
