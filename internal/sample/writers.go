package sample

import (
	"fmt"
	"os"
	"path/filepath"

	docx "github.com/fumiama/go-docx"
	"github.com/go-pdf/fpdf"
)

// WriteText writes content to path as a UTF-8 text file, creating parent directories.
func WriteText(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// WriteDocx writes a Word document with one paragraph per entry.
func WriteDocx(path string, paragraphs []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	doc := docx.New().WithDefaultTheme()
	for _, p := range paragraphs {
		doc.AddParagraph().AddText(p)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := doc.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write docx %s: %w", path, err)
	}
	return f.Close()
}

// WritePDF writes a PDF with one page per entry. An empty entry produces a blank page.
func WritePDF(path string, pages []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for _, text := range pages {
		doc.AddPage()
		if text != "" {
			doc.MultiCell(0, 6, text, "", "L", false)
		}
	}
	if len(pages) == 0 {
		doc.AddPage()
	}
	return doc.OutputFileAndClose(path)
}
