package reader

import (
	"os"
	"strings"

	docx "github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
)

const (
	pageSeparator      = "\n"
	paragraphSeparator = "\n"
)

// readText decodes the file as UTF-8, dropping invalid byte sequences.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, pageSeparator), nil
}

func readDocx(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", err
	}
	// the namespace is only filled in when word/document.xml was decoded
	if doc.Document.XMLW == "" {
		return "", ErrNoDocumentPart
	}
	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		paragraphs = appendBodyItem(paragraphs, item)
	}
	return strings.Join(paragraphs, paragraphSeparator), nil
}

func appendBodyItem(out []string, item any) []string {
	switch it := item.(type) {
	case *docx.Paragraph:
		return appendParagraph(out, it)
	case *docx.Table:
		return appendTable(out, it)
	}
	return out
}

// appendParagraph adds the paragraph's own text, then the paragraphs of any
// text boxes anchored in it.
func appendParagraph(out []string, p *docx.Paragraph) []string {
	var (
		text  strings.Builder
		boxes []*docx.WTextBoxContent
	)
	for _, child := range p.Children {
		switch c := child.(type) {
		case *docx.Run:
			boxes = appendRun(&text, boxes, c)
		case *docx.Hyperlink:
			boxes = appendRun(&text, boxes, &c.Run)
		}
	}
	out = append(out, text.String())
	for _, box := range boxes {
		for i := range box.Paragraphs {
			out = appendParagraph(out, &box.Paragraphs[i])
		}
	}
	return out
}

func appendRun(text *strings.Builder, boxes []*docx.WTextBoxContent, r *docx.Run) []*docx.WTextBoxContent {
	for _, child := range r.Children {
		switch c := child.(type) {
		case *docx.Text:
			text.WriteString(c.Text)
		case *docx.Tab:
			text.WriteByte('\t')
		case *docx.BarterRabbet:
			text.WriteByte('\n')
		case *docx.Drawing:
			boxes = append(boxes, drawingTextBoxes(c)...)
		}
	}
	return boxes
}

func drawingTextBoxes(d *docx.Drawing) []*docx.WTextBoxContent {
	var g *docx.AGraphic
	switch {
	case d.Inline != nil:
		g = d.Inline.Graphic
	case d.Anchor != nil:
		g = d.Anchor.Graphic
	}
	if g == nil || g.GraphicData == nil {
		return nil
	}
	if s := g.GraphicData.Shape; s != nil {
		return shapeTextBox(nil, s)
	}
	if grp := g.GraphicData.Group; grp != nil {
		return groupTextBoxes(nil, grp.Elems)
	}
	return nil
}

func groupTextBoxes(out []*docx.WTextBoxContent, elems []any) []*docx.WTextBoxContent {
	for _, e := range elems {
		switch el := e.(type) {
		case *docx.WordprocessingShape:
			out = shapeTextBox(out, el)
		case *docx.WPGGroupShape:
			out = groupTextBoxes(out, el.Elems)
		}
	}
	return out
}

func shapeTextBox(out []*docx.WTextBoxContent, s *docx.WordprocessingShape) []*docx.WTextBoxContent {
	if s.TextBox == nil || s.TextBox.Content == nil {
		return out
	}
	return append(out, s.TextBox.Content)
}

// appendTable emits each cell's paragraphs in row order, nested tables included.
func appendTable(out []string, t *docx.Table) []string {
	for _, row := range t.TableRows {
		for _, cell := range row.TableCells {
			for _, p := range cell.Paragraphs {
				out = appendParagraph(out, p)
			}
			for _, nested := range cell.Tables {
				out = appendTable(out, nested)
			}
		}
	}
	return out
}
