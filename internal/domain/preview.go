package domain

// PreviewMarker is appended to a preview when the text was truncated.
const PreviewMarker = "..."

// MakePreview returns the first limit runes of text, followed by
// PreviewMarker when text is longer than limit. A non-positive limit
// yields just the marker for non-empty text.
func MakePreview(text string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i] + PreviewMarker
		}
		n++
	}
	return text
}
