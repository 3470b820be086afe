package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxDocumentBytes caps how much of an uploaded document we keep.
// Anything beyond it is replaced with a truncation marker so the
// language model knows the text is partial.
const maxDocumentBytes = 200_000

const truncationMarker = "\n\n[... document truncated ...]"

// DocumentText normalizes an uploaded document to plain text. HTML is
// stripped to its visible text; everything else passes through as-is.
func DocumentText(filename, content string) string {
	if isHTML(filename, content) {
		if text, err := htmlToText(content); err == nil {
			return capText(text)
		}
	}
	return capText(content)
}

func isHTML(filename, content string) bool {
	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		return true
	}
	head := strings.ToLower(strings.TrimSpace(content))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

func htmlToText(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	var b strings.Builder
	doc.Find("title, h1, h2, h3, h4, h5, h6, p, li, td, th, pre, blockquote").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		b.WriteString(text)
		b.WriteString("\n")
	})
	if b.Len() == 0 {
		// Fallback for documents with no block structure.
		return strings.TrimSpace(doc.Text()), nil
	}
	return strings.TrimSpace(b.String()), nil
}

func capText(s string) string {
	if len(s) <= maxDocumentBytes {
		return s
	}
	return s[:maxDocumentBytes] + truncationMarker
}
