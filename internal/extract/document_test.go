package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentTextPlainPassthrough(t *testing.T) {
	content := "Plain research abstract.\nSecond paragraph."
	assert.Equal(t, content, DocumentText("abstract.txt", content))
}

func TestDocumentTextStripsHTML(t *testing.T) {
	html := `<!DOCTYPE html><html><head><title>Paper</title>
<script>evil()</script><style>p{color:red}</style></head>
<body><h1>Findings</h1><p>First result.</p><ul><li>item one</li></ul></body></html>`

	out := DocumentText("paper.html", html)
	assert.Contains(t, out, "Paper")
	assert.Contains(t, out, "Findings")
	assert.Contains(t, out, "First result.")
	assert.Contains(t, out, "item one")
	assert.NotContains(t, out, "evil()")
	assert.NotContains(t, out, "color:red")
	assert.NotContains(t, out, "<p>")
}

func TestDocumentTextDetectsHTMLByContent(t *testing.T) {
	html := "<html><body><p>no extension hint</p></body></html>"
	out := DocumentText("upload.bin", html)
	assert.Equal(t, "no extension hint", out)
}

func TestDocumentTextTruncatesOversized(t *testing.T) {
	big := strings.Repeat("a", maxDocumentBytes+100)
	out := DocumentText("big.txt", big)
	assert.Len(t, out, maxDocumentBytes+len(truncationMarker))
	assert.True(t, strings.HasSuffix(out, truncationMarker))
}
