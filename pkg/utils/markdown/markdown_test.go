package markdown

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"
)

func TestMarkdown_Render_Empty(t *testing.T) {
	var md Markdown
	require.Equal(t, "", strings.TrimSpace(string(md.Render())))
}

func TestMarkdown_Render_Sanitizes(t *testing.T) {
	md := Markdown{Source: "hello <script>alert(1)</script> **world**"}

	html := string(md.Render())
	require.NotContains(t, strings.ToLower(html), "<script")
	require.Contains(t, html, "world")

	// caching path
	html2 := string(md.Render())
	require.Equal(t, html, html2)
}

func TestMarkdown_ScanAndText(t *testing.T) {
	var md Markdown
	require.NoError(t, md.ScanText(pgtype.Text{Valid: false}))
	require.Equal(t, "", md.Source)

	require.NoError(t, md.ScanText(pgtype.Text{String: "ghi", Valid: true}))
	require.Equal(t, "ghi", md.Source)

	tv, err := (Markdown{Source: "jkl"}).TextValue()
	require.NoError(t, err)
	require.True(t, tv.Valid)
	require.Equal(t, "jkl", tv.String)
}

func TestMarkdown_ScanResetsRenderCache(t *testing.T) {
	md := Markdown{Source: "**bold**"}
	first := string(md.Render())
	require.Contains(t, first, "<strong>")

	require.NoError(t, md.ScanText(pgtype.Text{String: "plain", Valid: true}))
	require.NotContains(t, string(md.Render()), "<strong>")
}

func TestMarkdown_UnmarshalJSON(t *testing.T) {
	var md Markdown
	require.NoError(t, json.Unmarshal([]byte(`"hello"`), &md))
	require.Equal(t, "hello", md.Source)

	require.Error(t, json.Unmarshal([]byte(`123`), &md))
}
