// Package markdown renders sanitized HTML from markdown source.
//
// Comment bodies are stored as markdown source; this type carries them
// through pgx and renders them on the way out to the API.
package markdown

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

// Markdown wraps markdown source code. Only the source round-trips the
// database; rendered HTML is derived and cached per value.
type Markdown struct {
	// Source is the markdown source code.
	Source string
	// renderedHTML caches the HTML rendered from the markdown source.
	renderedHTML *template.HTML
}

var (
	bfRenderer = blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.Safelink | blackfriday.NofollowLinks | blackfriday.HrefTargetBlank | blackfriday.Smartypants | blackfriday.SmartypantsFractions | blackfriday.SmartypantsDashes | blackfriday.SmartypantsLatexDashes | blackfriday.SmartypantsAngledQuotes | blackfriday.SmartypantsQuotesNBSP,
	})
	bfExtensions = blackfriday.NoIntraEmphasis | blackfriday.Tables | blackfriday.FencedCode | blackfriday.Autolink | blackfriday.Strikethrough | blackfriday.SpaceHeadings | blackfriday.NoEmptyLineBeforeBlock | blackfriday.HeadingIDs | blackfriday.AutoHeadingIDs | blackfriday.DefinitionLists
	policy       = bluemonday.UGCPolicy()
)

// Render converts the Markdown Source into sanitized HTML.
func (m *Markdown) Render() template.HTML {
	if m.renderedHTML != nil {
		return *m.renderedHTML
	}

	unsafe := blackfriday.Run([]byte(m.Source),
		blackfriday.WithRenderer(bfRenderer),
		blackfriday.WithExtensions(bfExtensions),
	)
	safe := policy.SanitizeBytes(unsafe)
	html := template.HTML(bytes.TrimSpace(safe))
	m.renderedHTML = &html
	return html
}

// ScanText implements the pgtype.TextScanner interface for pgx v5.
func (m *Markdown) ScanText(v pgtype.Text) error {
	if !v.Valid {
		m.Source = ""
		m.renderedHTML = nil
		return nil
	}

	m.Source = v.String
	m.renderedHTML = nil
	return nil
}

// TextValue implements the pgtype.TextValuer interface for pgx v5.
func (m Markdown) TextValue() (pgtype.Text, error) {
	return pgtype.Text{String: m.Source, Valid: true}, nil
}

// UnmarshalJSON implements json.Unmarshaler so Markdown can be decoded
// from a request body.
func (m *Markdown) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("Markdown.UnmarshalJSON: %w", err)
	}
	m.Source = s
	m.renderedHTML = nil
	return nil
}
