package viewtypes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tutorhub/tutorhub/internal/db"
	"github.com/tutorhub/tutorhub/pkg/utils/markdown"
)

func TestCommentFromRow_RendersMarkdownBody(t *testing.T) {
	t.Parallel()

	row := &db.Comment{
		Body: markdown.Markdown{Source: "**great** lecture <script>alert(1)</script>"},
	}

	c := CommentFromRow(row)
	require.Equal(t, "**great** lecture <script>alert(1)</script>", c.Body)
	require.Contains(t, c.BodyHTML, "<strong>great</strong>")
	require.NotContains(t, strings.ToLower(c.BodyHTML), "<script")
}

func TestVideoFromRow_Labels(t *testing.T) {
	t.Parallel()

	row := &db.Video{
		VideoWidth:  1920,
		VideoHeight: 1080,
		Duration:    125,
		FileSize:    2 * 1024 * 1024,
	}

	v := VideoFromRow(row)
	require.InDelta(t, 16.0/9.0, v.AspectRatio, 1e-9)
	require.Equal(t, "2:05", v.DurationLabel)
	require.NotEmpty(t, v.FileSizeLabel)
	require.Equal(t, []string{}, v.Tags)
}
