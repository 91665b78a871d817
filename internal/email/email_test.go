package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsEmail(t *testing.T) {
	t.Parallel()

	require.True(t, IsEmail("student@university.edu"))
	require.True(t, IsEmail("first.last+tag@example.co.uk"))
	require.False(t, IsEmail(""))
	require.False(t, IsEmail("no-at-sign"))
	require.False(t, IsEmail("spaces in@example.com"))
	require.False(t, IsEmail("nodomain@"))
}

func TestMakeHeaderAddress(t *testing.T) {
	t.Parallel()

	require.Equal(t, "plain@example.com", makeHeaderAddress("plain@example.com", ""))
	require.Equal(t, `"Ada Lovelace" <ada@example.com>`, makeHeaderAddress("ada@example.com", "Ada Lovelace"))
}

func TestConnectionRequestBodyEscapesNames(t *testing.T) {
	t.Parallel()

	body := connectionRequestBody("<b>Eve</b>", `Mallory <img src=x onerror=alert(1)>`, "https://tutorhub.example")

	require.NotContains(t, body, "<b>")
	require.NotContains(t, body, "<img")
	require.Contains(t, body, "&lt;b&gt;Eve&lt;/b&gt;")
	require.Contains(t, body, "Mallory &lt;img")
	require.Contains(t, body, "https://tutorhub.example")
}

func TestPrepMailContents(t *testing.T) {
	t.Parallel()

	contents := string(prepMailContents("to@example.com", "from@example.com", "Hello", "<p>body</p>"))

	require.True(t, strings.HasPrefix(contents, "To: to@example.com\r\n"))
	require.Contains(t, contents, "From: from@example.com\r\n")
	require.Contains(t, contents, "Subject: Hello\r\n")
	require.Contains(t, contents, "Content-Type: text/html; charset=UTF-8\r\n")
	require.Contains(t, contents, "<p>body</p>")
}
