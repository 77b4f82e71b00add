package views

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterPageKeepsValuesAndShowsErrors(t *testing.T) {
	var buf bytes.Buffer
	err := Templates().ExecuteTemplate(&buf, RegisterPage, Page{
		Title:    "Student Registration",
		SiteName: "Student Portal",
		Values:   map[string]string{"full_name": "Jane <Doe>", "stream": "3"},
		Errors:   map[string]string{"email": "email is required"},
		Streams:  []StreamOption{{ID: 1, Name: "Physics"}, {ID: 3, Name: "Computer Science"}},
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `value="Jane &lt;Doe&gt;"`)
	assert.Contains(t, html, `<option value="3" selected>Computer Science</option>`)
	assert.Contains(t, html, `<option value="1">Physics</option>`)
	assert.Contains(t, html, "email is required")
}

func TestLoginPageShowsMessages(t *testing.T) {
	var buf bytes.Buffer
	err := Templates().ExecuteTemplate(&buf, LoginPage, Page{
		Title:    "Log in",
		Messages: []Message{{Type: "status", Text: "Registration successful."}},
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `<div class="messages messages--status" role="status">Registration successful.</div>`)
}

func TestTermPage(t *testing.T) {
	var buf bytes.Buffer
	err := Templates().ExecuteTemplate(&buf, TermPage, Page{
		Title: "Computer Science",
		Term:  &TermView{ID: 3, Vocabulary: "student_streams"},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `data-term-id="3"`)
}

func TestFrontPageLinksStreams(t *testing.T) {
	var buf bytes.Buffer
	err := Templates().ExecuteTemplate(&buf, FrontPage, Page{
		Title:   "Welcome",
		Streams: []StreamOption{{ID: 3, Name: "Computer Science", URL: "/streams/computer-science"}},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `<a href="/streams/computer-science">Computer Science</a>`)
	assert.Contains(t, buf.String(), `href="/user/register"`)
}
