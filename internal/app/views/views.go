// Package views holds the HTML pages served by the browser-facing routes
package views

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names
const (
	RegisterPage = "register.html"
	LoginPage    = "login.html"
	TermPage     = "term.html"
	FrontPage    = "front.html"
)

// Templates parses the embedded page templates
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

// Message is a status line shown at the top of a page
type Message struct {
	Type string
	Text string
}

// Page is the data every template renders from
type Page struct {
	Title    string
	SiteName string
	Messages []Message
	Error    string

	// form pages
	Values map[string]string
	Errors map[string]string

	// registration
	Streams    []StreamOption
	Accept     string
	Extensions string
	MaxSize    string

	// term page
	Term *TermView
}

// StreamOption is one entry of the stream select. URL is only set on the front page.
type StreamOption struct {
	ID   int64
	Name string
	URL  string
}

// TermView is the term shown on a term page
type TermView struct {
	ID         int64
	Vocabulary string
}
