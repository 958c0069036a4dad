// Package views renders the server's HTML pages.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// SignupPage is the data of the subscription page.
type SignupPage struct {
	// Email is echoed back into the input; empty after a successful signup.
	Email   string
	Message string
	// Kind is "success" or "error" and styles the message.
	Kind string
}

// Signup renders the subscription page.
func Signup(data SignupPage) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return pages.ExecuteTemplate(w, "index.html", data)
	})
}

// Issue wraps an already rendered newsletter document.
func Issue(html string) templ.Component {
	return templ.Raw(html)
}
