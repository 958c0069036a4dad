package newsletter

import (
	"embed"
	"errors"
	"io/fs"
	"strconv"
	"time"

	"github.com/dmitrymomot/goodvibes/pkg/content"
	"github.com/dmitrymomot/goodvibes/pkg/mailer"
)

const (
	TemplateName = "daily.md"
	LayoutName   = "newsletter.html"

	headerDateLayout  = "Mon Jan 02 2006"
	subjectDateLayout = "1/2/2006"
)

//go:embed templates
var templatesFS embed.FS

// Issue is the data passed to the daily template.
type Issue struct {
	content.Content
	Date           string
	SubjectDate    string
	UnsubscribeURL string
}

// Templates returns a mailer renderer over the embedded daily templates.
// Both templates are parsed up front.
func Templates() (*mailer.Renderer, error) {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, errors.Join(ErrTemplates, err)
	}
	r := mailer.NewRendererWithConfig(sub, mailer.RendererConfig{
		Funcs: map[string]any{
			"letter": func(i int) string { return string(rune('A' + i)) },
			"inc":    func(i int) string { return strconv.Itoa(i + 1) },
		},
	})
	if err := r.Preload(LayoutName, TemplateName); err != nil {
		return nil, errors.Join(ErrTemplates, err)
	}
	return r, nil
}

// Renderer produces the HTML document of one issue.
type Renderer struct {
	templates *mailer.Renderer
	loc       *time.Location
	now       func() time.Time
}

// NewRenderer creates a Renderer. Dates are formatted in loc.
func NewRenderer(templates *mailer.Renderer, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{templates: templates, loc: loc, now: time.Now}
}

// Issue builds template data for c. An empty unsubscribeURL omits the
// unsubscribe link, which is how the web version is rendered.
func (r *Renderer) Issue(c content.Content, unsubscribeURL string) Issue {
	now := r.now().In(r.loc)
	return Issue{
		Content:        c,
		Date:           now.Format(headerDateLayout),
		SubjectDate:    now.Format(subjectDateLayout),
		UnsubscribeURL: unsubscribeURL,
	}
}

// Render returns the complete HTML document.
func (r *Renderer) Render(c content.Content, unsubscribeURL string) (string, error) {
	res, err := r.templates.Render(LayoutName, TemplateName, r.Issue(c, unsubscribeURL))
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}

// DateKey is the issue date as YYYY-MM-DD in the renderer's location.
func (r *Renderer) DateKey() string {
	return r.now().In(r.loc).Format(time.DateOnly)
}
