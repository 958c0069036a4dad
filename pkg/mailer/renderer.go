package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
)

// RendererConfig configures a Renderer.
type RendererConfig struct {
	TemplateDir string // default "."
	LayoutDir   string // default "layouts"
	// Funcs are added to both markdown templates and layouts,
	// on top of the built-in md escaper.
	Funcs map[string]any
}

// Renderer turns a markdown template with YAML frontmatter into an HTML
// document wrapped by a layout. Parsed templates are cached; rendering
// itself does no I/O once a template is loaded.
type Renderer struct {
	fs          fs.FS
	md          goldmark.Markdown
	templateDir string
	layoutDir   string
	funcs       map[string]any

	mu        sync.RWMutex
	templates map[string]*cachedTemplate
	layouts   map[string]*template.Template
}

type cachedTemplate struct {
	metadata map[string]any
	body     *texttemplate.Template
}

// RenderResult is one rendered message.
type RenderResult struct {
	Metadata map[string]any
	HTML     string
	Text     string // plain-text part derived from the executed markdown
}

// NewRenderer creates a renderer with default directories.
func NewRenderer(fsys fs.FS) *Renderer {
	return NewRendererWithConfig(fsys, RendererConfig{})
}

// NewRendererWithConfig creates a renderer with custom directories and funcs.
func NewRendererWithConfig(fsys fs.FS, cfg RendererConfig) *Renderer {
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = "."
	}
	if cfg.LayoutDir == "" {
		cfg.LayoutDir = "layouts"
	}

	funcs := map[string]any{"md": EscapeMarkdown}
	for k, v := range cfg.Funcs {
		funcs[k] = v
	}

	return &Renderer{
		fs:          fsys,
		md:          goldmark.New(goldmark.WithExtensions(NewDirectiveExtension())),
		templateDir: cfg.TemplateDir,
		layoutDir:   cfg.LayoutDir,
		funcs:       funcs,
		templates:   make(map[string]*cachedTemplate),
		layouts:     make(map[string]*template.Template),
	}
}

// Preload parses a template and a layout so that missing or broken files
// are reported at startup instead of on first send.
func (r *Renderer) Preload(layout, templateName string) error {
	if _, err := r.template(templateName); err != nil {
		return err
	}
	_, err := r.layout(layout)
	return err
}

// Render executes templateName with data, converts the markdown to HTML and
// wraps it with layout. The layout sees .Content, .Metadata and .Data.
func (r *Renderer) Render(layout, templateName string, data any) (*RenderResult, error) {
	tmpl, err := r.template(templateName)
	if err != nil {
		return nil, err
	}
	layoutTmpl, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var markdown bytes.Buffer
	if err := tmpl.body.Execute(&markdown, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, templateName, err)
	}

	var body bytes.Buffer
	if err := r.md.Convert(markdown.Bytes(), &body); err != nil {
		return nil, fmt.Errorf("%w: markdown: %v", ErrRenderFailed, err)
	}

	var doc bytes.Buffer
	if err := layoutTmpl.Execute(&doc, map[string]any{
		"Content":  template.HTML(body.String()),
		"Metadata": tmpl.metadata,
		"Data":     data,
	}); err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, layout, err)
	}

	return &RenderResult{
		Metadata: tmpl.metadata,
		HTML:     doc.String(),
		Text:     plainText(markdown.String()),
	}, nil
}

func (r *Renderer) template(name string) (*cachedTemplate, error) {
	r.mu.RLock()
	t, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}

	raw, err := fs.ReadFile(r.fs, path.Join(r.templateDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}
	parsed, err := ParseTemplate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	body, err := texttemplate.New(name).Funcs(r.funcs).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	t = &cachedTemplate{metadata: parsed.Metadata, body: body}
	r.mu.Lock()
	r.templates[name] = t
	r.mu.Unlock()
	return t, nil
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	r.mu.RLock()
	l, ok := r.layouts[name]
	r.mu.RUnlock()
	if ok {
		return l, nil
	}

	raw, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}
	l, err = template.New(name).Funcs(r.funcs).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, name, err)
	}

	r.mu.Lock()
	r.layouts[name] = l
	r.mu.Unlock()
	return l, nil
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`!`, `\!`,
	`~`, `\~`,
	`&`, `\&`,
)

// EscapeMarkdown backslash-escapes characters that would otherwise start
// emphasis, links, directives, raw HTML or entities. It is registered as the
// "md" template func.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
