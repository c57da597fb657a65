package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"lineupplanner/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// Each email is three files under templates/: <name>_subject.txt, <name>.txt and <name>.html.
const (
	subjectSuffix = "_subject.txt"
	textSuffix    = ".txt"
	htmlSuffix    = ".html"
)

func setRange(s domain.SetLine) string {
	return s.StartTime + " - " + s.EndTime
}

// templateRenderer implements domain.EmailTemplateRenderer over the embedded templates,
// parsed once at construction.
type templateRenderer struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

// NewTemplateRenderer parses the embedded templates. It panics if they do not parse,
// which can only happen when a template file is broken at build time.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{
		text: texttemplate.Must(texttemplate.New("").
			Funcs(texttemplate.FuncMap{"setRange": setRange}).
			ParseFS(templateFS, "templates/*.txt")),
		html: htmltemplate.Must(htmltemplate.New("").
			Funcs(htmltemplate.FuncMap{"setRange": setRange}).
			ParseFS(templateFS, "templates/*.html")),
	}
}

// Render executes the named email (e.g. "lineup_schedule") with data and returns subject, html, and text bodies.
func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	if subject, err = r.execText(templateName+subjectSuffix, data); err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	if htmlBody, err = r.execHTML(templateName+htmlSuffix, data); err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	if textBody, err = r.execText(templateName+textSuffix, data); err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	// Subjects are a single header line.
	return strings.Join(strings.Fields(subject), " "), htmlBody, textBody, nil
}

func (r *templateRenderer) execText(name string, data any) (string, error) {
	t := r.text.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("template %s: %w", name, domain.ErrNotFound)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *templateRenderer) execHTML(name string, data any) (string, error) {
	t := r.html.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("template %s: %w", name, domain.ErrNotFound)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
