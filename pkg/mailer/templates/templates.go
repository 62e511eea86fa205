package templates

import (
	"embed"
	"fmt"
	htmpl "html/template"
	"reflect"
	"strings"
	"sync"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

const (
	EmployeeCreated = "employee_created"
	EmployeeUpdated = "employee_updated"
)

// EmailData is the model every employee notification template renders.
type EmailData struct {
	Name         string
	Email        string
	IsSupervisor bool
	CompanyName  string
	Time         string
	TimeAt       time.Time
}

// defaultFn backs {{ .Value | default "Fallback" }}; blank strings count as empty.
func defaultFn(fallback, value any) any {
	if s, ok := value.(string); ok {
		if strings.TrimSpace(s) == "" {
			return fallback
		}
		return s
	}
	if rv := reflect.ValueOf(value); !rv.IsValid() || rv.IsZero() {
		return fallback
	}
	return value
}

var funcs = map[string]any{
	"formatTime": func(t time.Time, layout string) string { return t.Format(layout) },
	"upper":      strings.ToUpper,
	"default":    defaultFn,
}

// set holds the three parsed parts of one notification.
type set struct {
	subject *texttpl.Template
	text    *texttpl.Template
	html    *htmpl.Template
}

var (
	mu    sync.Mutex
	cache = map[string]*set{}
)

func load(name string) (*set, error) {
	mu.Lock()
	defer mu.Unlock()
	if s, ok := cache[name]; ok {
		return s, nil
	}

	parseText := func(part string) (*texttpl.Template, error) {
		file := name + "." + part + ".tmpl"
		t, err := texttpl.New(file).Funcs(funcs).ParseFS(FS, file)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", file, err)
		}
		return t, nil
	}
	subject, err := parseText("subject")
	if err != nil {
		return nil, err
	}
	text, err := parseText("text")
	if err != nil {
		return nil, err
	}
	htmlFile := name + ".html.tmpl"
	html, err := htmpl.New(htmlFile).Funcs(funcs).ParseFS(FS, htmlFile)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", htmlFile, err)
	}

	s := &set{subject: subject, text: text, html: html}
	cache[name] = s
	return s, nil
}

func execute(name string, exec func(*strings.Builder) error) (string, error) {
	var b strings.Builder
	if err := exec(&b); err != nil {
		return "", fmt.Errorf("exec %q: %w", name, err)
	}
	return b.String(), nil
}

// Render produces the subject, plain text and HTML bodies of the named
// notification from <name>.subject.tmpl, <name>.text.tmpl and <name>.html.tmpl.
// Parsed templates are cached.
func Render(name string, data any) (subject, text, html string, err error) {
	s, err := load(name)
	if err != nil {
		return "", "", "", err
	}
	if subject, err = execute(name+".subject", func(b *strings.Builder) error { return s.subject.Execute(b, data) }); err != nil {
		return "", "", "", err
	}
	if text, err = execute(name+".text", func(b *strings.Builder) error { return s.text.Execute(b, data) }); err != nil {
		return "", "", "", err
	}
	if html, err = execute(name+".html", func(b *strings.Builder) error { return s.html.Execute(b, data) }); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
