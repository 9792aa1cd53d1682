// Package pages renders the content shown inside each tab: a home page
// written in markdown plus the ping and system-info demos.
package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/petervdpas/tabshell/internal/proto"
)

//go:embed templates/*.html content/*.md
var files embed.FS

// Page names, also the template names of their bodies.
const (
	Home       = "home"
	Ping       = "ping"
	SystemInfo = "system-info"
)

type NavItem struct {
	Page  string
	Label string
	Path  string
}

// Nav is the sidebar, in display order.
var Nav = []NavItem{
	{Home, "Home", "/tabview/"},
	{Ping, "Ping", "/tabview/ping"},
	{SystemInfo, "System Info", "/tabview/system-info"},
}

// Data is what every page template receives.
type Data struct {
	AppName string
	Title   string
	Page    string
	Nav     []NavItem

	TabID   string
	Surface string

	Body template.HTML
	Info *proto.SystemInfo
}

// Query is the tabId/surface query string carried across navigation.
func (d Data) Query() string {
	v := url.Values{}
	if d.TabID != "" {
		v.Set("tabId", d.TabID)
	}
	if d.Surface != "" {
		v.Set("surface", d.Surface)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

type Renderer struct {
	appName string
	tmpl    *template.Template
	home    template.HTML
}

func New(appName string) (*Renderer, error) {
	r := &Renderer{appName: appName}

	funcs := template.FuncMap{
		"isActive": func(active, key string) bool { return active == key },
		"include": func(name string, data any) template.HTML {
			var b strings.Builder
			if err := r.tmpl.ExecuteTemplate(&b, name, data); err != nil {
				return template.HTML(`<pre class="err">` + html.EscapeString(err.Error()) + `</pre>`)
			}
			return template.HTML(b.String())
		},
	}
	t, err := template.New("root").Funcs(funcs).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	r.tmpl = t

	src, err := files.ReadFile("content/home.md")
	if err != nil {
		return nil, err
	}
	src = bytes.ReplaceAll(src, []byte("{{app}}"), []byte(appName))
	if r.home, err = Markdown(src); err != nil {
		return nil, fmt.Errorf("render home page: %w", err)
	}
	return r, nil
}

// Markdown renders GitHub-flavoured markdown with highlighted code blocks.
func Markdown(src []byte) (template.HTML, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(highlighting.WithStyle("monokai")),
		),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Known reports whether page names a page.
func Known(page string) bool {
	for _, n := range Nav {
		if n.Page == page {
			return true
		}
	}
	return false
}

// Render writes the named page inside the shared layout. d.Page, d.Nav and
// d.AppName are filled in here.
func (r *Renderer) Render(w io.Writer, page string, d Data) error {
	if !Known(page) {
		return fmt.Errorf("unknown page %q", page)
	}
	d.AppName = r.appName
	d.Page = page
	d.Nav = Nav
	for _, n := range Nav {
		if n.Page == page {
			d.Title = n.Label
		}
	}
	if page == Home {
		d.Body = r.home
	}
	return r.tmpl.ExecuteTemplate(w, "layout", d)
}
