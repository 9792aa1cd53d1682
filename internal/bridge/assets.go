package bridge

import (
	"embed"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

//go:embed assets
var assetFS embed.FS

var assetTypes = map[string]string{
	".js":   "application/javascript",
	".css":  "text/css",
	".html": "text/html",
}

// Assets holds the shell and tab page assets, minified once at startup.
type Assets struct {
	files map[string][]byte // "shell.js" -> bytes
}

func NewAssets() *Assets {
	m := minify.New()
	m.AddFunc("application/javascript", js.Minify)
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)

	a := &Assets{files: make(map[string][]byte)}
	_ = fs.WalkDir(assetFS, "assets", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		raw, err := assetFS.ReadFile(p)
		if err != nil {
			return nil
		}
		name := strings.TrimPrefix(p, "assets/")
		typ, ok := assetTypes[strings.ToLower(path.Ext(p))]
		if !ok {
			a.files[name] = raw
			return nil
		}
		out, err := m.Bytes(typ, raw)
		if err != nil {
			log.Printf("BRIDGE: minify warning: %s: %v (using original)", name, err)
			out = raw
		}
		a.files[name] = out
		return nil
	})
	return a
}

// Get returns a minified asset by name.
func (a *Assets) Get(name string) ([]byte, bool) {
	b, ok := a.files[name]
	return b, ok
}

// ServeHTTP serves /assets/<name>.
func (a *Assets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/assets/")
	data, ok := a.files[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	ct := mime.TypeByExtension(path.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	_, _ = w.Write(data)
}
