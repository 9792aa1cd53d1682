// Package bridge is the local HTTP server between the Go process and its
// web surfaces. It carries the shell websocket channel, the per-tab RPC
// endpoints, the content pages and a few diagnostic routes.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/petervdpas/tabshell/internal/apidocs"
	"github.com/petervdpas/tabshell/internal/host"
	"github.com/petervdpas/tabshell/internal/pages"
	"github.com/petervdpas/tabshell/internal/proto"
	"github.com/petervdpas/tabshell/internal/tabrpc"
	"github.com/petervdpas/tabshell/internal/uistate"
	"github.com/petervdpas/tabshell/internal/util"
)

// Submitter queues tab actions for the authority.
type Submitter interface {
	Submit(ctx context.Context, act proto.TabAction) error
}

type Options struct {
	Addr    string
	AppName string

	// Unmount delay and clock handed to every shell presenter.
	UnmountDelay time.Duration
	Clock        clock.Clock
}

type Deps struct {
	Hub        *Hub
	Dispatcher Submitter
	RPC        *tabrpc.Service
	Pages      *pages.Renderer
	Logs       *LogBuffer
	UI         *uistate.Store
}

type Server struct {
	opt        Options
	hub        *Hub
	dispatcher Submitter
	rpc        *tabrpc.Service
	pages      *pages.Renderer
	logs       *LogBuffer
	ui         *uistate.Store
	assets     *Assets
	mux        *http.ServeMux

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.RWMutex
	srv         *http.Server
	base        string // http://127.0.0.1:port once started
	contentBase string // where tab pages load from; empty means the bridge
}

func New(opt Options, d Deps) (*Server, error) {
	if d.Hub == nil || d.Dispatcher == nil || d.RPC == nil || d.Pages == nil {
		return nil, errors.New("bridge: hub, dispatcher, rpc and pages are required")
	}
	if d.Logs == nil {
		d.Logs = NewLogBuffer(0)
	}
	if opt.AppName == "" {
		opt.AppName = "tabshell"
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		opt:        opt,
		hub:        d.Hub,
		dispatcher: d.Dispatcher,
		rpc:        d.RPC,
		pages:      d.Pages,
		logs:       d.Logs,
		ui:         d.UI,
		assets:     NewAssets(),
		mux:        http.NewServeMux(),
		ctx:        ctx,
		cancel:     cancel,
	}
	s.routes()
	return s, nil
}

// Handler exposes the routes without listening, for tests.
func (s *Server) Handler() http.Handler { return s.mux }

// Start listens on opt.Addr and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.opt.Addr)
	if err != nil {
		return fmt.Errorf("bridge listen %s: %w", s.opt.Addr, err)
	}
	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: util.ShortTimeout,
	}

	s.mu.Lock()
	s.srv = srv
	s.base = "http://" + ln.Addr().String()
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("BRIDGE: serve: %v", err)
		}
	}()
	log.Printf("BRIDGE: listening on %s", s.URL())
	return nil
}

// URL is the bridge base URL, empty before Start.
func (s *Server) URL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.base
}

// SetContentBase points content surfaces at a dev server. Empty restores
// the bridge's own pages.
func (s *Server) SetContentBase(base string) {
	s.mu.Lock()
	s.contentBase = strings.TrimRight(base, "/")
	s.mu.Unlock()
}

// Shutdown stops the listener and ends all shell connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	s.hub.closeShells()
	s.mu.RLock()
	srv := s.srv
	s.mu.RUnlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// surfaceURL is the page a freshly mounted surface loads.
func (s *Server) surfaceURL(tabID, handle string) string {
	s.mu.RLock()
	base, content := s.base, s.contentBase
	s.mu.RUnlock()

	q := url.Values{}
	q.Set("tabId", tabID)
	q.Set("surface", handle)
	if content != "" {
		q.Set("bridge", base)
		return content + "/tabview/?" + q.Encode()
	}
	return base + "/tabview/?" + q.Encode()
}

func (s *Server) routes() {
	mux := s.mux

	mux.Handle("/ws/shell", http.HandlerFunc(s.serveShell))
	mux.Handle("/assets/", s.assets)
	mux.Handle("/tabview/", noCache(http.HandlerFunc(s.serveTabview)))
	mux.Handle("/", noCache(http.HandlerFunc(s.serveShellPage)))

	handlePost(mux, "/api/tab/register", func(w http.ResponseWriter, r *http.Request, req proto.RegisterTabRequest) {
		s.reply(w, s.rpc.RegisterTab(req))
	})

	handlePost(mux, "/api/tab/unregister", func(w http.ResponseWriter, r *http.Request, req proto.UnregisterTabRequest) {
		s.reply(w, s.rpc.UnregisterTab(req))
	})

	handlePost(mux, "/api/ping", func(w http.ResponseWriter, r *http.Request, req proto.PingRequest) {
		writeJSON(w, s.rpc.Ping(req))
	})

	handleGet(mux, "/api/system-info", func(w http.ResponseWriter, r *http.Request) {
		info, err := s.rpc.SystemInfo()
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, info)
	})

	handlePost(mux, "/api/file-dialog", func(w http.ResponseWriter, r *http.Request, _ struct{}) {
		res, err := s.rpc.OpenFileDialog()
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, res)
	})

	handlePost(mux, "/api/open-external", func(w http.ResponseWriter, r *http.Request, req proto.OpenExternalRequest) {
		s.reply(w, s.rpc.OpenExternal(req))
	})

	handleGet(mux, "/api/state", func(w http.ResponseWriter, r *http.Request) {
		st, ok := s.hub.State()
		if !ok {
			http.Error(w, "nothing published yet", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, st)
	})

	mux.HandleFunc("/api/theme", withCORS(s.serveTheme))

	handleGet(mux, "/api/logs", s.logs.ServeLogsJSON)
	handleGet(mux, "/api/logs/stream", s.logs.ServeLogsSSE)

	handleGet(mux, "/api/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := apidocs.Document(r.Host)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(doc)
	})
}

// reply answers {"status":"ok"} or the mapped error.
func (s *Server) reply(w http.ResponseWriter, err error) {
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, statusOK{Status: "ok"})
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tabrpc.ErrBadRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, host.ErrUnsupported):
		http.Error(w, err.Error(), http.StatusNotImplemented)
	default:
		log.Printf("BRIDGE: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GET /
func (s *Server) serveShellPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page, ok := s.assets.Get("shell.html")
	if !ok {
		http.Error(w, "shell page missing", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// GET /tabview/, /tabview/ping, /tabview/system-info
func (s *Server) serveTabview(w http.ResponseWriter, r *http.Request) {
	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/tabview"), "/")
	if name == "" || name == "index.html" {
		name = pages.Home
	}
	if !pages.Known(name) {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	d := pages.Data{TabID: q.Get("tabId"), Surface: q.Get("surface")}
	if name == pages.SystemInfo {
		if info, err := s.rpc.SystemInfo(); err == nil {
			d.Info = &info
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if r.Method == http.MethodHead {
		return
	}
	if err := s.pages.Render(w, name, d); err != nil {
		log.Printf("BRIDGE: render %s: %v", name, err)
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

// GET/POST /api/theme
func (s *Server) serveTheme(w http.ResponseWriter, r *http.Request) {
	if s.ui == nil {
		http.Error(w, "theme store not configured", http.StatusNotImplemented)
		return
	}
	switch r.Method {
	case http.MethodGet:
		t, err := s.ui.Theme()
		if err != nil {
			log.Printf("BRIDGE: read theme: %v", err)
		}
		writeJSON(w, uistate.State{Theme: t})
	case http.MethodPost:
		var in uistate.State
		if err := decodeJSON(r, &in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		t, err := s.ui.SetTheme(in.Theme)
		if err != nil {
			http.Error(w, "cannot save", http.StatusInternalServerError)
			return
		}
		writeJSON(w, uistate.State{Theme: t})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
