// Package host adapts the runtime the application runs in: the Wails desktop
// runtime, or a headless bridge used for browser development.
package host

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/petervdpas/tabshell/internal/util"
)

// ErrUnsupported is returned for operations the host cannot perform.
var ErrUnsupported = errors.New("host: operation not supported")

type Host interface {
	// Quit terminates the application.
	Quit()

	// OpenExternal opens an http(s) URL in the system browser.
	OpenExternal(url string) error

	// OpenFiles shows a multi-select file dialog.
	OpenFiles(title string) ([]string, error)

	// Emit sends a runtime event to the shell window, if there is one.
	Emit(event string, data any)
}

// ── Wails ────────────────────────────────────────────────────────────────────

// Wails is the desktop host. It is usable once Bind has received the
// startup context.
type Wails struct {
	mu  sync.RWMutex
	ctx context.Context
}

func NewWails() *Wails { return &Wails{} }

// Bind stores the context passed to OnStartup.
func (w *Wails) Bind(ctx context.Context) {
	w.mu.Lock()
	w.ctx = ctx
	w.mu.Unlock()
}

func (w *Wails) context() (context.Context, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.ctx == nil {
		return nil, fmt.Errorf("%w: runtime not started", ErrUnsupported)
	}
	return w.ctx, nil
}

func (w *Wails) Quit() {
	ctx, err := w.context()
	if err != nil {
		log.Printf("HOST: quit before startup: %v", err)
		return
	}
	log.Printf("HOST: quitting")
	runtime.Quit(ctx)
}

func (w *Wails) OpenExternal(url string) error {
	if err := util.ValidateExternalURL(url); err != nil {
		return err
	}
	ctx, err := w.context()
	if err != nil {
		return err
	}
	runtime.BrowserOpenURL(ctx, url)
	return nil
}

func (w *Wails) OpenFiles(title string) ([]string, error) {
	ctx, err := w.context()
	if err != nil {
		return nil, err
	}
	files, err := runtime.OpenMultipleFilesDialog(ctx, runtime.OpenDialogOptions{Title: title})
	if err != nil {
		return nil, fmt.Errorf("file dialog: %w", err)
	}
	return files, nil
}

func (w *Wails) Emit(event string, data any) {
	ctx, err := w.context()
	if err != nil {
		return
	}
	runtime.EventsEmit(ctx, event, data)
}

// ── Headless ─────────────────────────────────────────────────────────────────

// Headless backs `tabshell serve`. Quit cancels the serve context and
// external URLs open through the OS.
type Headless struct {
	cancel context.CancelFunc
	open   func(string) error
}

func NewHeadless(cancel context.CancelFunc) *Headless {
	return &Headless{cancel: cancel, open: util.OpenURL}
}

func (h *Headless) Quit() {
	log.Printf("HOST: last tab closed, stopping")
	if h.cancel != nil {
		h.cancel()
	}
}

func (h *Headless) OpenExternal(url string) error {
	if err := util.ValidateExternalURL(url); err != nil {
		return err
	}
	if err := h.open(url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

func (h *Headless) OpenFiles(string) ([]string, error) {
	return nil, fmt.Errorf("%w: file dialog needs the desktop runtime", ErrUnsupported)
}

func (h *Headless) Emit(string, any) {}
