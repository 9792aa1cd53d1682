// Package tabrpc implements the requests a content surface can make of the
// Go process. The same Service backs the bridge HTTP endpoints and the
// methods bound on the Wails App.
package tabrpc

import (
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"

	"github.com/petervdpas/tabshell/internal/host"
	"github.com/petervdpas/tabshell/internal/proto"
	"github.com/petervdpas/tabshell/internal/util"
)

// ErrBadRequest marks requests rejected for missing or malformed fields.
var ErrBadRequest = errors.New("tabrpc: bad request")

type Service struct {
	name string
	host host.Host

	// known reports whether a surface handle is mounted by some shell.
	known func(handle string) bool

	mu       sync.RWMutex
	surfaces map[string]string // tab id -> surface handle
}

// New returns a service answering as appName. known may be nil, in which
// case every handle is accepted.
func New(appName string, h host.Host, known func(handle string) bool) *Service {
	if known == nil {
		known = func(string) bool { return true }
	}
	return &Service{
		name:     appName,
		host:     h,
		known:    known,
		surfaces: make(map[string]string),
	}
}

// RegisterTab binds a tab id to the surface that hosts it. Handles no shell
// has mounted are ignored.
func (s *Service) RegisterTab(req proto.RegisterTabRequest) error {
	if req.TabID == "" || req.SurfaceHandle == "" {
		return fmt.Errorf("%w: tabId and surfaceHandle are required", ErrBadRequest)
	}
	if !s.known(req.SurfaceHandle) {
		log.Printf("RPC: register %s ignored, surface %s is not mounted", req.TabID, req.SurfaceHandle)
		return nil
	}
	s.mu.Lock()
	s.surfaces[req.TabID] = req.SurfaceHandle
	s.mu.Unlock()
	log.Printf("RPC: registered tab %s -> surface %s", req.TabID, req.SurfaceHandle)
	return nil
}

func (s *Service) UnregisterTab(req proto.UnregisterTabRequest) error {
	if req.TabID == "" {
		return fmt.Errorf("%w: tabId is required", ErrBadRequest)
	}
	s.mu.Lock()
	delete(s.surfaces, req.TabID)
	s.mu.Unlock()
	log.Printf("RPC: unregistered tab %s", req.TabID)
	return nil
}

// Surface returns the handle registered for a tab.
func (s *Service) Surface(tabID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.surfaces[tabID]
	return h, ok
}

// Registered returns the number of registered tabs.
func (s *Service) Registered() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.surfaces)
}

func (s *Service) Ping(req proto.PingRequest) proto.PingResponse {
	return proto.PingResponse{Pong: fmt.Sprintf("You said: \"%s\", hello from %s", req.Message, s.name)}
}

func (s *Service) SystemInfo() (proto.SystemInfo, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return proto.SystemInfo{}, fmt.Errorf("system info: %w", err)
	}
	return proto.SystemInfo{
		Platform:       runtime.GOOS,
		Arch:           runtime.GOARCH,
		RuntimeVersion: runtime.Version(),
		Cwd:            cwd,
		Pid:            os.Getpid(),
	}, nil
}

// OpenFileDialog lets the user pick files. A cancelled dialog yields an
// empty list, not an error.
func (s *Service) OpenFileDialog() (proto.FileDialogResponse, error) {
	files, err := s.host.OpenFiles("Open files")
	if err != nil {
		return proto.FileDialogResponse{}, err
	}
	if files == nil {
		files = []string{}
	}
	return proto.FileDialogResponse{Files: files}, nil
}

func (s *Service) OpenExternal(req proto.OpenExternalRequest) error {
	if err := util.ValidateExternalURL(req.URL); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return s.host.OpenExternal(req.URL)
}
