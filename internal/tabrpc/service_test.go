package tabrpc

import (
	"errors"
	"os"
	"runtime"
	"strings"
	"testing"

	"github.com/petervdpas/tabshell/internal/host"
	"github.com/petervdpas/tabshell/internal/proto"
)

type fakeHost struct {
	files  []string
	err    error
	opened []string
}

func (f *fakeHost) Quit() {}

func (f *fakeHost) Emit(string, any) {}

func (f *fakeHost) OpenFiles(string) ([]string, error) { return f.files, f.err }

func (f *fakeHost) OpenExternal(u string) error {
	f.opened = append(f.opened, u)
	return nil
}

func TestRegisterAndUnregister(t *testing.T) {
	s := New("tabshell", &fakeHost{}, func(h string) bool { return h == "surface-a" })

	if err := s.RegisterTab(proto.RegisterTabRequest{TabID: "tab-1", SurfaceHandle: "surface-a"}); err != nil {
		t.Fatal(err)
	}
	if h, ok := s.Surface("tab-1"); !ok || h != "surface-a" {
		t.Fatalf("surface = %q, %v", h, ok)
	}

	// Unknown handles are ignored, not rejected.
	if err := s.RegisterTab(proto.RegisterTabRequest{TabID: "tab-2", SurfaceHandle: "stale"}); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Surface("tab-2"); ok {
		t.Fatal("unmounted surface was registered")
	}

	if err := s.UnregisterTab(proto.UnregisterTabRequest{TabID: "tab-1"}); err != nil {
		t.Fatal(err)
	}
	if s.Registered() != 0 {
		t.Fatalf("registered = %d after unregister", s.Registered())
	}
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	s := New("tabshell", &fakeHost{}, nil)
	for _, req := range []proto.RegisterTabRequest{
		{},
		{TabID: "tab-1"},
		{SurfaceHandle: "x"},
	} {
		if err := s.RegisterTab(req); !errors.Is(err, ErrBadRequest) {
			t.Fatalf("%+v: err = %v", req, err)
		}
	}
	if err := s.UnregisterTab(proto.UnregisterTabRequest{}); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("unregister err = %v", err)
	}
}

func TestPing(t *testing.T) {
	s := New("tabshell", &fakeHost{}, nil)
	got := s.Ping(proto.PingRequest{Message: "hi there"}).Pong
	if !strings.Contains(got, `"hi there"`) || !strings.Contains(got, "tabshell") {
		t.Fatalf("pong = %q", got)
	}
}

func TestPingKeepsMessageVerbatim(t *testing.T) {
	s := New("tabshell", &fakeHost{}, nil)
	got := s.Ping(proto.PingRequest{Message: `say "héllo"`}).Pong
	want := `You said: "say "héllo"", hello from tabshell`
	if got != want {
		t.Fatalf("pong = %s, want %s", got, want)
	}
}

func TestSystemInfo(t *testing.T) {
	info, err := New("tabshell", &fakeHost{}, nil).SystemInfo()
	if err != nil {
		t.Fatal(err)
	}
	if info.Platform != runtime.GOOS || info.Arch != runtime.GOARCH || info.Pid != os.Getpid() {
		t.Fatalf("info = %+v", info)
	}
	if info.RuntimeVersion == "" || info.Cwd == "" {
		t.Fatalf("info missing fields: %+v", info)
	}
}

func TestOpenFileDialog(t *testing.T) {
	s := New("tabshell", &fakeHost{files: []string{"/tmp/a.txt"}}, nil)
	got, err := s.OpenFileDialog()
	if err != nil || len(got.Files) != 1 {
		t.Fatalf("files = %v, err = %v", got.Files, err)
	}

	cancelled, err := New("tabshell", &fakeHost{}, nil).OpenFileDialog()
	if err != nil || cancelled.Files == nil || len(cancelled.Files) != 0 {
		t.Fatalf("cancelled dialog = %#v, %v", cancelled.Files, err)
	}

	_, err = New("tabshell", &fakeHost{err: host.ErrUnsupported}, nil).OpenFileDialog()
	if !errors.Is(err, host.ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestOpenExternal(t *testing.T) {
	h := &fakeHost{}
	s := New("tabshell", h, nil)

	if err := s.OpenExternal(proto.OpenExternalRequest{URL: "https://wails.io"}); err != nil {
		t.Fatal(err)
	}
	if err := s.OpenExternal(proto.OpenExternalRequest{URL: "ftp://example.com"}); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("err = %v, want ErrBadRequest", err)
	}
	if len(h.opened) != 1 {
		t.Fatalf("opened = %v", h.opened)
	}
}
