package bridge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/petervdpas/tabshell/internal/util"
)

type LogEntry struct {
	Seq       int64     `json:"seq"`
	TS        time.Time `json:"ts"`
	Subsystem string    `json:"subsystem,omitempty"`
	Msg       string    `json:"msg"`
}

// LogBuffer keeps the most recent log lines for /api/logs and fans new
// lines out to SSE subscribers. It is an io.Writer for log.SetOutput.
type LogBuffer struct {
	mu      sync.Mutex
	entries *util.RingBuffer[LogEntry]
	seq     int64

	subs map[chan LogEntry]struct{}

	partial bytes.Buffer
}

func NewLogBuffer(max int) *LogBuffer {
	if max <= 0 {
		max = 800
	}
	return &LogBuffer{
		entries: util.NewRingBuffer[LogEntry](max),
		subs:    make(map[chan LogEntry]struct{}),
	}
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.partial.Write(p)
	for {
		data := b.partial.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i == -1 {
			break
		}
		line := strings.TrimRight(string(data[:i]), "\r")
		b.partial.Next(i + 1)
		if strings.TrimSpace(line) == "" {
			continue
		}

		b.seq++
		e := LogEntry{Seq: b.seq, TS: time.Now(), Subsystem: subsystemOf(line), Msg: line}
		b.entries.Push(e)
		for ch := range b.subs {
			select {
			case ch <- e:
			default:
				// slow subscriber, drop
			}
		}
	}
	return len(p), nil
}

// subsystemOf finds the upper-case "TABS:" style tag in a log line, after
// the optional date and time written by the log package.
func subsystemOf(line string) string {
	for _, f := range strings.Fields(line) {
		if !strings.HasSuffix(f, ":") || len(f) < 3 {
			continue
		}
		tag := strings.TrimSuffix(f, ":")
		if strings.ToUpper(tag) == tag && strings.IndexFunc(tag, isDigitOrSlash) < 0 {
			return tag
		}
		return ""
	}
	return ""
}

func isDigitOrSlash(r rune) bool { return r == '/' || (r >= '0' && r <= '9') }

// Snapshot returns the buffered entries, oldest first. A non-empty
// subsystem keeps only that subsystem's lines.
func (b *LogBuffer) Snapshot(subsystem string) []LogEntry {
	all := b.entries.Snapshot()
	if subsystem == "" {
		return all
	}
	out := all[:0]
	for _, e := range all {
		if e.Subsystem == subsystem {
			out = append(out, e)
		}
	}
	return out
}

func (b *LogBuffer) Subscribe() (ch chan LogEntry, cancel func()) {
	ch = make(chan LogEntry, 64)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel = func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// GET /api/logs[?subsystem=TABS]
func (b *LogBuffer) ServeLogsJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, b.Snapshot(r.URL.Query().Get("subsystem")))
}

// GET /api/logs/stream, tail only.
func (b *LogBuffer) ServeLogsSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch, cancel := b.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			writeSSE(w, e)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, e LogEntry) {
	data, _ := json.Marshal(e)
	fmt.Fprintf(w, "id: %d\nevent: message\ndata: %s\n\n", e.Seq, data)
}
