package bridge

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/petervdpas/tabshell/internal/util"
)

// ProbeDevServer checks whether a frontend dev server answers for the tab
// pages. It sends HEAD <base>/tabview/ up to attempts times, interval
// apart, and reports whether any attempt got a 2xx answer.
func ProbeDevServer(ctx context.Context, base string, attempts int, interval time.Duration, clk clock.Clock) bool {
	if base == "" || attempts <= 0 {
		return false
	}
	if clk == nil {
		clk = clock.New()
	}
	client := &http.Client{Timeout: util.ShortTimeout}
	target := strings.TrimRight(base, "/") + "/tabview/"

	for i := 1; i <= attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
		if err != nil {
			log.Printf("BRIDGE: dev server url %q: %v", base, err)
			return false
		}
		resp, err := client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				log.Printf("BRIDGE: dev server %s is up (attempt %d)", base, i)
				return true
			}
		}
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return false
		case <-clk.After(interval):
		}
	}
	log.Printf("BRIDGE: dev server %s not reachable after %d attempts, serving bundled pages", base, attempts)
	return false
}
