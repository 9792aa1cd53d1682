// Package app wires the tab authority, the bridge and the ui state into one
// runtime. The desktop App and `tabshell serve` both run through it; they
// differ only in the host they pass in.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/petervdpas/tabshell/internal/appmenu"
	"github.com/petervdpas/tabshell/internal/bridge"
	"github.com/petervdpas/tabshell/internal/config"
	"github.com/petervdpas/tabshell/internal/host"
	"github.com/petervdpas/tabshell/internal/pages"
	"github.com/petervdpas/tabshell/internal/proto"
	"github.com/petervdpas/tabshell/internal/tabrpc"
	"github.com/petervdpas/tabshell/internal/tabs"
	"github.com/petervdpas/tabshell/internal/uistate"
	"github.com/petervdpas/tabshell/internal/util"
)

// dispatcherBuffer is the inbox size of the mutation queue.
const dispatcherBuffer = 64

type Options struct {
	CfgPath string
	Cfg     config.Config
	Host    host.Host

	// Logs backs /api/logs. Nil gets a fresh buffer that nothing writes to.
	Logs *bridge.LogBuffer

	// Clock for throttle and unmount timers. Nil means wall clock.
	Clock clock.Clock
}

type Runtime struct {
	cfg     config.Config
	cfgPath string
	clk     clock.Clock

	Authority  *tabs.Authority
	Dispatcher *tabs.Dispatcher
	Hub        *bridge.Hub
	RPC        *tabrpc.Service
	Bridge     *bridge.Server
	UI         *uistate.Store

	cancel context.CancelFunc
	wg     sync.WaitGroup

	stopOnce sync.Once
}

// UIPath resolves the theme file against the config file's directory.
func UIPath(cfgPath, uiFile string) string {
	return util.ResolvePath(filepath.Dir(cfgPath), uiFile)
}

// Build assembles the runtime without starting anything.
func Build(opt Options) (*Runtime, error) {
	if opt.Host == nil {
		return nil, errors.New("app: host is required")
	}
	cfg := opt.Cfg

	hub := bridge.NewHub(opt.Host)

	tabOpt := tabs.OptionsFromConfig(cfg.Tabs)
	tabOpt.Clock = opt.Clock
	tabOpt.Debug = cfg.Log.Debug
	auth := tabs.New(hub, tabOpt)
	disp := tabs.NewDispatcher(auth, dispatcherBuffer)

	rpc := tabrpc.New(cfg.Window.Title, opt.Host, hub.KnownSurface)

	pg, err := pages.New(cfg.Window.Title)
	if err != nil {
		return nil, fmt.Errorf("pages: %w", err)
	}

	ui := uistate.NewStore(UIPath(opt.CfgPath, cfg.UIFile))

	srv, err := bridge.New(bridge.Options{
		Addr:         cfg.Bridge.Addr,
		AppName:      cfg.Window.Title,
		UnmountDelay: cfg.Tabs.UnmountDelay(),
		Clock:        opt.Clock,
	}, bridge.Deps{
		Hub:        hub,
		Dispatcher: disp,
		RPC:        rpc,
		Pages:      pg,
		Logs:       opt.Logs,
		UI:         ui,
	})
	if err != nil {
		return nil, err
	}

	clk := opt.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &Runtime{
		cfg:        cfg,
		cfgPath:    opt.CfgPath,
		clk:        clk,
		Authority:  auth,
		Dispatcher: disp,
		Hub:        hub,
		RPC:        rpc,
		Bridge:     srv,
		UI:         ui,
	}, nil
}

// Start brings the bridge up, starts the dispatcher loop and publishes the
// initial tab. The dev server probe and the theme watcher run in the
// background.
func (r *Runtime) Start(ctx context.Context) error {
	ctx, r.cancel = context.WithCancel(ctx)

	if err := r.Bridge.Start(); err != nil {
		r.cancel()
		return err
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.Dispatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("TABS: dispatcher: %v", err)
		}
	}()

	theme, err := r.UI.Theme()
	if err != nil {
		log.Printf("UI: theme: %v", err)
	}
	r.Hub.SetTheme(theme)
	if err := r.UI.Watch(r.Hub.SetTheme); err != nil {
		log.Printf("UI: watch %s: %v", r.UI.Path(), err)
	}

	if dev := r.cfg.Bridge.DevServerURL; dev != "" {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			b := r.cfg.Bridge
			if bridge.ProbeDevServer(ctx, dev, b.DevProbeAttempts, b.DevProbeInterval(), r.clk) {
				r.Bridge.SetContentBase(dev)
			}
		}()
	}

	r.Authority.Start()
	logBanner(r.cfgPath, r.UI.Path(), r.Bridge.URL())
	return nil
}

// Submit queues an action, giving up after a short timeout.
func (r *Runtime) Submit(act proto.TabAction) error {
	ctx, cancel := context.WithTimeout(context.Background(), util.ShortTimeout)
	defer cancel()
	return r.Dispatcher.Submit(ctx, act)
}

// MenuAction resolves a menu action string against the current active tab
// and queues it.
func (r *Runtime) MenuAction(action string) {
	act, err := appmenu.Resolve(action, r.Authority.ActiveID)
	if err != nil {
		log.Printf("MENU: %s: %v", action, err)
		return
	}
	if err := r.Submit(act); err != nil {
		log.Printf("MENU: submit %s: %v", act, err)
	}
}

// Stop tears everything down. Safe to call more than once.
func (r *Runtime) Stop() {
	r.stopOnce.Do(func() {
		log.Println("HOST: shutting down")
		if r.cancel != nil {
			r.cancel()
		}
		ctx, cancel := context.WithTimeout(context.Background(), util.ShortTimeout)
		defer cancel()
		if err := r.Bridge.Shutdown(ctx); err != nil {
			log.Printf("BRIDGE: shutdown: %v", err)
		}
		r.Authority.Close()
		if err := r.UI.Close(); err != nil {
			log.Printf("UI: close: %v", err)
		}
		r.wg.Wait()
	})
}

// Run is the headless entry point: it serves until ctx is cancelled or the
// last tab is closed.
func Run(ctx context.Context, opt Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if opt.Host == nil {
		opt.Host = host.NewHeadless(cancel)
	}
	rt, err := Build(opt)
	if err != nil {
		return err
	}
	if err := rt.Start(ctx); err != nil {
		return err
	}
	log.Printf("HOST: open %s in a browser", rt.Bridge.URL())

	<-ctx.Done()
	// Give the last republish and in-flight frames a moment to leave.
	time.Sleep(100 * time.Millisecond)
	rt.Stop()
	return nil
}
