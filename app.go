// app.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	tabapp "github.com/petervdpas/tabshell/internal/app"
	"github.com/petervdpas/tabshell/internal/bridge"
	"github.com/petervdpas/tabshell/internal/config"
	"github.com/petervdpas/tabshell/internal/host"
	"github.com/petervdpas/tabshell/internal/proto"
)

// App is bound into the Wails window. Its exported methods are what the
// shell and the content surfaces reach through window.go.main.App.
type App struct {
	host *host.Wails
	rt   *tabapp.Runtime
}

func NewApp(cfgPath string, cfg config.Config, logs *bridge.LogBuffer) (*App, error) {
	h := host.NewWails()
	rt, err := tabapp.Build(tabapp.Options{
		CfgPath: cfgPath,
		Cfg:     cfg,
		Host:    h,
		Logs:    logs,
	})
	if err != nil {
		return nil, err
	}
	return &App{host: h, rt: rt}, nil
}

func (a *App) startup(ctx context.Context) {
	a.host.Bind(ctx)

	if err := a.rt.Start(ctx); err != nil {
		log.Printf("HOST: start: %v", err)
		runtime.Quit(ctx)
		return
	}

	runtime.EventsOn(ctx, proto.EventTabAction, func(data ...any) {
		act, err := decodeAction(data)
		if err != nil {
			log.Printf("HOST: %s event: %v", proto.EventTabAction, err)
			return
		}
		if err := a.rt.Submit(act); err != nil {
			log.Printf("HOST: submit %s: %v", act, err)
		}
	})
}

func (a *App) shutdown(ctx context.Context) {
	a.rt.Stop()
}

func (a *App) menuAction(action string) {
	a.rt.MenuAction(action)
}

// decodeAction turns a runtime event payload (already decoded into maps by
// Wails) back into a TabAction.
func decodeAction(data []any) (proto.TabAction, error) {
	if len(data) == 0 {
		return proto.TabAction{}, fmt.Errorf("%w: empty event", proto.ErrInvalidAction)
	}
	raw, err := json.Marshal(data[0])
	if err != nil {
		return proto.TabAction{}, fmt.Errorf("%w: %v", proto.ErrInvalidAction, err)
	}
	var act proto.TabAction
	if err := json.Unmarshal(raw, &act); err != nil {
		return proto.TabAction{}, err
	}
	return act, nil
}

// -------------------------
// Shell API
// -------------------------

// GetBridgeURL tells the shell where the websocket channel and the content
// pages live.
func (a *App) GetBridgeURL() string {
	return a.rt.Bridge.URL()
}

// GetState returns the last published tab state.
func (a *App) GetState() proto.TabState {
	st, _ := a.rt.Hub.State()
	return st
}

// SubmitAction queues a tab action, same as the tabAction event.
func (a *App) SubmitAction(act proto.TabAction) error {
	return a.rt.Submit(act)
}

// -------------------------
// Theme API
// -------------------------

func (a *App) GetTheme() (string, error) {
	return a.rt.UI.Theme()
}

func (a *App) SetTheme(theme string) (string, error) {
	return a.rt.UI.SetTheme(theme)
}

// -------------------------
// Content surface API
// -------------------------

func (a *App) RegisterTab(tabID, surfaceHandle string) error {
	return a.rt.RPC.RegisterTab(proto.RegisterTabRequest{TabID: tabID, SurfaceHandle: surfaceHandle})
}

func (a *App) UnregisterTab(tabID string) error {
	return a.rt.RPC.UnregisterTab(proto.UnregisterTabRequest{TabID: tabID})
}

func (a *App) Ping(message string) string {
	return a.rt.RPC.Ping(proto.PingRequest{Message: message}).Pong
}

func (a *App) GetSystemInfo() (proto.SystemInfo, error) {
	return a.rt.RPC.SystemInfo()
}

func (a *App) OpenFileDialog() ([]string, error) {
	res, err := a.rt.RPC.OpenFileDialog()
	return res.Files, err
}

func (a *App) OpenExternal(url string) error {
	return a.rt.RPC.OpenExternal(proto.OpenExternalRequest{URL: url})
}
