// main.go
package main

import (
	"context"
	"embed"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"

	"github.com/petervdpas/tabshell/internal/app"
	"github.com/petervdpas/tabshell/internal/appmenu"
	"github.com/petervdpas/tabshell/internal/bridge"
	"github.com/petervdpas/tabshell/internal/config"
)

//go:embed all:frontend/dist
var assets embed.FS

//go:embed build/appicon.png
var appIcon []byte

var (
	showHelp = pflag.BoolP("help", "h", false, "Show help")
	version  = pflag.Bool("version", false, "Show version")
	cfgPath  = pflag.String("config", "data/tabshell.json", "Path of the JSON config file")
)

// appVersion is set at build time via -ldflags "-X main.appVersion=x.y.z"
var appVersion = "dev"

func main() {
	pflag.Usage = showUsage
	pflag.Parse()

	if *version {
		fmt.Printf("tabshell v%s\n", appVersion)
		return
	}

	if *showHelp {
		showUsage()
		return
	}

	cfg, created, err := config.Ensure(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config %s: %v", *cfgPath, err)
	}

	logs := bridge.NewLogBuffer(cfg.Log.BufferLines)
	log.SetOutput(io.MultiWriter(os.Stderr, logs))
	if created {
		log.Printf("HOST: wrote default config to %s", *cfgPath)
	}

	args := pflag.Args()

	// No arguments - run desktop UI
	if len(args) == 0 {
		runDesktopApp(cfg, logs)
		return
	}

	switch args[0] {
	case "serve":
		runServe(cfg, logs)

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command '%s'\n", args[0])
		fmt.Fprintln(os.Stderr)
		showUsage()
		os.Exit(1)
	}
}

func runDesktopApp(cfg config.Config, logs *bridge.LogBuffer) {
	a, err := NewApp(*cfgPath, cfg, logs)
	if err != nil {
		log.Fatal(err)
	}

	err = wails.Run(&options.App{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,

		AssetServer: &assetserver.Options{
			Assets: assets,
		},

		Menu: appmenu.Build(cfg.Window.Title, a.menuAction),

		Linux: &linux.Options{
			Icon: appIcon,
		},

		OnStartup:  a.startup,
		OnShutdown: a.shutdown,
		Bind:       []any{a},
	})
	if err != nil {
		log.Fatal(err)
	}
}

func runServe(cfg config.Config, logs *bridge.LogBuffer) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Println("HOST: interrupted, shutting down")
		cancel()
	}()

	if err := app.Run(ctx, app.Options{
		CfgPath: *cfgPath,
		Cfg:     cfg,
		Logs:    logs,
	}); err != nil {
		log.Fatalf("Bridge failed: %v", err)
	}
}

func showUsage() {
	fmt.Println("tabshell - tabbed desktop shell")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  tabshell [options]          Run desktop application (default)")
	fmt.Println("  tabshell [options] serve    Run the bridge headless and use a browser as the shell")
	fmt.Println()
	fmt.Println("Options:")
	pflag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Run desktop app")
	fmt.Println("  tabshell")
	fmt.Println()
	fmt.Println("  # Serve on a fixed port for frontend work")
	fmt.Println("  tabshell --config dev/tabshell.json serve")
}
