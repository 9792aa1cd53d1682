// Package appmenu holds the native application menu: a static table of tab
// actions with labels and accelerators, and the Wails menu built from it.
package appmenu

import (
	"errors"
	"fmt"

	"github.com/petervdpas/tabshell/internal/proto"
)

var ErrUnknownAction = errors.New("appmenu: unrecognized menu action")

// Submenus that carry tab entries.
const (
	SubmenuFile = "File"
	SubmenuView = "View"
)

// Entry is one clickable tab item of the application menu.
type Entry struct {
	Action  string // "tab:new", "tab:3", ...
	Label   string
	Submenu string

	// Accelerator, always with Cmd (macOS) or Ctrl held.
	Key   string
	Shift bool

	// build returns the tab action; active is only consulted by tab:close.
	build func(active string) proto.TabAction
}

var entries = buildEntries()

func buildEntries() []Entry {
	out := []Entry{
		{Action: "tab:new", Label: "New Tab", Submenu: SubmenuFile, Key: "t",
			build: func(string) proto.TabAction { return proto.Add() }},
		{Action: "tab:close", Label: "Close Tab", Submenu: SubmenuFile, Key: "w",
			build: func(active string) proto.TabAction { return proto.Close(active) }},
		{Action: "tab:reopen", Label: "Reopen Closed Tab", Submenu: SubmenuFile, Key: "t", Shift: true,
			build: func(string) proto.TabAction { return proto.Reopen() }},
		{Action: "tab:prev", Label: "Previous Tab", Submenu: SubmenuView, Key: "[", Shift: true,
			build: func(string) proto.TabAction { return proto.Prev() }},
		{Action: "tab:next", Label: "Next Tab", Submenu: SubmenuView, Key: "]", Shift: true,
			build: func(string) proto.TabAction { return proto.Next() }},
	}
	for n := 1; n <= 9; n++ {
		idx := n - 1
		out = append(out, Entry{
			Action:  fmt.Sprintf("tab:%d", n),
			Label:   fmt.Sprintf("Tab %d", n),
			Submenu: SubmenuView,
			Key:     fmt.Sprint(n),
			build:   func(string) proto.TabAction { return proto.ByIndex(idx) },
		})
	}
	return out
}

// Entries returns the menu table in display order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Resolve maps a menu action string to a tab action. active is read only
// for tab:close, at the moment of the click. Strings not in the table yield
// ErrUnknownAction; nothing is parsed.
func Resolve(action string, active func() string) (proto.TabAction, error) {
	for _, e := range entries {
		if e.Action != action {
			continue
		}
		cur := ""
		if e.Action == "tab:close" && active != nil {
			cur = active()
		}
		act := e.build(cur)
		if err := act.Validate(); err != nil {
			return proto.TabAction{}, fmt.Errorf("menu %s: %w", action, err)
		}
		return act, nil
	}
	return proto.TabAction{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
}
