package appmenu

import (
	"log"

	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"
)

// Build returns the application menu: app menu (quit), File, Edit and View.
// onAction receives the action string of a clicked tab entry.
func Build(appName string, onAction func(action string)) *menu.Menu {
	m := menu.NewMenu()
	m.Append(menu.AppMenu())

	file := m.AddSubmenu(SubmenuFile)
	m.Append(menu.EditMenu())
	view := m.AddSubmenu(SubmenuView)

	for _, e := range entries {
		target := file
		if e.Submenu == SubmenuView {
			target = view
		}
		if e.Action == "tab:1" {
			target.AddSeparator()
		}
		action := e.Action
		target.AddText(e.Label, Accelerator(e), func(*menu.CallbackData) {
			log.Printf("MENU: %s clicked", action)
			onAction(action)
		})
	}

	log.Printf("MENU: built %s menu with %d tab entries", appName, len(entries))
	return m
}

// Accelerator converts a table entry into a Wails key binding.
func Accelerator(e Entry) *keys.Accelerator {
	if e.Shift {
		return keys.Combo(e.Key, keys.CmdOrCtrlKey, keys.ShiftKey)
	}
	return keys.CmdOrCtrl(e.Key)
}
