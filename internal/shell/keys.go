package shell

import "github.com/petervdpas/tabshell/internal/proto"

// KeyAction maps a keydown on the shell surface to a tab action. Only keys
// pressed with Cmd or Ctrl held count. active is the tab a close targets.
//
// Shifted bracket keys arrive as "]" / "[" on some layouts and "}" / "{" on
// others; both are accepted.
func KeyAction(key string, meta, ctrl, shift bool, active string) (proto.TabAction, bool) {
	if !meta && !ctrl {
		return proto.TabAction{}, false
	}

	switch {
	case key == "t" && !shift:
		return proto.Add(), true
	case key == "w" || key == "W":
		if active == "" {
			return proto.TabAction{}, false
		}
		return proto.Close(active), true
	case shift && (key == "T" || key == "t"):
		return proto.Reopen(), true
	case shift && (key == "]" || key == "}"):
		return proto.Next(), true
	case shift && (key == "[" || key == "{"):
		return proto.Prev(), true
	case len(key) == 1 && key[0] >= '1' && key[0] <= '9':
		return proto.ByIndex(int(key[0] - '1')), true
	}
	return proto.TabAction{}, false
}
