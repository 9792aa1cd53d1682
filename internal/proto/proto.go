// Package proto is the message contract shared by the tab authority, the
// shell presenters and the content surfaces. Everything here travels as JSON,
// either over the bridge (websocket frames, HTTP bodies) or as Wails events.
package proto

// Wails runtime event names.
const (
	// Authority -> shell: authoritative state after every mutation.
	EventTabState = "tabState"

	// Shell -> authority: a TabAction.
	EventTabAction = "tabAction"

	// Go -> shell: ui theme changed on disk.
	EventTheme = "theme"
)

// Shell channel frame types (websocket /ws/shell).
const (
	FrameTabAction = "tabAction" // shell -> go
	FrameGesture   = "gesture"   // shell -> go
	FrameTabState  = "tabState"  // go -> shell, raw state
	FrameView      = "view"      // go -> shell, presenter output
	FrameTheme     = "theme"     // go -> shell
)

// Tab is one entry of the tab strip. Ids look like "tab-<n>" and are never reused.
type Tab struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// TabState is the broadcast published by the authority.
type TabState struct {
	Tabs        []Tab  `json:"tabs"`
	ActiveTabID string `json:"activeTabId"`
}

// Clone returns a copy that shares no memory with s.
func (s TabState) Clone() TabState {
	out := TabState{ActiveTabID: s.ActiveTabID, Tabs: make([]Tab, len(s.Tabs))}
	copy(out.Tabs, s.Tabs)
	return out
}

// IDs returns the tab ids in strip order.
func (s TabState) IDs() []string {
	ids := make([]string, len(s.Tabs))
	for i, t := range s.Tabs {
		ids[i] = t.ID
	}
	return ids
}

// IndexOf returns the strip position of id, or -1.
func (s TabState) IndexOf(id string) int {
	for i, t := range s.Tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Gesture kinds sent by the shell frontend.
const (
	GestureNewTab      = "newTab"
	GestureActivate    = "activate"
	GestureClose       = "close"
	GestureMiddleClick = "middleClick"
	GestureKey         = "key"
)

// Gesture is a raw user interaction on the shell surface. The presenter
// turns it into a TabAction.
type Gesture struct {
	Kind  string `json:"kind"`
	TabID string `json:"tabId,omitempty"`
	Key   string `json:"key,omitempty"`
	Meta  bool   `json:"meta,omitempty"`
	Ctrl  bool   `json:"ctrl,omitempty"`
	Shift bool   `json:"shift,omitempty"`
}

// StripItem is one rendered tab button.
type StripItem struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Surface is one mounted content surface. Inactive surfaces are transparent
// and let input pass through to the interactive one.
type Surface struct {
	TabID          string `json:"tabId"`
	Handle         string `json:"handle"`
	URL            string `json:"url"`
	Interactive    bool   `json:"interactive"`
	Transparent    bool   `json:"transparent"`
	Passthrough    bool   `json:"passthrough"`
	SyncDimensions bool   `json:"syncDimensions,omitempty"`
	Leaving        bool   `json:"leaving,omitempty"`
}

// View is what a presenter renders for its shell.
type View struct {
	Strip       []StripItem `json:"strip"`
	ActiveTabID string      `json:"activeTabId"`
	Surfaces    []Surface   `json:"surfaces"`
}

// Frame is the envelope of every websocket message on the shell channel.
type Frame struct {
	Type    string     `json:"type"`
	ID      string     `json:"id,omitempty"`
	Seq     int64      `json:"seq,omitempty"`
	Action  *TabAction `json:"action,omitempty"`
	Gesture *Gesture   `json:"gesture,omitempty"`
	State   *TabState  `json:"state,omitempty"`
	View    *View      `json:"view,omitempty"`
	Theme   string     `json:"theme,omitempty"`
}
