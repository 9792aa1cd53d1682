package proto

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidAction is returned when a TabAction fails to decode or validate.
var ErrInvalidAction = errors.New("invalid tab action")

type ActionType string

const (
	ActionAdd      ActionType = "add"
	ActionClose    ActionType = "close"
	ActionActivate ActionType = "activate"
	ActionReopen   ActionType = "reopen"
	ActionPrev     ActionType = "prev"
	ActionNext     ActionType = "next"
	ActionByIndex  ActionType = "byIndex"
)

// TabAction is the tagged union of mutation requests. Only the fields that
// belong to Type are meaningful: ID for close/activate, Index for byIndex.
// The tags mirror the wire codec below so generated Wails bindings agree.
type TabAction struct {
	Type  ActionType `json:"type"`
	ID    string     `json:"id,omitempty"`
	Index int        `json:"index,omitempty"`
}

func Add() TabAction { return TabAction{Type: ActionAdd} }

func Close(id string) TabAction { return TabAction{Type: ActionClose, ID: id} }

func Activate(id string) TabAction { return TabAction{Type: ActionActivate, ID: id} }

func Reopen() TabAction { return TabAction{Type: ActionReopen} }

func Prev() TabAction { return TabAction{Type: ActionPrev} }

func Next() TabAction { return TabAction{Type: ActionNext} }

func ByIndex(i int) TabAction { return TabAction{Type: ActionByIndex, Index: i} }

// Throttled reports whether the action is subject to the shared mutation throttle.
func (a TabAction) Throttled() bool {
	switch a.Type {
	case ActionAdd, ActionClose, ActionReopen:
		return true
	}
	return false
}

// Validate checks the tag and the fields the tag requires.
func (a TabAction) Validate() error {
	switch a.Type {
	case ActionAdd, ActionReopen, ActionPrev, ActionNext:
		return nil
	case ActionClose, ActionActivate:
		if a.ID == "" {
			return fmt.Errorf("%w: %s requires id", ErrInvalidAction, a.Type)
		}
		return nil
	case ActionByIndex:
		if a.Index < 0 {
			return fmt.Errorf("%w: byIndex requires index >= 0", ErrInvalidAction)
		}
		return nil
	case "":
		return fmt.Errorf("%w: missing type", ErrInvalidAction)
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidAction, a.Type)
	}
}

func (a TabAction) String() string {
	switch a.Type {
	case ActionClose, ActionActivate:
		return fmt.Sprintf("%s(%s)", a.Type, a.ID)
	case ActionByIndex:
		return fmt.Sprintf("byIndex(%d)", a.Index)
	}
	return string(a.Type)
}

type wireAction struct {
	Type  ActionType `json:"type"`
	ID    *string    `json:"id,omitempty"`
	Index *int       `json:"index,omitempty"`
}

// MarshalJSON emits only the fields of the active variant, so byIndex(0)
// keeps its index and add carries no id.
func (a TabAction) MarshalJSON() ([]byte, error) {
	w := wireAction{Type: a.Type}
	switch a.Type {
	case ActionClose, ActionActivate:
		id := a.ID
		w.ID = &id
	case ActionByIndex:
		idx := a.Index
		w.Index = &idx
	}
	return json.Marshal(w)
}

func (a *TabAction) UnmarshalJSON(b []byte) error {
	var w wireAction
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}
	out := TabAction{Type: w.Type}
	switch w.Type {
	case ActionClose, ActionActivate:
		if w.ID != nil {
			out.ID = *w.ID
		}
	case ActionByIndex:
		if w.Index == nil {
			return fmt.Errorf("%w: byIndex requires index", ErrInvalidAction)
		}
		out.Index = *w.Index
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*a = out
	return nil
}
