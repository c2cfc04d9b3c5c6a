package state

import "strings"

// Action is a discrete player input.
type Action int

const (
	ActionMoveLeft Action = iota
	ActionMoveRight
	ActionSoftDrop
	ActionHardDrop
	ActionRotateCw
	ActionRotateCcw
	ActionHold
)

var actionNames = [...]string{
	ActionMoveLeft:  "left",
	ActionMoveRight: "right",
	ActionSoftDrop:  "soft_drop",
	ActionHardDrop:  "hard_drop",
	ActionRotateCw:  "rotate_cw",
	ActionRotateCcw: "rotate_ccw",
	ActionHold:      "hold",
}

// String returns the string representation of an action.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction parses an action name as produced by String.
// Short aliases are accepted: l, r, s (soft drop), d (hard drop), cw, ccw, h.
func ParseAction(s string) (Action, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "l":
		return ActionMoveLeft, true
	case "r":
		return ActionMoveRight, true
	case "s":
		return ActionSoftDrop, true
	case "d":
		return ActionHardDrop, true
	case "cw":
		return ActionRotateCw, true
	case "ccw":
		return ActionRotateCcw, true
	case "h":
		return ActionHold, true
	}
	for i, name := range actionNames {
		if name == s {
			return Action(i), true
		}
	}
	return 0, false
}
