// Package input turns raw pressed-key state into the per-step inputs the
// rule engine expects. It knows nothing about a windowing library: the shell
// supplies a function reporting whether an action's keys are held.
package input

import (
	"errors"
	"fmt"
	"strings"
)

// Action is a player intent that one or more keys can be bound to.
type Action uint8

const (
	Left Action = iota
	Right
	SoftDrop
	Rotate
	HardDrop
	Restart
	Debug

	actionCount
)

// Actions lists every action in declaration order.
var Actions = [actionCount]Action{Left, Right, SoftDrop, Rotate, HardDrop, Restart, Debug}

var actionNames = [actionCount]string{
	Left:     "left",
	Right:    "right",
	SoftDrop: "softDrop",
	Rotate:   "rotate",
	HardDrop: "hardDrop",
	Restart:  "restart",
	Debug:    "debug",
}

func (a Action) String() string {
	if a >= actionCount {
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
	return actionNames[a]
}

// ParseAction accepts the names produced by String, ignoring case.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if strings.EqualFold(n, name) {
			return Action(a), true
		}
	}
	return 0, false
}

// ErrInvalidBindings is wrapped by every error Bindings.Validate returns.
var ErrInvalidBindings = errors.New("invalid key bindings")

// Bindings maps each action to the names of the keys that trigger it. Key
// names are interpreted by the shell.
type Bindings map[Action][]string

// DefaultBindings is arrows plus WASD, space to hard drop.
func DefaultBindings() Bindings {
	return Bindings{
		Left:     {"ArrowLeft", "A"},
		Right:    {"ArrowRight", "D"},
		SoftDrop: {"ArrowDown", "S"},
		Rotate:   {"ArrowUp", "W"},
		HardDrop: {"Space"},
		Restart:  {"R"},
		Debug:    {"F1"},
	}
}

// Validate rejects a key bound to two actions and gameplay actions with no
// key at all. Key names compare case-insensitively.
func (b Bindings) Validate() error {
	owner := make(map[string]Action)
	for _, a := range Actions {
		keys := b[a]
		if len(keys) == 0 && a <= HardDrop {
			return fmt.Errorf("%w: %s has no key", ErrInvalidBindings, a)
		}
		for _, k := range keys {
			name := strings.ToLower(k)
			if name == "" {
				return fmt.Errorf("%w: empty key name for %s", ErrInvalidBindings, a)
			}
			if prev, ok := owner[name]; ok && prev != a {
				return fmt.Errorf("%w: key %q bound to both %s and %s", ErrInvalidBindings, k, prev, a)
			}
			owner[name] = a
		}
	}
	return nil
}

// Merge returns b with every action present in override replaced.
func (b Bindings) Merge(override Bindings) Bindings {
	out := make(Bindings, len(b))
	for a, keys := range b {
		out[a] = append([]string(nil), keys...)
	}
	for a, keys := range override {
		if len(keys) > 0 {
			out[a] = append([]string(nil), keys...)
		}
	}
	return out
}
