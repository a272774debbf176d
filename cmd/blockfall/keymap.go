package main

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/input"
)

// Keymap resolves ebiten keys to actions.
type Keymap struct {
	keys *intmap.Map[ebiten.Key, input.Action]
}

// NewKeymap parses the key names in b. Names use ebiten's spelling and are
// case-insensitive.
func NewKeymap(b input.Bindings) (*Keymap, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	km := &Keymap{keys: intmap.New[ebiten.Key, input.Action](16)}
	for _, a := range input.Actions {
		for _, name := range b[a] {
			var key ebiten.Key
			if err := key.UnmarshalText([]byte(name)); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", input.ErrInvalidBindings, a, err)
			}
			km.keys.Put(key, a)
		}
	}
	return km, nil
}

// Action returns the action bound to key.
func (k *Keymap) Action(key ebiten.Key) (input.Action, bool) {
	return k.keys.Get(key)
}

// Pressed samples every bound key once through isDown and returns a reader
// of the result.
func (k *Keymap) Pressed(isDown func(ebiten.Key) bool) func(input.Action) bool {
	var held uint32
	for key, a := range k.keys.All() {
		if isDown(key) {
			held |= 1 << a
		}
	}
	return func(a input.Action) bool {
		return held&(1<<a) != 0
	}
}

// Describe lists "action: keys" lines for the debug overlay.
func (k *Keymap) Describe() []string {
	byAction := make(map[input.Action][]string)
	k.keys.ForEach(func(key ebiten.Key, a input.Action) bool {
		byAction[a] = append(byAction[a], key.String())
		return true
	})

	lines := make([]string, 0, len(byAction))
	for _, a := range input.Actions {
		names := byAction[a]
		if len(names) == 0 {
			continue
		}
		sort.Strings(names)
		lines = append(lines, fmt.Sprintf("%s: %v", a, names))
	}
	return lines
}
