// Package manifest loads and validates the declarative screen manifest.
//
// The manifest is a single document with a required "screens" mapping and an
// optional "defaults" block. JSON is the primary format; YAML manifests of
// the same shape are accepted as a loader convenience. A Manifest is
// read-only after construction.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"menuflow/pkg/domain"
)

// Manifest holds the screen definitions and shared defaults.
type Manifest struct {
	screens  map[string]domain.Screen
	defaults Defaults
}

// Load reads and parses a manifest file. The decoder is picked by extension
// (.yaml/.yml for YAML, JSON otherwise). Returns *NotFoundError if the file
// is missing and *InvalidError for malformed content.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// Parse builds a Manifest from a JSON document.
func Parse(data []byte) (*Manifest, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &InvalidError{Reason: "malformed JSON", Err: err}
	}
	return decode(raw)
}

// ParseYAML builds a Manifest from a YAML document of the same shape.
func ParseYAML(data []byte) (*Manifest, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &InvalidError{Reason: "malformed YAML", Err: err}
	}
	return decode(raw)
}

// New builds a Manifest directly from screen definitions. Screen IDs are
// taken from the map keys. Intended for tests and embedded configurations.
func New(screens map[string]domain.Screen, defaults Defaults) *Manifest {
	out := make(map[string]domain.Screen, len(screens))
	for id, s := range screens {
		s.ID = id
		out[id] = s
	}
	return &Manifest{screens: out, defaults: defaults}
}

func decode(raw map[string]any) (*Manifest, error) {
	rawScreens, ok := raw["screens"]
	if !ok {
		return nil, &InvalidError{Reason: "manifest must contain 'screens'"}
	}
	screenMap, ok := rawScreens.(map[string]any)
	if !ok {
		return nil, &InvalidError{Reason: fmt.Sprintf("'screens' must be a mapping, got %T", rawScreens)}
	}

	screens := make(map[string]domain.Screen, len(screenMap))
	for id, rawDef := range screenMap {
		screen, err := decodeScreen(id, rawDef)
		if err != nil {
			return nil, err
		}
		screens[id] = screen
	}

	defaults, err := decodeDefaults(raw["defaults"])
	if err != nil {
		return nil, err
	}

	return &Manifest{screens: screens, defaults: defaults}, nil
}

func decodeScreen(id string, rawDef any) (domain.Screen, error) {
	var screen domain.Screen
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &screen,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return screen, fmt.Errorf("failed to build screen decoder: %w", err)
	}
	if err := dec.Decode(rawDef); err != nil {
		return screen, &InvalidError{Reason: fmt.Sprintf("screen %q has malformed structure", id), Err: err}
	}
	screen.ID = id

	switch screen.Kind {
	case domain.KindStatic:
		// Buttons may be empty; buttons missing both target and action are
		// kept and degrade to inert actions at render time.
	case domain.KindDynamic:
		if screen.Source == nil || screen.Source.URL == "" {
			return screen, &InvalidError{Reason: fmt.Sprintf("dynamic screen %q is missing data_source.url", id)}
		}
		if screen.Template == nil || screen.Template.TargetScreen == "" {
			return screen, &InvalidError{Reason: fmt.Sprintf("dynamic screen %q is missing button_template.target_screen", id)}
		}
	case domain.KindPaginated:
		// Items may be empty; Target falls back to a designated screen at
		// render time.
	case domain.KindChatInput:
		// Title only.
	case "":
		return screen, &InvalidError{Reason: fmt.Sprintf("screen %q is missing 'type'", id)}
	default:
		return screen, &InvalidError{Reason: fmt.Sprintf("screen %q has unknown type %q", id, screen.Kind)}
	}

	return screen, nil
}

// Screen looks up a screen definition by id.
func (m *Manifest) Screen(id string) (domain.Screen, bool) {
	s, ok := m.screens[id]
	return s, ok
}

// Has reports whether a screen id exists.
func (m *Manifest) Has(id string) bool {
	_, ok := m.screens[id]
	return ok
}

// ScreenIDs returns all screen ids in deterministic order.
func (m *Manifest) ScreenIDs() []string {
	ids := make([]string, 0, len(m.screens))
	for id := range m.screens {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Defaults returns the shared defaults block.
func (m *Manifest) Defaults() Defaults {
	return m.defaults
}
