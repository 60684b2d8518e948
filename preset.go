package mtlximport

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// presetKeys are the keys a preset object must carry, all boolean.
var presetKeys = []string{"color_variation", "ao", "translucency", "opacity", "metalness", "displacement"}

// DefaultPreset returns the reset state: every toggle off.
func DefaultPreset() Toggles { return Toggles{} }

// MarshalPreset renders toggles as an indented preset object.
func MarshalPreset(t Toggles) ([]byte, error) {
	b, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// UnmarshalPreset parses a preset object. The object must contain exactly the
// six toggle keys with boolean values.
func UnmarshalPreset(data []byte) (Toggles, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Toggles{}, fmt.Errorf("%w: %w", ErrPresetFormat, err)
	}
	if raw == nil {
		return Toggles{}, fmt.Errorf("%w: not an object", ErrPresetFormat)
	}

	known := make(map[string]struct{}, len(presetKeys))
	for _, k := range presetKeys {
		known[k] = struct{}{}
		v, ok := raw[k]
		if !ok {
			return Toggles{}, fmt.Errorf("%w: missing key %q", ErrPresetFormat, k)
		}
		var b bool
		if err := json.Unmarshal(v, &b); err != nil || string(v) == "null" {
			return Toggles{}, fmt.Errorf("%w: key %q is not a boolean", ErrPresetFormat, k)
		}
	}

	var unknown []string
	for k := range raw {
		if _, ok := known[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Toggles{}, fmt.Errorf("%w: unknown keys %s", ErrPresetFormat, strings.Join(unknown, ", "))
	}

	var t Toggles
	if err := json.Unmarshal(data, &t); err != nil {
		return Toggles{}, fmt.Errorf("%w: %w", ErrPresetFormat, err)
	}

	return t, nil
}

// LoadPreset reads a preset file.
func LoadPreset(path string) (Toggles, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Toggles{}, fmt.Errorf("%w: %w", ErrPresetFormat, err)
	}

	t, err := UnmarshalPreset(b)
	if err != nil {
		return Toggles{}, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// SavePreset writes toggles to path, adding a .json extension when missing.
// It returns the path actually written.
func SavePreset(path string, t Toggles) (string, error) {
	if !strings.HasSuffix(path, ".json") {
		path += ".json"
	}

	b, err := MarshalPreset(t)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return "", err
	}

	return path, nil
}
