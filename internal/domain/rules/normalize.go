package rules

import (
	"fmt"

	sonic "github.com/bytedance/sonic"
)

// Normalized is the canonical form of an uploaded rule set payload.
type Normalized struct {
	Name   string
	Active bool
	Rules  map[string]any
}

// NormalizePayload accepts the three upload shapes seen in the wild — flat
// top-level fields, nested under a "rules" key, and double-nested from a
// client wrapper — and produces one canonical structure. Metadata keys are
// stripped from the extracted rules before storage. The rules payload
// itself is not validated.
func NormalizePayload(raw []byte) (Normalized, error) {
	var payload map[string]any
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return Normalized{}, fmt.Errorf("decode rules payload: %w", err)
	}
	if payload == nil {
		return Normalized{}, fmt.Errorf("decode rules payload: empty document")
	}

	name := metadataName(payload)
	active, activeSet := metadataActive(payload)

	extracted := payload
	if inner, ok := asMap(payload["rules"]); ok {
		extracted = inner
		if name == "" {
			name = metadataName(inner)
		}
		if !activeSet {
			active, activeSet = metadataActive(inner)
		}
		if inner2, ok := asMap(inner["rules"]); ok {
			extracted = inner2
			if name == "" {
				name = metadataName(inner2)
			}
			if !activeSet {
				active, activeSet = metadataActive(inner2)
			}
		}
	}

	if !activeSet {
		active = true
	}

	cleaned := make(map[string]any, len(extracted))
	for key, value := range extracted {
		switch key {
		case "name", "ruleSetName", "active":
			continue
		}
		cleaned[key] = value
	}

	return Normalized{Name: name, Active: active, Rules: cleaned}, nil
}

// EncodeRules serializes the normalized rules map for opaque storage.
func (n Normalized) EncodeRules() ([]byte, error) {
	encoded, err := sonic.Marshal(n.Rules)
	if err != nil {
		return nil, fmt.Errorf("encode normalized rules: %w", err)
	}
	return encoded, nil
}

func metadataName(m map[string]any) string {
	if name, ok := m["name"].(string); ok && name != "" {
		return name
	}
	if name, ok := m["ruleSetName"].(string); ok && name != "" {
		return name
	}
	return ""
}

func metadataActive(m map[string]any) (bool, bool) {
	if active, ok := m["active"].(bool); ok {
		return active, true
	}
	return false, false
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok || m == nil {
		return nil, false
	}
	return m, true
}
