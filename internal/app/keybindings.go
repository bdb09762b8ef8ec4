package app

import (
	"slices"
	"strings"

	"github.com/treykane/vscroll/internal/config"
)

// Actions are the layer between key presses and behavior: a key is looked up
// in keyToAction and the resulting action is dispatched in handleKey.
const (
	actionLineUp   = "scroll.line_up"
	actionLineDown = "scroll.line_down"
	actionPageUp   = "scroll.page_up"
	actionPageDown = "scroll.page_down"
	actionHalfUp   = "scroll.half_up"
	actionHalfDown = "scroll.half_down"

	// actionRestart rebuilds the window at the configured initial index.
	actionRestart = "feed.restart"

	actionQuit = "app.quit"
)

// defaultActionKeys maps each action to its default keys, in Bubble Tea
// key notation. config.json "keybindings" replaces an action's full set.
var defaultActionKeys = map[string][]string{
	actionLineUp:   {"up", "k"},
	actionLineDown: {"down", "j"},
	actionPageUp:   {"pgup", "b"},
	actionPageDown: {"pgdown", "space", "f"},
	actionHalfUp:   {"ctrl+u", "u"},
	actionHalfDown: {"ctrl+d", "d"},
	actionRestart:  {"g", "home"},
	actionQuit:     {"q", "ctrl+c"},
}

// loadKeybindings builds the key maps from the defaults and the overrides in
// cfg. Unknown actions are logged and ignored; when two actions claim a key
// the first one keeps it.
func (m *Model) loadKeybindings(cfg config.Config) {
	m.keyForAction = map[string][]string{}
	for action, keys := range defaultActionKeys {
		m.keyForAction[action] = append([]string(nil), keys...)
	}
	for action, key := range cfg.Keybindings {
		m.applyKeybindingOverride(action, key)
	}
	m.rebuildActionKeyIndex()
}

func (m *Model) applyKeybindingOverride(action, key string) {
	action = strings.TrimSpace(action)
	key = normalizeKeyString(key)
	if action == "" || key == "" {
		return
	}
	if _, ok := defaultActionKeys[action]; !ok {
		appLog.Warn("ignore unknown keybinding action", "action", action)
		return
	}
	m.keyForAction[action] = []string{key}
}

func (m *Model) rebuildActionKeyIndex() {
	m.keyToAction = map[string]string{}
	actions := make([]string, 0, len(m.keyForAction))
	for action := range m.keyForAction {
		actions = append(actions, action)
	}
	slices.Sort(actions)
	for _, action := range actions {
		for _, key := range m.keyForAction[action] {
			if key == "" {
				continue
			}
			if existing, ok := m.keyToAction[key]; ok && existing != action {
				appLog.Warn("keybinding conflict ignored", "key", key, "action", action, "existing_action", existing)
				continue
			}
			m.keyToAction[key] = action
		}
	}
}

// normalizeKeyString lowercases a key and rewrites a single uppercase letter
// as shift+letter, so "Y" and "shift+y" bind the same key. Bubble Tea
// reports the space bar as " ".
//
//	normalizeKeyString("Ctrl+D") → "ctrl+d"
//	normalizeKeyString(" G ")    → "shift+g"
//	normalizeKeyString(" ")      → "space"
func normalizeKeyString(key string) string {
	if key == " " {
		return "space"
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if len([]rune(key)) == 1 && strings.ToUpper(key) == key && strings.ToLower(key) != key {
		return "shift+" + strings.ToLower(key)
	}
	return strings.ToLower(key)
}

// actionForKey returns the action bound to key, or "".
func (m *Model) actionForKey(key string) string {
	if m.keyToAction == nil {
		return ""
	}
	return m.keyToAction[normalizeKeyString(key)]
}

func (m *Model) actionKeyLabels(action string) []string {
	keys, ok := m.keyForAction[action]
	if !ok || len(keys) == 0 {
		return nil
	}
	labels := make([]string, 0, len(keys))
	for _, key := range keys {
		label := humanizeKeyLabel(key)
		if label == "" || slices.Contains(labels, label) {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

func (m *Model) primaryActionKey(action, fallback string) string {
	keys := m.actionKeyLabels(action)
	if len(keys) == 0 {
		return fallback
	}
	return keys[0]
}

func humanizeKeyLabel(key string) string {
	normalized := normalizeKeyString(key)
	if normalized == "" {
		return ""
	}
	special := map[string]string{
		"up":     "↑",
		"down":   "↓",
		"home":   "Home",
		"pgup":   "PgUp",
		"pgdown": "PgDn",
		"space":  "Space",
	}
	parts := strings.Split(normalized, "+")
	for i, part := range parts {
		switch part {
		case "ctrl":
			parts[i] = "Ctrl"
		case "alt":
			parts[i] = "Alt"
		case "shift":
			parts[i] = "Shift"
		default:
			if label, ok := special[part]; ok {
				parts[i] = label
				continue
			}
			parts[i] = part
		}
	}
	return strings.Join(parts, "+")
}
