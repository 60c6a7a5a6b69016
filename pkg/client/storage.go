package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Scope addresses the shared data storage.
type Scope int

const (
	// ScopeSlot keys are private to this team+slot.
	ScopeSlot Scope = iota
	// ScopeReadOnly addresses server-managed "_read_" keys.
	ScopeReadOnly
	// ScopeGlobal keys are shared by the whole room.
	ScopeGlobal
)

func (c *Client) storageKey(scope Scope, key string) string {
	switch scope {
	case ScopeSlot:
		return fmt.Sprintf("%d:%d:%s", c.Team, c.PlayerSlot, key)
	case ScopeReadOnly:
		return "_read_" + key
	default:
		return key
	}
}

// SendToStorage serializes value to its JSON text and writes it under the
// scoped key. Values stored this way round-trip through GetFromStorage.
func SendToStorage[T any](c *Client, key string, value T, scope Scope) error {
	sess := c.session
	if sess == nil {
		return errors.New("apclient: not connected")
	}
	text, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("apclient: storage marshal %q: %w", key, err)
	}
	return sess.StorageSet(c.storageKey(scope, key), string(text))
}

// GetFromStorage reads the scoped key and deserializes it into T. Storage
// values are best-effort hints from third parties (other clients, older
// schemas of this one), so every failure — absent key, malformed JSON,
// type mismatch — silently yields def rather than an error.
func GetFromStorage[T any](c *Client, key string, scope Scope, def T) T {
	sess := c.session
	if sess == nil {
		return def
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.ServerTimeout)
	defer cancel()

	full := c.storageKey(scope, key)
	values, err := sess.StorageGet(ctx, full)
	if err != nil {
		return def
	}
	raw, ok := values[full]
	if !ok {
		return def
	}
	var text string
	if json.Unmarshal(raw, &text) != nil {
		return def
	}
	var out T
	if json.Unmarshal([]byte(text), &out) != nil {
		return def
	}
	return out
}
