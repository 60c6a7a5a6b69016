package client

import (
	"fmt"
	"sync"

	"github.com/go-archipelago/client/pkg/protocol"
)

// Tag is a client capability flag advertised to the server. Tags gate
// which side-channel broadcasts the server delivers.
type Tag int

const (
	// TagAP marks a reference client; mostly for debugging comparisons.
	TagAP Tag = iota
	// TagNoText asks the server to withhold chat messages.
	TagNoText
	// TagTextOnly marks a chat-and-messaging-only client.
	TagTextOnly
	// TagTracker marks a client that tracks instead of sending locations.
	TagTracker
	// TagHintGame marks a client that sends hints instead of locations.
	TagHintGame
	// TagDeathLink opts into sending and receiving death links.
	TagDeathLink
	// TagTrapLink opts into sending and receiving trap links.
	TagTrapLink
	// TagRingLink opts into sending and receiving ring links.
	TagRingLink
)

var tagNames = map[Tag]string{
	TagAP:        "AP",
	TagNoText:    "NoText",
	TagTextOnly:  "TextOnly",
	TagTracker:   "Tracker",
	TagHintGame:  "HintGame",
	TagDeathLink: "DeathLink",
	TagTrapLink:  "TrapLink",
	TagRingLink:  "RingLink",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "Unknown"
}

// ParseTag converts a wire tag string back to a Tag.
func ParseTag(s string) (Tag, error) {
	for tag, name := range tagNames {
		if name == s {
			return tag, nil
		}
	}
	return 0, fmt.Errorf("%q is not an Archipelago client tag", s)
}

// TagManager owns the advertised capability tag set. Every mutation
// renegotiates with the server via ConnectUpdate so broadcast delivery
// matches what the client holds locally.
type TagManager struct {
	sess          Session
	itemsHandling protocol.ItemsHandling

	mu   sync.Mutex
	tags map[Tag]struct{}
}

func newTagManager(sess Session, itemsHandling protocol.ItemsHandling, initial []Tag) *TagManager {
	m := &TagManager{
		sess:          sess,
		itemsHandling: itemsHandling,
		tags:          make(map[Tag]struct{}, len(initial)),
	}
	for _, t := range initial {
		m.tags[t] = struct{}{}
	}
	return m
}

// Has reports whether the tag is currently advertised.
func (m *TagManager) Has(tag Tag) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tags[tag]
	return ok
}

// List snapshots the advertised tags.
func (m *TagManager) List() []Tag {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Tag, 0, len(m.tags))
	for t := range m.tags {
		out = append(out, t)
	}
	return out
}

// Add advertises a tag. No-op if already present.
func (m *TagManager) Add(tag Tag) error {
	m.mu.Lock()
	if _, ok := m.tags[tag]; ok {
		m.mu.Unlock()
		return nil
	}
	m.tags[tag] = struct{}{}
	m.mu.Unlock()
	return m.update()
}

// Remove withdraws a tag. No-op if absent.
func (m *TagManager) Remove(tag Tag) error {
	m.mu.Lock()
	if _, ok := m.tags[tag]; !ok {
		m.mu.Unlock()
		return nil
	}
	delete(m.tags, tag)
	m.mu.Unlock()
	return m.update()
}

// Toggle flips a tag.
func (m *TagManager) Toggle(tag Tag) error {
	if m.Has(tag) {
		return m.Remove(tag)
	}
	return m.Add(tag)
}

// ToggleDeathLink flips death-link participation.
func (m *TagManager) ToggleDeathLink() error { return m.Toggle(TagDeathLink) }

func (m *TagManager) update() error {
	m.mu.Lock()
	strs := make([]string, 0, len(m.tags))
	for t := range m.tags {
		strs = append(strs, t.String())
	}
	m.mu.Unlock()
	return m.sess.UpdateTags(m.itemsHandling, strs)
}
