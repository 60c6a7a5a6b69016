package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-archipelago/client/pkg/lookup"
	"github.com/go-archipelago/client/pkg/protocol"
	"github.com/go-archipelago/client/pkg/session"
)

// fakeSession implements Session in memory, recording every outbound call
// so tests can assert on exactly what reached (or never reached) the wire.
type fakeSession struct {
	mu sync.Mutex

	connected bool
	team      int
	missing   []int64
	lookups   map[string]*lookup.GameLookup

	login         *protocol.ConnectedPacket
	loginErrs     []string
	loginOpts     session.LoginOptions
	disconnectErr error

	onPacket func(protocol.Packet)
	hintCB   func([]protocol.Hint)
	storage  map[string]json.RawMessage
	statuses map[int]protocol.ClientStatus

	sent        []protocol.Packet
	checkCalls  [][]int64
	said        []string
	tagUpdates  [][]string
	disconnects int
}

// newFakeSession builds a two-player room: Alice in slot 1 (the client
// under test), Bob in slot 2, both playing TestGame.
func newFakeSession() *fakeSession {
	gl := &lookup.GameLookup{
		Items: lookup.FromNameToID(map[string]int64{
			"Progressive Sword": 21,
			"Bomb Trap":         22,
			"Coin":              23,
		}),
		Locations: lookup.FromNameToID(map[string]int64{
			"Bridge": 11,
			"Cave":   12,
			"Summit": 13,
		}),
	}
	return &fakeSession{
		connected: true,
		missing:   []int64{11, 12, 13},
		lookups:   map[string]*lookup.GameLookup{"TestGame": gl},
		storage:   make(map[string]json.RawMessage),
		statuses:  make(map[int]protocol.ClientStatus),
		login: &protocol.ConnectedPacket{
			Cmd:  protocol.CmdConnected,
			Team: 0,
			Slot: 1,
			Players: []protocol.NetworkPlayer{
				{Team: 0, Slot: 1, Name: "Alice"},
				{Team: 0, Slot: 2, Name: "Bob"},
			},
			MissingLocations: []int64{11, 12, 13},
			SlotData:         map[string]any{"difficulty": "hard"},
			SlotInfo: map[string]protocol.NetworkSlot{
				"1": {Name: "Alice", Game: "TestGame"},
				"2": {Name: "Bob", Game: "TestGame"},
			},
		},
	}
}

func (f *fakeSession) dialer(_ context.Context, _ LoginInfo) (Session, error) {
	return f, nil
}

// inject delivers an inbound packet as the reader loop would.
func (f *fakeSession) inject(p protocol.Packet) {
	f.mu.Lock()
	fn := f.onPacket
	f.mu.Unlock()
	if fn != nil {
		fn(p)
	}
}

func (f *fakeSession) ConnectAndLogin(opts session.LoginOptions) (*protocol.ConnectedPacket, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginOpts = opts
	if f.loginErrs != nil {
		return nil, f.loginErrs
	}
	return f.login, nil
}

func (f *fakeSession) OnPacket(fn func(protocol.Packet)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onPacket = fn
}

func (f *fakeSession) Start()          {}
func (f *fakeSession) Connected() bool { f.mu.Lock(); defer f.mu.Unlock(); return f.connected }
func (f *fakeSession) Team() int       { return f.team }

func (f *fakeSession) SendPacket(p protocol.Packet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, p)
	return nil
}

func (f *fakeSession) Say(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.said = append(f.said, text)
	return nil
}

func (f *fakeSession) CompleteLocationChecks(ids ...int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkCalls = append(f.checkCalls, ids)
	return nil
}

func (f *fakeSession) AllMissingLocations() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.missing...)
}

func (f *fakeSession) UpdateTags(itemsHandling protocol.ItemsHandling, tags []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tagUpdates = append(f.tagUpdates, tags)
	return nil
}

func (f *fakeSession) Lookup(game string) (*lookup.GameLookup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gl, ok := f.lookups[game]
	if !ok {
		return nil, fmt.Errorf("no data package for %q", game)
	}
	return gl, nil
}

func (f *fakeSession) StorageGet(_ context.Context, keys ...string) (map[string]json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]json.RawMessage)
	for _, k := range keys {
		if v, ok := f.storage[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (f *fakeSession) StorageSet(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.storage[key] = raw
	return nil
}

func (f *fakeSession) NotifyHints(fn func([]protocol.Hint)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hintCB = fn
	return nil
}

func (f *fakeSession) TrackClientStatus(_ int, _ func(protocol.ClientStatus)) error { return nil }

func (f *fakeSession) ClientStatus(_ context.Context, slot int) (protocol.ClientStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statuses[slot], nil
}

func (f *fakeSession) Disconnect() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnects++
	f.connected = false
	return f.disconnectErr
}

func (f *fakeSession) sentPackets() []protocol.Packet {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]protocol.Packet(nil), f.sent...)
}

func (f *fakeSession) saidMessages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.said...)
}

func (f *fakeSession) checkCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.checkCalls)
}
