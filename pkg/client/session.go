package client

import (
	"context"
	"encoding/json"

	"github.com/go-archipelago/client/pkg/lookup"
	"github.com/go-archipelago/client/pkg/protocol"
	"github.com/go-archipelago/client/pkg/session"
)

// Session is the client's view of a server connection. The production
// implementation is *session.Session; tests substitute a fake.
type Session interface {
	ConnectAndLogin(opts session.LoginOptions) (*protocol.ConnectedPacket, []string)
	OnPacket(fn func(protocol.Packet))
	Start()
	Connected() bool
	Team() int

	SendPacket(p protocol.Packet) error
	Say(text string) error
	CompleteLocationChecks(ids ...int64) error
	AllMissingLocations() []int64
	UpdateTags(itemsHandling protocol.ItemsHandling, tags []string) error
	Lookup(game string) (*lookup.GameLookup, error)

	StorageGet(ctx context.Context, keys ...string) (map[string]json.RawMessage, error)
	StorageSet(key string, value any) error
	NotifyHints(fn func([]protocol.Hint)) error
	TrackClientStatus(slot int, fn func(protocol.ClientStatus)) error
	ClientStatus(ctx context.Context, slot int) (protocol.ClientStatus, error)

	Disconnect() error
}

// Dialer opens a session for TryConnect. Overridable for tests.
type Dialer func(ctx context.Context, info LoginInfo) (Session, error)

func defaultDialer(ctx context.Context, info LoginInfo) (Session, error) {
	return session.Dial(ctx, info.Address, info.Port)
}
