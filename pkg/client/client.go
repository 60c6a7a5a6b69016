// Package client implements the Archipelago client core: connection
// lifecycle, inbound packet routing, local mirrors of server state
// (missing locations, hints, player list) and timeout-guarded outbound
// operations.
package client

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/go-archipelago/client/pkg/lookup"
	"github.com/go-archipelago/client/pkg/protocol"
)

// State is the connection lifecycle position.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateConnectionLost
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateConnectionLost:
		return "connection lost"
	default:
		return "invalid"
	}
}

// ReceivedItem is one granted item with its names resolved.
type ReceivedItem struct {
	Item         protocol.NetworkItem
	ItemName     string
	LocationName string
	PlayerName   string
}

// Client is one connection's worth of Archipelago client state. Create
// with New, register observers, then TryConnect. Observer registration is
// not synchronized; register before connecting.
type Client struct {
	Logger *log.Logger

	// ServerTimeout bounds how long outbound operations are awaited. The
	// underlying work is not cancelled on timeout, only abandoned.
	ServerTimeout time.Duration

	// ExcludeSelf suppresses death/trap/ring link echoes whose source is
	// this client. On by default.
	ExcludeSelf bool

	// Dialer opens the session; tests override it.
	Dialer Dialer

	// Clock is a per-client frame timer for embedding loops.
	Clock Clock

	// identity, populated by TryConnect
	PlayerSlot  int
	Team        int
	PlayerName  string
	PlayerNames []string
	PlayerGames []string
	SlotData    map[string]any

	session    Session
	gameLookup *lookup.GameLookup

	mu            sync.Mutex
	state         State
	missing       map[string]struct{}
	waitingHints  []protocol.Hint
	hintsAwaiting bool
	hints         []protocol.Hint
	received      []protocol.NetworkItem
	itemNames     map[int64]string
	locationNames map[int64]string
	playerStates  []protocol.ClientStatus
	playerListSet bool
	goaled        bool

	tags     *TagManager
	trapLink map[string]func(source string)
	commands *commandHandler

	// observer registries, one per packet kind
	onConnection       []func(*Client)
	onConnectionLost   []func()
	onPlayerState      []func(slot int)
	onHintPrint        []func(*protocol.PrintJSONPacket)
	onChatPrint        []func(*protocol.PrintJSONPacket)
	onPrintJSON        []func(*protocol.PrintJSONPacket)
	onServerMessage    []func(*protocol.PrintJSONPacket)
	onItemLog          []func(*protocol.PrintJSONPacket)
	onBounced          []func(*protocol.BouncedPacket)
	onDeathLink        []func(source, cause string)
	onRingLink         []func(source string, amount int)
	onUnregisteredTrap []func(trap, source string)
	onItemSent         []func(location string)
}

// New creates a disconnected client with defaults.
func New() *Client {
	c := &Client{
		Logger:        log.New(os.Stdout, "", log.LstdFlags),
		ServerTimeout: 10 * time.Second,
		ExcludeSelf:   true,
		Dialer:        defaultDialer,
		state:         StateDisconnected,
	}
	c.commands = newCommandHandler(c)
	return c
}

// State reports the lifecycle position.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsConnected reports whether the client believes it is connected. A
// silent transport drop is only noticed by the next UpdateConnection poll.
func (c *Client) IsConnected() bool { return c.State() == StateConnected }

// Tags exposes the capability tag manager. Nil before the first
// successful connect.
func (c *Client) Tags() *TagManager { return c.tags }

// MissingLocations snapshots the unchecked location names.
func (c *Client) MissingLocations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.missing))
	for name := range c.missing {
		out = append(out, name)
	}
	return out
}

// Lookup exposes this slot's game id<->name tables. Nil before connect.
func (c *Client) Lookup() *lookup.GameLookup { return c.gameLookup }

// observer registration

func (c *Client) OnConnection(fn func(*Client)) { c.onConnection = append(c.onConnection, fn) }
func (c *Client) OnConnectionLost(fn func())    { c.onConnectionLost = append(c.onConnectionLost, fn) }
func (c *Client) OnPlayerStateChanged(fn func(slot int)) {
	c.onPlayerState = append(c.onPlayerState, fn)
}
func (c *Client) OnHintPrint(fn func(*protocol.PrintJSONPacket)) {
	c.onHintPrint = append(c.onHintPrint, fn)
}
func (c *Client) OnChatPrint(fn func(*protocol.PrintJSONPacket)) {
	c.onChatPrint = append(c.onChatPrint, fn)
}
func (c *Client) OnPrintJSON(fn func(*protocol.PrintJSONPacket)) {
	c.onPrintJSON = append(c.onPrintJSON, fn)
}
func (c *Client) OnServerMessage(fn func(*protocol.PrintJSONPacket)) {
	c.onServerMessage = append(c.onServerMessage, fn)
}
func (c *Client) OnItemLog(fn func(*protocol.PrintJSONPacket)) {
	c.onItemLog = append(c.onItemLog, fn)
}
func (c *Client) OnBounced(fn func(*protocol.BouncedPacket)) {
	c.onBounced = append(c.onBounced, fn)
}
func (c *Client) OnDeathLink(fn func(source, cause string)) {
	c.onDeathLink = append(c.onDeathLink, fn)
}
func (c *Client) OnRingLink(fn func(source string, amount int)) {
	c.onRingLink = append(c.onRingLink, fn)
}

// OnUnregisteredTrapLink registers the catch-all for trap tokens without a
// dedicated handler. AddTrapLinkTrap requires one to exist first.
func (c *Client) OnUnregisteredTrapLink(fn func(trap, source string)) {
	c.onUnregisteredTrap = append(c.onUnregisteredTrap, fn)
}

// OnItemSent fires once per location confirmed sent, in send order.
func (c *Client) OnItemSent(fn func(location string)) {
	c.onItemSent = append(c.onItemSent, fn)
}

// PlayerNameBySlot resolves a slot index to a display name.
func (c *Client) PlayerNameBySlot(slot int) string {
	if slot >= 0 && slot < len(c.PlayerNames) {
		return c.PlayerNames[slot]
	}
	return "Unknown"
}
