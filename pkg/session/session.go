// Package session implements the Archipelago server connection: websocket
// dial, RoomInfo/Connect handshake, the ordered inbound packet loop, and
// the data-storage operations built on Get/Set/SetNotify.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/go-archipelago/client/pkg/lookup"
	"github.com/go-archipelago/client/pkg/protocol"
)

const (
	handshakeTimeout = 15 * time.Second
	writeTimeout     = 5 * time.Second
)

// LoginOptions carries everything Connect needs beyond the dialed socket.
type LoginOptions struct {
	Game            string
	Slot            string
	Password        string
	ItemsHandling   protocol.ItemsHandling
	Version         protocol.Version
	Tags            []string
	RequestSlotData bool
}

// Session is a live connection to one Archipelago room. Create with Dial,
// log in with ConnectAndLogin, then Start the packet loop.
type Session struct {
	Logger *log.Logger

	conn    *websocket.Conn
	writeMu sync.Mutex

	roomInfo *protocol.RoomInfoPacket
	team     int
	slot     int

	mu       sync.Mutex
	missing  map[int64]struct{}
	lookups  map[string]*lookup.GameLookup
	onPacket func(protocol.Packet)
	hintCB   func([]protocol.Hint)
	statusCB map[int]func(protocol.ClientStatus)
	getWait  []*getWaiter

	startOnce sync.Once
	connected atomic.Bool
}

type getWaiter struct {
	keys []string
	ch   chan map[string]rawValue
}

// Dial connects to address:port and waits for the server's RoomInfo. It
// tries wss first, then plain ws, matching what public servers accept.
func Dial(ctx context.Context, address string, port int) (*Session, error) {
	var conn *websocket.Conn
	var lastErr error
	for _, scheme := range []string{"wss", "ws"} {
		u := url.URL{Scheme: scheme, Host: fmt.Sprintf("%s:%d", address, port)}
		c, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
		if err == nil {
			conn = c
			break
		}
		lastErr = err
	}
	if conn == nil {
		return nil, fmt.Errorf("session: dial %s:%d: %w", address, port, lastErr)
	}

	s := &Session{
		Logger:   log.New(os.Stdout, "", log.LstdFlags),
		conn:     conn,
		missing:  make(map[int64]struct{}),
		lookups:  make(map[string]*lookup.GameLookup),
		statusCB: make(map[int]func(protocol.ClientStatus)),
	}

	pkts, err := s.readFrame(handshakeTimeout)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("session: waiting for RoomInfo: %w", err)
	}
	for _, p := range pkts {
		if ri, ok := p.(*protocol.RoomInfoPacket); ok {
			s.roomInfo = ri
		}
	}
	if s.roomInfo == nil {
		conn.Close()
		return nil, errors.New("session: server did not open with RoomInfo")
	}
	return s, nil
}

// RoomInfo returns the packet the server opened the connection with.
func (s *Session) RoomInfo() *protocol.RoomInfoPacket { return s.roomInfo }

// ConnectAndLogin fetches data packages, sends Connect and resolves the
// server's verdict. A nil error slice means success; a non-nil slice holds
// the server's login errors verbatim. The packet loop is not yet running;
// call OnPacket then Start.
func (s *Session) ConnectAndLogin(opts LoginOptions) (*protocol.ConnectedPacket, []string) {
	if err := s.fetchDataPackages(); err != nil {
		return nil, []string{err.Error()}
	}

	connect := &protocol.ConnectPacket{
		Cmd:           protocol.CmdConnect,
		Password:      opts.Password,
		Game:          opts.Game,
		Name:          opts.Slot,
		UUID:          uuid.NewString(),
		Version:       opts.Version,
		ItemsHandling: opts.ItemsHandling,
		Tags:          opts.Tags,
		SlotData:      opts.RequestSlotData,
	}
	if connect.Tags == nil {
		connect.Tags = []string{}
	}
	if err := s.SendPacket(connect); err != nil {
		return nil, []string{err.Error()}
	}

	deadline := time.Now().Add(handshakeTimeout)
	for time.Now().Before(deadline) {
		pkts, err := s.readFrame(time.Until(deadline))
		if err != nil {
			return nil, []string{fmt.Sprintf("login read: %v", err)}
		}
		for _, p := range pkts {
			switch pkt := p.(type) {
			case *protocol.ConnectedPacket:
				s.team = pkt.Team
				s.slot = pkt.Slot
				s.mu.Lock()
				s.missing = make(map[int64]struct{}, len(pkt.MissingLocations))
				for _, id := range pkt.MissingLocations {
					s.missing[id] = struct{}{}
				}
				s.mu.Unlock()
				s.connected.Store(true)
				return pkt, nil
			case *protocol.ConnectionRefusedPacket:
				if len(pkt.Errors) == 0 {
					return nil, []string{"connection refused"}
				}
				return nil, pkt.Errors
			}
		}
	}
	return nil, []string{"login timed out waiting for Connected"}
}

// OnPacket registers the single inbound subscriber. Must be set before
// Start; packets are delivered in arrival order on the reader goroutine.
func (s *Session) OnPacket(fn func(protocol.Packet)) {
	s.mu.Lock()
	s.onPacket = fn
	s.mu.Unlock()
}

// Start launches the reader loop. Safe to call once per session.
func (s *Session) Start() {
	s.startOnce.Do(func() {
		go s.readLoop()
	})
}

// Connected reports whether the transport is still up.
func (s *Session) Connected() bool { return s.connected.Load() }

// Team and Slot identify this session after login.
func (s *Session) Team() int { return s.team }
func (s *Session) Slot() int { return s.slot }

// AllMissingLocations is the server-authoritative unchecked set, kept
// current from RoomUpdate deltas.
func (s *Session) AllMissingLocations() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, 0, len(s.missing))
	for id := range s.missing {
		out = append(out, id)
	}
	return out
}

// SendPacket marshals and writes one command frame. Serialized internally;
// gorilla permits a single concurrent writer.
func (s *Session) SendPacket(p protocol.Packet) error {
	frame, err := protocol.Encode(p)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		s.connected.Store(false)
		return fmt.Errorf("session: write: %w", err)
	}
	return nil
}

// Say sends a chat line.
func (s *Session) Say(text string) error {
	return s.SendPacket(&protocol.SayPacket{Cmd: protocol.CmdSay, Text: text})
}

// CompleteLocationChecks reports the given location ids as checked.
func (s *Session) CompleteLocationChecks(ids ...int64) error {
	return s.SendPacket(&protocol.LocationChecksPacket{
		Cmd:       protocol.CmdLocationChecks,
		Locations: ids,
	})
}

// UpdateTags renegotiates the advertised capability tags.
func (s *Session) UpdateTags(itemsHandling protocol.ItemsHandling, tags []string) error {
	return s.SendPacket(&protocol.ConnectUpdatePacket{
		Cmd:           protocol.CmdConnectUpdate,
		ItemsHandling: itemsHandling,
		Tags:          tags,
	})
}

// Lookup returns the id<->name tables for a game in this room.
func (s *Session) Lookup(game string) (*lookup.GameLookup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gl, ok := s.lookups[game]
	if !ok {
		return nil, fmt.Errorf("session: no data package for game %q", game)
	}
	return gl, nil
}

// Disconnect closes the connection. Best effort; the session is unusable
// afterwards.
func (s *Session) Disconnect() error {
	s.connected.Store(false)
	s.writeMu.Lock()
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	s.writeMu.Unlock()
	return s.conn.Close()
}

// readFrame reads and decodes one frame synchronously. Used only during
// the handshake, before the reader goroutine exists.
func (s *Session) readFrame(timeout time.Duration) ([]protocol.Packet, error) {
	s.conn.SetReadDeadline(time.Now().Add(timeout))
	_, msg, err := s.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return protocol.DecodeAll(msg)
}

func (s *Session) readLoop() {
	s.conn.SetReadDeadline(time.Time{})
	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			s.connected.Store(false)
			return
		}
		pkts, err := protocol.DecodeAll(msg)
		if err != nil {
			s.Logger.Printf("session: dropping frame: %v", err)
			continue
		}
		for _, p := range pkts {
			s.handle(p)
		}
	}
}

// handle applies session-internal bookkeeping, then forwards the packet to
// the subscriber. Runs on the reader goroutine; order is delivery order.
func (s *Session) handle(p protocol.Packet) {
	switch pkt := p.(type) {
	case *protocol.RoomUpdatePacket:
		if len(pkt.CheckedLocations) > 0 {
			s.mu.Lock()
			for _, id := range pkt.CheckedLocations {
				delete(s.missing, id)
			}
			s.mu.Unlock()
		}
	case *protocol.RetrievedPacket:
		s.handleRetrieved(pkt)
	case *protocol.SetReplyPacket:
		s.handleSetReply(pkt)
	}

	s.mu.Lock()
	fn := s.onPacket
	s.mu.Unlock()
	if fn != nil {
		fn(p)
	}
}
