package client

import (
	"context"
	"strconv"

	"github.com/go-archipelago/client/pkg/protocol"
	"github.com/go-archipelago/client/pkg/session"
)

// DefaultVersion is the protocol version advertised when ConnectOptions
// leaves it zero.
var DefaultVersion = protocol.NewVersion(0, 5, 1)

// ConnectOptions tunes TryConnect beyond the required arguments.
type ConnectOptions struct {
	// Version advertised to the server; zero value means DefaultVersion.
	Version protocol.Version
	// Tags advertised at login.
	Tags []Tag
	// SkipSlotData skips fetching slot data (it is requested by default).
	SkipSlotData bool
}

// TryConnect dials the server and logs in. It returns nil on success and a
// non-empty list of human-readable errors otherwise; a failed attempt
// leaves the client fully disconnected with no state half-populated. opts
// may be nil.
func (c *Client) TryConnect(info LoginInfo, gameName string, flags protocol.ItemsHandling, opts *ConnectOptions) []string {
	c.mu.Lock()
	if c.state == StateConnected || c.state == StateConnecting {
		c.mu.Unlock()
		return []string{"already connected"}
	}
	c.state = StateConnecting
	c.mu.Unlock()

	errs := c.connect(info, gameName, flags, opts)
	if errs != nil {
		c.mu.Lock()
		c.state = StateDisconnected
		c.mu.Unlock()
		return errs
	}

	c.mu.Lock()
	c.state = StateConnected
	c.mu.Unlock()
	for _, fn := range c.onConnection {
		fn(c)
	}
	return nil
}

func (c *Client) connect(info LoginInfo, gameName string, flags protocol.ItemsHandling, opts *ConnectOptions) []string {
	if opts == nil {
		opts = &ConnectOptions{}
	}
	version := opts.Version
	if version == (protocol.Version{}) {
		version = DefaultVersion
	}
	tagStrings := make([]string, len(opts.Tags))
	for i, t := range opts.Tags {
		tagStrings[i] = t.String()
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.ServerTimeout)
	defer cancel()
	sess, err := c.Dialer(ctx, info)
	if err != nil {
		return []string{err.Error()}
	}

	connected, errs := sess.ConnectAndLogin(session.LoginOptions{
		Game:            gameName,
		Slot:            info.Slot,
		Password:        info.Password,
		ItemsHandling:   flags,
		Version:         version,
		Tags:            tagStrings,
		RequestSlotData: !opts.SkipSlotData,
	})
	if errs != nil {
		sess.Disconnect()
		return errs
	}

	// Resolve the lookup before touching any client state so a failure
	// here leaves nothing half-populated.
	gl, err := sess.Lookup(gameName)
	if err != nil {
		sess.Disconnect()
		return []string{err.Error()}
	}

	c.session = sess
	c.gameLookup = gl
	c.Team = sess.Team()
	c.PlayerSlot = connected.Slot
	c.populatePlayers(connected)
	c.PlayerName = c.PlayerNameBySlot(c.PlayerSlot)

	c.mu.Lock()
	c.missing = make(map[string]struct{})
	for _, id := range sess.AllMissingLocations() {
		c.missing[gl.Locations.NameOr(id, strconv.FormatInt(id, 10))] = struct{}{}
	}
	c.waitingHints = nil
	c.hints = nil
	c.hintsAwaiting = false
	c.received = nil
	c.itemNames = make(map[int64]string)
	c.locationNames = make(map[int64]string)
	c.playerStates = nil
	c.playerListSet = false
	c.goaled = false
	c.trapLink = make(map[string]func(string))
	c.mu.Unlock()

	if !opts.SkipSlotData {
		c.SlotData = connected.SlotData
	}

	c.tags = newTagManager(sess, flags, opts.Tags)

	if err := sess.NotifyHints(c.receiveHints); err != nil {
		c.Logger.Printf("apclient: hint subscription: %v", err)
	}

	sess.OnPacket(c.route)
	sess.Start()
	return nil
}

// populatePlayers fills the slot-indexed name/game arrays from the
// Connected payload. Slot 0 is the server.
func (c *Client) populatePlayers(connected *protocol.ConnectedPacket) {
	maxSlot := 0
	for _, p := range connected.Players {
		if p.Team == c.Team && p.Slot > maxSlot {
			maxSlot = p.Slot
		}
	}
	names := make([]string, maxSlot+1)
	games := make([]string, maxSlot+1)
	names[0] = "Server"
	games[0] = "Archipelago"
	for _, p := range connected.Players {
		if p.Team != c.Team {
			continue
		}
		names[p.Slot] = p.Name
		if info, ok := connected.SlotInfo[strconv.Itoa(p.Slot)]; ok {
			games[p.Slot] = info.Game
		}
	}
	c.PlayerNames = names
	c.PlayerGames = games
}

// UpdateConnection is the periodic liveness poll. The transport does not
// push disconnects reliably, so a silent drop is only observed here; on
// the first poll that sees a dead transport the client moves to
// ConnectionLost and fires the lost notification once.
func (c *Client) UpdateConnection() {
	c.mu.Lock()
	if c.state != StateConnected || c.session.Connected() {
		c.mu.Unlock()
		return
	}
	c.state = StateConnectionLost
	c.mu.Unlock()
	for _, fn := range c.onConnectionLost {
		fn()
	}
}

// TryDisconnect drops the connection. It never fails into the caller: the
// disconnect itself is fire-and-forget with the usual timeout guard, any
// error lands in the log, and the client is Disconnected afterwards no
// matter what.
func (c *Client) TryDisconnect() {
	c.mu.Lock()
	sess := c.session
	c.session = nil
	c.state = StateDisconnected
	c.missing = nil
	c.waitingHints = nil
	c.hints = nil
	c.hintsAwaiting = false
	c.received = nil
	c.trapLink = nil
	c.playerStates = nil
	c.playerListSet = false
	c.mu.Unlock()

	c.tags = nil
	if sess == nil {
		return
	}
	c.runWithTimeout(func() {
		if err := sess.Disconnect(); err != nil {
			c.Logger.Printf("apclient: disconnect: %v", err)
		}
	})
}

// SetupPlayerList starts tracking every slot's play state. Idempotent.
func (c *Client) SetupPlayerList() {
	c.mu.Lock()
	if c.playerListSet {
		c.mu.Unlock()
		return
	}
	c.playerListSet = true
	c.playerStates = make([]protocol.ClientStatus, len(c.PlayerNames))
	sess := c.session
	c.mu.Unlock()

	for slot := 1; slot < len(c.PlayerNames); slot++ {
		err := sess.TrackClientStatus(slot, func(status protocol.ClientStatus) {
			c.mu.Lock()
			if slot < len(c.playerStates) {
				c.playerStates[slot] = status
			}
			c.mu.Unlock()
			for _, fn := range c.onPlayerState {
				fn(slot)
			}
		})
		if err != nil {
			c.Logger.Printf("apclient: track slot %d: %v", slot, err)
		}
	}
}

// PlayerState returns the last observed play state for a slot.
func (c *Client) PlayerState(slot int) protocol.ClientStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	if slot >= 0 && slot < len(c.playerStates) {
		return c.playerStates[slot]
	}
	return protocol.ClientUnknown
}

// Goal reports this slot as having reached its goal. Idempotent per
// connection.
func (c *Client) Goal() {
	c.mu.Lock()
	if c.goaled {
		c.mu.Unlock()
		return
	}
	c.goaled = true
	sess := c.session
	c.mu.Unlock()
	if sess == nil {
		return
	}
	if err := sess.SendPacket(&protocol.StatusUpdatePacket{
		Cmd:    protocol.CmdStatusUpdate,
		Status: protocol.ClientGoal,
	}); err != nil {
		c.Logger.Printf("apclient: goal: %v", err)
	}
}

// HasGoaled reports whether this slot has goaled, checking the server's
// recorded status when the local cache says no.
func (c *Client) HasGoaled() bool {
	c.mu.Lock()
	goaled := c.goaled
	sess := c.session
	c.mu.Unlock()
	if goaled || sess == nil {
		return goaled
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.ServerTimeout)
	defer cancel()
	status, err := sess.ClientStatus(ctx, c.PlayerSlot)
	if err != nil {
		return false
	}
	return status == protocol.ClientGoal
}
