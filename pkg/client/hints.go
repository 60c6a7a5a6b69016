package client

import (
	"errors"
	"sort"

	"github.com/go-archipelago/client/pkg/protocol"
)

// receiveHints is the push subscription target. Arrivals only buffer and
// flag; the sort/dedup cost is deferred to PushUpdatedVariables because
// hints come in bursts.
func (c *Client) receiveHints(hints []protocol.Hint) {
	c.mu.Lock()
	c.waitingHints = hints
	c.hintsAwaiting = true
	c.mu.Unlock()
}

// HintsAwaitingUpdate reports whether hints arrived since the last pull.
func (c *Client) HintsAwaitingUpdate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hintsAwaiting
}

// Hints returns the committed ordered hint set from the last sorted pull.
func (c *Client) Hints() []protocol.Hint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hints
}

// PushUpdatedVariables drains the pending-update flag. With updateSorted
// it also recomputes the committed ordered hint set. It returns a copy of
// the raw waiting hints and whether anything changed since the last pull.
// Calling with updateSorted=false still clears the flag: callers that only
// want the raw array opt out of the sort but forfeit the change signal for
// data they already drained.
func (c *Client) PushUpdatedVariables(updateSorted bool) (waiting []protocol.Hint, changed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hintsAwaiting {
		if updateSorted {
			c.hints = orderHints(c.waitingHints, len(c.PlayerNames), c.PlayerSlot)
		}
		c.hintsAwaiting = false
		changed = true
	}
	return append([]protocol.Hint(nil), c.waitingHints...), changed
}

// UpdateHint asks the server to change a hint's status.
func (c *Client) UpdateHint(slot int, location int64, status protocol.HintStatus) error {
	sess := c.session
	if sess == nil {
		return errors.New("apclient: not connected")
	}
	return sess.SendPacket(&protocol.UpdateHintPacket{
		Cmd:      protocol.CmdUpdateHint,
		Player:   slot,
		Location: location,
		Status:   status,
	})
}

// orderHints deduplicates and sorts: status rank, then item-flag rank,
// then receiving player with this client's own slot last, then finding
// player with the same self-last rule, then location id. Hints about
// other players therefore surface before the client's own.
func orderHints(hints []protocol.Hint, playerCount int, selfSlot int) []protocol.Hint {
	seen := make(map[protocol.Hint]struct{}, len(hints))
	out := make([]protocol.Hint, 0, len(hints))
	for _, h := range hints {
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}

	playerRank := func(slot int) int {
		if slot == selfSlot {
			return playerCount + 1
		}
		return slot
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ra, rb := protocol.HintStatusRank(a.Status), protocol.HintStatusRank(b.Status); ra != rb {
			return ra < rb
		}
		if ra, rb := protocol.ItemFlagsRank(a.ItemFlags), protocol.ItemFlagsRank(b.ItemFlags); ra != rb {
			return ra < rb
		}
		if ra, rb := playerRank(a.ReceivingPlayer), playerRank(b.ReceivingPlayer); ra != rb {
			return ra < rb
		}
		if ra, rb := playerRank(a.FindingPlayer), playerRank(b.FindingPlayer); ra != rb {
			return ra < rb
		}
		return a.Location < b.Location
	})
	return out
}
