package client

import (
	"errors"
	"fmt"
)

// ErrMissingTag is returned when a side-channel send is attempted without
// the matching capability tag. That is an integration bug, caught before
// anything reaches the network.
var ErrMissingTag = errors.New("capability tag not advertised")

// SendDeathLink broadcasts a death to every death-link participant. The
// send itself is fire-and-forget under the timeout guard.
func (c *Client) SendDeathLink(cause string) error {
	if t := c.tags; t == nil || !t.Has(TagDeathLink) {
		return fmt.Errorf("cannot send death link: %w", ErrMissingTag)
	}
	sess := c.session
	c.runWithTimeout(func() {
		if err := sess.SendPacket(MakeDeathLinkPacket(c.PlayerName, cause)); err != nil {
			c.Logger.Printf("apclient: death link: %v", err)
		}
	})
	return nil
}

// SendTrapLink broadcasts a triggered trap by its token.
func (c *Client) SendTrapLink(trap string) error {
	if t := c.tags; t == nil || !t.Has(TagTrapLink) {
		return fmt.Errorf("cannot send trap link: %w", ErrMissingTag)
	}
	sess := c.session
	c.runWithTimeout(func() {
		if err := sess.SendPacket(MakeTrapLinkPacket(c.PlayerName, trap)); err != nil {
			c.Logger.Printf("apclient: trap link: %v", err)
		}
	})
	return nil
}

// SendRingLink broadcasts a ring-count change (negative for losses).
func (c *Client) SendRingLink(amount int) error {
	if t := c.tags; t == nil || !t.Has(TagRingLink) {
		return fmt.Errorf("cannot send ring link: %w", ErrMissingTag)
	}
	sess := c.session
	c.runWithTimeout(func() {
		if err := sess.SendPacket(MakeRingLinkPacket(c.PlayerSlot, amount)); err != nil {
			c.Logger.Printf("apclient: ring link: %v", err)
		}
	})
	return nil
}

// AddTrapLinkTrap registers a handler for one trap token; the handler
// receives the sending player's name. The unregistered-trap catch-all must
// exist first, otherwise forgotten tokens would vanish silently.
func (c *Client) AddTrapLinkTrap(trapName string, handler func(source string)) error {
	if len(c.onUnregisteredTrap) == 0 {
		return errors.New("register an OnUnregisteredTrapLink listener before adding specific traps")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.trapLink == nil {
		c.trapLink = make(map[string]func(string))
	}
	c.trapLink[trapName] = handler
	return nil
}
