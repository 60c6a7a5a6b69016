package client

import (
	"strings"

	"github.com/go-archipelago/client/pkg/protocol"
)

// Side-channel bounce tags.
const (
	bounceTagDeathLink = "DeathLink"
	bounceTagTrapLink  = "TrapLink"
	bounceTagRingLink  = "RingLink"
)

// route is the single inbound subscription point. It runs on the session's
// reader goroutine, strictly in delivery order; handlers must not block.
func (c *Client) route(p protocol.Packet) {
	switch pkt := p.(type) {
	case *protocol.PrintJSONPacket:
		c.routePrintJSON(pkt)
	case *protocol.BouncedPacket:
		c.routeBounced(pkt)
	case *protocol.ReceivedItemsPacket:
		c.mu.Lock()
		c.received = append(c.received, pkt.Items...)
		c.mu.Unlock()
	}
}

func (c *Client) routePrintJSON(pkt *protocol.PrintJSONPacket) {
	switch pkt.Type {
	case "Hint":
		for _, fn := range c.onHintPrint {
			fn(pkt)
		}
	case "Chat":
		for _, fn := range c.onChatPrint {
			fn(pkt)
		}
		prefix := "@" + c.PlayerName + " "
		if strings.HasPrefix(pkt.Message, prefix) {
			c.commands.run(pkt, strings.Split(strings.TrimPrefix(pkt.Message, prefix), " "))
		}
	default:
		for _, fn := range c.onPrintJSON {
			fn(pkt)
		}
		if len(pkt.Data) == 1 {
			for _, fn := range c.onServerMessage {
				fn(pkt)
			}
			return
		}
		if len(pkt.Data) < 2 {
			return
		}
		// Item-transfer announcements have no dedicated packet kind; the
		// server phrases them as "<player> found their ..." or
		// "<player> sent ...". Sniffing the second part's text is the only
		// discriminator available and breaks if upstream rewording ever
		// changes these literals.
		if t := pkt.Data[1].Text; t == " found their " || t == " sent " {
			for _, fn := range c.onItemLog {
				fn(pkt)
			}
		}
	}
}

func (c *Client) routeBounced(pkt *protocol.BouncedPacket) {
	for _, fn := range c.onBounced {
		fn(pkt)
	}
	tags := c.tags
	if tags == nil {
		return
	}

	if pkt.HasTag(bounceTagDeathLink) && tags.Has(TagDeathLink) {
		source, _ := pkt.DataString("source")
		if !c.fromSelf(source) {
			cause, ok := pkt.DataString("cause")
			if !ok || cause == "" {
				cause = source + " died"
			}
			for _, fn := range c.onDeathLink {
				fn(source, cause)
			}
		}
	}

	if pkt.HasTag(bounceTagTrapLink) && tags.Has(TagTrapLink) {
		source, _ := pkt.DataString("source")
		if !c.fromSelf(source) {
			trap, _ := pkt.DataString("trap_name")
			c.mu.Lock()
			handler := c.trapLink[trap]
			c.mu.Unlock()
			if handler != nil {
				handler(source)
			} else {
				for _, fn := range c.onUnregisteredTrap {
					fn(trap, source)
				}
			}
		}
	}

	if pkt.HasTag(bounceTagRingLink) && tags.Has(TagRingLink) {
		// Ring links carry the source as a slot number, not a name.
		sourceSlot, _ := pkt.DataInt("source")
		if !(c.ExcludeSelf && sourceSlot == c.PlayerSlot) {
			amount, _ := pkt.DataInt("amount")
			source := c.PlayerNameBySlot(sourceSlot)
			for _, fn := range c.onRingLink {
				fn(source, amount)
			}
		}
	}
}

func (c *Client) fromSelf(source string) bool {
	return c.ExcludeSelf && source == c.PlayerName
}
