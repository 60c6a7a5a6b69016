package client

import (
	"time"

	"github.com/go-archipelago/client/pkg/protocol"
)

// Bounce payload builders for the side-channel links. Pure and stateless;
// time is the unix timestamp in fractional seconds, as other clients
// expect.

func MakeDeathLinkPacket(playerName, cause string) *protocol.BouncePacket {
	return &protocol.BouncePacket{
		Cmd:  protocol.CmdBounce,
		Tags: []string{bounceTagDeathLink},
		Data: map[string]any{
			"time":   unixNow(),
			"source": playerName,
			"cause":  cause,
		},
	}
}

func MakeTrapLinkPacket(playerName, trapName string) *protocol.BouncePacket {
	return &protocol.BouncePacket{
		Cmd:  protocol.CmdBounce,
		Tags: []string{bounceTagTrapLink},
		Data: map[string]any{
			"time":      unixNow(),
			"source":    playerName,
			"trap_name": trapName,
		},
	}
}

func MakeRingLinkPacket(playerSlot, amount int) *protocol.BouncePacket {
	return &protocol.BouncePacket{
		Cmd:  protocol.CmdBounce,
		Tags: []string{bounceTagRingLink},
		Data: map[string]any{
			"time":   unixNow(),
			"source": playerSlot,
			"amount": amount,
		},
	}
}

func unixNow() float64 {
	return float64(time.Now().UnixMilli()) / 1000
}
