// Package protocol defines the Archipelago network packets the client
// speaks. Archipelago frames are JSON text messages, each holding an array
// of command objects discriminated by a "cmd" field.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Command names as they appear on the wire.
const (
	CmdRoomInfo          = "RoomInfo"
	CmdConnect           = "Connect"
	CmdConnected         = "Connected"
	CmdConnectionRefused = "ConnectionRefused"
	CmdConnectUpdate     = "ConnectUpdate"
	CmdReceivedItems     = "ReceivedItems"
	CmdLocationChecks    = "LocationChecks"
	CmdLocationInfo      = "LocationInfo"
	CmdRoomUpdate        = "RoomUpdate"
	CmdPrintJSON         = "PrintJSON"
	CmdBounce            = "Bounce"
	CmdBounced           = "Bounced"
	CmdSay               = "Say"
	CmdGetDataPackage    = "GetDataPackage"
	CmdDataPackage       = "DataPackage"
	CmdGet               = "Get"
	CmdRetrieved         = "Retrieved"
	CmdSet               = "Set"
	CmdSetReply          = "SetReply"
	CmdSetNotify         = "SetNotify"
	CmdStatusUpdate      = "StatusUpdate"
	CmdUpdateHint        = "UpdateHint"
	CmdSync              = "Sync"
)

// Packet is implemented by every decoded server command.
type Packet interface {
	packet()
}

type base struct {
	Cmd string `json:"cmd"`
}

// DecodeAll unmarshals one websocket text frame into its command objects,
// preserving order. Unknown commands decode to *UnknownPacket rather than
// failing the whole frame; malformed JSON fails it.
func DecodeAll(frame []byte) ([]Packet, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(frame, &raw); err != nil {
		return nil, fmt.Errorf("protocol: bad frame: %w", err)
	}

	out := make([]Packet, 0, len(raw))
	for _, msg := range raw {
		var b base
		if err := json.Unmarshal(msg, &b); err != nil {
			return nil, fmt.Errorf("protocol: bad command envelope: %w", err)
		}

		p := newPacket(b.Cmd)
		if p == nil {
			out = append(out, &UnknownPacket{Cmd: b.Cmd, Raw: msg})
			continue
		}
		if err := json.Unmarshal(msg, p); err != nil {
			return nil, fmt.Errorf("protocol: decode %s: %w", b.Cmd, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func newPacket(cmd string) Packet {
	switch cmd {
	case CmdRoomInfo:
		return &RoomInfoPacket{}
	case CmdConnected:
		return &ConnectedPacket{}
	case CmdConnectionRefused:
		return &ConnectionRefusedPacket{}
	case CmdReceivedItems:
		return &ReceivedItemsPacket{}
	case CmdLocationInfo:
		return &LocationInfoPacket{}
	case CmdRoomUpdate:
		return &RoomUpdatePacket{}
	case CmdPrintJSON:
		return &PrintJSONPacket{}
	case CmdBounced:
		return &BouncedPacket{}
	case CmdDataPackage:
		return &DataPackagePacket{}
	case CmdRetrieved:
		return &RetrievedPacket{}
	case CmdSetReply:
		return &SetReplyPacket{}
	default:
		return nil
	}
}

// Encode marshals outbound commands into a single frame.
func Encode(pkts ...Packet) ([]byte, error) {
	return json.Marshal(pkts)
}
