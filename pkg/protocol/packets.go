package protocol

import "encoding/json"

// Version is the Archipelago version tuple sent during login.
type Version struct {
	Major int    `json:"major"`
	Minor int    `json:"minor"`
	Build int    `json:"build"`
	Class string `json:"class"`
}

// NewVersion builds a version tuple with the wire-required class tag.
func NewVersion(major, minor, build int) Version {
	return Version{Major: major, Minor: minor, Build: build, Class: "Version"}
}

// NetworkPlayer is one slot's identity within the room.
type NetworkPlayer struct {
	Team  int    `json:"team"`
	Slot  int    `json:"slot"`
	Alias string `json:"alias"`
	Name  string `json:"name"`
}

// NetworkSlot describes a slot from the Connected slot_info map.
type NetworkSlot struct {
	Name         string `json:"name"`
	Game         string `json:"game"`
	Type         int    `json:"type"`
	GroupMembers []int  `json:"group_members"`
}

// NetworkItem is an item reference: its id, the location it sits at and
// the slot it belongs to.
type NetworkItem struct {
	Item     int64     `json:"item"`
	Location int64     `json:"location"`
	Player   int       `json:"player"`
	Flags    ItemFlags `json:"flags"`
}

// Hint is one record from the server's hint list.
type Hint struct {
	ReceivingPlayer int        `json:"receiving_player"`
	FindingPlayer   int        `json:"finding_player"`
	Location        int64      `json:"location"`
	Item            int64      `json:"item"`
	Found           bool       `json:"found"`
	Entrance        string     `json:"entrance"`
	ItemFlags       ItemFlags  `json:"item_flags"`
	Status          HintStatus `json:"status"`
}

// JSONMessagePart is one segment of a PrintJSON message.
type JSONMessagePart struct {
	Type       string `json:"type,omitempty"`
	Text       string `json:"text,omitempty"`
	Color      string `json:"color,omitempty"`
	Flags      int    `json:"flags,omitempty"`
	Player     int    `json:"player,omitempty"`
	HintStatus int    `json:"hint_status,omitempty"`
}

// GameData is the per-game half of a data package.
type GameData struct {
	ItemNameToID     map[string]int64 `json:"item_name_to_id"`
	LocationNameToID map[string]int64 `json:"location_name_to_id"`
	Checksum         string           `json:"checksum"`
}

// DataStorageOperation is one step of a Set request.
type DataStorageOperation struct {
	Operation string `json:"operation"`
	Value     any    `json:"value"`
}

// server -> client

type RoomInfoPacket struct {
	Cmd                  string            `json:"cmd"`
	Version              Version           `json:"version"`
	GeneratorVersion     Version           `json:"generator_version"`
	Tags                 []string          `json:"tags"`
	Password             bool              `json:"password"`
	Permissions          map[string]int    `json:"permissions"`
	HintCost             int               `json:"hint_cost"`
	LocationCheckPoints  int               `json:"location_check_points"`
	Games                []string          `json:"games"`
	DataPackageChecksums map[string]string `json:"datapackage_checksums"`
	SeedName             string            `json:"seed_name"`
	Time                 float64           `json:"time"`
}

type ConnectedPacket struct {
	Cmd              string                 `json:"cmd"`
	Team             int                    `json:"team"`
	Slot             int                    `json:"slot"`
	Players          []NetworkPlayer        `json:"players"`
	MissingLocations []int64                `json:"missing_locations"`
	CheckedLocations []int64                `json:"checked_locations"`
	SlotData         map[string]any         `json:"slot_data"`
	SlotInfo         map[string]NetworkSlot `json:"slot_info"`
	HintPoints       int                    `json:"hint_points"`
}

type ConnectionRefusedPacket struct {
	Cmd    string   `json:"cmd"`
	Errors []string `json:"errors"`
}

type ReceivedItemsPacket struct {
	Cmd   string        `json:"cmd"`
	Index int           `json:"index"`
	Items []NetworkItem `json:"items"`
}

type LocationInfoPacket struct {
	Cmd       string        `json:"cmd"`
	Locations []NetworkItem `json:"locations"`
}

type RoomUpdatePacket struct {
	Cmd              string          `json:"cmd"`
	HintPoints       *int            `json:"hint_points,omitempty"`
	Players          []NetworkPlayer `json:"players,omitempty"`
	CheckedLocations []int64         `json:"checked_locations,omitempty"`
	Tags             []string        `json:"tags,omitempty"`
}

// PrintJSONPacket carries every textual server message. Type is "Chat",
// "Hint", "ItemSend" and friends; many fields are only present for some
// types.
type PrintJSONPacket struct {
	Cmd       string            `json:"cmd"`
	Data      []JSONMessagePart `json:"data"`
	Type      string            `json:"type,omitempty"`
	Receiving int               `json:"receiving,omitempty"`
	Item      *NetworkItem      `json:"item,omitempty"`
	Found     *bool             `json:"found,omitempty"`
	Team      int               `json:"team,omitempty"`
	Slot      int               `json:"slot,omitempty"`
	Message   string            `json:"message,omitempty"`
	Tags      []string          `json:"tags,omitempty"`
	Countdown int               `json:"countdown,omitempty"`
}

// Plain flattens the message parts into one string.
func (p *PrintJSONPacket) Plain() string {
	var s string
	for _, part := range p.Data {
		s += part.Text
	}
	return s
}

type BouncedPacket struct {
	Cmd   string                     `json:"cmd"`
	Games []string                   `json:"games,omitempty"`
	Slots []int                      `json:"slots,omitempty"`
	Tags  []string                   `json:"tags,omitempty"`
	Data  map[string]json.RawMessage `json:"data"`
}

// HasTag reports whether the bounce was sent under the given tag.
func (p *BouncedPacket) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// DataString extracts a string payload field, ok=false if absent or not a
// string.
func (p *BouncedPacket) DataString(key string) (string, bool) {
	raw, found := p.Data[key]
	if !found {
		return "", false
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return "", false
	}
	return s, true
}

// DataInt extracts an integer payload field.
func (p *BouncedPacket) DataInt(key string) (int, bool) {
	raw, found := p.Data[key]
	if !found {
		return 0, false
	}
	var n int
	if json.Unmarshal(raw, &n) != nil {
		return 0, false
	}
	return n, true
}

type DataPackagePacket struct {
	Cmd  string `json:"cmd"`
	Data struct {
		Games map[string]GameData `json:"games"`
	} `json:"data"`
}

type RetrievedPacket struct {
	Cmd  string                     `json:"cmd"`
	Keys map[string]json.RawMessage `json:"keys"`
}

type SetReplyPacket struct {
	Cmd           string          `json:"cmd"`
	Key           string          `json:"key"`
	Value         json.RawMessage `json:"value"`
	OriginalValue json.RawMessage `json:"original_value"`
}

// UnknownPacket preserves commands this client does not model.
type UnknownPacket struct {
	Cmd string
	Raw json.RawMessage
}

// client -> server

type ConnectPacket struct {
	Cmd           string        `json:"cmd"`
	Password      string        `json:"password"`
	Game          string        `json:"game"`
	Name          string        `json:"name"`
	UUID          string        `json:"uuid"`
	Version       Version       `json:"version"`
	ItemsHandling ItemsHandling `json:"items_handling"`
	Tags          []string      `json:"tags"`
	SlotData      bool          `json:"slot_data"`
}

type ConnectUpdatePacket struct {
	Cmd           string        `json:"cmd"`
	ItemsHandling ItemsHandling `json:"items_handling"`
	Tags          []string      `json:"tags"`
}

type LocationChecksPacket struct {
	Cmd       string  `json:"cmd"`
	Locations []int64 `json:"locations"`
}

type SayPacket struct {
	Cmd  string `json:"cmd"`
	Text string `json:"text"`
}

type GetDataPackagePacket struct {
	Cmd   string   `json:"cmd"`
	Games []string `json:"games"`
}

type GetPacket struct {
	Cmd  string   `json:"cmd"`
	Keys []string `json:"keys"`
}

type SetPacket struct {
	Cmd        string                 `json:"cmd"`
	Key        string                 `json:"key"`
	Default    any                    `json:"default"`
	WantReply  bool                   `json:"want_reply"`
	Operations []DataStorageOperation `json:"operations"`
}

type SetNotifyPacket struct {
	Cmd  string   `json:"cmd"`
	Keys []string `json:"keys"`
}

type BouncePacket struct {
	Cmd   string         `json:"cmd"`
	Games []string       `json:"games,omitempty"`
	Slots []int          `json:"slots,omitempty"`
	Tags  []string       `json:"tags,omitempty"`
	Data  map[string]any `json:"data"`
}

type StatusUpdatePacket struct {
	Cmd    string       `json:"cmd"`
	Status ClientStatus `json:"status"`
}

type UpdateHintPacket struct {
	Cmd      string     `json:"cmd"`
	Player   int        `json:"player"`
	Location int64      `json:"location"`
	Status   HintStatus `json:"status"`
}

type SyncPacket struct {
	Cmd string `json:"cmd"`
}

func (*RoomInfoPacket) packet()          {}
func (*ConnectedPacket) packet()         {}
func (*ConnectionRefusedPacket) packet() {}
func (*ReceivedItemsPacket) packet()     {}
func (*LocationInfoPacket) packet()      {}
func (*RoomUpdatePacket) packet()        {}
func (*PrintJSONPacket) packet()         {}
func (*BouncedPacket) packet()           {}
func (*DataPackagePacket) packet()       {}
func (*RetrievedPacket) packet()         {}
func (*SetReplyPacket) packet()          {}
func (*UnknownPacket) packet()           {}
func (*ConnectPacket) packet()           {}
func (*ConnectUpdatePacket) packet()     {}
func (*LocationChecksPacket) packet()    {}
func (*SayPacket) packet()               {}
func (*GetDataPackagePacket) packet()    {}
func (*GetPacket) packet()               {}
func (*SetPacket) packet()               {}
func (*SetNotifyPacket) packet()         {}
func (*BouncePacket) packet()            {}
func (*StatusUpdatePacket) packet()      {}
func (*UpdateHintPacket) packet()        {}
func (*SyncPacket) packet()              {}
