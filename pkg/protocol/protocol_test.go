package protocol

import (
	"bytes"
	"testing"
)

func TestDecodeAllRoomInfo(t *testing.T) {
	frame := []byte(`[{"cmd":"RoomInfo","version":{"major":0,"minor":5,"build":1,"class":"Version"},` +
		`"games":["Clique","Archipelago"],"datapackage_checksums":{"Clique":"abc"},` +
		`"seed_name":"12345","hint_cost":10}]`)

	pkts, err := DecodeAll(frame)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(pkts) != 1 {
		t.Fatalf("got %d packets, want 1", len(pkts))
	}
	ri, ok := pkts[0].(*RoomInfoPacket)
	if !ok {
		t.Fatalf("got %T, want *RoomInfoPacket", pkts[0])
	}
	if ri.Version.Major != 0 || ri.Version.Minor != 5 {
		t.Errorf("version = %+v", ri.Version)
	}
	if len(ri.Games) != 2 || ri.Games[0] != "Clique" {
		t.Errorf("games = %v", ri.Games)
	}
	if ri.DataPackageChecksums["Clique"] != "abc" {
		t.Errorf("checksums = %v", ri.DataPackageChecksums)
	}
	if ri.HintCost != 10 {
		t.Errorf("hint cost = %d, want 10", ri.HintCost)
	}
}

func TestDecodeAllMultipleCommands(t *testing.T) {
	frame := []byte(`[{"cmd":"PrintJSON","type":"Chat","message":"hello","data":[{"text":"hello"}]},` +
		`{"cmd":"Bounced","tags":["DeathLink"],"data":{"source":"Alice","cause":"fell"}}]`)

	pkts, err := DecodeAll(frame)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(pkts) != 2 {
		t.Fatalf("got %d packets, want 2", len(pkts))
	}

	pj, ok := pkts[0].(*PrintJSONPacket)
	if !ok || pj.Type != "Chat" || pj.Message != "hello" {
		t.Errorf("first packet = %#v", pkts[0])
	}

	b, ok := pkts[1].(*BouncedPacket)
	if !ok {
		t.Fatalf("second packet = %T", pkts[1])
	}
	if !b.HasTag("DeathLink") {
		t.Error("missing DeathLink tag")
	}
	if src, ok := b.DataString("source"); !ok || src != "Alice" {
		t.Errorf("source = %q, ok=%v", src, ok)
	}
	if _, ok := b.DataString("missing"); ok {
		t.Error("DataString on absent key should report !ok")
	}
}

func TestDecodeAllUnknownCommand(t *testing.T) {
	pkts, err := DecodeAll([]byte(`[{"cmd":"InvalidPacket","x":1}]`))
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	u, ok := pkts[0].(*UnknownPacket)
	if !ok {
		t.Fatalf("got %T, want *UnknownPacket", pkts[0])
	}
	if u.Cmd != "InvalidPacket" {
		t.Errorf("cmd = %q", u.Cmd)
	}
}

func TestDecodeAllBadFrame(t *testing.T) {
	if _, err := DecodeAll([]byte(`{"cmd":"RoomInfo"}`)); err == nil {
		t.Error("non-array frame should fail")
	}
	if _, err := DecodeAll([]byte(`[{]`)); err == nil {
		t.Error("malformed JSON should fail")
	}
}

func TestEncodeConnectRoundTrip(t *testing.T) {
	frame, err := Encode(&ConnectPacket{
		Cmd:           CmdConnect,
		Game:          "Clique",
		Name:          "Alice",
		Version:       NewVersion(0, 5, 1),
		ItemsHandling: ItemsHandlingAll,
		Tags:          []string{"DeathLink"},
		SlotData:      true,
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `"cmd":"Connect"`
	if !bytes.Contains(frame, []byte(want)) {
		t.Errorf("frame %s missing %s", frame, want)
	}
	if !bytes.Contains(frame, []byte(`"class":"Version"`)) {
		t.Errorf("frame %s missing version class tag", frame)
	}
}

func TestPrintJSONPlain(t *testing.T) {
	p := &PrintJSONPacket{Data: []JSONMessagePart{{Text: "Bob"}, {Text: " sent "}, {Text: "Sword"}}}
	if got := p.Plain(); got != "Bob sent Sword" {
		t.Errorf("Plain() = %q", got)
	}
}

func TestHintStatusRank(t *testing.T) {
	order := []HintStatus{HintFound, HintPriority, HintNoPriority, HintUnspecified, HintAvoid}
	for i := 1; i < len(order); i++ {
		if HintStatusRank(order[i-1]) >= HintStatusRank(order[i]) {
			t.Errorf("rank(%v) should be < rank(%v)", order[i-1], order[i])
		}
	}
}

func TestItemFlagsRank(t *testing.T) {
	cases := []struct {
		flags ItemFlags
		want  int
	}{
		{FlagAdvancement, 0},
		{FlagAdvancement | FlagTrap, 0}, // progression wins over trap
		{FlagTrap, 10},
		{FlagUseful, 1},
		{0, 2},
	}
	for _, tc := range cases {
		if got := ItemFlagsRank(tc.flags); got != tc.want {
			t.Errorf("ItemFlagsRank(%b) = %d, want %d", tc.flags, got, tc.want)
		}
	}
}
