package protocol

// ClientStatus is a slot's reported play state. Values are fixed by the
// network protocol.
type ClientStatus int

const (
	ClientUnknown   ClientStatus = 0
	ClientConnected ClientStatus = 5
	ClientReady     ClientStatus = 10
	ClientPlaying   ClientStatus = 20
	ClientGoal      ClientStatus = 30
)

func (s ClientStatus) String() string {
	switch s {
	case ClientUnknown:
		return "unknown"
	case ClientConnected:
		return "connected"
	case ClientReady:
		return "ready"
	case ClientPlaying:
		return "playing"
	case ClientGoal:
		return "goal"
	default:
		return "invalid"
	}
}

// ItemFlags classifies an item.
type ItemFlags int

const (
	FlagAdvancement ItemFlags = 1 << iota
	FlagUseful
	FlagTrap
)

func (f ItemFlags) Has(flag ItemFlags) bool { return f&flag != 0 }

// HintStatus is the priority a hint carries. Values are fixed by the
// network protocol.
type HintStatus int

const (
	HintUnspecified HintStatus = 0
	HintNoPriority  HintStatus = 10
	HintAvoid       HintStatus = 20
	HintPriority    HintStatus = 30
	HintFound       HintStatus = 40
)

// ItemsHandling tells the server which ReceivedItems to deliver.
type ItemsHandling int

const (
	ItemsHandlingNone     ItemsHandling = 0
	ItemsHandlingRemote   ItemsHandling = 1
	ItemsHandlingOwnWorld ItemsHandling = 2 | ItemsHandlingRemote
	ItemsHandlingStartInv ItemsHandling = 4 | ItemsHandlingRemote
	ItemsHandlingAll      ItemsHandling = ItemsHandlingOwnWorld | ItemsHandlingStartInv
)

// HintStatusRank is the sort rank used when ordering hints for display.
// Deliberately a lookup, not arithmetic on the wire values: found hints
// first, avoid last.
func HintStatusRank(s HintStatus) int {
	switch s {
	case HintFound:
		return 0
	case HintPriority:
		return 1
	case HintNoPriority:
		return 2
	case HintAvoid:
		return 4
	default:
		return 3
	}
}

// ItemFlagsRank is the sort rank for an item classification: progression
// first, traps last.
func ItemFlagsRank(f ItemFlags) int {
	switch {
	case f.Has(FlagAdvancement):
		return 0
	case f.Has(FlagTrap):
		return 10
	case f.Has(FlagUseful):
		return 1
	default:
		return 2
	}
}
