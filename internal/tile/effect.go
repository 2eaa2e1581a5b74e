package tile

// Kind is the closed set of gimmick variants from spec.md §3.3. Effects are
// modeled as a tagged sum, not subtype polymorphism: dispatch is a switch on
// Kind, never an interface method set.
type Kind int

const (
	KindNone Kind = iota
	KindIce
	KindChain
	KindGrass
	KindLink
	KindFrog
	KindBomb
	KindCurtain
	KindTeleport
	KindCraft
	KindStack
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindIce:
		return "ice"
	case KindChain:
		return "chain"
	case KindGrass:
		return "grass"
	case KindLink:
		return "link"
	case KindFrog:
		return "frog"
	case KindBomb:
		return "bomb"
	case KindCurtain:
		return "curtain"
	case KindTeleport:
		return "teleport"
	case KindCraft:
		return "craft"
	case KindStack:
		return "stack"
	case KindUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Direction is used by Link and Stack (cardinal only) and by Craft (cardinal
// plus diagonal).
type Direction int

const (
	DirNone Direction = iota
	DirN
	DirS
	DirE
	DirW
	DirNE
	DirNW
	DirSE
	DirSW
)

// Delta returns the (dx, dy) board displacement for a direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirN:
		return 0, 1
	case DirS:
		return 0, -1
	case DirE:
		return 1, 0
	case DirW:
		return -1, 0
	case DirNE:
		return 1, 1
	case DirNW:
		return -1, 1
	case DirSE:
		return 1, -1
	case DirSW:
		return -1, -1
	default:
		return 0, 0
	}
}

// Effect carries per-tile mutable gimmick state. Only the fields relevant to
// Kind are meaningful at any moment; the rest are zero and ignored. Large
// shared data (stack/craft inner sequences) does not live here — it lives in
// a side map on GameState keyed by the tile's canonical key (spec.md §4.B).
type Effect struct {
	Kind Kind

	// Ice
	IceRemaining int

	// Chain
	ChainUnlocked bool

	// Grass
	GrassRemaining int

	// Link (E/W/N/S only)
	LinkDir        Direction
	LinkCanPick    bool
	LinkPartnerKey string

	// Bomb
	BombRemaining int

	// Curtain
	CurtainOpen bool

	// Craft: direction of the emit offset, and the cell it emits into
	CraftDir Direction

	// Stack: direction is cosmetic (N/S/E/W label); the inner sequence pops
	// in place regardless, so no delta is needed here.
	StackDir Direction
}

// PermitsPick reports whether this effect's own predicate allows picking,
// per spec.md §4.D.1 step 4. It does not account for upper-layer blocking,
// frog occupancy, or stack/craft exposure — those are checked separately.
func (e Effect) PermitsPick() bool {
	switch e.Kind {
	case KindIce:
		return e.IceRemaining == 0
	case KindChain:
		return e.ChainUnlocked
	case KindGrass:
		return e.GrassRemaining == 0
	case KindLink:
		return e.LinkCanPick
	case KindCurtain:
		return e.CurtainOpen
	default:
		return true
	}
}
