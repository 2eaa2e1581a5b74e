package tile

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAttribute translates a level description's attribute string
// (spec.md §4.C step 2: "ice", "ice_1", "chain", "link_e", "bomb", ...)
// into an Effect with its initial state. bombCount, when > 0, overrides the
// default bomb countdown (sourced from the tile's extra[count] field).
func ParseAttribute(attr string, bombCount int) (Effect, error) {
	switch {
	case attr == "" || attr == "none":
		return Effect{Kind: KindNone}, nil

	case attr == "ice":
		return Effect{Kind: KindIce, IceRemaining: defaults.Ice.DefaultRemaining}, nil
	case strings.HasPrefix(attr, "ice_"):
		n, err := parseSuffix(attr, "ice_")
		if err != nil {
			return Effect{}, err
		}
		return Effect{Kind: KindIce, IceRemaining: n}, nil

	case attr == "chain":
		return Effect{Kind: KindChain, ChainUnlocked: false}, nil

	case attr == "grass":
		return Effect{Kind: KindGrass, GrassRemaining: defaults.Grass.DefaultRemaining}, nil
	case strings.HasPrefix(attr, "grass_"):
		n, err := parseSuffix(attr, "grass_")
		if err != nil {
			return Effect{}, err
		}
		return Effect{Kind: KindGrass, GrassRemaining: n}, nil

	case strings.HasPrefix(attr, "link_"):
		dir, err := linkDirection(strings.TrimPrefix(attr, "link_"))
		if err != nil {
			return Effect{}, err
		}
		return Effect{Kind: KindLink, LinkDir: dir, LinkCanPick: false}, nil

	case attr == "frog":
		return Effect{Kind: KindFrog}, nil

	case attr == "bomb":
		n := bombCount
		if n == 0 {
			n = defaults.Bomb.DefaultRemaining
		}
		if n < defaults.Bomb.MinRemaining || n > defaults.Bomb.MaxRemaining {
			return Effect{}, fmt.Errorf("tile: bomb remaining %d out of range [%d,%d]", n, defaults.Bomb.MinRemaining, defaults.Bomb.MaxRemaining)
		}
		return Effect{Kind: KindBomb, BombRemaining: n}, nil

	case attr == "curtain":
		return Effect{Kind: KindCurtain, CurtainOpen: defaults.Curtain.DefaultOpen}, nil
	case attr == "curtain_open":
		return Effect{Kind: KindCurtain, CurtainOpen: true}, nil
	case attr == "curtain_close":
		return Effect{Kind: KindCurtain, CurtainOpen: false}, nil

	case attr == "teleport":
		return Effect{Kind: KindTeleport}, nil

	case strings.HasPrefix(attr, "stack_"):
		dir, err := cardinalDirection(strings.TrimPrefix(attr, "stack_"))
		if err != nil {
			return Effect{}, err
		}
		return Effect{Kind: KindStack, StackDir: dir}, nil

	case attr == "craft":
		return Effect{Kind: KindCraft, CraftDir: DirE}, nil
	case strings.HasPrefix(attr, "craft_"):
		dir, err := fullDirection(strings.TrimPrefix(attr, "craft_"))
		if err != nil {
			return Effect{}, err
		}
		return Effect{Kind: KindCraft, CraftDir: dir}, nil

	case attr == "unknown":
		return Effect{Kind: KindUnknown}, nil

	default:
		return Effect{}, fmt.Errorf("tile: unrecognized attribute %q", attr)
	}
}

func parseSuffix(attr, prefix string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(attr, prefix))
	if err != nil {
		return 0, fmt.Errorf("tile: invalid suffix on attribute %q: %w", attr, err)
	}
	return n, nil
}

func linkDirection(suffix string) (Direction, error) {
	switch suffix {
	case "e":
		return DirE, nil
	case "w":
		return DirW, nil
	case "n":
		return DirN, nil
	case "s":
		return DirS, nil
	default:
		return DirNone, fmt.Errorf("tile: invalid link direction %q", suffix)
	}
}

func cardinalDirection(suffix string) (Direction, error) {
	return linkDirection(suffix)
}

func fullDirection(suffix string) (Direction, error) {
	switch suffix {
	case "n":
		return DirN, nil
	case "s":
		return DirS, nil
	case "e":
		return DirE, nil
	case "w":
		return DirW, nil
	case "ne":
		return DirNE, nil
	case "nw":
		return DirNW, nil
	case "se":
		return DirSE, nil
	case "sw":
		return DirSW, nil
	default:
		return DirNone, fmt.Errorf("tile: invalid direction %q", suffix)
	}
}
