package tile

import "testing"

func TestParseAttributeDefaults(t *testing.T) {
	cases := []struct {
		attr string
		kind Kind
	}{
		{"ice", KindIce},
		{"chain", KindChain},
		{"grass", KindGrass},
		{"frog", KindFrog},
		{"bomb", KindBomb},
		{"curtain", KindCurtain},
		{"teleport", KindTeleport},
		{"craft", KindCraft},
		{"unknown", KindUnknown},
		{"", KindNone},
	}
	for _, c := range cases {
		eff, err := ParseAttribute(c.attr, 0)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.attr, err)
		}
		if eff.Kind != c.kind {
			t.Errorf("%s: got kind %v, want %v", c.attr, eff.Kind, c.kind)
		}
	}
}

func TestParseAttributeIceSuffix(t *testing.T) {
	eff, err := ParseAttribute("ice_2", 0)
	if err != nil {
		t.Fatal(err)
	}
	if eff.Kind != KindIce || eff.IceRemaining != 2 {
		t.Fatalf("got %+v", eff)
	}
}

func TestParseAttributeLinkDirections(t *testing.T) {
	for suffix, want := range map[string]Direction{"e": DirE, "w": DirW, "n": DirN, "s": DirS} {
		eff, err := ParseAttribute("link_"+suffix, 0)
		if err != nil {
			t.Fatal(err)
		}
		if eff.Kind != KindLink || eff.LinkDir != want {
			t.Fatalf("link_%s: got %+v", suffix, eff)
		}
	}
}

func TestParseAttributeBombBounds(t *testing.T) {
	if _, err := ParseAttribute("bomb", 2); err == nil {
		t.Fatal("expected error for bomb remaining below minimum")
	}
	eff, err := ParseAttribute("bomb", 5)
	if err != nil {
		t.Fatal(err)
	}
	if eff.BombRemaining != 5 {
		t.Fatalf("got %d", eff.BombRemaining)
	}
}

func TestParseAttributeUnrecognized(t *testing.T) {
	if _, err := ParseAttribute("glowstick", 0); err == nil {
		t.Fatal("expected error for unrecognized attribute")
	}
}

func TestCurtainOpenClose(t *testing.T) {
	open, err := ParseAttribute("curtain_open", 0)
	if err != nil || !open.CurtainOpen {
		t.Fatalf("curtain_open: got %+v err %v", open, err)
	}
	closed, err := ParseAttribute("curtain_close", 0)
	if err != nil || closed.CurtainOpen {
		t.Fatalf("curtain_close: got %+v err %v", closed, err)
	}
}
