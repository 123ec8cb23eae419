package rowan

import "testing"

// --- Token spellings ---

func TestKeyString(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{"rune", Char('a'), "a"},
		{"escape", Key{Code: KeyEscape}, "escape"},
		{"enter", Key{Code: KeyEnter}, "enter"},
		{"tab", Key{Code: KeyTab}, "tab"},
		{"backtab", Key{Code: KeyBacktab}, "shift-tab"},
		{"up", Key{Code: KeyUp}, "up"},
		{"pgdown", Key{Code: KeyPgDn}, "pgdown"},
		{"f12", Key{Code: KeyF12}, "f12"},
		{"ctrl rune", Key{Code: KeyRune, Rune: 'c', Mod: ModCtrl}, "ctrl+c"},
		{"alt rune", Key{Code: KeyRune, Rune: 'x', Mod: ModAlt}, "alt+x"},
		{"shift arrow", Key{Code: KeyUp, Mod: ModShift}, "shift+up"},
		{"ctrl alt", Key{Code: KeyDown, Mod: ModCtrl | ModAlt}, "ctrl+alt+down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBacktabHasNoShiftPrefix(t *testing.T) {
	// Backtab already spells the modifier; an extra shift+ would double it.
	k := Key{Code: KeyBacktab, Mod: ModShift}
	if got := k.String(); got != "shift-tab" {
		t.Errorf("String() = %q, want %q", got, "shift-tab")
	}
}

// --- Parsing ---

func TestParseKeyRoundTrip(t *testing.T) {
	keys := []Key{
		Char('q'),
		{Code: KeyEscape},
		{Code: KeyTab},
		{Code: KeyBacktab},
		{Code: KeyHome},
		{Code: KeyF5},
		{Code: KeyRune, Rune: 's', Mod: ModCtrl},
		{Code: KeyLeft, Mod: ModAlt},
	}
	for _, k := range keys {
		parsed, ok := ParseKey(k.String())
		if !ok {
			t.Errorf("ParseKey(%q) failed", k.String())
			continue
		}
		if parsed != k {
			t.Errorf("ParseKey(%q) = %v, want %v", k.String(), parsed, k)
		}
	}
}

func TestParseKeyInvalid(t *testing.T) {
	for _, name := range []string{"", "nosuchkey", "ctrl+", "f13"} {
		if _, ok := ParseKey(name); ok {
			t.Errorf("ParseKey(%q) should fail", name)
		}
	}
}

func TestParseKeyLiteralCharacter(t *testing.T) {
	k, ok := ParseKey("Z")
	if !ok || k != Char('Z') {
		t.Errorf("ParseKey(\"Z\") = %v, %v", k, ok)
	}
}

// --- Comparability ---

func TestKeyUsableAsMapKey(t *testing.T) {
	m := map[Key]int{
		Char('a'):        1,
		{Code: KeyEnter}: 2,
	}
	if m[Char('a')] != 1 || m[Key{Code: KeyEnter}] != 2 {
		t.Error("equal tokens should hash to the same map entry")
	}
	if _, present := m[Char('b')]; present {
		t.Error("distinct tokens should not collide")
	}
}
