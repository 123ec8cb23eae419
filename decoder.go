package rowan

import (
	"sort"
	"unicode/utf8"
)

// escapeSequence maps one exact byte sequence to its decoded token.
type escapeSequence struct {
	seq string
	key Key
}

// escapeTable holds every recognized escape sequence. Sorted longest-first at
// init so that no entry can shadow a longer sequence sharing its prefix; the
// one-byte bare ESC entry always matches last.
var escapeTable = []escapeSequence{
	// CSI cursor and editing keys.
	{"\x1b[A", Key{Code: KeyUp}},
	{"\x1b[B", Key{Code: KeyDown}},
	{"\x1b[C", Key{Code: KeyRight}},
	{"\x1b[D", Key{Code: KeyLeft}},
	{"\x1b[H", Key{Code: KeyHome}},
	{"\x1b[F", Key{Code: KeyEnd}},
	{"\x1b[Z", Key{Code: KeyBacktab}},
	{"\x1b[1~", Key{Code: KeyHome}},
	{"\x1b[2~", Key{Code: KeyInsert}},
	{"\x1b[3~", Key{Code: KeyDelete}},
	{"\x1b[4~", Key{Code: KeyEnd}},
	{"\x1b[5~", Key{Code: KeyPgUp}},
	{"\x1b[6~", Key{Code: KeyPgDn}},
	{"\x1b[7~", Key{Code: KeyHome}},
	{"\x1b[8~", Key{Code: KeyEnd}},

	// Modified CSI arrows (xterm 1;<mod> encoding: 2=shift, 3=alt, 5=ctrl).
	{"\x1b[1;2A", Key{Code: KeyUp, Mod: ModShift}},
	{"\x1b[1;2B", Key{Code: KeyDown, Mod: ModShift}},
	{"\x1b[1;2C", Key{Code: KeyRight, Mod: ModShift}},
	{"\x1b[1;2D", Key{Code: KeyLeft, Mod: ModShift}},
	{"\x1b[1;3A", Key{Code: KeyUp, Mod: ModAlt}},
	{"\x1b[1;3B", Key{Code: KeyDown, Mod: ModAlt}},
	{"\x1b[1;3C", Key{Code: KeyRight, Mod: ModAlt}},
	{"\x1b[1;3D", Key{Code: KeyLeft, Mod: ModAlt}},
	{"\x1b[1;5A", Key{Code: KeyUp, Mod: ModCtrl}},
	{"\x1b[1;5B", Key{Code: KeyDown, Mod: ModCtrl}},
	{"\x1b[1;5C", Key{Code: KeyRight, Mod: ModCtrl}},
	{"\x1b[1;5D", Key{Code: KeyLeft, Mod: ModCtrl}},
	{"\x1b[1;2H", Key{Code: KeyHome, Mod: ModShift}},
	{"\x1b[1;2F", Key{Code: KeyEnd, Mod: ModShift}},
	{"\x1b[3;2~", Key{Code: KeyDelete, Mod: ModShift}},

	// Function keys, CSI form.
	{"\x1b[15~", Key{Code: KeyF5}},
	{"\x1b[17~", Key{Code: KeyF6}},
	{"\x1b[18~", Key{Code: KeyF7}},
	{"\x1b[19~", Key{Code: KeyF8}},
	{"\x1b[20~", Key{Code: KeyF9}},
	{"\x1b[21~", Key{Code: KeyF10}},
	{"\x1b[23~", Key{Code: KeyF11}},
	{"\x1b[24~", Key{Code: KeyF12}},

	// SS3 sequences (application cursor mode and F1-F4).
	{"\x1bOA", Key{Code: KeyUp}},
	{"\x1bOB", Key{Code: KeyDown}},
	{"\x1bOC", Key{Code: KeyRight}},
	{"\x1bOD", Key{Code: KeyLeft}},
	{"\x1bOH", Key{Code: KeyHome}},
	{"\x1bOF", Key{Code: KeyEnd}},
	{"\x1bOP", Key{Code: KeyF1}},
	{"\x1bOQ", Key{Code: KeyF2}},
	{"\x1bOR", Key{Code: KeyF3}},
	{"\x1bOS", Key{Code: KeyF4}},

	// Bare escape. One byte, so it sorts last and matches only when nothing
	// longer does.
	{"\x1b", Key{Code: KeyEscape}},
}

func init() {
	sort.SliceStable(escapeTable, func(i, j int) bool {
		return len(escapeTable[i].seq) > len(escapeTable[j].seq)
	})
}

// DecodeKeys decodes one chunk of raw input bytes into logical key tokens.
//
// The decoder holds no state across calls: each chunk is decoded
// independently. An escape sequence split across two chunks is therefore
// misread as a bare escape followed by literal characters. Fixing that would
// require carrying an unconsumed-prefix buffer between calls, which changes
// delivery timing for a genuine lone ESC press; the per-chunk behavior is the
// documented trade-off.
//
// Matching walks the chunk left to right. At an ESC byte: a following
// printable rune other than the CSI/SS3 introducers '[' and 'O' decodes as
// that character with the alt modifier (terminals transmit alt+<key> as
// ESC <key>); otherwise the remaining bytes are tested against escapeTable
// (longest sequences first); a match emits the mapped token and consumes the
// whole sequence, and the bare-ESC entry consumes the single byte when
// nothing longer matches. Control bytes map to their editing keys or
// ctrl+letter tokens. Everything else is decoded as UTF-8 and emitted as a
// literal character token.
func DecodeKeys(chunk []byte) []Key {
	var keys []Key
	rem := chunk
	for len(rem) > 0 {
		if rem[0] == 0x1b {
			// '[' and 'O' introduce CSI/SS3 sequences, never an alt
			// character, so an unknown sequence still degrades to a bare
			// escape plus literals.
			if len(rem) >= 2 && rem[1] != '[' && rem[1] != 'O' && rem[1] >= 0x20 && rem[1] != 0x7f {
				r, size := utf8.DecodeRune(rem[1:])
				keys = append(keys, Key{Code: KeyRune, Rune: r, Mod: ModAlt})
				rem = rem[1+size:]
				continue
			}
			for _, e := range escapeTable {
				if hasPrefix(rem, e.seq) {
					keys = append(keys, e.key)
					rem = rem[len(e.seq):]
					break
				}
			}
			continue
		}
		b := rem[0]
		if b < 0x20 || b == 0x7f {
			if k, ok := controlKey(b); ok {
				keys = append(keys, k)
			}
			rem = rem[1:]
			continue
		}
		r, size := utf8.DecodeRune(rem)
		keys = append(keys, Key{Code: KeyRune, Rune: r})
		rem = rem[size:]
	}
	return keys
}

// controlKey maps a C0 control byte to its token. NUL and the control bytes
// with no useful key meaning report ok=false and are dropped.
func controlKey(b byte) (Key, bool) {
	switch b {
	case 0x00:
		return Key{}, false
	case 0x08, 0x7f:
		return Key{Code: KeyBackspace}, true
	case 0x09:
		return Key{Code: KeyTab}, true
	case 0x0a, 0x0d:
		return Key{Code: KeyEnter}, true
	}
	if b >= 0x01 && b <= 0x1a {
		return Key{Code: KeyRune, Rune: rune('a' + b - 1), Mod: ModCtrl}, true
	}
	return Key{}, false
}

func hasPrefix(b []byte, prefix string) bool {
	if len(b) < len(prefix) {
		return false
	}
	// The conversion does not allocate in a direct comparison.
	return string(b[:len(prefix)]) == prefix
}
