package rowan

import "strings"

// KeyCode identifies a logical key. Printable characters use KeyRune with the
// character in Key.Rune; everything else has its own code.
type KeyCode uint8

const (
	KeyRune      KeyCode = iota // printable character (see Key.Rune)
	KeyEscape                   // bare ESC
	KeyEnter                    // CR or LF
	KeyTab                      // horizontal tab
	KeyBacktab                  // shift-tab (CSI Z)
	KeyBackspace                // BS or DEL byte
	KeyDelete                   // forward delete (CSI 3~)
	KeyInsert                   // insert (CSI 2~)
	KeyUp                       // cursor up
	KeyDown                     // cursor down
	KeyLeft                     // cursor left
	KeyRight                    // cursor right
	KeyHome                     // home
	KeyEnd                      // end
	KeyPgUp                     // page up
	KeyPgDn                     // page down
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// ModMask is a bitmask of modifier keys attached to a token.
// Values combine with bitwise OR.
type ModMask uint8

const (
	ModShift ModMask = 1 << iota // Shift key
	ModAlt                       // Alt / Option key
	ModCtrl                      // Control key
)

// Key is a decoded logical key token. Key values are comparable and usable
// as map keys, which is how root-level handlers are registered.
type Key struct {
	Code KeyCode
	Rune rune // valid when Code == KeyRune
	Mod  ModMask
}

// Char returns the literal-character token for r.
func Char(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// keyNames maps non-rune codes to their token spelling.
var keyNames = map[KeyCode]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "shift-tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPgUp:      "pgup",
	KeyPgDn:      "pgdown",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
}

// nameCodes is the inverse of keyNames, built once at init.
var nameCodes = make(map[string]KeyCode, len(keyNames))

func init() {
	for code, name := range keyNames {
		nameCodes[name] = code
	}
}

// String returns the token spelling: "up", "tab", "shift-tab", a literal
// character as itself, with modifier prefixes like "ctrl+" and "alt+".
// Backtab is spelled "shift-tab" with no extra shift prefix.
func (k Key) String() string {
	var b strings.Builder
	if k.Mod&ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if k.Mod&ModAlt != 0 {
		b.WriteString("alt+")
	}
	if k.Mod&ModShift != 0 && k.Code != KeyBacktab {
		b.WriteString("shift+")
	}
	if k.Code == KeyRune {
		b.WriteRune(k.Rune)
	} else {
		b.WriteString(keyNames[k.Code])
	}
	return b.String()
}

// ParseKey converts a token spelling back into a Key. It accepts the names
// produced by Key.String, including modifier prefixes, and single characters
// as literal tokens. Used by scripted input (see LoadScript).
func ParseKey(name string) (Key, bool) {
	var k Key
	for {
		switch {
		case strings.HasPrefix(name, "ctrl+"):
			k.Mod |= ModCtrl
			name = name[len("ctrl+"):]
		case strings.HasPrefix(name, "alt+"):
			k.Mod |= ModAlt
			name = name[len("alt+"):]
		case strings.HasPrefix(name, "shift+"):
			k.Mod |= ModShift
			name = name[len("shift+"):]
		default:
			if code, ok := nameCodes[name]; ok {
				k.Code = code
				return k, true
			}
			runes := []rune(name)
			if len(runes) != 1 {
				return Key{}, false
			}
			k.Code = KeyRune
			k.Rune = runes[0]
			return k, true
		}
	}
}
