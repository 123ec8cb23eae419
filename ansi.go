package rowan

import "strconv"

// Escape fragments shared by the formatter and the terminal session code.
// Kept as package-level byte slices so hot-path appends never re-slice
// string constants.
var (
	csiClear        = []byte("\x1b[2J\x1b[H")
	csiReset        = []byte("\x1b[0m")
	csiFgPrefix     = []byte("\x1b[38;2;")
	csiBgPrefix     = []byte("\x1b[48;2;")
	csiCursorHide   = []byte("\x1b[?25l")
	csiCursorShow   = []byte("\x1b[?25h")
	csiAltScreenOn  = []byte("\x1b[?1049h")
	csiAltScreenOff = []byte("\x1b[?1049l")
)

// AppendCursorTo appends a cursor-position sequence for the given cell.
// col and row are 0-indexed; the wire form is 1-indexed and the +1
// translation happens here and nowhere else.
func AppendCursorTo(dst []byte, col, row int) []byte {
	dst = append(dst, 0x1b, '[')
	dst = strconv.AppendInt(dst, int64(row)+1, 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(col)+1, 10)
	return append(dst, 'H')
}

// AppendFg appends a true-color foreground SGR sequence.
func AppendFg(dst []byte, c Color) []byte {
	return appendRGB(dst, csiFgPrefix, c)
}

// AppendBg appends a true-color background SGR sequence.
func AppendBg(dst []byte, c Color) []byte {
	return appendRGB(dst, csiBgPrefix, c)
}

func appendRGB(dst, prefix []byte, c Color) []byte {
	dst = append(dst, prefix...)
	dst = strconv.AppendInt(dst, int64(c.R), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(c.G), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(c.B), 10)
	return append(dst, 'm')
}

// AppendReset appends the SGR reset sequence, clearing fg and bg colors.
func AppendReset(dst []byte) []byte {
	return append(dst, csiReset...)
}

// AppendClear appends a clear-screen sequence that also homes the cursor.
func AppendClear(dst []byte) []byte {
	return append(dst, csiClear...)
}
