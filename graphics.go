package rowan

import "strconv"

// ImageFormat is the graphics protocol's pixel format tag. The constant
// values are the wire values of the f= parameter.
type ImageFormat uint8

const (
	FormatRGB  ImageFormat = 24  // packed 8-bit RGB
	FormatRGBA ImageFormat = 32  // packed 8-bit RGBA
	FormatPNG  ImageFormat = 100 // PNG-encoded
)

// Transmission selects how the terminal is told to obtain the payload.
type Transmission uint8

const (
	TransmitDirect   Transmission = iota // payload carried in the sequence itself
	TransmitFile                         // payload names a file readable by the terminal
	TransmitTempFile                     // like TransmitFile, terminal deletes it after use
	TransmitShared                       // payload names a shared memory object
)

// wireByte returns the t= parameter value for this transmission mode.
func (t Transmission) wireByte() byte {
	switch t {
	case TransmitFile:
		return 'f'
	case TransmitTempFile:
		return 't'
	case TransmitShared:
		return 's'
	default:
		return 'd'
	}
}

// ImageData carries everything needed to transmit one image. Data holds the
// payload already base64-encoded by the caller; the toolkit never decodes,
// encodes, or resizes image bytes. PixelWidth and PixelHeight are the decoded
// pixel dimensions declared to the terminal.
type ImageData struct {
	Data         []byte
	PixelWidth   int
	PixelHeight  int
	Format       ImageFormat
	Transmission Transmission
}

// maxChunkSize is the largest payload carried by a single escape sequence.
// Longer payloads are split across continuation sequences chained with the
// m= parameter.
const maxChunkSize = 4096

var (
	apcPreamble   = []byte("\x1b_G")
	apcTerminator = []byte("\x1b\\")
)

// AppendImage appends the graphics escape sequence(s) transmitting and
// displaying img at the current cursor position.
//
// The first sequence carries the full parameter list: a=T (transmit and
// display), f=<format>, s=<width>, v=<height>, t=<transmission>, q=2
// (suppress terminal responses, which would otherwise arrive interleaved
// with key input). When the payload exceeds maxChunkSize it is split: the
// first sequence gains m=1, continuation sequences carry only m=1, and the
// final one m=0.
func AppendImage(dst []byte, img ImageData) []byte {
	payload := img.Data
	chunked := len(payload) > maxChunkSize

	first := payload
	if chunked {
		first = payload[:maxChunkSize]
		payload = payload[maxChunkSize:]
	} else {
		payload = nil
	}

	dst = append(dst, apcPreamble...)
	dst = append(dst, "a=T,f="...)
	dst = strconv.AppendInt(dst, int64(img.Format), 10)
	dst = append(dst, ",s="...)
	dst = strconv.AppendInt(dst, int64(img.PixelWidth), 10)
	dst = append(dst, ",v="...)
	dst = strconv.AppendInt(dst, int64(img.PixelHeight), 10)
	dst = append(dst, ",t="...)
	dst = append(dst, img.Transmission.wireByte())
	dst = append(dst, ",q=2"...)
	if chunked {
		dst = append(dst, ",m=1"...)
	}
	dst = append(dst, ';')
	dst = append(dst, first...)
	dst = append(dst, apcTerminator...)

	for len(payload) > 0 {
		chunk := payload
		if len(chunk) > maxChunkSize {
			chunk = chunk[:maxChunkSize]
		}
		payload = payload[len(chunk):]

		dst = append(dst, apcPreamble...)
		if len(payload) > 0 {
			dst = append(dst, "m=1"...)
		} else {
			dst = append(dst, "m=0"...)
		}
		dst = append(dst, ';')
		dst = append(dst, chunk...)
		dst = append(dst, apcTerminator...)
	}
	return dst
}

// AppendImageAt is AppendImage with an explicit destination cell. The
// protocol places images at the cursor, so the destination is serialized as
// a cursor-move prefix ahead of the graphics sequence.
func AppendImageAt(dst []byte, img ImageData, col, row int) []byte {
	dst = AppendCursorTo(dst, col, row)
	return AppendImage(dst, img)
}
