package rowan

import (
	"bytes"
	"strings"
	"testing"
)

// --- Single-sequence transmission ---

func TestAppendImageSmall(t *testing.T) {
	img := ImageData{
		Data:        []byte("QUJD"),
		PixelWidth:  2,
		PixelHeight: 3,
		Format:      FormatRGB,
	}
	got := string(AppendImage(nil, img))
	want := "\x1b_Ga=T,f=24,s=2,v=3,t=d,q=2;QUJD\x1b\\"
	if got != want {
		t.Errorf("AppendImage = %q, want %q", got, want)
	}
}

func TestAppendImageSmallHasNoChunkFlag(t *testing.T) {
	img := ImageData{Data: []byte("QQ=="), PixelWidth: 1, PixelHeight: 1, Format: FormatPNG}
	got := string(AppendImage(nil, img))
	if strings.Contains(got, "m=") {
		t.Errorf("single-sequence transmission must not carry m=, got %q", got)
	}
}

func TestAppendImageFormats(t *testing.T) {
	tests := []struct {
		format ImageFormat
		want   string
	}{
		{FormatRGB, "f=24"},
		{FormatRGBA, "f=32"},
		{FormatPNG, "f=100"},
	}
	for _, tt := range tests {
		img := ImageData{Data: []byte("QQ=="), PixelWidth: 1, PixelHeight: 1, Format: tt.format}
		got := string(AppendImage(nil, img))
		if !strings.Contains(got, tt.want) {
			t.Errorf("format %d: output %q should contain %q", tt.format, got, tt.want)
		}
	}
}

func TestAppendImageTransmissionModes(t *testing.T) {
	tests := []struct {
		mode Transmission
		want string
	}{
		{TransmitDirect, "t=d"},
		{TransmitFile, "t=f"},
		{TransmitTempFile, "t=t"},
		{TransmitShared, "t=s"},
	}
	for _, tt := range tests {
		img := ImageData{Data: []byte("QQ=="), PixelWidth: 1, PixelHeight: 1, Transmission: tt.mode}
		got := string(AppendImage(nil, img))
		if !strings.Contains(got, tt.want) {
			t.Errorf("mode %d: output %q should contain %q", tt.mode, got, tt.want)
		}
	}
}

// --- Chunked transmission ---

// splitSequences cuts the output stream back into individual escape
// sequences for inspection.
func splitSequences(t *testing.T, raw []byte) []string {
	t.Helper()
	var seqs []string
	for len(raw) > 0 {
		if !bytes.HasPrefix(raw, apcPreamble) {
			t.Fatalf("output does not start with the APC preamble at offset %d", len(seqs))
		}
		end := bytes.Index(raw, apcTerminator)
		if end < 0 {
			t.Fatal("unterminated escape sequence")
		}
		seqs = append(seqs, string(raw[len(apcPreamble):end]))
		raw = raw[end+len(apcTerminator):]
	}
	return seqs
}

func TestAppendImageChunked(t *testing.T) {
	payload := bytes.Repeat([]byte("A"), maxChunkSize*2+100)
	img := ImageData{Data: payload, PixelWidth: 64, PixelHeight: 64, Format: FormatRGBA}

	seqs := splitSequences(t, AppendImage(nil, img))
	if len(seqs) != 3 {
		t.Fatalf("sequence count = %d, want 3", len(seqs))
	}

	// First sequence: full parameters plus the continuation flag.
	first := seqs[0]
	if !strings.HasPrefix(first, "a=T,f=32,s=64,v=64,t=d,q=2,m=1;") {
		t.Errorf("first sequence params wrong: %q", first[:strings.Index(first, ";")+1])
	}

	// Middle carries only m=1, final only m=0.
	if !strings.HasPrefix(seqs[1], "m=1;") {
		t.Errorf("middle sequence should start with m=1;, got %q", seqs[1][:8])
	}
	if !strings.HasPrefix(seqs[2], "m=0;") {
		t.Errorf("final sequence should start with m=0;, got %q", seqs[2][:8])
	}

	// Payload survives the split byte-for-byte, and no chunk exceeds the cap.
	var rejoined []byte
	for _, s := range seqs {
		chunk := s[strings.Index(s, ";")+1:]
		if len(chunk) > maxChunkSize {
			t.Errorf("chunk length %d exceeds %d", len(chunk), maxChunkSize)
		}
		rejoined = append(rejoined, chunk...)
	}
	if !bytes.Equal(rejoined, payload) {
		t.Error("rejoined chunks differ from original payload")
	}
}

func TestAppendImageChunkBoundary(t *testing.T) {
	// Exactly the cap: still a single unchunked sequence.
	img := ImageData{Data: bytes.Repeat([]byte("B"), maxChunkSize), PixelWidth: 8, PixelHeight: 8}
	seqs := splitSequences(t, AppendImage(nil, img))
	if len(seqs) != 1 {
		t.Errorf("payload of exactly maxChunkSize should fit one sequence, got %d", len(seqs))
	}
	if strings.Contains(seqs[0][:strings.Index(seqs[0], ";")], "m=") {
		t.Error("unchunked sequence must not carry m=")
	}

	// One byte over: two sequences.
	img.Data = bytes.Repeat([]byte("B"), maxChunkSize+1)
	seqs = splitSequences(t, AppendImage(nil, img))
	if len(seqs) != 2 {
		t.Errorf("payload one over the cap should split in two, got %d", len(seqs))
	}
	if lastChunk := seqs[1][strings.Index(seqs[1], ";")+1:]; len(lastChunk) != 1 {
		t.Errorf("final chunk length = %d, want 1", len(lastChunk))
	}
}

// --- Destination cell ---

func TestAppendImageAt(t *testing.T) {
	img := ImageData{Data: []byte("QQ=="), PixelWidth: 1, PixelHeight: 1}
	got := string(AppendImageAt(nil, img, 4, 2))
	if !strings.HasPrefix(got, "\x1b[3;5H") {
		t.Errorf("destination cell should serialize as a cursor-move prefix, got %q", got)
	}
	if !strings.Contains(got, "\x1b_G") {
		t.Error("graphics sequence missing after cursor move")
	}
}
