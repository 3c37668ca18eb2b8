package goat

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// encodeUTF32LE hand-encodes s the same way a Goat bytecode compiler would
// write its wide-character data blob: one 4-byte little-endian code point
// per rune, no BOM.
func encodeUTF32LE(s string) []byte {
	var buf bytes.Buffer
	for _, r := range s {
		var word [4]byte
		binary.LittleEndian.PutUint32(word[:], uint32(r))
		buf.Write(word[:])
	}
	return buf.Bytes()
}

// buildImage assembles a minimal Goat bytecode image byte stream: an
// 8-byte signature, three absolute section offsets, the packed
// instruction array, the packed data-descriptor array, then the raw
// data blob (spec §6).
func buildImage(t *testing.T, instrs []Instruction, literals []string) []byte {
	t.Helper()
	var instrBuf bytes.Buffer
	for _, in := range instrs {
		instrBuf.WriteByte(byte(in.Opcode))
		instrBuf.WriteByte(in.Flags)
		var a0 [2]byte
		binary.LittleEndian.PutUint16(a0[:], in.Arg0)
		instrBuf.Write(a0[:])
		var a1 [4]byte
		binary.LittleEndian.PutUint32(a1[:], in.Arg1)
		instrBuf.Write(a1[:])
	}

	var blob bytes.Buffer
	var descBuf bytes.Buffer
	for _, lit := range literals {
		// Every stored literal carries a trailing null wchar_t; the
		// descriptor's size counts it, so size = rune count + 1.
		enc := encodeUTF32LE(lit + "\x00")
		var desc [12]byte
		binary.LittleEndian.PutUint64(desc[0:8], uint64(blob.Len()))
		binary.LittleEndian.PutUint32(desc[8:12], uint32(len([]rune(lit))+1))
		descBuf.Write(desc[:])
		blob.Write(enc)
	}

	const headerSize = 8 + 24
	instrOffset := uint64(headerSize)
	descOffset := instrOffset + uint64(instrBuf.Len())
	blobOffset := descOffset + uint64(descBuf.Len())

	var out bytes.Buffer
	out.Write(magic[:])
	var offsets [24]byte
	binary.LittleEndian.PutUint64(offsets[0:8], instrOffset)
	binary.LittleEndian.PutUint64(offsets[8:16], descOffset)
	binary.LittleEndian.PutUint64(offsets[16:24], blobOffset)
	out.Write(offsets[:])
	out.Write(instrBuf.Bytes())
	out.Write(descBuf.Bytes())
	out.Write(blob.Bytes())
	return out.Bytes()
}

func TestReadBytecodeRoundTrip(t *testing.T) {
	instrs := []Instruction{
		{Opcode: OpILOAD32, Flags: 0, Arg0: 0, Arg1: 7},
		{Opcode: OpEND},
	}
	raw := buildImage(t, instrs, []string{"hello", "world"})

	image, err := ReadBytecode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadBytecode: %v", err)
	}
	if len(image.Instructions) != 2 {
		t.Fatalf("instructions = %d, want 2", len(image.Instructions))
	}
	if image.Instructions[0].Opcode != OpILOAD32 || image.Instructions[0].Arg1 != 7 {
		t.Fatalf("instruction 0 = %+v, want ILOAD32 arg1=7", image.Instructions[0])
	}
	if image.Instructions[1].Opcode != OpEND {
		t.Fatalf("instruction 1 = %+v, want END", image.Instructions[1])
	}

	if len(image.Strings) != 2 {
		t.Fatalf("strings = %d, want 2", len(image.Strings))
	}
	if image.Strings[0].String() != "hello" {
		t.Fatalf("string 0 = %q, want hello", image.Strings[0].String())
	}
	if image.Strings[1].String() != "world" {
		t.Fatalf("string 1 = %q, want world", image.Strings[1].String())
	}
}

func TestReadBytecodeStripsTrailingNullTerminator(t *testing.T) {
	raw := buildImage(t, []Instruction{{Opcode: OpEND}}, []string{"hi"})
	image, err := ReadBytecode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadBytecode: %v", err)
	}
	if len(image.Strings) != 1 {
		t.Fatalf("strings = %d, want 1", len(image.Strings))
	}
	got := image.Strings[0]
	if len(got.Data) != 2 || got.Data[len(got.Data)-1] == 0 {
		t.Fatalf("decoded literal = %v, want [h i] with the null terminator stripped", got.Data)
	}
	if got.String() != "hi" {
		t.Fatalf("decoded literal = %q, want %q", got.String(), "hi")
	}
}

func TestReadBytecodeRejectsBadSignature(t *testing.T) {
	raw := buildImage(t, []Instruction{{Opcode: OpEND}}, nil)
	raw[0] = 'X'
	if _, err := ReadBytecode(bytes.NewReader(raw)); err == nil {
		t.Fatalf("a corrupted signature should be rejected")
	}
}

func TestReadBytecodeRejectsTruncatedInstructionSection(t *testing.T) {
	raw := buildImage(t, []Instruction{{Opcode: OpEND}}, nil)
	// Truncate the file mid-instruction so the instruction section the
	// header's offsets describe runs past the end of the file.
	truncated := raw[:len(raw)-4]
	if _, err := ReadBytecode(bytes.NewReader(truncated)); err == nil {
		t.Fatalf("a truncated instruction section should be rejected")
	}
}

func TestLoadBytecodeMissingFile(t *testing.T) {
	if _, err := LoadBytecode("/nonexistent/path/to/a.goatc"); err == nil {
		t.Fatalf("loading a missing file should fail")
	}
}
