package goat

import (
	"encoding/binary"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode/utf32"
)

// magic is the 8-byte ASCII signature every Goat bytecode image opens
// with (spec §6).
var magic = [8]byte{'g', 'o', 'a', 't', ' ', 'v', '.', '1'}

// Instruction is one fixed 8-byte bytecode word (spec §4.6/§6):
// opcode:u8, flags:u8, arg0:u16, arg1:u32, all little-endian on disk.
type Instruction struct {
	Opcode Opcode
	Flags  uint8
	Arg0   uint16
	Arg1   uint32
}

// DataDescriptor locates one string literal within the data blob: Offset
// is a byte offset into the blob, Size is the literal's length in UTF-32
// code units (spec §6: the blob holds raw wide-char, i.e. wchar_t,
// arrays), including the trailing null terminator every stored literal
// carries. A literal's usable length is therefore Size-1 wchar_t units.
type DataDescriptor struct {
	Offset uint64
	Size   uint32
}

// Bytecode is a fully loaded, ready-to-run image: the instruction
// stream and the string-literal table decoded from the image's data
// blob. The raw blob itself is not kept.
type Bytecode struct {
	Instructions []Instruction
	Strings      []*StringValue
}

// newUTF32Decoder builds a fresh decoder for the image's wide-character
// literal blob. spec §6's wchar_t data is platform-width, but the
// bytecode compiler that produced a given image fixes that width at
// compile time; this runtime only ever needs to read images it produced
// itself, so little-endian UTF-32 is assumed throughout, mirroring the
// teacher's own fixed-width wide-character handling in
// sequence-string.go. A fresh decoder per literal avoids any carried
// transformer state between unrelated strings.
func newUTF32Decoder() *encoding.Decoder {
	return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM).NewDecoder()
}

// LoadBytecode reads and validates a Goat bytecode image from path.
func LoadBytecode(path string) (*Bytecode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadBytecode(f)
}

// ReadBytecode parses a Goat bytecode image from r, which must support
// seeking (the header's offsets are absolute positions within it).
func ReadBytecode(r io.ReadSeeker) (*Bytecode, error) {
	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, errBadBytecode("reading signature: %v", err)
	}
	if header != magic {
		return nil, errBadBytecode("bad signature %q", header)
	}

	var offsets [3]uint64
	if err := binary.Read(r, binary.LittleEndian, &offsets); err != nil {
		return nil, errBadBytecode("reading section offsets: %v", err)
	}
	instrOffset, descOffset, blobOffset := offsets[0], offsets[1], offsets[2]

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, errBadBytecode("seeking to start: %v", err)
	}
	full, err := io.ReadAll(r)
	if err != nil {
		return nil, errBadBytecode("reading image: %v", err)
	}

	instructions, err := decodeInstructions(full, instrOffset, descOffset)
	if err != nil {
		return nil, err
	}
	descs, err := decodeDescriptors(full, descOffset, blobOffset)
	if err != nil {
		return nil, err
	}
	strs, err := decodeStrings(full, blobOffset, descs)
	if err != nil {
		return nil, err
	}
	return &Bytecode{Instructions: instructions, Strings: strs}, nil
}

func decodeInstructions(full []byte, start, end uint64) ([]Instruction, error) {
	if end < start || end > uint64(len(full)) {
		return nil, errBadBytecode("instruction section out of range")
	}
	region := full[start:end]
	if len(region)%8 != 0 {
		return nil, errBadBytecode("instruction section not a multiple of 8 bytes")
	}
	out := make([]Instruction, len(region)/8)
	for i := range out {
		w := region[i*8 : i*8+8]
		out[i] = Instruction{
			Opcode: Opcode(w[0]),
			Flags:  w[1],
			Arg0:   binary.LittleEndian.Uint16(w[2:4]),
			Arg1:   binary.LittleEndian.Uint32(w[4:8]),
		}
	}
	return out, nil
}

func decodeDescriptors(full []byte, start, end uint64) ([]DataDescriptor, error) {
	if end < start || end > uint64(len(full)) {
		return nil, errBadBytecode("data-descriptor section out of range")
	}
	region := full[start:end]
	const entrySize = 12 // offset:u64 + size:u32
	if len(region)%entrySize != 0 {
		return nil, errBadBytecode("data-descriptor section not a multiple of %d bytes", entrySize)
	}
	out := make([]DataDescriptor, len(region)/entrySize)
	for i := range out {
		e := region[i*entrySize : i*entrySize+entrySize]
		out[i] = DataDescriptor{
			Offset: binary.LittleEndian.Uint64(e[0:8]),
			Size:   binary.LittleEndian.Uint32(e[8:12]),
		}
	}
	return out, nil
}

func decodeStrings(full []byte, blobStart uint64, descs []DataDescriptor) ([]*StringValue, error) {
	blob := full[blobStart:]
	out := make([]*StringValue, len(descs))
	for i, d := range descs {
		if d.Size == 0 {
			return nil, errBadBytecode("data descriptor %d has zero size (no room for a null terminator)", i)
		}
		byteLen := uint64(d.Size) * 4
		if d.Offset+byteLen > uint64(len(blob)) {
			return nil, errBadBytecode("data descriptor %d out of range", i)
		}
		// The literal's wchar_t array stores a trailing null terminator
		// that is not part of the string's value; only size-1 units are
		// usable content.
		usableLen := uint64(d.Size-1) * 4
		raw := blob[d.Offset : d.Offset+usableLen]
		decoded, err := newUTF32Decoder().Bytes(raw)
		if err != nil {
			return nil, errBadBytecode("decoding string literal %d: %v", i, err)
		}
		out[i] = &StringValue{Data: []rune(string(decoded)), OwnsData: true}
	}
	return out, nil
}
