// Package loader provides program image loading for MIPS32 executables.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Conventional MIPS memory layout used by SPIM and MARS.
const (
	// TextBase is where text images without addresses are placed and where
	// execution starts by default.
	TextBase uint32 = 0x00400000

	// DataBase is the start of the static data segment.
	DataBase uint32 = 0x10000000

	// DefaultStackPointer is the initial $sp value.
	DefaultStackPointer uint32 = 0x7FFFEFFC
)

// SegmentFlags represents memory protection flags for a segment.
type SegmentFlags uint32

const (
	// SegmentFlagExecute indicates the segment is executable.
	SegmentFlagExecute SegmentFlags = 1 << iota
	// SegmentFlagWrite indicates the segment is writable.
	SegmentFlagWrite
	// SegmentFlagRead indicates the segment is readable.
	SegmentFlagRead
)

// Segment represents a contiguous block of program memory.
type Segment struct {
	// VirtAddr is the address where this segment should be loaded.
	VirtAddr uint32
	// Data contains the segment contents.
	Data []byte
	// MemSize is the size in memory (may be larger than len(Data) for BSS).
	MemSize uint32
	// Flags contains the segment protection flags.
	Flags SegmentFlags
}

// Program represents a loaded program ready for execution.
type Program struct {
	// EntryPoint is the address where execution should begin.
	EntryPoint uint32
	// Segments contains all loadable segments.
	Segments []Segment
	// InitialSP is the initial stack pointer value.
	InitialSP uint32
}

// ByteLoader is the memory interface LoadInto writes through.
type ByteLoader interface {
	LoadBytes(addr uint32, data []byte)
}

// LoadInto copies every segment into mem and zero-fills BSS.
func (p *Program) LoadInto(mem ByteLoader) {
	for _, seg := range p.Segments {
		mem.LoadBytes(seg.VirtAddr, seg.Data)
		if bss := int64(seg.MemSize) - int64(len(seg.Data)); bss > 0 {
			mem.LoadBytes(seg.VirtAddr+uint32(len(seg.Data)), make([]byte, bss))
		}
	}
}

// elfMagic identifies ELF files.
var elfMagic = []byte{0x7f, 'E', 'L', 'F'}

// Load reads a program image. ELF files are recognized by their magic
// number; anything else is parsed as a text image.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open program file: %w", err)
	}
	defer func() { _ = f.Close() }()

	header := make([]byte, len(elfMagic))
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("failed to read program file: %w", err)
	}

	if n == len(elfMagic) && bytes.Equal(header, elfMagic) {
		return LoadELF(path)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind program file: %w", err)
	}

	return ParseText(f)
}
