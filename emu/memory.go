package emu

import (
	"encoding/binary"

	"github.com/sarchlab/akita/v4/mem/mem"
)

// WordMemory is the word-granular memory primitive the core executes
// against. Alignment and bounds policy belong to the implementation.
type WordMemory interface {
	Read32(addr uint32) uint32
	Write32(addr uint32, value uint32)
}

// memoryCapacity covers the full 32-bit address space. Storage units are
// only allocated when touched.
const memoryCapacity = uint64(1) << 32

// Memory is a little-endian, byte-addressed backing store implementing
// WordMemory. Unwritten locations read as zero.
type Memory struct {
	storage *mem.Storage
}

// NewMemory creates an empty memory.
func NewMemory() *Memory {
	return &Memory{storage: mem.NewStorage(memoryCapacity)}
}

// Read32 reads the 4 bytes starting at addr.
func (m *Memory) Read32(addr uint32) uint32 {
	return binary.LittleEndian.Uint32(m.read(addr, 4))
}

// Write32 writes value to the 4 bytes starting at addr.
func (m *Memory) Write32(addr uint32, value uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], value)
	m.LoadBytes(addr, buf[:])
}

// Read8 reads a single byte.
func (m *Memory) Read8(addr uint32) uint8 {
	return m.read(addr, 1)[0]
}

// LoadBytes copies data into memory starting at addr. Writes past the top
// of the address space wrap to address 0.
func (m *Memory) LoadBytes(addr uint32, data []byte) {
	if len(data) == 0 {
		return
	}

	if uint64(addr)+uint64(len(data)) <= memoryCapacity {
		if err := m.storage.Write(uint64(addr), data); err != nil {
			panic(err)
		}
		return
	}

	for i, b := range data {
		m.LoadBytes(addr+uint32(i), []byte{b})
	}
}

// LoadWords writes consecutive words starting at addr.
func (m *Memory) LoadWords(addr uint32, words []uint32) {
	for i, w := range words {
		m.Write32(addr+uint32(i)*4, w)
	}
}

func (m *Memory) read(addr uint32, n uint32) []byte {
	if uint64(addr)+uint64(n) <= memoryCapacity {
		data, err := m.storage.Read(uint64(addr), uint64(n))
		if err != nil {
			panic(err)
		}
		return data
	}

	out := make([]byte, n)
	for i := uint32(0); i < n; i++ {
		out[i] = m.read(addr+i, 1)[0]
	}
	return out
}
