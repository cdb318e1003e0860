package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mips32sim/emu"
)

var _ = Describe("Memory", func() {
	var memory *emu.Memory

	BeforeEach(func() {
		memory = emu.NewMemory()
	})

	It("should read zero from unwritten locations", func() {
		Expect(memory.Read32(0x00400000)).To(Equal(uint32(0)))
		Expect(memory.Read32(0xFFFFFFFC)).To(Equal(uint32(0)))
	})

	It("should store words little-endian", func() {
		memory.Write32(0x10000000, 0xDEADBEEF)

		Expect(memory.Read32(0x10000000)).To(Equal(uint32(0xDEADBEEF)))
		Expect(memory.Read8(0x10000000)).To(Equal(uint8(0xEF)))
		Expect(memory.Read8(0x10000003)).To(Equal(uint8(0xDE)))
	})

	It("should read words across storage unit boundaries", func() {
		memory.Write32(0x00000FFE, 0x11223344)

		Expect(memory.Read32(0x00000FFE)).To(Equal(uint32(0x11223344)))
		Expect(memory.Read8(0x00001000)).To(Equal(uint8(0x22)))
	})

	It("should wrap accesses at the top of the address space", func() {
		memory.Write32(0xFFFFFFFE, 0x11223344)

		Expect(memory.Read32(0xFFFFFFFE)).To(Equal(uint32(0x11223344)))
		Expect(memory.Read32(0)).To(Equal(uint32(0x00001122)))
	})

	It("should load consecutive words", func() {
		memory.LoadWords(0x00400000, []uint32{1, 2, 3})

		Expect(memory.Read32(0x00400000)).To(Equal(uint32(1)))
		Expect(memory.Read32(0x00400004)).To(Equal(uint32(2)))
		Expect(memory.Read32(0x00400008)).To(Equal(uint32(3)))
	})

	It("should load raw bytes", func() {
		memory.LoadBytes(0x10010000, []byte{0x68, 0x69, 0x00})

		Expect(memory.Read32(0x10010000)).To(Equal(uint32(0x00006968)))
	})
})

var _ = Describe("SubwordAdapter", func() {
	var (
		memory  *emu.Memory
		adapter emu.SubwordAdapter
	)

	const addr = uint32(0x10000000)

	BeforeEach(func() {
		memory = emu.NewMemory()
		adapter = emu.NewSubwordAdapter(memory)
		memory.Write32(addr, 0xAABBCCDD)
	})

	It("should read the low byte and halfword of the word", func() {
		Expect(adapter.Read8(addr)).To(Equal(uint8(0xDD)))
		Expect(adapter.Read16(addr)).To(Equal(uint16(0xCCDD)))
	})

	It("should preserve the untouched bytes on a byte write", func() {
		adapter.Write8(addr, 0x44)

		Expect(memory.Read32(addr)).To(Equal(uint32(0xAABBCC44)))
	})

	It("should preserve the untouched bytes on a halfword write", func() {
		adapter.Write16(addr, 0x3344)

		Expect(memory.Read32(addr)).To(Equal(uint32(0xAABB3344)))
	})

	It("should map unaligned addresses to the word at that address", func() {
		memory.Write32(addr+4, 0x11223344)

		Expect(adapter.Read8(addr + 1)).To(Equal(uint8(0xCC)))
		Expect(adapter.Read16(addr + 3)).To(Equal(uint16(0x44AA)))
	})
})

var _ = Describe("LoadStoreUnit", func() {
	var (
		memory *emu.Memory
		lsu    *emu.LoadStoreUnit
	)

	const addr = uint32(0x10000000)

	BeforeEach(func() {
		memory = emu.NewMemory()
		lsu = emu.NewLoadStoreUnit(memory)
		memory.Write32(addr, 0xAABBCCDD)
	})

	It("should sign- and zero-extend sub-word loads", func() {
		Expect(lsu.LB(addr)).To(Equal(uint32(0xFFFFFFDD)))
		Expect(lsu.LBU(addr)).To(Equal(uint32(0xDD)))
		Expect(lsu.LH(addr)).To(Equal(uint32(0xFFFFCCDD)))
		Expect(lsu.LHU(addr)).To(Equal(uint32(0xCCDD)))
		Expect(lsu.LW(addr)).To(Equal(uint32(0xAABBCCDD)))
	})

	It("should store only the low bits of the register", func() {
		lsu.SB(addr, 0x12345644)
		Expect(memory.Read32(addr)).To(Equal(uint32(0xAABBCC44)))

		lsu.SH(addr, 0x12347788)
		Expect(memory.Read32(addr)).To(Equal(uint32(0xAABB7788)))

		lsu.SW(addr, 0x01020304)
		Expect(memory.Read32(addr)).To(Equal(uint32(0x01020304)))
	})
})
