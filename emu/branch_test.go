package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mips32sim/emu"
	"github.com/sarchlab/mips32sim/insts"
)

var _ = Describe("BranchUnit", func() {
	var bu *emu.BranchUnit

	BeforeEach(func() {
		bu = emu.NewBranchUnit()
	})

	DescribeTable("Taken",
		func(op insts.Op, rs, rt uint32, expected bool) {
			Expect(bu.Taken(op, rs, rt)).To(Equal(expected))
		},
		Entry("BEQ equal", insts.OpBEQ, uint32(7), uint32(7), true),
		Entry("BEQ unequal", insts.OpBEQ, uint32(7), uint32(8), false),
		Entry("BNE unequal", insts.OpBNE, uint32(7), uint32(8), true),
		Entry("BNE equal", insts.OpBNE, uint32(7), uint32(7), false),
		Entry("BLEZ zero", insts.OpBLEZ, uint32(0), uint32(0), true),
		Entry("BLEZ negative", insts.OpBLEZ, uint32(0x80000000), uint32(0), true),
		Entry("BLEZ positive", insts.OpBLEZ, uint32(1), uint32(0), false),
		Entry("BGTZ zero", insts.OpBGTZ, uint32(0), uint32(0), false),
		Entry("BGTZ positive", insts.OpBGTZ, uint32(0x7FFFFFFF), uint32(0), true),
		Entry("BLTZ negative", insts.OpBLTZ, uint32(0xFFFFFFFF), uint32(0), true),
		Entry("BLTZ zero", insts.OpBLTZ, uint32(0), uint32(0), false),
		Entry("BGEZ zero", insts.OpBGEZ, uint32(0), uint32(0), true),
		Entry("BGEZ negative", insts.OpBGEZ, uint32(0x80000000), uint32(0), false),
		Entry("BLTZAL negative", insts.OpBLTZAL, uint32(0xFFFFFFFF), uint32(0), true),
		Entry("BGEZAL positive", insts.OpBGEZAL, uint32(3), uint32(0), true),
		Entry("non-branch", insts.OpADD, uint32(0), uint32(0), false),
	)

	It("should report which ops link", func() {
		Expect(bu.Links(insts.OpJAL)).To(BeTrue())
		Expect(bu.Links(insts.OpJALR)).To(BeTrue())
		Expect(bu.Links(insts.OpBLTZAL)).To(BeTrue())
		Expect(bu.Links(insts.OpBGEZAL)).To(BeTrue())
		Expect(bu.Links(insts.OpJ)).To(BeFalse())
		Expect(bu.Links(insts.OpBLTZ)).To(BeFalse())
	})

	It("should return pc + 4 as the return address", func() {
		Expect(bu.ReturnAddress(0x00400000)).To(Equal(uint32(0x00400004)))
	})
})
