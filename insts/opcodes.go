package insts

// Primary opcode field values (bits [31:26]).
const (
	OpcodeSpecial uint8 = 0x00
	OpcodeRegImm  uint8 = 0x01
	OpcodeJ       uint8 = 0x02
	OpcodeJAL     uint8 = 0x03
	OpcodeBEQ     uint8 = 0x04
	OpcodeBNE     uint8 = 0x05
	OpcodeBLEZ    uint8 = 0x06
	OpcodeBGTZ    uint8 = 0x07
	OpcodeADDI    uint8 = 0x08
	OpcodeADDIU   uint8 = 0x09
	OpcodeSLTI    uint8 = 0x0A
	OpcodeSLTIU   uint8 = 0x0B
	OpcodeANDI    uint8 = 0x0C
	OpcodeORI     uint8 = 0x0D
	OpcodeXORI    uint8 = 0x0E
	OpcodeLUI     uint8 = 0x0F
	OpcodeLB      uint8 = 0x20
	OpcodeLH      uint8 = 0x21
	OpcodeLW      uint8 = 0x23
	OpcodeLBU     uint8 = 0x24
	OpcodeLHU     uint8 = 0x25
	OpcodeSB      uint8 = 0x28
	OpcodeSH      uint8 = 0x29
	OpcodeSW      uint8 = 0x2B
)

// Function field values (bits [5:0]) under OpcodeSpecial.
const (
	FunctSLL     uint8 = 0x00
	FunctSRL     uint8 = 0x02
	FunctSRA     uint8 = 0x03
	FunctSLLV    uint8 = 0x04
	FunctSRLV    uint8 = 0x06
	FunctSRAV    uint8 = 0x07
	FunctJR      uint8 = 0x08
	FunctJALR    uint8 = 0x09
	FunctSYSCALL uint8 = 0x0C
	FunctMFHI    uint8 = 0x10
	FunctMTHI    uint8 = 0x11
	FunctMFLO    uint8 = 0x12
	FunctMTLO    uint8 = 0x13
	FunctMULT    uint8 = 0x18
	FunctMULTU   uint8 = 0x19
	FunctDIV     uint8 = 0x1A
	FunctDIVU    uint8 = 0x1B
	FunctADD     uint8 = 0x20
	FunctADDU    uint8 = 0x21
	FunctSUB     uint8 = 0x22
	FunctSUBU    uint8 = 0x23
	FunctAND     uint8 = 0x24
	FunctOR      uint8 = 0x25
	FunctXOR     uint8 = 0x26
	FunctNOR     uint8 = 0x27
	FunctSLT     uint8 = 0x2A
	FunctSLTU    uint8 = 0x2B
)

// rt field values under OpcodeRegImm.
const (
	RtBLTZ   uint8 = 0x00
	RtBGEZ   uint8 = 0x01
	RtBLTZAL uint8 = 0x10
	RtBGEZAL uint8 = 0x11
)

// Conventional register numbers.
const (
	RegZero uint8 = 0
	RegV0   uint8 = 2
	RegA0   uint8 = 4
	RegSP   uint8 = 29
	RegRA   uint8 = 31
)
