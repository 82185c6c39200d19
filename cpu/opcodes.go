package cpu

// Handler implements one mnemonic. addr is the effective address
// already resolved by ResolveAddress (meaningless for Accumulator and
// Implied modes, where the handler works on registers directly).
type Handler func(c *CPU, mode AddressingMode, addr uint16) error

// Opcode is one entry of the decode table (OpcodeTable): mnemonic,
// addressing mode, instruction length in bytes, base clock cycles,
// and the handler to dispatch to. The same table drives both
// execution (cpu.Step) and disassembly (package trace), so the two
// can never drift apart.
type Opcode struct {
	Mnemonic string
	Mode     AddressingMode
	Length   uint8
	Cycles   uint8
	Handler  Handler
}

func lengthForMode(m AddressingMode) uint8 {
	switch m {
	case Implied, Accumulator:
		return 1
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 3
	default:
		return 2
	}
}

func op(mnemonic string, mode AddressingMode, cycles uint8, h Handler) Opcode {
	return Opcode{Mnemonic: mnemonic, Mode: mode, Length: lengthForMode(mode), Cycles: cycles, Handler: h}
}

// OpcodeTable is the static opcode -> descriptor map, keyed by opcode
// byte. It holds the 151 documented opcodes only, not one slot per
// byte value: entries for the undocumented byte values are absent, and
// Step reports InvalidOpcodeError for them.
var OpcodeTable = map[byte]Opcode{
	// ADC
	0x69: op("ADC", Immediate, 2, adc),
	0x65: op("ADC", ZeroPage, 3, adc),
	0x75: op("ADC", ZeroPageX, 4, adc),
	0x6D: op("ADC", Absolute, 4, adc),
	0x7D: op("ADC", AbsoluteX, 4, adc),
	0x79: op("ADC", AbsoluteY, 4, adc),
	0x61: op("ADC", IndirectX, 6, adc),
	0x71: op("ADC", IndirectY, 5, adc),

	// AND
	0x29: op("AND", Immediate, 2, and),
	0x25: op("AND", ZeroPage, 3, and),
	0x35: op("AND", ZeroPageX, 4, and),
	0x2D: op("AND", Absolute, 4, and),
	0x3D: op("AND", AbsoluteX, 4, and),
	0x39: op("AND", AbsoluteY, 4, and),
	0x21: op("AND", IndirectX, 6, and),
	0x31: op("AND", IndirectY, 5, and),

	// ASL
	0x0A: op("ASL", Accumulator, 2, asl),
	0x06: op("ASL", ZeroPage, 5, asl),
	0x16: op("ASL", ZeroPageX, 6, asl),
	0x0E: op("ASL", Absolute, 6, asl),
	0x1E: op("ASL", AbsoluteX, 7, asl),

	// BIT
	0x24: op("BIT", ZeroPage, 3, bit),
	0x2C: op("BIT", Absolute, 4, bit),

	// Branches
	0x10: op("BPL", Relative, 2, bpl),
	0x30: op("BMI", Relative, 2, bmi),
	0x50: op("BVC", Relative, 2, bvc),
	0x70: op("BVS", Relative, 2, bvs),
	0x90: op("BCC", Relative, 2, bcc),
	0xB0: op("BCS", Relative, 2, bcs),
	0xD0: op("BNE", Relative, 2, bne),
	0xF0: op("BEQ", Relative, 2, beq),

	// BRK
	0x00: op("BRK", Implied, 7, brk),

	// CMP / CPX / CPY
	0xC9: op("CMP", Immediate, 2, cmp),
	0xC5: op("CMP", ZeroPage, 3, cmp),
	0xD5: op("CMP", ZeroPageX, 4, cmp),
	0xCD: op("CMP", Absolute, 4, cmp),
	0xDD: op("CMP", AbsoluteX, 4, cmp),
	0xD9: op("CMP", AbsoluteY, 4, cmp),
	0xC1: op("CMP", IndirectX, 6, cmp),
	0xD1: op("CMP", IndirectY, 5, cmp),
	0xE0: op("CPX", Immediate, 2, cpx),
	0xE4: op("CPX", ZeroPage, 3, cpx),
	0xEC: op("CPX", Absolute, 4, cpx),
	0xC0: op("CPY", Immediate, 2, cpy),
	0xC4: op("CPY", ZeroPage, 3, cpy),
	0xCC: op("CPY", Absolute, 4, cpy),

	// DEC / DEX / DEY
	0xC6: op("DEC", ZeroPage, 5, dec),
	0xD6: op("DEC", ZeroPageX, 6, dec),
	0xCE: op("DEC", Absolute, 6, dec),
	0xDE: op("DEC", AbsoluteX, 7, dec),
	0xCA: op("DEX", Implied, 2, dex),
	0x88: op("DEY", Implied, 2, dey),

	// EOR
	0x49: op("EOR", Immediate, 2, eor),
	0x45: op("EOR", ZeroPage, 3, eor),
	0x55: op("EOR", ZeroPageX, 4, eor),
	0x4D: op("EOR", Absolute, 4, eor),
	0x5D: op("EOR", AbsoluteX, 4, eor),
	0x59: op("EOR", AbsoluteY, 4, eor),
	0x41: op("EOR", IndirectX, 6, eor),
	0x51: op("EOR", IndirectY, 5, eor),

	// Flag ops
	0x18: op("CLC", Implied, 2, clc),
	0x38: op("SEC", Implied, 2, sec),
	0x58: op("CLI", Implied, 2, cli),
	0x78: op("SEI", Implied, 2, sei),
	0xB8: op("CLV", Implied, 2, clv),
	0xD8: op("CLD", Implied, 2, cld),
	0xF8: op("SED", Implied, 2, sed),

	// INC / INX / INY
	0xE6: op("INC", ZeroPage, 5, inc),
	0xF6: op("INC", ZeroPageX, 6, inc),
	0xEE: op("INC", Absolute, 6, inc),
	0xFE: op("INC", AbsoluteX, 7, inc),
	0xE8: op("INX", Implied, 2, inx),
	0xC8: op("INY", Implied, 2, iny),

	// JMP / JSR
	0x4C: op("JMP", Absolute, 3, jmp),
	0x6C: op("JMP", Indirect, 5, jmp),
	0x20: op("JSR", Absolute, 6, jsr),

	// LDA / LDX / LDY
	0xA9: op("LDA", Immediate, 2, lda),
	0xA5: op("LDA", ZeroPage, 3, lda),
	0xB5: op("LDA", ZeroPageX, 4, lda),
	0xAD: op("LDA", Absolute, 4, lda),
	0xBD: op("LDA", AbsoluteX, 4, lda),
	0xB9: op("LDA", AbsoluteY, 4, lda),
	0xA1: op("LDA", IndirectX, 6, lda),
	0xB1: op("LDA", IndirectY, 5, lda),
	0xA2: op("LDX", Immediate, 2, ldx),
	0xA6: op("LDX", ZeroPage, 3, ldx),
	0xB6: op("LDX", ZeroPageY, 4, ldx),
	0xAE: op("LDX", Absolute, 4, ldx),
	0xBE: op("LDX", AbsoluteY, 4, ldx),
	0xA0: op("LDY", Immediate, 2, ldy),
	0xA4: op("LDY", ZeroPage, 3, ldy),
	0xB4: op("LDY", ZeroPageX, 4, ldy),
	0xAC: op("LDY", Absolute, 4, ldy),
	0xBC: op("LDY", AbsoluteX, 4, ldy),

	// LSR
	0x4A: op("LSR", Accumulator, 2, lsr),
	0x46: op("LSR", ZeroPage, 5, lsr),
	0x56: op("LSR", ZeroPageX, 6, lsr),
	0x4E: op("LSR", Absolute, 6, lsr),
	0x5E: op("LSR", AbsoluteX, 7, lsr),

	// NOP
	0xEA: op("NOP", Implied, 2, nop),

	// ORA
	0x09: op("ORA", Immediate, 2, ora),
	0x05: op("ORA", ZeroPage, 3, ora),
	0x15: op("ORA", ZeroPageX, 4, ora),
	0x0D: op("ORA", Absolute, 4, ora),
	0x1D: op("ORA", AbsoluteX, 4, ora),
	0x19: op("ORA", AbsoluteY, 4, ora),
	0x01: op("ORA", IndirectX, 6, ora),
	0x11: op("ORA", IndirectY, 5, ora),

	// Stack
	0x48: op("PHA", Implied, 3, pha),
	0x08: op("PHP", Implied, 3, php),
	0x68: op("PLA", Implied, 4, pla),
	0x28: op("PLP", Implied, 4, plp),

	// ROL / ROR
	0x2A: op("ROL", Accumulator, 2, rol),
	0x26: op("ROL", ZeroPage, 5, rol),
	0x36: op("ROL", ZeroPageX, 6, rol),
	0x2E: op("ROL", Absolute, 6, rol),
	0x3E: op("ROL", AbsoluteX, 7, rol),
	0x6A: op("ROR", Accumulator, 2, ror),
	0x66: op("ROR", ZeroPage, 5, ror),
	0x76: op("ROR", ZeroPageX, 6, ror),
	0x6E: op("ROR", Absolute, 6, ror),
	0x7E: op("ROR", AbsoluteX, 7, ror),

	// RTI / RTS
	0x40: op("RTI", Implied, 6, rti),
	0x60: op("RTS", Implied, 6, rts),

	// SBC
	0xE9: op("SBC", Immediate, 2, sbc),
	0xE5: op("SBC", ZeroPage, 3, sbc),
	0xF5: op("SBC", ZeroPageX, 4, sbc),
	0xED: op("SBC", Absolute, 4, sbc),
	0xFD: op("SBC", AbsoluteX, 4, sbc),
	0xF9: op("SBC", AbsoluteY, 4, sbc),
	0xE1: op("SBC", IndirectX, 6, sbc),
	0xF1: op("SBC", IndirectY, 5, sbc),

	// STA / STX / STY
	0x85: op("STA", ZeroPage, 3, sta),
	0x95: op("STA", ZeroPageX, 4, sta),
	0x8D: op("STA", Absolute, 4, sta),
	0x9D: op("STA", AbsoluteX, 5, sta),
	0x99: op("STA", AbsoluteY, 5, sta),
	0x81: op("STA", IndirectX, 6, sta),
	0x91: op("STA", IndirectY, 6, sta),
	0x86: op("STX", ZeroPage, 3, stx),
	0x96: op("STX", ZeroPageY, 4, stx),
	0x8E: op("STX", Absolute, 4, stx),
	0x84: op("STY", ZeroPage, 3, sty),
	0x94: op("STY", ZeroPageX, 4, sty),
	0x8C: op("STY", Absolute, 4, sty),

	// Transfers
	0xAA: op("TAX", Implied, 2, tax),
	0x8A: op("TXA", Implied, 2, txa),
	0xA8: op("TAY", Implied, 2, tay),
	0x98: op("TYA", Implied, 2, tya),
	0xBA: op("TSX", Implied, 2, tsx),
	0x9A: op("TXS", Implied, 2, txs),
}
