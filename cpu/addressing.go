package cpu

// peekFunc reads one byte with no error channel: the executor's peek
// captures bus faults into an outer variable (see CPU.Step); the
// tracer's peek (trace.SafePeek) swallows them and substitutes a
// placeholder, so that disassembly is never side-effecting and never
// fails (Design Notes: "exec-time vs trace-time operand resolution").
type peekFunc func(addr uint16) byte

// ResolveAddress computes the effective address for mode, given pc
// pointing at the first operand byte (i.e. the byte immediately after
// the opcode). It never advances pc itself: instruction length is
// fixed by the decode table, and the caller advances PC afterward.
//
// It returns the effective address (meaningless for Accumulator and
// Implied) and whether resolving it crossed a page boundary (relevant
// only for AbsoluteX, AbsoluteY and IndirectY, for cycle accounting).
func ResolveAddress(peek peekFunc, pc uint16, mode AddressingMode, x, y byte) (addr uint16, pageCrossed bool) {
	switch mode {
	case Implied, Accumulator:
		return 0, false

	case Immediate, Relative:
		return pc, false

	case ZeroPage:
		return uint16(peek(pc)), false

	case ZeroPageX:
		return uint16(peek(pc) + x), false

	case ZeroPageY:
		return uint16(peek(pc) + y), false

	case Absolute:
		return readWordNoWrap(peek, pc), false

	case AbsoluteX:
		base := readWordNoWrap(peek, pc)
		addr := base + uint16(x)
		return addr, pageCrossed8(base, addr)

	case AbsoluteY:
		base := readWordNoWrap(peek, pc)
		addr := base + uint16(y)
		return addr, pageCrossed8(base, addr)

	case Indirect:
		ptr := readWordNoWrap(peek, pc)
		return readIndirectWithPageWrapBug(peek, ptr), false

	case IndirectX:
		base := peek(pc)
		ptr := base + x
		lo := peek(uint16(ptr))
		hi := peek(uint16(ptr + 1))
		return uint16(hi)<<8 | uint16(lo), false

	case IndirectY:
		base := peek(pc)
		lo := peek(uint16(base))
		hi := peek(uint16(base + 1))
		ptrBase := uint16(hi)<<8 | uint16(lo)
		addr := ptrBase + uint16(y)
		return addr, pageCrossed8(ptrBase, addr)

	default:
		return 0, false
	}
}

// readWordNoWrap reads a little-endian 16-bit value at pc, pc+1.
func readWordNoWrap(peek peekFunc, pc uint16) uint16 {
	lo := peek(pc)
	hi := peek(pc + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// readIndirectWithPageWrapBug resolves the target of an indirect JMP,
// reproducing the mandatory 6502 hardware bug: when the pointer's low
// byte is 0xFF, the high byte of the target is fetched from
// pointer&0xFF00 instead of pointer+1 (no carry into the page).
func readIndirectWithPageWrapBug(peek peekFunc, ptr uint16) uint16 {
	lo := peek(ptr)
	var hiAddr uint16
	if ptr&0x00FF == 0x00FF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi := peek(hiAddr)
	return uint16(hi)<<8 | uint16(lo)
}

// pageCrossed8 reports whether adding an 8-bit index moved the
// address into a different 256-byte page.
func pageCrossed8(base, result uint16) bool {
	return base&0xFF00 != result&0xFF00
}
