package cpu

// Each handler implements one mnemonic against the register file and
// bus, using the effective address addr already resolved by
// ResolveAddress for every mode except Accumulator and Implied. Return
// values are bus errors, plus ErrHalted from BRK under the default
// halt policy; flag and register updates never fail.

// operand reads the byte a non-store instruction acts on: the
// Accumulator itself in Accumulator mode, otherwise the byte at addr.
func operand(c *CPU, mode AddressingMode, addr uint16) (byte, error) {
	if mode == Accumulator {
		return c.A, nil
	}
	return c.Bus.Read(addr)
}

// storeResult writes a shift/inc/dec result back to the Accumulator
// (Accumulator mode) or to addr.
func storeResult(c *CPU, mode AddressingMode, addr uint16, v byte) error {
	if mode == Accumulator {
		c.A = v
		return nil
	}
	return c.Bus.Write(addr, v)
}

// addToA implements ADC's binary addition, shared with SBC (which
// feeds it the ones' complement of the operand). The NES 6502 has no
// working decimal mode, so Policy carries no decimal flag; Status.D
// is purely cosmetic, per nestest's own expectations.
func addToA(c *CPU, m byte) {
	carry := uint16(0)
	if c.P.Carry() {
		carry = 1
	}
	sum := uint16(c.A) + uint16(m) + carry

	overflow := (^(uint16(c.A) ^ uint16(m)) & (uint16(c.A) ^ sum) & 0x80) != 0

	c.A = byte(sum)
	c.P = c.P.SetCarry(sum > 0xFF).SetOverflow(overflow).SetZN(c.A)
}

func adc(c *CPU, mode AddressingMode, addr uint16) error {
	m, err := operand(c, mode, addr)
	if err != nil {
		return err
	}
	addToA(c, m)
	return nil
}

func sbc(c *CPU, mode AddressingMode, addr uint16) error {
	m, err := operand(c, mode, addr)
	if err != nil {
		return err
	}
	addToA(c, ^m)
	return nil
}

func and(c *CPU, mode AddressingMode, addr uint16) error {
	m, err := operand(c, mode, addr)
	if err != nil {
		return err
	}
	c.A &= m
	c.P = c.P.SetZN(c.A)
	return nil
}

func asl(c *CPU, mode AddressingMode, addr uint16) error {
	m, err := operand(c, mode, addr)
	if err != nil {
		return err
	}

	var carry bool
	if c.Policy.LegacyASLCarryBug {
		carry = m&0x08 != 0 // reproduces the distilled-from bug: carry from bit 3
	} else {
		carry = m&0x80 != 0
	}

	result := m << 1
	c.P = c.P.SetCarry(carry).SetZN(result)
	return storeResult(c, mode, addr, result)
}

func lsr(c *CPU, mode AddressingMode, addr uint16) error {
	m, err := operand(c, mode, addr)
	if err != nil {
		return err
	}
	result := m >> 1
	c.P = c.P.SetCarry(m&0x01 != 0).SetZN(result)
	return storeResult(c, mode, addr, result)
}

func rol(c *CPU, mode AddressingMode, addr uint16) error {
	m, err := operand(c, mode, addr)
	if err != nil {
		return err
	}
	oldCarry := c.P.Carry()
	result := m << 1
	if oldCarry {
		result |= 0x01
	}
	c.P = c.P.SetCarry(m&0x80 != 0).SetZN(result)
	return storeResult(c, mode, addr, result)
}

func ror(c *CPU, mode AddressingMode, addr uint16) error {
	m, err := operand(c, mode, addr)
	if err != nil {
		return err
	}
	oldCarry := c.P.Carry()
	result := m >> 1
	if oldCarry {
		result |= 0x80
	}
	c.P = c.P.SetCarry(m&0x01 != 0).SetZN(result)
	return storeResult(c, mode, addr, result)
}

func bit(c *CPU, mode AddressingMode, addr uint16) error {
	m, err := c.Bus.Read(addr)
	if err != nil {
		return err
	}
	c.P = c.P.SetZero(c.A&m == 0).SetOverflow(Status(m)&FlagV != 0).SetNegative(Status(m)&FlagN != 0)
	return nil
}

func cmp(c *CPU, mode AddressingMode, addr uint16) error {
	return compare(c, c.A, mode, addr)
}

func cpx(c *CPU, mode AddressingMode, addr uint16) error {
	return compare(c, c.X, mode, addr)
}

func cpy(c *CPU, mode AddressingMode, addr uint16) error {
	return compare(c, c.Y, mode, addr)
}

func compare(c *CPU, reg byte, mode AddressingMode, addr uint16) error {
	m, err := operand(c, mode, addr)
	if err != nil {
		return err
	}
	result := reg - m
	c.P = c.P.SetCarry(reg >= m).SetZN(result)
	return nil
}

func dec(c *CPU, mode AddressingMode, addr uint16) error {
	m, err := c.Bus.Read(addr)
	if err != nil {
		return err
	}
	result := m - 1
	c.P = c.P.SetZN(result)
	return c.Bus.Write(addr, result)
}

func inc(c *CPU, mode AddressingMode, addr uint16) error {
	m, err := c.Bus.Read(addr)
	if err != nil {
		return err
	}
	result := m + 1
	c.P = c.P.SetZN(result)
	return c.Bus.Write(addr, result)
}

func dex(c *CPU, mode AddressingMode, addr uint16) error {
	c.X--
	c.P = c.P.SetZN(c.X)
	return nil
}

func dey(c *CPU, mode AddressingMode, addr uint16) error {
	c.Y--
	c.P = c.P.SetZN(c.Y)
	return nil
}

func inx(c *CPU, mode AddressingMode, addr uint16) error {
	c.X++
	c.P = c.P.SetZN(c.X)
	return nil
}

func iny(c *CPU, mode AddressingMode, addr uint16) error {
	c.Y++
	c.P = c.P.SetZN(c.Y)
	return nil
}

func eor(c *CPU, mode AddressingMode, addr uint16) error {
	m, err := operand(c, mode, addr)
	if err != nil {
		return err
	}
	c.A ^= m
	c.P = c.P.SetZN(c.A)
	return nil
}

func ora(c *CPU, mode AddressingMode, addr uint16) error {
	m, err := operand(c, mode, addr)
	if err != nil {
		return err
	}
	c.A |= m
	c.P = c.P.SetZN(c.A)
	return nil
}

func lda(c *CPU, mode AddressingMode, addr uint16) error {
	m, err := c.Bus.Read(addr)
	if err != nil {
		return err
	}
	c.A = m
	c.P = c.P.SetZN(c.A)
	return nil
}

func ldx(c *CPU, mode AddressingMode, addr uint16) error {
	m, err := c.Bus.Read(addr)
	if err != nil {
		return err
	}
	c.X = m
	c.P = c.P.SetZN(c.X)
	return nil
}

func ldy(c *CPU, mode AddressingMode, addr uint16) error {
	m, err := c.Bus.Read(addr)
	if err != nil {
		return err
	}
	c.Y = m
	c.P = c.P.SetZN(c.Y)
	return nil
}

func sta(c *CPU, mode AddressingMode, addr uint16) error {
	return c.Bus.Write(addr, c.A)
}

func stx(c *CPU, mode AddressingMode, addr uint16) error {
	return c.Bus.Write(addr, c.X)
}

func sty(c *CPU, mode AddressingMode, addr uint16) error {
	return c.Bus.Write(addr, c.Y)
}

func tax(c *CPU, mode AddressingMode, addr uint16) error {
	c.X = c.A
	c.P = c.P.SetZN(c.X)
	return nil
}

func tay(c *CPU, mode AddressingMode, addr uint16) error {
	c.Y = c.A
	c.P = c.P.SetZN(c.Y)
	return nil
}

func txa(c *CPU, mode AddressingMode, addr uint16) error {
	c.A = c.X
	c.P = c.P.SetZN(c.A)
	return nil
}

func tya(c *CPU, mode AddressingMode, addr uint16) error {
	c.A = c.Y
	c.P = c.P.SetZN(c.A)
	return nil
}

func tsx(c *CPU, mode AddressingMode, addr uint16) error {
	c.X = c.SP
	c.P = c.P.SetZN(c.X)
	return nil
}

func txs(c *CPU, mode AddressingMode, addr uint16) error {
	c.SP = c.X // TXS does not touch flags
	return nil
}

func pha(c *CPU, mode AddressingMode, addr uint16) error {
	return c.push(c.A)
}

func php(c *CPU, mode AddressingMode, addr uint16) error {
	return c.push(c.P.Push())
}

func pla(c *CPU, mode AddressingMode, addr uint16) error {
	v, err := c.pull()
	if err != nil {
		return err
	}
	c.A = v
	c.P = c.P.SetZN(c.A)
	return nil
}

func plp(c *CPU, mode AddressingMode, addr uint16) error {
	v, err := c.pull()
	if err != nil {
		return err
	}
	c.P = Pull(v)
	return nil
}

func clc(c *CPU, mode AddressingMode, addr uint16) error { c.P = c.P.SetCarry(false); return nil }
func sec(c *CPU, mode AddressingMode, addr uint16) error { c.P = c.P.SetCarry(true); return nil }
func cli(c *CPU, mode AddressingMode, addr uint16) error { c.P = c.P.SetInterrupt(false); return nil }
func sei(c *CPU, mode AddressingMode, addr uint16) error { c.P = c.P.SetInterrupt(true); return nil }
func clv(c *CPU, mode AddressingMode, addr uint16) error { c.P = c.P.SetOverflow(false); return nil }
func cld(c *CPU, mode AddressingMode, addr uint16) error { c.P = c.P.SetDecimal(false); return nil }
func sed(c *CPU, mode AddressingMode, addr uint16) error { c.P = c.P.SetDecimal(true); return nil }

func nop(c *CPU, mode AddressingMode, addr uint16) error { return nil }

// branch is the shared implementation for the eight conditional
// branches. addr is the address of the signed relative-offset operand
// byte itself (ResolveAddress leaves Relative unresolved, since the
// target depends on the address of the following instruction, which
// isn't known until the operand is read). PC is only assigned when
// the branch is taken; Step compares PC against its pre-handler value
// to decide whether to skip the generic post-instruction advance.
func branch(c *CPU, addr uint16, taken bool) error {
	if !taken {
		return nil
	}
	offset, err := c.Bus.Read(addr)
	if err != nil {
		return err
	}
	c.PC = addr + 1 + uint16(int16(int8(offset)))
	return nil
}

func bcc(c *CPU, mode AddressingMode, addr uint16) error { return branch(c, addr, !c.P.Carry()) }
func bcs(c *CPU, mode AddressingMode, addr uint16) error { return branch(c, addr, c.P.Carry()) }
func beq(c *CPU, mode AddressingMode, addr uint16) error { return branch(c, addr, c.P.Zero()) }
func bne(c *CPU, mode AddressingMode, addr uint16) error { return branch(c, addr, !c.P.Zero()) }
func bmi(c *CPU, mode AddressingMode, addr uint16) error { return branch(c, addr, c.P.Negative()) }
func bpl(c *CPU, mode AddressingMode, addr uint16) error { return branch(c, addr, !c.P.Negative()) }
func bvs(c *CPU, mode AddressingMode, addr uint16) error { return branch(c, addr, c.P.Overflow()) }
func bvc(c *CPU, mode AddressingMode, addr uint16) error { return branch(c, addr, !c.P.Overflow()) }

func jmp(c *CPU, mode AddressingMode, addr uint16) error {
	c.PC = addr
	return nil
}

// jsr pushes the address of the JSR instruction's last byte (the
// return address minus one, per 6502 convention: RTS adds one back)
// and jumps to addr. At call time PC already points at the first
// operand byte (opcode fetch has consumed one byte), so that address
// plus one is the operand's second byte, i.e. the instruction's last
// byte.
func jsr(c *CPU, mode AddressingMode, addr uint16) error {
	returnAddr := c.PC + 1
	if c.Policy.LegacyJSRPushBug {
		returnAddr = c.PC + 2 // reproduces the distilled-from bug: off by one
	}
	if err := c.pushWord(returnAddr); err != nil {
		return err
	}
	c.PC = addr
	return nil
}

func rts(c *CPU, mode AddressingMode, addr uint16) error {
	ret, err := c.pullWord()
	if err != nil {
		return err
	}
	c.PC = ret + 1
	return nil
}

func rti(c *CPU, mode AddressingMode, addr uint16) error {
	p, err := c.pull()
	if err != nil {
		return err
	}
	c.P = Pull(p)
	ret, err := c.pullWord()
	if err != nil {
		return err
	}
	c.PC = ret
	return nil
}

// brk halts the CPU by default, which is what nestest-style
// regression traces expect: a well-formed test program never actually
// reaches a BRK. With Policy.BRKPushesAndJumps it instead behaves like
// real 6502 hardware: push PC+1 (the address after the padding byte
// that follows BRK's opcode), push P with B set, set I, and jump
// through the IRQ/BRK vector at 0xFFFE.
func brk(c *CPU, mode AddressingMode, addr uint16) error {
	if !c.Policy.BRKPushesAndJumps {
		return ErrHalted
	}

	if err := c.pushWord(c.PC + 1); err != nil {
		return err
	}
	if err := c.push(c.P.Push()); err != nil {
		return err
	}
	c.P = c.P.SetInterrupt(true)

	vector, err := c.Bus.ReadWord(0xFFFE)
	if err != nil {
		return err
	}
	c.PC = vector
	return nil
}
