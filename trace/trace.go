// Package trace disassembles 6502 instructions and formats execution
// traces in the column layout used by the community nestest log, the
// de facto regression oracle for 6502 interpreters.
//
// Disassemble reads through the same decode table cpu.Step dispatches
// against (cpu.OpcodeTable), so the two can never describe an opcode
// differently. It never mutates state and never fails: a peek that
// would fault on the executing bus (a PPU register, say) resolves to
// a placeholder 0 here instead, per the rule that tracing must be
// side-effect-free.
package trace

import (
	"fmt"
	"strings"

	"nes6502/cpu"
	"nes6502/mem"
)

// Instruction is a disassembled opcode: its mnemonic, addressing
// mode, and already-formatted operand text (e.g. "JMP $C5F5").
type Instruction struct {
	Mnemonic string
	Mode     cpu.AddressingMode
	Text     string
}

// Peek reads one byte with no error channel, for callers that already
// have their own bus access pattern (tests, mainly). SafePeek builds
// one from a mem.Bus.
type Peek func(addr uint16) byte

// SafePeek wraps bus in a Peek that substitutes 0 for any faulting
// read, so disassembly never observes or propagates a bus error.
func SafePeek(bus mem.Bus) Peek {
	return func(addr uint16) byte {
		v, err := bus.Read(addr)
		if err != nil {
			return 0
		}
		return v
	}
}

// Disassemble decodes the instruction at pc (the address of the
// opcode byte itself). It returns the decoded Instruction, the raw
// bytes of the instruction (opcode plus operand, zero-padded to 3),
// and the instruction's length in bytes.
func Disassemble(pc uint16, peek Peek) (Instruction, [3]byte, uint8) {
	opcode := peek(pc)
	entry, ok := cpu.OpcodeTable[opcode]
	if !ok {
		return Instruction{Mnemonic: "???", Text: "???"}, [3]byte{opcode, 0, 0}, 1
	}

	var raw [3]byte
	raw[0] = opcode
	for i := uint8(1); i < entry.Length; i++ {
		raw[i] = peek(pc + uint16(i))
	}

	operandPC := pc + 1
	text := formatOperand(entry, pc, operandPC, peek)

	return Instruction{Mnemonic: entry.Mnemonic, Mode: entry.Mode, Text: text}, raw, entry.Length
}

// formatOperand renders the mnemonic and operand per the nestest
// convention table: immediate as #$nn, zero page as $nn, absolute as
// $hhll, indirect forms parenthesized, relative branches resolved to
// their absolute target address.
func formatOperand(entry cpu.Opcode, opcodePC, operandPC uint16, peek Peek) string {
	switch entry.Mode {
	case cpu.Implied:
		return entry.Mnemonic
	case cpu.Accumulator:
		return entry.Mnemonic + " A"
	case cpu.Immediate:
		return fmt.Sprintf("%s #$%02X", entry.Mnemonic, peek(operandPC))
	case cpu.ZeroPage:
		return fmt.Sprintf("%s $%02X", entry.Mnemonic, peek(operandPC))
	case cpu.ZeroPageX:
		return fmt.Sprintf("%s $%02X,X", entry.Mnemonic, peek(operandPC))
	case cpu.ZeroPageY:
		return fmt.Sprintf("%s $%02X,Y", entry.Mnemonic, peek(operandPC))
	case cpu.Absolute:
		return fmt.Sprintf("%s $%04X", entry.Mnemonic, readWord(peek, operandPC))
	case cpu.AbsoluteX:
		return fmt.Sprintf("%s $%04X,X", entry.Mnemonic, readWord(peek, operandPC))
	case cpu.AbsoluteY:
		return fmt.Sprintf("%s $%04X,Y", entry.Mnemonic, readWord(peek, operandPC))
	case cpu.Indirect:
		return fmt.Sprintf("%s ($%04X)", entry.Mnemonic, readWord(peek, operandPC))
	case cpu.IndirectX:
		return fmt.Sprintf("%s ($%02X,X)", entry.Mnemonic, peek(operandPC))
	case cpu.IndirectY:
		return fmt.Sprintf("%s ($%02X),Y", entry.Mnemonic, peek(operandPC))
	case cpu.Relative:
		offset := peek(operandPC)
		target := operandPC + 1 + uint16(int16(int8(offset)))
		return fmt.Sprintf("%s $%04X", entry.Mnemonic, target)
	default:
		return entry.Mnemonic
	}
}

func readWord(peek Peek, addr uint16) uint16 {
	lo := peek(addr)
	hi := peek(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// annotate appends the resolved effective-address and value the
// nestest log shows alongside an indexed or indirect operand (e.g.
// "LDA $10,X @ 15 = 42"). It needs live register state (X/Y), so only
// Capture produces it; static disassembly shows the bare operand text.
// Absolute JMP/JSR are exempted per the nestest convention: the
// operand already names the destination, so no "= VV" tail is added.
func annotate(entry cpu.Opcode, text string, operandPC uint16, peek Peek, x, y byte) string {
	switch entry.Mode {
	case cpu.ZeroPage:
		addr, _ := cpu.ResolveAddress(func(a uint16) byte { return peek(a) }, operandPC, entry.Mode, x, y)
		return fmt.Sprintf("%s = %02X", text, peek(addr))

	case cpu.Absolute:
		if entry.Mnemonic == "JMP" || entry.Mnemonic == "JSR" {
			return text
		}
		addr, _ := cpu.ResolveAddress(func(a uint16) byte { return peek(a) }, operandPC, entry.Mode, x, y)
		return fmt.Sprintf("%s = %02X", text, peek(addr))

	case cpu.ZeroPageX, cpu.ZeroPageY:
		addr, _ := cpu.ResolveAddress(func(a uint16) byte { return peek(a) }, operandPC, entry.Mode, x, y)
		return fmt.Sprintf("%s @ %02X = %02X", text, addr, peek(addr))

	case cpu.AbsoluteX, cpu.AbsoluteY:
		addr, _ := cpu.ResolveAddress(func(a uint16) byte { return peek(a) }, operandPC, entry.Mode, x, y)
		return fmt.Sprintf("%s @ %04X = %02X", text, addr, peek(addr))

	case cpu.Indirect:
		addr, _ := cpu.ResolveAddress(func(a uint16) byte { return peek(a) }, operandPC, entry.Mode, x, y)
		return fmt.Sprintf("%s = %04X", text, addr)

	case cpu.IndirectX:
		addr, _ := cpu.ResolveAddress(func(a uint16) byte { return peek(a) }, operandPC, entry.Mode, x, y)
		ptr := peek(operandPC) + x
		return fmt.Sprintf("%s @ %02X = %04X = %02X", text, ptr, addr, peek(addr))

	case cpu.IndirectY:
		addr, _ := cpu.ResolveAddress(func(a uint16) byte { return peek(a) }, operandPC, entry.Mode, x, y)
		base := addr - uint16(y)
		return fmt.Sprintf("%s = %04X @ %04X = %02X", text, base, addr, peek(addr))

	default:
		return text
	}
}

// Trace is one line of execution history: the decoded instruction at
// PC plus the register snapshot taken immediately before it executed.
type Trace struct {
	PC     uint16
	Instr  Instruction
	Raw    [3]byte
	Length uint8

	// AnnotatedText is Instr.Text with the resolved effective-address
	// and memory-value suffix the nestest log shows for indexed and
	// indirect operands (e.g. "LDA $10,X @ 15 = 42"). It requires live
	// register state, so it is only ever produced by Capture; static
	// disassembly has no X/Y to resolve against and uses Instr.Text
	// unadorned.
	AnnotatedText string

	// DataAddress and DataAtAddress are the effective address and the
	// byte read from it, broken out of AnnotatedText for callers that
	// want to build their own view (e.g. a memory-diff column) without
	// reparsing the formatted line.
	DataAddress   uint16
	DataAtAddress byte

	A, X, Y, SP byte
	P           byte
	Cycle       uint64
}

// Capture builds a Trace for the instruction about to execute,
// snapshotting the CPU's register file and disassembling through bus,
// all without touching execution state.
func Capture(c *cpu.CPU, bus mem.Bus, cycle uint64) Trace {
	peek := SafePeek(bus)
	instr, raw, length := Disassemble(c.PC, peek)

	entry := cpu.OpcodeTable[raw[0]]
	operandPC := c.PC + 1
	annotated := instr.Text
	var dataAddr uint16
	var dataVal byte
	if ok := entry.Mnemonic != ""; ok {
		annotated = annotate(entry, instr.Text, operandPC, peek, c.X, c.Y)
		if entry.Mode != cpu.Implied && entry.Mode != cpu.Accumulator &&
			entry.Mode != cpu.Immediate && entry.Mode != cpu.Relative {
			dataAddr, _ = cpu.ResolveAddress(func(a uint16) byte { return peek(a) }, operandPC, entry.Mode, c.X, c.Y)
			dataVal = peek(dataAddr)
		}
	}

	return Trace{
		PC:            c.PC,
		Instr:         instr,
		Raw:           raw,
		Length:        length,
		AnnotatedText: annotated,
		DataAddress:   dataAddr,
		DataAtAddress: dataVal,
		A:             c.A,
		X:             c.X,
		Y:             c.Y,
		SP:            c.SP,
		P:             byte(c.P),
		Cycle:         cycle,
	}
}

// Format renders t in the nestest column layout:
//
//	C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD
//
// PC as four hex digits, the raw instruction bytes left-justified in
// an 8-column field, the disassembly text (with effective-address
// annotation, where applicable) left-justified in a 32-column field,
// then the register snapshot.
func Format(t Trace) string {
	parts := make([]string, 0, 3)
	for i := uint8(0); i < t.Length; i++ {
		parts = append(parts, fmt.Sprintf("%02X", t.Raw[i]))
	}
	bytesField := strings.Join(parts, " ")

	text := t.AnnotatedText
	if text == "" {
		text = t.Instr.Text
	}

	registers := fmt.Sprintf("A:%02X X:%02X Y:%02X P:%02X SP:%02X", t.A, t.X, t.Y, t.P, t.SP)

	return fmt.Sprintf("%04X  %-8s  %-32s%s", t.PC, bytesField, text, registers)
}
