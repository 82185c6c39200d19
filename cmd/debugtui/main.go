// Command debugtui is an interactive single-step debugger for the
// 6502 core, rendering a page of RAM, the register file, and the
// decoded instruction at PC. It is a development aid, not part of the
// core: the core package has no UI dependencies of its own.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"nes6502/cpu"
	"nes6502/mem"
	"nes6502/trace"
)

func main() {
	offset := flag.Uint64("offset", 0x8000, "address to load the program at and start execution from")
	flag.Parse()

	path := flag.Arg(0)
	if path == "" {
		fmt.Fprintln(os.Stderr, "usage: debugtui [-offset addr] <raw-program-file>")
		os.Exit(1)
	}

	program, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "debugtui:", err)
		os.Exit(1)
	}

	m, err := tea.NewProgram(newModel(program, uint16(*offset))).Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "debugtui:", err)
		os.Exit(1)
	}
	if final, ok := m.(model); ok && final.runErr != nil {
		fmt.Println("halted:", final.runErr)
	}
}

type model struct {
	bus    *mem.TestBus
	cpu    *cpu.CPU
	offset uint16

	prevPC uint16
	runErr error
}

func newModel(program []byte, offset uint16) model {
	bus := &mem.TestBus{}
	bus.RAM[0xFFFC] = byte(offset)
	bus.RAM[0xFFFD] = byte(offset >> 8)

	c := cpu.New(bus)
	m := model{bus: bus, cpu: c, offset: offset}
	// Reset wipes TestBus RAM, so the program is loaded afterwards.
	if err := c.Reset(); err != nil {
		m.runErr = err
	}
	copy(bus.RAM[offset:], program)
	return m
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m model) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			m.prevPC = m.cpu.PC
			if err := m.cpu.Step(); err != nil {
				m.runErr = err
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

const bytesPerPage = 16

// renderPage renders a single 16-byte row of RAM. The current PC is
// highlighted.
func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := 0; i < bytesPerPage; i++ {
		addr := start + uint16(i)
		b := m.bus.RAM[addr]
		if addr == m.cpu.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) status() string {
	var flags string
	for _, bit := range []bool{
		m.cpu.P.Negative(),
		m.cpu.P.Overflow(),
		true, // unused, hardware-fixed
		false,
		m.cpu.P.Decimal(),
		m.cpu.P.Interrupt(),
		m.cpu.P.Zero(),
		m.cpu.P.Carry(),
	} {
		if bit {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
PC: %04x (%04x)
 A: %02x
 X: %02x
 Y: %02x
SP: %02x
N V _ B D I Z C
`,
		m.cpu.PC,
		m.prevPC,
		m.cpu.A,
		m.cpu.X,
		m.cpu.Y,
		m.cpu.SP,
	) + flags
}

func (m model) pageTable() string {
	header := "page | "
	for b := 0; b < bytesPerPage; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}

	rows := []string{header}
	base := m.cpu.PC &^ (bytesPerPage - 1)
	offsets := []uint16{
		0, 16, 32, 48,
		base, base + 16, base + 32,
	}
	for _, addr := range offsets {
		rows = append(rows, m.renderPage(addr))
	}
	return strings.Join(rows, "\n")
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m model) View() string {
	instr, _, _ := trace.Disassemble(m.cpu.PC, trace.SafePeek(m.bus))
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		instr.Text,
		spew.Sdump(cpu.OpcodeTable[m.bus.RAM[m.cpu.PC]]),
	)
}
