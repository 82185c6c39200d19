// Command disasm statically disassembles an iNES ROM's PRG-ROM,
// printing one line per instruction without executing anything.
package main

import (
	"flag"
	"fmt"
	"log"

	"nes6502/rom"
	"nes6502/trace"
)

func main() {
	flag.Parse()
	path := flag.Arg(0)
	if path == "" {
		log.Fatal("usage: disasm <rom.nes>")
	}

	cart, err := rom.LoadFile(path)
	if err != nil {
		log.Fatalf("disasm: %v", err)
	}

	peek := func(addr uint16) byte { return cart.ReadPRG(addr - 0x8000) }

	for pc := uint32(0x8000); pc <= 0xFFFF; {
		addr := uint16(pc)
		instr, raw, length := trace.Disassemble(addr, peek)

		bytesField := ""
		for i := uint8(0); i < length; i++ {
			bytesField += fmt.Sprintf("%02X ", raw[i])
		}
		fmt.Printf("%04X  %-9s%s\n", addr, bytesField, instr.Text)

		pc += uint32(length)
	}
}
