// Command nestest runs an iNES ROM headlessly, printing one trace
// line per instruction in the nestest log layout. Pointed at
// nestest.nes with the default entry point, its output is diffable
// against the community nestest golden log.
package main

import (
	"flag"
	"fmt"
	"log"

	"nes6502/cpu"
	"nes6502/mem"
	"nes6502/rom"
	"nes6502/trace"
)

func main() {
	entry := flag.Uint64("entry", 0xC000, "address to force PC to after reset (0 to honor the ROM's reset vector)")
	limit := flag.Int("limit", 10000, "maximum instructions to execute")
	flag.Parse()

	path := flag.Arg(0)
	if path == "" {
		log.Fatal("usage: nestest [-entry addr] [-limit n] <rom.nes>")
	}

	cart, err := rom.LoadFile(path)
	if err != nil {
		log.Fatalf("nestest: %v", err)
	}

	bus, err := mem.NewNESBus(cart)
	if err != nil {
		log.Fatalf("nestest: %v", err)
	}

	c := cpu.New(bus)
	if err := c.Reset(); err != nil {
		log.Fatalf("nestest: reset: %v", err)
	}
	if *entry != 0 {
		c.PC = uint16(*entry)
	}

	var cycle uint64
	for i := 0; i < *limit && !c.Halted; i++ {
		tr := trace.Capture(c, bus, cycle)
		fmt.Println(trace.Format(tr))

		if err := c.Step(); err != nil {
			break
		}
		cycle += uint64(c.Cycles)
	}
}
