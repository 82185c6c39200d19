package cpu

// Policy selects between the corrected 6502 semantics this core
// implements by default and a handful of documented bugs present in
// the implementation this spec was distilled from. The legacy flags
// exist only so a regression test can demonstrate the fix against the
// original bug; a harness has no reason to set any of them.
type Policy struct {
	// BRKPushesAndJumps, when true, makes BRK behave like real 6502
	// hardware: push PC+2, push P with B set, set I, and jump through
	// the IRQ/BRK vector at 0xFFFE, instead of halting. The default
	// (false) halts the core, which is what nestest-style regression
	// traces expect (spec.md's chosen BRK policy).
	BRKPushesAndJumps bool

	// LegacyASLCarryBug, when true, reproduces a bug where ASL reads
	// carry from bit 3 of the input instead of bit 7. Off by default;
	// correct 6502 behavior is bit 7.
	LegacyASLCarryBug bool

	// LegacyJSRPushBug, when true, reproduces a bug where JSR pushes
	// PC+2 instead of the standard PC+2-1 (the address of the JSR
	// instruction's last byte). Off by default.
	LegacyJSRPushBug bool
}
