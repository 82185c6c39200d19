package cpu

import (
	"errors"
	"fmt"
)

// ErrHalted is returned by the Step that executes a BRK under the
// default halt policy, and by every Step called on a CPU that has
// already halted (from BRK, an invalid opcode or a bus fault). The
// caller must Reset before stepping again.
var ErrHalted = errors.New("cpu: halted")

// InvalidOpcodeError is returned by Step when the byte at PC does not
// correspond to any entry in the decode table.
type InvalidOpcodeError struct {
	Opcode byte
	PC     uint16
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("cpu: invalid opcode $%02X at $%04X", e.Opcode, e.PC)
}
