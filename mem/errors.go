package mem

import "errors"

// ErrUnsupportedMapper is returned by NewNESBus when the cartridge
// declares a mapper other than 0 (NROM). Mappers other than NROM are
// a Non-goal of this core.
var ErrUnsupportedMapper = errors.New("unsupported mapper")
