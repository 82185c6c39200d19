// Package rom parses the iNES v1 cartridge container: the de facto
// format for distributing NES ROM images. It extracts the PRG and CHR
// payloads and the header's mapper/mirroring/trainer flags, and
// exposes byte-addressable PRG reads with NROM (mapper 0) mirroring.
package rom

import (
	"fmt"
	"os"

	"nes6502/mask"
)

const (
	headerSize   = 16
	trainerSize  = 512
	prgPageSize  = 0x4000 // 16 KiB
	chrPageSize  = 0x2000 // 8 KiB
	prgMirrorLen = 0x4000
)

var nesMagic = [4]byte{'N', 'E', 'S', 0x1A}

// Mirroring describes how the cartridge wants nametables mirrored.
// The core does not implement a PPU, so this is carried purely as
// metadata for an external consumer.
type Mirroring int

const (
	Horizontal Mirroring = iota
	Vertical
	FourScreen
)

func (m Mirroring) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case FourScreen:
		return "four-screen"
	default:
		return "unknown"
	}
}

// ROM is a parsed iNES image: immutable PRG/CHR payloads plus the
// header metadata needed to address them.
type ROM struct {
	prg          []byte
	chr          []byte
	mapper       uint8
	mirroring    Mirroring
	mirrorPRGROM bool
	hasSRAM      bool
	hasTrainer   bool
}

// Load parses raw as an iNES v1 image.
func Load(raw []byte) (*ROM, error) {
	if len(raw) < headerSize {
		return nil, ErrInvalidFileFormat
	}
	var magic [4]byte
	copy(magic[:], raw[0:4])
	if magic != nesMagic {
		return nil, ErrInvalidFileFormat
	}

	if raw[7]&0x0C != 0 {
		return nil, ErrInvalidInesVersion
	}

	mapper := mask.First(raw[7], 4)<<4 | mask.First(raw[6], 4)

	fourScreen := mask.IsSet(raw[6], mask.I5)
	vertical := mask.IsSet(raw[6], mask.I8)
	var mirroring Mirroring
	switch {
	case fourScreen:
		mirroring = FourScreen
	case vertical:
		mirroring = Vertical
	default:
		mirroring = Horizontal
	}

	hasTrainer := mask.IsSet(raw[6], mask.I6)
	hasSRAM := mask.IsSet(raw[6], mask.I7)

	prgSize := int(raw[4]) * prgPageSize
	chrSize := int(raw[5]) * chrPageSize

	prgStart := headerSize
	if hasTrainer {
		prgStart += trainerSize
	}
	chrStart := prgStart + prgSize

	if len(raw) < chrStart+chrSize {
		return nil, ErrInvalidFileSize
	}

	prg := make([]byte, prgSize)
	copy(prg, raw[prgStart:prgStart+prgSize])

	chr := make([]byte, chrSize)
	copy(chr, raw[chrStart:chrStart+chrSize])

	return &ROM{
		prg:          prg,
		chr:          chr,
		mapper:       mapper,
		mirroring:    mirroring,
		mirrorPRGROM: prgSize == prgMirrorLen,
		hasSRAM:      hasSRAM,
		hasTrainer:   hasTrainer,
	}, nil
}

// LoadFile reads and parses the iNES image at path.
func LoadFile(path string) (*ROM, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rom: reading %s: %w", path, err)
	}
	r, err := Load(raw)
	if err != nil {
		return nil, fmt.Errorf("rom: parsing %s: %w", path, err)
	}
	return r, nil
}

// ReadPRG reads a byte from the PRG-ROM window, given an offset
// relative to 0x8000 (i.e. in 0x0000..=0x7FFF). 16 KiB carts mirror
// into both halves of the CPU's 0x8000-0xFFFF window.
func (r *ROM) ReadPRG(offset uint16) byte {
	if r.mirrorPRGROM {
		return r.prg[int(offset)%prgPageSize]
	}
	return r.prg[offset]
}

// PRG returns the raw PRG-ROM payload. Mutating the returned slice
// mutates the cartridge; callers should treat it as read-only outside
// of test setup.
func (r *ROM) PRG() []byte { return r.prg }

// CHR returns the raw CHR-ROM/CHR-RAM payload.
func (r *ROM) CHR() []byte { return r.chr }

// Mapper returns the iNES mapper id.
func (r *ROM) Mapper() uint8 { return r.mapper }

// MirroringMode returns the cartridge's nametable mirroring mode.
func (r *ROM) MirroringMode() Mirroring { return r.mirroring }

// HasSRAM reports whether the cartridge declares battery-backed RAM.
// Persisting it is out of scope for this core; the flag is exposed so
// a harness can decide whether to wire in its own save-RAM layer.
func (r *ROM) HasSRAM() bool { return r.hasSRAM }

// HasTrainer reports whether the image carried a 512-byte trainer
// (already skipped during parsing).
func (r *ROM) HasTrainer() bool { return r.hasTrainer }
