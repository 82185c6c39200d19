package rom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func header(prgBlocks, chrBlocks, flag6, flag7 byte) []byte {
	h := make([]byte, headerSize)
	copy(h, []byte("NES\x1A"))
	h[4] = prgBlocks
	h[5] = chrBlocks
	h[6] = flag6
	h[7] = flag7
	return h
}

func TestLoadRejectsShortFile(t *testing.T) {
	_, err := Load([]byte{0x4E, 0x45})
	assert.ErrorIs(t, err, ErrInvalidFileFormat)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	raw := header(1, 0, 0, 0)
	raw[0] = 'X'
	_, err := Load(raw)
	assert.ErrorIs(t, err, ErrInvalidFileFormat)
}

func TestLoadRejectsNonV1(t *testing.T) {
	raw := append(header(1, 0, 0, 0x08), make([]byte, prgPageSize)...)
	_, err := Load(raw)
	assert.ErrorIs(t, err, ErrInvalidInesVersion)
}

func TestLoadRejectsShortPayload(t *testing.T) {
	raw := append(header(2, 0, 0, 0), make([]byte, prgPageSize)...) // declares 2 PRG banks, supplies 1
	_, err := Load(raw)
	assert.ErrorIs(t, err, ErrInvalidFileSize)
}

func TestLoadExtractsMapperAndMirroring(t *testing.T) {
	// mapper = high nibble of flag7 | high nibble of flag6 -> 0x10 = mapper 16
	raw := append(header(1, 1, 0x01, 0x10), make([]byte, prgPageSize+chrPageSize)...)
	r, err := Load(raw)
	assert.NoError(t, err)
	assert.EqualValues(t, 0x10, r.Mapper())
	assert.Equal(t, Vertical, r.MirroringMode())
}

func TestLoadFourScreenOverridesVertical(t *testing.T) {
	raw := append(header(1, 0, 0x09, 0), make([]byte, prgPageSize)...) // bit0 (vertical) + bit3 (four-screen)
	r, err := Load(raw)
	assert.NoError(t, err)
	assert.Equal(t, FourScreen, r.MirroringMode())
}

func TestLoadSkipsTrainer(t *testing.T) {
	raw := header(1, 0, 0x04, 0) // trainer flag set
	raw = append(raw, make([]byte, trainerSize)...)
	prg := make([]byte, prgPageSize)
	prg[0] = 0xAB
	raw = append(raw, prg...)

	r, err := Load(raw)
	assert.NoError(t, err)
	assert.True(t, r.HasTrainer())
	assert.Equal(t, byte(0xAB), r.PRG()[0])
}

func TestReadPRGMirrors16K(t *testing.T) {
	raw := header(1, 0, 0, 0)
	prg := make([]byte, prgPageSize)
	prg[0] = 0x11
	prg[0x3FFF] = 0x22
	raw = append(raw, prg...)

	r, err := Load(raw)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x11), r.ReadPRG(0x0000))
	assert.Equal(t, byte(0x11), r.ReadPRG(0x4000)) // mirrored
	assert.Equal(t, byte(0x22), r.ReadPRG(0x7FFF)) // mirrored tail
}

func TestReadPRGNoMirror32K(t *testing.T) {
	raw := header(2, 0, 0, 0)
	prg := make([]byte, 2*prgPageSize)
	prg[0] = 0x11
	prg[prgPageSize] = 0x99
	raw = append(raw, prg...)

	r, err := Load(raw)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x11), r.ReadPRG(0x0000))
	assert.Equal(t, byte(0x99), r.ReadPRG(0x4000))
}
