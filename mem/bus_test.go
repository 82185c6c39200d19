package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nes6502/rom"
)

func newNROM(t *testing.T, prgSize int) *rom.ROM {
	t.Helper()
	header := make([]byte, 16)
	copy(header, []byte("NES\x1A"))
	header[4] = byte(prgSize / 0x4000)
	header[5] = 0
	raw := append(header, make([]byte, prgSize)...)
	r, err := rom.Load(raw)
	assert.NoError(t, err)
	return r
}

func TestNESBusRAMMirroring(t *testing.T) {
	b, err := NewNESBus(newNROM(t, 0x4000))
	assert.NoError(t, err)

	assert.NoError(t, b.Write(0x0000, 0x42))
	v, err := b.Read(0x0800) // mirror of 0x0000
	assert.NoError(t, err)
	assert.Equal(t, byte(0x42), v)

	v, err = b.Read(0x1800) // third mirror
	assert.NoError(t, err)
	assert.Equal(t, byte(0x42), v)
}

func TestNESBusPPUAPUFault(t *testing.T) {
	b, err := NewNESBus(newNROM(t, 0x4000))
	assert.NoError(t, err)

	_, err = b.Read(0x2000)
	assert.Error(t, err)
	var f *Fault
	assert.ErrorAs(t, err, &f)
	assert.Equal(t, InvalidRead, f.Kind)

	_, err = b.Read(0x4015)
	assert.Error(t, err)

	err = b.Write(0x3FFF, 1)
	assert.Error(t, err)
}

func TestNESBusPRGWriteFaults(t *testing.T) {
	b, err := NewNESBus(newNROM(t, 0x4000))
	assert.NoError(t, err)

	err = b.Write(0x8000, 1)
	assert.Error(t, err)
	var f *Fault
	assert.ErrorAs(t, err, &f)
	assert.Equal(t, InvalidWrite, f.Kind)
}

func TestNESBus16KMirroring(t *testing.T) {
	r := newNROM(t, 0x4000)
	copy(r.PRG(), []byte{0xAA, 0xBB})
	b, err := NewNESBus(r)
	assert.NoError(t, err)

	lo, _ := b.Read(0x8000)
	hi, _ := b.Read(0xC000)
	assert.Equal(t, byte(0xAA), lo)
	assert.Equal(t, byte(0xAA), hi) // mirrored into the upper half

	lo, _ = b.Read(0x8001)
	hi, _ = b.Read(0xC001)
	assert.Equal(t, byte(0xBB), lo)
	assert.Equal(t, byte(0xBB), hi)
}

func TestNESBusReadWordLittleEndian(t *testing.T) {
	b, err := NewNESBus(newNROM(t, 0x4000))
	assert.NoError(t, err)

	assert.NoError(t, b.Write(0x0010, 0x34))
	assert.NoError(t, b.Write(0x0011, 0x12))
	w, err := b.ReadWord(0x0010)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x1234), w)
}

func TestNESBusResetZeroesRAMNotROM(t *testing.T) {
	r := newNROM(t, 0x4000)
	copy(r.PRG(), []byte{0xAA})
	b, err := NewNESBus(r)
	assert.NoError(t, err)

	assert.NoError(t, b.Write(0x0000, 0xFF))
	b.Reset()

	v, _ := b.Read(0x0000)
	assert.Equal(t, byte(0), v)

	v, _ = b.Read(0x8000)
	assert.Equal(t, byte(0xAA), v)
}

func TestNewNESBusRejectsUnsupportedMapper(t *testing.T) {
	header := make([]byte, 16)
	copy(header, []byte("NES\x1A"))
	header[4] = 1
	header[6] = 0x10 // mapper nibble low = 1
	raw := append(header, make([]byte, 0x4000)...)
	r, err := rom.Load(raw)
	assert.NoError(t, err)

	_, err = NewNESBus(r)
	assert.ErrorIs(t, err, ErrUnsupportedMapper)
}

func TestTestBusFlatRAM(t *testing.T) {
	b := &TestBus{}
	assert.NoError(t, b.Write(0x8000, 0x42))
	v, err := b.Read(0x8000)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x42), v)

	assert.NoError(t, b.WriteWord(0xFFFC, 0x1234))
	w, err := b.ReadWord(0xFFFC)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x1234), w)

	b.Reset()
	v, _ = b.Read(0x8000)
	assert.Equal(t, byte(0), v)
}
