package rom

import "errors"

var (
	// ErrInvalidFileFormat is returned when the file is too short or
	// the "NES\x1A" magic is missing.
	ErrInvalidFileFormat = errors.New("invalid iNES file format")

	// ErrInvalidInesVersion is returned when the header declares an
	// iNES version other than 1 (only version 1 is supported).
	ErrInvalidInesVersion = errors.New("invalid iNES version: only version 1 is supported")

	// ErrInvalidFileSize is returned when the file is shorter than
	// the header declares (missing PRG or CHR payload).
	ErrInvalidFileSize = errors.New("invalid file size")
)
