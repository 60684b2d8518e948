package mtlximport

import "errors"

var (
	// ErrDirectory indicates the texture directory could not be read.
	ErrDirectory = errors.New("texture directory unreadable")

	// ErrInput indicates missing required input (folder, material name) or a non-empty target network.
	ErrInput = errors.New("invalid input")

	// ErrAmbiguousSelection indicates several maps matched a channel and none could be chosen.
	ErrAmbiguousSelection = errors.New("ambiguous texture selection")

	// ErrPresetFormat indicates a preset file is not a valid settings object.
	ErrPresetFormat = errors.New("invalid preset")

	// ErrHostOperation indicates node creation or wiring failed at the host.
	ErrHostOperation = errors.New("host operation failed")

	// ErrParse indicates a MaterialX document could not be decoded.
	ErrParse = errors.New("parse error")
)
