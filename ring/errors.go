package ring

import "errors"

var (
	// ErrIndivisible is returned when a matrix cannot be split into equal
	// whole-row (or whole-column) blocks across the ring.
	ErrIndivisible = errors.New("ring: matrix is not divisible across the ring")

	// ErrTransmitterOutOfRange is returned when the transmitter rank is not a ring member.
	ErrTransmitterOutOfRange = errors.New("ring: transmitter out of range")

	// ErrUnexpectedLength is returned when a received chunk differs in size from the probed block.
	ErrUnexpectedLength = errors.New("ring: unexpected message length")

	// ErrNilComm is returned when a collective is called without a Comm.
	ErrNilComm = errors.New("ring: nil comm")
)

var (
	// ErrLayoutMismatch is returned when the transmitter's matrix is not stored
	// in the layout its blocks are meant to take.
	ErrLayoutMismatch = errors.New("ring: matrix layout does not match block layout")

	// ErrUnknownKind is returned when Shift is asked to use an invalid Kind.
	ErrUnknownKind = errors.New("ring: unknown message kind")
)
