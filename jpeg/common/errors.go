package common

import "errors"

// Sentinel errors for the baseline decode pipeline, named after the
// error kinds in the specification: each is fatal to the decode and
// propagates unchanged to the caller. Use errors.Is to test for them
// through any amount of fmt.Errorf("%w") wrapping.
var (
	// ErrTruncatedInput means the source was exhausted before a
	// required field (segment body, scan byte, ...) was fully read.
	ErrTruncatedInput = errors.New("jpeg: truncated input")

	// ErrUnexpectedMarker means a marker was found in a position the
	// parser's state machine does not admit (e.g. SOS before SOF0, or
	// an SOS component id not declared by SOF0).
	ErrUnexpectedMarker = errors.New("jpeg: unexpected marker")

	// ErrUnsupported means a non-baseline feature was detected:
	// progressive/lossless/arithmetic SOF, a restart interval, a
	// component count other than one or three, non-8-bit sample
	// precision, or an
	// out-of-range table id.
	ErrUnsupported = errors.New("jpeg: unsupported feature")

	// ErrCorruptStuffing means the entropy stream ended with a bare
	// 0xFF and no follower byte at all, at the exact point
	// stuffing-vs-marker would have been decided.
	ErrCorruptStuffing = errors.New("jpeg: corrupt byte stuffing")

	// ErrNoMatchingCode means a Huffman search reached 17 bits
	// without matching any assigned code.
	ErrNoMatchingCode = errors.New("jpeg: no matching huffman code")

	// ErrInvalidRunLength means AC coefficient advancement would
	// overrun linear position 64 within a block.
	ErrInvalidRunLength = errors.New("jpeg: invalid AC run length")

	// ErrTableMissing means a component references a quantization or
	// Huffman table id whose segment was never loaded.
	ErrTableMissing = errors.New("jpeg: referenced table missing")

	// ErrEndOfStream is the BitReader's normal signal that the
	// entropy-coded segment has ended, almost always because a marker
	// (RST, EOI, or the next segment) followed a 0xFF byte that was
	// not a stuffed 0x00.
	ErrEndOfStream = errors.New("jpeg: end of entropy stream")
)
