package grpcnet

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/klauspost/compress/zstd"

	"github.com/katalvlaran/ringpath/ring"
)

// Frame layout:
//
//	byte 0     message kind
//	byte 1     flags
//	uvarint    cell count
//	rest       cells as little-endian float64, zstd-compressed when flagCompressed is set
const (
	frameHeader    = 2
	flagCompressed = 1 << 0
)

var ErrBadFrame = errors.New("grpcnet: malformed frame")

// codec encodes frames. enc is nil when compression is off; dec is always
// set so compressed frames from any peer can be read.
type codec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newCodec(compress bool) (*codec, error) {
	c := &codec{}
	var err error
	if compress {
		if c.enc, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest)); err != nil {
			return nil, err
		}
	}
	if c.dec, err = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0)); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *codec) close() {
	if c.enc != nil {
		_ = c.enc.Close()
	}
	c.dec.Close()
}

func (c *codec) encode(kind ring.Kind, cells []float64) []byte {
	raw := make([]byte, 8*len(cells))
	for i, v := range cells {
		binary.LittleEndian.PutUint64(raw[8*i:], math.Float64bits(v))
	}

	var flags byte
	if c.enc != nil {
		flags |= flagCompressed
	}
	out := make([]byte, frameHeader, frameHeader+binary.MaxVarintLen64+len(raw))
	out[0], out[1] = byte(kind), flags
	out = binary.AppendUvarint(out, uint64(len(cells)))
	if c.enc != nil {
		return c.enc.EncodeAll(raw, out)
	}
	return append(out, raw...)
}

func (c *codec) decode(frame []byte) (ring.Kind, []float64, error) {
	if len(frame) < frameHeader {
		return 0, nil, fmt.Errorf("%d bytes: %w", len(frame), ErrBadFrame)
	}
	kind, flags := ring.Kind(frame[0]), frame[1]
	if !kind.Valid() {
		return 0, nil, fmt.Errorf("kind %d: %w", frame[0], ErrBadFrame)
	}
	count, n := binary.Uvarint(frame[frameHeader:])
	if n <= 0 {
		return 0, nil, fmt.Errorf("cell count: %w", ErrBadFrame)
	}
	raw := frame[frameHeader+n:]
	if flags&flagCompressed != 0 {
		var err error
		if raw, err = c.dec.DecodeAll(raw, nil); err != nil {
			return 0, nil, fmt.Errorf("%w: %w", ErrBadFrame, err)
		}
	}
	if count > uint64(len(raw))/8 || uint64(len(raw)) != 8*count {
		return 0, nil, fmt.Errorf("%d bytes for %d cells: %w", len(raw), count, ErrBadFrame)
	}

	cells := make([]float64, count)
	for i := range cells {
		cells[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
	}
	return kind, cells, nil
}
