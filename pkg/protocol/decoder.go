package protocol

import (
	"errors"
	"io"
	"math"

	"github.com/vango-dev/quicktip/pkg/geom"
)

// Decoding limits. Length prefixes and counts come from the network and are
// checked before anything is allocated.
const (
	// MaxStringLen bounds a single decoded string.
	MaxStringLen = 64 * 1024

	// MaxCollectionCount bounds the number of items in a decoded list.
	MaxCollectionCount = 10_000
)

// Common decoding errors.
var (
	ErrVarintOverflow     = errors.New("protocol: varint overflow")
	ErrAllocationTooLarge = errors.New("protocol: allocation size exceeds limit")
	ErrCollectionTooLarge = errors.New("protocol: collection count exceeds limit")
	ErrIntOverflow        = errors.New("protocol: integer out of range")
	ErrNegativeSize       = errors.New("protocol: negative width or height")
)

// Decoder reads binary data from a byte buffer.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder creates a new decoder from the given byte slice.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// EOF returns true if all bytes have been read.
func (d *Decoder) EOF() bool {
	return d.pos >= len(d.buf)
}

// ReadByte reads a single byte.
func (d *Decoder) ReadByte() (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

// ReadUvarint reads an unsigned varint.
func (d *Decoder) ReadUvarint() (uint64, error) {
	var v uint64
	var shift uint

	for {
		if d.pos >= len(d.buf) {
			return 0, io.ErrUnexpectedEOF
		}
		b := d.buf[d.pos]
		d.pos++
		v |= uint64(b&0x7F) << shift
		if b < 0x80 {
			return v, nil
		}
		shift += 7
		if shift >= 64 {
			return 0, ErrVarintOverflow
		}
	}
}

// ReadSvarint reads a signed varint using ZigZag decoding.
func (d *Decoder) ReadSvarint() (int64, error) {
	uv, err := d.ReadUvarint()
	if err != nil {
		return 0, err
	}
	v := int64(uv >> 1)
	if uv&1 != 0 {
		v = ^v
	}
	return v, nil
}

// ReadInt reads a signed varint that must fit in an int32. Coordinates and
// sizes never come close; anything larger is a corrupt or hostile frame.
func (d *Decoder) ReadInt() (int, error) {
	v, err := d.ReadSvarint()
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, ErrIntOverflow
	}
	return int(v), nil
}

// ReadString reads a length-prefixed UTF-8 string.
func (d *Decoder) ReadString() (string, error) {
	length, err := d.ReadUvarint()
	if err != nil {
		return "", err
	}
	if length > uint64(d.Remaining()) {
		return "", io.ErrUnexpectedEOF
	}
	if length > MaxStringLen {
		return "", ErrAllocationTooLarge
	}
	n := int(length)
	s := string(d.buf[d.pos : d.pos+n])
	d.pos += n
	return s, nil
}

// ReadBool reads a boolean. Any non-zero byte is true.
func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0x00, nil
}

// ReadUint16 reads a uint16 in big-endian byte order.
func (d *Decoder) ReadUint16() (uint16, error) {
	if d.pos+2 > len(d.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	v := uint16(d.buf[d.pos])<<8 | uint16(d.buf[d.pos+1])
	d.pos += 2
	return v, nil
}

// ReadUint64 reads a uint64 in big-endian byte order.
func (d *Decoder) ReadUint64() (uint64, error) {
	if d.pos+8 > len(d.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(d.buf[d.pos+i])
	}
	d.pos += 8
	return v, nil
}

// ReadPoint reads a point written by WritePoint.
func (d *Decoder) ReadPoint() (geom.Point, error) {
	x, err := d.ReadInt()
	if err != nil {
		return geom.Point{}, err
	}
	y, err := d.ReadInt()
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Pt(x, y), nil
}

// ReadRect reads a rect written by WriteRect. Negative sizes are rejected.
func (d *Decoder) ReadRect() (geom.Rect, error) {
	var v [4]int
	for i := range v {
		n, err := d.ReadInt()
		if err != nil {
			return geom.Rect{}, err
		}
		v[i] = n
	}
	if v[2] < 0 || v[3] < 0 {
		return geom.Rect{}, ErrNegativeSize
	}
	return geom.R(v[0], v[1], v[2], v[3]), nil
}

// ReadCollectionCount reads a varint count and validates it against limits.
// Every item takes at least one byte, so a count larger than the remaining
// buffer is rejected too.
func (d *Decoder) ReadCollectionCount() (int, error) {
	count, err := d.ReadUvarint()
	if err != nil {
		return 0, err
	}
	if count > MaxCollectionCount {
		return 0, ErrCollectionTooLarge
	}
	if count > uint64(d.Remaining()) {
		return 0, io.ErrUnexpectedEOF
	}
	return int(count), nil
}
