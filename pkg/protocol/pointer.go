package protocol

import (
	"errors"

	"github.com/vango-dev/quicktip/pkg/geom"
)

// PointerKind identifies a pointer transition.
type PointerKind uint8

const (
	PointerOver PointerKind = 0x01 // Pointer entered Target from Related
	PointerOut  PointerKind = 0x02 // Pointer left Target for Related
	PointerMove PointerKind = 0x03 // Pointer moved within Target
)

// String returns the string representation of the pointer kind.
func (k PointerKind) String() string {
	switch k {
	case PointerOver:
		return "Over"
	case PointerOut:
		return "Out"
	case PointerMove:
		return "Move"
	default:
		return "Unknown"
	}
}

// ErrUnknownPointerKind is returned for pointer frames with an unknown kind.
var ErrUnknownPointerKind = errors.New("protocol: unknown pointer kind")

// Pointer is a pointer transition reported by the client. Handles are the
// data-hid values of the elements involved; an empty handle means the
// pointer came from or went to something without one (text, the window).
//
// Wire format:
//
//	[Kind: byte][Target: string][Related: string][X: svarint][Y: svarint]
type Pointer struct {
	Kind    PointerKind
	Target  string
	Related string
	Point   geom.Point
}

// EncodePointer encodes a pointer message to bytes.
func EncodePointer(p *Pointer) []byte {
	e := NewEncoder()
	EncodePointerTo(e, p)
	return e.Bytes()
}

// EncodePointerTo encodes a pointer message using the provided encoder.
func EncodePointerTo(e *Encoder, p *Pointer) {
	e.PutByte(byte(p.Kind))
	e.WriteString(p.Target)
	e.WriteString(p.Related)
	e.WritePoint(p.Point)
}

// DecodePointer decodes a pointer message from bytes.
func DecodePointer(data []byte) (*Pointer, error) {
	return DecodePointerFrom(NewDecoder(data))
}

// DecodePointerFrom decodes a pointer message from a decoder.
func DecodePointerFrom(d *Decoder) (*Pointer, error) {
	b, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	kind := PointerKind(b)
	if kind < PointerOver || kind > PointerMove {
		return nil, ErrUnknownPointerKind
	}

	p := &Pointer{Kind: kind}
	if p.Target, err = d.ReadString(); err != nil {
		return nil, err
	}
	if p.Related, err = d.ReadString(); err != nil {
		return nil, err
	}
	if p.Point, err = d.ReadPoint(); err != nil {
		return nil, err
	}
	return p, nil
}
