package protocol

import (
	"errors"

	"github.com/vango-dev/quicktip/pkg/geom"
)

// TipOp identifies a panel update.
type TipOp uint8

const (
	TipShow TipOp = 0x01 // Draw the panel
	TipHide TipOp = 0x02 // Hide the panel
)

// String returns the string representation of the tip op.
func (op TipOp) String() string {
	switch op {
	case TipShow:
		return "Show"
	case TipHide:
		return "Hide"
	default:
		return "Unknown"
	}
}

// ErrUnknownTipOp is returned for tip frames with an unknown op.
var ErrUnknownTipOp = errors.New("protocol: unknown tip op")

// Tip tells the client how to draw the hint panel. A show replaces the
// panel's markup and box; a hide carries no payload.
//
// Wire format:
//
//	[Op: byte]
//	Show: [HTML: string][Box: rect][Z: svarint][Anchor: string][Target: string]
//
// Anchor is the pointer side ("" when not anchored) and Target the handle of
// the element an anchored panel tracks.
type Tip struct {
	Op     TipOp
	HTML   string
	Box    geom.Rect
	Z      int
	Anchor string
	Target string
}

// EncodeTip encodes a tip message to bytes.
func EncodeTip(t *Tip) []byte {
	e := NewEncoder()
	EncodeTipTo(e, t)
	return e.Bytes()
}

// EncodeTipTo encodes a tip message using the provided encoder.
func EncodeTipTo(e *Encoder, t *Tip) {
	e.PutByte(byte(t.Op))
	if t.Op != TipShow {
		return
	}
	e.WriteString(t.HTML)
	e.WriteRect(t.Box)
	e.WriteInt(t.Z)
	e.WriteString(t.Anchor)
	e.WriteString(t.Target)
}

// DecodeTip decodes a tip message from bytes.
func DecodeTip(data []byte) (*Tip, error) {
	return DecodeTipFrom(NewDecoder(data))
}

// DecodeTipFrom decodes a tip message from a decoder.
func DecodeTipFrom(d *Decoder) (*Tip, error) {
	b, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	t := &Tip{Op: TipOp(b)}
	switch t.Op {
	case TipHide:
		return t, nil
	case TipShow:
	default:
		return nil, ErrUnknownTipOp
	}

	if t.HTML, err = d.ReadString(); err != nil {
		return nil, err
	}
	if t.Box, err = d.ReadRect(); err != nil {
		return nil, err
	}
	if t.Z, err = d.ReadInt(); err != nil {
		return nil, err
	}
	if t.Anchor, err = d.ReadString(); err != nil {
		return nil, err
	}
	if t.Target, err = d.ReadString(); err != nil {
		return nil, err
	}
	return t, nil
}
