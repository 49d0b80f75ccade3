package protocol

import "github.com/vango-dev/quicktip/pkg/geom"

// Layout carries the client's viewport and the border boxes of elements the
// server may align panels to. Clients send it on connect, on resize and on
// scroll; Boxes need only list elements whose bounds changed.
//
// Wire format:
//
//	[Viewport: rect][Count: varint]{[Handle: string][Box: rect]}*
//
// where rect is [X: svarint][Y: svarint][W: svarint][H: svarint] and
// widths and heights are never negative.
type Layout struct {
	Viewport geom.Rect
	Boxes    []Box
}

// Box is the border box of one element.
type Box struct {
	Handle string
	Rect   geom.Rect
}

// EncodeLayout encodes a layout message to bytes.
func EncodeLayout(l *Layout) []byte {
	e := NewEncoder()
	EncodeLayoutTo(e, l)
	return e.Bytes()
}

// EncodeLayoutTo encodes a layout message using the provided encoder.
func EncodeLayoutTo(e *Encoder, l *Layout) {
	e.WriteRect(l.Viewport)
	e.WriteUvarint(uint64(len(l.Boxes)))
	for _, b := range l.Boxes {
		e.WriteString(b.Handle)
		e.WriteRect(b.Rect)
	}
}

// DecodeLayout decodes a layout message from bytes.
func DecodeLayout(data []byte) (*Layout, error) {
	return DecodeLayoutFrom(NewDecoder(data))
}

// DecodeLayoutFrom decodes a layout message from a decoder.
func DecodeLayoutFrom(d *Decoder) (*Layout, error) {
	vp, err := d.ReadRect()
	if err != nil {
		return nil, err
	}

	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}

	l := &Layout{Viewport: vp}
	if count > 0 {
		l.Boxes = make([]Box, 0, count)
	}
	for i := 0; i < count; i++ {
		var b Box
		if b.Handle, err = d.ReadString(); err != nil {
			return nil, err
		}
		if b.Rect, err = d.ReadRect(); err != nil {
			return nil, err
		}
		l.Boxes = append(l.Boxes, b)
	}
	return l, nil
}
