package protocol

import "errors"

// ControlType identifies the type of control message.
type ControlType uint8

const (
	ControlPing ControlType = 0x01 // Client/server ping
	ControlPong ControlType = 0x02 // Response to ping
)

// String returns the string representation of the control type.
func (ct ControlType) String() string {
	switch ct {
	case ControlPing:
		return "Ping"
	case ControlPong:
		return "Pong"
	default:
		return "Unknown"
	}
}

// ErrUnknownControl is returned for control frames with an unknown type.
var ErrUnknownControl = errors.New("protocol: unknown control type")

// Control is a ping or pong message.
type Control struct {
	Type      ControlType
	Timestamp uint64 // Unix timestamp in milliseconds
}

// NewPing creates a ping carrying ts.
func NewPing(ts uint64) *Control {
	return &Control{Type: ControlPing, Timestamp: ts}
}

// Pong returns the reply to a ping, echoing its timestamp.
func (c *Control) Pong() *Control {
	return &Control{Type: ControlPong, Timestamp: c.Timestamp}
}

// EncodeControl encodes a control message to bytes.
func EncodeControl(c *Control) []byte {
	e := NewEncoder()
	EncodeControlTo(e, c)
	return e.Bytes()
}

// EncodeControlTo encodes a control message using the provided encoder.
func EncodeControlTo(e *Encoder, c *Control) {
	e.PutByte(byte(c.Type))
	e.WriteUint64(c.Timestamp)
}

// DecodeControl decodes a control message from bytes.
func DecodeControl(data []byte) (*Control, error) {
	return DecodeControlFrom(NewDecoder(data))
}

// DecodeControlFrom decodes a control message from a decoder.
func DecodeControlFrom(d *Decoder) (*Control, error) {
	b, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	ct := ControlType(b)
	if ct != ControlPing && ct != ControlPong {
		return nil, ErrUnknownControl
	}

	ts, err := d.ReadUint64()
	if err != nil {
		return nil, err
	}
	return &Control{Type: ct, Timestamp: ts}, nil
}
