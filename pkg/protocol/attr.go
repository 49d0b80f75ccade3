package protocol

import "errors"

// AttrOp identifies an attribute mutation.
type AttrOp uint8

const (
	AttrSet    AttrOp = 0x01
	AttrRemove AttrOp = 0x02
)

// ErrUnknownAttrOp is returned for attribute changes with an unknown op.
var ErrUnknownAttrOp = errors.New("protocol: unknown attr op")

// AttrChange mirrors a server-side attribute mutation, such as a native
// title moved into the tip attribute, onto the client's DOM.
type AttrChange struct {
	Handle string
	Name   string
	Op     AttrOp
	Value  string // Only for AttrSet
}

// EncodeAttrChanges encodes a batch of attribute changes to bytes.
//
// Wire format:
//
//	[Count: varint]{[Handle: string][Name: string][Op: byte][Value: string if set]}*
func EncodeAttrChanges(changes []AttrChange) []byte {
	e := NewEncoder()
	EncodeAttrChangesTo(e, changes)
	return e.Bytes()
}

// EncodeAttrChangesTo encodes a batch of attribute changes using the
// provided encoder.
func EncodeAttrChangesTo(e *Encoder, changes []AttrChange) {
	e.WriteUvarint(uint64(len(changes)))
	for _, c := range changes {
		e.WriteString(c.Handle)
		e.WriteString(c.Name)
		e.PutByte(byte(c.Op))
		if c.Op == AttrSet {
			e.WriteString(c.Value)
		}
	}
}

// DecodeAttrChanges decodes a batch of attribute changes from bytes.
func DecodeAttrChanges(data []byte) ([]AttrChange, error) {
	return DecodeAttrChangesFrom(NewDecoder(data))
}

// DecodeAttrChangesFrom decodes a batch of attribute changes from a decoder.
func DecodeAttrChangesFrom(d *Decoder) ([]AttrChange, error) {
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}

	changes := make([]AttrChange, 0, count)
	for i := 0; i < count; i++ {
		var c AttrChange
		if c.Handle, err = d.ReadString(); err != nil {
			return nil, err
		}
		if c.Name, err = d.ReadString(); err != nil {
			return nil, err
		}
		op, err := d.ReadByte()
		if err != nil {
			return nil, err
		}
		c.Op = AttrOp(op)
		switch c.Op {
		case AttrSet:
			if c.Value, err = d.ReadString(); err != nil {
				return nil, err
			}
		case AttrRemove:
		default:
			return nil, ErrUnknownAttrOp
		}
		changes = append(changes, c)
	}
	return changes, nil
}
