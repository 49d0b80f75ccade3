package protocol

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strings"
	"testing"
)

func TestUvarint(t *testing.T) {
	tests := []struct {
		value uint64
		bytes []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xAC, 0x02}},
		{16384, []byte{0x80, 0x80, 0x01}},
	}

	for _, tc := range tests {
		e := NewEncoder()
		e.WriteUvarint(tc.value)
		if !bytes.Equal(e.Bytes(), tc.bytes) {
			t.Errorf("WriteUvarint(%d) = % x, want % x", tc.value, e.Bytes(), tc.bytes)
		}

		got, err := NewDecoder(tc.bytes).ReadUvarint()
		if err != nil || got != tc.value {
			t.Errorf("ReadUvarint(% x) = %d, %v; want %d", tc.bytes, got, err, tc.value)
		}
	}
}

func TestSvarintZigZag(t *testing.T) {
	tests := []struct {
		value int64
		first byte
	}{
		{0, 0x00},
		{-1, 0x01},
		{1, 0x02},
		{-2, 0x03},
		{2, 0x04},
	}

	for _, tc := range tests {
		e := NewEncoder()
		e.WriteSvarint(tc.value)
		if e.Bytes()[0] != tc.first {
			t.Errorf("WriteSvarint(%d) = %#x, want %#x", tc.value, e.Bytes()[0], tc.first)
		}
	}

	for _, v := range []int64{0, -1, 63, -64, 1 << 40, math.MinInt64, math.MaxInt64} {
		e := NewEncoder()
		e.WriteSvarint(v)
		got, err := NewDecoder(e.Bytes()).ReadSvarint()
		if err != nil || got != v {
			t.Errorf("svarint %d came back as %d, %v", v, got, err)
		}
	}
}

func TestReadUvarintOverflow(t *testing.T) {
	data := bytes.Repeat([]byte{0xFF}, 10)
	if _, err := NewDecoder(data).ReadUvarint(); !errors.Is(err, ErrVarintOverflow) {
		t.Errorf("err = %v, want ErrVarintOverflow", err)
	}
}

func TestReadIntRange(t *testing.T) {
	e := NewEncoder()
	e.WriteSvarint(math.MaxInt32 + 1)
	if _, err := NewDecoder(e.Bytes()).ReadInt(); !errors.Is(err, ErrIntOverflow) {
		t.Errorf("err = %v, want ErrIntOverflow", err)
	}

	e.Reset()
	e.WriteInt(-1024)
	got, err := NewDecoder(e.Bytes()).ReadInt()
	if err != nil || got != -1024 {
		t.Errorf("ReadInt() = %d, %v", got, err)
	}
}

func TestReadStringLimits(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(10)
	e.WriteBytes([]byte("abc"))
	if _, err := NewDecoder(e.Bytes()).ReadString(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("truncated: err = %v", err)
	}

	e.Reset()
	e.WriteString(strings.Repeat("x", MaxStringLen+1))
	if _, err := NewDecoder(e.Bytes()).ReadString(); !errors.Is(err, ErrAllocationTooLarge) {
		t.Errorf("oversized: err = %v", err)
	}
}

func TestReadCollectionCountLimits(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(MaxCollectionCount + 1)
	if _, err := NewDecoder(e.Bytes()).ReadCollectionCount(); !errors.Is(err, ErrCollectionTooLarge) {
		t.Errorf("too many: err = %v", err)
	}

	// A count larger than the remaining bytes cannot be honest.
	e.Reset()
	e.WriteUvarint(50)
	e.PutByte(0x00)
	if _, err := NewDecoder(e.Bytes()).ReadCollectionCount(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("short: err = %v", err)
	}
}

var _ io.ByteReader = (*Decoder)(nil)

func TestPutByte(t *testing.T) {
	e := NewEncoder()
	e.PutByte(0x7F)
	e.PutByte(0x00)

	d := NewDecoder(e.Bytes())
	for _, want := range []byte{0x7F, 0x00} {
		if got, err := d.ReadByte(); err != nil || got != want {
			t.Errorf("ReadByte() = %#x, %v; want %#x", got, err, want)
		}
	}
	if _, err := d.ReadByte(); err == nil {
		t.Error("ReadByte past the end: want error")
	}
}

func TestFixedWidth(t *testing.T) {
	e := NewEncoder()
	e.WriteUint16(0xBEEF)
	e.WriteUint64(0x0102030405060708)
	e.WriteBool(true)
	e.WriteBool(false)

	d := NewDecoder(e.Bytes())
	u16, _ := d.ReadUint16()
	u64, _ := d.ReadUint64()
	b1, _ := d.ReadBool()
	b2, _ := d.ReadBool()

	if u16 != 0xBEEF || u64 != 0x0102030405060708 || !b1 || b2 {
		t.Errorf("got %#x %#x %v %v", u16, u64, b1, b2)
	}
	if !d.EOF() || d.Remaining() != 0 {
		t.Errorf("decoder not drained: %d remaining", d.Remaining())
	}
	if _, err := d.ReadUint16(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("read past end: err = %v", err)
	}
}
