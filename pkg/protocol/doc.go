// Package protocol implements the binary wire protocol between the quicktip
// server and its browser client.
//
// The client reports pointer transitions and layout; the server answers with
// the hint panel's state and any attribute changes it made to the page.
// Everything travels over a WebSocket as binary messages, one frame each.
//
// # Wire Format
//
// All messages are framed with a 4-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Reserved     │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Frame Types
//
//   - FramePointer (0x01): Client → Server pointer over/out/move
//   - FrameLayout (0x02): Client → Server viewport and element boxes
//   - FrameTip (0x03): Server → Client panel show/hide
//   - FrameAttr (0x04): Server → Client attribute changes
//   - FrameControl (0x05): Ping and pong, either direction
//   - FrameError (0x06): Error message, either direction
//
// # Encoding
//
//   - Varint: Compact encoding for small integers (protobuf-style)
//   - ZigZag: Signed integers, including coordinates, as unsigned varints
//   - Length-prefixed: Strings prefixed with their varint byte length
//   - Big-endian: Fixed-width integers (uint16, uint64)
//
// Example pointer-over encoding:
//
//	[Kind: 0x01][Target: "h3"][Related: "h2"][X: svarint][Y: svarint]
//
// Decoders never trust length prefixes: strings and collections are checked
// against the remaining buffer and MaxStringLen/MaxCollectionCount before
// anything is allocated.
package protocol
