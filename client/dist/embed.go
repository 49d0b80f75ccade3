package clientdist

import _ "embed"

// QuicktipJS is the thin client that forwards pointer and layout changes
// to the server and draws the hint panel it is told to draw.
//
// It is served at "/_quicktip/client.js".
//
//go:embed quicktip.js
var QuicktipJS []byte
