package server

import (
	"errors"
	"strings"

	"github.com/vango-dev/quicktip/pkg/protocol"
)

var (
	// ErrSessionClosed is returned for frames sent to or queued on a closed
	// session.
	ErrSessionClosed = errors.New("server: session closed")

	// ErrQueueFull is returned when a session's event loop is behind and an
	// incoming frame was dropped.
	ErrQueueFull = errors.New("server: frame queue full")

	// ErrNoConnection is returned when a session has no connection to write to.
	ErrNoConnection = errors.New("server: no connection")
)

// SessionError reports a failed operation on one session. Frame is zero
// when the operation did not involve a frame.
type SessionError struct {
	SessionID string
	Op        string
	Frame     protocol.FrameType
	Err       error
}

// NewSessionError creates a SessionError.
func NewSessionError(sessionID, op string, frame protocol.FrameType, err error) *SessionError {
	return &SessionError{SessionID: sessionID, Op: op, Frame: frame, Err: err}
}

func (e *SessionError) Error() string {
	var b strings.Builder
	b.WriteString("server: ")
	if e.SessionID != "" {
		b.WriteString("session " + e.SessionID + ": ")
	}
	b.WriteString(e.Op)
	if e.Frame != 0 {
		b.WriteString(" " + e.Frame.String())
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *SessionError) Unwrap() error {
	return e.Err
}
