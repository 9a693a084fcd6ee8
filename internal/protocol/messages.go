// Package protocol defines the JSON messages of the spectator stream.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hersh/tetrigo/internal/game"
	"github.com/hersh/tetrigo/internal/session"
)

// MessageType identifies the kind of message sent over the wire.
type MessageType string

const (
	// Server -> viewer messages
	MsgWelcome MessageType = "welcome"
	MsgFrame   MessageType = "frame"
)

// Envelope is the top-level wire format for all messages.
type Envelope struct {
	Type    MessageType `json:"type"`
	Payload any         `json:"payload"`
}

// RawEnvelope is an Envelope whose payload has not been decoded yet.
type RawEnvelope struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// WelcomePayload is sent once when a viewer connects.
type WelcomePayload struct {
	ViewerID string `json:"viewer_id"`
}

// Cell is a board coordinate.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// FramePayload is a session frame in wire form. Boards are flat row-major
// arrays of shape indexes (0 = empty).
type FramePayload struct {
	State  string `json:"state"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Board  []int  `json:"board"`

	Piece     []Cell `json:"piece"`
	PieceType string `json:"piece_type"`
	GhostDrop int    `json:"ghost_drop"`

	Preview   []int  `json:"preview"`
	NextPiece string `json:"next_piece"`

	Level  int `json:"level"`
	Points int `json:"points"`
	Lines  int `json:"lines"`
}

var (
	ErrUnexpectedType = errors.New("unexpected message type")
	ErrBadFrame       = errors.New("malformed frame")
)

// NewFramePayload converts a frame to its wire form.
func NewFramePayload(f session.Frame) FramePayload {
	p := FramePayload{
		State:     f.State.String(),
		Height:    len(f.Board),
		Board:     flatten(f.Board),
		Piece:     make([]Cell, len(f.Piece)),
		PieceType: f.PieceType.String(),
		GhostDrop: f.GhostDrop,
		Preview:   flatten(f.Preview),
		NextPiece: f.NextPiece.String(),
		Level:     f.Level,
		Points:    f.Points,
		Lines:     f.Lines,
	}
	if p.Height > 0 {
		p.Width = len(f.Board[0])
	}
	for i, c := range f.Piece {
		p.Piece[i] = Cell{X: c.X, Y: c.Y}
	}
	return p
}

// Frame converts the payload back to a session frame.
func (p FramePayload) Frame() (session.Frame, error) {
	state, err := session.ParseState(p.State)
	if err != nil {
		return session.Frame{}, fmt.Errorf("%w: %w", ErrBadFrame, err)
	}
	if p.Width <= 0 || p.Height <= 0 || len(p.Board) != p.Width*p.Height {
		return session.Frame{}, fmt.Errorf("%w: board of %d cells for %dx%d", ErrBadFrame, len(p.Board), p.Width, p.Height)
	}
	pieceType, ok := game.ParseShape(p.PieceType)
	if !ok {
		return session.Frame{}, fmt.Errorf("%w: piece type %q", ErrBadFrame, p.PieceType)
	}
	next, ok := game.ParseShape(p.NextPiece)
	if !ok {
		return session.Frame{}, fmt.Errorf("%w: next piece %q", ErrBadFrame, p.NextPiece)
	}

	f := session.Frame{
		State:     state,
		Board:     unflatten(p.Board, p.Width, p.Height),
		Piece:     make([]game.Point, len(p.Piece)),
		PieceType: pieceType,
		GhostDrop: p.GhostDrop,
		Preview:   unflatten(p.Preview, session.PreviewWidth, session.PreviewHeight),
		NextPiece: next,
		Level:     p.Level,
		Points:    p.Points,
		Lines:     p.Lines,
	}
	for i, c := range p.Piece {
		f.Piece[i] = game.Point{X: c.X, Y: c.Y}
	}
	return f, nil
}

// EncodeFrame marshals a frame envelope.
func EncodeFrame(f session.Frame) ([]byte, error) {
	return json.Marshal(Envelope{Type: MsgFrame, Payload: NewFramePayload(f)})
}

// DecodeFrame unmarshals a frame envelope.
func DecodeFrame(data []byte) (session.Frame, error) {
	var env RawEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return session.Frame{}, err
	}
	if env.Type != MsgFrame {
		return session.Frame{}, fmt.Errorf("%w: %s", ErrUnexpectedType, env.Type)
	}
	var p FramePayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return session.Frame{}, err
	}
	return p.Frame()
}

func flatten(rows [][]game.Shape) []int {
	if len(rows) == 0 {
		return nil
	}
	flat := game.MatrixFromRows(rows).Flat()
	out := make([]int, len(flat))
	for i, s := range flat {
		out[i] = int(s)
	}
	return out
}

func unflatten(flat []int, width, height int) [][]game.Shape {
	shapes := make([]game.Shape, len(flat))
	for i, v := range flat {
		if v < 0 || v > int(game.Z) {
			v = int(game.Empty)
		}
		shapes[i] = game.Shape(v)
	}
	return game.MatrixFromFlat(shapes, width, height).Rows()
}
