package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hersh/tetrigo/internal/game"
	"github.com/hersh/tetrigo/internal/session"
)

func sampleFrame(t *testing.T) session.Frame {
	t.Helper()
	g := game.NewGame(7)
	g.HardDrop()
	g.AdvanceTick()

	var f session.Frame
	s := session.New(func() *game.Game { return g }, nil, nil)
	s.Draw(session.RendererFunc(func(fr session.Frame) { f = fr }))
	return f
}

func TestFrameSurvivesTheWire(t *testing.T) {
	want := sampleFrame(t)

	data, err := EncodeFrame(want)
	require.NoError(t, err)

	got, err := DecodeFrame(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFramePayloadLayout(t *testing.T) {
	f := sampleFrame(t)
	p := NewFramePayload(f)

	assert.Equal(t, "play", p.State)
	assert.Equal(t, game.BoardWidth, p.Width)
	assert.Equal(t, game.BoardHeight, p.Height)
	assert.Len(t, p.Board, game.BoardWidth*game.BoardHeight)
	assert.Len(t, p.Preview, session.PreviewWidth*session.PreviewHeight)
	assert.Len(t, p.Piece, 4)

	// The locked piece sits on the bottom row.
	filled := 0
	for _, v := range p.Board[(game.BoardHeight-1)*game.BoardWidth:] {
		if v != 0 {
			filled++
		}
	}
	assert.Positive(t, filled)
}

func TestDecodeFrameErrors(t *testing.T) {
	welcome, err := json.Marshal(Envelope{Type: MsgWelcome, Payload: WelcomePayload{ViewerID: "v"}})
	require.NoError(t, err)

	_, err = DecodeFrame(welcome)
	assert.ErrorIs(t, err, ErrUnexpectedType)

	_, err = DecodeFrame([]byte("{"))
	assert.Error(t, err)

	bad := []FramePayload{
		{State: "menu", Width: 1, Height: 1, Board: []int{0}, PieceType: "I", NextPiece: "I"},
		{State: "play", Width: 2, Height: 2, Board: []int{0}, PieceType: "I", NextPiece: "I"},
		{State: "play", Width: 1, Height: 1, Board: []int{0}, PieceType: "X", NextPiece: "I"},
		{State: "play", Width: 1, Height: 1, Board: []int{0}, PieceType: "I", NextPiece: ""},
	}
	for _, p := range bad {
		data, err := json.Marshal(Envelope{Type: MsgFrame, Payload: p})
		require.NoError(t, err)
		_, err = DecodeFrame(data)
		assert.ErrorIs(t, err, ErrBadFrame)
	}
}

func TestUnflattenIgnoresUnknownShapes(t *testing.T) {
	rows := unflatten([]int{1, 99, -3, 7}, 2, 2)
	assert.Equal(t, [][]game.Shape{{game.I, game.Empty}, {game.Empty, game.Z}}, rows)
}
