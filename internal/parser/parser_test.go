package parser

import (
	"sort"
	"testing"

	"github.com/piwi3910/FilmCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_LabelAndQuantity(t *testing.T) {
	res := Parse("500x400 x3 창문틀")

	require.True(t, res.Success())
	require.Len(t, res.Pieces, 1)
	p := res.Pieces[0]
	assert.Equal(t, 500.0, p.Width)
	assert.Equal(t, 400.0, p.Height)
	assert.Equal(t, 3, p.Quantity)
	assert.Equal(t, "창문틀", p.Label)
	assert.NotEmpty(t, p.ID)
}

func TestParse_ZeroWidth(t *testing.T) {
	res := Parse("0x400")

	assert.False(t, res.Success())
	assert.Empty(t, res.Pieces)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 1, res.Errors[0].LineNumber)
	assert.Equal(t, MsgSizePositive, res.Errors[0].Message)
}

func TestParseLine_Grammar(t *testing.T) {
	tests := []struct {
		line  string
		w, h  float64
		qty   int
		label string
	}{
		{"500x400x3", 500, 400, 3, ""},
		{"500 X 400 X 3", 500, 400, 3, ""},
		{"500×400×2", 500, 400, 2, ""},
		{"500x400", 500, 400, 1, ""},
		{"500x400*4", 500, 400, 4, ""},
		{"500x400 * 4 door", 500, 400, 4, "door"},
		{"500.5x400.25 side glass", 500.5, 400.25, 1, "side glass"},
		{"1200x300 xylophone", 1200, 300, 1, "xylophone"},
		{"600x450 12호", 600, 450, 1, "12호"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			p, msg := ParseLine(tt.line)
			require.Empty(t, msg)
			assert.Equal(t, tt.w, p.Width)
			assert.Equal(t, tt.h, p.Height)
			assert.Equal(t, tt.qty, p.Quantity)
			assert.Equal(t, tt.label, p.Label)
		})
	}
}

func TestParseLine_Errors(t *testing.T) {
	tests := []struct {
		line string
		msg  string
	}{
		{"500x400x0", MsgAllPositive},
		{"0x400x2", MsgAllPositive},
		{"500x0 label", MsgSizePositive},
		{"500x400*0", MsgQtyPositive},
		{"500x400 x0 label", MsgQtyPositive},
		{"abc", MsgInvalidFormat},
		{"500", MsgInvalidFormat},
		{"-500x400", MsgInvalidFormat},
		{"x400", MsgInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			p, msg := ParseLine(tt.line)
			assert.Equal(t, tt.msg, msg)
			assert.Equal(t, model.PieceSpec{}, p)
		})
	}
}

func TestParse_SplitsOnCommasAndNewlines(t *testing.T) {
	res := Parse("500x400, 300x200x2\n\n  \n100x100 shelf,,")

	require.True(t, res.Success())
	require.Len(t, res.Pieces, 3)
	assert.Equal(t, 500.0, res.Pieces[0].Width)
	assert.Equal(t, 2, res.Pieces[1].Quantity)
	assert.Equal(t, "shelf", res.Pieces[2].Label)
}

func TestParse_CollectsAllErrors(t *testing.T) {
	res := Parse("500x400\nbad line\n\n300x0\n200x200x2")

	assert.False(t, res.Success())
	assert.Len(t, res.Pieces, 2, "good lines still parse")
	require.Len(t, res.Errors, 2)
	assert.Equal(t, LineError{LineNumber: 2, Message: MsgInvalidFormat}, res.Errors[0])
	assert.Equal(t, LineError{LineNumber: 3, Message: MsgSizePositive}, res.Errors[1])
	assert.ErrorContains(t, res.Err(), "line 2")
}

func TestParse_Empty(t *testing.T) {
	res := Parse("  \n , \n")
	assert.True(t, res.Success())
	assert.Empty(t, res.Pieces)
	assert.NoError(t, res.Err())
}

type key struct {
	w, h  float64
	qty   int
	label string
}

func keys(pieces []model.PieceSpec) []key {
	out := make([]key, len(pieces))
	for i, p := range pieces {
		out[i] = key{p.Width, p.Height, p.EffectiveQuantity(), p.Label}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].w != out[j].w {
			return out[i].w < out[j].w
		}
		if out[i].h != out[j].h {
			return out[i].h < out[j].h
		}
		if out[i].qty != out[j].qty {
			return out[i].qty < out[j].qty
		}
		return out[i].label < out[j].label
	})
	return out
}

func TestFormat_RoundTrip(t *testing.T) {
	pieces := []model.PieceSpec{
		model.NewPieceSpec("창문틀", 500, 400, 3),
		model.NewPieceSpec("", 1220, 2440, 1),
		model.NewPieceSpec("x5 door", 333.5, 120.25, 2),
		model.NewPieceSpec("side glass", 1000000, 10, 7),
		model.NewPieceSpec("", 500, 400, 3),
	}

	res := Parse(Format(pieces))

	require.True(t, res.Success(), "errors: %v", res.Errors)
	assert.Equal(t, keys(pieces), keys(res.Pieces))
}

func TestFormatLine(t *testing.T) {
	assert.Equal(t, "500x400 x3 창문틀", FormatLine(model.PieceSpec{Width: 500, Height: 400, Quantity: 3, Label: "창문틀"}))
	assert.Equal(t, "12.5x8 x1", FormatLine(model.PieceSpec{Width: 12.5, Height: 8}))
}
