package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pos(line, column, offset int) Position {
	return Position{File: "a.flux", Line: line, Column: column, Offset: offset}
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "a.flux:2:5", pos(2, 5, 10).String())
	assert.Equal(t, "2:5", Position{Line: 2, Column: 5}.String())
}

func TestBefore(t *testing.T) {
	assert.True(t, pos(1, 1, 0).Before(pos(1, 2, 1)))
	assert.False(t, pos(1, 2, 1).Before(pos(1, 1, 0)))
}

func TestSpan(t *testing.T) {
	s := Between(pos(1, 1, 0), pos(1, 4, 3))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "a.flux:1:1-4", s.String())

	multi := Between(pos(1, 1, 0), pos(3, 2, 12))
	assert.Equal(t, "a.flux:1:1-3:2", multi.String())
}

func TestJoin(t *testing.T) {
	a := Between(pos(1, 4, 3), pos(1, 6, 5))
	b := Between(pos(1, 1, 0), pos(1, 3, 2))

	joined := Join(a, b)
	assert.Equal(t, 0, joined.Start.Offset)
	assert.Equal(t, 5, joined.End.Offset)

	assert.Equal(t, Span{}, Join())
	assert.Equal(t, a, Join(a))
}
