package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectangleConstructors(t *testing.T) {
	r := FromWH(100, 50)
	assert.Equal(t, Rectangle{Right: 100, Bottom: 50}, r)
	assert.Equal(t, float32(100), r.Width())
	assert.Equal(t, float32(50), r.Height())

	r = FromXYWH(10, 20, 100, 50)
	assert.Equal(t, Rectangle{Left: 10, Top: 20, Right: 110, Bottom: 70}, r)
	assert.Equal(t, float32(100), r.Width())
}

func TestRectangleTranslateAndShrink(t *testing.T) {
	r := FromWH(100, 50).Translate(5, -5)
	assert.Equal(t, Rectangle{Left: 5, Top: -5, Right: 105, Bottom: 45}, r)

	r = FromWH(100, 50).Shrink(10)
	assert.Equal(t, Rectangle{Left: 10, Top: 10, Right: 90, Bottom: 40}, r)
}

func TestRectangleContains(t *testing.T) {
	r := FromXYWH(10, 10, 20, 20)
	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(29, 29))
	assert.False(t, r.Contains(30, 30))
	assert.False(t, r.Contains(9, 15))
}

func TestRectangleIntersect(t *testing.T) {
	a := FromXYWH(0, 0, 20, 20)
	b := FromXYWH(10, 10, 20, 20)
	assert.Equal(t, FromXYWH(10, 10, 10, 10), a.Intersect(b))

	// Disjoint rectangles collapse to an empty result.
	c := FromXYWH(100, 100, 10, 10)
	assert.True(t, a.Intersect(c).Empty())
}

func TestRectangleEmpty(t *testing.T) {
	assert.True(t, Rectangle{}.Empty())
	assert.True(t, FromWH(0, 10).Empty())
	assert.False(t, FromWH(1, 1).Empty())
}
