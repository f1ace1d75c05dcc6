package layout

import "github.com/chewxy/math32"

// Rectangle is an axis aligned region in logical pixels. The origin
// convention is left handed: (Left, Top) is the corner closest to the
// window origin after the host coordinates have been normalized.
type Rectangle struct {
	Left   float32
	Top    float32
	Right  float32
	Bottom float32
}

// FromWH returns a rectangle anchored at the origin with the given size.
func FromWH(width, height float32) Rectangle {
	return Rectangle{Right: width, Bottom: height}
}

// FromXYWH returns a rectangle at (x, y) with the given size.
func FromXYWH(x, y, width, height float32) Rectangle {
	return Rectangle{Left: x, Top: y, Right: x + width, Bottom: y + height}
}

func (r Rectangle) Width() float32 {
	return r.Right - r.Left
}

func (r Rectangle) Height() float32 {
	return r.Bottom - r.Top
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rectangle) Translate(dx, dy float32) Rectangle {
	return Rectangle{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}

// Shrink returns the rectangle inset by the given amount on every side.
func (r Rectangle) Shrink(amount float32) Rectangle {
	return Rectangle{
		Left:   r.Left + amount,
		Top:    r.Top + amount,
		Right:  r.Right - amount,
		Bottom: r.Bottom - amount,
	}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rectangle) Contains(x, y float32) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Intersect clamps the rectangle against other. A disjoint pair yields an
// empty rectangle located at the clamp edge.
func (r Rectangle) Intersect(other Rectangle) Rectangle {
	out := Rectangle{
		Left:   math32.Max(r.Left, other.Left),
		Top:    math32.Max(r.Top, other.Top),
		Right:  math32.Min(r.Right, other.Right),
		Bottom: math32.Min(r.Bottom, other.Bottom),
	}
	if out.Right < out.Left {
		out.Right = out.Left
	}
	if out.Bottom < out.Top {
		out.Bottom = out.Top
	}
	return out
}

// Empty reports whether the rectangle has no area.
func (r Rectangle) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}
