package layout

// EdgeInsets describes offsets from the four sides of a box.
type EdgeInsets struct {
	Left, Top, Right, Bottom float64
}

// EdgeInsetsAll creates insets with the same value on all sides.
func EdgeInsetsAll(value float64) EdgeInsets {
	return EdgeInsets{Left: value, Top: value, Right: value, Bottom: value}
}

// EdgeInsetsSymmetric creates insets with the given horizontal value on the
// left and right and the vertical value on the top and bottom.
func EdgeInsetsSymmetric(horizontal, vertical float64) EdgeInsets {
	return EdgeInsets{Left: horizontal, Top: vertical, Right: horizontal, Bottom: vertical}
}

// EdgeInsetsOnly creates insets with individual values per side.
func EdgeInsetsOnly(left, top, right, bottom float64) EdgeInsets {
	return EdgeInsets{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Horizontal returns the sum of the left and right insets.
func (e EdgeInsets) Horizontal() float64 {
	return e.Left + e.Right
}

// Vertical returns the sum of the top and bottom insets.
func (e EdgeInsets) Vertical() float64 {
	return e.Top + e.Bottom
}

// IsZero reports whether all four insets are zero.
func (e EdgeInsets) IsZero() bool {
	return e == EdgeInsets{}
}
