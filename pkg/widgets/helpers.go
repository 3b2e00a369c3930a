package widgets

import (
	"github.com/go-drift/mathview/pkg/core"
	"github.com/go-drift/mathview/pkg/graphics"
	"github.com/go-drift/mathview/pkg/layout"
)

// getChildOffset reads the offset a parent assigned during layout.
func getChildOffset(child layout.RenderObject) graphics.Offset {
	if data, ok := child.ParentData().(*layout.BoxParentData); ok && data != nil {
		return data.Offset
	}
	return graphics.Offset{}
}

// Padded wraps a child in the given insets.
func Padded(insets layout.EdgeInsets, child core.Widget) Padding {
	return Padding{Padding: insets, ChildWidget: child}
}

// PaddingAll wraps a child with uniform padding on all sides.
func PaddingAll(value float64, child core.Widget) Padding {
	return Padding{Padding: layout.EdgeInsetsAll(value), ChildWidget: child}
}

// PaddingSym wraps a child with symmetric horizontal and vertical padding.
func PaddingSym(horizontal, vertical float64, child core.Widget) Padding {
	return Padding{Padding: layout.EdgeInsetsSymmetric(horizontal, vertical), ChildWidget: child}
}

// PaddingOnly wraps a child with padding on specific sides.
func PaddingOnly(left, top, right, bottom float64, child core.Widget) Padding {
	return Padding{Padding: layout.EdgeInsetsOnly(left, top, right, bottom), ChildWidget: child}
}

// VSpace is a fixed-height gap for use in a Column.
func VSpace(height float64) SizedBox {
	return SizedBox{Height: height}
}

// HSpace is a fixed-width gap for use in a Row.
func HSpace(width float64) SizedBox {
	return SizedBox{Width: width}
}

// Centered centers a child in the available space.
func Centered(child core.Widget) Center {
	return Center{ChildWidget: child}
}
