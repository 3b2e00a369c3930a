package widgets

import (
	"strings"

	"github.com/go-drift/mathview/pkg/core"
	"github.com/go-drift/mathview/pkg/errors"
	"github.com/go-drift/mathview/pkg/graphics"
)

func init() {
	core.SetErrorWidgetBuilder(func(err *errors.BuildError) core.Widget {
		return ErrorWidget{Error: err}
	})
}

// ErrorWidget is the default fallback shown in place of a failed widget.
// In debug mode it includes the error message and failing phase; in
// release mode it shows a generic notice.
type ErrorWidget struct {
	core.StatelessBase
	Error *errors.BuildError
}

func (w ErrorWidget) Build(ctx core.BuildContext) core.Widget {
	title := Text{
		Content: "Something went wrong",
		Style: graphics.TextStyle{
			Color:      graphics.ColorRed,
			FontSize:   14,
			FontWeight: graphics.FontWeightBold,
		},
	}
	if !core.DebugMode || w.Error == nil {
		return PaddingAll(8, title)
	}

	detailStyle := graphics.TextStyle{Color: graphics.ColorRed, FontSize: 12}
	children := []core.Widget{
		title,
		VSpace(4),
		Text{Content: w.Error.Error(), Style: detailStyle, MaxLines: 4},
	}
	if trace := firstStackLines(w.Error.StackTrace, 3); trace != "" {
		children = append(children,
			VSpace(4),
			Text{Content: trace, Style: detailStyle.WithColor(graphics.ColorBlack), MaxLines: 3},
		)
	}
	return PaddingAll(8, Column{
		ChildrenWidgets:    children,
		CrossAxisAlignment: CrossAxisAlignmentStart,
		MainAxisSize:       MainAxisSizeMin,
	})
}

// firstStackLines returns up to n non-empty leading lines of a stack trace.
func firstStackLines(trace string, n int) string {
	if trace == "" {
		return ""
	}
	var kept []string
	for _, line := range strings.Split(trace, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		kept = append(kept, line)
		if len(kept) == n {
			break
		}
	}
	return strings.Join(kept, "\n")
}
