package texmath

import "strings"

// delimiter is one open/close pair the fragment scanner recognizes.
type delimiter struct {
	open    string
	close   string
	display bool
}

// defaultDelimiters returns the stock math delimiters: \( \) for inline
// math, $$ $$ and \[ \] for display math.
func defaultDelimiters() []delimiter {
	return []delimiter{
		{open: `\(`, close: `\)`},
		{open: `$$`, close: `$$`, display: true},
		{open: `\[`, close: `\]`, display: true},
	}
}

// segment is one scanner slice: either raw text or a math span with its
// delimiters stripped.
type segment struct {
	text    string
	tex     string
	display bool
	math    bool
}

// splitSegments slices source around delimited math. The earliest opener
// wins; at the same offset the longer one does. An opener with no
// matching closer is left as raw text.
func splitSegments(source string, delims []delimiter) []segment {
	var segments []segment
	rest := source
	for rest != "" {
		at := -1
		var hit delimiter
		for _, d := range delims {
			i := strings.Index(rest, d.open)
			if i < 0 {
				continue
			}
			if at < 0 || i < at || (i == at && len(d.open) > len(hit.open)) {
				at, hit = i, d
			}
		}
		if at < 0 {
			segments = append(segments, segment{text: rest})
			break
		}
		body := at + len(hit.open)
		end := strings.Index(rest[body:], hit.close)
		if end < 0 {
			segments = append(segments, segment{text: rest})
			break
		}
		if at > 0 {
			segments = append(segments, segment{text: rest[:at]})
		}
		segments = append(segments, segment{
			tex:     strings.TrimSpace(rest[body : body+end]),
			display: hit.display,
			math:    true,
		})
		rest = rest[body+end+len(hit.close):]
	}
	return segments
}
