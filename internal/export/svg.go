package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/san-kum/plexus/internal/dynamo"
)

// SVG records draw calls as SVG elements. Clear starts a new document, so
// after a render it holds exactly one frame.
type SVG struct {
	size  dynamo.Size
	bg    dynamo.RGBA
	body  strings.Builder
	defs  strings.Builder
	nGrad int
}

func NewSVG(size dynamo.Size, bg dynamo.RGBA) *SVG {
	s := &SVG{size: size, bg: bg}
	s.Clear()
	return s
}

func (s *SVG) Size() dynamo.Size       { return s.size }
func (s *SVG) Resize(size dynamo.Size) { s.size = size; s.Clear() }

func (s *SVG) Clear() {
	s.body.Reset()
	s.defs.Reset()
	s.nGrad = 0
}

func (s *SVG) StrokeLine(a, b dynamo.Vec2, width float64, c dynamo.RGBA) {
	fmt.Fprintf(&s.body, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f"/>
`, a.X, a.Y, b.X, b.Y, c.Hex(), dynamo.Clamp01(c.A), width)
}

func (s *SVG) FillCircle(center dynamo.Vec2, r float64, c dynamo.RGBA) {
	fmt.Fprintf(&s.body, `<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s" fill-opacity="%.3f"/>
`, center.X, center.Y, r, c.Hex(), dynamo.Clamp01(c.A))
}

func (s *SVG) FillRadialGradient(center dynamo.Vec2, radius float64, c dynamo.RGBA, stops []dynamo.GradientStop) {
	s.nGrad++
	id := fmt.Sprintf("spot%d", s.nGrad)
	fmt.Fprintf(&s.defs, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%.1f" cy="%.1f" r="%.1f">
`, id, center.X, center.Y, radius)
	for _, st := range stops {
		fmt.Fprintf(&s.defs, `<stop offset="%.2f" stop-color="%s" stop-opacity="%.3f"/>
`, st.Offset, c.Hex(), dynamo.Clamp01(st.Alpha))
	}
	s.defs.WriteString("</radialGradient>\n")
	fmt.Fprintf(&s.body, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="url(#%s)"/>
`, center.X, center.Y, radius, id)
}

// String renders the current frame as a complete document.
func (s *SVG) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
`, s.size.W, s.size.H, s.size.W, s.size.H)
	if s.defs.Len() > 0 {
		sb.WriteString("<defs>\n")
		sb.WriteString(s.defs.String())
		sb.WriteString("</defs>\n")
	}
	fmt.Fprintf(&sb, `<rect width="100%%" height="100%%" fill="%s"/>
`, s.bg.Hex())
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func (s *SVG) Save(path string) error {
	return os.WriteFile(path, []byte(s.String()), 0o644)
}
