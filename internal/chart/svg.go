package chart

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// SVGCanvas records drawing calls as SVG elements.
type SVGCanvas struct {
	width, height float64
	elems         []string
}

func NewSVGCanvas() *SVGCanvas {
	return &SVGCanvas{}
}

func (s *SVGCanvas) Clear(width, height float64) {
	s.width, s.height = width, height
	s.elems = s.elems[:0]
}

func (s *SVGCanvas) FillRect(r Rect, color string) {
	s.elems = append(s.elems, fmt.Sprintf(
		`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`,
		r.X, r.Y, r.W, r.H, escape(color)))
}

func (s *SVGCanvas) FillText(text string, x, y float64, color string) {
	s.elems = append(s.elems, fmt.Sprintf(
		`<text x="%.2f" y="%.2f" fill="%s" font-family="sans-serif" font-size="14" text-anchor="middle">%s</text>`,
		x, y, escape(color), escape(text)))
}

func (s *SVGCanvas) StrokePolyline(points []Point, color string, width float64) {
	coords := make([]string, len(points))
	for i, p := range points {
		coords[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	s.elems = append(s.elems, fmt.Sprintf(
		`<polyline points="%s" fill="none" stroke="%s" stroke-width="%g"/>`,
		strings.Join(coords, " "), escape(color), width))
}

// WriteTo writes a standalone SVG document.
func (s *SVGCanvas) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		s.width, s.height, s.width, s.height)
	for _, e := range s.elems {
		b.WriteString("  ")
		b.WriteString(e)
		b.WriteByte('\n')
	}
	b.WriteString("</svg>\n")

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func (s *SVGCanvas) String() string {
	var b strings.Builder
	_, _ = s.WriteTo(&b)
	return b.String()
}

func escape(v string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(v))
	return b.String()
}
