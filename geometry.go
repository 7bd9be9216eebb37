// geometry.go
package main

import (
	"strings"

	"github.com/chewxy/math32"
)

// --- Area Rectangle ---

// Area is an axis-aligned rectangle. Negative sizes can occur transiently
// during normalization; Canon folds them away.
type Area struct {
	X, Y, W, H float32
}

func (a Area) Right() float32   { return a.X + a.W }
func (a Area) Bottom() float32  { return a.Y + a.H }
func (a Area) CenterX() float32 { return a.X + a.W/2 }
func (a Area) CenterY() float32 { return a.Y + a.H/2 }

// Size returns the surface area; degenerate rectangles report 0.
func (a Area) Size() float32 {
	if a.W <= 0 || a.H <= 0 {
		return 0
	}
	return a.W * a.H
}

// IsEmpty reports whether the rectangle has no surface.
func (a Area) IsEmpty() bool { return a.W <= 0 || a.H <= 0 }

// Canon returns the canonical version of the rectangle with non-negative
// width and height.
func (a Area) Canon() Area {
	if a.W < 0 {
		a.X += a.W
		a.W = -a.W
	}
	if a.H < 0 {
		a.Y += a.H
		a.H = -a.H
	}
	return a
}

// Contains reports whether b lies fully inside a (boundary-inclusive).
func (a Area) Contains(b Area) bool {
	return b.X >= a.X && b.Y >= a.Y && b.Right() <= a.Right() && b.Bottom() <= a.Bottom()
}

// ContainsPoint reports whether the point lies inside a.
func (a Area) ContainsPoint(x, y float32) bool {
	return x >= a.X && y >= a.Y && x <= a.Right() && y <= a.Bottom()
}

// Intersect returns the overlapping rectangle of a and b; the result is
// empty when they do not overlap.
func (a Area) Intersect(b Area) Area {
	x := math32.Max(a.X, b.X)
	y := math32.Max(a.Y, b.Y)
	r := math32.Min(a.Right(), b.Right())
	bt := math32.Min(a.Bottom(), b.Bottom())
	return Area{x, y, r - x, bt - y}
}

// Union returns the smallest rectangle covering both a and b. An empty side
// yields the other side unchanged.
func (a Area) Union(b Area) Area {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	x := math32.Min(a.X, b.X)
	y := math32.Min(a.Y, b.Y)
	r := math32.Max(a.Right(), b.Right())
	bt := math32.Max(a.Bottom(), b.Bottom())
	return Area{x, y, r - x, bt - y}
}

// --- Affine Transforms ---

// Matrix is a 2D affine transform in SVG order (a b c d e f):
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
type Matrix struct {
	A, B, C, D, E, F float32
}

// Identity returns the identity transform.
func Identity() Matrix { return Matrix{A: 1, D: 1} }

// Mul composes m with o, applying o first.
func (m Matrix) Mul(o Matrix) Matrix {
	return Matrix{
		A: m.A*o.A + m.C*o.B,
		B: m.B*o.A + m.D*o.B,
		C: m.A*o.C + m.C*o.D,
		D: m.B*o.C + m.D*o.D,
		E: m.A*o.E + m.C*o.F + m.E,
		F: m.B*o.E + m.D*o.F + m.F,
	}
}

// Apply transforms a point.
func (m Matrix) Apply(x, y float32) (float32, float32) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// ApplyArea transforms all four corners of an area and returns their
// bounding box, so rotated shapes still produce a usable axis-aligned area.
func (m Matrix) ApplyArea(a Area) Area {
	x0, y0 := m.Apply(a.X, a.Y)
	x1, y1 := m.Apply(a.Right(), a.Y)
	x2, y2 := m.Apply(a.X, a.Bottom())
	x3, y3 := m.Apply(a.Right(), a.Bottom())
	minX := math32.Min(math32.Min(x0, x1), math32.Min(x2, x3))
	minY := math32.Min(math32.Min(y0, y1), math32.Min(y2, y3))
	maxX := math32.Max(math32.Max(x0, x1), math32.Max(x2, x3))
	maxY := math32.Max(math32.Max(y0, y1), math32.Max(y2, y3))
	return Area{minX, minY, maxX - minX, maxY - minY}
}

// parseTransform parses an SVG transform attribute value into a single
// matrix. Unknown functions and malformed arguments are skipped.
func parseTransform(s string) Matrix {
	m := Identity()
	s = strings.TrimSpace(s)
	for s != "" {
		open := strings.IndexByte(s, '(')
		if open < 0 {
			break
		}
		name := strings.TrimSpace(s[:open])
		end := strings.IndexByte(s[open:], ')')
		if end < 0 {
			break
		}
		args := parseNumberList(s[open+1 : open+end])
		s = strings.TrimLeft(s[open+end+1:], " ,\t\n")

		switch strings.ToLower(name) {
		case "translate":
			tx, ty := float32(0), float32(0)
			if len(args) > 0 {
				tx = args[0]
			}
			if len(args) > 1 {
				ty = args[1]
			}
			m = m.Mul(Matrix{A: 1, D: 1, E: tx, F: ty})
		case "scale":
			sx, sy := float32(1), float32(1)
			if len(args) > 0 {
				sx = args[0]
				sy = args[0]
			}
			if len(args) > 1 {
				sy = args[1]
			}
			m = m.Mul(Matrix{A: sx, D: sy})
		case "rotate":
			if len(args) == 0 {
				continue
			}
			rad := args[0] * math32.Pi / 180
			sin, cos := math32.Sincos(rad)
			rot := Matrix{A: cos, B: sin, C: -sin, D: cos}
			if len(args) >= 3 {
				cx, cy := args[1], args[2]
				m = m.Mul(Matrix{A: 1, D: 1, E: cx, F: cy})
				m = m.Mul(rot)
				m = m.Mul(Matrix{A: 1, D: 1, E: -cx, F: -cy})
			} else {
				m = m.Mul(rot)
			}
		case "matrix":
			if len(args) == 6 {
				m = m.Mul(Matrix{args[0], args[1], args[2], args[3], args[4], args[5]})
			}
		}
	}
	return m
}

// parseNumberList splits a comma/space separated number list, dropping
// anything that does not parse.
func parseNumberList(s string) []float32 {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float32, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		out = append(out, parseFloatDef(f, 0))
	}
	return out
}

// --- Node Bounds ---

// nodeTransform accumulates transform attributes along the single ancestor
// chain from the document root down to (and including) the node.
func nodeTransform(n *DesignNode) Matrix {
	if n == nil {
		return Identity()
	}
	m := nodeTransform(n.Parent)
	if t := n.Attr("transform"); t != "" {
		m = m.Mul(parseTransform(t))
	}
	return m
}

// nodeArea computes the document-space bounding rectangle of a design node,
// honoring the ancestor transform chain and the text anchor/baseline
// conventions for text nodes. Unknown shapes yield an empty area.
func nodeArea(n *DesignNode) Area {
	if n == nil {
		return Area{}
	}
	local := localShapeArea(n)
	return nodeTransform(n).ApplyArea(local).Canon()
}

// localShapeArea computes the untransformed bounds of one shape node.
func localShapeArea(n *DesignNode) Area {
	switch n.Type {
	case "rect", "image", "svg", "foreignObject":
		return Area{
			X: parseFloatDef(n.Attr("x"), 0),
			Y: parseFloatDef(n.Attr("y"), 0),
			W: parseFloatDef(n.Attr("width"), 0),
			H: parseFloatDef(n.Attr("height"), 0),
		}
	case "circle":
		cx := parseFloatDef(n.Attr("cx"), 0)
		cy := parseFloatDef(n.Attr("cy"), 0)
		r := parseFloatDef(n.Attr("r"), 0)
		return Area{cx - r, cy - r, 2 * r, 2 * r}
	case "ellipse":
		cx := parseFloatDef(n.Attr("cx"), 0)
		cy := parseFloatDef(n.Attr("cy"), 0)
		rx := parseFloatDef(n.Attr("rx"), 0)
		ry := parseFloatDef(n.Attr("ry"), 0)
		return Area{cx - rx, cy - ry, 2 * rx, 2 * ry}
	case "line":
		x1 := parseFloatDef(n.Attr("x1"), 0)
		y1 := parseFloatDef(n.Attr("y1"), 0)
		x2 := parseFloatDef(n.Attr("x2"), 0)
		y2 := parseFloatDef(n.Attr("y2"), 0)
		return Area{x1, y1, x2 - x1, y2 - y1}.Canon()
	case "polyline", "polygon":
		return pointListArea(parseNumberList(n.Attr("points")))
	case "path":
		// Best effort: bound every coordinate in the path data. Relative
		// commands inflate the box slightly; containment placement tolerates
		// that through the overlap threshold.
		return pointListArea(parseNumberList(strings.Map(stripPathCommands, n.Attr("d"))))
	case "text", "tspan":
		return textArea(n)
	case "g", "a":
		var union Area
		for _, child := range n.Children {
			union = union.Union(localShapeArea(child))
		}
		return union
	}
	return Area{}
}

// stripPathCommands replaces path command letters with separators so the
// remaining coordinate stream can be bounded.
func stripPathCommands(r rune) rune {
	if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
		return ' '
	}
	return r
}

// pointListArea bounds an even-length coordinate stream.
func pointListArea(coords []float32) Area {
	if len(coords) < 2 {
		return Area{}
	}
	minX, minY := math32.Inf(1), math32.Inf(1)
	maxX, maxY := math32.Inf(-1), math32.Inf(-1)
	for i := 0; i+1 < len(coords); i += 2 {
		minX = math32.Min(minX, coords[i])
		maxX = math32.Max(maxX, coords[i])
		minY = math32.Min(minY, coords[i+1])
		maxY = math32.Max(maxY, coords[i+1])
	}
	return Area{minX, minY, maxX - minX, maxY - minY}
}

// textArea estimates a text node's box. The y coordinate of SVG text is the
// baseline, so the box extends upward by the font size; text-anchor shifts
// the box left for middle/end anchored runs.
func textArea(n *DesignNode) Area {
	x := parseFloatDef(n.Attr("x"), 0)
	y := parseFloatDef(n.Attr("y"), 0)
	size := parseFloatDef(n.Attr("font-size"), 0)
	if size == 0 {
		size = parseFloatDef(n.StyleValue("font-size"), DefaultFontSize)
	}
	text := nodeText(n)
	width := float32(len(text)) * size * TextWidthFactor
	if width == 0 {
		width = size
	}
	anchor := n.Attr("text-anchor")
	if anchor == "" {
		anchor = n.StyleValue("text-anchor")
	}
	switch anchor {
	case "middle":
		x -= width / 2
	case "end":
		x -= width
	}
	return Area{x, y - size, width, size * TextLineFactor}
}
