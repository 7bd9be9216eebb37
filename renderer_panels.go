// renderer_panels.go
package main

import (
	"strconv"
	"strings"
)

// --- Grids ---

// renderGrid renders the grid-family intents. Column and row dimensions
// default to proportional "*"; a child carrying an explicit size override
// supplies its band's dimension, and the "auto" sentinel additionally writes
// a size-required hint back onto that child's source node so the child
// renderer reports its natural size. Hints are recorded before any child is
// visited; the ordering is what makes the side channel safe.
func (r *xamlRenderer) renderGrid(area *ControlArea, tok *RenderToken, mode Orientation) *OutNode {
	n := &OutNode{Type: "Grid"}
	fronts := area.FrontAreas
	if len(fronts) == 0 {
		return n
	}

	var columns, rows [][]*ControlArea
	switch mode {
	case OrientHorizontal:
		// Single row; every child is its own column.
		for _, f := range sortedByX(fronts) {
			columns = append(columns, []*ControlArea{f})
		}
		rows = [][]*ControlArea{fronts}
	case OrientVertical:
		columns = [][]*ControlArea{fronts}
		for _, f := range sortedByY(fronts) {
			rows = append(rows, []*ControlArea{f})
		}
	default:
		columns = partitionColumns(fronts)
		rows = partitionRows(fronts)
	}

	if len(columns) > 1 {
		n.SetAttr("ColumnDefinitions", r.gridDimensions(columns, "ColumnWidth", r.markWidthRequired))
	}
	if len(rows) > 1 {
		n.SetAttr("RowDefinitions", r.gridDimensions(rows, "RowHeight", r.markHeightRequired))
	}

	colIndex := bandIndex(columns)
	rowIndex := bandIndex(rows)
	for _, row := range rows {
		for _, cell := range sortedByX(row) {
			childTok := tok.Descend().
				With(TokGridColumn, strconv.Itoa(colIndex[cell])).
				With(TokGridRow, strconv.Itoa(rowIndex[cell]))
			n.AddChild(r.RenderOutputNode(cell, childTok))
		}
	}
	return n
}

// gridDimensions produces the definition string for one axis: per band, the
// first member with an explicit size attribute wins, "auto" marks that
// member as size-required, and bands with no override stay proportional.
func (r *xamlRenderer) gridDimensions(bands [][]*ControlArea, sizeAttr string, markRequired func(*DesignNode)) string {
	dims := make([]string, 0, len(bands))
	for _, band := range bands {
		dim := "*"
		for _, member := range band {
			if member.Node == nil {
				continue
			}
			v := strings.TrimSpace(member.Node.Attr(sizeAttr))
			if v == "" {
				continue
			}
			if strings.EqualFold(v, "auto") {
				dim = "Auto"
				markRequired(member.Node)
			} else {
				dim = v
			}
			break
		}
		dims = append(dims, dim)
	}
	return strings.Join(dims, ",")
}

// bandIndex maps every member area to its band's index.
func bandIndex(bands [][]*ControlArea) map[*ControlArea]int {
	idx := make(map[*ControlArea]int)
	for i, band := range bands {
		for _, m := range band {
			idx[m] = i
		}
	}
	return idx
}

// markWidthRequired records that a source node must report an explicit width,
// both in the renderer's requirements map and as a hint attribute on the
// node itself.
func (r *xamlRenderer) markWidthRequired(n *DesignNode) {
	r.widthRequired[n] = true
	n.SetAttr(HintWidthRequired, "true")
}

// markHeightRequired is the vertical counterpart of markWidthRequired.
func (r *xamlRenderer) markHeightRequired(n *DesignNode) {
	r.heightRequired[n] = true
	n.SetAttr(HintHeightRequired, "true")
}

// --- Stacks ---

// inferStackOrientation picks the orientation of a generic stack panel from
// its children's arrangement; vertical is the fallback for the ambiguous
// cases.
func inferStackOrientation(area *ControlArea) Orientation {
	if inferOrientation(area.FrontAreas) == OrientHorizontal {
		return OrientHorizontal
	}
	return OrientVertical
}

func (r *xamlRenderer) renderStack(area *ControlArea, tok *RenderToken, orient Orientation) *OutNode {
	n := &OutNode{Type: "StackPanel"}
	n.SetAttr("Orientation", orient.String())
	ordered := sortedByY(area.FrontAreas)
	if orient == OrientHorizontal {
		ordered = sortedByX(area.FrontAreas)
	}
	childTok := tok.Descend()
	for _, front := range ordered {
		n.AddChild(r.RenderOutputNode(front, childTok))
	}
	return n
}

func (r *xamlRenderer) renderWrap(area *ControlArea, tok *RenderToken) *OutNode {
	n := &OutNode{Type: "WrapPanel"}
	childTok := tok.Descend()
	for _, front := range sortedByDocIndex(area.FrontAreas) {
		n.AddChild(r.RenderOutputNode(front, childTok))
	}
	return n
}

// --- Dock ---

// renderDock renders a dock panel. Children keep authorial document order;
// a child's dock side comes from its own dock attribute and rides the token
// so the side lands on the final (possibly wrapped) node. The last child
// without a dock side fills the remainder.
func (r *xamlRenderer) renderDock(area *ControlArea, tok *RenderToken) *OutNode {
	n := &OutNode{Type: "DockPanel"}
	ordered := sortedByDocIndex(area.FrontAreas)
	for _, front := range ordered {
		childTok := tok.Descend()
		if front.Node != nil {
			dock := front.Node.Attr("dock")
			if dock == "" {
				dock = front.Node.StyleValue("dock")
			}
			if dock != "" {
				childTok = childTok.With(TokDock, canonicalDockSide(dock))
			}
		}
		n.AddChild(r.RenderOutputNode(front, childTok))
	}
	return n
}

func canonicalDockSide(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return "Top"
	case "bottom":
		return "Bottom"
	case "right":
		return "Right"
	default:
		return "Left"
	}
}

// --- Relative ---

// renderRelative renders a relative-anchor panel. Children receive the
// inside-relative flag plus the panel origin so the universal anchor
// resolution step can synthesize sibling constraints and margins.
func (r *xamlRenderer) renderRelative(area *ControlArea, tok *RenderToken) *OutNode {
	n := &OutNode{Type: "RelativePanel"}
	childTok := tok.Descend().
		With(TokInRelative, "1").
		With(TokRelOriginX, fmtFloat(area.X)).
		With(TokRelOriginY, fmtFloat(area.Y))
	for _, front := range sortedByDocIndex(area.FrontAreas) {
		n.AddChild(r.RenderOutputNode(front, childTok))
	}
	return n
}

// --- Canvas ---

func (r *xamlRenderer) renderCanvas(area *ControlArea, tok *RenderToken) *OutNode {
	n := &OutNode{Type: "Canvas"}
	for _, front := range sortedByDocIndex(area.FrontAreas) {
		childTok := tok.Descend().
			With(TokCanvasLeft, fmtFloat(front.X-area.X)).
			With(TokCanvasTop, fmtFloat(front.Y-area.Y))
		n.AddChild(r.RenderOutputNode(front, childTok))
	}
	return n
}

// --- Single-Content Hosts ---

// renderContentHost renders the containers that hold one logical child
// (Border, ScrollViewer, headered containers). Multiple drawn children are
// gathered into a synthetic stack in their inferred orientation.
func (r *xamlRenderer) renderContentHost(area *ControlArea, tok *RenderToken, typeName, header string) *OutNode {
	n := &OutNode{Type: typeName}
	if header != "" {
		n.SetAttr("Header", header)
	}
	childTok := tok.Descend()
	fronts := area.FrontAreas
	switch len(fronts) {
	case 0:
	case 1:
		n.AddChild(r.RenderOutputNode(fronts[0], childTok))
	default:
		stack := &OutNode{Type: "StackPanel"}
		orient := inferOrientation(fronts)
		ordered := sortedByY(fronts)
		if orient == OrientHorizontal {
			ordered = sortedByX(fronts)
			stack.SetAttr("Orientation", "Horizontal")
		} else {
			stack.SetAttr("Orientation", "Vertical")
		}
		for _, front := range ordered {
			stack.AddChild(r.RenderOutputNode(front, childTok))
		}
		n.AddChild(stack)
	}
	return n
}
