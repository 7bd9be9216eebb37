// layout.go
package main

import (
	"sort"

	"github.com/chewxy/math32"
)

// --- Sibling Ordering ---

// sortedByX returns the areas ordered left to right (stable).
func sortedByX(areas []*ControlArea) []*ControlArea {
	out := make([]*ControlArea, len(areas))
	copy(out, areas)
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

// sortedByY returns the areas ordered top to bottom (stable).
func sortedByY(areas []*ControlArea) []*ControlArea {
	out := make([]*ControlArea, len(areas))
	copy(out, areas)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Y < out[j].Y })
	return out
}

// sortedByDocIndex returns the areas in original document order. Dock-style
// containers need authorial placement priority, not recomputed geometry, so
// their children keep the order the artist drew them in.
func sortedByDocIndex(areas []*ControlArea) []*ControlArea {
	out := make([]*ControlArea, len(areas))
	copy(out, areas)
	sort.SliceStable(out, func(i, j int) bool {
		return docIndexOf(out[i]) < docIndexOf(out[j])
	})
	return out
}

func docIndexOf(ca *ControlArea) int {
	if ca.Node == nil {
		return -1
	}
	return ca.Node.DocIndex
}

// --- Row/Column Partitioning ---

// partitionColumns clusters areas into columns: everything within the
// horizontal tolerance of the running minimum X forms one column, and the
// remainder is processed recursively for further columns.
func partitionColumns(areas []*ControlArea) [][]*ControlArea {
	if len(areas) == 0 {
		return nil
	}
	sorted := sortedByX(areas)
	minX := sorted[0].X
	var column, rest []*ControlArea
	for _, a := range sorted {
		if a.X-minX <= HorizontalClusterTolerance {
			column = append(column, a)
		} else {
			rest = append(rest, a)
		}
	}
	return append([][]*ControlArea{column}, partitionColumns(rest)...)
}

// partitionRows is the vertical counterpart of partitionColumns.
func partitionRows(areas []*ControlArea) [][]*ControlArea {
	if len(areas) == 0 {
		return nil
	}
	sorted := sortedByY(areas)
	minY := sorted[0].Y
	var row, rest []*ControlArea
	for _, a := range sorted {
		if a.Y-minY <= VerticalClusterTolerance {
			row = append(row, a)
		} else {
			rest = append(rest, a)
		}
	}
	return append([][]*ControlArea{row}, partitionRows(rest)...)
}

// --- Reference Trees ---

// createReferenceTree partitions a flat list of areas into a nested
// column/row reference tree approximating a grid the artist never declared.
// The root's children are columns; within each column, rows hang off the
// nearest member above them.
func createReferenceTree(areas []*ControlArea) *ControlReference {
	root := &ControlReference{}
	for _, column := range partitionColumns(areas) {
		colRef := &ControlReference{}
		fillTree(colRef, column)
		root.Children = append(root.Children, colRef)
	}
	return root
}

// fillTree assigns row membership within one column: members are taken top
// to bottom, and each one attaches to the first already-placed member found
// scanning Y-descending whose Y lies above its own; members with nothing
// above them become direct children of the column.
func fillTree(colRef *ControlReference, members []*ControlArea) {
	ordered := sortedByY(members)
	var placed []*ControlReference
	for _, m := range ordered {
		ref := &ControlReference{Area: m}
		var parent *ControlReference
		for i := len(placed) - 1; i >= 0; i-- {
			if placed[i].Area.Y < m.Y {
				parent = placed[i]
				break
			}
		}
		if parent != nil {
			parent.Children = append(parent.Children, ref)
		} else {
			colRef.Children = append(colRef.Children, ref)
		}
		placed = append(placed, ref)
	}
}

// --- Orientation Inference ---

// orientationOf decides the arrangement of a pair of areas: Horizontal when
// their vertical centers are close, Vertical otherwise, None when the pair
// is not comparable. The closeness tolerance is half the smaller height,
// floored at one unit so hairline shapes still compare.
func orientationOf(a, b *ControlArea) Orientation {
	if a == nil || b == nil {
		return OrientNone
	}
	tol := math32.Max(1, math32.Min(a.H, b.H)/2)
	if math32.Abs(a.Area().CenterY()-b.Area().CenterY()) <= tol {
		return OrientHorizontal
	}
	return OrientVertical
}

// inferOrientation decides the overall arrangement of a sibling set from its
// row/column banding.
func inferOrientation(areas []*ControlArea) Orientation {
	if len(areas) < 2 {
		return OrientNone
	}
	cols := len(partitionColumns(areas))
	rows := len(partitionRows(areas))
	switch {
	case rows == 1 && cols > 1:
		return OrientHorizontal
	case cols == 1 && rows > 1:
		return OrientVertical
	case cols > 1 && rows > 1:
		return OrientGrid
	}
	return OrientNone
}

// --- Layout Normalization ---

// normalizeAreas canonicalizes every area's geometry in place (negative
// sizes from normalization passes fold away) and orders front-area lists by
// document index for deterministic rendering.
func normalizeAreas(root *ControlArea) {
	if root == nil {
		return
	}
	root.SetArea(root.Area().Canon())
	root.FrontAreas = sortedByDocIndex(root.FrontAreas)
	for _, front := range root.FrontAreas {
		normalizeAreas(front)
	}
}

// ensureOrganizer guarantees the form has a single top-level layout control
// hosting its direct children. When the artist drew one explicit panel
// spanning the form, that panel is the organizer; otherwise a synthetic
// panel is inserted, with its flavor inferred from the children's spatial
// arrangement.
func ensureOrganizer(root *ControlArea) {
	if root == nil || len(root.FrontAreas) == 0 {
		return
	}
	if len(root.FrontAreas) == 1 && root.FrontAreas[0].Intent.IsPanel() {
		return
	}
	intent := IntentGrid
	switch inferOrientation(root.FrontAreas) {
	case OrientHorizontal:
		intent = IntentHorizontalStackPanel
	case OrientVertical:
		intent = IntentVerticalStackPanel
	}
	organizer := &ControlArea{
		X: root.X, Y: root.Y, W: root.W, H: root.H,
		Intent:     intent,
		FrontAreas: root.FrontAreas,
	}
	organizer.SetProp("synthetic", "organizer")
	root.FrontAreas = []*ControlArea{organizer}
}
