// areas.go
package main

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// --- Control-Area Building ---
// The builder walks the form layer in document (Z) order and lifts every
// control-bearing node into a ControlArea, nesting areas by geometric
// containment rather than by the document's own child structure. A shape
// drawn on top of a panel becomes the panel's front area even when the two
// are document-order siblings.

// newControlArea creates the area record for one control-bearing node.
func newControlArea(n *DesignNode) *ControlArea {
	ca := &ControlArea{
		Intent:    Classify(n),
		Node:      n,
		Reference: referenceOf(n),
	}
	ca.SetArea(nodeArea(n))
	return ca
}

// findFormLayer locates the layer whose label starts with the reserved form
// marker. Only direct children of the document root are considered.
func (state *ConverterState) findFormLayer() *DesignNode {
	if state.Doc == nil || state.Doc.Root == nil {
		return nil
	}
	for _, child := range state.Doc.Root.Children {
		if label := layerLabel(child); label != "" && hasPrefixFold(label, FormLabelPrefix) {
			return child
		}
	}
	return nil
}

// buildControlAreas constructs the control-area tree for the document's form
// layer. A document with no detectable form layer yields no tree; that is
// logged, not an error, so batch runs degrade to partial output.
func (state *ConverterState) buildControlAreas() {
	formLayer := state.findFormLayer()
	if formLayer == nil {
		log.Printf("Warning: no form layer found (expected a layer labeled '%s...')", FormLabelPrefix)
		state.Form = nil
		return
	}

	root := &ControlArea{
		W:         state.Doc.Width,
		H:         state.Doc.Height,
		Intent:    IntentForm,
		Node:      formLayer,
		Reference: strings.TrimSpace(afterDelim(layerLabel(formLayer), '-')),
	}
	if root.W <= 0 || root.H <= 0 {
		// No canvas dimensions: span the drawn content instead.
		bounds := nodeArea(formLayer)
		root.SetArea(bounds)
	}
	state.Form = root
	state.AreasByID = make(map[string]*ControlArea, 16)
	state.MenuPanels = make(map[string]*ControlArea, 4)

	state.collectControls(formLayer, root)
	state.foldExtensionLayers()
	state.indexAreas(root)
}

// collectControls walks a subtree in document order, placing every
// control-bearing node into the root's front-area pool.
func (state *ConverterState) collectControls(n *DesignNode, root *ControlArea) {
	for _, child := range n.Children {
		if isControlBearing(child) {
			ca := newControlArea(child)
			placeInFront(ca, root)
		}
		state.collectControls(child, root)
	}
}

// indexAreas records id and menu-panel lookups over the finished tree.
func (state *ConverterState) indexAreas(root *ControlArea) {
	for _, ca := range flattenAreas(root) {
		if id := ca.ID(); id != "" {
			if _, dup := state.AreasByID[id]; !dup {
				state.AreasByID[id] = ca
			}
		}
		if ca.Intent == IntentMenuPanel && ca.Reference != "" {
			state.MenuPanels[ca.Reference] = ca
		}
	}
}

// --- Placement ---

// flattenAreas lists container's front areas depth-first, lowest Z to
// highest. The container itself is not included.
func flattenAreas(container *ControlArea) []*ControlArea {
	var flat []*ControlArea
	var walk func(areas []*ControlArea)
	walk = func(areas []*ControlArea) {
		for _, a := range areas {
			flat = append(flat, a)
			walk(a.FrontAreas)
		}
	}
	walk(container.FrontAreas)
	return flat
}

// placeInFront nests a candidate area into the frontmost pool area that
// fully contains it, or that it overlaps by at least OverlapNestThreshold of
// its own surface; failing both, the candidate becomes a direct front area
// of the container. The reverse-Z scan order and the exact threshold are
// what make nesting stable on drawings with slightly imprecise boundaries.
func placeInFront(candidate *ControlArea, container *ControlArea) {
	cand := candidate.Area().Canon()
	flat := flattenAreas(container)
	for i := len(flat) - 1; i >= 0; i-- {
		pool := flat[i]
		pa := pool.Area().Canon()
		if pa.Contains(cand) {
			pool.FrontAreas = append(pool.FrontAreas, candidate)
			return
		}
		if cand.Size() > 0 {
			overlap := pa.Intersect(cand)
			if !overlap.IsEmpty() && overlap.Size() >= OverlapNestThreshold*cand.Size() {
				pool.FrontAreas = append(pool.FrontAreas, candidate)
				return
			}
		}
	}
	container.FrontAreas = append(container.FrontAreas, candidate)
}

// --- Control Enumeration ---

// EnumerateControls writes a human-readable dump of the inferred control
// tree to the sink. Intended for the -list mode and for eyeballing why a
// shape landed where it did.
func EnumerateControls(doc *Document, sink io.Writer) {
	state := &ConverterState{Doc: doc}
	state.buildControlAreas()
	if state.Form == nil {
		fmt.Fprintln(sink, "(no form layer)")
		return
	}
	dumpAreaTree(sink, state.Form, 0)
}

func dumpAreaTree(w io.Writer, ca *ControlArea, depth int) {
	name := ca.ID()
	if name == "" {
		name = ca.Reference
	}
	fmt.Fprintf(w, "%s%s '%s' (%.0f,%.0f %.0fx%.0f)\n",
		strings.Repeat("  ", depth), ca.Intent, name, ca.X, ca.Y, ca.W, ca.H)
	for _, front := range ca.FrontAreas {
		dumpAreaTree(w, front, depth+1)
	}
}
