// references.go
package main

import (
	"log"
	"strings"
)

// --- Extension Layers ---
// An extension layer is an additional authoring layer whose label extends an
// existing control's id (same name, or name plus a hyphen suffix). Its
// contents are folded into that control's front areas, so one logical
// control can be composed across several drawing layers. Layers can chain:
// an extension layer may target a control that itself arrived via another
// extension layer, so folding repeats until no layer finds a target.

// foldExtensionLayers folds every matching top-level layer into its target
// control. Runs after the primary build pass.
func (state *ConverterState) foldExtensionLayers() {
	if state.Form == nil || state.Doc == nil {
		return
	}
	formLayer := state.Form.Node

	var pending []*DesignNode
	for _, child := range state.Doc.Root.Children {
		if child == formLayer || !isLayer(child) {
			continue
		}
		if hasPrefixFold(layerLabel(child), FormLabelPrefix) {
			continue // additional form layers are separate drawings, not extensions
		}
		pending = append(pending, child)
	}

	for depth := 0; depth < MaxExtensionDepth && len(pending) > 0; depth++ {
		var remaining []*DesignNode
		progressed := false
		for _, layer := range pending {
			target := state.findExtensionTarget(layerLabel(layer))
			if target == nil {
				remaining = append(remaining, layer)
				continue
			}
			state.collectControls(layer, target)
			progressed = true
		}
		pending = remaining
		if !progressed {
			break
		}
	}

	for _, layer := range pending {
		log.Printf("Warning: layer '%s' extends no known control id, ignored", layerLabel(layer))
	}
}

// findExtensionTarget resolves an extension-layer label to the control area
// it extends: an area whose id equals the label, or whose id is the label's
// hyphen-prefix.
func (state *ConverterState) findExtensionTarget(label string) *ControlArea {
	if label == "" || state.Form == nil {
		return nil
	}
	for _, ca := range flattenAreas(state.Form) {
		id := ca.ID()
		if id == "" {
			continue
		}
		if strings.EqualFold(label, id) || hasPrefixFold(label, id+"-") {
			return ca
		}
	}
	return nil
}

// --- Menu Panel Resolution ---
// Menu items reference submenu panels drawn elsewhere on the canvas through
// their reference labels: "menuitem-file" opens the panel "menupanel-file".
// Panels can chain (a panel item referencing a further panel); resolution is
// depth-capped against reference cycles.

// menuPanelFor resolves the submenu panel referenced by a menu-item area.
func (state *ConverterState) menuPanelFor(item *ControlArea) *ControlArea {
	if item == nil || item.Reference == "" || state.MenuPanels == nil {
		return nil
	}
	return state.MenuPanels[item.Reference]
}
