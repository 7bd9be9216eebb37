// properties.go
package main

import (
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/chewxy/math32"
)

// --- Naming ---

// applyName assigns the output identifier: the source id when the author
// labeled the node as a control, falling back to the reference label.
// Editor-generated ids on plain shapes stay out of the output.
func (r *xamlRenderer) applyName(area *ControlArea, n *OutNode) {
	if n.HasAttr("x:Name") {
		return
	}
	var name string
	if area.Node != nil && hasControlLabel(area.Node) {
		name = area.ID()
	}
	if name == "" {
		name = area.Reference
	}
	if name = sanitizeName(name); name != "" {
		n.SetAttr("x:Name", name)
	}
}

// --- Common Property Transfer ---

// commonPropertyMap maps generic (lower-cased) authoring property names onto
// the framework's expected attribute names. Only whitelisted names transfer;
// everything else on a source node is authoring detail.
var commonPropertyMap = map[string]string{
	"tooltip":             "ToolTip.Tip",
	"isenabled":           "IsEnabled",
	"isvisible":           "IsVisible",
	"margin":              "Margin",
	"padding":             "Padding",
	"minwidth":            "MinWidth",
	"minheight":           "MinHeight",
	"maxwidth":            "MaxWidth",
	"maxheight":           "MaxHeight",
	"background":          "Background",
	"foreground":          "Foreground",
	"fontsize":            "FontSize",
	"fontweight":          "FontWeight",
	"fontfamily":          "FontFamily",
	"opacity":             "Opacity",
	"cornerradius":        "CornerRadius",
	"borderbrush":         "BorderBrush",
	"borderthickness":     "BorderThickness",
	"tabindex":            "TabIndex",
	"horizontalalignment": "HorizontalAlignment",
	"verticalalignment":   "VerticalAlignment",
}

// transferCommonProperties copies whitelisted generic properties from the
// source node (attributes first, then style declarations) onto the output
// node. Outliers handled specially: dock rides the render token instead, and
// the width/height-required hints resolve to the drawn geometry.
func (r *xamlRenderer) transferCommonProperties(area *ControlArea, n *OutNode) {
	node := area.Node
	if node == nil {
		return
	}
	transfer := func(name, value string) {
		key := strings.ToLower(strings.TrimSpace(name))
		switch key {
		case "dock":
			return // carried by the parent's render token
		case "width", "height":
			return // drawn geometry, applied only when a grid requires it
		}
		target, ok := commonPropertyMap[key]
		if !ok || n.HasAttr(target) {
			return
		}
		n.SetAttr(target, strings.TrimSpace(value))
	}
	for _, a := range node.Attrs {
		transfer(a.Name, a.Value)
	}
	for _, d := range styleDeclarations(node) {
		transfer(d.Name, d.Value)
	}

	if r.needsWidth(node) && !n.HasAttr("Width") && area.W > 0 {
		n.SetAttr("Width", fmtFloat(area.W))
	}
	if r.needsHeight(node) && !n.HasAttr("Height") && area.H > 0 {
		n.SetAttr("Height", fmtFloat(area.H))
	}
}

// needsWidth consults the explicit requirements map first, then the hint
// attribute a prior pass may have written onto the shared node.
func (r *xamlRenderer) needsWidth(node *DesignNode) bool {
	if r.widthRequired[node] {
		return true
	}
	return strings.EqualFold(node.Attr(HintWidthRequired), "true")
}

func (r *xamlRenderer) needsHeight(node *DesignNode) bool {
	if r.heightRequired[node] {
		return true
	}
	return strings.EqualFold(node.Attr(HintHeightRequired), "true")
}

// styleDeclarations parses the node's style attribute into ordered
// name/value pairs; malformed styles yield none.
func styleDeclarations(n *DesignNode) []DesignAttr {
	style := n.Attr("style")
	if style == "" {
		return nil
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return nil
	}
	out := make([]DesignAttr, 0, len(decls))
	for _, d := range decls {
		out = append(out, DesignAttr{Name: d.Property, Value: d.Value})
	}
	return out
}

// --- Relative-Anchor Resolution ---

// relativeAnchorMap maps authoring anchor attributes to the panel's
// sibling-relative attached properties.
var relativeAnchorMap = []struct {
	attr   string
	target string
}{
	{"above", "RelativePanel.Above"},
	{"below", "RelativePanel.Below"},
	{"rightof", "RelativePanel.RightOf"},
	{"leftof", "RelativePanel.LeftOf"},
	{"alignleft", "RelativePanel.AlignLeftWith"},
	{"alignright", "RelativePanel.AlignRightWith"},
	{"aligntop", "RelativePanel.AlignTopWith"},
	{"alignbottom", "RelativePanel.AlignBottomWith"},
}

// resolveRelativeAnchors resolves authoring anchors into concrete
// sibling-relative constraints plus a synthesized four-value margin. A child
// with no anchors at all defaults to top-left against its panel. Anchors
// naming unknown siblings are skipped, keeping the guard-and-skip posture.
func (r *xamlRenderer) resolveRelativeAnchors(area *ControlArea, n *OutNode, tok *RenderToken) {
	node := area.Node
	var left, top, right, bottom float32
	constrained := false

	anchorValue := func(name string) string {
		if node == nil {
			return ""
		}
		v := node.Attr(name)
		if v == "" {
			v = node.StyleValue(name)
		}
		return strings.TrimSpace(v)
	}
	sibling := func(id string) *ControlArea {
		if r.state.AreasByID == nil {
			return nil
		}
		return r.state.AreasByID[id]
	}

	for _, anchor := range relativeAnchorMap {
		id := anchorValue(anchor.attr)
		if id == "" {
			continue
		}
		sib := sibling(id)
		if sib == nil {
			continue
		}
		n.SetAttr(anchor.target, sanitizeName(id))
		constrained = true
		switch anchor.attr {
		case "above":
			bottom = math32.Max(0, sib.Y-area.Area().Bottom())
		case "below":
			top = math32.Max(0, area.Y-sib.Area().Bottom())
		case "rightof":
			left = math32.Max(0, area.X-sib.Area().Right())
		case "leftof":
			right = math32.Max(0, sib.X-area.Area().Right())
		case "alignleft":
			left = math32.Max(0, area.X-sib.X)
		case "alignright":
			right = math32.Max(0, sib.Area().Right()-area.Area().Right())
		case "aligntop":
			top = math32.Max(0, area.Y-sib.Y)
		case "alignbottom":
			bottom = math32.Max(0, sib.Area().Bottom()-area.Area().Bottom())
		}
	}

	if id := anchorValue("anchor"); id != "" {
		if sib := sibling(id); sib != nil {
			name := sanitizeName(id)
			n.SetAttr("RelativePanel.AlignLeftWith", name)
			n.SetAttr("RelativePanel.AlignTopWith", name)
			left = math32.Max(0, area.X-sib.X)
			top = math32.Max(0, area.Y-sib.Y)
			constrained = true
		}
	}

	if !constrained {
		n.SetAttr("RelativePanel.AlignLeftWithPanel", "True")
		n.SetAttr("RelativePanel.AlignTopWithPanel", "True")
		ox, _ := tok.Get(TokRelOriginX)
		oy, _ := tok.Get(TokRelOriginY)
		left = math32.Max(0, area.X-parseFloatDef(ox, 0))
		top = math32.Max(0, area.Y-parseFloatDef(oy, 0))
	}

	n.SetAttr("Margin", fmtFloat(left)+","+fmtFloat(top)+","+fmtFloat(right)+","+fmtFloat(bottom))
}

// --- Preemptive Border Wrapping ---

// borderTransferProperties are the decorative properties only a border-like
// container can carry for controls without their own chrome.
var borderTransferProperties = []string{"BorderBrush", "BorderThickness", "CornerRadius"}

// borderPropertySupport is the fixed control-by-property compatibility
// table: which output types carry which border properties natively. Types
// not listed support none of them.
var borderPropertySupport = map[string]map[string]bool{
	"Button":                 {"BorderBrush": true, "BorderThickness": true, "CornerRadius": true},
	"TextBox":                {"BorderBrush": true, "BorderThickness": true, "CornerRadius": true},
	"ComboBox":               {"BorderBrush": true, "BorderThickness": true, "CornerRadius": true},
	"Border":                 {"BorderBrush": true, "BorderThickness": true, "CornerRadius": true},
	"ListBox":                {"BorderBrush": true, "BorderThickness": true},
	"TreeView":               {"BorderBrush": true, "BorderThickness": true},
	"Expander":               {"BorderBrush": true, "BorderThickness": true},
	"HeaderedContentControl": {"BorderBrush": true, "BorderThickness": true},
}

// injectBorderWrapper wraps a control in a synthesized Border when it
// carries border properties its own type cannot render, moving those
// properties (and the outermost positional ones) onto the wrapper. The
// wrapper, not the original node, is what the caller receives.
func injectBorderWrapper(n *OutNode) *OutNode {
	support := borderPropertySupport[n.Type]
	var move []string
	for _, prop := range borderTransferProperties {
		if n.HasAttr(prop) && !support[prop] {
			move = append(move, prop)
		}
	}
	if len(move) == 0 {
		return n
	}

	wrapper := &OutNode{Type: "Border"}
	for _, prop := range move {
		wrapper.SetAttr(prop, n.Attr(prop))
		n.removeAttr(prop)
	}
	// Positional placement belongs on the outermost node.
	for _, a := range n.Attrs {
		if a.Name == "Margin" || strings.HasPrefix(a.Name, "RelativePanel.") {
			wrapper.SetAttr(a.Name, a.Value)
		}
	}
	n.removeAttr("Margin")
	n.removeAttrPrefix("RelativePanel.")
	wrapper.AddChild(n)
	return wrapper
}

// removeAttr deletes the named attribute if present.
func (n *OutNode) removeAttr(name string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return
		}
	}
}

// removeAttrPrefix deletes every attribute whose name starts with prefix.
func (n *OutNode) removeAttrPrefix(prefix string) {
	kept := n.Attrs[:0]
	for _, a := range n.Attrs {
		if !strings.HasPrefix(a.Name, prefix) {
			kept = append(kept, a)
		}
	}
	n.Attrs = kept
}

// --- Token-Derived Properties ---

// applyTokenProperties applies the level-scoped positional hints assigned by
// the parent renderer to the final node: grid cell indexes, dock sides and
// canvas offsets. Zero grid indexes are the framework default and stay
// implicit.
func applyTokenProperties(n *OutNode, tok *RenderToken) {
	if n == nil || tok == nil {
		return
	}
	if v, ok := tok.Get(TokGridColumn); ok && v != "0" {
		n.SetAttr("Grid.Column", v)
	}
	if v, ok := tok.Get(TokGridRow); ok && v != "0" {
		n.SetAttr("Grid.Row", v)
	}
	if v, ok := tok.Get(TokDock); ok {
		n.SetAttr("DockPanel.Dock", v)
	}
	if v, ok := tok.Get(TokCanvasLeft); ok {
		n.SetAttr("Canvas.Left", v)
	}
	if v, ok := tok.Get(TokCanvasTop); ok {
		n.SetAttr("Canvas.Top", v)
	}
}
