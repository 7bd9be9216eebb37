// classifier.go
package main

import (
	"strings"
)

// --- Design-Intent Classification ---
// A node's intent comes from its authoring label, never from what it looks
// like: the artist writes "button-ok" on a rectangle and that rectangle is a
// button. Unrecognized labels fall through to None so stray annotations are
// ignored rather than rejected.

// isLayer reports whether a node is a structural layer marker: a group
// carrying the editor's layer attribute pair. Layers are organizational and
// never controls themselves.
func isLayer(n *DesignNode) bool {
	if n == nil || n.Type != "g" {
		return false
	}
	return strings.EqualFold(n.Attr(AttrGroupMode), GroupModeLayer) && n.HasAttr(AttrLabel)
}

// layerLabel returns the label of a layer node, or "".
func layerLabel(n *DesignNode) string {
	if !isLayer(n) {
		return ""
	}
	return strings.TrimSpace(n.Attr(AttrLabel))
}

// intentLabel returns the raw label text used for classification: the
// dedicated label attribute when present, else the generic intent attribute.
func intentLabel(n *DesignNode) string {
	if n == nil {
		return ""
	}
	if label := strings.TrimSpace(n.Attr(AttrLabel)); label != "" {
		return label
	}
	return strings.TrimSpace(n.Attr(AttrIntent))
}

// Classify decides the design intent of a node:
//  1. layer markers are None;
//  2. a label's hyphen-prefix is matched case-insensitively against the
//     known intent names;
//  3. unlabeled image references default to Image;
//  4. everything else is None.
//
// Classification is pure: same node, same answer, and a node missing every
// attribute safely yields None.
func Classify(n *DesignNode) Intent {
	if n == nil || isLayer(n) {
		return IntentNone
	}
	if label := intentLabel(n); label != "" {
		prefix := strings.ToLower(beforeDelim(label, '-'))
		if intent, ok := intentNames[prefix]; ok {
			return intent
		}
	}
	if n.Type == "image" {
		return IntentImage
	}
	return IntentNone
}

// hasControlLabel reports whether the node's label or intent attribute names
// a known control type. This is the containment-eligibility test: it is
// narrower than Classify, which also admits unlabeled images.
func hasControlLabel(n *DesignNode) bool {
	label := intentLabel(n)
	if label == "" {
		return false
	}
	_, ok := intentNames[strings.ToLower(beforeDelim(label, '-'))]
	return ok
}

// referenceOf extracts the free-form reference portion of a label: everything
// after the first hyphen ("button-ok" -> "ok").
func referenceOf(n *DesignNode) string {
	return strings.TrimSpace(afterDelim(intentLabel(n), '-'))
}

// isControlBearing reports whether the builder should lift a node into a
// control area: image and text nodes always are; any other non-layer node
// qualifies by carrying a recognizable control label.
func isControlBearing(n *DesignNode) bool {
	if n == nil {
		return false
	}
	switch n.Type {
	case "image", "text":
		return true
	}
	return !isLayer(n) && hasControlLabel(n)
}
