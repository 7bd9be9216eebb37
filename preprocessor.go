// preprocessor.go
package main

import (
	"log"
)

// expandUseReferences replaces <use href="#id"> elements with a translated
// clone of the referenced subtree, so drawings assembled from symbol
// libraries classify and place like inline shapes. Expansion repeats until
// no use elements remain, up to MaxUseDepth rounds; anything deeper (or
// cyclic) is left unexpanded with a warning.
func expandUseReferences(doc *Document) int {
	total := 0
	for depth := 0; depth < MaxUseDepth; depth++ {
		expanded := expandUsePass(doc)
		if expanded == 0 {
			break
		}
		total += expanded
		doc.reindex()
		if depth == MaxUseDepth-1 {
			log.Printf("Warning: use-reference expansion stopped at depth %d; remaining references are cyclic or too deep", MaxUseDepth)
		}
	}
	return total
}

// expandUsePass runs one round of expansion over the whole tree.
func expandUsePass(doc *Document) int {
	expanded := 0
	var walk func(n *DesignNode)
	walk = func(n *DesignNode) {
		for i := 0; i < len(n.Children); i++ {
			child := n.Children[i]
			if child.Type != "use" {
				walk(child)
				continue
			}
			replacement := resolveUse(doc, child)
			if replacement == nil {
				continue
			}
			replacement.Parent = n
			n.Children[i] = replacement
			expanded++
		}
	}
	walk(doc.Root)
	return expanded
}

// resolveUse builds the replacement node for one use element: a group
// carrying the use's translation and transform, containing a clone of the
// referenced subtree. Unresolvable references yield nil and are logged.
func resolveUse(doc *Document, use *DesignNode) *DesignNode {
	href := use.Attr("xlink:href")
	if href == "" {
		href = use.Attr("href")
	}
	if len(href) < 2 || href[0] != '#' {
		log.Printf("Warning: use element (doc index %d) has no local reference, skipped", use.DocIndex)
		return nil
	}
	target := doc.NodeByID(href[1:])
	if target == nil {
		log.Printf("Warning: use reference '%s' not found, skipped", href)
		return nil
	}

	group := &DesignNode{Type: "g"}
	transform := use.Attr("transform")
	x := parseFloatDef(use.Attr("x"), 0)
	y := parseFloatDef(use.Attr("y"), 0)
	if x != 0 || y != 0 {
		translate := "translate(" + fmtFloat(x) + "," + fmtFloat(y) + ")"
		if transform != "" {
			transform = transform + " " + translate
		} else {
			transform = translate
		}
	}
	if transform != "" {
		group.SetAttr("transform", transform)
	}
	// The use's own label wins over the referenced subtree's, so a labeled
	// use of an unlabeled symbol still classifies.
	if label := use.Attr(AttrLabel); label != "" {
		group.SetAttr(AttrLabel, label)
	}
	if id := use.Attr(AttrID); id != "" {
		group.SetAttr(AttrID, id)
	}

	clone := cloneDesignNode(target)
	// Cloned ids would collide with the originals under defs.
	stripIDs(clone)
	clone.Parent = group
	group.Children = append(group.Children, clone)
	return group
}

// cloneDesignNode deep-copies a design subtree. Parent links are rebuilt;
// the clone never aliases the original's attribute storage.
func cloneDesignNode(n *DesignNode) *DesignNode {
	c := &DesignNode{Type: n.Type, Text: n.Text}
	c.Attrs = make([]DesignAttr, len(n.Attrs))
	copy(c.Attrs, n.Attrs)
	c.Children = make([]*DesignNode, 0, len(n.Children))
	for _, child := range n.Children {
		cc := cloneDesignNode(child)
		cc.Parent = c
		c.Children = append(c.Children, cc)
	}
	return c
}

// stripIDs removes id attributes throughout a cloned subtree.
func stripIDs(n *DesignNode) {
	n.Walk(func(d *DesignNode) {
		for i := range d.Attrs {
			if d.Attrs[i].Name == AttrID {
				d.Attrs = append(d.Attrs[:i], d.Attrs[i+1:]...)
				break
			}
		}
	})
}
