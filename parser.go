// parser.go
package main

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/aymerick/douceur/parser"
)

// --- Design Node Accessors ---

// Attr returns the value of the named attribute, matching case-insensitively,
// or "" when absent.
func (n *DesignNode) Attr(name string) string {
	for _, a := range n.Attrs {
		if strings.EqualFold(a.Name, name) {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present.
func (n *DesignNode) HasAttr(name string) bool {
	for _, a := range n.Attrs {
		if strings.EqualFold(a.Name, name) {
			return true
		}
	}
	return false
}

// SetAttr sets or replaces the named attribute, preserving order.
func (n *DesignNode) SetAttr(name, value string) {
	for i := range n.Attrs {
		if strings.EqualFold(n.Attrs[i].Name, name) {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, DesignAttr{Name: name, Value: value})
}

// StyleValue reads one key out of the node's style="k:v;k:v" attribute.
// Malformed style strings yield "".
func (n *DesignNode) StyleValue(key string) string {
	style := n.Attr("style")
	if style == "" {
		return ""
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return ""
	}
	for _, d := range decls {
		if strings.EqualFold(d.Property, key) {
			return strings.TrimSpace(d.Value)
		}
	}
	return ""
}

// SetStyleValue sets one key in the node's style attribute, rewriting the
// declaration list. A malformed existing style is replaced wholesale.
func (n *DesignNode) SetStyleValue(key, value string) {
	style := n.Attr("style")
	var parts []string
	if style != "" {
		if decls, err := parser.ParseDeclarations(style); err == nil {
			replaced := false
			for _, d := range decls {
				if strings.EqualFold(d.Property, key) {
					parts = append(parts, key+":"+value)
					replaced = true
				} else {
					parts = append(parts, d.Property+":"+strings.TrimSpace(d.Value))
				}
			}
			if !replaced {
				parts = append(parts, key+":"+value)
			}
		}
	}
	if parts == nil {
		parts = []string{key + ":" + value}
	}
	n.SetAttr("style", strings.Join(parts, ";"))
}

// nodeText collects the text payload of a node and its descendants, joined
// with single spaces.
func nodeText(n *DesignNode) string {
	if n == nil {
		return ""
	}
	parts := make([]string, 0, 2)
	if t := strings.TrimSpace(n.Text); t != "" {
		parts = append(parts, t)
	}
	for _, c := range n.Children {
		if t := nodeText(c); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// Walk visits n and all descendants in document order.
func (n *DesignNode) Walk(visit func(*DesignNode)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// --- Document Accessors ---

// NodeByID finds a node by its id attribute; nil when absent.
func (doc *Document) NodeByID(id string) *DesignNode {
	if id == "" {
		return nil
	}
	return doc.byID[id]
}

// reindex rebuilds the id lookup and document-order indexes. Called after
// parsing and again after reference expansion mutates the tree.
func (doc *Document) reindex() {
	doc.byID = make(map[string]*DesignNode, doc.nodeCount)
	index := 0
	doc.Root.Walk(func(n *DesignNode) {
		n.DocIndex = index
		index++
		if id := n.Attr(AttrID); id != "" {
			if _, dup := doc.byID[id]; !dup {
				doc.byID[id] = n
			}
		}
	})
	doc.nodeCount = index
}

// --- SVG Parsing ---

// ParseDesignFile opens and parses an SVG design document.
func ParseDesignFile(path string) (*Document, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	doc, err := ParseDesign(bufio.NewReader(fp))
	if err != nil {
		return nil, fmt.Errorf("parsing '%s': %w", path, err)
	}
	return doc, nil
}

// ParseDesign reads XML-formatted SVG input into a design document tree.
// The decoder runs permissively: unknown entities, unclosed tags and foreign
// namespaces are tolerated, matching what vector editors actually emit.
func ParseDesign(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose
	decoder.Entity = xml.HTMLEntity

	var root *DesignNode
	var stack []*DesignNode

	for {
		tok, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("reading design markup: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := &DesignNode{Type: t.Name.Local}
			node.Attrs = make([]DesignAttr, 0, len(t.Attr))
			for _, a := range t.Attr {
				name := qualifyAttrName(a)
				if name == "" {
					continue
				}
				node.Attrs = append(node.Attrs, DesignAttr{Name: name, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					// Multiple top-level elements: keep the first tree.
					log.Printf("Warning: ignoring extra top-level element <%s>", t.Name.Local)
					if err := decoder.Skip(); err != nil {
						return nil, err
					}
					continue
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				node.Parent = parent
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			text := strings.TrimSpace(string(t))
			if text == "" {
				continue
			}
			cur := stack[len(stack)-1]
			if cur.Text == "" {
				cur.Text = text
			} else {
				cur.Text += " " + text
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("no root element found in design document")
	}

	doc := &Document{Root: root}
	doc.Width, doc.Height = canvasSize(root)
	doc.reindex()
	return doc, nil
}

// qualifyAttrName restores a readable prefix:local attribute name from the
// decoder's namespace handling, which substitutes declared prefixes with
// their full URLs. Namespace declarations themselves are dropped.
func qualifyAttrName(a xml.Attr) string {
	space := a.Name.Space
	local := a.Name.Local
	switch {
	case space == "":
		if local == "xmlns" {
			return ""
		}
		return local
	case space == "xmlns":
		return ""
	case strings.Contains(space, "inkscape"):
		return "inkscape:" + local
	case strings.Contains(space, "sodipodi"):
		return "sodipodi:" + local
	case strings.Contains(space, "xlink"):
		return "xlink:" + local
	case strings.Contains(space, "://"):
		// Unrecognized declared namespace: keep only the local name.
		return local
	default:
		// Undeclared prefix comes through verbatim.
		return space + ":" + local
	}
}

// canvasSize determines the drawing canvas from the root element's
// width/height, falling back to the viewBox.
func canvasSize(root *DesignNode) (w, h float32) {
	w = parseFloatDef(root.Attr("width"), 0)
	h = parseFloatDef(root.Attr("height"), 0)
	if w > 0 && h > 0 {
		return w, h
	}
	vb := parseNumberList(root.Attr("viewBox"))
	if len(vb) == 4 {
		return vb[2], vb[3]
	}
	return w, h
}
