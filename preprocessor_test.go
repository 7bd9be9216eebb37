package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandUseReferences(t *testing.T) {
	doc := parseDoc(t, `<svg `+inkscapeNS+` width="100" height="100">
		<defs>
			<rect id="proto" width="30" height="20"/>
		</defs>
		<g inkscape:groupmode="layer" inkscape:label="form-Main">
			<use id="u1" inkscape:label="button-Go" xlink:href="#proto" x="5" y="5"/>
		</g>
	</svg>`)

	expanded := expandUseReferences(doc)
	assert.Equal(t, 1, expanded)

	layer := doc.Root.Children[1]
	require.Len(t, layer.Children, 1)
	group := layer.Children[0]
	assert.Equal(t, "g", group.Type)
	assert.Equal(t, "button-Go", group.Attr(AttrLabel))
	assert.Equal(t, "u1", group.Attr(AttrID))
	assert.Equal(t, "translate(5,5)", group.Attr("transform"))
	assert.Same(t, layer, group.Parent)

	require.Len(t, group.Children, 1)
	clone := group.Children[0]
	assert.Equal(t, "rect", clone.Type)
	assert.Equal(t, "", clone.Attr(AttrID)) // cloned ids are stripped
	assert.Same(t, group, clone.Parent)

	// The prototype under defs is untouched.
	require.NotNil(t, doc.NodeByID("proto"))
}

func TestExpandUseUnresolved(t *testing.T) {
	doc := parseDoc(t, `<svg `+inkscapeNS+`>
		<use xlink:href="#nowhere"/>
		<use/>
	</svg>`)
	assert.Equal(t, 0, expandUseReferences(doc))
	assert.Len(t, doc.Root.Children, 2)
}

func TestCloneDesignNodeIsDeep(t *testing.T) {
	original := labeledNode("g", "button-A")
	child := &DesignNode{Type: "rect", Parent: original}
	original.Children = append(original.Children, child)

	clone := cloneDesignNode(original)
	clone.SetAttr(AttrLabel, "button-B")
	clone.Children[0].Type = "circle"

	assert.Equal(t, "button-A", original.Attr(AttrLabel))
	assert.Equal(t, "rect", original.Children[0].Type)
	assert.Same(t, clone, clone.Children[0].Parent)
}
