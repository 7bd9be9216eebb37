package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textNode(s string, x, y float32) *DesignNode {
	return &DesignNode{Type: "text", Text: s, Attrs: []DesignAttr{
		{Name: "x", Value: fmtFloat(x)},
		{Name: "y", Value: fmtFloat(y)},
	}}
}

func TestRoundTripSingleButton(t *testing.T) {
	doc := parseDoc(t, `<svg `+inkscapeNS+` width="200" height="150">
		<g inkscape:groupmode="layer" inkscape:label="form-Main">
			<rect id="btn1" inkscape:label="button-OK" x="10" y="10" width="80" height="30"/>
		</g>
	</svg>`)

	root := BuildAndRender(doc, nil)
	require.NotNil(t, root)
	assert.Equal(t, "Window", root.Type)
	assert.Equal(t, "Main", root.Attr("Title"))
	assert.Equal(t, "Main", root.Attr("x:Name"))
	assert.Equal(t, "200", root.Attr("Width"))
	assert.Equal(t, "150", root.Attr("Height"))

	// A lone non-panel control sits inside a synthetic grid organizer.
	require.Len(t, root.Children, 1)
	organizer := root.Children[0]
	assert.Equal(t, "Grid", organizer.Type)
	require.Len(t, organizer.Children, 1)
	button := organizer.Children[0]
	assert.Equal(t, "Button", button.Type)
	assert.Equal(t, "btn1", button.Attr("x:Name"))

	var out bytes.Buffer
	require.NoError(t, WriteXaml(&out, root))
	assert.Contains(t, out.String(), `<Button x:Name="btn1" />`)
}

func TestRenderNoFormLayer(t *testing.T) {
	doc := parseDoc(t, `<svg `+inkscapeNS+` width="10" height="10"/>`)
	assert.Nil(t, BuildAndRender(doc, nil))
}

func TestGridAutoColumnMarksWidthRequired(t *testing.T) {
	doc := parseDoc(t, `<svg `+inkscapeNS+` width="300" height="100">
		<g inkscape:groupmode="layer" inkscape:label="form-Main">
			<g id="g1" inkscape:label="grid-main">
				<rect id="a" inkscape:label="button-A" ColumnWidth="Auto" x="0" y="0" width="40" height="20"/>
				<rect id="b" inkscape:label="button-B" x="100" y="0" width="40" height="20"/>
			</g>
		</g>
	</svg>`)

	root := BuildAndRender(doc, nil)
	require.NotNil(t, root)
	require.Len(t, root.Children, 1)
	grid := root.Children[0]
	assert.Equal(t, "Grid", grid.Type)
	assert.Equal(t, "Auto,*", grid.Attr("ColumnDefinitions"))
	assert.False(t, grid.HasAttr("RowDefinitions")) // single row stays implicit

	require.Len(t, grid.Children, 2)
	first, second := grid.Children[0], grid.Children[1]
	assert.Equal(t, "a", first.Attr("x:Name"))
	assert.Equal(t, "40", first.Attr("Width")) // Auto column forces an explicit size
	assert.False(t, first.HasAttr("Grid.Column"))
	assert.Equal(t, "1", second.Attr("Grid.Column"))
	assert.False(t, second.HasAttr("Width"))

	// The hint is visible on the source node itself.
	a := doc.NodeByID("a")
	require.NotNil(t, a)
	assert.Equal(t, "true", a.Attr(HintWidthRequired))
	assert.Equal(t, "", doc.NodeByID("b").Attr(HintWidthRequired))
}

func TestHorizontalStackOrdersLeftToRight(t *testing.T) {
	doc := parseDoc(t, `<svg `+inkscapeNS+` width="200" height="50">
		<g inkscape:groupmode="layer" inkscape:label="form-Main">
			<g id="nav" inkscape:label="stackpanel-nav">
				<rect id="btnA" inkscape:label="button-A" x="60" y="0" width="40" height="20"/>
				<rect id="btnB" inkscape:label="button-B" x="0" y="0" width="40" height="20"/>
			</g>
		</g>
	</svg>`)

	root := BuildAndRender(doc, nil)
	require.NotNil(t, root)
	require.Len(t, root.Children, 1)
	stack := root.Children[0]
	assert.Equal(t, "StackPanel", stack.Type)
	assert.Equal(t, "Horizontal", stack.Attr("Orientation"))
	require.Len(t, stack.Children, 2)
	assert.Equal(t, "btnB", stack.Children[0].Attr("x:Name"))
	assert.Equal(t, "btnA", stack.Children[1].Attr("x:Name"))
}

func TestContentControlCompositeVariants(t *testing.T) {
	r := NewXamlRenderer(&ConverterState{})
	tok := NewRenderToken()

	// Empty: the simplest legal control.
	empty := placedArea(0, 0, 40, 20, IntentButton)
	n := r.renderContentControl(empty, tok, "Button")
	assert.False(t, n.HasAttr("Content"))
	assert.Empty(t, n.Children)

	// Text only: joined into Content.
	withText := placedArea(0, 0, 80, 20, IntentButton)
	withText.FrontAreas = []*ControlArea{
		{X: 30, Y: 2, W: 30, H: 16, Node: textNode("file", 30, 18)},
		{X: 4, Y: 2, W: 24, H: 16, Node: textNode("Save", 4, 18)},
	}
	n = r.renderContentControl(withText, tok, "Button")
	assert.Equal(t, "Save file", n.Attr("Content"))
	assert.Empty(t, n.Children)

	// Image only: a single Image child.
	icon := &DesignNode{Type: "image", Attrs: []DesignAttr{{Name: "xlink:href", Value: "save.png"}}}
	withImage := placedArea(0, 0, 40, 20, IntentButton)
	withImage.FrontAreas = []*ControlArea{{X: 2, Y: 2, W: 16, H: 16, Intent: IntentImage, Node: icon}}
	n = r.renderContentControl(withImage, tok, "Button")
	require.Len(t, n.Children, 1)
	img := n.Children[0]
	assert.Equal(t, "Image", img.Type)
	assert.Equal(t, "save.png", img.Attr("Source"))
	assert.Equal(t, "16", img.Attr("Width"))

	// Image and text: a stack in their drawn arrangement, image first.
	both := placedArea(0, 0, 80, 20, IntentButton)
	both.FrontAreas = []*ControlArea{
		{X: 24, Y: 2, W: 40, H: 16, Node: textNode("Save", 24, 18)},
		{X: 2, Y: 2, W: 16, H: 16, Intent: IntentImage, Node: icon},
	}
	n = r.renderContentControl(both, tok, "Button")
	require.Len(t, n.Children, 1)
	stack := n.Children[0]
	assert.Equal(t, "StackPanel", stack.Type)
	assert.Equal(t, "Horizontal", stack.Attr("Orientation"))
	require.Len(t, stack.Children, 2)
	assert.Equal(t, "Image", stack.Children[0].Type)
	assert.Equal(t, "TextBlock", stack.Children[1].Type)
	assert.Equal(t, "Save", stack.Children[1].Attr("Text"))
}

func TestRenderMenuWithPanels(t *testing.T) {
	open := &ControlArea{X: 0, Y: 30, W: 60, H: 16, Intent: IntentMenuItem,
		Reference: "open", Node: textNode("Open", 0, 44)}
	sep := &ControlArea{X: 0, Y: 50, W: 60, H: 2, Intent: IntentSeparator}
	quit := &ControlArea{X: 0, Y: 56, W: 60, H: 16, Intent: IntentMenuItem,
		Reference: "quit", Node: textNode("Quit", 0, 70)}
	panel := &ControlArea{X: 0, Y: 24, W: 70, H: 60, Intent: IntentMenuPanel,
		Reference: "file", FrontAreas: []*ControlArea{quit, sep, open}}

	file := &ControlArea{X: 0, Y: 0, W: 40, H: 20, Intent: IntentMenuItem,
		Reference: "file", Node: textNode("File", 0, 14)}
	bar := &ControlArea{X: 0, Y: 0, W: 200, H: 20, Intent: IntentMenuBar,
		FrontAreas: []*ControlArea{file}}

	state := &ConverterState{MenuPanels: map[string]*ControlArea{"file": panel}}
	r := NewXamlRenderer(state)

	menu := r.renderMenu(bar)
	assert.Equal(t, "Menu", menu.Type)
	require.Len(t, menu.Children, 1)
	fileItem := menu.Children[0]
	assert.Equal(t, "File", fileItem.Attr("Header"))
	require.Len(t, fileItem.Children, 3)
	assert.Equal(t, "Open", fileItem.Children[0].Attr("Header"))
	assert.Equal(t, "Separator", fileItem.Children[1].Type)
	assert.Equal(t, "Quit", fileItem.Children[2].Attr("Header"))
}

func TestRenderToolBarEmitsEverySeparator(t *testing.T) {
	state := &ConverterState{}
	r := NewXamlRenderer(state)
	mk := func(doc int, intent Intent) *ControlArea {
		return &ControlArea{W: 20, H: 20, Intent: intent, Node: &DesignNode{Type: "rect",
			DocIndex: doc, Attrs: []DesignAttr{{Name: AttrLabel, Value: "x-" + fmtFloat(float32(doc))}}}}
	}
	bar := placedArea(0, 0, 200, 24, IntentToolBar)
	bar.FrontAreas = []*ControlArea{
		mk(1, IntentSeparator), // leading separator is kept
		{W: 20, H: 20, Intent: IntentButton, Node: &DesignNode{Type: "rect", DocIndex: 2,
			Attrs: []DesignAttr{{Name: AttrLabel, Value: "button-cut"}}}},
		mk(3, IntentSeparator),
	}

	n := r.renderToolBar(bar, NewRenderToken())
	require.Len(t, n.Children, 3)
	assert.Equal(t, "Separator", n.Children[0].Type)
	assert.Equal(t, "Button", n.Children[1].Type)
	assert.Equal(t, "Separator", n.Children[2].Type)
}

func TestRenderListBoxWrapsItems(t *testing.T) {
	r := NewXamlRenderer(&ConverterState{})
	lb := placedArea(0, 0, 100, 80, IntentListBox)
	lb.FrontAreas = []*ControlArea{
		{X: 2, Y: 30, W: 90, H: 16, Node: textNode("Second", 2, 44)},
		{X: 2, Y: 4, W: 90, H: 16, Node: textNode("First", 2, 18)},
	}
	n := r.renderListBox(lb, NewRenderToken())
	require.Len(t, n.Children, 2)
	assert.Equal(t, "ListBoxItem", n.Children[0].Type)
	assert.Equal(t, "First", n.Children[0].Attr("Content"))
	assert.Equal(t, "Second", n.Children[1].Attr("Content"))
}

func TestRenderItemsViewUniformGrid(t *testing.T) {
	r := NewXamlRenderer(&ConverterState{})
	view := placedArea(0, 0, 200, 100, IntentListView)
	view.FrontAreas = []*ControlArea{
		{X: 0, Y: 0, W: 40, H: 16, Node: textNode("A", 0, 14)},
		{X: 100, Y: 0, W: 40, H: 16, Node: textNode("B", 100, 14)},
		{X: 0, Y: 40, W: 40, H: 16, Node: textNode("C", 0, 54)},
		{X: 100, Y: 40, W: 40, H: 16, Node: textNode("D", 100, 54)},
	}
	n := r.renderItemsView(view, NewRenderToken(), "ListBox")
	require.NotEmpty(t, n.Children)
	host := n.Children[0]
	assert.Equal(t, "ListBox.ItemsPanel", host.Type)
	require.Len(t, host.Children, 1)
	tmpl := host.Children[0]
	require.Len(t, tmpl.Children, 1)
	assert.Equal(t, "UniformGrid", tmpl.Children[0].Type)
	assert.Equal(t, "2", tmpl.Children[0].Attr("Columns"))

	// Row-major content: A B C D.
	texts := n.Children[1:]
	require.Len(t, texts, 4)
	assert.Equal(t, "A", texts[0].Attr("Text"))
	assert.Equal(t, "B", texts[1].Attr("Text"))
	assert.Equal(t, "C", texts[2].Attr("Text"))
	assert.Equal(t, "D", texts[3].Attr("Text"))
}

func TestRenderDockPanelUsesDocOrderAndDockTokens(t *testing.T) {
	r := NewXamlRenderer(&ConverterState{})
	top := &ControlArea{X: 0, Y: 0, W: 200, H: 20, Intent: IntentButton,
		Node: &DesignNode{Type: "rect", DocIndex: 1, Attrs: []DesignAttr{
			{Name: AttrLabel, Value: "button-north"},
			{Name: "dock", Value: "top"},
		}}}
	fill := &ControlArea{X: 0, Y: 20, W: 200, H: 80, Intent: IntentButton,
		Node: &DesignNode{Type: "rect", DocIndex: 2, Attrs: []DesignAttr{
			{Name: AttrLabel, Value: "button-center"},
		}}}
	dock := placedArea(0, 0, 200, 100, IntentDockPanel)
	dock.FrontAreas = []*ControlArea{fill, top}

	n := r.renderDock(dock, NewRenderToken())
	require.Len(t, n.Children, 2)
	assert.Equal(t, "Top", n.Children[0].Attr("DockPanel.Dock"))
	assert.False(t, n.Children[1].HasAttr("DockPanel.Dock"))
}
