// renderer.go
package main

import (
	"strconv"
	"strings"
)

// --- Output Vocabulary ---

const (
	XamlNamespace  = "https://github.com/avaloniaui"
	XamlXNamespace = "http://schemas.microsoft.com/winfx/2006/xaml"
)

// DialectRenderer is the strategy injected into the shared builder/layout
// logic. One concrete implementation exists per target markup dialect.
type DialectRenderer interface {
	// FillForm renders the whole form into the dialect's root node.
	FillForm() *OutNode
	// PerformLayout mutates the control-area tree ahead of rendering:
	// geometry normalization, ordering, organizer synthesis.
	PerformLayout(area *ControlArea)
	// RenderOutputNode renders one control area; nil means the intent has no
	// direct rendering and is omitted from its parent.
	RenderOutputNode(area *ControlArea, tok *RenderToken) *OutNode
}

// xamlRenderer renders control areas into Avalonia-flavored XAML nodes.
type xamlRenderer struct {
	state *ConverterState

	// Explicit layout-requirements maps, keyed by source node. Populated
	// top-down by grid renderers before children are visited; mirrored onto
	// the source node as a hint attribute for external visibility.
	widthRequired  map[*DesignNode]bool
	heightRequired map[*DesignNode]bool
}

// NewXamlRenderer returns the XAML dialect renderer over a converter state.
func NewXamlRenderer(state *ConverterState) *xamlRenderer {
	return &xamlRenderer{
		state:          state,
		widthRequired:  make(map[*DesignNode]bool),
		heightRequired: make(map[*DesignNode]bool),
	}
}

// BuildAndRender is the core-exposed surface: build the control-area tree
// for a parsed design document, render it, and apply the style-extension
// worksheets. A document with no form layer yields nil.
func BuildAndRender(doc *Document, worksheets []*Document) *OutNode {
	state := &ConverterState{Doc: doc}
	state.buildControlAreas()
	state.StyleRules = parseWorksheets(worksheets)
	if state.Form == nil {
		return nil
	}
	renderer := NewXamlRenderer(state)
	renderer.PerformLayout(state.Form)
	root := renderer.FillForm()
	ApplyStyleExtensions(root, state.StyleRules)
	return root
}

// --- Form ---

// PerformLayout normalizes geometry and ordering; at the form root it also
// guarantees an organizer panel exists.
func (r *xamlRenderer) PerformLayout(area *ControlArea) {
	normalizeAreas(area)
	if area == r.state.Form {
		ensureOrganizer(area)
	}
}

// FillForm renders the form root into a Window carrying the organizer.
func (r *xamlRenderer) FillForm() *OutNode {
	form := r.state.Form
	if form == nil {
		return nil
	}
	win := &OutNode{Type: "Window"}
	win.SetAttr("xmlns", XamlNamespace)
	win.SetAttr("xmlns:x", XamlXNamespace)
	title := form.Reference
	if title == "" {
		title = "Form"
	}
	win.SetAttr("Title", title)
	if name := sanitizeName(form.Reference); name != "" {
		win.SetAttr("x:Name", name)
	}
	if form.W > 0 {
		win.SetAttr("Width", fmtFloat(form.W))
	}
	if form.H > 0 {
		win.SetAttr("Height", fmtFloat(form.H))
	}
	tok := NewRenderToken()
	for _, front := range form.FrontAreas {
		win.AddChild(r.RenderOutputNode(front, tok))
	}
	return win
}

// --- Dispatch ---

// RenderOutputNode renders one control area by design intent. Intents with
// no direct renderer resolve to nil and are silently omitted: menu items,
// menu panels and tab items are rendered indirectly by their owners, and an
// unknown intent is a no-op rather than an error.
func (r *xamlRenderer) RenderOutputNode(area *ControlArea, tok *RenderToken) *OutNode {
	if area == nil {
		return nil
	}
	if tok == nil {
		tok = NewRenderToken()
	}

	var n *OutNode
	switch area.Intent {
	case IntentGrid:
		n = r.renderGrid(area, tok, OrientGrid)
	case IntentHorizontalGrid:
		n = r.renderGrid(area, tok, OrientHorizontal)
	case IntentVerticalGrid:
		n = r.renderGrid(area, tok, OrientVertical)
	case IntentStackPanel:
		n = r.renderStack(area, tok, inferStackOrientation(area))
	case IntentHorizontalStackPanel:
		n = r.renderStack(area, tok, OrientHorizontal)
	case IntentVerticalStackPanel:
		n = r.renderStack(area, tok, OrientVertical)
	case IntentWrapPanel:
		n = r.renderWrap(area, tok)
	case IntentDockPanel:
		n = r.renderDock(area, tok)
	case IntentRelativePanel:
		n = r.renderRelative(area, tok)
	case IntentCanvas:
		n = r.renderCanvas(area, tok)
	case IntentBorder:
		n = r.renderContentHost(area, tok, "Border", "")
	case IntentGroupBox:
		n = r.renderContentHost(area, tok, "HeaderedContentControl", headerOf(area))
	case IntentExpander:
		n = r.renderContentHost(area, tok, "Expander", headerOf(area))
	case IntentScrollViewer:
		n = r.renderContentHost(area, tok, "ScrollViewer", "")
	case IntentTabControl:
		n = r.renderTabControl(area, tok)
	case IntentButton:
		n = r.renderContentControl(area, tok, "Button")
	case IntentCheckBox:
		n = r.renderContentControl(area, tok, "CheckBox")
	case IntentRadioButton:
		n = r.renderContentControl(area, tok, "RadioButton")
	case IntentTextBox:
		n = r.renderTextBox(area)
	case IntentComboBox:
		n = r.renderComboBox(area)
	case IntentSlider:
		n = &OutNode{Type: "Slider"}
	case IntentProgressBar:
		n = &OutNode{Type: "ProgressBar"}
	case IntentLabel, IntentText:
		n = r.renderTextBlock(area)
	case IntentImage:
		n = renderImageNode(area)
	case IntentListBox:
		n = r.renderListBox(area, tok)
	case IntentListView:
		n = r.renderItemsView(area, tok, "ListBox")
	case IntentGridView:
		n = r.renderItemsView(area, tok, "ItemsControl")
	case IntentTreeView:
		n = r.renderTreeView(area, tok)
	case IntentMenuBar:
		n = r.renderMenu(area)
	case IntentToolBar:
		n = r.renderToolBar(area, tok)
	case IntentSeparator:
		n = &OutNode{Type: "Separator"}
	default:
		// None, Form (rendered via FillForm), MenuItem/MenuPanel/TabItem
		// (rendered by their owners), StyleWorksheet, unknown: no output.
		return nil
	}
	if n == nil {
		return nil
	}
	return r.finishNode(area, n, tok)
}

// finishNode runs the universal post-steps in fixed order: common-property
// transfer, relative-anchor resolution, preemptive border wrapping. Token
// positional properties go onto the final node last, so a wrapper still
// receives the hint meant for its child.
func (r *xamlRenderer) finishNode(area *ControlArea, n *OutNode, tok *RenderToken) *OutNode {
	r.applyName(area, n)
	r.transferCommonProperties(area, n)
	if tok.Has(TokInRelative) {
		r.resolveRelativeAnchors(area, n, tok)
	}
	final := injectBorderWrapper(n)
	applyTokenProperties(final, tok)
	return final
}

// --- Composite Content ---

// splitComposite partitions an area's front areas into image parts, text
// parts, and everything else.
func splitComposite(fronts []*ControlArea) (images, texts, others []*ControlArea) {
	for _, f := range fronts {
		switch {
		case f.Intent == IntentImage || (f.Node != nil && f.Node.Type == "image"):
			images = append(images, f)
		case f.Intent == IntentText || f.Intent == IntentLabel || (f.Node != nil && f.Node.Type == "text"):
			texts = append(texts, f)
		default:
			others = append(others, f)
		}
	}
	return images, texts, others
}

// textOf extracts the caption of an area: its own text payload, else the
// joined text of its text-flavored front areas, else its reference label.
func textOf(area *ControlArea) string {
	if area == nil {
		return ""
	}
	if area.Node != nil && area.Node.Type == "text" {
		return nodeText(area.Node)
	}
	_, texts, _ := splitComposite(area.FrontAreas)
	parts := make([]string, 0, len(texts))
	for _, t := range sortedByX(texts) {
		if s := nodeText(t.Node); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	return area.Reference
}

// headerOf is the caption used for headered containers; the reference label
// wins over drawn text so "groupbox-Settings" headers as "Settings".
func headerOf(area *ControlArea) string {
	if area.Reference != "" {
		return area.Reference
	}
	return textOf(area)
}

// renderContentControl renders a composite content control (Button-family).
// The 2-bit content state {hasImages, hasText} branches four ways: empty
// control, text content, single image child, or a synthetic stack of both in
// the orientation their centers imply.
func (r *xamlRenderer) renderContentControl(area *ControlArea, tok *RenderToken, typeName string) *OutNode {
	n := &OutNode{Type: typeName}
	images, texts, _ := splitComposite(area.FrontAreas)

	switch {
	case len(images) == 0 && len(texts) == 0:
		// Simplest legal control.
	case len(images) == 0:
		n.SetAttr("Content", joinedText(texts))
	case len(texts) == 0:
		n.AddChild(renderImageNode(images[0]))
	default:
		img, txt := images[0], texts[0]
		stack := &OutNode{Type: "StackPanel"}
		orient := orientationOf(img, txt)
		if orient == OrientNone {
			orient = OrientHorizontal
		}
		stack.SetAttr("Orientation", orient.String())
		first, second := img, txt
		if orient == OrientHorizontal {
			if txt.X < img.X {
				first, second = txt, img
			}
		} else if txt.Y < img.Y {
			first, second = txt, img
		}
		stack.AddChild(r.renderCompositePart(first))
		stack.AddChild(r.renderCompositePart(second))
		n.AddChild(stack)
	}
	return n
}

func (r *xamlRenderer) renderCompositePart(part *ControlArea) *OutNode {
	if part.Intent == IntentImage || (part.Node != nil && part.Node.Type == "image") {
		return renderImageNode(part)
	}
	tb := &OutNode{Type: "TextBlock"}
	tb.SetAttr("Text", nodeText(part.Node))
	return tb
}

func joinedText(texts []*ControlArea) string {
	parts := make([]string, 0, len(texts))
	for _, t := range sortedByX(texts) {
		if s := nodeText(t.Node); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// renderImageNode renders an image reference with its drawn dimensions.
func renderImageNode(area *ControlArea) *OutNode {
	n := &OutNode{Type: "Image"}
	if area.Node != nil {
		src := area.Node.Attr("xlink:href")
		if src == "" {
			src = area.Node.Attr("href")
		}
		if src != "" {
			n.SetAttr("Source", src)
		}
	}
	if area.W > 0 {
		n.SetAttr("Width", fmtFloat(area.W))
	}
	if area.H > 0 {
		n.SetAttr("Height", fmtFloat(area.H))
	}
	return n
}

// --- Text Controls ---

func (r *xamlRenderer) renderTextBlock(area *ControlArea) *OutNode {
	n := &OutNode{Type: "TextBlock"}
	if text := textOf(area); text != "" {
		n.SetAttr("Text", text)
	}
	return n
}

func (r *xamlRenderer) renderTextBox(area *ControlArea) *OutNode {
	n := &OutNode{Type: "TextBox"}
	if text := textOf(area); text != "" && text != area.Reference {
		// Drawn placeholder text becomes the initial value.
		n.SetAttr("Text", text)
	}
	return n
}

func (r *xamlRenderer) renderComboBox(area *ControlArea) *OutNode {
	n := &OutNode{Type: "ComboBox"}
	_, texts, _ := splitComposite(area.FrontAreas)
	for _, t := range sortedByY(texts) {
		item := &OutNode{Type: "ComboBoxItem"}
		item.SetAttr("Content", nodeText(t.Node))
		n.AddChild(item)
	}
	return n
}

// --- Item Controls ---

func (r *xamlRenderer) renderListBox(area *ControlArea, tok *RenderToken) *OutNode {
	n := &OutNode{Type: "ListBox"}
	childTok := tok.Descend()
	for _, front := range sortedByY(area.FrontAreas) {
		if front.Intent == IntentListBoxItem {
			item := &OutNode{Type: "ListBoxItem"}
			if text := textOf(front); text != "" {
				item.SetAttr("Content", text)
			}
			n.AddChild(item)
			continue
		}
		if front.Node != nil && front.Node.Type == "text" && front.Intent == IntentNone {
			item := &OutNode{Type: "ListBoxItem"}
			item.SetAttr("Content", nodeText(front.Node))
			n.AddChild(item)
			continue
		}
		if rendered := r.RenderOutputNode(front, childTok); rendered != nil {
			item := &OutNode{Type: "ListBoxItem"}
			item.AddChild(rendered)
			n.AddChild(item)
		}
	}
	return n
}

// renderItemsView renders the grid-flavored item views: an items host whose
// panel is a uniform grid with the column count taken from the reference
// tree over the children.
func (r *xamlRenderer) renderItemsView(area *ControlArea, tok *RenderToken, typeName string) *OutNode {
	n := &OutNode{Type: typeName}
	fronts := area.FrontAreas
	if len(fronts) == 0 {
		return n
	}
	refTree := createReferenceTree(fronts)
	columns := len(refTree.Children)
	if columns > 1 {
		host := &OutNode{Type: typeName + ".ItemsPanel"}
		tmpl := &OutNode{Type: "ItemsPanelTemplate"}
		grid := &OutNode{Type: "UniformGrid"}
		grid.SetAttr("Columns", strconv.Itoa(columns))
		tmpl.AddChild(grid)
		host.AddChild(tmpl)
		n.AddChild(host)
	}
	childTok := tok.Descend()
	for _, row := range partitionRows(fronts) {
		for _, cell := range sortedByX(row) {
			if cell.Node != nil && cell.Node.Type == "text" && cell.Intent == IntentNone {
				tb := &OutNode{Type: "TextBlock"}
				tb.SetAttr("Text", nodeText(cell.Node))
				n.AddChild(tb)
				continue
			}
			n.AddChild(r.RenderOutputNode(cell, childTok))
		}
	}
	return n
}

// --- Tree View ---

func (r *xamlRenderer) renderTreeView(area *ControlArea, tok *RenderToken) *OutNode {
	n := &OutNode{Type: "TreeView"}
	childTok := tok.Descend()
	for _, front := range sortedByY(area.FrontAreas) {
		n.AddChild(r.renderTreeItem(front, childTok, 0))
	}
	return n
}

// renderTreeItem renders one tree node. The header follows the same 2-bit
// composite rule as buttons; nested items come from the area's own fronts.
func (r *xamlRenderer) renderTreeItem(area *ControlArea, tok *RenderToken, depth int) *OutNode {
	if depth > MaxMenuDepth {
		return nil
	}
	n := &OutNode{Type: "TreeViewItem"}
	images, texts, others := splitComposite(area.FrontAreas)

	switch {
	case len(images) == 0 && len(texts) == 0:
		if text := textOf(area); text != "" {
			n.SetAttr("Header", text)
		}
	case len(images) == 0:
		n.SetAttr("Header", joinedText(texts))
	case len(texts) == 0:
		header := &OutNode{Type: "TreeViewItem.Header"}
		header.AddChild(renderImageNode(images[0]))
		n.AddChild(header)
	default:
		img, txt := images[0], texts[0]
		stack := &OutNode{Type: "StackPanel"}
		orient := orientationOf(img, txt)
		if orient == OrientNone {
			orient = OrientHorizontal
		}
		stack.SetAttr("Orientation", orient.String())
		first, second := img, txt
		if orient == OrientHorizontal && txt.X < img.X {
			first, second = txt, img
		} else if orient == OrientVertical && txt.Y < img.Y {
			first, second = txt, img
		}
		stack.AddChild(r.renderCompositePart(first))
		stack.AddChild(r.renderCompositePart(second))
		header := &OutNode{Type: "TreeViewItem.Header"}
		header.AddChild(stack)
		n.AddChild(header)
	}

	for _, child := range sortedByY(others) {
		if child.Intent == IntentTreeViewItem {
			n.AddChild(r.renderTreeItem(child, tok, depth+1))
		}
	}
	return n
}

// --- Menus ---

// renderMenu renders a menu bar. Menu items are ordered left to right; each
// item's submenu comes from the menu panel its reference names, resolved
// through the cross-reference index with a depth cap against cycles.
func (r *xamlRenderer) renderMenu(area *ControlArea) *OutNode {
	n := &OutNode{Type: "Menu"}
	for _, front := range sortedByX(area.FrontAreas) {
		if front.Intent != IntentMenuItem {
			continue
		}
		n.AddChild(r.renderMenuItem(front, 0))
	}
	return n
}

func (r *xamlRenderer) renderMenuItem(item *ControlArea, depth int) *OutNode {
	if depth > MaxMenuDepth {
		return nil
	}
	n := &OutNode{Type: "MenuItem"}
	if header := textOf(item); header != "" {
		n.SetAttr("Header", header)
	}
	if panel := r.state.menuPanelFor(item); panel != nil {
		for _, sub := range sortedByY(panel.FrontAreas) {
			switch sub.Intent {
			case IntentMenuItem:
				n.AddChild(r.renderMenuItem(sub, depth+1))
			case IntentSeparator:
				n.AddChild(&OutNode{Type: "Separator"})
			}
		}
	}
	return n
}

// --- Tool Bars ---

// renderToolBar renders toolbar children in authorial document order, with
// every drawn separator emitted in place.
func (r *xamlRenderer) renderToolBar(area *ControlArea, tok *RenderToken) *OutNode {
	n := &OutNode{Type: "ToolBar"}
	childTok := tok.Descend()
	for _, front := range sortedByDocIndex(area.FrontAreas) {
		if front.Intent == IntentSeparator {
			n.AddChild(&OutNode{Type: "Separator"})
			continue
		}
		n.AddChild(r.RenderOutputNode(front, childTok))
	}
	return n
}

// --- Tab Controls ---

func (r *xamlRenderer) renderTabControl(area *ControlArea, tok *RenderToken) *OutNode {
	n := &OutNode{Type: "TabControl"}
	childTok := tok.Descend()
	for _, front := range sortedByX(area.FrontAreas) {
		if front.Intent != IntentTabItem {
			continue
		}
		tab := &OutNode{Type: "TabItem"}
		if header := headerOf(front); header != "" {
			tab.SetAttr("Header", header)
		}
		_, _, content := splitComposite(front.FrontAreas)
		switch len(content) {
		case 0:
		case 1:
			tab.AddChild(r.RenderOutputNode(content[0], childTok))
		default:
			stack := &OutNode{Type: "StackPanel"}
			stack.SetAttr("Orientation", "Vertical")
			for _, c := range sortedByY(content) {
				stack.AddChild(r.RenderOutputNode(c, childTok))
			}
			tab.AddChild(stack)
		}
		n.AddChild(tab)
	}
	return n
}
