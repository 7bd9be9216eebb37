// types.go
package main

// --- Tool Attribute Names ---
// The classifier reads the Inkscape layer/label attribute pair; a generic
// "intent" attribute is the editor-neutral fallback.
const (
	AttrLabel     = "inkscape:label"
	AttrGroupMode = "inkscape:groupmode"
	AttrIntent    = "intent"
	AttrID        = "id"

	GroupModeLayer  = "layer"
	FormLabelPrefix = "form"
)

// --- Inference Constants ---
// The overlap threshold and clustering tolerances are tuned against real
// vector-editor output. Do not round them; nesting results on imprecise
// drawings depend on the exact values.
const (
	OverlapNestThreshold       float32 = 0.8
	HorizontalClusterTolerance float32 = 5.0
	VerticalClusterTolerance   float32 = 5.0
)

// --- Text Metrics ---
// Crude glyph metrics for text nodes; the output is reviewed by a human, so
// an estimate within a glyph or two is good enough for containment tests.
const (
	DefaultFontSize float32 = 16
	TextWidthFactor float32 = 0.6
	TextLineFactor  float32 = 1.2
)

// --- Compiler Limits ---
const (
	MaxUseDepth       = 16  // Max nesting of <use> reference expansion
	MaxExtensionDepth = 16  // Max chained extension-layer folding
	MaxMenuDepth      = 16  // Max nested menu-panel resolution
	MaxNameLength     = 128 // Max generated x:Name identifier length
)

// --- Layout Requirement Hints ---
// Written back onto source design nodes by grid-type renderers before their
// children are visited, so a child renderer can see that an "Auto" dimension
// needs an explicit size from its own geometry.
const (
	HintWidthRequired  = "widthRequired"
	HintHeightRequired = "heightRequired"
)

// Intent is the inferred semantic control role of a drawn shape.
type Intent int

const (
	IntentNone Intent = iota
	IntentForm
	IntentGrid
	IntentHorizontalGrid
	IntentVerticalGrid
	IntentStackPanel
	IntentHorizontalStackPanel
	IntentVerticalStackPanel
	IntentWrapPanel
	IntentDockPanel
	IntentRelativePanel
	IntentCanvas
	IntentBorder
	IntentGroupBox
	IntentExpander
	IntentScrollViewer
	IntentTabControl
	IntentTabItem
	IntentButton
	IntentCheckBox
	IntentRadioButton
	IntentTextBox
	IntentComboBox
	IntentSlider
	IntentProgressBar
	IntentLabel
	IntentText
	IntentImage
	IntentListBox
	IntentListBoxItem
	IntentListView
	IntentGridView
	IntentTreeView
	IntentTreeViewItem
	IntentMenuBar
	IntentMenuItem
	IntentMenuPanel
	IntentToolBar
	IntentSeparator
	IntentStyleWorksheet
)

// intentNames maps lower-cased label prefixes to intents. Membership in this
// map is also what makes a labeled node "control-bearing" for the builder.
var intentNames = map[string]Intent{
	"form":                 IntentForm,
	"grid":                 IntentGrid,
	"horizontalgrid":       IntentHorizontalGrid,
	"verticalgrid":         IntentVerticalGrid,
	"stackpanel":           IntentStackPanel,
	"horizontalstackpanel": IntentHorizontalStackPanel,
	"verticalstackpanel":   IntentVerticalStackPanel,
	"wrappanel":            IntentWrapPanel,
	"dockpanel":            IntentDockPanel,
	"relativepanel":        IntentRelativePanel,
	"canvas":               IntentCanvas,
	"border":               IntentBorder,
	"groupbox":             IntentGroupBox,
	"expander":             IntentExpander,
	"scrollviewer":         IntentScrollViewer,
	"tabcontrol":           IntentTabControl,
	"tabitem":              IntentTabItem,
	"button":               IntentButton,
	"checkbox":             IntentCheckBox,
	"radiobutton":          IntentRadioButton,
	"textbox":              IntentTextBox,
	"combobox":             IntentComboBox,
	"slider":               IntentSlider,
	"progressbar":          IntentProgressBar,
	"label":                IntentLabel,
	"text":                 IntentText,
	"image":                IntentImage,
	"listbox":              IntentListBox,
	"listboxitem":          IntentListBoxItem,
	"listview":             IntentListView,
	"gridview":             IntentGridView,
	"treeview":             IntentTreeView,
	"treeviewitem":         IntentTreeViewItem,
	"menubar":              IntentMenuBar,
	"menuitem":             IntentMenuItem,
	"menupanel":            IntentMenuPanel,
	"toolbar":              IntentToolBar,
	"separator":            IntentSeparator,
	"styleworksheet":       IntentStyleWorksheet,
}

// intentLabels is the reverse mapping, used for logging and control dumps.
var intentLabels = map[Intent]string{}

func init() {
	for name, intent := range intentNames {
		if _, exists := intentLabels[intent]; !exists {
			intentLabels[intent] = name
		}
	}
	// Prefer canonical capitalized names for the common ones in log output.
	intentLabels[IntentNone] = "none"
	intentLabels[IntentForm] = "form"
}

func (it Intent) String() string {
	if s, ok := intentLabels[it]; ok {
		return s
	}
	return "none"
}

// IsPanel reports whether the intent is a layout container able to act as a
// form organizer.
func (it Intent) IsPanel() bool {
	switch it {
	case IntentGrid, IntentHorizontalGrid, IntentVerticalGrid,
		IntentStackPanel, IntentHorizontalStackPanel, IntentVerticalStackPanel,
		IntentWrapPanel, IntentDockPanel, IntentRelativePanel, IntentCanvas:
		return true
	}
	return false
}

// --- Design Document Model ---

// DesignAttr is one name/value attribute on a design node, order-preserving.
type DesignAttr struct {
	Name  string
	Value string
}

// DesignNode is a generic element of the parsed design document: a type name,
// ordered attributes, children, optional text payload, and a stable absolute
// document-order index. Owned by the parsing layer; the core only writes back
// derived layout-requirement hints.
type DesignNode struct {
	Type     string
	Attrs    []DesignAttr
	Children []*DesignNode
	Parent   *DesignNode // non-owning, upward lookups only
	Text     string
	DocIndex int
}

// Document is a parsed design drawing plus its canvas dimensions.
type Document struct {
	Root   *DesignNode
	Width  float32
	Height float32

	nodeCount int
	byID      map[string]*DesignNode
}

// --- Control Areas ---

// ControlArea is one rectangle of interest in the design along with its
// semantic role. FrontAreas are areas judged to be layered in front of this
// one by geometric placement; this is the structural tree used by layout
// inference and rendering, not the document child list.
type ControlArea struct {
	X, Y, W, H float32
	Intent     Intent
	Node       *DesignNode // non-owning reference to the source node
	Reference  string      // free-form label after the intent prefix
	Props      map[string]string
	FrontAreas []*ControlArea
}

// Area returns the geometric rectangle of the control area.
func (ca *ControlArea) Area() Area {
	return Area{ca.X, ca.Y, ca.W, ca.H}
}

// SetArea stores the rectangle back onto the control area.
func (ca *ControlArea) SetArea(a Area) {
	ca.X, ca.Y, ca.W, ca.H = a.X, a.Y, a.W, a.H
}

// Prop reads an ad-hoc renderer-to-renderer property; missing keys are "".
func (ca *ControlArea) Prop(key string) string {
	if ca.Props == nil {
		return ""
	}
	return ca.Props[key]
}

// SetProp stores an ad-hoc renderer-to-renderer property.
func (ca *ControlArea) SetProp(key, value string) {
	if ca.Props == nil {
		ca.Props = make(map[string]string, 4)
	}
	ca.Props[key] = value
}

// ID returns the source node id, or "" for synthetic areas.
func (ca *ControlArea) ID() string {
	if ca.Node == nil {
		return ""
	}
	return ca.Node.Attr(AttrID)
}

// --- Row/Column Reference Tree ---

// ControlReference groups a flat list of control areas into columns and rows
// by spatial banding. Built transiently per rendering call.
type ControlReference struct {
	Area     *ControlArea
	Children []*ControlReference
}

// Orientation describes the inferred arrangement of a set of sibling areas.
type Orientation int

const (
	OrientNone Orientation = iota
	OrientHorizontal
	OrientVertical
	OrientGrid
)

func (o Orientation) String() string {
	switch o {
	case OrientHorizontal:
		return "Horizontal"
	case OrientVertical:
		return "Vertical"
	case OrientGrid:
		return "Grid"
	}
	return "None"
}

// --- Render Tokens ---

// Token keys carried through rendering recursion. Positional keys are
// stripped when descending a level: a grid cell index assigned by a parent
// grid does not apply two levels down.
const (
	TokGridColumn = "grid.column"
	TokGridRow    = "grid.row"
	TokDock       = "dock"
	TokCanvasLeft = "canvas.left"
	TokCanvasTop  = "canvas.top"
	TokInRelative = "relative.inside"
	TokRelOriginX = "relative.originX"
	TokRelOriginY = "relative.originY"
)

// positionalTokenKeys are removed automatically when a renderer descends into
// its children's level.
var positionalTokenKeys = []string{
	TokGridColumn, TokGridRow, TokDock, TokCanvasLeft, TokCanvasTop,
	TokInRelative, TokRelOriginX, TokRelOriginY,
}

// RenderToken is an immutable, level-scoped property bag threaded top-down
// through rendering recursion. Each level is an overlay over its parent:
// With layers a value, Descend starts a child level with the given keys
// removed. Lookup walks the overlay chain, honoring removals.
type RenderToken struct {
	parent  *RenderToken
	values  map[string]string
	removed map[string]struct{}
}

// NewRenderToken returns an empty root token.
func NewRenderToken() *RenderToken {
	return &RenderToken{}
}

// Get resolves a key against this level and its ancestors.
func (t *RenderToken) Get(key string) (string, bool) {
	for cur := t; cur != nil; cur = cur.parent {
		if cur.values != nil {
			if v, ok := cur.values[key]; ok {
				return v, true
			}
		}
		if cur.removed != nil {
			if _, gone := cur.removed[key]; gone {
				return "", false
			}
		}
	}
	return "", false
}

// Has reports whether the key resolves at this level.
func (t *RenderToken) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// With returns a new token layering one value over this one.
func (t *RenderToken) With(key, value string) *RenderToken {
	return &RenderToken{parent: t, values: map[string]string{key: value}}
}

// Descend returns a child-level token with the positional keys plus any
// extra keys stripped.
func (t *RenderToken) Descend(strip ...string) *RenderToken {
	removed := make(map[string]struct{}, len(positionalTokenKeys)+len(strip))
	for _, k := range positionalTokenKeys {
		removed[k] = struct{}{}
	}
	for _, k := range strip {
		removed[k] = struct{}{}
	}
	return &RenderToken{parent: t, removed: removed}
}

// --- Output Markup Model ---

// OutNode is a rendered target-markup element: type name, ordered attributes,
// children, optional text content. Isomorphic in shape to DesignNode but in
// the output vocabulary; owned by the caller once returned.
type OutNode struct {
	Type     string
	Attrs    []DesignAttr
	Children []*OutNode
	Text     string
}

// Attr returns the value of the named attribute (exact match), or "".
func (n *OutNode) Attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present.
func (n *OutNode) HasAttr(name string) bool {
	for _, a := range n.Attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// SetAttr sets or replaces the named attribute, preserving insertion order.
func (n *OutNode) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, DesignAttr{Name: name, Value: value})
}

// AddChild appends a child node; nil children are ignored so renderers can
// pass through unrenderable results without guarding every call site.
func (n *OutNode) AddChild(child *OutNode) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
}

// --- Converter State ---

// ConverterState holds the entire state of one conversion: the parsed
// document, the inferred control-area tree, cross-reference indexes and the
// loaded style-extension worksheets.
type ConverterState struct {
	Doc  *Document
	Form *ControlArea // root control area; nil when no form layer was found

	AreasByID  map[string]*ControlArea // id -> area, for anchor/extension lookups
	MenuPanels map[string]*ControlArea // reference label -> menu-panel area

	StyleRules []*StyleRule
}
