// style_resolver.go
package main

import (
	"log"
	"strings"

	"github.com/jinzhu/copier"
)

// --- Style-Extension Worksheets ---
// A worksheet is an XML document of selector rules applied over the rendered
// tree: match by output type name, by assigned identifier, or by structural
// path, then inject templates, children, attributes or style blocks. The
// worksheet is how a developer keeps framework styling out of the drawing.

// SettingKind identifies what a worksheet setting does to a matched node.
type SettingKind int

const (
	SettingAttributes SettingKind = iota // set plain attributes
	SettingSetters                       // append a Style block with Setter children
	SettingStyle                         // append a nested Style block verbatim
	SettingChildren                      // append raw child nodes
	SettingItemsPanel                    // inject an items-panel template
)

// StyleSetting is one action of a rule. Payload holds the setting's content
// pre-converted to an output subtree; every application clones it, so the
// same rule matching many nodes hands each one its own copy.
type StyleSetting struct {
	Kind    SettingKind
	Payload *OutNode
}

// StyleRule matches rendered nodes and applies its settings once per node.
// The visited set lives on the rule, so re-running the post-processor over
// the same tree never duplicates appended content.
type StyleRule struct {
	MatchType string // output type name, e.g. "Button"
	MatchName string // assigned x:Name identifier
	MatchPath string // slash-separated structural path from the root

	Settings []StyleSetting

	visited map[*OutNode]struct{}
}

// parseWorksheets extracts rules from parsed worksheet documents, in order.
// Documents without a worksheet root contribute nothing.
func parseWorksheets(docs []*Document) []*StyleRule {
	var rules []*StyleRule
	for _, doc := range docs {
		if doc == nil || doc.Root == nil {
			continue
		}
		if !strings.EqualFold(doc.Root.Type, "StyleWorksheet") {
			log.Printf("Warning: worksheet root is <%s>, expected <StyleWorksheet>; skipped", doc.Root.Type)
			continue
		}
		for _, el := range doc.Root.Children {
			if !strings.EqualFold(el.Type, "Rule") {
				continue
			}
			rule := &StyleRule{
				MatchType: strings.TrimSpace(el.Attr("Match")),
				MatchName: strings.TrimSpace(el.Attr("Name")),
				MatchPath: strings.TrimSpace(el.Attr("Path")),
				visited:   make(map[*OutNode]struct{}),
			}
			if rule.MatchType == "" && rule.MatchName == "" && rule.MatchPath == "" {
				log.Printf("Warning: worksheet rule with no Match/Name/Path selector, ignored")
				continue
			}
			for _, setting := range el.Children {
				kind, ok := settingKindOf(setting.Type)
				if !ok {
					log.Printf("Warning: unknown worksheet setting <%s>, ignored", setting.Type)
					continue
				}
				rule.Settings = append(rule.Settings, StyleSetting{kind, designToOutNode(setting)})
			}
			rules = append(rules, rule)
		}
	}
	return rules
}

func settingKindOf(name string) (SettingKind, bool) {
	switch strings.ToLower(name) {
	case "attributes":
		return SettingAttributes, true
	case "setters":
		return SettingSetters, true
	case "style":
		return SettingStyle, true
	case "children":
		return SettingChildren, true
	case "itemspanel":
		return SettingItemsPanel, true
	}
	return 0, false
}

// ApplyStyleExtensions walks the rendered tree, applying every matching rule
// to every node, then recurses into freshly appended children so extensions
// can cascade. Each rule applies at most once per node.
func ApplyStyleExtensions(root *OutNode, rules []*StyleRule) {
	if root == nil || len(rules) == 0 {
		return
	}
	applyExtensions(root, rules, []string{root.Type})
}

func applyExtensions(n *OutNode, rules []*StyleRule, path []string) {
	for _, rule := range rules {
		if !rule.matches(n, path) {
			continue
		}
		if _, done := rule.visited[n]; done {
			continue
		}
		rule.visited[n] = struct{}{}
		rule.apply(n)
	}
	// Index loop on purpose: children appended above (and by nested rules)
	// are visited in the same pass.
	for i := 0; i < len(n.Children); i++ {
		child := n.Children[i]
		applyExtensions(child, rules, append(path, child.Type))
	}
}

// matches tests a rule's selector against one node and its structural path.
func (rule *StyleRule) matches(n *OutNode, path []string) bool {
	if rule.MatchType != "" && !strings.EqualFold(rule.MatchType, n.Type) {
		return false
	}
	if rule.MatchName != "" && rule.MatchName != n.Attr("x:Name") {
		return false
	}
	if rule.MatchPath != "" && !strings.EqualFold(rule.MatchPath, strings.Join(path, "/")) {
		return false
	}
	return true
}

// apply performs the rule's settings on a matched node.
func (rule *StyleRule) apply(n *OutNode) {
	for _, setting := range rule.Settings {
		payload := cloneOutNode(setting.Payload)
		switch setting.Kind {
		case SettingAttributes:
			for _, a := range payload.Attrs {
				n.SetAttr(a.Name, a.Value)
			}
		case SettingSetters:
			style := &OutNode{Type: "Style"}
			selector := payload.Attr("Selector")
			if selector == "" {
				selector = n.Type
			}
			style.SetAttr("Selector", selector)
			style.Children = payload.Children
			styles := &OutNode{Type: n.Type + ".Styles"}
			styles.AddChild(style)
			n.AddChild(styles)
		case SettingStyle:
			payload.Type = "Style"
			n.AddChild(payload)
		case SettingChildren:
			for _, child := range payload.Children {
				n.AddChild(child)
			}
		case SettingItemsPanel:
			host := &OutNode{Type: n.Type + ".ItemsPanel"}
			tmpl := &OutNode{Type: "ItemsPanelTemplate"}
			tmpl.Children = payload.Children
			host.AddChild(tmpl)
			n.AddChild(host)
		}
	}
}

// designToOutNode converts a worksheet subtree into an output subtree.
func designToOutNode(n *DesignNode) *OutNode {
	out := &OutNode{Type: n.Type, Text: n.Text}
	out.Attrs = make([]DesignAttr, len(n.Attrs))
	copy(out.Attrs, n.Attrs)
	for _, child := range n.Children {
		out.AddChild(designToOutNode(child))
	}
	return out
}

// cloneOutNode deep-copies a rendered subtree.
func cloneOutNode(n *OutNode) *OutNode {
	var out OutNode
	if err := copier.CopyWithOption(&out, n, copier.Option{DeepCopy: true}); err != nil {
		// Copy failures should not abort post-processing; fall back to a
		// manual clone.
		out = OutNode{Type: n.Type, Text: n.Text}
		out.Attrs = append([]DesignAttr(nil), n.Attrs...)
		for _, child := range n.Children {
			out.Children = append(out.Children, cloneOutNode(child))
		}
	}
	return &out
}
