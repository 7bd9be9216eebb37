package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func labeledNode(typ, label string) *DesignNode {
	return &DesignNode{Type: typ, Attrs: []DesignAttr{{Name: AttrLabel, Value: label}}}
}

func TestClassifyByLabelPrefix(t *testing.T) {
	assert.Equal(t, IntentButton, Classify(labeledNode("rect", "button-OK")))
	assert.Equal(t, IntentComboBox, Classify(labeledNode("rect", "ComboBox-units")))
	assert.Equal(t, IntentVerticalStackPanel, Classify(labeledNode("g", "VerticalStackPanel-nav")))
	assert.Equal(t, IntentMenuPanel, Classify(labeledNode("g", "menupanel-file")))
	assert.Equal(t, IntentNone, Classify(labeledNode("rect", "decoration-stripe")))
}

func TestClassifyIntentAttributeFallback(t *testing.T) {
	n := &DesignNode{Type: "rect", Attrs: []DesignAttr{{Name: AttrIntent, Value: "checkbox-agree"}}}
	assert.Equal(t, IntentCheckBox, Classify(n))

	// The dedicated label attribute wins over the generic one.
	n.Attrs = append([]DesignAttr{{Name: AttrLabel, Value: "button-go"}}, n.Attrs...)
	assert.Equal(t, IntentButton, Classify(n))
}

func TestClassifyImageFallback(t *testing.T) {
	assert.Equal(t, IntentImage, Classify(&DesignNode{Type: "image"}))
	assert.Equal(t, IntentTextBox, Classify(labeledNode("image", "textbox-search")))
}

func TestClassifyNilAndLayerSafety(t *testing.T) {
	assert.Equal(t, IntentNone, Classify(nil))
	assert.Equal(t, IntentNone, Classify(&DesignNode{Type: "rect"}))

	layer := &DesignNode{Type: "g", Attrs: []DesignAttr{
		{Name: AttrGroupMode, Value: GroupModeLayer},
		{Name: AttrLabel, Value: "button-looks-like-one"},
	}}
	assert.Equal(t, IntentNone, Classify(layer))
}

func TestClassifyIsPure(t *testing.T) {
	n := labeledNode("rect", "slider-volume")
	first := Classify(n)
	assert.Equal(t, first, Classify(n))
	assert.Equal(t, IntentSlider, first)
}

func TestReferenceOf(t *testing.T) {
	assert.Equal(t, "OK", referenceOf(labeledNode("rect", "button-OK")))
	assert.Equal(t, "file-open", referenceOf(labeledNode("g", "menupanel-file-open")))
	assert.Equal(t, "", referenceOf(labeledNode("rect", "button")))
	assert.Equal(t, "", referenceOf(nil))
}

func TestIsControlBearing(t *testing.T) {
	assert.True(t, isControlBearing(&DesignNode{Type: "text"}))
	assert.True(t, isControlBearing(&DesignNode{Type: "image"}))
	assert.True(t, isControlBearing(labeledNode("rect", "button-OK")))
	assert.False(t, isControlBearing(&DesignNode{Type: "rect"}))
	assert.False(t, isControlBearing(labeledNode("rect", "scribble-1")))
	assert.False(t, isControlBearing(nil))
}
