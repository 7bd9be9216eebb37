package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloatDef(t *testing.T) {
	assert.InDelta(t, 12, parseFloatDef("12", -1), 0.001)
	assert.InDelta(t, 12, parseFloatDef("12px", -1), 0.001)
	assert.InDelta(t, 16, parseFloatDef("12pt", -1), 0.001)
	assert.InDelta(t, 37.795, parseFloatDef("10mm", -1), 0.01)
	assert.InDelta(t, 96, parseFloatDef("1in", -1), 0.001)
	assert.InDelta(t, -1, parseFloatDef("", -1), 0.001)
	assert.InDelta(t, -1, parseFloatDef("wide", -1), 0.001)
	assert.InDelta(t, 3.5, parseFloatDef("  3.5  ", -1), 0.001)
}

func TestParseIntDef(t *testing.T) {
	assert.Equal(t, 7, parseIntDef("7", -1))
	assert.Equal(t, 7, parseIntDef("7.9", -1))
	assert.Equal(t, -1, parseIntDef("", -1))
	assert.Equal(t, -1, parseIntDef("x", -1))
}

func TestFmtFloat(t *testing.T) {
	assert.Equal(t, "12", fmtFloat(12))
	assert.Equal(t, "12.5", fmtFloat(12.5))
	assert.Equal(t, "0", fmtFloat(0))
	assert.Equal(t, "-3.25", fmtFloat(-3.25))
}

func TestLabelHelpers(t *testing.T) {
	assert.True(t, hasPrefixFold("Form-Main", "form"))
	assert.False(t, hasPrefixFold("fo", "form"))
	assert.Equal(t, "button", beforeDelim("button-OK", '-'))
	assert.Equal(t, "button", beforeDelim("button", '-'))
	assert.Equal(t, "OK-now", afterDelim("button-OK-now", '-'))
	assert.Equal(t, "", afterDelim("button", '-'))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "btn1", sanitizeName("btn1"))
	assert.Equal(t, "open_file", sanitizeName("open file"))
	assert.Equal(t, "a_b_c", sanitizeName("a-b.c"))
	assert.Equal(t, "_1st", sanitizeName("1st"))
	assert.Equal(t, "", sanitizeName("!!!"))
	assert.Equal(t, "", sanitizeName(""))
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "plain", escapeXML("plain"))
	assert.Equal(t, "a &amp; b &lt;c&gt; &quot;d&quot;", escapeXML(`a & b <c> "d"`))
}
