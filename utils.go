// utils.go
package main

import (
	"strconv"
	"strings"
	"unicode"
)

// --- Tolerant Numeric Parsing ---
// Malformed geometry or missing attributes degrade to a default value, never
// an error: the core's contract is best-effort inference over imperfect
// drawings.

// parseFloatDef parses a float attribute value, stripping a trailing unit
// suffix if present. Missing or garbled input yields def.
func parseFloatDef(s string, def float32) float32 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	value, scale := splitUnitValue(s)
	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return def
	}
	return float32(f) * scale
}

// parseIntDef parses an int attribute value; garbled input yields def.
func parseIntDef(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return def
		}
		return int(f)
	}
	return i
}

// splitUnitValue splits a numeric-with-unit string ("12px", "10mm") into the
// numeric part and a pixel scale factor for the unit. Unknown units scale 1.
func splitUnitValue(s string) (value string, scale float32) {
	scale = 1
	cut := len(s)
	for cut > 0 {
		r := rune(s[cut-1])
		if unicode.IsDigit(r) || r == '.' {
			break
		}
		cut--
	}
	unit := strings.ToLower(strings.TrimSpace(s[cut:]))
	value = strings.TrimSpace(s[:cut])
	switch unit {
	case "", "px":
	case "pt":
		scale = 96.0 / 72.0
	case "pc":
		scale = 16
	case "mm":
		scale = 96.0 / 25.4
	case "cm":
		scale = 96.0 / 2.54
	case "in":
		scale = 96
	case "%":
		// Percentages are resolved against the canvas by callers that care;
		// treated as plain numbers here.
	}
	return value, scale
}

// fmtFloat formats a float attribute value without trailing zeros.
func fmtFloat(f float32) string {
	s := strconv.FormatFloat(float64(f), 'f', 2, 32)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// --- Label Helpers ---

// hasPrefixFold reports whether s starts with prefix, case-insensitively.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// beforeDelim returns everything before the first occurrence of delim, or the
// whole string when delim is absent.
func beforeDelim(s string, delim byte) string {
	if i := strings.IndexByte(s, delim); i >= 0 {
		return s[:i]
	}
	return s
}

// afterDelim returns everything after the first occurrence of delim, or ""
// when delim is absent.
func afterDelim(s string, delim byte) string {
	if i := strings.IndexByte(s, delim); i >= 0 {
		return s[i+1:]
	}
	return ""
}

// --- Identifier Sanitizing ---

// sanitizeName reduces a free-form label to a legal markup identifier:
// letters, digits and underscores, starting with a letter or underscore.
// An empty result stays empty; callers skip naming in that case.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if b.Len() == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		case r == '-' || r == ' ' || r == '.':
			b.WriteRune('_')
		}
		if b.Len() >= MaxNameLength {
			break
		}
	}
	return b.String()
}

// --- XML Escaping ---

// escapeXML escapes markup-significant characters for attribute and text
// content.
func escapeXML(s string) string {
	if !strings.ContainsAny(s, "&<>\"'") {
		return s
	}
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
