package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginDrawing = `<svg ` + inkscapeNS + ` width="200" height="150">
	<g inkscape:groupmode="layer" inkscape:label="form-Login">
		<rect id="btn1" inkscape:label="button-OK" x="10" y="10" width="80" height="30"/>
	</g>
</svg>`

func TestConvertFileEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "login.svg")
	output := filepath.Join(dir, "login.axaml")
	worksheet := filepath.Join(dir, "base.xml")
	require.NoError(t, os.WriteFile(input, []byte(loginDrawing), 0o644))
	require.NoError(t, os.WriteFile(worksheet, []byte(worksheetMarkup), 0o644))

	require.NoError(t, convertFile(input, output, []string{worksheet}))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `<Window xmlns="`+XamlNamespace+`"`)
	assert.Contains(t, out, `Title="Login"`)
	assert.Contains(t, out, `x:Name="btn1"`)
	// The worksheet's Button rule fired, so the button is no longer
	// self-closing and carries a Style block.
	assert.Contains(t, out, "<Button.Styles>")
	assert.Contains(t, out, `<Setter Property="Background" Value="Red" />`)
}

func TestConvertFileNoFormLayer(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "empty.svg")
	require.NoError(t, os.WriteFile(input, []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`), 0o644))

	err := convertFile(input, filepath.Join(dir, "empty.axaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no form layer")
}

func TestConvertFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := convertFile(filepath.Join(dir, "nope.svg"), filepath.Join(dir, "out.axaml"), nil)
	assert.Error(t, err)
}

func TestConvertFileBadWorksheet(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "login.svg")
	require.NoError(t, os.WriteFile(input, []byte(loginDrawing), 0o644))

	err := convertFile(input, filepath.Join(dir, "out.axaml"), []string{filepath.Join(dir, "missing.xml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "worksheet")
}
