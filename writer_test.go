package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteXamlFormatting(t *testing.T) {
	root := &OutNode{Type: "Window"}
	root.SetAttr("Title", `T&T "quoted"`)
	btn := &OutNode{Type: "Button"}
	btn.SetAttr("x:Name", "btn1")
	root.AddChild(btn)
	root.AddChild(&OutNode{Type: "TextBlock", Text: "a < b"})

	var out bytes.Buffer
	require.NoError(t, WriteXaml(&out, root))
	assert.Equal(t, `<Window Title="T&amp;T &quot;quoted&quot;">
  <Button x:Name="btn1" />
  <TextBlock>a &lt; b</TextBlock>
</Window>
`, out.String())
}

func TestWriteXamlNesting(t *testing.T) {
	root := &OutNode{Type: "Grid"}
	stack := &OutNode{Type: "StackPanel"}
	stack.AddChild(&OutNode{Type: "Button"})
	root.AddChild(stack)

	var out bytes.Buffer
	require.NoError(t, WriteXaml(&out, root))
	assert.Equal(t, `<Grid>
  <StackPanel>
    <Button />
  </StackPanel>
</Grid>
`, out.String())
}

func TestWriteXamlNilRoot(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, WriteXaml(&out, nil))
	assert.Error(t, WriteXamlFile(nil, filepath.Join(t.TempDir(), "x.axaml")))
}

func TestWriteXamlFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.axaml")
	root := &OutNode{Type: "Window"}
	require.NoError(t, WriteXamlFile(root, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<Window />\n", string(data))
}
