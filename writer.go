// writer.go
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// --- Pass 4: Write XAML File ---

const xamlIndent = "  "

// WriteXamlFile serializes the rendered tree to the output path. On error the
// partial file is the caller's problem to remove; the converter's entry point
// does exactly that.
func WriteXamlFile(root *OutNode, filePath string) error {
	log.Printf("Pass 4: Writing XAML to '%s'...", filePath)
	if root == nil {
		return fmt.Errorf("no rendered form to write")
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create output file '%s': %w", filePath, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := writeXamlNode(writer, root, 0); err != nil {
		return fmt.Errorf("write '%s': %w", filePath, err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush '%s': %w", filePath, err)
	}
	return nil
}

// WriteXaml serializes the rendered tree to an arbitrary writer.
func WriteXaml(w io.Writer, root *OutNode) error {
	if root == nil {
		return fmt.Errorf("no rendered form to write")
	}
	bw := bufio.NewWriter(w)
	if err := writeXamlNode(bw, root, 0); err != nil {
		return err
	}
	return bw.Flush()
}

// writeXamlNode emits one element and its subtree. Elements without children
// or text self-close; text-only elements close on the same line.
func writeXamlNode(w *bufio.Writer, n *OutNode, depth int) error {
	if n == nil {
		return nil
	}
	indent := strings.Repeat(xamlIndent, depth)
	if _, err := fmt.Fprintf(w, "%s<%s", indent, n.Type); err != nil {
		return err
	}
	for _, a := range n.Attrs {
		if _, err := fmt.Fprintf(w, " %s=\"%s\"", a.Name, escapeXML(a.Value)); err != nil {
			return err
		}
	}

	switch {
	case len(n.Children) == 0 && n.Text == "":
		_, err := fmt.Fprint(w, " />\n")
		return err
	case len(n.Children) == 0:
		_, err := fmt.Fprintf(w, ">%s</%s>\n", escapeXML(n.Text), n.Type)
		return err
	}

	if _, err := fmt.Fprint(w, ">\n"); err != nil {
		return err
	}
	if n.Text != "" {
		if _, err := fmt.Fprintf(w, "%s%s%s\n", indent, xamlIndent, escapeXML(n.Text)); err != nil {
			return err
		}
	}
	for _, child := range n.Children {
		if err := writeXamlNode(w, child, depth+1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s</%s>\n", indent, n.Type)
	return err
}
