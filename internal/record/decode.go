package record

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when a document has no root element.
var ErrEmptyDocument = errors.New("empty document")

// DecodeXML builds a record tree from an XML document.
// Character data and comments are dropped; only elements and attributes survive.
func DecodeXML(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var stack []*Node
	var root *Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local}
			for _, a := range t.Attr {
				n.Set(a.Name.Local, a.Value)
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("decoding xml: multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}

// charsetReader handles the legacy single-byte encodings creature files are
// commonly saved in.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
}

// DecodeYAML builds a record tree from a YAML document shaped as
// {name, attrs, children}.
func DecodeYAML(r io.Reader) (*Node, error) {
	var root Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	if root.Name == "" {
		return nil, ErrEmptyDocument
	}
	return &root, nil
}

// ReadFile decodes the record file at path, picking the decoder by extension
// (.yaml/.yml → YAML, anything else → XML).
func ReadFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading record %s: %w", path, err)
	}

	var n *Node
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		n, err = DecodeYAML(bytes.NewReader(data))
	default:
		n, err = DecodeXML(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("parsing record %s: %w", path, err)
	}
	return n, nil
}
