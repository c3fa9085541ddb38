// Package frontmatter reads and writes markdown files that start with a
// YAML metadata block:
//
//	---
//	name: "Carrara Marble"
//	featured: true
//	---
//	body text
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter opens and closes the metadata block.
const Delimiter = "---"

// ErrMalformed is returned when the input does not have the frontmatter shape
// or the block is not a YAML mapping.
var ErrMalformed = errors.New("frontmatter: malformed document")

// Split separates the raw YAML block from the body. The body is returned
// exactly as it appears after the closing delimiter line.
func Split(src []byte) (front []byte, body string, err error) {
	text := string(src)
	first, rest, ok := cutLine(text)
	if !ok && first == "" {
		return nil, "", fmt.Errorf("%w: empty input", ErrMalformed)
	}
	if first != Delimiter {
		return nil, "", fmt.Errorf("%w: missing opening %s", ErrMalformed, Delimiter)
	}

	var block strings.Builder
	for {
		line, next, more := cutLine(rest)
		if line == Delimiter {
			return []byte(block.String()), next, nil
		}
		if !more {
			return nil, "", fmt.Errorf("%w: missing closing %s", ErrMalformed, Delimiter)
		}
		block.WriteString(line)
		block.WriteByte('\n')
		rest = next
	}
}

// Decode parses src into a YAML node holding the metadata mapping plus the
// body. An empty block yields an empty mapping node.
func Decode(src []byte) (*yaml.Node, string, error) {
	front, body, err := Split(src)
	if err != nil {
		return nil, "", err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(front, &doc); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}, body, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, "", fmt.Errorf("%w: metadata is not a mapping", ErrMalformed)
	}
	return root, body, nil
}

// Unmarshal decodes the metadata block of src into v and returns the body.
// Fields already set on v are kept when the block does not mention them.
func Unmarshal(src []byte, v any) (string, error) {
	node, body, err := Decode(src)
	if err != nil {
		return "", err
	}
	if err := node.Decode(v); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return body, nil
}

// Encode serializes meta (a struct with yaml tags or a map) followed by the
// literal body. All string scalars are double quoted so delimiter sequences,
// colons, quotes and line breaks survive a round trip.
func Encode(meta any, body string) ([]byte, error) {
	var node yaml.Node
	if meta == nil {
		meta = map[string]any{}
	}
	if err := node.Encode(meta); err != nil {
		return nil, fmt.Errorf("frontmatter: encode metadata: %w", err)
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("frontmatter: metadata must encode to a mapping, got kind %d", node.Kind)
	}
	styleNode(&node)

	var buf bytes.Buffer
	buf.WriteString(Delimiter)
	buf.WriteByte('\n')
	if len(node.Content) > 0 {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return nil, fmt.Errorf("frontmatter: encode metadata: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("frontmatter: encode metadata: %w", err)
		}
	}
	buf.WriteString(Delimiter)
	buf.WriteByte('\n')
	buf.WriteString(body)
	return buf.Bytes(), nil
}

func styleNode(n *yaml.Node) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() == "!!str" {
			n.Style = yaml.DoubleQuotedStyle
		}
	case yaml.SequenceNode:
		n.Style = 0
		if len(n.Content) == 0 {
			n.Style = yaml.FlowStyle
		}
	case yaml.MappingNode:
		n.Style = 0
		if len(n.Content) == 0 {
			n.Style = yaml.FlowStyle
		}
	}
	for i, child := range n.Content {
		// Mapping keys keep the style the encoder picked.
		if n.Kind == yaml.MappingNode && i%2 == 0 {
			continue
		}
		styleNode(child)
	}
}

// cutLine returns the first line of s without its terminator (\n or \r\n),
// the remainder, and whether a terminator was found.
func cutLine(s string) (line, rest string, found bool) {
	line, rest, found = strings.Cut(s, "\n")
	return strings.TrimSuffix(line, "\r"), rest, found
}
