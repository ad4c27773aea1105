package render

import (
	"encoding/base64"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAML renders doc to w as a YAML document with two-space indents.
// Member order is preserved. Non-finite floats render as .nan, .inf,
// and -.inf; bytes render as !!binary scalars.
func YAML(w io.Writer, doc any) error {
	root, err := lower(doc)
	if err != nil {
		return err
	}
	node, err := yamlNode(root)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return err
	}
	return enc.Close()
}

// yamlNode builds the node tree by hand so mappings keep document
// order and scalars carry explicit tags. The explicit !!str tag makes
// the emitter quote strings like "true" or "42" that would otherwise
// re-resolve as a different type.
func yamlNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t)}, nil
	case int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(t, 10)}, nil
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: yamlFloat(t)}, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t}, nil
	case []byte:
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!binary",
			Value: base64.StdEncoding.EncodeToString(t),
		}, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		node.Content = make([]*yaml.Node, 0, len(t))
		for _, el := range t {
			child, err := yamlNode(el)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case *object:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		node.Content = make([]*yaml.Node, 0, 2*len(t.fields))
		for _, f := range t.fields {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.key}
			val, err := yamlNode(f.val)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, key, val)
		}
		return node, nil
	default:
		// lower only emits the forms above.
		panic("render: unreachable yaml form")
	}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// Keep the scalar resolving as a float when it reads as an int.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
