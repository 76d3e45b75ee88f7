// FILE: lixenwraith/emaconfig/source.go
package emaconfig

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Attribute is a raw name/value pair attached to a source element.
type Attribute struct {
	Name  string
	Value string
}

// SourceElement is a parsed configuration element with its attributes and
// children already split out. Parsers for every supported file format produce it.
type SourceElement struct {
	Name       string
	Attributes []Attribute
	// Unexpected holds names of attributes the format does not allow.
	Unexpected []string
	Children   []*SourceElement
}

func (e *SourceElement) hasAttributes() bool {
	return len(e.Attributes) > 0 || len(e.Unexpected) > 0
}

// Scalar returns a leaf element carrying a single value named after itself,
// the shape `<Name value="..."/>` takes in XML.
func Scalar(name, value string) *SourceElement {
	return &SourceElement{Name: name, Attributes: []Attribute{{Name: name, Value: value}}}
}

// Group returns an element holding only children.
func Group(name string, children ...*SourceElement) *SourceElement {
	return &SourceElement{Name: name, Children: children}
}

var errEmptyDocument = errors.New("document has no root element")

// ParseXML reads an XML document. Each element's "value" attribute becomes an
// attribute named after the element; any other attribute is reported as unexpected.
func ParseXML(data []byte) (*SourceElement, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		root  *SourceElement
		stack []*SourceElement
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &SourceElement{Name: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Local == "value" && a.Name.Space == "" {
					el.Attributes = append(el.Attributes, Attribute{Name: el.Name, Value: a.Value})
				} else {
					el.Unexpected = append(el.Unexpected, a.Name.Local)
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("xml: multiple root elements [%s] and [%s]", root.Name, el.Name)
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	if root == nil {
		return nil, errEmptyDocument
	}
	return root, nil
}

// ParseTOML reads a TOML document. Tables become groups, arrays of tables become
// repeated groups and scalar keys become leaf elements. Document order is taken
// from the decoder metadata.
func ParseTOML(data []byte) (*SourceElement, error) {
	var doc map[string]any
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("toml: %w", err)
	}
	pos := make(map[string]int)
	for i, k := range md.Keys() {
		key := strings.Join(k, "\x00")
		if _, seen := pos[key]; !seen {
			pos[key] = i
		}
	}
	t := tomlWalker{pos: pos}
	return t.root(doc)
}

type tomlWalker struct {
	pos map[string]int
}

func (t tomlWalker) root(doc map[string]any) (*SourceElement, error) {
	keys := t.ordered(nil, doc)
	if len(keys) == 0 {
		return nil, errEmptyDocument
	}
	if len(keys) > 1 {
		return nil, fmt.Errorf("toml: expected a single root table, found %d top-level keys", len(keys))
	}
	name := keys[0]
	table, ok := doc[name].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("toml: root [%s] is not a table", name)
	}
	return &SourceElement{Name: name, Children: t.children([]string{name}, table)}, nil
}

func (t tomlWalker) ordered(path []string, m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	prefix := strings.Join(path, "\x00")
	at := func(k string) int {
		full := k
		if prefix != "" {
			full = prefix + "\x00" + k
		}
		if p, ok := t.pos[full]; ok {
			return p
		}
		return int(^uint(0) >> 1)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		pi, pj := at(keys[i]), at(keys[j])
		if pi != pj {
			return pi < pj
		}
		return keys[i] < keys[j]
	})
	return keys
}

func (t tomlWalker) children(path []string, m map[string]any) []*SourceElement {
	var out []*SourceElement
	for _, k := range t.ordered(path, m) {
		sub := append(append([]string(nil), path...), k)
		out = append(out, t.element(sub, k, m[k])...)
	}
	return out
}

func (t tomlWalker) element(path []string, name string, v any) []*SourceElement {
	switch val := v.(type) {
	case map[string]any:
		return []*SourceElement{{Name: name, Children: t.children(path, val)}}
	case []map[string]any:
		out := make([]*SourceElement, 0, len(val))
		for _, m := range val {
			out = append(out, &SourceElement{Name: name, Children: t.children(path, m)})
		}
		return out
	case []any:
		var out []*SourceElement
		for _, item := range val {
			out = append(out, t.element(path, name, item)...)
		}
		return out
	default:
		return []*SourceElement{Scalar(name, scalarText(val))}
	}
}

// scalarText renders a decoded scalar the way the value parser expects it.
func scalarText(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "1"
		}
		return "0"
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// ParseYAML reads a YAML (or JSON) document, preserving mapping order.
func ParseYAML(data []byte) (*SourceElement, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errEmptyDocument
	}
	top := resolveAlias(doc.Content[0])
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("yaml: root is not a mapping")
	}
	if len(top.Content) != 2 {
		return nil, fmt.Errorf("yaml: expected a single root key, found %d", len(top.Content)/2)
	}
	name := top.Content[0].Value
	body := resolveAlias(top.Content[1])
	if body.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("yaml: root [%s] is not a mapping", name)
	}
	return &SourceElement{Name: name, Children: yamlChildren(body)}, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func yamlChildren(m *yaml.Node) []*SourceElement {
	var out []*SourceElement
	for i := 0; i+1 < len(m.Content); i += 2 {
		out = append(out, yamlElement(m.Content[i].Value, resolveAlias(m.Content[i+1]))...)
	}
	return out
}

func yamlElement(name string, n *yaml.Node) []*SourceElement {
	switch n.Kind {
	case yaml.MappingNode:
		return []*SourceElement{{Name: name, Children: yamlChildren(n)}}
	case yaml.SequenceNode:
		var out []*SourceElement
		for _, item := range n.Content {
			out = append(out, yamlElement(name, resolveAlias(item))...)
		}
		return out
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return []*SourceElement{{Name: name}}
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err == nil {
				return []*SourceElement{Scalar(name, scalarText(b))}
			}
		}
		return []*SourceElement{Scalar(name, n.Value)}
	}
	return []*SourceElement{{Name: name}}
}
