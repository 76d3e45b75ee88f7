// FILE: lixenwraith/emaconfig/document.go
package emaconfig

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Map is an ordered programmatic configuration document. Keys map to element
// lists; an element carries either a Value or a nested Map.
type Map struct {
	entries []MapEntry
}

// MapEntry is one keyed element list of a Map.
type MapEntry struct {
	Key      string
	Elements ElementList
}

// ElementEntry is one named element. Exactly one of Value and Map is set.
type ElementEntry struct {
	Name  string
	Value Value
	Map   *Map
}

// ElementList is an ordered list of elements.
type ElementList []ElementEntry

// NewMap returns an empty document.
func NewMap() *Map { return &Map{} }

// Add appends an entry and returns the map for chaining.
func (m *Map) Add(key string, elements ...ElementEntry) *Map {
	m.entries = append(m.entries, MapEntry{Key: key, Elements: elements})
	return m
}

// Entries returns the entries in insertion order.
func (m *Map) Entries() []MapEntry {
	if m == nil {
		return nil
	}
	out := make([]MapEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Elem builds a value element.
func Elem(name string, v Value) ElementEntry { return ElementEntry{Name: name, Value: v} }

// Ascii builds an Ascii element.
func Ascii(name, s string) ElementEntry { return Elem(name, AsciiValue(s)) }

// Int builds an Int64 element.
func Int(name string, i int64) ElementEntry { return Elem(name, Int64Value(i)) }

// UInt builds a UInt64 element.
func UInt(name string, u uint64) ElementEntry { return Elem(name, UInt64Value(u)) }

// Enum builds an Enum element carrying a bare code.
func Enum(name string, code uint16) ElementEntry { return Elem(name, EnumCode(code)) }

// Nested builds an element holding a nested map.
func Nested(name string, m *Map) ElementEntry { return ElementEntry{Name: name, Map: m} }

// Get returns the first element called name.
func (l ElementList) Get(name string) (ElementEntry, bool) {
	for _, e := range l {
		if e.Name == name {
			return e, true
		}
	}
	return ElementEntry{}, false
}

// Ascii returns the Ascii payload of the element called name.
func (l ElementList) Ascii(name string) (string, bool) {
	e, ok := l.Get(name)
	if !ok || e.Map != nil {
		return "", false
	}
	return e.Value.Ascii()
}

// Nested returns the map held by the element called name.
func (l ElementList) Nested(name string) (*Map, bool) {
	e, ok := l.Get(name)
	if !ok || e.Map == nil {
		return nil, false
	}
	return e.Map, true
}

// groupLists returns the element lists stored under key, in order.
func (m *Map) groupLists(key string) []ElementList {
	var out []ElementList
	for _, e := range m.entries {
		if e.Key == key {
			out = append(out, e.Elements)
		}
	}
	return out
}

// entities returns every entry of kind called name within the document.
func (m *Map) entities(kind EntityKind, name string) []ElementList {
	var out []ElementList
	for _, group := range m.groupLists(kind.Group()) {
		for _, e := range group {
			if e.Name != kind.List() || e.Map == nil {
				continue
			}
			out = append(out, e.Map.groupLists(name)...)
		}
	}
	return out
}

// DecodeDocument builds a Map from YAML or JSON. The document mirrors the
// programmatic layout:
//
//	ConsumerGroup:
//	  DefaultConsumer: Consumer_1
//	  ConsumerList:
//	    Consumer_1:
//	      Channel: Channel_1
//
// Scalars are typed with registry; enums accept "Category::Symbol" or a bare code.
// Keys unknown to the registry are kept as Ascii.
func DecodeDocument(data []byte, registry *TypeRegistry, catalog *EnumCatalog) (*Map, error) {
	if registry == nil {
		registry = NewTypeRegistry()
	}
	if catalog == nil {
		catalog = NewEnumCatalog()
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}
	top := resolveAlias(doc.Content[0])
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: root is not a mapping", ErrInvalidDocument)
	}
	d := documentDecoder{registry: registry, catalog: catalog}
	return d.decodeMap(top, "")
}

type documentDecoder struct {
	registry *TypeRegistry
	catalog  *EnumCatalog
}

func (d documentDecoder) decodeMap(n *yaml.Node, path string) (*Map, error) {
	m := NewMap()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		body := resolveAlias(n.Content[i+1])
		p := joinPath(path, key)
		if body.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: entry [%s] is not a mapping", ErrInvalidDocument, p)
		}
		elems, err := d.decodeElements(body, p)
		if err != nil {
			return nil, err
		}
		m.Add(key, elems...)
	}
	return m, nil
}

func (d documentDecoder) decodeElements(n *yaml.Node, path string) (ElementList, error) {
	var list ElementList
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		body := resolveAlias(n.Content[i+1])
		p := joinPath(path, name)
		switch body.Kind {
		case yaml.MappingNode:
			nested, err := d.decodeMap(body, p)
			if err != nil {
				return nil, err
			}
			list = append(list, Nested(name, nested))
		case yaml.ScalarNode:
			v, err := d.scalar(name, body)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, p, err)
			}
			list = append(list, Elem(d.registry.Canonical(name), v))
		default:
			return nil, fmt.Errorf("%w: element [%s] must be a scalar or mapping", ErrInvalidDocument, p)
		}
	}
	return list, nil
}

func (d documentDecoder) scalar(name string, n *yaml.Node) (Value, error) {
	raw := n.Value
	if n.Tag == "!!bool" {
		var b bool
		if err := n.Decode(&b); err == nil {
			raw = scalarText(b)
		}
	}
	kind, ok := d.registry.Lookup(name)
	if !ok {
		return AsciiValue(raw), nil
	}
	if kind == KindEnum && !strings.Contains(raw, "::") {
		code, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			return Value{}, fmt.Errorf("enum element [%s] needs Category::Symbol or a numeric code, got [%s]", name, raw)
		}
		return EnumCode(uint16(code)), nil
	}
	return ParseValue(name, kind, raw, d.catalog)
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "|" + name
}
