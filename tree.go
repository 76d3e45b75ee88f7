// FILE: lixenwraith/emaconfig/tree.go
package emaconfig

import (
	"fmt"
	"io"
	"strings"
)

// NodeID addresses a node inside a Tree's arena.
type NodeID int32

// NoNode marks the absence of a parent.
const NoNode NodeID = -1

// RootName is the expected name of the file configuration root.
const RootName = "EmaConfig"

// Element is a named value held by a tree node.
type Element struct {
	Name  string
	Value Value
	owner NodeID
}

// Owner returns the node the element reports diagnostics through.
func (e Element) Owner() NodeID { return e.owner }

// Equal requires the same name, kind and payload.
func (e Element) Equal(o Element) bool {
	return e.Name == o.Name && e.Value.Equal(o.Value)
}

func (e Element) changeMessage(path string, next Element) string {
	name := next.Name
	if path != "" {
		name = path + "|" + next.Name
	}
	if e.Value.Kind() != next.Value.Kind() {
		return fmt.Sprintf("element [%s] change; no information on exact change in values", name)
	}
	return fmt.Sprintf("value for element [%s] changing from [%s] to [%s]", name, e.Value, next.Value)
}

type node struct {
	name     string
	level    int
	parent   NodeID
	attrs    []Element
	children []NodeID
	errors   ErrorSink
}

// Tree is the configuration tree built once from the file source.
// Nodes live in an arena owned by the tree; parents are indexes, not pointers.
type Tree struct {
	nodes    []node
	registry *TypeRegistry
	catalog  *EnumCatalog
}

// NewTree creates a tree holding only a root node.
func NewTree(rootName string, registry *TypeRegistry, catalog *EnumCatalog) *Tree {
	if registry == nil {
		registry = NewTypeRegistry()
	}
	if catalog == nil {
		catalog = NewEnumCatalog()
	}
	t := &Tree{registry: registry, catalog: catalog}
	t.nodes = append(t.nodes, node{name: rootName, parent: NoNode})
	return t
}

// Root returns the root node.
func (t *Tree) Root() NodeID { return 0 }

// Len returns the number of live nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Errors returns the root sink where all diagnostics end up.
func (t *Tree) Errors() *ErrorSink { return &t.nodes[0].errors }

func (t *Tree) Name(id NodeID) string   { return t.nodes[id].name }
func (t *Tree) Level(id NodeID) int     { return t.nodes[id].level }
func (t *Tree) Parent(id NodeID) NodeID { return t.nodes[id].parent }

// Children returns the child ids of id in document order.
func (t *Tree) Children(id NodeID) []NodeID {
	c := t.nodes[id].children
	out := make([]NodeID, len(c))
	copy(out, c)
	return out
}

// Attributes returns the elements of id in insertion order.
func (t *Tree) Attributes(id NodeID) []Element {
	a := t.nodes[id].attrs
	out := make([]Element, len(a))
	copy(out, a)
	return out
}

// Attribute returns the element called name on id.
func (t *Tree) Attribute(id NodeID, name string) (Element, bool) {
	for _, e := range t.nodes[id].attrs {
		if e.Name == name {
			return e, true
		}
	}
	return Element{}, false
}

// AppendError records a diagnostic through id's parent chain; it is stored at the root.
func (t *Tree) AppendError(id NodeID, message string, severity Severity) {
	for t.nodes[id].parent != NoNode {
		id = t.nodes[id].parent
	}
	t.nodes[id].errors.Add(message, severity)
}

func (t *Tree) newNode(name string, parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{name: name, level: t.nodes[parent].level + 1, parent: parent})
	return id
}

// truncate discards every node allocated at or after mark.
func (t *Tree) truncate(mark int) {
	for i := mark; i < len(t.nodes); i++ {
		t.nodes[i] = node{}
	}
	t.nodes = t.nodes[:mark]
}

// path renders the names from the root's child down to id.
func (t *Tree) path(id NodeID) string {
	var parts []string
	for id != NoNode && t.nodes[id].parent != NoNode {
		parts = append(parts, t.nodes[id].name)
		id = t.nodes[id].parent
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "|")
}

// addAttribute keeps at most one element per name; a differing duplicate replaces
// the earlier one and leaves a Verbose trace.
func (t *Tree) addAttribute(id NodeID, e Element) {
	attrs := t.nodes[id].attrs
	for i, cur := range attrs {
		if cur.Name != e.Name {
			continue
		}
		if !cur.Equal(e) {
			t.AppendError(id, cur.changeMessage(t.path(id), e), SeverityVerbose)
			attrs[i] = e
		}
		return
	}
	t.nodes[id].attrs = append(attrs, e)
}

// Build constructs a tree from a parsed source element.
func Build(src *SourceElement, registry *TypeRegistry, catalog *EnumCatalog) *Tree {
	name := RootName
	if src != nil && src.Name != "" {
		name = src.Name
	}
	t := NewTree(name, registry, catalog)
	if src != nil {
		t.process(t.Root(), src)
	}
	return t
}

func (t *Tree) process(id NodeID, src *SourceElement) {
	for _, name := range src.Unexpected {
		t.AppendError(id, fmt.Sprintf("got unexpected name [%s] while processing configuration data; ignored", name), SeverityVerbose)
	}

	owner := t.nodes[id].parent
	if owner == NoNode {
		owner = id
	}
	for _, a := range src.Attributes {
		e, err := t.registry.NewElement(a.Name, a.Value, owner, t.catalog)
		if err != nil {
			t.AppendError(id, err.Error(), SeverityError)
			continue
		}
		t.addAttribute(id, e)
	}

	for _, c := range src.Children {
		if c == nil {
			continue
		}
		mark := len(t.nodes)
		child := t.newNode(c.Name, id)
		t.process(child, c)

		if t.nodes[child].errors.Len() > 0 {
			childErrs := t.nodes[child].errors
			t.nodes[id].errors.AddSink(&childErrs)
			t.nodes[child].errors.Clear()
		}

		hasAttrs := c.hasAttributes()
		hasChildren := len(c.Children) > 0
		switch {
		case hasAttrs && !hasChildren:
			hoisted := t.Attributes(child)
			t.truncate(mark)
			for _, e := range hoisted {
				e.owner = id
				t.addAttribute(id, e)
			}
		case !hasAttrs && hasChildren:
			t.nodes[id].children = append(t.nodes[id].children, child)
		case !hasAttrs && !hasChildren:
			t.truncate(mark)
			t.AppendError(id, fmt.Sprintf("node [%s] has neither children nor attributes", c.Name), SeverityVerbose)
		default:
			t.truncate(mark)
			t.AppendError(id, fmt.Sprintf("node [%s] has both children and attributes; node was ignored", c.Name), SeverityError)
		}
	}
}

// child finds the first child of id matching seg. A segment of the form
// "Name.Value" selects the child whose Name attribute equals Value.
func (t *Tree) child(id NodeID, seg string) (NodeID, bool) {
	name, want, selector := strings.Cut(seg, ".")
	for _, c := range t.nodes[id].children {
		if t.nodes[c].name != name {
			continue
		}
		if !selector {
			return c, true
		}
		if e, ok := t.Attribute(c, "Name"); ok {
			if s, _ := e.Value.Ascii(); s == want {
				return c, true
			}
		}
	}
	return NoNode, false
}

// Node resolves a "|" separated path of node segments.
func (t *Tree) Node(path string) (NodeID, bool) {
	id := t.Root()
	if path == "" {
		return id, true
	}
	for _, seg := range strings.Split(path, "|") {
		next, ok := t.child(id, seg)
		if !ok {
			return NoNode, false
		}
		id = next
	}
	return id, true
}

// Get resolves a path whose last segment names an attribute, e.g.
// "ConsumerGroup|ConsumerList|Consumer.Consumer_1|Channel".
func (t *Tree) Get(path string) (Value, bool) {
	idx := strings.LastIndex(path, "|")
	nodePath, attr := "", path
	if idx >= 0 {
		nodePath, attr = path[:idx], path[idx+1:]
	}
	id, ok := t.Node(nodePath)
	if !ok {
		return Value{}, false
	}
	e, ok := t.Attribute(id, attr)
	if !ok {
		return Value{}, false
	}
	return e.Value, true
}

// String returns the Ascii value at path.
func (t *Tree) String(path string) (string, bool) {
	v, ok := t.Get(path)
	if !ok {
		return "", false
	}
	return v.Ascii()
}

// Int64 returns the signed value at path.
func (t *Tree) Int64(path string) (int64, bool) {
	v, ok := t.Get(path)
	if !ok {
		return 0, false
	}
	return v.Int64()
}

// UInt64 returns the unsigned value at path.
func (t *Tree) UInt64(path string) (uint64, bool) {
	v, ok := t.Get(path)
	if !ok {
		return 0, false
	}
	return v.UInt64()
}

// entityNodes returns the list entries for kind, e.g. every Consumer under
// ConsumerGroup|ConsumerList.
func (t *Tree) entityNodes(kind EntityKind) []NodeID {
	list, ok := t.Node(kind.Group() + "|" + kind.List())
	if !ok {
		return nil
	}
	var out []NodeID
	for _, c := range t.nodes[list].children {
		if t.nodes[c].name == kind.Entry() {
			out = append(out, c)
		}
	}
	return out
}

// Entity returns the elements of the list entry whose Name equals name.
func (t *Tree) Entity(kind EntityKind, name string) ([]Element, bool) {
	for _, id := range t.entityNodes(kind) {
		if e, ok := t.Attribute(id, "Name"); ok {
			if s, _ := e.Value.Ascii(); s == name {
				return t.Attributes(id), true
			}
		}
	}
	return nil, false
}

// EntityNames lists the names of all entries of kind in document order.
func (t *Tree) EntityNames(kind EntityKind) []string {
	var names []string
	for _, id := range t.entityNodes(kind) {
		if e, ok := t.Attribute(id, "Name"); ok {
			if s, ok := e.Value.Ascii(); ok {
				names = append(names, s)
			}
		}
	}
	return names
}

// Print writes an indented rendering of the tree.
func (t *Tree) Print(w io.Writer) {
	t.print(w, t.Root())
}

func (t *Tree) print(w io.Writer, id NodeID) {
	n := &t.nodes[id]
	indent := strings.Repeat("\t", n.level)
	fmt.Fprintf(w, "%s%s (level %d)\n", indent, n.name, n.level)
	for _, e := range n.attrs {
		fmt.Fprintf(w, "%s\t%s: %s\n", indent, e.Name, e.Value)
	}
	for _, c := range n.children {
		t.print(w, c)
	}
}
