// FILE: lixenwraith/emaconfig/overlay.go
package emaconfig

// DependencyNames are the channel, logger and dictionary names a consumer refers to.
type DependencyNames struct {
	Channel       string
	Logger        string
	Dictionary    string
	HasChannel    bool
	HasLogger     bool
	HasDictionary bool
}

// Overlay holds programmatic documents in registration order.
// Documents are never modified.
type Overlay struct {
	docs  []*Map
	cache map[string]DependencyNames
}

// NewOverlay returns an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{cache: make(map[string]DependencyNames)}
}

// Register appends doc unless the same document is already registered.
// It reports whether doc was added.
func (o *Overlay) Register(doc *Map) (bool, error) {
	if doc == nil {
		return false, ErrNilDocument
	}
	for _, d := range o.docs {
		if d == doc {
			return false, nil
		}
	}
	o.docs = append(o.docs, doc)
	return true, nil
}

// Len returns the number of registered documents.
func (o *Overlay) Len() int { return len(o.docs) }

// Documents returns the registered documents in order.
func (o *Overlay) Documents() []*Map {
	out := make([]*Map, len(o.docs))
	copy(out, o.docs)
	return out
}

// Clear drops cached lookups. Call it before registering a document that
// could change previously computed dependency names.
func (o *Overlay) Clear() {
	o.cache = make(map[string]DependencyNames)
}

// Reset drops every document and the cache.
func (o *Overlay) Reset() {
	o.docs = nil
	o.Clear()
}

// DefaultConsumerName returns the DefaultConsumer of the last document that defines one.
func (o *Overlay) DefaultConsumerName() (string, bool) {
	var (
		name  string
		found bool
	)
	for _, doc := range o.docs {
		for _, group := range doc.groupLists(EntityConsumer.Group()) {
			if s, ok := group.Ascii("DefaultConsumer"); ok {
				name, found = s, true
			}
		}
	}
	return name, found
}

// HasEntity reports whether any document defines an entry of kind called name.
func (o *Overlay) HasEntity(kind EntityKind, name string) bool {
	for _, doc := range o.docs {
		if len(doc.entities(kind, name)) > 0 {
			return true
		}
	}
	return false
}

// DependencyNames scans every document for consumer's Channel, Logger and
// Dictionary elements; later documents override earlier ones. The result is
// cached per consumer name until Clear.
func (o *Overlay) DependencyNames(consumer string) DependencyNames {
	if o.cache == nil {
		o.cache = make(map[string]DependencyNames)
	}
	if d, ok := o.cache[consumer]; ok {
		return d
	}
	var d DependencyNames
	for _, list := range o.Entities(EntityConsumer, consumer) {
		if s, ok := list.Ascii("Channel"); ok {
			d.Channel, d.HasChannel = s, true
		}
		if s, ok := list.Ascii("Logger"); ok {
			d.Logger, d.HasLogger = s, true
		}
		if s, ok := list.Ascii("Dictionary"); ok {
			d.Dictionary, d.HasDictionary = s, true
		}
	}
	o.cache[consumer] = d
	return d
}

// Entities returns every element list of kind called name across all documents,
// in registration order.
func (o *Overlay) Entities(kind EntityKind, name string) []ElementList {
	var out []ElementList
	for _, doc := range o.docs {
		out = append(out, doc.entities(kind, name)...)
	}
	return out
}
