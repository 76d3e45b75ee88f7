// FILE: lixenwraith/emaconfig/resolver.go
package emaconfig

import "fmt"

const (
	originFile         = "file configuration"
	originProgrammatic = "Programmatic Configuration"
)

// Overrides are settings made through direct API calls. They are applied
// after every source.
type Overrides struct {
	// ConsumerName is the caller's consumer choice; empty selects one from the sources.
	ConsumerName string

	// HostSet forces a socket channel connecting to HostName:ServiceName.
	HostSet     bool
	HostName    string
	ServiceName string

	OperationModel OperationModel
}

// Resolver merges the file tree, the overlay and API overrides into an ActiveConfig.
// Diagnostics are recorded on the tree's root sink. A message an earlier pass
// already recorded is not recorded again.
type Resolver struct {
	tree     *Tree
	overlay  *Overlay
	registry *TypeRegistry
	pass     *ErrorSink
}

// NewResolver wires the sources together. Nil sources are treated as empty.
func NewResolver(tree *Tree, overlay *Overlay, registry *TypeRegistry) *Resolver {
	if registry == nil {
		registry = NewTypeRegistry()
	}
	if tree == nil {
		tree = NewTree(RootName, registry, nil)
	}
	if overlay == nil {
		overlay = NewOverlay()
	}
	return &Resolver{tree: tree, overlay: overlay, registry: registry}
}

func (r *Resolver) report(message string, severity Severity) {
	if r.pass != nil {
		r.pass.Add(message, severity)
		return
	}
	r.tree.AppendError(r.tree.Root(), message, severity)
}

// begin collects diagnostics until the returned func splices them into the root sink.
func (r *Resolver) begin() func() {
	r.pass = &ErrorSink{}
	return func() {
		r.tree.Errors().Merge(r.pass)
		r.pass = nil
	}
}

// HasConsumer reports whether the file tree defines consumer name.
func (r *Resolver) HasConsumer(name string) bool {
	_, ok := r.tree.Get(entityPath(EntityConsumer, name, "Name"))
	return ok
}

// ConsumerName selects the consumer to resolve. A requested name must exist in
// the file tree. Otherwise the overlay default wins, then the file's
// DefaultConsumer when it names an existing consumer, then the first file
// consumer, then DefaultConsumerName.
func (r *Resolver) ConsumerName(requested string) (string, error) {
	if requested != "" {
		if !r.HasConsumer(requested) {
			return "", fmt.Errorf("%w: [%s]", ErrConsumerNotFound, requested)
		}
		return requested, nil
	}

	if name, ok := r.overlay.DefaultConsumerName(); ok {
		return name, nil
	}

	if name, ok := r.tree.String(defaultConsumerPath); ok {
		if r.HasConsumer(name) {
			return name, nil
		}
		r.report(fmt.Sprintf("default consumer name [%s] is an non-existent consumer name; DefaultConsumer specification ignored", name), SeverityError)
	}

	if names := r.tree.EntityNames(EntityConsumer); len(names) > 0 {
		return names[0], nil
	}
	return DefaultConsumerName, nil
}

// Dependencies returns the channel, logger and dictionary names of consumer.
// The overlay is consulted first, field by field.
func (r *Resolver) Dependencies(consumer string) DependencyNames {
	d := r.overlay.DependencyNames(consumer)
	if !d.HasChannel {
		d.Channel, d.HasChannel = r.tree.String(entityPath(EntityConsumer, consumer, "Channel"))
	}
	if !d.HasLogger {
		d.Logger, d.HasLogger = r.tree.String(entityPath(EntityConsumer, consumer, "Logger"))
	}
	if !d.HasDictionary {
		d.Dictionary, d.HasDictionary = r.tree.String(entityPath(EntityConsumer, consumer, "Dictionary"))
	}
	return d
}

type entitySource struct {
	fields []field
	origin string
}

// sources lists every view of an entity, lowest precedence first.
func (r *Resolver) sources(kind EntityKind, name string) []entitySource {
	var out []entitySource
	if elems, ok := r.tree.Entity(kind, name); ok {
		out = append(out, entitySource{fields: treeFields(elems), origin: originFile})
	}
	for _, list := range r.overlay.Entities(kind, name) {
		out = append(out, entitySource{fields: overlayFields(list, r.registry), origin: originProgrammatic})
	}
	return out
}

func (r *Resolver) entitySources(kind EntityKind, name string) []entitySource {
	srcs := r.sources(kind, name)
	if len(srcs) == 0 {
		r.report(fmt.Sprintf("no configuration found for %s [%s]; defaults used", kind.Entry(), name), SeverityVerbose)
	}
	return srcs
}

// Resolve runs one resolution pass. The only error is ErrConsumerNotFound for
// a requested consumer the file tree does not define.
func (r *Resolver) Resolve(ov Overrides) (*ActiveConfig, error) {
	defer r.begin()()

	name, err := r.ConsumerName(ov.ConsumerName)
	if err != nil {
		return nil, err
	}

	active := newActiveConfig()
	active.ConsumerName = name
	active.OperationModel = ov.OperationModel

	label := EntityConsumer.Entry() + "." + name
	for _, src := range r.sources(EntityConsumer, name) {
		var p consumerPatch
		decodeEntity(src.fields, r.registry, label, &p, r.report)
		p.apply(&active.Consumer)
	}

	deps := r.Dependencies(name)
	if deps.HasChannel {
		active.Channel = r.resolveChannel(deps.Channel)
	}
	if deps.HasLogger {
		active.Logger = r.resolveLogger(deps.Logger)
	}
	if deps.HasDictionary {
		active.Dictionary = r.resolveDictionary(deps.Dictionary)
	}

	if ov.HostSet {
		active.Channel.SetType(ChannelTypeSocket)
		socket := active.Channel.Variant.(*SocketChannel)
		socket.HostName = ov.HostName
		socket.ServiceName = ov.ServiceName
	}

	return active, nil
}

func (r *Resolver) resolveChannel(name string) ChannelConfig {
	ch := NewChannelConfig()
	ch.Name = name
	label := EntityChannel.Entry() + "." + name
	for _, src := range r.entitySources(EntityChannel, name) {
		var p channelPatch
		decodeEntity(src.fields, r.registry, label, &p, r.report)
		p.apply(&ch, src.origin, r.report)
	}
	return ch
}

func (r *Resolver) resolveLogger(name string) LoggerConfig {
	l := DefaultLoggerConfig()
	l.Name = name
	label := EntityLogger.Entry() + "." + name
	for _, src := range r.entitySources(EntityLogger, name) {
		var p loggerPatch
		decodeEntity(src.fields, r.registry, label, &p, r.report)
		p.apply(&l, src.origin, r.report)
	}
	return l
}

func (r *Resolver) resolveDictionary(name string) DictionaryConfig {
	d := DefaultDictionaryConfig()
	d.Name = name
	label := EntityDictionary.Entry() + "." + name
	for _, src := range r.entitySources(EntityDictionary, name) {
		var p dictionaryPatch
		decodeEntity(src.fields, r.registry, label, &p, r.report)
		p.apply(&d, src.origin, r.report)
	}
	return d
}
