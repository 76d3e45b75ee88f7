// FILE: lixenwraith/emaconfig/consumer.go
package emaconfig

import (
	"fmt"
	"io"
)

// ConsumerConfig collects everything a consumer session is configured from:
// the file tree, programmatic documents and direct setter calls.
// It is not safe for concurrent use.
type ConsumerConfig struct {
	registry *TypeRegistry
	catalog  *EnumCatalog
	fileName string
	tree     *Tree
	overlay  *Overlay
	admin    *AdminRequests

	consumerName   string
	hostSet        bool
	hostName       string
	serviceName    string
	operationModel OperationModel
}

// Option configures NewConsumerConfig.
type Option func(*consumerOptions)

type consumerOptions struct {
	fileName string
	load     LoadOptions
	tree     *Tree
}

// WithFileName reads path instead of DefaultFileName.
func WithFileName(path string) Option {
	return func(o *consumerOptions) { o.fileName = path }
}

// WithLoadOptions sets the format, size limit, registry and catalog.
func WithLoadOptions(opts LoadOptions) Option {
	return func(o *consumerOptions) { o.load = opts }
}

// WithTree uses an already built tree and skips reading a file.
func WithTree(t *Tree) Option {
	return func(o *consumerOptions) { o.tree = t }
}

// NewConsumerConfig reads the configuration file. A missing or broken file
// leaves an empty tree and a "failed to extract configuration" diagnostic.
func NewConsumerConfig(opts ...Option) *ConsumerConfig {
	o := consumerOptions{fileName: DefaultFileName, load: DefaultLoadOptions()}
	for _, opt := range opts {
		opt(&o)
	}
	o.load = o.load.normalized()

	c := &ConsumerConfig{
		registry: o.load.Registry,
		catalog:  o.load.Catalog,
		fileName: o.fileName,
		overlay:  NewOverlay(),
		admin:    NewAdminRequests(),
	}

	if o.tree != nil {
		c.tree = o.tree
		return c
	}

	tree, result := LoadFile(o.fileName, o.load)
	if result == SeverityError || result == SeverityVerbose {
		tree.AppendError(tree.Root(), fmt.Sprintf("failed to extract configuration from [%s]", o.fileName), result)
	}
	c.tree = tree
	return c
}

func (c *ConsumerConfig) report(message string, severity Severity) {
	c.tree.AppendError(c.tree.Root(), message, severity)
}

// Tree returns the file configuration tree.
func (c *ConsumerConfig) Tree() *Tree { return c.tree }

// Overlay returns the registered programmatic documents.
func (c *ConsumerConfig) Overlay() *Overlay { return c.overlay }

// FileName returns the configuration file that was read.
func (c *ConsumerConfig) FileName() string { return c.fileName }

// Errors returns the sink holding every diagnostic recorded so far.
func (c *ConsumerConfig) Errors() *ErrorSink { return c.tree.Errors() }

// PrintErrors writes diagnostics at or above min.
func (c *ConsumerConfig) PrintErrors(w io.Writer, min Severity) error {
	return c.Errors().Print(w, min)
}

// LogErrors drains diagnostics at or above min into logger.
func (c *ConsumerConfig) LogErrors(logger LoggerClient, min Severity) {
	c.Errors().Log(logger, min)
}

// Clear restores the API settings and admin templates to their defaults.
// File configuration and programmatic documents are kept.
func (c *ConsumerConfig) Clear() *ConsumerConfig {
	c.operationModel = ApiDispatch
	c.admin.Clear()
	return c
}

func (c *ConsumerConfig) Username(s string) *ConsumerConfig {
	c.admin.login.Username = s
	return c
}

func (c *ConsumerConfig) Password(s string) *ConsumerConfig {
	c.admin.login.Password = s
	return c
}

func (c *ConsumerConfig) Position(s string) *ConsumerConfig {
	c.admin.login.Position = s
	return c
}

func (c *ConsumerConfig) ApplicationID(s string) *ConsumerConfig {
	c.admin.login.ApplicationID = s
	return c
}

func (c *ConsumerConfig) ApplicationName(s string) *ConsumerConfig {
	c.admin.login.ApplicationName = s
	return c
}

// ConsumerName selects the consumer to resolve. The name must exist in the
// file configuration; otherwise ErrConsumerNotFound is returned and the
// current selection is kept.
func (c *ConsumerConfig) ConsumerName(name string) error {
	r := NewResolver(c.tree, c.overlay, c.registry)
	if !r.HasConsumer(name) {
		return fmt.Errorf("consumerName parameter [%s]: %w", name, ErrConsumerNotFound)
	}
	c.consumerName = name
	return nil
}

// SelectedConsumer returns the name set with ConsumerName, or "".
func (c *ConsumerConfig) SelectedConsumer() string { return c.consumerName }

// Host overrides the channel endpoint and forces a socket channel.
// See ParseHost for the accepted forms.
func (c *ConsumerConfig) Host(s string) *ConsumerConfig {
	c.hostName, c.serviceName = ParseHost(s)
	c.hostSet = true
	return c
}

// HostOverride returns the endpoint set with Host.
func (c *ConsumerConfig) HostOverride() (host, service string, ok bool) {
	return c.hostName, c.serviceName, c.hostSet
}

func (c *ConsumerConfig) OperationModel(m OperationModel) *ConsumerConfig {
	c.operationModel = m
	return c
}

// Config registers a programmatic document. Cached overlay lookups are
// dropped first so the new document is visible to them.
func (c *ConsumerConfig) Config(doc *Map) *ConsumerConfig {
	if doc == nil {
		c.report("Invalid Data type='nil' for Programmatic Configure.", SeverityError)
		return c
	}
	c.overlay.Clear()
	if _, err := c.overlay.Register(doc); err != nil {
		c.report(err.Error(), SeverityError)
	}
	return c
}

// AddAdminMsg captures a login, directory or dictionary request template.
func (c *ConsumerConfig) AddAdminMsg(msg *RequestMsg) *ConsumerConfig {
	c.admin.Add(msg, c.report)
	return c
}

// Admin returns the captured request templates.
func (c *ConsumerConfig) Admin() *AdminRequests { return c.admin }

// Overrides returns the direct API settings as resolver input.
func (c *ConsumerConfig) Overrides() Overrides {
	return Overrides{
		ConsumerName:   c.consumerName,
		HostSet:        c.hostSet,
		HostName:       c.hostName,
		ServiceName:    c.serviceName,
		OperationModel: c.operationModel,
	}
}

// Resolve produces the active configuration.
func (c *ConsumerConfig) Resolve() (*ActiveConfig, error) {
	return NewResolver(c.tree, c.overlay, c.registry).Resolve(c.Overrides())
}
