// FILE: lixenwraith/emaconfig/builder.go
package emaconfig

import (
	"fmt"
	"os"
)

// ValidatorFunc checks a resolved configuration.
type ValidatorFunc func(a *ActiveConfig) error

// Builder provides a fluent interface for building a ConsumerConfig
type Builder struct {
	load       LoadOptions
	file       string
	args       []string
	docs       []*Map
	consumer   string
	host       *string
	model      OperationModel
	admin      []*RequestMsg
	err        error
	validators []ValidatorFunc
}

// NewBuilder creates a new configuration builder
func NewBuilder() *Builder {
	return &Builder{
		load:       DefaultLoadOptions(),
		file:       DefaultFileName,
		args:       os.Args[1:],
		validators: make([]ValidatorFunc, 0),
	}
}

// WithFile sets the configuration file path
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithArgs sets the command-line arguments consulted by WithFileDiscovery
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithFileDiscovery searches for a configuration file; the current file is
// kept when nothing is found.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	if path := DiscoverFile(opts, b.args); path != "" {
		b.file = path
	}
	return b
}

// WithFormat forces the file format
func (b *Builder) WithFormat(format string) *Builder {
	switch format {
	case FormatAuto, FormatXML, FormatTOML, FormatYAML, FormatJSON:
		b.load.Format = format
	default:
		b.err = fmt.Errorf("unsupported format %q", format)
	}
	return b
}

// WithMaxFileSize rejects configuration files larger than n bytes
func (b *Builder) WithMaxFileSize(n int64) *Builder {
	b.load.MaxFileSize = n
	return b
}

// WithRegistry replaces the key registry
func (b *Builder) WithRegistry(r *TypeRegistry) *Builder {
	if r != nil {
		b.load.Registry = r
	}
	return b
}

// WithCatalog replaces the enum catalog
func (b *Builder) WithCatalog(c *EnumCatalog) *Builder {
	if c != nil {
		b.load.Catalog = c
	}
	return b
}

// WithOverlay registers a programmatic document; documents apply in call order
func (b *Builder) WithOverlay(doc *Map) *Builder {
	b.docs = append(b.docs, doc)
	return b
}

// WithOverlayData decodes a YAML or JSON programmatic document
func (b *Builder) WithOverlayData(data []byte) *Builder {
	doc, err := DecodeDocument(data, b.load.Registry, b.load.Catalog)
	if err != nil {
		b.err = err
		return b
	}
	return b.WithOverlay(doc)
}

// WithConsumer selects the consumer by name
func (b *Builder) WithConsumer(name string) *Builder {
	b.consumer = name
	return b
}

// WithHost overrides the channel endpoint, forcing a socket channel
func (b *Builder) WithHost(host string) *Builder {
	b.host = &host
	return b
}

// WithOperationModel sets the dispatch model
func (b *Builder) WithOperationModel(m OperationModel) *Builder {
	b.model = m
	return b
}

// WithAdminMsg captures an administrative request template
func (b *Builder) WithAdminMsg(msg *RequestMsg) *Builder {
	b.admin = append(b.admin, msg)
	return b
}

// WithValidator adds a validation function that runs against the resolved configuration
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the ConsumerConfig with all specified options
func (b *Builder) Build() (*ConsumerConfig, error) {
	c, _, err := b.build()
	return c, err
}

// build returns the resolved configuration too when validators forced a resolution.
func (b *Builder) build() (*ConsumerConfig, *ActiveConfig, error) {
	if b.err != nil {
		return nil, nil, b.err
	}

	c := NewConsumerConfig(WithFileName(b.file), WithLoadOptions(b.load))
	for _, doc := range b.docs {
		c.Config(doc)
	}
	for _, msg := range b.admin {
		c.AddAdminMsg(msg)
	}
	if b.host != nil {
		c.Host(*b.host)
	}
	c.OperationModel(b.model)
	if b.consumer != "" {
		if err := c.ConsumerName(b.consumer); err != nil {
			return nil, nil, err
		}
	}

	if len(b.validators) == 0 {
		return c, nil, nil
	}
	active, err := c.Resolve()
	if err != nil {
		return nil, nil, err
	}
	for _, validator := range b.validators {
		if err := validator(active); err != nil {
			return nil, nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return c, active, nil
}

// Resolve builds the ConsumerConfig and resolves it
func (b *Builder) Resolve() (*ActiveConfig, *ConsumerConfig, error) {
	c, active, err := b.build()
	if err != nil {
		return nil, nil, err
	}
	if active != nil {
		return active, c, nil
	}
	active, err = c.Resolve()
	if err != nil {
		return nil, c, err
	}
	return active, c, nil
}

// MustResolve is like Resolve but panics on error
func (b *Builder) MustResolve() *ActiveConfig {
	active, _, err := b.Resolve()
	if err != nil {
		panic(fmt.Sprintf("config resolution failed: %v", err))
	}
	return active
}
