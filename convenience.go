// FILE: lixenwraith/emaconfig/convenience.go
package emaconfig

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Quick resolves the configuration in path with the default options.
func Quick(path string) (*ActiveConfig, *ConsumerConfig, error) {
	c := NewConsumerConfig(WithFileName(path))
	active, err := c.Resolve()
	return active, c, err
}

// MustQuick is like Quick but panics on error
func MustQuick(path string) *ActiveConfig {
	active, _, err := Quick(path)
	if err != nil {
		panic(fmt.Sprintf("config resolution failed: %v", err))
	}
	return active
}

type channelView struct {
	Type          ChannelType `toml:"type" yaml:"type"`
	ChannelCommon `yaml:",inline"`
	Socket        *SocketChannel        `toml:"socket,omitempty" yaml:"socket,omitempty"`
	HTTP          *HTTPChannel          `toml:"http,omitempty" yaml:"http,omitempty"`
	Encrypted     *EncryptedChannel     `toml:"encrypted,omitempty" yaml:"encrypted,omitempty"`
	ReliableMcast *ReliableMcastChannel `toml:"reliable_mcast,omitempty" yaml:"reliable_mcast,omitempty"`
}

type activeView struct {
	ConsumerName   string           `toml:"consumer_name" yaml:"consumer_name"`
	OperationModel OperationModel   `toml:"operation_model" yaml:"operation_model"`
	Consumer       ConsumerTunables `toml:"consumer" yaml:"consumer"`
	Channel        channelView      `toml:"channel" yaml:"channel"`
	Logger         LoggerConfig     `toml:"logger" yaml:"logger"`
	Dictionary     DictionaryConfig `toml:"dictionary" yaml:"dictionary"`
}

func (a *ActiveConfig) view() activeView {
	ch := channelView{Type: a.Channel.Type(), ChannelCommon: a.Channel.ChannelCommon}
	switch v := a.Channel.Variant.(type) {
	case *SocketChannel:
		ch.Socket = v
	case *HTTPChannel:
		ch.HTTP = v
	case *EncryptedChannel:
		ch.Encrypted = v
	case *ReliableMcastChannel:
		ch.ReliableMcast = v
	}
	return activeView{
		ConsumerName:   a.ConsumerName,
		OperationModel: a.OperationModel,
		Consumer:       a.Consumer,
		Channel:        ch,
		Logger:         a.Logger,
		Dictionary:     a.Dictionary,
	}
}

// Dump writes the configuration in TOML ("toml" or "") or YAML ("yaml").
func (a *ActiveConfig) Dump(w io.Writer, format string) error {
	switch format {
	case "", FormatTOML:
		return toml.NewEncoder(w).Encode(a.view())
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(a.view()); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported dump format %q", format)
	}
}

// Debug returns a formatted string showing the sources and the file tree
func (c *ConsumerConfig) Debug() string {
	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	b.WriteString(fmt.Sprintf("File: %s\n", c.fileName))
	b.WriteString(fmt.Sprintf("Programmatic documents: %d\n", c.overlay.Len()))
	if c.consumerName != "" {
		b.WriteString(fmt.Sprintf("Selected consumer: %s\n", c.consumerName))
	}
	if c.hostSet {
		b.WriteString(fmt.Sprintf("Host override: %s:%s\n", c.hostName, c.serviceName))
	}
	b.WriteString(fmt.Sprintf("Operation model: %s\n", c.operationModel))
	b.WriteString(fmt.Sprintf("Diagnostics: %d (%d errors)\n", c.Errors().Len(), c.Errors().Count(SeverityError)))
	b.WriteString("Tree:\n")
	c.tree.Print(&b)
	return b.String()
}
