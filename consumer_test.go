// FILE: lixenwraith/emaconfig/consumer_test.go
package emaconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func writeSample(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseHost(t *testing.T) {
	tests := []struct {
		in      string
		host    string
		service string
	}{
		{"", "localhost", "14002"},
		{"svcA", "svcA", "14002"},
		{"svcA:", "svcA", "14002"},
		{":9000", "localhost", "9000"},
		{"ads1:14003", "ads1", "14003"},
		{"a:b:c", "a", "b:c"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			host, service := ParseHost(tt.in)
			assert.Equal(t, tt.host, host)
			assert.Equal(t, tt.service, service)
		})
	}
}

func TestParseHostSplitsAtFirstColon(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		host := rapid.StringMatching(`[a-z][a-z0-9.-]{0,15}`).Draw(t, "host")
		port := rapid.StringMatching(`[0-9a-z:]{1,8}`).Draw(t, "port")

		h, p := ParseHost(host + ":" + port)
		assert.Equal(t, host, h)
		assert.Equal(t, port, p)

		h, p = ParseHost(host)
		assert.Equal(t, host, h)
		assert.Equal(t, DefaultServiceName, p)
	})
}

func TestConsumerConfigFromFile(t *testing.T) {
	path := writeSample(t, "EmaConfig.xml", sampleXML)
	cfg := NewConsumerConfig(WithFileName(path))

	assert.Equal(t, path, cfg.FileName())
	assert.Equal(t, 0, cfg.Errors().Count(SeverityWarning))

	active, err := cfg.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "Consumer_2", active.ConsumerName)
	assert.Equal(t, ChannelTypeHTTP, active.Channel.Type())
}

func TestConsumerConfigHost(t *testing.T) {
	cfg := NewConsumerConfig(WithTree(sampleTree(t)))

	_, _, ok := cfg.HostOverride()
	assert.False(t, ok)

	cfg.Host("svcA")
	host, service, ok := cfg.HostOverride()
	require.True(t, ok)
	assert.Equal(t, "svcA", host)
	assert.Equal(t, "14002", service)

	active, err := cfg.Resolve()
	require.NoError(t, err)
	socket, ok := active.Channel.Variant.(*SocketChannel)
	require.True(t, ok, "host override replaces the RSSL_HTTP channel")
	assert.Equal(t, "svcA", socket.HostName)
	assert.Equal(t, "14002", socket.ServiceName)
}

func TestConsumerConfigConsumerName(t *testing.T) {
	cfg := NewConsumerConfig(WithTree(sampleTree(t)))

	require.NoError(t, cfg.ConsumerName("Consumer_1"))
	assert.Equal(t, "Consumer_1", cfg.SelectedConsumer())

	err := cfg.ConsumerName("Nonexistent")
	require.ErrorIs(t, err, ErrConsumerNotFound)
	assert.Contains(t, err.Error(), "[Nonexistent]")
	assert.Equal(t, "Consumer_1", cfg.SelectedConsumer(), "failed selection keeps the previous one")

	active, err := cfg.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "Consumer_1", active.ConsumerName)
}

func TestConsumerConfigOverlay(t *testing.T) {
	t.Run("ConfigInvalidatesCache", func(t *testing.T) {
		cfg := NewConsumerConfig(WithTree(sampleTree(t)))
		cfg.Config(consumerDoc("", "Consumer_2", Ascii("Channel", "Channel_1")))
		active, err := cfg.Resolve()
		require.NoError(t, err)
		assert.Equal(t, "Channel_1", active.Channel.Name)

		cfg.Config(consumerDoc("", "Consumer_2", Ascii("Channel", "Channel_2")))
		active, err = cfg.Resolve()
		require.NoError(t, err)
		assert.Equal(t, "Channel_2", active.Channel.Name)
		assert.Equal(t, 2, cfg.Overlay().Len())
	})

	t.Run("DefaultConsumerOrder", func(t *testing.T) {
		cfg := NewConsumerConfig(WithTree(sampleTree(t)))
		cfg.Config(consumerDoc("X", ""))
		cfg.Config(consumerDoc("Y", ""))
		active, err := cfg.Resolve()
		require.NoError(t, err)
		assert.Equal(t, "Y", active.ConsumerName)
	})

	t.Run("NilDocument", func(t *testing.T) {
		cfg := NewConsumerConfig(WithTree(sampleTree(t)))
		cfg.Config(nil)
		errs := cfg.Errors().Filter(SeverityError)
		require.Len(t, errs, 1)
		assert.Equal(t, "Invalid Data type='nil' for Programmatic Configure.", errs[0].Message)
		assert.Equal(t, 0, cfg.Overlay().Len())
	})
}

func TestConsumerConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "EmaConfig.xml")
	cfg := NewConsumerConfig(WithFileName(path))

	entries := cfg.Errors().Entries()
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, "failed to extract configuration from ["+path+"]", last.Message)
	assert.Equal(t, SeverityVerbose, last.Severity)
	assert.Equal(t, 0, cfg.Errors().Count(SeveritySuccess))

	active, err := cfg.Resolve()
	require.NoError(t, err)
	assert.Equal(t, DefaultConsumerName, active.ConsumerName)
	assert.Equal(t, NewChannelConfig(), active.Channel)
}

func TestConsumerConfigEmptyFile(t *testing.T) {
	path := writeSample(t, "EmaConfig.xml", "")
	cfg := NewConsumerConfig(WithFileName(path))

	errs := cfg.Errors().Filter(SeverityError)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Message, "file is empty")
	assert.Equal(t, "failed to extract configuration from ["+path+"]", errs[1].Message)

	var buf bytes.Buffer
	require.NoError(t, cfg.PrintErrors(&buf, SeverityError))
	assert.Contains(t, buf.String(), "begin configuration errors:")

	var l recordingLogger
	cfg.LogErrors(&l, SeverityError)
	assert.Len(t, l.entries, 2)
}

func TestConsumerConfigResolveTwice(t *testing.T) {
	path := writeSample(t, "EmaConfig.xml", `<EmaConfig><ConsumerGroup><ConsumerList><Consumer>
<Name value="C"/><Dictionary value="Ghost"/></Consumer></ConsumerList></ConsumerGroup></EmaConfig>`)
	cfg := NewConsumerConfig(WithFileName(path))

	_, err := cfg.Resolve()
	require.NoError(t, err)
	first := cfg.Errors().Entries()
	assert.Contains(t, messages(first), "no configuration found for Dictionary [Ghost]; defaults used")

	_, err = cfg.Resolve()
	require.NoError(t, err)
	assert.Equal(t, first, cfg.Errors().Entries())

	cfg.Config(consumerDoc("", "C", Ascii("Logger", "Phantom")))
	_, err = cfg.Resolve()
	require.NoError(t, err)
	assert.Len(t, cfg.Errors().Entries(), len(first)+1, "new diagnostics are still recorded")
}

func TestConsumerConfigClear(t *testing.T) {
	cfg := NewConsumerConfig(WithTree(sampleTree(t)))
	cfg.OperationModel(UserDispatch).Username("alice").ApplicationID("300")
	cfg.Config(consumerDoc("Consumer_1", ""))

	assert.Equal(t, UserDispatch, cfg.Overrides().OperationModel)
	assert.Equal(t, "alice", cfg.Admin().Login().Username)

	cfg.Clear()
	assert.Equal(t, ApiDispatch, cfg.Overrides().OperationModel)
	assert.Equal(t, DefaultLoginRequest(), cfg.Admin().Login())
	assert.Equal(t, 1, cfg.Overlay().Len(), "documents survive Clear")
}
