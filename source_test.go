// FILE: lixenwraith/emaconfig/source_test.go
package emaconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<EmaConfig>
	<ConsumerGroup>
		<DefaultConsumer value="Consumer_2"/>
		<ConsumerList>
			<Consumer>
				<Name value="Consumer_1"/>
				<Channel value="Channel_1"/>
			</Consumer>
			<Consumer>
				<Name value="Consumer_2"/>
				<Channel value="Channel_2"/>
				<Logger value="Logger_1"/>
				<ItemCountHint value="5000"/>
				<ObeyOpenWindow value="0"/>
			</Consumer>
		</ConsumerList>
	</ConsumerGroup>
	<ChannelGroup>
		<ChannelList>
			<Channel>
				<Name value="Channel_1"/>
				<ChannelType value="ChannelType::RSSL_SOCKET"/>
				<Host value="ads1"/>
				<Port value="14002"/>
			</Channel>
			<Channel>
				<Name value="Channel_2"/>
				<ChannelType value="ChannelType::RSSL_HTTP"/>
				<Host value="ads2"/>
				<Port value="8080"/>
				<TcpNodelay value="1"/>
				<ReconnectAttemptLimit value="-1"/>
			</Channel>
		</ChannelList>
	</ChannelGroup>
	<LoggerGroup>
		<LoggerList>
			<Logger>
				<Name value="Logger_1"/>
				<LoggerType value="LoggerType::Stdout"/>
			</Logger>
		</LoggerList>
	</LoggerGroup>
</EmaConfig>
`

const sampleTOML = `
[EmaConfig.ConsumerGroup]
DefaultConsumer = "Consumer_2"

[[EmaConfig.ConsumerGroup.ConsumerList.Consumer]]
Name = "Consumer_1"
Channel = "Channel_1"

[[EmaConfig.ConsumerGroup.ConsumerList.Consumer]]
Name = "Consumer_2"
Channel = "Channel_2"
Logger = "Logger_1"
ItemCountHint = 5000
ObeyOpenWindow = false

[[EmaConfig.ChannelGroup.ChannelList.Channel]]
Name = "Channel_1"
ChannelType = "ChannelType::RSSL_SOCKET"
Host = "ads1"
Port = "14002"

[[EmaConfig.ChannelGroup.ChannelList.Channel]]
Name = "Channel_2"
ChannelType = "ChannelType::RSSL_HTTP"
Host = "ads2"
Port = "8080"
TcpNodelay = true
ReconnectAttemptLimit = -1

[[EmaConfig.LoggerGroup.LoggerList.Logger]]
Name = "Logger_1"
LoggerType = "LoggerType::Stdout"
`

const sampleYAML = `
EmaConfig:
  ConsumerGroup:
    DefaultConsumer: Consumer_2
    ConsumerList:
      Consumer:
        - Name: Consumer_1
          Channel: Channel_1
        - Name: Consumer_2
          Channel: Channel_2
          Logger: Logger_1
          ItemCountHint: 5000
          ObeyOpenWindow: false
  ChannelGroup:
    ChannelList:
      Channel:
        - Name: Channel_1
          ChannelType: ChannelType::RSSL_SOCKET
          Host: ads1
          Port: "14002"
        - Name: Channel_2
          ChannelType: ChannelType::RSSL_HTTP
          Host: ads2
          Port: "8080"
          TcpNodelay: true
          ReconnectAttemptLimit: -1
  LoggerGroup:
    LoggerList:
      Logger:
        - Name: Logger_1
          LoggerType: LoggerType::Stdout
`

const sampleJSON = `{
  "EmaConfig": {
    "ConsumerGroup": {
      "DefaultConsumer": "Consumer_2",
      "ConsumerList": {
        "Consumer": [
          {"Name": "Consumer_1", "Channel": "Channel_1"},
          {"Name": "Consumer_2", "Channel": "Channel_2", "Logger": "Logger_1", "ItemCountHint": 5000, "ObeyOpenWindow": false}
        ]
      }
    },
    "ChannelGroup": {
      "ChannelList": {
        "Channel": [
          {"Name": "Channel_1", "ChannelType": "ChannelType::RSSL_SOCKET", "Host": "ads1", "Port": "14002"},
          {"Name": "Channel_2", "ChannelType": "ChannelType::RSSL_HTTP", "Host": "ads2", "Port": "8080", "TcpNodelay": true, "ReconnectAttemptLimit": -1}
        ]
      }
    },
    "LoggerGroup": {
      "LoggerList": {
        "Logger": [
          {"Name": "Logger_1", "LoggerType": "LoggerType::Stdout"}
        ]
      }
    }
  }
}`

// assertSampleTree checks the content every sample document encodes.
func assertSampleTree(t *testing.T, tree *Tree) {
	t.Helper()
	assert.Equal(t, 0, tree.Errors().Count(SeverityWarning), messages(tree.Errors().Entries()))

	def, _ := tree.String(defaultConsumerPath)
	assert.Equal(t, "Consumer_2", def)
	assert.Equal(t, []string{"Consumer_1", "Consumer_2"}, tree.EntityNames(EntityConsumer))
	assert.Equal(t, []string{"Channel_1", "Channel_2"}, tree.EntityNames(EntityChannel))

	hint, ok := tree.UInt64(entityPath(EntityConsumer, "Consumer_2", "ItemCountHint"))
	assert.True(t, ok)
	assert.Equal(t, uint64(5000), hint)
	window, ok := tree.UInt64(entityPath(EntityConsumer, "Consumer_2", "ObeyOpenWindow"))
	assert.True(t, ok)
	assert.Equal(t, uint64(0), window)

	v, ok := tree.Get(entityPath(EntityChannel, "Channel_2", "ChannelType"))
	require.True(t, ok)
	code, _ := v.Enum()
	assert.Equal(t, uint16(ChannelTypeHTTP), code)

	port, _ := tree.String(entityPath(EntityChannel, "Channel_2", "Port"))
	assert.Equal(t, "8080", port)
	nodelay, _ := tree.UInt64(entityPath(EntityChannel, "Channel_2", "TcpNodelay"))
	assert.Equal(t, uint64(1), nodelay)
	limit, ok := tree.Int64(entityPath(EntityChannel, "Channel_2", "ReconnectAttemptLimit"))
	assert.True(t, ok)
	assert.Equal(t, int64(-1), limit)

	lt, ok := tree.Get(entityPath(EntityLogger, "Logger_1", "LoggerType"))
	require.True(t, ok)
	code, _ = lt.Enum()
	assert.Equal(t, uint16(LoggerTypeStdout), code)
}

func TestParsersAgree(t *testing.T) {
	tests := []struct {
		name  string
		parse func([]byte) (*SourceElement, error)
		data  string
	}{
		{"XML", ParseXML, sampleXML},
		{"TOML", ParseTOML, sampleTOML},
		{"YAML", ParseYAML, sampleYAML},
		{"JSON", ParseYAML, sampleJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := tt.parse([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, RootName, root.Name)
			assertSampleTree(t, Build(root, nil, nil))
		})
	}
}

func TestParseXML(t *testing.T) {
	t.Run("ValueAttributeNamedAfterElement", func(t *testing.T) {
		root, err := ParseXML([]byte(`<EmaConfig><Host value="ads1" colour="red"/></EmaConfig>`))
		require.NoError(t, err)
		require.Len(t, root.Children, 1)
		host := root.Children[0]
		assert.Equal(t, []Attribute{{Name: "Host", Value: "ads1"}}, host.Attributes)
		assert.Equal(t, []string{"colour"}, host.Unexpected)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := ParseXML([]byte(`<EmaConfig><Host value="ads1"></EmaConfig>`))
		assert.Error(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseXML([]byte(`<?xml version="1.0"?>`))
		assert.ErrorIs(t, err, errEmptyDocument)
	})

	t.Run("MultipleRoots", func(t *testing.T) {
		_, err := ParseXML([]byte(`<EmaConfig/><EmaConfig/>`))
		assert.Error(t, err)
	})
}

func TestParseTOMLAndYAMLShape(t *testing.T) {
	_, err := ParseTOML([]byte("a = 1\nb = 2\n"))
	assert.Error(t, err, "two top-level keys")

	_, err = ParseTOML([]byte(`EmaConfig = "x"`))
	assert.Error(t, err, "root must be a table")

	_, err = ParseYAML([]byte("- a\n- b\n"))
	assert.Error(t, err, "root must be a mapping")

	_, err = ParseYAML([]byte("a: {}\nb: {}\n"))
	assert.Error(t, err, "single root key")

	root, err := ParseYAML([]byte("EmaConfig:\n  Shared: &s\n    Host: ads1\n  Copy: *s\n"))
	require.NoError(t, err)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "Copy", root.Children[1].Name)
	require.Len(t, root.Children[1].Children, 1)
	assert.Equal(t, "ads1", root.Children[1].Children[0].Attributes[0].Value)
}
