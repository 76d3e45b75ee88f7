// FILE: lixenwraith/emaconfig/decode_test.go
package emaconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collected struct {
	entries []ConfigError
}

func (c *collected) report(message string, severity Severity) {
	c.entries = append(c.entries, ConfigError{Message: message, Severity: severity})
}

// TestDecodePatch tests decoding source fields into pointer patches
func TestDecodePatch(t *testing.T) {
	t.Run("AbsentFieldsStayNil", func(t *testing.T) {
		var p channelPatch
		unused, err := decodePatch(map[string]any{
			"Host":       "ads1",
			"TcpNodelay": uint64(0),
			"Extra":      "x",
		}, &p)
		require.NoError(t, err)

		require.NotNil(t, p.Host)
		assert.Equal(t, "ads1", *p.Host)
		require.NotNil(t, p.TcpNodelay)
		assert.False(t, *p.TcpNodelay)
		assert.Nil(t, p.Port)
		assert.Nil(t, p.ChannelType)
		assert.Equal(t, []string{"Extra"}, unused)
	})

	t.Run("FlagsFromSignedAndUnsigned", func(t *testing.T) {
		var p consumerPatch
		_, err := decodePatch(map[string]any{
			"ObeyOpenWindow":  uint64(2),
			"HandleException": int64(0),
		}, &p)
		require.NoError(t, err)
		assert.True(t, *p.ObeyOpenWindow)
		assert.False(t, *p.HandleException)
	})

	t.Run("StrictTypes", func(t *testing.T) {
		var p consumerPatch
		_, err := decodePatch(map[string]any{"ItemCountHint": "100"}, &p)
		assert.Error(t, err, "strings are not coerced into numbers")
	})

	t.Run("InvalidTarget", func(t *testing.T) {
		_, err := decodePatch(map[string]any{}, consumerPatch{})
		assert.Error(t, err)
		var nilPatch *consumerPatch
		_, err = decodePatch(map[string]any{}, nilPatch)
		assert.Error(t, err)
	})
}

func TestEntityInput(t *testing.T) {
	reg := NewTypeRegistry()
	var c collected
	input := entityInput([]field{
		{name: "Host", value: AsciiValue("a")},
		{name: "Port", value: UInt64Value(1)},
		{name: "Nested", nested: true},
		{name: "Empty"},
		{name: "Custom", value: Int64Value(3)},
	}, reg, "Channel.C", c.report)

	assert.Equal(t, map[string]any{"Host": "a", "Custom": int64(3)}, input)
	require.Len(t, c.entries, 2)
	assert.Equal(t, SeverityWarning, c.entries[0].Severity)
	assert.Equal(t, "element [Port] of [Channel.C] has type [UInt64] but [Ascii] is expected; element ignored", c.entries[0].Message)
	assert.Equal(t, SeverityVerbose, c.entries[1].Severity)
}

func TestDecodeEntity(t *testing.T) {
	reg := NewTypeRegistry()

	t.Run("UnusedReportedVerbose", func(t *testing.T) {
		var c collected
		var p loggerPatch
		decodeEntity([]field{
			{name: "FileName", value: AsciiValue("out.log")},
			{name: "Host", value: AsciiValue("a")},
		}, reg, "Logger.L", &p, c.report)

		require.NotNil(t, p.FileName)
		assert.Equal(t, "out.log", *p.FileName)
		require.Len(t, c.entries, 1)
		assert.Equal(t, "element [Host] is not used by [Logger.L]; element ignored", c.entries[0].Message)
	})

	t.Run("DecodeFailureReported", func(t *testing.T) {
		var c collected
		var p dictionaryPatch
		// A custom registry can disagree with the patch field type.
		custom := NewTypeRegistry()
		require.NoError(t, custom.Register("RdmFieldDictionaryFileName", KindUInt64))
		decodeEntity([]field{{name: "RdmFieldDictionaryFileName", value: UInt64Value(1)}}, custom, "Dictionary.D", &p, c.report)

		require.Len(t, c.entries, 1)
		assert.Equal(t, SeverityError, c.entries[0].Severity)
		assert.Contains(t, c.entries[0].Message, "failed to apply configuration of [Dictionary.D]")
		assert.Nil(t, p.RdmFieldDictionaryFileName)
	})

	t.Run("NothingToDecode", func(t *testing.T) {
		var c collected
		var p consumerPatch
		decodeEntity(nil, reg, "Consumer.C", &p, c.report)
		assert.Empty(t, c.entries)
	})
}

func TestOverlayFieldsCanonicalNames(t *testing.T) {
	fields := overlayFields(ElementList{
		UInt("LoginRequestTimeout", 5),
		Nested("Sub", NewMap()),
	}, NewTypeRegistry())

	require.Len(t, fields, 2)
	assert.Equal(t, "LoginRequestTimeOut", fields[0].name)
	assert.True(t, fields[1].nested)
}
