// FILE: lixenwraith/emaconfig/enum_test.go
package emaconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumCatalogConvert(t *testing.T) {
	c := NewEnumCatalog()

	t.Run("KnownSymbols", func(t *testing.T) {
		tests := []struct {
			literal string
			code    uint16
		}{
			{"ChannelType::RSSL_SOCKET", uint16(ChannelTypeSocket)},
			{"ChannelType::RSSL_ENCRYPTED", uint16(ChannelTypeEncrypted)},
			{"ChannelType::RSSL_HTTP", uint16(ChannelTypeHTTP)},
			{"ChannelType::RSSL_RELIABLE_MCAST", uint16(ChannelTypeReliableMcast)},
			{"CompressionType::LZ4", uint16(CompressionLZ4)},
			{"LoggerSeverity::NoLogMsg", uint16(SeverityNoLogMsg)},
			{"LoggerType::Stdout", uint16(LoggerTypeStdout)},
			{"DictionaryType::FileDictionary", uint16(DictionaryTypeFile)},
		}
		for _, tt := range tests {
			v, err := c.Convert(tt.literal)
			require.NoError(t, err, tt.literal)
			code, ok := v.Enum()
			require.True(t, ok)
			assert.Equal(t, tt.code, code, tt.literal)
			assert.Equal(t, tt.literal, v.String())
		}
	})

	t.Run("SingleColon", func(t *testing.T) {
		_, err := c.Convert("ChannelType:Socket")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected typename::value")
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		_, err := c.Convert("Flavour::Vanilla")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no implementation in convertEnum for enumType [Flavour]")
	})

	t.Run("UnknownSymbol", func(t *testing.T) {
		_, err := c.Convert("ChannelType::RSSL_CARRIER_PIGEON")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "[ChannelType]")
		assert.Contains(t, err.Error(), "[RSSL_CARRIER_PIGEON]")
	})
}

func TestEnumCatalogExtend(t *testing.T) {
	c := NewEnumCatalog()
	c.Add(CategoryCompressionType, map[string]uint16{"Zstd": 3})

	v, err := c.Convert("CompressionType::Zstd")
	require.NoError(t, err)
	code, _ := v.Enum()
	assert.Equal(t, uint16(3), code)

	sym, ok := c.Symbol(CategoryCompressionType, 1)
	assert.True(t, ok)
	assert.Equal(t, "ZLib", sym)

	_, ok = c.Code(CategoryCompressionType, "LZ4")
	assert.True(t, ok, "existing symbols survive extension")
	assert.Contains(t, c.Categories(), CategoryLoggerSeverity)
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, ChannelTypeReliableMcast.Valid())
	assert.False(t, ChannelType(3).Valid())
	assert.Equal(t, "ChannelType(3)", ChannelType(3).String())
	assert.False(t, CompressionType(9).Valid())
	assert.False(t, LoggerType(2).Valid())
	assert.False(t, DictionaryType(2).Valid())

	text, err := ChannelTypeHTTP.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "RSSL_HTTP", string(text))
}

func TestTypeRegistry(t *testing.T) {
	r := NewTypeRegistry()

	tests := []struct {
		name string
		kind Kind
	}{
		{"Host", KindAscii},
		{"ChannelType", KindEnum},
		{"ReconnectAttemptLimit", KindInt64},
		{"TcpNodelay", KindUInt64},
		{"LoginRequestTimeout", KindUInt64},
		{"CatchUnhandledException", KindUInt64},
	}
	for _, tt := range tests {
		k, ok := r.Lookup(tt.name)
		require.True(t, ok, tt.name)
		assert.Equal(t, tt.kind, k, tt.name)
	}

	assert.Equal(t, "HandleException", r.Canonical("CatchUnhandledException"))
	_, ok := r.Lookup("NoSuchKey")
	assert.False(t, ok)

	_, err := r.NewElement("NoSuchKey", "1", NoNode, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported configuration element [NoSuchKey]")

	e, err := r.NewElement("LoginRequestTimeout", "5", 3, nil)
	require.NoError(t, err)
	assert.Equal(t, "LoginRequestTimeOut", e.Name)
	assert.Equal(t, NodeID(3), e.Owner())

	require.NoError(t, r.Register("CustomKey", KindInt64))
	k, _ := r.Lookup("CustomKey")
	assert.Equal(t, KindInt64, k)
	assert.Error(t, r.Register("", KindAscii))
	assert.Error(t, r.Register("Bad", Kind(42)))
	assert.Contains(t, r.Names(), "CustomKey")
}
