// FILE: lixenwraith/emaconfig/enum.go
package emaconfig

import (
	"fmt"
	"sort"
	"strings"
)

// Enumeration categories understood by the catalog.
const (
	CategoryLoggerSeverity  = "LoggerSeverity"
	CategoryLoggerType      = "LoggerType"
	CategoryDictionaryType  = "DictionaryType"
	CategoryChannelType     = "ChannelType"
	CategoryCompressionType = "CompressionType"
)

// ChannelType is the transport kind of a channel.
type ChannelType uint16

const (
	ChannelTypeSocket        ChannelType = 0
	ChannelTypeEncrypted     ChannelType = 1
	ChannelTypeHTTP          ChannelType = 2
	ChannelTypeReliableMcast ChannelType = 4
)

func (t ChannelType) Valid() bool {
	switch t {
	case ChannelTypeSocket, ChannelTypeEncrypted, ChannelTypeHTTP, ChannelTypeReliableMcast:
		return true
	}
	return false
}

func (t ChannelType) String() string {
	switch t {
	case ChannelTypeSocket:
		return "RSSL_SOCKET"
	case ChannelTypeEncrypted:
		return "RSSL_ENCRYPTED"
	case ChannelTypeHTTP:
		return "RSSL_HTTP"
	case ChannelTypeReliableMcast:
		return "RSSL_RELIABLE_MCAST"
	}
	return fmt.Sprintf("ChannelType(%d)", uint16(t))
}

// CompressionType is the channel compression scheme.
type CompressionType uint16

const (
	CompressionNone CompressionType = 0
	CompressionZLib CompressionType = 1
	CompressionLZ4  CompressionType = 2
)

func (c CompressionType) Valid() bool { return c <= CompressionLZ4 }

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZLib:
		return "ZLib"
	case CompressionLZ4:
		return "LZ4"
	}
	return fmt.Sprintf("CompressionType(%d)", uint16(c))
}

// LoggerType selects the logger output.
type LoggerType uint16

const (
	LoggerTypeFile   LoggerType = 0
	LoggerTypeStdout LoggerType = 1
)

func (l LoggerType) Valid() bool { return l <= LoggerTypeStdout }

func (l LoggerType) String() string {
	switch l {
	case LoggerTypeFile:
		return "File"
	case LoggerTypeStdout:
		return "Stdout"
	}
	return fmt.Sprintf("LoggerType(%d)", uint16(l))
}

// DictionaryType selects where the field dictionary comes from.
type DictionaryType uint16

const (
	DictionaryTypeFile    DictionaryType = 0
	DictionaryTypeChannel DictionaryType = 1
)

func (d DictionaryType) Valid() bool { return d <= DictionaryTypeChannel }

func (d DictionaryType) String() string {
	switch d {
	case DictionaryTypeFile:
		return "FileDictionary"
	case DictionaryTypeChannel:
		return "ChannelDictionary"
	}
	return fmt.Sprintf("DictionaryType(%d)", uint16(d))
}

// EnumCatalog maps "Category::Symbol" literals to integer codes.
type EnumCatalog struct {
	tables map[string]map[string]uint16
}

// NewEnumCatalog returns a catalog holding the built-in categories.
func NewEnumCatalog() *EnumCatalog {
	c := &EnumCatalog{tables: make(map[string]map[string]uint16)}
	c.Add(CategoryLoggerSeverity, map[string]uint16{
		"Verbose":  uint16(SeverityVerbose),
		"Success":  uint16(SeveritySuccess),
		"Warning":  uint16(SeverityWarning),
		"Error":    uint16(SeverityError),
		"NoLogMsg": uint16(SeverityNoLogMsg),
	})
	c.Add(CategoryLoggerType, map[string]uint16{
		"File":   uint16(LoggerTypeFile),
		"Stdout": uint16(LoggerTypeStdout),
	})
	c.Add(CategoryDictionaryType, map[string]uint16{
		"FileDictionary":    uint16(DictionaryTypeFile),
		"ChannelDictionary": uint16(DictionaryTypeChannel),
	})
	c.Add(CategoryChannelType, map[string]uint16{
		"RSSL_SOCKET":         uint16(ChannelTypeSocket),
		"RSSL_HTTP":           uint16(ChannelTypeHTTP),
		"RSSL_ENCRYPTED":      uint16(ChannelTypeEncrypted),
		"RSSL_RELIABLE_MCAST": uint16(ChannelTypeReliableMcast),
	})
	c.Add(CategoryCompressionType, map[string]uint16{
		"None": uint16(CompressionNone),
		"ZLib": uint16(CompressionZLib),
		"LZ4":  uint16(CompressionLZ4),
	})
	return c
}

// Add registers or extends a category.
func (c *EnumCatalog) Add(category string, symbols map[string]uint16) {
	t, ok := c.tables[category]
	if !ok {
		t = make(map[string]uint16, len(symbols))
		c.tables[category] = t
	}
	for s, code := range symbols {
		t[s] = code
	}
}

// Code looks up a single symbol.
func (c *EnumCatalog) Code(category, symbol string) (uint16, bool) {
	t, ok := c.tables[category]
	if !ok {
		return 0, false
	}
	code, ok := t[symbol]
	return code, ok
}

// Symbol returns the symbol registered for code within category.
func (c *EnumCatalog) Symbol(category string, code uint16) (string, bool) {
	for s, v := range c.tables[category] {
		if v == code {
			return s, true
		}
	}
	return "", false
}

// Categories returns the known category names, sorted.
func (c *EnumCatalog) Categories() []string {
	names := make([]string, 0, len(c.tables))
	for n := range c.tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Convert parses a "Category::Symbol" literal.
func (c *EnumCatalog) Convert(literal string) (Value, error) {
	idx := strings.Index(literal, "::")
	if idx == -1 {
		return Value{}, fmt.Errorf("invalid Enum value format [%s]; expected typename::value (e.g., ChannelType::RSSL_SOCKET)", literal)
	}
	category, symbol := literal[:idx], literal[idx+2:]

	t, ok := c.tables[category]
	if !ok {
		return Value{}, fmt.Errorf("no implementation in convertEnum for enumType [%s]", category)
	}
	code, ok := t[symbol]
	if !ok {
		return Value{}, fmt.Errorf("convertEnum has an implementation for enumType [%s] but no appropriate conversion for value [%s]", category, symbol)
	}
	return EnumValue(category, symbol, code), nil
}

// MarshalText renders the symbol; it is what the TOML and YAML dumps print.
func (t ChannelType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (c CompressionType) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (l LoggerType) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (d DictionaryType) MarshalText() ([]byte, error) { return []byte(d.String()), nil }
