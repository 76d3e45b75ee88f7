// FILE: lixenwraith/emaconfig/registry.go
package emaconfig

import (
	"fmt"
	"sort"
)

// TypeRegistry maps configuration key names to their expected value kind.
// A registry is built explicitly and handed to the tree builder and the
// overlay decoder; there is no package-level instance.
type TypeRegistry struct {
	kinds   map[string]Kind
	aliases map[string]string
}

var (
	asciiKeys = []string{
		"Channel", "ConsumerName", "DefaultConsumer", "DefaultSession", "Dictionary",
		"EnumTypeDefFileName", "FileName", "Host", "Hostname", "InterfaceName", "Logger",
		"Name", "Port", "RdmFieldDictionaryFileName", "XmlTraceFileName",
		"RecvAddress", "RecvPort", "SendAddress", "SendPort", "UnicastPort", "HsmInterface",
	}
	enumKeys = []string{
		"ChannelType", "CompressionType", "DictionaryType", "LoggerSeverity", "LoggerType",
	}
	int64Keys = []string{
		"DispatchTimeoutApiThread", "PipePort", "ReconnectAttemptLimit", "ReconnectMaxDelay",
		"ReconnectMinDelay", "XmlTraceMaxFileSize",
	}
	uint64Keys = []string{
		"ConnectionPingTimeout", "DictionaryRequestTimeOut", "DirectoryRequestTimeOut",
		"GuaranteedOutputBuffers", "HandleException", "IncludeDateInLoggerOutput",
		"ItemCountHint", "LoginRequestTimeOut", "MaxDispatchCountApiThread",
		"MaxDispatchCountUserThread", "MaxOutstandingPosts", "MsgKeyInUpdates",
		"ObeyOpenWindow", "PostAckTimeout", "RequestTimeout", "ServiceCountHint",
		"TcpNodelay", "XmlTraceRead", "XmlTraceToFile", "XmlTraceToMultipleFiles",
		"XmlTraceToStdout", "XmlTraceWrite",
	}
)

// NewTypeRegistry returns a registry populated with every supported key.
func NewTypeRegistry() *TypeRegistry {
	r := &TypeRegistry{
		kinds: make(map[string]Kind, len(asciiKeys)+len(enumKeys)+len(int64Keys)+len(uint64Keys)),
		// Programmatic documents historically spelled a few keys differently.
		aliases: map[string]string{
			"LoginRequestTimeout":      "LoginRequestTimeOut",
			"DirectoryRequestTimeout":  "DirectoryRequestTimeOut",
			"DictionaryRequestTimeout": "DictionaryRequestTimeOut",
			"CatchUnhandledException":  "HandleException",
		},
	}
	for _, k := range asciiKeys {
		r.kinds[k] = KindAscii
	}
	for _, k := range enumKeys {
		r.kinds[k] = KindEnum
	}
	for _, k := range int64Keys {
		r.kinds[k] = KindInt64
	}
	for _, k := range uint64Keys {
		r.kinds[k] = KindUInt64
	}
	return r
}

// Register adds or overrides a key.
func (r *TypeRegistry) Register(name string, kind Kind) error {
	if name == "" {
		return fmt.Errorf("registration name cannot be empty")
	}
	switch kind {
	case KindAscii, KindInt64, KindUInt64, KindEnum:
	default:
		return fmt.Errorf("invalid kind %d for key %q", kind, name)
	}
	r.kinds[name] = kind
	return nil
}

// Canonical resolves alternate spellings to the registered key name.
func (r *TypeRegistry) Canonical(name string) string {
	if c, ok := r.aliases[name]; ok {
		return c
	}
	return name
}

// Lookup returns the kind registered for name.
func (r *TypeRegistry) Lookup(name string) (Kind, bool) {
	k, ok := r.kinds[r.Canonical(name)]
	return k, ok
}

// Names returns all registered keys, sorted.
func (r *TypeRegistry) Names() []string {
	names := make([]string, 0, len(r.kinds))
	for n := range r.kinds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NewElement validates raw against the kind registered for name and returns an
// element owned by owner. On failure it returns the diagnostic text.
func (r *TypeRegistry) NewElement(name, raw string, owner NodeID, catalog *EnumCatalog) (Element, error) {
	kind, ok := r.Lookup(name)
	if !ok {
		return Element{}, fmt.Errorf("unsupported configuration element [%s]; element ignored", name)
	}
	v, err := ParseValue(name, kind, raw, catalog)
	if err != nil {
		return Element{}, err
	}
	return Element{Name: r.Canonical(name), Value: v, owner: owner}, nil
}
