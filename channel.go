// FILE: lixenwraith/emaconfig/channel.go
package emaconfig

const (
	DefaultHostName    = "localhost"
	DefaultServiceName = "14002"
	DefaultChannelName = "Channel"
)

// ChannelCommon holds the fields every channel variant shares.
type ChannelCommon struct {
	Name                    string          `toml:"name" yaml:"name"`
	InterfaceName           string          `toml:"interface_name" yaml:"interface_name"`
	CompressionType         CompressionType `toml:"compression_type" yaml:"compression_type"`
	GuaranteedOutputBuffers uint64          `toml:"guaranteed_output_buffers" yaml:"guaranteed_output_buffers"`
	ConnectionPingTimeout   uint64          `toml:"connection_ping_timeout" yaml:"connection_ping_timeout"`
	ReconnectAttemptLimit   int64           `toml:"reconnect_attempt_limit" yaml:"reconnect_attempt_limit"`
	ReconnectMinDelay       int64           `toml:"reconnect_min_delay" yaml:"reconnect_min_delay"`
	ReconnectMaxDelay       int64           `toml:"reconnect_max_delay" yaml:"reconnect_max_delay"`
	XmlTraceFileName        string          `toml:"xml_trace_file_name" yaml:"xml_trace_file_name"`
	XmlTraceMaxFileSize     int64           `toml:"xml_trace_max_file_size" yaml:"xml_trace_max_file_size"`
	XmlTraceToFile          bool            `toml:"xml_trace_to_file" yaml:"xml_trace_to_file"`
	XmlTraceToStdout        bool            `toml:"xml_trace_to_stdout" yaml:"xml_trace_to_stdout"`
	XmlTraceToMultipleFiles bool            `toml:"xml_trace_to_multiple_files" yaml:"xml_trace_to_multiple_files"`
	XmlTraceWrite           bool            `toml:"xml_trace_write" yaml:"xml_trace_write"`
	XmlTraceRead            bool            `toml:"xml_trace_read" yaml:"xml_trace_read"`
	MsgKeyInUpdates         bool            `toml:"msg_key_in_updates" yaml:"msg_key_in_updates"`
}

func defaultChannelCommon() ChannelCommon {
	return ChannelCommon{
		Name:                    DefaultChannelName,
		CompressionType:         CompressionNone,
		GuaranteedOutputBuffers: 100,
		ConnectionPingTimeout:   30,
		ReconnectAttemptLimit:   -1,
		ReconnectMinDelay:       1000,
		ReconnectMaxDelay:       5000,
		XmlTraceFileName:        "EmaTrace",
		XmlTraceMaxFileSize:     100000000,
		XmlTraceWrite:           true,
		XmlTraceRead:            true,
	}
}

// ChannelVariant is the type-specific part of a channel. The set of
// implementations is closed: SocketChannel, HTTPChannel, EncryptedChannel
// and ReliableMcastChannel.
type ChannelVariant interface {
	ChannelType() ChannelType
	clone() ChannelVariant
}

// SocketChannel is a plain TCP connection.
type SocketChannel struct {
	HostName    string `toml:"host_name" yaml:"host_name"`
	ServiceName string `toml:"service_name" yaml:"service_name"`
	TcpNodelay  bool   `toml:"tcp_nodelay" yaml:"tcp_nodelay"`
}

func (*SocketChannel) ChannelType() ChannelType { return ChannelTypeSocket }
func (c *SocketChannel) clone() ChannelVariant  { cp := *c; return &cp }

// HTTPChannel tunnels through HTTP.
type HTTPChannel struct {
	HostName    string `toml:"host_name" yaml:"host_name"`
	ServiceName string `toml:"service_name" yaml:"service_name"`
	TcpNodelay  bool   `toml:"tcp_nodelay" yaml:"tcp_nodelay"`
}

func (*HTTPChannel) ChannelType() ChannelType { return ChannelTypeHTTP }
func (c *HTTPChannel) clone() ChannelVariant  { cp := *c; return &cp }

// EncryptedChannel tunnels through HTTPS.
type EncryptedChannel struct {
	HostName    string `toml:"host_name" yaml:"host_name"`
	ServiceName string `toml:"service_name" yaml:"service_name"`
	TcpNodelay  bool   `toml:"tcp_nodelay" yaml:"tcp_nodelay"`
}

func (*EncryptedChannel) ChannelType() ChannelType { return ChannelTypeEncrypted }
func (c *EncryptedChannel) clone() ChannelVariant  { cp := *c; return &cp }

// ReliableMcastChannel is a reliable multicast transport.
type ReliableMcastChannel struct {
	RecvAddress  string `toml:"recv_address" yaml:"recv_address"`
	RecvPort     string `toml:"recv_port" yaml:"recv_port"`
	SendAddress  string `toml:"send_address" yaml:"send_address"`
	SendPort     string `toml:"send_port" yaml:"send_port"`
	UnicastPort  string `toml:"unicast_port" yaml:"unicast_port"`
	HsmInterface string `toml:"hsm_interface" yaml:"hsm_interface"`
}

func (*ReliableMcastChannel) ChannelType() ChannelType { return ChannelTypeReliableMcast }
func (c *ReliableMcastChannel) clone() ChannelVariant  { cp := *c; return &cp }

// NewChannelVariant returns a variant of type t holding its defaults.
// Unknown types yield a socket variant.
func NewChannelVariant(t ChannelType) ChannelVariant {
	switch t {
	case ChannelTypeHTTP:
		return &HTTPChannel{HostName: DefaultHostName, ServiceName: DefaultServiceName, TcpNodelay: true}
	case ChannelTypeEncrypted:
		return &EncryptedChannel{HostName: DefaultHostName, ServiceName: DefaultServiceName, TcpNodelay: true}
	case ChannelTypeReliableMcast:
		return &ReliableMcastChannel{}
	default:
		return &SocketChannel{HostName: DefaultHostName, ServiceName: DefaultServiceName, TcpNodelay: true}
	}
}

// ChannelConfig is the resolved channel: common fields plus exactly one variant.
type ChannelConfig struct {
	ChannelCommon
	Variant ChannelVariant
}

// NewChannelConfig returns a socket channel with default settings.
func NewChannelConfig() ChannelConfig {
	return ChannelConfig{ChannelCommon: defaultChannelCommon(), Variant: NewChannelVariant(ChannelTypeSocket)}
}

// Type returns the variant's channel type.
func (c ChannelConfig) Type() ChannelType {
	if c.Variant == nil {
		return ChannelTypeSocket
	}
	return c.Variant.ChannelType()
}

// SetType replaces the variant when t differs from the current type.
// Common fields are kept; variant fields restart from their defaults.
func (c *ChannelConfig) SetType(t ChannelType) {
	if c.Variant != nil && c.Variant.ChannelType() == t {
		return
	}
	c.Variant = NewChannelVariant(t)
}

// Endpoint returns host and service for connection-oriented variants.
func (c ChannelConfig) Endpoint() (host, service string, ok bool) {
	switch v := c.Variant.(type) {
	case *SocketChannel:
		return v.HostName, v.ServiceName, true
	case *HTTPChannel:
		return v.HostName, v.ServiceName, true
	case *EncryptedChannel:
		return v.HostName, v.ServiceName, true
	}
	return "", "", false
}

func (c ChannelConfig) clone() ChannelConfig {
	cp := c
	if c.Variant != nil {
		cp.Variant = c.Variant.clone()
	}
	return cp
}
