// FILE: lixenwraith/emaconfig/patch.go
package emaconfig

import "fmt"

// Patch structs hold one source's view of an entity. A nil field was absent
// in that source and leaves the target untouched.

type consumerPatch struct {
	Name       *string `ema:"Name"`
	Channel    *string `ema:"Channel"`
	Logger     *string `ema:"Logger"`
	Dictionary *string `ema:"Dictionary"`

	ItemCountHint              *uint64 `ema:"ItemCountHint"`
	ServiceCountHint           *uint64 `ema:"ServiceCountHint"`
	ObeyOpenWindow             *bool   `ema:"ObeyOpenWindow"`
	PostAckTimeout             *uint64 `ema:"PostAckTimeout"`
	RequestTimeout             *uint64 `ema:"RequestTimeout"`
	MaxOutstandingPosts        *uint64 `ema:"MaxOutstandingPosts"`
	DispatchTimeoutApiThread   *int64  `ema:"DispatchTimeoutApiThread"`
	MaxDispatchCountApiThread  *uint64 `ema:"MaxDispatchCountApiThread"`
	MaxDispatchCountUserThread *uint64 `ema:"MaxDispatchCountUserThread"`
	PipePort                   *int64  `ema:"PipePort"`
	LoginRequestTimeOut        *uint64 `ema:"LoginRequestTimeOut"`
	DirectoryRequestTimeOut    *uint64 `ema:"DirectoryRequestTimeOut"`
	DictionaryRequestTimeOut   *uint64 `ema:"DictionaryRequestTimeOut"`
	HandleException            *bool   `ema:"HandleException"`
}

type channelPatch struct {
	Name                    *string `ema:"Name"`
	ChannelType             *uint16 `ema:"ChannelType"`
	InterfaceName           *string `ema:"InterfaceName"`
	CompressionType         *uint16 `ema:"CompressionType"`
	GuaranteedOutputBuffers *uint64 `ema:"GuaranteedOutputBuffers"`
	ConnectionPingTimeout   *uint64 `ema:"ConnectionPingTimeout"`
	ReconnectAttemptLimit   *int64  `ema:"ReconnectAttemptLimit"`
	ReconnectMinDelay       *int64  `ema:"ReconnectMinDelay"`
	ReconnectMaxDelay       *int64  `ema:"ReconnectMaxDelay"`
	XmlTraceFileName        *string `ema:"XmlTraceFileName"`
	XmlTraceMaxFileSize     *int64  `ema:"XmlTraceMaxFileSize"`
	XmlTraceToFile          *bool   `ema:"XmlTraceToFile"`
	XmlTraceToStdout        *bool   `ema:"XmlTraceToStdout"`
	XmlTraceToMultipleFiles *bool   `ema:"XmlTraceToMultipleFiles"`
	XmlTraceWrite           *bool   `ema:"XmlTraceWrite"`
	XmlTraceRead            *bool   `ema:"XmlTraceRead"`
	MsgKeyInUpdates         *bool   `ema:"MsgKeyInUpdates"`

	Host       *string `ema:"Host"`
	Hostname   *string `ema:"Hostname"`
	Port       *string `ema:"Port"`
	TcpNodelay *bool   `ema:"TcpNodelay"`

	RecvAddress  *string `ema:"RecvAddress"`
	RecvPort     *string `ema:"RecvPort"`
	SendAddress  *string `ema:"SendAddress"`
	SendPort     *string `ema:"SendPort"`
	UnicastPort  *string `ema:"UnicastPort"`
	HsmInterface *string `ema:"HsmInterface"`
}

type loggerPatch struct {
	Name                      *string `ema:"Name"`
	LoggerType                *uint16 `ema:"LoggerType"`
	LoggerSeverity            *uint16 `ema:"LoggerSeverity"`
	FileName                  *string `ema:"FileName"`
	IncludeDateInLoggerOutput *bool   `ema:"IncludeDateInLoggerOutput"`
}

type dictionaryPatch struct {
	Name                       *string `ema:"Name"`
	DictionaryType             *uint16 `ema:"DictionaryType"`
	RdmFieldDictionaryFileName *string `ema:"RdmFieldDictionaryFileName"`
	EnumTypeDefFileName        *string `ema:"EnumTypeDefFileName"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func invalidEnum(category string, code uint16, origin string, fallback fmt.Stringer) string {
	return fmt.Sprintf("Invalid %s [%d] in %s. Use default %s [%s]", category, code, origin, category, fallback)
}

func (p *consumerPatch) apply(c *ConsumerTunables) {
	set(&c.ItemCountHint, p.ItemCountHint)
	set(&c.ServiceCountHint, p.ServiceCountHint)
	set(&c.ObeyOpenWindow, p.ObeyOpenWindow)
	set(&c.PostAckTimeout, p.PostAckTimeout)
	set(&c.RequestTimeout, p.RequestTimeout)
	set(&c.MaxOutstandingPosts, p.MaxOutstandingPosts)
	set(&c.DispatchTimeoutApiThread, p.DispatchTimeoutApiThread)
	set(&c.MaxDispatchCountApiThread, p.MaxDispatchCountApiThread)
	set(&c.MaxDispatchCountUserThread, p.MaxDispatchCountUserThread)
	set(&c.PipePort, p.PipePort)
	set(&c.LoginRequestTimeOut, p.LoginRequestTimeOut)
	set(&c.DirectoryRequestTimeOut, p.DirectoryRequestTimeOut)
	set(&c.DictionaryRequestTimeOut, p.DictionaryRequestTimeOut)
	set(&c.HandleException, p.HandleException)
}

// apply writes the patch into c. A ChannelType different from the current one
// replaces the variant before variant fields are written.
func (p *channelPatch) apply(c *ChannelConfig, origin string, report reporter) {
	if p.ChannelType != nil {
		t := ChannelType(*p.ChannelType)
		if !t.Valid() {
			report(invalidEnum(CategoryChannelType, *p.ChannelType, origin, ChannelTypeSocket), SeverityError)
			t = ChannelTypeSocket
		}
		c.SetType(t)
	}
	if p.CompressionType != nil {
		ct := CompressionType(*p.CompressionType)
		if !ct.Valid() {
			report(invalidEnum(CategoryCompressionType, *p.CompressionType, origin, CompressionNone), SeverityError)
			ct = CompressionNone
		}
		c.CompressionType = ct
	}

	set(&c.InterfaceName, p.InterfaceName)
	set(&c.GuaranteedOutputBuffers, p.GuaranteedOutputBuffers)
	set(&c.ConnectionPingTimeout, p.ConnectionPingTimeout)
	set(&c.ReconnectAttemptLimit, p.ReconnectAttemptLimit)
	set(&c.ReconnectMinDelay, p.ReconnectMinDelay)
	set(&c.ReconnectMaxDelay, p.ReconnectMaxDelay)
	set(&c.XmlTraceFileName, p.XmlTraceFileName)
	set(&c.XmlTraceMaxFileSize, p.XmlTraceMaxFileSize)
	set(&c.XmlTraceToFile, p.XmlTraceToFile)
	set(&c.XmlTraceToStdout, p.XmlTraceToStdout)
	set(&c.XmlTraceToMultipleFiles, p.XmlTraceToMultipleFiles)
	set(&c.XmlTraceWrite, p.XmlTraceWrite)
	set(&c.XmlTraceRead, p.XmlTraceRead)
	set(&c.MsgKeyInUpdates, p.MsgKeyInUpdates)

	host := p.Host
	if host == nil {
		host = p.Hostname
	}
	switch v := c.Variant.(type) {
	case *SocketChannel:
		set(&v.HostName, host)
		set(&v.ServiceName, p.Port)
		set(&v.TcpNodelay, p.TcpNodelay)
	case *HTTPChannel:
		set(&v.HostName, host)
		set(&v.ServiceName, p.Port)
		set(&v.TcpNodelay, p.TcpNodelay)
	case *EncryptedChannel:
		set(&v.HostName, host)
		set(&v.ServiceName, p.Port)
		set(&v.TcpNodelay, p.TcpNodelay)
	case *ReliableMcastChannel:
		set(&v.RecvAddress, p.RecvAddress)
		set(&v.RecvPort, p.RecvPort)
		set(&v.SendAddress, p.SendAddress)
		set(&v.SendPort, p.SendPort)
		set(&v.UnicastPort, p.UnicastPort)
		set(&v.HsmInterface, p.HsmInterface)
	}
}

func (p *loggerPatch) apply(l *LoggerConfig, origin string, report reporter) {
	if p.LoggerType != nil {
		t := LoggerType(*p.LoggerType)
		if !t.Valid() {
			report(invalidEnum(CategoryLoggerType, *p.LoggerType, origin, LoggerTypeFile), SeverityError)
			t = LoggerTypeFile
		}
		l.Type = t
	}
	if p.LoggerSeverity != nil {
		s := Severity(*p.LoggerSeverity)
		if *p.LoggerSeverity > uint16(SeverityNoLogMsg) {
			report(invalidEnum(CategoryLoggerSeverity, *p.LoggerSeverity, origin, SeveritySuccess), SeverityError)
			s = SeveritySuccess
		}
		l.Severity = s
	}
	set(&l.FileName, p.FileName)
	set(&l.IncludeDateInLoggerOutput, p.IncludeDateInLoggerOutput)
}

func (p *dictionaryPatch) apply(d *DictionaryConfig, origin string, report reporter) {
	if p.DictionaryType != nil {
		t := DictionaryType(*p.DictionaryType)
		if !t.Valid() {
			report(invalidEnum(CategoryDictionaryType, *p.DictionaryType, origin, DictionaryTypeChannel), SeverityError)
			t = DictionaryTypeChannel
		}
		d.Type = t
	}
	set(&d.RdmFieldDictionaryFileName, p.RdmFieldDictionaryFileName)
	set(&d.EnumTypeDefFileName, p.EnumTypeDefFileName)
}
