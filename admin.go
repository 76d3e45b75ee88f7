// FILE: lixenwraith/emaconfig/admin.go
package emaconfig

import (
	"fmt"
	"os/user"
)

// Domain is the message domain of an administrative request.
type Domain uint8

const (
	DomainLogin      Domain = 1
	DomainSource     Domain = 4
	DomainDictionary Domain = 5
)

func (d Domain) String() string {
	switch d {
	case DomainLogin:
		return "Login"
	case DomainSource:
		return "Source"
	case DomainDictionary:
		return "Dictionary"
	}
	return fmt.Sprintf("Domain(%d)", uint8(d))
}

// Dictionary names a dictionary request may carry.
const (
	FieldDictionaryName = "RWFFld"
	EnumDictionaryName  = "RWFEnum"
)

// RequestMsg is an already decoded request message. Only the key fields the
// configuration needs are modelled; the encoded payloads are carried as bytes.
type RequestMsg struct {
	Domain   Domain
	StreamID int32

	Name           string
	HasName        bool
	NameType       uint8
	HasNameType    bool
	ServiceID      uint16
	HasServiceID   bool
	ServiceName    string
	HasServiceName bool
	Filter         uint32
	HasFilter      bool

	NoRefresh bool
	Streaming bool

	// Attributes is the decoded key attribute element list.
	Attributes ElementList

	ExtendedHeader []byte
	Payload        []byte
}

// Clone returns a deep copy that shares no memory with m.
func (m *RequestMsg) Clone() *RequestMsg {
	if m == nil {
		return nil
	}
	cp := *m
	if m.Attributes != nil {
		cp.Attributes = make(ElementList, len(m.Attributes))
		copy(cp.Attributes, m.Attributes)
	}
	if m.ExtendedHeader != nil {
		cp.ExtendedHeader = append([]byte(nil), m.ExtendedHeader...)
	}
	if m.Payload != nil {
		cp.Payload = append([]byte(nil), m.Payload...)
	}
	return &cp
}

// LoginRequest is the login template sent when a session connects.
type LoginRequest struct {
	Username        string `ema:"-"`
	Password        string `ema:"Password"`
	Position        string `ema:"Position"`
	ApplicationID   string `ema:"ApplicationId"`
	ApplicationName string `ema:"ApplicationName"`
	InstanceID      string `ema:"InstanceId"`

	SingleOpen                        uint64 `ema:"SingleOpen"`
	AllowSuspectData                  uint64 `ema:"AllowSuspectData"`
	ProvidePermissionProfile          uint64 `ema:"ProvidePermissionProfile"`
	ProvidePermissionExpressions      uint64 `ema:"ProvidePermissionExpressions"`
	SupportProviderDictionaryDownload uint64 `ema:"SupportProviderDictionaryDownload"`
	DownloadConnectionConfig          uint64 `ema:"DownloadConnectionConfig"`
	Role                              uint64 `ema:"Role"`
}

// DefaultLoginRequest returns the login template used when nothing was set.
func DefaultLoginRequest() LoginRequest {
	name := "user"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}
	return LoginRequest{
		Username:                 name,
		ApplicationID:            "256",
		ApplicationName:          "ema",
		SingleOpen:               1,
		AllowSuspectData:         1,
		ProvidePermissionProfile: 1,
	}
}

// loginAttributes types the login attribute element list.
func loginAttributes() *TypeRegistry {
	r := &TypeRegistry{kinds: make(map[string]Kind), aliases: map[string]string{}}
	for _, k := range []string{"ApplicationId", "ApplicationName", "Position", "Password", "InstanceId"} {
		r.kinds[k] = KindAscii
	}
	for _, k := range []string{
		"SingleOpen", "AllowSuspectData", "ProvidePermissionProfile", "ProvidePermissionExpressions",
		"SupportProviderDictionaryDownload", "DownloadConnectionConfig", "Role",
	} {
		r.kinds[k] = KindUInt64
	}
	return r
}

// AdminRequests stores the request templates captured from AddAdminMsg.
type AdminRequests struct {
	login           LoginRequest
	directory       *RequestMsg
	fieldDictionary *RequestMsg
	enumDictionary  *RequestMsg
}

// NewAdminRequests returns templates holding the defaults.
func NewAdminRequests() *AdminRequests {
	return &AdminRequests{login: DefaultLoginRequest()}
}

// Clear restores the defaults and drops captured templates.
func (a *AdminRequests) Clear() {
	*a = AdminRequests{login: DefaultLoginRequest()}
}

// Login returns a copy of the login template.
func (a *AdminRequests) Login() LoginRequest { return a.login }

// Directory returns a copy of the directory template, or nil.
func (a *AdminRequests) Directory() *RequestMsg { return a.directory.Clone() }

// FieldDictionary returns a copy of the RWFFld template, or nil.
func (a *AdminRequests) FieldDictionary() *RequestMsg { return a.fieldDictionary.Clone() }

// EnumDictionary returns a copy of the RWFEnum template, or nil.
func (a *AdminRequests) EnumDictionary() *RequestMsg { return a.enumDictionary.Clone() }

// Add captures msg according to its domain. Rejected messages leave an Error diagnostic.
func (a *AdminRequests) Add(msg *RequestMsg, report reporter) {
	if msg == nil {
		report("null request message passed into addAdminMsg; message ignored", SeverityError)
		return
	}
	switch msg.Domain {
	case DomainLogin:
		a.addLogin(msg, report)
	case DomainDictionary:
		a.addDictionary(msg, report)
	case DomainSource:
		a.directory = msg.Clone()
	default:
		report(fmt.Sprintf("Request message with unhandled domain passed into addAdminMsg. Domain type='%d'. ", uint8(msg.Domain)), SeverityError)
	}
}

func (a *AdminRequests) addLogin(msg *RequestMsg, report reporter) {
	login := a.login
	if msg.HasName {
		login.Username = msg.Name
	}
	fields := overlayFields(msg.Attributes, loginAttributes())
	decodeEntity(fields, loginAttributes(), "login request", &login, report)
	a.login = login
}

func (a *AdminRequests) addDictionary(msg *RequestMsg, report reporter) {
	switch {
	case !msg.HasName:
		report("Received dictionary request message contains no dictionary name. Message ignored.", SeverityError)
		return
	case !msg.HasServiceID && !msg.HasServiceName:
		report("Received dictionary request message contains no serviceId. Message ignored.", SeverityError)
		return
	case !msg.HasFilter:
		report("Received dictionary request message contains no filter. Message ignored.", SeverityError)
		return
	case msg.NoRefresh:
		report("Received dictionary request message contains no_refresh flag. Message ignored.", SeverityError)
		return
	}

	switch msg.Name {
	case FieldDictionaryName:
		a.fieldDictionary = msg.Clone()
	case EnumDictionaryName:
		a.enumDictionary = msg.Clone()
	default:
		report("Received dictionary request message contains unrecognized dictionary name. Message ignored.", SeverityError)
	}
}
