// FILE: lixenwraith/emaconfig/admin_test.go
package emaconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dictionaryRequest(name string) *RequestMsg {
	return &RequestMsg{
		Domain:       DomainDictionary,
		Name:         name,
		HasName:      true,
		ServiceID:    1,
		HasServiceID: true,
		Filter:       7,
		HasFilter:    true,
		Streaming:    true,
	}
}

func TestAdminLogin(t *testing.T) {
	cfg := NewConsumerConfig(WithTree(NewTree(RootName, nil, nil)))
	cfg.AddAdminMsg(&RequestMsg{
		Domain:  DomainLogin,
		Name:    "bob",
		HasName: true,
		Attributes: ElementList{
			Ascii("ApplicationId", "777"),
			Ascii("Position", "10.0.0.1/host"),
			UInt("SingleOpen", 0),
			UInt("Role", 1),
			Ascii("Colour", "blue"),
		},
	})

	login := cfg.Admin().Login()
	assert.Equal(t, "bob", login.Username)
	assert.Equal(t, "777", login.ApplicationID)
	assert.Equal(t, "10.0.0.1/host", login.Position)
	assert.Equal(t, uint64(0), login.SingleOpen)
	assert.Equal(t, uint64(1), login.Role)
	assert.Equal(t, "ema", login.ApplicationName, "untouched attributes keep defaults")
	assert.Equal(t, uint64(1), login.AllowSuspectData)

	assert.Contains(t, messages(cfg.Errors().Entries()), "element [Colour] is not used by [login request]; element ignored")
	assert.Equal(t, 0, cfg.Errors().Count(SeverityWarning))

	cfg.Password("secret").Position("p").ApplicationName("app")
	login = cfg.Admin().Login()
	assert.Equal(t, "secret", login.Password)
	assert.Equal(t, "p", login.Position)
	assert.Equal(t, "app", login.ApplicationName)
}

func TestAdminDirectoryAndDictionary(t *testing.T) {
	cfg := NewConsumerConfig(WithTree(NewTree(RootName, nil, nil)))

	dir := &RequestMsg{Domain: DomainSource, Filter: 63, HasFilter: true, Payload: []byte{1, 2}}
	cfg.AddAdminMsg(dir)
	cfg.AddAdminMsg(dictionaryRequest(FieldDictionaryName))
	cfg.AddAdminMsg(dictionaryRequest(EnumDictionaryName))
	assert.Equal(t, 0, cfg.Errors().Len())

	got := cfg.Admin().Directory()
	require.NotNil(t, got)
	assert.Equal(t, uint32(63), got.Filter)

	dir.Payload[0] = 9
	got.Payload[1] = 9
	assert.Equal(t, []byte{1, 2}, cfg.Admin().Directory().Payload, "templates share no memory with callers")

	assert.Equal(t, FieldDictionaryName, cfg.Admin().FieldDictionary().Name)
	assert.Equal(t, EnumDictionaryName, cfg.Admin().EnumDictionary().Name)

	cfg.Admin().Clear()
	assert.Nil(t, cfg.Admin().Directory())
	assert.Nil(t, cfg.Admin().FieldDictionary())
}

func TestAdminRejections(t *testing.T) {
	noName := dictionaryRequest("")
	noName.HasName = false
	noService := dictionaryRequest(FieldDictionaryName)
	noService.HasServiceID = false
	byServiceName := dictionaryRequest(FieldDictionaryName)
	byServiceName.HasServiceID = false
	byServiceName.ServiceName, byServiceName.HasServiceName = "DIRECT_FEED", true
	noFilter := dictionaryRequest(FieldDictionaryName)
	noFilter.HasFilter = false
	noRefresh := dictionaryRequest(FieldDictionaryName)
	noRefresh.NoRefresh = true

	tests := []struct {
		name string
		msg  *RequestMsg
		want string
	}{
		{"Nil", nil, "null request message passed into addAdminMsg; message ignored"},
		{"NoName", noName, "Received dictionary request message contains no dictionary name. Message ignored."},
		{"NoService", noService, "Received dictionary request message contains no serviceId. Message ignored."},
		{"ServiceName", byServiceName, ""},
		{"NoFilter", noFilter, "Received dictionary request message contains no filter. Message ignored."},
		{"NoRefresh", noRefresh, "Received dictionary request message contains no_refresh flag. Message ignored."},
		{"UnknownName", dictionaryRequest("RWFOther"), "Received dictionary request message contains unrecognized dictionary name. Message ignored."},
		{"UnhandledDomain", &RequestMsg{Domain: 6}, "Request message with unhandled domain passed into addAdminMsg. Domain type='6'. "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConsumerConfig(WithTree(NewTree(RootName, nil, nil)))
			cfg.AddAdminMsg(tt.msg)

			errs := cfg.Errors().Filter(SeverityError)
			if tt.want == "" {
				assert.Empty(t, errs)
				assert.NotNil(t, cfg.Admin().FieldDictionary())
				return
			}
			require.Len(t, errs, 1)
			assert.Equal(t, tt.want, errs[0].Message)
			assert.Nil(t, cfg.Admin().FieldDictionary())
		})
	}
}

func TestRequestMsgClone(t *testing.T) {
	var nilMsg *RequestMsg
	assert.Nil(t, nilMsg.Clone())

	m := &RequestMsg{Attributes: ElementList{Ascii("a", "1")}, ExtendedHeader: []byte("h")}
	cp := m.Clone()
	cp.Attributes[0] = Ascii("a", "2")
	cp.ExtendedHeader[0] = 'x'
	v, _ := m.Attributes.Ascii("a")
	assert.Equal(t, "1", v)
	assert.Equal(t, "h", string(m.ExtendedHeader))
	assert.Equal(t, "Dictionary", DomainDictionary.String())
}
