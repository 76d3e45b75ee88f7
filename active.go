// FILE: lixenwraith/emaconfig/active.go
package emaconfig

import "fmt"

// DefaultConsumerName is used when neither source names a consumer.
const DefaultConsumerName = "EmaConsumer"

// OperationModel selects who drives event dispatch.
type OperationModel uint8

const (
	ApiDispatch OperationModel = iota
	UserDispatch
)

func (m OperationModel) String() string {
	switch m {
	case ApiDispatch:
		return "ApiDispatch"
	case UserDispatch:
		return "UserDispatch"
	}
	return fmt.Sprintf("OperationModel(%d)", uint8(m))
}

func (m OperationModel) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// ConsumerTunables are the consumer's numeric settings.
type ConsumerTunables struct {
	ItemCountHint              uint64 `toml:"item_count_hint" yaml:"item_count_hint"`
	ServiceCountHint           uint64 `toml:"service_count_hint" yaml:"service_count_hint"`
	ObeyOpenWindow             bool   `toml:"obey_open_window" yaml:"obey_open_window"`
	PostAckTimeout             uint64 `toml:"post_ack_timeout" yaml:"post_ack_timeout"`
	RequestTimeout             uint64 `toml:"request_timeout" yaml:"request_timeout"`
	MaxOutstandingPosts        uint64 `toml:"max_outstanding_posts" yaml:"max_outstanding_posts"`
	DispatchTimeoutApiThread   int64  `toml:"dispatch_timeout_api_thread" yaml:"dispatch_timeout_api_thread"`
	MaxDispatchCountApiThread  uint64 `toml:"max_dispatch_count_api_thread" yaml:"max_dispatch_count_api_thread"`
	MaxDispatchCountUserThread uint64 `toml:"max_dispatch_count_user_thread" yaml:"max_dispatch_count_user_thread"`
	PipePort                   int64  `toml:"pipe_port" yaml:"pipe_port"`
	LoginRequestTimeOut        uint64 `toml:"login_request_timeout" yaml:"login_request_timeout"`
	DirectoryRequestTimeOut    uint64 `toml:"directory_request_timeout" yaml:"directory_request_timeout"`
	DictionaryRequestTimeOut   uint64 `toml:"dictionary_request_timeout" yaml:"dictionary_request_timeout"`
	HandleException            bool   `toml:"handle_exception" yaml:"handle_exception"`
}

// DefaultConsumerTunables returns the compiled-in consumer settings.
func DefaultConsumerTunables() ConsumerTunables {
	return ConsumerTunables{
		ItemCountHint:              100000,
		ServiceCountHint:           513,
		ObeyOpenWindow:             true,
		PostAckTimeout:             15000,
		RequestTimeout:             15000,
		MaxOutstandingPosts:        100000,
		DispatchTimeoutApiThread:   -1,
		MaxDispatchCountApiThread:  100,
		MaxDispatchCountUserThread: 100,
		PipePort:                   9001,
		LoginRequestTimeOut:        45000,
		DirectoryRequestTimeOut:    45000,
		DictionaryRequestTimeOut:   45000,
		HandleException:            true,
	}
}

// LoggerConfig is the resolved logger.
type LoggerConfig struct {
	Name                      string     `toml:"name" yaml:"name"`
	Type                      LoggerType `toml:"type" yaml:"type"`
	Severity                  Severity   `toml:"severity" yaml:"severity"`
	FileName                  string     `toml:"file_name" yaml:"file_name"`
	IncludeDateInLoggerOutput bool       `toml:"include_date" yaml:"include_date"`
}

// DefaultLoggerConfig returns the compiled-in logger settings.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Name:     "Logger",
		Type:     LoggerTypeFile,
		Severity: SeveritySuccess,
		FileName: "emaLog",
	}
}

// DictionaryConfig is the resolved dictionary.
type DictionaryConfig struct {
	Name                       string         `toml:"name" yaml:"name"`
	Type                       DictionaryType `toml:"type" yaml:"type"`
	RdmFieldDictionaryFileName string         `toml:"rdm_field_dictionary_file_name" yaml:"rdm_field_dictionary_file_name"`
	EnumTypeDefFileName        string         `toml:"enum_type_def_file_name" yaml:"enum_type_def_file_name"`
}

// DefaultDictionaryConfig returns the compiled-in dictionary settings.
func DefaultDictionaryConfig() DictionaryConfig {
	return DictionaryConfig{
		Name:                       "Dictionary",
		Type:                       DictionaryTypeChannel,
		RdmFieldDictionaryFileName: "./RDMFieldDictionary",
		EnumTypeDefFileName:        "./enumtype.def",
	}
}

// ActiveConfig is the frozen result of one resolution pass.
type ActiveConfig struct {
	ConsumerName   string
	OperationModel OperationModel
	Consumer       ConsumerTunables
	Channel        ChannelConfig
	Logger         LoggerConfig
	Dictionary     DictionaryConfig
}

func newActiveConfig() *ActiveConfig {
	return &ActiveConfig{
		Consumer:   DefaultConsumerTunables(),
		Channel:    NewChannelConfig(),
		Logger:     DefaultLoggerConfig(),
		Dictionary: DefaultDictionaryConfig(),
	}
}

// Clone returns a deep copy.
func (a *ActiveConfig) Clone() *ActiveConfig {
	cp := *a
	cp.Channel = a.Channel.clone()
	return &cp
}
