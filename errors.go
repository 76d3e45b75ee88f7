// FILE: lixenwraith/emaconfig/errors.go
package emaconfig

import (
	"errors"
	"fmt"
	"io"
)

// ErrorSource is the source name attached to drained diagnostics.
const ErrorSource = "EmaConfig"

var (
	// ErrConsumerNotFound is returned when a caller names a consumer the file
	// configuration does not define.
	ErrConsumerNotFound = errors.New("non-existent consumer name")
	// ErrNilDocument is returned when a nil programmatic document is registered.
	ErrNilDocument = errors.New("programmatic configuration document is nil")
	// ErrInvalidDocument marks documents that cannot be decoded into a Map.
	ErrInvalidDocument = errors.New("invalid programmatic configuration document")
)

// Severity orders diagnostics. NoLogMsg is only used as a filter minimum.
type Severity uint8

const (
	SeverityVerbose Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
	SeverityNoLogMsg
)

func (s Severity) Valid() bool { return s <= SeverityNoLogMsg }

func (s Severity) String() string {
	switch s {
	case SeverityVerbose:
		return "Verbose"
	case SeveritySuccess:
		return "Success"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	case SeverityNoLogMsg:
		return "NoLogMsg"
	}
	return fmt.Sprintf("Severity(%d)", uint8(s))
}

// ParseSeverity accepts the symbol names used in configuration files.
func ParseSeverity(s string) (Severity, error) {
	for sev := SeverityVerbose; sev <= SeverityNoLogMsg; sev++ {
		if sev.String() == s {
			return sev, nil
		}
	}
	return SeverityVerbose, fmt.Errorf("unknown severity %q", s)
}

// ConfigError is a single diagnostic.
type ConfigError struct {
	Message  string
	Severity Severity
}

func (e ConfigError) String() string {
	return "[" + e.Severity.String() + "] " + e.Message
}

// LoggerClient receives drained diagnostics.
type LoggerClient interface {
	Log(source string, severity Severity, message string)
}

// ErrorSink is an ordered list of diagnostics.
type ErrorSink struct {
	entries []ConfigError
}

// Add appends one diagnostic.
func (s *ErrorSink) Add(message string, severity Severity) {
	s.entries = append(s.entries, ConfigError{Message: message, Severity: severity})
}

// AddSink appends every entry of other, in order. other is left untouched;
// later changes to either sink do not affect the other.
func (s *ErrorSink) AddSink(other *ErrorSink) {
	if other == nil || len(other.entries) == 0 {
		return
	}
	s.entries = append(s.entries, other.entries...)
}

// Merge appends the entries of other that s does not already hold.
// Repeats within other are kept.
func (s *ErrorSink) Merge(other *ErrorSink) {
	if other == nil {
		return
	}
	held := make(map[ConfigError]bool, len(s.entries))
	for _, e := range s.entries {
		held[e] = true
	}
	for _, e := range other.entries {
		if !held[e] {
			s.entries = append(s.entries, e)
		}
	}
}

// Clear drops all entries.
func (s *ErrorSink) Clear() {
	s.entries = nil
}

// Len returns the number of entries.
func (s *ErrorSink) Len() int { return len(s.entries) }

// Entries returns a copy of all entries in insertion order.
func (s *ErrorSink) Entries() []ConfigError {
	out := make([]ConfigError, len(s.entries))
	copy(out, s.entries)
	return out
}

// Filter returns entries with severity at or above min, in insertion order.
func (s *ErrorSink) Filter(min Severity) []ConfigError {
	var out []ConfigError
	for _, e := range s.entries {
		if e.Severity >= min && e.Severity < SeverityNoLogMsg {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the number of entries at or above min.
func (s *ErrorSink) Count(min Severity) int {
	return len(s.Filter(min))
}

// Print writes entries at or above min using the begin/end framing.
func (s *ErrorSink) Print(w io.Writer, min Severity) error {
	if len(s.entries) == 0 {
		_, err := fmt.Fprintln(w, "no configuration errors found")
		return err
	}
	matched := s.Filter(min)
	if len(matched) == 0 {
		_, err := fmt.Fprintf(w, "no configuration errors existed with level equal to or exceeding %s\n", min)
		return err
	}
	if _, err := fmt.Fprintln(w, "begin configuration errors:"); err != nil {
		return err
	}
	for _, e := range matched {
		if _, err := fmt.Fprintf(w, "\t[%s] %s\n", e.Severity, e.Message); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "end configuration errors")
	return err
}

// Log drains entries at or above min into logger. The sink keeps its entries.
func (s *ErrorSink) Log(logger LoggerClient, min Severity) {
	if logger == nil {
		return
	}
	for _, e := range s.Filter(min) {
		logger.Log(ErrorSource, e.Severity, e.Message)
	}
}

func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
