// FILE: lixenwraith/emaconfig/loader.go
package emaconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the configuration file read when none is given.
const DefaultFileName = "EmaConfig.xml"

// File formats understood by the loader.
const (
	FormatAuto = "auto"
	FormatXML  = "xml"
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// LoadOptions configures how a configuration file is read.
type LoadOptions struct {
	// Format forces a parser; empty or "auto" detects from extension, then content.
	Format string

	// MaxFileSize rejects larger files when positive.
	MaxFileSize int64

	Registry *TypeRegistry
	Catalog  *EnumCatalog
}

// DefaultLoadOptions returns auto-detection with the built-in registry and catalog.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Format:   FormatAuto,
		Registry: NewTypeRegistry(),
		Catalog:  NewEnumCatalog(),
	}
}

func (o LoadOptions) normalized() LoadOptions {
	if o.Registry == nil {
		o.Registry = NewTypeRegistry()
	}
	if o.Catalog == nil {
		o.Catalog = NewEnumCatalog()
	}
	if o.Format == "" {
		o.Format = FormatAuto
	}
	return o
}

// LoadFile reads path into a tree. It never fails: problems are recorded as
// diagnostics on the returned tree, which is empty in that case. The returned
// severity is Success when the file was processed, otherwise the severity of
// the problem that stopped loading.
func LoadFile(path string, opts LoadOptions) (*Tree, Severity) {
	opts = opts.normalized()
	empty := NewTree(RootName, opts.Registry, opts.Catalog)

	cwd, _ := os.Getwd()
	empty.AppendError(empty.Root(), fmt.Sprintf("reading configuration file [%s] from [%s]", path, cwd), SeverityVerbose)

	info, err := os.Stat(path)
	if err != nil {
		empty.AppendError(empty.Root(), fmt.Sprintf("error reading configuration file [%s]; system error message [%v]", path, err), SeverityVerbose)
		return empty, SeverityVerbose
	}
	if info.Size() == 0 {
		empty.AppendError(empty.Root(), fmt.Sprintf("error reading configuration file [%s]; file is empty", path), SeverityError)
		return empty, SeverityError
	}
	if opts.MaxFileSize > 0 && info.Size() > opts.MaxFileSize {
		empty.AppendError(empty.Root(), fmt.Sprintf("error reading configuration file [%s]; file exceeds maximum size %d bytes", path, opts.MaxFileSize), SeverityError)
		return empty, SeverityError
	}

	file, err := os.Open(path)
	if err != nil {
		empty.AppendError(empty.Root(), fmt.Sprintf("error reading configuration file [%s]; could not open file; system error message [%v]", path, err), SeverityError)
		return empty, SeverityError
	}
	defer file.Close()

	var reader io.Reader = file
	if opts.MaxFileSize > 0 {
		reader = io.LimitReader(file, opts.MaxFileSize)
	}
	data, err := io.ReadAll(reader)
	if err != nil || len(data) == 0 {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		empty.AppendError(empty.Root(), fmt.Sprintf("error reading configuration file [%s]; read failed; system error message [%v]", path, err), SeverityError)
		return empty, SeverityError
	}

	format := opts.Format
	if format == FormatAuto {
		format = detectFileFormat(path)
		if format == "" {
			format = detectFormatFromContent(data)
		}
	}

	tree, sev := LoadBytes(path, data, format, opts)
	// Keep the read trace ahead of whatever parsing reported.
	parsed := tree.Errors().Entries()
	tree.Errors().Clear()
	tree.Errors().AddSink(empty.Errors())
	for _, e := range parsed {
		tree.Errors().Add(e.Message, e.Severity)
	}
	return tree, sev
}

// LoadBytes parses data in the given format. what names the data in diagnostics.
func LoadBytes(what string, data []byte, format string, opts LoadOptions) (*Tree, Severity) {
	opts = opts.normalized()
	empty := NewTree(RootName, opts.Registry, opts.Catalog)
	empty.AppendError(empty.Root(), fmt.Sprintf("extracting configuration data from [%s]", what), SeverityVerbose)

	var (
		root *SourceElement
		err  error
	)
	switch format {
	case FormatXML:
		root, err = ParseXML(data)
	case FormatTOML:
		root, err = ParseTOML(data)
	case FormatYAML, FormatJSON:
		root, err = ParseYAML(data)
	default:
		empty.AppendError(empty.Root(), fmt.Sprintf("unable to determine configuration format for [%s]", what), SeverityError)
		return empty, SeverityError
	}
	if err != nil {
		empty.AppendError(empty.Root(), fmt.Sprintf("failed to parse %s data while processing [%s]; system error message [%v]", format, what, err), SeverityError)
		return empty, SeverityError
	}
	if root.Name != RootName {
		empty.AppendError(empty.Root(), fmt.Sprintf("document has wrong type; expected [%s] while processing [%s]", RootName, what), SeverityError)
		return empty, SeverityError
	}

	tree := NewTree(RootName, opts.Registry, opts.Catalog)
	tree.Errors().AddSink(empty.Errors())
	tree.process(tree.Root(), root)
	return tree, SeveritySuccess
}

// detectFileFormat maps a file extension to a format, or "" when unknown.
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xml":
		return FormatXML
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing.
func detectFormatFromContent(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("<")) {
		return FormatXML
	}

	var tomlTest map[string]any
	if _, err := toml.Decode(string(data), &tomlTest); err == nil {
		return FormatTOML
	}

	// JSON parses as YAML too.
	var yamlTest yaml.Node
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return FormatYAML
	}

	return ""
}

// ReadFormat reports the format LoadFile would use for path.
func ReadFormat(path string) (string, error) {
	if f := detectFileFormat(path); f != "" {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if f := detectFormatFromContent(data); f != "" {
		return f, nil
	}
	return "", errors.New("unable to determine config format")
}
