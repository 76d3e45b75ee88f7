// FILE: lixenwraith/emaconfig/decode.go
package emaconfig

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// tagName is the struct tag patch structs are decoded with.
const tagName = "ema"

// field is one named value of an entity, from either source.
type field struct {
	name   string
	value  Value
	nested bool
}

func treeFields(elems []Element) []field {
	out := make([]field, 0, len(elems))
	for _, e := range elems {
		out = append(out, field{name: e.Name, value: e.Value})
	}
	return out
}

func overlayFields(list ElementList, registry *TypeRegistry) []field {
	out := make([]field, 0, len(list))
	for _, e := range list {
		out = append(out, field{name: registry.Canonical(e.Name), value: e.Value, nested: e.Map != nil})
	}
	return out
}

// reporter receives diagnostics raised while decoding.
type reporter func(message string, severity Severity)

// entityInput turns fields into decoder input, dropping nested maps and values
// whose kind disagrees with the registry.
func entityInput(fields []field, registry *TypeRegistry, entity string, report reporter) map[string]any {
	input := make(map[string]any, len(fields))
	for _, f := range fields {
		if f.nested {
			report(fmt.Sprintf("element [%s] of [%s] holds a nested map; element ignored", f.name, entity), SeverityVerbose)
			continue
		}
		if f.value.IsZero() {
			continue
		}
		if want, ok := registry.Lookup(f.name); ok && want != f.value.Kind() {
			report(fmt.Sprintf("element [%s] of [%s] has type [%s] but [%s] is expected; element ignored",
				f.name, entity, f.value.Kind(), want), SeverityWarning)
			continue
		}
		input[f.name] = f.value.raw()
	}
	return input
}

// decodePatch fills target, a pointer to a patch struct, from input.
// It returns the input keys no patch field consumed, sorted.
func decodePatch(input map[string]any, target any) ([]string, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return nil, fmt.Errorf("decode target must be non-nil pointer, got %T", target)
	}

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          tagName,
		WeaklyTypedInput: false,
		DecodeHook:       flagHookFunc(),
		Metadata:         &md,
	})
	if err != nil {
		return nil, fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}
	sort.Strings(md.Unused)
	return md.Unused, nil
}

// flagHookFunc maps the numeric 0/1 flags used by configuration sources onto bool fields.
func flagHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t.Kind() != reflect.Bool {
			return data, nil
		}
		switch v := data.(type) {
		case uint64:
			return v != 0, nil
		case int64:
			return v != 0, nil
		}
		return data, nil
	}
}

// decodeEntity runs the full pipeline for one source's view of an entity.
func decodeEntity(fields []field, registry *TypeRegistry, entity string, target any, report reporter) {
	input := entityInput(fields, registry, entity, report)
	if len(input) == 0 {
		return
	}
	unused, err := decodePatch(input, target)
	if err != nil {
		report(fmt.Sprintf("failed to apply configuration of [%s]: %v", entity, err), SeverityError)
		return
	}
	for _, name := range unused {
		report(fmt.Sprintf("element [%s] is not used by [%s]; element ignored", name, entity), SeverityVerbose)
	}
}
