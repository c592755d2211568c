package schemazoid

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Model is one instance of a [Schema]. Every value written through [Model.Set]
// is routed through the applicable field's ToNative conversion before it is
// stored; names without an applicable field store the raw value verbatim and
// do not participate in the exports.
//
// A Model is not safe for concurrent mutation; callers in a multi-goroutine
// environment must synchronize externally.
type Model struct {
	schema *Schema

	// converted (or raw, for unregistered names) values, present only once a
	// Set for the name has executed
	values map[string]any

	// ad-hoc per-instance fields, shadowing schema fields of the same name
	extra      map[string]Field
	extraOrder []string

	// names holding a non-owning back-reference to a parent instance; always
	// excluded from exports
	related map[string]struct{}
}

// New constructs an instance from the given mappings. Later sources win when
// a key appears in several; keys matching no registered field are ignored.
// A conversion failure aborts construction and propagates.
func (s *Schema) New(sources ...map[string]any) (*Model, error) {
	m := &Model{schema: s, values: make(map[string]any)}
	if err := m.Update(sources...); err != nil {
		return nil, err
	}
	return m, nil
}

// FromJSON decodes data into a mapping and constructs an instance from it.
func (s *Schema) FromJSON(data []byte) (*Model, error) {
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return s.New(decoded)
}

// Schema returns the type this instance was created from.
func (m *Model) Schema() *Schema { return m.schema }

// fieldFor resolves the field applying to name. Instance-level fields shadow
// schema-level fields.
func (m *Model) fieldFor(name string) (Field, bool) {
	if f, ok := m.extra[name]; ok {
		return f, true
	}
	return m.schema.Field(name)
}

// Set writes one attribute. When a field is registered under name the value
// passes through its ToNative conversion and the converted result is stored;
// a failure surfaces as a [ConversionError] and leaves the previous value in
// place. When no field is registered the raw value is stored verbatim.
func (m *Model) Set(name string, value any) error {
	f, ok := m.fieldFor(name)
	if !ok {
		m.values[name] = value
		return nil
	}

	converted, err := m.convert(name, f, value)
	if err != nil {
		return err
	}

	m.values[name] = converted
	delete(m.related, name)
	return nil
}

func (m *Model) convert(name string, f Field, value any) (any, error) {
	var converted any
	var err error
	if aware, ok := f.(ownerAware); ok {
		converted, err = aware.toNativeFor(m, value)
	} else {
		converted, err = f.ToNative(value)
	}
	if err != nil {
		// a failure inside nested-model construction is already attributed
		// to its own field and propagates unchanged
		var nested *ConversionError
		if errors.As(err, &nested) {
			return nil, err
		}
		return nil, &ConversionError{Field: name, Value: value, Err: err}
	}
	return converted, nil
}

// setRelated stores a back-reference, bypassing field conversion.
func (m *Model) setRelated(name string, owner *Model) {
	if m.related == nil {
		m.related = make(map[string]struct{})
	}
	m.values[name] = owner
	m.related[name] = struct{}{}
}

// Get returns the stored value under name and whether one is present.
func (m *Model) Get(name string) (any, bool) {
	v, ok := m.values[name]
	return v, ok
}

// AddField registers an ad-hoc field on this instance only. A raw value
// already stored under name immediately re-runs through the new field; if
// that conversion fails the field is not registered and the raw value stays.
func (m *Model) AddField(name string, f Field) error {
	if f == nil {
		return fmt.Errorf("add field %q: %w", name, ErrNotField)
	}

	if raw, ok := m.values[name]; ok {
		converted, err := m.convert(name, f, raw)
		if err != nil {
			return err
		}
		m.registerExtra(name, f)
		m.values[name] = converted
		return nil
	}

	m.registerExtra(name, f)
	return nil
}

func (m *Model) registerExtra(name string, f Field) {
	if m.extra == nil {
		m.extra = make(map[string]Field)
	}
	if _, ok := m.extra[name]; !ok {
		m.extraOrder = append(m.extraOrder, name)
	}
	m.extra[name] = f
}

// Update applies, for every registered field name, the value from the last
// source containing that name. Keys matching no registered field are
// ignored. Equivalent to repeated Set calls; on failure the fields already
// converted keep their values.
func (m *Model) Update(sources ...map[string]any) error {
	if len(sources) == 0 {
		return nil
	}

	for _, name := range m.fieldNames() {
		for idx := len(sources) - 1; idx >= 0; idx-- {
			value, ok := sources[idx][name]
			if !ok {
				continue
			}
			if err := m.Set(name, value); err != nil {
				return err
			}
			break
		}
	}
	return nil
}

// fieldNames returns the combined registry: schema fields in declaration
// order, then instance fields in addition order.
func (m *Model) fieldNames() []string {
	names := m.schema.Fields()
	for _, name := range m.extraOrder {
		if _, ok := m.schema.Field(name); !ok {
			names = append(names, name)
		}
	}
	return names
}

// ToDict exports every registered field that currently holds a value, with
// native values. Names never assigned are omitted, as are back-references.
func (m *Model) ToDict() map[string]any {
	out := make(map[string]any)
	for _, name := range m.fieldNames() {
		if _, ok := m.related[name]; ok {
			continue
		}
		if v, ok := m.values[name]; ok {
			out[name] = v
		}
	}
	return out
}

// ToSerial exports the same domain as [Model.ToDict] with every value passed
// through its field's ToSerial conversion.
func (m *Model) ToSerial() (map[string]any, error) {
	out := make(map[string]any)
	for _, name := range m.fieldNames() {
		if _, ok := m.related[name]; ok {
			continue
		}
		v, ok := m.values[name]
		if !ok {
			continue
		}

		f, _ := m.fieldFor(name)
		serial, err := f.ToSerial(v)
		if err != nil {
			return nil, fmt.Errorf("serialize field %q: %w", name, err)
		}
		out[name] = serial
	}
	return out, nil
}

// ToJSON encodes the serial export.
func (m *Model) ToJSON() ([]byte, error) {
	serial, err := m.ToSerial()
	if err != nil {
		return nil, err
	}
	return json.Marshal(serial)
}
