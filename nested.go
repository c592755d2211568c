package schemazoid

import "fmt"

// ownerAware is implemented by nested-model fields that want to know the
// instance a value is being written onto, so they can plant a back-reference.
// The owner is supplied at conversion time and never stored on the field.
type ownerAware interface {
	toNativeFor(owner *Model, value any) (any, error)
}

// ModelField holds a single nested [Model] of a fixed schema. An input that
// is already such an instance passes through; anything else is treated as a
// mapping (nil as an empty one) and a new instance is constructed from it.
//
// When RelatedName is set, the named attribute on the nested instance is
// pointed back at the owning instance. The back-reference bypasses field
// conversion and is excluded from both exports.
type ModelField struct {
	Schema      *Schema
	RelatedName string
}

var _ Field = ModelField{}
var _ ownerAware = ModelField{}

func (f ModelField) ToNative(value any) (any, error) {
	return f.toNativeFor(nil, value)
}

func (f ModelField) toNativeFor(owner *Model, value any) (any, error) {
	nested, err := f.instance(value)
	if err != nil {
		return nil, err
	}
	if f.RelatedName != "" && owner != nil {
		nested.setRelated(f.RelatedName, owner)
	}
	return nested, nil
}

func (f ModelField) instance(value any) (*Model, error) {
	if nested, ok := value.(*Model); ok {
		if nested.schema != f.Schema {
			return nil, conversionErr("model %q from model %q", f.Schema.Name(), nested.schema.Name())
		}
		return nested, nil
	}

	data, err := asMapping(value)
	if err != nil {
		return nil, conversionErr("model %q from %T", f.Schema.Name(), value)
	}
	return f.Schema.New(data)
}

func (f ModelField) ToSerial(value any) (any, error) {
	nested, ok := value.(*Model)
	if !ok {
		return nil, conversionErr("serialize model %q from %T", f.Schema.Name(), value)
	}
	return nested.ToSerial()
}

// ModelListField holds a list of nested [Model] instances, one per element
// of the input sequence. The back-reference rule of [ModelField] applies to
// every element. Order is preserved in both directions.
type ModelListField struct {
	Schema      *Schema
	RelatedName string
}

var _ Field = ModelListField{}
var _ ownerAware = ModelListField{}

func (f ModelListField) ToNative(value any) (any, error) {
	return f.toNativeFor(nil, value)
}

func (f ModelListField) toNativeFor(owner *Model, value any) (any, error) {
	items, err := asSequence(value)
	if err != nil {
		return nil, err
	}

	element := ModelField{Schema: f.Schema, RelatedName: f.RelatedName}
	out := make([]*Model, 0, len(items))
	for idx, item := range items {
		nested, err := element.toNativeFor(owner, item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", idx, err)
		}
		out = append(out, nested.(*Model))
	}
	return out, nil
}

func (f ModelListField) ToSerial(value any) (any, error) {
	instances, ok := value.([]*Model)
	if !ok {
		return nil, conversionErr("serialize model list from %T", value)
	}

	out := make([]any, 0, len(instances))
	for idx, nested := range instances {
		serial, err := nested.ToSerial()
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", idx, err)
		}
		out = append(out, serial)
	}
	return out, nil
}
