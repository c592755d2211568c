package schemazoid

import "fmt"

// FieldDef pairs a field name with its conversion strategy. Construct with
// [Def].
type FieldDef struct {
	Name  string
	Field Field
}

// Def declares one named field. It panics with [ErrNotField] when f is nil;
// a broken declaration is a programmer error and surfaces at schema
// definition time, not on first use.
func Def(name string, f Field) FieldDef {
	if f == nil {
		panic(fmt.Errorf("define field %q: %w", name, ErrNotField))
	}
	return FieldDef{Name: name, Field: f}
}

// Schema is a declared model type: a named, ordered registry of fields.
// It is built once, frozen thereafter and shared read-only by every instance
// created from it. Instance-level field additions live on the instance, never
// here.
type Schema struct {
	name   string
	fields map[string]Field
	order  []string
}

// NewSchema builds a schema from the given declarations. A later declaration
// of an already declared name overrides the earlier one while keeping its
// position in the registry order.
func NewSchema(name string, defs ...FieldDef) *Schema {
	return Compose(name, nil, defs...)
}

// Derive builds a schema that inherits every field of s. Own declarations
// override inherited ones of the same name.
func (s *Schema) Derive(name string, defs ...FieldDef) *Schema {
	return Compose(name, []*Schema{s}, defs...)
}

// Compose builds a schema from several base schemas plus own declarations.
// On a name collision between bases the earliest base wins; own declarations
// win over every base.
func Compose(name string, bases []*Schema, defs ...FieldDef) *Schema {
	s := &Schema{name: name, fields: make(map[string]Field)}

	// Apply bases in reverse so earlier bases overwrite later ones.
	for idx := len(bases) - 1; idx >= 0; idx-- {
		base := bases[idx]
		for _, fieldName := range base.order {
			s.register(fieldName, base.fields[fieldName])
		}
	}

	for _, def := range defs {
		if def.Field == nil {
			panic(fmt.Errorf("define field %q: %w", def.Name, ErrNotField))
		}
		s.register(def.Name, def.Field)
	}

	return s
}

func (s *Schema) register(name string, f Field) {
	if _, ok := s.fields[name]; !ok {
		s.order = append(s.order, name)
	}
	s.fields[name] = f
}

// Name returns the schema's declared name.
func (s *Schema) Name() string { return s.name }

// Field returns the conversion strategy registered under name.
func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Fields returns the registered field names in declaration order.
func (s *Schema) Fields() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
