// Package schemazoid provides declarative data models over loosely-typed
// mappings, e.g. the output of [encoding/json]. A [Schema] declares a set of
// named [Field] conversion strategies; an instance ([Model]) built from that
// schema coerces every value written to it through the owning field's
// ToNative conversion and can project its state back out either as native Go
// values ([Model.ToDict]) or as plain serializer-safe values
// ([Model.ToSerial]).
//
// The [Field] implementations cover scalars, temporal values with ISO-8601
// defaults, untyped and typed collections, and nested models with optional
// back-references to the owning instance.
package schemazoid
