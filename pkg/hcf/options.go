// Package hcf reads files in the hierarchical config format. A file consists
// of named fields, each holding key/value entries:
//
//	server:
//	    host example.com
//	    banner "welcome // to the machine"
//	// a comment
//	colors:
//	    error \e[31m
//
// All values are strings. The result of a load is an Options value, which is
// queried by field name and key.
package hcf

import (
	"github.com/facette/natsort"
	"github.com/fd0/hcf/internal/strmap"
)

// Default bucket counts, they are tuning hints and not limits.
const (
	OptionsBuckets = 10
	FieldBuckets   = 10
)

// Field is a named group of key/value entries.
type Field struct {
	entries *strmap.Map[string]
}

// NewField returns an empty field.
func NewField() *Field {
	return newField(FieldBuckets)
}

func newField(buckets int) *Field {
	return &Field{entries: strmap.New[string](buckets)}
}

// Add sets key to value. An existing value for key is replaced. Calling Add on
// a nil field does nothing.
func (f *Field) Add(key, value string) {
	if f == nil {
		return
	}
	f.entries.Add(key, value)
}

// Value returns the value for key.
func (f *Field) Value(key string) (string, bool) {
	if f == nil {
		return "", false
	}
	return f.entries.Get(key)
}

// Remove deletes key and reports whether it was present.
func (f *Field) Remove(key string) bool {
	if f == nil {
		return false
	}
	return f.entries.Remove(key)
}

// Len returns the number of entries.
func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return f.entries.Len()
}

// Keys returns all keys in natural order.
func (f *Field) Keys() []string {
	if f == nil {
		return nil
	}

	keys := f.entries.Keys()
	natsort.Sort(keys)
	return keys
}

// Destroy removes all entries.
func (f *Field) Destroy() {
	if f == nil {
		return
	}
	f.entries.Destroy()
}

// Options is the result of parsing a file: fields by name.
type Options struct {
	fields       *strmap.Map[*Field]
	fieldBuckets int
}

// NewOptions returns an empty Options.
func NewOptions() *Options {
	return newOptions(OptionsBuckets, FieldBuckets)
}

func newOptions(buckets, fieldBuckets int) *Options {
	return &Options{
		fields:       strmap.New[*Field](buckets, strmap.WithRelease((*Field).Destroy)),
		fieldBuckets: fieldBuckets,
	}
}

// AddField creates a new empty field called name and returns it. An existing
// field with the same name is destroyed and replaced. For the empty name nil is
// returned.
func (o *Options) AddField(name string) *Field {
	if name == "" {
		return nil
	}

	f := newField(o.fieldBuckets)
	o.fields.Add(name, f)
	return f
}

// Field returns the field called name.
func (o *Options) Field(name string) (*Field, bool) {
	if o == nil {
		return nil, false
	}
	return o.fields.Get(name)
}

// Get returns the value of key in the field called name.
func (o *Options) Get(field, key string) (string, bool) {
	f, ok := o.Field(field)
	if !ok {
		return "", false
	}

	return f.Value(key)
}

// GetDefault returns the value of key in field, or def if either the field or
// the key do not exist.
func (o *Options) GetDefault(field, key, def string) string {
	v, ok := o.Get(field, key)
	if !ok {
		return def
	}
	return v
}

// RemoveField destroys the field called name and reports whether it existed.
func (o *Options) RemoveField(name string) bool {
	if o == nil {
		return false
	}
	return o.fields.Remove(name)
}

// Fields returns the names of all fields in natural order.
func (o *Options) Fields() []string {
	if o == nil {
		return nil
	}

	names := o.fields.Keys()
	natsort.Sort(names)
	return names
}

// Len returns the number of fields.
func (o *Options) Len() int {
	if o == nil {
		return 0
	}
	return o.fields.Len()
}

// Destroy destroys all fields and their entries.
func (o *Options) Destroy() {
	if o == nil {
		return
	}
	o.fields.Destroy()
}

// Merge copies all fields and entries of src into dst. Entries in src replace
// entries with the same key in dst, fields only present in dst are kept.
func Merge(dst, src *Options) {
	for _, name := range src.Fields() {
		from, _ := src.Field(name)

		to, ok := dst.Field(name)
		if !ok {
			to = dst.AddField(name)
		}

		from.entries.Each(func(key, value string) bool {
			to.Add(key, value)
			return true
		})
	}
}
