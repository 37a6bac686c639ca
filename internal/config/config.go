// Package config contains the settings of the hcf command. They are read from
// an hcf file, the entries of the field "hcf" are applied to Config.
package config

import (
	"reflect"
	"strings"

	"github.com/fd0/hcf/pkg/hcf"
	"github.com/pkg/errors"
	"github.com/tkrajina/go-reflector/reflector"
	"go.uber.org/multierr"
)

// Section is the name of the field holding the settings.
const Section = "hcf"

// Config holds all settings parsed from a configuration file.
type Config struct {
	// Color is one of "auto", "always" or "never".
	Color string `hcf:"color"`

	// Format is the output format of the show command, "text" or "table".
	Format string `hcf:"format"`

	// Default is printed by the get command for missing values.
	Default string `hcf:"default"`
}

// Default returns the settings used without a configuration file.
func Default() Config {
	return Config{
		Color:  "auto",
		Format: "text",
	}
}

// settingField returns the struct field for key. A key matches the tag of a
// field or its lower-cased name.
func settingField(obj *reflector.Obj, tag, key string) (*reflector.ObjField, bool) {
	for _, field := range obj.FieldsAll() {
		if key == strings.ToLower(field.Name()) {
			return &field, true
		}

		fieldTag, err := field.Tag(tag)
		if err == nil && key == fieldTag {
			return &field, true
		}
	}

	return nil, false
}

// apply sets the fields of target from the entries of f, the field named
// section. All entries are checked, the returned error lists every key which
// could not be applied.
func apply(section string, f *hcf.Field, tag string, target interface{}) error {
	obj := reflector.New(target)
	if !obj.IsPtr() {
		return errors.New("object is not a pointer")
	}

	var err error
	for _, key := range f.Keys() {
		field, ok := settingField(obj, tag, key)
		if !ok {
			err = multierr.Append(err, errors.Errorf("%v: unknown setting %q", section, key))
			continue
		}

		// values are always strings
		if field.Kind() != reflect.String {
			err = multierr.Append(err, errors.Errorf("%v: setting %q is not a string", section, key))
			continue
		}

		value, _ := f.Value(key)
		if serr := field.Set(value); serr != nil {
			err = multierr.Append(err, errors.WithMessagef(serr, "%v: setting %q", section, key))
		}
	}

	return err
}

func oneOf(name, value string, allowed ...string) error {
	for _, s := range allowed {
		if value == s {
			return nil
		}
	}

	return errors.Errorf("%v: invalid value %q for %v, allowed are %v", Section, value, name, strings.Join(allowed, ", "))
}

// Parse returns the settings contained in o. Fields other than the settings
// section are rejected.
func Parse(o *hcf.Options) (Config, error) {
	cfg := Default()

	for _, name := range o.Fields() {
		if name != Section {
			return Config{}, errors.Errorf("unknown section %v", name)
		}
	}

	f, ok := o.Field(Section)
	if !ok {
		return cfg, nil
	}

	if err := apply(Section, f, "hcf", &cfg); err != nil {
		return Config{}, err
	}

	err := multierr.Combine(
		oneOf("color", cfg.Color, "auto", "always", "never"),
		oneOf("format", cfg.Format, "text", "table"),
	)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load reads the configuration file.
func Load(filename string, opts ...hcf.LoadOption) (Config, error) {
	o, err := hcf.Load(filename, opts...)
	if err != nil {
		return Config{}, err
	}
	defer o.Destroy()

	cfg, err := Parse(o)
	if err != nil {
		return Config{}, errors.WithMessage(err, filename)
	}

	return cfg, nil
}
