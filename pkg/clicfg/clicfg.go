// Package clicfg fills a config struct from the flags of a cli command.
package clicfg

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/urfave/cli/v3"
)

var (
	ErrCannotParseFlags = errors.New("cannot parse flags")

	durationType    = reflect.TypeOf(time.Duration(0))
	stringSliceType = reflect.TypeOf([]string(nil))
)

// ParseFlags copies the value of every flag named by a `flag:"..."` tag into
// the tagged field of the struct s points to. Untagged and unexported fields
// are left alone.
func ParseFlags(c *cli.Command, s any) error {
	v := reflect.ValueOf(s)
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("%w: expected pointer to struct, got %T", ErrCannotParseFlags, s)
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("%w: expected pointer to struct, got pointer to %s", ErrCannotParseFlags, v.Kind())
	}

	t := v.Type()

	for i := range t.NumField() {
		field := t.Field(i)
		fieldValue := v.Field(i)

		if !fieldValue.CanSet() {
			continue
		}

		flagName := field.Tag.Get("flag")
		if flagName == "" {
			continue
		}

		if err := setField(c, flagName, fieldValue); err != nil {
			return fmt.Errorf("%w: failed to set field %s: %w", ErrCannotParseFlags, field.Name, err)
		}
	}

	return nil
}

func setField(c *cli.Command, name string, field reflect.Value) error {
	// Durations are int64 underneath, so they must be matched by type first.
	switch field.Type() {
	case durationType:
		field.SetInt(int64(c.Duration(name)))
		return nil
	case stringSliceType:
		field.Set(reflect.ValueOf(c.StringSlice(name)))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(c.String(name))
	case reflect.Bool:
		field.SetBool(c.Bool(name))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		field.SetInt(int64(c.Int(name)))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		field.SetUint(uint64(c.Uint(name)))
	case reflect.Float32, reflect.Float64:
		field.SetFloat(c.Float64(name))
	default:
		return fmt.Errorf("unsupported type: %s", field.Type())
	}
	return nil
}
