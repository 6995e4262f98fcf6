// Package validation checks decoded config and asset files against their
// `validate` struct tags.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// sentinels maps "Type.Field" to the error a failure on that field wraps.
var sentinels = map[string]error{}

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(yamlName)
}

func yamlName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// Register adds a custom rule. Call it from init.
func Register(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s: %v", tag, err))
	}
}

// Sentinel makes failures on the given fields ("CameraData.Perspective")
// unwrap to err. Call it from init.
func Sentinel(err error, fields ...string) {
	for _, f := range fields {
		sentinels[f] = err
	}
}

// FieldError is the first field of a value that failed its rules.
type FieldError struct {
	Path  string // yaml path, e.g. entities[1].data.camera
	Rule  string
	Param string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	rule := e.Rule
	if e.Param != "" {
		rule += "=" + e.Param
	}
	msg := fmt.Sprintf("%s: failed %s (got %v)", e.Path, rule, e.Value)
	if e.Err != nil {
		msg = e.Err.Error() + ": " + msg
	}
	return msg
}

func (e *FieldError) Unwrap() error { return e.Err }

// Struct validates v, which must be a struct or a pointer to one. It
// returns nil or a *FieldError for the first failing field.
func Struct(v any) error {
	err := validate.Struct(v)
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}
	fe := errs[0]
	_, path, _ := strings.Cut(fe.Namespace(), ".")
	return &FieldError{
		Path:  path,
		Rule:  fe.Tag(),
		Param: fe.Param(),
		Value: fe.Value(),
		Err:   sentinels[fieldKey(reflect.TypeOf(v), fe.StructNamespace())],
	}
}

// fieldKey turns "Scene.Entities[0].Data.Camera.Perspective" into
// "CameraData.Perspective" by walking the types of root.
func fieldKey(root reflect.Type, ns string) string {
	segs := strings.Split(ns, ".")
	if len(segs) < 2 {
		return ""
	}
	t := root
	for _, s := range segs[1 : len(segs)-1] {
		name, indexed := strings.CutSuffix(s, "]")
		if indexed {
			name, _, _ = strings.Cut(name, "[")
		}
		st := deref(t)
		if st.Kind() != reflect.Struct {
			return ""
		}
		f, ok := st.FieldByName(name)
		if !ok {
			return ""
		}
		t = f.Type
		if indexed {
			t = deref(t).Elem()
		}
	}
	last, _, _ := strings.Cut(segs[len(segs)-1], "[")
	return deref(t).Name() + "." + last
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
