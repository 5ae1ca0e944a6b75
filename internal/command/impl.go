package command

import (
	"reflect"
	"runtime"

	pkgcmd "github.com/rashpile/pako-discord/pkg/command"
)

var (
	basePtrType = reflect.TypeOf((*pkgcmd.Base)(nil))
	baseType    = basePtrType.Elem()
)

// inheritsBaseRun reports whether the Run method of cmd is the one promoted
// from an embedded *command.Base, i.e. no type on the way declares its own.
// The body is never executed.
func inheritsBaseRun(cmd pkgcmd.Command) bool {
	v := reflect.ValueOf(cmd)
	for v.IsValid() {
		t := v.Type()
		if t == basePtrType || t == baseType {
			return true
		}

		switch t.Kind() {
		case reflect.Pointer:
			if declaresRun(t) || v.IsNil() {
				return false
			}
			v = v.Elem()
		case reflect.Interface:
			if v.IsNil() {
				return false
			}
			v = v.Elem()
		case reflect.Struct:
			if declaresRun(t) || declaresRun(reflect.PointerTo(t)) {
				return false
			}
			field, ok := runProvider(v)
			if !ok {
				return false
			}
			v = field
		default:
			return false
		}
	}
	return false
}

// declaresRun reports whether t has a Run method whose code is not a
// compiler-generated forwarding wrapper.
func declaresRun(t reflect.Type) bool {
	m, ok := t.MethodByName("Run")
	if !ok {
		return false
	}
	fn := runtime.FuncForPC(m.Func.Pointer())
	if fn == nil {
		return true
	}
	file, _ := fn.FileLine(fn.Entry())
	return file != "<autogenerated>"
}

// runProvider returns the embedded field of struct value v that Run is
// promoted from.
func runProvider(v reflect.Value) (reflect.Value, bool) {
	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		if _, ok := f.Type.MethodByName("Run"); ok {
			return v.Field(i), true
		}
		if _, ok := reflect.PointerTo(f.Type).MethodByName("Run"); ok && f.Type.Kind() == reflect.Struct {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}
