package module

import (
	"fmt"
	"reflect"
)

// PortSet is whatever a module returns from Ports, usually a struct of interfaces
type PortSet = any

// PortsOf looks for a T in m.Ports(). The set itself may be a T, otherwise the
// first exported field holding a T wins. Pointers to structs are followed
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	set := m.Ports()
	if set == nil {
		return zero, false
	}
	if t, ok := set.(T); ok {
		return t, true
	}

	v := reflect.Indirect(reflect.ValueOf(set))
	if v.Kind() != reflect.Struct {
		return zero, false
	}
	for _, f := range reflect.VisibleFields(v.Type()) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		if t, ok := v.FieldByIndex(f.Index).Interface().(T); ok {
			return t, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for bootstrap code, it panics naming the module
func MustPortsOf[T any](m Module) T {
	t, ok := PortsOf[T](m)
	if !ok {
		panic(fmt.Sprintf("module: %s has no port of type %s", m.Name(), reflect.TypeFor[T]()))
	}
	return t
}
