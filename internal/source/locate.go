package source

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Location is a position in Go source.
type Location struct {
	File string
	Line int
	// Func is the fully qualified function name reported by the runtime.
	Func string
}

// String formats the location as file:line.
func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Locate reports where the function value fn was declared. For a function
// literal this is the line of its func keyword.
func Locate(fn interface{}) (Location, error) {
	f, err := funcOf(fn)
	if err != nil {
		return Location{}, err
	}
	file, line := f.FileLine(f.Entry())
	return Location{File: file, Line: line, Func: f.Name()}, nil
}

// Caller reports the location of the function skip frames above the
// caller of Caller.
func Caller(skip int) (Location, bool) {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{}, false
	}
	loc := Location{File: file, Line: line}
	if f := runtime.FuncForPC(pc); f != nil {
		loc.Func = f.Name()
	}
	return loc, true
}

// FuncName returns the package-local name of a function or method value:
// "Button" for ui.Button, "Element.Classes" for (*ui.Element).Classes.
func FuncName(fn interface{}) (string, error) {
	f, err := funcOf(fn)
	if err != nil {
		return "", err
	}
	return LocalName(f.Name()), nil
}

// LocalName strips the import path and package from a runtime function
// name.
func LocalName(full string) string {
	name := full
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	name = strings.NewReplacer("(*", "", "(", "", ")", "").Replace(name)
	return name
}

func funcOf(fn interface{}) (*runtime.Func, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return nil, fmt.Errorf("expected a function, got %T", fn)
	}
	if v.IsNil() {
		return nil, fmt.Errorf("nil function")
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return nil, fmt.Errorf("no runtime information for %T", fn)
	}
	return f, nil
}
