package parsco

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// A grammar attaches to the engine by registering, for each type it can
// parse, a constructor producing the parser for that type. Grammars are
// identified by a tag type, usually an empty struct:
//
//	type JSON struct{}
//
//	func init() {
//		parsco.Register[JSON, Boolean](parseBoolean)
//	}
//
// and any grammar code can then refer to For[JSON, Boolean]().

// constructor builds a Parser[T] stored as any.
type constructor func() any

type registryKey struct {
	grammar reflect.Type
	target  reflect.Type
}

type registry struct {
	mu    sync.RWMutex
	ctors map[registryKey]constructor
}

var defaultRegistry = &registry{ctors: make(map[registryKey]constructor)}

func keyOf[G, T any]() registryKey {
	return registryKey{grammar: reflect.TypeFor[G](), target: reflect.TypeFor[T]()}
}

func (r *registry) add(key registryKey, ctor constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.ctors[key]; dup {
		panic(fmt.Sprintf("parsco: Register called twice for %s in grammar %s", key.target, key.grammar))
	}
	r.ctors[key] = ctor
}

func (r *registry) get(key registryKey) (constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.ctors[key]
	return ctor, ok
}

// Register makes ctor the parser constructor for T under grammar G.
// Registering the same pair twice panics; registration normally happens
// in an init function so the mistake surfaces at program start.
func Register[G, T any](ctor func() Parser[T]) {
	if ctor == nil {
		panic("parsco: Register constructor is nil")
	}
	defaultRegistry.add(keyOf[G, T](), func() any { return ctor() })
}

// For returns the parser registered for T under grammar G. Resolution is
// deferred until the parser is driven, so mutually recursive productions
// may be registered in any order.
//
// When T is a pointer type *U without a registration of its own, the
// parser for U is used and its result boxed. This is how recursive
// grammars break type cycles.
func For[G, T any]() Parser[T] {
	return func(s *State) (T, error) {
		p, err := lookup[G, T]()
		if err != nil {
			var zero T
			return zero, s.failAt(s.pos, KindUnregistered, err.Error())
		}
		return p(s)
	}
}

func lookup[G, T any]() (Parser[T], error) {
	key := keyOf[G, T]()
	if ctor, ok := defaultRegistry.get(key); ok {
		return ctor().(Parser[T]), nil
	}
	if key.target.Kind() == reflect.Pointer {
		elem := registryKey{grammar: key.grammar, target: key.target.Elem()}
		if ctor, ok := defaultRegistry.get(elem); ok {
			return boxReflect[T](ctor(), key.target.Elem()), nil
		}
	}
	return nil, fmt.Errorf("no parser registered for %s in grammar %s", key.target, key.grammar)
}

// boxReflect adapts a Parser[U], only known as any, into a Parser[*U]
// typed as Parser[T].
func boxReflect[T any](inner any, elem reflect.Type) Parser[T] {
	fn := reflect.ValueOf(inner)
	return func(s *State) (T, error) {
		var zero T
		out := fn.Call([]reflect.Value{reflect.ValueOf(s)})
		if errv := out[1]; !errv.IsNil() {
			return zero, errv.Interface().(error)
		}
		box := reflect.New(elem)
		box.Elem().Set(out[0])
		return box.Interface().(T), nil
	}
}

// Registered returns the names of the types registered under grammar G,
// sorted.
func Registered[G any]() []string {
	g := reflect.TypeFor[G]()
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()

	var names []string
	for key := range defaultRegistry.ctors {
		if key.grammar == g {
			names = append(names, key.target.String())
		}
	}
	sort.Strings(names)
	return names
}
