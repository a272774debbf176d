package loop

import (
	"fmt"
	"reflect"
	"sort"
)

// Resources holds one value per type, shared by every system of a
// scheduler.
type Resources struct {
	values map[reflect.Type]any
}

// NewResources returns an empty set.
func NewResources() *Resources {
	return &Resources{values: make(map[reflect.Type]any)}
}

// Provide stores value as the T resource and returns a pointer to the
// stored copy. Providing a type again overwrites the value in place, so
// pointers handed out earlier stay valid.
func Provide[T any](r *Resources, value T) *T {
	if ptr, ok := Lookup[T](r); ok {
		*ptr = value
		return ptr
	}
	ptr := new(T)
	*ptr = value
	r.values[typeOf[T]()] = ptr
	return ptr
}

// Lookup returns the T resource.
func Lookup[T any](r *Resources) (*T, bool) {
	v, ok := r.values[typeOf[T]()]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// MustLookup is Lookup for resources the caller provided itself.
func MustLookup[T any](r *Resources) *T {
	ptr, ok := Lookup[T](r)
	if !ok {
		panic(fmt.Sprintf("loop: resource %s not provided", typeOf[T]()))
	}
	return ptr
}

// Names lists the provided resource types, sorted.
func (r *Resources) Names() []string {
	names := make([]string, 0, len(r.values))
	for t := range r.values {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Resource is a system field bound to the T resource. The binding is
// resolved lazily so a resource may be provided after the system is
// registered.
type Resource[T any] struct {
	resources *Resources
	ptr       *T
}

// Init binds the field to a resource set. The Scheduler calls it during
// registration.
func (r *Resource[T]) Init(resources *Resources) {
	r.resources = resources
	r.ptr = nil
}

// Get returns the resource, or nil if it has not been provided.
func (r *Resource[T]) Get() *T {
	if r.ptr == nil && r.resources != nil {
		r.ptr, _ = Lookup[T](r.resources)
	}
	return r.ptr
}

// Exists reports whether the resource has been provided.
func (r *Resource[T]) Exists() bool {
	return r.Get() != nil
}
