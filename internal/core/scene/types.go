package scene

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrTypeRegistered = errors.New("scene: type already registered")
	ErrTypeName       = errors.New("scene: empty type name")
)

// TypeDescriptor identifies a registered node type. Matching is polymorphic
// through the parent chain: a descriptor satisfies itself and every ancestor
// descriptor.
type TypeDescriptor struct {
	name    string
	parent  *TypeDescriptor
	factory func() *Node
}

func (d *TypeDescriptor) Name() string {
	return d.name
}

func (d *TypeDescriptor) Parent() *TypeDescriptor {
	return d.parent
}

// Is reports whether d satisfies other, i.e. other is d or an ancestor of d.
func (d *TypeDescriptor) Is(other *TypeDescriptor) bool {
	if other == nil {
		return false
	}
	for t := d; t != nil; t = t.parent {
		if t == other {
			return true
		}
	}
	return false
}

// New instantiates an unnamed node of this type, through the registered
// factory when one was supplied.
func (d *TypeDescriptor) New() *Node {
	if d.factory != nil {
		return d.factory()
	}
	return NewNode(d, "")
}

func (d *TypeDescriptor) String() string {
	return d.name
}

type typeRegistry struct {
	mu    sync.RWMutex
	types map[string]*TypeDescriptor
}

var registry = &typeRegistry{types: make(map[string]*TypeDescriptor)}

// NodeType is the root of the type hierarchy; every registered type descends
// from it.
var NodeType = MustRegisterType("Node", nil, nil)

// RegisterType registers a named node type. parent defaults to NodeType, and
// factory may be nil for types without construction logic of their own.
func RegisterType(name string, parent *TypeDescriptor, factory func() *Node) (*TypeDescriptor, error) {
	if name == "" {
		return nil, ErrTypeName
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, exists := registry.types[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrTypeRegistered, name)
	}
	if parent == nil {
		parent = registry.types["Node"]
	}
	d := &TypeDescriptor{name: name, parent: parent, factory: factory}
	registry.types[name] = d
	return d, nil
}

// MustRegisterType is RegisterType panicking on error, for package-level
// descriptor variables.
func MustRegisterType(name string, parent *TypeDescriptor, factory func() *Node) *TypeDescriptor {
	d, err := RegisterType(name, parent, factory)
	if err != nil {
		panic(err)
	}
	return d
}

// TypeByName looks up a registered descriptor.
func TypeByName(name string) (*TypeDescriptor, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	d, ok := registry.types[name]
	return d, ok
}
