package scene

// CreateOption configures node construction.
type CreateOption func(*createConfig)

type createConfig struct {
	parent *Node
	owner  *Node
	name   string
}

// WithParent attaches the new node as a child of p, which fires any deferred
// owner binding when p is part of a live tree.
func WithParent(p *Node) CreateOption {
	return func(c *createConfig) { c.parent = p }
}

// WithOwner defers an owner assignment to the moment the new node enters a
// live tree. The binding fires exactly once; without a parent (now or later)
// it stays dormant.
func WithOwner(o *Node) CreateOption {
	return func(c *createConfig) { c.owner = o }
}

// WithName overrides the derived default name.
func WithName(name string) CreateOption {
	return func(c *createConfig) { c.name = name }
}

// Create instantiates a plain node with the behavior attached. The default
// name is the behavior's declared type name.
func Create(b Behavior, opts ...CreateOption) *Node {
	n := NewNode(NodeType, "")
	n.behavior = b
	defaultName := ""
	if b != nil {
		defaultName = b.TypeName()
	}
	return construct(n, defaultName, opts)
}

// CreateNative instantiates a node of the given registered type. The default
// name is the type name.
func CreateNative(typ *TypeDescriptor, opts ...CreateOption) *Node {
	if typ == nil {
		typ = NodeType
	}
	return construct(typ.New(), typ.Name(), opts)
}

// construct applies the shared construction sequence: naming, deferred owner
// binding, then optional parent attachment. Attachment comes last so that an
// owner hook registered here fires during it.
func construct(n *Node, defaultName string, opts []CreateOption) *Node {
	var cfg createConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	switch {
	case cfg.name != "":
		n.name = cfg.name
	case defaultName != "":
		n.name = defaultName
	}

	if cfg.owner != nil {
		owner := cfg.owner
		n.OnEnterTree(func(n *Node) {
			n.SetOwner(owner)
		})
	}

	if cfg.parent != nil {
		cfg.parent.AddChild(n)
	}
	return n
}
