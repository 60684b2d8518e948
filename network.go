package mtlximport

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
)

// NodeType is a host node type identifier.
type NodeType string

// Host node types created by the builder.
const (
	NodeStandardSurface    NodeType = "mtlxstandard_surface"
	NodeImage              NodeType = "mtlximage"
	NodeColorCorrect       NodeType = "mtlxcolorcorrect"
	NodeLegacyColorCorrect NodeType = "hmtlxcolorcorrect"
	NodeGeomPropValue      NodeType = "mtlxgeompropvalue"
	NodeMix                NodeType = "mtlxmix"
	NodeMultiply           NodeType = "mtlxmultiply"
	NodeRemap              NodeType = "mtlxremap"
	NodeNormalMap          NodeType = "mtlxnormalmap"
	NodeDisplacement       NodeType = "mtlxdisplacement"
	NodeParameter          NodeType = "parameter"
	NodeConnector          NodeType = "subnetconnector"
)

// DefaultOutput is the output socket name used by every node the builder creates.
const DefaultOutput = "out"

// Host is the node-authoring surface the builder writes into.
// Handles returned by CreateNode identify nodes in later calls.
type Host interface {
	// CreateNode creates a node of typ; the returned handle may differ from name.
	CreateNode(typ NodeType, name string) (string, error)
	// SetParm sets a named parameter on node.
	SetParm(node, parm string, v Value) error
	// Connect wires output of src into input of node.
	Connect(node, input, src, output string) error
}

// Parm is a named parameter value on a node.
type Parm struct {
	Name  string `json:"name" yaml:"name"`   // Parameter name
	Value Value  `json:"value" yaml:"value"` // Parameter value
}

// Connection is a wire into a node input.
type Connection struct {
	Input  string `json:"input" yaml:"input"`   // Input socket on the receiving node
	Node   string `json:"node" yaml:"node"`     // Source node name
	Output string `json:"output" yaml:"output"` // Output socket on the source node
}

// Node is a node instance in a Network.
type Node struct {
	Name   string       `json:"name" yaml:"name"`                         // Unique node name
	Type   NodeType     `json:"type" yaml:"type"`                         // Host node type
	Parms  []Parm       `json:"parms,omitempty" yaml:"parms,omitempty"`   // Parameters in set order
	Inputs []Connection `json:"inputs,omitempty" yaml:"inputs,omitempty"` // Connections in wire order
}

// Parm returns the value of parameter name.
func (n *Node) Parm(name string) (Value, bool) {
	for _, p := range n.Parms {
		if p.Name == name {
			return p.Value, true
		}
	}
	return Value{}, false
}

// Input returns the connection wired into input.
func (n *Node) Input(input string) (Connection, bool) {
	for _, c := range n.Inputs {
		if c.Input == input {
			return c, true
		}
	}
	return Connection{}, false
}

// Network is an in-memory Host holding one material's nodes.
// It is not safe for concurrent use.
type Network struct {
	Name  string  `json:"name" yaml:"name"`   // Material (subnet) name
	Nodes []*Node `json:"nodes" yaml:"nodes"` // Nodes in creation order

	byName map[string]*Node
}

// NewNetwork creates an empty network.
func NewNetwork(name string) *Network {
	return &Network{Name: name, byName: make(map[string]*Node)}
}

// Len returns the number of nodes.
func (n *Network) Len() int { return len(n.Nodes) }

// Node returns the node with the given name.
func (n *Network) Node(name string) (*Node, bool) {
	n.index()
	nd, ok := n.byName[name]
	return nd, ok
}

// NodesOfType returns nodes of typ in creation order.
func (n *Network) NodesOfType(typ NodeType) []*Node {
	var out []*Node
	for _, nd := range n.Nodes {
		if nd.Type == typ {
			out = append(out, nd)
		}
	}
	return out
}

// Connector returns the output connector exposing parmname ("surface", "displacement").
func (n *Network) Connector(parmname string) (*Node, bool) {
	for _, nd := range n.NodesOfType(NodeConnector) {
		if v, ok := nd.Parm("parmname"); ok && v.Str == parmname {
			return nd, true
		}
	}
	return nil, false
}

// Source returns the node wired into input of node name.
func (n *Network) Source(name, input string) (*Node, bool) {
	nd, ok := n.Node(name)
	if !ok {
		return nil, false
	}
	c, ok := nd.Input(input)
	if !ok {
		return nil, false
	}
	return n.Node(c.Node)
}

// CreateNode implements Host. Taken names get a numeric suffix.
func (n *Network) CreateNode(typ NodeType, name string) (string, error) {
	if typ == "" {
		return "", fmt.Errorf("%w: empty node type", ErrHostOperation)
	}
	if name == "" {
		name = string(typ)
	}

	n.index()
	unique := name
	for i := 1; ; i++ {
		if _, taken := n.byName[unique]; !taken {
			break
		}
		unique = name + strconv.Itoa(i)
	}

	nd := &Node{Name: unique, Type: typ}
	n.Nodes = append(n.Nodes, nd)
	n.byName[unique] = nd

	return unique, nil
}

// SetParm implements Host. Setting a parameter twice replaces the value.
func (n *Network) SetParm(node, parm string, v Value) error {
	nd, ok := n.Node(node)
	if !ok {
		return fmt.Errorf("%w: set %s: node %q not found", ErrHostOperation, parm, node)
	}

	for i := range nd.Parms {
		if nd.Parms[i].Name == parm {
			nd.Parms[i].Value = v
			return nil
		}
	}
	nd.Parms = append(nd.Parms, Parm{Name: parm, Value: v})

	return nil
}

// Connect implements Host. Rewiring an input replaces the previous connection.
func (n *Network) Connect(node, input, src, output string) error {
	dst, ok := n.Node(node)
	if !ok {
		return fmt.Errorf("%w: connect %s: node %q not found", ErrHostOperation, input, node)
	}
	if _, ok := n.Node(src); !ok {
		return fmt.Errorf("%w: connect %s.%s: source %q not found", ErrHostOperation, node, input, src)
	}
	if src == node {
		return fmt.Errorf("%w: connect %s.%s: self loop", ErrHostOperation, node, input)
	}

	c := Connection{Input: input, Node: src, Output: output}
	if i := slices.IndexFunc(dst.Inputs, func(x Connection) bool { return x.Input == input }); i >= 0 {
		dst.Inputs[i] = c
		return nil
	}
	dst.Inputs = append(dst.Inputs, c)

	return nil
}

// index rebuilds the name index when Nodes was decoded or edited in place.
func (n *Network) index() {
	if n.indexed() {
		return
	}

	n.byName = make(map[string]*Node, len(n.Nodes))
	for _, nd := range n.Nodes {
		n.byName[nd.Name] = nd
	}
}

// indexed reports whether byName matches Nodes by name and identity.
func (n *Network) indexed() bool {
	if n.byName == nil || len(n.byName) != len(n.Nodes) {
		return false
	}
	for _, nd := range n.Nodes {
		if n.byName[nd.Name] != nd {
			return false
		}
	}
	return true
}

// RelocateFiles rewrites image file paths relative to base, using forward slashes.
// Relative paths are taken from the working directory. Paths that cannot be made relative (another volume) are left as they are.
func (n *Network) RelocateFiles(base string) error {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDirectory, base, err)
	}

	for _, nd := range n.NodesOfType(NodeImage) {
		v, ok := nd.Parm("file")
		if !ok || v.Str == "" {
			continue
		}

		p, err := filepath.Abs(filepath.FromSlash(v.Str))
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrDirectory, v.Str, err)
		}
		rel, err := filepath.Rel(absBase, p)
		if err != nil {
			continue
		}
		if err := n.SetParm(nd.Name, "file", StringValue(filepath.ToSlash(rel))); err != nil {
			return err
		}
	}

	return nil
}
