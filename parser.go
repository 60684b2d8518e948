package mtlximport

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse parses a MaterialX document from bytes into a Network.
func Parse(data []byte) (*Network, error) {
	return Decode(bytes.NewReader(data))
}

// Decode parses a MaterialX document from reader into a Network.
func Decode(r io.Reader) (*Network, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return FromDocument(&doc)
}

// DecodeFile parses a MaterialX document from a file.
func DecodeFile(path string) (*Network, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// FromDocument converts the first nodegraph of doc into a Network.
// Interface inputs become parameter nodes and outputs become connectors.
func FromDocument(doc *Document) (*Network, error) {
	if len(doc.NodeGraphs) == 0 {
		return nil, fmt.Errorf("%w: document has no nodegraph", ErrParse)
	}
	ng := doc.NodeGraphs[0]

	name := strings.TrimPrefix(ng.Name, nodeGraphPrefix)
	if len(doc.Materials) > 0 && doc.Materials[0].Name != "" {
		name = doc.Materials[0].Name
	}

	p := &docParser{net: NewNetwork(name), params: make(map[string]string)}
	for _, in := range ng.Inputs {
		if err := p.parameter(in); err != nil {
			return nil, err
		}
	}
	for _, el := range ng.Nodes {
		if err := p.node(el); err != nil {
			return nil, err
		}
	}
	for _, el := range ng.Nodes {
		if err := p.wires(el); err != nil {
			return nil, err
		}
	}
	for _, out := range ng.Outputs {
		if err := p.connector(out); err != nil {
			return nil, err
		}
	}

	return p.net, nil
}

// docParser rebuilds a Network from document elements.
type docParser struct {
	net    *Network
	params map[string]string // interface name -> parameter node
}

// parameter creates a parameter node from an interface input.
func (p *docParser) parameter(in Input) error {
	ptype := "float"
	for k, v := range parmTypes {
		if v == in.Type {
			ptype = k
		}
	}

	h, err := p.net.CreateNode(NodeParameter, in.Name)
	if err != nil {
		return err
	}
	p.params[in.Name] = h

	set := []Parm{
		{Name: "parmtype", Value: StringValue(ptype)},
		{Name: "parmname", Value: StringValue(in.Name)},
		{Name: "parmlabel", Value: StringValue(in.UIName)},
		{Name: "exportparm", Value: IntValue(1)},
	}
	if in.Value != "" {
		v, err := parseValue(in.Type, in.Value)
		if err != nil {
			return err
		}
		set = append(set, Parm{Name: defaultParmName(ptype), Value: v})
	}
	if in.UISoftMax != "" {
		v, err := parseValue("float", in.UISoftMax)
		if err != nil {
			return err
		}
		set = append(set, Parm{Name: "rangeflt2", Value: v})
	}

	return p.setAll(h, set)
}

// node creates a node and its value inputs.
func (p *docParser) node(el Element) error {
	typ := nodeTypeOf(el.XMLName.Local)
	h, err := p.net.CreateNode(typ, el.Name)
	if err != nil {
		return err
	}
	if h != el.Name {
		return fmt.Errorf("%w: duplicate node name %q", ErrParse, el.Name)
	}

	var set []Parm
	for _, in := range el.Inputs {
		if in.NodeName != "" || in.InterfaceName != "" {
			continue
		}
		vt := in.Type
		if vt == "filename" {
			vt = "string"
		}
		v, err := parseValue(vt, in.Value)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", el.Name, in.Name, err)
		}
		set = append(set, Parm{Name: in.Name, Value: v})
	}
	if el.Type != "" && (typedNode(typ) || el.Type != defaultOutputTypes[typ]) {
		set = append(set, Parm{Name: "signature", Value: StringValue(typeSignature(el.Type))})
	}

	return p.setAll(h, set)
}

// wires connects node and interface inputs of el.
func (p *docParser) wires(el Element) error {
	for _, in := range el.Inputs {
		switch {
		case in.InterfaceName != "":
			src, ok := p.params[in.InterfaceName]
			if !ok {
				return fmt.Errorf("%w: %s.%s: unknown interface %q", ErrParse, el.Name, in.Name, in.InterfaceName)
			}
			if err := p.net.Connect(el.Name, in.Name, src, DefaultOutput); err != nil {
				return fmt.Errorf("%w: %w", ErrParse, err)
			}
		case in.NodeName != "":
			out := in.Output
			if out == "" {
				out = DefaultOutput
			}
			if err := p.net.Connect(el.Name, in.Name, in.NodeName, out); err != nil {
				return fmt.Errorf("%w: %w", ErrParse, err)
			}
		}
	}

	return nil
}

// connector creates an output connector wired from the output's node.
func (p *docParser) connector(out Output) error {
	h, err := p.net.CreateNode(NodeConnector, out.Name+"_output")
	if err != nil {
		return err
	}

	err = p.setAll(h, []Parm{
		{Name: "connectorkind", Value: StringValue("output")},
		{Name: "parmname", Value: StringValue(out.Name)},
		{Name: "parmlabel", Value: StringValue(titleCase(out.Name))},
		{Name: "parmtype", Value: StringValue(strings.TrimSuffix(out.Type, "shader"))},
	})
	if err != nil {
		return err
	}
	if out.NodeName == "" {
		return nil
	}
	if err := p.net.Connect(h, "in", out.NodeName, DefaultOutput); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	return nil
}

// setAll sets parms on node h.
func (p *docParser) setAll(h string, parms []Parm) error {
	for _, pm := range parms {
		if err := p.net.SetParm(h, pm.Name, pm.Value); err != nil {
			return err
		}
	}
	return nil
}

// typedNode reports whether nodes of typ always carry an explicit signature.
func typedNode(typ NodeType) bool {
	return typ == NodeImage || typ == NodeMultiply
}

// titleCase upper-cases the first letter of s.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
