package mtlximport

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"io"
	"os"
)

// Encode writes a Network as a MaterialX document to writer.
func Encode(w io.Writer, n *Network, opt *FormatOptions) error {
	fopt := opt.normalize()
	// Buffered writer reduces syscall overhead and short writes.
	bw := bufio.NewWriter(w)
	if _, err := io.WriteString(bw, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(bw)
	enc.Indent("", fopt.Indent)
	if err := enc.Encode(ToDocument(n, fopt.Version)); err != nil {
		return err
	}
	if _, err := io.WriteString(bw, "\n"); err != nil {
		return err
	}

	return bw.Flush()
}

// EncodeFile writes a Network to a .mtlx file.
func EncodeFile(path string, n *Network, opt *FormatOptions) error {
	b, err := Format(n, opt)
	if err != nil {
		return err
	}

	return os.WriteFile(path, b, 0o600)
}

// Format renders a Network to MaterialX bytes.
func Format(n *Network, opt *FormatOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, n, opt); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ToDocument converts a Network into a MaterialX document.
// Parameter nodes become nodegraph interface inputs and connectors become nodegraph outputs.
func ToDocument(n *Network, version string) *Document {
	if version == "" {
		version = "1.38"
	}

	ng := NodeGraph{Name: nodeGraphPrefix + n.Name}
	for _, nd := range n.Nodes {
		switch nd.Type {
		case NodeParameter:
			ng.Inputs = append(ng.Inputs, interfaceInput(nd))
		case NodeConnector:
			ng.Outputs = append(ng.Outputs, connectorOutput(n, nd))
		default:
			ng.Nodes = append(ng.Nodes, nodeElement(n, nd))
		}
	}

	mat := Element{
		XMLName: xml.Name{Local: "surfacematerial"},
		Name:    n.Name,
		Type:    "material",
	}
	for _, out := range ng.Outputs {
		mat.Inputs = append(mat.Inputs, Input{Name: out.Type, Type: out.Type, NodeGraph: ng.Name, Output: out.Name})
	}

	return &Document{Version: version, NodeGraphs: []NodeGraph{ng}, Materials: []Element{mat}}
}

// interfaceInput writes a parameter node as a nodegraph input.
func interfaceInput(nd *Node) Input {
	name, _ := nd.Parm("parmname")
	label, _ := nd.Parm("parmlabel")
	in := Input{Name: name.Str, Type: outputType(nd), UIName: label.Str}

	ptype, _ := nd.Parm("parmtype")
	if def, ok := nd.Parm(defaultParmName(ptype.Str)); ok {
		in.Value = def.String()
	}
	if r, ok := nd.Parm("rangeflt2"); ok {
		in.UISoftMax = r.String()
	}

	return in
}

// connectorOutput writes a connector node as a nodegraph output.
func connectorOutput(n *Network, nd *Node) Output {
	name, _ := nd.Parm("parmname")
	out := Output{Name: name.Str, Type: outputType(nd)}
	if src, ok := n.Source(nd.Name, "in"); ok {
		out.NodeName = src.Name
	}

	return out
}

// nodeElement writes a node with its parameter values and connections.
func nodeElement(n *Network, nd *Node) Element {
	el := Element{
		XMLName: xml.Name{Local: categoryOf(nd.Type)},
		Name:    nd.Name,
		Type:    outputType(nd),
	}

	for _, p := range nd.Parms {
		if p.Name == "signature" {
			continue
		}
		el.Inputs = append(el.Inputs, Input{Name: p.Name, Type: parmValueType(p.Name, p.Value), Value: p.Value.String()})
	}

	for _, c := range nd.Inputs {
		src, ok := n.Node(c.Node)
		if !ok {
			continue
		}
		in := Input{Name: c.Input, Type: outputType(src)}
		if src.Type == NodeParameter {
			name, _ := src.Parm("parmname")
			in.InterfaceName = name.Str
		} else {
			in.NodeName = src.Name
			if c.Output != "" && c.Output != DefaultOutput {
				in.Output = c.Output
			}
		}
		el.Inputs = append(el.Inputs, in)
	}

	return el
}
