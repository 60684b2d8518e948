package mtlximport

import (
	"encoding/xml"
	"strings"
)

// Document is a MaterialX document holding one material.
type Document struct {
	XMLName    xml.Name    `xml:"materialx"`
	Version    string      `xml:"version,attr"`
	NodeGraphs []NodeGraph `xml:"nodegraph"`
	Materials  []Element   `xml:"surfacematerial"`
}

// NodeGraph is a MaterialX nodegraph element.
type NodeGraph struct {
	Name    string    `xml:"name,attr"`
	Inputs  []Input   `xml:"input"`  // Interface parameters
	Nodes   []Element `xml:",any"`   // Nodes in creation order
	Outputs []Output  `xml:"output"` // Output connectors
}

// Element is a MaterialX node element; XMLName.Local is the node category.
type Element struct {
	XMLName xml.Name
	Name    string  `xml:"name,attr"`
	Type    string  `xml:"type,attr"`
	Inputs  []Input `xml:"input"`
}

// Input is a MaterialX input: a value, a node connection or an interface binding.
type Input struct {
	Name          string `xml:"name,attr"`
	Type          string `xml:"type,attr"`
	Value         string `xml:"value,attr,omitempty"`
	NodeName      string `xml:"nodename,attr,omitempty"`
	InterfaceName string `xml:"interfacename,attr,omitempty"`
	NodeGraph     string `xml:"nodegraph,attr,omitempty"`
	Output        string `xml:"output,attr,omitempty"`
	UIName        string `xml:"uiname,attr,omitempty"`
	UISoftMax     string `xml:"uisoftmax,attr,omitempty"`
}

// Output is a MaterialX nodegraph output.
type Output struct {
	Name     string `xml:"name,attr"`
	Type     string `xml:"type,attr"`
	NodeName string `xml:"nodename,attr,omitempty"`
}

// nodeGraphPrefix prefixes nodegraph names derived from a network name.
const nodeGraphPrefix = "NG_"

// categoryOf returns the MaterialX category for a host node type.
func categoryOf(typ NodeType) string {
	s := string(typ)
	if rest, ok := strings.CutPrefix(s, "hmtlx"); ok {
		return "h" + rest
	}
	return strings.TrimPrefix(s, "mtlx")
}

// nodeTypeOf returns the host node type for a MaterialX category.
func nodeTypeOf(category string) NodeType {
	for _, t := range []NodeType{
		NodeStandardSurface, NodeImage, NodeColorCorrect, NodeLegacyColorCorrect,
		NodeGeomPropValue, NodeMix, NodeMultiply, NodeRemap, NodeNormalMap, NodeDisplacement,
	} {
		if categoryOf(t) == category {
			return t
		}
	}
	return NodeType("mtlx" + category)
}

// defaultOutputTypes are node output types used when no signature is set.
var defaultOutputTypes = map[NodeType]string{
	NodeStandardSurface:    "surfaceshader",
	NodeImage:              "color3",
	NodeColorCorrect:       "color3",
	NodeLegacyColorCorrect: "color3",
	NodeGeomPropValue:      "float",
	NodeMix:                "color3",
	NodeMultiply:           "float",
	NodeRemap:              "float",
	NodeNormalMap:          "vector3",
	NodeDisplacement:       "displacementshader",
}

// signatureType maps host signatures to MaterialX types.
func signatureType(sig string) string {
	if sig == "color" {
		return "color3"
	}
	return sig
}

// typeSignature maps MaterialX types to host signatures.
func typeSignature(typ string) string {
	if typ == "color3" {
		return "color"
	}
	return typ
}

// parmTypes maps parameter node types to MaterialX types.
var parmTypes = map[string]string{
	"float":  "float",
	"int":    "integer",
	"color":  "color3",
	"string": "string",
}

// outputType returns the MaterialX output type of a node.
func outputType(nd *Node) string {
	switch nd.Type {
	case NodeParameter:
		v, _ := nd.Parm("parmtype")
		if t, ok := parmTypes[v.Str]; ok {
			return t
		}
		return "float"
	case NodeConnector:
		v, _ := nd.Parm("parmtype")
		return v.Str + "shader"
	}

	if v, ok := nd.Parm("signature"); ok && v.Str != "" {
		return signatureType(v.Str)
	}
	if t, ok := defaultOutputTypes[nd.Type]; ok {
		return t
	}
	return "float"
}

// parmValueType returns the MaterialX type of a node parameter value.
func parmValueType(parm string, v Value) string {
	if parm == "file" {
		return "filename"
	}
	return string(v.Kind)
}
