package mtlximport

import (
	"errors"
	"fmt"
)

// Standard surface inputs driven by the builder.
const (
	InputBaseColor         = "base_color"
	InputMetalness         = "metalness"
	InputSpecularRoughness = "specular_roughness"
	InputNormal            = "normal"
	InputSubsurface        = "subsurface"
	InputSubsurfaceColor   = "subsurface_color"
	InputThinWalled        = "thin_walled"
	InputOpacity           = "opacity"
)

// Output connector names exposed by a built network.
const (
	OutputSurface      = "surface"
	OutputDisplacement = "displacement"
)

// Fixed branch defaults.
const (
	ColorVariationAttribute = "ColorVariation"
	TranslucencyRemapHigh   = 0.1
	DisplacementRemapLow    = -0.5
	DisplacementRemapHigh   = 0.5
	DisplacementScale       = 0.015
	DisplacementScaleRange  = 10
	NormalIntensity         = 1.0
	TranslucencyWeight      = 1.0
)

// TranslucencyColor is the default subsurface color.
var TranslucencyColor = SetColorRGB(0.62, 1, 0)

// BuildInput is the resolved maps plus feature toggles of one material.
type BuildInput struct {
	Textures TextureSet `json:"textures,omitempty" yaml:"textures,omitempty"` // Resolved texture paths
	Toggles  Toggles    `json:"toggles" yaml:"toggles"`                       // Feature switches
}

// Builder assembles a standard surface shading network into a Host.
type Builder struct {
	host Host
	opt  BuildOptions
}

// NewBuilder creates a builder writing into host.
func NewBuilder(host Host, opt *BuildOptions) *Builder {
	return &Builder{host: host, opt: opt.normalize()}
}

// Dialect returns the node dialect the builder was created with.
func (b *Builder) Dialect() Dialect { return b.opt.Dialect }

// Build creates the network for in. Requested branches that cannot be built
// from the given maps are skipped and reported as warnings.
// Host failures abort the build and leave created nodes in place.
func (b *Builder) Build(in BuildInput) ([]Issue, error) {
	if nw, ok := b.host.(*Network); ok && nw.Len() > 0 {
		return nil, fmt.Errorf("%w: network %q already has %d nodes", ErrInput, nw.Name, nw.Len())
	}

	g := &graph{host: b.host}
	tex := in.Textures
	tg := in.Toggles
	var issues []Issue

	standard := g.node(NodeStandardSurface, "mtlxstandard_surface")

	// Base color
	var colorOut, baseCorrection string
	if p := tex.Get(ChannelBaseColor); p != "" {
		img := g.image("Base_Color", p, "")
		baseCorrection = g.node(b.opt.Dialect.ColorCorrectType(), "Base_Color_Correction")
		g.wire(baseCorrection, "in", img)
		colorOut = baseCorrection
	} else {
		colorOut = g.parameter("Base_Color", "color", "base_color", "Base Color", Value{})
	}

	// Color variation
	if tg.ColorVariation {
		if baseCorrection == "" {
			issues = append(issues, skipped("color variation needs a base color map", ChannelBaseColor))
		} else {
			variation := g.node(b.opt.Dialect.ColorCorrectType(), "Variation_Color_Correct")
			g.wire(variation, "in", baseCorrection)

			attr := g.node(NodeGeomPropValue, "ColorVariationAttribute")
			g.set(attr, "geomprop", StringValue(ColorVariationAttribute))
			g.set(attr, "default", FloatValue(1))

			mix := g.node(NodeMix, "VariationMix")
			g.wire(mix, "fg", variation)
			g.wire(mix, "bg", baseCorrection)
			g.wire(mix, "mix", attr)
			colorOut = mix
		}
	}

	// Ambient occlusion
	if p := tex.Get(ChannelAO); p != "" {
		img := g.image("AO", p, "color")

		aoMultiply := g.node(NodeMultiply, "AO_multiply")
		g.set(aoMultiply, "signature", StringValue("vector3"))
		g.wire(aoMultiply, "in1", img)

		colorMultiply := g.node(NodeMultiply, "AO_multiply_color")
		g.set(colorMultiply, "signature", StringValue("color"))
		g.wire(colorMultiply, "in1", colorOut)
		g.wire(colorMultiply, "in2", aoMultiply)
		colorOut = colorMultiply
	} else if tg.AO {
		issues = append(issues, skipped("ambient occlusion enabled without a map", ChannelAO))
	}

	g.wire(standard, InputBaseColor, colorOut)

	// Metalness
	if p := tex.Get(ChannelMetalness); p != "" {
		img := g.image("Metalness_map", p, "float")
		g.wire(standard, InputMetalness, img)
	}

	// Roughness
	if p := tex.Get(ChannelRoughness); p != "" {
		img := g.image("Roughness_map", p, "float")
		remap := g.node(NodeRemap, "Roughness_remap")
		g.wire(remap, "in", img)
		g.wire(standard, InputSpecularRoughness, remap)
	}

	// Normal
	if p := tex.Get(ChannelNormal); p != "" {
		img := g.image("Normal_map", p, "vector3")
		intensity := g.parameter("Normal_Intensity", "float", "normal_intensity", "Normal Intensity", FloatValue(NormalIntensity))
		normalMap := g.node(NodeNormalMap, "mtlxnormalmap")
		g.wire(normalMap, "in", img)
		g.wire(normalMap, "scale", intensity)
		g.wire(standard, InputNormal, normalMap)
	}

	// Translucency, with a constant weight when no map was found
	if tg.Translucency {
		var weight string
		if p := tex.Get(ChannelTranslucency); p != "" {
			weight = g.image("Translucency_map", p, "float")
		} else {
			weight = g.parameter("Translucency_def", "float", "translucency", "Translucency", FloatValue(TranslucencyWeight))
		}

		remap := g.node(NodeRemap, "Translucency_remap")
		g.set(remap, "outhigh", FloatValue(TranslucencyRemapHigh))
		g.wire(remap, "in", weight)

		thinWalled := g.parameter("thin_walled", "int", "thin_walled", "Thin Walled", IntValue(1))
		color := g.parameter("translucency_color", "color", "translucency_color", "Translucency Color", ColorValue(TranslucencyColor))

		g.wire(standard, InputSubsurface, remap)
		g.wire(standard, InputSubsurfaceColor, color)
		g.wire(standard, InputThinWalled, thinWalled)
	}

	// Opacity has no constant fallback
	if tg.Opacity {
		if p := tex.Get(ChannelOpacity); p != "" {
			img := g.image("Opacity_map", p, "float")
			g.wire(standard, InputOpacity, img)
		} else {
			issues = append(issues, skipped("opacity enabled without a map", ChannelOpacity))
		}
	}

	surface := g.connector("surface_output", OutputSurface, "Surface")
	g.wire(surface, "in", standard)

	// Displacement
	if tg.Displacement {
		if p := tex.Get(ChannelDisplacement); p != "" {
			img := g.image("Displacement", p, "float")

			remap := g.node(NodeRemap, "Displacement")
			g.set(remap, "outlow", FloatValue(DisplacementRemapLow))
			g.set(remap, "outhigh", FloatValue(DisplacementRemapHigh))
			g.wire(remap, "in", img)

			scale := g.parameter("Displacement_Scale", "float", "scale", "Scale", FloatValue(DisplacementScale))
			g.set(scale, "rangeflt2", FloatValue(DisplacementScaleRange))

			disp := g.node(NodeDisplacement, "mtlxdisplacement")
			g.wire(disp, "displacement", remap)
			g.wire(disp, "scale", scale)

			out := g.connector("displacement_output", OutputDisplacement, "Displacement")
			g.wire(out, "in", disp)
		} else {
			issues = append(issues, skipped("displacement enabled without a map", ChannelDisplacement))
		}
	}

	return issues, g.err
}

// codeSkippedBranch marks a requested branch that was not built.
const codeSkippedBranch = "skipped_branch"

// skipped reports a requested branch that was not built.
func skipped(msg string, ch Channel) Issue {
	return Issue{Level: IssueWarning, Code: codeSkippedBranch, Message: msg, Path: ch.String()}
}

// graph wraps a Host and keeps the first failure; later calls are no-ops.
type graph struct {
	host Host
	err  error
}

// node creates a node and returns its handle.
func (g *graph) node(typ NodeType, name string) string {
	if g.err != nil {
		return ""
	}

	h, err := g.host.CreateNode(typ, name)
	if err != nil {
		g.fail(err, "create %s %q", typ, name)
		return ""
	}

	return h
}

// set sets a parameter.
func (g *graph) set(node, parm string, v Value) {
	if g.err != nil {
		return
	}

	if err := g.host.SetParm(node, parm, v); err != nil {
		g.fail(err, "set %s.%s", node, parm)
	}
}

// wire connects the default output of src into input of node.
func (g *graph) wire(node, input, src string) {
	if g.err != nil {
		return
	}

	if err := g.host.Connect(node, input, src, DefaultOutput); err != nil {
		g.fail(err, "connect %s -> %s.%s", src, node, input)
	}
}

// image creates an image sampler reading file; empty signature keeps the host default.
func (g *graph) image(name, file, signature string) string {
	n := g.node(NodeImage, name)
	g.set(n, "file", StringValue(file))
	if signature != "" {
		g.set(n, "signature", StringValue(signature))
	}

	return n
}

// parameter creates an exposed parameter node; a zero def leaves the host default.
func (g *graph) parameter(name, parmtype, parmname, label string, def Value) string {
	n := g.node(NodeParameter, name)
	g.set(n, "parmtype", StringValue(parmtype))
	g.set(n, "parmname", StringValue(parmname))
	g.set(n, "parmlabel", StringValue(label))
	g.set(n, "exportparm", IntValue(1))
	if def.Kind != "" {
		g.set(n, defaultParmName(parmtype), def)
	}

	return n
}

// connector creates a subnet output connector.
func (g *graph) connector(name, parmname, label string) string {
	n := g.node(NodeConnector, name)
	g.set(n, "connectorkind", StringValue("output"))
	g.set(n, "parmname", StringValue(parmname))
	g.set(n, "parmlabel", StringValue(label))
	g.set(n, "parmtype", StringValue(parmname))

	return n
}

// fail records a host failure.
func (g *graph) fail(err error, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, ErrHostOperation) {
		g.err = fmt.Errorf("%s: %w", msg, err)
		return
	}
	g.err = fmt.Errorf("%w: %s: %w", ErrHostOperation, msg, err)
}

// defaultParmName returns the parameter holding the default for a parameter type.
func defaultParmName(parmtype string) string {
	switch parmtype {
	case "int":
		return "intdef"
	case "color":
		return "colordef"
	case "string":
		return "stringdef"
	default:
		return "floatdef"
	}
}
