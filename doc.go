/*
Package mtlximport builds MaterialX standard surface networks from a folder of
texture maps.

Texture files are matched to channels (base color, roughness, normal, AO,
displacement, translucency, opacity, metalness) by filename substrings. The
builder then wires a fixed node topology into a Host; Network is the in-memory
host shipped with the package and can be validated and written as a .mtlx
document.

Classifier example:

	files, err := mtlximport.ListImageFiles("textures/wood", nil)
	if err != nil {
		// handle error
	}
	c := mtlximport.NewClassifier(nil, nil)
	set, err := c.ClassifyAll(files)
	if err != nil {
		// handle mtlximport.ErrAmbiguousSelection
	}

Builder example:

	net := mtlximport.NewNetwork("wood_MAT")
	issues, err := mtlximport.NewBuilder(net, nil).Build(mtlximport.BuildInput{
		Textures: set,
		Toggles:  mtlximport.Toggles{Displacement: true},
	})
	if err != nil {
		// handle error
	}

Writer example:

	out, err := mtlximport.Format(net, nil)
	if err != nil {
		// handle error
	}

Validator example:

	issues := mtlximport.ValidateNetwork(net, nil)
	if mtlximport.HasErrors(issues) {
		// handle validation issues
	}

Preset example:

	path, err := mtlximport.SavePreset("presets/foliage", mtlximport.Toggles{Translucency: true})
	if err != nil {
		// handle error
	}
	toggles, err := mtlximport.LoadPreset(path)
*/
package mtlximport
