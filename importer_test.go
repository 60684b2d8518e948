package mtlximport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestImportWoodFolder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "wood_basecolor.png", "wood_roughness.png", "wood_normal.exr", "readme.txt")

	core, logs := observer.New(zap.DebugLevel)
	im := NewImporter(&ImportOptions{
		Validate: &ValidateOptions{CheckFiles: true},
		Logger:   zap.New(core),
	})

	res, err := im.Import(dir, "wood", Toggles{})
	require.NoError(t, err)
	assert.Equal(t, "wood_MAT", res.Network.Name)
	assert.Empty(t, res.Issues)
	assert.Equal(t, TextureSet{
		ChannelBaseColor: filepath.Join(dir, "wood_basecolor.png"),
		ChannelRoughness: filepath.Join(dir, "wood_roughness.png"),
		ChannelNormal:    filepath.Join(dir, "wood_normal.exr"),
	}, res.Textures)
	assert.Equal(t, 9, res.Network.Len())

	assert.Equal(t, 3, logs.FilterMessage("map selected").Len())
	assert.Equal(t, 1, logs.FilterMessage("material built").Len())
}

func TestImportSkipsUnwantedChannels(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "rock_basecolor.png", "rock_height.exr", "rock_ao.png")

	res, err := NewImporter(nil).Import(dir, "rock", Toggles{})
	require.NoError(t, err)
	assert.False(t, res.Textures.Has(ChannelDisplacement))
	assert.False(t, res.Textures.Has(ChannelAO))
	_, ok := res.Network.Connector(OutputDisplacement)
	assert.False(t, ok)

	res, err = NewImporter(nil).Import(dir, "rock", Toggles{Displacement: true, AO: true})
	require.NoError(t, err)
	assert.True(t, res.Textures.Has(ChannelDisplacement))
	_, ok = res.Network.Connector(OutputDisplacement)
	assert.True(t, ok)
	assert.Len(t, res.Network.NodesOfType(NodeMultiply), 2)
}

func TestImportReportsSkippedBranches(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "leaf_basecolor.png")

	core, logs := observer.New(zap.WarnLevel)
	im := NewImporter(&ImportOptions{Logger: zap.New(core)})

	res, err := im.Import(dir, "leaf", Toggles{Opacity: true, Translucency: true})
	require.NoError(t, err)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "skipped_branch", res.Issues[0].Code)
	assert.Equal(t, 1, logs.Len())

	assert.Len(t, res.Network.NodesOfType(NodeRemap), 1)
}

func TestImportInputErrors(t *testing.T) {
	im := NewImporter(nil)

	_, err := im.Import("", "wood", Toggles{})
	assert.ErrorIs(t, err, ErrInput)
	_, err = im.Import(t.TempDir(), "  ", Toggles{})
	assert.ErrorIs(t, err, ErrInput)
	_, err = im.Import(filepath.Join(t.TempDir(), "missing"), "wood", Toggles{})
	assert.ErrorIs(t, err, ErrDirectory)
}

func TestImportAmbiguous(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "bark_albedo.png", "bark_diffuse.png")

	_, err := NewImporter(nil).Import(dir, "bark", Toggles{})
	assert.ErrorIs(t, err, ErrAmbiguousSelection)

	var titles []string
	im := NewImporter(&ImportOptions{
		Chooser: ChooserFunc(func(title string, candidates []string) (int, error) {
			titles = append(titles, title)
			return 1, nil
		}),
		Dialect: DialectLegacy,
	})
	res, err := im.Import(dir, "bark", Toggles{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Select one of the maps for the Base Color"}, titles)
	assert.Equal(t, filepath.Join(dir, "bark_diffuse.png"), res.Textures.Get(ChannelBaseColor))
	assert.Len(t, res.Network.NodesOfType(NodeLegacyColorCorrect), 1)
}

func TestImporterCustomPatterns(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "moss_tint.png")

	im := NewImporter(&ImportOptions{Patterns: PatternTable{ChannelBaseColor: {"tint"}}})
	assert.Equal(t, []string{"tint"}, im.Classifier().Patterns(ChannelBaseColor))

	res, err := im.Import(dir, "moss", Toggles{})
	require.NoError(t, err)
	assert.True(t, res.Textures.Has(ChannelBaseColor))
}

func TestImportRelativeDirGivesAbsolutePaths(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)
	require.NoError(t, os.Mkdir("tex", 0o700))
	touch(t, "tex", "wood_basecolor.png")

	res, err := NewImporter(nil).Import("tex", "wood", Toggles{})
	require.NoError(t, err)

	p := res.Textures.Get(ChannelBaseColor)
	assert.True(t, filepath.IsAbs(p), p)
	assert.Equal(t, "wood_basecolor.png", filepath.Base(p))

	img, ok := res.Network.Node("Base_Color")
	require.True(t, ok)
	v, _ := img.Parm("file")
	assert.Equal(t, p, v.Str)
}
