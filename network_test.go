package mtlximport

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkCreateNodeSuffixesTakenNames(t *testing.T) {
	n := NewNetwork("rock_MAT")

	tests := []struct {
		typ  NodeType
		name string
		want string
	}{
		{NodeImage, "Displacement", "Displacement"},
		{NodeRemap, "Displacement", "Displacement1"},
		{NodeRemap, "Displacement", "Displacement2"},
		{NodeImage, "", "mtlximage"},
		{NodeImage, "", "mtlximage1"},
	}
	for _, tt := range tests {
		got, err := n.CreateNode(tt.typ, tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	assert.Equal(t, len(tests), n.Len())

	_, err := n.CreateNode("", "x")
	assert.ErrorIs(t, err, ErrHostOperation)
}

func TestNetworkSetParmReplaces(t *testing.T) {
	n := NewNetwork("m")
	h, err := n.CreateNode(NodeRemap, "r")
	require.NoError(t, err)

	require.NoError(t, n.SetParm(h, "outhigh", FloatValue(1)))
	require.NoError(t, n.SetParm(h, "outlow", FloatValue(0)))
	require.NoError(t, n.SetParm(h, "outhigh", FloatValue(0.1)))

	nd, ok := n.Node(h)
	require.True(t, ok)
	require.Len(t, nd.Parms, 2)
	assert.Equal(t, "outhigh", nd.Parms[0].Name)
	assert.Equal(t, FloatValue(0.1), nd.Parms[0].Value)

	assert.ErrorIs(t, n.SetParm("missing", "x", FloatValue(1)), ErrHostOperation)
}

func TestNetworkConnect(t *testing.T) {
	n := NewNetwork("m")
	a, _ := n.CreateNode(NodeImage, "a")
	b, _ := n.CreateNode(NodeImage, "b")
	r, _ := n.CreateNode(NodeRemap, "r")

	require.NoError(t, n.Connect(r, "in", a, DefaultOutput))
	require.NoError(t, n.Connect(r, "in", b, DefaultOutput))

	src, ok := n.Source(r, "in")
	require.True(t, ok)
	assert.Equal(t, "b", src.Name)

	nd, _ := n.Node(r)
	assert.Len(t, nd.Inputs, 1)

	assert.ErrorIs(t, n.Connect("nope", "in", a, DefaultOutput), ErrHostOperation)
	assert.ErrorIs(t, n.Connect(r, "in", "nope", DefaultOutput), ErrHostOperation)
	assert.ErrorIs(t, n.Connect(r, "in", r, DefaultOutput), ErrHostOperation)

	_, ok = n.Source(r, "other")
	assert.False(t, ok)
	_, ok = n.Source("nope", "in")
	assert.False(t, ok)
}

func TestNetworkConnectorLookup(t *testing.T) {
	n := NewNetwork("m")
	g := &graph{host: n}
	g.connector("surface_output", OutputSurface, "Surface")
	require.NoError(t, g.err)

	nd, ok := n.Connector(OutputSurface)
	require.True(t, ok)
	assert.Equal(t, "surface_output", nd.Name)

	_, ok = n.Connector(OutputDisplacement)
	assert.False(t, ok)
}

func TestNetworkIndexAfterDirectEdit(t *testing.T) {
	n := &Network{Name: "m", Nodes: []*Node{{Name: "x", Type: NodeImage}}}

	_, ok := n.Node("x")
	assert.True(t, ok)

	h, err := n.CreateNode(NodeImage, "x")
	require.NoError(t, err)
	assert.Equal(t, "x1", h)
}

func TestNetworkIndexAfterRename(t *testing.T) {
	n := NewNetwork("m")
	_, err := n.CreateNode(NodeImage, "a")
	require.NoError(t, err)
	_, ok := n.Node("a")
	require.True(t, ok)

	n.Nodes[0].Name = "b"

	_, ok = n.Node("a")
	assert.False(t, ok)
	nd, ok := n.Node("b")
	require.True(t, ok)
	assert.Same(t, n.Nodes[0], nd)
}

func TestNetworkRelocateFiles(t *testing.T) {
	root := t.TempDir()
	n := minimal(filepath.Join(root, "tex", "wood_basecolor.png"))

	require.NoError(t, n.RelocateFiles(filepath.Join(root, "out")))
	img, ok := n.Node("Base_Color")
	require.True(t, ok)
	v, _ := img.Parm("file")
	assert.Equal(t, "../tex/wood_basecolor.png", v.Str)

	empty := minimal("")
	require.NoError(t, empty.RelocateFiles(root))
	img, _ = empty.Node("Base_Color")
	v, _ = img.Parm("file")
	assert.Empty(t, v.Str)
}
