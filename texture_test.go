package mtlximport

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// touch creates empty files in dir and returns their paths.
func touch(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	out := make([]string, 0, len(names))
	for _, n := range names {
		p := filepath.Join(dir, n)
		require.NoError(t, os.WriteFile(p, nil, 0o600))
		out = append(out, p)
	}
	return out
}

func TestListImageFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b_roughness.png", "a_basecolor.jpg", "c_normal.exr", "notes.txt", "d_height.PNG", "e_ao.tif")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o700))

	files, err := ListImageFiles(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a_basecolor.jpg"),
		filepath.Join(dir, "b_roughness.png"),
		filepath.Join(dir, "c_normal.exr"),
		filepath.Join(dir, "d_height.PNG"),
	}, files)

	files, err = ListImageFiles(dir, &ScanOptions{DisableCaseInsensitive: true})
	require.NoError(t, err)
	assert.Len(t, files, 3)
	assert.NotContains(t, files, filepath.Join(dir, "d_height.PNG"))

	files, err = ListImageFiles(dir, &ScanOptions{Extensions: []string{".tif"}})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "e_ao.tif")}, files)
}

func TestListImageFilesEmptyAndMissing(t *testing.T) {
	files, err := ListImageFiles(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = ListImageFiles(filepath.Join(t.TempDir(), "missing"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDirectory)
}

func TestClassifyWoodSet(t *testing.T) {
	files := []string{"wood_basecolor.png", "wood_roughness.png", "wood_normal.exr"}
	c := NewClassifier(nil, nil)

	got, err := c.ClassifyAll(files)
	require.NoError(t, err)

	want := TextureSet{
		ChannelBaseColor: "wood_basecolor.png",
		ChannelRoughness: "wood_roughness.png",
		ChannelNormal:    "wood_normal.exr",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("classification mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyTable(t *testing.T) {
	files := []string{
		"/tex/Bark_Albedo.png",
		"/tex/bark_diff_2k.jpg",
		"/tex/bark_AO.png",
		"/tex/bark_Metallic.exr",
		"/tex/bark_gloss.png",
		"/tex/bark_height.exr",
		"/tex/bark_opacity.png",
		"/tex/bark_transmission.png",
		"/color/bark_normal.png",
	}

	tests := []struct {
		ch   Channel
		want []string
	}{
		{ChannelBaseColor, []string{"/tex/Bark_Albedo.png", "/tex/bark_diff_2k.jpg"}},
		{ChannelRoughness, []string{"/tex/bark_gloss.png"}},
		{ChannelNormal, []string{"/color/bark_normal.png"}},
		{ChannelAO, []string{"/tex/bark_AO.png"}},
		{ChannelDisplacement, []string{"/tex/bark_height.exr"}},
		{ChannelTranslucency, []string{"/tex/bark_transmission.png"}},
		{ChannelOpacity, []string{"/tex/bark_opacity.png"}},
		{ChannelMetalness, []string{"/tex/bark_Metallic.exr"}},
	}

	c := NewClassifier(nil, nil)
	for _, tt := range tests {
		t.Run(tt.ch.String(), func(t *testing.T) {
			got := c.Classify(files, tt.ch)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifyFileMatchesSeveralChannels(t *testing.T) {
	files := []string{"leaf_translucency_color.png"}
	c := NewClassifier(nil, nil)

	assert.Equal(t, files, c.Classify(files, ChannelBaseColor))
	assert.Equal(t, files, c.Classify(files, ChannelTranslucency))
}

func TestClassifierCopiesPatterns(t *testing.T) {
	table := PatternTable{ChannelBaseColor: {"  ALB  "}}
	c := NewClassifier(table, nil)
	table[ChannelBaseColor][0] = "zzz"

	assert.Equal(t, []string{"alb"}, c.Patterns(ChannelBaseColor))
	assert.Equal(t, []string{"x_albedo.png"}, c.Classify([]string{"x_albedo.png", "x_normal.png"}, ChannelBaseColor))
	assert.Empty(t, c.Classify([]string{"x_normal.png"}, ChannelNormal))
}

func TestResolve(t *testing.T) {
	calls := 0
	pick := func(idx int) Chooser {
		return ChooserFunc(func(title string, candidates []string) (int, error) {
			calls++
			assert.Equal(t, "Select one of the maps for the Base Color", title)
			return idx, nil
		})
	}

	t.Run("none", func(t *testing.T) {
		p, err := NewClassifier(nil, nil).Resolve(nil, ChannelBaseColor)
		require.NoError(t, err)
		assert.Empty(t, p)
	})

	t.Run("single_no_prompt", func(t *testing.T) {
		calls = 0
		p, err := NewClassifier(nil, pick(0)).Resolve([]string{"a.png"}, ChannelBaseColor)
		require.NoError(t, err)
		assert.Equal(t, "a.png", p)
		assert.Zero(t, calls)
	})

	t.Run("ambiguous_without_chooser", func(t *testing.T) {
		_, err := NewClassifier(nil, nil).Resolve([]string{"a.png", "b.png"}, ChannelBaseColor)
		assert.ErrorIs(t, err, ErrAmbiguousSelection)
	})

	t.Run("ambiguous_chosen", func(t *testing.T) {
		calls = 0
		p, err := NewClassifier(nil, pick(1)).Resolve([]string{"a.png", "b.png"}, ChannelBaseColor)
		require.NoError(t, err)
		assert.Equal(t, "b.png", p)
		assert.Equal(t, 1, calls)
	})

	t.Run("choice_out_of_range", func(t *testing.T) {
		_, err := NewClassifier(nil, pick(2)).Resolve([]string{"a.png", "b.png"}, ChannelBaseColor)
		assert.ErrorIs(t, err, ErrAmbiguousSelection)
	})

	t.Run("chooser_error", func(t *testing.T) {
		boom := errors.New("dialog closed")
		c := NewClassifier(nil, ChooserFunc(func(string, []string) (int, error) { return 0, boom }))
		_, err := c.Resolve([]string{"a.png", "b.png"}, ChannelBaseColor)
		assert.ErrorIs(t, err, ErrAmbiguousSelection)
		assert.ErrorIs(t, err, boom)
	})
}

func TestPromptChooser(t *testing.T) {
	var out strings.Builder
	pc := &PromptChooser{In: strings.NewReader("2\n"), Out: &out}

	idx, err := pc.Choose("Select one of the maps for the Normal", []string{"/x/a_normal.png", "/x/b_normal.png"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Contains(t, out.String(), "2) b_normal.png")

	_, err = (&PromptChooser{In: strings.NewReader("two\n"), Out: &out}).Choose("t", []string{"a", "b"})
	assert.Error(t, err)
}
