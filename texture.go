package mtlximport

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// ListImageFiles lists files in directory whose extension is accepted by opt.
// The result is sorted by path; an empty result is not an error.
func ListImageFiles(directory string, opt *ScanOptions) ([]string, error) {
	sopt := opt.normalize()

	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirectory, directory, err)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !hasExt(e.Name(), sopt.Extensions, !sopt.DisableCaseInsensitive) {
			continue
		}
		out = append(out, filepath.Join(directory, e.Name()))
	}

	sort.Strings(out)
	return out, nil
}

// hasExt checks whether name ends with one of exts.
func hasExt(name string, exts []string, fold bool) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return false
	}

	for _, e := range exts {
		e = strings.TrimPrefix(e, ".")
		if fold && strings.EqualFold(ext, e) {
			return true
		}
		if ext == e {
			return true
		}
	}

	return false
}

// Chooser picks one of several candidate maps for a channel.
type Chooser interface {
	// Choose returns the index of the chosen candidate.
	Choose(title string, candidates []string) (int, error)
}

// ChooserFunc adapts a function to Chooser.
type ChooserFunc func(title string, candidates []string) (int, error)

// Choose implements Chooser.
func (f ChooserFunc) Choose(title string, candidates []string) (int, error) {
	return f(title, candidates)
}

// PromptChooser asks on Out and reads a 1-based choice from In.
type PromptChooser struct {
	In  io.Reader
	Out io.Writer

	br *bufio.Reader
}

// Choose implements Chooser.
func (p *PromptChooser) Choose(title string, candidates []string) (int, error) {
	if p.br == nil {
		p.br = bufio.NewReader(p.In)
	}

	fmt.Fprintln(p.Out, title)
	for i, c := range candidates {
		fmt.Fprintf(p.Out, "  %d) %s\n", i+1, filepath.Base(c))
	}
	fmt.Fprintf(p.Out, "choice [1-%d]: ", len(candidates))

	line, err := p.br.ReadString('\n')
	if err != nil && (err != io.EOF || strings.TrimSpace(line) == "") {
		return -1, fmt.Errorf("read choice: %w", err)
	}

	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return -1, fmt.Errorf("choice %q is not a number", strings.TrimSpace(line))
	}

	return n - 1, nil
}

// Classifier matches texture files to channels by filename substrings.
type Classifier struct {
	patterns PatternTable
	chooser  Chooser
}

// NewClassifier creates a classifier over a copy of patterns (nil uses DefaultPatterns).
// A nil chooser makes ambiguous channels fail with ErrAmbiguousSelection.
func NewClassifier(patterns PatternTable, chooser Chooser) *Classifier {
	if patterns == nil {
		patterns = DefaultPatterns()
	}

	return &Classifier{patterns: patterns.Clone(), chooser: chooser}
}

// Patterns returns the substrings configured for ch.
func (c *Classifier) Patterns(ch Channel) []string {
	return append([]string(nil), c.patterns[ch]...)
}

// Classify returns the files whose base name contains any substring of ch.
// Each file appears at most once, in input order.
func (c *Classifier) Classify(files []string, ch Channel) []string {
	subs := c.patterns[ch]
	if len(subs) == 0 {
		return nil
	}

	matched := lo.Filter(files, func(f string, _ int) bool {
		name := strings.ToLower(filepath.Base(f))
		return lo.SomeBy(subs, func(sub string) bool {
			return strings.Contains(name, sub)
		})
	})

	return lo.Uniq(matched)
}

// Resolve reduces candidates to a single path.
// No candidates yields ""; one is returned as is; several are delegated to the chooser.
func (c *Classifier) Resolve(candidates []string, ch Channel) (string, error) {
	switch len(candidates) {
	case 0:
		return "", nil
	case 1:
		return candidates[0], nil
	}

	if c.chooser == nil {
		return "", fmt.Errorf("%w: %d maps match %s", ErrAmbiguousSelection, len(candidates), ch.Title())
	}

	idx, err := c.chooser.Choose(SelectionTitle(ch), candidates)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrAmbiguousSelection, ch.Title(), err)
	}
	if idx < 0 || idx >= len(candidates) {
		return "", fmt.Errorf("%w: %s: choice %d out of range", ErrAmbiguousSelection, ch.Title(), idx)
	}

	return candidates[idx], nil
}

// ClassifyAll resolves every channel in channels (all channels when empty).
func (c *Classifier) ClassifyAll(files []string, channels ...Channel) (TextureSet, error) {
	if len(channels) == 0 {
		channels = Channels
	}

	out := make(TextureSet, len(channels))
	for _, ch := range channels {
		p, err := c.Resolve(c.Classify(files, ch), ch)
		if err != nil {
			return nil, err
		}
		if p != "" {
			out[ch] = p
		}
	}

	return out, nil
}

// SelectionTitle is the prompt title shown when ch is ambiguous.
func SelectionTitle(ch Channel) string {
	return "Select one of the maps for the " + ch.Title()
}
