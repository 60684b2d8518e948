package mtlximport

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// MaterialSuffix is appended to the material name to form the network name.
const MaterialSuffix = "_MAT"

// Result is the outcome of one import.
type Result struct {
	Network  *Network   `json:"network" yaml:"network"`                       // Built network
	Textures TextureSet `json:"textures,omitempty" yaml:"textures,omitempty"` // Maps used per channel
	Issues   []Issue    `json:"issues,omitempty" yaml:"issues,omitempty"`     // Build and validation issues
}

// Importer turns a texture folder into a material network.
type Importer struct {
	opt        ImportOptions
	classifier *Classifier
	log        *zap.Logger
}

// NewImporter creates an importer.
func NewImporter(opt *ImportOptions) *Importer {
	iopt := opt.normalize()
	return &Importer{
		opt:        iopt,
		classifier: NewClassifier(iopt.Patterns, iopt.Chooser),
		log:        iopt.Logger,
	}
}

// Classifier returns the classifier used by the importer.
func (im *Importer) Classifier() *Classifier { return im.classifier }

// Resolve lists dir and resolves every channel the toggles ask for.
// Paths in the result are absolute.
func (im *Importer) Resolve(dir string, toggles Toggles) (TextureSet, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirectory, dir, err)
	}

	files, err := ListImageFiles(abs, im.opt.Scan)
	if err != nil {
		return nil, err
	}
	im.log.Debug("texture files listed", zap.String("dir", dir), zap.Int("count", len(files)))

	set := make(TextureSet)
	for _, ch := range Channels {
		if !toggles.Wants(ch) {
			continue
		}

		candidates := im.classifier.Classify(files, ch)
		if len(candidates) > 1 {
			im.log.Debug("ambiguous channel", zap.Stringer("channel", ch), zap.Strings("candidates", candidates))
		}

		p, err := im.classifier.Resolve(candidates, ch)
		if err != nil {
			return nil, err
		}
		if p == "" {
			im.log.Debug("no map for channel", zap.Stringer("channel", ch))
			continue
		}

		im.log.Info("map selected", zap.Stringer("channel", ch), zap.String("file", filepath.Base(p)))
		set[ch] = p
	}

	return set, nil
}

// Import builds the network for material name from the maps in dir.
// Missing dir or name fails with ErrInput before anything is created.
func (im *Importer) Import(dir, name string, toggles Toggles) (*Result, error) {
	if strings.TrimSpace(dir) == "" || strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: select texture folder and material name", ErrInput)
	}

	set, err := im.Resolve(dir, toggles)
	if err != nil {
		return nil, err
	}

	net := NewNetwork(name + MaterialSuffix)
	issues, err := NewBuilder(net, &BuildOptions{Dialect: im.opt.Dialect}).Build(BuildInput{Textures: set, Toggles: toggles})
	if err != nil {
		return nil, err
	}
	for _, it := range issues {
		im.log.Warn(it.Message, zap.String("channel", it.Path))
	}

	vissues := ValidateNetwork(net, im.opt.Validate)
	for _, it := range vissues {
		im.log.Debug("validation issue", zap.String("level", string(it.Level)), zap.String("message", it.Message), zap.String("path", it.Path))
	}

	im.log.Info("material built",
		zap.String("network", net.Name),
		zap.Int("nodes", net.Len()),
		zap.String("dialect", string(im.opt.Dialect)),
	)

	return &Result{Network: net, Textures: set, Issues: append(issues, vissues...)}, nil
}
