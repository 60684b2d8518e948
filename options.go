package mtlximport

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

// ScanOptions controls texture directory listing.
type ScanOptions struct {
	// Extensions are the accepted file extensions without dot (default jpg, exr, png).
	Extensions []string
	// DisableCaseInsensitive makes extension matching case-sensitive ("PNG" no longer matches "png").
	DisableCaseInsensitive bool
}

// BuildOptions controls shading network assembly.
type BuildOptions struct {
	// Dialect selects host node type names (default DialectCurrent).
	Dialect Dialect
}

// FormatOptions controls MaterialX writer formatting.
type FormatOptions struct {
	// Indent is the indentation string for nested elements (default is two spaces).
	Indent string
	// Version is the MaterialX document version attribute (default "1.38").
	Version string
}

// ValidateOptions controls network validation rules.
type ValidateOptions struct {
	// TextureRoot is used to resolve relative texture paths when file checks are enabled.
	TextureRoot string
	// CheckFiles enables filesystem existence checks for sampler files.
	CheckFiles bool
	// Extensions are the sampler file extensions accepted without a warning (default jpg, exr, png).
	Extensions []string
	// DisableExtensionsCheck disables extension validation for sampler files.
	DisableExtensionsCheck bool
	// DisableOrphanCheck disables reachability validation.
	DisableOrphanCheck bool
}

// ImportOptions controls the folder-to-network import flow.
type ImportOptions struct {
	// Patterns overrides the channel substring table (default DefaultPatterns).
	Patterns PatternTable
	// Scan controls directory listing.
	Scan *ScanOptions
	// Dialect selects host node type names.
	Dialect Dialect
	// Chooser picks among ambiguous candidates; nil makes ambiguity an error.
	Chooser Chooser
	// Validate controls validation of the built network.
	Validate *ValidateOptions
	// Logger receives progress logs (default no-op).
	Logger *zap.Logger
}

// IsTextureRootExist reports whether the texture root exists and is a directory.
func (o *ValidateOptions) IsTextureRootExist() bool {
	if o == nil {
		return false
	}
	if strings.TrimSpace(o.TextureRoot) == "" {
		return false
	}
	info, err := os.Stat(o.TextureRoot)
	if err != nil {
		return false
	}

	return info.IsDir()
}

// normalize normalizes the ScanOptions.
func (o *ScanOptions) normalize() ScanOptions {
	if o == nil {
		return ScanOptions{Extensions: defaultTextureExts()}
	}

	out := *o
	if len(out.Extensions) == 0 {
		out.Extensions = defaultTextureExts()
	}

	return out
}

// normalize normalizes the BuildOptions.
func (o *BuildOptions) normalize() BuildOptions {
	if o == nil {
		return BuildOptions{Dialect: DialectCurrent}
	}

	out := *o
	if out.Dialect == "" {
		out.Dialect = DialectCurrent
	}

	return out
}

// normalize normalizes the FormatOptions.
func (o *FormatOptions) normalize() FormatOptions {
	if o == nil {
		return FormatOptions{Indent: "  ", Version: "1.38"}
	}

	out := *o
	if out.Indent == "" {
		out.Indent = "  "
	}
	if out.Version == "" {
		out.Version = "1.38"
	}

	return out
}

// normalize normalizes the ValidateOptions.
func (o *ValidateOptions) normalize() ValidateOptions {
	if o == nil {
		return ValidateOptions{Extensions: defaultTextureExts()}
	}

	out := *o
	if len(out.Extensions) == 0 {
		out.Extensions = defaultTextureExts()
	}

	return out
}

// normalize normalizes the ImportOptions.
func (o *ImportOptions) normalize() ImportOptions {
	if o == nil {
		return ImportOptions{Patterns: DefaultPatterns(), Dialect: DialectCurrent, Logger: zap.NewNop()}
	}

	out := *o
	if out.Patterns == nil {
		out.Patterns = DefaultPatterns()
	}
	if out.Dialect == "" {
		out.Dialect = DialectCurrent
	}
	if out.Logger == nil {
		out.Logger = zap.NewNop()
	}

	return out
}

// defaultTextureExts returns the extensions the importer picks up by default.
func defaultTextureExts() []string {
	return []string{"jpg", "exr", "png"}
}
