package mtlximport

import (
	"os"
	"path/filepath"
	"strings"
)

// IssueLevel represents severity of validation issue.
type IssueLevel string

const (
	// IssueError indicates a validation error.
	IssueError IssueLevel = "error"
	// IssueWarning indicates a validation warning.
	IssueWarning IssueLevel = "warning"
)

// Issue represents a validation issue.
type Issue struct {
	Level   IssueLevel `json:"level" yaml:"level"`                   // Severity level
	Code    string     `json:"code,omitempty" yaml:"code,omitempty"` // Machine-readable code
	Message string     `json:"message" yaml:"message"`               // Issue message
	Path    string     `json:"path,omitempty" yaml:"path,omitempty"` // Node, channel or file the issue refers to
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, it := range issues {
		if it.Level == IssueError {
			return true
		}
	}
	return false
}

// ValidateNetwork validates a network and returns issues.
func ValidateNetwork(n *Network, opt *ValidateOptions) []Issue {
	vopt := opt.normalize()
	var out []Issue

	if roots := n.NodesOfType(NodeStandardSurface); len(roots) != 1 {
		out = append(out, Issue{Level: IssueError, Code: "root_count", Message: "network needs exactly one standard surface", Path: n.Name})
	}
	if _, ok := n.Connector(OutputSurface); !ok {
		out = append(out, Issue{Level: IssueError, Code: "missing_output", Message: "surface output connector missing", Path: n.Name})
	}

	for _, nd := range n.Nodes {
		for _, c := range nd.Inputs {
			if _, ok := n.Node(c.Node); !ok {
				out = append(out, Issue{Level: IssueError, Code: "dangling_connection", Message: "input wired to missing node", Path: nd.Name + "." + c.Input})
			}
		}
	}

	if !vopt.DisableOrphanCheck {
		reached := reachable(n)
		for _, nd := range n.Nodes {
			if _, ok := reached[nd.Name]; !ok {
				out = append(out, Issue{Level: IssueError, Code: "orphan_node", Message: "node does not feed an output", Path: nd.Name})
			}
		}
	}

	resolver := PathResolver{Root: vopt.TextureRoot}
	for _, nd := range n.NodesOfType(NodeImage) {
		v, ok := nd.Parm("file")
		if !ok || v.Str == "" {
			out = append(out, Issue{Level: IssueWarning, Code: "missing_file", Message: "image has no file", Path: nd.Name})
			continue
		}

		if !vopt.DisableExtensionsCheck && !hasExt(v.Str, vopt.Extensions, true) {
			out = append(out, Issue{Level: IssueWarning, Code: "unexpected_extension", Message: "unexpected texture extension", Path: v.Str})
		}

		if vopt.TextureRoot == "" && strings.Contains(v.Str, "..") {
			out = append(out, Issue{Level: IssueWarning, Code: "parent_path", Message: "texture path contains '..'", Path: v.Str})
		}

		if vopt.CheckFiles {
			p := resolver.ResolvePath(v.Str)
			if _, err := os.Stat(p); err != nil {
				out = append(out, Issue{Level: IssueWarning, Code: "missing_resource", Message: "texture file not found", Path: p})
			}
		}
	}

	return out
}

// reachable returns the names of nodes that feed an output connector or the standard surface.
func reachable(n *Network) map[string]struct{} {
	seen := make(map[string]struct{}, n.Len())
	var stack []string
	for _, nd := range n.Nodes {
		if nd.Type == NodeConnector || nd.Type == NodeStandardSurface {
			stack = append(stack, nd.Name)
		}
	}

	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		nd, ok := n.Node(name)
		if !ok {
			continue
		}
		for _, c := range nd.Inputs {
			stack = append(stack, c.Node)
		}
	}

	return seen
}

// PathResolver resolves texture paths relative to Root.
type PathResolver struct {
	Root string
}

// ResolvePath resolves a raw path against Root.
func (r PathResolver) ResolvePath(raw string) string {
	if raw == "" {
		return ""
	}

	norm := filepath.FromSlash(strings.ReplaceAll(raw, "\\", "/"))
	if filepath.IsAbs(norm) || r.Root == "" {
		return filepath.Clean(norm)
	}

	return filepath.Clean(filepath.Join(r.Root, norm))
}
