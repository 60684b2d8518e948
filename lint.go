package mtlximport

import (
	"context"
	"fmt"

	"github.com/woozymasta/lintkit/lint"
)

// LintModule is the lint module namespace of network checks.
const LintModule = "mtlximport"

// Run context value keys read by the network rules.
const (
	// RunValueNetwork holds the *Network under check.
	RunValueNetwork = "mtlximport.network"
	// RunValueValidateOptions holds optional *ValidateOptions.
	RunValueValidateOptions = "mtlximport.validate_options"

	runValueIssues = "mtlximport.issues"
)

const validateScope = "validate"

// networkRules are the validation checks exposed as lint rules, by issue code.
var networkRules = []struct {
	code     string
	severity lint.Severity
	message  string
	desc     string
}{
	{"root_count", lint.SeverityError, "network needs exactly one standard surface", "The network must hold a single standard surface node."},
	{"missing_output", lint.SeverityError, "surface output connector missing", "The surface output connector exposes the shader to the host."},
	{"dangling_connection", lint.SeverityError, "input wired to missing node", "Every connection must reference a node of the network."},
	{"orphan_node", lint.SeverityError, "node does not feed an output", "Every node must reach an output connector or the standard surface."},
	{"missing_file", lint.SeverityWarning, "image has no file", "Image samplers need a file path."},
	{"unexpected_extension", lint.SeverityWarning, "unexpected texture extension", "Sampler files should use one of the accepted texture extensions."},
	{"parent_path", lint.SeverityWarning, "texture path contains '..'", "Sampler paths with '..' need a texture root to resolve against."},
	{"missing_resource", lint.SeverityWarning, "texture file not found", "Sampler files must exist when file checks are enabled."},
}

// LintRules returns a provider registering the network validation rules.
func LintRules() lint.RuleProvider { return lintProvider{} }

type lintProvider struct{}

// ModuleSpec implements lint.ModuleProvider.
func (lintProvider) ModuleSpec() lint.ModuleSpec {
	return lint.ModuleSpec{
		ID:          LintModule,
		Name:        "MaterialX import",
		Description: "Checks of standard surface networks built from texture folders.",
	}
}

// RegisterRules implements lint.RuleProvider.
func (lintProvider) RegisterRules(registrar lint.RuleRegistrar) error {
	if registrar == nil {
		return lint.ErrNilRuleRegistrar
	}

	runners := make([]lint.RuleRunner, 0, len(networkRules))
	for _, r := range networkRules {
		runners = append(runners, networkRule{spec: lint.RuleSpec{
			ID:               ruleID(r.code),
			Module:           LintModule,
			Scope:            validateScope,
			ScopeDescription: "Shading network validation.",
			Code:             r.code,
			Message:          r.message,
			Description:      r.desc,
			DefaultSeverity:  r.severity,
		}})
	}

	return registrar.Register(runners...)
}

// networkRule emits the validation issues carrying one code.
type networkRule struct {
	spec lint.RuleSpec
}

// RuleSpec implements lint.RuleRunner.
func (r networkRule) RuleSpec() lint.RuleSpec { return r.spec }

// Check implements lint.RuleRunner. Validation runs once per run context.
func (r networkRule) Check(ctx context.Context, run *lint.RunContext, emit lint.DiagnosticEmit) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	issues, ok := lint.GetRunValue[[]Issue](run, runValueIssues)
	if !ok {
		net, ok := lint.GetRunValue[*Network](run, RunValueNetwork)
		if !ok || net == nil {
			return fmt.Errorf("%w: run context has no network", ErrInput)
		}

		opt, _ := lint.GetRunValue[*ValidateOptions](run, RunValueValidateOptions)
		if opt == nil && run.RootDir != "" {
			opt = &ValidateOptions{TextureRoot: run.RootDir}
		}
		issues = ValidateNetwork(net, opt)
		lint.SetRunValue(run, runValueIssues, issues)
	}

	for _, it := range issues {
		if it.Code == r.spec.Code {
			d := IssueDiagnostic(it)
			if d.Path == "" {
				d.Path = run.TargetPath
			}
			emit(d)
		}
	}

	return nil
}

// RunLint registers LintRules and runs every rule against n.
func RunLint(ctx context.Context, n *Network, opt *ValidateOptions) ([]lint.Diagnostic, error) {
	var rules ruleSet
	if err := lint.RegisterRuleProviders(&rules, LintRules()); err != nil {
		return nil, err
	}

	run := &lint.RunContext{TargetPath: n.Name}
	lint.SetRunValue(run, RunValueNetwork, n)
	lint.SetRunValue(run, RunValueValidateOptions, opt)

	var out []lint.Diagnostic
	for _, r := range rules {
		if err := r.Check(ctx, run, func(d lint.Diagnostic) { out = append(out, d) }); err != nil {
			return out, fmt.Errorf("%s: %w", r.RuleSpec().ID, err)
		}
	}

	return out, nil
}

// ruleSet collects registered runners in order.
type ruleSet []lint.RuleRunner

// Register implements lint.RuleRegistrar.
func (s *ruleSet) Register(runners ...lint.RuleRunner) error {
	for i, r := range runners {
		if r == nil {
			return fmt.Errorf("%w: runner %d is nil", ErrInput, i)
		}
	}
	*s = append(*s, runners...)
	return nil
}

// IssueDiagnostic maps an issue to a lint diagnostic.
func IssueDiagnostic(it Issue) lint.Diagnostic {
	sev := lint.SeverityWarning
	if it.Level == IssueError {
		sev = lint.SeverityError
	}

	return lint.Diagnostic{
		RuleID:   ruleID(it.Code),
		Code:     it.Code,
		Severity: sev,
		Message:  it.Message,
		Path:     it.Path,
	}
}

// Diagnostics maps issues to lint diagnostics.
func Diagnostics(issues []Issue) []lint.Diagnostic {
	out := make([]lint.Diagnostic, 0, len(issues))
	for _, it := range issues {
		out = append(out, IssueDiagnostic(it))
	}
	return out
}

// ruleID returns the stable rule id for an issue code.
func ruleID(code string) string {
	scope := validateScope
	if code == codeSkippedBranch {
		scope = "build"
	}
	return lint.BuildRuleID(LintModule, lint.Stage(scope), code, 0)
}
