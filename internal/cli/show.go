package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/impactlab/varcat/internal/variable"
)

// ShowResult is one variable's displayable state.
type ShowResult struct {
	GcpID        string   `json:"gcp_id"`
	Name         string   `json:"name,omitempty"`
	Equation     string   `json:"equation"`
	Derivation   string   `json:"derivation"`
	Derived      bool     `json:"derived"`
	Dims         []string `json:"dims"`
	Latest       string   `json:"latest,omitempty"`
	Versions     []string `json:"versions"`
	Dependencies []string `json:"dependencies"`
}

func (r ShowResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.GcpID)
	if r.Name != "" {
		fmt.Fprintf(&b, "  name:       %s\n", r.Name)
	}
	fmt.Fprintf(&b, "  equation:   %s\n", r.Equation)
	fmt.Fprintf(&b, "  derived:    %t\n", r.Derived)
	fmt.Fprintf(&b, "  dims:       %s\n", strings.Join(r.Dims, ", "))
	if r.Latest != "" {
		fmt.Fprintf(&b, "  latest:     %s\n", r.Latest)
	}
	for _, v := range r.Versions {
		fmt.Fprintf(&b, "  version:    %s\n", v)
	}
	for _, d := range r.Dependencies {
		fmt.Fprintf(&b, "  depends on: %s\n", d)
	}
	return strings.TrimRight(b.String(), "\n")
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <gcp_id>",
		Short:         "Show a variable's equation and version history",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}
}

func runShow(opts *RootOptions, gcpID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := openSession(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.catalog.Update(cmd.Context()); err != nil {
		return reportCatalogError(formatter, "show failed", err)
	}

	v, err := s.catalog.GetVariable(gcpID)
	if err != nil {
		return reportCatalogError(formatter, "show failed", err)
	}

	return formatter.Success(describe(gcpID, v))
}

func describe(gcpID string, v *variable.Variable) ShowResult {
	r := ShowResult{
		GcpID:        gcpID,
		Equation:     v.Equation(),
		Derivation:   v.Derivation(),
		Derived:      v.Derived(),
		Dims:         v.Value().Dims(),
		Dependencies: v.Dependencies(),
	}
	if name, ok := v.Attrs()["name"].(string); ok {
		r.Name = name
	}
	if latest, ok := v.Latest(); ok {
		r.Latest = latest
	}
	if versions, ok := v.Attrs()["versions"].(map[string]any); ok {
		for label := range versions {
			r.Versions = append(r.Versions, label)
		}
		sort.Strings(r.Versions)
	}
	return r
}
