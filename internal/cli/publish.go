package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/impactlab/varcat/internal/array"
	"github.com/impactlab/varcat/internal/catalog"
	"github.com/impactlab/varcat/internal/variable"
)

// PublishOptions holds flags for the publish command.
type PublishOptions struct {
	*RootOptions
	GcpID       string
	Name        string
	LaTeX       string
	Description string
	Author      string
	Dims        []string
}

// PublishResult reports a successful publish.
type PublishResult struct {
	GcpID   string `json:"gcp_id"`
	Version string `json:"version"`
}

func (r PublishResult) String() string {
	return fmt.Sprintf("Published %s as version %s", r.GcpID, r.Version)
}

// NewPublishCommand creates the publish command.
func NewPublishCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PublishOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a new primary variable to the catalog",
		Long: `Admit a new variable to the local catalog under a fresh version
record. Every metadata field is required up front; a missing field
aborts before anything is written. The variable's dimensions must
already be declared in the catalog. Run commit to push the result.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.GcpID, "id", "", "catalog identifier (required)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "human-readable name (required)")
	cmd.Flags().StringVar(&opts.LaTeX, "latex", "", "LaTeX symbol (required)")
	cmd.Flags().StringVar(&opts.Description, "description", "", "description (required)")
	cmd.Flags().StringVar(&opts.Author, "author", "", "author (required)")
	cmd.Flags().StringSliceVar(&opts.Dims, "dims", nil, "declared dimension gcp_ids")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func runPublish(opts *PublishOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := openSession(cmd.Context(), opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.catalog.Update(cmd.Context()); err != nil {
		return reportCatalogError(formatter, "publish failed", err)
	}

	v, err := placeholderVariable(s.catalog, opts.Dims)
	if err != nil {
		return reportCatalogError(formatter, "publish failed", err)
	}

	published, err := s.catalog.Publish(cmd.Context(), v, catalog.Fields{
		GcpID:       opts.GcpID,
		Name:        opts.Name,
		LaTeX:       opts.LaTeX,
		Description: opts.Description,
		Author:      opts.Author,
	})
	if err != nil {
		return reportCatalogError(formatter, "publish failed", err)
	}

	version, _ := published.Latest()
	return formatter.Success(PublishResult{GcpID: opts.GcpID, Version: version})
}

// placeholderVariable shapes a ones-filled variable over catalog
// dimensions, the same placeholder form reification uses for entries
// whose real data lives elsewhere.
func placeholderVariable(c *catalog.Catalog, dims []string) (*variable.Variable, error) {
	coords := make(map[string][]string, len(dims))
	for _, d := range dims {
		rec, err := c.GetDim(d)
		if err != nil {
			return nil, err
		}
		coords[d] = dimValues(rec)
	}

	arr, err := array.Ones(dims, coords, nil)
	if err != nil {
		return nil, err
	}
	return variable.New(arr, variable.Options{Derived: false}), nil
}

func dimValues(rec map[string]any) []string {
	vals, ok := rec["values"].([]any)
	if !ok || len(vals) == 0 {
		return []string{""}
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = fmt.Sprint(v)
	}
	return out
}
