package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/impactlab/varcat/internal/catalog"
)

// SyncResult summarizes a catalog synchronization.
type SyncResult struct {
	Variables int `json:"variables"`
	Dims      int `json:"dims"`
	Files     int `json:"files"`
	Functions int `json:"functions"`
	Scenarios int `json:"scenarios"`
}

func (r SyncResult) String() string {
	return fmt.Sprintf("Catalog synchronized: %d variables, %d dims, %d files, %d functions, %d scenarios",
		r.Variables, r.Dims, r.Files, r.Functions, r.Scenarios)
}

// NewSyncCommand creates the sync command.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Synchronize the catalog from remote storage",
		Long: `Fetch the catalog snapshot from remote storage, merge it into the
local state, and rewrite the local snapshot.

When the remote store is unreachable the last local snapshot is used
instead. A version-history conflict aborts the merge and leaves both
the in-memory catalog and the local snapshot untouched.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(rootOpts, cmd)
		},
	}
}

func runSync(opts *RootOptions, cmd *cobra.Command) error {
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
		return reportCatalogError(formatter, "sync failed", err)
	}

	return formatter.Success(summarize(s.catalog))
}

func summarize(c *catalog.Catalog) SyncResult {
	return SyncResult{
		Variables: len(c.ListVariables()),
		Dims:      len(c.ListDims()),
		Files:     len(c.ListFiles()),
		Functions: len(c.ListFunctions()),
		Scenarios: len(c.ListScenarios()),
	}
}

// reportCatalogError renders a catalog error through the formatter and
// converts it to the right exit code.
func reportCatalogError(f *OutputFormatter, message string, err error) error {
	code := "CATALOG_ERROR"
	exitCode := ExitFailure
	var ce *catalog.Error
	if errors.As(err, &ce) {
		code = string(ce.Code)
	}
	if catalog.IsNoData(err) || catalog.IsMalformed(err) {
		exitCode = ExitCommandError
	}
	if outErr := f.Error(code, err.Error(), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(exitCode, message, err)
}
