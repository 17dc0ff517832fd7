package cli

import (
	"github.com/spf13/cobra"
)

// NewCommitCommand creates the commit command.
func NewCommitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "commit",
		Short: "Push the catalog to remote storage",
		Long: `Re-synchronize with the remote snapshot, then upload the merged
local state. The sync step means a commit never clobbers versions that
landed remotely since the last sync.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(rootOpts, cmd)
		},
	}
}

func runCommit(opts *RootOptions, cmd *cobra.Command) error {
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

	if s.gcs == nil {
		if outErr := formatter.Error("NO_REMOTE", "commit requires a remote store: set bucket and object in the config", nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "no remote configured", nil)
	}

	if err := s.catalog.Commit(cmd.Context()); err != nil {
		return reportCatalogError(formatter, "commit failed", err)
	}

	return formatter.Success(summarize(s.catalog))
}
