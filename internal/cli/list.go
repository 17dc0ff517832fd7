package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/impactlab/varcat/internal/namespace"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Tree bool
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list [variables|dims|files|functions|scenarios]",
		Short: "List catalog records",
		Long: `List the gcp_ids in one catalog collection, sorted. Defaults to
variables. With --tree, variables are grouped by their dotted-path
prefixes.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			collection := "variables"
			if len(args) == 1 {
				collection = args[0]
			}
			return runList(opts, collection, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Tree, "tree", false, "group variables by dotted-path prefix")

	return cmd
}

func runList(opts *ListOptions, collection string, cmd *cobra.Command) error {
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
		return reportCatalogError(formatter, "list failed", err)
	}

	var ids []string
	switch collection {
	case "variables":
		ids = s.catalog.ListVariables()
	case "dims":
		ids = s.catalog.ListDims()
	case "files":
		ids = s.catalog.ListFiles()
	case "functions":
		ids = s.catalog.ListFunctions()
	case "scenarios":
		ids = s.catalog.ListScenarios()
	default:
		if outErr := formatter.Error("UNKNOWN_COLLECTION", fmt.Sprintf("unknown collection %q", collection), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "unknown collection", nil)
	}

	if opts.Tree && collection == "variables" {
		tree := namespace.Build(s.catalog.Variables())
		if opts.Format == "json" {
			return formatter.Success(tree.List())
		}
		renderTree(formatter, tree, "", 0)
		return nil
	}

	if opts.Format == "json" {
		return formatter.Success(ids)
	}
	for _, id := range ids {
		fmt.Fprintln(formatter.Writer, id)
	}
	return nil
}

func renderTree(f *OutputFormatter, tree *namespace.Tree, path string, depth int) {
	for _, name := range tree.Children(path) {
		child := path + "." + name
		if path == "" {
			child = name
		}
		fmt.Fprintf(f.Writer, "%s%s\n", strings.Repeat("  ", depth), name)
		renderTree(f, tree, child, depth+1)
	}
}
