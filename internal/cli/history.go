package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/impactlab/varcat/internal/ledger"
)

// HistoryResult is the audit trail for one catalog record.
type HistoryResult struct {
	GcpID  string         `json:"gcp_id"`
	Events []HistoryEvent `json:"events"`
}

// HistoryEvent is one recorded provenance event.
type HistoryEvent struct {
	Kind         string   `json:"kind"`
	Version      string   `json:"version"`
	PayloadHash  string   `json:"payload_hash"`
	Recorded     string   `json:"recorded"`
	Dependencies []string `json:"dependencies,omitempty"`
}

func (r HistoryResult) String() string {
	if len(r.Events) == 0 {
		return fmt.Sprintf("No recorded events for %s", r.GcpID)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.GcpID)
	for _, ev := range r.Events {
		fmt.Fprintf(&b, "  %-8s %s (recorded %s)\n", ev.Kind, ev.Version, ev.Recorded)
		for _, d := range ev.Dependencies {
			fmt.Fprintf(&b, "           depends on %s\n", d)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "history <gcp_id>",
		Short:         "Show the recorded provenance events for a record",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, args[0], cmd)
		},
	}
}

func runHistory(opts *RootOptions, gcpID string, cmd *cobra.Command) error {
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

	if s.ledger == nil {
		if outErr := formatter.Error("NO_LEDGER", "history requires a ledger path in the config", nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "no ledger configured", nil)
	}

	events, err := s.ledger.History(cmd.Context(), gcpID)
	if err != nil {
		if outErr := formatter.Error("LEDGER_ERROR", err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitFailure, "history failed", err)
	}

	result := HistoryResult{GcpID: gcpID, Events: make([]HistoryEvent, 0, len(events))}
	for _, ev := range events {
		result.Events = append(result.Events, historyEvent(ev))
	}
	return formatter.Success(result)
}

func historyEvent(ev ledger.Event) HistoryEvent {
	return HistoryEvent{
		Kind:         string(ev.Kind),
		Version:      ev.Version,
		PayloadHash:  ev.PayloadHash,
		Recorded:     ev.Recorded,
		Dependencies: ev.Dependencies,
	}
}
