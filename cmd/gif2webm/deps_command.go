package main

import (
	"fmt"
	"io"
	"os"

	isatty "github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gif2webm/internal/deps"
	"gif2webm/internal/toolrun"
)

func newDepsCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of required external tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			statuses = deps.ProbeVersions(cmd.Context(), toolrun.NewSupervisor(), statuses)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderDepsTable(statuses, shouldColorize(out)))

			missing := 0
			for _, status := range statuses {
				if !status.Available && !status.Optional {
					missing++
				}
			}
			if missing > 0 {
				return fmt.Errorf("%d required dependency(ies) missing", missing)
			}
			return nil
		},
	}
}

func renderDepsTable(statuses []deps.Status, colorize bool) string {
	rows := make([][]string, 0, len(statuses))
	for _, status := range statuses {
		state := "MISSING"
		detail := status.Detail
		if status.Available {
			state = "OK"
			detail = status.Version
		}
		if colorize {
			state = colorizeState(state, status.Available)
		}
		rows = append(rows, []string{status.Name, status.Command, state, detail})
	}
	return renderTable([]string{"Dependency", "Command", "Status", "Detail"}, rows)
}

func colorizeState(state string, available bool) string {
	if available {
		return "\x1b[32m" + state + "\x1b[0m"
	}
	return "\x1b[31m" + state + "\x1b[0m"
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
