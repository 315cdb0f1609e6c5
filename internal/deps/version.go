package deps

import (
	"context"
	"strings"

	"gif2webm/internal/toolrun"
)

// ProbeVersions fills in the Version field for available dependencies by
// running each binary with -version and keeping the first output line. A
// failed probe leaves the status untouched; availability was already decided
// by the lookup.
func ProbeVersions(ctx context.Context, runner toolrun.Runner, statuses []Status) []Status {
	for i := range statuses {
		if !statuses[i].Available {
			continue
		}
		result, err := runner.Run(ctx, toolrun.Command{
			Binary: statuses[i].Command,
			Args:   []string{"-version"},
		})
		if err != nil {
			continue
		}
		statuses[i].Version = firstLine(result.Stdout)
	}
	return statuses
}

func firstLine(output string) string {
	line, _, _ := strings.Cut(output, "\n")
	return strings.TrimSpace(line)
}
