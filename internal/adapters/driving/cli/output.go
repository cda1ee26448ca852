package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

// wantJSON reports whether output should be machine-readable: when forced
// or when stdout is not a terminal.
func wantJSON(cmd *cobra.Command, forced bool) bool {
	if forced {
		return true
	}
	return !isTerminal(cmd.OutOrStdout())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printJSON writes v compactly for pipes or indented for people.
func printJSON(cmd *cobra.Command, v any, compact bool) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if !compact {
		var out bytes.Buffer
		if err := json.Indent(&out, data, "", "  "); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		data = out.Bytes()
	}
	cmd.Println(string(data))
	return nil
}

// printResult writes the payload of an invocation. Skipped lines are noted
// on stderr so they never corrupt the JSON on stdout.
func printResult(cmd *cobra.Command, result *domain.InvocationResult, forceJSON bool) error {
	compact := wantJSON(cmd, forceJSON)
	if err := printJSON(cmd, result.Payload, compact); err != nil {
		return err
	}
	if result.Skipped > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "note: %d unparseable output lines skipped\n", result.Skipped)
	}
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	badStyle    = cellStyle.Foreground(lipgloss.Color("#F38BA8"))
	warnStyle   = cellStyle.Foreground(lipgloss.Color("#F9E2AF"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// drivesTable renders drive records, colouring rows by the recommendation
// thresholds.
func drivesTable(drives []domain.DriveRecord) string {
	t := newTable("DRIVE", "HEALTH", "TEMP", "READ ERR", "WRITE ERR", "SMART")
	for _, d := range drives {
		t.Row(
			d.DriveName,
			strconv.FormatFloat(d.OverallHealth, 'f', 1, 64)+"%",
			strconv.FormatFloat(d.Temperature, 'f', 1, 64)+"°C",
			strconv.Itoa(d.ReadErrorCount),
			strconv.Itoa(d.WriteErrorCount),
			d.SmartStatus,
		)
	}
	t.StyleFunc(func(row, _ int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if row < 0 || row >= len(drives) {
			return cellStyle
		}
		switch d := drives[row]; {
		case d.OverallHealth < domain.LowHealthThreshold:
			return badStyle
		case d.Temperature > domain.HighTemperatureThreshold:
			return warnStyle
		}
		return cellStyle
	})
	return t.String()
}

// historyTable renders invocation records.
func historyTable(records []domain.InvocationRecord) string {
	t := newTable("STARTED", "CAPABILITY", "ARGS", "RESULT", "DURATION")
	for i := range records {
		r := &records[i]
		result := "ok"
		if !r.Success {
			result = r.Error
			if len(result) > 40 {
				result = result[:37] + "..."
			}
		}
		args, _ := json.Marshal(r.Args) //nolint:errcheck // []string always marshals
		t.Row(
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Capability.String(),
			string(args),
			result,
			r.Duration.Round(1e6).String(),
		)
	}
	return t.String()
}
