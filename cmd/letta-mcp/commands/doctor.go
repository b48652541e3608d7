package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/letta-mcp/internal/clientconfig"
	"github.com/thoreinstein/letta-mcp/internal/config"
	"github.com/thoreinstein/letta-mcp/internal/doctor"
	"github.com/thoreinstein/letta-mcp/internal/errors"
	"github.com/thoreinstein/letta-mcp/internal/paths"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
	doctorFix     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"restrict permissions of files holding the API key")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and connectivity",
	Long: `Run diagnostic checks on the letta-mcp configuration, the Letta server
and the MCP clients it is registered with.

Checks:
  config                 configuration loads and every value is valid
  credential             an API key is set and looks like a Letta key
  endpoint               base_url is an http(s) URL; plain HTTP to a remote host warns
  connectivity           the health endpoint answers and agents can be listed
  registration           which MCP clients have a letta-mcp entry
  client-config-syntax   every existing client config parses
  key-file-permissions   files holding the API key are private (--fix repairs)

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	PreRunE: validateDoctorFlags,
	RunE: func(c *cobra.Command, _ []string) error {
		return runDoctorWithWriter(c.Context(), c.OutOrStdout(), loggerFrom(c))
	},
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	for _, set := range []bool{doctorJSON, doctorQuiet, doctorVerbose} {
		if set {
			count++
		}
	}

	if count > 1 {
		return errors.NewUserError(errors.New("flags --json, --quiet, and --verbose are mutually exclusive"), "")
	}

	return nil
}

// buildDoctorRunner assembles the checks in presentation order.
func buildDoctorRunner(logger *slog.Logger) (*doctor.Runner, func()) {
	runner := doctor.NewRunner()
	cleanup := func() {}

	cfg, loadErr := config.Read(configPath)
	runner.AddCheck(doctor.NewConfigCheck(cfg, config.UsedFile(configPath), loadErr))

	if cfg != nil {
		runner.AddCheck(doctor.NewCredentialCheck(cfg))
		runner.AddCheck(doctor.NewEndpointCheck(cfg))

		var pinger doctor.Pinger
		if len(config.Validate(cfg)) == 0 && config.RequireCredential(cfg) == nil {
			if b, err := newBridge(cfg, logger); err == nil {
				pinger = b.letta
				cleanup = b.Close
			}
		}
		runner.AddCheck(doctor.NewConnectivityCheck(pinger, cfg.TimeoutDuration()))
	}

	runner.AddCheck(doctor.NewRegistrationCheck(clientconfig.DefaultName))

	var managers []*clientconfig.Manager
	for _, client := range paths.Clients() {
		if m, err := clientconfig.Open(client); err == nil {
			managers = append(managers, m)
		}
	}
	runner.AddCheck(doctor.NewConfigSyntaxCheck(managers))
	runner.AddCheck(doctor.NewKeyFilePermissionCheck(keyFiles()))

	return runner, cleanup
}

// keyFiles lists the files that may hold the API key: the letta-mcp config
// file and every client config with a letta-mcp entry.
func keyFiles() []string {
	var files []string
	if used := config.UsedFile(configPath); used != "" {
		files = append(files, used)
	}
	for _, reg := range clientconfig.Scan(clientconfig.DefaultName) {
		if reg.Registered {
			files = append(files, reg.Path)
		}
	}
	return files
}

// runDoctorWithWriter allows injecting a writer for testing.
func runDoctorWithWriter(ctx context.Context, w io.Writer, logger *slog.Logger) error {
	runner, cleanup := buildDoctorRunner(logger)
	defer cleanup()

	report := runner.Run(ctx)

	if doctorFix {
		if applyDoctorFixes(w, runner) {
			report = runner.Run(ctx)
		}
	}

	if err := outputDoctorReport(w, report); err != nil {
		return err
	}

	// Determine exit code based on results
	if report.HasErrors() {
		return reported(errDoctorErrors, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return reported(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

// applyDoctorFixes runs every fixable check's fixer and reports whether
// anything was attempted.
func applyDoctorFixes(w io.Writer, runner *doctor.Runner) bool {
	attempted := false
	for _, check := range runner.Checks() {
		fixer, ok := check.(doctor.Fixer)
		if !ok || !fixer.CanFix() {
			continue
		}
		for _, res := range fixer.Fix() {
			attempted = true
			if doctorQuiet || doctorJSON {
				continue
			}
			if res.Fixed {
				fmt.Fprintf(w, "%s fixed %s: %s\n", color.GreenString("✓"), res.Path, res.Description)
			} else {
				fmt.Fprintf(w, "%s could not fix %s: %s\n", color.RedString("✗"), res.Path, res.Description)
			}
		}
	}
	return attempted
}

func outputDoctorReport(w io.Writer, report *doctor.Report) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		return outputDoctorJSON(w, report)
	}

	outputDoctorText(w, report)
	return nil
}

func outputDoctorJSON(w io.Writer, report *doctor.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}

func outputDoctorText(w io.Writer, report *doctor.Report) {
	// In normal mode, show only errors and warnings
	// In verbose mode, show all checks
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	// Print summary
	if hasOutput || showAll {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityInfo:
		return color.CyanString("ℹ")
	case doctor.SeverityWarning:
		return color.YellowString("⚠")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}

// errDoctorWarnings is a sentinel error for exit code 1.
var errDoctorWarnings = errors.New("warnings found")

// errDoctorErrors is a sentinel error for exit code 2.
var errDoctorErrors = errors.New("errors found")
