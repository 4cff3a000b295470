package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/michelgermain/gnucash-expenses/internal/buildinfo"
	"github.com/michelgermain/gnucash-expenses/internal/config"
	"github.com/michelgermain/gnucash-expenses/internal/render"
	"github.com/michelgermain/gnucash-expenses/internal/report"
)

// LedgerEnv names the environment variable read when no ledger argument is
// given.
const LedgerEnv = "GNUCASH_FILE"

const (
	formatText  = "text"
	formatTable = "table"
)

var (
	errorSymbol = "✗"
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	verbose    bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
// Run without a subcommand it prints the expense report.
func NewRootCommand() *cobra.Command {
	var g globalFlags
	var accounts []string
	var output, format string

	rootCmd := &cobra.Command{
		Use:   "gnucash-expenses [ledger]",
		Short: "Report expenses paid from GnuCash accounts in two currencies",
		Long: "Walks the given accounts of a GnuCash SQLite book, converts every split\n" +
			"into the account's own currency and summarizes the expenses by category.\n" +
			"The book defaults to $" + LedgerEnv + ".",
		Version: buildinfo.String(),
		Args:    cobra.MaximumNArgs(1),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd.ErrOrStderr(), g.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatText && format != formatTable {
				return fmt.Errorf("unknown format %q: want %s or %s", format, formatText, formatTable)
			}
			if output != "" {
				if _, err := render.SinkFor(output); err != nil {
					return err
				}
			}
			svc, cfg, err := newService(g, args)
			if err != nil {
				return err
			}
			return runReport(cmd, svc, cfg, accounts, output, format)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "config file (default "+config.DefaultFile+" if present)")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "log debug output to stderr")

	f := rootCmd.Flags()
	f.StringSliceVarP(&accounts, "accounts", "a", nil, "accounts to report on, repeatable or comma separated (default from config)")
	f.StringVarP(&output, "output", "o", "", "also write the report document to this .pdf or .csv file")
	f.StringVarP(&format, "format", "f", formatText, "stdout format: text or table")

	rootCmd.AddCommand(newAccountsCommand(&g))
	rootCmd.AddCommand(newServeCommand(&g))
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func runReport(cmd *cobra.Command, svc *report.Service, cfg *config.Config, accounts []string, output, format string) error {
	ctx := cmd.Context()
	res, err := svc.Report(ctx, accounts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case formatTable:
		if err := render.Tables(out, svc.Document(res), terminalWidth(out)); err != nil {
			return fmt.Errorf("writing tables: %w", err)
		}
	default:
		text, err := svc.Transcript(res)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(out, text); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	if output != "" {
		if err := render.WriteFile(output, svc.Document(res)); err != nil {
			return err
		}
		slog.InfoContext(ctx, "wrote report document", "path", output, "title", cfg.Title)
	}
	return nil
}

// newService loads the configuration and resolves the ledger path from args
// or the environment.
func newService(g globalFlags, args []string) (*report.Service, *config.Config, error) {
	cfg, err := config.LoadOrDefault(g.configPath)
	if err != nil {
		return nil, nil, err
	}
	ledger := os.Getenv(LedgerEnv)
	if len(args) > 0 {
		ledger = args[0]
	}
	if ledger == "" {
		return nil, nil, fmt.Errorf("no GnuCash book given: pass its path or set %s", LedgerEnv)
	}
	slog.Debug("configuration loaded", "ledger", ledger, "accounts", strings.Join(cfg.Accounts, ","))
	return report.NewService(ledger, cfg.ReportOptions()), cfg, nil
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// terminalWidth returns the width of w when it is a terminal, else 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

// PrintError writes err to w as a styled diagnostic line.
func PrintError(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		errorStyle.Render(errorSymbol),
		errorStyle.Render(err.Error()),
	)
}
