package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/muurk/buscacep/internal/address"
	"github.com/muurk/buscacep/internal/logging"
	"github.com/muurk/buscacep/internal/lookup"
	"github.com/muurk/buscacep/internal/tui"
	"github.com/muurk/buscacep/internal/ui"
	"github.com/muurk/buscacep/internal/viacep"
)

// Command flags
var (
	concurrency int
)

func init() {
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(tuiCmd)

	lookupCmd.Flags().IntVarP(&concurrency, "concurrency", "c", 4, "Maximum lookups in flight at once")
}

// lookupCmd resolves one or more postal codes
var lookupCmd = &cobra.Command{
	Use:   "lookup <cep> [cep...]",
	Short: "Look up one or more postal codes",
	Long: `Look up postal codes in the directory and print their addresses.

Each CEP is up to eight digits; the "01310-930" form is accepted too.
Codes are looked up concurrently and printed in the order given. The
command exits non-zero when any code was not found or could not be
looked up.`,
	Example: `  # Single lookup
  buscacep lookup 01310930

  # Several codes, compact output
  buscacep lookup 01310930 20040002 --format compact

  # JSON for scripting
  buscacep lookup 01310-930 --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

// lookupResult is the final state for one command-line argument.
type lookupResult struct {
	Input string
	State lookup.State
}

func runLookup(cmd *cobra.Command, args []string) error {
	results, err := lookupAll(cmd.Context(), cfg.NewClient(), args, concurrency, cfg.LookupTimeout())
	if err != nil {
		return err
	}

	if err := printLookupResults(cmd.OutOrStdout(), results, currentFormat()); err != nil {
		return err
	}

	if missed := unresolved(results); missed > 0 {
		return fmt.Errorf("%d of %d postal codes were not resolved", missed, len(results))
	}
	return nil
}

// lookupAll runs one session per code, at most limit at a time, and returns
// the results in input order.
func lookupAll(ctx context.Context, client lookup.Client, codes []string, limit int, timeout time.Duration) ([]lookupResult, error) {
	results := make([]lookupResult, len(codes))

	g, gCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, raw := range codes {
		g.Go(func() error {
			results[i] = lookupOne(gCtx, client, raw, timeout)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("lookup interrupted: %w", err)
	}
	return results, nil
}

func lookupOne(ctx context.Context, client lookup.Client, raw string, timeout time.Duration) lookupResult {
	code, err := prepareCode(raw)
	if err != nil {
		return lookupResult{Input: raw, State: lookup.Failed(raw, err)}
	}

	session := lookup.NewSession(client,
		lookup.WithTimeout(timeout),
		lookup.WithLogger(logging.Named("lookup")),
	)
	defer session.Close()

	session.Edit(code)
	return lookupResult{Input: raw, State: session.Lookup(ctx)}
}

// prepareCode turns a command-line argument into search input. The dashed
// "01310-930" form is reduced to its digits; anything else must already
// fit the input bound.
func prepareCode(raw string) (string, error) {
	code := strings.TrimSpace(raw)
	if strings.Contains(code, "-") {
		if digits := address.NormalizePostalCode(code); len(digits) == lookup.MaxPostalCodeLength {
			code = digits
		}
	}

	if code == "" {
		return "", viacep.NewValidationError("empty postal code")
	}
	if lookup.ApplyInput("", code) != code {
		return "", viacep.NewValidationError(fmt.Sprintf("postal code %q is longer than %d characters", raw, lookup.MaxPostalCodeLength))
	}
	return code, nil
}

func unresolved(results []lookupResult) int {
	n := 0
	for _, r := range results {
		if r.State.Phase != lookup.PhaseFound {
			n++
		}
	}
	return n
}

// jsonResult is the --format json shape of one lookup.
type jsonResult struct {
	CEP     string          `json:"cep"`
	Status  string          `json:"status"`
	Address *address.Record `json:"address,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func printLookupResults(w io.Writer, results []lookupResult, format string) error {
	switch format {
	case address.FormatJSON:
		out := make([]jsonResult, 0, len(results))
		for _, r := range results {
			jr := jsonResult{CEP: r.Input, Status: r.State.Phase.String()}
			switch r.State.Phase {
			case lookup.PhaseFound:
				rec := r.State.Record
				jr.Address = &rec
			case lookup.PhaseFailed:
				jr.Error = viacep.ShortMessage(r.State.Reason)
			}
			out = append(out, jr)
		}
		return writeJSON(w, out)

	case address.FormatCompact:
		for _, r := range results {
			switch r.State.Phase {
			case lookup.PhaseFound:
				fmt.Fprint(w, r.State.Record.FormatCompact())
			case lookup.PhaseFailed:
				fmt.Fprintf(w, "%-9s failed: %s\n", r.Input, viacep.ShortMessage(r.State.Reason))
			default:
				fmt.Fprintf(w, "%-9s not found\n", r.Input)
			}
		}
		return nil

	default:
		printer := ui.NewPrinter(w)
		for _, r := range results {
			printer.PrintState(r.State)
		}
		if len(results) > 1 {
			printer.PrintProgress(batchProgress(results))
		}
		return nil
	}
}

// batchProgress summarizes a finished batch, one line per code.
func batchProgress(results []lookupResult) *ui.Progress {
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Input
	}

	p := ui.NewProgress(fmt.Sprintf("Looked up %d postal codes", len(results)), names)
	for i, r := range results {
		var note string
		switch r.State.Phase {
		case lookup.PhaseFound:
			note = r.State.Record.City + "/" + r.State.Record.StateCode
		case lookup.PhaseFailed:
			note = viacep.ShortMessage(r.State.Reason)
		}
		p.UpdateStep(i+1, ui.StepStatusFor(r.State.Phase), note)
	}
	return p
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

// searchCmd finds postal codes by address
var searchCmd = &cobra.Command{
	Use:   "search <uf> <city> <street>",
	Short: "Find postal codes by state, city and street",
	Long: `Search the directory for addresses matching a street name.

The state is its two-letter code (UF). City and street need at least three
characters each; the street may be a partial name.`,
	Example: `  buscacep search SP "São Paulo" Paulista
  buscacep search RJ "Rio de Janeiro" "Rio Branco" --format json`,
	Args: cobra.ExactArgs(3),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	stateCode, city, street := args[0], args[1], args[2]
	client := cfg.NewClient()
	format := currentFormat()
	out := cmd.OutOrStdout()

	logging.Info("Address search started",
		zap.String("state", stateCode),
		zap.String("city", city),
		zap.String("street", street),
	)

	records, err := client.Search(cmd.Context(), stateCode, city, street)
	if err != nil {
		if format != address.FormatJSON {
			ui.NewPrinter(out).PrintError("Address search", err, viacep.TroubleshootingHint(err))
		}
		return fmt.Errorf("search failed: %w", err)
	}

	logging.Info("Address search finished", zap.Int("results", len(records)))
	return printSearchResults(out, strings.Join(args, " "), records, format)
}

func printSearchResults(w io.Writer, query string, records []address.Record, format string) error {
	switch format {
	case address.FormatJSON:
		if records == nil {
			records = []address.Record{}
		}
		return writeJSON(w, records)

	case address.FormatCompact:
		if len(records) == 0 {
			fmt.Fprintln(w, "No addresses found.")
		}
		for _, r := range records {
			fmt.Fprint(w, r.FormatCompact())
		}
		return nil

	default:
		printer := ui.NewPrinter(w)
		printer.PrintHeader("Address search", "buscacep search "+query,
			ui.Detail{Key: "Results", Value: fmt.Sprint(len(records))})

		if len(records) == 0 {
			printer.PrintResult(ui.NewWarningResult(query, []ui.Detail{
				{Key: "Result", Value: "No addresses match this search"},
			}))
			return nil
		}
		for _, r := range records {
			printer.PrintResult(ui.NewSuccessResult(address.FormatPostalCode(r.PostalCode), ui.RecordDetails(r)))
		}
		return nil
	}
}

// tuiCmd launches the interactive search screen
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive search screen",
	Long: `Launch the interactive postal code search screen.

Type a CEP and press enter to look it up. This is also what runs when
buscacep is started without a command.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

var errNoTerminal = errors.New("the search screen needs a terminal; use 'buscacep lookup <cep>' instead")

// Replaced in tests.
var (
	stdinIsTerminal  = func() bool { return ui.IsTerminal(os.Stdin) }
	stdoutIsTerminal = func() bool { return ui.IsTerminal(os.Stdout) }
)

func runTUI(cmd *cobra.Command, args []string) error {
	if !stdinIsTerminal() || !stdoutIsTerminal() {
		return errNoTerminal
	}

	session := lookup.NewSession(cfg.NewClient(),
		lookup.WithTimeout(cfg.LookupTimeout()),
		lookup.WithHistorySize(cfg.Preferences.HistorySize),
		lookup.WithLogger(logging.Named("lookup")),
	)
	logging.Info("Search screen started", zap.String("session", session.ID()))

	if err := tui.Run(cmd.Context(), session); err != nil {
		return fmt.Errorf("search screen error: %w", err)
	}
	return nil
}
