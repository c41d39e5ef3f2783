package commands

import (
	"fmt"
	"os"
	"time"

	"oncall-report/internal/credentials"
	"oncall-report/internal/report"
	"oncall-report/internal/stats"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	spanSince string
	spanUntil string

	tokenStore credentials.Store = credentials.Default()
	now                          = time.Now
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Current week",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(func(loc *time.Location) (stats.Window, error) {
			return stats.ResolveCurrent(now().In(loc), cfg.Report.Cutover())
		})
	},
}

var previousCmd = &cobra.Command{
	Use:   "previous",
	Short: "Previous week",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(func(loc *time.Location) (stats.Window, error) {
			return stats.ResolvePrevious(now().In(loc), cfg.Report.Cutover())
		})
	},
}

var spanCmd = &cobra.Command{
	Use:   "span",
	Short: "Span of times {-f _timestamp_ -t _timestamp_}",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(func(loc *time.Location) (stats.Window, error) {
			return stats.ResolveSpan(spanSince, spanUntil, loc)
		})
	},
}

func init() {
	spanCmd.Flags().StringVarP(&spanSince, "from", "f", "", "from timestamp (ISO-8601)")
	spanCmd.Flags().StringVarP(&spanUntil, "to", "t", "", "to timestamp (ISO-8601)")
	_ = spanCmd.MarkFlagRequired("from")
	_ = spanCmd.MarkFlagRequired("to")
}

func runReport(resolve func(*time.Location) (stats.Window, error)) error {
	if err := buildReport(resolve); err != nil {
		log.Error().Err(err).Msg("Report failed")
		return err
	}
	return nil
}

func buildReport(resolve func(*time.Location) (stats.Window, error)) error {
	rc := cfg.Report

	// Sink conflicts must surface before the fetch and the editor session.
	if err := checkSinks(rc.OutputFile, rc.Open); err != nil {
		return err
	}

	loc, err := rc.Location()
	if err != nil {
		return err
	}

	window, err := resolve(loc)
	if err != nil {
		return err
	}
	log.Info().Time("since", window.Since).Time("until", window.Until).Msg("Resolved report window")

	// Fail on a bad template before touching the network.
	tmpl, err := report.LoadTemplate(rc.Template)
	if err != nil {
		return err
	}

	token, err := tokenStore.Lookup(rc.CredentialName)
	if err != nil {
		return err
	}
	pdConfig := cfg.PagerDuty
	pdConfig.Token = token

	data, err := report.Generate(newClient(pdConfig), window, rc.AllowedServices)
	if err != nil {
		return err
	}

	text, err := report.Render(tmpl, data)
	if err != nil {
		return err
	}

	if rc.Summary {
		report.WriteSummary(os.Stderr, data)
	}

	if rc.Edit {
		if text, err = report.Edit(text, report.EditorCommand()); err != nil {
			return err
		}
	}

	return deliver(rc.OutputFile, rc.Copy, rc.Open, text)
}

func checkSinks(outputFile string, open bool) error {
	if open && outputFile == "" {
		return goerr.New("--open requires --output-file")
	}
	return nil
}

func deliver(outputFile string, copyToClipboard, open bool, text string) error {
	if err := checkSinks(outputFile, open); err != nil {
		return err
	}

	if outputFile != "" {
		if err := report.WriteFile(outputFile, text); err != nil {
			return err
		}
	}
	if copyToClipboard {
		if err := report.CopyToClipboard(text); err != nil {
			return err
		}
	}
	if open {
		if err := report.OpenFile(outputFile); err != nil {
			return err
		}
	}

	if outputFile == "" && !copyToClipboard {
		fmt.Fprint(os.Stdout, text)
	}
	return nil
}
