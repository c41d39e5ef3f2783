package commands

import (
	"oncall-report/internal/config"
	"oncall-report/internal/logging"
	"oncall-report/internal/pagerduty"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose    bool
	configPath string
	cfg        *config.AppConfig
	v          = viper.New()

	// newClient is swapped in tests.
	newClient = pagerduty.NewClient
)

var rootCmd = &cobra.Command{
	Use:   "oncall-report",
	Short: "Generate a weekly on-call report from PagerDuty incidents",
	Long: `Fetches PagerDuty incidents for a week (or an explicit span), groups them by day,
computes paging statistics and renders them through a mustache template.

Defaults are read from ~/.etc/oncall-tools.conf.yaml; flags override them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load(v, configPath)
		if err != nil {
			log.Error().Err(err).Msg("Failed to load configuration")
			return err
		}

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("config", cfg.Path).
			Msg("oncall-report starting")
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&configPath, "config", "", "defaults file (default ~/.etc/oncall-tools.conf.yaml)")

	flags.String("tz", "", "timezone for the report, e.g. Europe/Berlin (default local)")
	flags.Int("cutover-weekday", 0, "day of week where cutover occurs {Monday=0, Tuesday=1, etc}")
	flags.String("cutover-time", "09:00:00", "time of day where cutover occurs {e.g., 09:00:00}")
	flags.String("pd-api-token", config.DefaultCredentialName, "PagerDuty API token to request from passwordstore.org")
	flags.String("pd-url", pagerduty.DefaultBaseURL, "PagerDuty REST API base URL")
	flags.StringSlice("allowed-services", nil, "allowed PagerDuty service ids")
	flags.String("template", config.DefaultTemplate, "template file name, mustache format")
	flags.StringP("output-file", "o", "", "output file")
	flags.BoolP("edit", "e", false, "open report in $EDITOR")
	flags.BoolP("copy", "c", false, "copy report to clipboard")
	flags.Bool("open", false, "open the output file in the default viewer")
	flags.Bool("summary", false, "print a per-day summary table to stderr")

	for flag, key := range config.FlagKeys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(currentCmd, previousCmd, spanCmd, configCmd, versionCmd)
}
