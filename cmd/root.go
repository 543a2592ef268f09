package cmd

import (
	"fmt"

	"github.com/abhisek/moodcheck/internal/config"
	"github.com/abhisek/moodcheck/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "moodcheck",
	Short:        "Questionnaire-based emotional state check",
	Long:         "moodcheck asks ten questions about the past two weeks and classifies the answers as an emotional state.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadDotEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides MOODCHECK_DB env var)")
	pf.String("model", "", "Path to the model artifact (overrides MOODCHECK_MODEL)")
	pf.String("labels", "", "Path to the label artifact (overrides MOODCHECK_LABELS)")
	pf.String("classifier", "", "Classifier backend: artifact or llm (overrides MOODCHECK_CLASSIFIER)")

	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome screen")

	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MOODCHECK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
