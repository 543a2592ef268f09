package cmd

import (
	"github.com/abhisek/moodcheck/internal/app"
	"github.com/abhisek/moodcheck/internal/screens/home"
	"github.com/abhisek/moodcheck/internal/screens/questionnaire"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds the pipeline, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := buildPipeline(cmd.Context(), cfg, st.AssessmentRepo(), st.EventRepo())
	if err != nil {
		return err
	}

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(app.Options{
		Home: home.Deps{
			Flow: questionnaire.Deps{
				Questionnaire: p.qn,
				Assessor:      p.service,
				Drafts:        st.DraftRepo(),
			},
			Assessments: st.AssessmentRepo(),
		},
		Classifier:  cfg.Classifier,
		SkipWelcome: noSplash,
	})
}
