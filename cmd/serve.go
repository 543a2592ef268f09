package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/abhisek/moodcheck/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		p, err := buildPipeline(ctx, cfg, st.AssessmentRepo(), st.EventRepo())
		if err != nil {
			return err
		}

		srv := server.New(p.qn, p.service, server.Options{
			CORSOrigins: cfg.CORSOrigins,
			Repo:        st.AssessmentRepo(),
		})
		cmd.Printf("moodcheck API listening on %s (%s classifier)\n", cfg.Addr, cfg.Classifier)
		return srv.ListenAndServe(ctx, cfg.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides MOODCHECK_ADDR, default :8080)")
}
