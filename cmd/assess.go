package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/moodcheck/internal/assessment"
	"github.com/abhisek/moodcheck/internal/encoder"
	"github.com/abhisek/moodcheck/internal/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess a completed answers file without the TUI",
	Long: `Assess reads a YAML or JSON file mapping question ids to answers and
prints the classified emotional state. Single-choice answers are strings,
multi-choice answers are lists. Use "-" to read from stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("answers")
		asJSON, _ := cmd.Flags().GetBool("json")
		noSave, _ := cmd.Flags().GetBool("no-save")

		rs, err := readAnswers(path, cmd.InOrStdin())
		if err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		var repo store.AssessmentRepo
		if !noSave {
			repo = st.AssessmentRepo()
		}
		p, err := buildPipeline(cmd.Context(), cfg, repo, st.EventRepo())
		if err != nil {
			return err
		}

		res, err := p.service.Assess(cmd.Context(), rs)
		if err != nil {
			var incomplete *encoder.IncompleteError
			if errors.As(err, &incomplete) {
				return fmt.Errorf("answers incomplete, missing: %s", strings.Join(incomplete.Missing, ", "))
			}
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		printResult(out, res)
		return nil
	},
}

// readAnswers parses an answers file. JSON is chosen by extension; anything
// else, stdin included, goes through the YAML decoder, which also accepts
// JSON.
func readAnswers(path string, stdin io.Reader) (encoder.ResponseSet, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}

	var rs encoder.ResponseSet
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &rs)
	} else {
		err = yaml.Unmarshal(data, &rs)
	}
	if err != nil {
		return nil, fmt.Errorf("parse answers %s: %w", path, err)
	}
	if rs == nil {
		rs = encoder.ResponseSet{}
	}
	return rs, nil
}

// printResult writes the plain-text form of a result.
func printResult(w io.Writer, res *assessment.Result) {
	fmt.Fprintln(w, res.Headline)
	if res.Note != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, res.Note)
	}
	if len(res.Warnings) > 0 {
		fmt.Fprintln(w)
		for _, warn := range res.Warnings {
			fmt.Fprintf(w, "warning: %s\n", warn)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "ID:          %s\n", res.ID)
	fmt.Fprintf(w, "Time:        %s\n", res.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Classifier:  %s (code %d)\n", res.Classifier, res.Code)
	fmt.Fprintln(w)
	fmt.Fprintln(w, res.Disclaimer)
}

func init() {
	assessCmd.Flags().StringP("answers", "a", "", "Answers file (YAML or JSON), or - for stdin")
	assessCmd.Flags().Bool("json", false, "Print the result as JSON")
	assessCmd.Flags().Bool("no-save", false, "Do not record the assessment in history")
	_ = assessCmd.MarkFlagRequired("answers")
}
