package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Harsh-BH/gauntlet/internal/config"
	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/judge"
	"github.com/Harsh-BH/gauntlet/internal/repository/catalog"
	"github.com/Harsh-BH/gauntlet/internal/usecase"
)

// errRejected makes the process exit non-zero when the judge rejects a solution.
var errRejected = errors.New("solution rejected")

func (c *cli) newValidateCmd() *cobra.Command {
	var (
		wrapperPath  string
		solutionPath string
		language     string
		catalogPath  string
		problemID    string
		showMerged   bool
		timeout      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Merge a solution into a test wrapper, run it on the judge and print the verdict",
		Long: `validate splices the solution file into the wrapper at its placeholder comment,
submits the program to the judge configured by JUDGE_URL, JUDGE_API_KEY and
JUDGE_API_HOST, and prints the verdict. The exit status is non-zero when the
solution is rejected.`,
		Example: `  stubgen validate --wrapper sum_wrapper.py --solution sum.py --language python
  stubgen validate --catalog problems.yaml --problem sum --solution sum.py --language python`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lang := domain.Language(language)
			if !lang.IsValid() {
				return fmt.Errorf("--language %q: %w", language, domain.ErrInvalidLanguage)
			}

			solution, err := os.ReadFile(solutionPath)
			if err != nil {
				return fmt.Errorf("read solution: %w", err)
			}

			var wrapper string
			switch {
			case wrapperPath != "":
				data, err := os.ReadFile(wrapperPath)
				if err != nil {
					return fmt.Errorf("read wrapper: %w", err)
				}
				wrapper = string(data)
			case problemID != "":
				cat, err := catalog.Load(catalogPath)
				if err != nil {
					return err
				}
				if wrapper, err = cat.GetWrapper(cmd.Context(), problemID, lang); err != nil {
					return fmt.Errorf("problem %q (%s): %w", problemID, lang, err)
				}
			default:
				return fmt.Errorf("one of --wrapper or --problem is required")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if timeout > 0 {
				cfg.Judge.Timeout = timeout
			}

			client := judge.NewClient(judge.Config{
				BaseURL: cfg.Judge.URL,
				APIKey:  cfg.Judge.APIKey,
				APIHost: cfg.Judge.APIHost,
			}, judge.NewHTTPClient(cfg.Judge.Timeout, false), c.logger)

			uc := usecase.NewValidateCodeUsecase(nil, nil, client, c.logger)
			resp, err := uc.MergeAndSubmit(cmd.Context(), wrapper, string(solution), lang)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if showMerged {
				fmt.Fprintf(out, "%s\n---\n", resp.MergedSource)
			}
			verdict := "REJECTED"
			if resp.Verdict.Accepted {
				verdict = "ACCEPTED"
			}
			fmt.Fprintf(out, "Verdict: %s (%s)\n%s\n", verdict, resp.JudgeStatus, resp.Verdict.DisplayText)
			if resp.Time != "" || resp.MemoryKB > 0 {
				fmt.Fprintf(out, "Time: %ss  Memory: %d KB\n", resp.Time, resp.MemoryKB)
			}

			if !resp.Verdict.Accepted {
				return errRejected
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&wrapperPath, "wrapper", "", "Test wrapper file containing the placeholder comment")
	cmd.Flags().StringVar(&solutionPath, "solution", "", "Solution source file")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Solution language")
	cmd.Flags().StringVar(&catalogPath, "catalog", "./problems.yaml", "Problem catalog YAML")
	cmd.Flags().StringVar(&problemID, "problem", "", "Take the wrapper from this catalog problem")
	cmd.Flags().BoolVar(&showMerged, "show-merged", false, "Print the program sent to the judge")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Judge request timeout (default JUDGE_TIMEOUT)")
	_ = cmd.MarkFlagRequired("solution")
	_ = cmd.MarkFlagRequired("language")
	cmd.MarkFlagsMutuallyExclusive("wrapper", "problem")
	return cmd
}
