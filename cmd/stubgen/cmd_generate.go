package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Harsh-BH/gauntlet/internal/codegen"
	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/repository/catalog"
	"github.com/Harsh-BH/gauntlet/internal/usecase"
)

func (c *cli) newGenerateCmd() *cobra.Command {
	var (
		function    string
		inputs      []string
		ret         string
		language    string
		catalogPath string
		problemID   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print starter code for a function signature or a catalog problem",
		Example: `  stubgen generate --function twoSum --input "nums: list[int]" --input "target: int" --return "list[int]"
  stubgen generate --catalog problems.yaml --problem two-sum --language cpp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sig domain.FunctionSignature
			if problemID != "" {
				cat, err := catalog.Load(catalogPath)
				if err != nil {
					return err
				}
				p, err := cat.GetByID(cmd.Context(), problemID)
				if err != nil {
					return fmt.Errorf("problem %q: %w", problemID, err)
				}
				sig = p.FunctionSignature
			} else {
				if function == "" || ret == "" {
					return fmt.Errorf("--function and --return are required without --problem")
				}
				sig = domain.FunctionSignature{Function: function, Inputs: inputs, Return: ret}
			}

			uc := usecase.NewGenerateStubUsecase(nil, c.logger)

			if language != "" {
				stub, err := uc.Generate(sig, domain.Language(language))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), stub)
				return nil
			}

			printStubSet(cmd.OutOrStdout(), cmd.ErrOrStderr(), uc.GenerateAll(sig))
			return nil
		},
	}

	cmd.Flags().StringVar(&function, "function", "", "Function name")
	cmd.Flags().StringArrayVar(&inputs, "input", nil, `Parameter declaration "name: type" (repeatable, in order)`)
	cmd.Flags().StringVar(&ret, "return", "", "Return type expression")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Target language (default: every language)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "./problems.yaml", "Problem catalog YAML")
	cmd.Flags().StringVar(&problemID, "problem", "", "Use the signature of this catalog problem")
	return cmd
}

// printStubSet writes stubs in language order and reports unresolved languages on errOut.
func printStubSet(out, errOut io.Writer, set codegen.StubSet) {
	for _, lang := range domain.Languages() {
		stub, ok := set.Stubs[lang]
		if !ok {
			continue
		}
		fmt.Fprintf(out, "== %s ==\n%s\n\n", codegen.Label(lang), stub)
	}

	unresolved := make([]string, 0, len(set.Unresolved))
	for lang := range set.Unresolved {
		unresolved = append(unresolved, string(lang))
	}
	sort.Strings(unresolved)
	for _, lang := range unresolved {
		fmt.Fprintf(errOut, "skipped %s: %s\n", lang, set.Unresolved[domain.Language(lang)])
	}
}
