package cmd

import (
	"fmt"
	"os"

	"github.com/kamusis/sdm-cli/internal/codegen"
	"github.com/spf13/cobra"
)

var codegenCmd = &cobra.Command{
	Use:   "codegen <repo> <model>",
	Short: "Generate JavaScript declarations for the selected properties of a model",
	Long: `Print one JSDoc-annotated declaration per selected property. Required
properties are selected by default; use --toggle to add or remove others.

Example:
  sdm codegen Weather WeatherObserved
  sdm codegen Weather WeatherObserved --decl let --toggle pressure`,
	Args: cobra.ExactArgs(2),
	RunE: runCodegen,
}

var (
	flagCodegenToggle []string
	flagCodegenDecl   string
)

func init() {
	codegenCmd.Flags().StringSliceVar(&flagCodegenToggle, "toggle", nil, "Flip the selection of a property (repeatable)")
	codegenCmd.Flags().StringVar(&flagCodegenDecl, "decl", "const", "Declaration keyword: const, let or var")
	rootCmd.AddCommand(codegenCmd)
}

func runCodegen(cmd *cobra.Command, args []string) error {
	decl, err := codegen.ParseDeclaration(flagCodegenDecl)
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	m, err := openModel(cmdContext(cmd), s, args[0], args[1], flagCodegenToggle)
	if err != nil {
		return err
	}

	out := codegen.Generate(m, decl)
	if out == "" {
		return fmt.Errorf("model %s has no selected properties\nUse --toggle <property> to select some.", m.Name)
	}
	fmt.Fprint(os.Stdout, out)
	return nil
}
