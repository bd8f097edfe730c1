package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <model.yaml...>",
	Short: "Loads and lowers model file(s) without writing output",
	Long: `The validate command loads one or more model descriptions and runs the full
lowering pass on each, reporting every file that fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			err := validateFile(path)
			if err != nil {
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s\n%v\n", path, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", path)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d file(s) failed validation", failed, len(args))
		}
		return nil
	},
}

func validateFile(path string) error {
	prog, err := loadProgram(path)
	if err != nil {
		return err
	}
	return newGenerator(prog).LowerModel(0, io.Discard)
}

func init() {
	AddCommand(validateCmd)
}
