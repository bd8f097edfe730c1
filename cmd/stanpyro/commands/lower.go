package commands

import (
	"bytes"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var outputPath string

var lowerCmd = &cobra.Command{
	Use:   "lower <model.yaml>",
	Short: "Generates the Pyro program for a model",
	Long: `The lower command loads a model description and its includes and writes the
generated Python program to stdout, or to the file given with -o. Nothing is
written when generation fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, err := loadProgram(args[0])
		if err != nil {
			return err
		}
		var out bytes.Buffer
		if err := newGenerator(prog).LowerModel(0, &out); err != nil {
			return err
		}
		if outputPath == "" {
			_, err = cmd.OutOrStdout().Write(out.Bytes())
			return err
		}
		if err := os.WriteFile(outputPath, out.Bytes(), 0o644); err != nil {
			return err
		}
		slog.Info("wrote model", "model", prog.Name, "path", outputPath, "bytes", out.Len())
		return nil
	},
}

func init() {
	lowerCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default stdout)")
	AddCommand(lowerCmd)
}
