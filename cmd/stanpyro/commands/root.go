package commands

import (
	"fmt"
	"os"

	"github.com/panyam/stanpyro/codegen"
	"github.com/panyam/stanpyro/config"
	"github.com/panyam/stanpyro/core"
	"github.com/panyam/stanpyro/decl"
	"github.com/panyam/stanpyro/loader"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	includeDirs []string
	lineMarkers bool

	// cfg is resolved before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "stanpyro",
	Short: "stanpyro lowers probabilistic model programs to Pyro",
	Long: `stanpyro reads a model program description (declarations plus a statement
tree) and generates the equivalent Python program against the Pyro runtime helpers.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
		if lineMarkers {
			cfg.Options.EmitLineMarkers = true
		}
		core.SetLogLevel(cfg.LogLevel)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a stanpyro.toml options file")
	rootCmd.PersistentFlags().StringSliceVarP(&includeDirs, "include-dir", "I", nil, "Extra directories searched for included files")
	rootCmd.PersistentFlags().BoolVar(&lineMarkers, "line-markers", false, "Emit source line marker comments")
}

// AddCommand allows adding subcommands from other files.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

func loadProgram(path string) (*decl.Program, error) {
	l := loader.NewLoader(loader.NewYAMLParser(), loader.NewDefaultFileResolver(includeDirs...), 10)
	res, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	return res.Program, nil
}

func newGenerator(prog *decl.Program) *codegen.Generator {
	return codegen.NewGenerator(prog, cfg.Options)
}
