package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/panyam/stanpyro/cmd/stanpyro/commands"
	"github.com/panyam/stanpyro/config"
	"github.com/panyam/stanpyro/core"
)

func main() {
	envfile := ".env"
	if os.Getenv("STANPYRO_ENV") == "dev" {
		envfile = ".env.dev"
		logger := slog.New(NewPrettyHandler(os.Stderr, PrettyHandlerOptions{
			SlogOpts: slog.HandlerOptions{
				Level: slog.LevelDebug,
			},
		}))
		slog.SetDefault(logger)
		core.SetLogger(newSlogLogger(core.LogLevelDebug))
	}
	if err := config.LoadEnvFiles(envfile); err != nil {
		log.Fatal("Error loading env file ", envfile, ": ", err)
	}
	commands.Execute()
}
