package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ajeetraina/Ace-Step-v1.5/internal/config"
	"github.com/ajeetraina/Ace-Step-v1.5/internal/logger"
	"github.com/ajeetraina/Ace-Step-v1.5/pkg/silicon"
)

func main() {
	var configPath string
	var verbosity string
	var cfg *config.Config
	var log *zap.Logger

	app := &cli.App{
		Name:  "silicon-advisor",
		Usage: "Detect Apple Silicon and recommend inference runtime settings",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Value:       "config.yaml",
				Usage:       "Path to the advisor config file",
				EnvVars:     []string{"SILICON_ADVISOR_CONFIG"},
				Destination: &configPath,
			},
			&cli.StringFlag{
				Name:        "verbosity",
				Usage:       "Override the configured log verbosity",
				Destination: &verbosity,
			},
		},
		Before: func(c *cli.Context) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if verbosity != "" {
				cfg.Logger.Verbosity = verbosity
			}
			log, err = logger.NewConsole(cfg.Logger.Verbosity)
			if err != nil {
				return err
			}
			log = log.Named("silicon-advisor")
			return nil
		},
		// Default run: probe, apply optimizations, report on target hosts.
		Action: func(c *cli.Context) error {
			opt := silicon.New(log, silicon.WithConfig(cfg))
			opt.ApplyOptimizations()
			if opt.IsAppleSilicon() {
				printReport(os.Stdout, opt.Report())
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "report",
				Usage: "Print the detection report without touching the environment",
				Action: func(c *cli.Context) error {
					opt := silicon.New(log, silicon.WithConfig(cfg))
					printReport(os.Stdout, opt.Report())
					return nil
				},
			},
			{
				Name:  "apply",
				Usage: "Apply the Apple Silicon environment optimizations",
				Action: func(c *cli.Context) error {
					opt := silicon.New(log, silicon.WithConfig(cfg))
					applied := opt.ApplyOptimizations()
					if len(applied) == 0 {
						fmt.Println("Not an Apple Silicon host; environment unchanged.")
						return nil
					}
					for _, s := range applied {
						fmt.Printf("%s=%s\n", s.Key, s.Value)
					}
					return nil
				},
			},
			{
				Name:  "serve",
				Usage: "Serve the settings report and Prometheus metrics over HTTP",
				Action: func(c *cli.Context) error {
					return runServe(cfg, log)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		if log != nil {
			log.Fatal("failed to run app", zap.Error(err))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}
