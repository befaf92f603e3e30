// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/helioviewer-project/helios/assets"
	"github.com/helioviewer-project/helios/config"
	"github.com/helioviewer-project/helios/helioviewer"
	"github.com/helioviewer-project/helios/logx"
	"github.com/helioviewer-project/helios/model"
	"github.com/helioviewer-project/helios/xyz"
)

// App is the state shared by the commands.
type App struct {
	// ConfigFile is the configuration file given with --config.
	ConfigFile string

	// Verbose, VeryVerbose and Quiet select the log level,
	// overriding the configuration.
	Verbose, VeryVerbose, Quiet bool

	// Config is the loaded configuration.
	Config *config.Config

	// Client is the service client built from Config.
	Client *helioviewer.Client
}

// RootCommand creates and returns the root command.
func RootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "helios",
		Short:         "Helioviewer solar imagery in 3D",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&app.ConfigFile, "config", "c", "", "configuration file (.toml or .yaml)")
	pf.BoolVarP(&app.Verbose, "verbose", "v", false, "log informational messages")
	pf.BoolVar(&app.VeryVerbose, "vv", false, "log debug messages")
	pf.BoolVarP(&app.Quiet, "quiet", "q", false, "log only errors")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.initialize()
	}

	root.AddCommand(
		imagesCommand(app),
		eventsCommand(app),
		positionCommand(app),
		movieCommand(app),
		urlCommand(app),
		buildCommand(app),
		configCommand(app),
	)
	return root
}

// initialize loads the configuration, sets up logging and creates
// the client.
func (app *App) initialize() error {
	cfg := config.New()
	if app.ConfigFile != "" {
		if err := cfg.Open(app.ConfigFile); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	app.Config = cfg

	logx.UserLevel = cfg.Level()
	if app.Verbose || app.VeryVerbose || app.Quiet {
		logx.UserLevel = logx.LevelFromFlags(app.VeryVerbose, app.Verbose, app.Quiet)
	}
	logx.SetDefaultLogger()

	app.Client = helioviewer.NewClient(cfg.Helioviewer())
	slog.Debug("helios initialized", "config", app.ConfigFile, "level", logx.UserLevel)
	return nil
}

// Builder returns a model builder for a new scene with no device.
func (app *App) Builder() *model.Builder {
	opts := []model.Option{model.WithPlaneSources(app.Config.Planes())}
	if app.Config.AssetDir != "" {
		opts = append(opts, model.WithAssets(assets.Dir(app.Config.AssetDir)))
	}
	return model.NewBuilder(xyz.NewScene("helios", nil), opts...)
}

// parseTime parses a time given on the command line, in any of the
// layouts accepted by the services.
func parseTime(s string) (time.Time, error) {
	t, err := helioviewer.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want e.g. 2023-05-01T12:00:00Z", s)
	}
	return t, nil
}
