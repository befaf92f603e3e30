// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/helioviewer-project/helios/config"
	"github.com/helioviewer-project/helios/helioviewer"
	"github.com/helioviewer-project/helios/imagery"
	"github.com/helioviewer-project/helios/projection"
)

func sourceArg(s string) (int, error) {
	source, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid source id %q", s)
	}
	return source, nil
}

func imagesCommand(app *App) *cobra.Command {
	var start, end string
	var cadence time.Duration
	var collect bool
	cmd := &cobra.Command{
		Use:   "images SOURCE",
		Short: "List the images of a source nearest to each sample time of a range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := sourceArg(args[0])
			if err != nil {
				return err
			}
			st, err := parseTime(start)
			if err != nil {
				return err
			}
			et := st
			if end != "" {
				if et, err = parseTime(end); err != nil {
					return err
				}
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer tw.Flush()
			if !collect {
				recs, err := app.Client.ImagesInRange(cmd.Context(), source, st, et, cadence)
				if err != nil {
					return err
				}
				for _, rec := range recs {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", rec.ID, helioviewer.APIDate(rec.Timestamp), rec.JP2Info)
				}
				return nil
			}
			for _, r := range app.Client.ImageResultsInRange(cmd.Context(), source, st, et, cadence) {
				if r.Err != nil {
					fmt.Fprintf(tw, "-\t%s\terror: %v\n", helioviewer.APIDate(r.Time), r.Err)
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Record.ID, helioviewer.APIDate(r.Record.Timestamp), r.Record.JP2Info)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "start of the range")
	cmd.Flags().StringVar(&end, "end", "", "end of the range (default start)")
	cmd.Flags().DurationVar(&cadence, "cadence", 0, "time between samples; 0 samples the start only")
	cmd.Flags().BoolVar(&collect, "collect", false, "report failed samples instead of failing")
	cmd.MarkFlagRequired("start")
	return cmd
}

func eventsCommand(app *App) *cobra.Command {
	var start, end, day string
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List solar events of a range, or of a day with --day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var evs []helioviewer.Event
			if day != "" {
				d, err := parseTime(day)
				if err != nil {
					return err
				}
				if evs, err = app.Client.EventsForDay(cmd.Context(), d); err != nil {
					return err
				}
			} else {
				if start == "" || end == "" {
					return fmt.Errorf("either --day or both --start and --end are required")
				}
				st, err := parseTime(start)
				if err != nil {
					return err
				}
				et, err := parseTime(end)
				if err != nil {
					return err
				}
				if evs, err = app.Client.EventsInRange(cmd.Context(), st, et); err != nil {
					return err
				}
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer tw.Flush()
			for _, ev := range evs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", ev.Type, helioviewer.APIDate(ev.Start), helioviewer.APIDate(ev.End), ev.CoordSystem, ev.Coordinates.Observer)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "start of the range")
	cmd.Flags().StringVar(&end, "end", "", "end of the range")
	cmd.Flags().StringVar(&day, "day", "", "day to list Helioviewer events of")
	return cmd
}

func positionCommand(app *App) *cobra.Command {
	var q helioviewer.EventPositionQuery
	var date string
	cmd := &cobra.Command{
		Use:   "position",
		Short: "Resolve an event position into scene coordinates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if q.Date, err = parseTime(date); err != nil {
				return err
			}
			co, err := app.Client.ResolveEventPosition(cmd.Context(), q)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), co)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&q.System, "system", "UTC-HPC-TOPO", "coordinate system")
	fs.Float64Var(&q.Coord1, "coord1", 0, "first coordinate")
	fs.Float64Var(&q.Coord2, "coord2", 0, "second coordinate")
	fs.Float64Var(&q.Coord3, "coord3", 0, "third coordinate")
	fs.StringVar(&q.Observatory, "observatory", "SDO", "observing instrument")
	fs.StringVar(&q.Units, "units", "arcseconds", "units of the coordinates")
	fs.StringVar(&date, "date", "", "observation time")
	cmd.MarkFlagRequired("date")
	return cmd
}

func movieCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "movie ID",
		Short: "Show the status of a Helioviewer movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := app.Client.MovieDetails(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "status: %d\ntitle: %s\nframes: %d\n", ms.Status, ms.Title, ms.Frames)
			if ms.URL != "" {
				fmt.Fprintf(out, "url: %s\n", ms.URL)
			}
			return nil
		},
	}
}

func urlCommand(app *App) *cobra.Command {
	var scale float64
	cmd := &cobra.Command{
		Use:   "url ID",
		Short: "Print the download URL of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if scale <= 0 {
				scale = app.Config.ImageScale
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.Client.DownloadImageURL(args[0], scale))
			return nil
		},
	}
	cmd.Flags().Float64Var(&scale, "scale", 0, "image scale in arcseconds per pixel (default from configuration)")
	return cmd
}

func buildCommand(app *App) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "build SOURCE",
		Short: "Build the model of the image of a source nearest to a time, and describe it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := sourceArg(args[0])
			if err != nil {
				return err
			}
			t, err := parseTime(date)
			if err != nil {
				return err
			}
			b := app.Builder()
			ld := imagery.NewLoader(app.Client).SetScale(app.Config.ImageScale)
			ly := imagery.NewLayer(b, ld, source)
			defer ly.Close()
			if err := ly.Load(cmd.Context(), t, t, 0); err != nil {
				return err
			}
			if err := ly.ShowFrame(cmd.Context(), 0); err != nil {
				return err
			}
			sc := b.Scene()
			sc.Update()
			rec := ly.Frames()[0]
			gp := ly.Group()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "image: %s at %s\n", rec.ID, helioviewer.APIDate(rec.Timestamp))
			fmt.Fprintf(out, "projection: %s\n", b.PlaneSources().PolicyFor(source))
			if b.PlaneSources().PolicyFor(source) == projection.Hemisphere {
				fmt.Fprintf(out, "mesh scale: %g\n", projection.MeshScale(rec.JP2Info))
			} else {
				w, h := projection.PlaneDimensions(rec.JP2Info)
				fmt.Fprintf(out, "plane: %g x %g\n", w, h)
			}
			fmt.Fprintf(out, "model: %s (%s), %d solids\n", gp.Name, gp.Kind(), len(gp.Solids()))
			fmt.Fprintf(out, "bounds: %v - %v\n", gp.WorldBBox.Min, gp.WorldBBox.Max)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "time of the image")
	cmd.MarkFlagRequired("date")
	return cmd
}

func configCommand(app *App) *cobra.Command {
	var save string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration, or save it with --save",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if save != "" {
				return app.Config.Save(save)
			}
			return app.Config.Write(cmd.OutOrStdout(), config.Formats[".toml"])
		},
	}
	cmd.Flags().StringVar(&save, "save", "", "file to save the configuration to")

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Print the configuration file each time it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.ConfigFile == "" {
				return fmt.Errorf("--config is required to watch")
			}
			return config.Watch(cmd.Context(), app.ConfigFile, func(c *config.Config, err error) {
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
					return
				}
				app.Config = c
				c.Write(cmd.OutOrStdout(), config.Formats[".toml"])
			})
		},
	}
	cmd.AddCommand(watch)
	return cmd
}
