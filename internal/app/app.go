// Package app wires configuration, logging, and project persistence
// around the timeline editing core.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/montage/internal/config"
	"github.com/dshills/montage/internal/project"
	"github.com/dshills/montage/internal/timeline"
	"github.com/dshills/montage/internal/timeline/track"
)

// App is the central coordinator for the montage editor.
type App struct {
	config   *config.Config
	logger   *Logger
	timeline *timeline.Timeline

	projectPath string
	out         io.Writer

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// ProjectPath is the project document to open. Empty starts a new
	// project with the configured default tracks.
	ProjectPath string

	// LogLevel overrides the configured logging verbosity.
	LogLevel string

	// Debug enables debug logging regardless of other settings.
	Debug bool

	// Output is where summaries are printed. Defaults to os.Stdout.
	Output io.Writer

	// LogOutput is where logs are written. Defaults to os.Stderr.
	LogOutput io.Writer
}

// New creates an App with the given options.
func New(opts Options) (*App, error) {
	app := &App{
		opts: opts,
		out:  opts.Output,
	}
	if app.out == nil {
		app.out = os.Stdout
	}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

func (app *App) bootstrap() error {
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.config = cfg

	level := ParseLogLevel(cfg.Log.Level)
	if app.opts.LogLevel != "" {
		level = ParseLogLevel(app.opts.LogLevel)
	}
	if app.opts.Debug {
		level = LogLevelDebug
	}
	app.logger = NewLogger(LoggerConfig{
		Level:  level,
		Output: app.opts.LogOutput,
		Prefix: "montage",
	})

	if app.opts.ProjectPath != "" {
		if err := app.OpenProject(app.opts.ProjectPath); err != nil {
			return &InitError{Component: "project", Err: err}
		}
	} else {
		app.timeline = app.NewTimeline()
		app.logger.Debug("started empty project with %d default tracks", len(app.timeline.Tracks()))
	}
	return nil
}

// NewTimeline builds an empty timeline with the configured undo bound
// and one track of each kind, named from the configuration.
func (app *App) NewTimeline() *timeline.Timeline {
	tl := timeline.New(timeline.WithMaxUndoEntries(app.config.History.MaxEntries))

	defaults := []struct {
		kind track.Kind
		name string
	}{
		{track.Video, app.config.Defaults.VideoTrackName},
		{track.Audio, app.config.Defaults.AudioTrackName},
		{track.Subtitle, app.config.Defaults.SubtitleTrackName},
	}
	for _, d := range defaults {
		tr := track.New(d.kind, d.name)
		// Seeded tracks are the starting state, not an undoable edit.
		if err := tl.TrackList().Append(tr); err != nil {
			app.logger.Warn("seeding %s track: %v", d.kind, err)
		}
	}
	return tl
}

// OpenProject loads the project document at path.
func (app *App) OpenProject(path string) error {
	tl, err := project.Load(path, timeline.WithMaxUndoEntries(app.config.History.MaxEntries))
	if err != nil {
		return err
	}
	app.timeline = tl
	app.projectPath = path
	app.logger.Info("opened project %s: %d tracks, duration %s",
		path, len(tl.Tracks()), tl.Duration())
	return nil
}

// SaveProject writes the current timeline to path. An empty path reuses
// the path the project was opened from.
func (app *App) SaveProject(path string) error {
	if path == "" {
		path = app.projectPath
	}
	if path == "" {
		return fmt.Errorf("no project path")
	}
	if err := project.Save(path, app.timeline); err != nil {
		return err
	}
	app.projectPath = path
	app.logger.Info("saved project %s", path)
	return nil
}

// Timeline returns the timeline being edited.
func (app *App) Timeline() *timeline.Timeline {
	return app.timeline
}

// Config returns the loaded configuration.
func (app *App) Config() *config.Config {
	return app.config
}

// Logger returns the application logger.
func (app *App) Logger() *Logger {
	return app.logger
}

// Inspect prints a human-readable summary of the timeline.
func (app *App) Inspect() {
	tl := app.timeline

	name := app.projectPath
	if name == "" {
		name = "(unsaved project)"
	}
	fmt.Fprintf(app.out, "%s\n", name)
	fmt.Fprintf(app.out, "duration: %s\n", tl.Duration())
	fmt.Fprintf(app.out, "tracks: %d\n", len(tl.Tracks()))

	for _, tr := range tl.Tracks() {
		flags := ""
		if tr.Muted {
			flags += " muted"
		}
		if tr.Locked {
			flags += " locked"
		}
		fmt.Fprintf(app.out, "  [%s] %s: %d clips, end %s%s\n",
			tr.Kind, tr.Name, tr.ClipCount(), tr.End(), flags)
		for _, prop := range keyframeProperties(tr) {
			fmt.Fprintf(app.out, "    keyframes: %s\n", prop)
		}
	}

	edges := tl.Graph().All()
	if len(edges) > 0 {
		fmt.Fprintf(app.out, "relationships: %d\n", len(edges))
		for _, e := range edges {
			src, serr := tl.Track(e.Source)
			dst, derr := tl.Track(e.Target)
			if serr != nil || derr != nil {
				continue
			}
			fmt.Fprintf(app.out, "  %s -> %s (%s)\n", src.Name, dst.Name, e.Relationship)
		}
	}
}

func keyframeProperties(tr *track.Track) []string {
	if !tr.HasKeyframes() {
		return nil
	}
	return tr.Keyframes().Properties()
}
