package ui

import (
	"fmt"
	"math/rand/v2"

	"github.com/javiermolinar/matchmaker/internal/roster"
	"github.com/javiermolinar/matchmaker/internal/workspace"
)

// eventFile returns the event file named by --event or the config.
func (a *App) eventFile() string {
	if a.eventPath != "" {
		return a.eventPath
	}
	return a.config.Event.File
}

// requireEventFile is eventFile for commands that cannot run without one.
func (a *App) requireEventFile() (string, error) {
	path := a.eventFile()
	if path == "" {
		return "", fmt.Errorf("%w: pass --event or set [event] file in the config", roster.ErrNoEventFile)
	}
	return path, nil
}

// loadWorkspace builds a workspace from the event file at path. An empty path
// gives an empty roster.
func (a *App) loadWorkspace(path string, opts ...workspace.Option) (*workspace.Workspace, error) {
	r := roster.New(a.config.RosterRules())
	if path != "" {
		f, err := roster.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := f.Apply(r); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		a.log.Debug().Str("path", path).Int("buyers", len(r.Buyers())).Int("sellers", len(r.Sellers())).Msg("event file loaded")
	}

	opts = append([]workspace.Option{workspace.WithLogger(a.log)}, opts...)
	return workspace.New(a.config.Settings(), r, opts...)
}

// seeded returns the shuffler option for --seed. Zero keeps the random default.
func seeded(seed uint64) []workspace.Option {
	if seed == 0 {
		return nil
	}
	return []workspace.Option{workspace.WithShuffler(rand.New(rand.NewPCG(seed, seed)))}
}
