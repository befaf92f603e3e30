// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// Watcher reloads a configuration file whenever it changes.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching the given configuration file. The
// directory of the file is watched, so that files replaced by editors
// are still seen.
func NewWatcher(path string) (*Watcher, error) {
	fn, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	fn, err = filepath.Abs(fn)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if _, err := FormatFor(fn); err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(fn)); err != nil {
		w.Close()
		return nil, fmt.Errorf("config: watching %s: %w", fn, err)
	}
	return &Watcher{path: fn, watcher: w}, nil
}

// Path returns the absolute path of the watched file.
func (cw *Watcher) Path() string {
	return cw.path
}

// Run calls fn with the newly loaded configuration, or the error
// loading it, each time the file is written or replaced. It returns
// when the context is done or the watcher is closed.
func (cw *Watcher) Run(ctx context.Context, fn func(c *Config, err error)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			slog.Info("configuration changed", "path", cw.path, "op", event.Op.String())
			fn(Open(cw.path))
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("configuration watcher", "path", cw.path, "err", err)
		}
	}
}

// Close stops watching.
func (cw *Watcher) Close() error {
	return cw.watcher.Close()
}

// Watch runs a [Watcher] on the given file until the context is done.
func Watch(ctx context.Context, path string, fn func(c *Config, err error)) error {
	cw, err := NewWatcher(path)
	if err != nil {
		return err
	}
	defer cw.Close()
	return cw.Run(ctx, fn)
}
