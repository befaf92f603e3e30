// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Decoder is an interface for standard decoder types
type Decoder interface {
	// Decode decodes from io.Reader specified at creation
	Decode(v any) error
}

// DecoderFunc is a function that creates a new Decoder for given reader
type DecoderFunc func(r io.Reader) Decoder

// Encoder is an interface for standard encoder types
type Encoder interface {
	// Encode encodes to io.Writer specified at creation
	Encode(v any) error
}

// EncoderFunc is a function that creates a new Encoder for given writer
type EncoderFunc func(w io.Writer) Encoder

// NewDecoderFunc returns a DecoderFunc for a specific Decoder type
func NewDecoderFunc[T Decoder](f func(r io.Reader) T) DecoderFunc {
	return func(r io.Reader) Decoder { return f(r) }
}

// NewEncoderFunc returns a EncoderFunc for a specific Encoder type
func NewEncoderFunc[T Encoder](f func(w io.Writer) T) EncoderFunc {
	return func(w io.Writer) Encoder { return f(w) }
}

// Format is a configuration file format.
type Format struct {
	Name    string
	Decoder DecoderFunc
	Encoder EncoderFunc
}

// Formats are the supported formats, by file extension.
var Formats = map[string]Format{
	".toml": {"toml", NewDecoderFunc(toml.NewDecoder), NewEncoderFunc(toml.NewEncoder)},
	".yaml": {"yaml", NewDecoderFunc(yaml.NewDecoder), NewEncoderFunc(yaml.NewEncoder)},
	".yml":  {"yaml", NewDecoderFunc(yaml.NewDecoder), NewEncoderFunc(yaml.NewEncoder)},
}

// FormatFor returns the format of the given file name.
func FormatFor(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	f, ok := Formats[ext]
	if !ok {
		return Format{}, fmt.Errorf("config: unsupported file extension %q", ext)
	}
	return f, nil
}

// Open reads the configuration from the given file over the defaults.
// The format is chosen by extension, and a leading ~ in the file name
// is expanded to the home directory.
func Open(filename string) (*Config, error) {
	c := New()
	if err := c.Open(filename); err != nil {
		return nil, err
	}
	return c, nil
}

// Open reads the given file into the configuration. Settings absent
// from the file keep their current values.
func (c *Config) Open(filename string) error {
	fn, err := homedir.Expand(filename)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	f, err := FormatFor(fn)
	if err != nil {
		return err
	}
	fp, err := os.Open(fn)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer fp.Close()
	if err := c.Read(bufio.NewReader(fp), f); err != nil {
		return fmt.Errorf("config: %s: %w", fn, err)
	}
	return c.ExpandPaths()
}

// Read decodes the configuration from the given reader.
// An empty document leaves the configuration unchanged.
func (c *Config) Read(r io.Reader, f Format) error {
	err := f.Decoder(r).Decode(c)
	if err == io.EOF {
		return nil
	}
	return err
}

// Save writes the configuration to the given file, in the format
// chosen by extension.
func (c *Config) Save(filename string) error {
	fn, err := homedir.Expand(filename)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	f, err := FormatFor(fn)
	if err != nil {
		return err
	}
	fp, err := os.Create(fn)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer fp.Close()
	bw := bufio.NewWriter(fp)
	if err := c.Write(bw, f); err != nil {
		return fmt.Errorf("config: %s: %w", fn, err)
	}
	return bw.Flush()
}

// Write encodes the configuration to the given writer.
func (c *Config) Write(w io.Writer, f Format) error {
	enc := f.Encoder(w)
	if err := enc.Encode(c); err != nil {
		return err
	}
	if cl, ok := enc.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}
