package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/mrjoshuak/htmltext"
	"github.com/mrjoshuak/htmltext/types"
)

// FileConfig is the YAML configuration file schema. Unset fields leave the
// library defaults alone.
type FileConfig struct {
	Save               []string      `yaml:"save"`
	Remove             []string      `yaml:"remove"`
	RemoveSelectors    []string      `yaml:"removeSelectors"`
	RemoveXPath        []string      `yaml:"removeXPath"`
	LinkTag            string        `yaml:"linkTag"`
	Punctuation        string        `yaml:"punctuation"`
	MinWeight          *float64      `yaml:"minWeight"`
	PreserveAttributes bool          `yaml:"preserveAttributes"`
	Tokenizer          string        `yaml:"tokenizer"`
	NormalizeUnicode   bool          `yaml:"normalizeUnicode"`
	MaxBufferSize      *int          `yaml:"maxBufferSize"`
	Timeout            time.Duration `yaml:"timeout"`
}

// LoadConfigFile reads and decodes a YAML config file. Unknown keys are an
// error. An empty file yields the zero FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	f, err := os.Open(path)
	if err != nil {
		return fc, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fc, fmt.Errorf("parse yaml %s: %w", path, err)
	}
	return fc, nil
}

// Apply overlays the values set in the file onto opts.
func (fc FileConfig) Apply(opts *htmltext.ExtractionOptions) error {
	if fc.Save != nil {
		opts.TagsToSave = fc.Save
	}
	if fc.Remove != nil {
		opts.TagsToRemove = fc.Remove
	}
	if fc.RemoveSelectors != nil {
		opts.RemoveSelectors = fc.RemoveSelectors
	}
	if fc.RemoveXPath != nil {
		opts.RemoveXPath = fc.RemoveXPath
	}
	if fc.LinkTag != "" {
		opts.LinkTag = fc.LinkTag
	}
	if fc.Punctuation != "" {
		opts.Punctuation = fc.Punctuation
	}
	if fc.MinWeight != nil {
		opts.MinAllowedWeight = *fc.MinWeight
	}
	if fc.PreserveAttributes {
		opts.PreserveAttributes = true
	}
	if fc.Tokenizer != "" {
		mode, err := types.ParseTokenizerMode(fc.Tokenizer)
		if err != nil {
			return err
		}
		opts.Tokenizer = mode
	}
	if fc.NormalizeUnicode {
		opts.NormalizeUnicode = true
	}
	if fc.MaxBufferSize != nil {
		opts.MaxBufferSize = *fc.MaxBufferSize
	}
	if fc.Timeout != 0 {
		opts.Timeout = fc.Timeout
	}
	return nil
}
