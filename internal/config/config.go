package config

import (
	"bytes"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Pipeline describes named CSV sources, a list of steps over them and which
// step (or source) is the result.
//
//	sources:
//	  prices: {path: prices.csv, index: date}
//	steps:
//	  - name: weekly
//	    op: resample
//	    input: prices
//	    period: 1 week
//	    reducer: mean
//	output: weekly
type Pipeline struct {
	Sources map[string]Source `yaml:"sources"`
	Steps   []Step            `yaml:"steps"`
	Output  string            `yaml:"output"`
}

// Source is a CSV file and the name of its index column.
// An empty Index lets the loader pick one.
type Source struct {
	Path  string `yaml:"path"`
	Index string `yaml:"index"`
}

// Step is one operation. Which fields apply depends on Op.
type Step struct {
	Name   string   `yaml:"name"`
	Op     string   `yaml:"op"`
	Input  string   `yaml:"input"`
	Inputs []string `yaml:"inputs"`

	// lag, lead, diff, pct_change
	K int `yaml:"k"`

	// join
	How string `yaml:"how"`

	// vcat
	Merge string `yaml:"merge"`

	// resample, rolling
	Period  string `yaml:"period"`
	Reducer string `yaml:"reducer"`
	At      string `yaml:"at"`
	Column  string `yaml:"column"`
	Window  int    `yaml:"window"`

	// select
	Rows    *RowSpec `yaml:"rows"`
	Columns []string `yaml:"columns"`

	// between, rename
	From string `yaml:"from"`
	To   string `yaml:"to"`

	// head, tail
	N int `yaml:"n"`
}

// RowSpec selects rows in a select step. Exactly one form should be set:
// a half-open position span, a list of positions, a date, or a calendar period.
type RowSpec struct {
	Start     *int   `yaml:"start"`
	End       *int   `yaml:"end"`
	Positions []int  `yaml:"positions"`
	Date      string `yaml:"date"`
	Year      int    `yaml:"year"`
	Quarter   int    `yaml:"quarter"`
	Month     int    `yaml:"month"`
}

// Ops lists the supported step operations.
var Ops = map[string]bool{
	"join": true, "vcat": true,
	"lag": true, "lead": true, "diff": true, "pct_change": true,
	"resample": true, "rolling": true,
	"select": true, "between": true, "head": true, "tail": true, "rename": true,
}

// Load reads and validates a pipeline file.
func Load(path string) (*Pipeline, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline: %w", err)
	}
	p, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a pipeline document, rejecting unknown fields, and validates it.
func Parse(raw []byte) (*Pipeline, error) {
	var p Pipeline
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode pipeline: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks names and references. It reports every problem found.
func (p *Pipeline) Validate() error {
	var errs error
	if len(p.Sources) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("at least one source is required"))
	}
	for name, src := range p.Sources {
		if src.Path == "" {
			errs = multierr.Append(errs, fmt.Errorf("source %q: path is required", name))
		}
	}

	defined := make(map[string]bool, len(p.Sources)+len(p.Steps))
	for name := range p.Sources {
		defined[name] = true
	}
	for i, s := range p.Steps {
		label := fmt.Sprintf("step %d (%s)", i+1, s.Name)
		if s.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("%s: name is required", label))
		} else if defined[s.Name] {
			errs = multierr.Append(errs, fmt.Errorf("%s: name already defined", label))
		}
		if !Ops[s.Op] {
			errs = multierr.Append(errs, fmt.Errorf("%s: unknown op %q", label, s.Op))
		}
		inputs := s.InputNames()
		if len(inputs) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("%s: no input", label))
		}
		// Inputs must be defined above the step.
		for _, in := range inputs {
			if !defined[in] {
				errs = multierr.Append(errs, fmt.Errorf("%s: input %q is not defined before this step", label, in))
			}
		}
		defined[s.Name] = true
	}

	if p.Output == "" {
		errs = multierr.Append(errs, fmt.Errorf("output is required"))
	} else if !defined[p.Output] {
		errs = multierr.Append(errs, fmt.Errorf("output %q is not defined", p.Output))
	}
	return errs
}

// InputNames returns Input followed by Inputs.
func (s Step) InputNames() []string {
	var names []string
	if s.Input != "" {
		names = append(names, s.Input)
	}
	return append(names, s.Inputs...)
}
