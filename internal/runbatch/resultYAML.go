// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"errors"
	"io"
	"time"

	"github.com/goccy/go-yaml"
)

var (
	// ErrWriteYAML is returned when writing the results as YAML fails.
	ErrWriteYAML = errors.New("failed to write YAML results")
)

type yamlReport struct {
	RunID      string       `yaml:"run_id,omitempty"`
	Succeeded  bool         `yaml:"succeeded"`
	StartedAt  string       `yaml:"started_at"`
	FinishedAt string       `yaml:"finished_at"`
	Elapsed    string       `yaml:"elapsed"`
	Passed     int          `yaml:"passed"`
	Failed     int          `yaml:"failed"`
	Skipped    int          `yaml:"skipped"`
	Results    []yamlResult `yaml:"results"`
}

type yamlResult struct {
	Path       string          `yaml:"path"`
	Status     string          `yaml:"status"`
	Succeeded  bool            `yaml:"succeeded"`
	Elapsed    string          `yaml:"elapsed"`
	Error      string          `yaml:"error,omitempty"`
	Output     string          `yaml:"output,omitempty"`
	Procedures []yamlProcedure `yaml:"procedures,omitempty"`
}

type yamlProcedure struct {
	Name      string `yaml:"name"`
	Succeeded bool   `yaml:"succeeded"`
	Error     string `yaml:"error,omitempty"`
}

// WriteYAML writes the summary as a YAML document.
// Captured output is left out when opts.HideInfo is set.
func (s *Summary) WriteYAML(w io.Writer, opts ReportOptions) error {
	doc := yamlReport{
		RunID:      s.RunID,
		Succeeded:  s.Succeeded,
		StartedAt:  s.StartedAt.Format(time.RFC3339),
		FinishedAt: s.FinishedAt.Format(time.RFC3339),
		Elapsed:    s.Elapsed().String(),
		Passed:     s.Passed,
		Failed:     s.Failed,
		Skipped:    s.Skipped,
		Results:    make([]yamlResult, 0, len(s.Results)),
	}

	for _, r := range s.Results {
		if r == nil {
			continue
		}

		yr := yamlResult{
			Path:      r.Target.Path,
			Status:    r.Status.String(),
			Succeeded: r.Succeeded,
			Elapsed:   r.Elapsed().String(),
		}

		if r.Error != nil {
			yr.Error = r.Error.Error()
		}

		if !opts.HideInfo {
			yr.Output = r.Output
		}

		for _, o := range r.Outcomes {
			yp := yamlProcedure{Name: o.Procedure, Succeeded: o.Succeeded}
			if o.Err != nil {
				yp.Error = o.Err.Error()
			}

			yr.Procedures = append(yr.Procedures, yp)
		}

		doc.Results = append(doc.Results, yr)
	}

	b, err := yaml.Marshal(doc)
	if err != nil {
		return errors.Join(ErrWriteYAML, err)
	}

	if _, err := w.Write(b); err != nil {
		return errors.Join(ErrWriteYAML, err)
	}

	return nil
}
