// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"bytes"
	"errors"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	ok := okResult("a.vbs")
	ok.Output = "hello"

	bad := failedResult("b.vbs", errors.New("boom"))
	bad.Outcomes = []Outcome{{Procedure: "TestTwo", Succeeded: false, Err: errors.New("boom")}}

	s := Summarize(Results{ok, bad}, summaryStart, summaryEnd)
	s.RunID = "0190c4a2-0000-7000-8000-000000000001"

	buf := &bytes.Buffer{}
	require.NoError(t, s.WriteYAML(buf, ReportOptions{}))

	var doc yamlReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, s.RunID, doc.RunID)
	assert.False(t, doc.Succeeded)
	assert.Equal(t, 1, doc.Passed)
	assert.Equal(t, 1, doc.Failed)
	assert.Contains(t, buf.String(), "2025-03-04T10:00:00Z")
	require.Len(t, doc.Results, 2)
	assert.Equal(t, "a.vbs", doc.Results[0].Path)
	assert.Equal(t, "success", doc.Results[0].Status)
	assert.Equal(t, "hello", doc.Results[0].Output)
	assert.Equal(t, "error", doc.Results[1].Status)
	assert.Equal(t, "boom", doc.Results[1].Error)
	require.Len(t, doc.Results[1].Procedures, 1)
	assert.Equal(t, "TestTwo", doc.Results[1].Procedures[0].Name)
}

func TestWriteYAMLHideInfo(t *testing.T) {
	t.Parallel()

	ok := okResult("a.vbs")
	ok.Output = "secret"

	buf := &bytes.Buffer{}
	require.NoError(t, Summarize(Results{ok}, summaryStart, summaryEnd).WriteYAML(buf, ReportOptions{HideInfo: true}))

	assert.NotContains(t, buf.String(), "secret")
	assert.NotContains(t, buf.String(), "run_id")
	assert.Contains(t, buf.String(), "path: a.vbs")
}
