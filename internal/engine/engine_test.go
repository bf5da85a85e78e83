// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/vbsc/internal/runbatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shellExecutor(t *testing.T) *ProcessExecutor {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh as the interpreter")
	}

	e, err := New(Config{Interpreter: "/bin/sh", DebugArgs: []string{"-x"}, MaxOutput: DefaultMaxOutput})
	require.NoError(t, err)

	return e
}

func writeScript(t *testing.T, name, body string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	return p
}

func TestExecute_SingleRun(t *testing.T) {
	t.Parallel()

	e := shellExecutor(t)
	script := writeScript(t, "hello.vbs", `echo "hello $1 from $(basename "$(pwd -P)")"`+"\n")

	outcomes, err := e.Execute(context.Background(), runbatch.Invocation{
		Path: script,
		Args: []string{"firefox"},
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	o := outcomes[0]
	assert.Equal(t, "hello.vbs", o.Procedure)
	assert.True(t, o.Succeeded)
	require.NoError(t, o.Err)
	assert.Equal(t, "hello firefox from "+filepath.Base(filepath.Dir(script))+"\n", o.Output)
}

func TestExecute_PerParam(t *testing.T) {
	t.Parallel()

	e := shellExecutor(t)
	script := writeScript(t, "params.vbs", `echo "param=$VBSC_PARAM filter=$VBSC_FILTER"
if [ "$VBSC_PARAM" = "bad" ]; then exit 3; fi
`)

	outcomes, err := e.Execute(context.Background(), runbatch.Invocation{
		Path:   script,
		Params: []string{"good", "bad"},
		Filter: regexp.MustCompile("^Test"),
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.Equal(t, "params.vbs[good]", outcomes[0].Procedure)
	assert.True(t, outcomes[0].Succeeded)
	assert.Equal(t, "param=good filter=^Test\n", outcomes[0].Output)

	assert.Equal(t, "params.vbs[bad]", outcomes[1].Procedure)
	assert.False(t, outcomes[1].Succeeded)
	require.ErrorIs(t, outcomes[1].Err, ErrScriptFailed)
	assert.Contains(t, outcomes[1].Err.Error(), "exit status 3")
}

func TestExecute_StderrCaptured(t *testing.T) {
	t.Parallel()

	e := shellExecutor(t)
	script := writeScript(t, "err.vbs", "echo oops 1>&2\nexit 1\n")

	outcomes, err := e.Execute(context.Background(), runbatch.Invocation{Path: script})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Succeeded)
	assert.Equal(t, "oops\n", outcomes[0].Output)
}

func TestExecute_DebugArgs(t *testing.T) {
	t.Parallel()

	e := shellExecutor(t)
	e.stdin = strings.NewReader("")
	script := writeScript(t, "dbg.vbs", "true\n")

	outcomes, err := e.Execute(context.Background(), runbatch.Invocation{Path: script, Debug: true})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Contains(t, outcomes[0].Output, "+ true", "sh -x traces commands to stderr")
}

func TestExecute_InterpreterMissing(t *testing.T) {
	t.Parallel()

	e, err := New(Config{Interpreter: filepath.Join(t.TempDir(), "no-such-interpreter")})
	require.NoError(t, err)

	_, err = e.Execute(context.Background(), runbatch.Invocation{Path: "x.vbs"})
	require.ErrorIs(t, err, ErrStartInterpreter)
}

func TestExecute_OutputLimit(t *testing.T) {
	t.Parallel()

	e := shellExecutor(t)
	e.cfg.MaxOutput = 4
	script := writeScript(t, "loud.vbs", "echo 0123456789\n")

	outcomes, err := e.Execute(context.Background(), runbatch.Invocation{Path: script})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Succeeded)
	assert.Equal(t, "0123"+truncatedMarker, outcomes[0].Output)
}

func TestNew_RequiresInterpreter(t *testing.T) {
	t.Parallel()

	_, err := New(Config{})
	require.ErrorIs(t, err, ErrNoInterpreter)
}

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		command string
		want    Config
		wantErr error
	}{
		{
			name:    "default host with extra switch",
			command: "cscript //NoLogo //B",
			want: Config{
				Interpreter: "cscript",
				Args:        []string{"//NoLogo", "//B"},
				DebugArgs:   []string{"//X"},
				MaxOutput:   DefaultMaxOutput,
			},
		},
		{
			name:    "executable name",
			command: "CScript.exe",
			want: Config{
				Interpreter: "CScript.exe",
				Args:        []string{},
				DebugArgs:   []string{"//X"},
				MaxOutput:   DefaultMaxOutput,
			},
		},
		{
			name:    "other interpreter",
			command: "wscript //B",
			want: Config{
				Interpreter: "wscript",
				Args:        []string{"//B"},
				MaxOutput:   DefaultMaxOutput,
			},
		},
		{
			name:    "blank",
			command: "   ",
			wantErr: ErrNoInterpreter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseCommand(tt.command)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
