// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsoleListener(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 1, 1, 9, 30, 15, 0, time.UTC)

	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{
			name:  "started",
			event: Event{Target: "a.vbs", Index: 0, Total: 2, Type: EventStarted, Timestamp: at},
			want:  "[1/2] Starting a.vbs at 09:30:15\n",
		},
		{
			name: "completed",
			event: Event{Target: "a.vbs", Index: 0, Total: 2, Type: EventCompleted,
				Data: EventData{Elapsed: 1234567 * time.Microsecond}},
			want: "[1/2] ✓ a.vbs (1.23s)\n",
		},
		{
			name: "failed",
			event: Event{Target: "b.vbs", Index: 1, Total: 2, Type: EventFailed,
				Data: EventData{Elapsed: 1500 * time.Microsecond, Error: errors.New("first\nsecond")}},
			want: "[2/2] ✗ b.vbs (2ms): first ...\n",
		},
		{
			name:  "skipped",
			event: Event{Target: "c.vbs", Index: 2, Total: 3, Type: EventSkipped},
			want:  "[3/3] ~ c.vbs skipped\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			NewConsoleListener(&buf, false).OnEvent(tt.event)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestConsoleListener_Colour(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	NewConsoleListener(&buf, true).OnEvent(Event{Target: "a.vbs", Total: 1, Type: EventCompleted})
	assert.Equal(t, "[1/1] \033[32m✓\033[0m a.vbs (0s)\n", buf.String())
}
