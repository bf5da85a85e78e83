// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"time"

	"github.com/matt-FFFFFF/vbsc/internal/progress"
)

func reportStarted(reporter progress.Reporter, t Target, index, total int, at time.Time) {
	reporter.Report(progress.Event{
		Target:    t.Path,
		Index:     index,
		Total:     total,
		Type:      progress.EventStarted,
		Message:   "Starting script",
		Timestamp: at,
	})
}

func reportFinished(reporter progress.Reporter, res *Result, index, total int, at time.Time) {
	event := progress.Event{
		Target:    res.Target.Path,
		Index:     index,
		Total:     total,
		Timestamp: at,
		Data: progress.EventData{
			Elapsed: res.Elapsed(),
			Error:   res.Error,
		},
	}

	switch res.Status {
	case ResultStatusSuccess:
		event.Type = progress.EventCompleted
		event.Message = "Script completed successfully"
	case ResultStatusSkipped:
		event.Type = progress.EventSkipped
		event.Message = "Script skipped"
	default:
		event.Type = progress.EventFailed
		event.Message = "Script failed"
	}

	reporter.Report(event)
}
