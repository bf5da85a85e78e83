// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/vbsc/internal/ctxlog"
)

// Watch reads sigCh until it is closed or a second signal arrives.
// The first signal calls cancel. The second calls force and returns.
func Watch(ctx context.Context, sigCh <-chan os.Signal, cancel context.CancelFunc, force func(os.Signal)) {
	received := 0

	for sig := range sigCh {
		received++

		if received == 1 {
			ctxlog.Warn(ctx, "interrupt received, waiting for running scripts; repeat to abort", "signal", sig.String())
			cancel()

			continue
		}

		ctxlog.Error(ctx, "second interrupt received, aborting", "signal", sig.String())

		if force != nil {
			force(sig)
		}

		return
	}
}
