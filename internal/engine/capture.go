// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"bytes"
	"sync"
)

const truncatedMarker = "\n[output truncated]\n"

// capture collects process output up to a limit. Writes beyond the limit are
// discarded but reported as successful so that the child never sees a broken pipe.
// Stdout and stderr share one capture, so writes are serialised.
type capture struct {
	mu        sync.Mutex
	buf       bytes.Buffer
	limit     int64
	truncated bool
}

func newCapture(limit int64) *capture {
	return &capture{limit: limit}
}

func (c *capture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.limit - int64(c.buf.Len())
	if c.limit <= 0 {
		room = int64(len(p))
	}

	switch {
	case room <= 0:
		c.truncated = len(p) > 0 || c.truncated
	case int64(len(p)) > room:
		c.buf.Write(p[:room])
		c.truncated = true
	default:
		c.buf.Write(p)
	}

	return len(p), nil
}

// String returns the captured text, marked when output was dropped.
func (c *capture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.truncated {
		return c.buf.String() + truncatedMarker
	}

	return c.buf.String()
}

// Truncated reports whether any output was dropped.
func (c *capture) Truncated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.truncated
}
