// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that runs
// multiple workers side by side until their context is cancelled.
package workers

import (
	"context"
	"time"
)

// Worker is the interface that must be implemented by any background worker.
//
// Run must block until ctx is cancelled and return promptly afterwards.
//
// Example implementation:
//
//	type MyWorker struct{ interval time.Duration }
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    ticker := time.NewTicker(w.interval)
//	    defer ticker.Stop()
//	    for {
//	        select {
//	        case <-ctx.Done():
//	            return
//	        case <-ticker.C:
//	            // periodic processing
//	        }
//	    }
//	}
type Worker interface {
	Run(ctx context.Context)
}

// ResetTokenStore clears password reset tokens whose expiry is not after
// now and reports how many were cleared.
type ResetTokenStore interface {
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}
