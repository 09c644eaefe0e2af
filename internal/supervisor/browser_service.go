// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package supervisor

import (
	"context"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/clickscope/internal/logging"
)

// BrowserService opens the dashboard URL once the server accepts connections,
// then leaves the tree. Failures are logged, never retried.
type BrowserService struct {
	url     string
	addr    string
	timeout time.Duration
	wait    func(ctx context.Context, addr string) error
	open    func(url string) error
}

// NewBrowserService creates the service. wait blocks until addr accepts
// connections and open launches the browser.
func NewBrowserService(url, addr string, timeout time.Duration, wait func(context.Context, string) error, open func(string) error) *BrowserService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &BrowserService{url: url, addr: addr, timeout: timeout, wait: wait, open: open}
}

// Serve implements suture.Service.
func (b *BrowserService) Serve(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	if err := b.wait(waitCtx, b.addr); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logging.Warn().Err(err).Str("url", b.url).Msg("Dashboard did not start listening; not opening browser")
		return suture.ErrDoNotRestart
	}

	if err := b.open(b.url); err != nil {
		logging.Warn().Err(err).Str("url", b.url).Msg("Failed to open browser")
		return suture.ErrDoNotRestart
	}
	logging.Info().Str("url", b.url).Msg("Opened dashboard in browser")
	return suture.ErrDoNotRestart
}

func (b *BrowserService) String() string {
	return "browser-launcher"
}
