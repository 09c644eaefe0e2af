// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/exec"
	"runtime"
	"strconv"
	"time"
)

// ErrNoFreePort is returned when every probed port is taken.
var ErrNoFreePort = errors.New("no free port")

// FindFreePort returns the first port in [start, start+attempts) that host can
// bind. The probe listener is closed before returning, so a racing process may
// still take the port; the caller's ListenAndServe reports that case.
func FindFreePort(host string, start, attempts int) (int, error) {
	for port := start; port < start+attempts && port <= 65535; port++ {
		ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
		if err != nil {
			continue
		}
		_ = ln.Close()
		return port, nil
	}
	return 0, fmt.Errorf("%w in range %d-%d on %s", ErrNoFreePort, start, start+attempts-1, host)
}

// WaitForPort polls addr until it accepts a TCP connection or ctx ends.
func WaitForPort(ctx context.Context, addr string) error {
	var d net.Dialer
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err == nil {
			return conn.Close()
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for %s: %w", addr, ctx.Err())
		case <-ticker.C:
		}
	}
}

// browserCommand returns the platform command that opens url.
var browserCommand = func(url string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return exec.Command("xdg-open", url)
	}
}

// OpenBrowser starts the platform browser on url without waiting for it.
func OpenBrowser(url string) error {
	cmd := browserCommand(url)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
