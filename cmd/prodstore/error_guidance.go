package main

import (
	"context"
	"errors"
	"net"

	"prodstore/internal/api"
)

func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}

	lines := []string{err.Error()}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case "unauthorized", "forbidden":
			lines = append(lines, "hint: log in with: prodstore login -u <username>, or set PRODSTORE_API_TOKEN.")
		case "resource_exhausted":
			lines = append(lines, "hint: retry shortly or reduce concurrent heavy requests (import/upload).")
		}
		if apiErr.Code == "" {
			lines = append(lines, "hint: verify PRODSTORE_API_URL points to a prodstore server.")
		}
		if apiErr.Status >= 500 {
			lines = append(lines, "hint: server returned an internal error; check server logs for details.")
		}
		return uniqueLines(lines)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		lines = append(lines, "hint: request timed out; check server health or increase PRODSTORE_HTTP_TIMEOUT.")
		return uniqueLines(lines)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		lines = append(lines,
			"hint: ensure a prodstore server is running at PRODSTORE_API_URL.",
			"hint: start a local server manually with: prodstore srv",
			"hint: you can increase PRODSTORE_HTTP_TIMEOUT for slower environments.",
		)
		return uniqueLines(lines)
	}

	return uniqueLines(lines)
}

func uniqueLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
