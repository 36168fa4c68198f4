package main

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	healthTimeout       = 5 * time.Second
	healthSlowThreshold = time.Second
)

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check liveness and readiness of a running server"
}

func (c *HealthCheckCommand) Run(ctx context.Context, args []string) error {
	apiURL := getEnv(envAPIURL, defaultAPIURL)
	if len(args) > 0 {
		apiURL = args[0]
	}

	PrintHeader(fmt.Sprintf("Health Check (%s)", apiURL))

	client := &http.Client{Timeout: healthTimeout}
	for _, path := range []string{"/healthz", "/readyz"} {
		start := time.Now()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+path, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			PrintError("%s failed: %v", path, err)
			return err
		}
		resp.Body.Close()
		duration := time.Since(start)

		if resp.StatusCode != http.StatusOK {
			PrintError("%s returned %s", path, resp.Status)
			return fmt.Errorf("%s: unexpected status %s", path, resp.Status)
		}
		if duration > healthSlowThreshold {
			PrintWarning("%s slow response time (%v)", path, duration)
		} else {
			PrintSuccess("%s passed (response time: %v)", path, duration)
		}
	}
	return nil
}
