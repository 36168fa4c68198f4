package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/osse101/MineIdler_Go/internal/sse"
)

type MineCommand struct{}

func (c *MineCommand) Name() string {
	return "mine"
}

func (c *MineCommand) Description() string {
	return "Start a mining session on a running server and print its stream"
}

func (c *MineCommand) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	player := fs.Int64("player", 1, "player id sent as X-Player-ID")
	location := fs.String("location", "starter", "mine location")
	items := fs.Int("items", 5, "stop after this many items (0 streams until the server ends it)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	apiURL := getEnv(envAPIURL, defaultAPIURL)
	apiKey := getEnv(envAPIKey, "")

	PrintHeader(fmt.Sprintf("Mining %s as player %d", *location, *player))

	body, err := json.Marshal(map[string]string{"location": *location})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/api/v1/mining/start", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("X-Player-ID", strconv.FormatInt(*player, 10))
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	mined := 0
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		data, ok := strings.CutPrefix(scanner.Text(), "data: ")
		if !ok {
			continue
		}

		var event struct {
			Type    string          `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			PrintWarning("Unreadable event: %s", data)
			continue
		}

		switch event.Type {
		case sse.EventTypeSession:
			var session sse.SessionPayload
			_ = json.Unmarshal(event.Payload, &session)
			PrintInfo("Session %s at %s", session.Token, session.Location)
		case sse.EventTypeTick:
			var tick sse.TickPayload
			if err := json.Unmarshal(event.Payload, &tick); err != nil || tick.Item == nil {
				continue
			}
			mined++
			PrintSuccess("item %d quality %.3f value %.2f", tick.Item.ItemID, tick.Item.Quality, tick.Item.Value)
			if *items > 0 && mined >= *items {
				PrintInfo("Mined %d items, disconnecting", mined)
				return nil
			}
		case sse.EventTypeError:
			var streamErr sse.ErrorPayload
			_ = json.Unmarshal(event.Payload, &streamErr)
			PrintError("Session ended: %s (%s)", streamErr.Error, streamErr.Code)
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			PrintInfo("Interrupted after %d items", mined)
			return nil
		}
		return fmt.Errorf("stream failed: %w", err)
	}
	PrintInfo("Stream closed after %d items", mined)
	return nil
}
