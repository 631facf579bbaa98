package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type statusResponse struct {
	Board       [][]int `json:"board"`
	PlayerColor string  `json:"player_color"`
	Phase       string  `json:"phase"`
	Result      string  `json:"result"`
	Counts      struct {
		Player   int `json:"player"`
		Opponent int `json:"opponent"`
		Blank    int `json:"blank"`
	} `json:"counts"`
}

type actionResponse struct {
	Changed bool           `json:"changed"`
	Status  statusResponse `json:"status"`
}

// Tally counts results from the player strategy's side.
type Tally struct {
	Wins   int
	Losses int
	Draws  int
	Disks  int
	Played int
}

func (t *Tally) Record(status statusResponse) {
	t.Played++
	t.Disks += status.Counts.Player
	switch status.Result {
	case "win":
		t.Wins++
	case "lose":
		t.Losses++
	default:
		t.Draws++
	}
}

// run configures both seats, plays a.games auto games alternating the
// player's color, and optionally persists the backend's cache at the end.
func (a *arena) run(ctx context.Context) (Tally, error) {
	var tally Tally
	if err := a.waitBackendReady(ctx); err != nil {
		return tally, fmt.Errorf("backend not ready: %w", err)
	}
	if err := a.postJSON("/api/strategy", map[string]string{"side": "player", "name": a.playerStrategy}, nil); err != nil {
		return tally, err
	}
	if err := a.postJSON("/api/strategy", map[string]string{"side": "cpu", "name": a.cpuStrategy}, nil); err != nil {
		return tally, err
	}
	if err := a.postJSON("/api/auto", map[string]bool{"enabled": true}, nil); err != nil {
		return tally, err
	}
	defer func() {
		if err := a.postJSON("/api/auto", map[string]bool{"enabled": false}, nil); err != nil {
			a.logf("failed to disable auto play: %v", err)
		}
	}()

	for i := 0; i < a.games; i++ {
		color := "black"
		if i%2 == 1 {
			color = "white"
		}
		status, err := a.playGame(ctx, color)
		if err != nil {
			return tally, fmt.Errorf("game %d: %w", i+1, err)
		}
		tally.Record(status)
		a.logf("game %d/%d as %s: %s %d-%d", i+1, a.games, color, status.Result, status.Counts.Player, status.Counts.Opponent)
		if a.showBoards {
			fmt.Fprintln(a.out, renderBoard(a.out, status.Board))
		}
	}

	if a.saveCache {
		var saved struct {
			Entries map[string]int `json:"entries"`
		}
		if err := a.postJSON("/api/cache/save", map[string]any{}, &saved); err != nil {
			return tally, fmt.Errorf("save cache: %w", err)
		}
		a.logf("cache saved: %v", saved.Entries)
	}
	return tally, nil
}

// playGame starts a new game and advances it until the backend reports it over.
func (a *arena) playGame(ctx context.Context, color string) (statusResponse, error) {
	if err := a.postJSON("/api/new", map[string]string{"color": color}, nil); err != nil {
		return statusResponse{}, err
	}
	deadline := time.Now().Add(a.gameTimeout)
	for {
		if ctx.Err() != nil {
			return statusResponse{}, ctx.Err()
		}
		var resp actionResponse
		if err := a.postJSON("/api/advance", map[string]any{}, &resp); err != nil {
			return statusResponse{}, err
		}
		if resp.Status.Phase == "game_over" {
			return resp.Status, nil
		}
		if a.gameTimeout > 0 && time.Now().After(deadline) {
			return statusResponse{}, fmt.Errorf("game timeout after %s", a.gameTimeout)
		}
		if !resp.Changed && !sleepWithContext(ctx, a.pollInterval) {
			return statusResponse{}, ctx.Err()
		}
	}
}

func (a *arena) waitBackendReady(ctx context.Context) error {
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := a.ping(); err == nil {
			return nil
		}
		if !sleepWithContext(ctx, 1*time.Second) {
			return ctx.Err()
		}
	}
	return fmt.Errorf("timeout after 60s")
}

func (a *arena) ping() error {
	req, err := http.NewRequest(http.MethodGet, a.baseURL+"/api/ping", nil)
	if err != nil {
		return err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping status %d", resp.StatusCode)
	}
	return nil
}

func (a *arena) postJSON(path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("POST %s -> %d: %s", path, resp.StatusCode, string(respBody))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
