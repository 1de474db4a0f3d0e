package player

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// SourceAuto lets the backend pick whichever lyrics provider has the track.
const SourceAuto = "auto"

// APIError wraps a failure talking to the playback backend with the
// operation that failed.
type APIError struct {
	Op      string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Op + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Client talks to the remote playback-state endpoint of the bot backend.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the given backend base URL. No request
// timeout is set: a hung fetch only delays one poll cycle, and the next
// scheduled tick issues a fresh request regardless.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

// FetchSnapshot issues one GET /guild/{id}/lyrics request. A source
// preference other than "auto" is passed through as ?source=.
//
// A snapshot whose body carries an error string is NOT a fetch failure;
// it decodes fine and the session layer decides how to apply it.
func (c *Client) FetchSnapshot(ctx context.Context, guildID, source string) (*Snapshot, error) {
	endpoint := fmt.Sprintf("%s/guild/%s/lyrics", c.BaseURL, url.PathEscape(guildID))
	if source != "" && source != SourceAuto {
		endpoint += "?source=" + url.QueryEscape(source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &APIError{Op: "fetchSnapshot", Message: "building request", Err: err}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &APIError{Op: "fetchSnapshot", Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	var snap Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, &APIError{Op: "fetchSnapshot", Message: "decoding response", Err: err}
	}

	return &snap, nil
}

// ControlRequest is the body of POST /guild/{id}/control.
type ControlRequest struct {
	Action string `json:"action"`
}

// Control dispatches a transport action (pause/resume/skip/stop) to the
// backend. The session layer always follows a control with an immediate
// re-poll, so this call does not try to guess the resulting state.
func (c *Client) Control(ctx context.Context, guildID string, action Action) error {
	body, err := json.Marshal(ControlRequest{Action: string(action)})
	if err != nil {
		return &APIError{Op: "control", Message: "encoding request", Err: err}
	}

	endpoint := fmt.Sprintf("%s/guild/%s/control", c.BaseURL, url.PathEscape(guildID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return &APIError{Op: "control", Message: "building request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &APIError{Op: "control", Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &APIError{Op: "control", Message: fmt.Sprintf("backend returned %s", resp.Status)}
	}
	return nil
}
