// Package remote implements the backend.Backend interface against a
// traverse session server over HTTP+JSON. Each operation builds a fresh
// request; no mutable session state is shared between concurrent calls.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/nvara/traverse/internal/domain"
)

const apiPrefix = "/api/v1"

// Client speaks the session protocol to one endpoint. Timeouts are per-call
// through the request context, never a client-wide ceiling.
type Client struct {
	baseURL    string
	httpClient *http.Client
	username   string
	credential string
}

// NewClient creates a session client for the given endpoint profile
func NewClient(profile domain.EndpointProfile) *Client {
	return &Client{
		baseURL:    "http://" + profile.Address(),
		username:   profile.Username,
		credential: profile.Credential,
		httpClient: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:    100,
				IdleConnTimeout: 90 * time.Second,
			},
		},
	}
}

// wireEntry is one listing row as the session server reports it
type wireEntry struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	IsDir   bool      `json:"is_dir"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mtime"`
}

type listResponse struct {
	Entries []wireEntry `json:"entries"`
}

type createRequest struct {
	Parent string `json:"parent"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
}

type renameRequest struct {
	Path    string `json:"path"`
	NewName string `json:"new_name"`
}

type pathRequest struct {
	Path string `json:"path"`
}

type transferRequest struct {
	Src string `json:"src"`
	Dst string `json:"dst"`
}

// ListDir fetches the listing for a remote-relative directory path
func (c *Client) ListDir(ctx context.Context, path string) ([]wireEntry, error) {
	endpoint := c.baseURL + apiPrefix + "/list?path=" + url.QueryEscape(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProtocol, err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result listResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decoding listing: %v", domain.ErrProtocol, err)
	}

	return result.Entries, nil
}

// Create makes a new file or directory under parent
func (c *Client) Create(ctx context.Context, parent, name, kind string) error {
	return c.post(ctx, "/create", createRequest{Parent: parent, Name: name, Kind: kind})
}

// Rename changes the base name of a remote entry
func (c *Client) Rename(ctx context.Context, path, newName string) error {
	return c.post(ctx, "/rename", renameRequest{Path: path, NewName: newName})
}

// Delete removes a remote entry
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.post(ctx, "/delete", pathRequest{Path: path})
}

// Copy duplicates src to dst on the server side
func (c *Client) Copy(ctx context.Context, src, dst string) error {
	return c.post(ctx, "/copy", transferRequest{Src: src, Dst: dst})
}

// Move relocates src to dst on the server side
func (c *Client) Move(ctx context.Context, src, dst string) error {
	return c.post(ctx, "/move", transferRequest{Src: src, Dst: dst})
}

// Fetch streams the content of a remote file into w
func (c *Client) Fetch(ctx context.Context, path string, w io.Writer) error {
	endpoint := c.baseURL + apiPrefix + "/file?path=" + url.QueryEscape(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProtocol, err)
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("%w: reading file body: %v", domain.ErrProtocol, err)
	}
	return nil
}

// post sends a JSON mutation and maps the response status
func (c *Client) post(ctx context.Context, action string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProtocol, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiPrefix+action, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProtocol, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// do executes the request with credentials applied and maps transport and
// status failures to domain errors. On a non-success status the body is
// drained and closed; on success the caller owns the body.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(c.username, c.credential)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTimeout, req.URL.Path)
		}
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrProtocol, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", domain.ErrPermissionDenied, req.URL.Path)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, req.URL.Path)
	case http.StatusConflict:
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyExists, req.URL.Path)
	default:
		return nil, fmt.Errorf("%w: server returned %d", domain.ErrProtocol, resp.StatusCode)
	}
}
