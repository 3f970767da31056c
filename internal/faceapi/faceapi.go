package faceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the remote face-landmark detection service.
type Client struct {
	parsedURL  *url.URL
	key        string
	httpClient *http.Client
}

// NewClient creates a detection client. The key is sent as the
// subscription header with every request; timeout bounds each call so an
// unresponsive service cannot hang a run.
func NewClient(rawURL, key string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid face API URL: %w", err)
	}
	return &Client{
		parsedURL:  parsed,
		key:        key,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// resolveURL builds a full URL from the base API URL and the given path
// segments. If the last segment contains a query string it is split so
// JoinPath only receives the path portion and the query is appended.
func (c *Client) resolveURL(pathSegments ...string) string {
	if len(pathSegments) == 0 {
		return c.parsedURL.String()
	}
	last := pathSegments[len(pathSegments)-1]
	if pathPart, query, ok := strings.Cut(last, "?"); ok {
		pathSegments[len(pathSegments)-1] = pathPart
		result := c.parsedURL.JoinPath(pathSegments...)
		result.RawQuery = query
		return result.String()
	}
	return c.parsedURL.JoinPath(pathSegments...).String()
}

// Detect asks the service to find faces in the image behind imageURL.
// The service fetches the image itself; only the URL crosses the wire.
// An empty slice is a valid response (no face in the picture).
func (c *Client) Detect(ctx context.Context, imageURL string) ([]Face, error) {
	inputBody, err := json.Marshal(map[string]string{"url": imageURL})
	if err != nil {
		return nil, fmt.Errorf("could not marshal input: %w", err)
	}

	endpoint := c.resolveURL("detect?returnFaceId=true&returnFaceLandmarks=true")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(inputBody))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detect request failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	var faces []Face
	if err := json.Unmarshal(body, &faces); err != nil {
		return nil, fmt.Errorf("could not unmarshal response: %w", err)
	}

	return faces, nil
}

// readErrorBody reads the response body for error messages.
// Returns a placeholder if reading fails (we're already in an error path).
func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(r)
	if err != nil {
		return "(could not read error body)"
	}
	return string(body)
}
