// Package registry provides a client for Confluent-style schema
// registries. It resolves the subjects referenced by REGISTRY data
// source schemas into raw schema text.
package registry

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bawdo/streamsql/ast"
)

// Client communicates with a schema registry over its REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a registry Client for the given base URL.
//
// SECURITY: The baseURL is used as-is for HTTP requests. In production,
// use HTTPS to prevent schema definitions from being transmitted in
// plain text.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Schema is one schema version registered under a subject.
type Schema struct {
	Subject string `json:"subject"`
	ID      int    `json:"id"`
	Version int    `json:"version"`
	Schema  string `json:"schema"`
}

// APIError is the registry's structured error payload.
type APIError struct {
	Code    int    `json:"error_code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("registry: %s (error code %d)", e.Message, e.Code)
}

// getJSON sends a GET request to the given path and decodes the
// response into out. Non-200 responses carrying the registry's error
// payload are returned as *APIError.
func (c *Client) getJSON(path string, out any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr APIError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return &apiErr
		}
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("registry: failed to parse response: %w", err)
	}
	return nil
}

// Subjects lists the subjects registered with the registry.
func (c *Client) Subjects() ([]string, error) {
	var subjects []string
	if err := c.getJSON("/subjects", &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// Versions lists the version numbers registered under a subject.
func (c *Client) Versions(subject string) ([]int, error) {
	var versions []int
	if err := c.getJSON("/subjects/"+url.PathEscape(subject)+"/versions", &versions); err != nil {
		return nil, err
	}
	return versions, nil
}

// Latest fetches the newest schema version registered under a subject.
func (c *Client) Latest(subject string) (*Schema, error) {
	var s Schema
	if err := c.getJSON("/subjects/"+url.PathEscape(subject)+"/versions/latest", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Version fetches a specific schema version registered under a subject.
func (c *Client) Version(subject string, version int) (*Schema, error) {
	var s Schema
	if err := c.getJSON("/subjects/"+url.PathEscape(subject)+"/versions/"+strconv.Itoa(version), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Resolve fetches the latest schema registered under a subject and
// returns it as a raw schema node, so a statement referencing the
// registry can be rewritten with the schema text inlined.
func (c *Client) Resolve(subject string) (*ast.RawSchema, error) {
	s, err := c.Latest(subject)
	if err != nil {
		return nil, err
	}
	return ast.NewRawSchema(s.Schema), nil
}
