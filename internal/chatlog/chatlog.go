// Package chatlog mirrors each thread's exchanges into a JSON blob in
// Supabase Storage. The log is auxiliary: the relational turn table is
// the source of truth, and callers treat every failure here as
// best-effort. The read-modify-write cycle is not safe under concurrent
// writers to the same thread; last write wins.
package chatlog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const bucketName = "chat-logs"

// shared HTTP client for storage calls
var storageHTTPClient = &http.Client{
	Timeout: 15 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// Client talks to the Supabase Storage object API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	// injectable clock for tests
	now func() time.Time
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: storageHTTPClient,
		now:        time.Now,
	}
}

func objectPath(chatID string) string {
	return fmt.Sprintf("chat_%s.json", chatID)
}

// AppendPair adds a question/answer pair to the thread's log blob:
// download the existing array, extend it, remove the old object, upload
// the new one.
func (c *Client) AppendPair(ctx context.Context, chatID, userMessage, assistantMessage string) error {
	records, err := c.Fetch(ctx, chatID)
	if err != nil {
		// missing or unreadable log starts fresh
		records = []Record{}
	}

	now := c.now().UTC().Format(time.RFC3339)
	records = append(records,
		Record{Role: "user", Message: userMessage, Timestamp: now},
		Record{Role: "assistant", Message: assistantMessage, Timestamp: now},
	)

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode chat log: %w", err)
	}

	// removal of the old object is best-effort; upload overwrites anyway
	_ = c.remove(ctx, chatID) //nolint:errcheck

	return c.upload(ctx, chatID, payload)
}

// Fetch downloads and decodes a thread's log blob.
func (c *Client) Fetch(ctx context.Context, chatID string) ([]Record, error) {
	req, err := c.newRequest(ctx, http.MethodGet, chatID, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download chat log: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck
		return nil, fmt.Errorf("chat log download failed with status %d: %s", resp.StatusCode, string(body))
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode chat log: %w", err)
	}

	return records, nil
}

func (c *Client) upload(ctx context.Context, chatID string, payload []byte) error {
	req, err := c.newRequest(ctx, http.MethodPost, chatID, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload chat log: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck
		return fmt.Errorf("chat log upload failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

func (c *Client) remove(ctx context.Context, chatID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, chatID, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to remove chat log: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("chat log removal failed with status %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, method, chatID string, body io.Reader) (*http.Request, error) {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, bucketName, objectPath(chatID))

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return req, nil
}
