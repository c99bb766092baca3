package prompts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Defaults for the Helsinki-NLP/opus-100 English-French split, a
// modern corpus (Tatoeba, OpenSubtitles and friends) that needs no
// authentication to read.
const (
	DefaultBaseURL = "https://datasets-server.huggingface.co"
	DefaultDataset = "Helsinki-NLP/opus-100"
	DefaultConfig  = "en-fr"
	DefaultSplit   = "train"

	// pageSize is the maximum the datasets-server rows endpoint serves
	// per request.
	pageSize = 100
)

// Client pages French sentences out of a parallel corpus hosted on the
// Hugging Face datasets server.
type Client struct {
	httpClient *http.Client
	baseURL    string
	dataset    string
	config     string
	split      string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the datasets-server endpoint. Tests point this
// at a local server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithDataset selects another dataset/config/split triple.
func WithDataset(dataset, config, split string) ClientOption {
	return func(c *Client) {
		c.dataset = dataset
		c.config = config
		c.split = split
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient creates a client for the default opus-100 en-fr corpus.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		dataset:    DefaultDataset,
		config:     DefaultConfig,
		split:      DefaultSplit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// rowsResponse mirrors the subset of the /rows payload we read.
type rowsResponse struct {
	Rows []struct {
		Row struct {
			Translation map[string]string `json:"translation"`
		} `json:"row"`
	} `json:"rows"`
}

// Page fetches one page of French sentences starting at offset. An
// empty result means the corpus is exhausted.
func (c *Client) Page(ctx context.Context, offset int) ([]string, error) {
	q := url.Values{}
	q.Set("dataset", c.dataset)
	q.Set("config", c.config)
	q.Set("split", c.split)
	q.Set("offset", strconv.Itoa(offset))
	q.Set("length", strconv.Itoa(pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rows?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("datasets server returned %s for %s", resp.Status, c.dataset)
	}

	var payload rowsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode rows response: %w", err)
	}

	sentences := make([]string, 0, len(payload.Rows))
	for _, row := range payload.Rows {
		if fr, ok := row.Row.Translation["fr"]; ok {
			sentences = append(sentences, fr)
		}
	}
	return sentences, nil
}
