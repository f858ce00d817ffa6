package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const DefaultServer = "http://localhost:8080"

// Note is a single entry in the remote notes collection.
type Note struct {
	ID          int     `json:"id"`
	Date        string  `json:"date"`
	Location    *string `json:"location"`
	Description string  `json:"description"`
}

// Client talks to the notes backend. It does nothing but list & insert.
type Client struct {
	server string
	client *http.Client
	log    zerolog.Logger
}

func NewClient(server string, timeout time.Duration, log zerolog.Logger) *Client {
	if server == "" {
		server = DefaultServer
	}
	return &Client{
		server: strings.TrimRight(server, "/"),
		client: &http.Client{Timeout: timeout},
		log:    log.With().Str("component", "notes").Logger(),
	}
}

// List returns every note the backend holds.
func (c *Client) List(ctx context.Context) ([]Note, error) {
	body, err := c.doRequest(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	found := []Note{}
	err = json.Unmarshal(body, &found)
	if err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return found, nil
}

// Add inserts a note.
func (c *Client) Add(ctx context.Context, n Note) error {
	if n.Date == "" || n.Description == "" {
		return fmt.Errorf("note needs a date and a description")
	}
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	_, err = c.doRequest(ctx, http.MethodPost, bytes.NewReader(data))
	return err
}

func (c *Client) doRequest(ctx context.Context, method string, data io.Reader) ([]byte, error) {
	uri := c.server + "/notes"
	c.log.Debug().Str("method", method).Str("uri", uri).Msg("notes request")

	req, err := http.NewRequestWithContext(ctx, method, uri, data)
	if err != nil {
		return nil, err
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("notes %s: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("notes %s: %w", method, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("notes %s: got status code: %d (%s)", method, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
