package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"time"
)

const maxReplyBytes = 16 << 20

// newSession hands out a client with its own connection pool. Callers must
// call the release func on every exit path.
func newSession(timeout time.Duration) (*http.Client, func()) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	client := &http.Client{Timeout: timeout, Transport: transport}
	return client, transport.CloseIdleConnections
}

// doPost sends data as JSON to uri and decodes the reply into out. Unknown
// reply fields are ignored. An error object embedded in the reply is turned
// into an *UpstreamProtocolError whatever the status code.
func doPost(ctx context.Context, client *http.Client, step, uri string, data interface{}, out interface{}) error {
	body, err := json.Marshal(data)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return &NetworkError{Step: step, Err: err}
	}
	defer resp.Body.Close()

	reply, err := ioutil.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return &NetworkError{Step: step, Err: err}
	}

	embedded := &plaidError{}
	if json.Unmarshal(reply, embedded) == nil && embedded.ErrorCode != "" {
		return &UpstreamProtocolError{Step: step, Code: embedded.ErrorCode, Message: embedded.ErrorMessage}
	}

	status := resp.StatusCode
	if status < 200 || status >= 300 {
		return &UpstreamProtocolError{Step: step, Message: fmt.Sprintf("got status code: %d", status)}
	}

	err = json.Unmarshal(reply, out)
	if err != nil {
		return &UpstreamProtocolError{Step: step, Message: fmt.Sprintf("decode reply: %v", err)}
	}
	return nil
}
