package trimming

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// Error is a non 2xx response from the service
type Error struct {
	Status int    `json:"status"`
	Rid    uint64 `json:"rid"`
	Msg    string `json:"msg"`
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("trimming: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("trimming: %d: %s", e.Status, e.Msg)
}

func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	c.ensure()

	var rd io.Reader
	if body != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return err
		}
		rd = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimSuffix(c.Base.String(), "/")+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// failed cuts come back as the job itself, which also carries msg
		e := &Error{}
		if err := json.Unmarshal(data, e); err != nil {
			e.Msg = strings.TrimSpace(string(data))
		}
		e.Status = resp.StatusCode
		if result != nil && json.Valid(data) {
			if err := json.Unmarshal(data, result); err != nil {
				return errors.Wrapf(e, "decoding error body: %v", err)
			}
		}
		return e
	}
	if result == nil {
		return nil
	}
	return json.Unmarshal(data, result)
}
