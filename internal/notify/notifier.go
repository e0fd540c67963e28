// Package notify delivers the post-registration welcome call. Delivery is
// best effort: nothing here can fail a registration.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Notifier interface {
	Notify(ctx context.Context, email string) error
}

// NotifierError describes a failed welcome call.
type NotifierError struct {
	Email      string
	StatusCode int
	Err        error
}

func (e *NotifierError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("notify %s: %v", e.Email, e.Err)
	}
	return fmt.Sprintf("notify %s: unexpected status %d", e.Email, e.StatusCode)
}

func (e *NotifierError) Unwrap() error { return e.Err }

// HTTPNotifier POSTs {"email": ...} to a fixed endpoint without credentials.
type HTTPNotifier struct {
	URL    string
	Client *http.Client
}

func NewHTTPNotifier(url string, timeout time.Duration) *HTTPNotifier {
	return &HTTPNotifier{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (n *HTTPNotifier) Notify(ctx context.Context, email string) error {
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return &NotifierError{Email: email, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
	if err != nil {
		return &NotifierError{Email: email, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.Client.Do(req)
	if err != nil {
		return &NotifierError{Email: email, Err: err}
	}
	defer func() { _ = res.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 64<<10))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &NotifierError{Email: email, StatusCode: res.StatusCode}
	}
	return nil
}

// Nop is used when notifications are switched off.
type Nop struct{}

func (Nop) Notify(context.Context, string) error { return nil }
