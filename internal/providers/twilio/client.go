package twilio

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"outreach/internal/domain"
)

// Message is the SMS wire shape built by the dispatcher: one entry per
// recipient with the interpolated body and the configured sender number.
type Message struct {
	To   string `json:"to"`
	Body string `json:"body"`
	From string `json:"from"`
}

type Client struct {
	HTTP    *http.Client
	BaseURL string

	// Limiter paces the per-message HTTP calls inside a bulk send.
	Limiter *rate.Limiter
}

type sendResponse struct {
	Sid       string `json:"sid"`
	Status    string `json:"status"`
	ErrorCode *int   `json:"error_code"`
	Message   string `json:"message"`
}

// SendBulk submits one Twilio API call per message. Account credentials
// are passed per call, not held on the client: they are looked up
// just-in-time at launch. Any failing send aborts the batch with no
// partial result.
func (c *Client) SendBulk(ctx context.Context, msgs []Message, accountSID, authToken string) ([]domain.DispatchResult, error) {
	results := make([]domain.DispatchResult, 0, len(msgs))
	for _, m := range msgs {
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		res, err := c.send(ctx, m, accountSID, authToken)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (c *Client) send(ctx context.Context, m Message, accountSID, authToken string) (domain.DispatchResult, error) {
	form := url.Values{}
	form.Set("To", m.To)
	form.Set("Body", m.Body)
	form.Set("From", m.From)

	baseURL := strings.TrimRight(c.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.twilio.com"
	}
	endpoint := baseURL + "/2010-04-01/Accounts/" + accountSID + "/Messages.json"
	httpReq, _ := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.SetBasicAuth(accountSID, authToken)

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return domain.DispatchResult{}, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)

	var out sendResponse
	_ = json.Unmarshal(b, &out)

	// Twilio returns 201 for created; treat 2xx as success
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if out.Message != "" {
			return domain.DispatchResult{}, errors.New(out.Message)
		}
		return domain.DispatchResult{}, errors.New("twilio send failed")
	}

	status := out.Status
	if status == "" {
		status = "queued"
	}
	return domain.DispatchResult{To: m.To, ProviderMsgID: out.Sid, Status: status}, nil
}
