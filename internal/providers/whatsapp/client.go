package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"outreach/internal/domain"
)

// Message is the WhatsApp Business API wire shape built by the
// dispatcher: a text message per recipient.
type Message struct {
	To   string `json:"to"`
	Type string `json:"type"`
	Text Text   `json:"text"`
}

type Text struct {
	Body string `json:"body"`
}

// NewText builds a text message for one recipient.
func NewText(to, body string) Message {
	return Message{To: to, Type: "text", Text: Text{Body: body}}
}

type Client struct {
	HTTP          *http.Client
	BaseURL       string
	PhoneNumberID string

	// Limiter paces the per-message HTTP calls inside a bulk send.
	Limiter *rate.Limiter
}

type sendRequest struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             Text   `json:"text"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// SendBulk submits one Graph API call per message. The access token is
// passed per call; it is looked up just-in-time at launch. Any failing
// send aborts the batch with no partial result.
func (c *Client) SendBulk(ctx context.Context, msgs []Message, accessToken string) ([]domain.DispatchResult, error) {
	results := make([]domain.DispatchResult, 0, len(msgs))
	for _, m := range msgs {
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		res, err := c.send(ctx, m, accessToken)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (c *Client) send(ctx context.Context, m Message, accessToken string) (domain.DispatchResult, error) {
	body, _ := json.Marshal(sendRequest{
		MessagingProduct: "whatsapp",
		To:               m.To,
		Type:             m.Type,
		Text:             m.Text,
	})

	baseURL := strings.TrimRight(c.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://graph.facebook.com"
	}
	endpoint := baseURL + "/v17.0/" + c.PhoneNumberID + "/messages"
	httpReq, _ := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return domain.DispatchResult{}, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)

	var out sendResponse
	_ = json.Unmarshal(b, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if out.Error != nil && out.Error.Message != "" {
			return domain.DispatchResult{}, errors.New(out.Error.Message)
		}
		return domain.DispatchResult{}, errors.New("whatsapp send failed")
	}

	res := domain.DispatchResult{To: m.To, Status: "accepted"}
	if len(out.Messages) > 0 {
		res.ProviderMsgID = out.Messages[0].ID
	}
	return res, nil
}
