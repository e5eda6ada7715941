package sqsqueue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"outreach/internal/notify"
)

// NoticePublisher forwards operator notices to SQS so dashboard or ops
// consumers can pick them up. Publishing is best-effort: a failed
// publish is logged and dropped, matching the fire-and-forget contract
// of the sink.
type NoticePublisher struct {
	SQS      *sqs.Client
	QueueURL string
}

type noticeEvent struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	EmittedAt   time.Time `json:"emittedAt"`
}

func (p *NoticePublisher) Notify(ctx context.Context, n notify.Notice) {
	body, err := json.Marshal(noticeEvent{
		Title:       n.Title,
		Description: n.Description,
		Severity:    string(n.Severity),
		EmittedAt:   time.Now().UTC(),
	})
	if err != nil {
		slog.Error("notice marshal failed", "err", err)
		return
	}
	_, err = p.SQS.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    &p.QueueURL,
		MessageBody: str(string(body)),
	})
	if err != nil {
		slog.Error("notice publish failed", "err", err, "title", n.Title)
	}
}

func str(s string) *string { return &s }
