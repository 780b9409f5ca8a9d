package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/PaperMindAI/papermind-mvp/engine/domain"
)

const (
	// IngestSubject is the NATS subject for incoming cluster uploads.
	IngestSubject = "engine.ingest.sections"
	// DLQSubject is the dead letter queue subject for failed uploads.
	DLQSubject = "engine.ingest.sections.dlq"
	// MaxRetries before an upload is sent to the DLQ.
	MaxRetries = 3
)

// ClusterUpload is the wire shape of one ingest request.
type ClusterUpload struct {
	ClusterID string                `json:"cluster_id"`
	Documents []domain.DocumentText `json:"documents"`
}

// dlqMessage is published to the DLQ on repeated failure.
type dlqMessage struct {
	Upload  ClusterUpload `json:"upload"`
	Error   string        `json:"error"`
	Retries int           `json:"retries"`
}

// StartConsumer subscribes to the ingest subject and runs each upload
// through IngestCluster with retry and DLQ support.
func StartConsumer(nc *nats.Conn, svc *Service, logger *slog.Logger) (*nats.Subscription, error) {
	if logger == nil {
		logger = slog.Default()
	}

	return nc.Subscribe(IngestSubject, func(msg *nats.Msg) {
		var upload ClusterUpload
		if err := json.Unmarshal(msg.Data, &upload); err != nil {
			logger.Error("ingest: unmarshal failed", "error", err)
			return
		}

		ctx := context.Background()

		retries := 0
		if msg.Header != nil {
			if v := msg.Header.Get("X-Retry-Count"); v != "" {
				fmt.Sscanf(v, "%d", &retries)
			}
		}

		result, err := svc.IngestCluster(ctx, upload.ClusterID, upload.Documents)
		if err != nil {
			retries++
			logger.Error("ingest: cluster failed",
				"error", err,
				"cluster_id", upload.ClusterID,
				"retry", retries,
			)

			if retries >= MaxRetries {
				dlq := dlqMessage{Upload: upload, Error: err.Error(), Retries: retries}
				data, _ := json.Marshal(dlq)
				if err := nc.Publish(DLQSubject, data); err != nil {
					logger.Error("ingest: DLQ publish failed", "error", err)
				}
			} else {
				retryMsg := nats.NewMsg(IngestSubject)
				retryMsg.Data = msg.Data
				retryMsg.Header = nats.Header{}
				retryMsg.Header.Set("X-Retry-Count", fmt.Sprintf("%d", retries))
				if err := nc.PublishMsg(retryMsg); err != nil {
					logger.Error("ingest: retry publish failed", "error", err)
				}
			}
			return
		}

		logger.Info("ingest: cluster processed",
			"cluster_id", result.ClusterID,
			"documents", len(result.Documents),
			"sections", result.Sections,
		)
		if msg.Reply != "" {
			data, _ := json.Marshal(result)
			_ = msg.Respond(data)
		}
	})
}
