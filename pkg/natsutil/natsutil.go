// Package natsutil provides typed JSON publish/subscribe/request helpers
// over NATS with OpenTelemetry trace propagation in message headers.
package natsutil

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
)

// msgCarrier adapts nats.Msg headers to the OTel TextMapCarrier interface.
type msgCarrier nats.Msg

func (c *msgCarrier) Get(key string) string {
	if c.Header == nil {
		return ""
	}
	return c.Header.Get(key)
}

func (c *msgCarrier) Set(key, val string) {
	if c.Header == nil {
		c.Header = make(nats.Header)
	}
	c.Header.Set(key, val)
}

func (c *msgCarrier) Keys() []string {
	keys := make([]string, 0, len(c.Header))
	for k := range c.Header {
		keys = append(keys, k)
	}
	return keys
}

// Publish marshals v as JSON and publishes it with the trace context from
// ctx injected into the message headers.
func Publish[T any](ctx context.Context, nc *nats.Conn, subject string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	msg := &nats.Msg{Subject: subject, Data: data}
	otel.GetTextMapPropagator().Inject(ctx, (*msgCarrier)(msg))
	return nc.PublishMsg(msg)
}

// Subscribe registers a handler for JSON messages of type T. The trace
// context is extracted from headers; malformed messages are dropped.
func Subscribe[T any](nc *nats.Conn, subject string, handler func(context.Context, T)) (*nats.Subscription, error) {
	return nc.Subscribe(subject, func(msg *nats.Msg) {
		var v T
		if err := json.Unmarshal(msg.Data, &v); err != nil {
			return
		}
		ctx := otel.GetTextMapPropagator().Extract(context.Background(), (*msgCarrier)(msg))
		handler(ctx, v)
	})
}

// Request sends a JSON request and decodes the JSON reply, waiting at most
// timeout (nats.DefaultTimeout when zero).
func Request[Req, Resp any](ctx context.Context, nc *nats.Conn, subject string, req Req, timeout time.Duration) (Resp, error) {
	var zero Resp
	if timeout <= 0 {
		timeout = nats.DefaultTimeout
	}
	data, err := json.Marshal(req)
	if err != nil {
		return zero, err
	}
	msg := &nats.Msg{Subject: subject, Data: data}
	otel.GetTextMapPropagator().Inject(ctx, (*msgCarrier)(msg))
	reply, err := nc.RequestMsg(msg, timeout)
	if err != nil {
		return zero, err
	}
	var resp Resp
	if err := json.Unmarshal(reply.Data, &resp); err != nil {
		return zero, err
	}
	return resp, nil
}
