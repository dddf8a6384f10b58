package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// JetStream is a minimal StreamPublisher over a direct NATS connection.
type JetStream struct {
	conn *nats.Conn
	js   jetstream.JetStream
}

// Connect dials url and, when stream is not empty, makes sure a stream with
// that name captures subjects.
func Connect(ctx context.Context, url, stream string, subjects ...string) (*JetStream, error) {
	conn, err := nats.Connect(url,
		nats.Name("sdml"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(3),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	if stream != "" {
		_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:     stream,
			Subjects: subjects,
		})
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("ensure stream %s: %w", stream, err)
		}
	}

	return &JetStream{conn: conn, js: js}, nil
}

// PublishToStream publishes data and waits for the JetStream ack.
func (j *JetStream) PublishToStream(ctx context.Context, subject string, data []byte) error {
	_, err := j.js.Publish(ctx, subject, data)
	return err
}

// Close drains and closes the connection.
func (j *JetStream) Close() error {
	if j == nil || j.conn == nil {
		return nil
	}
	return j.conn.Drain()
}
