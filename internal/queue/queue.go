// Package queue dispatches pipeline tasks over RabbitMQ so processing can
// run in a separate process from the API. It is an optional alternative to
// the in-process worker pool.
package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	apperrors "github.com/volleyclip/clipper/internal/errors"
	"github.com/volleyclip/clipper/internal/logging"
	"github.com/volleyclip/clipper/internal/worker"
)

// Queue names for the two task kinds
const (
	IndexQueue = "clipper.index"
	JobQueue   = "clipper.jobs"
)

// IndexMessage asks a consumer to index an uploaded video
type IndexMessage struct {
	VideoKey string `json:"video_key"`
	VideoID  string `json:"video_id"`
}

// JobMessage asks a consumer to run a clip job
type JobMessage struct {
	JobID string `json:"job_id"`
}

// Publisher dispatches tasks to RabbitMQ. It satisfies worker.Dispatcher
// so the API does not care which dispatch mode is configured.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

// NewPublisher connects to the broker and declares the task queues
func NewPublisher(url string, logger *slog.Logger) (*Publisher, error) {
	conn, ch, err := connect(url)
	if err != nil {
		return nil, err
	}
	return &Publisher{
		conn:    conn,
		channel: ch,
		logger:  logging.WithComponent(logger, "queue"),
	}, nil
}

// DispatchIndex publishes an indexing task
func (p *Publisher) DispatchIndex(ctx context.Context, videoKey, videoID string) error {
	return p.publish(ctx, IndexQueue, IndexMessage{VideoKey: videoKey, VideoID: videoID})
}

// DispatchJob publishes a clip job task
func (p *Publisher) DispatchJob(ctx context.Context, jobID string) error {
	return p.publish(ctx, JobQueue, JobMessage{JobID: jobID})
}

// Close releases the channel and connection
func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return p.conn.Close()
	}
	return p.conn.Close()
}

func (p *Publisher) publish(ctx context.Context, queueName string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to encode task message")
	}

	err = p.channel.PublishWithContext(ctx, "", queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternal, "failed to publish task message")
	}

	p.logger.Debug("task published", "queue", queueName)
	return nil
}

// Consumer pulls tasks off RabbitMQ and hands them to the orchestrators
// through the same execution path the in-process pool uses.
type Consumer struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	dispatch worker.Dispatcher
	logger   *slog.Logger
}

// NewConsumer connects to the broker and declares the task queues.
// Consumed messages are forwarded to dispatch, normally the worker pool.
func NewConsumer(url string, dispatch worker.Dispatcher, logger *slog.Logger) (*Consumer, error) {
	conn, ch, err := connect(url)
	if err != nil {
		return nil, err
	}
	return &Consumer{
		conn:     conn,
		channel:  ch,
		dispatch: dispatch,
		logger:   logging.WithComponent(logger, "queue"),
	}, nil
}

// Run consumes both queues until ctx is cancelled
func (c *Consumer) Run(ctx context.Context) error {
	indexMsgs, err := c.channel.Consume(IndexQueue, "", false, false, false, false, nil)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternal, "failed to consume index queue")
	}
	jobMsgs, err := c.channel.Consume(JobQueue, "", false, false, false, false, nil)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternal, "failed to consume job queue")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-indexMsgs:
			if !ok {
				return apperrors.New(apperrors.CodeExternal, "index queue channel closed")
			}
			c.handleIndex(ctx, d)
		case d, ok := <-jobMsgs:
			if !ok {
				return apperrors.New(apperrors.CodeExternal, "job queue channel closed")
			}
			c.handleJob(ctx, d)
		}
	}
}

// Close releases the channel and connection
func (c *Consumer) Close() error {
	if err := c.channel.Close(); err != nil {
		return c.conn.Close()
	}
	return c.conn.Close()
}

func (c *Consumer) handleIndex(ctx context.Context, d amqp.Delivery) {
	var msg IndexMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		c.logger.Error("dropping malformed index message", "error", err)
		// Malformed messages would fail forever; drop instead of requeue.
		_ = d.Nack(false, false)
		return
	}
	if err := c.dispatch.DispatchIndex(ctx, msg.VideoKey, msg.VideoID); err != nil {
		c.logger.Error("failed to dispatch index task", "video_id", msg.VideoID, "error", err)
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}

func (c *Consumer) handleJob(ctx context.Context, d amqp.Delivery) {
	var msg JobMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		c.logger.Error("dropping malformed job message", "error", err)
		_ = d.Nack(false, false)
		return
	}
	if err := c.dispatch.DispatchJob(ctx, msg.JobID); err != nil {
		c.logger.Error("failed to dispatch job task", "job_id", msg.JobID, "error", err)
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}

// connect dials the broker and declares both durable task queues
func connect(url string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.CodeExternal, "failed to connect to message broker")
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, apperrors.Wrap(err, apperrors.CodeExternal, "failed to open broker channel")
	}
	for _, name := range []string{IndexQueue, JobQueue} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, nil, apperrors.Wrap(err, apperrors.CodeExternal, "failed to declare queue "+name)
		}
	}
	return conn, ch, nil
}
