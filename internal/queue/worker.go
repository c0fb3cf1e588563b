package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-scorer/internal/engine"
	"github.com/jonathan/resume-scorer/internal/types"
)

// Channel is the subset of *amqp.Channel the worker uses.
type Channel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Scorer is the engine operation the worker runs.
type Scorer interface {
	ScoreResume(req types.ScoreRequest) (*types.MatchResult, error)
}

// TextFetcher resolves résumé references.
type TextFetcher interface {
	Fetch(ctx context.Context, ref string) (string, error)
}

// Options configures a Worker.
type Options struct {
	Queue       string // Durable request queue
	ResultQueue string // Used when a message has no reply-to; empty drops such results
	Concurrency int    // Messages processed at once; also the prefetch count
	ConsumerTag string
}

// Worker consumes score requests and publishes results.
type Worker struct {
	ch      Channel
	scorer  Scorer
	fetcher TextFetcher
	opts    Options
}

// NewWorker creates a worker. fetcher may be nil, in which case messages carrying a
// resume_ref are rejected.
func NewWorker(ch Channel, scorer Scorer, fetcher TextFetcher, opts Options) *Worker {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.ConsumerTag == "" {
		opts.ConsumerTag = "resume-scorer-" + uuid.NewString()[:8]
	}
	return &Worker{ch: ch, scorer: scorer, fetcher: fetcher, opts: opts}
}

// Run declares the queue and processes deliveries until ctx is cancelled or the
// delivery channel closes. In-flight messages finish before Run returns.
func (w *Worker) Run(ctx context.Context) error {
	if w.opts.Queue == "" {
		return fmt.Errorf("queue name is required")
	}
	if _, err := w.ch.QueueDeclare(w.opts.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", w.opts.Queue, err)
	}
	if err := w.ch.Qos(w.opts.Concurrency, 0, false); err != nil {
		return fmt.Errorf("failed to set prefetch: %w", err)
	}
	deliveries, err := w.ch.Consume(w.opts.Queue, w.opts.ConsumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", w.opts.Queue, err)
	}

	log.Printf("[worker] consuming %s with concurrency %d", w.opts.Queue, w.opts.Concurrency)

	g := new(errgroup.Group)
	g.SetLimit(w.opts.Concurrency)

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case d, ok := <-deliveries:
			if !ok {
				log.Printf("[worker] delivery channel closed")
				break loop
			}
			g.Go(func() error {
				w.Handle(ctx, d)
				return nil
			})
		}
	}

	_ = g.Wait()
	log.Printf("[worker] stopped")
	return ctx.Err()
}

// Handle processes one delivery: it scores the message, publishes the reply and
// acknowledges the delivery according to the outcome.
func (w *Worker) Handle(ctx context.Context, d amqp.Delivery) {
	start := time.Now()

	var msg ScoreMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		id := messageID(d, "")
		log.Printf("[worker] %s malformed message: %v", id, err)
		w.reply(d, ResultMessage{ID: id, Error: &ErrorInfo{Kind: KindInvalidInput, Field: "body", Message: "invalid JSON: " + err.Error()}})
		w.settle(d, id, reject)
		return
	}
	id := messageID(d, msg.ID)

	result, err := w.score(ctx, msg)
	if err != nil {
		info, outcome := classify(err)
		if outcome == requeue && d.Redelivered {
			// Second failure; stop bouncing it around.
			outcome = reject
		}
		log.Printf("[worker] %s failed (%s): %v", id, info.Kind, err)
		if outcome == reject {
			w.reply(d, ResultMessage{ID: id, Error: &info})
		}
		w.settle(d, id, outcome)
		return
	}

	if err := w.reply(d, ResultMessage{ID: id, Result: result}); err != nil {
		w.settle(d, id, requeue)
		return
	}
	log.Printf("[worker] %s scored %.2f (%s) in %v", id, result.OverallMatchScore, result.Tier, time.Since(start))
	w.settle(d, id, ack)
}

func (w *Worker) score(ctx context.Context, msg ScoreMessage) (*types.MatchResult, error) {
	text := msg.ResumeText
	switch {
	case msg.ResumeRef != "" && text != "":
		return nil, &engine.InputError{Kind: engine.ErrInvalidInput, Field: "resume_ref", Message: "set either resume_text or resume_ref, not both"}
	case msg.ResumeRef != "":
		if w.fetcher == nil {
			return nil, &engine.InputError{Kind: engine.ErrInvalidInput, Field: "resume_ref", Message: "references are not enabled on this worker"}
		}
		fetched, err := w.fetcher.Fetch(ctx, msg.ResumeRef)
		if err != nil {
			return nil, fmt.Errorf("resume_ref %s: %w", msg.ResumeRef, err)
		}
		text = fetched
	}

	return w.scorer.ScoreResume(types.ScoreRequest{
		ResumeText: text,
		Job:        msg.Job,
		Sections:   msg.Sections,
	})
}

// reply publishes res to the delivery's reply-to queue, or the configured result queue.
func (w *Worker) reply(d amqp.Delivery, res ResultMessage) error {
	target := d.ReplyTo
	if target == "" {
		target = w.opts.ResultQueue
	}
	if target == "" {
		return nil
	}

	body, err := json.Marshal(res)
	if err != nil {
		log.Printf("[worker] %s failed to encode result: %v", res.ID, err)
		return err
	}

	correlationID := d.CorrelationId
	if correlationID == "" {
		correlationID = res.ID
	}

	err = w.ch.Publish("", target, false, false, amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		CorrelationId: correlationID,
		MessageId:     uuid.NewString(),
		Timestamp:     time.Now().UTC(),
		Body:          body,
	})
	if err != nil {
		log.Printf("[worker] %s failed to publish result to %s: %v", res.ID, target, err)
	}
	return err
}

func (w *Worker) settle(d amqp.Delivery, id string, outcome disposition) {
	var err error
	switch outcome {
	case ack:
		err = d.Ack(false)
	case reject:
		err = d.Nack(false, false)
	case requeue:
		err = d.Nack(false, true)
	}
	if err != nil {
		log.Printf("[worker] %s failed to settle delivery: %v", id, err)
	}
}

// messageID picks the id reported in logs and replies.
func messageID(d amqp.Delivery, fromBody string) string {
	for _, id := range []string{fromBody, d.CorrelationId, d.MessageId} {
		if id = strings.TrimSpace(id); id != "" {
			return id
		}
	}
	return uuid.NewString()
}
