package bankaccount

import (
	"context"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	tmpubsub "github.com/tendermint/tendermint/libs/pubsub"
	tmquery "github.com/tendermint/tendermint/libs/pubsub/query"
)

// EventSink receives events of successfully delivered operations. Delivery
// is fire and forget, a sink cannot fail the operation.
type EventSink interface {
	Notify(ctx jointbank.Context, e Event)
}

// NopSink drops all events.
type NopSink struct{}

var _ EventSink = NopSink{}

func (NopSink) Notify(jointbank.Context, Event) {}

// LogSink writes every event to the context logger.
type LogSink struct{}

var _ EventSink = LogSink{}

func (LogSink) Notify(ctx jointbank.Context, e Event) {
	tags := e.Tags()
	keyvals := make([]interface{}, 0, 2*len(tags))
	for _, t := range tags {
		keyvals = append(keyvals, string(t.Key), string(t.Value))
	}
	jointbank.GetLogger(ctx).Info("bankaccount event", keyvals...)
}

// MultiSink passes each event to all sinks, in order.
type MultiSink []EventSink

var _ EventSink = MultiSink(nil)

func (m MultiSink) Notify(ctx jointbank.Context, e Event) {
	for _, s := range m {
		s.Notify(ctx, e)
	}
}

// Feed publishes events to subscribers. Subscribers select events with a
// query over the event tags, for example
//
//   bankaccount.event = 'deposit' AND bankaccount.account = 3
//
// A subscriber that does not keep up with the feed is dropped.
type Feed struct {
	srv *tmpubsub.Server
}

var _ EventSink = (*Feed)(nil)

// NewFeed starts a feed. Up to capacity events are queued before Notify
// blocks. Call Stop to release it.
func NewFeed(capacity int) (*Feed, error) {
	srv := tmpubsub.NewServer(tmpubsub.BufferCapacity(capacity))
	if err := srv.Start(); err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return &Feed{srv: srv}, nil
}

// Stop terminates the feed and all subscriptions.
func (f *Feed) Stop() {
	f.srv.Stop()
}

// Notify publishes the event. A failure is logged and otherwise ignored.
func (f *Feed) Notify(ctx jointbank.Context, e Event) {
	tags := make(map[string]string)
	for _, t := range e.Tags() {
		tags[string(t.Key)] = string(t.Value)
	}
	if err := f.srv.PublishWithTags(ctx, e, tags); err != nil {
		jointbank.GetLogger(ctx).Error("cannot publish bankaccount event", "event", e.Name(), "err", err)
	}
}

// Subscribe returns a channel of all events matching given query. An empty
// query matches all events. The subscription ends and the channel is closed
// when ctx is done or the subscriber falls behind.
func (f *Feed) Subscribe(ctx context.Context, subscriber string, query string) (<-chan Event, error) {
	var q tmpubsub.Query = tmquery.Empty{}
	if query != "" {
		parsed, err := tmquery.New(query)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "query %q: %s", query, err)
		}
		q = parsed
	}

	sub, err := f.srv.Subscribe(ctx, subscriber, q, 1)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrState, "subscribe %q: %s", subscriber, err)
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		defer f.srv.Unsubscribe(context.Background(), subscriber, q)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sub.Cancelled():
				return
			case msg := <-sub.Out():
				e, ok := msg.Data().(Event)
				if !ok {
					continue
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
