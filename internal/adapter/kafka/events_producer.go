package kafka

import (
	"context"
	"log/slog"

	"github.com/ahmadnk31/5gfones-search/internal/core/domain"
	"github.com/ahmadnk31/5gfones-search/internal/core/port"
	"github.com/ahmadnk31/5gfones-search/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.SearchEventsProducer = (*SearchEventsProducer)(nil)

// A SearchEventsProducer publishes [domain.SearchEvent] values to the
// analytics topic.
type SearchEventsProducer struct {
	cl       ProducerClient
	encoder  Encoder
	opPrefix string
}

func NewSearchEventsProducer(
	opts ...ProducerOpt,
) (SearchEventsProducer, error) {
	const op = "NewSearchEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return SearchEventsProducer{}, opErr(err, op)
		}
	}

	return SearchEventsProducer{
		cl:       options.cl,
		encoder:  options.encoder,
		opPrefix: "SearchEventsProducer",
	}, nil
}

func (p SearchEventsProducer) Close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p SearchEventsProducer) ProduceSearchEvent(
	ctx context.Context, e domain.SearchEvent,
) error {
	const op = "ProduceSearchEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(e)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	res := p.cl.ProduceSync(ctx, &r)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

func (p SearchEventsProducer) createRecord(
	e domain.SearchEvent,
) (kgo.Record, error) {
	const op = "createRecord"

	s := p.toSchema(e)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return kgo.Record{}, opErr(err, p.opPrefix, op)
	}
	return kgo.Record{Key: []byte(s.Strategy), Value: b}, nil
}

func (SearchEventsProducer) toSchema(e domain.SearchEvent) schema.SearchEventV1 {
	return schema.SearchEventV1{
		Query:    e.Query,
		Strategy: e.Strategy,
		Results:  e.Results,
		TookMs:   e.TookMs,
	}
}
