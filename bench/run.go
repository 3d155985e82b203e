package bench

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vitalvas/mqttwire"
)

// Run executes one benchmark: it connects and subscribes every subscriber,
// then starts the publishers, waits for every subscriber to drain its
// expected message count, and releases the publishers. Subscribers go
// first so no published message is lost to a not-yet-established
// subscription.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.logger()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Info("starting benchmark", mqttwire.LogFields{
		mqttwire.LogFieldEndpoint: cfg.Endpoint,
		mqttwire.LogFieldTopic:    cfg.Topic,
		mqttwire.LogFieldQoS:      cfg.QoS,
		"publishers":              cfg.Publishers,
		"subscribers":             cfg.Subscribers,
		"messages":                cfg.Messages,
	})

	timeRef := time.Now()

	// Connect and subscribe sequentially so every subscription is acked
	// before the first publish.
	subscribers := make([]*subscriber, 0, cfg.Subscribers)
	for i := 0; i < cfg.Subscribers; i++ {
		sub, err := newSubscriber(ctx, &cfg, i, timeRef)
		if err != nil {
			for _, s := range subscribers {
				s.client.close()
			}
			return nil, fmt.Errorf("subscriber %d: %w", i, err)
		}
		subscribers = append(subscribers, sub)
	}
	log.Debug("subscribers ready", mqttwire.LogFields{"count": len(subscribers)})

	subStats := make([]SubscriberStats, cfg.Subscribers)
	subErrs := make([]error, cfg.Subscribers)
	var subWG sync.WaitGroup
	for i, sub := range subscribers {
		subWG.Add(1)
		go func() {
			defer subWG.Done()
			subStats[i], subErrs[i] = sub.run(ctx)
		}()
	}

	release := make(chan struct{})
	pubStats := make([]PublisherStats, cfg.Publishers)
	pubErrs := make([]error, cfg.Publishers)
	var pubWG sync.WaitGroup
	for i := 0; i < cfg.Publishers; i++ {
		pub, err := newPublisher(ctx, &cfg, i, timeRef, release)
		if err != nil {
			cancel()
			close(release)
			pubWG.Wait()
			subWG.Wait()
			return nil, fmt.Errorf("publisher %d: %w", i, err)
		}
		pubWG.Add(1)
		go func() {
			defer pubWG.Done()
			pubStats[i], pubErrs[i] = pub.run(ctx)
		}()
	}
	log.Debug("publishers running", mqttwire.LogFields{"count": cfg.Publishers})

	// Publishers hold their connections open until all subscribers have
	// drained, so release only after the subscriber side is done.
	subWG.Wait()
	close(release)
	pubWG.Wait()

	for i, err := range subErrs {
		if err != nil {
			return nil, fmt.Errorf("subscriber %d: %w", i, err)
		}
	}
	for i, err := range pubErrs {
		if err != nil {
			return nil, fmt.Errorf("publisher %d: %w", i, err)
		}
	}

	report := buildReport(&cfg, pubStats, subStats)
	log.Info("benchmark complete", mqttwire.LogFields{
		"messages":  len(report.TripTimes),
		"trip_p99":  report.Percentile(99),
		"trip_mean": report.Mean(),
	})
	return report, nil
}
