package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmadnk31/5gfones-search/config"
	"github.com/ahmadnk31/5gfones-search/pkg/sigctx"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	partitions        = 3
	replicationFactor = 3
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()

	cl := createClient(cfg.Broker.SeedBrokers)
	defer cl.Close()

	start := time.Now()
	fmt.Println("creating topics...")

	err := makeTopics(sigCtx, cl, cfg.Broker.SearchEventsTopic)
	if err != nil {
		fmt.Printf("failed: %v\n", err)
		return
	}

	fmt.Printf("complete in %s\n", time.Since(start))
}

func createClient(seedBrokers []string) *kadm.Client {
	cl, err := kadm.NewOptClient(
		kgo.SeedBrokers(seedBrokers...),
	)
	if err != nil {
		panic(err) // develop mistake
	}
	return cl
}

func makeTopics(
	ctx context.Context, cl *kadm.Client, topics ...string,
) error {
	var (
		cleanupPolicy = "delete"
		minISR        = "1"
	)

	config := map[string]*string{
		"cleanup.policy":      &cleanupPolicy,
		"min.insync.replicas": &minISR,
	}

	responses, err := cl.CreateTopics(
		ctx,
		partitions,
		replicationFactor,
		config,
		topics...,
	)
	if err != nil {
		return err
	}

	var errs []error
	for _, res := range responses.Sorted() {
		if res.Err != nil {
			if errors.Is(res.Err, kerr.TopicAlreadyExists) {
				fmt.Printf("topic: %q already exists\n", res.Topic)
				continue
			}
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}
