package queue_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"github.com/sam3690/syncly/internal/model"
	"github.com/sam3690/syncly/internal/queue"
)

var _ = Describe("Producer", func() {
	msg := queue.ImportMessage{
		Provider:    model.ProviderGitHub,
		WorkspaceID: "demo",
		Imported:    3,
		Source:      "acme/widgets",
		Since:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	It("wraps errors from an unreachable redis", func() {
		client := redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 100 * time.Millisecond,
			MaxRetries:  -1,
		})
		producer := queue.NewRedisProducer(client, "syncly_activity", nil)
		DeferCleanup(producer.Close)

		err := producer.Publish(context.Background(), msg)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(HavePrefix("publish import:"))
	})

	It("rejects a malformed url", func() {
		_, err := queue.NewRedisProducerFromURL("not a url", "s", nil)
		Expect(err).To(HaveOccurred())
	})

	It("accepts anything when disabled", func() {
		producer := queue.NewNoopProducer()
		Expect(producer.Publish(context.Background(), msg)).To(Succeed())
		Expect(producer.Close()).To(Succeed())
	})
})
