package cache

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/models"
)

const (
	keyRecentAnalyses = "analyses:recent"
	maxRecentAnalyses = 100

	channelExecutions = "executions:live"
)

// RedisCache keeps a bounded list of recent analyses and publishes execution
// events. Operational/observability data only.
type RedisCache struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewRedisCacheFromClient(client *redis.Client, log *logrus.Logger) *RedisCache {
	if log == nil {
		log = logrus.New()
	}
	return &RedisCache{client: client, log: log}
}

func (c *RedisCache) AddRecentAnalysis(ctx context.Context, rec *models.AnalysisRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	pipe.LPush(ctx, keyRecentAnalyses, b)
	pipe.LTrim(ctx, keyRecentAnalyses, 0, maxRecentAnalyses-1)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *RedisCache) GetRecentAnalyses(ctx context.Context, limit int64) ([]*models.AnalysisRecord, error) {
	if limit <= 0 || limit > maxRecentAnalyses {
		limit = maxRecentAnalyses
	}

	vals, err := c.client.LRange(ctx, keyRecentAnalyses, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*models.AnalysisRecord, 0, len(vals))
	for _, v := range vals {
		var rec models.AnalysisRecord
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			c.log.WithError(err).Debug("skipping malformed analysis record")
			continue
		}
		out = append(out, &rec)
	}
	return out, nil
}

func (c *RedisCache) PublishExecution(ctx context.Context, rec *models.ExecutionRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.client.Publish(ctx, channelExecutions, b).Err()
}

// SubscribeExecutions streams execution events until the context is
// cancelled. Used by dashboards, not by the analysis pipeline.
func (c *RedisCache) SubscribeExecutions(ctx context.Context) (<-chan *models.ExecutionRecord, error) {
	pubsub := c.client.Subscribe(ctx, channelExecutions)
	if _, err := pubsub.Receive(ctx); err != nil {
		return nil, err
	}

	out := make(chan *models.ExecutionRecord)
	go func() {
		defer close(out)
		defer pubsub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				var rec models.ExecutionRecord
				if err := json.Unmarshal([]byte(msg.Payload), &rec); err != nil {
					c.log.WithError(err).Debug("skipping malformed execution event")
					continue
				}
				select {
				case out <- &rec:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
