// Package redisbus propaga la invalidación del cache de permisos entre
// instancias usando Redis pub/sub.
package redisbus

import (
	"context"
	"errors"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"xfinance/internal/platform/logger"
)

// Invalidator es lo que el bus llama al recibir un aviso de otra instancia.
type Invalidator interface {
	Invalidate()
}

type Bus struct {
	client     *redis.Client
	channel    string
	instanceID string
	log        logger.Logger
}

func New(client *redis.Client, channel string, log logger.Logger) *Bus {
	if log == nil {
		log = logger.NewNop()
	}
	id := uuid.NewString()
	return &Bus{
		client:     client,
		channel:    channel,
		instanceID: id,
		log:        log.With(map[string]any{"component": "redisbus", "instance_id": id}),
	}
}

// NewClient arma el cliente y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (b *Bus) InstanceID() string { return b.instanceID }

// PublishInvalidate avisa a las demás instancias. El payload es el id de esta instancia.
func (b *Bus) PublishInvalidate(ctx context.Context) error {
	return b.client.Publish(ctx, b.channel, b.instanceID).Err()
}

// Run escucha el canal hasta que ctx termine. Los avisos propios se ignoran:
// la instancia que publica ya limpió su cache.
func (b *Bus) Run(ctx context.Context, inv Invalidator) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	// confirma la suscripción antes de consumir
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	b.log.Info("escuchando invalidaciones", map[string]any{"channel": b.channel})

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return errors.New("redis subscription closed")
			}
			from := strings.TrimSpace(msg.Payload)
			if from == b.instanceID {
				continue
			}
			b.log.Debug("invalidación recibida", map[string]any{"from": from})
			inv.Invalidate()
		}
	}
}
