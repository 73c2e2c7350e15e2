package markers

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"xfinance/internal/platform/logger"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnknownChannel = errors.New("unknown marker channel")
	ErrInvalidValue   = errors.New("marker value must be between 0 and 3")
)

var markerWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "xfinance_marker_writes_total",
	Help: "Escrituras de marcadores por canal.",
}, []string{"channel"})

type Service struct {
	repo Repository
	log  logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		repo: repo,
		log:  log.With(map[string]any{"component": "markers"}),
	}
}

func validate(ch Channel, value int) error {
	if _, err := ParseChannel(string(ch)); err != nil {
		return err
	}
	if value < MinValue || value > MaxValue {
		return ErrInvalidValue
	}
	return nil
}

// Set marca un registro. Canal y valor se validan antes de cualquier escritura.
func (s *Service) Set(ctx context.Context, recordID int64, ch Channel, value int) (bool, error) {
	if recordID <= 0 {
		return false, ErrInvalidInput
	}
	if err := validate(ch, value); err != nil {
		return false, err
	}

	ok, err := s.repo.Set(ctx, recordID, ch, value)
	if err != nil {
		return false, fmt.Errorf("set marker %s on %d: %w", ch, recordID, err)
	}
	if ok {
		markerWritesTotal.WithLabelValues(string(ch)).Inc()
	}
	return ok, nil
}

// SetMany aplica el mismo canal/valor a varios registros.
// Devuelve cuántos registros existían y fueron actualizados.
func (s *Service) SetMany(ctx context.Context, ids []int64, ch Channel, value int) (int, error) {
	if len(ids) == 0 {
		return 0, ErrInvalidInput
	}
	if err := validate(ch, value); err != nil {
		return 0, err
	}

	updated := 0
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		ok, err := s.Set(ctx, id, ch, value)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				continue
			}
			return updated, err
		}
		if ok {
			updated++
		}
	}

	s.log.Info("marcadores aplicados", map[string]any{
		"channel": string(ch),
		"value":   value,
		"ids":     len(ids),
		"updated": updated,
	})
	return updated, nil
}

// Get devuelve el estado actual; sin fila => todos los canales en 0.
func (s *Service) Get(ctx context.Context, recordID int64) (State, error) {
	if recordID <= 0 {
		return State{}, ErrInvalidInput
	}
	st, ok, err := s.repo.Get(ctx, recordID)
	if err != nil {
		return State{}, err
	}
	if !ok {
		return State{RecordID: recordID, Values: map[Channel]int{}}, nil
	}
	return st, nil
}
