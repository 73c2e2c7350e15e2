// Package actions agrupa las acciones masivas sobre registros del grid
// (encaminhar, excluir), restringidas por la política de acciones por papel.
package actions

import (
	"context"
	"errors"
	"fmt"

	"xfinance/internal/domain/permissions"
	"xfinance/internal/platform/logger"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("forbidden")
	ErrUserNotFound       = errors.New("target user not found")
	ErrStoreNotConfigured = errors.New("actions store not configured")
)

type Repository interface {
	// UserNick devuelve el nick del usuario, o false si no existe.
	UserNick(ctx context.Context, userID int64) (string, bool, error)
	// Forward cambia el responsable (id_user_guilty) de los registros.
	Forward(ctx context.Context, ids []int64, userID int64) (int, error)
	// Delete borra registros y sus marcadores.
	Delete(ctx context.Context, ids []int64) (int, error)
}

type Service struct {
	repo Repository
	log  logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{repo: repo, log: log.With(map[string]any{"component": "actions"})}
}

type ForwardResult struct {
	Updated    int
	TargetNick string
}

// Forward encaminha los registros al usuario destino.
func (s *Service) Forward(ctx context.Context, role string, ids []int64, targetUserID int64) (ForwardResult, error) {
	if !permissions.CanPerform(role, permissions.ActionForward) {
		return ForwardResult{}, ErrForbidden
	}
	ids = uniquePositive(ids)
	if len(ids) == 0 || targetUserID <= 0 {
		return ForwardResult{}, ErrInvalidInput
	}
	if s.repo == nil {
		return ForwardResult{}, ErrStoreNotConfigured
	}

	nick, ok, err := s.repo.UserNick(ctx, targetUserID)
	if err != nil {
		return ForwardResult{}, fmt.Errorf("lookup user %d: %w", targetUserID, err)
	}
	if !ok {
		return ForwardResult{}, ErrUserNotFound
	}

	n, err := s.repo.Forward(ctx, ids, targetUserID)
	if err != nil {
		return ForwardResult{}, fmt.Errorf("forward records: %w", err)
	}

	s.log.Info("registros encaminhados", map[string]any{"papel": role, "ids": len(ids), "destino": targetUserID, "updated": n})
	return ForwardResult{Updated: n, TargetNick: nick}, nil
}

// Delete borra registros. Solo admin.
func (s *Service) Delete(ctx context.Context, role string, ids []int64) (int, error) {
	if !permissions.CanPerform(role, permissions.ActionDelete) {
		return 0, ErrForbidden
	}
	ids = uniquePositive(ids)
	if len(ids) == 0 {
		return 0, ErrInvalidInput
	}
	if s.repo == nil {
		return 0, ErrStoreNotConfigured
	}

	n, err := s.repo.Delete(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("delete records: %w", err)
	}

	s.log.Warn("registros excluídos", map[string]any{"papel": role, "ids": len(ids), "deleted": n})
	return n, nil
}

func uniquePositive(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
