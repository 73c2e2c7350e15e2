package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xfinance/internal/platform/logger"
)

type testRepo struct {
	users     map[int64]string
	forwarded []int64
	deleted   []int64
}

func (r *testRepo) UserNick(ctx context.Context, id int64) (string, bool, error) {
	nick, ok := r.users[id]
	return nick, ok, nil
}

func (r *testRepo) Forward(ctx context.Context, ids []int64, userID int64) (int, error) {
	r.forwarded = append(r.forwarded, ids...)
	return len(ids), nil
}

func (r *testRepo) Delete(ctx context.Context, ids []int64) (int, error) {
	r.deleted = append(r.deleted, ids...)
	return len(ids), nil
}

func TestForward(t *testing.T) {
	repo := &testRepo{users: map[int64]string{3: "ana"}}
	svc := NewService(repo, logger.NewNop())
	ctx := context.Background()

	res, err := svc.Forward(ctx, "BackOffice", []int64{10, 11, 10, -1}, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Updated)
	assert.Equal(t, "ana", res.TargetNick)
	assert.Equal(t, []int64{10, 11}, repo.forwarded)

	_, err = svc.Forward(ctx, "BackOffice", []int64{10}, 99)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Forward(ctx, "Inspetor", []int64{10}, 3)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Forward(ctx, "admin", nil, 3)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_AdminOnly(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo, logger.NewNop())
	ctx := context.Background()

	_, err := svc.Delete(ctx, "BackOffice", []int64{1})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, repo.deleted)

	n, err := svc.Delete(ctx, "admin", []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestNilStore(t *testing.T) {
	svc := NewService(nil, nil)
	_, err := svc.Delete(context.Background(), "admin", []int64{1})
	assert.ErrorIs(t, err, ErrStoreNotConfigured)
}
