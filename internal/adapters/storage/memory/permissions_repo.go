package memory

import (
	"context"
	"sort"
	"sync"

	"xfinance/internal/domain/columns"
	"xfinance/internal/domain/permissions"
)

// permissionsRepo es permi en memoria, para modo dev sin DB y tests.
type permissionsRepo struct {
	mu     sync.RWMutex
	byRole map[string][]string
}

// NewPermissionsRepo arranca con los papeles legados y sus columnas por defecto.
func NewPermissionsRepo() permissions.Repository {
	r := &permissionsRepo{byRole: make(map[string][]string)}
	for _, role := range columns.KnownRoles() {
		r.byRole[role] = columns.DefaultOrder(role)
	}
	return r
}

// NewPermissionsRepoFrom arranca con un mapa papel => columnas propio.
func NewPermissionsRepoFrom(seed map[string][]string) *permissionsRepo {
	r := &permissionsRepo{byRole: make(map[string][]string, len(seed))}
	for role, cols := range seed {
		r.byRole[role] = append([]string(nil), cols...)
	}
	return r
}

func (r *permissionsRepo) ColumnsForRole(ctx context.Context, role string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cols := r.byRole[role]
	out := make([]string, len(cols))
	copy(out, cols)
	return out, nil
}

func (r *permissionsRepo) Roles(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.byRole))
	for role := range r.byRole {
		out = append(out, role)
	}
	sort.Strings(out)
	return out, nil
}

// Grant reemplaza las columnas de un papel. Quien llama debe invalidar el cache.
func (r *permissionsRepo) Grant(role string, cols ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byRole[role] = append([]string(nil), cols...)
}
