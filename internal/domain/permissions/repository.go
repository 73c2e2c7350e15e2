package permissions

import "context"

// Repository lee la tabla de gobierno permi (user_papel, coluna).
type Repository interface {
	ColumnsForRole(ctx context.Context, role string) ([]string, error)
	Roles(ctx context.Context) ([]string, error)
}

// Broadcaster propaga una invalidación a otras instancias del servicio.
type Broadcaster interface {
	PublishInvalidate(ctx context.Context) error
}
