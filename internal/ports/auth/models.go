package auth

// Claims representa la información extraída del token.
// Role es el papel (admin, BackOffice, Inspetor...) que gobierna columnas y acciones.
type Claims struct {
	UserID string
	Email  string
	Role   string
}
