package permissions

import (
	"encoding/json"
	"net/http"

	"xfinance/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/permissions", func(pr chi.Router) {
		pr.Get("/me", myPermissionsHandler(svc))
		pr.Get("/roles", listRolesHandler(svc))
		pr.Post("/invalidate", invalidateHandler(svc))
	})
}

// myPermissionsHandler godoc
// @Summary Permisos del papel actual
// @Description Columnas visibles y acciones permitidas para el papel del usuario autenticado.
// @Tags permissions
// @Produce json
// @Param X-Debug-Role header string false "Solo en modo dev, papel del usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} Info
// @Failure 401 {string} string "unauthorized"
// @Router /permissions/me [get]
func myPermissionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, ok := middleware.RoleFrom(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		info, err := svc.Info(r.Context(), role)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, info)
	}
}

// listRolesHandler godoc
// @Summary Papeles registrados en permi
// @Tags permissions
// @Produce json
// @Success 200 {array} string
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /permissions/roles [get]
func listRolesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, ok := middleware.RoleFrom(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !CanPerform(role, ActionManageUsers) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		roles, err := svc.Roles(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if roles == nil {
			roles = []string{}
		}
		writeJSON(w, http.StatusOK, roles)
	}
}

// invalidateHandler godoc
// @Summary Limpiar cache de permisos
// @Description Vacía el cache de permisos en esta instancia y lo propaga a las demás. Usar después de editar permi.
// @Tags permissions
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 502 {string} string "propagation failed"
// @Router /permissions/invalidate [post]
func invalidateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, ok := middleware.RoleFrom(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !IsAdmin(role) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := svc.InvalidateAll(r.Context()); err != nil {
			http.Error(w, "propagation failed", http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
