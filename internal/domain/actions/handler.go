package actions

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"xfinance/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/acoes/encaminhar", forwardHandler(svc))
	r.Post("/acoes/excluir", deleteHandler(svc))
}

type forwardRequest struct {
	IDs          []int64 `json:"ids_princ"`
	TargetUserID int64   `json:"id_user_destino"`
}

type deleteRequest struct {
	IDs []int64 `json:"ids_princ"`
}

type actionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Updated *int   `json:"updated,omitempty"`
	Deleted *int   `json:"deleted,omitempty"`
}

// forwardHandler godoc
// @Summary Encaminhar registros
// @Description Cambia el responsable (id_user_guilty) de los registros. Requiere la acción `encaminhar`.
// @Tags actions
// @Accept json
// @Produce json
// @Param payload body forwardRequest true "Registros y usuario destino"
// @Success 200 {object} actionResponse
// @Failure 400 {string} string "no records selected"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "target user not found"
// @Router /acoes/encaminhar [post]
func forwardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, ok := middleware.RoleFrom(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req forwardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.Forward(r.Context(), role, req.IDs, req.TargetUserID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, actionResponse{
			Success: true,
			Message: fmt.Sprintf("%d inspeção(ões) encaminhada(s) para %s", res.Updated, res.TargetNick),
			Updated: &res.Updated,
		})
	}
}

// deleteHandler godoc
// @Summary Excluir registros
// @Description Borra registros y sus marcadores. Solo admin.
// @Tags actions
// @Accept json
// @Produce json
// @Param payload body deleteRequest true "Registros a borrar"
// @Success 200 {object} actionResponse
// @Failure 400 {string} string "no records selected"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /acoes/excluir [post]
func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, ok := middleware.RoleFrom(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req deleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		n, err := svc.Delete(r.Context(), role, req.IDs)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, actionResponse{
			Success: true,
			Message: fmt.Sprintf("%d inspeção(ões) excluída(s)", n),
			Deleted: &n,
		})
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "no records selected", http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrStoreNotConfigured):
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
