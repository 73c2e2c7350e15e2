package markers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"xfinance/internal/domain/permissions"
	"xfinance/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/acoes/marcar", setMarkersHandler(svc))
	r.Get("/inspections/{id}/markers", getMarkersHandler(svc))
}

type setMarkersRequest struct {
	IDs        []int64 `json:"ids_princ"`
	MarkerType string  `json:"marker_type"`
	Value      int     `json:"value"`
}

type actionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Updated int    `json:"updated"`
}

// setMarkersHandler godoc
// @Summary Aplicar o quitar marcadores
// @Description Canales: state_loc, state_dt_envio, state_dt_denvio, state_dt_pago. Valores 0-3 (0 quita). Requiere la acción `marcar`.
// @Tags markers
// @Accept json
// @Produce json
// @Param X-Debug-Role header string false "Solo en modo dev, papel del usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body setMarkersRequest true "Registros, canal y valor"
// @Success 200 {object} actionResponse
// @Failure 400 {string} string "canal o valor inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /acoes/marcar [post]
func setMarkersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, ok := middleware.RoleFrom(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !permissions.CanPerform(role, permissions.ActionMark) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req setMarkersRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ch, err := ParseChannel(req.MarkerType)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		updated, err := svc.SetMany(r.Context(), req.IDs, ch, req.Value)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "no records selected", http.StatusBadRequest)
			case errors.Is(err, ErrInvalidValue), errors.Is(err, ErrUnknownChannel):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		action := "aplicado"
		if req.Value == 0 {
			action = "removido"
		}
		writeJSON(w, http.StatusOK, actionResponse{
			Success: true,
			Message: fmt.Sprintf("Marcador %s em %d inspeção(ões)", action, updated),
			Updated: updated,
		})
	}
}

// getMarkersHandler godoc
// @Summary Marcadores de un registro
// @Tags markers
// @Produce json
// @Param id path int true "id_princ"
// @Success 200 {object} map[string]int
// @Failure 400 {string} string "invalid id"
// @Failure 401 {string} string "unauthorized"
// @Router /inspections/{id}/markers [get]
func getMarkersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.RoleFrom(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		st, err := svc.Get(r.Context(), id)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make(map[string]int, len(Channels))
		for _, c := range Channels {
			out[string(c)] = st.Get(c)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
