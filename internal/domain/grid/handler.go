package grid

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"xfinance/internal/domain/permissions"
	"xfinance/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra rutas planas: /inspections/{id}/markers vive en otro paquete.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/inspections", listHandler(svc))
	r.Get("/inspections/count", countHandler(svc))
	r.Get("/inspections/columns", columnsHandler(svc))
	r.Get("/inspections/export.xlsx", exportHandler(svc))
}

type listResponse struct {
	Data    []Row    `json:"data"`
	Total   int      `json:"total"`
	Columns []Column `json:"columns"`
	Papel   string   `json:"papel"`
}

type countResponse struct {
	Total int `json:"total"`
}

// listHandler godoc
// @Summary Grid de inspeções
// @Description Devuelve solo los campos permitidos al papel, los 4 marcadores, el prazo calculado y los status de pago.
// @Tags inspections
// @Produce json
// @Param X-Debug-Role header string false "Solo en modo dev, papel del usuario"
// @Param X-Debug-User-ID header string false "Solo en modo dev, id del usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Param order query string false "normal | player | deadline"
// @Param limit query int false "Últimos N registros por id (1-10000)"
// @Param my_job query bool false "Solo registros donde soy responsable"
// @Success 200 {object} listResponse
// @Failure 400 {string} string "invalid query"
// @Failure 401 {string} string "unauthorized"
// @Failure 503 {string} string "storage unavailable"
// @Router /inspections [get]
func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, ok := middleware.RoleFrom(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		in, err := parseLoadInput(r, role)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rows, cols, err := loadWithColumns(r.Context(), svc, in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, listResponse{
			Data:    rows,
			Total:   len(rows),
			Columns: cols,
			Papel:   role,
		})
	}
}

// countHandler godoc
// @Summary Total de registros
// @Tags inspections
// @Produce json
// @Success 200 {object} countResponse
// @Failure 401 {string} string "unauthorized"
// @Router /inspections/count [get]
func countHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.RoleFrom(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		n, err := svc.Count(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, countResponse{Total: n})
	}
}

// columnsHandler godoc
// @Summary Columnas visibles del papel
// @Tags inspections
// @Produce json
// @Success 200 {array} Column
// @Failure 401 {string} string "unauthorized"
// @Router /inspections/columns [get]
func columnsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, ok := middleware.RoleFrom(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		cols, err := svc.Columns(r.Context(), role)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cols)
	}
}

// exportHandler godoc
// @Summary Exportar grid a Excel
// @Tags inspections
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param order query string false "normal | player | deadline"
// @Param limit query int false "Últimos N registros por id"
// @Param my_job query bool false "Solo registros donde soy responsable"
// @Success 200 {file} file
// @Failure 401 {string} string "unauthorized"
// @Router /inspections/export.xlsx [get]
func exportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, ok := middleware.RoleFrom(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		in, err := parseLoadInput(r, role)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rows, cols, err := loadWithColumns(r.Context(), svc, in)
		if err != nil {
			writeError(w, err)
			return
		}

		data, err := Export(cols, rows)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="inspecoes.xlsx"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func loadWithColumns(ctx context.Context, svc *Service, in BuildInput) ([]Row, []Column, error) {
	rows, err := svc.Load(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	cols, err := svc.Columns(ctx, in.Role)
	if err != nil {
		return nil, nil, err
	}
	return rows, cols, nil
}

func parseLoadInput(r *http.Request, role string) (BuildInput, error) {
	q := r.URL.Query()
	in := BuildInput{Role: role}

	order, err := ParseOrderMode(q.Get("order"))
	if err != nil {
		return in, err
	}
	in.Order = order

	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return in, ErrInvalidLimit
		}
		in.Limit = n
	}

	if mine, _ := strconv.ParseBool(q.Get("my_job")); mine {
		claims, _ := middleware.GetClaims(r.Context())
		uid, err := strconv.ParseInt(strings.TrimSpace(claims.UserID), 10, 64)
		if err != nil || uid <= 0 {
			return in, errors.New("my_job requires a numeric user id")
		}
		in.AssignedTo = uid
	}

	return in, nil
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidLimit), errors.Is(err, ErrInvalidInput), errors.Is(err, permissions.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
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
