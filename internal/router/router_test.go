package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"xfinance/internal/router"
)

// Sin DB: permisos y marcadores en memoria, grid responde 503.
func TestHTTP_DevMode_PermissionsAndMarkers(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	// 1) health y métricas
	{
		st, _ := doReq(t, ts.URL, "GET", "/health", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 health, got %d", st)
		}
		st, body := doReq(t, ts.URL, "GET", "/metrics", "", nil)
		if st != http.StatusOK || !strings.Contains(string(body), "xfinance_http_requests_total") {
			t.Fatalf("expected metrics exposition, got %d", st)
		}
	}

	// 2) sin papel no hay grid
	{
		st, _ := doReq(t, ts.URL, "GET", "/inspections", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without role, got %d", st)
		}
	}

	// 3) el Inspetor ve sus columnas pero no el financiero
	{
		st, body := doReq(t, ts.URL, "GET", "/permissions/me", "Inspetor", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 permissions/me, got %d body=%s", st, string(body))
		}
		var info struct {
			Papel      string   `json:"papel"`
			Colunas    []string `json:"colunas_permitidas"`
			Financeiro bool     `json:"pode_ver_financeiro"`
			PodeMarcar bool     `json:"pode_marcar"`
		}
		if err := json.Unmarshal(body, &info); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if info.Papel != "Inspetor" || info.Financeiro || info.PodeMarcar {
			t.Fatalf("unexpected info: %+v", info)
		}
		for _, c := range info.Colunas {
			if c == "honorario" {
				t.Fatalf("Inspetor must not see honorario")
			}
		}
	}

	// 4) columnas del grid en el orden del papel
	{
		st, body := doReq(t, ts.URL, "GET", "/inspections/columns", "Inspetor", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 columns, got %d", st)
		}
		var cols []struct {
			Field string `json:"field"`
		}
		if err := json.Unmarshal(body, &cols); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(cols) == 0 || cols[0].Field != "id_princ" || cols[1].Field != "id_segur" {
			t.Fatalf("unexpected columns: %s", string(body))
		}
	}

	// 5) papel sin permisos => grid vacío, sin tocar el store
	{
		st, body := doReq(t, ts.URL, "GET", "/inspections", "ghost", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 empty grid, got %d body=%s", st, string(body))
		}
		var resp struct {
			Data  []map[string]any `json:"data"`
			Total int              `json:"total"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Data == nil || resp.Total != 0 {
			t.Fatalf("expected empty data array, got %s", string(body))
		}
	}

	// 6) admin sin DB => 503; parámetros inválidos => 400
	{
		st, _ := doReq(t, ts.URL, "GET", "/inspections", "admin", nil)
		if st != http.StatusServiceUnavailable {
			t.Fatalf("expected 503 without DB, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/inspections?order=bogus", "admin", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 bad order, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/inspections?limit=0", "admin", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 bad limit, got %d", st)
		}
	}

	// 7) Inspetor no marca; BackOffice sí
	{
		payload := map[string]any{"ids_princ": []int64{5}, "marker_type": "state_loc", "value": 2}
		st, _ := doReq(t, ts.URL, "POST", "/acoes/marcar", "Inspetor", payload)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 marker by Inspetor, got %d", st)
		}
		st, body := doReq(t, ts.URL, "POST", "/acoes/marcar", "BackOffice", payload)
		if st != http.StatusOK {
			t.Fatalf("expected 200 marker by BackOffice, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/inspections/5/markers", "BackOffice", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get markers, got %d", st)
		}
		var m map[string]int
		if err := json.Unmarshal(body, &m); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if m["state_loc"] != 2 || m["state_dt_pago"] != 0 {
			t.Fatalf("unexpected markers: %v", m)
		}

		bad := map[string]any{"ids_princ": []int64{5}, "marker_type": "obs", "value": 1}
		st, _ = doReq(t, ts.URL, "POST", "/acoes/marcar", "BackOffice", bad)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 unknown channel, got %d", st)
		}
	}

	// 8) excluir solo admin; sin DB => 503
	{
		payload := map[string]any{"ids_princ": []int64{5}}
		st, _ := doReq(t, ts.URL, "POST", "/acoes/excluir", "BackOffice", payload)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 delete by BackOffice, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "POST", "/acoes/excluir", "admin", payload)
		if st != http.StatusServiceUnavailable {
			t.Fatalf("expected 503 delete without DB, got %d", st)
		}
	}

	// 9) invalidar cache: solo admin
	{
		st, _ := doReq(t, ts.URL, "POST", "/permissions/invalidate", "BackOffice", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 invalidate by BackOffice, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "POST", "/permissions/invalidate", "admin", nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 invalidate by admin, got %d", st)
		}
	}
}

func doReq(t *testing.T, baseURL, method, path, debugRole string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugRole != "" {
		req.Header.Set("X-Debug-User-ID", "1")
		req.Header.Set("X-Debug-Role", debugRole)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
