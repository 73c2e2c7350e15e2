package permissions

import (
	"sort"
	"strings"

	"xfinance/internal/domain/columns"
)

// FieldSet es el conjunto (inmutable) de campos lógicos visibles para un papel.
type FieldSet struct {
	m map[string]struct{}
}

// NewFieldSet normaliza (trim, sin vacíos ni duplicados) y congela los campos.
func NewFieldSet(fields ...string) FieldSet {
	m := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		m[f] = struct{}{}
	}
	return FieldSet{m: m}
}

func (s FieldSet) Has(field string) bool {
	_, ok := s.m[field]
	return ok
}

func (s FieldSet) Len() int { return len(s.m) }

func (s FieldSet) IsEmpty() bool { return len(s.m) == 0 }

// Names devuelve los campos en orden alfabético.
func (s FieldSet) Names() []string {
	out := make([]string, 0, len(s.m))
	for f := range s.m {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// HasAny indica si al menos uno de los campos está en el conjunto.
func (s FieldSet) HasAny(fields ...string) bool {
	for _, f := range fields {
		if s.Has(f) {
			return true
		}
	}
	return false
}

type Action string

const (
	ActionDelete      Action = "excluir"
	ActionForward     Action = "encaminhar"
	ActionMark        Action = "marcar"
	ActionEdit        Action = "editar"
	ActionManageUsers Action = "gerenciar_usuarios"
)

// ActionsByRole es la política fija de acciones por papel.
var ActionsByRole = map[string][]Action{
	columns.RoleAdmin:      {ActionDelete, ActionForward, ActionMark, ActionEdit, ActionManageUsers},
	columns.RoleBackOffice: {ActionForward, ActionMark},
	columns.RoleInspetor:   {},
}

// CanPerform responde si el papel puede ejecutar la acción.
func CanPerform(role string, action Action) bool {
	for _, a := range ActionsByRole[role] {
		if a == action {
			return true
		}
	}
	return false
}

// ActionsFor devuelve las acciones del papel en orden alfabético.
func ActionsFor(role string) []Action {
	src := ActionsByRole[role]
	out := make([]Action, len(src))
	copy(out, src)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func IsAdmin(role string) bool { return role == columns.RoleAdmin }

// Info resume permisos de un papel (columnas, acciones y flags derivados).
type Info struct {
	Role             string   `json:"papel"`
	Columns          []string `json:"colunas_permitidas"`
	TotalColumns     int      `json:"total_colunas"`
	Actions          []Action `json:"acoes_permitidas"`
	IsAdmin          bool     `json:"is_admin"`
	CanDelete        bool     `json:"pode_excluir"`
	CanForward       bool     `json:"pode_encaminhar"`
	CanMark          bool     `json:"pode_marcar"`
	CanViewFinancial bool     `json:"pode_ver_financeiro"`
}

func buildInfo(role string, fields FieldSet) Info {
	names := fields.Names()

	financial := false
	for _, f := range names {
		if columns.IsSensitive(f) {
			financial = true
			break
		}
	}

	return Info{
		Role:             role,
		Columns:          names,
		TotalColumns:     len(names),
		Actions:          ActionsFor(role),
		IsAdmin:          IsAdmin(role),
		CanDelete:        CanPerform(role, ActionDelete),
		CanForward:       CanPerform(role, ActionForward),
		CanMark:          CanPerform(role, ActionMark),
		CanViewFinancial: financial,
	}
}
