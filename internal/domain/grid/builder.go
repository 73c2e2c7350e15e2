package grid

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"xfinance/internal/domain/columns"
	"xfinance/internal/domain/markers"
	"xfinance/internal/domain/permissions"
)

// Columnas auxiliares: siempre proyectadas, nunca devueltas al cliente.
const (
	auxPrefix     = "_aux_"
	AuxID         = auxPrefix + "id_princ"
	AuxInspection = auxPrefix + "dt_inspecao"
	AuxDelivered  = auxPrefix + "dt_entregue"
	AuxBilled     = auxPrefix + "dt_envio"
	AuxPaid       = auxPrefix + "dt_pago"
	AuxStored     = auxPrefix + "prazo"
)

var auxColumns = []struct{ alias, expr string }{
	{AuxID, "p.id_princ"},
	{AuxInspection, "p.dt_inspecao"},
	{AuxDelivered, "p.dt_entregue"},
	{AuxBilled, "p.dt_envio"},
	{AuxPaid, "p.dt_pago"},
	{AuxStored, "p.prazo"},
}

// Orden fijo de render de los joins conocidos.
var joinRenderOrder = []string{"c", "guy", "colab", "s", "a"}

var knownJoins = map[string]columns.Join{
	columns.JoinContr.Alias: columns.JoinContr,
	columns.JoinGuy.Alias:   columns.JoinGuy,
	columns.JoinColab.Alias: columns.JoinColab,
	columns.JoinSegur.Alias: columns.JoinSegur,
	columns.JoinAtivi.Alias: columns.JoinAtivi,
}

const markerJoin = "LEFT JOIN tempstate ts ON ts.state_id_princ = p.id_princ"

// PermissionResolver es lo que el builder necesita de permissions.Service.
type PermissionResolver interface {
	Resolve(ctx context.Context, role string) (permissions.FieldSet, error)
}

// BuildInput: Limit 0 = sin tope; AssignedTo 0 = sin filtro "mis registros".
type BuildInput struct {
	Role       string
	Order      OrderMode
	Limit      int
	AssignedTo int64
}

// Query es el SQL listo para ejecutar.
// Empty indica que el papel no ve ningún campo: no hay SQL que ejecutar.
type Query struct {
	SQL    string
	Args   []any
	Fields []string
	Joins  []columns.Join
	Empty  bool
}

type Builder struct {
	catalog *columns.Catalog
	perms   PermissionResolver
}

func NewBuilder(catalog *columns.Catalog, perms PermissionResolver) *Builder {
	if catalog == nil {
		catalog = columns.Default()
	}
	return &Builder{catalog: catalog, perms: perms}
}

// Build resuelve los permisos del papel y arma el SQL.
func (b *Builder) Build(ctx context.Context, in BuildInput) (Query, error) {
	fields, err := b.perms.Resolve(ctx, in.Role)
	if err != nil {
		return Query{}, err
	}
	return b.Compose(fields, in), nil
}

// Compose arma el SQL para un conjunto de campos ya resuelto. Es puro.
func (b *Builder) Compose(fields permissions.FieldSet, in BuildInput) Query {
	visible := b.visibleFields(fields)
	if len(visible) == 0 {
		return Query{Empty: true}
	}

	joins := newJoinSet()
	projection := make([]string, 0, len(visible)+len(markers.Channels)+len(auxColumns))

	for _, f := range visible {
		spec := b.catalog.Spec(f)
		projection = append(projection, spec.Expression+" AS "+columns.QuoteIdent(f))
		if spec.Join != nil {
			joins.add(*spec.Join)
		}
	}
	for _, alias := range orderJoins(in.Order) {
		joins.add(knownJoins[alias])
	}

	for _, ch := range markers.Channels {
		projection = append(projection, "COALESCE(ts."+string(ch)+", 0) AS "+columns.QuoteIdent(string(ch)))
	}
	for _, aux := range auxColumns {
		projection = append(projection, aux.expr+" AS "+columns.QuoteIdent(aux.alias))
	}

	var (
		sb    strings.Builder
		args  []any
		where []string
	)

	sb.WriteString("SELECT\n    ")
	sb.WriteString(strings.Join(projection, ",\n    "))
	sb.WriteString("\nFROM princ p")

	rendered := joins.ordered()
	for _, j := range rendered {
		sb.WriteString("\nLEFT JOIN " + j.Table + " " + j.Alias + " ON " + j.On)
	}
	sb.WriteString("\n" + markerJoin)

	assignedParam := ""
	if in.AssignedTo > 0 {
		args = append(args, in.AssignedTo)
		assignedParam = "$" + strconv.Itoa(len(args))
		where = append(where, "p.id_user_guilty = "+assignedParam)
	}

	if in.Limit > 0 {
		args = append(args, in.Limit)
		limitParam := "$" + strconv.Itoa(len(args))

		sub := "SELECT id_princ FROM princ"
		if assignedParam != "" {
			sub += " WHERE id_user_guilty = " + assignedParam
		}
		sub += " ORDER BY id_princ DESC LIMIT " + limitParam
		where = append(where, "p.id_princ IN ("+sub+")")
	}

	if len(where) > 0 {
		sb.WriteString("\nWHERE " + strings.Join(where, "\n  AND "))
	}

	sb.WriteString(OrderBy(in.Order))

	return Query{
		SQL:    sb.String(),
		Args:   args,
		Fields: visible,
		Joins:  rendered,
	}
}

// visibleFields ordena los campos permitidos y descarta los que chocarían con
// alias reservados (marcadores y auxiliares).
func (b *Builder) visibleFields(fields permissions.FieldSet) []string {
	out := make([]string, 0, fields.Len())
	for _, f := range fields.Names() {
		if isReservedAlias(f) {
			continue
		}
		out = append(out, f)
	}
	return b.catalog.SortFields(out)
}

func isReservedAlias(name string) bool {
	if strings.HasPrefix(name, auxPrefix) {
		return true
	}
	for _, ch := range markers.Channels {
		if name == string(ch) {
			return true
		}
	}
	return false
}

// joinSet acumula joins por alias; el primero registrado para un alias gana.
type joinSet struct {
	byAlias map[string]columns.Join
}

func newJoinSet() *joinSet {
	return &joinSet{byAlias: map[string]columns.Join{}}
}

func (s *joinSet) add(j columns.Join) {
	if j.Alias == "" || j.Table == "" {
		return
	}
	if _, ok := s.byAlias[j.Alias]; ok {
		return
	}
	s.byAlias[j.Alias] = j
}

func (s *joinSet) ordered() []columns.Join {
	out := make([]columns.Join, 0, len(s.byAlias))
	seen := make(map[string]struct{}, len(s.byAlias))
	for _, alias := range joinRenderOrder {
		if j, ok := s.byAlias[alias]; ok {
			out = append(out, j)
			seen[alias] = struct{}{}
		}
	}

	// joins de catálogos propios, después de los conocidos
	rest := make([]string, 0)
	for alias := range s.byAlias {
		if _, ok := seen[alias]; !ok {
			rest = append(rest, alias)
		}
	}
	sort.Strings(rest)
	for _, alias := range rest {
		out = append(out, s.byAlias[alias])
	}
	return out
}
