package columns

import (
	"sort"
	"strings"
)

type Format string

const (
	FormatText       Format = "text"
	FormatDate       Format = "date"
	FormatCurrency   Format = "currency"
	FormatLocation   Format = "location"
	FormatCalculated Format = "calculated"
	FormatBoolean    Format = "boolean"
)

type Align string

const (
	AlignLeft   Align = "leftAligned"
	AlignCenter Align = "centerAligned"
	AlignRight  Align = "rightAligned"
)

// Join describe un LEFT JOIN que una columna necesita.
// El alias identifica el join: dos specs con el mismo alias comparten join.
type Join struct {
	Table string
	Alias string
	On    string
}

// Spec es la metadata estática de un campo lógico del grid.
type Spec struct {
	Name       string
	Display    string
	Format     Format
	Editable   bool
	Width      int
	Align      Align
	Hidden     bool
	Expression string
	Join       *Join
}

// Joins conocidos. Los alias son los del SQL legado; users sustituye a la tabla "user".
var (
	JoinContr = Join{Table: "contr", Alias: "c", On: "p.id_contr = c.id_contr"}
	JoinGuy   = Join{Table: "users", Alias: "guy", On: "p.id_user_guy = guy.id_user"}
	JoinColab = Join{Table: "users", Alias: "colab", On: "p.id_user_guilty = colab.id_user"}
	JoinSegur = Join{Table: "segur", Alias: "s", On: "p.id_segur = s.id_segur"}
	JoinAtivi = Join{Table: "ativi", Alias: "a", On: "p.id_ativi = a.id_ativi"}
)

// Catalog es inmutable después de construido; se puede compartir entre goroutines.
type Catalog struct {
	specs map[string]Spec
	order []string
	pos   map[string]int
}

// NewCatalog arma un catálogo con las specs en el orden dado.
func NewCatalog(specs []Spec) *Catalog {
	c := &Catalog{
		specs: make(map[string]Spec, len(specs)),
		order: make([]string, 0, len(specs)),
		pos:   make(map[string]int, len(specs)),
	}
	for _, s := range specs {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		if _, dup := c.specs[name]; dup {
			continue
		}
		s.Name = name
		if s.Expression == "" {
			s.Expression = "p." + name
		}
		c.specs[name] = s
		c.pos[name] = len(c.order)
		c.order = append(c.order, name)
	}
	return c
}

// Default devuelve el catálogo de columnas de princ.
func Default() *Catalog {
	return NewCatalog(defaultSpecs())
}

// Lookup devuelve la spec registrada, si existe.
func (c *Catalog) Lookup(name string) (Spec, bool) {
	s, ok := c.specs[name]
	return s, ok
}

// Spec nunca falla: un campo desconocido recibe metadata genérica y
// una proyección por identificador entre comillas.
func (c *Catalog) Spec(name string) Spec {
	if s, ok := c.specs[name]; ok {
		return s
	}
	return Spec{
		Name:       name,
		Display:    name,
		Format:     FormatText,
		Editable:   true,
		Width:      100,
		Align:      AlignLeft,
		Expression: "p." + QuoteIdent(name),
	}
}

// Names devuelve los campos registrados en orden canónico.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Position devuelve el índice canónico del campo, o -1 si no está registrado.
func (c *Catalog) Position(name string) int {
	if i, ok := c.pos[name]; ok {
		return i
	}
	return -1
}

// SortFields ordena campos por posición canónica; los desconocidos van al
// final en orden alfabético.
func (c *Catalog) SortFields(fields []string) []string {
	out := make([]string, len(fields))
	copy(out, fields)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := c.Position(out[i]), c.Position(out[j])
		switch {
		case pi >= 0 && pj >= 0:
			return pi < pj
		case pi >= 0:
			return true
		case pj >= 0:
			return false
		default:
			return out[i] < out[j]
		}
	})
	return out
}

// QuoteIdent escapa un identificador SQL (comillas dobles duplicadas).
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
