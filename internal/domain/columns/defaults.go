package columns

// Roles conocidos del sistema legado.
const (
	RoleAdmin      = "admin"
	RoleBackOffice = "BackOffice"
	RoleInspetor   = "Inspetor"
)

func dateSpec(name, display string) Spec {
	return Spec{Name: name, Display: display, Format: FormatDate, Editable: true, Width: 90, Align: AlignCenter}
}

func currencySpec(name, display string) Spec {
	return Spec{Name: name, Display: display, Format: FormatCurrency, Editable: true, Width: 90, Align: AlignRight}
}

func defaultSpecs() []Spec {
	contr, guy, colab, segur, ativi := JoinContr, JoinGuy, JoinColab, JoinSegur, JoinAtivi

	return []Spec{
		{Name: "id_princ", Display: "ID", Format: FormatText, Width: 80, Align: AlignCenter, Hidden: true},
		{Name: "id_contr", Display: "Player", Format: FormatText, Width: 80, Align: AlignLeft,
			Expression: "COALESCE(c.player, '')", Join: &contr},
		{Name: "id_segur", Display: "Segurado", Format: FormatText, Width: 100, Align: AlignLeft,
			Expression: "COALESCE(s.segur_nome, '')", Join: &segur},
		{Name: "loc", Display: "Loc", Format: FormatLocation, Editable: true, Width: 50, Align: AlignCenter},
		{Name: "id_user_guilty", Display: "Guilty", Format: FormatText, Width: 70, Align: AlignCenter,
			Expression: "COALESCE(colab.nick, '')", Join: &colab},
		{Name: "id_user_guy", Display: "Guy", Format: FormatText, Width: 70, Align: AlignCenter,
			Expression: "COALESCE(guy.nick, '')", Join: &guy},
		{Name: "meta", Display: "META", Format: FormatBoolean, Editable: true, Width: 70, Align: AlignCenter},
		dateSpec("dt_inspecao", "Inspeção"),
		dateSpec("dt_entregue", "Entregue"),
		{Name: "prazo", Display: "Prazo", Format: FormatCalculated, Width: 60, Align: AlignCenter},
		dateSpec("dt_acerto", "Acerto"),
		dateSpec("dt_envio", "Envio"),
		dateSpec("dt_pago", "Pago"),
		currencySpec("honorario", "Honorários"),
		dateSpec("dt_denvio", "DEnvio"),
		dateSpec("dt_dpago", "DPago"),
		currencySpec("despesa", "Despesas"),
		dateSpec("dt_guy_pago", "GPago"),
		currencySpec("guy_honorario", "GHonorários"),
		dateSpec("dt_guy_dpago", "GDPago"),
		currencySpec("guy_despesa", "GDespesas"),
		{Name: "id_ativi", Display: "Atividade", Format: FormatText, Width: 120, Align: AlignCenter,
			Expression: "COALESCE(a.atividade, '')", Join: &ativi},
		{Name: "obs", Display: "Observação", Format: FormatText, Editable: true, Width: 220, Align: AlignLeft},
		{Name: "ms", Display: "MS", Format: FormatBoolean, Editable: true, Width: 40, Align: AlignCenter},

		// Alias legados: mismo dato que los id_* pero con nombre propio en permi.
		{Name: "player", Display: "Player", Format: FormatText, Width: 80, Align: AlignLeft,
			Expression: "COALESCE(c.player, '')", Join: &contr},
		{Name: "segur_nome", Display: "Segurado", Format: FormatText, Width: 100, Align: AlignLeft,
			Expression: "COALESCE(s.segur_nome, '')", Join: &segur},
		{Name: "step_atividade", Display: "Atividade", Format: FormatText, Width: 120, Align: AlignCenter,
			Expression: "COALESCE(a.atividade, '')", Join: &ativi},
		{Name: "guy_nick", Display: "Guy", Format: FormatText, Width: 70, Align: AlignCenter,
			Expression: "COALESCE(guy.nick, '')", Join: &guy},
		{Name: "guilty_nick", Display: "Guilty", Format: FormatText, Width: 70, Align: AlignCenter,
			Expression: "COALESCE(colab.nick, '')", Join: &colab},
	}
}

var defaultOrder = map[string][]string{
	RoleAdmin: {
		"id_princ", "id_contr", "id_segur", "loc", "id_user_guilty", "id_user_guy", "meta",
		"dt_inspecao", "dt_entregue", "prazo", "dt_acerto", "dt_envio", "dt_pago", "honorario",
		"dt_denvio", "dt_dpago", "despesa", "dt_guy_pago", "guy_honorario", "dt_guy_dpago",
		"guy_despesa", "id_ativi", "obs",
	},
	RoleBackOffice: {
		"id_princ", "id_contr", "id_segur", "loc", "id_user_guilty", "id_user_guy", "meta",
		"dt_inspecao", "dt_entregue", "prazo", "dt_acerto", "id_ativi", "obs",
	},
	RoleInspetor: {
		"id_princ", "id_segur", "loc", "meta", "dt_inspecao", "dt_entregue", "prazo", "id_ativi", "obs",
	},
}

// DefaultOrder devuelve el orden de columnas del grid para el papel.
// Papeles desconocidos usan el orden de admin.
func DefaultOrder(role string) []string {
	src, ok := defaultOrder[role]
	if !ok {
		src = defaultOrder[RoleAdmin]
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// KnownRoles lista los papeles con orden de columnas propio.
func KnownRoles() []string {
	return []string{RoleAdmin, RoleBackOffice, RoleInspetor}
}

// SensitiveColumns son las columnas financieras de sigilo alto.
var SensitiveColumns = map[string]struct{}{
	"honorario":     {},
	"despesa":       {},
	"guy_honorario": {},
	"guy_despesa":   {},
	"dt_pago":       {},
	"dt_dpago":      {},
	"dt_guy_pago":   {},
	"dt_guy_dpago":  {},
	"dt_acerto":     {},
}

// IsSensitive indica si la columna es de sigilo alto.
func IsSensitive(name string) bool {
	_, ok := SensitiveColumns[name]
	return ok
}
