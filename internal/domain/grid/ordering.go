package grid

import (
	"errors"
	"strings"
)

type OrderMode string

const (
	OrderNormal   OrderMode = "normal"
	OrderPlayer   OrderMode = "player"
	OrderDeadline OrderMode = "deadline"
)

var ErrInvalidOrderMode = errors.New("invalid order mode")

// ParseOrderMode acepta normal, player y deadline (también "prazo", nombre legado).
// Vacío => normal.
func ParseOrderMode(s string) (OrderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return OrderNormal, nil
	case "player":
		return OrderPlayer, nil
	case "deadline", "prazo":
		return OrderDeadline, nil
	default:
		return "", ErrInvalidOrderMode
	}
}

// Las plantillas reproducen el orden del sistema legado (SQLite) en PostgreSQL:
// en SQLite NULL es el menor valor, de ahí NULLS FIRST en ASC y NULLS LAST en DESC,
// y los textos comparan por bytes (COLLATE "C").
//
// Estructura común:
//   - ms <> 0 va al final, ordenado por dt_inspecao DESC;
//   - grupos: 1 sin envio ni pago, 2 enviado sin pago, 3 pago con repasse al guy pendiente, 4 liquidado;
//   - claves propias de cada modo.

const orderHead = `
ORDER BY
    CASE
        WHEN COALESCE(p.ms, 0) = 0 THEN 0
        ELSE 1
    END,
    CASE
        WHEN COALESCE(p.ms, 0) = 1 THEN p.dt_inspecao
        ELSE NULL
    END DESC NULLS LAST,
    CASE
        WHEN COALESCE(p.ms, 0) = 0 THEN
            CASE
                WHEN p.dt_envio IS NULL AND p.dt_pago IS NULL THEN 1
                WHEN p.dt_envio IS NOT NULL AND p.dt_pago IS NULL THEN 2
                WHEN p.dt_pago IS NOT NULL
                    AND ((p.dt_guy_pago IS NULL AND COALESCE(p.guy_honorario, 0) > 0)
                      OR (p.dt_guy_dpago IS NULL AND COALESCE(p.guy_despesa, 0) > 0)) THEN 3
                ELSE 4
            END
        ELSE NULL
    END NULLS FIRST,`

const orderPlayerTail = `
    CASE
        WHEN COALESCE(p.ms, 0) = 0 THEN
            CASE
                WHEN p.dt_pago IS NOT NULL THEN p.dt_pago
                ELSE NULL
            END
        ELSE NULL
    END DESC NULLS LAST,
    CASE
        WHEN COALESCE(p.ms, 0) = 0 THEN
            CASE
                WHEN p.dt_pago IS NULL THEN COALESCE(c.player, '') COLLATE "C"
                ELSE NULL
            END
        ELSE NULL
    END NULLS FIRST,
    CASE
        WHEN COALESCE(p.ms, 0) = 0 THEN
            CASE
                WHEN p.dt_pago IS NULL THEN p.dt_acerto
                ELSE NULL
            END
        ELSE NULL
    END DESC NULLS LAST`

const orderDeadlineTail = `
    CASE
        WHEN COALESCE(p.ms, 0) = 0 THEN
            CASE
                WHEN p.dt_pago IS NOT NULL THEN p.dt_pago
                ELSE NULL
            END
        ELSE NULL
    END DESC NULLS LAST,
    CASE
        WHEN COALESCE(p.ms, 0) = 0 THEN
            CASE
                WHEN p.dt_pago IS NULL THEN p.prazo
                ELSE NULL
            END
        ELSE NULL
    END DESC NULLS LAST,
    CASE
        WHEN COALESCE(p.ms, 0) = 0 THEN
            CASE
                WHEN p.dt_pago IS NULL THEN COALESCE(s.segur_nome, '') COLLATE "C"
                ELSE NULL
            END
        ELSE NULL
    END NULLS FIRST,
    CASE
        WHEN COALESCE(p.ms, 0) = 0 THEN
            CASE
                WHEN p.dt_pago IS NULL THEN p.dt_acerto
                ELSE NULL
            END
        ELSE NULL
    END DESC NULLS LAST`

const orderNormalTail = `
    CASE
        WHEN COALESCE(p.ms, 0) = 0 THEN
            CASE
                WHEN p.dt_envio IS NULL AND p.dt_pago IS NULL THEN p.prazo
                ELSE NULL
            END
        ELSE NULL
    END DESC NULLS LAST,
    CASE
        WHEN COALESCE(p.ms, 0) = 0 THEN
            CASE
                WHEN p.dt_envio IS NOT NULL AND p.dt_pago IS NULL THEN p.dt_envio
                ELSE NULL
            END
        ELSE NULL
    END ASC NULLS FIRST,
    CASE
        WHEN COALESCE(p.ms, 0) = 0 THEN
            CASE
                WHEN p.dt_envio IS NOT NULL AND p.dt_pago IS NULL THEN (CURRENT_DATE - p.dt_envio)
                ELSE NULL
            END
        ELSE NULL
    END DESC NULLS LAST,
    CASE
        WHEN COALESCE(p.ms, 0) = 0 THEN
            CASE
                WHEN p.dt_pago IS NOT NULL THEN p.dt_pago
                ELSE NULL
            END
        ELSE NULL
    END DESC NULLS LAST,
    CASE
        WHEN COALESCE(p.ms, 0) = 0 THEN
            CASE
                WHEN p.dt_pago IS NULL THEN COALESCE(s.segur_nome, '') COLLATE "C"
                ELSE NULL
            END
        ELSE NULL
    END NULLS FIRST,
    CASE
        WHEN COALESCE(p.ms, 0) = 0 THEN
            CASE
                WHEN p.dt_pago IS NULL THEN p.dt_acerto
                ELSE NULL
            END
        ELSE NULL
    END DESC NULLS LAST`

// Una constante por modo.
const (
	orderByNormal   = orderHead + orderNormalTail
	orderByPlayer   = orderHead + orderPlayerTail
	orderByDeadline = orderHead + orderDeadlineTail
)

// OrderBy devuelve la cláusula ORDER BY del modo; modos desconocidos usan normal.
func OrderBy(mode OrderMode) string {
	switch mode {
	case OrderPlayer:
		return orderByPlayer
	case OrderDeadline:
		return orderByDeadline
	default:
		return orderByNormal
	}
}

// orderJoins son los alias que el ORDER BY del modo referencia.
func orderJoins(mode OrderMode) []string {
	switch mode {
	case OrderPlayer:
		return []string{"c"}
	default:
		return []string{"s"}
	}
}
