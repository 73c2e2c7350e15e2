package markers

import "strings"

// Channel es una de las cuatro columnas de tempstate.
type Channel string

const (
	ChannelLoc      Channel = "state_loc"
	ChannelDtEnvio  Channel = "state_dt_envio"
	ChannelDtDEnvio Channel = "state_dt_denvio"
	ChannelDtPago   Channel = "state_dt_pago"
)

// Channels en el orden de las columnas de tempstate.
var Channels = []Channel{ChannelLoc, ChannelDtEnvio, ChannelDtDEnvio, ChannelDtPago}

const (
	MinValue = 0
	MaxValue = 3
)

// ParseChannel valida el nombre contra la lista cerrada de canales.
func ParseChannel(s string) (Channel, error) {
	c := Channel(strings.TrimSpace(s))
	for _, known := range Channels {
		if c == known {
			return c, nil
		}
	}
	return "", ErrUnknownChannel
}

// State es la fila de tempstate de un registro (0 = sin marca, 1 azul, 2 amarillo, 3 rojo).
type State struct {
	RecordID int64
	Values   map[Channel]int
}

func (s State) Get(c Channel) int { return s.Values[c] }

// Zero indica que los cuatro canales están en 0.
func (s State) Zero() bool {
	for _, c := range Channels {
		if s.Values[c] != 0 {
			return false
		}
	}
	return true
}
