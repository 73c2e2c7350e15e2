package markers

import "context"

// Repository guarda tempstate.
//
// Set debe: con value != 0, crear la fila si falta y actualizar el canal;
// con value == 0, actualizar el canal y borrar la fila si los cuatro quedaron en 0.
// Devuelve false si el registro (princ) no existe.
type Repository interface {
	Set(ctx context.Context, recordID int64, ch Channel, value int) (bool, error)
	Get(ctx context.Context, recordID int64) (State, bool, error)
}
