package usecase

import (
	"time"

	"github.com/google/uuid"
)

// parseID valida un identificador recibido por URL o formulario y devuelve su forma canónica.
// Un id mal formado se trata igual que uno inexistente.
func parseID(raw string) (string, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func newID() string {
	return uuid.New().String()
}

// now con precisión de microsegundos, la que conserva PostgreSQL.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
