package dto

import (
	"time"

	"github.com/jhoicas/contact-crm/internal/domain/entity"
)

// ActivityInput datos normalizados del formulario de actividad.
type ActivityInput struct {
	Type         entity.ActivityType
	Description  string
	ActivityDate time.Time
}
