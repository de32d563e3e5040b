package entity

import "time"

// ActivityType tipos de actividad admitidos (deben coincidir con el CHECK de la tabla activities).
type ActivityType string

const (
	ActivityCall    ActivityType = "call"
	ActivityEmail   ActivityType = "email"
	ActivityMeeting ActivityType = "meeting"
	ActivityTask    ActivityType = "task"
)

// ActivityTypes en el orden en que se muestran en los formularios.
var ActivityTypes = []ActivityType{ActivityCall, ActivityEmail, ActivityMeeting, ActivityTask}

// Valid informa si t es uno de los tipos enumerados (comparación exacta).
func (t ActivityType) Valid() bool {
	for _, v := range ActivityTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Activity registra una interacción con un contacto (se borra en cascada con él).
type Activity struct {
	ID           string
	ContactID    string
	Type         ActivityType
	Description  string
	ActivityDate time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
