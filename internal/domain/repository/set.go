package repository

// Set agrupa los repositorios atados a una misma transacción.
type Set struct {
	Companies  CompanyRepository
	Contacts   ContactRepository
	Notes      NoteRepository
	Activities ActivityRepository
}
