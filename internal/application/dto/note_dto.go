package dto

// NoteInput datos normalizados del formulario de nota.
type NoteInput struct {
	Content string
}
