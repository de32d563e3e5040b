package dto

// Form campos crudos de un formulario URL-encoded (primer valor de cada clave).
type Form map[string]string

// Get devuelve el valor crudo o "" si no vino.
func (f Form) Get(key string) string {
	if f == nil {
		return ""
	}
	return f[key]
}

// Has informa si el campo vino en el envío (aunque sea vacío).
func (f Form) Has(key string) bool {
	_, ok := f[key]
	return ok
}
