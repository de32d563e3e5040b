// Package validation contiene los esquemas de los cuatro formularios de la aplicación.
// Cada esquema es una función pura: recibe los campos crudos y devuelve el valor
// normalizado o la lista ordenada de mensajes de rechazo.
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/contact-crm/internal/application/dto"
	"github.com/jhoicas/contact-crm/internal/domain/entity"
)

// Límites de longitud en caracteres.
const (
	MaxNameLength  = 255
	MaxPhoneLength = 64
	MaxTextLength  = 65535
)

// Mensaje compartido por company_id mal formado y company_id inexistente.
const MsgInvalidCompany = "Selected company is invalid"

// Formatos aceptados para activity_date, en orden de prueba.
var activityDateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// Campos admitidos por el formulario de contacto; cualquier otro se rechaza.
var contactFields = map[string]bool{
	"full_name":  true,
	"email":      true,
	"phone":      true,
	"company":    true,
	"company_id": true,
}

// clean recorta espacios y normaliza a NFC para que la longitud y las comparaciones
// no dependan de cómo el navegador compuso los acentos.
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

// Company valida el formulario de empresa.
func Company(f dto.Form) (dto.CompanyInput, []string) {
	var errs []string
	name := clean(f.Get("name"))
	switch {
	case name == "":
		errs = append(errs, "Name is required")
	case tooLong(name, MaxNameLength):
		errs = append(errs, fmt.Sprintf("Name must be at most %d characters", MaxNameLength))
	}
	return dto.CompanyInput{Name: name}, errs
}

// Contact valida el formulario de contacto. Un email vacío tras el recorte equivale a no
// tener email.
func Contact(f dto.Form) (dto.ContactInput, []string) {
	var errs []string
	in := dto.ContactInput{
		FullName:  clean(f.Get("full_name")),
		Email:     clean(f.Get("email")),
		Phone:     clean(f.Get("phone")),
		Company:   clean(f.Get("company")),
		CompanyID: strings.TrimSpace(f.Get("company_id")),
	}

	switch {
	case in.FullName == "":
		errs = append(errs, "Full name is required")
	case tooLong(in.FullName, MaxNameLength):
		errs = append(errs, fmt.Sprintf("Full name must be at most %d characters", MaxNameLength))
	}
	switch {
	case in.Email == "":
	case !emailPattern.MatchString(in.Email):
		errs = append(errs, "Email address is invalid")
	case tooLong(in.Email, MaxNameLength):
		errs = append(errs, fmt.Sprintf("Email must be at most %d characters", MaxNameLength))
	}
	if tooLong(in.Phone, MaxPhoneLength) {
		errs = append(errs, fmt.Sprintf("Phone must be at most %d characters", MaxPhoneLength))
	}
	if tooLong(in.Company, MaxNameLength) {
		errs = append(errs, fmt.Sprintf("Company must be at most %d characters", MaxNameLength))
	}

	var unknown []string
	for k := range f {
		if !contactFields[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		errs = append(errs, "Unknown field: "+k)
	}
	return in, errs
}

// Note valida el formulario de nota.
func Note(f dto.Form) (dto.NoteInput, []string) {
	var errs []string
	content := clean(f.Get("content"))
	switch {
	case content == "":
		errs = append(errs, "Content is required")
	case tooLong(content, MaxTextLength):
		errs = append(errs, fmt.Sprintf("Content must be at most %d characters", MaxTextLength))
	}
	return dto.NoteInput{Content: content}, errs
}

// Activity valida el formulario de actividad. El tipo se compara literalmente: un valor
// fuera de la enumeración es un rechazo, no se corrige.
func Activity(f dto.Form) (dto.ActivityInput, []string) {
	var errs []string
	in := dto.ActivityInput{
		Type:        entity.ActivityType(f.Get("type")),
		Description: clean(f.Get("description")),
	}
	if !in.Type.Valid() {
		errs = append(errs, "Type must be one of: call, email, meeting, task")
	}
	switch {
	case in.Description == "":
		errs = append(errs, "Description is required")
	case tooLong(in.Description, MaxTextLength):
		errs = append(errs, fmt.Sprintf("Description must be at most %d characters", MaxTextLength))
	}

	raw := strings.TrimSpace(f.Get("activity_date"))
	if raw == "" {
		errs = append(errs, "Activity date is required")
	} else if when, ok := ParseActivityDate(raw); ok {
		in.ActivityDate = when
	} else {
		errs = append(errs, "Activity date must use YYYY-MM-DDTHH:MM, YYYY-MM-DD HH:MM or YYYY-MM-DD")
	}
	return in, errs
}

// ParseActivityDate prueba los formatos admitidos en orden; gana el primero que parsea.
func ParseActivityDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range activityDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
