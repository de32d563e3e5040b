package dto

import "github.com/jhoicas/contact-crm/internal/domain/entity"

// Dashboard resumen de la página de inicio.
type Dashboard struct {
	CompanyCount     int
	ContactCount     int
	RecentActivities []*entity.Activity
}
