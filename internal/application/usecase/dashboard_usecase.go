package usecase

import (
	"context"

	"github.com/jhoicas/contact-crm/internal/application/dto"
	"github.com/jhoicas/contact-crm/internal/domain/repository"
)

// RecentActivityLimit cantidad de actividades recientes que muestra el inicio.
const RecentActivityLimit = 5

// DashboardUseCase resumen de la página de inicio.
type DashboardUseCase struct {
	tx TxRunner
}

func NewDashboardUseCase(tx TxRunner) *DashboardUseCase {
	return &DashboardUseCase{tx: tx}
}

// Summary cuenta empresas y contactos y trae las últimas actividades registradas.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.Dashboard, error) {
	out := &dto.Dashboard{}
	err := uc.tx.Run(ctx, func(r repository.Set) error {
		var err error
		if out.CompanyCount, err = r.Companies.Count(ctx); err != nil {
			return err
		}
		if out.ContactCount, err = r.Contacts.Count(ctx); err != nil {
			return err
		}
		out.RecentActivities, err = r.Activities.ListRecent(ctx, RecentActivityLimit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
