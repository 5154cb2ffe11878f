package services

import (
	portsrepo "github.com/gestion-app/gestion_backend/internal/core/ports/repositories"
	portssvc "github.com/gestion-app/gestion_backend/internal/core/ports/services"
)

// NewServicesProvider creates the service container with properly initialized
// dependencies.
func NewServicesProvider(repos *portsrepo.RepositoryProvider, notifier portssvc.EventNotifier) *portssvc.ServicesProvider {
	container := &portssvc.ServicesProvider{}

	container.ReferenceSvc = NewReferenceService(repos.ReferenceRepo)
	container.ContactSvc = NewContactService(repos.ContactRepo)
	container.AccountSvc = NewAccountService(repos.AccountRepo)
	container.UserSvc = NewUserService(repos.UserRepo)
	container.OrderSvc = NewOrderService(repos.OrderRepo, repos.ContactRepo, notifier)
	container.SettlementSvc = NewSettlementService(repos.PaymentRepo)
	container.TransactionSvc = NewTransactionService(repos.TransactionRepo)
	container.ReportingSvc = NewReportingService(repos.TransactionRepo)

	return container
}
