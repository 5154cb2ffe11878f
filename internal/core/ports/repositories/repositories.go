package repositories

// RepositoryProvider bundles every repository implementation for wiring.
type RepositoryProvider struct {
	ReferenceRepo   ReferenceRepository
	OrderRepo       OrderRepositoryWithTx
	PaymentRepo     PaymentRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	ContactRepo     ContactRepositoryFacade
	AccountRepo     AccountRepositoryFacade
	UserRepo        UserRepositoryFacade
}
