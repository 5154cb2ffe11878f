package services

// ServicesProvider bundles every service implementation for wiring.
type ServicesProvider struct {
	ReferenceSvc   ReferenceSvcFacade
	OrderSvc       OrderSvcFacade
	SettlementSvc  SettlementSvcFacade
	TransactionSvc TransactionSvcFacade
	ReportingSvc   ReportingSvcFacade
	ContactSvc     ContactSvcFacade
	AccountSvc     AccountSvcFacade
	UserSvc        UserSvcFacade
}
