package services

// ServiceContainer holds instances of all the application services, injected
// into the handler layer at startup.
type ServiceContainer struct {
	Account        AccountSvc
	OpeningBalance OpeningBalanceSvc
	Journal        JournalSvc
	Balance        BalanceCalculatorSvc
	Reporting      ReportingSvc
	Ledger         LedgerSvc
	BalanceSheet   BalanceSheetSvc
	Closing        ClosingSvc
}
