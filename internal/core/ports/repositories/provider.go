package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// layer at startup.
type RepositoryProvider struct {
	AccountRepo        AccountRepositoryFacade
	JournalRepo        JournalRepositoryFacade
	OpeningBalanceRepo OpeningBalanceRepository
	BalanceSheetRepo   BalanceSheetRepository
	TxManager          TransactionManager
}
