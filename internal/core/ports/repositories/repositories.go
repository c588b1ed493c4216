package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	JournalRepo     JournalRepositoryFacade
	SequenceRepo    SequenceRepositoryFacade
	UserRepo        UserRepositoryFacade
	TempleRepo      TempleRepositoryFacade
	DevoteeRepo     DevoteeRepositoryFacade
	DonationRepo    DonationRepositoryFacade
	SevaRepo        SevaRepositoryFacade
	SponsorshipRepo SponsorshipRepositoryFacade
	InventoryRepo   InventoryRepositoryFacade
	AssetRepo       AssetRepositoryFacade
	PayrollRepo     PayrollRepositoryFacade
	HundiRepo       HundiRepositoryFacade
	BankRepo        BankRepositoryFacade
	ReportingRepo   ReportingRepositoryFacade
}
