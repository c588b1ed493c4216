package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Token       TokenSvcFacade
	GoogleOAuth GoogleOAuthHandlerSvcFacade
	User        UserSvcFacade
	Temple      TempleSvcFacade
	Account     AccountSvcFacade
	Journal     JournalSvcFacade
	Posting     PostingSvcFacade
	Devotee     DevoteeSvcFacade
	Donation    DonationSvcFacade
	Seva        SevaSvcFacade
	Sponsorship SponsorshipSvcFacade
	Inventory   InventorySvcFacade
	Asset       AssetSvcFacade
	Payroll     PayrollSvcFacade
	Hundi       HundiSvcFacade
	Bank        BankSvcFacade
	Reporting   ReportingSvcFacade
}
