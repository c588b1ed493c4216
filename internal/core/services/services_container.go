package services

import (
	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/platform/config"
)

// NewServiceContainer wires every application service with its repository
// dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	userSvc := NewUserService(repos.UserRepo)
	journalSvc := NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.SequenceRepo, repos.ReportingRepo)
	postingSvc := NewPostingService(repos.AccountRepo, repos.JournalRepo, repos.SequenceRepo)

	return &portssvc.ServiceContainer{
		Token:       NewTokenService(cfg, userSvc),
		GoogleOAuth: NewGoogleOAuthHandlerService(cfg),
		User:        userSvc,
		Temple:      NewTempleService(repos.TempleRepo),
		Account:     NewAccountService(repos.AccountRepo),
		Journal:     journalSvc,
		Posting:     postingSvc,
		Devotee:     NewDevoteeService(repos.DevoteeRepo),
		Donation:    NewDonationService(repos.DonationRepo, repos.DevoteeRepo, repos.TempleRepo, repos.SequenceRepo, postingSvc),
		Seva:        NewSevaService(repos.SevaRepo, repos.DevoteeRepo, repos.AccountRepo, postingSvc, journalSvc),
		Sponsorship: NewSponsorshipService(repos.SponsorshipRepo, repos.DevoteeRepo, repos.SequenceRepo, postingSvc, journalSvc),
		Inventory:   NewInventoryService(repos.InventoryRepo, repos.SequenceRepo, postingSvc),
		Asset:       NewAssetService(repos.AssetRepo, repos.SequenceRepo, postingSvc),
		Payroll:     NewPayrollService(repos.PayrollRepo, repos.SequenceRepo, postingSvc),
		Hundi:       NewHundiService(repos.HundiRepo, repos.SequenceRepo, postingSvc),
		Bank:        NewBankService(repos.BankRepo, repos.AccountRepo, repos.SequenceRepo),
		Reporting:   NewReportingService(repos.ReportingRepo, repos.AccountRepo),
	}
}
