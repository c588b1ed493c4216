package pgsql

import (
	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(dbPool),
		JournalRepo:     newPgxJournalRepository(dbPool),
		SequenceRepo:    newPgxSequenceRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
		TempleRepo:      newPgxTempleRepository(dbPool),
		DevoteeRepo:     newPgxDevoteeRepository(dbPool),
		DonationRepo:    newPgxDonationRepository(dbPool),
		SevaRepo:        newPgxSevaRepository(dbPool),
		SponsorshipRepo: newPgxSponsorshipRepository(dbPool),
		InventoryRepo:   newPgxInventoryRepository(dbPool),
		AssetRepo:       newPgxAssetRepository(dbPool),
		PayrollRepo:     newPgxPayrollRepository(dbPool),
		HundiRepo:       newPgxHundiRepository(dbPool),
		BankRepo:        newPgxBankRepository(dbPool),
		ReportingRepo:   newPgxReportingRepository(dbPool),
	}
}
