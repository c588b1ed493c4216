package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MandirMitra/mandir_mitra_app/internal/apperrors"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/MandirMitra/mandir_mitra_app/internal/utils"
	"github.com/MandirMitra/mandir_mitra_app/internal/utils/export"
)

const receiptDocKey = "RCT"

type donationService struct {
	BaseService
	donationRepo portsrepo.DonationRepositoryFacade
	devoteeRepo  portsrepo.DevoteeRepositoryFacade
	templeRepo   portsrepo.TempleRepositoryFacade
	sequenceRepo portsrepo.SequenceRepositoryFacade
	poster       portssvc.PostingSvcFacade
}

// NewDonationService creates a new donation service.
func NewDonationService(
	donationRepo portsrepo.DonationRepositoryFacade,
	devoteeRepo portsrepo.DevoteeRepositoryFacade,
	templeRepo portsrepo.TempleRepositoryFacade,
	sequenceRepo portsrepo.SequenceRepositoryFacade,
	poster portssvc.PostingSvcFacade,
) portssvc.DonationSvcFacade {
	return &donationService{
		donationRepo: donationRepo,
		devoteeRepo:  devoteeRepo,
		templeRepo:   templeRepo,
		sequenceRepo: sequenceRepo,
		poster:       poster,
	}
}

var _ portssvc.DonationSvcFacade = (*donationService)(nil)

func (s *donationService) GetDonationByID(ctx context.Context, actor domain.Actor, donationID string) (*domain.Donation, error) {
	return s.donationRepo.FindDonationByID(ctx, actor.TempleID, donationID)
}

func (s *donationService) ListDonations(ctx context.Context, actor domain.Actor, params dto.ListDonationsParams) (*dto.ListDonationsResponse, error) {
	filter := portsrepo.ListDonationsFilter{
		FromDate:  params.FromDate,
		ToDate:    params.ToDate,
		DevoteeID: params.DevoteeID,
	}
	if params.Category != nil {
		c := domain.DonationCategory(*params.Category)
		filter.Category = &c
	}
	if params.PaymentMode != nil {
		m := domain.PaymentMode(*params.PaymentMode)
		filter.PaymentMode = &m
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	donations, next, err := s.donationRepo.ListDonations(ctx, actor.TempleID, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list donations")
		return nil, err
	}

	resp := &dto.ListDonationsResponse{
		Donations: make([]dto.DonationResponse, 0, len(donations)),
		NextToken: next,
	}
	for i := range donations {
		resp.Donations = append(resp.Donations, dto.ToDonationResponse(&donations[i]))
	}
	return resp, nil
}

func (s *donationService) CreateDonation(ctx context.Context, actor domain.Actor, req dto.CreateDonationRequest) (*domain.Donation, error) {
	if err := s.RequireRole(actor, domain.RoleStaff); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: donation amount must be positive", apperrors.ErrValidation)
	}

	var devoteeID *string
	if req.DevoteeID != "" {
		devotee, err := s.devoteeRepo.FindDevoteeByID(ctx, actor.TempleID, req.DevoteeID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: devotee %s not found", apperrors.ErrValidation, req.DevoteeID)
			}
			return nil, err
		}
		devoteeID = &devotee.DevoteeID
	}
	if req.EightyG && devoteeID == nil {
		return nil, fmt.Errorf("%w: 80G donations require an identified devotee", apperrors.ErrValidation)
	}

	seq, err := s.sequenceRepo.NextValue(ctx, actor.TempleID, receiptDocKey, req.DonationDate.Year())
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate receipt number")
		return nil, err
	}

	now := time.Now().UTC()
	donation := domain.Donation{
		DonationID:    uuid.NewString(),
		TempleID:      actor.TempleID,
		DevoteeID:     devoteeID,
		ReceiptNumber: fmt.Sprintf("%s/%d/%04d", receiptDocKey, req.DonationDate.Year(), seq),
		DonationDate:  req.DonationDate,
		Category:      domain.DonationCategory(req.Category),
		PaymentMode:   domain.PaymentMode(req.PaymentMode),
		Amount:        req.Amount,
		Purpose:       req.Purpose,
		EightyG:       req.EightyG,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.donationRepo.SaveDonation(ctx, donation); err != nil {
		s.LogError(ctx, err, "Failed to save donation")
		return nil, err
	}

	// The posting may fail if the chart of accounts is incomplete. The
	// donation is receipted regardless and can be posted later.
	if entry, postErr := s.poster.PostDonation(ctx, actor, &donation); postErr != nil {
		s.LogWarn(ctx, "Donation saved without accounting entry", "donation_id", donation.DonationID, "error", postErr.Error())
	} else {
		donation.JournalEntryID = &entry.EntryID
		if err := s.donationRepo.SetJournalEntryID(ctx, donation.DonationID, entry.EntryID); err != nil {
			s.LogError(ctx, err, "Failed to link donation to accounting entry", "donation_id", donation.DonationID)
			return nil, err
		}
	}
	s.LogInfo(ctx, "Donation receipted", "donation_id", donation.DonationID, "receipt_number", donation.ReceiptNumber)
	return &donation, nil
}

// ImportDonationsCSV expects columns Date, Devotee Phone, Category,
// Payment Mode, Amount, Purpose, 80G.
func (s *donationService) ImportDonationsCSV(ctx context.Context, actor domain.Actor, r io.Reader) (*dto.ImportResult, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("%w: cannot read CSV header: %s", apperrors.ErrValidation, err.Error())
	}

	result := &dto.ImportResult{}
	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, dto.ImportRowError{Row: rowNum, Error: err.Error()})
			continue
		}

		req, err := s.donationRowToRequest(ctx, actor.TempleID, record)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, dto.ImportRowError{Row: rowNum, Error: err.Error()})
			continue
		}

		if _, err := s.CreateDonation(ctx, actor, *req); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, dto.ImportRowError{Row: rowNum, Error: err.Error()})
			continue
		}
		result.Imported++
	}

	s.LogInfo(ctx, "Donation CSV import completed", "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

func (s *donationService) donationRowToRequest(ctx context.Context, templeID string, record []string) (*dto.CreateDonationRequest, error) {
	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	date, err := time.Parse("2006-01-02", field(0))
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", field(0))
	}
	amount, err := decimal.NewFromString(field(4))
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf("invalid amount %q", field(4))
	}

	req := &dto.CreateDonationRequest{
		DonationDate: date,
		Category:     strings.ToUpper(field(2)),
		PaymentMode:  strings.ToUpper(field(3)),
		Amount:       amount,
		Purpose:      field(5),
		EightyG:      strings.EqualFold(field(6), "yes") || strings.EqualFold(field(6), "true"),
	}
	if req.Category == "" {
		req.Category = string(domain.DonationGeneral)
	}
	if req.PaymentMode == "" {
		req.PaymentMode = string(domain.PaymentCash)
	}

	if phone := field(1); phone != "" {
		devotee, err := s.devoteeRepo.FindDevoteeByPhone(ctx, templeID, phone)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("no devotee with phone %q", phone)
			}
			return nil, err
		}
		req.DevoteeID = devotee.DevoteeID
	}
	return req, nil
}

func (s *donationService) ExportDonationsExcel(ctx context.Context, actor domain.Actor, params dto.ListDonationsParams) ([]byte, error) {
	var rows [][]interface{}
	params.Limit = 500
	params.NextToken = nil
	for {
		page, err := s.ListDonations(ctx, actor, params)
		if err != nil {
			return nil, err
		}
		for _, d := range page.Donations {
			eightyG := "No"
			if d.EightyG {
				eightyG = "Yes"
			}
			posted := "No"
			if d.AccountingPosted {
				posted = "Yes"
			}
			rows = append(rows, []interface{}{
				d.ReceiptNumber,
				d.DonationDate.Format("2006-01-02"),
				d.Category,
				d.PaymentMode,
				d.Amount.StringFixed(2),
				d.Purpose,
				eightyG,
				posted,
			})
		}
		if page.NextToken == nil {
			break
		}
		params.NextToken = page.NextToken
	}

	headers := []string{"Receipt No", "Date", "Category", "Payment Mode", "Amount", "Purpose", "80G", "Posted"}
	return export.WriteSheet("Donations", headers, rows)
}

func (s *donationService) GenerateReceiptPDF(ctx context.Context, actor domain.Actor, donationID string) ([]byte, error) {
	donation, err := s.donationRepo.FindDonationByID(ctx, actor.TempleID, donationID)
	if err != nil {
		return nil, err
	}
	temple, err := s.templeRepo.FindTempleByID(ctx, actor.TempleID)
	if err != nil {
		return nil, err
	}

	devoteeName := "Anonymous"
	panNumber := ""
	if donation.DevoteeID != nil {
		devotee, err := s.devoteeRepo.FindDevoteeByID(ctx, actor.TempleID, *donation.DevoteeID)
		if err != nil {
			return nil, err
		}
		devoteeName = devotee.Name
		panNumber = devotee.PANNumber
	}

	return export.DonationReceiptPDF(export.ReceiptData{
		TempleName:    temple.Name,
		TempleAddress: temple.Address,
		EightyGNumber: temple.EightyGNumber,
		ReceiptNumber: donation.ReceiptNumber,
		Date:          donation.DonationDate.Format("02-01-2006"),
		DevoteeName:   devoteeName,
		PANNumber:     panNumber,
		Category:      string(donation.Category),
		PaymentMode:   string(donation.PaymentMode),
		Purpose:       donation.Purpose,
		Amount:        utils.FormatINR(donation.Amount),
		EightyG:       donation.EightyG,
	})
}
