package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MandirMitra/mandir_mitra_app/internal/apperrors"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/MandirMitra/mandir_mitra_app/internal/utils/export"
)

type devoteeService struct {
	BaseService
	devoteeRepo portsrepo.DevoteeRepositoryFacade
}

// NewDevoteeService creates a new devotee service.
func NewDevoteeService(devoteeRepo portsrepo.DevoteeRepositoryFacade) portssvc.DevoteeSvcFacade {
	return &devoteeService{devoteeRepo: devoteeRepo}
}

var _ portssvc.DevoteeSvcFacade = (*devoteeService)(nil)

func (s *devoteeService) GetDevoteeByID(ctx context.Context, actor domain.Actor, devoteeID string) (*domain.Devotee, error) {
	return s.devoteeRepo.FindDevoteeByID(ctx, actor.TempleID, devoteeID)
}

func (s *devoteeService) ListDevotees(ctx context.Context, actor domain.Actor, search string, limit int, nextToken *string) (*dto.ListDevoteesResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	devotees, next, err := s.devoteeRepo.ListDevotees(ctx, actor.TempleID, search, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list devotees")
		return nil, err
	}
	resp := &dto.ListDevoteesResponse{
		Devotees:  make([]dto.DevoteeResponse, 0, len(devotees)),
		NextToken: next,
	}
	for i := range devotees {
		resp.Devotees = append(resp.Devotees, dto.ToDevoteeResponse(&devotees[i]))
	}
	return resp, nil
}

func (s *devoteeService) CreateDevotee(ctx context.Context, actor domain.Actor, req dto.CreateDevoteeRequest) (*domain.Devotee, error) {
	if err := s.RequireRole(actor, domain.RoleStaff); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	devotee := domain.Devotee{
		DevoteeID: uuid.NewString(),
		TempleID:  actor.TempleID,
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     req.Email,
		Address:   req.Address,
		Gotra:     req.Gotra,
		Nakshatra: req.Nakshatra,
		Rashi:     req.Rashi,
		PANNumber: strings.ToUpper(strings.TrimSpace(req.PANNumber)),
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.devoteeRepo.SaveDevotee(ctx, devotee); err != nil {
		s.LogError(ctx, err, "Failed to save devotee")
		return nil, err
	}
	s.LogInfo(ctx, "Devotee created", "devotee_id", devotee.DevoteeID)
	return &devotee, nil
}

func (s *devoteeService) UpdateDevotee(ctx context.Context, actor domain.Actor, devoteeID string, req dto.UpdateDevoteeRequest) (*domain.Devotee, error) {
	if err := s.RequireRole(actor, domain.RoleStaff); err != nil {
		return nil, err
	}

	devotee, err := s.devoteeRepo.FindDevoteeByID(ctx, actor.TempleID, devoteeID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		devotee.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		devotee.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		devotee.Email = *req.Email
	}
	if req.Address != nil {
		devotee.Address = *req.Address
	}
	if req.Gotra != nil {
		devotee.Gotra = *req.Gotra
	}
	if req.Nakshatra != nil {
		devotee.Nakshatra = *req.Nakshatra
	}
	if req.Rashi != nil {
		devotee.Rashi = *req.Rashi
	}
	if req.PANNumber != nil {
		devotee.PANNumber = strings.ToUpper(strings.TrimSpace(*req.PANNumber))
	}
	if req.IsActive != nil {
		devotee.IsActive = *req.IsActive
	}
	devotee.LastUpdatedAt = time.Now().UTC()
	devotee.LastUpdatedBy = actor.UserID

	if err := s.devoteeRepo.UpdateDevotee(ctx, *devotee); err != nil {
		s.LogError(ctx, err, "Failed to update devotee", "devotee_id", devoteeID)
		return nil, err
	}
	return devotee, nil
}

func (s *devoteeService) DeactivateDevotee(ctx context.Context, actor domain.Actor, devoteeID string) error {
	inactive := false
	_, err := s.UpdateDevotee(ctx, actor, devoteeID, dto.UpdateDevoteeRequest{IsActive: &inactive})
	return err
}

// devoteeCSVHeader is the expected column order for devotee imports.
var devoteeCSVHeader = []string{"Name", "Phone", "Email", "Address", "Gotra", "Nakshatra", "Rashi", "PAN"}

func (s *devoteeService) ImportDevoteesCSV(ctx context.Context, actor domain.Actor, r io.Reader) (*dto.ImportResult, error) {
	if err := s.RequireRole(actor, domain.RoleStaff); err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read CSV header: %s", apperrors.ErrValidation, err.Error())
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: CSV must have at least Name and Phone columns", apperrors.ErrValidation)
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

		req := devoteeRowToRequest(record)
		if req.Name == "" || req.Phone == "" {
			result.Skipped++
			result.Errors = append(result.Errors, dto.ImportRowError{Row: rowNum, Error: "name and phone are required"})
			continue
		}
		if len(req.Phone) < 10 || len(req.Phone) > 15 {
			result.Skipped++
			result.Errors = append(result.Errors, dto.ImportRowError{Row: rowNum, Error: fmt.Sprintf("invalid phone number %q", req.Phone)})
			continue
		}

		if _, err := s.CreateDevotee(ctx, actor, req); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, dto.ImportRowError{Row: rowNum, Error: err.Error()})
			continue
		}
		result.Imported++
	}

	s.LogInfo(ctx, "Devotee CSV import completed", "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

// devoteeRowToRequest maps a CSV record to a create request, tolerating
// short rows.
func devoteeRowToRequest(record []string) dto.CreateDevoteeRequest {
	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}
	return dto.CreateDevoteeRequest{
		Name:      field(0),
		Phone:     field(1),
		Email:     field(2),
		Address:   field(3),
		Gotra:     field(4),
		Nakshatra: field(5),
		Rashi:     field(6),
		PANNumber: field(7),
	}
}

func (s *devoteeService) ExportDevoteesExcel(ctx context.Context, actor domain.Actor) ([]byte, error) {
	var rows [][]interface{}
	var nextToken *string
	for {
		devotees, next, err := s.devoteeRepo.ListDevotees(ctx, actor.TempleID, "", 500, nextToken)
		if err != nil {
			return nil, err
		}
		for _, d := range devotees {
			status := "Active"
			if !d.IsActive {
				status = "Inactive"
			}
			rows = append(rows, []interface{}{d.Name, d.Phone, d.Email, d.Address, d.Gotra, d.Nakshatra, d.Rashi, d.PANNumber, status})
		}
		if next == nil {
			break
		}
		nextToken = next
	}

	headers := append(append([]string{}, devoteeCSVHeader...), "Status")
	return export.WriteSheet("Devotees", headers, rows)
}
