package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/apperrors"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/MandirMitra/mandir_mitra_app/internal/middleware"
	"github.com/MandirMitra/mandir_mitra_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret-key-for-handler-tests"

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByID(ctx context.Context, actor domain.Actor, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, actor, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, actor domain.Actor, code string) (*domain.Account, error) {
	args := m.Called(ctx, actor, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, actor domain.Actor, activeOnly bool) ([]domain.Account, error) {
	args := m.Called(ctx, actor, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, actor domain.Actor, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, actor domain.Actor, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, actor, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, actor domain.Actor, accountID string) error {
	args := m.Called(ctx, actor, accountID)
	return args.Error(0)
}

func (m *MockAccountService) SeedDefaultChart(ctx context.Context, actor domain.Actor) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}

func (m *MockAccountService) UpsertMapping(ctx context.Context, actor domain.Actor, req dto.UpsertMappingRequest) (*domain.AccountMapping, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountMapping), args.Error(1)
}

func (m *MockAccountService) ListMappings(ctx context.Context, actor domain.Actor) ([]domain.AccountMapping, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountMapping), args.Error(1)
}

// --- Test Suite Setup ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockAccountService
	userID      string
	templeID    string
	token       string
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockAccountService)

	suite.router = gin.New()
	suite.router.Use(middleware.AuthMiddleware(testJWTSecret))
	v1 := suite.router.Group("/api/v1")
	registerAccountRoutes(v1, suite.mockService)

	suite.userID = uuid.NewString()
	suite.templeID = uuid.NewString()

	token, err := utils.GenerateJWT(suite.userID, suite.templeID, string(domain.RoleAccountant), testJWTSecret, time.Hour, "mm-test")
	suite.Require().NoError(err)
	suite.token = token
}

func (suite *AccountHandlerTestSuite) request(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+suite.token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestListAccounts() {
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), TempleID: suite.templeID, Code: "1101", Name: "Cash in Hand", AccountType: domain.AccountTypeAsset, SubType: domain.SubTypeCash, IsActive: true},
		{AccountID: uuid.NewString(), TempleID: suite.templeID, Code: "4101", Name: "General Donations", AccountType: domain.Income, IsActive: true},
	}
	suite.mockService.On("ListAccounts", mock.Anything, mock.MatchedBy(func(actor domain.Actor) bool {
		return actor.UserID == suite.userID && actor.TempleID == suite.templeID
	}), false).Return(accounts, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/accounts", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Accounts, 2)
	suite.Equal("1101", resp.Accounts[0].Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListAccounts_ActiveOnly() {
	suite.mockService.On("ListAccounts", mock.Anything, mock.Anything, true).Return([]domain.Account{}, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/accounts?activeOnly=true", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount() {
	created := &domain.Account{
		AccountID:   uuid.NewString(),
		TempleID:    suite.templeID,
		Code:        "1105",
		Name:        "Festival Cash",
		AccountType: domain.AccountTypeAsset,
		SubType:     domain.SubTypeCash,
		IsActive:    true,
	}
	suite.mockService.On("CreateAccount", mock.Anything, mock.Anything, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.Code == "1105" && req.AccountType == "ASSET"
	})).Return(created, nil).Once()

	body := `{"code":"1105","name":"Festival Cash","accountType":"ASSET","subType":"CASH"}`
	w := suite.request(http.MethodPost, "/api/v1/accounts", body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("1105", resp.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidBody() {
	w := suite.request(http.MethodPost, "/api/v1/accounts", `{"code":`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_BadCode() {
	// Code must be 4-5 numeric characters.
	body := `{"code":"ab","name":"Bad","accountType":"ASSET"}`
	w := suite.request(http.MethodPost, "/api/v1/accounts", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()
	suite.mockService.On("GetAccountByID", mock.Anything, mock.Anything, accountID).
		Return(nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)).Once()

	w := suite.request(http.MethodGet, "/api/v1/accounts/"+accountID, "")

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_Forbidden() {
	accountID := uuid.NewString()
	suite.mockService.On("GetAccountByID", mock.Anything, mock.Anything, accountID).
		Return(nil, fmt.Errorf("%w: ADMIN role required", apperrors.ErrForbidden)).Once()

	w := suite.request(http.MethodGet, "/api/v1/accounts/"+accountID, "")

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AccountHandlerTestSuite) TestMissingAuthorization() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestMalformedBearerToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
