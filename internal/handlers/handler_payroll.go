package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/MandirMitra/mandir_mitra_app/internal/middleware"
)

// PayrollHandler handles employee and payroll requests.
type PayrollHandler struct {
	payrollService portssvc.PayrollSvcFacade
}

func newPayrollHandler(payrollService portssvc.PayrollSvcFacade) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

// registerPayrollRoutes sets up the employee and payroll routes.
func registerPayrollRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollSvcFacade) {
	h := newPayrollHandler(payrollService)

	employees := rg.Group("/employees")
	{
		employees.GET("", h.ListEmployees)
		employees.POST("", h.CreateEmployee)
		employees.PUT("/:employeeID", h.UpdateEmployee)
	}

	payroll := rg.Group("/payroll")
	{
		payroll.GET("/:month", h.ListPayroll)
		payroll.GET("/:month/export", h.ExportPayroll)
		payroll.POST("/generate", h.GeneratePayroll)
		payroll.POST("/:month/process", h.ProcessPayroll)
		payroll.POST("/:month/pay", h.PayPayroll)
	}
}

// CreateEmployee godoc
// @Summary Create employee
// @Description Registers a payroll employee. Accountant or above.
// @Tags payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /employees [post]
func (h *PayrollHandler) CreateEmployee(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	employee, err := h.payrollService.CreateEmployee(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// UpdateEmployee godoc
// @Summary Update employee
// @Tags payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employeeID path string true "Employee ID"
// @Param employee body dto.UpdateEmployeeRequest true "Fields to update"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /employees/{employeeID} [put]
func (h *PayrollHandler) UpdateEmployee(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	employee, err := h.payrollService.UpdateEmployee(c.Request.Context(), actor, c.Param("employeeID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// ListEmployees godoc
// @Summary List employees
// @Tags payroll
// @Produce json
// @Security BearerAuth
// @Param activeOnly query bool false "Only active employees"
// @Success 200 {array} dto.EmployeeResponse
// @Failure 500 {object} ErrorResponse
// @Router /employees [get]
func (h *PayrollHandler) ListEmployees(c *gin.Context) {
	actor := middleware.MustGetActor(c)
	activeOnly := c.Query("activeOnly") == "true"

	employees, err := h.payrollService.ListEmployees(c.Request.Context(), actor, activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.EmployeeResponse, len(employees))
	for i := range employees {
		resp[i] = dto.ToEmployeeResponse(&employees[i])
	}
	c.JSON(http.StatusOK, resp)
}

// payrollEntriesResponse converts payroll entries to their response DTOs.
func payrollEntriesResponse(entries []domain.PayrollEntry) []dto.PayrollEntryResponse {
	resp := make([]dto.PayrollEntryResponse, len(entries))
	for i := range entries {
		resp[i] = dto.ToPayrollEntryResponse(&entries[i])
	}
	return resp
}

// GeneratePayroll godoc
// @Summary Generate payroll
// @Description Creates PENDING payroll entries for all active employees for the month. A month can only be generated once. Accountant or above.
// @Tags payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payroll body dto.GeneratePayrollRequest true "Payroll month (YYYY-MM)"
// @Success 201 {array} dto.PayrollEntryResponse
// @Failure 400 {object} ErrorResponse "Month already generated or no active employees"
// @Failure 403 {object} ErrorResponse
// @Router /payroll/generate [post]
func (h *PayrollHandler) GeneratePayroll(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req dto.GeneratePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	entries, err := h.payrollService.GeneratePayroll(c.Request.Context(), actor, req.Month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payrollEntriesResponse(entries))
}

// ProcessPayroll godoc
// @Summary Process payroll
// @Description Moves a month's PENDING entries to PROCESSED and posts the salary accrual. Accountant or above.
// @Tags payroll
// @Produce json
// @Security BearerAuth
// @Param month path string true "Payroll month (YYYY-MM)"
// @Success 200 {array} dto.PayrollEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /payroll/{month}/process [post]
func (h *PayrollHandler) ProcessPayroll(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	entries, err := h.payrollService.ProcessPayroll(c.Request.Context(), actor, c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payrollEntriesResponse(entries))
}

// PayPayrollRequest carries the payment mode for a payroll payout.
type PayPayrollRequest struct {
	PaymentMode string `json:"paymentMode" binding:"required,oneof=CASH UPI CARD BANK_TRANSFER CHEQUE"`
}

// PayPayroll godoc
// @Summary Pay payroll
// @Description Moves a month's PROCESSED entries to PAID and posts the salary payment. Accountant or above.
// @Tags payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param month path string true "Payroll month (YYYY-MM)"
// @Param payment body PayPayrollRequest true "Payment mode"
// @Success 200 {array} dto.PayrollEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /payroll/{month}/pay [post]
func (h *PayrollHandler) PayPayroll(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req PayPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	entries, err := h.payrollService.PayPayroll(c.Request.Context(), actor, c.Param("month"), domain.PaymentMode(req.PaymentMode))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payrollEntriesResponse(entries))
}

// ListPayroll godoc
// @Summary List payroll entries
// @Tags payroll
// @Produce json
// @Security BearerAuth
// @Param month path string true "Payroll month (YYYY-MM)"
// @Success 200 {array} dto.PayrollEntryResponse
// @Failure 400 {object} ErrorResponse
// @Router /payroll/{month} [get]
func (h *PayrollHandler) ListPayroll(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	entries, err := h.payrollService.ListPayroll(c.Request.Context(), actor, c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payrollEntriesResponse(entries))
}

// ExportPayroll godoc
// @Summary Export payroll to Excel
// @Description Downloads a month's payroll register as an xlsx workbook.
// @Tags payroll
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param month path string true "Payroll month (YYYY-MM)"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Router /payroll/{month}/export [get]
func (h *PayrollHandler) ExportPayroll(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	data, err := h.payrollService.ExportPayrollExcel(c.Request.Context(), actor, c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="payroll-`+c.Param("month")+`.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
