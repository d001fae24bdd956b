package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

// EmptyResponse represents no content response (204)
type EmptyResponse struct{}

// TicketResponse represents a parking session
type TicketResponse struct {
	ID             string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Folio          string `json:"folio" example:"T-20250618-000123"`
	BranchID       string `json:"branch_id" example:"9b2e8400-e29b-41d4-a716-446655440001"`
	LicensePlate   string `json:"license_plate" example:"P123ABC"`
	VehicleType    string `json:"vehicle_type" example:"car"`
	EntryTime      string `json:"entry_time" example:"2025-06-18T08:30:00Z"`
	ExitTime       string `json:"exit_time,omitempty" example:"2025-06-18T11:45:00Z"`
	Status         string `json:"status" example:"OPEN"`
	IsSubscriber   bool   `json:"is_subscriber" example:"false"`
	SubscriptionID string `json:"subscription_id,omitempty" example:"7a1e8400-e29b-41d4-a716-446655440002"`
}

// ChargeResponse represents an itemized charge for a session
type ChargeResponse struct {
	TicketID                  string `json:"ticket_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	TotalHours                string `json:"total_hours" example:"4"`
	FreeHoursGranted          string `json:"free_hours_granted" example:"0"`
	SubscriptionHoursConsumed string `json:"subscription_hours_consumed" example:"0"`
	SubscriptionOverageHours  string `json:"subscription_overage_hours" example:"0"`
	DirectDiscountHours       string `json:"direct_discount_hours" example:"0"`
	BillableHours             string `json:"billable_hours" example:"4"`
	RateApplied               string `json:"rate_applied" example:"5.00"`
	FleetDiscountPct          string `json:"fleet_discount_percentage" example:"0"`
	BenefitDiscountAmount     string `json:"benefit_discount_amount" example:"0.00"`
	FleetDiscountAmount       string `json:"fleet_discount_amount" example:"0.00"`
	Subtotal                  string `json:"subtotal" example:"20.00"`
	SubscriptionOverageCharge string `json:"subscription_overage_charge" example:"0.00"`
	TotalAmount               string `json:"total_amount" example:"20.00"`
}

// ExitResponseDoc wraps the closed ticket together with its charge
type ExitResponseDoc struct {
	Ticket TicketResponse `json:"ticket"`
	Charge ChargeResponse `json:"charge"`
}

// TicketListResponse wraps ticket search results
type TicketListResponse struct {
	Tickets []TicketResponse `json:"tickets"`
}

// RateResponse represents an hourly rate effective over a date range
type RateResponse struct {
	ID            string `json:"id" example:"3c4e8400-e29b-41d4-a716-446655440003"`
	BranchID      string `json:"branch_id,omitempty" example:"9b2e8400-e29b-41d4-a716-446655440001"`
	AmountPerHour string `json:"amount_per_hour" example:"5.00"`
	StartDate     string `json:"start_date" example:"2025-06-01T00:00:00Z"`
	EndDate       string `json:"end_date,omitempty"`
}

// BenefitResponse represents the active commerce benefit of a branch
type BenefitResponse struct {
	ID               string `json:"id" example:"6d5e8400-e29b-41d4-a716-446655440004"`
	CommerceID       string `json:"commerce_id" example:"8f6e8400-e29b-41d4-a716-446655440005"`
	BranchID         string `json:"branch_id" example:"9b2e8400-e29b-41d4-a716-446655440001"`
	BenefitType      string `json:"benefit_type" example:"DIRECT_DISCOUNT"`
	DiscountMode     string `json:"discount_mode,omitempty" example:"HOURS"`
	DiscountValue    string `json:"discount_value,omitempty" example:"2"`
	SettlementPeriod string `json:"settlement_period" example:"WEEKLY"`
	IsActive         bool   `json:"is_active" example:"true"`
}

// FleetResponse represents a corporate fleet account
type FleetResponse struct {
	ID                   string `json:"id" example:"1a7e8400-e29b-41d4-a716-446655440006"`
	TaxID                string `json:"tax_id" example:"1234567-8"`
	Name                 string `json:"name" example:"Transportes El Quetzal"`
	PlateLimit           int    `json:"plate_limit" example:"25"`
	CorporateDiscountPct string `json:"corporate_discount_percentage" example:"10"`
	BillingPeriod        string `json:"billing_period" example:"MONTHLY"`
	IsActive             bool   `json:"is_active" example:"true"`
}

// FleetVehicleResponse represents a plate enrolled under a fleet
type FleetVehicleResponse struct {
	ID           string `json:"id" example:"2b8e8400-e29b-41d4-a716-446655440007"`
	FleetID      string `json:"fleet_id" example:"1a7e8400-e29b-41d4-a716-446655440006"`
	LicensePlate string `json:"license_plate" example:"C456DEF"`
	PlanCode     string `json:"plan_code" example:"B"`
	IsActive     bool   `json:"is_active" example:"true"`
}

// PlanResponse represents a subscription plan from the fixed catalog
type PlanResponse struct {
	Code                   string `json:"code" example:"B"`
	MonthlyHours           string `json:"monthly_hours" example:"20"`
	MonthlyDiscountPct     string `json:"monthly_discount_percentage" example:"5"`
	AnnualExtraDiscountPct string `json:"annual_additional_discount_percentage" example:"0"`
	BillingFrequency       string `json:"billing_frequency" example:"MONTHLY"`
}

// PlanListResponse wraps the plan catalog
type PlanListResponse struct {
	Plans []PlanResponse `json:"plans"`
}

// BenefitSettlementResponse represents a commerce settlement window summary
type BenefitSettlementResponse struct {
	BenefitID       string `json:"benefit_id" example:"6d5e8400-e29b-41d4-a716-446655440004"`
	CommerceID      string `json:"commerce_id" example:"8f6e8400-e29b-41d4-a716-446655440005"`
	BranchID        string `json:"branch_id" example:"9b2e8400-e29b-41d4-a716-446655440001"`
	BenefitType     string `json:"benefit_type" example:"DIRECT_DISCOUNT"`
	Period          string `json:"period" example:"WEEKLY"`
	WindowStart     string `json:"window_start" example:"2025-06-16T06:00:00Z"`
	WindowEnd       string `json:"window_end" example:"2025-06-23T06:00:00Z"`
	TicketCount     int64  `json:"ticket_count" example:"142"`
	TotalHours      string `json:"total_hours" example:"388"`
	DiscountedHours string `json:"discounted_hours" example:"240"`
	SponsoredAmount string `json:"sponsored_amount" example:"1200.00"`
	BilledAmount    string `json:"billed_amount" example:"740.00"`
}

// FleetSettlementResponse represents a fleet invoice window summary
type FleetSettlementResponse struct {
	FleetID        string `json:"fleet_id" example:"1a7e8400-e29b-41d4-a716-446655440006"`
	Name           string `json:"name" example:"Transportes El Quetzal"`
	TaxID          string `json:"tax_id" example:"1234567-8"`
	Period         string `json:"period" example:"MONTHLY"`
	WindowStart    string `json:"window_start" example:"2025-06-01T06:00:00Z"`
	WindowEnd      string `json:"window_end" example:"2025-07-01T06:00:00Z"`
	TicketCount    int64  `json:"ticket_count" example:"318"`
	TotalHours     string `json:"total_hours" example:"902"`
	DiscountAmount string `json:"discount_amount" example:"451.00"`
	PayableAmount  string `json:"payable_amount" example:"4059.00"`
}

// AuditEntryResponse represents an audit trail entry
type AuditEntryResponse struct {
	ID            string `json:"id" example:"4f9e8400-e29b-41d4-a716-446655440008"`
	Module        string `json:"module" example:"tarifas"`
	Entity        string `json:"entity" example:"branch_rate"`
	OperationType string `json:"operation_type" example:"Actualizacion"`
	UserID        string `json:"user_id" example:"admin@parqueo.gt"`
	ClientIP      string `json:"client_ip" example:"10.0.4.12"`
	CreatedAt     string `json:"created_at" example:"2025-06-18T15:04:05Z"`
}

// AuditListResponse wraps audit entries
type AuditListResponse struct {
	Entries []AuditEntryResponse `json:"entries"`
}

// NewSwagger creates and configures the Swagger documentation
func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Parqueo Billing API",
		Version:     "v1.0.0",
		Description: "Parking session billing, subscription entitlements and benefit settlement for multi-branch parking operations",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// Tickets

		// POST /v1/tickets/entry
		endpoint.New(
			endpoint.POST,
			"/tickets/entry",
			endpoint.WithTags("Tickets"),
			endpoint.WithSummary("Register a vehicle entry"),
			endpoint.WithDescription("Opens a parking session for the plate at the branch. The plate is normalized before any check; subscriber status is stamped at entry."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(TicketResponse{}, "201", "Session opened"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INVALID_PLATE", Message: "License plate format is invalid"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "BRANCH_NOT_FOUND", Message: "Branch not found or inactive"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "DUPLICATE_ACTIVE_TICKET", Message: "An open ticket already exists for this license plate"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "BRANCH_AT_CAPACITY", Message: "No spaces left for this vehicle type"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// POST /v1/tickets/:id/exit
		endpoint.New(
			endpoint.POST,
			"/tickets/{id}/exit",
			endpoint.WithTags("Tickets"),
			endpoint.WithSummary("Register a vehicle exit"),
			endpoint.WithDescription("Closes the session and settles its charge: resolves the rate effective at entry, applies subscription hours and benefit discounts, and draws consumed hours from the subscription pool in the same transaction."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Ticket UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ExitResponseDoc{}, "200", "Session closed and charged"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "BAD_REQUEST", Message: "Ticket id must be a valid UUID"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "TICKET_NOT_FOUND", Message: "Ticket not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "TICKET_ALREADY_CLOSED", Message: "Session is already closed"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "NO_ACTIVE_RATE", Message: "No active rate configured for this time"}, "500", "Internal Server Error"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/tickets/:id/charge-preview
		endpoint.New(
			endpoint.GET,
			"/tickets/{id}/charge-preview",
			endpoint.WithTags("Tickets"),
			endpoint.WithSummary("Preview the charge of an open session"),
			endpoint.WithDescription("Computes the charge as if the vehicle left now, without closing the session or consuming subscription hours."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Ticket UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ChargeResponse{}, "200", "Charge computed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "TICKET_NOT_FOUND", Message: "Ticket not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "TICKET_ALREADY_CLOSED", Message: "Session is already closed"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/tickets/folio/:folio
		endpoint.New(
			endpoint.GET,
			"/tickets/folio/{folio}",
			endpoint.WithTags("Tickets"),
			endpoint.WithSummary("Get a ticket by folio"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("folio", parameter.Path, parameter.WithDescription("Printed ticket folio")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(TicketResponse{}, "200", "Ticket retrieved"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "TICKET_NOT_FOUND", Message: "Ticket not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/tickets?license_plate=
		endpoint.New(
			endpoint.GET,
			"/tickets",
			endpoint.WithTags("Tickets"),
			endpoint.WithSummary("Search tickets by license plate"),
			endpoint.WithDescription("Lost-ticket path: returns the recent sessions for a plate, open session first."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("license_plate", parameter.Query, parameter.WithDescription("License plate, normalization applied server side")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(TicketListResponse{}, "200", "Tickets retrieved"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INVALID_PLATE", Message: "License plate format is invalid"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// Rates

		// PUT /v1/rates/base
		endpoint.New(
			endpoint.PUT,
			"/rates/base",
			endpoint.WithTags("Rates"),
			endpoint.WithSummary("Set the base hourly rate"),
			endpoint.WithDescription("Closes the current base rate and opens a new one effective immediately. History is append-only; past sessions keep the rate that was effective at their entry."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RateResponse{}, "200", "Base rate updated"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INVALID_AMOUNT", Message: "Rate amount must be greater than zero"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/branches/:id/rate
		endpoint.New(
			endpoint.GET,
			"/branches/{id}/rate",
			endpoint.WithTags("Rates"),
			endpoint.WithSummary("Resolve the effective rate for a branch"),
			endpoint.WithDescription("Returns the branch override if one is effective at the requested instant, else the base rate."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Branch UUID")),
				parameter.StrParam("at", parameter.Query, parameter.WithDescription("RFC3339 instant to resolve at (default: now)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RateResponse{}, "200", "Rate resolved"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "NO_ACTIVE_RATE", Message: "No rate effective at the requested instant"}, "500", "Internal Server Error"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// PUT /v1/branches/:id/rate
		endpoint.New(
			endpoint.PUT,
			"/branches/{id}/rate",
			endpoint.WithTags("Rates"),
			endpoint.WithSummary("Set a branch rate override"),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Branch UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RateResponse{}, "200", "Branch rate updated"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INVALID_AMOUNT", Message: "Rate amount must be greater than zero"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "BRANCH_NOT_FOUND", Message: "Branch not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// DELETE /v1/branches/:id/rate
		endpoint.New(
			endpoint.DELETE,
			"/branches/{id}/rate",
			endpoint.WithTags("Rates"),
			endpoint.WithSummary("Clear a branch rate override"),
			endpoint.WithDescription("Ends the branch override; the branch falls back to the base rate from now on. Past sessions are unaffected."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Branch UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmptyResponse{}, "204", "Override cleared"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "NOT_FOUND", Message: "Branch has no rate override"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// Benefits

		// GET /v1/branches/:id/benefit
		endpoint.New(
			endpoint.GET,
			"/branches/{id}/benefit",
			endpoint.WithTags("Benefits"),
			endpoint.WithSummary("Get the active benefit of a branch"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Branch UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(BenefitResponse{}, "200", "Benefit retrieved"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "BENEFIT_NOT_FOUND", Message: "Branch has no active benefit"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// PUT /v1/branches/:id/benefit
		endpoint.New(
			endpoint.PUT,
			"/branches/{id}/benefit",
			endpoint.WithTags("Benefits"),
			endpoint.WithSummary("Configure the benefit of a branch"),
			endpoint.WithDescription("Replaces the branch's benefit. A branch carries at most one active benefit; configuring a new one deactivates the previous."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Branch UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(BenefitResponse{}, "200", "Benefit configured"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INVALID_BENEFIT", Message: "Benefit configuration is invalid"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "BRANCH_NOT_FOUND", Message: "Branch not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// DELETE /v1/branches/:id/benefit
		endpoint.New(
			endpoint.DELETE,
			"/branches/{id}/benefit",
			endpoint.WithTags("Benefits"),
			endpoint.WithSummary("Deactivate the benefit of a branch"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Branch UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmptyResponse{}, "204", "Benefit deactivated"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "BENEFIT_NOT_FOUND", Message: "Branch has no active benefit"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// Fleets

		// GET /v1/fleets/:id
		endpoint.New(
			endpoint.GET,
			"/fleets/{id}",
			endpoint.WithTags("Fleets"),
			endpoint.WithSummary("Get a corporate fleet"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Fleet UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(FleetResponse{}, "200", "Fleet retrieved"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "FLEET_NOT_FOUND", Message: "Fleet not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// PUT /v1/fleets/:id/discount
		endpoint.New(
			endpoint.PUT,
			"/fleets/{id}/discount",
			endpoint.WithTags("Fleets"),
			endpoint.WithSummary("Set the corporate discount of a fleet"),
			endpoint.WithDescription("Corporate discount applies on top of the plan discount for every fleet vehicle; capped at 10 percent."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Fleet UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(FleetResponse{}, "200", "Discount updated"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INVALID_DISCOUNT", Message: "Corporate discount must be between 0 and 10 percent"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "FLEET_NOT_FOUND", Message: "Fleet not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// POST /v1/fleets/:id/vehicles
		endpoint.New(
			endpoint.POST,
			"/fleets/{id}/vehicles",
			endpoint.WithTags("Fleets"),
			endpoint.WithSummary("Enroll a vehicle in a fleet"),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Fleet UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(FleetVehicleResponse{}, "201", "Vehicle enrolled"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INVALID_PLATE", Message: "License plate format is invalid"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "FLEET_NOT_FOUND", Message: "Fleet not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "PLAN_NOT_FOUND", Message: "Unknown plan code"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "FLEET_VEHICLE_EXISTS", Message: "Plate already enrolled in a fleet"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "FLEET_PLATE_LIMIT", Message: "Fleet plate limit reached"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// Plans

		// GET /v1/plans
		endpoint.New(
			endpoint.GET,
			"/plans",
			endpoint.WithTags("Plans"),
			endpoint.WithSummary("List the subscription plan catalog"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(PlanListResponse{}, "200", "Plans retrieved"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/plans/:code
		endpoint.New(
			endpoint.GET,
			"/plans/{code}",
			endpoint.WithTags("Plans"),
			endpoint.WithSummary("Get a subscription plan"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("code", parameter.Path, parameter.WithDescription("Plan code (A-E)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(PlanResponse{}, "200", "Plan retrieved"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "PLAN_NOT_FOUND", Message: "Unknown plan code"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// PUT /v1/plans/:code
		endpoint.New(
			endpoint.PUT,
			"/plans/{code}",
			endpoint.WithTags("Plans"),
			endpoint.WithSummary("Update a subscription plan"),
			endpoint.WithDescription("Edits the parameters of an existing plan. The catalog is fixed: plans cannot be created or deleted. Changes apply to sessions opened after the change."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("code", parameter.Path, parameter.WithDescription("Plan code (A-E)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(PlanResponse{}, "200", "Plan updated"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Plan parameters are invalid"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "PLAN_NOT_FOUND", Message: "Unknown plan code"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// Settlements

		// GET /v1/settlements/benefits/:id
		endpoint.New(
			endpoint.GET,
			"/settlements/benefits/{id}",
			endpoint.WithTags("Settlements"),
			endpoint.WithSummary("Get the settlement summary of a commerce benefit"),
			endpoint.WithDescription("Aggregates the charges of the settlement window containing the requested instant. Windows are anchored to the branch timezone."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Benefit UUID")),
				parameter.StrParam("at", parameter.Query, parameter.WithDescription("RFC3339 instant selecting the window (default: now)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(BenefitSettlementResponse{}, "200", "Settlement computed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "BENEFIT_NOT_FOUND", Message: "Benefit not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/settlements/fleets/:id
		endpoint.New(
			endpoint.GET,
			"/settlements/fleets/{id}",
			endpoint.WithTags("Settlements"),
			endpoint.WithSummary("Get the invoice summary of a fleet"),
			endpoint.WithDescription("Aggregates the charges of the fleet's billing window containing the requested instant, using the operator's default timezone."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Fleet UUID")),
				parameter.StrParam("at", parameter.Query, parameter.WithDescription("RFC3339 instant selecting the window (default: now)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(FleetSettlementResponse{}, "200", "Invoice summary computed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "FLEET_NOT_FOUND", Message: "Fleet not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// Audit

		// GET /v1/audit
		endpoint.New(
			endpoint.GET,
			"/audit",
			endpoint.WithTags("Audit"),
			endpoint.WithSummary("List audit trail entries"),
			endpoint.WithDescription("Read-only view of the append-only configuration audit trail, newest first."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("module", parameter.Query, parameter.WithDescription("Filter by module: tarifas, planes, beneficios, flotillas, suscripciones")),
				parameter.IntParam("limit", parameter.Query, parameter.WithDescription("Maximum entries (default: 50, max: 200)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AuditListResponse{}, "200", "Entries retrieved"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
