package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// AlertData represents one alert record
type AlertData struct {
	ID             string  `json:"id" example:"7f3c9a4e-2b1d-4f6a-9c8e-5d0b3a7f1e2c"`
	Status         string  `json:"status" example:"UNKNOWN"`
	MatchedWith    *string `json:"matched_with,omitempty" example:"Jane Smith"`
	Distance       float64 `json:"distance" example:"0.85"`
	ImageURL       string  `json:"image_url" example:"https://storage.googleapis.com/bucket/frame.jpg"`
	CroppedFaceURL string  `json:"cropped_face_url" example:"https://storage.googleapis.com/bucket/face.jpg"`
	CreatedAt      string  `json:"created_at" example:"2026-08-31T09:00:00Z"`
	Reviewed       bool    `json:"reviewed" example:"false"`
}

// ListAlertsResponse is the alert list with unread accounting
type ListAlertsResponse struct {
	Alerts      []AlertData `json:"alerts"`
	UnreadCount int         `json:"unread_count" example:"3"`
}

// EmployeeData represents one staff directory record
type EmployeeData struct {
	ID       string `json:"id" example:"emp-1"`
	Name     string `json:"name" example:"Jane Smith"`
	Email    string `json:"email" example:"jane@example.com"`
	Phone    string `json:"phone" example:"+1 234 567 891"`
	Role     string `json:"role" example:"Technical Support"`
	PhotoURL string `json:"photo_url" example:"https://storage.googleapis.com/bucket/jane.png"`
	Active   bool   `json:"active" example:"true"`
}

// ListEmployeesResponse is the staff roster
type ListEmployeesResponse struct {
	Employees []EmployeeData `json:"employees"`
}

// HealthResponse reports service health
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version,omitempty" example:"0.1.0"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"ALERT_NOT_FOUND"`
	Message string `json:"message" example:"Alert not found"`
}

// EmptyResponse represents no content response (204)
type EmptyResponse struct{}

// NewSwagger creates and configures the Swagger documentation
func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Sentinel Console API",
		Version:     "v0.1.0",
		Description: "Realtime security alert console: alert stream, review workflow, staff roster and evidence export",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// GET /v1/alerts - List alerts
		endpoint.New(
			endpoint.GET,
			"/alerts",
			endpoint.WithTags("Alerts"),
			endpoint.WithSummary("List recent alerts"),
			endpoint.WithDescription("Returns the 50 most recent alerts, newest first, with the unread count."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ListAlertsResponse{}, "200", "Current alert list"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// POST /v1/alerts/simulate - Inject synthetic alert
		endpoint.New(
			endpoint.POST,
			"/alerts/simulate",
			endpoint.WithTags("Alerts"),
			endpoint.WithSummary("Inject a synthetic alert"),
			endpoint.WithDescription("Prepends a locally generated alert to the list without contacting the store. Intended for demos and pipeline testing."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AlertData{}, "201", "Synthetic alert created"),
			}),
		),

		// POST /v1/alerts/{id}/review - Mark reviewed
		endpoint.New(
			endpoint.POST,
			"/alerts/{id}/review",
			endpoint.WithTags("Alerts"),
			endpoint.WithSummary("Mark an alert reviewed"),
			endpoint.WithDescription("Flips the reviewed flag of one listed alert. Idempotent; a store write failure surfaces as the record staying unreviewed."),
			endpoint.WithParams(parameter.StrParam("id", parameter.Path, parameter.WithDescription("Alert identifier"))),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmptyResponse{}, "204", "Review recorded"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "ALERT_NOT_FOUND", Message: "Alert not found"}, "404", "Not Found"),
			}),
		),

		// GET /v1/alerts/{id}/evidence - Evidence report
		endpoint.New(
			endpoint.GET,
			"/alerts/{id}/evidence",
			endpoint.WithTags("Alerts"),
			endpoint.WithSummary("Download the incident evidence report"),
			endpoint.WithDescription("Renders the fixed-layout PDF report for one alert. Image embedding failures degrade to a text reference."),
			endpoint.WithParams(parameter.StrParam("id", parameter.Path, parameter.WithDescription("Alert identifier"))),
			endpoint.WithProduce([]mime.MIME{mime.MIME("application/pdf")}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmptyResponse{}, "200", "PDF document"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "ALERT_NOT_FOUND", Message: "Alert not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/employees - Staff roster
		endpoint.New(
			endpoint.GET,
			"/employees",
			endpoint.WithTags("Employees"),
			endpoint.WithSummary("List the staff roster"),
			endpoint.WithDescription("Returns the staff directory read model, name ascending."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ListEmployeesResponse{}, "200", "Current roster"),
			}),
		),

		// GET /health - Health
		endpoint.New(
			endpoint.GET,
			"/health",
			endpoint.WithTags("System"),
			endpoint.WithSummary("Health check"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{}, "200", "Service healthy"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)
	return sw
}
