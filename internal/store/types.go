package store

import (
	"encoding/json"
	"time"
)

// Inquiry priority levels, assigned by the classifier at intake.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// SourceEmail is the default channel an inquiry arrives on when the
// client does not say otherwise.
const SourceEmail = "email"

// User is a dashboard account. Passwords are stored as given; there is
// no hashing in this version and all data is scoped to a single seeded
// demo account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Template is a reusable customer-service reply with Liquid-style
// {{ placeholder }} variables.
type Template struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Subject     *string   `json:"subject"`
	Content     string    `json:"content"`
	Variables   []string  `json:"variables"`
	IsActive    bool      `json:"isActive"`
	SuccessRate int       `json:"successRate"`
	TimesUsed   int       `json:"timesUsed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Inquiry is an incoming customer message. Category and priority are
// filled from the classifier's output at intake, never from the client.
type Inquiry struct {
	ID               string          `json:"id"`
	UserID           string          `json:"userId"`
	Subject          *string         `json:"subject"`
	Content          string          `json:"content"`
	Category         *string         `json:"category"`
	Priority         string          `json:"priority"`
	Source           string          `json:"source"`
	Sender           *string         `json:"sender"`
	AIClassification json.RawMessage `json:"aiClassification"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// Response is a reply sent for an inquiry, automated or manual. Only
// the feedback fields are mutable after creation.
type Response struct {
	ID               string    `json:"id"`
	InquiryID        string    `json:"inquiryId"`
	TemplateID       *string   `json:"templateId"`
	Content          string    `json:"content"`
	IsAutomated      bool      `json:"isAutomated"`
	WasModified      bool      `json:"wasModified"`
	SentAt           time.Time `json:"sentAt"`
	CustomerFeedback *int      `json:"customerFeedback"`
	Success          *bool     `json:"success"`
}

// Integration records a connection to a third-party platform. The
// credential and settings payloads are provider-defined and stored
// opaque. Duplicate (user, platform) pairs are allowed.
type Integration struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Platform    string          `json:"platform"`
	IsActive    bool            `json:"isActive"`
	Credentials json.RawMessage `json:"credentials"`
	Settings    json.RawMessage `json:"settings"`
	LastSync    *time.Time      `json:"lastSync"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Analytics is one day's usage rollup. Nothing enforces one record per
// day; the summary endpoint aggregates whatever falls in its window.
type Analytics struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"userId"`
	Date                 time.Time `json:"date"`
	TotalInquiries       int       `json:"totalInquiries"`
	AutomatedResponses   int       `json:"automatedResponses"`
	ManualResponses      int       `json:"manualResponses"`
	AverageResponseTime  int       `json:"averageResponseTime"`
	CustomerSatisfaction int       `json:"customerSatisfaction"`
	TimeSaved            int       `json:"timeSaved"`
}

// Insert shapes omit server-assigned fields (ids, timestamps, computed
// defaults). Pointer fields distinguish "omitted" from zero values.

// InsertUser is the payload for creating a user.
type InsertUser struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// InsertTemplate is the payload for creating a template.
type InsertTemplate struct {
	UserID      string   `json:"userId" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Subject     *string  `json:"subject"`
	Content     string   `json:"content" validate:"required"`
	Variables   []string `json:"variables"`
	IsActive    *bool    `json:"isActive"`
	SuccessRate *int     `json:"successRate"`
	TimesUsed   *int     `json:"timesUsed"`
}

// InsertInquiry is the payload for logging an inquiry.
type InsertInquiry struct {
	UserID           string          `json:"userId" validate:"required"`
	Subject          *string         `json:"subject"`
	Content          string          `json:"content" validate:"required"`
	Category         *string         `json:"category"`
	Priority         string          `json:"priority"`
	Source           string          `json:"source"`
	Sender           *string         `json:"sender"`
	AIClassification json.RawMessage `json:"aiClassification"`
}

// InsertResponse is the payload for recording a response.
type InsertResponse struct {
	InquiryID        string  `json:"inquiryId" validate:"required"`
	TemplateID       *string `json:"templateId"`
	Content          string  `json:"content" validate:"required"`
	IsAutomated      *bool   `json:"isAutomated"`
	WasModified      *bool   `json:"wasModified"`
	CustomerFeedback *int    `json:"customerFeedback"`
	Success          *bool   `json:"success"`
}

// InsertIntegration is the payload for registering an integration.
type InsertIntegration struct {
	UserID      string          `json:"userId" validate:"required"`
	Platform    string          `json:"platform" validate:"required"`
	IsActive    *bool           `json:"isActive"`
	Credentials json.RawMessage `json:"credentials"`
	Settings    json.RawMessage `json:"settings"`
}

// InsertAnalytics is the payload for writing a daily rollup. Date is
// stamped server-side.
type InsertAnalytics struct {
	UserID               string `json:"userId" validate:"required"`
	TotalInquiries       int    `json:"totalInquiries"`
	AutomatedResponses   int    `json:"automatedResponses"`
	ManualResponses      int    `json:"manualResponses"`
	AverageResponseTime  int    `json:"averageResponseTime"`
	CustomerSatisfaction int    `json:"customerSatisfaction"`
	TimeSaved            int    `json:"timeSaved"`
}

// Update shapes carry only the fields a caller may change; nil means
// leave the stored value alone. Updates are shallow merges with
// last-writer-wins semantics.

// UpdateTemplate is a partial template update.
type UpdateTemplate struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Subject     *string  `json:"subject"`
	Content     *string  `json:"content"`
	Variables   []string `json:"variables"`
	IsActive    *bool    `json:"isActive"`
	SuccessRate *int     `json:"successRate"`
	TimesUsed   *int     `json:"timesUsed"`
}

// UpdateIntegration is a partial integration update.
type UpdateIntegration struct {
	Platform    *string         `json:"platform"`
	IsActive    *bool           `json:"isActive"`
	Credentials json.RawMessage `json:"credentials"`
	Settings    json.RawMessage `json:"settings"`
	LastSync    *time.Time      `json:"lastSync"`
}

// ResponseFeedback carries the two post-creation mutable fields of a
// response.
type ResponseFeedback struct {
	CustomerFeedback *int  `json:"customerFeedback"`
	Success          *bool `json:"success"`
}
