package store

import "context"

// Store is the persistence boundary for the dashboard. Lookups by id
// return (nil, nil) when the record does not exist; callers decide
// whether absence is an error. Lists are scoped to a user and returned
// in creation order.
type Store interface {
	CreateUser(ctx context.Context, in InsertUser) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	CreateTemplate(ctx context.Context, in InsertTemplate) (*Template, error)
	GetTemplate(ctx context.Context, id string) (*Template, error)
	ListTemplates(ctx context.Context, userID string) ([]*Template, error)
	UpdateTemplate(ctx context.Context, id string, in UpdateTemplate) (*Template, error)
	// DeleteTemplate reports whether a template was actually removed.
	DeleteTemplate(ctx context.Context, id string) (bool, error)

	CreateInquiry(ctx context.Context, in InsertInquiry) (*Inquiry, error)
	GetInquiry(ctx context.Context, id string) (*Inquiry, error)
	ListInquiries(ctx context.Context, userID string) ([]*Inquiry, error)

	CreateResponse(ctx context.Context, in InsertResponse) (*Response, error)
	GetResponse(ctx context.Context, id string) (*Response, error)
	ListResponsesByInquiry(ctx context.Context, inquiryID string) ([]*Response, error)
	ListResponsesByTemplate(ctx context.Context, templateID string) ([]*Response, error)
	// ListResponsesByUser joins through the user's inquiries; responses
	// whose inquiry belongs to someone else never appear.
	ListResponsesByUser(ctx context.Context, userID string) ([]*Response, error)
	UpdateResponseFeedback(ctx context.Context, id string, in ResponseFeedback) (*Response, error)

	CreateIntegration(ctx context.Context, in InsertIntegration) (*Integration, error)
	GetIntegration(ctx context.Context, id string) (*Integration, error)
	ListIntegrations(ctx context.Context, userID string) ([]*Integration, error)
	UpdateIntegration(ctx context.Context, id string, in UpdateIntegration) (*Integration, error)

	CreateAnalytics(ctx context.Context, in InsertAnalytics) (*Analytics, error)
	// ListAnalytics returns rollups dated within the trailing window of
	// the given number of days, oldest first.
	ListAnalytics(ctx context.Context, userID string, days int) ([]*Analytics, error)
}
