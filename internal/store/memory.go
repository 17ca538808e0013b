package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore keeps everything in process memory behind a single RWMutex.
// Records are handed out as copies so callers can't reach into the
// maps; creation order is preserved per entity.
type MemStore struct {
	mu sync.RWMutex

	users        map[string]*User
	templates    map[string]*Template
	inquiries    map[string]*Inquiry
	responses    map[string]*Response
	integrations map[string]*Integration
	analytics    map[string]*Analytics

	templateOrder    []string
	inquiryOrder     []string
	responseOrder    []string
	integrationOrder []string
	analyticsOrder   []string
}

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		users:        make(map[string]*User),
		templates:    make(map[string]*Template),
		inquiries:    make(map[string]*Inquiry),
		responses:    make(map[string]*Response),
		integrations: make(map[string]*Integration),
		analytics:    make(map[string]*Analytics),
	}
}

var _ Store = (*MemStore)(nil)

func (s *MemStore) CreateUser(_ context.Context, in InsertUser) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := &User{
		ID:       uuid.New().String(),
		Username: in.Username,
		Password: in.Password,
	}
	s.users[u.ID] = u
	return cloneUser(u), nil
}

func (s *MemStore) GetUser(_ context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUser(s.users[id]), nil
}

func (s *MemStore) GetUserByUsername(_ context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (s *MemStore) CreateTemplate(_ context.Context, in InsertTemplate) (*Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	t := &Template{
		ID:        uuid.New().String(),
		UserID:    in.UserID,
		Name:      in.Name,
		Category:  in.Category,
		Subject:   cloneStringPtr(in.Subject),
		Content:   in.Content,
		Variables: []string{},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Variables != nil {
		t.Variables = append([]string{}, in.Variables...)
	}
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
	if in.SuccessRate != nil {
		t.SuccessRate = *in.SuccessRate
	}
	if in.TimesUsed != nil {
		t.TimesUsed = *in.TimesUsed
	}
	s.templates[t.ID] = t
	s.templateOrder = append(s.templateOrder, t.ID)
	return cloneTemplate(t), nil
}

func (s *MemStore) GetTemplate(_ context.Context, id string) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTemplate(s.templates[id]), nil
}

func (s *MemStore) ListTemplates(_ context.Context, userID string) ([]*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*Template{}
	for _, id := range s.templateOrder {
		if t := s.templates[id]; t.UserID == userID {
			out = append(out, cloneTemplate(t))
		}
	}
	return out, nil
}

func (s *MemStore) UpdateTemplate(_ context.Context, id string, in UpdateTemplate) (*Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.templates[id]
	if !ok {
		return nil, nil
	}
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Category != nil {
		t.Category = *in.Category
	}
	if in.Subject != nil {
		t.Subject = cloneStringPtr(in.Subject)
	}
	if in.Content != nil {
		t.Content = *in.Content
	}
	if in.Variables != nil {
		t.Variables = append([]string{}, in.Variables...)
	}
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
	if in.SuccessRate != nil {
		t.SuccessRate = *in.SuccessRate
	}
	if in.TimesUsed != nil {
		t.TimesUsed = *in.TimesUsed
	}
	// updatedAt moves forward even on a no-op update, and even when the
	// clock hasn't ticked since the last write.
	now := time.Now()
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Nanosecond)
	}
	t.UpdatedAt = now
	return cloneTemplate(t), nil
}

func (s *MemStore) DeleteTemplate(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[id]; !ok {
		return false, nil
	}
	delete(s.templates, id)
	for i, tid := range s.templateOrder {
		if tid == id {
			s.templateOrder = append(s.templateOrder[:i], s.templateOrder[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *MemStore) CreateInquiry(_ context.Context, in InsertInquiry) (*Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := &Inquiry{
		ID:               uuid.New().String(),
		UserID:           in.UserID,
		Subject:          cloneStringPtr(in.Subject),
		Content:          in.Content,
		Category:         cloneStringPtr(in.Category),
		Priority:         in.Priority,
		Source:           in.Source,
		Sender:           cloneStringPtr(in.Sender),
		AIClassification: cloneRaw(in.AIClassification),
		CreatedAt:        time.Now(),
	}
	if q.Priority == "" {
		q.Priority = PriorityNormal
	}
	if q.Source == "" {
		q.Source = SourceEmail
	}
	s.inquiries[q.ID] = q
	s.inquiryOrder = append(s.inquiryOrder, q.ID)
	return cloneInquiry(q), nil
}

func (s *MemStore) GetInquiry(_ context.Context, id string) (*Inquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneInquiry(s.inquiries[id]), nil
}

func (s *MemStore) ListInquiries(_ context.Context, userID string) ([]*Inquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*Inquiry{}
	for _, id := range s.inquiryOrder {
		if q := s.inquiries[id]; q.UserID == userID {
			out = append(out, cloneInquiry(q))
		}
	}
	return out, nil
}

func (s *MemStore) CreateResponse(_ context.Context, in InsertResponse) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &Response{
		ID:               uuid.New().String(),
		InquiryID:        in.InquiryID,
		TemplateID:       cloneStringPtr(in.TemplateID),
		Content:          in.Content,
		IsAutomated:      true,
		SentAt:           time.Now(),
		CustomerFeedback: cloneIntPtr(in.CustomerFeedback),
		Success:          cloneBoolPtr(in.Success),
	}
	if in.IsAutomated != nil {
		r.IsAutomated = *in.IsAutomated
	}
	if in.WasModified != nil {
		r.WasModified = *in.WasModified
	}
	s.responses[r.ID] = r
	s.responseOrder = append(s.responseOrder, r.ID)
	return cloneResponse(r), nil
}

func (s *MemStore) GetResponse(_ context.Context, id string) (*Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneResponse(s.responses[id]), nil
}

func (s *MemStore) ListResponsesByInquiry(_ context.Context, inquiryID string) ([]*Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*Response{}
	for _, id := range s.responseOrder {
		if r := s.responses[id]; r.InquiryID == inquiryID {
			out = append(out, cloneResponse(r))
		}
	}
	return out, nil
}

func (s *MemStore) ListResponsesByTemplate(_ context.Context, templateID string) ([]*Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*Response{}
	for _, id := range s.responseOrder {
		r := s.responses[id]
		if r.TemplateID != nil && *r.TemplateID == templateID {
			out = append(out, cloneResponse(r))
		}
	}
	return out, nil
}

func (s *MemStore) ListResponsesByUser(_ context.Context, userID string) ([]*Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Both halves of the join run under the same read lock so a write
	// can't slip between them.
	mine := make(map[string]struct{})
	for id, q := range s.inquiries {
		if q.UserID == userID {
			mine[id] = struct{}{}
		}
	}
	out := []*Response{}
	for _, id := range s.responseOrder {
		r := s.responses[id]
		if _, ok := mine[r.InquiryID]; ok {
			out = append(out, cloneResponse(r))
		}
	}
	return out, nil
}

func (s *MemStore) UpdateResponseFeedback(_ context.Context, id string, in ResponseFeedback) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.responses[id]
	if !ok {
		return nil, nil
	}
	if in.CustomerFeedback != nil {
		r.CustomerFeedback = cloneIntPtr(in.CustomerFeedback)
	}
	if in.Success != nil {
		r.Success = cloneBoolPtr(in.Success)
	}
	return cloneResponse(r), nil
}

func (s *MemStore) CreateIntegration(_ context.Context, in InsertIntegration) (*Integration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := &Integration{
		ID:          uuid.New().String(),
		UserID:      in.UserID,
		Platform:    in.Platform,
		Credentials: cloneRaw(in.Credentials),
		Settings:    json.RawMessage(`{}`),
		CreatedAt:   time.Now(),
	}
	if in.IsActive != nil {
		g.IsActive = *in.IsActive
	}
	if in.Settings != nil {
		g.Settings = cloneRaw(in.Settings)
	}
	s.integrations[g.ID] = g
	s.integrationOrder = append(s.integrationOrder, g.ID)
	return cloneIntegration(g), nil
}

func (s *MemStore) GetIntegration(_ context.Context, id string) (*Integration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneIntegration(s.integrations[id]), nil
}

func (s *MemStore) ListIntegrations(_ context.Context, userID string) ([]*Integration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*Integration{}
	for _, id := range s.integrationOrder {
		if g := s.integrations[id]; g.UserID == userID {
			out = append(out, cloneIntegration(g))
		}
	}
	return out, nil
}

func (s *MemStore) UpdateIntegration(_ context.Context, id string, in UpdateIntegration) (*Integration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.integrations[id]
	if !ok {
		return nil, nil
	}
	if in.Platform != nil {
		g.Platform = *in.Platform
	}
	if in.IsActive != nil {
		g.IsActive = *in.IsActive
	}
	if in.Credentials != nil {
		g.Credentials = cloneRaw(in.Credentials)
	}
	if in.Settings != nil {
		g.Settings = cloneRaw(in.Settings)
	}
	if in.LastSync != nil {
		t := *in.LastSync
		g.LastSync = &t
	}
	return cloneIntegration(g), nil
}

func (s *MemStore) CreateAnalytics(_ context.Context, in InsertAnalytics) (*Analytics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := &Analytics{
		ID:                   uuid.New().String(),
		UserID:               in.UserID,
		Date:                 time.Now(),
		TotalInquiries:       in.TotalInquiries,
		AutomatedResponses:   in.AutomatedResponses,
		ManualResponses:      in.ManualResponses,
		AverageResponseTime:  in.AverageResponseTime,
		CustomerSatisfaction: in.CustomerSatisfaction,
		TimeSaved:            in.TimeSaved,
	}
	s.analytics[a.ID] = a
	s.analyticsOrder = append(s.analyticsOrder, a.ID)
	return cloneAnalytics(a), nil
}

func (s *MemStore) ListAnalytics(_ context.Context, userID string, days int) ([]*Analytics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().AddDate(0, 0, -days)
	out := []*Analytics{}
	for _, id := range s.analyticsOrder {
		a := s.analytics[id]
		if a.UserID != userID || a.Date.Before(cutoff) {
			continue
		}
		out = append(out, cloneAnalytics(a))
	}
	return out, nil
}

func cloneUser(u *User) *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func cloneTemplate(t *Template) *Template {
	if t == nil {
		return nil
	}
	c := *t
	c.Subject = cloneStringPtr(t.Subject)
	c.Variables = append([]string{}, t.Variables...)
	return &c
}

func cloneInquiry(q *Inquiry) *Inquiry {
	if q == nil {
		return nil
	}
	c := *q
	c.Subject = cloneStringPtr(q.Subject)
	c.Category = cloneStringPtr(q.Category)
	c.Sender = cloneStringPtr(q.Sender)
	c.AIClassification = cloneRaw(q.AIClassification)
	return &c
}

func cloneResponse(r *Response) *Response {
	if r == nil {
		return nil
	}
	c := *r
	c.TemplateID = cloneStringPtr(r.TemplateID)
	c.CustomerFeedback = cloneIntPtr(r.CustomerFeedback)
	c.Success = cloneBoolPtr(r.Success)
	return &c
}

func cloneIntegration(g *Integration) *Integration {
	if g == nil {
		return nil
	}
	c := *g
	c.Credentials = cloneRaw(g.Credentials)
	c.Settings = cloneRaw(g.Settings)
	if g.LastSync != nil {
		t := *g.LastSync
		c.LastSync = &t
	}
	return &c
}

func cloneAnalytics(a *Analytics) *Analytics {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneBoolPtr(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneRaw(m json.RawMessage) json.RawMessage {
	if m == nil {
		return nil
	}
	return append(json.RawMessage{}, m...)
}
