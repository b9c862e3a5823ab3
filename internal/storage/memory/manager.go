// Package memory implements the Vitae stores in process memory. It backs
// local runs without a database and the service and server tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bobmcallan/vitae/internal/interfaces"
	"github.com/bobmcallan/vitae/internal/models"
)

// Manager implements interfaces.StorageManager with maps guarded by one mutex.
type Manager struct {
	mu            sync.RWMutex
	users         map[string]models.User
	reports       map[string]models.HealthReport
	conversations map[string]models.Conversation
}

// NewManager creates an empty in-memory store.
func NewManager() *Manager {
	return &Manager{
		users:         make(map[string]models.User),
		reports:       make(map[string]models.HealthReport),
		conversations: make(map[string]models.Conversation),
	}
}

func (m *Manager) UserStore() interfaces.UserStore {
	return (*userStore)(m)
}

func (m *Manager) ReportStore() interfaces.ReportStore {
	return (*reportStore)(m)
}

func (m *Manager) ChatStore() interfaces.ChatStore {
	return (*chatStore)(m)
}

func (m *Manager) Close() error {
	return nil
}

type userStore Manager

func (s *userStore) GetUser(_ context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (s *userStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *userStore) SaveUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.users {
		if u.Email == user.Email && id != user.UserID {
			return models.ErrConflict
		}
	}
	s.users[user.UserID] = *user
	return nil
}

func (s *userStore) DeleteUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
	return nil
}

type reportStore Manager

func (s *reportStore) SaveReport(_ context.Context, report *models.HealthReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *report
	r.Tags = append([]string(nil), report.Tags...)
	s.reports[r.ReportID] = r
	return nil
}

func (s *reportStore) GetReport(_ context.Context, reportID string) (*models.HealthReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[reportID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &r, nil
}

func (s *reportStore) ListReports(_ context.Context, userID string) ([]*models.HealthReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.HealthReport
	for _, r := range s.reports {
		if r.UserID == userID {
			r := r
			out = append(out, &r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *reportStore) LatestReport(ctx context.Context, userID string) (*models.HealthReport, error) {
	reports, _ := s.ListReports(ctx, userID)
	if len(reports) == 0 {
		return nil, models.ErrNotFound
	}
	return reports[0], nil
}

func (s *reportStore) RecordDownload(_ context.Context, reportID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[reportID]
	if !ok {
		return models.ErrNotFound
	}
	r.DownloadCount++
	r.LastAccessed = at
	s.reports[reportID] = r
	return nil
}

func (s *reportStore) UpdateBookkeeping(_ context.Context, reportID string, update models.ReportUpdate) (*models.HealthReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[reportID]
	if !ok {
		return nil, models.ErrNotFound
	}
	if update.Starred != nil {
		r.Starred = *update.Starred
	}
	if update.Tags != nil {
		r.Tags = append([]string{}, update.Tags...)
	}
	s.reports[reportID] = r
	return &r, nil
}

type chatStore Manager

func (s *chatStore) SaveConversation(_ context.Context, conv *models.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *conv
	c.Messages = append([]models.ChatMessage(nil), conv.Messages...)
	s.conversations[c.ConversationID] = c
	return nil
}

func (s *chatStore) GetConversation(_ context.Context, conversationID string) (*models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.conversations[conversationID]
	if !ok {
		return nil, models.ErrNotFound
	}
	c.Messages = append([]models.ChatMessage(nil), c.Messages...)
	return &c, nil
}

func (s *chatStore) ListConversations(_ context.Context, userID string) ([]*models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Conversation
	for _, c := range s.conversations {
		if c.UserID == userID {
			c := c
			c.Messages = append([]models.ChatMessage(nil), c.Messages...)
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastActivity.After(out[j].LastActivity)
	})
	return out, nil
}

func (s *chatStore) AppendMessage(_ context.Context, conversationID string, msg models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.conversations[conversationID]
	if !ok {
		return models.ErrNotFound
	}
	c.Messages = append(append([]models.ChatMessage(nil), c.Messages...), msg)
	c.LastActivity = msg.Timestamp
	s.conversations[conversationID] = c
	return nil
}

var (
	_ interfaces.StorageManager = (*Manager)(nil)
	_ interfaces.UserStore      = (*userStore)(nil)
	_ interfaces.ReportStore    = (*reportStore)(nil)
	_ interfaces.ChatStore      = (*chatStore)(nil)
)
