package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/riding-hub/internal/domain"
	"github.com/spec-kit/riding-hub/internal/events"
	"github.com/spec-kit/riding-hub/internal/repository"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) add(user *domain.User) *domain.User {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Username, username) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByDisplayName(_ context.Context, displayName string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.DisplayName, displayName) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetAdmin(_ context.Context) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var admin *domain.User
	for _, user := range r.users {
		if user.Role != domain.RoleAdmin {
			continue
		}
		if admin == nil || user.CreatedAt.Before(admin.CreatedAt) {
			admin = user
		}
	}
	if admin == nil {
		return nil, pgx.ErrNoRows
	}
	copied := *admin
	return &copied, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.User{}
	for _, user := range r.users {
		if user.Role == role {
			out = append(out, *user)
		}
	}
	return out, nil
}

type fakeSignOffRepo struct {
	mu      sync.Mutex
	records map[string]*domain.SignOff
	order   []string
}

func newFakeSignOffRepo() *fakeSignOffRepo {
	return &fakeSignOffRepo{records: map[string]*domain.SignOff{}}
}

func (r *fakeSignOffRepo) Create(_ context.Context, signoff *domain.SignOff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if signoff.ID == "" {
		signoff.ID = uuid.NewString()
	}
	copied := *signoff
	r.records[signoff.ID] = &copied
	r.order = append(r.order, signoff.ID)
	return nil
}

func (r *fakeSignOffRepo) Update(_ context.Context, signoff *domain.SignOff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[signoff.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *signoff
	r.records[signoff.ID] = &copied
	return nil
}

func (r *fakeSignOffRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.records, id)
	return nil
}

func (r *fakeSignOffRepo) GetByID(_ context.Context, id string) (*domain.SignOff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record, ok := r.records[id]; ok {
		copied := *record
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeSignOffRepo) all() []domain.SignOff {
	out := []domain.SignOff{}
	for _, id := range r.order {
		if record, ok := r.records[id]; ok {
			out = append(out, *record)
		}
	}
	return out
}

func (r *fakeSignOffRepo) ListByExplorer(_ context.Context, explorerID string) ([]domain.SignOff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.SignOff{}
	for _, record := range r.all() {
		if record.ExplorerID == explorerID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *fakeSignOffRepo) ListPendingForAdvisor(_ context.Context, advisorID string) ([]domain.SignOff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.SignOff{}
	for _, record := range r.all() {
		if record.AdvisorID == advisorID && record.Status == domain.SignOffStatusRequested {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *fakeSignOffRepo) ListSignedByAdvisorName(_ context.Context, advisorName string) ([]domain.SignOff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.SignOff{}
	for _, record := range r.all() {
		if strings.EqualFold(record.AdvisorName, advisorName) && record.Status == domain.SignOffStatusSigned {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *fakeSignOffRepo) ListAll(_ context.Context) ([]domain.SignOff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.all(), nil
}

type fakeShiftRepo struct {
	mu   sync.Mutex
	logs map[string]*domain.ShiftLog
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{logs: map[string]*domain.ShiftLog{}}
}

func (r *fakeShiftRepo) Create(_ context.Context, log *domain.ShiftLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	copied := *log
	r.logs[log.ID] = &copied
	return nil
}

func (r *fakeShiftRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.logs[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.logs, id)
	return nil
}

func (r *fakeShiftRepo) GetByID(_ context.Context, id string) (*domain.ShiftLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log, ok := r.logs[id]; ok {
		copied := *log
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeShiftRepo) ListByExplorer(_ context.Context, explorerID string) ([]domain.ShiftLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.ShiftLog{}
	for _, log := range r.logs {
		if log.ExplorerID == explorerID {
			out = append(out, *log)
		}
	}
	return out, nil
}

func (r *fakeShiftRepo) ListAll(_ context.Context) ([]domain.ShiftLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.ShiftLog{}
	for _, log := range r.logs {
		out = append(out, *log)
	}
	return out, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []domain.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeMessageRepo) ListConversation(_ context.Context, a, b string) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Message{}
	for _, msg := range r.messages {
		if (msg.FromID == a && msg.ToID == b) || (msg.FromID == b && msg.ToID == a) {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) ListAll(_ context.Context) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Message, len(r.messages))
	copy(out, r.messages)
	return out, nil
}

type fakeSettingsRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{values: map[string]string{}}
}

func (r *fakeSettingsRepo) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if value, ok := r.values[key]; ok {
		return value, nil
	}
	return "", repository.ErrSettingNotFound
}

func (r *fakeSettingsRepo) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

// capturingDispatcher records every published event for assertions.
type capturingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *capturingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *capturingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *capturingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.Event, len(d.events))
	copy(out, d.events)
	return out
}
