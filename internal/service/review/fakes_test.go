package review_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/curvelearn/curve-api/internal/domain"
	"github.com/curvelearn/curve-api/internal/store"
	"github.com/google/uuid"
)

// In-memory fakes for the store interfaces. WithTx returns the fake itself;
// the transaction boundary is exercised separately with sqlmock.

type pairKey struct {
	userID    uuid.UUID
	contentID uuid.UUID
}

type fakeUserStore struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

type fakeSubscriptionStore struct {
	subs map[uuid.UUID]*domain.Subscription
}

func newFakeSubscriptionStore() *fakeSubscriptionStore {
	return &fakeSubscriptionStore{subs: make(map[uuid.UUID]*domain.Subscription)}
}

func (f *fakeSubscriptionStore) GetByUser(_ context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	sub, ok := f.subs[userID]
	if !ok {
		return nil, store.ErrSubscriptionNotFound
	}
	return sub, nil
}

type fakeContentStore struct {
	contents  map[uuid.UUID]*domain.Content
	createErr error
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{contents: make(map[uuid.UUID]*domain.Content)}
}

func (f *fakeContentStore) Create(_ context.Context, content *domain.Content) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.contents[content.ID] = content
	return nil
}

func (f *fakeContentStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Content, error) {
	content, ok := f.contents[id]
	if !ok {
		return nil, store.ErrContentNotFound
	}
	return content, nil
}

func (f *fakeContentStore) ListByUser(_ context.Context, userID uuid.UUID, _, _ int) ([]*domain.Content, error) {
	var result []*domain.Content
	for _, content := range f.contents {
		if content.UserID == userID {
			result = append(result, content)
		}
	}
	return result, nil
}

func (f *fakeContentStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.contents[id]; !ok {
		return store.ErrContentNotFound
	}
	delete(f.contents, id)
	return nil
}

func (f *fakeContentStore) WithTx(_ *sql.Tx) store.ContentStore { return f }

type fakeScheduleStore struct {
	schedules map[pairKey]*domain.ReviewSchedule
	updateErr error
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{schedules: make(map[pairKey]*domain.ReviewSchedule)}
}

func (f *fakeScheduleStore) put(schedule *domain.ReviewSchedule) {
	f.schedules[pairKey{schedule.UserID, schedule.ContentID}] = schedule
}

func (f *fakeScheduleStore) Create(_ context.Context, schedule *domain.ReviewSchedule) error {
	key := pairKey{schedule.UserID, schedule.ContentID}
	if _, ok := f.schedules[key]; ok {
		return store.ErrScheduleExists
	}
	f.schedules[key] = schedule
	return nil
}

func (f *fakeScheduleStore) Get(_ context.Context, userID, contentID uuid.UUID) (*domain.ReviewSchedule, error) {
	schedule, ok := f.schedules[pairKey{userID, contentID}]
	if !ok {
		return nil, store.ErrScheduleNotFound
	}
	return schedule, nil
}

func (f *fakeScheduleStore) GetForUpdate(ctx context.Context, userID, contentID uuid.UUID) (*domain.ReviewSchedule, error) {
	return f.Get(ctx, userID, contentID)
}

func (f *fakeScheduleStore) Update(_ context.Context, schedule *domain.ReviewSchedule) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	key := pairKey{schedule.UserID, schedule.ContentID}
	if _, ok := f.schedules[key]; !ok {
		return store.ErrScheduleNotFound
	}
	f.schedules[key] = schedule
	return nil
}

func (f *fakeScheduleStore) DueToday(_ context.Context, userID uuid.UUID, asOfLocalDate time.Time, capDays int) ([]*domain.ReviewSchedule, error) {
	var result []*domain.ReviewSchedule
	for _, schedule := range f.schedules {
		if schedule.UserID != userID || !schedule.IsActive {
			continue
		}
		stranded := schedule.NextReviewDate.After(asOfLocalDate.AddDate(0, 0, capDays))
		if schedule.IsDue(asOfLocalDate) || stranded {
			result = append(result, schedule)
		}
	}
	return result, nil
}

func (f *fakeScheduleStore) Deactivate(_ context.Context, contentID uuid.UUID) error {
	for key, schedule := range f.schedules {
		if schedule.ContentID == contentID && schedule.IsActive {
			updated := *schedule
			updated.IsActive = false
			f.schedules[key] = &updated
			return nil
		}
	}
	return store.ErrScheduleNotFound
}

func (f *fakeScheduleStore) WithTx(_ *sql.Tx) store.ScheduleStore { return f }

type fakeHistoryStore struct {
	entries   []*domain.ReviewHistoryEntry
	appendErr error
}

func newFakeHistoryStore() *fakeHistoryStore {
	return &fakeHistoryStore{}
}

func (f *fakeHistoryStore) Append(_ context.Context, entry *domain.ReviewHistoryEntry) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeHistoryStore) ListRange(_ context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.ReviewHistoryEntry, error) {
	var result []*domain.ReviewHistoryEntry
	for _, entry := range f.entries {
		if entry.UserID != userID {
			continue
		}
		if entry.CompletedAt.Before(from) || !entry.CompletedAt.Before(to) {
			continue
		}
		result = append(result, entry)
	}
	return result, nil
}

func (f *fakeHistoryStore) CountSince(_ context.Context, userID, contentID uuid.UUID, since time.Time) (int, error) {
	count := 0
	for _, entry := range f.entries {
		if entry.UserID == userID && entry.ContentID == contentID && !entry.CompletedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakeHistoryStore) WithTx(_ *sql.Tx) store.HistoryStore { return f }

type fakeInvalidator struct {
	invalidated []uuid.UUID
}

func (f *fakeInvalidator) InvalidateUser(_ context.Context, userID uuid.UUID) error {
	f.invalidated = append(f.invalidated, userID)
	return nil
}
