package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"eventticketing/internal/domain"
)

var (
	testStart = time.Date(2026, 6, 2, 9, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2026, 6, 2, 17, 0, 0, 0, time.UTC)
	testNow   = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
)

var eventRowColumns = []string{"id", "name", "description", "category", "start_time", "end_time", "location", "capacity", "state", "organizer_id", "created_at", "updated_at"}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	event := &domain.Event{
		ID: "ev-1", Name: "GopherCon", Description: "Go all day", Category: domain.CategoryConference,
		StartTime: testStart, EndTime: testEnd, Location: "Main Hall, Springfield", Capacity: 100,
		State: domain.EventPublished, OrganizerID: "org-1", CreatedAt: testNow, UpdatedAt: testNow,
	}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO events \(id, name, description, category`).
					WithArgs("ev-1", "GopherCon", "Go all day", "CONFERENCE", testStart, testEnd,
						"Main Hall, Springfield", 100, "PUBLISHED", "org-1", testNow, testNow).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .+ FROM events WHERE id = \$1`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows(eventRowColumns).
				AddRow("ev-1", "GopherCon", "Go all day", "CONFERENCE", testStart, testEnd, "Main Hall", 100, "DRAFT", "org-1", testNow, testNow))

		ev, err := NewEventRepository(db).GetByID(ctx, "ev-1")
		require.NoError(t, err)
		require.Equal(t, domain.EventDraft, ev.State)
		require.Equal(t, domain.CategoryConference, ev.Category)
		require.Equal(t, 100, ev.Capacity)
		require.Empty(t, ev.Registered)
		require.NotNil(t, ev.Registered)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .+ FROM events WHERE id = \$1`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err = NewEventRepository(db).GetByID(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()
	event := &domain.Event{ID: "ev-1", Name: "GopherCon", Description: "d", Location: "Hall B", State: domain.EventCancelled, UpdatedAt: testNow}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE events`).
					WithArgs("GopherCon", "d", "Hall B", "CANCELLED", testNow, "ev-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE events`).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewEventRepository(db).Update(ctx, event)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_ListByState(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM events WHERE state = \$1 ORDER BY start_time, id`).
		WithArgs("PUBLISHED").
		WillReturnRows(sqlmock.NewRows(eventRowColumns).
			AddRow("ev-1", "A", "", "MEETUP", testStart, testEnd, "Cafe", 10, "PUBLISHED", "org-1", testNow, testNow).
			AddRow("ev-2", "B", "", "WORKSHOP", testStart, testEnd, "Lab", 20, "PUBLISHED", "org-2", testNow, testNow))

	events, err := NewEventRepository(db).ListByState(context.Background(), domain.EventPublished)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "ev-2", events[1].ID)
	require.Equal(t, domain.CategoryWorkshop, events[1].Category)
	require.NoError(t, mock.ExpectationsWereMet())
}
