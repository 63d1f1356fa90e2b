package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/curvelearn/curve-api/internal/domain"
	"github.com/curvelearn/curve-api/internal/platform/logger"
	"github.com/curvelearn/curve-api/internal/store"
	"github.com/google/uuid"
)

// PostgresContentStore implements the store.ContentStore interface
// using a PostgreSQL database as the storage backend.
type PostgresContentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresContentStore creates a new PostgreSQL implementation of the
// ContentStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresContentStore(db store.DBTX, logger *slog.Logger) *PostgresContentStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresContentStore{
		db:     db,
		logger: logger.With(slog.String("component", "content_store")),
	}
}

// Ensure PostgresContentStore implements store.ContentStore interface
var _ store.ContentStore = (*PostgresContentStore)(nil)

// Create implements store.ContentStore.Create
// Returns store.ErrInvalidEntity if the owner does not exist (foreign key
// violation).
func (s *PostgresContentStore) Create(ctx context.Context, content *domain.Content) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := content.Validate(); err != nil {
		log.Warn("content validation failed during create",
			slog.String("error", err.Error()),
			slog.String("content_id", content.ID.String()))
		return err
	}

	query := `
		INSERT INTO contents (id, user_id, title, body, category, priority, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		content.ID,
		content.UserID,
		content.Title,
		content.Body,
		content.Category,
		content.Priority,
		content.CreatedAt,
		content.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create content",
			slog.String("error", err.Error()),
			slog.String("content_id", content.ID.String()),
			slog.String("user_id", content.UserID.String()))
		return MapError(err)
	}

	log.Info("content created successfully",
		slog.String("content_id", content.ID.String()),
		slog.String("user_id", content.UserID.String()),
		slog.String("priority", string(content.Priority)))
	return nil
}

// GetByID implements store.ContentStore.GetByID
// Returns store.ErrContentNotFound if the content does not exist.
func (s *PostgresContentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Content, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, title, body, category, priority, created_at, updated_at
		FROM contents
		WHERE id = $1
	`

	var content domain.Content
	var priority string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&content.ID,
		&content.UserID,
		&content.Title,
		&content.Body,
		&content.Category,
		&priority,
		&content.CreatedAt,
		&content.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("content not found", slog.String("content_id", id.String()))
			return nil, store.ErrContentNotFound
		}
		log.Error("failed to get content by ID",
			slog.String("error", err.Error()),
			slog.String("content_id", id.String()))
		return nil, MapError(err)
	}

	content.Priority = domain.Priority(priority)

	return &content, nil
}

// ListByUser implements store.ContentStore.ListByUser
// Returns an empty slice if the user owns no content.
func (s *PostgresContentStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Content, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 20 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, user_id, title, body, category, priority, created_at, updated_at
		FROM contents
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		log.Error("failed to list contents",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var contents []*domain.Content
	for rows.Next() {
		var content domain.Content
		var priority string

		err := rows.Scan(
			&content.ID,
			&content.UserID,
			&content.Title,
			&content.Body,
			&content.Category,
			&priority,
			&content.CreatedAt,
			&content.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan content row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		content.Priority = domain.Priority(priority)
		contents = append(contents, &content)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if contents == nil {
		contents = []*domain.Content{}
	}

	return contents, nil
}

// Delete implements store.ContentStore.Delete
// Returns store.ErrContentNotFound if the content does not exist.
func (s *PostgresContentStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM contents WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete content",
			slog.String("error", err.Error()),
			slog.String("content_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("content_id", id.String()))
		return MapError(err)
	}

	if rowsAffected == 0 {
		log.Debug("content not found for delete",
			slog.String("content_id", id.String()))
		return store.ErrContentNotFound
	}

	log.Info("content deleted",
		slog.String("content_id", id.String()))
	return nil
}

// WithTx implements store.ContentStore.WithTx
func (s *PostgresContentStore) WithTx(tx *sql.Tx) store.ContentStore {
	return &PostgresContentStore{
		db:     tx,
		logger: s.logger,
	}
}
