package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blogpress/internal/models"
)

// CommentStore handles comment persistence.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

const commentColumns = `id, post_id, user_id, content, created_at, updated_at`

func scanComment(scanner interface{ Scan(...any) error }) (*models.Comment, error) {
	c := &models.Comment{}
	err := scanner.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CountByPost returns the number of comments per post id. Posts without
// comments are absent from the map.
func (s *CommentStore) CountByPost(ctx context.Context) (map[int64]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT post_id, COUNT(*) FROM comments GROUP BY post_id`)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var postID int64
		var n int
		if err := rows.Scan(&postID, &n); err != nil {
			return nil, fmt.Errorf("scan comment count: %w", err)
		}
		counts[postID] = n
	}
	return counts, rows.Err()
}

// ListByPost returns a post's comments oldest first, each with its author.
func (s *CommentStore) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.post_id, c.user_id, c.content, c.created_at, c.updated_at,
		       u.id, u.name
		FROM comments c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at, c.id
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		var c models.Comment
		var authorID sql.NullInt64
		var authorName sql.NullString
		err := rows.Scan(
			&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
			&authorID, &authorName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		if authorID.Valid {
			c.Author = &models.CommentAuthor{ID: authorID.Int64, Name: authorName.String}
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// FindByID retrieves a comment by id. Returns nil if not found.
func (s *CommentStore) FindByID(ctx context.Context, id int64) (*models.Comment, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id)
	c, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	return c, nil
}

// Create inserts a new comment and returns it.
func (s *CommentStore) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO comments (post_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING `+commentColumns,
		c.PostID, c.UserID, c.Content,
	)
	result, err := scanComment(row)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return result, nil
}

// Delete removes a comment by id.
func (s *CommentStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
