package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/nametrail"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ nametrail.PageService = (*PageService)(nil)

// PageService implements nametrail.PageService using SQLite.
type PageService struct {
	db  *DB
	now func() time.Time
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db, now: time.Now}
}

// HashContent computes the xxHash of content as a 16-character hex string.
func HashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// Save stores text under title. A page with the same title keeps its ID
// and has its text, hash and timestamp replaced.
func (s *PageService) Save(ctx context.Context, title, text string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (id, title, text, content_hash, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET
			text = excluded.text,
			content_hash = excluded.content_hash,
			saved_at = excluded.saved_at
	`, uuid.New().String(), title, text, HashContent(text), s.now().UTC().Format(time.RFC3339))
	return err
}

// FindPages retrieves pages matching the filter, most recently saved first.
func (s *PageService) FindPages(ctx context.Context, filter nametrail.PageFilter) ([]*nametrail.Page, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, title, text, content_hash, saved_at FROM pages WHERE 1=1")

	if filter.Title != nil {
		query.WriteString(" AND title = ?")
		args = append(args, *filter.Title)
	}

	query.WriteString(" ORDER BY saved_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*nametrail.Page
	for rows.Next() {
		var page nametrail.Page
		var savedAt string

		if err := rows.Scan(&page.ID, &page.Title, &page.Text, &page.ContentHash, &savedAt); err != nil {
			return nil, err
		}

		page.SavedAt, err = parseRFC3339(savedAt, "saved_at")
		if err != nil {
			return nil, err
		}

		pages = append(pages, &page)
	}

	return pages, rows.Err()
}
