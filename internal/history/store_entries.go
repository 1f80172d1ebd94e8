package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"vidgrab/internal/api"
	"vidgrab/internal/view"
)

const entryColumns = `download_id, url, format, use_proxy, proxy_url, proxy_user,
    phase, percent, status_text, error_text, created_at, updated_at`

// Begin records a newly accepted download. The proxy password is dropped,
// including one embedded in the proxy URL.
func (s *Store) Begin(ctx context.Context, id string, input api.FormInput) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("begin history entry: empty download id")
	}
	req := input.Request()
	timestamp := formatTimestamp(time.Now())
	_, err := s.exec(ctx,
		`INSERT INTO downloads (
            download_id, url, format, use_proxy, proxy_url, proxy_user,
            phase, percent, status_text, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?)
        ON CONFLICT(download_id) DO UPDATE SET
            url = excluded.url,
            format = excluded.format,
            use_proxy = excluded.use_proxy,
            proxy_url = excluded.proxy_url,
            proxy_user = excluded.proxy_user,
            phase = excluded.phase,
            percent = 0,
            status_text = excluded.status_text,
            error_text = NULL,
            updated_at = excluded.updated_at`,
		id,
		req.URL,
		req.Format,
		req.UseProxy,
		nullableString(redactProxyURL(req.ProxyURL)),
		nullableString(req.ProxyUser),
		view.PhaseDownloading,
		nullableString(view.StartingText),
		timestamp,
		timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// redactProxyURL strips the password from URL userinfo. A URL that does not
// parse is not stored.
func redactProxyURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if parsed.User != nil {
		if _, hasPassword := parsed.User.Password(); hasPassword {
			parsed.User = url.User(parsed.User.Username())
		}
	}
	return parsed.String()
}

// Record stores the latest view snapshot for state.DownloadID. Jobs that were
// not submitted from this machine get a row without form details.
func (s *Store) Record(ctx context.Context, state view.State) error {
	id := strings.TrimSpace(state.DownloadID)
	if id == "" {
		return nil
	}
	timestamp := formatTimestamp(time.Now())
	_, err := s.exec(ctx,
		`INSERT INTO downloads (
            download_id, phase, percent, status_text, error_text, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(download_id) DO UPDATE SET
            phase = excluded.phase,
            percent = excluded.percent,
            status_text = excluded.status_text,
            error_text = excluded.error_text,
            updated_at = excluded.updated_at`,
		id,
		state.Phase,
		state.Percent,
		nullableString(state.StatusText),
		nullableString(state.ErrorText),
		timestamp,
		timestamp,
	)
	if err != nil {
		return fmt.Errorf("record history state: %w", err)
	}
	return nil
}

// Get returns the entry for id or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM downloads WHERE download_id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get history entry: %w", err)
	}
	return entry, nil
}

// List returns entries newest first. A limit <= 0 returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]*Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM downloads ORDER BY created_at DESC, download_id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Prune removes finished entries last updated more than olderThan ago and
// returns how many were deleted. Jobs still in progress are kept.
func (s *Store) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, nil
	}
	cutoff := formatTimestamp(time.Now().Add(-olderThan))
	res, err := s.exec(ctx,
		`DELETE FROM downloads WHERE updated_at < ? AND phase IN (?, ?)`,
		cutoff, view.PhaseCompleted, view.PhaseFailed,
	)
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var (
		entry                 Entry
		useProxy              bool
		proxyURL, proxyUser   sql.NullString
		statusText, errorText sql.NullString
		phase                 string
		createdAt, updatedAt  string
	)
	if err := row.Scan(
		&entry.DownloadID,
		&entry.URL,
		&entry.Format,
		&useProxy,
		&proxyURL,
		&proxyUser,
		&phase,
		&entry.Percent,
		&statusText,
		&errorText,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	entry.UseProxy = useProxy
	entry.ProxyURL = proxyURL.String
	entry.ProxyUser = proxyUser.String
	entry.Phase = view.Phase(phase)
	entry.StatusText = statusText.String
	entry.ErrorText = errorText.String
	entry.CreatedAt = parseTimestamp(createdAt)
	entry.UpdatedAt = parseTimestamp(updatedAt)
	return &entry, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
