// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package journal

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/shloka-console/internal/platform/database/schema"
	"github.com/taibuivan/shloka-console/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts one record.
func (repository *PostgresRepository) Create(context context.Context, record *Record) error {
	table := schema.ConsoleSubmission
	columns := table.Columns()

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		table.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "),
	)

	_, err := repository.db.Exec(context, query,
		record.ID, record.SessionID, record.Email, record.DraftID, record.Locale,
		record.ChapterID, record.AuthorID, record.VerseNumber, record.Hierarchy,
		string(record.Status), record.UpstreamID, record.Message, []byte(record.Payload), record.CreatedAt,
	)

	return dberr.Wrap(err, "create_submission")
}

// ListByEmail returns one page of an editor's records, newest first.
func (repository *PostgresRepository) ListByEmail(context context.Context, email string, limit, offset int) ([]*Record, int, error) {
	table := schema.ConsoleSubmission

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, table.Table, table.Email)

	var total int
	if err := repository.db.QueryRow(context, countQuery, email).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_submissions")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3
	`,
		strings.Join(table.Columns(), ", "), table.Table, table.Email, table.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, email, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_submissions")
	}
	defer rows.Close()

	records := []*Record{}
	for rows.Next() {
		record := &Record{}
		var status string
		var payload []byte

		if err := rows.Scan(
			&record.ID, &record.SessionID, &record.Email, &record.DraftID, &record.Locale,
			&record.ChapterID, &record.AuthorID, &record.VerseNumber, &record.Hierarchy,
			&status, &record.UpstreamID, &record.Message, &payload, &record.CreatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_submission")
		}

		record.Status = Status(status)
		record.Payload = payload
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_submissions")
	}

	return records, total, nil
}
