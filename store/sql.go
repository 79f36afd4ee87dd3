// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/quickly-vote/common"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/models"
)

// SQLStore keeps the collections in SQL tables. Saves delete and re-insert
// the whole collection inside one transaction.
type SQLStore struct {
	conn    *sql.DB
	dialect db.Dialect
}

func NewSQLStore(conn *sql.DB, dialect db.Dialect) *SQLStore {
	return &SQLStore{conn: conn, dialect: dialect}
}

// OpenSQLStore connects with driver and migrates the schema
func OpenSQLStore(ctx context.Context, driver, url string) (*SQLStore, error) {
	conn, dialect, err := db.Open(ctx, driver, url)
	if err != nil {
		return nil, storageError("open database", err)
	}
	return NewSQLStore(conn, dialect), nil
}

func (s *SQLStore) q(query string) string {
	return db.Rebind(s.dialect, query)
}

func (s *SQLStore) GetUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, username, password, join_date
		FROM app_user
		ORDER BY position
	`)
	if err != nil {
		return nil, storageError("query users", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Password, &u.JoinDate); err != nil {
			return nil, storageError("scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("query users", err)
	}

	return users, nil
}

func (s *SQLStore) SaveUsers(ctx context.Context, users []models.User) error {
	err := db.WithTx(ctx, s.conn, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM app_user`); err != nil {
			return err
		}
		for i, u := range users {
			_, err := tx.ExecContext(ctx, s.q(`
				INSERT INTO app_user (id, username, password, join_date, position)
				VALUES (?, ?, ?, ?, ?)
			`), u.ID, u.Username, u.Password, u.JoinDate.UTC(), i)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username already taken", common.ErrConflict)
		}
		return storageError("save users", err)
	}
	return nil
}

func (s *SQLStore) GetVotes(ctx context.Context) ([]models.Vote, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, creator_id, question, options, has_other,
		       selection_type, selection_count, deadline, created_at
		FROM vote
		ORDER BY position
	`)
	if err != nil {
		return nil, storageError("query votes", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	byID := make(map[string]int)
	for rows.Next() {
		var (
			v              models.Vote
			options        string
			selectionType  string
			selectionCount sql.NullInt64
			deadline       sql.NullTime
		)
		err := rows.Scan(&v.ID, &v.CreatorID, &v.Question, &options, &v.HasOther,
			&selectionType, &selectionCount, &deadline, &v.CreatedAt)
		if err != nil {
			return nil, storageError("scan vote", err)
		}

		if err := json.Unmarshal([]byte(options), &v.Options); err != nil {
			return nil, storageError("decode options", err)
		}

		var count *int
		if selectionCount.Valid {
			c := int(selectionCount.Int64)
			count = &c
		}
		if v.Selection, err = models.NewSelection(selectionType, count); err != nil {
			return nil, storageError("decode selection", err)
		}

		if deadline.Valid {
			d := deadline.Time
			v.Deadline = &d
		}
		v.Responses = []models.VoteResponse{}

		byID[v.ID] = len(votes)
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("query votes", err)
	}

	if err := s.loadResponses(ctx, votes, byID); err != nil {
		return nil, err
	}

	return votes, nil
}

func (s *SQLStore) loadResponses(ctx context.Context, votes []models.Vote, byID map[string]int) error {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT vote_id, user_id, selected_options, other_text, responded_at
		FROM vote_response
		ORDER BY vote_id, position
	`)
	if err != nil {
		return storageError("query responses", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			voteID    string
			r         models.VoteResponse
			selected  string
			otherText sql.NullString
		)
		if err := rows.Scan(&voteID, &r.UserID, &selected, &otherText, &r.Timestamp); err != nil {
			return storageError("scan response", err)
		}
		if err := json.Unmarshal([]byte(selected), &r.SelectedOptions); err != nil {
			return storageError("decode selected options", err)
		}
		r.OtherText = otherText.String

		idx, ok := byID[voteID]
		if !ok {
			continue
		}
		votes[idx].Responses = append(votes[idx].Responses, r)
	}

	if err := rows.Err(); err != nil {
		return storageError("query responses", err)
	}
	return nil
}

func (s *SQLStore) SaveVotes(ctx context.Context, votes []models.Vote) error {
	err := db.WithTx(ctx, s.conn, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM vote_response`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM vote`); err != nil {
			return err
		}

		for i, v := range votes {
			if err := s.insertVote(ctx, tx, v, i); err != nil {
				return fmt.Errorf("vote %s: %w", v.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return storageError("save votes", err)
	}
	return nil
}

func (s *SQLStore) insertVote(ctx context.Context, tx db.DBTX, v models.Vote, position int) error {
	options, err := json.Marshal(v.Options)
	if err != nil {
		return err
	}
	selectionType, selectionCount := v.SelectionFields()

	var deadline *time.Time
	if v.Deadline != nil {
		d := v.Deadline.UTC()
		deadline = &d
	}

	_, err = tx.ExecContext(ctx, s.q(`
		INSERT INTO vote (id, creator_id, question, options, has_other,
		                  selection_type, selection_count, deadline, created_at, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), v.ID, v.CreatorID, v.Question, string(options), v.HasOther,
		selectionType, selectionCount, deadline, v.CreatedAt.UTC(), position)
	if err != nil {
		return err
	}

	for i, r := range v.Responses {
		selected, err := json.Marshal(r.SelectedOptions)
		if err != nil {
			return err
		}
		var otherText *string
		if r.OtherText != "" {
			otherText = &r.OtherText
		}
		_, err = tx.ExecContext(ctx, s.q(`
			INSERT INTO vote_response (vote_id, user_id, selected_options, other_text, responded_at, position)
			VALUES (?, ?, ?, ?, ?, ?)
		`), v.ID, r.UserID, string(selected), otherText, r.Timestamp.UTC(), i)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.conn.Close()
}

// isUniqueViolation recognizes unique constraint errors from every supported driver
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
