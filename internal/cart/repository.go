package cart

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type Repository interface {
	GetBySession(ctx context.Context, sessionID string) (*Cart, error)
	Upsert(ctx context.Context, c *Cart) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

// GetBySession loads the cart for a session, nil when none exists yet.
// Totals are rederived from the loaded lines rather than stored, so the
// aggregate can never drift from the rows that justify it.
func (r *repo) GetBySession(ctx context.Context, sessionID string) (*Cart, error) {
	const cartQuery = `SELECT id, session_id, created_at, updated_at FROM carts WHERE session_id = $1`

	var c Cart
	err := r.db.QueryRowContext(ctx, cartQuery, sessionID).Scan(&c.ID, &c.SessionID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT item_id, name, item_type, quantity, unit_price, thumbnail
FROM cart_items
WHERE cart_id = $1
ORDER BY position`, c.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c.Lines = []Line{}
	for rows.Next() {
		var (
			ln        Line
			thumbnail sql.NullString
		)
		if err := rows.Scan(&ln.ItemID, &ln.Name, &ln.Type, &ln.Quantity, &ln.UnitPrice, &thumbnail); err != nil {
			return nil, err
		}
		ln.Thumbnail = thumbnail.String
		c.Lines = append(c.Lines, ln)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	c.recompute()
	return &c, nil
}

// Upsert persists the whole cart in one transaction: the cart row is
// created or touched, then the line rows are replaced. Concurrent
// writers to the same session therefore resolve last-write-wins.
func (r *repo) Upsert(ctx context.Context, c *Cart) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	const upsertCartSQL = `
INSERT INTO carts (id, session_id, created_at, updated_at)
VALUES ($1, $2, NOW(), NOW())
ON CONFLICT (session_id) DO UPDATE
SET updated_at = NOW()
RETURNING id, created_at, updated_at
`
	if err = tx.QueryRowContext(ctx, upsertCartSQL, c.ID, c.SessionID).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, c.ID); err != nil {
		return err
	}

	if len(c.Lines) > 0 {
		stmt, prepErr := tx.PrepareContext(ctx, `
INSERT INTO cart_items (id, cart_id, item_id, name, item_type, quantity, unit_price, thumbnail, position)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`)
		if prepErr != nil {
			err = prepErr
			return err
		}
		defer stmt.Close()

		for i, ln := range c.Lines {
			var thumbnail sql.NullString
			if ln.Thumbnail != "" {
				thumbnail = sql.NullString{String: ln.Thumbnail, Valid: true}
			}
			if _, err = stmt.ExecContext(ctx, uuid.NewString(), c.ID, ln.ItemID, ln.Name, string(ln.Type),
				ln.Quantity, ln.UnitPrice, thumbnail, i); err != nil {
				return err
			}
		}
	}

	err = tx.Commit()
	return err
}
