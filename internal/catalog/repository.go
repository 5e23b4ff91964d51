package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("item not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	Get(ctx context.Context, itemID string) (Item, error)
	List(ctx context.Context, typeFilter ItemType) ([]Item, error)
	AdjustStock(ctx context.Context, itemID string, stock int) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const itemColumns = `id, name, item_type, price, stock, description, thumbnail, brand, category, event_date, location, artist, venue`

func (r *PostgresRepository) Get(ctx context.Context, itemID string) (Item, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id=$1`, itemID)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return item, nil
}

func (r *PostgresRepository) List(ctx context.Context, typeFilter ItemType) ([]Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY name`
	args := []any{}
	if typeFilter != "" {
		query = `SELECT ` + itemColumns + ` FROM items WHERE item_type=$1 ORDER BY name`
		args = append(args, string(typeFilter))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) AdjustStock(ctx context.Context, itemID string, stock int) error {
	tag, err := r.pool.Exec(ctx, `UPDATE items SET stock=$2, updated_at=now() WHERE id=$1`, itemID, stock)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (Item, error) {
	var (
		item                    Item
		description, thumbnail  sql.NullString
		brand, category         sql.NullString
		location, artist, venue sql.NullString
		eventDate               sql.NullTime
	)
	err := row.Scan(&item.ID, &item.Name, &item.Type, &item.Price, &item.Stock,
		&description, &thumbnail, &brand, &category,
		&eventDate, &location, &artist, &venue)
	if err != nil {
		return Item{}, err
	}

	item.Description = description.String
	item.Thumbnail = thumbnail.String
	item.Brand = brand.String
	item.Category = category.String
	item.Location = location.String
	item.Artist = artist.String
	item.Venue = venue.String
	if eventDate.Valid {
		t := eventDate.Time
		item.EventDate = &t
	}
	return item, nil
}
