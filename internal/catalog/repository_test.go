package catalog

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// mockPool implements DBPool against an in-memory item list.
type mockPool struct {
	items []Item

	queryErr error
	execErr  error
}

func (p *mockPool) find(itemID string) (Item, bool) {
	for _, it := range p.items {
		if it.ID == itemID {
			return it, true
		}
	}
	return Item{}, false
}

func (p *mockPool) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	itemID := args[0].(string)
	it, ok := p.find(itemID)
	if !ok {
		return mockRow{err: pgx.ErrNoRows}
	}
	return mockRow{values: itemValues(it)}
}

func (p *mockPool) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	if p.queryErr != nil {
		return nil, p.queryErr
	}

	rows := &mockRows{}
	for _, it := range p.items {
		if len(args) > 0 && strings.Contains(query, "item_type") && string(it.Type) != args[0].(string) {
			continue
		}
		rows.values = append(rows.values, itemValues(it))
	}
	return rows, nil
}

func (p *mockPool) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	if p.execErr != nil {
		return pgconn.CommandTag{}, p.execErr
	}

	itemID := args[0].(string)
	stock := args[1].(int)
	for i := range p.items {
		if p.items[i].ID == itemID {
			p.items[i].Stock = stock
			return pgconn.NewCommandTag("UPDATE 1"), nil
		}
	}
	return pgconn.NewCommandTag("UPDATE 0"), nil
}

func itemValues(it Item) []any {
	return []any{
		it.ID, it.Name, string(it.Type), it.Price, it.Stock,
		it.Description, it.Thumbnail, it.Brand, it.Category,
		it.EventDate, it.Location, it.Artist, it.Venue,
	}
}

type mockRow struct {
	values []any
	err    error
}

func (r mockRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(dest, r.values)
}

type mockRows struct {
	values [][]any
	pos    int
}

func (r *mockRows) Next() bool {
	if r.pos >= len(r.values) {
		return false
	}
	r.pos++
	return true
}

func (r *mockRows) Scan(dest ...any) error {
	return assign(dest, r.values[r.pos-1])
}

func (r *mockRows) Close()                                       {}
func (r *mockRows) Err() error                                   { return nil }
func (r *mockRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *mockRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *mockRows) Values() ([]any, error)                       { return nil, nil }
func (r *mockRows) RawValues() [][]byte                          { return nil }
func (r *mockRows) Conn() *pgx.Conn                              { return nil }

func assign(dest, values []any) error {
	for i, d := range dest {
		switch v := d.(type) {
		case *string:
			*v = values[i].(string)
		case *ItemType:
			*v = ItemType(values[i].(string))
		case *float64:
			*v = values[i].(float64)
		case *int:
			*v = values[i].(int)
		case *sql.NullString:
			s, _ := values[i].(string)
			*v = sql.NullString{String: s, Valid: s != ""}
		case *sql.NullTime:
			if t, ok := values[i].(*time.Time); ok && t != nil {
				*v = sql.NullTime{Time: *t, Valid: true}
			} else {
				*v = sql.NullTime{}
			}
		default:
			return errors.New("unsupported scan destination")
		}
	}
	return nil
}

func eventDate() *time.Time {
	t := time.Date(2026, 9, 12, 21, 0, 0, 0, time.UTC)
	return &t
}

func testItems() []Item {
	return []Item{
		{ID: "widget", Name: "Widget", Type: TypeProduct, Price: 9.99, Stock: 5, Brand: "Acme"},
		{ID: "gig", Name: "Friday Gig", Type: TypeEvent, Price: 35, Stock: 100,
			EventDate: eventDate(), Artist: "The Examples", Venue: "Sala Apolo", Location: "Barcelona"},
	}
}

func TestRepositoryGet(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresRepository(&mockPool{items: testItems()})

	item, err := repo.Get(ctx, "gig")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Name != "Friday Gig" || item.Type != TypeEvent || item.Stock != 100 {
		t.Fatalf("unexpected item: %+v", item)
	}
	if item.EventDate == nil || !item.EventDate.Equal(*eventDate()) {
		t.Fatalf("event date lost in scan: %+v", item.EventDate)
	}
	if item.Venue != "Sala Apolo" {
		t.Fatalf("event metadata lost in scan: %+v", item)
	}
}

func TestRepositoryGetMissing(t *testing.T) {
	repo := NewPostgresRepository(&mockPool{})

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepositoryList(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresRepository(&mockPool{items: testItems()})

	t.Run("all items", func(t *testing.T) {
		items, err := repo.List(ctx, "")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
	})

	t.Run("filtered by type", func(t *testing.T) {
		items, err := repo.List(ctx, TypeEvent)
		if err != nil {
			t.Fatalf("list events: %v", err)
		}
		if len(items) != 1 || items[0].ID != "gig" {
			t.Fatalf("unexpected filtered items: %+v", items)
		}
	})

	t.Run("query error surfaces", func(t *testing.T) {
		repo := NewPostgresRepository(&mockPool{queryErr: errors.New("db down")})
		if _, err := repo.List(ctx, ""); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestRepositoryAdjustStock(t *testing.T) {
	ctx := context.Background()

	t.Run("updates stock", func(t *testing.T) {
		pool := &mockPool{items: testItems()}
		repo := NewPostgresRepository(pool)

		if err := repo.AdjustStock(ctx, "widget", 12); err != nil {
			t.Fatalf("adjust: %v", err)
		}
		it, _ := pool.find("widget")
		if it.Stock != 12 {
			t.Fatalf("stock not updated: %d", it.Stock)
		}
	})

	t.Run("missing item", func(t *testing.T) {
		repo := NewPostgresRepository(&mockPool{})
		if err := repo.AdjustStock(ctx, "missing", 3); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
