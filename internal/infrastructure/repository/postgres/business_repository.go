// Package postgres reads the business registry through the usaha_llm view.
// The view is maintained by the upstream registry pipeline; this service
// never writes to it.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/datakota/usaha-assistant/internal/core/domain"
)

type BusinessRepository struct {
	db *sql.DB
}

func NewBusinessRepository(db *sql.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *BusinessRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM usaha_llm`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count all businesses: %w", err)
	}
	return count, nil
}

// locationClause appends the district/regency/status conditions shared by
// count and list queries. District and regency also match against the free
// text address column because registry rows are inconsistently coded.
func locationClause(filter domain.CountFilter, args []any) (string, []any) {
	var clause strings.Builder

	if filter.District != "" {
		args = append(args, "%"+filter.District+"%")
		fmt.Fprintf(&clause, " AND (LOWER(nmkec) LIKE LOWER($%d) OR LOWER(alamat) LIKE LOWER($%d))", len(args), len(args))
	} else if filter.Regency != "" {
		args = append(args, "%"+filter.Regency+"%")
		fmt.Fprintf(&clause, " AND (LOWER(nmkab) LIKE LOWER($%d) OR LOWER(alamat) LIKE LOWER($%d))", len(args), len(args))
	}

	if filter.Status != "" {
		args = append(args, filter.Status)
		fmt.Fprintf(&clause, " AND LOWER(status) = LOWER($%d)", len(args))
	}

	return clause.String(), args
}

func (r *BusinessRepository) CountByLocation(ctx context.Context, filter domain.CountFilter) (int, error) {
	query := `SELECT COUNT(*) FROM usaha_llm WHERE 1=1`
	clause, args := locationClause(filter, nil)
	query += clause

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count businesses by location: %w", err)
	}
	return count, nil
}

const searchColumns = `
SELECT nama_usaha, nama_komersial_usaha, alamat, kategori, status,
	nmprov, nmkab, nmkec, nmdesa,
	latitude, longitude
FROM usaha_llm
WHERE LOWER(nama_usaha) LIKE LOWER($1)
   OR LOWER(nama_komersial_usaha) LIKE LOWER($1)
LIMIT 1
`

// SearchByName matches by substring first, then falls back to the longest
// word of a multi-word query. Distinctive words usually survive the typos
// and partial names users type.
func (r *BusinessRepository) SearchByName(ctx context.Context, name string) (*domain.Business, error) {
	business, err := r.searchOnce(ctx, name)
	if err == nil {
		return business, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("search business %q: %w", name, err)
	}

	words := strings.Fields(name)
	if len(words) > 1 {
		longest := words[0]
		for _, word := range words[1:] {
			if len(word) > len(longest) {
				longest = word
			}
		}
		if len(longest) > 3 {
			business, err = r.searchOnce(ctx, longest)
			if err == nil {
				return business, nil
			}
			if !errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("search business %q: %w", name, err)
			}
		}
	}

	return nil, fmt.Errorf("search business %q: %w", name, domain.ErrBusinessNotFound)
}

func (r *BusinessRepository) searchOnce(ctx context.Context, pattern string) (*domain.Business, error) {
	row := r.db.QueryRowContext(ctx, searchColumns, "%"+pattern+"%")

	var b domain.Business
	var commercial, address, category, status sql.NullString
	var province, regency, district, village sql.NullString
	var lat, lon sql.NullFloat64

	err := row.Scan(
		&b.Name, &commercial, &address, &category, &status,
		&province, &regency, &district, &village,
		&lat, &lon,
	)
	if err != nil {
		return nil, err
	}

	b.CommercialName = commercial.String
	b.Address = address.String
	b.Category = category.String
	b.Status = status.String
	b.Province = province.String
	b.Regency = regency.String
	b.District = district.String
	b.Village = village.String
	if lat.Valid {
		b.Latitude = &lat.Float64
	}
	if lon.Valid {
		b.Longitude = &lon.Float64
	}
	return &b, nil
}

func (r *BusinessRepository) List(ctx context.Context, filter domain.CountFilter, limit int) ([]domain.BusinessSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT nama_usaha, alamat, kategori, status FROM usaha_llm WHERE 1=1`
	clause, args := locationClause(filter, nil)
	query += clause

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer rows.Close()

	var summaries []domain.BusinessSummary
	for rows.Next() {
		var s domain.BusinessSummary
		var address, category, status sql.NullString
		if err := rows.Scan(&s.Name, &address, &category, &status); err != nil {
			return nil, fmt.Errorf("scan business row: %w", err)
		}
		s.Address = address.String
		s.Category = category.String
		s.Status = status.String
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate business rows: %w", err)
	}
	return summaries, nil
}
