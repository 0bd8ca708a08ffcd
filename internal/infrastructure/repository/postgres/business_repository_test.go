package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/datakota/usaha-assistant/internal/core/domain"
)

func newRepoWithMock(t *testing.T) (*BusinessRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &BusinessRepository{db: db}, mock, func() { _ = db.Close() }
}

func searchRows(name string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"nama_usaha", "nama_komersial_usaha", "alamat", "kategori", "status",
		"nmprov", "nmkab", "nmkec", "nmdesa", "latitude", "longitude",
	}).AddRow(
		name, "HELL MIE", "Jl. Soekarno Hatta KM 5", "Restoran", "aktif",
		"Kalimantan Timur", "Balikpapan", "Balikpapan Utara", "Muara Rapak",
		-1.2131, 116.8625,
	)
}

func TestCountAll(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM usaha_llm`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1523))

	count, err := repo.CountAll(context.Background())
	if err != nil {
		t.Fatalf("CountAll() error = %v", err)
	}
	if count != 1523 {
		t.Fatalf("count = %d, want 1523", count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCountByLocationDistrictAndStatus(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM usaha_llm WHERE 1=1 AND \(LOWER\(nmkec\) LIKE LOWER\(\$1\) OR LOWER\(alamat\) LIKE LOWER\(\$1\)\) AND LOWER\(status\) = LOWER\(\$2\)`).
		WithArgs("%Balikpapan Timur%", "aktif").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.CountByLocation(context.Background(), domain.CountFilter{
		District: "Balikpapan Timur",
		Status:   "aktif",
	})
	if err != nil {
		t.Fatalf("CountByLocation() error = %v", err)
	}
	if count != 42 {
		t.Fatalf("count = %d, want 42", count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCountByLocationRegencyOnly(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM usaha_llm WHERE 1=1 AND \(LOWER\(nmkab\) LIKE LOWER\(\$1\) OR LOWER\(alamat\) LIKE LOWER\(\$1\)\)`).
		WithArgs("%Balikpapan%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(900))

	count, err := repo.CountByLocation(context.Background(), domain.CountFilter{Regency: "Balikpapan"})
	if err != nil {
		t.Fatalf("CountByLocation() error = %v", err)
	}
	if count != 900 {
		t.Fatalf("count = %d, want 900", count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSearchByNameFirstPassMatch(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery(`SELECT nama_usaha, nama_komersial_usaha`).
		WithArgs("%Hell Mie%").
		WillReturnRows(searchRows("WARUNG HELL MIE"))

	business, err := repo.SearchByName(context.Background(), "Hell Mie")
	if err != nil {
		t.Fatalf("SearchByName() error = %v", err)
	}
	if business.Name != "WARUNG HELL MIE" || business.District != "Balikpapan Utara" {
		t.Fatalf("business = %+v", business)
	}
	if business.Latitude == nil || *business.Latitude != -1.2131 {
		t.Fatalf("latitude = %v", business.Latitude)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSearchByNameFallsBackToLongestWord(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery(`SELECT nama_usaha, nama_komersial_usaha`).
		WithArgs("%Warung Mukhlas%").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT nama_usaha, nama_komersial_usaha`).
		WithArgs("%Mukhlas%").
		WillReturnRows(searchRows("SEMBAKO MUKHLAS"))

	business, err := repo.SearchByName(context.Background(), "Warung Mukhlas")
	if err != nil {
		t.Fatalf("SearchByName() error = %v", err)
	}
	if business.Name != "SEMBAKO MUKHLAS" {
		t.Fatalf("name = %q", business.Name)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSearchByNameNotFoundIsTypedError(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery(`SELECT nama_usaha, nama_komersial_usaha`).
		WithArgs("%Toko Ghaib%").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT nama_usaha, nama_komersial_usaha`).
		WithArgs("%Ghaib%").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.SearchByName(context.Background(), "Toko Ghaib")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrBusinessNotFound) {
		t.Fatalf("expected ErrBusinessNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSearchByNameSingleShortWordSkipsFallback(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	// One word: no second pass regardless of length.
	mock.ExpectQuery(`SELECT nama_usaha, nama_komersial_usaha`).
		WithArgs("%Mukhlas%").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.SearchByName(context.Background(), "Mukhlas")
	if !domain.IsKind(err, domain.ErrBusinessNotFound) {
		t.Fatalf("expected ErrBusinessNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListAppliesFilterAndLimit(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	rows := sqlmock.NewRows([]string{"nama_usaha", "alamat", "kategori", "status"}).
		AddRow("WARUNG A", "Jl. A", "Restoran", "aktif").
		AddRow("WARUNG B", "Jl. B", "Restoran", "aktif")

	mock.ExpectQuery(`SELECT nama_usaha, alamat, kategori, status FROM usaha_llm WHERE 1=1 AND \(LOWER\(nmkec\) LIKE LOWER\(\$1\) OR LOWER\(alamat\) LIKE LOWER\(\$1\)\) ORDER BY created_at DESC LIMIT \$2`).
		WithArgs("%Balikpapan Kota%", 5).
		WillReturnRows(rows)

	summaries, err := repo.List(context.Background(), domain.CountFilter{District: "Balikpapan Kota"}, 5)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(summaries) != 2 || summaries[0].Name != "WARUNG A" {
		t.Fatalf("summaries = %+v", summaries)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
