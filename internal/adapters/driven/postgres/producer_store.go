package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
	"github.com/4Dmu/eat-authentically/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ProducerStore = (*ProducerStore)(nil)

// ProducerStore implements driven.ProducerStore using PostgreSQL.
// The producer_search view pre-resolves every join the four retrieval
// strategies need; the query builder assembles one parameterized
// statement per call.
type ProducerStore struct {
	db *DB
}

// NewProducerStore creates a new ProducerStore.
func NewProducerStore(db *DB) *ProducerStore {
	return &ProducerStore{db: db}
}

// Search executes the store query and returns rows in the strategy's
// canonical order. Errors propagate as-is; no partial results.
func (s *ProducerStore) Search(ctx context.Context, q *domain.StoreQuery) ([]domain.SearchResultRow, error) {
	query, args := buildSearchSQL(q)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("producer search: %w", err)
	}
	defer rows.Close()

	return scanResultRows(rows)
}

// HealthCheck verifies the store is reachable.
func (s *ProducerStore) HealthCheck(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func scanResultRows(rows *sql.Rows) ([]domain.SearchResultRow, error) {
	var results []domain.SearchResultRow
	for rows.Next() {
		var r domain.SearchResultRow
		var locality, adminArea, countryCode, coverURL sql.NullString
		var lat, lon, distance, profileRank, reviewRank sql.NullFloat64
		var commodityCSV, certificateCSV sql.NullString

		err := rows.Scan(
			&r.ID,
			&r.Name,
			&r.Category,
			&r.Claimed,
			&r.Verified,
			&locality,
			&adminArea,
			&countryCode,
			&lat,
			&lon,
			&distance,
			&r.MatchCount,
			&profileRank,
			&reviewRank,
			&r.Rank,
			&r.RatingAvg,
			&r.RatingCount,
			&coverURL,
			&commodityCSV,
			&certificateCSV,
		)
		if err != nil {
			return nil, fmt.Errorf("scan producer row: %w", err)
		}

		r.Locality = locality.String
		r.AdminArea = adminArea.String
		r.CountryCode = countryCode.String
		r.CoverURL = coverURL.String
		r.CommodityCSV = commodityCSV.String
		r.CertificateCSV = certificateCSV.String
		if lat.Valid {
			v := lat.Float64
			r.Lat = &v
		}
		if lon.Valid {
			v := lon.Float64
			r.Lon = &v
		}
		if distance.Valid {
			v := distance.Float64
			r.DistanceKm = &v
		}
		if profileRank.Valid {
			v := profileRank.Float64
			r.ProfileRank = &v
		}
		if reviewRank.Valid {
			v := reviewRank.Float64
			r.ReviewRank = &v
		}

		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate producer rows: %w", err)
	}
	return results, nil
}
