package domain

import "encoding/json"

// SearchStrategy identifies which retrieval pipeline serves a query.
type SearchStrategy string

const (
	StrategyGeoText SearchStrategy = "geo_text" // spatial prefilter + full-text join
	StrategyText    SearchStrategy = "text"     // full-text only
	StrategyGeo     SearchStrategy = "geo"      // spatial only
	StrategyBrowse  SearchStrategy = "browse"   // relational filters only
)

// SearchQuery is the transient per-request input. It is created and
// discarded per call; nothing in it is retained by the core.
type SearchQuery struct {
	RawText        string         `json:"raw_text"`
	Page           int            `json:"page"`
	Limit          int            `json:"limit"`
	Offset         int            `json:"offset"`
	Overrides      Overrides      `json:"overrides"`
	UserLocation   *GeoPoint      `json:"user_location,omitempty"`
	DistanceMethod DistanceMethod `json:"distance_method,omitempty"`
}

// Overrides are caller-supplied filter values that take precedence over
// whatever a cached plan derived from the query text.
type Overrides struct {
	Category       string   `json:"category,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Country        string   `json:"country,omitempty"`
}

// Empty reports whether no override is set.
func (o Overrides) Empty() bool {
	return o.Category == "" && len(o.Certifications) == 0 && o.Country == ""
}

// QueryFilters is the optional relational filter set. A zero value
// means unconstrained. List fields are OR-within-field and
// AND-across-fields; numeric bounds are inclusive.
type QueryFilters struct {
	Category       string   `json:"category,omitempty"`
	Commodities    []string `json:"commodities,omitempty"`
	Variants       []string `json:"variants,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	OrganicOnly    bool     `json:"organic_only,omitempty"`
	Verified       *bool    `json:"verified,omitempty"`
	Claimed        *bool    `json:"claimed,omitempty"`
	Locality       string   `json:"locality,omitempty"`
	AdminArea      string   `json:"admin_area,omitempty"`
	CountryCode    string   `json:"country_code,omitempty"`
	MinRank        *int     `json:"min_rank,omitempty"`
	MaxRank        *int     `json:"max_rank,omitempty"`
	MinRating      *float64 `json:"min_rating,omitempty"`
	MaxRating      *float64 `json:"max_rating,omitempty"`
	MinReviews     *int     `json:"min_reviews,omitempty"`
	MaxReviews     *int     `json:"max_reviews,omitempty"`
	HasCover       *bool    `json:"has_cover,omitempty"`
	IDs            []string `json:"ids,omitempty"`
	ExcludeIDs     []string `json:"exclude_ids,omitempty"`
}

// CachedQueryPlan is the derived decomposition of a raw query text.
// It is keyed by the exact raw text and stored whole; overrides are
// re-applied on every cache hit rather than baked in.
type CachedQueryPlan struct {
	Geo               *GeoSpec      `json:"geo,omitempty"`
	Filters           *QueryFilters `json:"filters,omitempty"`
	Keywords          []string      `json:"keywords"`
	UseDeviceLocation bool          `json:"use_device_location,omitempty"`
	CountryHint       string        `json:"country_hint,omitempty"`
}

// QuerySignals is the normalizer's decomposition of a raw query.
type QuerySignals struct {
	Residual    string   `json:"residual"`
	LocalIntent bool     `json:"local_intent"`
	PlacePhrase string   `json:"place_phrase,omitempty"`
	CountryHint string   `json:"country_hint,omitempty"`
	Category    string   `json:"category,omitempty"`
	Commodities []string `json:"commodities,omitempty"`
	Variants    []string `json:"variants,omitempty"`
	Organic     bool     `json:"organic"`
	Keywords    []string `json:"keywords"`
}

// GeocodeResult is a resolved place phrase. Raw preserves the provider
// payload for diagnostics; Point and Box are always well-formed.
type GeocodeResult struct {
	Point GeoPoint        `json:"point"`
	Box   BoundingBox     `json:"box"`
	Raw   json.RawMessage `json:"raw,omitempty"`
}

// StoreQuery is the canonical query handed to the producer store. The
// planner fills it; the store assembles predicates and sort keys from
// it without re-deciding strategy semantics.
type StoreQuery struct {
	Strategy SearchStrategy
	Center   *GeoPoint
	RadiusKm *float64
	Box      *BoundingBox
	Keywords []string
	Filters  QueryFilters
	Limit    int // already includes the over-fetch row
	Offset   int
}

// SearchResultRow is one producer row as returned by the store.
type SearchResultRow struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Claimed        bool     `json:"claimed"`
	Verified       bool     `json:"verified"`
	Locality       string   `json:"locality,omitempty"`
	AdminArea      string   `json:"admin_area,omitempty"`
	CountryCode    string   `json:"country_code,omitempty"`
	Lat            *float64 `json:"lat,omitempty"`
	Lon            *float64 `json:"lon,omitempty"`
	DistanceKm     *float64 `json:"distance_km,omitempty"`
	MatchCount     int      `json:"match_count"`
	ProfileRank    *float64 `json:"profile_rank,omitempty"`
	ReviewRank     *float64 `json:"review_rank,omitempty"`
	Rank           int      `json:"rank"`
	RatingAvg      float64  `json:"rating_avg"`
	RatingCount    int      `json:"rating_count"`
	CoverURL       string   `json:"cover_url,omitempty"`
	CommodityCSV   string   `json:"commodity_csv,omitempty"`
	CertificateCSV string   `json:"certificate_csv,omitempty"`
}

// SearchResultPage is one page of results. Pages are always freshly
// computed, never cached.
type SearchResultPage struct {
	Items       []SearchResultRow `json:"items"`
	Count       int               `json:"count"`
	Page        int               `json:"page"`
	Limit       int               `json:"limit"`
	Offset      int               `json:"offset"`
	HasMore     bool              `json:"has_more"`
	NextOffset  *int              `json:"next_offset,omitempty"`
	MaxDistance MaxDistance       `json:"max_distance"`
	Strategy    SearchStrategy    `json:"strategy"`
}
