package postgres

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/4Dmu/eat-authentically/internal/core/domain"
	"github.com/lib/pq"
)

// relevanceSentinel sorts rows missing a relevance score after every
// row holding a real one, keeping the multi-key ordering total.
const relevanceSentinel = "1e9"

// tsTokenRe strips anything that could break a tsquery term.
var tsTokenRe = regexp.MustCompile(`[^a-z0-9]+`)

// sqlBuilder accumulates ordered predicate fragments, ordered sort-key
// fragments and positional args. Every strategy assembles its query
// from the same filter fragments, so a predicate present in one branch
// can never silently go missing from another.
type sqlBuilder struct {
	where   []string
	orderBy []string
	args    []interface{}
}

// arg registers a positional argument and returns its placeholder.
func (b *sqlBuilder) arg(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *sqlBuilder) addWhere(cond string) {
	b.where = append(b.where, cond)
}

func (b *sqlBuilder) addOrder(key string) {
	b.orderBy = append(b.orderBy, key)
}

// buildSearchSQL assembles the single parameterized query for a store
// query. Returns the SQL text and its positional args.
func buildSearchSQL(q *domain.StoreQuery) (string, []interface{}) {
	b := &sqlBuilder{}

	distExpr := "NULL::float8"
	if (q.Strategy == domain.StrategyGeoText || q.Strategy == domain.StrategyGeo) && q.Center != nil {
		distExpr = distanceExpr(b, *q.Center)
	}

	matchExpr := "0"
	profileExpr := "NULL::float8"
	reviewExpr := "NULL::float8"
	if q.Strategy == domain.StrategyGeoText || q.Strategy == domain.StrategyText {
		// Keywords can all sanitize to nothing (symbol-only or
		// non-Latin tokens); an empty tsquery is a Postgres syntax
		// error, so the text expressions are skipped entirely.
		if tokens := tsTokens(q.Keywords); len(tokens) > 0 {
			tsq := tsQueryExpr(b, tokens)
			matchExpr = matchCountExpr(b, tokens)
			profileExpr = relevanceExpr("p.profile_tsv", tsq)
			reviewExpr = relevanceExpr("p.review_tsv", tsq)

			// Strategies with text must match in at least one corpus.
			b.addWhere("(p.profile_tsv @@ " + tsq + " OR p.review_tsv @@ " + tsq + ")")
		}
	}

	if q.Strategy == domain.StrategyGeoText || q.Strategy == domain.StrategyGeo {
		addGeoPredicates(b, q, distExpr)
	}

	// Identical optional-filter predicate set across all four
	// strategies.
	addFilterPredicates(b, q.Filters)

	switch q.Strategy {
	case domain.StrategyGeoText:
		b.addOrder(distExpr + " ASC")
		b.addOrder(matchExpr + " DESC")
		b.addOrder("COALESCE(" + profileExpr + ", " + relevanceSentinel + ") ASC")
		b.addOrder("COALESCE(" + reviewExpr + ", " + relevanceSentinel + ") ASC")
		b.addOrder("p.rank ASC")
		b.addOrder("p.id ASC")
	case domain.StrategyText:
		b.addOrder(matchExpr + " DESC")
		b.addOrder("COALESCE(" + profileExpr + ", " + relevanceSentinel + ") ASC")
		b.addOrder("COALESCE(" + reviewExpr + ", " + relevanceSentinel + ") ASC")
		b.addOrder("p.rank ASC")
		b.addOrder("p.id ASC")
	case domain.StrategyGeo:
		b.addOrder(distExpr + " ASC NULLS LAST")
		b.addOrder("p.rank ASC")
		b.addOrder("p.id ASC")
	default: // browse
		b.addOrder("p.rank ASC")
		b.addOrder("p.id ASC")
	}

	var sb strings.Builder
	sb.WriteString("SELECT p.id, p.name, p.category, p.claimed, p.verified")
	sb.WriteString(", p.locality, p.admin_area, p.country_code, p.latitude, p.longitude")
	sb.WriteString(", " + distExpr + " AS distance_km")
	sb.WriteString(", " + matchExpr + " AS match_count")
	sb.WriteString(", " + profileExpr + " AS profile_rank")
	sb.WriteString(", " + reviewExpr + " AS review_rank")
	sb.WriteString(", p.rank, p.rating_avg, p.rating_count, p.cover_url")
	sb.WriteString(", array_to_string(p.commodities, ',') AS commodity_csv")
	sb.WriteString(", array_to_string(p.certifications, ',') AS certification_csv")
	sb.WriteString(" FROM producer_search p")
	if len(b.where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(b.where, " AND "))
	}
	sb.WriteString(" ORDER BY " + strings.Join(b.orderBy, ", "))
	sb.WriteString(" LIMIT " + b.arg(q.Limit) + " OFFSET " + b.arg(q.Offset))

	return sb.String(), b.args
}

// distanceExpr is the exact great-circle distance in km between the
// search center and the row. The same placeholders serve SELECT,
// WHERE and ORDER BY.
func distanceExpr(b *sqlBuilder, center domain.GeoPoint) string {
	lat := b.arg(center.Lat)
	lon := b.arg(center.Lon)
	return fmt.Sprintf(
		"(2 * 6371 * asin(sqrt(power(sin(radians(p.latitude - %[1]s) / 2), 2)"+
			" + cos(radians(%[1]s)) * cos(radians(p.latitude))"+
			" * power(sin(radians(p.longitude - %[2]s) / 2), 2))))",
		lat, lon)
}

// tsTokens sanitizes keywords to tsquery terms, dropping any that
// sanitize to nothing.
func tsTokens(keywords []string) []string {
	var tokens []string
	for _, kw := range keywords {
		if tok := tsToken(kw); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// tsQueryExpr builds one OR-of-prefixes tsquery over sanitized tokens.
func tsQueryExpr(b *sqlBuilder, tokens []string) string {
	terms := make([]string, len(tokens))
	for i, tok := range tokens {
		terms[i] = tok + ":*"
	}
	return "to_tsquery('simple', " + b.arg(strings.Join(terms, " | ")) + ")"
}

// matchCountExpr sums literal per-token prefix hits against the
// profile index. This interpretable count outranks the opaque
// relevance scores in ORDER BY.
func matchCountExpr(b *sqlBuilder, tokens []string) string {
	cases := make([]string, len(tokens))
	for i, tok := range tokens {
		cases[i] = "(CASE WHEN p.profile_tsv @@ to_tsquery('simple', " + b.arg(tok+":*") + ") THEN 1 ELSE 0 END)"
	}
	return "(" + strings.Join(cases, " + ") + ")"
}

// relevanceExpr exposes a corpus relevance score where lower is
// better, NULL when the row does not match that corpus at all. The
// two corpus scores are independently scaled and never combined.
func relevanceExpr(column, tsq string) string {
	return "(CASE WHEN " + column + " @@ " + tsq +
		" THEN 1.0 / (1.0 + ts_rank(" + column + ", " + tsq + ")) ELSE NULL END)"
}

// addGeoPredicates applies the coarse box prefilter and, for a radius
// spec, the exact-distance membership check. The prefilter box is
// deliberately looser than the circle so no true positive is lost.
func addGeoPredicates(b *sqlBuilder, q *domain.StoreQuery, distExpr string) {
	b.addWhere("p.latitude IS NOT NULL AND p.longitude IS NOT NULL")
	if q.Box != nil {
		b.addWhere(fmt.Sprintf("p.latitude BETWEEN %s AND %s",
			b.arg(q.Box.MinLat), b.arg(q.Box.MaxLat)))
		b.addWhere(fmt.Sprintf("p.longitude BETWEEN %s AND %s",
			b.arg(q.Box.MinLon), b.arg(q.Box.MaxLon)))
	}
	if q.RadiusKm != nil && q.Center != nil {
		b.addWhere(distExpr + " <= " + b.arg(*q.RadiusKm))
	}
}

// addFilterPredicates appends the optional-filter predicate set.
// List filters are OR-within-field (array overlap) and AND-across
// fields; numeric bounds are inclusive; absent fields add nothing.
func addFilterPredicates(b *sqlBuilder, f domain.QueryFilters) {
	if f.Category != "" {
		b.addWhere("p.category = " + b.arg(f.Category))
	}
	if len(f.Commodities) > 0 {
		b.addWhere("p.commodities && " + b.arg(pq.Array(f.Commodities)))
	}
	if len(f.Variants) > 0 {
		b.addWhere("p.variants && " + b.arg(pq.Array(f.Variants)))
	}
	if len(f.Certifications) > 0 {
		b.addWhere("p.certifications && " + b.arg(pq.Array(f.Certifications)))
	}
	if f.OrganicOnly {
		b.addWhere("p.organic = TRUE")
	}
	if f.Verified != nil {
		b.addWhere("p.verified = " + b.arg(*f.Verified))
	}
	if f.Claimed != nil {
		b.addWhere("p.claimed = " + b.arg(*f.Claimed))
	}
	if f.Locality != "" {
		b.addWhere("LOWER(p.locality) = LOWER(" + b.arg(f.Locality) + ")")
	}
	if f.AdminArea != "" {
		b.addWhere("LOWER(p.admin_area) = LOWER(" + b.arg(f.AdminArea) + ")")
	}
	if f.CountryCode != "" {
		b.addWhere("p.country_code = " + b.arg(f.CountryCode))
	}
	if f.MinRank != nil {
		b.addWhere("p.rank >= " + b.arg(*f.MinRank))
	}
	if f.MaxRank != nil {
		b.addWhere("p.rank <= " + b.arg(*f.MaxRank))
	}
	if f.MinRating != nil {
		b.addWhere("p.rating_avg >= " + b.arg(*f.MinRating))
	}
	if f.MaxRating != nil {
		b.addWhere("p.rating_avg <= " + b.arg(*f.MaxRating))
	}
	if f.MinReviews != nil {
		b.addWhere("p.rating_count >= " + b.arg(*f.MinReviews))
	}
	if f.MaxReviews != nil {
		b.addWhere("p.rating_count <= " + b.arg(*f.MaxReviews))
	}
	if f.HasCover != nil {
		if *f.HasCover {
			b.addWhere("p.cover_url IS NOT NULL AND p.cover_url <> ''")
		} else {
			b.addWhere("(p.cover_url IS NULL OR p.cover_url = '')")
		}
	}
	if len(f.IDs) > 0 {
		b.addWhere("p.id = ANY(" + b.arg(pq.Array(f.IDs)) + ")")
	}
	if len(f.ExcludeIDs) > 0 {
		b.addWhere("NOT (p.id = ANY(" + b.arg(pq.Array(f.ExcludeIDs)) + "))")
	}
}

func tsToken(kw string) string {
	return tsTokenRe.ReplaceAllString(strings.ToLower(kw), "")
}
