package driven

// PlaceExtractor recognizes place names in free text. It is a narrow
// seam over an external NLP capability so the normalizer's masking,
// ordering and stripping logic stays independently testable.
type PlaceExtractor interface {
	// ExtractPlaceNames returns the place names found in text, in
	// order of first appearance. Duplicate surface forms may repeat;
	// the caller dedupes.
	ExtractPlaceNames(text string) []string
}
