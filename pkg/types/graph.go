package types

// Node labels in the travel graph.
const (
	LabelTraveller = "Traveller"
	LabelHotel     = "Hotel"
	LabelReview    = "Review"
	LabelCity      = "City"
	LabelCountry   = "Country"
)

// Relationship types in the travel graph.
const (
	RelFromCountry = "FROM_COUNTRY"
	RelLocatedIn   = "LOCATED_IN"
	RelWrote       = "WROTE"
	RelReviewed    = "REVIEWED"
	RelStayedAt    = "STAYED_AT"
	RelNeedsVisa   = "NEEDS_VISA"
)

// NodeLabels returns every node label the loader creates.
func NodeLabels() []string {
	return []string{LabelTraveller, LabelHotel, LabelReview, LabelCity, LabelCountry}
}

// RelationshipTypes returns every relationship type the loader creates.
func RelationshipTypes() []string {
	return []string{RelFromCountry, RelLocatedIn, RelWrote, RelReviewed, RelStayedAt, RelNeedsVisa}
}

// GraphStats holds node counts per label and relationship counts per
// type, as reported after a load run.
type GraphStats struct {
	Nodes         map[string]int64
	Relationships map[string]int64
}

// TotalNodes sums the per-label node counts.
func (s *GraphStats) TotalNodes() int64 {
	var n int64
	for _, c := range s.Nodes {
		n += c
	}
	return n
}

// TotalRelationships sums the per-type relationship counts.
func (s *GraphStats) TotalRelationships() int64 {
	var n int64
	for _, c := range s.Relationships {
		n += c
	}
	return n
}
