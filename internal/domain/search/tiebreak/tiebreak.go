package tiebreak

// Tiebreak orders hits with equal relevance score.
type Tiebreak string

// Tiebreak values.
const (
	// Popularity orders by popularity_score, highest first.
	Popularity Tiebreak = "popularity"
	// Recency orders by created_at, newest first.
	Recency Tiebreak = "recency"
)

// Default is used when no tiebreak is requested.
const Default = Popularity

// IsValid checks if the tiebreak is one of the supported values.
func (t Tiebreak) IsValid() bool {
	return t == Popularity || t == Recency
}
