package seekr

import "time"

// Sort orders hits with equal relevance.
type Sort string

// Sort values.
const (
	SortPopularity Sort = "popularity"
	SortRecency    Sort = "recency"
)

// InteractionKind is a recorded user action.
type InteractionKind string

// Interaction kinds, in increasing profile weight.
const (
	View  InteractionKind = "view"
	Click InteractionKind = "click"
	Like  InteractionKind = "like"
	Save  InteractionKind = "save"
)

// Product is an indexed catalog item.
type Product struct {
	ID         string
	Title      string
	Content    string
	Category   string
	Brand      string
	Color      string
	Size       string
	Condition  string
	Tags       []string
	Price      *float64
	Rating     *float64
	Popularity float64
	Boosted    bool

	Views           int64
	Clicks          int64
	Likes           int64
	Saves           int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	LastInteraction *time.Time

	FormattedPrice  string
	FormattedRating string
	Excerpt         string
}

// NewProduct is the input for Create. An empty ID is replaced by a UUID.
type NewProduct struct {
	ID         string
	Title      string
	Content    string
	Category   string
	Brand      string
	Color      string
	Size       string
	Condition  string
	Tags       []string
	Price      *float64
	Rating     *float64
	Popularity float64
	Boosted    bool
}

// ProductPatch is a partial update. Nil fields are unchanged.
type ProductPatch struct {
	Title      *string
	Content    *string
	Category   *string
	Brand      *string
	Color      *string
	Size       *string
	Condition  *string
	Tags       *[]string
	Price      *float64
	Rating     *float64
	Popularity *float64
	Boosted    *bool
}

// Query is a filtered full-text search. Zero values mean "no constraint".
type Query struct {
	Text      string
	Brand     string
	Color     string
	Size      string
	Category  string
	Condition string
	Tags      []string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Page      int
	PageSize  int
	Sort      Sort
}

// Page is one page of search hits.
type Page struct {
	Products []Product
	Total    int
	Took     time.Duration
	Page     int
	PageSize int
	HasMore  bool
}

// BatchResult is the outcome of one item in a bulk create.
type BatchResult struct {
	Index int
	ID    string
	OK    bool
	Err   error
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status  string            // "ok", "degraded", "unhealthy"
	Message string
	Checks  map[string]string // component -> "ok"/"error"
}
