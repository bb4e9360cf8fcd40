package catalog

// CropAnalysis is the stored summary of one diagnosis.
type CropAnalysis struct {
	Disease string `json:"disease"`
	Remedy  string `json:"remedy"`
}

// CropHealthHistoryItem is one entry in the bounded analysis history. IDs and
// timestamps are time-derived.
type CropHealthHistoryItem struct {
	ID        string       `json:"id"`
	ImageURL  string       `json:"imageUrl"`
	Analysis  CropAnalysis `json:"analysis"`
	Timestamp string       `json:"timestamp"`
}

// ProductListing is a farmer's produce listing. The collection is flat and
// shared: no owner is tracked, any farmer can edit any listing.
type ProductListing struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Quantity    string  `json:"quantity" yaml:"quantity"`
	Price       float64 `json:"price" yaml:"price"`
	ImageURL    string  `json:"imageUrl" yaml:"imageUrl"`
	Description string  `json:"description" yaml:"description"`
}

// Fertilizer is a seller's fertilizer listing. Same ownership caveat as
// ProductListing.
type Fertilizer struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
	ImageURL    string  `json:"imageUrl" yaml:"imageUrl"`
}
