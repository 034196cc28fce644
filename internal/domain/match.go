package domain

// PredictRequest is the body of a lookup request
type PredictRequest struct {
	MedicineName *string `json:"medicine_name"`
}

// Alternative is one compositionally similar medicine
type Alternative struct {
	BrandName  string `json:"brand_name"`
	Formula    string `json:"formula"`
	Price      string `json:"price"`
	MatchScore string `json:"match_score"` // percentage, e.g. "87.3%"
}

// MatchResult is the outcome of a successful lookup
type MatchResult struct {
	TargetBrand  string        `json:"match"`
	Alternatives []Alternative `json:"alternatives"`
}
