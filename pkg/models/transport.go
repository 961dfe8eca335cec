package models

// AnalyzeURLRequest asks the service to fetch and analyze a remote image
type AnalyzeURLRequest struct {
	URL      string   `json:"url" binding:"required"`
	Strategy string   `json:"strategy,omitempty"`
	Fraction *float64 `json:"fraction,omitempty"`
	Palette  *bool    `json:"palette,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Type    string `json:"type,omitempty"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// ToneListResponse lists the supported tone categories
type ToneListResponse struct {
	Tones []string `json:"tones"`
}

// ToneResponse returns the bundle stored for one tone
type ToneResponse struct {
	Tone            string          `json:"tone"`
	Recommendations Recommendations `json:"recommendations"`
}
