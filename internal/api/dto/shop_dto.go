package dto

// UpdateProfileRequest payload for profile self-service. Empty fields keep
// their current value.
type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// ListQuery carries pagination parameters parsed from the query string.
type ListQuery struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}
