package user

// ListFilter narrows a user listing. The zero value selects every user.
type ListFilter struct {
	Query string // Query matches name or email, case-insensitively
	Page  int64  // Page is 1-based and only used when Limit is set
	Limit int64  // Limit of 0 disables paging
}

// Offset returns the number of rows to skip for the filter's page.
func (f ListFilter) Offset() int64 {
	if f.Limit <= 0 || f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}
