package messages

import "github.com/cheerioskun/charbrowser/internal/models"

// ResetFiltersMsg asks the owner of the filter state to clear every field
type ResetFiltersMsg struct{}

// ResultsLoadedMsg carries a decoded page for request Seq
type ResultsLoadedMsg struct {
	Seq   uint64             // Sequence number of the request
	Query models.FilterState // Filter the request was built from
	Page  *models.Page
}

// FetchFailedMsg reports a network or decode failure for request Seq
type FetchFailedMsg struct {
	Seq   uint64
	Query models.FilterState
	Err   error
}

// ResultsUpdatedMsg is sent to child components after the result set changed
type ResultsUpdatedMsg struct {
	Results *models.ResultSet
}
