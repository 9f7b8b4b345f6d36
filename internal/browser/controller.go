// Package browser owns the character browser state: the four filter fields,
// the result set on screen and the sequence guard that decides which fetch
// completion is allowed to replace it.
package browser

import (
	"time"

	"github.com/cheerioskun/charbrowser/internal/models"
)

// Phase is the load phase shown by the render layer
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseResults
	PhaseEmpty
	PhaseError
)

// String returns a human-readable representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "Loading"
	case PhaseResults:
		return "Results"
	case PhaseEmpty:
		return "Empty"
	case PhaseError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Snapshot is a read-only copy of the controller state
type Snapshot struct {
	Filter    models.FilterState
	Results   *models.ResultSet // nil until the first fetch is accepted
	Phase     Phase
	Err       error // Last failure for the latest request, if any
	Seq       uint64
	UpdatedAt time.Time // When the latest request last completed; zero before that
}

// Controller is the single owner of filter state and results. It is not safe
// for concurrent use; the UI event loop is its only caller.
type Controller struct {
	filter    models.FilterState
	results   *models.ResultSet
	seq       uint64
	pending   bool
	err       error
	updatedAt time.Time
}

// NewController creates a controller with every filter unset
func NewController() *Controller {
	return &Controller{}
}

// Filter returns the current filter state
func (c *Controller) Filter() models.FilterState {
	return c.filter
}

// ToggleStatus selects status, or clears it when it is already selected
func (c *Controller) ToggleStatus(status models.Status) bool {
	if c.filter.Status == status {
		c.filter.Status = models.StatusUnset
	} else {
		c.filter.Status = status
	}
	return true
}

// ToggleSpecies selects species, or clears it when it is already selected
func (c *Controller) ToggleSpecies(species models.Species) bool {
	if c.filter.Species == species {
		c.filter.Species = models.SpeciesUnset
	} else {
		c.filter.Species = species
	}
	return true
}

// ToggleGender selects gender, or clears it when it is already selected
func (c *Controller) ToggleGender(gender models.Gender) bool {
	if c.filter.Gender == gender {
		c.filter.Gender = models.GenderUnset
	} else {
		c.filter.Gender = gender
	}
	return true
}

// SetSearch replaces the search term. It reports false when the term is unchanged.
func (c *Controller) SetSearch(term string) bool {
	if c.filter.Search == term {
		return false
	}
	c.filter.Search = term
	return true
}

// Reset clears all four fields. It reports false when nothing was set.
func (c *Controller) Reset() bool {
	if c.filter.IsZero() {
		return false
	}
	c.filter = models.FilterState{}
	return true
}

// BeginFetch issues a new request sequence number for the current filter.
// Any completion carrying an older number will be discarded.
func (c *Controller) BeginFetch() (uint64, models.FilterState) {
	c.seq++
	c.pending = true
	return c.seq, c.filter
}

// Complete accepts a fetched page if seq is the latest request. The result
// set is replaced wholesale. It reports whether the page was accepted.
func (c *Controller) Complete(seq uint64, query models.FilterState, page *models.Page) bool {
	if seq != c.seq {
		return false
	}
	c.results = models.NewResultSet(query, page)
	c.pending = false
	c.err = nil
	c.updatedAt = time.Now()
	return true
}

// Fail records a failure for seq if it is the latest request. The result set
// is left as it was.
func (c *Controller) Fail(seq uint64, err error) bool {
	if seq != c.seq {
		return false
	}
	c.pending = false
	c.err = err
	c.updatedAt = time.Now()
	return true
}

// IsLatest reports whether seq belongs to the most recently issued request
func (c *Controller) IsLatest(seq uint64) bool {
	return seq == c.seq
}

// Snapshot returns a copy of the state for rendering
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Filter:    c.filter,
		Results:   c.results.Clone(),
		Phase:     c.phase(),
		Err:       c.err,
		Seq:       c.seq,
		UpdatedAt: c.updatedAt,
	}
}

func (c *Controller) phase() Phase {
	switch {
	case c.pending:
		return PhaseLoading
	case c.err != nil:
		return PhaseError
	case c.results.IsEmpty():
		return PhaseEmpty
	default:
		return PhaseResults
	}
}
