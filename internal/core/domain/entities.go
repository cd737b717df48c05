package domain

import "time"

// Action is a single concrete next step.
type Action struct {
	// ID is the unique identifier.
	ID string

	// Title is the short action statement.
	Title string

	// Description is an optional longer form of the action.
	Description string

	// Notes holds free-form supporting notes.
	Notes string

	// ContextID references the Context the action needs, if any.
	ContextID string

	// ProjectID references the owning Project, if any.
	ProjectID string

	// Priority is the action's urgency.
	Priority Priority

	// DueDate is when the action is due, if scheduled.
	DueDate *time.Time

	// Tags are free-form labels.
	Tags []string

	// CompletedAt is when the action was completed, if it was.
	CompletedAt *time.Time

	// CreatedAt is when the action was captured.
	CreatedAt time.Time

	// UpdatedAt is when the action was last modified.
	UpdatedAt time.Time
}

// EntityID implements Searchable.
func (a *Action) EntityID() string { return a.ID }

// Type implements Searchable.
func (a *Action) Type() EntityType { return EntityTypeAction }

// SearchFields implements Searchable.
func (a *Action) SearchFields() []Field {
	return []Field{
		{Name: "title", Text: a.Title},
		{Name: "description", Text: a.Description},
		{Name: "notes", Text: a.Notes},
	}
}

// Facets implements Searchable.
func (a *Action) Facets() Facets {
	return Facets{
		ContextID: a.ContextID,
		ProjectID: a.ProjectID,
		Priority:  a.Priority,
		Due:       a.DueDate,
		Tags:      a.Tags,
	}
}

// Project is a multi-step outcome reviewed periodically.
type Project struct {
	// ID is the unique identifier.
	ID string

	// Title is the project name.
	Title string

	// Description is the desired outcome.
	Description string

	// Priority is the project's urgency.
	Priority Priority

	// DueDate is the target completion date, if any.
	DueDate *time.Time

	// Tags are free-form labels.
	Tags []string

	// ReviewInterval is how often the project should be reviewed.
	// Zero means the default review cadence applies.
	ReviewInterval time.Duration

	// LastReviewedAt is when the project was last reviewed.
	// Zero means it has never been reviewed.
	LastReviewedAt time.Time

	// CompletedAt is when the project was completed, if it was.
	CompletedAt *time.Time

	// CreatedAt is when the project was created.
	CreatedAt time.Time

	// UpdatedAt is when the project was last modified.
	UpdatedAt time.Time
}

// EntityID implements Searchable.
func (p *Project) EntityID() string { return p.ID }

// Type implements Searchable.
func (p *Project) Type() EntityType { return EntityTypeProject }

// SearchFields implements Searchable.
func (p *Project) SearchFields() []Field {
	return []Field{
		{Name: "title", Text: p.Title},
		{Name: "description", Text: p.Description},
	}
}

// Facets implements Searchable.
func (p *Project) Facets() Facets {
	return Facets{
		Priority: p.Priority,
		Due:      p.DueDate,
		Tags:     p.Tags,
	}
}

// DueForReview reports whether the project should be reviewed at the
// given instant. A never-reviewed project is always due.
func (p *Project) DueForReview(now time.Time, defaultInterval time.Duration) bool {
	if p.CompletedAt != nil {
		return false
	}
	if p.LastReviewedAt.IsZero() {
		return true
	}
	interval := p.ReviewInterval
	if interval <= 0 {
		interval = defaultInterval
	}
	return !now.Before(p.LastReviewedAt.Add(interval))
}

// WaitingItem is something delegated to someone else.
type WaitingItem struct {
	// ID is the unique identifier.
	ID string

	// Title is what is being waited for.
	Title string

	// Description is optional detail.
	Description string

	// DelegatedTo names the person or party responsible.
	DelegatedTo string

	// ProjectID references the owning Project, if any.
	ProjectID string

	// FollowUpDate is when to chase the item, if scheduled.
	FollowUpDate *time.Time

	// Tags are free-form labels.
	Tags []string

	// CreatedAt is when the item was delegated.
	CreatedAt time.Time

	// UpdatedAt is when the item was last modified.
	UpdatedAt time.Time
}

// EntityID implements Searchable.
func (w *WaitingItem) EntityID() string { return w.ID }

// Type implements Searchable.
func (w *WaitingItem) Type() EntityType { return EntityTypeWaiting }

// SearchFields implements Searchable.
func (w *WaitingItem) SearchFields() []Field {
	return []Field{
		{Name: "title", Text: w.Title},
		{Name: "description", Text: w.Description},
		{Name: "delegated_to", Text: w.DelegatedTo},
	}
}

// Facets implements Searchable.
func (w *WaitingItem) Facets() Facets {
	return Facets{
		ProjectID: w.ProjectID,
		Due:       w.FollowUpDate,
		Tags:      w.Tags,
	}
}

// CalendarItem is a time-bound commitment.
type CalendarItem struct {
	// ID is the unique identifier.
	ID string

	// Title is the event name.
	Title string

	// Description is optional detail.
	Description string

	// StartAt is when the item begins.
	StartAt time.Time

	// EndAt is when the item ends, if bounded.
	EndAt *time.Time

	// Tags are free-form labels.
	Tags []string

	// CreatedAt is when the item was created.
	CreatedAt time.Time

	// UpdatedAt is when the item was last modified.
	UpdatedAt time.Time
}

// EntityID implements Searchable.
func (c *CalendarItem) EntityID() string { return c.ID }

// Type implements Searchable.
func (c *CalendarItem) Type() EntityType { return EntityTypeCalendar }

// SearchFields implements Searchable.
func (c *CalendarItem) SearchFields() []Field {
	return []Field{
		{Name: "title", Text: c.Title},
		{Name: "description", Text: c.Description},
	}
}

// Facets implements Searchable.
func (c *CalendarItem) Facets() Facets {
	start := c.StartAt
	facets := Facets{Tags: c.Tags}
	if !start.IsZero() {
		facets.Due = &start
	}
	return facets
}

// InboxItem is an unprocessed captured thought.
type InboxItem struct {
	// ID is the unique identifier.
	ID string

	// Title is the captured text.
	Title string

	// Notes holds any extra captured detail.
	Notes string

	// CreatedAt is when the item was captured.
	CreatedAt time.Time

	// UpdatedAt is when the item was last modified.
	UpdatedAt time.Time
}

// EntityID implements Searchable.
func (i *InboxItem) EntityID() string { return i.ID }

// Type implements Searchable.
func (i *InboxItem) Type() EntityType { return EntityTypeInbox }

// SearchFields implements Searchable.
func (i *InboxItem) SearchFields() []Field {
	return []Field{
		{Name: "title", Text: i.Title},
		{Name: "notes", Text: i.Notes},
	}
}

// Facets implements Searchable.
func (i *InboxItem) Facets() Facets { return Facets{} }
