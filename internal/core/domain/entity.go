package domain

import "time"

// EntityType tags the kind of a searchable entity.
type EntityType string

// Available entity types.
const (
	// EntityTypeAction is a single next action.
	EntityTypeAction EntityType = "action"

	// EntityTypeProject is a multi-step outcome.
	EntityTypeProject EntityType = "project"

	// EntityTypeWaiting is an item delegated to someone else.
	EntityTypeWaiting EntityType = "waiting"

	// EntityTypeCalendar is a time-bound calendar item.
	EntityTypeCalendar EntityType = "calendar"

	// EntityTypeInbox is an unprocessed captured item.
	EntityTypeInbox EntityType = "inbox"
)

// EntityTypes returns all entity types in canonical order.
// This order is the deterministic tie-break for equally scored
// search results from different types.
func EntityTypes() []EntityType {
	return []EntityType{
		EntityTypeAction,
		EntityTypeProject,
		EntityTypeWaiting,
		EntityTypeCalendar,
		EntityTypeInbox,
	}
}

// IsValid returns true if the entity type is recognised.
func (t EntityType) IsValid() bool {
	switch t {
	case EntityTypeAction, EntityTypeProject, EntityTypeWaiting,
		EntityTypeCalendar, EntityTypeInbox:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t EntityType) String() string {
	return string(t)
}

// Priority is the urgency level of an action or project.
type Priority string

// Available priorities.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid returns true if the priority is recognised.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Field is one named free-text field extracted from an entity for matching.
type Field struct {
	// Name identifies the field ("title", "description", ...).
	Name string

	// Text is the field content.
	Text string
}

// Facets holds the structured attributes of an entity used for filtering.
// Zero values mean the attribute is absent.
type Facets struct {
	// ContextID references the entity's context, if any.
	ContextID string

	// ProjectID references the owning project, if any.
	ProjectID string

	// Priority is the entity's priority, if any.
	Priority Priority

	// Due is the entity's relevant date (due date for actions and
	// projects, follow-up date for waiting items, start for calendar
	// items), if any.
	Due *time.Time

	// Tags are free-form labels attached to the entity.
	Tags []string
}

// Searchable is implemented by every entity the search engine can index.
type Searchable interface {
	// EntityID is the unique identifier.
	EntityID() string

	// Type tags the entity kind.
	Type() EntityType

	// SearchFields returns the free-text fields used for matching,
	// in display order. Field order is also ranking order: earlier
	// fields weigh slightly more.
	SearchFields() []Field

	// Facets returns the structured attributes used for filtering.
	Facets() Facets
}

// Context is a situational constraint under which an action can be
// performed (location, tool, energy level).
type Context struct {
	// ID is the unique identifier.
	ID string

	// Name is the display name, without prefix ("office", "errands").
	Name string
}

// Collections bundles one entity slice per type, as supplied by the
// persistence layer to the index builder.
type Collections struct {
	Actions  []Action
	Projects []Project
	Waiting  []WaitingItem
	Calendar []CalendarItem
	Inbox    []InboxItem
}

// ByType returns the collection for a type as Searchable values.
// Unknown types return nil.
func (c *Collections) ByType(t EntityType) []Searchable {
	switch t {
	case EntityTypeAction:
		return toSearchable(c.Actions)
	case EntityTypeProject:
		return toSearchable(c.Projects)
	case EntityTypeWaiting:
		return toSearchable(c.Waiting)
	case EntityTypeCalendar:
		return toSearchable(c.Calendar)
	case EntityTypeInbox:
		return toSearchable(c.Inbox)
	default:
		return nil
	}
}

// All returns every entity across all collections, in canonical type
// order.
func (c *Collections) All() []Searchable {
	var out []Searchable
	for _, t := range EntityTypes() {
		out = append(out, c.ByType(t)...)
	}
	return out
}

func toSearchable[E any, P interface {
	*E
	Searchable
}](items []E) []Searchable {
	if len(items) == 0 {
		return nil
	}
	out := make([]Searchable, len(items))
	for i := range items {
		out[i] = P(&items[i])
	}
	return out
}
