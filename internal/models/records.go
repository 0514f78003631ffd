package models

import (
	"fmt"
	"strconv"
)

// EntityType identifies a CRM record kind
type EntityType string

const (
	EntityLeads         EntityType = "leads"
	EntityContacts      EntityType = "contacts"
	EntityOpportunities EntityType = "opportunities"
	EntityCompanies     EntityType = "companies"
	EntityActivities    EntityType = "activities"
)

// AllEntityTypes returns every entity type in display order
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityLeads,
		EntityContacts,
		EntityOpportunities,
		EntityCompanies,
		EntityActivities,
	}
}

// Label returns the human-readable name of the entity type
func (e EntityType) Label() string {
	switch e {
	case EntityLeads:
		return "Leads"
	case EntityContacts:
		return "Contacts"
	case EntityOpportunities:
		return "Opportunities"
	case EntityCompanies:
		return "Companies"
	case EntityActivities:
		return "Activities"
	default:
		return string(e)
	}
}

// FieldType is the semantic type of a filterable field
type FieldType string

const (
	FieldString FieldType = "string"
	FieldNumber FieldType = "number"
	FieldDate   FieldType = "date"
	FieldSelect FieldType = "select"
)

// SelectOption is one choice of a select field
type SelectOption struct {
	Value string
	Label string
}

// FieldDefinition describes one filterable field of an entity type.
// Definitions are static; they never change at runtime.
type FieldDefinition struct {
	Name    string
	Label   string
	Type    FieldType
	Options []SelectOption
}

// Record is a single CRM record as returned by the API. Field values
// keep whatever JSON type the server sent.
type Record map[string]any

// Get renders the named field as a display string. Missing fields and
// nulls render as "".
func (r Record) Get(name string) string {
	v, ok := r[name]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		// JSON numbers decode as float64; integers should not grow a ".000000"
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
