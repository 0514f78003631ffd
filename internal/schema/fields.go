package schema

import "github.com/kherve/lazycrm/internal/models"

// Fields returns the ordered filterable fields for an entity type.
// Unknown entity types return an empty slice, never an error; the
// registry is static and supplied at build time.
func Fields(entity models.EntityType) []models.FieldDefinition {
	switch entity {
	case models.EntityLeads:
		return leadFields
	case models.EntityContacts:
		return contactFields
	case models.EntityOpportunities:
		return opportunityFields
	case models.EntityCompanies:
		return companyFields
	case models.EntityActivities:
		return activityFields
	default:
		return nil
	}
}

// Find returns the definition of a named field, or false when the
// entity type doesn't have it
func Find(entity models.EntityType, name string) (models.FieldDefinition, bool) {
	for _, f := range Fields(entity) {
		if f.Name == name {
			return f, true
		}
	}
	return models.FieldDefinition{}, false
}

var leadFields = []models.FieldDefinition{
	{Name: "name", Label: "Name", Type: models.FieldString},
	{Name: "email", Label: "Email", Type: models.FieldString},
	{Name: "phone", Label: "Phone", Type: models.FieldString},
	{Name: "company", Label: "Company", Type: models.FieldString},
	{Name: "score", Label: "Score", Type: models.FieldNumber},
	{Name: "status", Label: "Status", Type: models.FieldSelect, Options: []models.SelectOption{
		{Value: "new", Label: "New"},
		{Value: "contacted", Label: "Contacted"},
		{Value: "qualified", Label: "Qualified"},
		{Value: "unqualified", Label: "Unqualified"},
		{Value: "converted", Label: "Converted"},
	}},
	{Name: "source", Label: "Source", Type: models.FieldSelect, Options: []models.SelectOption{
		{Value: "web", Label: "Web"},
		{Value: "referral", Label: "Referral"},
		{Value: "event", Label: "Event"},
		{Value: "cold_call", Label: "Cold Call"},
		{Value: "other", Label: "Other"},
	}},
	{Name: "created_at", Label: "Created", Type: models.FieldDate},
}

var contactFields = []models.FieldDefinition{
	{Name: "first_name", Label: "First Name", Type: models.FieldString},
	{Name: "last_name", Label: "Last Name", Type: models.FieldString},
	{Name: "email", Label: "Email", Type: models.FieldString},
	{Name: "phone", Label: "Phone", Type: models.FieldString},
	{Name: "title", Label: "Job Title", Type: models.FieldString},
	{Name: "company", Label: "Company", Type: models.FieldString},
	{Name: "city", Label: "City", Type: models.FieldString},
	{Name: "created_at", Label: "Created", Type: models.FieldDate},
}

var opportunityFields = []models.FieldDefinition{
	{Name: "name", Label: "Name", Type: models.FieldString},
	{Name: "amount", Label: "Amount", Type: models.FieldNumber},
	{Name: "probability", Label: "Probability", Type: models.FieldNumber},
	{Name: "stage", Label: "Stage", Type: models.FieldSelect, Options: []models.SelectOption{
		{Value: "prospecting", Label: "Prospecting"},
		{Value: "qualification", Label: "Qualification"},
		{Value: "proposal", Label: "Proposal"},
		{Value: "negotiation", Label: "Negotiation"},
		{Value: "closed_won", Label: "Closed Won"},
		{Value: "closed_lost", Label: "Closed Lost"},
	}},
	{Name: "close_date", Label: "Close Date", Type: models.FieldDate},
	{Name: "created_at", Label: "Created", Type: models.FieldDate},
}

var companyFields = []models.FieldDefinition{
	{Name: "name", Label: "Name", Type: models.FieldString},
	{Name: "domain", Label: "Domain", Type: models.FieldString},
	{Name: "industry", Label: "Industry", Type: models.FieldSelect, Options: []models.SelectOption{
		{Value: "software", Label: "Software"},
		{Value: "finance", Label: "Finance"},
		{Value: "healthcare", Label: "Healthcare"},
		{Value: "manufacturing", Label: "Manufacturing"},
		{Value: "retail", Label: "Retail"},
		{Value: "other", Label: "Other"},
	}},
	{Name: "employees", Label: "Employees", Type: models.FieldNumber},
	{Name: "annual_revenue", Label: "Annual Revenue", Type: models.FieldNumber},
	{Name: "created_at", Label: "Created", Type: models.FieldDate},
}

var activityFields = []models.FieldDefinition{
	{Name: "subject", Label: "Subject", Type: models.FieldString},
	{Name: "type", Label: "Type", Type: models.FieldSelect, Options: []models.SelectOption{
		{Value: "call", Label: "Call"},
		{Value: "email", Label: "Email"},
		{Value: "meeting", Label: "Meeting"},
		{Value: "task", Label: "Task"},
		{Value: "note", Label: "Note"},
	}},
	{Name: "status", Label: "Status", Type: models.FieldSelect, Options: []models.SelectOption{
		{Value: "planned", Label: "Planned"},
		{Value: "done", Label: "Done"},
		{Value: "canceled", Label: "Canceled"},
	}},
	{Name: "due_date", Label: "Due Date", Type: models.FieldDate},
	{Name: "created_at", Label: "Created", Type: models.FieldDate},
}
