package schema

import (
	"testing"

	"github.com/kherve/lazycrm/internal/models"
)

func TestFields_UnknownEntityReturnsEmpty(t *testing.T) {
	got := Fields(models.EntityType("invoices"))
	if len(got) != 0 {
		t.Errorf("expected no fields for unknown entity, got %d", len(got))
	}
}

func TestFields_EveryEntityHasFields(t *testing.T) {
	for _, entity := range models.AllEntityTypes() {
		if len(Fields(entity)) == 0 {
			t.Errorf("entity '%s' has no fields", entity)
		}
	}
}

func TestFields_NamesAreUniquePerEntity(t *testing.T) {
	for _, entity := range models.AllEntityTypes() {
		seen := map[string]bool{}
		for _, f := range Fields(entity) {
			if seen[f.Name] {
				t.Errorf("entity '%s' has duplicate field '%s'", entity, f.Name)
			}
			seen[f.Name] = true
		}
	}
}

func TestFields_SelectFieldsHaveOptions(t *testing.T) {
	for _, entity := range models.AllEntityTypes() {
		for _, f := range Fields(entity) {
			if f.Type == models.FieldSelect && len(f.Options) == 0 {
				t.Errorf("select field '%s.%s' has no options", entity, f.Name)
			}
			if f.Type != models.FieldSelect && len(f.Options) > 0 {
				t.Errorf("non-select field '%s.%s' carries options", entity, f.Name)
			}
		}
	}
}

func TestFind(t *testing.T) {
	f, ok := Find(models.EntityLeads, "score")
	if !ok {
		t.Fatal("expected to find leads.score")
	}
	if f.Type != models.FieldNumber {
		t.Errorf("expected number type, got '%s'", f.Type)
	}

	if _, ok := Find(models.EntityLeads, "nonexistent"); ok {
		t.Error("expected lookup miss for unknown field")
	}
}
