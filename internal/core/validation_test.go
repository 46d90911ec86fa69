package core

import (
	"strings"
	"testing"
)

func validSubmission() NewSubmission {
	return NewSubmission{
		RegistrationNumber:           "21BCE1234",
		StudentName:                  "Asha Rao",
		BlockAndRoom:                 "A-204",
		DiningMessName:               MessCentral,
		MessType:                     MessTypeVeg,
		FoodItemSuggestion:           "Masala dosa on Fridays",
		MealType:                     MealBreakfast,
		FeasibilityForMassProduction: FeasibleYes,
	}
}

func TestValidateSubmission_Valid(t *testing.T) {
	if verr := ValidateSubmission(validSubmission()); verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
}

func TestValidateSubmission_EachFieldRequired(t *testing.T) {
	for _, spec := range FieldSpecs {
		t.Run(string(spec.Field), func(t *testing.T) {
			sub := validSubmission()
			sub.Set(spec.Field, "")

			verr := ValidateSubmission(sub)
			if verr == nil {
				t.Fatal("expected a validation error")
			}
			if len(verr.Errors) != 1 || !verr.Has(spec.Field) {
				t.Fatalf("errors = %v, want only %s", verr.Errors, spec.Field)
			}
			if got := verr.Messages()[spec.Field]; got != spec.RequiredMsg {
				t.Errorf("message = %q, want %q", got, spec.RequiredMsg)
			}
			if _, ok := verr.WireMessages()[spec.Wire]; !ok {
				t.Errorf("WireMessages missing %q", spec.Wire)
			}
		})
	}
}

func TestValidateField(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		value   string
		wantErr string
	}{
		{"reg no too short", FieldRegistrationNumber, "ab", "Registration number must be at least 5 characters"},
		{"reg no exactly five", FieldRegistrationNumber, "abcde", ""},
		{"reg no padded", FieldRegistrationNumber, "  ab  ", "Registration number must be at least 5 characters"},
		{"whitespace only is empty", FieldStudentName, "   ", "Name is required"},
		{"name two runes", FieldStudentName, "Jo", ""},
		{"name multibyte runes", FieldStudentName, "李明", ""},
		{"block one char", FieldBlockAndRoom, "A", "Block and room number must be at least 2 characters"},
		{"suggestion too short", FieldFoodItemSuggestion, "Idli", "Suggestion must be at least 5 characters"},
		{"suggestion at max", FieldFoodItemSuggestion, strings.Repeat("a", 1000), ""},
		{"suggestion over max", FieldFoodItemSuggestion, strings.Repeat("a", 1001), "Suggestion must be at most 1000 characters"},
		{"suggestion over spreadsheet cell limit", FieldFoodItemSuggestion, strings.Repeat("a", 40000), "Suggestion must be at most 1000 characters"},
		{"max counts runes", FieldStudentName, strings.Repeat("明", 100), ""},
		{"name over max", FieldStudentName, strings.Repeat("b", 101), "Name must be at most 100 characters"},
		{"reg no over max", FieldRegistrationNumber, strings.Repeat("1", 33), "Registration number must be at most 32 characters"},
		{"block over max", FieldBlockAndRoom, strings.Repeat("C", 51), "Block and room number must be at most 50 characters"},
		{"emoji rejected", FieldFoodItemSuggestion, "Pizza 🍕 night", "Please remove emoji and other unsupported characters"},
		{"accents allowed", FieldFoodItemSuggestion, "Crème brûlée", ""},
		{"mess listed", FieldDiningMessName, MessWestWing, ""},
		{"mess unlisted", FieldDiningMessName, "Food Court", "Please select a listed dining mess"},
		{"mess type wrong case", FieldMessType, "veg", "Please select a listed mess type"},
		{"mess type with space", FieldMessType, MessTypeNight, ""},
		{"meal night mess", FieldMealType, MealNightMess, ""},
		{"meal unlisted", FieldMealType, "Brunch", "Please select a listed meal type"},
		{"feasibility yes", FieldFeasibility, FeasibleYes, ""},
		{"feasibility lower case", FieldFeasibility, "yes", "Please select yes or no"},
		{"unknown field", Field("nickname"), "x", "unknown field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := ValidateField(tt.field, tt.value)
			if tt.wantErr == "" {
				if fe != nil {
					t.Errorf("unexpected error: %v", fe)
				}
				return
			}
			if fe == nil {
				t.Fatalf("expected error %q", tt.wantErr)
			}
			if fe.Message != tt.wantErr {
				t.Errorf("message = %q, want %q", fe.Message, tt.wantErr)
			}
		})
	}
}

func TestValidateFields_Subset(t *testing.T) {
	sub := NewSubmission{RegistrationNumber: "ab", StudentName: "Asha Rao"}
	verr := ValidateFields(sub, FieldRegistrationNumber, FieldStudentName, FieldBlockAndRoom)
	if verr == nil {
		t.Fatal("expected errors")
	}
	if !verr.Has(FieldRegistrationNumber) || !verr.Has(FieldBlockAndRoom) {
		t.Errorf("errors = %v", verr.Errors)
	}
	if verr.Has(FieldStudentName) || verr.Has(FieldMessType) {
		t.Errorf("unexpected fields in %v", verr.Errors)
	}
}

func TestValidateSubmission_IdempotencyKeyLength(t *testing.T) {
	sub := validSubmission()
	sub.IdempotencyKey = strings.Repeat("k", MaxIdempotencyKeyLen+1)
	verr := ValidateSubmission(sub)
	if verr == nil || !verr.Has("idempotencyKey") {
		t.Fatalf("expected idempotencyKey error, got %v", verr)
	}
}

func TestNormalized(t *testing.T) {
	sub := validSubmission()
	sub.StudentName = "  Asha Rao \n"
	sub.IdempotencyKey = " key "
	n := sub.Normalized()
	if n.StudentName != "Asha Rao" || n.IdempotencyKey != "key" {
		t.Errorf("Normalized = %+v", n)
	}
	if sub.StudentName == n.StudentName {
		t.Error("Normalized modified the receiver")
	}
}

func TestFieldSpecs_TextFieldsBounded(t *testing.T) {
	for _, spec := range FieldSpecs {
		if spec.Type == FieldEnum {
			continue
		}
		if spec.MaxLen <= spec.MinLen || spec.TooLongMsg == "" {
			t.Errorf("%s: MaxLen %d, TooLongMsg %q", spec.Field, spec.MaxLen, spec.TooLongMsg)
		}
		if spec.MaxLen > 32767 {
			t.Errorf("%s: MaxLen %d exceeds a spreadsheet cell", spec.Field, spec.MaxLen)
		}
	}
}
