package core

// fields.go declares the validation rules for every submission attribute.
//
// The same FieldSpecs drive server-side validation, the multi-step form
// and the options catalog served to clients, so a rule changes in one place.

// FieldType represents the kind of input a field expects.
type FieldType int

const (
	FieldText FieldType = iota
	FieldLongText
	FieldEnum
)

// Option is one allowed value of an enum field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldSpec defines validation rules and presentation for a single field.
type FieldSpec struct {
	Field       Field     // Field key
	Wire        string    // JSON name on the HTTP API
	Label       string    // Display label
	Type        FieldType // Input kind
	MinLen      int       // Minimum length in runes for text fields
	MaxLen      int       // Maximum length in runes for text fields
	Options     []Option  // Allowed values for FieldEnum
	RequiredMsg string    // Message shown when empty
	InvalidMsg  string    // Message shown when too short or not an allowed value
	TooLongMsg  string    // Message shown when longer than MaxLen
}

// MaxStoredRune is the highest code point accepted in text fields. Both
// report formats reproduce everything up to it unchanged.
const MaxStoredRune = 0xFFFF

// Allowed values, exactly as stored.
const (
	MessCentral    = "Central Mess"
	MessNorthBlock = "North Block Mess"
	MessSouthBlock = "South Block Mess"
	MessEastWing   = "East Wing Mess"
	MessWestWing   = "West Wing Mess"

	MessTypeVeg     = "Veg"
	MessTypeNonVeg  = "Non-Veg"
	MessTypeSpecial = "Special"
	MessTypeNight   = "Night Mess"

	MealBreakfast = "Breakfast"
	MealLunch     = "Lunch"
	MealSnacks    = "Snacks"
	MealDinner    = "Dinner"
	MealNightMess = "Night Mess"

	FeasibleYes = "Yes"
	FeasibleNo  = "No"
)

// FieldSpecs lists every field in wire order.
var FieldSpecs = []FieldSpec{
	{
		Field: FieldRegistrationNumber, Wire: "reg_no", Label: "Registration Number",
		Type: FieldText, MinLen: 5, MaxLen: 32,
		RequiredMsg: "Registration number is required",
		InvalidMsg:  "Registration number must be at least 5 characters",
		TooLongMsg:  "Registration number must be at most 32 characters",
	},
	{
		Field: FieldStudentName, Wire: "student_name", Label: "Student Name",
		Type: FieldText, MinLen: 2, MaxLen: 100,
		RequiredMsg: "Name is required",
		InvalidMsg:  "Name must be at least 2 characters",
		TooLongMsg:  "Name must be at most 100 characters",
	},
	{
		Field: FieldBlockAndRoom, Wire: "block_room", Label: "Block and Room Number",
		Type: FieldText, MinLen: 2, MaxLen: 50,
		RequiredMsg: "Block and room number is required",
		InvalidMsg:  "Block and room number must be at least 2 characters",
		TooLongMsg:  "Block and room number must be at most 50 characters",
	},
	{
		Field: FieldDiningMessName, Wire: "mess_name", Label: "Dining Mess Name",
		Type: FieldEnum,
		Options: []Option{
			{MessCentral, MessCentral},
			{MessNorthBlock, MessNorthBlock},
			{MessSouthBlock, MessSouthBlock},
			{MessEastWing, MessEastWing},
			{MessWestWing, MessWestWing},
		},
		RequiredMsg: "Please select a dining mess",
		InvalidMsg:  "Please select a listed dining mess",
	},
	{
		Field: FieldMessType, Wire: "mess_type", Label: "Mess Type",
		Type: FieldEnum,
		Options: []Option{
			{MessTypeVeg, "Vegetarian"},
			{MessTypeNonVeg, "Non-Vegetarian"},
			{MessTypeSpecial, "Special"},
			{MessTypeNight, "Night Mess"},
		},
		RequiredMsg: "Please select a mess type",
		InvalidMsg:  "Please select a listed mess type",
	},
	{
		Field: FieldFoodItemSuggestion, Wire: "food_suggestion", Label: "Food Item Suggestion",
		Type: FieldLongText, MinLen: 5, MaxLen: 1000,
		RequiredMsg: "Food suggestion is required",
		InvalidMsg:  "Suggestion must be at least 5 characters",
		TooLongMsg:  "Suggestion must be at most 1000 characters",
	},
	{
		Field: FieldMealType, Wire: "meal_type", Label: "Meal Type",
		Type: FieldEnum,
		Options: []Option{
			{MealBreakfast, MealBreakfast},
			{MealLunch, MealLunch},
			{MealSnacks, MealSnacks},
			{MealDinner, MealDinner},
			{MealNightMess, MealNightMess},
		},
		RequiredMsg: "Please select a meal type",
		InvalidMsg:  "Please select a listed meal type",
	},
	{
		Field: FieldFeasibility, Wire: "feasibility", Label: "Feasible for Mass Production?",
		Type: FieldEnum,
		Options: []Option{
			{FeasibleYes, FeasibleYes},
			{FeasibleNo, FeasibleNo},
		},
		RequiredMsg: "Please select yes or no",
		InvalidMsg:  "Please select yes or no",
	},
}

var specByField = func() map[Field]FieldSpec {
	m := make(map[Field]FieldSpec, len(FieldSpecs))
	for _, spec := range FieldSpecs {
		m[spec.Field] = spec
	}
	return m
}()

// Spec returns the FieldSpec for a field.
func Spec(f Field) (FieldSpec, bool) {
	spec, ok := specByField[f]
	return spec, ok
}

// Values returns the allowed values of an enum field in display order.
func (s FieldSpec) Values() []string {
	out := make([]string, len(s.Options))
	for i, o := range s.Options {
		out[i] = o.Value
	}
	return out
}

// SpecByWire returns the FieldSpec with the given JSON name.
func SpecByWire(wire string) (FieldSpec, bool) {
	for _, spec := range FieldSpecs {
		if spec.Wire == wire {
			return spec, true
		}
	}
	return FieldSpec{}, false
}
