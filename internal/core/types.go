package core

import (
	"context"
	"strings"
	"time"
)

// Field identifies one of the eight user-supplied submission attributes.
type Field string

const (
	FieldRegistrationNumber Field = "registrationNumber"
	FieldStudentName        Field = "studentName"
	FieldBlockAndRoom       Field = "blockAndRoom"
	FieldDiningMessName     Field = "diningMessName"
	FieldMessType           Field = "messType"
	FieldMealType           Field = "mealType"
	FieldFoodItemSuggestion Field = "foodItemSuggestion"
	FieldFeasibility        Field = "feasibilityForMassProduction"
)

// NewSubmission is a submission as supplied by a client, before the store
// assigns an ID and timestamp. JSON names match the public wire format.
type NewSubmission struct {
	RegistrationNumber           string `json:"reg_no"`
	StudentName                  string `json:"student_name"`
	BlockAndRoom                 string `json:"block_room"`
	DiningMessName               string `json:"mess_name"`
	MessType                     string `json:"mess_type"`
	FoodItemSuggestion           string `json:"food_suggestion"`
	MealType                     string `json:"meal_type"`
	FeasibilityForMassProduction string `json:"feasibility"`

	// IdempotencyKey deduplicates retried submissions. Optional; travels in
	// the Idempotency-Key header rather than the body.
	IdempotencyKey string `json:"-"`
}

// Submission is a stored feedback record. It is never updated or deleted.
type Submission struct {
	ID int64 `json:"id"`
	NewSubmission
	SubmittedAt time.Time `json:"submitted_at"`
}

// Get returns the value of a field.
func (n NewSubmission) Get(f Field) string {
	switch f {
	case FieldRegistrationNumber:
		return n.RegistrationNumber
	case FieldStudentName:
		return n.StudentName
	case FieldBlockAndRoom:
		return n.BlockAndRoom
	case FieldDiningMessName:
		return n.DiningMessName
	case FieldMessType:
		return n.MessType
	case FieldMealType:
		return n.MealType
	case FieldFoodItemSuggestion:
		return n.FoodItemSuggestion
	case FieldFeasibility:
		return n.FeasibilityForMassProduction
	default:
		return ""
	}
}

// Set assigns the value of a field. Unknown fields are ignored.
func (n *NewSubmission) Set(f Field, value string) {
	switch f {
	case FieldRegistrationNumber:
		n.RegistrationNumber = value
	case FieldStudentName:
		n.StudentName = value
	case FieldBlockAndRoom:
		n.BlockAndRoom = value
	case FieldDiningMessName:
		n.DiningMessName = value
	case FieldMessType:
		n.MessType = value
	case FieldMealType:
		n.MealType = value
	case FieldFoodItemSuggestion:
		n.FoodItemSuggestion = value
	case FieldFeasibility:
		n.FeasibilityForMassProduction = value
	}
}

// Normalized returns a copy with surrounding whitespace removed from every field.
func (n NewSubmission) Normalized() NewSubmission {
	out := n
	for _, spec := range FieldSpecs {
		out.Set(spec.Field, strings.TrimSpace(n.Get(spec.Field)))
	}
	out.IdempotencyKey = strings.TrimSpace(n.IdempotencyKey)
	return out
}

// Store is the record store gateway. Implementations must assign IDs in
// insertion order and return ListSubmissions results ordered by ID.
type Store interface {
	// InsertSubmission persists one row and returns its ID. When the
	// submission carries an IdempotencyKey that is already stored with the
	// same Fingerprint, the existing ID is returned and nothing is written;
	// with a different Fingerprint it fails with ErrIdempotencyKeyReused.
	InsertSubmission(ctx context.Context, sub NewSubmission) (int64, error)

	// ListSubmissions returns every stored row, oldest first.
	ListSubmissions(ctx context.Context) ([]Submission, error)

	// CountSubmissions returns the number of stored rows.
	CountSubmissions(ctx context.Context) (int64, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}

// RenderFunc renders the full submission set into a document.
type RenderFunc func(records []Submission) ([]byte, error)
