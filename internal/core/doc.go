// Package core provides the business logic for mess menu feedback.
//
// Validation, error mapping and the service know nothing about HTTP and are
// shared by the HTTP server, the terminal form and tests. [PostgresStore] in
// store.go is the only part that talks to the database.
//
// # Fields
//
// The eight submission attributes are described once in [FieldSpecs]. The
// same specs drive server-side validation, the multi-step form and the
// options catalog, so a rule changes in one place:
//
//	spec, _ := core.Spec(core.FieldStudentName)
//	spec.MinLen // 2
//	spec.MaxLen // 100
//
// # Submissions
//
// [Service.Submit] trims and validates a [NewSubmission], then hands it to a
// [Store]. Stored rows are append-only and ordered by id. A submission that
// carries an idempotency key is stored at most once; resending it returns
// the original id. The store keeps a [Fingerprint] of the values next to the
// key, and a resend with different values fails with
// [ErrIdempotencyKeyReused].
//
// # Reports
//
// [Service.Export] reads every row and passes it to a [RenderFunc]. Renders
// are bounded by an [ExportLimiter] so a burst of downloads cannot exhaust
// memory or database connections.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each category has a code for support reference:
//
//   - SUB001-SUB003: Submission errors (invalid fields, malformed body, reused key)
//   - DB000-DB006: Storage errors (connectivity, timeouts)
//   - EXP001-EXP002: Export errors (busy, render failure)
//   - REQ001-REQ002, RATE001: Request lifecycle errors
package core
