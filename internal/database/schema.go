package database

import (
	"context"
	_ "embed"
	"fmt"
)

// Schema is the DDL for every table this package queries. It is idempotent.
//
//go:embed schema.sql
var Schema string

// EnsureSchema creates missing tables. Safe to call on every start.
func EnsureSchema(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
