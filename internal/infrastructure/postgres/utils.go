package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifică dacă o eroare este o încălcare de constrângere unică (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// nullIfEmpty întoarce nil pentru string gol, altfel pointerul spre valoare.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
