package domain

import "errors"

// Erori de domeniu (fără dependențe externe).
var (
	ErrNotFound     = errors.New("resursă negăsită")
	ErrInvalidInput = errors.New("date de intrare invalide")
	ErrDuplicate    = errors.New("resursă duplicată")
	ErrConflict     = errors.New("conflict cu starea curentă")
)
