package server

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sorplus/public-gateway/internal/models"
)

const (
	minTitleLen  = 6
	minDetailLen = 40
)

// validateSubmission runs the client-side checks before anything reaches the
// backend: a selected category (UUID, the backend DTO requires it), minimum
// title and detail lengths, and an accepted rules checkbox. Returns a
// field-to-message map; empty means valid.
func validateSubmission(s models.Submission) map[string]string {
	fieldErrors := make(map[string]string)

	categoryID := strings.TrimSpace(s.CategoryID)
	if categoryID == "" {
		fieldErrors["categoryId"] = "Bir kategori seç."
	} else if uuid.Validate(categoryID) != nil {
		fieldErrors["categoryId"] = "Kategori id UUID olmalı."
	}

	if utf8.RuneCountInString(strings.TrimSpace(s.Title)) < minTitleLen {
		fieldErrors["title"] = "Başlık en az 6 karakter olmalı."
	}

	if utf8.RuneCountInString(strings.TrimSpace(s.Detail)) < minDetailLen {
		fieldErrors["detail"] = "Detay en az 40 karakter olmalı."
	}

	if !s.AcceptRules {
		fieldErrors["acceptRules"] = "Devam etmek için kuralları onayla."
	}

	return fieldErrors
}
