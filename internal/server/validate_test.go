package server

import (
	"strings"
	"testing"

	"github.com/sorplus/public-gateway/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestValidateSubmission(t *testing.T) {
	valid := models.Submission{
		CategoryID:  "0b5e7a86-0d8c-4a1f-9a72-4a5a6f1d2e3c",
		Title:       "Kargom gelmedi",
		Detail:      strings.Repeat("şikayet detayı ", 5),
		AcceptRules: true,
	}

	tests := []struct {
		name       string
		mutate     func(*models.Submission)
		wantFields []string
	}{
		{
			name:       "Valid submission passes",
			mutate:     func(s *models.Submission) {},
			wantFields: nil,
		},
		{
			name:       "Missing category",
			mutate:     func(s *models.Submission) { s.CategoryID = "  " },
			wantFields: []string{"categoryId"},
		},
		{
			name:       "Non-UUID category",
			mutate:     func(s *models.Submission) { s.CategoryID = "12345" },
			wantFields: []string{"categoryId"},
		},
		{
			name:       "Short title",
			mutate:     func(s *models.Submission) { s.Title = "kısa" },
			wantFields: []string{"title"},
		},
		{
			name:       "Title padding does not count",
			mutate:     func(s *models.Submission) { s.Title = "  ab  " },
			wantFields: []string{"title"},
		},
		{
			name:       "Short detail",
			mutate:     func(s *models.Submission) { s.Detail = "yetersiz detay" },
			wantFields: []string{"detail"},
		},
		{
			name:       "Rules not accepted",
			mutate:     func(s *models.Submission) { s.AcceptRules = false },
			wantFields: []string{"acceptRules"},
		},
		{
			name: "Everything wrong at once",
			mutate: func(s *models.Submission) {
				s.CategoryID = ""
				s.Title = ""
				s.Detail = ""
				s.AcceptRules = false
			},
			wantFields: []string{"categoryId", "title", "detail", "acceptRules"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submission := valid
			tt.mutate(&submission)

			fieldErrors := validateSubmission(submission)
			assert.Len(t, fieldErrors, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, fieldErrors, field)
			}
		})
	}
}
