package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/sorplus/public-gateway/internal/listing"
	"github.com/sorplus/public-gateway/internal/models"
	"github.com/sorplus/public-gateway/internal/normalize"
	"github.com/sorplus/public-gateway/internal/upstream"
)

// loginRedirect is where unauthenticated submitters are sent, carrying the
// return path.
const loginRedirect = "/giris?next=/sikayet-yaz"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	options := s.catalog.Options(r.Context())
	if options == nil {
		options = []models.Category{}
	}
	writeJSON(w, http.StatusOK, options)
}

func (s *Server) handleListComplaints(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := listing.Request{
		Query:    query.Get("q"),
		Category: query.Get("category"),
		Sort:     listing.SortKey(query.Get("sort")),
		Page:     intParam(query.Get("page"), 1),
		PageSize: intParam(query.Get("pageSize"), s.config.PageSize),
	}
	if req.PageSize <= 0 || req.PageSize > s.config.ListFetchLimit {
		req.PageSize = s.config.PageSize
	}

	// One window is fetched and the pipeline runs locally; the hint params
	// are forwarded but correctness never depends on the backend honoring
	// them.
	params := upstream.ListParams{
		Take:       s.config.ListFetchLimit,
		Query:      req.Query,
		CategoryID: query.Get("categoryId"),
		Sort:       string(req.Sort),
	}
	if req.Category != "" && req.Category != listing.AllCategories {
		params.Category = req.Category
	}

	records, _, err := s.backend.PublicComplaints(r.Context(), params)
	if err != nil {
		logrus.Errorf("Listing fetch failed: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"message": "Liste alınamadı.",
			"items":   []models.ComplaintView{},
		})
		return
	}

	result := listing.List(records, req, time.Now())

	// The listing carries excerpts; full bodies belong to the detail view.
	for i := range result.Items {
		result.Items[i].Body = ""
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleComplaintDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	record, err := s.backend.Complaint(r.Context(), id)
	if err != nil {
		var statusErr *upstream.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			writeMessage(w, http.StatusNotFound, "Şikayet bulunamadı.")
			return
		}
		logrus.Errorf("Detail fetch failed for %s: %v", id, err)
		writeMessage(w, http.StatusBadGateway, "Şikayet alınamadı.")
		return
	}

	view := normalize.Complaint(record, time.Now())

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"item":    view,
		"related": s.relatedComplaints(r.Context(), view.Category, view.ID),
	})
}

// relatedComplaints returns up to RelatedLimit records sharing the view's
// category, excluding the record itself. Failures degrade to an empty list;
// the detail page renders without the rail.
func (s *Server) relatedComplaints(ctx context.Context, category, excludeID string) []models.ComplaintView {
	records, _, err := s.backend.PublicComplaints(ctx, upstream.ListParams{
		Take:     s.config.ListFetchLimit,
		Category: category,
		Sort:     string(listing.SortNew),
	})
	if err != nil {
		logrus.Debugf("Related fetch failed: %v", err)
		return []models.ComplaintView{}
	}

	result := listing.List(records, listing.Request{
		Category: category,
		Sort:     listing.SortNew,
		PageSize: s.config.RelatedLimit + 1,
	}, time.Now())

	related := make([]models.ComplaintView, 0, s.config.RelatedLimit)
	for _, item := range result.Items {
		if item.ID == excludeID {
			continue
		}
		item.Body = ""
		related = append(related, item)
		if len(related) == s.config.RelatedLimit {
			break
		}
	}
	return related
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"message":  "Giriş yapman gerekiyor.",
			"redirect": loginRedirect,
		})
		return
	}

	var submission models.Submission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		writeMessage(w, http.StatusBadRequest, "Geçersiz istek gövdesi.")
		return
	}

	if fieldErrors := validateSubmission(submission); len(fieldErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": fieldErrors})
		return
	}

	created, err := s.backend.Submit(r.Context(), token, submission)
	if err != nil {
		if errors.Is(err, upstream.ErrAuthRequired) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"message":  "Oturumun geçersiz, tekrar giriş yap.",
				"redirect": loginRedirect,
			})
			return
		}
		var statusErr *upstream.StatusError
		if errors.As(err, &statusErr) {
			writeMessage(w, statusErr.StatusCode, statusErr.Message)
			return
		}
		logrus.Errorf("Submission failed: %v", err)
		writeMessage(w, http.StatusBadGateway, "Şikayet gönderilemedi.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if len(created) > 0 {
		w.Write(created)
	} else {
		w.Write([]byte(`{"message":"Şikayet oluşturuldu."}`))
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.handleAuth(w, r, s.backend.Login)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.handleAuth(w, r, s.backend.Register)
}

func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request, exchange func(ctx context.Context, creds models.Credentials) (models.AuthSession, error)) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeMessage(w, http.StatusBadRequest, "Geçersiz istek gövdesi.")
		return
	}
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		writeMessage(w, http.StatusBadRequest, "E-posta ve şifre zorunlu.")
		return
	}

	session, err := exchange(r.Context(), creds)
	if err != nil {
		var statusErr *upstream.StatusError
		if errors.As(err, &statusErr) {
			writeMessage(w, statusErr.StatusCode, statusErr.Message)
			return
		}
		logrus.Errorf("Auth exchange failed: %v", err)
		writeMessage(w, http.StatusBadGateway, "Giriş yapılamadı.")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	if parsed, err := strconv.Atoi(raw); err == nil {
		return parsed
	}
	return fallback
}
