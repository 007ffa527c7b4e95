package server

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// contentProxy passes an admin-content document straight through: upstream
// status and content type are forwarded as-is, the body untouched. Only a
// transport failure is translated.
func (s *Server) contentProxy(upstreamPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, contentType, body, err := s.backend.Content(r.Context(), upstreamPath)
		if err != nil {
			logrus.Errorf("Content proxy %s failed: %v", upstreamPath, err)
			writeMessage(w, http.StatusBadGateway, "İçerik alınamadı.")
			return
		}

		if contentType == "" {
			contentType = "application/json"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		w.Write(body)
	}
}
