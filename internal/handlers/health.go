package handlers

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

func HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write([]byte(`{"status":"healthy","service":"estate-portal","timestamp":"` +
		time.Now().UTC().Format(time.RFC3339) + `"}`))
	if err != nil {
		log.WithError(err).Error("Failed to write health response")
	}
}
