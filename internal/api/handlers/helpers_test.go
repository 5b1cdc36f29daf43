package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"tour-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestWriteServiceErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrSessionNotFound, http.StatusNotFound},
		{domain.ErrVenueNotFound, http.StatusNotFound},
		{domain.ErrUnknownCity, http.StatusBadRequest},
		{domain.ErrNotStarted, http.StatusConflict},
		{domain.ErrCityInRoute, http.StatusConflict},
		{domain.ErrCityNotInRoute, http.StatusConflict},
		{domain.ErrSessionBusy, http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/sessions/x/stops", nil)

			writeServiceError(rec, req, "add stop", fmt.Errorf("add next city %q: %w", "Pune", tt.err))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
