package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"conferencecentral/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	key := domain.ConferenceKey("u1", 1)
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid filter", domain.NewInvalidFilterError("city", "bad"), http.StatusBadRequest, ErrCodeBadRequest},
		{"invalid input", domain.NewInvalidInputError("name", "is required"), http.StatusBadRequest, ErrCodeBadRequest},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, ErrCodeUnauthorized},
		{"forbidden", domain.NewForbiddenError("no"), http.StatusForbidden, ErrCodeForbidden},
		{"not found", domain.NewNotFoundError(key), http.StatusNotFound, ErrCodeNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", domain.NewNotFoundError(key)), http.StatusNotFound, ErrCodeNotFound},
		{"conflict", domain.NewConflictError(domain.ReasonNoSeats), http.StatusConflict, ErrCodeConflict},
		{"transient", domain.NewTransientError("register", errors.New("40001")), http.StatusServiceUnavailable, ErrCodeUnavailable},
		{"other", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := StatusFor(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestWriteServiceError_HidesInternalDetail(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rr := httptest.NewRecorder()
	WriteServiceError(rr, httptest.NewRequest(http.MethodGet, "/x", nil), logger, errors.New("pq: password authentication failed"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "internal error", resp.Error.Message)
	assert.Nil(t, resp.Data)
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query string
		want  domain.PaginationParams
	}{
		{"", domain.PaginationParams{Page: 1, PageSize: 20}},
		{"?page=3&page_size=10", domain.PaginationParams{Page: 3, PageSize: 10}},
		{"?page=0&page_size=-4", domain.PaginationParams{Page: 1, PageSize: 20}},
		{"?page=x&page_size=1000", domain.PaginationParams{Page: 1, PageSize: MaxPageSize}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/conferences/query"+tt.query, nil)
			assert.Equal(t, tt.want, ParsePagination(r))
		})
	}
}

func TestNewPageMeta(t *testing.T) {
	p := domain.PaginationParams{Page: 2, PageSize: 3}
	assert.True(t, NewPageMeta(p, 3).HasMore)
	assert.False(t, NewPageMeta(p, 2).HasMore)
	assert.Equal(t, 2, NewPageMeta(p, 0).Page)
}

type sample struct {
	Name string `json:"name"`
}

func (s sample) Validate() []string {
	if s.Name == "" {
		return []string{"name is required"}
	}
	return nil
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantOK  bool
		wantMsg string
	}{
		{"valid", `{"name":"x"}`, true, ""},
		{"unknown field", `{"name":"x","extra":1}`, false, "unknown field"},
		{"fails validation", `{}`, false, "name is required"},
		{"empty body", ``, false, "EOF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			var dest sample
			ok := DecodeAndValidate(rr, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body)), &dest)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				assert.Equal(t, http.StatusBadRequest, rr.Code)
				assert.Contains(t, rr.Body.String(), tt.wantMsg)
			}
		})
	}
}

type optional struct {
	Filters []string `json:"filters"`
}

func TestDecodeOptional(t *testing.T) {
	var dest optional
	rr := httptest.NewRecorder()
	require.True(t, DecodeOptional(rr, httptest.NewRequest(http.MethodPost, "/", nil), &dest))
	assert.Nil(t, dest.Filters)

	rr = httptest.NewRecorder()
	require.True(t, DecodeOptional(rr, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"filters":["a"]}`)), &dest))
	assert.Equal(t, []string{"a"}, dest.Filters)

	rr = httptest.NewRecorder()
	require.False(t, DecodeOptional(rr, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`[`)), &dest))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
