package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-med-reminder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockIntakeSvc struct{ mock.Mock }

func (m *mockIntakeSvc) Confirm(ctx context.Context, medication, scheduledTime string) (*domain.IntakeRecord, error) {
	args := m.Called(ctx, medication, scheduledTime)
	if rec, _ := args.Get(0).(*domain.IntakeRecord); rec != nil {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockIntakeSvc) History(ctx context.Context, days int) ([]domain.IntakeRecord, int, error) {
	args := m.Called(ctx, days)
	return args.Get(0).([]domain.IntakeRecord), args.Int(1), args.Error(2)
}

// --- Confirm tests ---

func TestConfirm_InvalidBody(t *testing.T) {
	svc := &mockIntakeSvc{}
	h := NewIntakeHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/api/confirm", bytes.NewBufferString("not-json"))
	rr := httptest.NewRecorder()
	h.Confirm(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestConfirm_HappyPath(t *testing.T) {
	svc := &mockIntakeSvc{}
	rec := &domain.IntakeRecord{Medication: "Aspirin", ScheduledTime: "08:00", ActualTime: "08:12:30"}
	svc.On("Confirm", mock.Anything, "Aspirin", "08:00").Return(rec, nil)
	h := NewIntakeHandler(svc)
	body, _ := json.Marshal(map[string]string{"medication": "Aspirin", "time": "08:00"})
	r := httptest.NewRequest(http.MethodPost, "/api/confirm", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Confirm(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Success       bool   `json:"success"`
		Medication    string `json:"medication"`
		ScheduledTime string `json:"scheduled_time"`
		ActualTime    string `json:"actual_time"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Aspirin", resp.Medication)
	assert.Equal(t, "08:00", resp.ScheduledTime)
	assert.Equal(t, "08:12:30", resp.ActualTime)
	svc.AssertExpectations(t)
}

func TestConfirm_Duplicate(t *testing.T) {
	svc := &mockIntakeSvc{}
	svc.On("Confirm", mock.Anything, "Aspirin", "08:00").
		Return(nil, fmt.Errorf("already taken today: %w", domain.ErrDuplicate))
	h := NewIntakeHandler(svc)
	body, _ := json.Marshal(map[string]string{"medication": "Aspirin", "time": "08:00"})
	r := httptest.NewRequest(http.MethodPost, "/api/confirm", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Confirm(rr, r)

	assert.Equal(t, http.StatusConflict, rr.Code)
	var resp struct {
		Error     string `json:"error"`
		Duplicate bool   `json:"duplicate"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Duplicate)
}

// --- History tests ---

func TestHistory_DefaultDays(t *testing.T) {
	svc := &mockIntakeSvc{}
	svc.On("History", mock.Anything, 0).Return([]domain.IntakeRecord{}, 7, nil)
	h := NewIntakeHandler(svc)
	r := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rr := httptest.NewRecorder()
	h.History(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp HistoryEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 7, resp.Days)
	assert.NotNil(t, resp.History)
	svc.AssertExpectations(t)
}

func TestHistory_DaysParam(t *testing.T) {
	svc := &mockIntakeSvc{}
	recs := []domain.IntakeRecord{{Medication: "Aspirin", ScheduledTime: "08:00"}}
	svc.On("History", mock.Anything, 30).Return(recs, 30, nil)
	h := NewIntakeHandler(svc)
	r := httptest.NewRequest(http.MethodGet, "/api/history?days=30", nil)
	rr := httptest.NewRecorder()
	h.History(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp HistoryEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 30, resp.Days)
	assert.Len(t, resp.History, 1)
	svc.AssertExpectations(t)
}
