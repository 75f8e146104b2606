package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/naturalhealing/booking/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

func TestSlotWindow(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		slot      string
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{"morning", "2025-06-15", "10:00 AM - 11:00 AM", "2025-06-15T10:00:00+05:30", "2025-06-15T11:00:00+05:30", false},
		{"crosses noon", "2025-06-15", "11:00 AM - 12:00 PM", "2025-06-15T11:00:00+05:30", "2025-06-15T12:00:00+05:30", false},
		{"afternoon single digit hour", "2025-06-15", "2:00 PM - 3:00 PM", "2025-06-15T14:00:00+05:30", "2025-06-15T15:00:00+05:30", false},
		{"no separator", "2025-06-15", "10:00 AM", "", "", true},
		{"bad date", "15/06/2025", "10:00 AM - 11:00 AM", "", "", true},
		{"bad end", "2025-06-15", "10:00 AM - later", "", "", true},
		{"reversed", "2025-06-15", "3:00 PM - 2:00 PM", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := SlotWindow(tt.date, tt.slot, ShopLocation)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start.Format(time.RFC3339))
			assert.Equal(t, tt.wantEnd, end.Format(time.RFC3339))
		})
	}
}

func TestNewCalendarService_MissingConfig(t *testing.T) {
	_, err := NewCalendarService(context.Background(), CalendarConfig{CalendarID: "cal"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calendar credentials are not configured")

	_, err = newCalendarService(context.Background(), CalendarConfig{}, option.WithHTTPClient(http.DefaultClient))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calendar_id is not configured")
}

func TestCreateBookingEvent(t *testing.T) {
	var got calendar.Event
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"evt-1"}`))
	}))
	defer srv.Close()

	svc, err := newCalendarService(context.Background(), CalendarConfig{CalendarID: "healer@example.com"},
		option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	err = svc.CreateBookingEvent(context.Background(), models.BookingRecord{
		Name: "Asha", Phone: "+919800000000", Email: "asha@example.com",
		Date: "2025-06-15", Slot: "2:00 PM - 3:00 PM",
	})
	require.NoError(t, err)
	assert.Equal(t, "/calendars/healer@example.com/events", gotPath)
	assert.Equal(t, "Appointment: Asha", got.Summary)
	assert.Contains(t, got.Description, "Phone: +919800000000")
	assert.Equal(t, "2025-06-15T14:00:00+05:30", got.Start.DateTime)
	assert.Equal(t, "2025-06-15T15:00:00+05:30", got.End.DateTime)
}

func TestCreateBookingEvent_InvalidSlotSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	svc, err := newCalendarService(context.Background(), CalendarConfig{CalendarID: "cal"},
		option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	err = svc.CreateBookingEvent(context.Background(), models.BookingRecord{Date: "2025-06-15", Slot: "whenever"})
	require.Error(t, err)
	assert.False(t, called)
}

func TestCreateBookingEvent_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"forbidden"}}`))
	}))
	defer srv.Close()

	svc, err := newCalendarService(context.Background(), CalendarConfig{CalendarID: "cal"},
		option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	err = svc.CreateBookingEvent(context.Background(), models.BookingRecord{Date: "2025-06-15", Slot: "10:00 AM - 11:00 AM"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create calendar event")
}
