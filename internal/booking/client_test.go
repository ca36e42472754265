package booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lessonwise/schedule-console/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const schedulePayload = `{
	"available_regular_schedule": [68400000, -1000, 999999999999],
	"available_schedule": [
		{"start_time": 1772478000000},
		{"start_time": 0}
	],
	"booked_schedule": [
		{
			"start_time": 1772478000000,
			"status": "UPCOMING",
			"created_time": 1772000000000,
			"booking": {
				"course_id": 42,
				"course_name": "Conversational English",
				"unit_no": 7,
				"student_id": 1001,
				"student_name": "Mina"
			}
		},
		{"start_time": 1772478000000, "status": "UPCOMING", "created_time": 0},
		{"start_time": 0, "status": "UPCOMING", "created_time": 1772000000000}
	],
	"on_absent_period": [
		{"start_time": 1772470000000, "end_time": 1772480000000},
		{"start_time": 1772480000000, "end_time": 1772470000000}
	],
	"registered_regular_schedule": [
		{
			"regular_time": 68400000,
			"group_id": "7e0b3a4e-8c6a-4aef-9e37-5f2d9b3f2c11",
			"booking": {"course_id": 42, "student_id": 1001, "student_name": "Mina"}
		}
	]
}`

func TestFetch_DecodesWirePayload(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(schedulePayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC)

	bundle, err := client.Fetch(context.Background(), 7, start, end)
	require.NoError(t, err)

	assert.Equal(t, "/schedules", gotPath)
	assert.Contains(t, gotQuery, "teacher_id=7")
	assert.Contains(t, gotQuery, "start_time=1772434800000")
	assert.Contains(t, gotQuery, "end_time=1772492400000")

	// Regular: valid 19:00 Monday offset kept, negative and >1 week dropped.
	require.Len(t, bundle.Regular, 1)
	assert.Equal(t, 19*time.Hour, bundle.Regular[0].WeekOffset)

	// Flexible: zero start dropped.
	require.Len(t, bundle.Flexible, 1)
	assert.Equal(t, time.UnixMilli(1772478000000).UTC(), bundle.Flexible[0].Start)

	// Booked: entries missing created_time or start_time dropped.
	require.Len(t, bundle.Booked, 1)
	booked := bundle.Booked[0]
	assert.Equal(t, model.BookingStatusUpcoming, booked.Status)
	assert.Equal(t, time.UnixMilli(1772000000000).UTC(), booked.CreatedAt)
	assert.Equal(t, "Mina", booked.Booking.StudentName)
	assert.Equal(t, int64(42), booked.Booking.CourseID)

	// Absences: inverted interval dropped.
	require.Len(t, bundle.Absences, 1)
	assert.Equal(t, time.UnixMilli(1772470000000).UTC(), bundle.Absences[0].Start)
	assert.Equal(t, time.UnixMilli(1772480000000).UTC(), bundle.Absences[0].End)

	require.Len(t, bundle.Registered, 1)
	assert.Equal(t, 19*time.Hour, bundle.Registered[0].WeekOffset)
	assert.Equal(t, uuid.MustParse("7e0b3a4e-8c6a-4aef-9e37-5f2d9b3f2c11"), bundle.Registered[0].GroupID)
	assert.Equal(t, int64(1001), bundle.Registered[0].Booking.StudentID)
}

func TestFetch_BackendErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	bundle, err := client.Fetch(context.Background(), 7, time.Now(), time.Now().Add(time.Hour))

	require.Error(t, err)
	assert.Nil(t, bundle, "bundle must never be partially populated")
	assert.Contains(t, err.Error(), "502")
}

func TestFetch_InvalidJSONPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	bundle, err := client.Fetch(context.Background(), 7, time.Now(), time.Now().Add(time.Hour))

	require.Error(t, err)
	assert.Nil(t, bundle)
}

func TestFetch_ConnectionRefused(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", zap.NewNop())
	_, err := client.Fetch(context.Background(), 7, time.Now(), time.Now().Add(time.Hour))
	assert.Error(t, err)
}
