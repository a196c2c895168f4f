package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farellandr/eventku/internal/models"
)

func postJSONContext(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, rec
}

func TestRegisterRejectsMalformedInput(t *testing.T) {
	cases := []string{
		`{}`,
		`{"username":"ana"}`,
		`{"username":"ana","email":"not-an-email","password":"secret1"}`,
		`{"username":"ana","email":"ana@example.com","password":"short"}`,
	}
	for _, body := range cases {
		c, rec := postJSONContext(t, body)
		Register(c)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestLoginRequiresEmailAndPassword(t *testing.T) {
	c, rec := postJSONContext(t, `{"email":"ana@example.com"}`)
	Login(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutRequiresRefreshToken(t *testing.T) {
	c, rec := postJSONContext(t, `{}`)
	Logout(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingRejectsMissingEvent(t *testing.T) {
	c, rec := postJSONContext(t, `{}`)
	CreateBooking(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func eventFormContext(t *testing.T, fields map[string]string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/events", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	return c, rec
}

func TestCreateEventRejectsEndBeforeStart(t *testing.T) {
	c, rec := eventFormContext(t, map[string]string{
		"title":       "Expo",
		"description": "Annual expo",
		"start_date":  "2025-06-10T09:00:00Z",
		"end_date":    "2025-06-09T18:00:00Z",
	})
	CreateEvent(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "End date must be after start date.")
}

func TestCreateEventRejectsEqualDates(t *testing.T) {
	c, rec := eventFormContext(t, map[string]string{
		"title":       "Expo",
		"description": "Annual expo",
		"start_date":  "2025-06-10T09:00:00Z",
		"end_date":    "2025-06-10T09:00:00Z",
	})
	CreateEvent(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEventsRejectsBadPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/events?page=abc", nil)
	ListEvents(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingDetailResponseCanCancelFlag(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, 3)
	booking := &models.Booking{
		Code:   "ABC123XYZ0",
		Status: models.StatusActive,
		Event: models.Event{
			Title:     "Jazz Evening",
			StartDate: start,
			EndDate:   start.Add(24 * time.Hour),
		},
	}

	resp := newBookingDetailResponse(booking, now)
	assert.True(t, resp.CanCancel)
	assert.Equal(t, "ABC123XYZ0", resp.Code)
	assert.Equal(t, "Jazz Evening", resp.EventTitle)

	booking.Status = models.StatusCanceled
	resp = newBookingDetailResponse(booking, now)
	assert.False(t, resp.CanCancel)
	assert.Equal(t, models.StatusCanceled, resp.Status)
}

func TestEventResponseUsesPlaceholderThumbnail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/events", nil)
	c.Request.Host = "api.example.com"

	event := &models.Event{ID: 7, Title: "Expo"}
	resp := newEventResponse(c, event)
	assert.Equal(t, "http://api.example.com/media/nothumbnail.jpeg", resp.ThumbnailURL)

	event.ThumbnailPath = "/media/event_thumbnails/x.png"
	resp = newEventResponse(c, event)
	assert.Equal(t, "http://api.example.com/media/event_thumbnails/x.png", resp.ThumbnailURL)
}
