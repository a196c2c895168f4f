package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/farellandr/eventku/internal/helpers"
	"github.com/farellandr/eventku/internal/middleware"
	"github.com/farellandr/eventku/internal/models"
)

type CreateBookingRequest struct {
	Event uint `json:"event" binding:"required"`
}

type BookingResponse struct {
	Code             string        `json:"code"`
	Status           models.Status `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	EventTitle       string        `json:"event_title"`
	EventStartDate   time.Time     `json:"event_start_date"`
	EventEndDate     time.Time     `json:"event_end_date"`
	EventDescription string        `json:"event_description"`
	EventThumbnail   *string       `json:"event_thumbnail"`
}

type BookingDetailResponse struct {
	Code             string        `json:"code"`
	Status           models.Status `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	EventTitle       string        `json:"event_title"`
	EventStartDate   time.Time     `json:"event_start_date"`
	EventEndDate     time.Time     `json:"event_end_date"`
	EventDescription string        `json:"event_description"`
	CanCancel        bool          `json:"can_cancel"`
}

func newBookingResponse(c *gin.Context, booking *models.Booking) BookingResponse {
	resp := BookingResponse{
		Code:             booking.Code,
		Status:           booking.Status,
		CreatedAt:        booking.CreatedAt,
		EventTitle:       booking.Event.Title,
		EventStartDate:   booking.Event.StartDate,
		EventEndDate:     booking.Event.EndDate,
		EventDescription: booking.Event.Description,
	}
	if booking.Event.ThumbnailPath != "" {
		url := helpers.AbsoluteURL(c, booking.Event.ThumbnailPath)
		resp.EventThumbnail = &url
	}
	return resp
}

func newBookingDetailResponse(booking *models.Booking, now time.Time) BookingDetailResponse {
	return BookingDetailResponse{
		Code:             booking.Code,
		Status:           booking.Status,
		CreatedAt:        booking.CreatedAt,
		EventTitle:       booking.Event.Title,
		EventStartDate:   booking.Event.StartDate,
		EventEndDate:     booking.Event.EndDate,
		EventDescription: booking.Event.Description,
		CanCancel:        booking.CanCancel(now),
	}
}

// materializeStatus persists the lazily derived Expired status. This is the
// one place a read path writes; the write is logged.
func materializeStatus(gormDB *gorm.DB, booking *models.Booking, now time.Time) {
	effective := booking.EffectiveStatus(now)
	if effective == booking.Status {
		return
	}
	if err := gormDB.Model(booking).Update("status", effective).Error; err != nil {
		log.Error().Err(err).Str("code", booking.Code).Msg("failed to persist expired status")
		return
	}
	booking.Status = effective
	log.Info().Str("code", booking.Code).Msg("booking expired on read")
}

func ListBookings(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var bookings []models.Booking
	err := gormDB.Preload("Event").Where("user_id = ?", userID).Order("created_at DESC").Find(&bookings).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving bookings.")
		return
	}

	now := time.Now()
	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		materializeStatus(gormDB, &bookings[i], now)
		responses = append(responses, newBookingResponse(c, &bookings[i]))
	}

	c.JSON(http.StatusOK, responses)
}

func CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var user models.User
	if err := gormDB.Where("id = ?", userID).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	var event models.Event
	if err := gormDB.Where("id = ?", req.Event).First(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event.")
		return
	}

	var existing []models.Booking
	if err := gormDB.Where("user_id = ? AND event_id = ?", user.ID, event.ID).Find(&existing).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving bookings.")
		return
	}
	if models.HasActiveBooking(existing) {
		helpers.RespondWithError(c, http.StatusBadRequest, "You already have a booking for this event.")
		return
	}

	booking := models.Booking{
		EventID: event.ID,
		UserID:  &user.ID,
		Status:  models.StatusActive,
	}

	if err := gormDB.Create(&booking).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking.")
		return
	}

	if user.AddCode(booking.Code) {
		if err := gormDB.Model(&user).Update("codes", user.Codes).Error; err != nil {
			log.Error().Err(err).Str("code", booking.Code).Msg("failed to append booking code to user")
		}
	}

	middleware.GetNotifier(c).PublishBookingEvent(booking.Code, event.Title, "created")

	booking.Event = event
	c.JSON(http.StatusCreated, newBookingResponse(c, &booking))
}

func getBookingByCode(c *gin.Context, gormDB *gorm.DB) (*models.Booking, bool) {
	var booking models.Booking
	err := gormDB.Preload("Event").Where("code = ?", c.Param("code")).First(&booking).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
			return nil, false
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving booking.")
		return nil, false
	}
	return &booking, true
}

// GetBooking is open to anyone holding the code; the code itself is the
// credential.
func GetBooking(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	booking, ok := getBookingByCode(c, gormDB)
	if !ok {
		return
	}

	now := time.Now()
	materializeStatus(gormDB, booking, now)

	c.JSON(http.StatusOK, newBookingDetailResponse(booking, now))
}

func CancelBooking(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	booking, ok := getBookingByCode(c, gormDB)
	if !ok {
		return
	}

	now := time.Now()
	materializeStatus(gormDB, booking, now)

	if !booking.Cancel(now) {
		helpers.RespondWithError(c, http.StatusBadRequest, "This booking cannot be canceled.")
		return
	}

	err := gormDB.Model(booking).Updates(map[string]interface{}{
		"status":      booking.Status,
		"canceled_at": booking.CanceledAt,
	}).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel booking.")
		return
	}

	middleware.GetNotifier(c).PublishBookingEvent(booking.Code, booking.Event.Title, "canceled")

	c.JSON(http.StatusOK, newBookingDetailResponse(booking, now))
}

// BookingQR renders the booking's detail URL as a QR code, so a booking can
// be shared or shown at the door.
func BookingQR(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	booking, ok := getBookingByCode(c, gormDB)
	if !ok {
		return
	}

	qrImage, err := qrcode.Encode(helpers.AbsoluteURL(c, "/bookings/"+booking.Code), qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}
