package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/farellandr/eventku/internal/helpers"
	"github.com/farellandr/eventku/internal/models"
)

const defaultThumbnailPath = "/media/nothumbnail.jpeg"

type EventResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	CreatedAt    time.Time `json:"created_at"`
	ThumbnailURL string    `json:"thumbnail_url"`
}

func newEventResponse(c *gin.Context, event *models.Event) EventResponse {
	path := event.ThumbnailPath
	if path == "" {
		path = defaultThumbnailPath
	}
	return EventResponse{
		ID:           event.ID,
		Title:        event.Title,
		Description:  event.Description,
		StartDate:    event.StartDate,
		EndDate:      event.EndDate,
		CreatedAt:    event.CreatedAt,
		ThumbnailURL: helpers.AbsoluteURL(c, path),
	}
}

func ListEvents(c *gin.Context) {
	page := c.DefaultQuery("page", "1")
	limit := c.DefaultQuery("limit", "10")

	pageNum, err := helpers.StringToInt(page)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid page number.")
		return
	}

	limitNum, err := helpers.StringToInt(limit)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	query := gormDB.Model(&models.Event{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var totalCount int64
	query.Count(&totalCount)

	var events []models.Event
	offset := (pageNum - 1) * limitNum
	err = query.Offset(offset).Limit(limitNum).Order("start_date DESC").Find(&events).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	responses := make([]EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, newEventResponse(c, &events[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"events":      responses,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

func GetEvent(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ?", c.Param("id")).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	c.JSON(http.StatusOK, newEventResponse(c, &event))
}

func parseEventForm(c *gin.Context) (*models.Event, bool) {
	title := c.PostForm("title")
	description := c.PostForm("description")

	startDateStr := c.PostForm("start_date")
	endDateStr := c.PostForm("end_date")
	startDate, err := time.Parse(time.RFC3339, startDateStr)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid start date format.")
		return nil, false
	}
	endDate, err := time.Parse(time.RFC3339, endDateStr)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid end date format.")
		return nil, false
	}

	if title == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return nil, false
	}

	if !endDate.After(startDate) {
		helpers.RespondWithError(c, http.StatusBadRequest, "End date must be after start date.")
		return nil, false
	}

	return &models.Event{
		Title:       title,
		Description: description,
		StartDate:   startDate,
		EndDate:     endDate,
	}, true
}

func CreateEvent(c *gin.Context) {
	event, ok := parseEventForm(c)
	if !ok {
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	thumbnailFile, err := c.FormFile("thumbnail")
	if err == nil {
		thumbnailPath, err := helpers.UploadFile(c, thumbnailFile, "event_thumbnails")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		event.ThumbnailPath = thumbnailPath
	}

	if err := gormDB.Create(event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Event created successfully.",
		"event_id": event.ID,
	})
}

func UpdateEvent(c *gin.Context) {
	updated, ok := parseEventForm(c)
	if !ok {
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ?", c.Param("id")).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	event.Title = updated.Title
	event.Description = updated.Description
	event.StartDate = updated.StartDate
	event.EndDate = updated.EndDate

	thumbnailFile, err := c.FormFile("thumbnail")
	if err == nil {
		thumbnailPath, err := helpers.UploadFile(c, thumbnailFile, "event_thumbnails")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		if event.ThumbnailPath != "" {
			if err := helpers.DeleteFile(event.ThumbnailPath); err != nil {
				fmt.Printf("Error deleting old thumbnail: %v\n", err)
			}
		}
		event.ThumbnailPath = thumbnailPath
	}

	if err := gormDB.Save(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully.",
		"event":   newEventResponse(c, &event),
	})
}

func DeleteEvent(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", c.Param("id")).Delete(&models.Event{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully.",
	})
}
