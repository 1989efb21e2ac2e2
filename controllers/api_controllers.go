package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/intranet-portal/models"
	"github.com/yeremiapane/intranet-portal/services"
	"github.com/yeremiapane/intranet-portal/utils"
	"gorm.io/gorm"
)

// APIController is the public, login-free JSON API used by other intranet
// pages.
type APIController struct {
	Service *services.MenuService
	DB      *gorm.DB
}

func NewAPIController(service *services.MenuService, db *gorm.DB) *APIController {
	return &APIController{Service: service, DB: db}
}

// apiMenuEntry replaces the stored day with its "DD/MM weekday" label.
type apiMenuEntry struct {
	models.MenuEntry
	Day string `json:"dia"`
}

// Menu lists the current week's meals.
func (ac *APIController) Menu(c *gin.Context) {
	entries, err := ac.Service.CurrentWeekEntries(c.Request.Context())
	if err != nil {
		utils.ErrorLogger.Printf("Error loading menu API: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("error loading menu"))
		return
	}

	out := make([]apiMenuEntry, len(entries))
	for i, entry := range entries {
		out[i] = apiMenuEntry{MenuEntry: entry, Day: utils.DayLabelFromKey(entry.Day)}
	}
	c.JSON(http.StatusOK, out)
}

func (ac *APIController) Posts(c *gin.Context) {
	posts := []models.Post{}
	if err := ac.DB.WithContext(c.Request.Context()).Find(&posts).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// PostsPage returns up to :limit posts with id greater than :startId.
func (ac *APIController) PostsPage(c *gin.Context) {
	startID, err := strconv.ParseUint(c.Param("startId"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid startId"))
		return
	}
	limit, err := strconv.Atoi(c.Param("limit"))
	if err != nil || limit < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid limit"))
		return
	}

	posts := []models.Post{}
	if err := ac.DB.WithContext(c.Request.Context()).
		Where("id > ?", startID).
		Order("id ASC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ac *APIController) Post(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var post models.Post
	if err := ac.DB.WithContext(c.Request.Context()).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("post not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, post)
}
