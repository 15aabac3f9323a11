package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gophertrophy/internal/app"
	"gophertrophy/internal/transport/http/middleware"
	"gophertrophy/internal/transport/http/response"
)

type AchievementHandler struct {
	achievementService *app.AchievementService
}

type RegisterAchievementRequest struct {
	Name  string `json:"name" binding:"required,max=128"`
	Image string `json:"image" binding:"required"`
}

func NewAchievementHandler(achievementService *app.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

func (h *AchievementHandler) List(c *gin.Context) {
	achievements, err := h.achievementService.ListAchievements(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list achievements failed")
		return
	}
	response.OK(c, achievements)
}

func (h *AchievementHandler) GetByID(c *gin.Context) {
	// A malformed id is a client error, rejected before any store access.
	achievementID, ok := parseAchievementID(c)
	if !ok {
		return
	}

	achievement, err := h.achievementService.GetAchievement(achievementID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrAchievementNotFound):
			response.Error(c, http.StatusNotFound, response.CodeAchievementNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get achievement failed")
		}
		return
	}

	response.OK(c, achievement)
}

func (h *AchievementHandler) Register(c *gin.Context) {
	var req RegisterAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	achievement, err := h.achievementService.RegisterAchievement(c.Request.Context(), app.RegisterAchievementInput{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "register achievement failed")
		}
		return
	}

	response.OK(c, achievement)
}

func (h *AchievementHandler) Unlock(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in context")
		return
	}

	achievementID, ok := parseAchievementID(c)
	if !ok {
		return
	}

	if err := h.achievementService.Unlock(c.Request.Context(), user.ID, achievementID); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrAchievementNotFound):
			response.Error(c, http.StatusNotFound, response.CodeAchievementNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "unlock achievement failed")
		}
		return
	}

	response.OK(c, nil)
}

func (h *AchievementHandler) ListUnlocked(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in context")
		return
	}

	unlocked, err := h.achievementService.ListUnlocked(user.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list unlocked achievements failed")
		return
	}

	response.OK(c, unlocked)
}

func parseAchievementID(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "achievement id must be numeric")
		return 0, false
	}
	return uint(id64), true
}
