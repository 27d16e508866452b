package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	notificationdomain "github.com/MegaDev007/farmheart-backend-sub000/internal/notification/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

type notificationResponse struct {
	ID          string         `json:"id"`
	AnimalID    string         `json:"animal_id"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	Severity    string         `json:"severity"`
	Category    string         `json:"category"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	IsRead      bool           `json:"is_read"`
	IsDismissed bool           `json:"is_dismissed"`
	CreatedAt   time.Time      `json:"created_at"`
}

func toNotificationResponse(n notificationdomain.NotificationRecord) notificationResponse {
	return notificationResponse{
		ID:          n.ID.String(),
		AnimalID:    n.AnimalID.String(),
		Title:       n.Title,
		Message:     n.Message,
		Severity:    n.Severity,
		Category:    n.Category,
		Metadata:    n.Metadata,
		IsRead:      n.IsRead,
		IsDismissed: n.IsDismissed,
		CreatedAt:   n.CreatedAt,
	}
}

func (s *Server) ListNotifications(c *gin.Context) {
	ownerID, ok := s.ownerFromRequest(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	filter := notificationdomain.ListFilter{OwnerID: ownerID}
	if raw, found := c.GetQuery("unread_only"); found {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			AbortWithError(c, newValidationError("unread_only", "invalid_bool", "unread_only must be a boolean"))
			return
		}
		filter.UnreadOnly = parsed
	}
	if raw, found := c.GetQuery("before"); found {
		parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
		if err != nil {
			AbortWithError(c, newValidationError("before", "invalid_time", "before must be RFC3339"))
			return
		}
		filter.Before = &parsed
	}
	if raw, found := c.GetQuery("limit"); found {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			AbortWithError(c, newValidationError("limit", "invalid_limit", "limit must be a positive integer"))
			return
		}
		filter.Limit = parsed
	}

	items, err := s.inbox.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	out := make([]notificationResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toNotificationResponse(item))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (s *Server) MarkNotificationRead(c *gin.Context) {
	s.flagNotification(c, s.inbox.MarkRead)
}

func (s *Server) DismissNotification(c *gin.Context) {
	s.flagNotification(c, s.inbox.MarkDismissed)
}

func (s *Server) flagNotification(c *gin.Context, flag func(ctx context.Context, ownerID, id snowflake.ID) error) {
	ownerID, ok := s.ownerFromRequest(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	raw := strings.TrimSpace(c.Param("id"))
	id, err := snowflake.ParseString(raw)
	if err != nil {
		AbortWithError(c, notificationdomain.ErrInvalidID)
		return
	}

	if err := flag(c.Request.Context(), ownerID, id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type preferenceResponse struct {
	InAppEnabled bool `json:"in_app_enabled"`
	EmailEnabled bool `json:"email_enabled"`
}

func (s *Server) GetPreferences(c *gin.Context) {
	ownerID, ok := s.ownerFromRequest(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	pref := s.prefs.Resolve(c.Request.Context(), ownerID)
	c.JSON(http.StatusOK, preferenceResponse{
		InAppEnabled: pref.InAppEnabled,
		EmailEnabled: pref.EmailEnabled,
	})
}

func (s *Server) UpdatePreferences(c *gin.Context) {
	ownerID, ok := s.ownerFromRequest(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req preferenceResponse
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	pref, err := s.prefs.Update(c.Request.Context(), notificationdomain.ChannelPreference{
		OwnerID:      ownerID,
		InAppEnabled: req.InAppEnabled,
		EmailEnabled: req.EmailEnabled,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, preferenceResponse{
		InAppEnabled: pref.InAppEnabled,
		EmailEnabled: pref.EmailEnabled,
	})
}
