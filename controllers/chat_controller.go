package controllers

import (
	"net/http"

	"github.com/akjilan/digital-ecommerce/middleware"
	"github.com/akjilan/digital-ecommerce/models"
	"github.com/akjilan/digital-ecommerce/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatController struct {
	Assistant services.AssistantService
	Validator *RequestValidator
	Logger    *zap.Logger
}

func NewChatController(assistant services.AssistantService, validator *RequestValidator, logger *zap.Logger) *ChatController {
	return &ChatController{
		Assistant: assistant,
		Validator: validator,
		Logger:    logger,
	}
}

// SendMessage serves POST /chat/message for guests and signed-in users.
func (cc *ChatController) SendMessage(c *gin.Context) {
	req, err := cc.Validator.ParseChatRequest(c)
	if err != nil {
		cc.Logger.Debug("Rejected chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	// Guests have no user ID; that is not an error here.
	userID, _ := middleware.GetUserID(c)

	reply, err := cc.Assistant.Chat(c.Request.Context(), req.Message, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{Reply: reply.Text})
}

// History serves GET /chat/history for the signed-in user.
func (cc *ChatController) History(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, services.ErrUnauthenticated)
		return
	}

	turns, err := cc.Assistant.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if turns == nil {
		turns = []models.ConversationTurn{}
	}

	c.JSON(http.StatusOK, turns)
}
