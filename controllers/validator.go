package controllers

import (
	"fmt"

	"github.com/akjilan/digital-ecommerce/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// RequestValidator handles request body validation
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(),
	}
}

// ParseChatRequest binds and validates the body of POST /chat/message.
func (rv *RequestValidator) ParseChatRequest(c *gin.Context) (*models.ChatRequest, error) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if err := rv.validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &req, nil
}
