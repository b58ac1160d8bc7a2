package controllers

import (
	"context"
	"log"
	"net/http"

	"diarisk/internal/genai"
	"diarisk/internal/models"

	"github.com/gin-gonic/gin"
)

const fallbackAnswer = "Sorry, I'm unable to answer right now. Please try again later."

type ChatController struct {
	generator genai.Generator
}

func NewChatController(generator genai.Generator) *ChatController {
	return &ChatController{generator: generator}
}

// Chat godoc
// @Summary Ask the diabetes assistant a question
// @Description Forward a free-form question to the generative model; falls back to a static answer on failure
// @Tags chat
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.ChatRequest true "Question"
// @Success 200 {object} models.ChatResponse "Answer"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /chat [post]
func (cc *ChatController) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generationTimeout)
	defer cancel()

	answer, err := cc.generator.Answer(ctx, req.Question)
	if err != nil {
		log.Printf("Chat generation failed: %v", err)
		answer = fallbackAnswer
	}

	c.JSON(http.StatusOK, models.ChatResponse{Answer: answer})
}
