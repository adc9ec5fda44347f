package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/weatherchat/weatherchat/internal/chat"
	"github.com/weatherchat/weatherchat/internal/server/utils"
	"go.uber.org/zap"
)

type ChatHandler struct {
	bot     *chat.Bot
	metrics *Metrics
	logger  *zap.Logger
}

func NewChatHandler(bot *chat.Bot, metrics *Metrics, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		bot:     bot,
		metrics: metrics,
		logger:  logger,
	}
}

// HandleChat runs one conversation turn over HTTP. The bot never fails a
// turn, so the only error responses here are for malformed requests.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	requestID := utils.GetRequestIDFromGinContext(c)

	reqLogger := h.logger.With(zap.String("request_id", requestID))

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		reqLogger.Warn("Invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid chat request",
			Code:    "INVALID_REQUEST",
			Details: err.Error(),
		})
		return
	}

	if validationErrors := utils.ValidateStruct(&req); validationErrors != nil {
		reqLogger.Warn("Chat request failed validation", zap.Any("errors", validationErrors))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid chat request",
			Code:    "INVALID_REQUEST",
			Details: validationErrors[0].Message,
		})
		return
	}

	reqLogger.Info("Processing chat turn", zap.Int("message_length", len(req.Message)))

	reply := h.bot.HandleTurn(ctx, req.Message)
	h.metrics.RecordTurn()

	c.JSON(http.StatusOK, ChatResponse{
		Reply:     reply,
		RequestID: requestID,
	})
}
