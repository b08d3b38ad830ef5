package chat

import (
	"errors"
	"net/http"
	"strings"

	chatService "recipe-chatbot/internal/core/chat"
	"recipe-chatbot/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 聊天處理程序
type Handler struct {
	chatService     *chatService.Service
	maxMessageChars int
}

// NewHandler 創建聊天處理程序
func NewHandler(service *chatService.Service, maxMessageChars int) *Handler {
	return &Handler{
		chatService:     service,
		maxMessageChars: maxMessageChars,
	}
}

// chatRequestBody message 綁定為 json.RawMessage 之外的寬鬆形狀，
// 缺失或非字串都要回 400 而不是 binding 的預設訊息
type chatRequestBody struct {
	Message   *string              `json:"message"`
	History   []common.ChatMessage `json:"history"`
	SessionID string               `json:"sessionId"`
	UserID    string               `json:"userId"`
}

// HandleChat 處理 POST /chat
func (h *Handler) HandleChat(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始處理聊天請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var body chatRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "message is required and must be a string",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	if body.Message == nil || strings.TrimSpace(*body.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "message is required and must be a string",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}
	message := *body.Message
	if h.maxMessageChars > 0 && len(message) > h.maxMessageChars {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "message too long",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	req := &common.ChatRequest{
		Message:   message,
		History:   body.History,
		SessionID: body.SessionID,
	}

	resp, err := h.chatService.HandleMessage(c.Request.Context(), body.UserID, req)
	if err != nil {
		// 聊天子流程已在內部回退；到這裡的只剩結構性錯誤
		var custom *common.CustomError
		code := common.ErrCodeChatServiceError
		if errors.As(err, &custom) {
			code = custom.Code
		}
		common.LogError("聊天處理失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("code", code),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "chat service unavailable",
			"code":  code,
		})
		return
	}

	common.LogInfo("聊天處理完成",
		zap.String("request_id", requestID),
		zap.String("classification", string(resp.Classification)),
		zap.Int("detected_recipes", len(resp.DetectedRecipes)),
		zap.Int("detected_ingredients", len(resp.DetectedIngredients)),
	)

	c.JSON(http.StatusOK, resp)
}
