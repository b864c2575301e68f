package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/placement-portal/internal/service"
	"github.com/rs/zerolog/log"
)

type ChatController struct {
	chatService service.ChatService
}

func NewChatController(chatService service.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// SyncKnowledge godoc
// @Summary (Admin) Re-sync the study assistant's knowledge base
// @Description Answers 200 with success=false when the assistant service is unreachable.
// @Tags Admin - Chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ChatSyncResponse
// @Router /admin/chat/sync [post]
func (c *ChatController) SyncKnowledge(ctx *gin.Context) {
	resp := c.chatService.Sync(ctx.Request.Context())
	if !resp.Success {
		log.Warn().Str("message", resp.Message).Msg("Admin SyncKnowledge: sync failed")
	}
	ctx.JSON(http.StatusOK, resp)
}
