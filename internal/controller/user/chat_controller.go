package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/placement-portal/internal/controller"
	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/service"
)

type ChatController struct {
	chatService service.ChatService
}

func NewChatController(chatService service.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// Chat godoc
// @Summary (Student) Ask the study assistant
// @Description Answers 200 unless rate limited, when a 429 carries the offline reply. The mode field tells whether the reply came from the assistant service, the database-only fallback or the offline notice.
// @Tags Student - Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ChatRequest true "Message"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ChatResponse "Rate limited; carries the offline reply"
// @Router /student/rag-chat [post]
func (c *ChatController) Chat(ctx *gin.Context) {
	student, ok := controller.User(ctx)
	if !ok {
		return
	}
	var req dto.ChatRequest
	if !controller.BindJSON(ctx, "Chat", &req) {
		return
	}
	message := dto.Sanitize(req.Message)
	if message == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Message must not be empty"})
		return
	}
	resp := c.chatService.Chat(ctx.Request.Context(), student, dto.Sanitize(req.SessionID), message)
	ctx.JSON(http.StatusOK, resp)
}

// Health godoc
// @Summary (Student) Study assistant availability
// @Tags Student - Chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ChatHealthResponse
// @Router /student/rag-health [get]
func (c *ChatController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.chatService.Health(ctx.Request.Context()))
}

// Offline godoc
// @Summary (Student) Offline notice
// @Description The payload a client shows when it cannot reach the portal's assistant at all.
// @Tags Student - Chat
// @Produce json
// @Security BearerAuth
// @Param session_id query string false "Session ID"
// @Success 200 {object} dto.ChatResponse
// @Router /student/chat/offline [get]
func (c *ChatController) Offline(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.chatService.Offline(dto.Sanitize(ctx.Query("session_id"))))
}

// RateLimited answers a throttled chat request with the offline payload so the
// client still has a reply to show.
func (c *ChatController) RateLimited(ctx *gin.Context) {
	ctx.JSON(http.StatusTooManyRequests, c.chatService.Offline(""))
}

// Conversations godoc
// @Summary (Student) Recent conversations
// @Tags Student - Chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ChatConversationListResponse
// @Router /student/chat/conversations [get]
func (c *ChatController) Conversations(ctx *gin.Context) {
	student, ok := controller.User(ctx)
	if !ok {
		return
	}
	conversations, err := c.chatService.Conversations(ctx.Request.Context(), student.ID)
	if err != nil {
		controller.RespondError(ctx, "Conversations", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ChatConversationListResponse{
		Conversations: conversations,
		Meta:          dto.PageMeta{Page: 1, PageSize: len(conversations), Total: int64(len(conversations))},
	})
}

// Conversation godoc
// @Summary (Student) One conversation with its messages
// @Tags Student - Chat
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.ChatConversationDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /student/chat/conversations/{session_id} [get]
func (c *ChatController) Conversation(ctx *gin.Context) {
	student, ok := controller.User(ctx)
	if !ok {
		return
	}
	conversation, err := c.chatService.Conversation(ctx.Request.Context(), student.ID, dto.Sanitize(ctx.Param("session_id")))
	if err != nil {
		controller.RespondError(ctx, "Conversation", err)
		return
	}
	ctx.JSON(http.StatusOK, conversation)
}
