package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// TelegramHandler receives webhook updates. Telegram retries any update that
// is not acknowledged with a 2xx, so handling happens after the response.
type TelegramHandler struct {
	dispatcher UpdateDispatcher
	secret     string
}

func NewTelegramHandler(dispatcher UpdateDispatcher, secret string) *TelegramHandler {
	return &TelegramHandler{dispatcher: dispatcher, secret: secret}
}

func (h *TelegramHandler) Register(r gin.IRoutes) {
	r.POST("/telegram/webhook", h.Webhook)
}

func (h *TelegramHandler) Webhook(c *gin.Context) {
	token := c.GetHeader(SecretTokenHeader)

	if subtle.ConstantTimeCompare([]byte(token), []byte(h.secret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid secret token"})
		return
	}

	var update tgbotapi.Update

	if err := c.ShouldBindJSON(&update); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "failed to parse JSON body",
		})
		return
	}

	h.dispatcher.Dispatch(c.Request.Context(), update)

	c.Status(http.StatusOK)
}
