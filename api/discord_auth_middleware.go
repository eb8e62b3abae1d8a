package api

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/hanksha/pitch-booking-bot/discord"
)

const userKey = "user"

// DiscordAuth resolves the "accesstoken" header to a guild member and stores
// it in the context under "user".
func DiscordAuth(discordClient discord.DiscordClient, adminRoleID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := c.GetHeader("accesstoken")

		if len(accessToken) == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication"})
			c.Abort()
			return
		}

		member, err := discordClient.GetGuildMember(c.Request.Context(), accessToken)

		if err != nil {
			c.Error(err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authentication"})
			c.Abort()
			return
		}

		c.Set(userKey, discord.DiscordUser{
			ID:       member.User.ID,
			Username: member.User.Username,
			Admin:    slices.Contains(member.Roles, adminRoleID),
		})
		c.Set("accessToken", accessToken)
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet(userKey).(discord.DiscordUser)

		if !user.Admin {
			c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
			c.Abort()
			return
		}
	}
}
