package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	bk "github.com/hanksha/pitch-booking-bot/booking"
)

type BookingHandler struct {
	service BookingService
}

func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.ListBookings)
	rg.GET("/resources", h.ListResources)
	rg.GET("/locations", h.ListLocations)
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	filter := bk.BookingFilter{
		ResourceName: strings.TrimSpace(c.Query("resource")),
		RequesterID:  strings.TrimSpace(c.Query("requester")),
		Status:       bk.Status(strings.TrimSpace(c.Query("status"))),
	}

	if bookings, err := h.service.FindBookings(c.Request.Context(), filter); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to retrieve bookings",
		})
	} else {
		c.IndentedJSON(http.StatusOK, bookings)
	}
}

func (h *BookingHandler) ListResources(c *gin.Context) {
	location := strings.TrimSpace(c.Query("location"))
	availability, err := h.service.Availability(c.Request.Context(), location)

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to retrieve resources",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, availability)
}

func (h *BookingHandler) ListLocations(c *gin.Context) {
	locations, err := h.service.Locations(c.Request.Context())

	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to retrieve locations",
		})
		return
	}

	c.IndentedJSON(http.StatusOK, locations)
}
