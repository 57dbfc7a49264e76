package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/travelmate/internal/core"
)

func (s *Server) ListPlaces(c *gin.Context) {
	names, err := s.TravelMate.KnownDestinations(c.Request.Context())
	if err != nil {
		s.log.Error("Failed to list destinations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list destinations"})
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, names)
}

func (s *Server) TopPlaces(c *gin.Context) {
	var req core.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No user data provided"})
		return
	}

	places, err := s.TravelMate.TopPlaces(c.Request.Context(), req)
	if err != nil {
		s.log.Error("Failed to rank places", "destination", req.Destination, "error", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"places": places})
}

type EventPlannerRequest struct {
	SelectedPlaces string `json:"selectedPlaces" binding:"required"`
	UserInput      string `json:"userInput" binding:"required"`
}

func (s *Server) EventPlanner(c *gin.Context) {
	var req EventPlannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters: selectedPlaces or userInput"})
		return
	}

	events, err := s.TravelMate.Plan(c.Request.Context(), req.SelectedPlaces, req.UserInput)
	if err != nil {
		s.log.Error("Failed to plan events", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, events)
}
