package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	milesEarthRadius = 3963.2
	kmEarthRadius    = 6378.1
)

// aliasTopTours presets the list query for the five best cheap tours.
func (s *Server) aliasTopTours(c *gin.Context) {
	q := c.Request.URL.Query()
	q.Set("limit", "5")
	q.Set("sort", "-ratingsAverage,price")
	q.Set("fields", "name,price,ratingsAverage,summary,difficulty")
	c.Request.URL.RawQuery = q.Encode()

	c.Next()
}

func (s *Server) tourStats(c *gin.Context) {
	stats, err := s.store.TourStats(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"stats": stats},
	})
}

func (s *Server) monthlyPlan(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		abortWithError(c, errBadYear)
		return
	}

	plan, err := s.store.MonthlyPlan(c.Request.Context(), year)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(plan),
		"data":    gin.H{"plan": plan},
	})
}

func (s *Server) toursWithin(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil || distance < 0 {
		abortWithError(c, errBadLatLng)
		return
	}

	latlng := strings.Split(c.Param("latlng"), ",")
	if len(latlng) != 2 {
		abortWithError(c, errBadLatLng)
		return
	}
	lat, latErr := strconv.ParseFloat(latlng[0], 64)
	lng, lngErr := strconv.ParseFloat(latlng[1], 64)
	if latErr != nil || lngErr != nil {
		abortWithError(c, errBadLatLng)
		return
	}

	// convert the distance to radians on the earth sphere
	radius := distance / kmEarthRadius
	if c.Param("unit") == "mi" {
		radius = distance / milesEarthRadius
	}

	tours, err := s.store.ToursWithin(c.Request.Context(), lat, lng, radius)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(tours),
		"data":    gin.H{"tours": tours},
	})
}
