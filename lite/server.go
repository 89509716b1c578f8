// Package lite is the reduced backend variant: an in-memory booking list
// with a deliberately smaller, camelCase wire contract. It is a separate
// API surface, not a subset of the v1 API.
package lite

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Booking is the reduced booking shape: no items, no pricing, just a
// customer and a unit size.
type Booking struct {
	ID           string `json:"id"`
	CustomerName string `json:"customerName"`
	UnitSize     string `json:"unitSize"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
}

// Store keeps bookings in memory, newest first.
type Store struct {
	mu       sync.Mutex
	bookings []Booking
}

func NewStore() *Store {
	return &Store{bookings: []Booking{}}
}

// Add prepends a new booking and returns it.
func (s *Store) Add(customerName, unitSize string) Booking {
	b := Booking{
		ID:           uuid.New().String(),
		CustomerName: customerName,
		UnitSize:     unitSize,
		Status:       "PENDING",
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	s.mu.Lock()
	s.bookings = append([]Booking{b}, s.bookings...)
	s.mu.Unlock()
	return b
}

// List returns a snapshot of all bookings.
func (s *Store) List() []Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

// NewRouter builds the lite API router around the given store.
func NewRouter(store *Store) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/api/bookings", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"bookings": store.List()})
	})

	router.POST("/api/bookings", func(c *gin.Context) {
		var req struct {
			CustomerName string `json:"customerName"`
			UnitSize     string `json:"unitSize"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.CustomerName == "" || req.UnitSize == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "customerName and unitSize are required"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"booking": store.Add(req.CustomerName, req.UnitSize)})
	})

	return router
}
