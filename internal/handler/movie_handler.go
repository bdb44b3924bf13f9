package handler

import (
	"errors"
	"net/http"
	"reelmatch/backend/internal/database"
	"reelmatch/backend/internal/models"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MovieResponse defines the structure for a catalog entry.
type MovieResponse struct {
	ID        uint      `json:"id" example:"1"`
	Title     string    `json:"title" example:"Inception"`
	PosterURL string    `json:"poster_url"`
	Genre     string    `json:"genre" example:"Sci-Fi"`
	CreatedAt time.Time `json:"created_at"`
}

func newMovieResponse(movie models.Movie) MovieResponse {
	return MovieResponse{
		ID:        movie.ID,
		Title:     movie.Title,
		PosterURL: movie.PosterURL,
		Genre:     movie.Genre,
		CreatedAt: movie.CreatedAt,
	}
}

// GetMovies godoc
// @Summary      Get all movies
// @Description  Retrieves the full swipeable movie catalog.
// @Tags         movies
// @Produce      json
// @Success      200  {array}   MovieResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /movies [get]
func GetMovies(c *gin.Context) {
	var movies []models.Movie
	if err := database.DB.Order("id").Find(&movies).Error; err != nil {
		internalError(c, "Failed to fetch movies", err)
		return
	}

	response := make([]MovieResponse, 0, len(movies))
	for _, movie := range movies {
		response = append(response, newMovieResponse(movie))
	}
	c.JSON(http.StatusOK, response)
}

// GetMovieByID godoc
// @Summary      Get movie by ID
// @Description  Retrieves a single movie from the catalog.
// @Tags         movies
// @Produce      json
// @Param        id   path      int  true  "Movie ID"
// @Success      200  {object}  MovieResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /movies/{id} [get]
func GetMovieByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie ID"})
		return
	}

	var movie models.Movie
	if err := database.DB.First(&movie, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
			return
		}
		internalError(c, "Failed to fetch movie", err)
		return
	}

	c.JSON(http.StatusOK, newMovieResponse(movie))
}
