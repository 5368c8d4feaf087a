package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// returns the server health status
func Handler(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Status:  "healthy",
		Service: "aibutsu",
		Version: "1.0.0",
	})
}

// verifies database connectivity with a trivial query
func CheckDBHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var one int
		if err := db.QueryRow(c.Request.Context(), "SELECT 1").Scan(&one); err != nil {
			c.JSON(http.StatusServiceUnavailable, DBResponse{
				Status: "unhealthy",
				Detail: "database unreachable",
			})
			return
		}

		c.JSON(http.StatusOK, DBResponse{Status: "ok"})
	}
}
