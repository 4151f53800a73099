package custom_error

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondHTTP maps the domain error taxonomy onto HTTP statuses. Anything
// unrecognized is logged server-side and surfaced as a generic 500 so no
// internals leak into a production response.
func RespondHTTP(c *gin.Context, err error, fallback string) {
	switch domainErr := err.(type) {
	case *NotFoundError:
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": domainErr.Error()})
	case *ValidationError:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": domainErr.Message, "property": domainErr.Property})
	case *ConflictError:
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": domainErr.Message})
	case *UniqueViolationError:
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": domainErr.Error()})
	case *ForeignKeyViolationError:
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": domainErr.Error()})
	case *InsufficientStockError:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":         "Insufficient stock",
			"ingredient_id": domainErr.IngredientID,
			"available":     domainErr.Available,
			"requested":     domainErr.Requested,
		})
	default:
		log.Println(fallback+":", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
