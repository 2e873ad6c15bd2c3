package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const objectIDKey = "objectID"

// ObjectIDParam parses the :id path segment once for the whole chain and
// answers 400 when it is not a valid ObjectID.
func ObjectIDParam() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
			return
		}
		c.Set(objectIDKey, id)
		c.Next()
	}
}

// ObjectID returns the identifier ObjectIDParam parsed, or the zero
// ObjectID when the route has no such middleware.
func ObjectID(c *gin.Context) primitive.ObjectID {
	v, _ := c.Get(objectIDKey)
	id, _ := v.(primitive.ObjectID)
	return id
}
