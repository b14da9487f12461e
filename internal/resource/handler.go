package resource

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Routes selects the endpoint shape for one resource. The list/create pair is
// always mounted; single-record routes are opt-in because not every resource
// exposes them (planning templates are create/list only, projects take PUT
// and have no delete).
type Routes struct {
	Item         bool
	UpdateMethod string
	Delete       bool
}

// FullRoutes is the common shape: GET/PATCH/DELETE on /:id.
func FullRoutes() Routes {
	return Routes{Item: true, UpdateMethod: http.MethodPatch, Delete: true}
}

// Mount registers the endpoint set for svc under path on rg.
func Mount[T any, PT Record[T]](rg *gin.RouterGroup, path string, svc *Service[T, PT], routes Routes) {
	schema := svc.Schema()

	rg.GET(path, func(c *gin.Context) {
		recs, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, schema, err)
			return
		}
		c.JSON(http.StatusOK, recs)
	})

	rg.POST(path, func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
		rec, err := svc.Create(c.Request.Context(), body)
		if err != nil {
			respondError(c, schema, err)
			return
		}
		c.JSON(http.StatusCreated, rec)
	})

	if !routes.Item {
		return
	}

	item := path + "/:id"

	rg.GET(item, func(c *gin.Context) {
		rec, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, schema, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	})

	if routes.UpdateMethod != "" {
		rg.Handle(routes.UpdateMethod, item, func(c *gin.Context) {
			body, err := c.GetRawData()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
				return
			}
			rec, err := svc.Update(c.Request.Context(), c.Param("id"), body)
			if err != nil {
				respondError(c, schema, err)
				return
			}
			c.JSON(http.StatusOK, rec)
		})
	}

	if routes.Delete {
		rg.DELETE(item, func(c *gin.Context) {
			if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
				respondError(c, schema, err)
				return
			}
			c.Status(http.StatusNoContent)
		})
	}
}

// respondError maps the error taxonomy onto status codes. Fault causes are
// logged here and never reach the response body.
func respondError(c *gin.Context, schema Schema, err error) {
	var verr *ValidationError
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": schema.NotFoundMessage()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Message})
	default:
		var fault *Fault
		if errors.As(err, &fault) {
			log.Printf("%s: %v", fault.Error(), fault.Err)
		} else {
			log.Printf("unhandled error: %v", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong!"})
	}
}
