package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trekmark/trekmark-api/store"
)

// resourceHandler produces the five standard CRUD handlers for one
// resource type. Optional hooks:
//   - scope: ambient filter merged into getAll, used by nested routes
//   - prepare: mutates the bound document before createOne persists it
//   - afterWrite: runs after a write committed, with the pre- and
//     post-mutation documents (either may be nil)
type resourceHandler[T any] struct {
	singular string
	plural   string
	res      store.Collection[T]

	scope      func(*gin.Context) (bson.M, error)
	prepare    func(*gin.Context, *T) error
	afterWrite func(*gin.Context, *T, *T)
}

func docID(c *gin.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, errInvalidID
	}
	return id, nil
}

func (h *resourceHandler[T]) getAll(c *gin.Context) {
	scope := bson.M{}
	if h.scope != nil {
		s, err := h.scope(c)
		if err != nil {
			abortWithError(c, err)
			return
		}
		scope = s
	}

	docs, err := h.res.List(c.Request.Context(), c.Request.URL.Query(), scope)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(docs),
		"data":    gin.H{h.plural: docs},
	})
}

func (h *resourceHandler[T]) getOne(c *gin.Context) {
	id, err := docID(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	doc, err := h.res.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{h.singular: doc},
	})
}

func (h *resourceHandler[T]) createOne(c *gin.Context) {
	var doc T
	if err := c.ShouldBindJSON(&doc); err != nil {
		abortWithError(c, fmt.Errorf("%w: %s", errCannotParse, err))
		return
	}

	if h.prepare != nil {
		if err := h.prepare(c, &doc); err != nil {
			abortWithError(c, err)
			return
		}
	}

	created, err := h.res.Create(c.Request.Context(), &doc)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if h.afterWrite != nil {
		h.afterWrite(c, nil, created)
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{h.singular: created},
	})
}

func (h *resourceHandler[T]) updateOne(c *gin.Context) {
	id, err := docID(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	patch, err := io.ReadAll(c.Request.Body)
	if err != nil {
		abortWithError(c, fmt.Errorf("%w: %s", errCannotParse, err))
		return
	}

	prev, curr, err := h.res.Update(c.Request.Context(), id, patch)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if h.afterWrite != nil {
		h.afterWrite(c, prev, curr)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{h.singular: curr},
	})
}

func (h *resourceHandler[T]) deleteOne(c *gin.Context) {
	id, err := docID(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	prev, err := h.res.Delete(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if h.afterWrite != nil {
		h.afterWrite(c, prev, nil)
	}

	c.Status(http.StatusNoContent)
}
