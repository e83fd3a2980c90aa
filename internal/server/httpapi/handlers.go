package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/resumebook/internal/common"
	"github.com/dmitrijs2005/resumebook/internal/logging"
)

type RegistrationFilterer interface {
	Filter(ctx context.Context, filter map[string]any, projection []map[string]int) ([]map[string]any, error)
}

type DownloadResolver interface {
	Resolve(ctx context.Context, userIDs []string) ([]string, error)
}

type filterRequest struct {
	Filter     map[string]any   `json:"filter"`
	Projection []map[string]int `json:"projection"`
}

type downloadLink struct {
	URL string `json:"url"`
}

type handlers struct {
	registrations RegistrationFilterer
	downloads     DownloadResolver
	logger        logging.Logger
}

func (h *handlers) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) filterRegistrations(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "malformed filter request")
		return
	}

	docs, err := h.registrations.Filter(c.Request.Context(), req.Filter, req.Projection)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// downloadResumes answers a single {"url"} object when one ID was asked
// for and an array of them otherwise.
func (h *handlers) downloadResumes(c *gin.Context) {
	ids, err := splitIDs(c.Param("ids"))
	if err != nil || len(ids) == 0 {
		abortWithError(c, http.StatusBadRequest, "malformed user id list")
		return
	}

	urls, err := h.downloads.Resolve(c.Request.Context(), ids)
	if err != nil {
		h.fail(c, err)
		return
	}

	if len(ids) == 1 {
		c.JSON(http.StatusOK, downloadLink{URL: urls[0]})
		return
	}
	links := make([]downloadLink, 0, len(urls))
	for _, u := range urls {
		links = append(links, downloadLink{URL: u})
	}
	c.JSON(http.StatusOK, links)
}

// splitIDs splits the raw path segment on commas before unescaping, so an
// escaped comma stays inside its ID.
func splitIDs(raw string) ([]string, error) {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		id, err := url.PathUnescape(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (h *handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrBadRequest):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		h.logger.Error(c.Request.Context(), "request failed", "error", err, "request_id", requestIDFrom(c))
		abortWithError(c, http.StatusInternalServerError, common.ErrorInternal.Error())
	}
}

func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
