package booksearch

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ControllerImpl struct {
	service Service
}

func NewControllerImpl(service Service) *ControllerImpl {
	return &ControllerImpl{service: service}
}

func (c *ControllerImpl) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/books/search", c.Search)
	router.GET("/v1/search-results/:session", c.SessionResults)
	router.POST("/v1/links/verify", c.VerifyLink)
}

func (c *ControllerImpl) Search(ctx *gin.Context) {
	var req SearchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "book_name is required"})
		return
	}

	resp, err := c.service.Search(ctx.Request.Context(), req)
	if err != nil {
		log.Printf("booksearch: search %q failed: %v", req.BookName, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *ControllerImpl) SessionResults(ctx *gin.Context) {
	session := ctx.Param("session")
	resp, err := c.service.SessionResults(ctx.Request.Context(), session)
	if err != nil {
		log.Printf("booksearch: loading session %s failed: %v", session, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not load session results"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *ControllerImpl) VerifyLink(ctx *gin.Context) {
	var req VerifyLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}
	ctx.JSON(http.StatusOK, c.service.VerifyLink(ctx.Request.Context(), req.URL))
}
