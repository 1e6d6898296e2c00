package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/littlesearch/api/handlers"
	"github.com/meghashyamc/littlesearch/logger"
	"github.com/meghashyamc/littlesearch/services/index"
	"github.com/meghashyamc/littlesearch/services/search"
	"github.com/meghashyamc/littlesearch/validation"
)

func setupRoutes(router *gin.Engine, logger logger.Logger, indexService *index.Service, searchService *search.Service, validator *validation.Validator) {
	router.GET("/health", health())

	handlers.SetupIndex(router, logger, indexService, validator)
	handlers.SetupSearch(router, logger, searchService, validator)

}

func health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
}

func newRouter() *gin.Engine {
	router := gin.Default()
	router.UseRawPath = true
	router.Use(_CORSMiddleware())
	router.Use(gin.Recovery())

	return router
}
