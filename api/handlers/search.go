package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/littlesearch/logger"
	"github.com/meghashyamc/littlesearch/services/search"
	"github.com/meghashyamc/littlesearch/validation"
)

type SearchRequest struct {
	First  string `form:"first" json:"first" validate:"required,valid_keyword,max=100"`
	Second string `form:"second" json:"second" validate:"required,valid_keyword,max=100"`
}

type SearchResponse struct {
	Results []string `json:"results"`
	Found   bool     `json:"found"`
}

func SetupSearch(router *gin.Engine, logger logger.Logger, service *search.Service, validator *validation.Validator) {
	router.GET("/search", handleSearch(service, logger, validator))

}

func handleSearch(service *search.Service, logger logger.Logger, validator *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := SearchRequest{}
		if err := c.ShouldBindQuery(&request); err != nil {
			logger.Warn("could not extract expected params from search request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusUnprocessableEntity, []string{"failed to extract request parameters"})
			return
		}

		if err := validator.Validate(request); err != nil {
			logger.Warn("could not validate search request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusNotAcceptable, []string{err.Error()})
			return
		}

		results, found := service.Query(request.First, request.Second)
		if results == nil {
			results = []string{}
		}

		writeResponse(c, SearchResponse{Results: results, Found: found}, http.StatusOK, nil)
	}
}
