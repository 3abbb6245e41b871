package endpoints

import (
	"errors"
	"math"
	"net/http"

	"filloutproxy"
	"filloutproxy/internal/api/client"
	"filloutproxy/internal/api/handler/request"
	"filloutproxy/internal/api/handler/response"
	"filloutproxy/internal/api/models"
	"filloutproxy/internal/api/service"
	"filloutproxy/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type responsesHandler struct {
	filloutClient *client.FilloutClient
	filterService *service.FilterService
	config        filloutproxy.AppConfig
	logger        zerolog.Logger
}

func newResponsesHandler(config filloutproxy.AppConfig, logger zerolog.Logger) *responsesHandler {
	return &responsesHandler{
		filloutClient: client.NewFilloutClient(config, logger),
		filterService: service.NewFilterService(),
		config:        config,
		logger:        logger,
	}
}

func ResponsesHandler(router *graceful.Graceful, config filloutproxy.AppConfig, logger zerolog.Logger) {
	h := newResponsesHandler(config, logger)

	router.GET("/:formId/filteredResponses", h.getFilteredResponses)
}

// getFilteredResponses proxies the upstream submissions endpoint and applies
// the requested filters to its responses
func (slf *responsesHandler) getFilteredResponses(c *gin.Context) {
	formID := c.Param("formId")

	var query request.FilteredResponsesQuery
	if err := pkg.BindQueryAndValidate(c, &query); err != nil {
		slf.logger.Error().Err(err).Str("formId", formID).Msg("Invalid filtered responses query")
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}
	if err := query.ValidateDates(); err != nil {
		slf.logger.Error().Err(err).Str("formId", formID).Msg("Invalid date bounds")
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	clauses, err := query.ParseFilters()
	if err != nil {
		slf.logger.Error().Err(err).Str("formId", formID).Msg("Invalid filters parameter")
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	compiled, err := slf.filterService.Compile(clauses)
	if err != nil {
		slf.respondFilterError(c, err)
		return
	}

	upstream, err := slf.filloutClient.GetSubmissions(c.Request.Context(), formID, client.SubmissionParams{
		Limit:           query.Limit,
		Offset:          query.Offset,
		Status:          query.Status,
		Sort:            query.Sort,
		AfterDate:       query.AfterDate,
		BeforeDate:      query.BeforeDate,
		IncludeEditLink: query.IncludeEditLink,
	})
	if err != nil {
		slf.logger.Error().Err(err).Str("formId", formID).Msg("Fillout API call failed")
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Error while calling Fillout API"})
		return
	}

	filtered, err := slf.filterService.Apply(upstream.Responses, compiled)
	if err != nil {
		slf.respondFilterError(c, err)
		return
	}
	if filtered == nil {
		filtered = []models.Submission{}
	}

	c.JSON(http.StatusOK, response.FilteredResponses{
		Responses:      filtered,
		TotalResponses: len(filtered),
		PageCount:      pageCount(len(filtered), query.Limit),
	})
}

// respondFilterError maps filter engine errors onto the HTTP contract
func (slf *responsesHandler) respondFilterError(c *gin.Context, err error) {
	var ife *models.InvalidFilterFormatError
	if errors.As(err, &ife) {
		c.JSON(http.StatusBadRequest, response.APIError{Message: ife.Error()})
		return
	}
	slf.logger.Error().Err(err).Msg("Filter evaluation failed")
	c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to filter responses"})
}

func pageCount(total, limit int) int {
	if total == 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
