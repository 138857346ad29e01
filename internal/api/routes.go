package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/palettelab/color-agent/internal/api/middleware"
	"github.com/palettelab/color-agent/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/colors").
			To(handler.Colors).
			Doc("Resolve colors: single lookup, pre-split batch, or palette suggestion").
			Metadata(restfulspec.KeyOpenAPITags, []string{"colors"}).
			Reads(models.ColorRequest{}).
			Returns(200, "OK", models.BatchResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(422, "Not A Color Query", middleware.ErrorResponse{}).
			Returns(502, "Bad Upstream Response", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/colors/batch-text").
			To(handler.BatchText).
			Doc("Parse free-form multi-color text and resolve every color in it").
			Metadata(restfulspec.KeyOpenAPITags, []string{"colors"}).
			Reads(models.BatchTextRequest{}).
			Writes(models.BatchResponse{}).
			Returns(200, "OK", models.BatchResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}
