// Package http provides http transport for spaces
package http

import (
	stdhttp "net/http"

	"headcount/internal/modkit/httpkit"
	"headcount/internal/services/api/spaces/domain"
	svc "headcount/internal/services/api/spaces/service"
)

// Register mounts spaces endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// directory listing with optional id filter
	httpkit.PostJSON[domain.ListInput](r, "/list", h.list)

	// single space lookup
	httpkit.PostJSON[domain.GetInput](r, "/get", h.get)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /spaces/list Spaces spacesList
// @Summary List spaces
// @Tags Spaces
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Filter"
// @Success 200 {array} domain.Space "ok"
// @Router /spaces/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.List(r.Context(), in)
}

// swagger:route POST /spaces/get Spaces spacesGet
// @Summary Get one space
// @Tags Spaces
// @Accept json
// @Produce json
// @Param payload body domain.GetInput true "Space id"
// @Success 200 {object} domain.Space "ok"
// @Router /spaces/get [post]
func (h *handlers) get(r *stdhttp.Request, in domain.GetInput) (any, error) {
	return h.svc.Get(r.Context(), in)
}
