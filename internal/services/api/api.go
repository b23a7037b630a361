// Package api provides the HTTP API for the application
package api

import (
	"headcount/internal/platform/config"
	"headcount/internal/platform/logger"
	phttp "headcount/internal/platform/net/http"
	"headcount/internal/platform/store"

	"headcount/internal/modkit"
	"headcount/internal/modkit/httpkit"
	"headcount/internal/modkit/module"
	"headcount/internal/modkit/swaggerkit"

	metamod "headcount/internal/services/api/meta/module"
	reportsmod "headcount/internal/services/api/reports/module"
	spacesdom "headcount/internal/services/api/spaces/domain"
	spacesmod "headcount/internal/services/api/spaces/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	// Construct spaces first and extract its directory port
	spaces := spacesmod.New(deps)
	spacesPort := module.MustPortsOf[spacesdom.ServicePort](spaces)

	// Reports resolve zones and capacities through the spaces directory
	reports := reportsmod.New(
		deps,
		modkit.WithPorts(reportsmod.Ports{
			Spaces: spacesPort,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		spaces,
		reports,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
