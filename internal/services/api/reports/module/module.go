// Package module wires reports into the API using modkit
package module

import (
	"net/http"
	"time"

	"headcount/internal/adapters/counts"
	modkit "headcount/internal/modkit"
	"headcount/internal/modkit/httpkit"
	str "headcount/internal/platform/strings"
	reportshttp "headcount/internal/services/api/reports/http"
	reportssvc "headcount/internal/services/api/reports/service"
	spacesdom "headcount/internal/services/api/spaces/domain"
)

// Module implements the reports module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc reportssvc.Service
}

// Ports declares the injected spaces port this module requires
type Ports struct {
	Spaces spacesdom.ServicePort
}

// New constructs the reports module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("reports"), modkit.WithPrefix("/reports")}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Spaces == nil {
		panic("reports module requires Spaces port (from services/api/spaces)")
	}

	client := counts.NewClient(counts.Options{
		BaseURL:    cfg.BaseURL,
		Token:      cfg.Token,
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryBase:  cfg.RetryBase,
		PageSize:   cfg.PageSize,
	})

	svc := reportssvc.New(reportssvc.Options{
		Counts:    client,
		Spaces:    injected.Spaces,
		WeekStart: weekdayOrSunday(cfg.WeekStart),
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptReportsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		reportshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// weekdayOrSunday maps a configured day name, falling back to Sunday
func weekdayOrSunday(s string) time.Weekday {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == s {
			return d
		}
	}
	return time.Sunday
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
