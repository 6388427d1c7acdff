package bootstrap

import (
	"context"
	"net/http"

	"github.com/Domenick1991/flightdesk/api"
	"github.com/Domenick1991/flightdesk/config"
	"github.com/Domenick1991/flightdesk/internal/auth"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/gateway"
	"github.com/Domenick1991/flightdesk/internal/repository"
	"github.com/Domenick1991/flightdesk/internal/service/resource"
	"go.uber.org/zap"
)

// APIDeps are the process-wide collaborators of the resource API.
type APIDeps struct {
	Config   *config.Config
	Repos    *repository.Repositories
	Producer resource.Producer
	Log      *zap.Logger
	Ping     func(ctx context.Context) error
}

// NewAPIHandler assembles one resource handler per entity behind the shared
// middleware chain.
func NewAPIHandler(d APIDeps) http.Handler {
	cfg := d.Config
	tokens := auth.NewTokenService(cfg.Auth)
	authenticator := auth.NewAuthenticator(d.Repos.Users, tokens, d.Log)

	full := []api.HandlerOption{api.WithCapabilities(api.FullAccess)}
	noDelete := []api.HandlerOption{api.WithCapabilities(api.Capabilities{Create: true, Replace: true, Patch: true})}
	super := []string{domain.RoleSuperAdmin}
	usersOnly := []api.HandlerOption{
		api.WithCapabilities(api.Capabilities{Replace: true, Patch: true}),
		api.WithRoles(super, super),
	}

	resources := []api.Registrar{
		mount[domain.Airline](d, gateway.Airline, d.Repos.Airlines, repository.Airlines(), full),
		mount[domain.Destination](d, gateway.Destination, d.Repos.Destinations, repository.Destinations(), full),
		mount[domain.Pilot](d, gateway.Pilot, d.Repos.Pilots, repository.Pilots(), full),
		mount[domain.Passenger](d, gateway.Passenger, d.Repos.Passengers, repository.Passengers(), full),
		mount[domain.Flight](d, gateway.Flight, d.Repos.Flights, repository.Flights(), full),
		mount[domain.PlaneTicket](d, gateway.PlaneTicket, d.Repos.PlaneTickets, repository.PlaneTickets(), full),
		mount[domain.TravelClass](d, gateway.TravelClass, d.Repos.TravelClasses, repository.TravelClasses(), noDelete),
		api.NewResourceHandler[domain.PrivilegedUser](string(gateway.User), mustPath(gateway.User),
			resource.NewUserService(d.Repos.Users, cfg.Auth.BcryptCost, cfg.Pagination.MaxPageSize, serviceOptions[domain.PrivilegedUser](d)...),
			cfg.Pagination.DefaultPageSize, usersOnly...),
	}

	return api.NewRouter(api.RouterConfig{
		Log:         d.Log,
		Tokens:      tokens,
		Auth:        api.NewAuthHandler(authenticator),
		Resources:   resources,
		SwaggerDir:  cfg.HTTP.SwaggerDir,
		HealthCheck: d.Ping,
	})
}

func mount[T any](d APIDeps, r gateway.Resource, repo repository.Repository[T], desc repository.Descriptor[T], opts []api.HandlerOption) *api.ResourceHandler[T] {
	svc := resource.NewService(repo, desc, d.Config.Pagination.MaxPageSize, serviceOptions[T](d)...)
	return api.NewResourceHandler[T](string(r), mustPath(r), svc, d.Config.Pagination.DefaultPageSize, opts...)
}

func serviceOptions[T any](d APIDeps) []resource.Option[T] {
	opts := []resource.Option[T]{resource.WithLogger[T](d.Log)}
	if d.Producer != nil {
		opts = append(opts, resource.WithEvents[T](d.Producer, d.Config.Kafka.EventsTopic))
	}
	return opts
}

// mustPath panics on a resource missing from the route table, which only a
// programming error can cause.
func mustPath(r gateway.Resource) string {
	p, err := r.Path()
	if err != nil {
		panic(err)
	}
	return p
}
