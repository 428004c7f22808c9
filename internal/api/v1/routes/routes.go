// Package routes defines the dashboard server's routes and URL structure
package routes

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/jobdash/jobdash/internal/api/v1/handlers"
)

/*

Routes are grouped by scope (agent, credentials, dashboard) in alphabetical order,
GET before POST. Names match the action.

*/

// API base configuration
const (
	// DefaultListen is where the dashboard server listens by default
	DefaultListen = "127.0.0.1:8080"
	// APIv1Prefix is the prefix for all API endpoints
	APIv1Prefix = "/api/v1"
)

// Route names for lookup
const (
	// Health check
	HealthCheck = "HealthCheck"

	// Agent routes
	StartAgent = "StartAgent"
	StopAgent  = "StopAgent"

	// Credentials routes
	SubmitCredentials = "SubmitCredentials"

	// Dashboard routes
	GetDashboard = "GetDashboard"
	RequestSort  = "RequestSort"
)

// routeCache stores extracted routes for use prior to compilation
var (
	routeCache     map[string]string
	routeCacheMu   sync.RWMutex
	routeCacheInit sync.Once
)

// RegisterRoutes configures all the v1 routes
func RegisterRoutes(app *fiber.App, dashboardHandler *handlers.DashboardHandler) {
	v1 := app.Group(APIv1Prefix)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	}).Name(HealthCheck)

	// Agent endpoints
	agent := v1.Group("/agent")
	agent.Post("/start", dashboardHandler.StartAgent).Name(StartAgent)
	agent.Post("/stop", dashboardHandler.StopAgent).Name(StopAgent)

	// Credentials endpoints
	v1.Post("/credentials", dashboardHandler.SubmitCredentials).Name(SubmitCredentials)

	// Dashboard endpoints
	dash := v1.Group("/dashboard")
	dash.Get("/", dashboardHandler.GetDashboard).Name(GetDashboard)
	dash.Post("/sort", dashboardHandler.RequestSort).Name(RequestSort)
}

// initRouteCache initializes the route cache by creating a mock app and extracting routes
func initRouteCache() {
	routeCacheInit.Do(func() {
		cache := make(map[string]string)

		app := fiber.New()
		RegisterRoutes(app, &handlers.DashboardHandler{})

		for _, route := range app.GetRoutes() {
			if route.Name != "" {
				cache[route.Name] = route.Path
			}
		}

		routeCacheMu.Lock()
		routeCache = cache
		routeCacheMu.Unlock()
	})
}

// GetRoute returns the route pattern for the given route name
func GetRoute(name string) string {
	initRouteCache()

	routeCacheMu.RLock()
	defer routeCacheMu.RUnlock()
	return routeCache[name]
}

// BuildURL builds a URL for the given route name and parameters
func BuildURL(routeName string, params map[string]string, queryParams url.Values) string {
	route := GetRoute(routeName)
	if route == "" {
		return ""
	}

	for param, value := range params {
		route = strings.ReplaceAll(route, ":"+param, value)
	}

	// Remove trailing slash if it's a base endpoint with no parameters
	if len(route) > 1 && strings.HasSuffix(route, "/") && !strings.Contains(route, ":") {
		route = strings.TrimSuffix(route, "/")
	}

	if len(queryParams) > 0 {
		route = fmt.Sprintf("%s?%s", route, queryParams.Encode())
	}

	return route
}

// HealthCheckURL returns the URL for the health check endpoint
func HealthCheckURL() string {
	return BuildURL(HealthCheck, nil, nil)
}

// Agent route helpers

// StartAgentURL returns the URL for starting the agent
func StartAgentURL() string {
	return BuildURL(StartAgent, nil, nil)
}

// StopAgentURL returns the URL for stopping the agent
func StopAgentURL() string {
	return BuildURL(StopAgent, nil, nil)
}

// Credentials route helpers

// SubmitCredentialsURL returns the URL for submitting credentials
func SubmitCredentialsURL() string {
	return BuildURL(SubmitCredentials, nil, nil)
}

// Dashboard route helpers

// GetDashboardURL returns the URL for the dashboard view
func GetDashboardURL() string {
	return BuildURL(GetDashboard, nil, nil)
}

// RequestSortURL returns the URL for changing the sort column
func RequestSortURL() string {
	return BuildURL(RequestSort, nil, nil)
}
