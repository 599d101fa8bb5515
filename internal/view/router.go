package view

import (
	"context"
	"taskClient/internal/logger"

	"go.uber.org/zap"
)

type Route string

const (
	RouteRoot     Route = "/"
	RouteLogin    Route = "/login"
	RouteRegister Route = "/register"
	RouteTasks    Route = "/tasks"
	RouteProfile  Route = "/profile"
)

func (r Route) Protected() bool {
	return r == RouteTasks || r == RouteProfile
}

type Guard struct {
	session SessionReader
}

func NewGuard(session SessionReader) *Guard {
	return &Guard{session: session}
}

// Resolve маршрут, который надо показать вместо запрошенного.
// "/" и неизвестные маршруты ведут на /tasks, защищённые без токена на /login.
func (g *Guard) Resolve(ctx context.Context, route Route) Route {
	switch route {
	case RouteLogin, RouteRegister, RouteTasks, RouteProfile:
	default:
		route = RouteTasks
	}

	if route.Protected() && !g.session.IsAuthenticated(ctx) {
		logger.Info("View: Переход без сессии", zap.String("route", string(route)))
		return RouteLogin
	}
	return route
}
