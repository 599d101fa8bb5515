package view

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGuard_Resolve тестирует перенаправления маршрутов
func TestGuard_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		username string
		route    Route
		expected Route
	}{
		{"root with session", "alice", RouteRoot, RouteTasks},
		{"root without session", "", RouteRoot, RouteLogin},
		{"tasks without session", "", RouteTasks, RouteLogin},
		{"profile without session", "", RouteProfile, RouteLogin},
		{"tasks with session", "alice", RouteTasks, RouteTasks},
		{"profile with session", "alice", RouteProfile, RouteProfile},
		{"login is public", "", RouteLogin, RouteLogin},
		{"register is public", "", RouteRegister, RouteRegister},
		{"unknown with session", "alice", Route("/nope"), RouteTasks},
		{"unknown without session", "", Route("/nope"), RouteLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := NewGuard(fakeSession{username: tt.username})
			assert.Equal(t, tt.expected, guard.Resolve(context.Background(), tt.route))
		})
	}
}
