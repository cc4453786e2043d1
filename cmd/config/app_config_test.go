package config

import (
	"testing"

	"recipe-sharing-platform/internal/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewApp_RequiresSecrets(t *testing.T) {
	t.Cleanup(func() { utils.SetConfig(utils.Config{}) })

	tests := []struct {
		name    string
		config  utils.Config
		missing string
	}{
		{"no secrets", utils.Config{}, "JWT_SECRET"},
		{"no session secret", utils.Config{JWTSecret: "jwt"}, "SESSION_SECRET"},
		{"no jwt secret", utils.Config{SessionSecret: "session"}, "JWT_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			utils.SetConfig(tt.config)

			app, err := NewApp(nil, zap.NewNop())
			assert.Nil(t, app)
			assert.EqualError(t, err, tt.missing+" must be set")
		})
	}
}
