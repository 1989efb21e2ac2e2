package middlewares

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/intranet-portal/config"
)

func defaultEnforcer(t *testing.T) *AccessEnforcer {
	t.Helper()
	policy, err := config.LoadAccessPolicy("")
	require.NoError(t, err)
	access, err := NewAccessEnforcer(policy)
	require.NoError(t, err)
	return access
}

func TestAccessEnforcerDefaultPolicy(t *testing.T) {
	access := defaultEnforcer(t)

	tests := []struct {
		system, path, method string
		want                 bool
	}{
		{"cardapio", "/cardapio", "GET", true},
		{"cardapio", "/cardapio", "POST", true},
		{"cardapio", "/cardapio/proximo", "POST", true},
		{"cardapio", "/cardapio/atual", "post", true},
		{"cardapio", "/cardapio", "DELETE", false},
		{"cardapio", "/blog/posts", "GET", false},
		{"protocolos", "/protocolos", "GET", true},
		{"protocolos", "/protocolos/setores/editar/3", "POST", true},
		{"protocolos", "/protocolos/download/7", "GET", true},
		{"protocolos", "/cardapio", "POST", false},
		{"dti_blog", "/blog/criar-post", "POST", true},
		{"dti_blog", "/blog/post/1", "GET", true},
		{"dti_blog", "/zeladoria/listaPacientes", "GET", false},
		{"zeladoria", "/zeladoria/downloadPacientes", "GET", true},
		{"zeladoria", "/zeladoria/downloadPacientes", "POST", false},
		{"unknown", "/cardapio", "GET", false},
	}

	for _, tt := range tests {
		got, err := access.Allow(tt.system, tt.path, tt.method)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %s %s", tt.system, tt.method, tt.path)
	}
}

func TestMethodsPattern(t *testing.T) {
	assert.Equal(t, "^(GET|POST)$", methodsPattern([]string{"get", " POST "}))
}
