package view

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewEngineParsesTemplates(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)
	require.NotNil(t, engine)
}

func TestRenderLogin(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	res := httptest.NewRecorder()
	err = engine.Render(res, "pages/login.html", TemplateData{
		Title:     "Admin Login",
		CSRFToken: "token-123",
		Data: struct {
			Form   struct{ Email string }
			Errors map[string]string
		}{},
	})
	require.NoError(t, err)
	body := res.Body.String()
	require.True(t, strings.Contains(body, "<form"))
	require.True(t, strings.Contains(body, "token-123"))
}

func TestRenderNilEngine(t *testing.T) {
	var engine *Engine
	err := engine.Render(httptest.NewRecorder(), "pages/login.html", TemplateData{})
	require.Error(t, err)
}
