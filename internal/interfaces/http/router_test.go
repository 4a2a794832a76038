package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexile/pharmacy-api/internal/application/analytics"
	"github.com/nexile/pharmacy-api/internal/application/auth"
	"github.com/nexile/pharmacy-api/internal/application/directory"
	"github.com/nexile/pharmacy-api/internal/application/insights"
	"github.com/nexile/pharmacy-api/internal/application/pos"
	"github.com/nexile/pharmacy-api/internal/application/reports"
	"github.com/nexile/pharmacy-api/internal/application/usecase"
	"github.com/nexile/pharmacy-api/internal/domain/entity"
	"github.com/nexile/pharmacy-api/internal/infrastructure/memory"
	apphttp "github.com/nexile/pharmacy-api/internal/interfaces/http"
)

// buildFullApp monta el router completo sobre el store semilla.
func buildFullApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.New()
	authUC := auth.NewAuthUseCase(store, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
	perfUC := analytics.NewPerformanceUseCase(store)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        authUC,
		DirectoryUC:   directory.NewUseCase(store),
		ProductUC:     usecase.NewProductUseCase(store),
		TransactionUC: usecase.NewTransactionUseCase(store),
		CheckoutUC:    pos.NewCheckoutUseCase(store),
		PerformanceUC: perfUC,
		StatisticalUC: insights.NewStatisticalUseCase(store),
		AIUC:          insights.NewAIUseCase(store, nil),
		ReportsUC:     reports.NewUseCase(store, perfUC, nil, nil),
		JWTSecret:     testJWTSecret,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, authHeader, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Solo los farmacéuticos venden: dueño y gerente no alcanzan el checkout.
func TestRouter_CheckoutSoloFarmaceutico(t *testing.T) {
	app := buildFullApp(t)
	cart := `{"items":[{"product_id":"p1","quantity":1}]}`

	resp := doJSON(t, app, http.MethodPost, "/api/pos/checkout", tokenFor(t, "u1", entity.RoleOwner), cart)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/pos/checkout", tokenFor(t, "u2", entity.RoleManager), cart)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/pos/checkout", tokenFor(t, "u3", entity.RolePharmacist), cart)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var tx map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tx))
	assert.Equal(t, "b1", tx["branch_id"], "la venta se imputa a la sucursal del farmacéutico")
}

// Las ventas de un producto ajeno no se revelan: mismo 404 que un producto
// inexistente.
func TestRouter_ProductSalesRespetaAlcance(t *testing.T) {
	app := buildFullApp(t)
	farm := tokenFor(t, "u3", entity.RolePharmacist)

	// p4 pertenece a b2; u3 es de b1.
	resp := doJSON(t, app, http.MethodGet, "/api/dashboard/products/p4/sales", farm, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/dashboard/products/p-nope/sales", farm, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/dashboard/products/p1/sales", farm, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
