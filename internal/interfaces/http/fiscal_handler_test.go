package http_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmt-online/magazin-api/internal/application/dto"
	apihttp "github.com/pmt-online/magazin-api/internal/interfaces/http"
)

// buildTestApp ridică un app Fiber doar cu rutele înregistrate; rutele
// stateless nu au nevoie de usecase-uri reale.
func buildTestApp() *fiber.App {
	app := fiber.New()
	apihttp.Router(app, apihttp.RouterDeps{})
	return app
}

func checkFiscal(t *testing.T, app *fiber.App, path string) dto.FiscalCheckResponse {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.FiscalCheckResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestFiscalCheckCIF(t *testing.T) {
	app := buildTestApp()

	valid := checkFiscal(t, app, "/api/fiscal/cif/RO18547298")
	assert.True(t, valid.Valid)
	assert.Equal(t, "RO18547298", valid.Value)

	assert.False(t, checkFiscal(t, app, "/api/fiscal/cif/RO18547290").Valid)
	assert.False(t, checkFiscal(t, app, "/api/fiscal/cif/abc").Valid)
}

func TestFiscalCheckCNP(t *testing.T) {
	app := buildTestApp()

	assert.True(t, checkFiscal(t, app, "/api/fiscal/cnp/1800101221144").Valid)
	assert.False(t, checkFiscal(t, app, "/api/fiscal/cnp/1800101221145").Valid)
	assert.False(t, checkFiscal(t, app, "/api/fiscal/cnp/123").Valid)
}

func TestFiscalCheckIBAN(t *testing.T) {
	app := buildTestApp()

	assert.True(t, checkFiscal(t, app, "/api/fiscal/iban/RO49AAAA1B31007593840000").Valid)
	assert.False(t, checkFiscal(t, app, "/api/fiscal/iban/RO49AAAA1B31007593840001").Valid)
	assert.False(t, checkFiscal(t, app, "/api/fiscal/iban/DE44500105175407324931").Valid)
}
