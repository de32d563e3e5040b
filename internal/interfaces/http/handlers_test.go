package http_test

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contact-crm/internal/application/usecase"
	"github.com/jhoicas/contact-crm/internal/infrastructure/pdf"
	"github.com/jhoicas/contact-crm/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/contact-crm/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp construye la aplicación completa sobre una base SQLite temporal y migrada.
func buildTestApp(t *testing.T) (*fiber.App, *sql.DB) {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "crm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m, err := sqlite.NewMigrator(db, nil)
	require.NoError(t, err)
	_, err = m.Up(ctx)
	require.NoError(t, err)

	metrics, err := apphttp.NewMetrics()
	require.NoError(t, err)

	tx := sqlite.NewTxRunner(db)
	app, err := apphttp.NewApp("contact-crm-test", apphttp.RouterDeps{
		CompanyUC:   usecase.NewCompanyUseCase(tx),
		ContactUC:   usecase.NewContactUseCase(tx, pdf.NewContactSheetGenerator()),
		NoteUC:      usecase.NewNoteUseCase(tx),
		ActivityUC:  usecase.NewActivityUseCase(tx),
		DashboardUC: usecase.NewDashboardUseCase(tx),
		Metrics:     metrics,
	})
	require.NoError(t, err)
	return app, db
}

func doRequest(t *testing.T, app *fiber.App, method, target string, form url.Values, htmx bool) *http.Response {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	}
	if htmx {
		req.Header.Set(apphttp.HeaderHXRequest, "true")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func get(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()
	return doRequest(t, app, http.MethodGet, target, nil, false)
}

func post(t *testing.T, app *fiber.App, target string, form url.Values) *http.Response {
	t.Helper()
	return doRequest(t, app, http.MethodPost, target, form, false)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func count(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func idOf(t *testing.T, db *sql.DB, query string, args ...any) string {
	t.Helper()
	var id string
	require.NoError(t, db.QueryRow(query, args...).Scan(&id))
	return id
}

func createCompany(t *testing.T, app *fiber.App, db *sql.DB, name string) string {
	t.Helper()
	resp := post(t, app, "/companies", url.Values{"name": {name}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	return idOf(t, db, "SELECT id FROM companies WHERE name = ?", name)
}

func createContact(t *testing.T, app *fiber.App, db *sql.DB, form url.Values) string {
	t.Helper()
	resp := post(t, app, "/contacts", form)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode, readBody(t, resp))
	return idOf(t, db, "SELECT id FROM contacts WHERE full_name = ?", form.Get("full_name"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Infraestructura
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth_OK(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := get(t, app, "/health")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, readBody(t, resp))
}

func TestVaryHeader_EnTodasLasRespuestas(t *testing.T) {
	app, _ := buildTestApp(t)
	for _, target := range []string{"/", "/contacts", "/companies", "/contacts/" + uuid.NewString()} {
		resp := get(t, app, target)
		assert.Contains(t, resp.Header.Get(fiber.HeaderVary), apphttp.HeaderHXRequest, target)
	}
}

func TestMetrics_ExponeContadores(t *testing.T) {
	app, _ := buildTestApp(t)
	_ = get(t, app, "/companies")
	resp := get(t, app, "/metrics")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, `route="/companies`)
}

func TestHome_Resumen(t *testing.T) {
	app, db := buildTestApp(t)
	createCompany(t, app, db, "Acme")
	id := createContact(t, app, db, url.Values{"full_name": {"Ann Lee"}})
	resp := doRequest(t, app, http.MethodPost, "/contacts/"+id+"/activities",
		url.Values{"type": {"call"}, "description": {"Kickoff call"}, "activity_date": {"2026-02-10"}}, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := readBody(t, get(t, app, "/"))
	assert.Contains(t, body, "1 companies")
	assert.Contains(t, body, "1 contacts")
	assert.Contains(t, body, "Kickoff call")
}

// ──────────────────────────────────────────────────────────────────────────────
// Companies
// ──────────────────────────────────────────────────────────────────────────────

func TestCompanyCreate_RedirigeAlListado(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := post(t, app, "/companies", url.Values{"name": {"  Zeta Corp  "}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/companies", resp.Header.Get(fiber.HeaderLocation))
	_ = post(t, app, "/companies", url.Values{"name": {"Acme"}})

	body := readBody(t, get(t, app, "/companies"))
	require.Contains(t, body, "Zeta Corp")
	assert.Less(t, strings.Index(body, "Acme"), strings.Index(body, "Zeta Corp"), "orden por nombre")
}

func TestCompanyCreate_NombreVacioReMuestraFormulario(t *testing.T) {
	app, db := buildTestApp(t)
	resp := post(t, app, "/companies", url.Values{"name": {"   "}})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Name is required")
	assert.Equal(t, 0, count(t, db, "companies"))
}

func TestCompanyCreate_DuplicadoSinDistinguirMayusculas(t *testing.T) {
	app, db := buildTestApp(t)
	createCompany(t, app, db, "Acme")
	resp := post(t, app, "/companies", url.Values{"name": {"ACME"}})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, usecase.MsgDuplicateCompany)
	assert.Contains(t, body, `value="ACME"`)
	assert.Equal(t, 1, count(t, db, "companies"))
}

func TestCompanyUpdate_CambiaNombre(t *testing.T) {
	app, db := buildTestApp(t)
	id := createCompany(t, app, db, "Acme")

	body := readBody(t, get(t, app, "/companies/"+id+"/edit"))
	assert.Contains(t, body, `value="Acme"`)

	resp := post(t, app, "/companies/"+id, url.Values{"name": {"Acme Ltd"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "Acme Ltd", idOf(t, db, "SELECT name FROM companies WHERE id = ?", id))
}

func TestCompany_IDInexistenteOMalFormadoDevuelve404(t *testing.T) {
	app, _ := buildTestApp(t)
	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		assert.Equal(t, fiber.StatusNotFound, get(t, app, "/companies/"+id).StatusCode)
		assert.Equal(t, fiber.StatusNotFound, get(t, app, "/companies/"+id+"/edit").StatusCode)
		assert.Equal(t, fiber.StatusNotFound, post(t, app, "/companies/"+id, url.Values{"name": {""}}).StatusCode)
		assert.Equal(t, fiber.StatusNotFound, post(t, app, "/companies/"+id+"/delete", url.Values{}).StatusCode)
	}
}

func TestCompanyDelete_AnulaReferenciaYConservaTexto(t *testing.T) {
	app, db := buildTestApp(t)
	companyID := createCompany(t, app, db, "Acme")
	contactID := createContact(t, app, db, url.Values{"full_name": {"Ann Lee"}, "company_id": {companyID}})

	resp := post(t, app, "/companies/"+companyID+"/delete", url.Values{})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/companies", resp.Header.Get(fiber.HeaderLocation))

	var ref sql.NullString
	var text string
	require.NoError(t, db.QueryRow("SELECT company_id, company FROM contacts WHERE id = ?", contactID).Scan(&ref, &text))
	assert.False(t, ref.Valid)
	assert.Equal(t, "Acme", text)

	body := readBody(t, get(t, app, "/contacts/"+contactID))
	assert.Contains(t, body, "Acme")
}

func TestCompanyShow_ListaContactosEnlazados(t *testing.T) {
	app, db := buildTestApp(t)
	companyID := createCompany(t, app, db, "Acme")
	createContact(t, app, db, url.Values{"full_name": {"Ann Lee"}, "company_id": {companyID}})
	createContact(t, app, db, url.Values{"full_name": {"Bob Roe"}})

	body := readBody(t, get(t, app, "/companies/"+companyID))
	assert.Contains(t, body, "Ann Lee")
	assert.NotContains(t, body, "Bob Roe")
}

// ──────────────────────────────────────────────────────────────────────────────
// Contacts
// ──────────────────────────────────────────────────────────────────────────────

func TestContactCreate_NombreVacioNoPersiste(t *testing.T) {
	app, db := buildTestApp(t)
	resp := post(t, app, "/contacts", url.Values{"full_name": {"   "}, "email": {"ann@example.com"}})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Full name is required")
	assert.Contains(t, body, `value="ann@example.com"`)
	assert.Equal(t, 0, count(t, db, "contacts"))
}

func TestContactCreate_EmailInvalidoYEmailVacio(t *testing.T) {
	app, db := buildTestApp(t)
	resp := post(t, app, "/contacts", url.Values{"full_name": {"Ann Lee"}, "email": {"not-an-email"}})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Email address is invalid")
	assert.Equal(t, 0, count(t, db, "contacts"))

	resp = post(t, app, "/contacts", url.Values{"full_name": {"Ann Lee"}, "email": {"  "}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/contacts", resp.Header.Get(fiber.HeaderLocation))
	assert.Equal(t, 1, count(t, db, "contacts"))
}

func TestContactCreate_CampoDesconocidoRechazado(t *testing.T) {
	app, db := buildTestApp(t)
	resp := post(t, app, "/contacts", url.Values{"full_name": {"Ann Lee"}, "nickname": {"annie"}})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Unknown field: nickname")
	assert.Equal(t, 0, count(t, db, "contacts"))
}

func TestContactCreate_EmpresaPorTextoSinDistinguirMayusculas(t *testing.T) {
	app, db := buildTestApp(t)
	a := createContact(t, app, db, url.Values{"full_name": {"Ann Lee"}, "company": {"Acme"}})
	b := createContact(t, app, db, url.Values{"full_name": {"Bob Roe"}, "company": {"ACME"}})

	assert.Equal(t, 1, count(t, db, "companies"))
	refA := idOf(t, db, "SELECT company_id FROM contacts WHERE id = ?", a)
	refB := idOf(t, db, "SELECT company_id FROM contacts WHERE id = ?", b)
	assert.Equal(t, refA, refB)
	assert.Equal(t, "Acme", idOf(t, db, "SELECT company FROM contacts WHERE id = ?", b))
}

func TestContactCreate_CompanyIDInvalido(t *testing.T) {
	app, db := buildTestApp(t)
	for _, ref := range []string{uuid.NewString(), "garbage"} {
		resp := post(t, app, "/contacts", url.Values{"full_name": {"Ann Lee"}, "company_id": {ref}})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "Selected company is invalid")
	}
	assert.Equal(t, 0, count(t, db, "contacts"))
	assert.Equal(t, 0, count(t, db, "companies"))
}

func TestContactCreate_TextoTienePrecedenciaSobreSelector(t *testing.T) {
	app, db := buildTestApp(t)
	acme := createCompany(t, app, db, "Acme")
	id := createContact(t, app, db, url.Values{"full_name": {"Ann Lee"}, "company": {"Globex"}, "company_id": {acme}})

	globex := idOf(t, db, "SELECT id FROM companies WHERE name = ?", "Globex")
	assert.Equal(t, globex, idOf(t, db, "SELECT company_id FROM contacts WHERE id = ?", id))
}

func TestContactSearch_FragmentoHTMX(t *testing.T) {
	app, db := buildTestApp(t)
	createContact(t, app, db, url.Values{"full_name": {"Ann Lee"}, "phone": {"555-0100"}})
	createContact(t, app, db, url.Values{"full_name": {"Annabel Roe"}})
	createContact(t, app, db, url.Values{"full_name": {"Bob Smith"}, "phone": {"555-0199"}})

	resp := doRequest(t, app, http.MethodGet, "/contacts?q=ANN&has_phone=1", nil, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.True(t, strings.HasPrefix(body, `<tbody id="contact-results">`), body)
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, "Ann Lee")
	assert.NotContains(t, body, "Annabel Roe")
	assert.NotContains(t, body, "Bob Smith")

	page := readBody(t, get(t, app, "/contacts?q=ann"))
	assert.Contains(t, page, "<html")
	assert.Contains(t, page, "Ann Lee")
	assert.Contains(t, page, "Annabel Roe")
	assert.NotContains(t, page, "Bob Smith")
}

func TestContactRoundTrip_EditarSinCambios(t *testing.T) {
	app, db := buildTestApp(t)
	id := createContact(t, app, db, url.Values{
		"full_name": {"Ann Lee"},
		"email":     {"ann@example.com"},
		"phone":     {"555-0100"},
		"company":   {"Acme"},
	})
	companyID := idOf(t, db, "SELECT id FROM companies WHERE name = ?", "Acme")

	edit := readBody(t, get(t, app, "/contacts/"+id+"/edit"))
	assert.Contains(t, edit, `value="Ann Lee"`)
	assert.Contains(t, edit, `value="`+companyID+`" selected`)

	// Mismos valores que envía el formulario precargado.
	resp := post(t, app, "/contacts/"+id, url.Values{
		"full_name":  {"Ann Lee"},
		"email":      {"ann@example.com"},
		"phone":      {"555-0100"},
		"company":    {""},
		"company_id": {companyID},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/contacts", resp.Header.Get(fiber.HeaderLocation))

	var name, email, phone, company, ref string
	require.NoError(t, db.QueryRow(
		"SELECT full_name, email, phone, company, company_id FROM contacts WHERE id = ?", id,
	).Scan(&name, &email, &phone, &company, &ref))
	assert.Equal(t, "Ann Lee", name)
	assert.Equal(t, "ann@example.com", email)
	assert.Equal(t, "555-0100", phone)
	assert.Equal(t, "Acme", company)
	assert.Equal(t, companyID, ref)
	assert.Equal(t, 1, count(t, db, "companies"))
}

func TestContactUpdate_RechazoMuestraHistorial(t *testing.T) {
	app, db := buildTestApp(t)
	id := createContact(t, app, db, url.Values{"full_name": {"Ann Lee"}})
	resp := doRequest(t, app, http.MethodPost, "/contacts/"+id+"/notes", url.Values{"content": {"Met at expo"}}, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = post(t, app, "/contacts/"+id, url.Values{"full_name": {""}})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Full name is required")
	assert.Contains(t, body, "Met at expo")
	assert.Equal(t, "Ann Lee", idOf(t, db, "SELECT full_name FROM contacts WHERE id = ?", id))
}

func TestContact_IDInexistenteDevuelve404(t *testing.T) {
	app, _ := buildTestApp(t)
	id := uuid.NewString()
	assert.Equal(t, fiber.StatusNotFound, get(t, app, "/contacts/"+id).StatusCode)
	assert.Equal(t, fiber.StatusNotFound, get(t, app, "/contacts/"+id+"/edit").StatusCode)
	assert.Equal(t, fiber.StatusNotFound, get(t, app, "/contacts/"+id+"/export.pdf").StatusCode)
	assert.Equal(t, fiber.StatusNotFound, post(t, app, "/contacts/"+id, url.Values{"full_name": {"X"}}).StatusCode)
	assert.Equal(t, fiber.StatusNotFound, post(t, app, "/contacts/"+id+"/delete", url.Values{}).StatusCode)
}

func TestContactDelete_CascadaYRespuestas(t *testing.T) {
	app, db := buildTestApp(t)
	id := createContact(t, app, db, url.Values{"full_name": {"Ann Lee"}})
	for _, content := range []string{"one", "two"} {
		resp := doRequest(t, app, http.MethodPost, "/contacts/"+id+"/notes", url.Values{"content": {content}}, true)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	resp := doRequest(t, app, http.MethodPost, "/contacts/"+id+"/activities",
		url.Values{"type": {"meeting"}, "description": {"Demo"}, "activity_date": {"2026-02-10 15:30"}}, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 2, count(t, db, "notes"))
	require.Equal(t, 1, count(t, db, "activities"))

	resp = doRequest(t, app, http.MethodPost, "/contacts/"+id+"/delete", url.Values{}, true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, readBody(t, resp))
	assert.Equal(t, 0, count(t, db, "contacts"))
	assert.Equal(t, 0, count(t, db, "notes"))
	assert.Equal(t, 0, count(t, db, "activities"))

	other := createContact(t, app, db, url.Values{"full_name": {"Bob Roe"}})
	resp = post(t, app, "/contacts/"+other+"/delete", url.Values{})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/contacts", resp.Header.Get(fiber.HeaderLocation))
}

func TestContactExportPDF(t *testing.T) {
	app, db := buildTestApp(t)
	id := createContact(t, app, db, url.Values{"full_name": {"Ann Lee"}, "email": {"ann@example.com"}})
	resp := get(t, app, "/contacts/"+id+"/export.pdf")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "contact-"+id+".pdf")
	assert.True(t, strings.HasPrefix(readBody(t, resp), "%PDF"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Notes y activities
// ──────────────────────────────────────────────────────────────────────────────

func TestNoteCreate_FragmentoYRechazo(t *testing.T) {
	app, db := buildTestApp(t)
	id := createContact(t, app, db, url.Values{"full_name": {"Ann Lee"}})

	resp := doRequest(t, app, http.MethodPost, "/contacts/"+id+"/notes", url.Values{"content": {"Prefers email"}}, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(apphttp.HeaderHXRetarget))
	body := readBody(t, resp)
	assert.True(t, strings.HasPrefix(body, `<li id="note-`), body)
	assert.Contains(t, body, "Prefers email")

	resp = doRequest(t, app, http.MethodPost, "/contacts/"+id+"/notes", url.Values{"content": {"   "}}, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "#note-form", resp.Header.Get(apphttp.HeaderHXRetarget))
	assert.Equal(t, "outerHTML", resp.Header.Get(apphttp.HeaderHXReswap))
	body = readBody(t, resp)
	assert.Contains(t, body, `id="note-form"`)
	assert.Contains(t, body, "Content is required")
	assert.Equal(t, 1, count(t, db, "notes"))
}

func TestNoteCreate_SinHTMXRedirigeALaFicha(t *testing.T) {
	app, db := buildTestApp(t)
	id := createContact(t, app, db, url.Values{"full_name": {"Ann Lee"}})
	resp := post(t, app, "/contacts/"+id+"/notes", url.Values{"content": {"Follow up"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/contacts/"+id, resp.Header.Get(fiber.HeaderLocation))
}

func TestNoteCreate_ContactoInexistente404(t *testing.T) {
	app, db := buildTestApp(t)
	resp := doRequest(t, app, http.MethodPost, "/contacts/"+uuid.NewString()+"/notes", url.Values{"content": {""}}, true)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(apphttp.HeaderHXRetarget))
	assert.Equal(t, 0, count(t, db, "notes"))
}

func TestNoteDelete_VacioY404(t *testing.T) {
	app, db := buildTestApp(t)
	id := createContact(t, app, db, url.Values{"full_name": {"Ann Lee"}})
	resp := doRequest(t, app, http.MethodPost, "/contacts/"+id+"/notes", url.Values{"content": {"Temp"}}, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	noteID := idOf(t, db, "SELECT id FROM notes")

	resp = doRequest(t, app, http.MethodPost, "/notes/"+noteID+"/delete", url.Values{}, true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, readBody(t, resp))
	assert.Equal(t, 0, count(t, db, "notes"))

	resp = doRequest(t, app, http.MethodPost, "/notes/"+noteID+"/delete", url.Values{}, true)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestActivityCreate_FormatosDeFecha(t *testing.T) {
	app, db := buildTestApp(t)
	id := createContact(t, app, db, url.Values{"full_name": {"Ann Lee"}})

	resp := doRequest(t, app, http.MethodPost, "/contacts/"+id+"/activities",
		url.Values{"type": {"call"}, "description": {"Intro"}, "activity_date": {"2026-02-10"}}, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.True(t, strings.HasPrefix(body, `<li id="activity-`), body)
	assert.Contains(t, body, "2026-02-10 00:00")

	resp = doRequest(t, app, http.MethodPost, "/contacts/"+id+"/activities",
		url.Values{"type": {"call"}, "description": {"Intro"}, "activity_date": {"2026/02/10"}}, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "#activity-form", resp.Header.Get(apphttp.HeaderHXRetarget))
	assert.Equal(t, "outerHTML", resp.Header.Get(apphttp.HeaderHXReswap))
	body = readBody(t, resp)
	assert.Contains(t, body, "Activity date must use")
	assert.Contains(t, body, `value="2026/02/10"`)
	assert.Equal(t, 1, count(t, db, "activities"))
}

func TestActivityCreate_TipoFueraDeLista(t *testing.T) {
	app, db := buildTestApp(t)
	id := createContact(t, app, db, url.Values{"full_name": {"Ann Lee"}})
	resp := doRequest(t, app, http.MethodPost, "/contacts/"+id+"/activities",
		url.Values{"type": {"CALL"}, "description": {"Intro"}, "activity_date": {"2026-02-10T09:00"}}, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Type must be one of: call, email, meeting, task")
	assert.Equal(t, 0, count(t, db, "activities"))
}

func TestActivityDelete_VacioY404(t *testing.T) {
	app, db := buildTestApp(t)
	id := createContact(t, app, db, url.Values{"full_name": {"Ann Lee"}})
	resp := doRequest(t, app, http.MethodPost, "/contacts/"+id+"/activities",
		url.Values{"type": {"task"}, "description": {"Send deck"}, "activity_date": {"2026-02-11T10:00"}}, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	activityID := idOf(t, db, "SELECT id FROM activities")

	resp = doRequest(t, app, http.MethodPost, "/activities/"+activityID+"/delete", url.Values{}, true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, readBody(t, resp))

	resp = doRequest(t, app, http.MethodPost, "/activities/"+activityID+"/delete", url.Values{}, true)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
