package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/covered-news/covered/internal/prefs"
	"github.com/covered-news/covered/pkg/api"
	"github.com/covered-news/covered/pkg/auth"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	store, err := prefs.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	return New(Deps{
		Store:    store,
		Session:  prefs.NewSession(store, nil),
		API:      api.NewClient("http://127.0.0.1:1"),
		DeviceID: "test-device",
	})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func TestSplashRoutesToTutorialOnFirstRun(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	m, _ = update(t, m, splashDoneMsg{})
	if m.viewMode != tutorialView {
		t.Errorf("viewMode = %d, want tutorialView", m.viewMode)
	}
}

func TestSplashSkipsTutorialWhenCompleted(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	if err := m.deps.Store.SetBool(prefs.PartitionApp, prefs.KeyTutorialCompleted, true); err != nil {
		t.Fatal(err)
	}

	m, _ = update(t, m, splashDoneMsg{})
	if m.viewMode != loginView {
		t.Errorf("viewMode = %d, want loginView", m.viewMode)
	}
}

func TestTutorialFinishPersistsAndRoutes(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = tutorialView
	m.tutorialPage = len(tutorialPages) - 1

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.viewMode != loginView {
		t.Errorf("viewMode = %d, want loginView", m.viewMode)
	}
	if !m.deps.Store.Bool(prefs.PartitionApp, prefs.KeyTutorialCompleted) {
		t.Error("tutorial_completed was not persisted")
	}
}

func TestTutorialNavigationBounds(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = tutorialView

	m, _ = update(t, m, keyRunes("h"))
	if m.tutorialPage != 0 {
		t.Errorf("page = %d after left on first page, want 0", m.tutorialPage)
	}

	m.tutorialPage = len(tutorialPages) - 1
	m, _ = update(t, m, keyRunes("l"))
	if m.tutorialPage != len(tutorialPages)-1 {
		t.Errorf("page = %d after right on last page, want last", m.tutorialPage)
	}
}

func TestSkipLoginEntersGuestMode(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = loginView

	m, _ = update(t, m, keyRunes("s"))
	if m.viewMode != mainView {
		t.Errorf("viewMode = %d, want mainView", m.viewMode)
	}
	if !m.deps.Session.SkippedLogin() {
		t.Error("skipped_login was not persisted")
	}
	if got := m.deps.Session.UserName(); got != "Invitado" {
		t.Errorf("UserName() = %q, want Invitado", got)
	}
}

func TestSubmitRejectsEmptyInput(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = mainView

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.inFlight {
		t.Error("empty submit started a request")
	}
	if m.status != "Por favor ingresa un texto o enlace" {
		t.Errorf("status = %q", m.status)
	}
}

func TestSubmitStartsVerification(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = mainView
	m.input.SetValue("el gobierno anunció nuevas medidas")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.inFlight {
		t.Error("submit did not set inFlight")
	}
	if cmd == nil {
		t.Error("submit returned no command")
	}
	if m.lastTexto == "" || m.lastURL != "" {
		t.Errorf("payload texto=%q url=%q, want text-only", m.lastTexto, m.lastURL)
	}
}

func TestSubmitIgnoredWhileInFlight(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = mainView
	m.inFlight = true
	m.input.SetValue("otra consulta")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("second submit while in flight returned a command")
	}
	if !m.inFlight {
		t.Error("inFlight flag was dropped")
	}
}

func TestLinkModeRejectsMalformedLink(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = mainView
	m.linkMode = true
	m.input.SetValue("esto no es un enlace")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.inFlight {
		t.Error("malformed link started a request")
	}
	if m.inputError != "Formato de URL no válido" {
		t.Errorf("inputError = %q", m.inputError)
	}
}

func TestLinkModeNormalizesSchemelessLink(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = mainView
	m.linkMode = true
	m.input.SetValue("elpais.com/noticia")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.inFlight {
		t.Fatal("valid link did not start a request")
	}
	if m.lastURL != "https://elpais.com/noticia" {
		t.Errorf("lastURL = %q", m.lastURL)
	}
	if m.lastTexto != "" {
		t.Errorf("lastTexto = %q, want empty in link mode", m.lastTexto)
	}
}

func TestTextModeNeverAutoSwitchesOnURLShapedInput(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = mainView
	m.input.SetValue("https://example.com/articulo")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.inFlight {
		t.Fatal("submit did not start")
	}
	if m.lastURL != "" {
		t.Errorf("lastURL = %q, want empty: text mode sends text", m.lastURL)
	}
	if m.lastTexto != "https://example.com/articulo" {
		t.Errorf("lastTexto = %q", m.lastTexto)
	}
}

func TestToggleLinkModeClearsInputAndFeedback(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = mainView
	m.input.SetValue("texto a medio escribir")
	m.inputError = "Formato de URL no válido"
	m.suggestion = "Parece un enlace"

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if !m.linkMode {
		t.Error("toggle did not enter link mode")
	}
	if m.input.Value() != "" || m.inputError != "" || m.suggestion != "" {
		t.Errorf("toggle left state behind: value=%q err=%q sugg=%q",
			m.input.Value(), m.inputError, m.suggestion)
	}
}

func TestVerifyDoneReenablesScreenOnce(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = mainView
	m.inFlight = true

	result := &api.VerificationResult{
		Success:      true,
		Resultado:    "probablemente_falso",
		Razonamiento: "Las fuentes consultadas lo desmienten.",
	}
	m, _ = update(t, m, verifyDoneMsg{result: result})
	if m.inFlight {
		t.Error("inFlight still set after completion")
	}
	if m.reveal == nil {
		t.Fatal("no reveal started")
	}
	if m.display.Title != "⚠️ Noticia Falsa" {
		t.Errorf("display title = %q", m.display.Title)
	}
}

func TestVerifyDoneErrorShowsErrorCard(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = mainView
	m.inFlight = true

	m, _ = update(t, m, verifyDoneMsg{err: &api.NetworkError{URL: "http://x", Err: errDummy}})
	if m.inFlight {
		t.Error("inFlight still set after failure")
	}
	if m.display.Title != "❌ Error de Verificación" {
		t.Errorf("display title = %q", m.display.Title)
	}
	if m.status != "No se pudo conectar con el servidor" {
		t.Errorf("status = %q", m.status)
	}
}

func TestRevealTickFromReplacedRevealIsDropped(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = mainView
	m.inFlight = true

	m, _ = update(t, m, verifyDoneMsg{result: &api.VerificationResult{
		Success: true, Resultado: "verificado", Razonamiento: "primera",
	}})
	stale := m.reveal.Generation()

	m.inFlight = true
	m, _ = update(t, m, verifyDoneMsg{result: &api.VerificationResult{
		Success: true, Resultado: "mixto", Razonamiento: "segunda",
	}})

	before := m.reveal.Visible()
	m, cmd := update(t, m, revealTickMsg{generation: stale})
	if m.reveal.Visible() != before {
		t.Error("stale tick advanced the new reveal")
	}
	if cmd != nil {
		t.Error("stale tick scheduled a follow-up")
	}

	m, _ = update(t, m, revealTickMsg{generation: m.reveal.Generation()})
	if m.reveal.Visible() != "s" {
		t.Errorf("current tick revealed %q, want \"s\"", m.reveal.Visible())
	}
}

func TestDrawerOpensLoadingThenEmpty(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = mainView

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.drawer != drawerLoading {
		t.Errorf("drawer = %d, want loading", m.drawer)
	}
	if cmd == nil {
		t.Error("opening drawer returned no load command")
	}

	m, _ = update(t, m, historyDoneMsg{page: &api.HistoryPage{}})
	if m.drawer != drawerEmpty {
		t.Errorf("drawer = %d, want empty", m.drawer)
	}
	if !strings.Contains(m.View(), "No hay verificaciones") {
		t.Error("empty drawer does not render its placeholder")
	}
}

func TestDrawerErrorOffersRetry(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = mainView
	m.drawer = drawerLoading

	m, _ = update(t, m, historyDoneMsg{err: errDummy})
	if m.drawer != drawerError {
		t.Errorf("drawer = %d, want error", m.drawer)
	}
	if !strings.Contains(m.View(), "Error al cargar") {
		t.Error("error state does not render its message")
	}

	m, cmd := update(t, m, keyRunes("r"))
	if m.drawer != drawerLoading {
		t.Errorf("drawer = %d after retry, want loading", m.drawer)
	}
	if cmd == nil {
		t.Error("retry returned no command")
	}
}

func TestDrawerResultArrivingAfterCloseIsIgnored(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = mainView
	m.drawer = drawerClosed

	m, _ = update(t, m, historyDoneMsg{page: &api.HistoryPage{
		Consultas: []api.HistoryItem{{ID: 1, Texto: "algo"}},
	}})
	if m.drawer != drawerClosed {
		t.Errorf("drawer = %d, want still closed", m.drawer)
	}
}

func TestDrawerSelectionOpensDetail(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = mainView
	m.drawer = drawerReady
	m.drawerItems = []api.HistoryItem{
		{ID: 1, Texto: "primera", Resultado: "verificado"},
		{ID: 2, Texto: "segunda", Resultado: "mixto"},
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.detail == nil || m.detail.ID != 2 {
		t.Fatalf("detail = %+v, want item 2", m.detail)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.detail != nil {
		t.Error("esc did not close the detail dialog")
	}
}

func TestDarkModeTogglePersistsAndSwapsTheme(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = mainView

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if !m.deps.Store.Bool(prefs.PartitionApp, prefs.KeyDarkMode) {
		t.Error("dark_mode was not persisted")
	}
	if !m.styles.Theme.IsDark {
		t.Error("styles were not rebuilt for the dark theme")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if m.styles.Theme.IsDark {
		t.Error("second toggle did not restore the light theme")
	}
}

func TestStatusClearHonorsSequence(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = mainView
	m.setStatus("primero")
	stale := m.statusSeq
	m.setStatus("segundo")

	m, _ = update(t, m, statusClearMsg{seq: stale})
	if m.status != "segundo" {
		t.Errorf("stale clear wiped status: %q", m.status)
	}

	m, _ = update(t, m, statusClearMsg{seq: m.statusSeq})
	if m.status != "" {
		t.Errorf("status = %q, want cleared", m.status)
	}
}

func TestSignOutClearsLocalStateWithoutBlocking(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	store, err := prefs.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	authClient := auth.NewClient(server.URL)
	session := prefs.NewSession(store, authClient)
	user := &auth.User{Email: "ana@covered.news", DisplayName: "Ana", RefreshToken: "tok"}
	if err := session.SaveUser(user, "email"); err != nil {
		t.Fatal(err)
	}

	m := New(Deps{
		Store:    store,
		Session:  session,
		API:      api.NewClient("http://127.0.0.1:1"),
		Auth:     authClient,
		DeviceID: "test-device",
	})
	m.viewMode = mainView

	start := time.Now()
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	if elapsed := time.Since(start); elapsed > 250*time.Millisecond {
		t.Fatalf("Update blocked for %v; the revoke call must not run on the event loop", elapsed)
	}
	if cmd == nil {
		t.Error("sign-out returned no background command")
	}
	if m.viewMode != loginView {
		t.Errorf("viewMode = %d, want loginView", m.viewMode)
	}
	if session.LoggedIn() || session.HasProviderSession() {
		t.Error("local session state survived sign-out")
	}
}

func TestSignOutRevokeFailureSetsLoginStatus(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = loginView

	m, _ = update(t, m, signOutDoneMsg{err: errDummy})
	if m.loginStatus != "No se pudo cerrar la sesión por completo" {
		t.Errorf("loginStatus = %q", m.loginStatus)
	}

	m.loginStatus = ""
	m, _ = update(t, m, signOutDoneMsg{err: context.Canceled})
	if m.loginStatus != "" {
		t.Errorf("canceled revoke set loginStatus = %q", m.loginStatus)
	}
}

func TestOpeningDrawerArmsCancelableLoad(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.viewMode = mainView

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.cancelDrawer == nil {
		t.Fatal("opening the drawer did not arm a cancel func")
	}

	m, _ = update(t, m, historyDoneMsg{page: &api.HistoryPage{}})
	if m.cancelDrawer != nil {
		t.Error("cancel func not released after the load finished")
	}
}

func TestClosingDrawerCancelsInFlightLoad(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	m := newTestModel(t)
	m.deps.API = api.NewClient(server.URL)
	m.viewMode = mainView
	m.drawer = drawerLoading

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelDrawer = cancel
	load := m.loadDrawerCmd(ctx)

	done := make(chan tea.Msg, 1)
	go func() { done <- load() }()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.drawer != drawerClosed {
		t.Fatalf("drawer = %d, want closed", m.drawer)
	}
	if m.cancelDrawer != nil {
		t.Error("closing the drawer left the cancel func armed")
	}

	select {
	case msg := <-done:
		hd, ok := msg.(historyDoneMsg)
		if !ok {
			t.Fatalf("load returned %T, want historyDoneMsg", msg)
		}
		if hd.err == nil {
			t.Error("canceled load returned no error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("load did not return after the drawer closed")
	}
}

var errDummy = &api.APIError{StatusCode: 500, Message: "boom"}
