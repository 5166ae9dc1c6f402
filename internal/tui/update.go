package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/covered-news/covered/internal/prefs"
	"github.com/covered-news/covered/internal/utils"
	"github.com/covered-news/covered/pkg/api"
	"github.com/covered-news/covered/pkg/auth"
	"github.com/covered-news/covered/pkg/classify"
	"github.com/covered-news/covered/pkg/verdict"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if msg.Width > 4 {
			m.input.SetWidth(msg.Width - 4)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.teardownInFlight()
			return m, tea.Quit
		}
		switch m.viewMode {
		case tutorialView:
			return m.updateTutorialKeys(msg)
		case loginView:
			return m.updateLoginKeys(msg)
		case mainView:
			return m.updateMainKeys(msg)
		}
		// Splash ignores keys; it routes on its timer.
		return m, nil

	case splashDoneMsg:
		if m.viewMode == splashView {
			m.routeAfterSplash()
		}
		return m, nil

	case spinner.TickMsg:
		if m.inFlight || m.loginBusy || m.drawer == drawerLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case verifyDoneMsg:
		return m.handleVerifyDone(msg)

	case historyDoneMsg:
		return m.handleHistoryDone(msg)

	case previewDoneMsg:
		if msg.preview != nil && (msg.preview.Title != "" || msg.preview.Description != "") {
			m.preview = msg.preview
		}
		return m, nil

	case revealTickMsg:
		if m.reveal == nil || msg.generation != m.reveal.Generation() {
			// Tick from a replaced reveal; drop it.
			return m, nil
		}
		if m.reveal.Advance() {
			return m, m.revealTickCmd()
		}
		return m, nil

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case deviceLoginMsg:
		if msg.err != nil {
			m.loginBusy = false
			m.loginStatus = auth.Message(msg.err)
			return m, nil
		}
		m.deviceLogin = msg.login
		if m.cancelInFlight != nil {
			m.cancelInFlight()
		}
		ctx, cancel := context.WithCancel(context.Background())
		m.cancelInFlight = cancel
		return m, m.pollGoogleLoginCmd(ctx, msg.login)

	case loginDoneMsg:
		return m.handleLoginDone(msg)

	case signOutDoneMsg:
		m.cancelInFlight = nil
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			utils.Log.Debug("session revoke failed: ", msg.err)
			m.loginStatus = "No se pudo cerrar la sesión por completo"
		}
		return m, nil
	}

	return m, nil
}

// ---- tutorial ----

func (m Model) updateTutorialKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := len(tutorialPages) - 1

	switch msg.String() {
	case "right", "l", "n":
		if m.tutorialPage < last {
			m.tutorialPage++
		}
	case "left", "h", "p":
		if m.tutorialPage > 0 {
			m.tutorialPage--
		}
	case "enter":
		if m.tutorialPage == last {
			return m.finishTutorial()
		}
		m.tutorialPage++
	case "f":
		if m.tutorialPage == last {
			return m.finishTutorial()
		}
	case "s", "esc":
		return m.finishTutorial()
	}
	return m, nil
}

func (m Model) finishTutorial() (tea.Model, tea.Cmd) {
	if err := m.deps.Store.SetBool(prefs.PartitionApp, prefs.KeyTutorialCompleted, true); err != nil {
		m.setStatus("No se pudo guardar el progreso del tutorial")
	}
	m.routeAfterTutorial()
	return m, nil
}

// ---- login ----

func (m Model) updateLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.emailDialog {
		return m.updateEmailDialogKeys(msg)
	}

	switch msg.String() {
	case "g":
		if m.loginBusy {
			return m, nil
		}
		m.loginBusy = true
		m.loginStatus = ""
		ctx, cancel := context.WithCancel(context.Background())
		m.cancelInFlight = cancel
		return m, tea.Batch(m.startGoogleLoginCmd(ctx), m.spinner.Tick)
	case "e":
		if m.loginBusy {
			return m, nil
		}
		m.emailDialog = true
		m.emailMode = emailSignIn
		m.loginStatus = ""
		m.emailInput.Focus()
		m.passwordInput.Blur()
		return m, nil
	case "s":
		if err := m.deps.Session.SkipLogin(); err != nil {
			m.loginStatus = "No se pudo guardar la preferencia"
			return m, nil
		}
		m.teardownInFlight()
		m.setStatus("Modo invitado activado")
		m.viewMode = mainView
		return m, m.clearStatusCmd(m.statusSeq)
	}
	return m, nil
}

func (m Model) updateEmailDialogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.emailDialog = false
		m.clearEmailInputs()
		return m, nil

	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		if m.emailInput.Focused() {
			m.emailInput.Blur()
			m.passwordInput.Focus()
		} else {
			m.passwordInput.Blur()
			m.emailInput.Focus()
		}
		return m, nil

	case tea.KeyCtrlR:
		// Toggle sign-in / sign-up, clearing both fields and any error.
		if m.emailMode == emailSignIn {
			m.emailMode = emailRegister
		} else {
			m.emailMode = emailSignIn
		}
		m.clearEmailInputs()
		return m, nil

	case tea.KeyEnter:
		if m.loginBusy {
			return m, nil
		}
		email := strings.TrimSpace(m.emailInput.Value())
		password := strings.TrimSpace(m.passwordInput.Value())
		if err := auth.ValidateCredentials(email, password); err != nil {
			m.loginStatus = err.Error()
			return m, nil
		}
		m.loginBusy = true
		m.loginStatus = ""
		ctx, cancel := context.WithCancel(context.Background())
		m.cancelInFlight = cancel
		return m, tea.Batch(m.emailAuthCmd(ctx, email, password, m.emailMode == emailRegister), m.spinner.Tick)
	}

	var cmd tea.Cmd
	if m.emailInput.Focused() {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) clearEmailInputs() {
	m.emailInput.Reset()
	m.passwordInput.Reset()
	m.loginStatus = ""
}

func (m Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.loginBusy = false
	m.deviceLogin = nil
	m.cancelInFlight = nil

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return m, nil
		}
		m.loginStatus = auth.Message(msg.err)
		return m, nil
	}

	if err := m.deps.Session.SaveUser(msg.user, msg.method); err != nil {
		m.loginStatus = "No se pudo guardar la sesión"
		return m, nil
	}

	m.emailDialog = false
	m.clearEmailInputs()
	m.setStatus("¡Bienvenido " + m.deps.Session.UserName() + "!")
	m.viewMode = mainView
	return m, m.clearStatusCmd(m.statusSeq)
}

// ---- main screen ----

func (m Model) updateMainKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detail != nil {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.detail = nil
		}
		return m, nil
	}

	if m.drawer != drawerClosed {
		return m.updateDrawerKeys(msg)
	}

	switch msg.String() {
	case "tab":
		// The drawer reloads the 5 most recent entries every time it opens.
		m.drawer = drawerLoading
		m.drawerCursor = 0
		return m, tea.Batch(m.startDrawerLoad(), m.spinner.Tick)

	case "ctrl+l":
		return m.toggleLinkMode()

	case "ctrl+d":
		return m.toggleDarkMode()

	case "ctrl+o":
		return m.signOut()

	case "enter":
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.validateInput()
	return m, cmd
}

func (m Model) updateDrawerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "esc", "q":
		m.cancelDrawerLoad()
		m.drawer = drawerClosed
		return m, nil
	case "up", "k":
		if m.drawerCursor > 0 {
			m.drawerCursor--
		}
		return m, nil
	case "down", "j":
		if m.drawerCursor < len(m.drawerItems)-1 {
			m.drawerCursor++
		}
		return m, nil
	case "enter":
		if m.drawer == drawerReady && m.drawerCursor < len(m.drawerItems) {
			item := m.drawerItems[m.drawerCursor]
			m.detail = &item
		}
		return m, nil
	case "r":
		if m.drawer == drawerError || m.drawer == drawerEmpty {
			m.drawer = drawerLoading
			return m, tea.Batch(m.startDrawerLoad(), m.spinner.Tick)
		}
		return m, nil
	}
	return m, nil
}

// toggleLinkMode flips between text and link submission. Flipping always
// clears the input, its validation error and any pending suggestion.
func (m Model) toggleLinkMode() (tea.Model, tea.Cmd) {
	m.linkMode = !m.linkMode
	m.input.Reset()
	m.inputError = ""
	m.suggestion = ""
	if m.linkMode {
		m.input.Placeholder = "Pega el link aquí..."
	} else {
		m.input.Placeholder = "Verifica con Covered..."
	}
	return m, nil
}

func (m Model) toggleDarkMode() (tea.Model, tea.Cmd) {
	dark := !m.deps.Store.Bool(prefs.PartitionApp, prefs.KeyDarkMode)
	if err := m.deps.Store.SetBool(prefs.PartitionApp, prefs.KeyDarkMode, dark); err != nil {
		m.setStatus("No se pudo guardar la preferencia")
		return m, m.clearStatusCmd(m.statusSeq)
	}
	m.styles = NewStyles(ThemeFor(dark))
	m.spinner.Style = m.styles.Prompt
	return m, nil
}

// signOut clears local session state on the spot; revoking the provider token
// is a network call, so it runs as a command and reports back through
// signOutDoneMsg.
func (m Model) signOut() (tea.Model, tea.Cmd) {
	m.teardownInFlight()

	token, err := m.deps.Session.SignOutLocal()
	if err != nil {
		m.setStatus("No se pudo cerrar la sesión por completo")
		return m, m.clearStatusCmd(m.statusSeq)
	}

	m.setStatus("Sesión cerrada")
	m.viewMode = loginView
	m.loginStatus = ""

	cmds := []tea.Cmd{m.clearStatusCmd(m.statusSeq)}
	if token != "" && m.deps.Auth != nil {
		ctx, cancel := context.WithCancel(context.Background())
		m.cancelInFlight = cancel
		cmds = append(cmds, m.revokeSessionCmd(ctx, token))
	}
	return m, tea.Batch(cmds...)
}

// validateInput runs the live feedback shown under the input field: a format
// error in link mode, a switch-modes suggestion in text mode.
func (m *Model) validateInput() {
	text := strings.TrimSpace(m.input.Value())

	if m.linkMode {
		m.suggestion = ""
		if text != "" && !classify.IsValidLink(text) {
			m.inputError = "Formato de URL no válido"
		} else {
			m.inputError = ""
		}
		return
	}

	m.inputError = ""
	if classify.IsURLShaped(text) {
		m.suggestion = "Parece un enlace: ctrl+l para verificarlo como URL"
	} else {
		m.suggestion = ""
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		m.setStatus("Por favor ingresa un texto o enlace")
		return m, m.clearStatusCmd(m.statusSeq)
	}
	if m.inFlight {
		return m, nil
	}

	req := api.VerificationRequest{
		UsuarioID:     m.usuarioID(),
		DispositivoID: m.deps.DeviceID,
	}

	ctx, cancel := context.WithCancel(context.Background())
	var cmds []tea.Cmd

	if m.linkMode {
		link, err := classify.NormalizeLink(text)
		if err != nil {
			cancel()
			m.inputError = "Formato de URL no válido"
			return m, nil
		}
		req.URL = link
		cmds = append(cmds, m.previewCmd(ctx, link))
	} else {
		req.Texto = text
		// URL-shaped text still goes out as text; the submission kind is
		// chosen by the toggle, never by auto-detection.
	}

	m.inFlight = true
	m.cancelInFlight = cancel
	m.lastTexto = req.Texto
	m.lastURL = req.URL
	m.preview = nil
	m.result = nil
	m.reveal = nil
	m.inputError = ""

	cmds = append(cmds, m.verifyCmd(ctx, req), m.spinner.Tick)
	return m, tea.Batch(cmds...)
}

func (m Model) handleVerifyDone(msg verifyDoneMsg) (tea.Model, tea.Cmd) {
	// Failure or success, the screen comes back to an interactive state
	// exactly once: spinner gone, submit enabled.
	m.inFlight = false
	m.cancelInFlight = nil

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return m, nil
		}
		m.showErrorResult()
		m.setStatus(verifyErrorMessage(msg.err))
		return m, m.clearStatusCmd(m.statusSeq)
	}

	result := msg.result
	if !result.Success {
		m.showErrorResult()
		return m, nil
	}

	m.result = result
	m.display = verdict.Present(verdict.Code(result.Resultado))

	rationale := result.Razonamiento
	if rationale == "" {
		rationale = "No se pudo generar un análisis detallado."
	}
	m.reveal = verdict.NewReveal(rationale, m.reveal)
	m.input.Reset()
	m.suggestion = ""

	return m, tea.Batch(
		m.revealTickCmd(),
		m.journalCmd(m.lastTexto, m.lastURL, result),
	)
}

func (m *Model) showErrorResult() {
	m.result = nil
	m.display = verdict.Display{
		Title:  "❌ Error de Verificación",
		Status: "Error",
		Color:  "#DC3545",
	}
	m.reveal = verdict.NewReveal("No se pudo completar la verificación. Intenta nuevamente.", m.reveal)
	m.reveal.Skip()
}

// startDrawerLoad arms a cancelable context for the history fetch so closing
// the drawer, or quitting, aborts the request instead of letting it run out
// its timeout.
func (m *Model) startDrawerLoad() tea.Cmd {
	m.cancelDrawerLoad()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelDrawer = cancel
	return m.loadDrawerCmd(ctx)
}

func (m Model) handleHistoryDone(msg historyDoneMsg) (tea.Model, tea.Cmd) {
	m.cancelDrawerLoad()
	if m.drawer == drawerClosed {
		// The drawer was closed while the load was in flight.
		return m, nil
	}
	if msg.err != nil {
		m.drawer = drawerError
		return m, nil
	}
	if len(msg.page.Consultas) == 0 {
		m.drawer = drawerEmpty
		m.drawerItems = nil
		return m, nil
	}
	m.drawer = drawerReady
	m.drawerItems = msg.page.Consultas
	if m.drawerCursor >= len(m.drawerItems) {
		m.drawerCursor = 0
	}
	return m, nil
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusSeq++
}

// verifyErrorMessage converts a client error into the transient message shown
// to the user.
func verifyErrorMessage(err error) string {
	var netErr *api.NetworkError
	var decErr *api.DecodeError
	var apiErr *api.APIError

	switch {
	case errors.As(err, &netErr):
		return "No se pudo conectar con el servidor"
	case errors.As(err, &decErr):
		return "Respuesta inválida del servidor"
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return "Error: " + apiErr.Message
		}
		return "Error del servidor"
	default:
		return "Error: " + err.Error()
	}
}
