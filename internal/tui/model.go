// Package tui is the interactive terminal application: splash, tutorial,
// login and the main verification screen with its history drawer.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/covered-news/covered/internal/prefs"
	"github.com/covered-news/covered/pkg/api"
	"github.com/covered-news/covered/pkg/auth"
	"github.com/covered-news/covered/pkg/preview"
	"github.com/covered-news/covered/pkg/storage"
	"github.com/covered-news/covered/pkg/verdict"
)

const splashDelay = 2 * time.Second

type viewMode int

const (
	splashView viewMode = iota
	tutorialView
	loginView
	mainView
)

// drawerState tracks the lazily loaded history panel.
type drawerState int

const (
	drawerClosed drawerState = iota
	drawerLoading
	drawerReady
	drawerEmpty
	drawerError
)

// emailDialogMode toggles the email modal between its two modes.
type emailDialogMode int

const (
	emailSignIn emailDialogMode = iota
	emailRegister
)

// Deps is everything the screens need, constructed once at startup and passed
// by reference.
type Deps struct {
	Store      *prefs.Store
	Session    *prefs.Session
	API        *api.Client
	Auth       *auth.Client
	Journal    *storage.DB // may be nil: journaling is best-effort
	DeviceID   string
	TOTPSecret string
}

type Model struct {
	deps   Deps
	styles Styles

	viewMode viewMode
	width    int
	height   int

	// Tutorial
	tutorialPage int

	// Login
	emailDialog   bool
	emailMode     emailDialogMode
	emailInput    textinput.Model
	passwordInput textinput.Model
	loginBusy     bool
	loginStatus   string
	deviceLogin   *auth.DeviceLogin

	// Main screen
	input      textarea.Model
	spinner    spinner.Model
	linkMode   bool
	inputError string
	suggestion string
	status     string
	statusSeq  int

	// One in-flight verification at a time. The flag is only touched inside
	// Update, which bubbletea runs on a single goroutine, so check-and-set
	// here is atomic.
	inFlight       bool
	cancelInFlight context.CancelFunc
	lastTexto      string
	lastURL        string

	result  *api.VerificationResult
	display verdict.Display
	reveal  *verdict.Reveal
	preview *preview.Preview

	// Drawer
	drawer       drawerState
	drawerItems  []api.HistoryItem
	drawerCursor int
	cancelDrawer context.CancelFunc
	detail       *api.HistoryItem
}

func New(deps Deps) Model {
	theme := ThemeFor(deps.Store.Bool(prefs.PartitionApp, prefs.KeyDarkMode))
	styles := NewStyles(theme)

	input := textarea.New()
	input.Placeholder = "Verifica con Covered..."
	input.ShowLineNumbers = false
	input.SetHeight(3)
	input.Focus()

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 120

	password := textinput.New()
	password.Placeholder = "Contraseña"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Prompt

	return Model{
		deps:          deps,
		styles:        styles,
		viewMode:      splashView,
		input:         input,
		emailInput:    email,
		passwordInput: password,
		spinner:       sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		tea.Tick(splashDelay, func(time.Time) tea.Msg { return splashDoneMsg{} }),
	)
}

// routeAfterSplash applies the persisted gates: tutorial first, then the
// login gates in order (skipped-login flag, logged-in flag, provider session).
func (m *Model) routeAfterSplash() {
	if !m.deps.Store.Bool(prefs.PartitionApp, prefs.KeyTutorialCompleted) {
		m.viewMode = tutorialView
		return
	}
	m.routeAfterTutorial()
}

func (m *Model) routeAfterTutorial() {
	if m.deps.Session.ShouldShowLogin() {
		m.viewMode = loginView
		return
	}
	m.viewMode = mainView
}

// teardownInFlight cancels outstanding work when a screen goes away.
func (m *Model) teardownInFlight() {
	if m.cancelInFlight != nil {
		m.cancelInFlight()
		m.cancelInFlight = nil
	}
	m.inFlight = false
	m.cancelDrawerLoad()
}

// cancelDrawerLoad aborts an in-flight drawer history fetch, if any.
func (m *Model) cancelDrawerLoad() {
	if m.cancelDrawer != nil {
		m.cancelDrawer()
		m.cancelDrawer = nil
	}
}

// usuarioID is the identifier sent with every verification request.
func (m Model) usuarioID() string {
	if email := m.deps.Session.UserEmail(); email != "" {
		return email
	}
	return "anonimo"
}
