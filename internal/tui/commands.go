package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/covered-news/covered/internal/utils"
	"github.com/covered-news/covered/pkg/api"
	"github.com/covered-news/covered/pkg/auth"
	"github.com/covered-news/covered/pkg/otp"
	"github.com/covered-news/covered/pkg/preview"
	"github.com/covered-news/covered/pkg/storage"
)

const statusLinger = 3 * time.Second

type (
	splashDoneMsg struct{}

	verifyDoneMsg struct {
		result *api.VerificationResult
		err    error
	}

	historyDoneMsg struct {
		page *api.HistoryPage
		err  error
	}

	previewDoneMsg struct {
		preview *preview.Preview
	}

	revealTickMsg struct {
		generation int
	}

	statusClearMsg struct {
		seq int
	}

	deviceLoginMsg struct {
		login *auth.DeviceLogin
		err   error
	}

	loginDoneMsg struct {
		user   *auth.User
		method string
		err    error
	}

	signOutDoneMsg struct {
		err error
	}
)

func (m Model) verifyCmd(ctx context.Context, req api.VerificationRequest) tea.Cmd {
	client := m.deps.API
	return func() tea.Msg {
		result, err := client.Verify(ctx, req)
		return verifyDoneMsg{result: result, err: err}
	}
}

// loadDrawerCmd fetches the 5 most recent history entries, the drawer's batch.
func (m Model) loadDrawerCmd(ctx context.Context) tea.Cmd {
	client := m.deps.API
	return func() tea.Msg {
		page, err := client.History(ctx, 5, 0)
		return historyDoneMsg{page: page, err: err}
	}
}

func (m Model) previewCmd(ctx context.Context, link string) tea.Cmd {
	return func() tea.Msg {
		p, err := preview.Fetch(ctx, link)
		if err != nil {
			// Best-effort: no preview on failure.
			utils.Log.Debug("preview failed: ", err)
			return previewDoneMsg{}
		}
		return previewDoneMsg{preview: p}
	}
}

// revealTickCmd schedules the next typewriter tick for the current reveal.
func (m Model) revealTickCmd() tea.Cmd {
	if m.reveal == nil {
		return nil
	}
	gen := m.reveal.Generation()
	return tea.Tick(m.reveal.NextInterval(), func(time.Time) tea.Msg {
		return revealTickMsg{generation: gen}
	})
}

func (m Model) clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusLinger, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

func (m Model) startGoogleLoginCmd(ctx context.Context) tea.Cmd {
	client := m.deps.Auth
	return func() tea.Msg {
		login, err := client.StartDeviceLogin(ctx)
		return deviceLoginMsg{login: login, err: err}
	}
}

func (m Model) pollGoogleLoginCmd(ctx context.Context, login *auth.DeviceLogin) tea.Cmd {
	client := m.deps.Auth
	return func() tea.Msg {
		user, err := client.PollDeviceLogin(ctx, login)
		return loginDoneMsg{user: user, method: "google", err: err}
	}
}

func (m Model) emailAuthCmd(ctx context.Context, email, password string, register bool) tea.Cmd {
	client := m.deps.Auth
	secret := m.deps.TOTPSecret
	return func() tea.Msg {
		if register {
			user, err := client.SignUp(ctx, email, password)
			return loginDoneMsg{user: user, method: "email", err: err}
		}

		code := ""
		if secret != "" {
			if c, err := otp.GenerateTOTP(secret, time.Now()); err == nil {
				code = c
			}
		}
		user, err := client.SignInWithPassword(ctx, email, password, code)
		return loginDoneMsg{user: user, method: "email", err: err}
	}
}

// revokeSessionCmd ends the provider session in the background. Local state
// is already cleared when this runs.
func (m Model) revokeSessionCmd(ctx context.Context, token string) tea.Cmd {
	client := m.deps.Auth
	return func() tea.Msg {
		return signOutDoneMsg{err: client.SignOut(ctx, token)}
	}
}

// journalCmd appends a finished verification to the local journal. Journal
// trouble is logged and swallowed.
func (m Model) journalCmd(texto, url string, result *api.VerificationResult) tea.Cmd {
	journal := m.deps.Journal
	if journal == nil {
		return nil
	}
	return func() tea.Msg {
		err := journal.Append(context.Background(), storage.Record{
			Texto:        texto,
			URL:          url,
			Resultado:    result.Resultado,
			Razonamiento: result.Razonamiento,
			ConsultaID:   result.ConsultaID,
		})
		if err != nil {
			utils.Log.Debug("journal append failed: ", err)
		}
		return nil
	}
}
