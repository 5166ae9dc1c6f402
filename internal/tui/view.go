package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/covered-news/covered/internal/utils"
	"github.com/covered-news/covered/pkg/api"
	"github.com/covered-news/covered/pkg/verdict"
)

func (m Model) View() string {
	switch m.viewMode {
	case splashView:
		return m.viewSplash()
	case tutorialView:
		return m.viewTutorial()
	case loginView:
		return m.viewLogin()
	case mainView:
		return m.viewMain()
	}
	return ""
}

func (m Model) viewSplash() string {
	logo := m.styles.Title.Render("🦔 Covered")
	tag := m.styles.Subtitle.Render("Verificación de noticias")
	return m.center(lipgloss.JoinVertical(lipgloss.Center, "", logo, tag))
}

func (m Model) viewTutorial() string {
	page := tutorialPages[m.tutorialPage]
	showPrev, showNext, showFinish := tutorialControls(m.tutorialPage)

	var b strings.Builder
	b.WriteString("\n  " + page.Icon + "  " + m.styles.Title.Render(page.Title) + "\n\n")
	b.WriteString("  " + m.styles.Body.Render(page.Description) + "\n\n")

	dots := make([]string, len(tutorialPages))
	for i := range tutorialPages {
		if i == m.tutorialPage {
			dots[i] = m.styles.Selected.Render("●")
		} else {
			dots[i] = m.styles.Muted.Render("○")
		}
	}
	b.WriteString("  " + strings.Join(dots, " ") + "\n\n")

	var controls []string
	if showPrev {
		controls = append(controls, "← anterior")
	}
	if showNext {
		controls = append(controls, "→ siguiente")
	}
	if showFinish {
		controls = append(controls, "enter comenzar")
	}
	controls = append(controls, "s saltar")
	b.WriteString("  " + m.styles.Help.Render(strings.Join(controls, " · ")))
	return b.String()
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString("\n  " + m.styles.Title.Render("Inicia sesión en Covered") + "\n\n")

	if m.emailDialog {
		b.WriteString(m.viewEmailDialog())
	} else {
		b.WriteString("  " + m.styles.Body.Render("[g] Continuar con Google") + "\n")
		b.WriteString("  " + m.styles.Body.Render("[e] Continuar con Email") + "\n")
		b.WriteString("  " + m.styles.Muted.Render("[s] Continuar sin cuenta") + "\n")
	}

	if m.loginBusy {
		b.WriteString("\n  " + m.spinner.View() + " ")
		if m.deviceLogin != nil {
			b.WriteString(m.styles.Body.Render(
				fmt.Sprintf("Visita %s e ingresa el código %s",
					m.deviceLogin.VerificationURL, m.deviceLogin.UserCode)))
		} else {
			b.WriteString(m.styles.Muted.Render("Conectando..."))
		}
		b.WriteString("\n")
	}

	if m.loginStatus != "" {
		b.WriteString("\n  " + m.styles.ErrText.Render(m.loginStatus) + "\n")
	}
	return b.String()
}

func (m Model) viewEmailDialog() string {
	var b strings.Builder
	if m.emailMode == emailRegister {
		b.WriteString("  " + m.styles.Subtitle.Render("Crear cuenta nueva") + "\n\n")
	} else {
		b.WriteString("  " + m.styles.Subtitle.Render("Entrar con email") + "\n\n")
	}
	b.WriteString("  " + m.emailInput.View() + "\n")
	b.WriteString("  " + m.passwordInput.View() + "\n\n")
	b.WriteString("  " + m.styles.Help.Render("tab cambiar campo · ctrl+r registro/entrada · enter enviar · esc volver") + "\n")
	return b.String()
}

func (m Model) viewMain() string {
	content := m.viewVerification()
	if m.drawer != drawerClosed {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.viewDrawer())
	}
	if m.detail != nil {
		content += "\n" + m.viewDetail()
	}
	return content
}

func (m Model) viewVerification() string {
	var b strings.Builder

	mode := "texto"
	if m.linkMode {
		mode = "enlace"
	}
	b.WriteString("\n  " + m.styles.Title.Render("Covered") + "  " +
		m.styles.Badge.Render(mode) + "\n\n")

	b.WriteString(m.indent(m.input.View()) + "\n")

	switch {
	case m.inputError != "":
		b.WriteString("  " + m.styles.ErrText.Render(m.inputError) + "\n")
	case m.suggestion != "":
		b.WriteString("  " + m.styles.Muted.Render(m.suggestion) + "\n")
	}

	if m.inFlight {
		b.WriteString("\n  " + m.spinner.View() + " " +
			m.styles.Muted.Render("Verificando...") + "\n")
	}

	if m.preview != nil {
		b.WriteString("\n" + m.indent(m.viewPreview()) + "\n")
	}

	if m.reveal != nil {
		b.WriteString("\n" + m.indent(m.viewVerdict()) + "\n")
	}

	if m.status != "" {
		b.WriteString("\n  " + m.styles.Status.Render(m.status) + "\n")
	}

	b.WriteString("\n  " + m.styles.Help.Render(
		"enter verificar · ctrl+l modo enlace · tab historial · ctrl+d tema · ctrl+o salir · ctrl+c cerrar") + "\n")
	return b.String()
}

func (m Model) viewPreview() string {
	var lines []string
	if m.preview.Title != "" {
		lines = append(lines, m.styles.CardTitle.Render(utils.Truncate(m.preview.Title, 70)))
	}
	if m.preview.Description != "" {
		lines = append(lines, m.styles.Muted.Render(utils.Truncate(m.preview.Description, 140)))
	}
	return m.styles.Card.Render(strings.Join(lines, "\n"))
}

func (m Model) viewVerdict() string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.display.Color)).
		Bold(true).
		Render(m.display.Title)

	body := m.styles.Body.Render(m.reveal.Visible())
	if !m.reveal.Done() {
		body += m.styles.Muted.Render("▌")
	}

	card := title + "\n\n" + body
	if m.result != nil && len(m.result.Detalle) > 0 {
		var extra []string
		for k, v := range m.result.Detalle {
			extra = append(extra, m.styles.Muted.Render(utils.Capitalize(k)+": "+v))
		}
		card += "\n\n" + strings.Join(extra, "\n")
	}
	return m.styles.Card.Render(card)
}

func (m Model) viewDrawer() string {
	var b strings.Builder
	b.WriteString(m.styles.CardTitle.Render("Historial") + "\n\n")

	switch m.drawer {
	case drawerLoading:
		b.WriteString(m.spinner.View() + " " + m.styles.Muted.Render("Cargando..."))
	case drawerEmpty:
		b.WriteString(m.styles.Muted.Render("No hay verificaciones"))
	case drawerError:
		b.WriteString(m.styles.ErrText.Render("Error al cargar") + "\n" +
			m.styles.Help.Render("r reintentar"))
	case drawerReady:
		for i, item := range m.drawerItems {
			line := drawerLine(item)
			if i == m.drawerCursor {
				b.WriteString(m.styles.Selected.Render("› "+line) + "\n")
			} else {
				b.WriteString(m.styles.DrawerItem.Render("  "+line) + "\n")
			}
		}
		b.WriteString("\n" + m.styles.Help.Render("↑/↓ mover · enter detalle"))
	}

	b.WriteString("\n" + m.styles.Help.Render("tab cerrar"))
	return m.styles.Drawer.Render(b.String())
}

func drawerLine(item api.HistoryItem) string {
	text := item.Texto
	if text == "" {
		text = item.URL
	}
	return verdict.Present(verdict.Code(item.Resultado)).Status + "  " + utils.Truncate(text, 34)
}

func (m Model) viewDetail() string {
	item := m.detail
	display := verdict.Present(verdict.Code(item.Resultado))

	var lines []string
	lines = append(lines, m.styles.CardTitle.Render(display.Title))
	if item.Texto != "" {
		lines = append(lines, m.styles.Body.Render(item.Texto))
	}
	if item.URL != "" {
		lines = append(lines, m.styles.Muted.Render(item.URL))
	}
	lines = append(lines, m.styles.Muted.Render(utils.FormatTimestamp(item.Fecha)))
	lines = append(lines, "", m.styles.Help.Render("esc cerrar"))
	return m.styles.Card.Render(strings.Join(lines, "\n"))
}

func (m Model) center(s string) string {
	if m.width == 0 || m.height == 0 {
		return s
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s)
}

func (m Model) indent(s string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = "  " + lines[i]
	}
	return strings.Join(lines, "\n")
}
