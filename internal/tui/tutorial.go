package tui

// TutorialPage is one onboarding screen. The sequence is fixed and compiled in.
type TutorialPage struct {
	Icon        string
	Title       string
	Description string
}

var tutorialPages = []TutorialPage{
	{
		Icon:        "🦔",
		Title:       "Bienvenido a Covered",
		Description: "La aplicación que te ayuda a verificar la veracidad de noticias e información",
	},
	{
		Icon:        "📖",
		Title:       "Verificación Rápida",
		Description: "Ingresa cualquier texto o URL y obtén resultados instantáneos basados en fuentes confiables",
	},
	{
		Icon:        "🕘",
		Title:       "Historial de Consultas",
		Description: "Revisa tus verificaciones anteriores en cualquier momento desde el menú de navegación",
	},
}

// tutorialControls reports which navigation controls are visible at a page
// position: the first page hides Previous, the last hides Next and shows Finish.
func tutorialControls(page int) (showPrevious, showNext, showFinish bool) {
	switch {
	case page == 0:
		return false, true, false
	case page == len(tutorialPages)-1:
		return true, false, true
	default:
		return true, true, false
	}
}
