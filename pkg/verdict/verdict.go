// Package verdict maps backend verdict codes to the display states shown to
// the user, and drives the character-reveal rendering of the rationale.
package verdict

// Code is the enumerated outcome of a fact-check as returned by the backend.
type Code string

const (
	Verified      Code = "verificado"
	ProbablyTrue  Code = "probablemente_verdadero"
	ProbablyFalse Code = "probablemente_falso"
	Mixed         Code = "mixto"
	NotVerifiable Code = "no_verificable"
	NotFound      Code = "no_encontrado"
)

// Display is the presentation tuple for one verdict code.
type Display struct {
	Title  string
	Status string
	Color  string // hex, applied by the active theme
}

// Present maps a verdict code to its display state. Unknown codes fall back to
// the generic analysis card.
func Present(code Code) Display {
	switch code {
	case Verified, ProbablyTrue:
		return Display{Title: "✅ Información Verificada", Status: "Verificado", Color: "#1977BF"}
	case ProbablyFalse:
		return Display{Title: "⚠️ Noticia Falsa", Status: "Incorrecto", Color: "#DC3545"}
	case Mixed:
		return Display{Title: "🔀 Resultado Mixto", Status: "Mixto", Color: "#FF9800"}
	case NotVerifiable, NotFound:
		return Display{Title: "🔍 No Verificable", Status: "No encontrado", Color: "#6C757D"}
	default:
		return Display{Title: "📊 Análisis de Covered", Status: "Analizado", Color: "#1977BF"}
	}
}
