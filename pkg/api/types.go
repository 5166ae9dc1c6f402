package api

// VerificationRequest is the body sent to POST /verificar/movil. Exactly one of
// Texto or URL carries the submitted content; the other stays empty.
type VerificationRequest struct {
	Texto         string `json:"texto"`
	URL           string `json:"url,omitempty"`
	UsuarioID     string `json:"usuario_id"`
	DispositivoID string `json:"dispositivo_id,omitempty"`
}

// VerificationResult is the verdict returned by the backend.
type VerificationResult struct {
	Success            bool              `json:"success"`
	Resultado          string            `json:"resultado"`
	Razonamiento       string            `json:"razonamiento,omitempty"`
	Detalle            map[string]string `json:"detalle,omitempty"`
	ConsultaID         int               `json:"consulta_id,omitempty"`
	FechaProcesamiento string            `json:"fecha_procesamiento"`
}

type HistoryItem struct {
	ID        int    `json:"id"`
	Texto     string `json:"texto"`
	Resultado string `json:"resultado"`
	URL       string `json:"url,omitempty"`
	Fecha     string `json:"fecha"`
}

// HistoryPage is one batch of GET /historial results.
type HistoryPage struct {
	Total     int           `json:"total"`
	Limit     int           `json:"limit"`
	Offset    int           `json:"offset"`
	Consultas []HistoryItem `json:"consultas"`
}

type Statistics struct {
	TotalConsultas        int     `json:"total_consultas"`
	UsuariosUnicos        int     `json:"usuarios_unicos"`
	LongitudPromedioTexto float64 `json:"longitud_promedio_texto"`
}
