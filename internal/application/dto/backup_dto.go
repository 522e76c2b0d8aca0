package dto

// ImportBackupResponse resultado de importar un respaldo.
type ImportBackupResponse struct {
	Items int `json:"items"`
	Sales int `json:"sales"`
}

// PhotoResponse referencia de una foto guardada.
type PhotoResponse struct {
	Ref string `json:"ref" example:"photo:6f1c1b0e-6a43-4d3b-9a8e-1f1f7d0a2b11"`
}
