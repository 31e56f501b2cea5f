package dto

// WidgetResponse payload publicado para el widget de pantalla de inicio.
type WidgetResponse struct {
	TotalStock   int    `json:"totalStock"`
	InboundToday int    `json:"inboundToday"`
	LastUpdated  string `json:"lastUpdated"`
}
