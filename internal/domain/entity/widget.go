package entity

// WidgetDataKey clave de preferencia donde se guarda el payload del widget.
const WidgetDataKey = "widget_data"

// WidgetData payload que consume el widget de inicio del dispositivo.
type WidgetData struct {
	TotalStock   int    `json:"totalStock"`
	InboundToday int    `json:"inboundToday"`
	LastUpdated  string `json:"lastUpdated"`
}
