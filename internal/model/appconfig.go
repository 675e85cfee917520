package model

// AppConfig holds application-wide preferences and default layout settings.
type AppConfig struct {
	// Default grid layout applied when no session or config override is given
	DefaultRows        int     `json:"default_rows"`
	DefaultCols        int     `json:"default_cols"`
	DefaultCellWidth   float64 `json:"default_cell_width"`
	DefaultCellHeight  float64 `json:"default_cell_height"`
	DefaultPadding     float64 `json:"default_padding"`
	DefaultInset       float64 `json:"default_inset"`
	DefaultLabelHeight float64 `json:"default_label_height"`

	// Application preferences
	RecentOutputs []string `json:"recent_outputs"`
}

// DefaultAppConfig returns an AppConfig populated with the values from
// DefaultGridSpec().
func DefaultAppConfig() AppConfig {
	defaults := DefaultGridSpec()
	return AppConfig{
		DefaultRows:        defaults.Rows,
		DefaultCols:        defaults.Cols,
		DefaultCellWidth:   defaults.CellWidth,
		DefaultCellHeight:  defaults.CellHeight,
		DefaultPadding:     defaults.Padding,
		DefaultInset:       defaults.Inset,
		DefaultLabelHeight: defaults.LabelHeight,
		RecentOutputs:      []string{},
	}
}

// ApplyToSpec copies the default values from AppConfig into a GridSpec.
// Only strictly positive values are applied: fields absent from a
// hand-edited config file decode to zero, and must keep the spec's
// current setting rather than collapse the layout.
func (c AppConfig) ApplyToSpec(g *GridSpec) {
	if c.DefaultRows > 0 {
		g.Rows = c.DefaultRows
	}
	if c.DefaultCols > 0 {
		g.Cols = c.DefaultCols
	}
	if c.DefaultCellWidth > 0 {
		g.CellWidth = c.DefaultCellWidth
	}
	if c.DefaultCellHeight > 0 {
		g.CellHeight = c.DefaultCellHeight
	}
	if c.DefaultPadding > 0 {
		g.Padding = c.DefaultPadding
	}
	if c.DefaultInset > 0 {
		g.Inset = c.DefaultInset
	}
	if c.DefaultLabelHeight > 0 {
		g.LabelHeight = c.DefaultLabelHeight
	}
}
