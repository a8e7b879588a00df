package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldSuccess   = "success"
	FieldMount     = "mount"
	FieldChartKind = "chart_kind"
	FieldChartType = "chart_type"
	FieldPoints    = "points"
	FieldOutcome   = "outcome"
	FieldCurrency  = "currency"
	FieldLayout    = "layout"
	FieldEngine    = "engine"
	FieldContext   = "context_file"
	FieldOutputDir = "output_dir"
	FieldBytes     = "bytes"
	FieldDataset   = "dataset"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentRenderer = "renderer"
	ComponentEngine   = "engine"
	ComponentPage     = "page"
	ComponentBatch    = "batch"
	ComponentConfig   = "config"
)

// Operations defines standard operation names
const (
	OpLoad        = "load"
	OpRender      = "render"
	OpPlaceholder = "placeholder"
	OpConstruct   = "construct"
	OpValidate    = "validate"
	OpShutdown    = "shutdown"
	OpStartup     = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithChart adds the mount, kind and type of a chart
func (f LogFields) WithChart(mount, kind, chartType string) LogFields {
	f[FieldMount] = mount
	f[FieldChartKind] = kind
	if chartType != "" {
		f[FieldChartType] = chartType
	}
	return f
}

// WithOutcome adds how a mount ended up: drawn, placeholder or failed
func (f LogFields) WithOutcome(outcome string) LogFields {
	f[FieldOutcome] = outcome
	return f
}

// WithPoints adds the number of plotted points
func (f LogFields) WithPoints(n int) LogFields {
	f[FieldPoints] = n
	return f
}

// ToSlice converts LogFields to a slice for slog.
// The component field is left out because Logger adds it on its own.
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		if k == FieldComponent {
			continue
		}
		slice = append(slice, k, v)
	}
	return slice
}
