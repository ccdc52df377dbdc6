package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldSuccess     = "success"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldUserID      = "user_id"
	FieldInsightID   = "insight_id"
	FieldInsightType = "insight_type"
	FieldModel       = "model"
	FieldRecordCount = "record_count"
	FieldCategory    = "category"
	FieldScenario    = "scenario"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentHTTP       = "http"
	ComponentInsights   = "insights"
	ComponentGenerator  = "generator"
	ComponentAnswers    = "answers"
	ComponentCategorize = "categorize"
	ComponentRecords    = "records"
	ComponentIdentity   = "identity"
	ComponentAI         = "ai"
)

// Operations defines standard operation names
const (
	OpGenerate   = "generate"
	OpSynthesize = "synthesize"
	OpCategorize = "categorize"
	OpList       = "list"
	OpAppend     = "append"
	OpResolve    = "resolve"
	OpComplete   = "complete"
	OpStartup    = "startup"
	OpShutdown   = "shutdown"
)
