package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldYear        = "year"
	FieldMonth       = "month"
	FieldDate        = "date"
	FieldRecordID    = "record_id"
	FieldRecordKind  = "record_kind"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldRecords     = "records"
	FieldDropped     = "dropped_rows"
	FieldBackend     = "backend"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentLedger    = "ledger"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentRemote    = "remote"
	ComponentCache     = "cache"
	ComponentSecurity  = "security"
	ComponentRateLimit = "rate_limit"
)

// Operations defines standard operation names
const (
	OpSave     = "save"
	OpDelete   = "delete"
	OpSync     = "sync"
	OpPush     = "push"
	OpFetch    = "fetch"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
