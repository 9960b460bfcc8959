package tallysdk

// ============================================================================
// Account Types
// ============================================================================

// CredentialsRequest is the body of POST /signup and POST /login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// MessageResponse is the body of every successful mutation.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse is the body of a successful POST /login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ============================================================================
// Finance Types
// ============================================================================

// FinanceEntry is one month of income, expenses and savings.
type FinanceEntry struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
}

// FinanceRequest is the body of POST /add-finance and PUT /update-finance.
// Nil numbers are left out of the JSON so the server sees them as missing.
type FinanceRequest struct {
	Username string   `json:"username"`
	Month    string   `json:"month"`
	Income   *float64 `json:"income,omitempty"`
	Expenses *float64 `json:"expenses,omitempty"`
	Savings  *float64 `json:"savings,omitempty"`
}

// FinanceInput is a FinanceRequest without the username, used by Session.
type FinanceInput struct {
	Month    string
	Income   *float64
	Expenses *float64
	Savings  *float64
}

// DeleteFinanceRequest is the body of DELETE /delete-finance.
type DeleteFinanceRequest struct {
	Username string `json:"username"`
	Month    string `json:"month"`
}

// Float returns a pointer to v, for the optional number fields.
func Float(v float64) *float64 { return &v }

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of each dependency.
type HealthChecks struct {
	Database string `json:"database"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
