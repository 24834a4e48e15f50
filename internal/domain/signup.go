package domain

// Signup kinds stored in the pending-signups sort key.
const (
	SignupKindCustomer = "customer"
	SignupKindAdmin    = "admin"
)

// PendingSignup stages an unconfirmed signup attempt.
// PK: email, SK: kind ("customer" | "admin"). Each Begin call overwrites the
// record for its (email, kind), so only the most recent code is ever valid.
// ExpiresAt is a Unix timestamp doubling as the DynamoDB TTL attribute, which
// sweeps abandoned records without any application-side job.
//
// The provisional profile (name, phone or username, password hash) travels in
// the record so verification needs no re-submission. The password is hashed
// before it is staged; plaintext is never persisted.
type PendingSignup struct {
	Email        string `json:"email" dynamodbav:"email"`
	Kind         string `json:"kind" dynamodbav:"kind"`
	Code         string `json:"code" dynamodbav:"code"`
	ExpiresAt    int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
	Name         string `json:"name,omitempty" dynamodbav:"name"`
	Phone        string `json:"phone,omitempty" dynamodbav:"phone"`
	Username     string `json:"username,omitempty" dynamodbav:"username"`
	PasswordHash string `json:"-" dynamodbav:"password_hash"`
}
