// Package core provides the subscriber reconciliation engine: decoding the
// spreadsheet CSV snapshot into records, matching an identity query against
// them, classifying subscription status, and building the update payload for
// the store collaborator. This package has no transport dependencies and can
// be driven by any frontend.
package core

import "time"

// IdentityField names one of the three identity columns a query may supply.
type IdentityField string

const (
	FieldEmail    IdentityField = "email"
	FieldPhone    IdentityField = "phone"
	FieldUsername IdentityField = "username"
)

// Canonical column names produced by header alias folding.
const (
	ColEmail    = "email"
	ColPhone    = "phone"
	ColUsername = "username"
	ColExpiry   = "expiry"
	ColPassword = "password"
)

// Columns written by BuildUpdate in addition to the caller-supplied set.
const (
	ColPaymentMethod      = "payment method"
	ColRegistrationStatus = "registration status"
	ColUpdatedAt          = "updated at"
)

// RegisteredMarker is the fixed value written to the registration status
// column when a registration is accepted.
const RegisteredMarker = "רשום"

// IdentityQuery carries up to three identity fields, raw as supplied by the
// caller. Normalization happens at comparison time, never at construction.
type IdentityQuery struct {
	Email    string
	Phone    string
	Username string
}

// Populated returns the identity fields that carry a non-empty value after
// normalization.
func (q IdentityQuery) Populated() []IdentityField {
	var fields []IdentityField
	if Normalize(FieldEmail, q.Email) != "" {
		fields = append(fields, FieldEmail)
	}
	if Normalize(FieldPhone, q.Phone) != "" {
		fields = append(fields, FieldPhone)
	}
	if Normalize(FieldUsername, q.Username) != "" {
		fields = append(fields, FieldUsername)
	}
	return fields
}

// SubscriberRecord is one decoded data row. Fields maps canonical column
// names to raw cell values. RowIndex is the 1-based position of the row in
// source order; it is an update target only, never an identity.
type SubscriberRecord struct {
	Fields   map[string]string
	RowIndex int
}

// Field returns the raw value of a canonical column, or "" when the column
// is absent.
func (r SubscriberRecord) Field(name string) string {
	return r.Fields[name]
}

// Snapshot is the decoded form of one CSV export: the canonical header
// sequence plus every data row in source order. It lives for a single
// request; the spreadsheet itself stays the sole source of truth.
type Snapshot struct {
	Headers []string
	Records []SubscriberRecord
}

// MatchResult reports how a single query fared against a snapshot.
// MatchedFieldCount always equals len(MatchedFields).
type MatchResult struct {
	Record            *SubscriberRecord
	MatchedFieldCount int
	MatchedFields     []IdentityField

	// CandidateCount is the number of records that satisfied the quorum
	// rule. The first one in source order is the accepted match; callers
	// can use a count above 1 to detect ambiguous store contents.
	CandidateCount int
}

// Found reports whether the quorum rule accepted a record.
func (m MatchResult) Found() bool {
	return m.Record != nil
}

// SubscriptionStatus is derived from the expiry column relative to "now".
// It is never stored independently of the expiry value it was computed from.
type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusExpiring SubscriptionStatus = "expiring"
	StatusExpired  SubscriptionStatus = "expired"
	StatusUnknown  SubscriptionStatus = "unknown"
)

// ReconcileResult is the read-path outcome. Found=false is distinct from
// StatusUnknown: the former means no record passed the quorum rule, the
// latter means a matched record carries an unparseable expiry.
type ReconcileResult struct {
	Found             bool
	Record            *SubscriberRecord
	Status            SubscriptionStatus
	MatchedFieldCount int
	CandidateCount    int
}

// SubscriptionView is the serializable read output. It is built only through
// ReconcileResult.View, which never copies the password value out of the
// record; clients get a presence flag at most.
type SubscriptionView struct {
	Found             bool               `json:"found"`
	Username          string             `json:"username,omitempty"`
	ExpireDate        string             `json:"expireDate,omitempty"`
	Status            SubscriptionStatus `json:"status,omitempty"`
	MatchedFieldCount int                `json:"matchedFieldCount"`
	CandidateCount    int                `json:"candidateCount"`
	HasPassword       bool               `json:"hasPassword"`
}

// View redacts a ReconcileResult for serialization.
func (r ReconcileResult) View() SubscriptionView {
	v := SubscriptionView{
		Found:             r.Found,
		MatchedFieldCount: r.MatchedFieldCount,
		CandidateCount:    r.CandidateCount,
	}
	if r.Found && r.Record != nil {
		v.Username = r.Record.Field(ColUsername)
		v.ExpireDate = r.Record.Field(ColExpiry)
		v.Status = r.Status
		v.HasPassword = r.Record.Field(ColPassword) != ""
	}
	return v
}

// UpdateInstruction is the minimal, auditable mutation handed to the store
// collaborator. It references exactly one row and only the columns listed in
// ColumnAssignments; the collaborator owns persistence and retries.
type UpdateInstruction struct {
	// InstructionID correlates the instruction across logs and the store
	// collaborator's audit trail.
	InstructionID string `json:"instructionId"`

	// TargetRowIndex is the 1-based data row to replace.
	TargetRowIndex int `json:"targetRowIndex"`

	// SnapshotDigest fingerprints the snapshot text this instruction was
	// derived from. The store collaborator must re-validate it before
	// applying, so a concurrent writer that changed the sheet invalidates
	// the instruction.
	SnapshotDigest string `json:"snapshotDigest"`

	ColumnAssignments map[string]string `json:"columnAssignments"`
}

// Registration is the write-path input: the identity fields used for quorum
// matching plus the subscription details to record.
type Registration struct {
	Name             string
	Email            string
	Phone            string
	Username         string
	SubscriptionType string
	PaymentMethod    string
}

// Query returns the identity portion of the registration.
func (r Registration) Query() IdentityQuery {
	return IdentityQuery{Email: r.Email, Phone: r.Phone, Username: r.Username}
}

// RegisterResult is the write-path outcome.
type RegisterResult struct {
	Instruction    UpdateInstruction
	CandidateCount int
}

// Clock returns the current instant. Injected so status classification is
// testable against fixed times.
type Clock func() time.Time
