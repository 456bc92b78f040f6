package core

// reconcile.go orchestrates the engine: decode -> match -> classify for
// reads, and decode -> match -> build-update -> post for writes.
//
// Each call runs one synchronous pass over its own snapshot text with no
// state shared between invocations. There is deliberately no
// at-most-one-update guarantee: two concurrent registrations can both match
// the same row and both emit instructions. The SnapshotDigest carried by
// every instruction pushes the compare-and-swap onto the store collaborator.

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SnapshotFetcher retrieves a fresh CSV export of the backing store.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context) (string, error)
}

// UpdatePoster hands an UpdateInstruction to the store collaborator, which
// owns persistence, digest re-validation, and its own retry policy.
type UpdatePoster interface {
	PostUpdate(ctx context.Context, instr UpdateInstruction) error
}

// Service wires the engine to its collaborators. All collaborator
// configuration arrives at construction; the engine reads no ambient state.
type Service struct {
	fetcher SnapshotFetcher
	poster  UpdatePoster
	window  time.Duration
	clock   Clock
}

// NewService creates a Service. window is the expiring-status lead time;
// zero selects the default ExpiringWindow.
func NewService(fetcher SnapshotFetcher, poster UpdatePoster, window time.Duration) *Service {
	if window <= 0 {
		window = ExpiringWindow
	}
	return &Service{
		fetcher: fetcher,
		poster:  poster,
		window:  window,
		clock:   time.Now,
	}
}

// Lookup fetches a fresh snapshot and reconciles the query against it.
func (s *Service) Lookup(ctx context.Context, query IdentityQuery) (ReconcileResult, error) {
	text, err := s.fetcher.FetchSnapshot(ctx)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("fetch snapshot: %w", err)
	}
	return Reconcile(text, query, s.clock(), s.window)
}

// Register fetches a fresh snapshot, requires a unique quorum match for the
// registration's identity, and posts the resulting update instruction.
func (s *Service) Register(ctx context.Context, reg Registration) (RegisterResult, error) {
	text, err := s.fetcher.FetchSnapshot(ctx)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("fetch snapshot: %w", err)
	}

	snap, err := DecodeSnapshot(text)
	if err != nil {
		return RegisterResult{}, err
	}

	match, err := Match(snap.Records, reg.Query())
	if err != nil {
		return RegisterResult{}, err
	}

	instr, err := BuildUpdate(match, map[string]string{
		ColPaymentMethod: reg.PaymentMethod,
	}, SnapshotDigest(text), s.clock())
	if err != nil {
		return RegisterResult{}, err
	}

	if err := s.poster.PostUpdate(ctx, instr); err != nil {
		return RegisterResult{}, fmt.Errorf("post update: %w", err)
	}

	return RegisterResult{Instruction: instr, CandidateCount: match.CandidateCount}, nil
}

// Reconcile runs the read path over already-fetched snapshot text: decode,
// match under the quorum rule, and classify the matched record's expiry.
// An absent match yields Found=false with a nil error; it is not the same
// outcome as StatusUnknown.
func Reconcile(snapshotText string, query IdentityQuery, now time.Time, window time.Duration) (ReconcileResult, error) {
	snap, err := DecodeSnapshot(snapshotText)
	if err != nil {
		return ReconcileResult{}, err
	}

	match, err := Match(snap.Records, query)
	if err != nil {
		return ReconcileResult{}, err
	}

	result := ReconcileResult{
		MatchedFieldCount: match.MatchedFieldCount,
		CandidateCount:    match.CandidateCount,
	}
	if !match.Found() {
		return result, nil
	}

	result.Found = true
	result.Record = match.Record
	result.Status = Classify(match.Record.Field(ColExpiry), now, window)
	return result, nil
}

// BuildUpdate constructs the minimal mutation for a matched record: the
// caller-supplied column assignments plus the fixed registration-status
// marker and an update timestamp. It never creates a new row; an unmatched
// result yields ErrNoMatchingRecord. Columns the caller did not supply are
// never touched.
func BuildUpdate(match MatchResult, assignments map[string]string, snapshotDigest string, now time.Time) (UpdateInstruction, error) {
	if !match.Found() {
		return UpdateInstruction{}, ErrNoMatchingRecord
	}

	cols := make(map[string]string, len(assignments)+2)
	for name, value := range assignments {
		cols[CanonicalHeader(name)] = value
	}
	cols[ColRegistrationStatus] = RegisteredMarker
	cols[ColUpdatedAt] = now.UTC().Format(time.RFC3339)

	return UpdateInstruction{
		InstructionID:     uuid.NewString(),
		TargetRowIndex:    match.Record.RowIndex,
		SnapshotDigest:    snapshotDigest,
		ColumnAssignments: cols,
	}, nil
}

// SnapshotDigest fingerprints snapshot text for optimistic concurrency
// checks by the store collaborator.
func SnapshotDigest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
