package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"policyver-hq/nomos/pkg/logic"
)

// Decision is one recorded eligibility verdict. The profile itself is never
// stored; only a digest, so the trail can prove which inputs produced a
// verdict without retaining personal data.
type Decision struct {
	// ID is a generated unique identifier for the record.
	ID string

	// PolicyID and ClauseID identify what was evaluated.
	PolicyID string
	ClauseID string

	// ReferenceDate is the point-in-time the active set was computed for.
	ReferenceDate time.Time

	// Eligible is the verdict.
	Eligible bool

	// Reasons holds the failure explanation for ineligible verdicts.
	Reasons []string

	// ProfileDigest is the hex-encoded SHA-256 of the canonicalized profile.
	ProfileDigest string

	// RecordedAt is when the decision was recorded.
	RecordedAt time.Time
}

// Backend persists decisions.
type Backend interface {
	Store(ctx context.Context, d *Decision) error
	QueryByPolicy(ctx context.Context, policyID string, limit int) ([]*Decision, error)
	Close() error
}

// Recorder writes eligibility decisions to a backend. Recording failures are
// logged, never propagated: the audit trail must not affect verdicts.
type Recorder struct {
	backend Backend
	logger  *slog.Logger
}

// NewRecorder creates a recorder over the given backend.
func NewRecorder(backend Backend, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{backend: backend, logger: logger}
}

// Record persists one eligibility decision and returns it.
func (r *Recorder) Record(ctx context.Context, policyID, clauseID string, referenceDate time.Time, profile logic.Profile, eligible bool, reasons []string) *Decision {
	d := &Decision{
		ID:            uuid.NewString(),
		PolicyID:      policyID,
		ClauseID:      clauseID,
		ReferenceDate: referenceDate,
		Eligible:      eligible,
		Reasons:       reasons,
		ProfileDigest: DigestProfile(profile),
		RecordedAt:    time.Now().UTC(),
	}

	if err := r.backend.Store(ctx, d); err != nil {
		r.logger.Error("failed to record eligibility decision",
			"policy_id", policyID,
			"clause_id", clauseID,
			"error", err,
		)
	}

	return d
}

// DigestProfile computes the hex-encoded SHA-256 of a canonical encoding of
// the profile (keys sorted, JSON values), so equal profiles always digest
// equally regardless of map iteration order.
func DigestProfile(profile logic.Profile) string {
	if len(profile) == 0 {
		return ""
	}

	keys := make([]string, 0, len(profile))
	for k := range profile {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
		// Encoding errors degrade the digest's coverage of that key, not
		// the recording itself.
		if b, err := json.Marshal(profile[k]); err == nil {
			h.Write(b)
		}
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
