package core

// match.go scores snapshot records against an identity query and applies the
// quorum acceptance rule.
//
// The quorum rule is the central business invariant: a record is accepted
// only when at least two of the query's populated identity fields agree with
// it, except in single-field lookup mode (exactly one field populated) where
// agreement on that field alone suffices. Matching iterates records in
// source order and keeps the first accepted one; later qualifying records
// only bump CandidateCount so callers can detect duplicates in the sheet.

// identityFields is the fixed comparison order. It also fixes the order of
// MatchResult.MatchedFields.
var identityFields = [3]IdentityField{FieldEmail, FieldPhone, FieldUsername}

// Match scores every record against the query and returns the first record
// accepted by the quorum rule, along with the total count of qualifying
// candidates. It returns ErrAmbiguousQuery when the query populates no
// fields. A result with Found()==false and a nil error means the quorum rule
// accepted nothing; MatchedFieldCount then reports the best below-quorum
// agreement seen, so callers can tell "one field right" from "nothing close".
func Match(records []SubscriberRecord, query IdentityQuery) (MatchResult, error) {
	want := map[IdentityField]string{
		FieldEmail:    Normalize(FieldEmail, query.Email),
		FieldPhone:    Normalize(FieldPhone, query.Phone),
		FieldUsername: Normalize(FieldUsername, query.Username),
	}

	populated := 0
	for _, v := range want {
		if v != "" {
			populated++
		}
	}
	if populated == 0 {
		return MatchResult{}, ErrAmbiguousQuery
	}

	// Single-field lookup mode: one populated field, equality on it alone
	// is sufficient. Otherwise at least two fields must agree.
	required := 2
	if populated == 1 {
		required = 1
	}

	var result MatchResult
	for i := range records {
		matched := matchedFields(records[i], want)

		if len(matched) < required {
			// Keep the best below-quorum score so callers can see how
			// close the query came when nothing is accepted.
			if result.Record == nil && len(matched) > result.MatchedFieldCount {
				result.MatchedFields = matched
				result.MatchedFieldCount = len(matched)
			}
			continue
		}

		result.CandidateCount++
		if result.Record == nil {
			rec := records[i]
			result.Record = &rec
			result.MatchedFields = matched
			result.MatchedFieldCount = len(matched)
		}
	}

	return result, nil
}

// matchedFields returns the identity fields on which the record agrees with
// the normalized query values. Empty values never match: both sides must be
// non-empty and equal post-normalization.
func matchedFields(rec SubscriberRecord, want map[IdentityField]string) []IdentityField {
	var matched []IdentityField
	for _, f := range identityFields {
		q := want[f]
		if q == "" {
			continue
		}
		have := Normalize(f, rec.Field(string(f)))
		if have != "" && have == q {
			matched = append(matched, f)
		}
	}
	return matched
}
