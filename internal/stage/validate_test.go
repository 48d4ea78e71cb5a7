package stage_test

import (
	"errors"
	"testing"

	"github.com/careerforge/backend/internal/stage"
)

func asValidationError(err error, target **stage.ValidationError) bool {
	return errors.As(err, target)
}

func fullMap(overrides stage.Map) stage.Map {
	m := stage.Map{
		"saved":      false,
		"applied":    false,
		"offer":      false,
		"hired":      false,
		"past-roles": false,
		"ineligible": false,
	}
	for k, v := range overrides {
		m[k] = v
	}
	return m
}

func TestValidateFull_MissingBaseStage(t *testing.T) {
	for _, missing := range []string{"saved", "applied", "offer", "hired", "past-roles", "ineligible"} {
		m := fullMap(nil)
		delete(m, missing)

		err := stage.ValidateFull(m)
		if err == nil {
			t.Errorf("missing %s: expected error, got nil", missing)
			continue
		}
		var verr *stage.ValidationError
		if !asValidationError(err, &verr) || verr.Kind != stage.MissingKey || verr.Key != missing {
			t.Errorf("missing %s: got %v", missing, err)
		}
	}
}

func TestValidateFull_ValidCombinations(t *testing.T) {
	cases := []struct {
		name string
		m    stage.Map
	}{
		{"all false", fullMap(nil)},
		{"saved only", fullMap(stage.Map{"saved": true})},
		{"applied", fullMap(stage.Map{"saved": true, "applied": true})},
		{"first interview", fullMap(stage.Map{"applied": true, "interview-1": true})},
		{"three interviews", fullMap(stage.Map{"applied": true, "interview-1": true, "interview-2": true, "interview-3": true})},
		{"offer after interview", fullMap(stage.Map{"applied": true, "interview-1": true, "offer": true})},
		{"hired", fullMap(stage.Map{"applied": true, "interview-1": true, "offer": true, "hired": true})},
		{"past roles after hired", fullMap(stage.Map{"applied": true, "interview-1": true, "offer": true, "hired": true, "past-roles": true})},
		{"past roles after ineligible", fullMap(stage.Map{"applied": true, "ineligible": true, "past-roles": true})},
		{"interview keys present but false", fullMap(stage.Map{"interview-1": false, "interview-2": false})},
	}
	for _, c := range cases {
		if err := stage.ValidateFull(c.m); err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
		}
	}
}

func TestValidateFull_SequenceViolations(t *testing.T) {
	cases := []struct {
		name string
		m    stage.Map
	}{
		{"interview-2 without interview-1 key", fullMap(stage.Map{"applied": true, "interview-2": true})},
		{"interview-2 with interview-1 false", fullMap(stage.Map{"applied": true, "interview-1": false, "interview-2": true})},
		{"interview-3 with gap at 2", fullMap(stage.Map{"applied": true, "interview-1": true, "interview-3": true})},
		{"malformed key true before numeric done", fullMap(stage.Map{"applied": true, "interview-1": true, "interview-2": false, "interview-x": true})},
	}
	for _, c := range cases {
		err := stage.ValidateFull(c.m)
		if err == nil {
			t.Errorf("%s: expected error, got nil", c.name)
			continue
		}
		var verr *stage.ValidationError
		if !asValidationError(err, &verr) || verr.Kind != stage.Sequence {
			t.Errorf("%s: expected sequence violation, got %v", c.name, err)
		}
	}
}

func TestValidateFull_InterviewThreeRequiresBothEarlierRounds(t *testing.T) {
	cases := []stage.Map{
		fullMap(stage.Map{"applied": true, "interview-3": true}),
		fullMap(stage.Map{"applied": true, "interview-1": true, "interview-3": true}),
		fullMap(stage.Map{"applied": true, "interview-2": true, "interview-3": true}),
	}
	for i, m := range cases {
		if err := stage.ValidateFull(m); err == nil {
			t.Errorf("case %d: expected error, got nil", i)
		}
	}

	ok := fullMap(stage.Map{"applied": true, "interview-1": true, "interview-2": true, "interview-3": true})
	if err := stage.ValidateFull(ok); err != nil {
		t.Errorf("complete sequence: unexpected error: %v", err)
	}
}

func TestValidateFull_ProgressionViolations(t *testing.T) {
	cases := []struct {
		name string
		m    stage.Map
	}{
		{"interview without applied", fullMap(stage.Map{"interview-1": true})},
		{"offer without interviews", fullMap(stage.Map{"applied": true, "offer": true})},
		{"offer with interviews all false", fullMap(stage.Map{"applied": true, "interview-1": false, "offer": true})},
		{"hired without offer", fullMap(stage.Map{"applied": true, "interview-1": true, "hired": true})},
		{"past roles without hired or ineligible", fullMap(stage.Map{"applied": true, "past-roles": true})},
	}
	for _, c := range cases {
		err := stage.ValidateFull(c.m)
		if err == nil {
			t.Errorf("%s: expected error, got nil", c.name)
			continue
		}
		var verr *stage.ValidationError
		if !asValidationError(err, &verr) || verr.Kind != stage.Progression {
			t.Errorf("%s: expected progression violation, got %v", c.name, err)
		}
	}
}

func TestValidatePatch_ValidatesMergedState(t *testing.T) {
	existing := fullMap(stage.Map{"saved": true, "applied": true, "interview-1": true})

	// offer is legal because the merged map still has interview-1 true
	if err := stage.ValidatePatch(existing, stage.Map{"offer": true}); err != nil {
		t.Errorf("offer over interviewed record: unexpected error: %v", err)
	}

	// hired is illegal because the merged map has offer false
	err := stage.ValidatePatch(existing, stage.Map{"hired": true})
	if err == nil {
		t.Fatal("hired without offer: expected error, got nil")
	}
	var verr *stage.ValidationError
	if !asValidationError(err, &verr) || verr.Kind != stage.Progression {
		t.Fatalf("expected progression violation, got %v", err)
	}
}

func TestValidatePatch_PatchAloneLooksFineButMergeBreaks(t *testing.T) {
	// the patch only unsets interview-1; the breakage appears in the merge
	existing := fullMap(stage.Map{"applied": true, "interview-1": true, "interview-2": true})
	if err := stage.ValidatePatch(existing, stage.Map{"interview-1": false}); err == nil {
		t.Fatal("expected sequence violation after merge, got nil")
	}
}

func TestValidatePatch_RejectsUnknownPatchKey(t *testing.T) {
	existing := fullMap(nil)
	err := stage.ValidatePatch(existing, stage.Map{"screening": true})
	if err == nil {
		t.Fatal("expected error for unknown patch key")
	}
	var verr *stage.ValidationError
	if !asValidationError(err, &verr) || verr.Kind != stage.UnknownKey {
		t.Fatalf("expected UnknownKey, got %v", err)
	}
}

func TestValidatePatch_DoesNotRequireFullPatch(t *testing.T) {
	existing := fullMap(stage.Map{"saved": true})
	if err := stage.ValidatePatch(existing, stage.Map{"applied": true}); err != nil {
		t.Errorf("partial patch: unexpected error: %v", err)
	}
}
