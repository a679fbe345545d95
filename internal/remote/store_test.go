// ABOUTME: Tests for the remote path scheme and error classification
// ABOUTME: Verifies owner-scoped prefixes and taxonomy mapping
package remote

import (
	"errors"
	"fmt"
	"testing"
)

func TestRecordPath(t *testing.T) {
	got := RecordPath("u1", CollectionWater, "water_x")
	want := "owners/u1/water_events/water_x"
	if got != want {
		t.Errorf("RecordPath() = %v, want %v", got, want)
	}

	if OwnerPrefix("u1") != "owners/u1/" {
		t.Errorf("OwnerPrefix() = %v", OwnerPrefix("u1"))
	}
	if CollectionPrefix("u1", CollectionGoals) != "owners/u1/goals/" {
		t.Errorf("CollectionPrefix() = %v", CollectionPrefix("u1", CollectionGoals))
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want error
	}{
		{fmt.Errorf("connection refused"), ErrUnavailable},
		{fmt.Errorf("dial tcp: no route to host"), ErrUnavailable},
		{fmt.Errorf("auth token expired"), ErrUnauthorized},
		{fmt.Errorf("request denied"), ErrUnauthorized},
	}
	for _, tc := range cases {
		got := classify(tc.err)
		if !errors.Is(got, tc.want) {
			t.Errorf("classify(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
	if classify(nil) != nil {
		t.Error("classify(nil) should be nil")
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()

	type rec struct {
		Amount int `json:"amount"`
	}
	if err := s.PutRecord("u1", CollectionWater, "w1", rec{Amount: 250}); err != nil {
		t.Fatalf("PutRecord() error = %v", err)
	}

	var got rec
	if err := s.GetRecord("u1", CollectionWater, "w1", &got); err != nil {
		t.Fatalf("GetRecord() error = %v", err)
	}
	if got.Amount != 250 {
		t.Errorf("Amount = %v, want 250", got.Amount)
	}

	// Other owners never see the record
	if err := s.GetRecord("u2", CollectionWater, "w1", &got); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-owner GetRecord() error = %v, want ErrNotFound", err)
	}

	ids, err := s.ListRecordIDs("u1", CollectionWater)
	if err != nil {
		t.Fatalf("ListRecordIDs() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != "w1" {
		t.Errorf("ListRecordIDs() = %v, want [w1]", ids)
	}
}

func TestMemoryStore_ForceError(t *testing.T) {
	s := NewMemoryStore()
	s.ForceError(ErrUnavailable)

	if err := s.PutRecord("u1", CollectionWater, "w1", 1); !errors.Is(err, ErrUnavailable) {
		t.Errorf("PutRecord() error = %v, want ErrUnavailable", err)
	}

	s.ForceError(nil)
	if err := s.PutRecord("u1", CollectionWater, "w1", 1); err != nil {
		t.Errorf("PutRecord() after restore error = %v", err)
	}
}

func TestMemoryStore_PurgeOwner(t *testing.T) {
	s := NewMemoryStore()
	_ = s.PutRecord("u1", CollectionWater, "w1", 1)
	_ = s.PutRecord("u1", CollectionGoals, "u1", 2)
	_ = s.PutRecord("u2", CollectionWater, "w2", 3)

	if err := s.PurgeOwner("u1"); err != nil {
		t.Fatalf("PurgeOwner() error = %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %v, want 1 (only u2's record)", s.Len())
	}
	if !s.Has("u2", CollectionWater, "w2") {
		t.Error("purge removed another owner's record")
	}
}
