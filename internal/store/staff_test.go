package store

import (
	"context"
	"testing"
	"time"

	"prodstore/internal/models"
)

func TestStaffSessionLifecycle(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	staff := models.Staff{Username: "clerk", PasswordHash: "hash", DisplayName: "Clerk"}
	if err := st.CreateStaff(ctx, &staff); err != nil {
		t.Fatalf("create staff: %v", err)
	}

	count, err := st.CountEnabledStaff(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 enabled staff, got %d", count)
	}

	const tokenHash = "deadbeef"
	if err := st.CreateStaffSession(ctx, staff.ID, tokenHash, now.Add(time.Hour), now); err != nil {
		t.Fatalf("create session: %v", err)
	}

	got, err := st.GetStaffBySessionTokenHash(ctx, tokenHash, now)
	if err != nil {
		t.Fatalf("resolve session: %v", err)
	}
	if got == nil || got.Username != "clerk" {
		t.Fatalf("unexpected staff %v", got)
	}

	// Expired sessions resolve to nil.
	expired, err := st.GetStaffBySessionTokenHash(ctx, tokenHash, now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("resolve expired: %v", err)
	}
	if expired != nil {
		t.Fatal("expected expired session to resolve to nil")
	}

	if err := st.RevokeStaffSessionByTokenHash(ctx, tokenHash, now); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	revoked, err := st.GetStaffBySessionTokenHash(ctx, tokenHash, now)
	if err != nil {
		t.Fatalf("resolve revoked: %v", err)
	}
	if revoked != nil {
		t.Fatal("expected revoked session to resolve to nil")
	}
}
