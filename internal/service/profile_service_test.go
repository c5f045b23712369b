package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"lawlink-api/internal/domain"
)

func strp(s string) *string        { return &s }
func feep(f float64) *float64      { return &f }
func slicep(s ...string) *[]string { return &s }

func seedClient(t *testing.T, repo *stubUserRepo) *domain.User {
	t.Helper()
	svc := newAuthService(repo)
	u, err := svc.Register(context.Background(), RegisterInput{
		Name: "A", Email: "a@x.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return u
}

func seedLawyer(t *testing.T, repo *stubUserRepo) *domain.User {
	t.Helper()
	svc := newAuthService(repo)
	u, err := svc.Register(context.Background(), RegisterInput{
		Role: domain.RoleLawyer, Name: "L", Email: "l@x.com", Password: "secret1",
		BarRegistration: "BAR-1", District: "Colombo", Experience: "5",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return u
}

func TestProfileUpdate_CompletesClientProfile(t *testing.T) {
	repo := newStubUserRepo()
	u := seedClient(t, repo)
	svc := NewProfileService(repo, nil)
	ctx := context.Background()

	got, err := svc.Update(ctx, u.ID, ProfileUpdate{
		Phone: strp("555"), Address: strp("1 Main"), City: strp("NY"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !got.ProfileCompleted {
		t.Fatalf("client profile should be complete after phone/address/city")
	}
}

func TestProfileUpdate_LawyerNeedsFullSet(t *testing.T) {
	repo := newStubUserRepo()
	u := seedLawyer(t, repo)
	svc := NewProfileService(repo, nil)
	ctx := context.Background()

	got, err := svc.Update(ctx, u.ID, ProfileUpdate{
		Phone: strp("555"), Address: strp("1 Main"), City: strp("Colombo"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.ProfileCompleted {
		t.Fatalf("lawyer still missing specializations/education")
	}

	got, err = svc.Update(ctx, u.ID, ProfileUpdate{
		Specializations: slicep("Family Law"),
		Education:       strp("LLB, Colombo"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !got.ProfileCompleted {
		t.Fatalf("lawyer profile should now be complete: %+v", got)
	}
}

func TestProfileUpdate_ClearingFieldFlipsCompletionBack(t *testing.T) {
	repo := newStubUserRepo()
	u := seedClient(t, repo)
	svc := NewProfileService(repo, nil)
	ctx := context.Background()

	if _, err := svc.Update(ctx, u.ID, ProfileUpdate{
		Phone: strp("555"), Address: strp("1 Main"), City: strp("NY"),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := svc.Update(ctx, u.ID, ProfileUpdate{Phone: strp("")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.ProfileCompleted {
		t.Fatalf("derived flag must be recomputed, not sticky")
	}
}

func TestProfileUpdate_PartialDoesNotClobber(t *testing.T) {
	repo := newStubUserRepo()
	u := seedClient(t, repo)
	svc := NewProfileService(repo, nil)
	ctx := context.Background()

	if _, err := svc.Update(ctx, u.ID, ProfileUpdate{
		Phone: strp("555"), Bio: strp("hello"), ConsultationFee: feep(50),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := svc.Update(ctx, u.ID, ProfileUpdate{City: strp("NY")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Phone != "555" || got.Bio != "hello" || got.ConsultationFee != 50 {
		t.Fatalf("unsubmitted fields were clobbered: %+v", got)
	}
	if got.Name != "A" {
		t.Fatalf("name lost: %q", got.Name)
	}
}

func TestProfileGet_OwnRecordAndIdempotent(t *testing.T) {
	repo := newStubUserRepo()
	u := seedClient(t, repo)
	svc := NewProfileService(repo, nil)
	ctx := context.Background()

	a, err := svc.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	b, err := svc.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two reads without a write differ:\n%+v\n%+v", a, b)
	}
}

func TestProfileGet_Missing(t *testing.T) {
	svc := NewProfileService(newStubUserRepo(), nil)
	if _, err := svc.Get(context.Background(), "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
