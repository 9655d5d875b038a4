package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/coursemarket-backend/internal/data/repos/testutil"
	types "github.com/yungbote/coursemarket-backend/internal/domain"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewUserRepo(db, testutil.Logger(t))

	u := &types.User{
		Email:     "userrepo@example.com",
		Name:      "User Repo",
		Role:      types.RoleUser,
		Interests: testutil.JSONTags(t, "react"),
	}
	if _, err := repo.Create(ctx, tx, []*types.User{u}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == uuid.Nil {
		t.Fatalf("Create: expected id to be assigned")
	}

	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.GetByEmails(ctx, tx, []string{"userrepo@example.com"}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByEmails: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.GetByIDs(ctx, tx, nil); err != nil || len(rows) != 0 {
		t.Fatalf("GetByIDs(nil): err=%v len=%d", err, len(rows))
	}

	err := repo.UpdateMatchingProfile(ctx, tx, u.ID, MatchingProfile{
		Interests:     testutil.JSONTags(t, "go", "sql"),
		Skills:        testutil.JSONTags(t),
		LearningGoals: "backend",
	})
	if err != nil {
		t.Fatalf("UpdateMatchingProfile: %v", err)
	}
	rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs after update: err=%v len=%d", err, len(rows))
	}
	if got := string(rows[0].Interests); got != `["go","sql"]` || rows[0].LearningGoals != "backend" {
		t.Fatalf("profile not updated: interests=%s goals=%q", got, rows[0].LearningGoals)
	}
}

func TestUserRepoListByRole(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewUserRepo(db, testutil.Logger(t))

	paid := testutil.SeedInstructor(t, ctx, tx, "paid@example.com", true, "go")
	testutil.SeedInstructor(t, ctx, tx, "unpaid@example.com", false, "go")
	pending := testutil.SeedInstructor(t, ctx, tx, "pending@example.com", true, "go")
	if err := tx.Model(&types.User{}).Where("id = ?", pending.ID).Update("onboarding_completed", false).Error; err != nil {
		t.Fatalf("mark pending: %v", err)
	}
	testutil.SeedLearner(t, ctx, tx, "learner@example.com", "go")

	all, err := repo.ListByRole(ctx, tx, types.RoleInstructor, ListFilter{})
	if err != nil || len(all) != 3 {
		t.Fatalf("ListByRole all: err=%v len=%d", err, len(all))
	}
	onboarded, err := repo.ListByRole(ctx, tx, types.RoleInstructor, ListFilter{OnboardedOnly: true})
	if err != nil || len(onboarded) != 2 {
		t.Fatalf("ListByRole onboarded: err=%v len=%d", err, len(onboarded))
	}
	payable, err := repo.ListByRole(ctx, tx, types.RoleInstructor, ListFilter{OnboardedOnly: true, PaymentEnabledOnly: true})
	if err != nil || len(payable) != 1 || payable[0].ID != paid.ID {
		t.Fatalf("ListByRole payable: err=%v rows=%v", err, payable)
	}
	learners, err := repo.ListByRole(ctx, tx, types.RoleUser, ListFilter{})
	if err != nil || len(learners) != 1 {
		t.Fatalf("ListByRole learners: err=%v len=%d", err, len(learners))
	}
}
