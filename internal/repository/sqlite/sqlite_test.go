package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	ccdb "github.com/careerforge/backend/db"
	"github.com/careerforge/backend/internal/db"
	"github.com/careerforge/backend/internal/repository/sqlite"
	"github.com/careerforge/backend/internal/stage"
	"github.com/careerforge/backend/pkg/models"
	"github.com/careerforge/backend/pkg/repository"
)

var dbSeq int

func setupRepo(t *testing.T) (*sqlite.SQLiteRepo, *db.DB) {
	t.Helper()
	ctx := context.Background()

	dbSeq++
	dsn := fmt.Sprintf("file:sqliterepo%d?mode=memory&cache=shared", dbSeq)
	d, err := db.New(ctx, dsn, nil)
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := db.Migrate(ctx, d, ccdb.Migrations, ccdb.SeedFiles); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return sqlite.New(d, nil), d
}

func TestUserRoundTrip(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	u := &models.User{
		ID:           uuid.NewString(),
		Platform:     models.PlatformCareerForge,
		FirstName:    "Ada",
		Email:        "ada@example.com",
		PasswordHash: "hash",
	}
	if err := repo.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.Created == 0 || u.Updated == 0 {
		t.Error("timestamps not set on create")
	}

	got, err := repo.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got == nil || got.Email != "ada@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
	// nullable columns written as empty strings come back empty
	if got.LastName != "" || got.JobTitle != "" {
		t.Errorf("expected empty optional fields, got %+v", got)
	}

	byEmail, err := repo.GetUserByEmail(ctx, models.PlatformCareerForge, "ada@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if byEmail == nil || byEmail.ID != u.ID {
		t.Fatalf("lookup by email: %+v", byEmail)
	}

	// same email on the other platform is a separate namespace
	other, err := repo.GetUserByEmail(ctx, models.PlatformTalentHub, "ada@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail other platform: %v", err)
	}
	if other != nil {
		t.Error("email lookup crossed platform boundary")
	}
}

func TestUserDuplicateEmailOnPlatform(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	u := &models.User{ID: uuid.NewString(), Platform: models.PlatformCareerForge, FirstName: "A", Email: "dup@example.com", PasswordHash: "h"}
	if err := repo.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	dup := &models.User{ID: uuid.NewString(), Platform: models.PlatformCareerForge, FirstName: "B", Email: "dup@example.com", PasswordHash: "h"}
	if err := repo.CreateUser(ctx, dup); err == nil {
		t.Fatal("expected unique constraint error for duplicate email")
	}
}

func seedRecruiterWithPosition(t *testing.T, repo *sqlite.SQLiteRepo) (userID, orgID, posID string) {
	t.Helper()
	ctx := context.Background()

	u := &models.User{ID: uuid.NewString(), Platform: models.PlatformTalentHub, FirstName: "Rec", Email: uuid.NewString() + "@example.com", PasswordHash: "h"}
	if err := repo.CreateUser(ctx, u); err != nil {
		t.Fatalf("seed recruiter: %v", err)
	}
	org := &models.Organization{ID: uuid.NewString(), CreatedBy: u.ID, Name: "Acme Corp", LogoURL: "https://example.com/logo.png"}
	if err := repo.CreateOrganization(ctx, org); err != nil {
		t.Fatalf("seed organization: %v", err)
	}
	p := &models.Position{ID: uuid.NewString(), UserID: u.ID, OrganizationID: org.ID, Title: "Backend Engineer", City: "Toronto"}
	if err := repo.CreatePosition(ctx, p); err != nil {
		t.Fatalf("seed position: %v", err)
	}
	return u.ID, org.ID, p.ID
}

func TestGetPositionInfoJoinsOrganization(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	_, _, posID := seedRecruiterWithPosition(t, repo)

	info, err := repo.GetPositionInfo(ctx, posID)
	if err != nil {
		t.Fatalf("GetPositionInfo: %v", err)
	}
	if info == nil {
		t.Fatal("GetPositionInfo returned nil for existing position")
	}
	if info.Title != "Backend Engineer" || info.OrganizationName != "Acme Corp" {
		t.Errorf("unexpected info: %+v", info)
	}
	if info.OrganizationLogo != "https://example.com/logo.png" {
		t.Errorf("logo = %q", info.OrganizationLogo)
	}

	missing, err := repo.GetPositionInfo(ctx, "nope")
	if err != nil {
		t.Fatalf("GetPositionInfo missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing position, got %+v", missing)
	}
}

func TestTrackedApplicationStoresCanonicalStage(t *testing.T) {
	repo, d := setupRepo(t)
	ctx := context.Background()
	_, _, posID := seedRecruiterWithPosition(t, repo)

	candidate := &models.User{ID: uuid.NewString(), Platform: models.PlatformCareerForge, FirstName: "C", Email: uuid.NewString() + "@example.com", PasswordHash: "h"}
	if err := repo.CreateUser(ctx, candidate); err != nil {
		t.Fatalf("seed candidate: %v", err)
	}

	m, err := stage.WithDefaults(stage.Map{"interview-2": true, "saved": true, "applied": true, "interview-1": true})
	if err != nil {
		t.Fatalf("WithDefaults: %v", err)
	}
	app := &models.TrackedApplication{
		ID:         uuid.NewString(),
		UserID:     candidate.ID,
		PositionID: posID,
		Stage:      m,
	}
	if err := repo.CreateTrackedApplication(ctx, app); err != nil {
		t.Fatalf("CreateTrackedApplication: %v", err)
	}

	// the stage column holds the canonical key order regardless of how the
	// map was assembled
	var raw string
	row := d.QueryRow(ctx, `SELECT stage FROM tracked_applications WHERE id = ?`, app.ID)
	if err := row.Scan(&raw); err != nil {
		t.Fatalf("scan stage column: %v", err)
	}
	want := `{"saved":true,"applied":true,"interview-1":true,"interview-2":true,"offer":false,"hired":false,"past-roles":false,"ineligible":false}`
	if raw != want {
		t.Errorf("stored stage = %s, want %s", raw, want)
	}

	got, err := repo.GetTrackedApplication(ctx, candidate.ID, posID)
	if err != nil {
		t.Fatalf("GetTrackedApplication: %v", err)
	}
	if got == nil || !got.Stage["interview-2"] {
		t.Fatalf("round trip lost stage data: %+v", got)
	}
}

func TestTrackedApplicationUniquePair(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	_, _, posID := seedRecruiterWithPosition(t, repo)

	candidate := &models.User{ID: uuid.NewString(), Platform: models.PlatformCareerForge, FirstName: "C", Email: uuid.NewString() + "@example.com", PasswordHash: "h"}
	if err := repo.CreateUser(ctx, candidate); err != nil {
		t.Fatalf("seed candidate: %v", err)
	}

	m, _ := stage.WithDefaults(nil)
	first := &models.TrackedApplication{ID: uuid.NewString(), UserID: candidate.ID, PositionID: posID, Stage: m}
	if err := repo.CreateTrackedApplication(ctx, first); err != nil {
		t.Fatalf("first create: %v", err)
	}
	second := &models.TrackedApplication{ID: uuid.NewString(), UserID: candidate.ID, PositionID: posID, Stage: m}
	if err := repo.CreateTrackedApplication(ctx, second); err == nil {
		t.Fatal("expected unique constraint error for duplicate (user, position) pair")
	}
}

func TestTrackedApplicationStaleUpdateRejected(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	_, _, posID := seedRecruiterWithPosition(t, repo)

	candidate := &models.User{ID: uuid.NewString(), Platform: models.PlatformCareerForge, FirstName: "C", Email: uuid.NewString() + "@example.com", PasswordHash: "h"}
	if err := repo.CreateUser(ctx, candidate); err != nil {
		t.Fatalf("seed candidate: %v", err)
	}

	m, _ := stage.WithDefaults(nil)
	app := &models.TrackedApplication{ID: uuid.NewString(), UserID: candidate.ID, PositionID: posID, Stage: m}
	if err := repo.CreateTrackedApplication(ctx, app); err != nil {
		t.Fatalf("create: %v", err)
	}

	// a writer holding an outdated timestamp loses
	stale := *app
	stale.Updated -= 1000
	stale.Notes = "from the past"
	if err := repo.UpdateTrackedApplication(ctx, &stale); !errors.Is(err, repository.ErrStaleRecord) {
		t.Fatalf("stale update: got %v, want ErrStaleRecord", err)
	}

	// the current holder still updates fine
	app.Notes = "current"
	if err := repo.UpdateTrackedApplication(ctx, app); err != nil {
		t.Fatalf("fresh update: %v", err)
	}
	got, err := repo.GetTrackedApplication(ctx, candidate.ID, posID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Notes != "current" {
		t.Errorf("notes = %q", got.Notes)
	}
}

func TestMilestoneTasksRoundTrip(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	u := &models.User{ID: uuid.NewString(), Platform: models.PlatformCareerForge, FirstName: "C", Email: uuid.NewString() + "@example.com", PasswordHash: "h"}
	if err := repo.CreateUser(ctx, u); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	m := &models.Milestone{
		ID:     uuid.NewString(),
		UserID: u.ID,
		Name:   "Apply to five roles",
		Tasks:  map[string]bool{"update resume": true, "write outreach notes": false},
	}
	if err := repo.CreateMilestone(ctx, m); err != nil {
		t.Fatalf("CreateMilestone: %v", err)
	}

	got, err := repo.GetMilestoneByID(ctx, u.ID, m.ID)
	if err != nil {
		t.Fatalf("GetMilestoneByID: %v", err)
	}
	if got == nil || len(got.Tasks) != 2 || !got.Tasks["update resume"] {
		t.Fatalf("tasks round trip: %+v", got)
	}

	// scoped to the owning user
	other, err := repo.GetMilestoneByID(ctx, "someone-else", m.ID)
	if err != nil {
		t.Fatalf("GetMilestoneByID other user: %v", err)
	}
	if other != nil {
		t.Error("milestone lookup crossed user boundary")
	}
}

func TestSeededSchemaIsQueryable(t *testing.T) {
	repo, _ := setupRepo(t)

	s, err := repo.GetSchemaByVersion(context.Background(), "cover_letter_v1")
	if err != nil {
		t.Fatalf("GetSchemaByVersion: %v", err)
	}
	if s == nil || s.SchemaJSON == "" {
		t.Fatalf("expected seeded schema, got %+v", s)
	}

	missing, err := repo.GetSchemaByVersion(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetSchemaByVersion missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing schema version, got %+v", missing)
	}
}
