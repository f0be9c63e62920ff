package database_test

import (
	"context"
	"os"
	"testing"

	"github.com/campushq/campus-agent/database"
)

// openTestDB connects to the database named by CAMPUS_AGENT_TEST_DSN
// and ensures schema and seed data. Tests are skipped when the
// variable is unset.
func openTestDB(t *testing.T) *database.Store {
	t.Helper()

	dsn := os.Getenv("CAMPUS_AGENT_TEST_DSN")
	if dsn == "" {
		t.Skip("set CAMPUS_AGENT_TEST_DSN to run database integration tests")
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, dsn)
	if err != nil {
		t.Fatalf("postgres connection: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.EnsureSchema(ctx, pool, 768); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	// Running twice must be harmless.
	if err := database.EnsureSchema(ctx, pool, 768); err != nil {
		t.Fatalf("ensure schema (second run): %v", err)
	}

	if err := database.Seed(ctx, pool); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := database.Seed(ctx, pool); err != nil {
		t.Fatalf("seed (second run): %v", err)
	}

	return database.NewStore(pool)
}

func TestSearchCoursesMatchesDepartmentCode(t *testing.T) {
	store := openTestDB(t)

	courses, err := store.SearchCourses(context.Background(), "CSE")
	if err != nil {
		t.Fatalf("search courses: %v", err)
	}
	if len(courses) == 0 {
		t.Fatal("expected seeded CSE courses")
	}
	for _, c := range courses {
		if c.DepartmentName == "" {
			t.Fatalf("course %q missing department name", c.Name)
		}
	}
}

func TestSearchCoursesUnknownTermIsEmpty(t *testing.T) {
	store := openTestDB(t)

	courses, err := store.SearchCourses(context.Background(), "quantum basket weaving")
	if err != nil {
		t.Fatalf("search courses: %v", err)
	}
	if len(courses) != 0 {
		t.Fatalf("expected no matches, got %d", len(courses))
	}
}

func TestSearchDepartmentsIncludesCourseCount(t *testing.T) {
	store := openTestDB(t)

	depts, err := store.SearchDepartments(context.Background(), "Computer Science")
	if err != nil {
		t.Fatalf("search departments: %v", err)
	}
	if len(depts) == 0 {
		t.Fatal("expected seeded CSE department")
	}
	if depts[0].CourseCount == 0 {
		t.Fatalf("expected derived course count for %q", depts[0].Name)
	}
}

func TestSearchHostelsMatchesType(t *testing.T) {
	store := openTestDB(t)

	hostels, err := store.SearchHostels(context.Background(), "boys")
	if err != nil {
		t.Fatalf("search hostels: %v", err)
	}
	if len(hostels) != 3 {
		t.Fatalf("expected the three seeded boys blocks, got %d", len(hostels))
	}
	for _, h := range hostels {
		if h.Type != "boys" {
			t.Fatalf("hostel %q has type %q", h.Name, h.Type)
		}
		if h.FeePerYear <= 0 {
			t.Fatalf("hostel %q missing fee", h.Name)
		}
	}
}

func TestListUpcomingEventsReturnsSeededEvents(t *testing.T) {
	store := openTestDB(t)

	events, err := store.ListUpcomingEvents(context.Background())
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("expected seeded upcoming events")
	}
}

func TestListFAQsFiltersByCategory(t *testing.T) {
	store := openTestDB(t)
	ctx := context.Background()

	all, err := store.ListFAQs(ctx, "")
	if err != nil {
		t.Fatalf("list faqs: %v", err)
	}
	if len(all) == 0 {
		t.Fatal("expected seeded faqs")
	}

	admissions, err := store.ListFAQs(ctx, "admissions")
	if err != nil {
		t.Fatalf("list faqs by category: %v", err)
	}
	for _, f := range admissions {
		if f.Category != "admissions" {
			t.Fatalf("category filter leaked %q", f.Category)
		}
	}
	if len(admissions) == 0 || len(admissions) >= len(all) {
		t.Fatalf("expected a strict subset, got %d of %d", len(admissions), len(all))
	}
}

func TestPing(t *testing.T) {
	store := openTestDB(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
