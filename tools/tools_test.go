package tools_test

import (
	"context"
	"strings"
	"testing"

	"github.com/campushq/campus-agent/database"
	"github.com/campushq/campus-agent/index"
	"github.com/campushq/campus-agent/tools"
)

type fakeStore struct {
	courses     []database.Course
	departments []database.Department
	events      []database.Event
	hostels     []database.HostelOption
	faqs        []database.FAQEntry
	err         error
}

func (f *fakeStore) SearchCourses(ctx context.Context, term string) ([]database.Course, error) {
	return f.courses, f.err
}

func (f *fakeStore) SearchDepartments(ctx context.Context, term string) ([]database.Department, error) {
	return f.departments, f.err
}

func (f *fakeStore) SearchEvents(ctx context.Context, term string) ([]database.Event, error) {
	return f.events, f.err
}

func (f *fakeStore) SearchHostels(ctx context.Context, term string) ([]database.HostelOption, error) {
	return f.hostels, f.err
}

func (f *fakeStore) SearchFAQs(ctx context.Context, term string) ([]database.FAQEntry, error) {
	return f.faqs, f.err
}

var _ tools.EntityStore = (*fakeStore)(nil)

type fakeRetriever struct {
	chunks []index.Chunk
	err    error
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string, k int) ([]index.Chunk, error) {
	return f.chunks, f.err
}

var _ tools.Retriever = (*fakeRetriever)(nil)

func TestParseKindIsLenient(t *testing.T) {
	cases := map[string]tools.Kind{
		"QueryCourses":          tools.KindQueryCourses,
		"querycourses":          tools.KindQueryCourses,
		"  SearchKnowledgeBase": tools.KindSearchKnowledgeBase,
		"\"QueryFAQs\"":         tools.KindQueryFAQs,
		"`QueryEvents`":         tools.KindQueryEvents,
	}
	for raw, want := range cases {
		got, ok := tools.ParseKind(raw)
		if !ok || got != want {
			t.Fatalf("ParseKind(%q) = %q, %v; want %q", raw, got, ok, want)
		}
	}

	if _, ok := tools.ParseKind("QueryWeather"); ok {
		t.Fatal("expected unknown tool name to be rejected")
	}
}

func TestSourceLabels(t *testing.T) {
	if got := tools.SourceLabel(tools.KindSearchKnowledgeBase); got != "Knowledge Base (Documents)" {
		t.Fatalf("unexpected knowledge base label: %q", got)
	}
	for _, k := range []tools.Kind{tools.KindQueryCourses, tools.KindQueryEvents, tools.KindQueryHostel, tools.KindQueryFAQs, tools.KindQueryDepartments} {
		if got := tools.SourceLabel(k); got != "College Database" {
			t.Fatalf("unexpected label for %s: %q", k, got)
		}
	}
}

func TestNoResultMessages(t *testing.T) {
	reg := tools.NewRegistry(&fakeRetriever{}, &fakeStore{}, 5)
	ctx := context.Background()

	cases := map[tools.Kind]string{
		tools.KindSearchKnowledgeBase: "No relevant information found in the knowledge base.",
		tools.KindQueryCourses:        "No courses found matching 'quantum basket weaving'.",
		tools.KindQueryEvents:         "No upcoming events found matching 'quantum basket weaving'.",
		tools.KindQueryHostel:         "No hostel information found matching 'quantum basket weaving'.",
		tools.KindQueryFAQs:           "No FAQs found matching 'quantum basket weaving'.",
		tools.KindQueryDepartments:    "No departments found matching 'quantum basket weaving'.",
	}
	for kind, want := range cases {
		got, err := reg.Run(ctx, kind, "quantum basket weaving")
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		if got != want {
			t.Fatalf("%s observation mismatch:\ngot:  %q\nwant: %q", kind, got, want)
		}
	}
}

func TestSearchKnowledgeBaseFormatsChunks(t *testing.T) {
	reg := tools.NewRegistry(&fakeRetriever{chunks: []index.Chunk{
		{Content: "Admissions open in March.", Category: "admissions"},
		{Content: "Campus spans 100 acres.", Category: ""},
	}}, &fakeStore{}, 5)

	got, err := reg.Run(context.Background(), tools.KindSearchKnowledgeBase, "admissions")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := "[Source: admissions]\nAdmissions open in March.\n\n---\n\n[Source: general]\nCampus spans 100 acres."
	if got != want {
		t.Fatalf("observation mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestSearchKnowledgeBaseWithoutRetriever(t *testing.T) {
	reg := tools.NewRegistry(nil, &fakeStore{}, 5)

	got, err := reg.Run(context.Background(), tools.KindSearchKnowledgeBase, "anything")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got != "Knowledge base is not available." {
		t.Fatalf("unexpected observation: %q", got)
	}
}

func TestQueryCoursesRendersFeeWithRupeeSymbol(t *testing.T) {
	reg := tools.NewRegistry(nil, &fakeStore{courses: []database.Course{{
		Name:           "B.Tech Computer Science",
		Code:           "BT-CSE",
		DepartmentName: "Computer Science and Engineering",
		Level:          "UG",
		DurationYears:  4,
		TotalSeats:     480,
		FeePerYear:     260000,
	}}}, 5)

	got, err := reg.Run(context.Background(), tools.KindQueryCourses, "cse")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if !strings.HasPrefix(got, "Found 1 course(s):") {
		t.Fatalf("missing count header: %q", got)
	}
	for _, want := range []string{
		"• B.Tech Computer Science (BT-CSE)",
		"Department: Computer Science and Engineering",
		"Level: UG | Duration: 4 years",
		"Seats: 480 | Fee: ₹260,000/year",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in observation:\n%s", want, got)
		}
	}
}

func TestQueryHostelRendersAmenities(t *testing.T) {
	reg := tools.NewRegistry(nil, &fakeStore{hostels: []database.HostelOption{{
		Name:       "Block A",
		Type:       "Boys",
		RoomType:   "Double Sharing AC",
		FeePerYear: 95000,
		Capacity:   400,
		Amenities:  "WiFi, Laundry, Gym",
	}}}, 5)

	got, err := reg.Run(context.Background(), tools.KindQueryHostel, "boys")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, want := range []string{
		"Found 1 hostel option(s):",
		"Type: Boys | Room: Double Sharing AC",
		"Fee: ₹95,000/year | Capacity: 400",
		"Amenities: WiFi, Laundry, Gym",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in observation:\n%s", want, got)
		}
	}
}

func TestQueryFAQsRendersQAPairs(t *testing.T) {
	reg := tools.NewRegistry(nil, &fakeStore{faqs: []database.FAQEntry{
		{Question: "When do classes start?", Answer: "July for odd semester."},
		{Question: "Is hostel mandatory?", Answer: "No."},
	}}, 5)

	got, err := reg.Run(context.Background(), tools.KindQueryFAQs, "classes")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := "Q: When do classes start?\nA: July for odd semester.\n\nQ: Is hostel mandatory?\nA: No."
	if got != want {
		t.Fatalf("observation mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestQueryDepartmentsIncludesDerivedCourseCount(t *testing.T) {
	reg := tools.NewRegistry(nil, &fakeStore{departments: []database.Department{{
		Name:         "Computer Science and Engineering",
		Code:         "CSE",
		HOD:          "Dr. CSE Head",
		FacultyCount: 120,
		CourseCount:  4,
		Description:  "Flagship engineering department.",
	}}}, 5)

	got, err := reg.Run(context.Background(), tools.KindQueryDepartments, "cse")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, want := range []string{
		"Found 1 department(s):",
		"Computer Science and Engineering (CSE)",
		"HOD: Dr. CSE Head",
		"Faculty: 120 | Courses: 4",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in observation:\n%s", want, got)
		}
	}
}

func TestRunRejectsUnknownKind(t *testing.T) {
	reg := tools.NewRegistry(nil, &fakeStore{}, 5)
	if _, err := reg.Run(context.Background(), tools.Kind("Bogus"), "x"); err == nil {
		t.Fatal("expected error for unknown tool kind")
	}
}
