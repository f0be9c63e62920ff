// Package tools implements the structured query tools the agent can
// invoke: one retrieval tool over the knowledge index and five lookup
// tools over the relational store.
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/campushq/campus-agent/database"
	"github.com/campushq/campus-agent/index"
)

// Kind identifies one of the agent's tools.
type Kind string

const (
	KindSearchKnowledgeBase Kind = "SearchKnowledgeBase"
	KindQueryCourses        Kind = "QueryCourses"
	KindQueryEvents         Kind = "QueryEvents"
	KindQueryHostel         Kind = "QueryHostel"
	KindQueryFAQs           Kind = "QueryFAQs"
	KindQueryDepartments    Kind = "QueryDepartments"
)

// Kinds lists every tool in registration order.
var Kinds = []Kind{
	KindSearchKnowledgeBase,
	KindQueryCourses,
	KindQueryEvents,
	KindQueryHostel,
	KindQueryFAQs,
	KindQueryDepartments,
}

// descriptions are shown to the model so it can pick a tool.
var descriptions = map[Kind]string{
	KindSearchKnowledgeBase: "Search the university knowledge base for general information about admissions, fees, placements, campus facilities, academic calendar, student clubs, events, and university overview. Use this for broad or general questions.",
	KindQueryCourses:        "Query the database for specific course information including course names, departments, fees, seats, and duration. Use when user asks about specific courses or programs.",
	KindQueryEvents:         "Query upcoming events, workshops, seminars, and fests. Use when user asks about events or activities.",
	KindQueryHostel:         "Query hostel details including room types, fees, amenities, and capacity. Use when user asks about accommodation.",
	KindQueryFAQs:           "Search frequently asked questions. Use when the question seems like a common query.",
	KindQueryDepartments:    "Query department information including HOD, faculty count, and description. Use when user asks about specific departments.",
}

// ParseKind resolves a model-emitted tool name to a Kind. Matching is
// case-insensitive and tolerates surrounding whitespace, quotes, and
// backticks, since models garble action names in exactly those ways.
func ParseKind(name string) (Kind, bool) {
	cleaned := strings.TrimSpace(name)
	cleaned = strings.Trim(cleaned, "`\"'")
	cleaned = strings.TrimSpace(cleaned)
	for _, k := range Kinds {
		if strings.EqualFold(cleaned, string(k)) {
			return k, true
		}
	}
	return "", false
}

// SourceLabel maps a tool to the user-facing source attribution.
func SourceLabel(k Kind) string {
	if k == KindSearchKnowledgeBase {
		return "Knowledge Base (Documents)"
	}
	return "College Database"
}

// Retriever is the slice of the index the retrieval tool needs.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]index.Chunk, error)
}

// EntityStore is the slice of the relational store the query tools
// need.
type EntityStore interface {
	SearchCourses(ctx context.Context, term string) ([]database.Course, error)
	SearchDepartments(ctx context.Context, term string) ([]database.Department, error)
	SearchEvents(ctx context.Context, term string) ([]database.Event, error)
	SearchHostels(ctx context.Context, term string) ([]database.HostelOption, error)
	SearchFAQs(ctx context.Context, term string) ([]database.FAQEntry, error)
}

// Registry dispatches tool invocations. A nil retriever is allowed:
// the knowledge base tool reports unavailability instead of failing.
type Registry struct {
	retriever Retriever
	store     EntityStore
	topK      int
}

func NewRegistry(retriever Retriever, store EntityStore, topK int) *Registry {
	if topK <= 0 {
		topK = 5
	}
	return &Registry{retriever: retriever, store: store, topK: topK}
}

// Describe renders the tool list for the agent prompt, one
// "Name: description" line per tool.
func (r *Registry) Describe() string {
	lines := make([]string, 0, len(Kinds))
	for _, k := range Kinds {
		lines = append(lines, fmt.Sprintf("%s: %s", k, descriptions[k]))
	}
	return strings.Join(lines, "\n")
}

// Names returns the comma-separated tool names for the agent prompt.
func (r *Registry) Names() string {
	names := make([]string, 0, len(Kinds))
	for _, k := range Kinds {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

// Run executes the named tool and returns its observation text.
// Empty results are an observation, not an error; errors mean the
// backing store itself failed.
func (r *Registry) Run(ctx context.Context, kind Kind, input string) (string, error) {
	switch kind {
	case KindSearchKnowledgeBase:
		return r.searchKnowledgeBase(ctx, input)
	case KindQueryCourses:
		return r.queryCourses(ctx, input)
	case KindQueryEvents:
		return r.queryEvents(ctx, input)
	case KindQueryHostel:
		return r.queryHostel(ctx, input)
	case KindQueryFAQs:
		return r.queryFAQs(ctx, input)
	case KindQueryDepartments:
		return r.queryDepartments(ctx, input)
	default:
		return "", fmt.Errorf("unknown tool %q", kind)
	}
}

func (r *Registry) searchKnowledgeBase(ctx context.Context, query string) (string, error) {
	if r.retriever == nil {
		return "Knowledge base is not available.", nil
	}
	chunks, err := r.retriever.Retrieve(ctx, query, r.topK)
	if err != nil {
		return "", fmt.Errorf("search knowledge base: %w", err)
	}
	if len(chunks) == 0 {
		return "No relevant information found in the knowledge base.", nil
	}

	results := make([]string, 0, len(chunks))
	for _, c := range chunks {
		category := c.Category
		if category == "" {
			category = "general"
		}
		results = append(results, fmt.Sprintf("[Source: %s]\n%s", category, c.Content))
	}
	return strings.Join(results, "\n\n---\n\n"), nil
}

func (r *Registry) queryCourses(ctx context.Context, query string) (string, error) {
	courses, err := r.store.SearchCourses(ctx, query)
	if err != nil {
		return "", fmt.Errorf("query courses: %w", err)
	}
	if len(courses) == 0 {
		return fmt.Sprintf("No courses found matching '%s'.", query), nil
	}

	results := make([]string, 0, len(courses))
	for _, c := range courses {
		results = append(results, fmt.Sprintf(
			"• %s (%s)\n  Department: %s\n  Level: %s | Duration: %d years\n  Seats: %d | Fee: %s/year",
			c.Name, c.Code, c.DepartmentName, c.Level, c.DurationYears, c.TotalSeats, formatINR(c.FeePerYear),
		))
	}
	return fmt.Sprintf("Found %d course(s):\n\n%s", len(courses), strings.Join(results, "\n\n")), nil
}

func (r *Registry) queryEvents(ctx context.Context, query string) (string, error) {
	events, err := r.store.SearchEvents(ctx, query)
	if err != nil {
		return "", fmt.Errorf("query events: %w", err)
	}
	if len(events) == 0 {
		return fmt.Sprintf("No upcoming events found matching '%s'.", query), nil
	}

	results := make([]string, 0, len(events))
	for _, e := range events {
		results = append(results, fmt.Sprintf(
			"📅 %s\n   Type: %s | Date: %s\n   Venue: %s\n   %s",
			e.Name, e.Type, e.Date, e.Venue, e.Description,
		))
	}
	return fmt.Sprintf("Found %d upcoming event(s):\n\n%s", len(events), strings.Join(results, "\n\n")), nil
}

func (r *Registry) queryHostel(ctx context.Context, query string) (string, error) {
	hostels, err := r.store.SearchHostels(ctx, query)
	if err != nil {
		return "", fmt.Errorf("query hostel: %w", err)
	}
	if len(hostels) == 0 {
		return fmt.Sprintf("No hostel information found matching '%s'.", query), nil
	}

	results := make([]string, 0, len(hostels))
	for _, h := range hostels {
		results = append(results, fmt.Sprintf(
			"🏠 %s\n   Type: %s | Room: %s\n   Fee: %s/year | Capacity: %d\n   Amenities: %s",
			h.Name, h.Type, h.RoomType, formatINR(h.FeePerYear), h.Capacity, h.Amenities,
		))
	}
	return fmt.Sprintf("Found %d hostel option(s):\n\n%s", len(hostels), strings.Join(results, "\n\n")), nil
}

func (r *Registry) queryFAQs(ctx context.Context, query string) (string, error) {
	faqs, err := r.store.SearchFAQs(ctx, query)
	if err != nil {
		return "", fmt.Errorf("query faqs: %w", err)
	}
	if len(faqs) == 0 {
		return fmt.Sprintf("No FAQs found matching '%s'.", query), nil
	}

	results := make([]string, 0, len(faqs))
	for _, f := range faqs {
		results = append(results, fmt.Sprintf("Q: %s\nA: %s", f.Question, f.Answer))
	}
	return strings.Join(results, "\n\n"), nil
}

func (r *Registry) queryDepartments(ctx context.Context, query string) (string, error) {
	depts, err := r.store.SearchDepartments(ctx, query)
	if err != nil {
		return "", fmt.Errorf("query departments: %w", err)
	}
	if len(depts) == 0 {
		return fmt.Sprintf("No departments found matching '%s'.", query), nil
	}

	results := make([]string, 0, len(depts))
	for _, d := range depts {
		results = append(results, fmt.Sprintf(
			"🏛️ %s (%s)\n   HOD: %s\n   Faculty: %d | Courses: %d\n   %s",
			d.Name, d.Code, d.HOD, d.FacultyCount, d.CourseCount, d.Description,
		))
	}
	return fmt.Sprintf("Found %d department(s):\n\n%s", len(depts), strings.Join(results, "\n\n")), nil
}
