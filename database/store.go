package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store provides read-only lookups over the structured entities.
// All matching is case-insensitive substring matching against a fixed
// field set per entity kind. Store never mutates entity data and is
// safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Ping reports whether the underlying database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	var one int
	if err := s.pool.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// SearchCourses matches against course name, department name,
// department code, and course level. The department name is resolved
// by join; courses with an unresolved reference report "N/A".
func (s *Store) SearchCourses(ctx context.Context, term string) ([]Course, error) {
	pattern := "%" + term + "%"
	rows, err := s.pool.Query(ctx, `
		SELECT c.id, c.name, c.code, COALESCE(d.name, 'N/A'),
		       COALESCE(c.level, ''), COALESCE(c.duration_years, 0),
		       COALESCE(c.total_seats, 0), COALESCE(c.fee_per_year, 0)
		FROM courses c
		LEFT JOIN departments d ON d.id = c.department_id
		WHERE c.name ILIKE $1
		   OR d.name ILIKE $1
		   OR d.code ILIKE $1
		   OR c.level ILIKE $1
		ORDER BY c.id
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer rows.Close()

	var results []Course
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.DepartmentName, &c.Level, &c.DurationYears, &c.TotalSeats, &c.FeePerYear); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// SearchDepartments matches against department name and code. The
// course count is computed per department at query time.
func (s *Store) SearchDepartments(ctx context.Context, term string) ([]Department, error) {
	pattern := "%" + term + "%"
	rows, err := s.pool.Query(ctx, `
		SELECT d.id, d.name, d.code, COALESCE(d.hod, ''),
		       COALESCE(d.faculty_count, 0), COALESCE(d.description, ''),
		       (SELECT COUNT(*) FROM courses c WHERE c.department_id = d.id)
		FROM departments d
		WHERE d.name ILIKE $1 OR d.code ILIKE $1
		ORDER BY d.id
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("query departments: %w", err)
	}
	defer rows.Close()

	var results []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Code, &d.HOD, &d.FacultyCount, &d.Description, &d.CourseCount); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		results = append(results, d)
	}
	return results, rows.Err()
}

// SearchEvents matches against event name, type, and description.
// Only events flagged upcoming are returned.
func (s *Store) SearchEvents(ctx context.Context, term string) ([]Event, error) {
	pattern := "%" + term + "%"
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, COALESCE(event_type, ''), COALESCE(description, ''),
		       COALESCE(date, ''), COALESCE(venue, '')
		FROM events
		WHERE is_upcoming = TRUE
		  AND (name ILIKE $1 OR event_type ILIKE $1 OR description ILIKE $1)
		ORDER BY date
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListUpcomingEvents returns every event flagged upcoming.
func (s *Store) ListUpcomingEvents(ctx context.Context) ([]Event, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, COALESCE(event_type, ''), COALESCE(description, ''),
		       COALESCE(date, ''), COALESCE(venue, '')
		FROM events
		WHERE is_upcoming = TRUE
		ORDER BY date
	`)
	if err != nil {
		return nil, fmt.Errorf("query upcoming events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// SearchHostels matches against hostel name, type, and room type.
func (s *Store) SearchHostels(ctx context.Context, term string) ([]HostelOption, error) {
	pattern := "%" + term + "%"
	rows, err := s.pool.Query(ctx, `
		SELECT id, hostel_name, COALESCE(hostel_type, ''), COALESCE(room_type, ''),
		       COALESCE(fee_per_year, 0), COALESCE(capacity, 0), COALESCE(amenities, '')
		FROM hostel_info
		WHERE hostel_name ILIKE $1 OR hostel_type ILIKE $1 OR room_type ILIKE $1
		ORDER BY id
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("query hostels: %w", err)
	}
	defer rows.Close()

	var results []HostelOption
	for rows.Next() {
		var h HostelOption
		if err := rows.Scan(&h.ID, &h.Name, &h.Type, &h.RoomType, &h.FeePerYear, &h.Capacity, &h.Amenities); err != nil {
			return nil, fmt.Errorf("scan hostel: %w", err)
		}
		results = append(results, h)
	}
	return results, rows.Err()
}

// SearchFAQs matches against question, answer, and category. Results
// are capped at five entries.
func (s *Store) SearchFAQs(ctx context.Context, term string) ([]FAQEntry, error) {
	pattern := "%" + term + "%"
	rows, err := s.pool.Query(ctx, `
		SELECT id, question, answer, COALESCE(category, '')
		FROM faqs
		WHERE question ILIKE $1 OR answer ILIKE $1 OR category ILIKE $1
		ORDER BY id
		LIMIT 5
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("query faqs: %w", err)
	}
	defer rows.Close()
	return scanFAQs(rows)
}

// ListFAQs returns all FAQs, optionally filtered by exact category.
func (s *Store) ListFAQs(ctx context.Context, category string) ([]FAQEntry, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if category == "" {
		rows, err = s.pool.Query(ctx, `
			SELECT id, question, answer, COALESCE(category, '')
			FROM faqs ORDER BY id
		`)
	} else {
		rows, err = s.pool.Query(ctx, `
			SELECT id, question, answer, COALESCE(category, '')
			FROM faqs WHERE category = $1 ORDER BY id
		`, category)
	}
	if err != nil {
		return nil, fmt.Errorf("query faqs: %w", err)
	}
	defer rows.Close()
	return scanFAQs(rows)
}

func scanEvents(rows pgx.Rows) ([]Event, error) {
	var results []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Type, &e.Description, &e.Date, &e.Venue); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

func scanFAQs(rows pgx.Rows) ([]FAQEntry, error) {
	var results []FAQEntry
	for rows.Next() {
		var f FAQEntry
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Category); err != nil {
			return nil, fmt.Errorf("scan faq: %w", err)
		}
		results = append(results, f)
	}
	return results, rows.Err()
}
