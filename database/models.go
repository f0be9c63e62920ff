// Package database owns the relational store: connection setup, schema,
// seed data, and read-only lookups over the structured entities.
package database

// Department is an academic department. Departments own courses.
type Department struct {
	ID           int
	Name         string
	Code         string
	HOD          string
	FacultyCount int
	Description  string

	// CourseCount is derived at query time, never stored.
	CourseCount int
}

// Course is a degree program offered by a department. DepartmentName
// is resolved by join at query time; "N/A" when the reference does not
// resolve.
type Course struct {
	ID             int
	Name           string
	Code           string
	DepartmentName string
	Level          string
	DurationYears  int
	TotalSeats     int
	FeePerYear     float64
}

// Event is a campus event. Only rows flagged upcoming are served.
type Event struct {
	ID          int
	Name        string
	Type        string
	Description string
	Date        string
	Venue       string
}

// HostelOption describes one hostel block and room tier.
type HostelOption struct {
	ID         int
	Name       string
	Type       string
	RoomType   string
	FeePerYear float64
	Capacity   int
	Amenities  string
}

// FAQEntry is a canned question/answer pair.
type FAQEntry struct {
	ID       int
	Question string
	Answer   string
	Category string
}
