package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type seedDepartment struct {
	name, code, hod string
	facultyCount    int
	description     string
}

type seedCourse struct {
	name, code string
	deptCode   string
	level      string
	duration   int
	seats      int
	fee        float64
}

// Seed populates the structured store with the campus data set.
// Seeding is idempotent: when departments already exist, nothing is
// written and the call is a no-op.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM departments").Scan(&count); err != nil {
		return fmt.Errorf("check seeded state: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	departments := []seedDepartment{
		{"Computer Science and Engineering", "CSE", "Dr. CSE Head", 120,
			"Flagship department offering cutting-edge programs in CS, AI/ML, Data Science, and Cybersecurity."},
		{"Electronics and Communication Engineering", "ECE", "Dr. ECE Head", 90,
			"Strong department with focus on VLSI, Embedded Systems, IoT, and Signal Processing."},
		{"Mechanical Engineering", "ME", "Dr. ME Head", 60,
			"Traditional engineering department covering Thermal, Design, Manufacturing, and Robotics."},
		{"Civil Engineering", "CE", "Dr. CE Head", 45,
			"Department focused on Structural, Environmental, and Transportation Engineering."},
		{"Electrical and Electronics Engineering", "EEE", "Dr. EEE Head", 55,
			"Department covering Power Systems, Control Systems, and Electrical Machines."},
		{"Information Technology", "IT", "Dr. IT Head", 50,
			"Department focused on Web Technologies, Database Systems, and Networking."},
		{"Business Administration", "MBA", "Dr. MBA Head", 40,
			"Management department offering MBA with specializations in Finance, Marketing, HR, and Analytics."},
		{"Biotechnology", "BT", "Dr. BT Head", 30,
			"Department covering Genetic Engineering, Bioinformatics, and Pharma Biotech."},
	}

	deptIDs := make(map[string]int, len(departments))
	for _, d := range departments {
		var id int
		if err := tx.QueryRow(ctx, `
			INSERT INTO departments (name, code, hod, faculty_count, description)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, d.name, d.code, d.hod, d.facultyCount, d.description).Scan(&id); err != nil {
			return fmt.Errorf("seed department %s: %w", d.code, err)
		}
		deptIDs[d.code] = id
	}

	courses := []seedCourse{
		{"B.Tech Computer Science and Engineering", "BCSE", "CSE", "UG", 4, 480, 180000},
		{"B.Tech CSE (AI & Machine Learning)", "BCSE-AIML", "CSE", "UG", 4, 120, 200000},
		{"B.Tech CSE (Data Science)", "BCSE-DS", "CSE", "UG", 4, 120, 200000},
		{"B.Tech CSE (Cyber Security)", "BCSE-CS", "CSE", "UG", 4, 60, 200000},
		{"M.Tech Computer Science", "MCSE", "CSE", "PG", 2, 60, 120000},
		{"B.Tech Electronics and Communication", "BECE", "ECE", "UG", 4, 300, 170000},
		{"B.Tech ECE (IoT)", "BECE-IoT", "ECE", "UG", 4, 60, 190000},
		{"M.Tech VLSI Design", "MVLSI", "ECE", "PG", 2, 30, 120000},
		{"B.Tech Mechanical Engineering", "BME", "ME", "UG", 4, 180, 160000},
		{"B.Tech Civil Engineering", "BCE", "CE", "UG", 4, 120, 150000},
		{"B.Tech EEE", "BEEE", "EEE", "UG", 4, 180, 160000},
		{"B.Tech Information Technology", "BIT", "IT", "UG", 4, 180, 170000},
		{"MBA", "MBA01", "MBA", "PG", 2, 120, 200000},
		{"B.Tech Biotechnology", "BBT", "BT", "UG", 4, 60, 150000},
	}
	for _, c := range courses {
		if _, err := tx.Exec(ctx, `
			INSERT INTO courses (name, code, department_id, level, duration_years, total_seats, fee_per_year)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, c.name, c.code, deptIDs[c.deptCode], c.level, c.duration, c.seats, c.fee); err != nil {
			return fmt.Errorf("seed course %s: %w", c.code, err)
		}
	}

	events := [][]any{
		{"SAMYAK 2026 - Annual Tech Fest", "tech",
			"The biggest technical festival on campus featuring hackathons, coding contests, robotics, and guest lectures. Open for all students.",
			"2026-03-15", "Main Campus"},
		{"AI/ML Workshop - Hands-on Deep Learning", "workshop",
			"A 2-day hands-on workshop on Deep Learning using PyTorch, covering CNNs, RNNs, and Transformers.",
			"2026-02-25", "CSE Seminar Hall"},
		{"Cloud Computing Bootcamp", "workshop",
			"3-day bootcamp on AWS and Azure covering EC2, S3, Lambda, and Azure Functions with hands-on labs.",
			"2026-03-05", "IT Lab Complex"},
		{"Campus Recruitment Drive - TCS", "placement",
			"TCS campus recruitment for B.Tech final year students. Eligibility: 60%+ aggregate, no active backlogs.",
			"2026-02-20", "Placement Cell"},
		{"Cybersecurity Awareness Seminar", "seminar",
			"Expert seminar on latest cybersecurity threats, ethical hacking, and career paths in cybersecurity.",
			"2026-03-10", "Main Auditorium"},
	}
	for _, e := range events {
		if _, err := tx.Exec(ctx, `
			INSERT INTO events (name, event_type, description, date, venue, is_upcoming)
			VALUES ($1, $2, $3, $4, $5, TRUE)
		`, e...); err != nil {
			return fmt.Errorf("seed event: %w", err)
		}
	}

	hostels := [][]any{
		{"Boys Hostel Block A", "boys", "Single AC", 120000.0, 200,
			"Wi-Fi, Hot water, Laundry, Common room, Study room, Power backup, Gym access"},
		{"Boys Hostel Block B", "boys", "Double Sharing AC", 90000.0, 500,
			"Wi-Fi, Hot water, Laundry, Common room, Study room, Power backup"},
		{"Boys Hostel Block C", "boys", "Triple Sharing Non-AC", 60000.0, 800,
			"Wi-Fi, Hot water, Common room, Study room, Power backup"},
		{"Girls Hostel Block A", "girls", "Single AC", 120000.0, 150,
			"Wi-Fi, Hot water, Laundry, Common room, Study room, Power backup, 24/7 security, CCTV"},
		{"Girls Hostel Block B", "girls", "Double Sharing AC", 90000.0, 400,
			"Wi-Fi, Hot water, Laundry, Common room, Study room, Power backup, 24/7 security, CCTV"},
	}
	for _, h := range hostels {
		if _, err := tx.Exec(ctx, `
			INSERT INTO hostel_info (hostel_name, hostel_type, room_type, fee_per_year, capacity, amenities)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, h...); err != nil {
			return fmt.Errorf("seed hostel: %w", err)
		}
	}

	faqs := [][]any{
		{"What is the KLUEEE exam?",
			"KLUEEE (KL University Engineering Entrance Exam) is the university's own entrance exam for B.Tech admissions. It tests students on Physics, Chemistry, and Mathematics. The exam is conducted online and scores are valid for admission to all B.Tech programs.",
			"admissions"},
		{"Is KLU a government or private university?",
			"KLU (Koneru Lakshmaiah Education Foundation) is a Deemed-to-be-University with private funding. It received the 'Deemed University' status from UGC in 2009 and has NAAC A++ accreditation.",
			"general"},
		{"What is the hostel curfew time?",
			"The hostel curfew time is 9:00 PM for all students. Entry and exit are monitored through biometric systems. Late permissions can be obtained from the hostel warden with valid reasons.",
			"hostel"},
		{"How can I apply for a scholarship?",
			"Scholarships are awarded based on KLUEEE/JEE rank, sports achievements, and economic background. Merit scholarships are automatically applied based on entrance exam performance. For need-based scholarships, apply through the Financial Aid office with income certificates.",
			"fees"},
		{"What companies visit for placements?",
			"500+ companies visit annually including Google, Microsoft, Amazon, TCS, Infosys, Wipro, Deloitte, Accenture, Capgemini, and many more. The highest package offered was 44 LPA and the average package is 6.5 LPA.",
			"placements"},
		{"Is there a dress code?",
			"Yes, there is a formal dress code. Students are expected to wear the university ID card at all times. Specific departments may have lab dress code requirements. Formals are required on placement days.",
			"general"},
		{"How do I access the LMS?",
			"The Learning Management System (LMS) can be accessed at the university portal using your student ID and password. It contains course materials, assignments, and recorded lectures. Contact the IT helpdesk if you face login issues.",
			"academic"},
		{"What is the anti-ragging policy?",
			"The university has a strict zero-tolerance anti-ragging policy in compliance with UGC regulations. An Anti-Ragging Committee and Squad monitors the campus. Any ragging incidents can be reported through the online portal or the 24/7 helpline. Strict disciplinary action including expulsion is taken against offenders.",
			"general"},
	}
	for _, f := range faqs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO faqs (question, answer, category)
			VALUES ($1, $2, $3)
		`, f...); err != nil {
			return fmt.Errorf("seed faq: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}

	return nil
}
