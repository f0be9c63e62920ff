package knowledge

import (
	"fmt"
	"strings"
)

// ExtractSections assembles domain-aware passages from the recognized
// top-level sections of the knowledge record. Sections absent from the
// input produce no passages; missing sub-fields degrade to "N/A" or
// empty values. Unrecognized top-level keys are ignored here and
// picked up by Flatten instead.
func ExtractSections(root Node) []Passage {
	data, ok := root.(*Object)
	if !ok {
		return nil
	}

	var passages []Passage
	add := func(category, content string) {
		passages = append(passages, Passage{
			Content:  content,
			Category: category,
			Source:   SourceKnowledgeBase,
		})
	}

	if overview := data.Child("university_overview"); overview != nil {
		add("overview", overviewPassage(overview))
	}

	if admissions := data.Child("admissions"); admissions != nil {
		if ug := admissions.Child("undergraduate"); ug != nil {
			if btech := ug.Child("btech"); btech != nil {
				add("admissions", btechAdmissionsPassage(btech))
			}
		}
		if pg := admissions.Child("postgraduate"); pg != nil {
			if mba := pg.Child("mba"); mba != nil {
				add("admissions", mbaAdmissionsPassage(mba))
			}
		}
		if phd := admissions.Child("phd"); phd != nil {
			add("admissions", phdAdmissionsPassage(phd))
		}
	}

	for _, item := range data.Items("departments") {
		if dept, ok := item.(*Object); ok {
			add("departments", departmentPassage(dept))
		}
	}

	if placements := data.Child("placements"); placements != nil {
		add("placements", placementsPassage(placements))
	}

	if facilities := data.Child("campus_facilities"); facilities != nil {
		if academic := facilities.Child("academic"); academic != nil {
			if library := academic.Child("central_library"); library != nil {
				add("campus", libraryPassage(library, academic))
			}
		}
		if sports := facilities.Child("sports"); sports != nil {
			add("campus", sportsPassage(sports))
		}
		if other := facilities.Child("other"); other != nil {
			add("campus", otherFacilitiesPassage(other))
		}
	}

	if fees := data.Child("fee_structure"); fees != nil {
		add("fees", feesPassage(fees))
	}

	if calendar := data.Child("academic_calendar"); calendar != nil {
		add("schedule", calendarPassage(calendar))
	}

	if clubs := data.Items("student_clubs"); len(clubs) > 0 {
		add("clubs", clubsPassage(clubs))
	}

	if fests := data.Child("events_and_fests"); fests != nil {
		if samyak := fests.Child("samyak"); samyak != nil {
			add("events", festPassage("SAMYAK", "Annual Tech Fest", samyak))
		}
		if surabhi := fests.Child("surabhi"); surabhi != nil {
			add("events", festPassage("SURABHI", "Annual Cultural Fest", surabhi))
		}
		if regular := fests.Items("regular_events"); len(regular) > 0 {
			add("events", regularEventsPassage(regular))
		}
	}

	if contact := data.Child("contact_information"); contact != nil {
		add("contact", contactPassage(contact))
	}

	return passages
}

func overviewPassage(overview *Object) string {
	return fmt.Sprintf(`University Overview:
Full Name: %s
Type: %s
Established: %s
Deemed University Status: %s
Location: %s
Campus Area: %s
Website: %s
Accreditation: %s
Rankings: %s`,
		overview.Text("full_name"),
		overview.Text("type"),
		overview.Text("established"),
		overview.Text("deemed_status_year"),
		overview.Text("location"),
		overview.Text("campus_area"),
		overview.Text("website"),
		overview.Join("accreditation", ", "),
		overview.Text("rankings"))
}

func btechAdmissionsPassage(btech *Object) string {
	var process strings.Builder
	for i, step := range btech.Items("process") {
		if s, ok := step.(Scalar); ok {
			fmt.Fprintf(&process, "%d. %s\n", i+1, string(s))
		}
	}

	var docs strings.Builder
	for _, doc := range btech.Items("documents_required") {
		if s, ok := doc.(Scalar); ok {
			fmt.Fprintf(&docs, "- %s\n", string(s))
		}
	}

	return fmt.Sprintf(`B.Tech Admissions:
Eligibility: %s
Entrance Exams Accepted: %s
Application Period: %s
Application Fee: %s

Application Process:
%s
Documents Required:
%s`,
		btech.Text("eligibility"),
		btech.Join("entrance_exams", ", "),
		btech.Text("application_period"),
		btech.Text("application_fee"),
		process.String(),
		docs.String())
}

func mbaAdmissionsPassage(mba *Object) string {
	return fmt.Sprintf(`MBA Admissions:
Eligibility: %s
Entrance Exams: %s
Specializations: %s`,
		mba.Text("eligibility"),
		mba.Join("entrance_exams", ", "),
		mba.Join("specializations", ", "))
}

func phdAdmissionsPassage(phd *Object) string {
	return fmt.Sprintf(`PhD Admissions:
Eligibility: %s
Entrance: %s
Fellowship: %s`,
		phd.Text("eligibility"),
		phd.Text("entrance"),
		phd.Text("fellowship"))
}

func departmentPassage(dept *Object) string {
	specs := dept.Join("specializations", ", ")
	if specs == "" {
		specs = "N/A"
	}
	labs := dept.Join("labs", ", ")
	if labs == "" {
		labs = "N/A"
	}

	return fmt.Sprintf(`Department: %s (%s)
HOD: %s
Programs Offered: %s
Faculty Count: %s
Specializations: %s
Laboratories: %s
Highlights: %s`,
		dept.Text("name"),
		dept.Text("code"),
		dept.TextOr("hod", "N/A"),
		dept.Join("programs", ", "),
		dept.TextOr("faculty_count", "N/A"),
		specs,
		labs,
		dept.TextOr("highlights", "N/A"))
}

func placementsPassage(pl *Object) string {
	stats := &Object{}
	if statistics := pl.Child("statistics"); statistics != nil {
		if latest := statistics.Child("2023_24"); latest != nil {
			stats = latest
		}
	}

	var training strings.Builder
	for _, t := range pl.Items("training_programs") {
		if s, ok := t.(Scalar); ok {
			fmt.Fprintf(&training, "- %s\n", string(s))
		}
	}

	return fmt.Sprintf(`Placement Statistics:
Overview: %s

2023-24 Statistics:
- Highest Package: %s LPA
- Average Package: %s LPA
- Median Package: %s LPA
- Placement Rate: %s%%
- Companies Visited: %s
- Total Offers: %s
- International Offers: %s

Top Recruiters: %s

Training Programs:
%s
Internship: %s`,
		pl.Text("overview"),
		stats.TextOr("highest_package_lpa", "N/A"),
		stats.TextOr("average_package_lpa", "N/A"),
		stats.TextOr("median_package_lpa", "N/A"),
		stats.TextOr("placement_rate_percent", "N/A"),
		stats.TextOr("companies_visited", "N/A"),
		stats.TextOr("total_offers", "N/A"),
		stats.TextOr("international_offers", "N/A"),
		pl.Join("top_recruiters", ", "),
		training.String(),
		pl.Text("internship_support"))
}

func libraryPassage(library, academic *Object) string {
	return fmt.Sprintf(`Central Library:
Books: %s
E-Resources: %s
Digital Library: %s
Seating Capacity: %s
Features: %s

Other Academic Facilities:
- Laboratories: %s
- Smart Classrooms: %s
- Research Centers: %s`,
		library.Text("books"),
		library.Text("e_resources"),
		library.Text("digital_library"),
		library.Text("seating_capacity"),
		library.Join("features", ", "),
		academic.Text("laboratories"),
		academic.Text("smart_classrooms"),
		academic.Join("research_centers", ", "))
}

func sportsPassage(sports *Object) string {
	return fmt.Sprintf(`Sports Facilities:
Outdoor: %s
Indoor: %s
Fitness: %s
Achievements: %s`,
		sports.Join("outdoor", ", "),
		sports.Join("indoor", ", "),
		sports.Join("fitness", ", "),
		sports.Text("achievements"))
}

func otherFacilitiesPassage(other *Object) string {
	return fmt.Sprintf(`Other Campus Facilities:
Medical: %s
Transport: %s
Canteens: %s
ATM: %s
Auditorium: %s`,
		other.Text("medical"),
		other.Text("transport"),
		other.Text("canteens"),
		other.Text("atm"),
		other.Text("auditorium"))
}

func feesPassage(fees *Object) string {
	btech := &Object{}
	if b := fees.Child("btech"); b != nil {
		if general := b.Child("general"); general != nil {
			btech = general
		}
	}
	hostel := fees.Child("hostel_fees")
	if hostel == nil {
		hostel = &Object{}
	}
	scholarships := fees.Child("scholarships")
	if scholarships == nil {
		scholarships = &Object{}
	}

	return fmt.Sprintf(`Fee Structure:

B.Tech (General):
- Tuition Fee: ₹%s/year
- Other Fees: ₹%s/year
- Total: ₹%s/year

Hostel Fees:
- Single AC: ₹%s/year
- Double Sharing AC: ₹%s/year
- Triple Sharing Non-AC: ₹%s/year
- Mess Charges: ₹%s/year

Transport: ₹%s

Scholarships:
- Merit Based: %s
- Sports Quota: %s
- Need Based: %s
- Research Fellowship: %s

Payment Options: %s`,
		btech.TextOr("tuition_fee_per_year", "N/A"),
		btech.TextOr("other_fees_per_year", "N/A"),
		btech.TextOr("total_per_year", "N/A"),
		hostel.TextOr("single_ac_per_year", "N/A"),
		hostel.TextOr("double_sharing_ac_per_year", "N/A"),
		hostel.TextOr("triple_sharing_non_ac_per_year", "N/A"),
		hostel.TextOr("mess_charges_per_year", "N/A"),
		fees.TextOr("transport_fee_per_year", "N/A"),
		scholarships.Text("merit_based"),
		scholarships.Text("sports_quota"),
		scholarships.Text("need_based"),
		scholarships.Text("research_fellowship"),
		fees.Join("payment_options", ", "))
}

func calendarPassage(cal *Object) string {
	odd := cal.Child("odd_semester")
	if odd == nil {
		odd = &Object{}
	}
	even := cal.Child("even_semester")
	if even == nil {
		even = &Object{}
	}
	events := cal.Child("important_events")
	if events == nil {
		events = &Object{}
	}

	return fmt.Sprintf(`Academic Calendar:

Odd Semester (July - December):
- Classes Begin: %s
- Mid-Sem Exams: %s
- End-Sem Exams: %s
- Winter Break: %s

Even Semester (January - June):
- Classes Begin: %s
- Mid-Sem Exams: %s
- End-Sem Exams: %s
- Summer Break: %s

Important Events:
- Foundation Day: %s
- SAMYAK Tech Fest: %s
- Cultural Fest: %s
- Convocation: %s`,
		odd.Text("classes_begin"),
		odd.Text("mid_semester_exams"),
		odd.Text("end_semester_exams"),
		odd.Text("winter_break"),
		even.Text("classes_begin"),
		even.Text("mid_semester_exams"),
		even.Text("end_semester_exams"),
		even.Text("summer_break"),
		events.Text("foundation_day"),
		events.Text("samyak_tech_fest"),
		events.Text("cultural_fest"),
		events.Text("convocation"))
}

func clubsPassage(clubs []Node) string {
	var sb strings.Builder
	sb.WriteString("Student Clubs:\n\n")
	for _, item := range clubs {
		club, ok := item.(*Object)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "• %s: %s. Activities: %s\n",
			club.Text("name"), club.Text("focus"), club.Text("activities"))
	}
	return sb.String()
}

func festPassage(name, kind string, fest *Object) string {
	return fmt.Sprintf(`%s - %s:
Type: %s
Description: %s
When: %s
Activities: %s
Expected Footfall: %s`,
		name, kind,
		fest.Text("type"),
		fest.Text("description"),
		fest.Text("typical_month"),
		fest.Join("activities", ", "),
		fest.Text("footfall"))
}

func regularEventsPassage(events []Node) string {
	var sb strings.Builder
	sb.WriteString("Regular Campus Events:\n")
	for _, item := range events {
		if s, ok := item.(Scalar); ok {
			fmt.Fprintf(&sb, "- %s\n", string(s))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func contactPassage(ci *Object) string {
	office := func(key string) *Object {
		if o := ci.Child(key); o != nil {
			return o
		}
		return &Object{}
	}
	admissions := office("admissions_office")
	general := office("general_enquiry")

	return fmt.Sprintf(`Contact Information:
Address: %s

Admissions Office: %s | %s | Timing: %s
Placement Cell: %s
Hostel Office: %s
Examination Cell: %s
General Enquiry: %s | %s`,
		ci.Text("address"),
		admissions.Text("email"), admissions.Text("phone"), admissions.Text("timing"),
		office("placement_cell").Text("email"),
		office("hostel_office").Text("email"),
		office("examination_cell").Text("email"),
		general.Text("email"), general.Text("phone"))
}
