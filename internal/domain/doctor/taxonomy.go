package doctor

import "strings"

// Common specialty names mapped to the taxonomy_description values the NPI
// registry matches by substring. Order matters where keys overlap, so a
// slice rather than a map.
var taxonomyMappings = []struct {
	key  string
	term string
}{
	{"cardiologist", "Cardiovascular Disease"},
	{"heart", "Cardiovascular"},
	{"dermatologist", "Dermatology"},
	{"neurologist", "Neurology"},
	{"orthopedic", "Orthopaedic"},
	{"pediatrician", "Pediatrics"},
	{"psychiatrist", "Psychiatry"},
	{"gynecologist", "Obstetrics & Gynecology"},
	{"obstetrician", "Obstetrics"},
	{"ent", "Otolaryngology"},
	{"eye doctor", "Ophthalmology"},
	{"ophthalmologist", "Ophthalmology"},
	{"oncologist", "Oncology"},
	{"endocrinologist", "Endocrinology"},
	{"gastroenterologist", "Gastroenterology"},
	{"pulmonologist", "Pulmonary"},
	{"nephrologist", "Nephrology"},
	{"urologist", "Urology"},
	{"rheumatologist", "Rheumatology"},
	{"allergist", "Allergy"},
	{"emergency", "Emergency Medicine"},
	{"surgeon", "Surgery"},
	{"anesthesiologist", "Anesthesiology"},
	{"radiologist", "Radiology"},
	{"pathologist", "Pathology"},

	{"family", "Family Medicine"},
	{"internal medicine", "Internal Medicine"},
	{"general", "General Practice"},

	{"chiropractor", "Chiropractor"},
	{"dentist", "Dentist"},
	{"nurse practitioner", "Nurse Practitioner"},
	{"occupational therapist", "Occupational Therapist"},
	{"optometrist", "Optometrist"},
	{"pharmacist", "Pharmacist"},
	{"physician assistant", "Physician Assistant"},
	{"physical therapist", "Physical Therapist"},
	{"podiatrist", "Podiatrist"},
	{"psychologist", "Psychologist"},
	{"social worker", "Social Worker"},
	{"counselor", "Counselor"},
	{"speech", "Speech-Language Pathologist"},
}

// mapToTaxonomy translates a user-facing specialty name to a registry
// taxonomy term. Returns "" when nothing matches, which searches without a
// taxonomy filter.
func mapToTaxonomy(specialization string) string {
	spec := strings.ToLower(specialization)
	for _, m := range taxonomyMappings {
		if strings.Contains(spec, m.key) {
			return m.term
		}
	}
	return ""
}
