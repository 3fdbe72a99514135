// Package transform maps raw CSV rows onto normalized admission documents.
package transform

import (
	"log"
	"time"

	"mongoetl/internal/coerce"
	"mongoetl/internal/record"
)

// Columns is the exact header set the source file must provide. Matching
// is by name and case-sensitive; order in the file does not matter.
var Columns = []string{
	"Name",
	"Age",
	"Gender",
	"Blood Type",
	"Medical Condition",
	"Date of Admission",
	"Doctor",
	"Hospital",
	"Insurance Provider",
	"Billing Amount",
	"Room Number",
	"Admission Type",
	"Discharge Date",
	"Medication",
	"Test Results",
}

// FromRow builds a document from one raw row, keyed by source column name.
//
// When any of the five natural-key fields is missing or unparseable the
// row is skipped: one warning is logged with the partially-computed key
// and ok is false. This keeps incomplete keys away from the unique index.
// Attribute fields are coerced independently; a bad cell becomes nil and
// never blocks document creation.
func FromRow(row map[string]string, now time.Time) (doc *record.Admission, ok bool) {
	name := coerce.Lower(row["Name"])
	gender := coerce.Lower(row["Gender"])
	bloodType := coerce.Lower(row["Blood Type"])
	hospital := coerce.Lower(row["Hospital"])
	admitted := coerce.Date(row["Date of Admission"])

	if name == nil || gender == nil || bloodType == nil || hospital == nil || admitted == nil {
		log.Printf(
			"WARNING: skipping row with incomplete natural key: name=%s gender=%s blood_type=%s date_of_admission=%s hospital=%s",
			nullable(name), nullable(gender), nullable(bloodType), nullableDate(admitted), nullable(hospital),
		)
		return nil, false
	}

	doc = &record.Admission{
		Name:              *name,
		Age:               coerce.Int(row["Age"]),
		Gender:            *gender,
		BloodType:         *bloodType,
		MedicalCondition:  coerce.String(row["Medical Condition"]),
		DateOfAdmission:   *admitted,
		Doctor:            coerce.String(row["Doctor"]),
		Hospital:          *hospital,
		InsuranceProvider: coerce.String(row["Insurance Provider"]),
		BillingAmount:     coerce.Float(row["Billing Amount"]),
		RoomNumber:        coerce.String(row["Room Number"]),
		AdmissionType:     coerce.String(row["Admission Type"]),
		DischargeDate:     coerce.Date(row["Discharge Date"]),
		Medication:        coerce.String(row["Medication"]),
		TestResults:       coerce.String(row["Test Results"]),
		IngestedAt:        now,
		LastModifiedAt:    now,
		SourceTag:         record.Source,
	}
	return doc, true
}

func nullable(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func nullableDate(t *time.Time) string {
	if t == nil {
		return "<nil>"
	}
	return t.Format("2006-01-02")
}
