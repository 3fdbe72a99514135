// Package record defines the normalized admission document persisted by
// the pipeline, and its natural key.
package record

import (
	"strconv"
	"time"

	"github.com/zeebo/xxh3"
)

// Source tags every document written by this pipeline version.
const Source = "csv_migration_v2"

// Admission is one normalized patient-admission document.
//
// The five natural-key fields (name, gender, blood_type, date_of_admission,
// hospital) are always set: rows that cannot produce all five are dropped
// before a document is ever built. Attribute fields are pointers; nil means
// the source cell was missing or malformed and is stored as BSON null,
// never as an empty string.
type Admission struct {
	Name              string     `bson:"name" json:"name"`
	Age               *int       `bson:"age" json:"age"`
	Gender            string     `bson:"gender" json:"gender"`
	BloodType         string     `bson:"blood_type" json:"blood_type"`
	MedicalCondition  *string    `bson:"medical_condition" json:"medical_condition"`
	DateOfAdmission   time.Time  `bson:"date_of_admission" json:"date_of_admission"`
	Doctor            *string    `bson:"doctor" json:"doctor"`
	Hospital          string     `bson:"hospital" json:"hospital"`
	InsuranceProvider *string    `bson:"insurance_provider" json:"insurance_provider"`
	BillingAmount     *float64   `bson:"billing_amount" json:"billing_amount"`
	RoomNumber        *string    `bson:"room_number" json:"room_number"`
	AdmissionType     *string    `bson:"admission_type" json:"admission_type"`
	DischargeDate     *time.Time `bson:"discharge_date" json:"discharge_date"`
	Medication        *string    `bson:"medication" json:"medication"`
	TestResults       *string    `bson:"test_results" json:"test_results"`

	// IngestedAt is set at first write and preserved across upserts;
	// LastModifiedAt is refreshed on every write.
	IngestedAt     time.Time `bson:"ingested_at" json:"ingested_at"`
	LastModifiedAt time.Time `bson:"last_modified_at" json:"last_modified_at"`
	SourceTag      string    `bson:"source" json:"source"`
}

// Key returns the document's natural key.
func (a *Admission) Key() Key {
	return Key{
		Name:            a.Name,
		Gender:          a.Gender,
		BloodType:       a.BloodType,
		DateOfAdmission: a.DateOfAdmission,
		Hospital:        a.Hospital,
	}
}

// Key is the composite natural key identifying one patient-admission
// record. String fields are lower-cased and the date is truncated to
// midnight before a Key is built, so equality is casing- and
// time-of-day-insensitive.
type Key struct {
	Name            string
	Gender          string
	BloodType       string
	DateOfAdmission time.Time
	Hospital        string
}

// Hash returns a 64-bit xxh3 digest of the key tuple. The fields are
// NUL-separated so adjacent values cannot collide by concatenation.
func (k Key) Hash() uint64 {
	b := make([]byte, 0, 64)
	for _, s := range []string{
		k.Name,
		k.Gender,
		k.BloodType,
		strconv.FormatInt(k.DateOfAdmission.Unix(), 10),
		k.Hospital,
	} {
		b = append(b, s...)
		b = append(b, 0)
	}
	return xxh3.Hash(b)
}
