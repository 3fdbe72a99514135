package record

import (
	"testing"
	"time"
)

func TestKeyHashStableAndDiscriminating(t *testing.T) {
	d := time.Date(2022, time.February, 1, 0, 0, 0, 0, time.UTC)
	k := Key{Name: "jon doe", Gender: "male", BloodType: "a+", DateOfAdmission: d, Hospital: "st. mary"}

	if k.Hash() != k.Hash() {
		t.Fatal("hash is not deterministic")
	}

	other := k
	other.Hospital = "general"
	if k.Hash() == other.Hash() {
		t.Fatal("different hospitals must hash differently")
	}

	// NUL separation keeps adjacent fields from bleeding into each other.
	a := Key{Name: "ab", Gender: "c", BloodType: "x", DateOfAdmission: d, Hospital: "h"}
	b := Key{Name: "a", Gender: "bc", BloodType: "x", DateOfAdmission: d, Hospital: "h"}
	if a.Hash() == b.Hash() {
		t.Fatal("field boundary collision")
	}
}

func TestAdmissionKey(t *testing.T) {
	d := time.Date(2022, time.February, 1, 0, 0, 0, 0, time.UTC)
	doc := &Admission{
		Name:            "jon doe",
		Gender:          "male",
		BloodType:       "a+",
		DateOfAdmission: d,
		Hospital:        "st. mary",
	}
	k := doc.Key()
	if k.Name != doc.Name || k.Gender != doc.Gender || k.BloodType != doc.BloodType ||
		!k.DateOfAdmission.Equal(d) || k.Hospital != doc.Hospital {
		t.Fatalf("key does not mirror the document: %+v", k)
	}
}
