package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mongoetl/internal/record"
)

// keyFilter matches exactly the five natural-key fields of d. Nothing else
// may appear here: the filter is what makes the upsert idempotent under
// the unique index.
func keyFilter(d *record.Admission) bson.D {
	return bson.D{
		{Key: "name", Value: d.Name},
		{Key: "gender", Value: d.Gender},
		{Key: "blood_type", Value: d.BloodType},
		{Key: "date_of_admission", Value: d.DateOfAdmission},
		{Key: "hospital", Value: d.Hospital},
	}
}

// setFields carries every document field except ingested_at, which is
// reserved for $setOnInsert so the first write wins.
func setFields(d *record.Admission) bson.D {
	return bson.D{
		{Key: "name", Value: d.Name},
		{Key: "age", Value: d.Age},
		{Key: "gender", Value: d.Gender},
		{Key: "blood_type", Value: d.BloodType},
		{Key: "medical_condition", Value: d.MedicalCondition},
		{Key: "date_of_admission", Value: d.DateOfAdmission},
		{Key: "doctor", Value: d.Doctor},
		{Key: "hospital", Value: d.Hospital},
		{Key: "insurance_provider", Value: d.InsuranceProvider},
		{Key: "billing_amount", Value: d.BillingAmount},
		{Key: "room_number", Value: d.RoomNumber},
		{Key: "admission_type", Value: d.AdmissionType},
		{Key: "discharge_date", Value: d.DischargeDate},
		{Key: "medication", Value: d.Medication},
		{Key: "test_results", Value: d.TestResults},
		{Key: "last_modified_at", Value: d.LastModifiedAt},
		{Key: "source", Value: d.SourceTag},
	}
}

// upsertModel builds the unordered merge operation for one document.
func upsertModel(d *record.Admission) mongo.WriteModel {
	return mongo.NewUpdateOneModel().
		SetFilter(keyFilter(d)).
		SetUpdate(bson.D{
			{Key: "$set", Value: setFields(d)},
			{Key: "$setOnInsert", Value: bson.D{{Key: "ingested_at", Value: d.IngestedAt}}},
		}).
		SetUpsert(true)
}
