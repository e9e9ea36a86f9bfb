// SPDX-License-Identifier: Apache-2.0

package models

import "fmt"

// RecordType identifies one of the health record categories tracked by the
// local health store and the remote sync server. The set mirrors the record
// types exposed by the device health database and is static at runtime.
type RecordType string

const (
	ActiveCaloriesBurned   RecordType = "ActiveCaloriesBurned"
	BasalBodyTemperature   RecordType = "BasalBodyTemperature"
	BasalMetabolicRate     RecordType = "BasalMetabolicRate"
	BloodGlucose           RecordType = "BloodGlucose"
	BloodPressure          RecordType = "BloodPressure"
	BodyFat                RecordType = "BodyFat"
	BodyTemperature        RecordType = "BodyTemperature"
	BoneMass               RecordType = "BoneMass"
	CervicalMucus          RecordType = "CervicalMucus"
	CyclingPedalingCadence RecordType = "CyclingPedalingCadence"
	Distance               RecordType = "Distance"
	ElevationGained        RecordType = "ElevationGained"
	ExerciseSession        RecordType = "ExerciseSession"
	FloorsClimbed          RecordType = "FloorsClimbed"
	HeartRate              RecordType = "HeartRate"
	Height                 RecordType = "Height"
	Hydration              RecordType = "Hydration"
	LeanBodyMass           RecordType = "LeanBodyMass"
	MenstruationFlow       RecordType = "MenstruationFlow"
	MenstruationPeriod     RecordType = "MenstruationPeriod"
	Nutrition              RecordType = "Nutrition"
	OvulationTest          RecordType = "OvulationTest"
	OxygenSaturation       RecordType = "OxygenSaturation"
	Power                  RecordType = "Power"
	RespiratoryRate        RecordType = "RespiratoryRate"
	RestingHeartRate       RecordType = "RestingHeartRate"
	SleepSession           RecordType = "SleepSession"
	Speed                  RecordType = "Speed"
	Steps                  RecordType = "Steps"
	StepsCadence           RecordType = "StepsCadence"
	TotalCaloriesBurned    RecordType = "TotalCaloriesBurned"
	Vo2Max                 RecordType = "Vo2Max"
	Weight                 RecordType = "Weight"
	WheelchairPushes       RecordType = "WheelchairPushes"
)

// allRecordTypes is the canonical iteration order for a sync pass.
var allRecordTypes = []RecordType{
	ActiveCaloriesBurned,
	BasalBodyTemperature,
	BloodGlucose,
	BloodPressure,
	BasalMetabolicRate,
	BodyFat,
	BodyTemperature,
	BoneMass,
	CyclingPedalingCadence,
	CervicalMucus,
	ExerciseSession,
	Distance,
	ElevationGained,
	FloorsClimbed,
	HeartRate,
	Height,
	Hydration,
	LeanBodyMass,
	MenstruationFlow,
	MenstruationPeriod,
	Nutrition,
	OvulationTest,
	OxygenSaturation,
	Power,
	RespiratoryRate,
	RestingHeartRate,
	SleepSession,
	Speed,
	Steps,
	StepsCadence,
	TotalCaloriesBurned,
	Vo2Max,
	Weight,
	WheelchairPushes,
}

// AllRecordTypes returns every known record type in sync-pass order.
// The returned slice is a copy; callers may reorder it freely.
func AllRecordTypes() []RecordType {
	out := make([]RecordType, len(allRecordTypes))
	copy(out, allRecordTypes)
	return out
}

// Valid reports whether t is one of the enumerated record types.
func (t RecordType) Valid() bool {
	_, ok := fanoutByType[t]
	return ok
}

func (t RecordType) String() string {
	return string(t)
}

// FanoutClass determines how records of a given type are uploaded during a
// sync pass.
type FanoutClass int

const (
	// FanoutBulk uploads all records of a type in a single batch call.
	FanoutBulk FanoutClass = iota
	// FanoutPerRecord uploads each record in its own call, staggered to
	// stay under the remote endpoint's rate limits.
	FanoutPerRecord
)

// fanoutByType maps every record type to its upload strategy. Only sleep
// sessions, speed samples and heart rate series carry payloads large enough
// to need per-record fan-out; everything else goes up as one batch.
var fanoutByType = func() map[RecordType]FanoutClass {
	m := make(map[RecordType]FanoutClass, len(allRecordTypes))
	for _, t := range allRecordTypes {
		m[t] = FanoutBulk
	}
	m[SleepSession] = FanoutPerRecord
	m[Speed] = FanoutPerRecord
	m[HeartRate] = FanoutPerRecord
	return m
}()

// Fanout returns the upload strategy for t. Unknown types fall back to
// FanoutBulk; callers are expected to gate on Valid first.
func (t RecordType) Fanout() FanoutClass {
	return fanoutByType[t]
}

// VerifyFanout checks that every enumerated record type maps to exactly one
// fan-out class. It is called at agent startup so that a newly added record
// type missing from the table fails fast instead of silently inheriting
// rate-limiting behaviour.
func VerifyFanout() error {
	for _, t := range allRecordTypes {
		if _, ok := fanoutByType[t]; !ok {
			return fmt.Errorf("record type %q has no fan-out class", t)
		}
	}
	if len(fanoutByType) != len(allRecordTypes) {
		return fmt.Errorf("fan-out table has %d entries for %d record types", len(fanoutByType), len(allRecordTypes))
	}
	return nil
}
