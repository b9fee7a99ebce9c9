package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table definitions for the ent migration engine. Events share the sequence
// and created_at columns, indexed the same way on every event table.
var (
	// PatientSnapshotsColumns holds the columns for the "patient_snapshots" table.
	PatientSnapshotsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "created_at", Type: field.TypeString},
		{Name: "data", Type: field.TypeString, Size: 2147483647},
	}
	// PatientSnapshotsTable holds the schema information for the "patient_snapshots" table.
	PatientSnapshotsTable = &schema.Table{
		Name:       tablePatientSnapshots,
		Columns:    PatientSnapshotsColumns,
		PrimaryKey: []*schema.Column{PatientSnapshotsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "patientsnapshot_created_at",
				Unique:  false,
				Columns: []*schema.Column{PatientSnapshotsColumns[1]},
			},
		},
	}

	// DiagnosisEventsColumns holds the columns for the "diagnosis_events" table.
	DiagnosisEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "created_at", Type: field.TypeString},
		{Name: "request_id", Type: field.TypeString},
		{Name: "token", Type: field.TypeString},
		{Name: "vital", Type: field.TypeString, Default: ""},
		{Name: "value", Type: field.TypeFloat64, Default: 0},
		{Name: "applied", Type: field.TypeBool, Default: false},
		{Name: "label", Type: field.TypeString, Default: ""},
		{Name: "priority", Type: field.TypeInt, Default: -1},
		{Name: "snapshot", Type: field.TypeString, Size: 2147483647},
	}
	// DiagnosisEventsTable holds the schema information for the "diagnosis_events" table.
	DiagnosisEventsTable = &schema.Table{
		Name:       tableDiagnosisEvents,
		Columns:    DiagnosisEventsColumns,
		PrimaryKey: []*schema.Column{DiagnosisEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "diagnosisevent_sequence",
				Unique:  false,
				Columns: []*schema.Column{DiagnosisEventsColumns[1]},
			},
			{
				Name:    "diagnosisevent_created_at",
				Unique:  false,
				Columns: []*schema.Column{DiagnosisEventsColumns[2]},
			},
			{
				Name:    "diagnosisevent_label",
				Unique:  false,
				Columns: []*schema.Column{DiagnosisEventsColumns[8]},
			},
		},
	}

	// LLMRequestEventsColumns holds the columns for the "llm_request_events" table.
	LLMRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "created_at", Type: field.TypeString},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LLMRequestEventsTable holds the schema information for the "llm_request_events" table.
	LLMRequestEventsTable = &schema.Table{
		Name:       tableLLMRequestEvents,
		Columns:    LLMRequestEventsColumns,
		PrimaryKey: []*schema.Column{LLMRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llmrequestevent_sequence",
				Unique:  false,
				Columns: []*schema.Column{LLMRequestEventsColumns[1]},
			},
			{
				Name:    "llmrequestevent_created_at",
				Unique:  false,
				Columns: []*schema.Column{LLMRequestEventsColumns[2]},
			},
			{
				Name:    "llmrequestevent_provider",
				Unique:  false,
				Columns: []*schema.Column{LLMRequestEventsColumns[3]},
			},
			{
				Name:    "llmrequestevent_purpose",
				Unique:  false,
				Columns: []*schema.Column{LLMRequestEventsColumns[5]},
			},
			{
				Name:    "llmrequestevent_success",
				Unique:  false,
				Columns: []*schema.Column{LLMRequestEventsColumns[9]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		PatientSnapshotsTable,
		DiagnosisEventsTable,
		LLMRequestEventsTable,
	}
)
