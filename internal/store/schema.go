package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	tableAssessments = "assessments"
	tableLLMRequests = "llm_requests"
	tableDrafts      = "drafts"
)

var (
	assessmentsTable = newTable(tableAssessments,
		&schema.Column{Name: "sequence", Type: field.TypeInt64},
		&schema.Column{Name: "assessment_id", Type: field.TypeString, Unique: true},
		&schema.Column{Name: "timestamp", Type: field.TypeTime},
		&schema.Column{Name: "label", Type: field.TypeString},
		&schema.Column{Name: "code", Type: field.TypeInt},
		&schema.Column{Name: "classifier", Type: field.TypeString},
		&schema.Column{Name: "features", Type: field.TypeJSON},
		&schema.Column{Name: "answers", Type: field.TypeJSON},
		&schema.Column{Name: "warnings", Type: field.TypeJSON},
	).AddIndex("assessments_label", false, []string{"label"})

	llmRequestsTable = newTable(tableLLMRequests,
		&schema.Column{Name: "sequence", Type: field.TypeInt64},
		&schema.Column{Name: "timestamp", Type: field.TypeTime},
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 1 << 20, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 1 << 20, Default: ""},
	)

	draftsTable = newTable(tableDrafts,
		&schema.Column{Name: "sequence", Type: field.TypeInt64},
		&schema.Column{Name: "timestamp", Type: field.TypeTime},
		&schema.Column{Name: "data", Type: field.TypeJSON},
	)

	tables = []*schema.Table{assessmentsTable, llmRequestsTable, draftsTable}
)

// newTable declares a table with an auto-increment integer primary key.
func newTable(name string, cols ...*schema.Column) *schema.Table {
	t := schema.NewTable(name).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true})
	for _, c := range cols {
		t.AddColumn(c)
	}
	return t
}
