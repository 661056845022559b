package models

// Requests for signal HTTP endpoints. Defined in domain for consistency and reuse.

const (
	FormatIndex   = "index"
	FormatRecords = "records"
)

type NormRequest struct {
	ID     string `param:"id" json:"id"`
	Format string `query:"format" json:"format" default:"index" validate:"oneof=index records"`
}

type CombineRequest struct {
	Signals []string `query:"signal" json:"signal"`
	Mode    string   `query:"mode" json:"mode" validate:"omitempty,oneof=sequential named"`
	Format  string   `query:"format" json:"format" default:"index" validate:"oneof=index records"`
}
