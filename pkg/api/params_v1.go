// pkg/api/params_v1.go
package api

// ParamFileV1 is the on-disk schema for parameter and gradient tables.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ParamFileV1 struct {
	SchemaVersion int                `json:"schema_version,omitempty"`
	Tables        map[string]TableV1 `json:"tables"`
}

// TableV1 is one dense row-major table.
type TableV1 struct {
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}
