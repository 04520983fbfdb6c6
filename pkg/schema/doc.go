// Package schema is the validation seam used by form controls. A Schema
// validates a value and reports issues without failing; a Source wraps a
// schema that is either fixed or recomputed from reactive dependencies (for
// example a confirmation field that must match the live password value).
//
// The zod-like String builder covers the rules credential forms need. Other
// validation libraries plug in by implementing Schema, see the openapi
// subpackage.
package schema
