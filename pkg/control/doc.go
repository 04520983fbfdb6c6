// Package control implements a single reactive form field. A Control holds
// the field value and its interaction flags as reactive cells and derives
// validity and errors from the value, the touched flag and an optional
// schema. Errors stay hidden until the field has been touched, so a user who
// has not yet left a field never sees a validation message for it.
package control
