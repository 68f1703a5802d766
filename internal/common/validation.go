package common

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError maps a field name to one or more messages explaining why
// the value was rejected. It is produced locally for form input before any
// network call, and decoded unchanged from backend 400 responses, which use
// the same shape. Non-field problems are reported under the "detail" key.
type ValidationError map[string][]string

// Add appends a message for field.
func (e ValidationError) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Fields returns the affected field names in stable order.
func (e ValidationError) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (e ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation failed")
	for _, f := range e.Fields() {
		fmt.Fprintf(&b, "; %s: %s", f, strings.Join(e[f], ", "))
	}
	return b.String()
}
