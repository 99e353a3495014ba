// Package security implements the request authorization core: route policies,
// the role gate, the tenant scope gate and query-level tenant scoping.
package security

import "strings"

// ResourceKind names a tenant-owned resource type whose ownership the tenant
// gate knows how to check.
type ResourceKind string

const (
	ResourceNone     ResourceKind = "none"
	ResourceBooking  ResourceKind = "booking"
	ResourceProperty ResourceKind = "property"
	ResourcePayment  ResourceKind = "payment"
	ResourceInvoice  ResourceKind = "invoice"
)

// classification is checked top to bottom; the first matching segment wins.
var classification = []struct {
	segment string
	kind    ResourceKind
}{
	{"/bookings", ResourceBooking},
	{"/properties", ResourceProperty},
	{"/payments", ResourcePayment},
	{"/invoices", ResourceInvoice},
}

// Classify maps a request path to the resource kind it targets.
// Only the path shape is considered, never the method or body.
func Classify(path string) ResourceKind {
	for _, c := range classification {
		if strings.Contains(path, c.segment) {
			return c.kind
		}
	}
	return ResourceNone
}

// Kinds returns every classifiable resource kind in priority order.
func Kinds() []ResourceKind {
	kinds := make([]ResourceKind, len(classification))
	for i, c := range classification {
		kinds[i] = c.kind
	}
	return kinds
}

func (k ResourceKind) String() string {
	return string(k)
}
