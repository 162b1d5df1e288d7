package spans

import (
	"strconv"
	"strings"

	"github.com/MKhiriev/go-pii-labeler/models"
)

// NextID returns the next unused integer identifier for a document, as a
// string: one more than the largest numeric span_id or entity_id among
// existing, or "1" when there is none. Non-numeric ids are ignored.
func NextID(existing []models.Tag) string {
	maxID := 0
	for _, tag := range existing {
		for _, id := range []string{tag.SpanID, tag.EntityID} {
			if n, ok := numericID(id); ok && n > maxID {
				maxID = n
			}
		}
	}

	return strconv.Itoa(maxID + 1)
}

// AssignIDs fills in omitted identifiers for a new tag.
//
// An empty spanID becomes [NextID]. An empty entityID becomes the resolved
// spanID, so a tag created without a group joins a new group of its own as
// the leader.
func AssignIDs(existing []models.Tag, spanID, entityID string) (string, string) {
	spanID = strings.TrimSpace(spanID)
	entityID = strings.TrimSpace(entityID)

	if spanID == "" {
		spanID = NextID(existing)
	}
	if entityID == "" {
		entityID = spanID
	}

	return spanID, entityID
}

// HasPosition reports whether a tag in existing occupies exactly [start, end).
func HasPosition(existing []models.Tag, start, end int) bool {
	for _, tag := range existing {
		if tag.StartOffset == start && tag.EndOffset == end {
			return true
		}
	}

	return false
}

func numericID(id string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return 0, false
	}

	return n, true
}
