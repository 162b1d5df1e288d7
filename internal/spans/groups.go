package spans

import (
	"slices"
	"strings"

	"github.com/MKhiriev/go-pii-labeler/models"
)

// Role is a tag's position inside its entity group.
type Role int

const (
	// Member is any tag that does not represent its group.
	Member Role = iota
	// Leader is the tag whose span id equals the group's entity id.
	Leader
)

func (r Role) String() string {
	if r == Leader {
		return "leader"
	}
	return "member"
}

// RoleOf returns the role of tag inside its group.
func RoleOf(tag models.Tag) Role {
	if tag.IsLeader() {
		return Leader
	}
	return Member
}

// Group is the set of tags sharing one entity id.
type Group struct {
	// Key is the shared entity id.
	Key string
	// Leader points into Members, or is nil when no member's span id
	// equals Key.
	Leader *models.Tag
	// Members are ordered by span id (see [Reparent] for the ordering).
	Members []models.Tag
}

// BuildGroups partitions tags by entity id.
func BuildGroups(tags []models.Tag) map[string]*Group {
	groups := make(map[string]*Group)
	for _, tag := range tags {
		g, ok := groups[tag.EntityID]
		if !ok {
			g = &Group{Key: tag.EntityID}
			groups[tag.EntityID] = g
		}
		g.Members = append(g.Members, tag)
	}

	for _, g := range groups {
		slices.SortFunc(g.Members, compareBySpanID)
		for i := range g.Members {
			if RoleOf(g.Members[i]) == Leader {
				g.Leader = &g.Members[i]
				break
			}
		}
	}

	return groups
}

// Reparent repairs the entity group of a deleted tag.
//
// remaining are the document's tags after the deletion. When deleted was its
// group's leader and other tags still share its entity id, the member with
// the numerically smallest span id becomes the new leader and every member's
// entity id is rewritten to that span id. Numeric span ids order before
// non-numeric ones, which order lexicographically; ties fall back to tag id.
//
// Only tags whose entity id actually changed are returned. Deleting a
// member returns nil.
func Reparent(remaining []models.Tag, deleted models.Tag) []models.Tag {
	if RoleOf(deleted) != Leader {
		return nil
	}

	group, ok := BuildGroups(remaining)[deleted.EntityID]
	if !ok || len(group.Members) == 0 {
		return nil
	}

	newKey := group.Members[0].SpanID
	if newKey == group.Key {
		return nil
	}

	changed := make([]models.Tag, 0, len(group.Members))
	for _, member := range group.Members {
		member.EntityID = newKey
		changed = append(changed, member)
	}

	return changed
}

func compareBySpanID(a, b models.Tag) int {
	an, aNumeric := numericID(a.SpanID)
	bn, bNumeric := numericID(b.SpanID)

	switch {
	case aNumeric && bNumeric && an != bn:
		if an < bn {
			return -1
		}
		return 1
	case aNumeric && !bNumeric:
		return -1
	case !aNumeric && bNumeric:
		return 1
	case !aNumeric && !bNumeric:
		if c := strings.Compare(a.SpanID, b.SpanID); c != 0 {
			return c
		}
	}

	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}
