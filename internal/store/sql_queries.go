package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pii-labeler/models"
)

var (
	userColumns = []string{"user_id", "login", "password_hash", "is_admin", "created_at"}

	categoryColumns = []string{"id", "value", "background_color", "description"}

	documentColumns = []string{
		"d.id", "d.data_id", "d.number_of_subjects", "d.provenance", "d.text",
		"d.owner_id", "d.created_at", "d.updated_at",
		"(SELECT COUNT(*) FROM pii_tags tc WHERE tc.document_id = d.id) AS tag_count",
	}

	tagColumns = []string{
		"t.id", "t.document_id", "t.category_id", "c.value", "c.background_color",
		"t.span_text", "t.start_offset", "t.end_offset", "t.span_id", "t.entity_id",
		"t.annotator", "t.identifier_type", "t.confidence", "COALESCE(t.created_by, 0)", "t.created_at",
	}
)

// users

func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert("users").
		Columns("login", "password_hash", "is_admin").
		Values(user.Login, user.PasswordHash, user.IsAdmin).
		Suffix("RETURNING user_id, created_at").
		ToSql()
}

func buildFindUserByLoginQuery(b sq.StatementBuilderType, login string) (string, []any, error) {
	return b.Select(userColumns...).
		From("users").
		Where(sq.Eq{"login": login}).
		ToSql()
}

func buildSetAdminQuery(b sq.StatementBuilderType, userID int64, isAdmin bool) (string, []any, error) {
	return b.Update("users").
		Set("is_admin", isAdmin).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// categories

func buildListCategoriesQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(categoryColumns...).
		From("pii_categories").
		OrderBy("value").
		ToSql()
}

func buildFindCategoryQuery(b sq.StatementBuilderType, value string) (string, []any, error) {
	return b.Select(categoryColumns...).
		From("pii_categories").
		Where(sq.Eq{"value": value}).
		ToSql()
}

func buildCreateCategoryQuery(b sq.StatementBuilderType, c models.Category) (string, []any, error) {
	return b.Insert("pii_categories").
		Columns("value", "background_color", "description").
		Values(c.Value, c.BackgroundColor, c.Description).
		Suffix("RETURNING id").
		ToSql()
}

func buildUpdateCategoryQuery(b sq.StatementBuilderType, c models.Category) (string, []any, error) {
	return b.Update("pii_categories").
		Set("background_color", c.BackgroundColor).
		Set("description", c.Description).
		Where(sq.Eq{"value": c.Value}).
		ToSql()
}

func buildDeleteCategoriesQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Delete("pii_categories").ToSql()
}

// documents

func buildCreateDocumentQuery(b sq.StatementBuilderType, doc models.Document) (string, []any, error) {
	provenance := string(doc.Provenance)
	if provenance == "" {
		provenance = "{}"
	}

	return b.Insert("documents").
		Columns("data_id", "number_of_subjects", "provenance", "text", "owner_id").
		Values(doc.DataID, doc.NumberOfSubjects, provenance, doc.Text, doc.OwnerID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
}

func buildGetDocumentQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Select(documentColumns...).
		From("documents d").
		Where(sq.Eq{"d.id": id}).
		ToSql()
}

// buildListDocumentsQuery applies the owner and id filters when set. A non-nil
// empty IDs slice matches nothing.
func buildListDocumentsQuery(b sq.StatementBuilderType, filter models.DocumentFilter) (string, []any, error) {
	query := b.Select(documentColumns...).From("documents d")

	if filter.OwnerID != 0 {
		query = query.Where(sq.Eq{"d.owner_id": filter.OwnerID})
	}
	if filter.IDs != nil {
		query = query.Where(sq.Eq{"d.id": filter.IDs})
	}

	if filter.NewestFirst {
		query = query.OrderBy("d.id DESC")
	} else {
		query = query.OrderBy("d.id ASC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	return query.ToSql()
}

func buildExistingDataIDsQuery(b sq.StatementBuilderType, ownerID int64, dataIDs []string) (string, []any, error) {
	query := b.Select("data_id").
		Distinct().
		From("documents").
		Where(sq.Eq{"data_id": dataIDs})

	if ownerID != 0 {
		query = query.Where(sq.Eq{"owner_id": ownerID})
	}

	return query.OrderBy("data_id").ToSql()
}

// buildAdjacentQuery selects the nearest id below (prev) or above id.
func buildAdjacentQuery(b sq.StatementBuilderType, id, ownerID int64, prev bool) (string, []any, error) {
	var query sq.SelectBuilder
	if prev {
		query = b.Select("MAX(id)").From("documents").Where(sq.Lt{"id": id})
	} else {
		query = b.Select("MIN(id)").From("documents").Where(sq.Gt{"id": id})
	}

	if ownerID != 0 {
		query = query.Where(sq.Eq{"owner_id": ownerID})
	}

	return query.ToSql()
}

func buildDeleteDocumentQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Delete("documents").Where(sq.Eq{"id": id}).ToSql()
}

// tags

func buildCreateTagQuery(b sq.StatementBuilderType, tag models.Tag) (string, []any, error) {
	return b.Insert("pii_tags").
		Columns(
			"document_id", "category_id", "span_text", "start_offset", "end_offset",
			"span_id", "entity_id", "annotator", "identifier_type", "confidence", "created_by",
		).
		Values(
			tag.DocumentID, tag.CategoryID, tag.SpanText, tag.StartOffset, tag.EndOffset,
			tag.SpanID, tag.EntityID, tag.Annotator, tag.IdentifierType, tag.Confidence, nullableID(tag.CreatedBy),
		).
		Suffix("RETURNING id, created_at").
		ToSql()
}

func selectTags(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select(tagColumns...).
		From("pii_tags t").
		Join("pii_categories c ON c.id = t.category_id")
}

func buildGetTagQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return selectTags(b).Where(sq.Eq{"t.id": id}).ToSql()
}

// buildListTagsQuery lists the tags of the given documents in storage order.
// A nil documentIDs lists every tag.
func buildListTagsQuery(b sq.StatementBuilderType, documentIDs []int64) (string, []any, error) {
	query := selectTags(b)
	if documentIDs != nil {
		query = query.Where(sq.Eq{"t.document_id": documentIDs})
	}

	return query.OrderBy("t.document_id", "t.id").ToSql()
}

func buildUpdateTagQuery(b sq.StatementBuilderType, tag models.Tag) (string, []any, error) {
	return b.Update("pii_tags").
		Set("category_id", tag.CategoryID).
		Set("span_text", tag.SpanText).
		Set("start_offset", tag.StartOffset).
		Set("end_offset", tag.EndOffset).
		Set("entity_id", tag.EntityID).
		Set("annotator", tag.Annotator).
		Set("identifier_type", tag.IdentifierType).
		Where(sq.Eq{"id": tag.ID}).
		ToSql()
}

func buildUpdateEntityIDQuery(b sq.StatementBuilderType, id int64, entityID string) (string, []any, error) {
	return b.Update("pii_tags").
		Set("entity_id", entityID).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildDeleteTagQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Delete("pii_tags").Where(sq.Eq{"id": id}).ToSql()
}
