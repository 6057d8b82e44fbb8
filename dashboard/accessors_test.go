package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nebras-project/nebras-dashboard/core"
)

func TestGetAdminName(t *testing.T) {
	tests := []struct {
		rec  Record
		want string
	}{
		{rec: Record{}, want: "N/A"},
		{rec: Record{"userName": "x"}, want: "x"},
		{rec: Record{"UserName": "y"}, want: "y"},
		{rec: Record{"userName": "  ", "name": "Ali"}, want: "Ali"},
		{rec: Record{"userName": nil}, want: "N/A"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetAdminName(tt.rec), "%v", tt.rec)
	}
}

func TestGetRoles(t *testing.T) {
	rec := Record{"roles": []interface{}{"admin:", "manager:content"}}
	assert.Equal(t, "admin:", GetAdminRole(rec))
	assert.Equal(t, "manager:content", GetManagerRole(rec))
	assert.Equal(t, "manager:", GetManagerRole(Record{"Role": "manager:"}))
	assert.Equal(t, "N/A", GetManagerRole(Record{"roles": []interface{}{"admin:owner"}}))
	assert.Equal(t, "Manager (content)", GetRoleName("manager:content"))
	assert.Equal(t, "custom", GetRoleName("custom"))
}

func TestRecordAccessors(t *testing.T) {
	rec := Record{
		"id":          "u-1",
		"phoneNumber": "0501234567",
		"is_active":   false,
		"level":       float64(7),
		"ratio":       0.5,
		"created_at":  "2024-03-01T10:30:00+03:00",
		"last_login":  "0001-01-01T00:00:00Z",
	}
	assert.Equal(t, "u-1", GetID(rec))
	assert.Equal(t, "0501234567", GetPhone(rec))
	assert.Equal(t, "N/A", GetEmail(rec))
	assert.Equal(t, "inactive", GetActiveStatus(rec))
	assert.Equal(t, "7", rec.FieldOr("", "level"))
	assert.Equal(t, "0.5", rec.FieldOr("", "ratio"))
	assert.Equal(t, "2024-03-01 07:30", GetCreatedAt(rec))
	assert.Equal(t, "N/A", GetTime(rec, "last_login"))
	assert.Equal(t, "N/A", GetTime(rec, "missing"))
}

func TestColumn_Cell(t *testing.T) {
	uni := core.NewUniversalTranslator()
	ar := core.GetTranslator(uni, core.LangArabic)

	status := Column{Field: "status", HeaderKey: "column.status", Enum: "status"}
	assert.Equal(t, "الحالة", status.Header(ar))
	assert.Equal(t, "قادمة", status.Cell(ar, Record{"status": "upcoming"}))
	assert.Equal(t, "archived", status.Cell(ar, Record{"status": "archived"}))
	assert.Equal(t, "N/A", status.Cell(ar, Record{}))

	cols := AdminColumns()
	assert.Equal(t, "id", cols[0].Field)
	assert.Equal(t, "created_at", cols[len(cols)-1].Field)
}

func TestLookupEntity(t *testing.T) {
	e, ok := LookupEntity("competitions")
	assert.True(t, ok)
	assert.Equal(t, "entity.competition", e.MessageKey)
	assert.NotEmpty(t, e.Columns())

	_, ok = LookupEntity("exams")
	assert.False(t, ok)
	assert.Len(t, EntityNames(), 10)
}
