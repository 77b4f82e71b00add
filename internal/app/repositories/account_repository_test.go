package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func TestBuildStudentQueryBase(t *testing.T) {
	repo := NewAccountRepository(nil)

	sql, args, err := repo.buildStudentQuery(StudentCriteria{}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT u.id FROM users u JOIN user_roles ur ON ur.user_id = u.id "+
			"WHERE u.is_active = $1 AND ur.role = $2 ORDER BY u.id ASC",
		sql)
	assert.Equal(t, []interface{}{true, "student"}, args)
}

func TestBuildStudentQueryAllFilters(t *testing.T) {
	repo := NewAccountRepository(nil)

	sql, args, err := repo.buildStudentQuery(StudentCriteria{
		StreamID:    int64Ptr(3),
		JoiningYear: intPtr(2023),
		PassingYear: intPtr(2027),
		Phone:       "555-0100",
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT u.id FROM users u JOIN user_roles ur ON ur.user_id = u.id "+
			"WHERE u.is_active = $1 AND ur.role = $2 AND u.stream_id = $3 "+
			"AND u.joining_year = $4 AND u.passing_year = $5 AND u.phone = $6 ORDER BY u.id ASC",
		sql)
	assert.Equal(t, []interface{}{true, "student", int64(3), 2023, 2027, "555-0100"}, args)
}

func TestBuildStudentQuerySingleFilter(t *testing.T) {
	repo := NewAccountRepository(nil)

	sql, args, err := repo.buildStudentQuery(StudentCriteria{PassingYear: intPtr(2026)}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "u.passing_year = $3")
	assert.NotContains(t, sql, "u.stream_id")
	assert.NotContains(t, sql, "u.joining_year")
	assert.NotContains(t, sql, "u.phone")
	assert.Equal(t, []interface{}{true, "student", 2026}, args)
}
