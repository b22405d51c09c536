package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodePeacock/pdf-parser/internal/reference"
)

func skillList(t *testing.T, data string) *reference.List {
	t.Helper()
	l, err := reference.ParseList(reference.Skills, []byte(data))
	require.NoError(t, err)
	return l
}

func designationList(t *testing.T, data string) *reference.List {
	t.Helper()
	l, err := reference.ParseList(reference.Designations, []byte(data))
	require.NoError(t, err)
	return l
}

func TestSkills(t *testing.T) {
	list := skillList(t, `[{"title":"React"},{"title":"react"},{"title":"Node"},{"title":"Java"},{"title":"C"}]`)

	got := Skills("Built UIs in React with a Node backend; some JavaScript.", list)
	assert.Equal(t, []string{"React", "react", "Node"}, got)
	assert.Equal(t, []string{"Node", "React"}, NormalizeSkills(got))
}

func TestSkills_NormalizationDeduplicates(t *testing.T) {
	list := skillList(t, `[{"title":"React","id":1},{"title":"React","id":2},{"title":"Node"}]`)

	got := NormalizeSkills(Skills("React and Node", list))
	assert.Equal(t, []string{"Node", "React"}, got)
}

func TestNormalizeSkills_KeepsFirstSpelling(t *testing.T) {
	assert.Equal(t, []string{"Go", "golang"}, NormalizeSkills([]string{"golang", "Go", "GO", "golang"}))
}

func TestSkills_EmptyList(t *testing.T) {
	assert.Equal(t, []string{}, Skills("React", nil))
	assert.Equal(t, []string{}, Skills("React", reference.Empty(reference.Skills)))
	assert.Equal(t, []string{}, NormalizeSkills(nil))
}

func TestDesignations_OrderedByFirstOccurrence(t *testing.T) {
	list := designationList(t, `[{"designation":"Engineer"},{"designation":"Manager"}]`)

	got := Designations("Worked as Manager at Acme, later Engineer at Beta", list)
	assert.Equal(t, []string{"Manager", "Engineer"}, got.Ordered)
	assert.Equal(t, "Manager", got.Primary)
}

func TestDesignations_EarliestOccurrenceCounts(t *testing.T) {
	list := designationList(t, `[{"designation":"Manager"},{"designation":"Engineer"}]`)

	got := Designations("engineer intern, then manager, then engineer again", list)
	assert.Equal(t, []string{"Engineer", "Manager"}, got.Ordered)
}

func TestDesignations_TiesKeepListOrder(t *testing.T) {
	list := designationList(t, `[{"designation":"QA Lead"},{"designation":"QA"}]`)

	got := Designations("QA Lead for payments", list)
	assert.Equal(t, []string{"QA Lead", "QA"}, got.Ordered)
	assert.Equal(t, "QA Lead", got.Primary)
}

func TestDesignations_NoMatch(t *testing.T) {
	list := designationList(t, `[{"designation":"Manager"}]`)

	got := Designations("Student", list)
	assert.Equal(t, []string{}, got.Ordered)
	assert.Equal(t, "", got.Primary)

	got = Designations("Manager", nil)
	assert.Equal(t, []string{}, got.Ordered)
}
