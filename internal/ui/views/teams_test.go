package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/pm/internal/models"
)

func sequence(ids ...string) func() string {
	i := 0
	return func() string {
		id := ids[i]
		i++
		return id
	}
}

func TestParseMembers(t *testing.T) {
	got := parseMembers(" Alice / Designer / alice@example.com ;Bob/Backend; ; Carol ", nil, sequence("m1", "m2", "m3"))

	assert.Equal(t, []models.Member{
		{ID: "m1", Name: "Alice", Role: "Designer", Email: "alice@example.com"},
		{ID: "m2", Name: "Bob", Role: "Backend"},
		{ID: "m3", Name: "Carol"},
	}, got)
}

func TestParseMembersKeepsKnownIDs(t *testing.T) {
	previous := []models.Member{{ID: "keep", Name: "Alice", Role: "Old"}}

	got := parseMembers("alice/New; Dan", previous, sequence("new"))

	require.Len(t, got, 2)
	assert.Equal(t, "keep", got[0].ID)
	assert.Equal(t, "New", got[0].Role)
	assert.Equal(t, "new", got[1].ID)
}

func TestParseMembersEmptyText(t *testing.T) {
	got := parseMembers("   ", nil, sequence())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFormatMembersRoundTrip(t *testing.T) {
	members := []models.Member{
		{ID: "1", Name: "Alice", Role: "Designer", Email: "alice@example.com"},
		{ID: "2", Name: "Bob"},
	}

	text := formatMembers(members)
	assert.Equal(t, "Alice/Designer/alice@example.com; Bob", text)
	assert.Equal(t, members, parseMembers(text, members, sequence()))
}

func TestFormatMembersEscapesSeparators(t *testing.T) {
	members := []models.Member{
		{ID: "1", Name: "Alice", Role: "UI/UX Designer", Email: "alice@example.com"},
		{ID: "2", Name: "Bob; Jr", Role: `QA\Ops`},
	}

	text := formatMembers(members)
	assert.Equal(t, `Alice/UI\/UX Designer/alice@example.com; Bob\; Jr/QA\\Ops`, text)
	assert.Equal(t, members, parseMembers(text, members, sequence()))
}

func TestParseMembersTakesEmailFromTheRight(t *testing.T) {
	got := parseMembers("Alice/UI/UX Designer/alice@example.com", nil, sequence("m1"))

	require.Len(t, got, 1)
	assert.Equal(t, "UI/UX Designer", got[0].Role)
	assert.Equal(t, "alice@example.com", got[0].Email)
}

func TestTeamViewSaveKeepsSeededMembers(t *testing.T) {
	st := seededStore(t)
	before, ok := st.Team("1")
	require.True(t, ok)

	v := NewTeamListView(st)
	drain(v, v.Init())
	require.Equal(t, "1", v.list.SelectedItem().(teamItem).team.ID)

	_, cmd := v.Update(runes("e"))
	drain(v, cmd)
	require.True(t, v.Capturing())
	_, cmd = v.Update(keyMsg(ctrlS))
	drain(v, cmd)

	after, ok := st.Team("1")
	require.True(t, ok)
	assert.Equal(t, before.Members, after.Members)
}

func TestTeamViewCreateAndDelete(t *testing.T) {
	st := newTestStore(t)
	v := NewTeamListView(st)
	drain(v, v.Init())

	_, cmd := v.Update(runes("n"))
	drain(v, cmd)
	require.True(t, v.Capturing())

	v.editing.fields[0].input.SetValue("Platform")
	v.editing.fields[3].input.SetValue("Eve/Lead")
	_, cmd = v.Update(keyMsg(ctrlS))
	drain(v, cmd)

	require.False(t, v.Capturing())
	teams := st.Teams()
	require.Len(t, teams, 1)
	assert.Equal(t, "Platform", teams[0].Name)
	assert.Equal(t, teamColors[0], teams[0].Color)
	require.Len(t, teams[0].Members, 1)
	assert.Equal(t, "Lead", teams[0].Members[0].Role)
	assert.Len(t, v.list.Items(), 1)

	v.Update(runes("d"))
	require.NotNil(t, v.confirm)
	_, cmd = v.Update(runes("y"))
	drain(v, cmd)

	assert.Empty(t, st.Teams())
	assert.Empty(t, v.list.Items())
}

func TestTeamViewRequiresName(t *testing.T) {
	st := newTestStore(t)
	v := NewTeamListView(st)
	drain(v, v.Init())

	v.Update(runes("n"))
	v.Update(keyMsg(ctrlS))

	assert.True(t, v.Capturing(), "form stays open")
	assert.Equal(t, "is required", v.editing.errs["name"])
	assert.Empty(t, st.Teams())
}
