package cli

import (
	"bytes"
	"strings"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/piggy/internal/model"
)

func testGoals(t *testing.T) []model.Goal {
	t.Helper()
	start := civil.Date{Year: 2025, Month: 11, Day: 1}

	trip, err := model.NewGoal("Trip", 500, "Путешествия", start)
	require.NoError(t, err)
	require.NoError(t, trip.AddFunds(200, start))

	car, err := model.NewGoal("Car", 1000, "Другое", start)
	require.NoError(t, err)
	require.NoError(t, car.AddFunds(1000, civil.Date{Year: 2025, Month: 11, Day: 20}))

	return []model.Goal{trip, car}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0.00", FormatMoney(0))
	assert.Equal(t, "120.50", FormatMoney(120.5))
	assert.Equal(t, "1000.00", FormatMoney(999.999))
}

func TestRenderGoal(t *testing.T) {
	goals := testGoals(t)

	trip := RenderGoal(goals[0])
	for _, want := range []string{"Trip", "Путешествия", "500.00", "200.00", "40.0%", "2025-11-01", "активна (active)"} {
		assert.Contains(t, trip, want)
	}

	car := RenderGoal(goals[1])
	assert.Contains(t, car, "2025-11-20")
	assert.Contains(t, car, "выполнена (completed)")
}

func TestWriteGoalTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGoalTable(&buf, testGoals(t)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, lines[1], "Trip")
	assert.Contains(t, lines[1], "40.0%")
	assert.Contains(t, lines[1], "-")
	assert.Contains(t, lines[2], "completed")
	assert.Contains(t, lines[2], "2025-11-20")
}

func TestWriteProgressBars(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProgressBars(&buf, testGoals(t), 80))

	out := buf.String()
	assert.Contains(t, out, "Trip")
	assert.Contains(t, out, "Car")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "40%")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "80%")
}

func TestWriteProgressBars_NoGoals(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProgressBars(&buf, nil, 0))

	assert.Contains(t, buf.String(), "Total")
	assert.Contains(t, buf.String(), "0%")
}

func TestWriteProgressBars_IncludesUnfundedGoals(t *testing.T) {
	start := civil.Date{Year: 2025, Month: 11, Day: 1}

	fresh, err := model.NewGoal("Fresh", 500, "Дом", start)
	require.NoError(t, err)
	half, err := model.NewGoal("Half", 100, "Дом", start)
	require.NoError(t, err)
	require.NoError(t, half.AddFunds(50, start))

	var buf bytes.Buffer
	require.NoError(t, WriteProgressBars(&buf, []model.Goal{fresh, half}, 8.3))

	out := buf.String()
	assert.Contains(t, out, "Fresh")
	assert.Contains(t, out, "Half")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "50%")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}
