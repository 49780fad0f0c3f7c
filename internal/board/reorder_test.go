package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/tboard/internal/models"
)

func task(id string, status models.Status) models.Task {
	return models.Task{ID: id, Status: status}
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestMoveBeforeIndicator(t *testing.T) {
	t.Parallel()

	tasks := []models.Task{
		task("A", models.StatusTodo),
		task("B", models.StatusTodo),
		task("C", models.StatusTodo),
	}

	out, moved := Move(tasks, "C", models.StatusTodo, "B")
	require.True(t, moved)
	assert.Equal(t, []string{"A", "C", "B"}, ids(out))
	assert.Equal(t, []string{"A", "B", "C"}, ids(tasks), "input must not be modified")
}

func TestMoveAcrossColumns(t *testing.T) {
	t.Parallel()

	tasks := []models.Task{
		task("A", models.StatusTodo),
		task("X", models.StatusDoing),
		task("B", models.StatusTodo),
		task("Y", models.StatusDoing),
	}

	out, moved := Move(tasks, "A", models.StatusDoing, "Y")
	require.True(t, moved)
	assert.Equal(t, []string{"X", "B", "A", "Y"}, ids(out))
	assert.Equal(t, []string{"X", "A", "Y"}, ids(Column(out, models.StatusDoing)))
	assert.Equal(t, []string{"B"}, ids(Column(out, models.StatusTodo)))
	assert.Equal(t, models.StatusDoing, out[2].Status)
}

func TestMoveToEnd(t *testing.T) {
	t.Parallel()

	tasks := []models.Task{
		task("A", models.StatusTodo),
		task("D", models.StatusDone),
		task("B", models.StatusTodo),
		task("E", models.StatusDone),
	}

	out, moved := Move(tasks, "A", models.StatusDone, EndOfList)
	require.True(t, moved)
	done := Column(out, models.StatusDone)
	assert.Equal(t, []string{"D", "E", "A"}, ids(done))
	assert.Equal(t, []string{"D", "B", "E", "A"}, ids(out))
}

func TestMoveUnknownBeforeAppends(t *testing.T) {
	t.Parallel()

	tasks := []models.Task{task("A", models.StatusTodo), task("B", models.StatusTodo)}
	out, moved := Move(tasks, "A", models.StatusTodo, "ghost")
	require.True(t, moved)
	assert.Equal(t, []string{"B", "A"}, ids(out))
}

func TestMoveNoOps(t *testing.T) {
	t.Parallel()

	tasks := []models.Task{task("A", models.StatusTodo), task("B", models.StatusTodo)}

	tests := []struct {
		name   string
		taskID string
		before string
	}{
		{name: "own indicator", taskID: "A", before: "A"},
		{name: "unknown task", taskID: "Z", before: EndOfList},
		{name: "empty payload", taskID: "", before: "B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, moved := Move(tasks, tt.taskID, models.StatusDone, tt.before)
			assert.False(t, moved)
			assert.Equal(t, tasks, out)
		})
	}
}

func TestMovePreservesRelativeOrder(t *testing.T) {
	t.Parallel()

	base := []string{"A", "B", "C", "D", "E"}
	tasks := make([]models.Task, len(base))
	for i, id := range base {
		tasks[i] = task(id, models.StatusTodo)
	}

	for _, moving := range base {
		for _, before := range append(append([]string{}, base...), EndOfList) {
			if before == moving {
				continue
			}
			out, moved := Move(tasks, moving, models.StatusTodo, before)
			require.True(t, moved)
			got := ids(out)
			require.Len(t, got, len(base))

			var rest, wantRest []string
			for _, id := range got {
				if id != moving {
					rest = append(rest, id)
				}
			}
			for _, id := range base {
				if id != moving {
					wantRest = append(wantRest, id)
				}
			}
			assert.Equal(t, wantRest, rest, "move %s before %s", moving, before)

			pos := indexOf(out, moving)
			if before == EndOfList {
				assert.Equal(t, len(base)-1, pos)
			} else {
				assert.Equal(t, before, got[pos+1], "move %s before %s", moving, before)
			}
		}
	}
}

func TestNearest(t *testing.T) {
	t.Parallel()

	// indicators at 0, 50, 100 and the trailing one at 150
	inds := ColumnIndicators(models.StatusTodo, []string{"A", "B", "C"}, 0, 50)
	require.Len(t, inds, 4)
	assert.Equal(t, EndOfList, inds[3].Before)

	tests := []struct {
		name string
		y    float64
		want string
	}{
		{name: "above first", y: -10, want: "A"},
		{name: "inside bias of first", y: 20, want: "A"},
		{name: "exactly on biased edge skips", y: 25, want: "B"},
		{name: "middle", y: 60, want: "B"},
		{name: "upper half of C", y: 110, want: "C"},
		{name: "lower part of C", y: 130, want: EndOfList},
		{name: "far below", y: 500, want: EndOfList},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Nearest(tt.y, inds, DefaultBias)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Before)
		})
	}
}

func TestNearestFallsBackToLast(t *testing.T) {
	t.Parallel()

	inds := []Indicator{{Before: "A", Top: 0}, {Before: "B", Top: 10}}
	got, ok := Nearest(1000, inds, 2)
	require.True(t, ok)
	assert.Equal(t, "B", got.Before)

	_, ok = Nearest(0, nil, 2)
	assert.False(t, ok)
}
