package boardclient

import "context"

// TaskAPI is the slice of the API a drag interaction needs.
type TaskAPI interface {
	ListTasks(ctx context.Context, projectID uint64) ([]Task, error)
	MoveTask(ctx context.Context, taskID uint64, status TaskStatus, position int) (*Task, error)
}

// DragController drives a drag-and-drop interaction over a project's board.
// It applies moves optimistically with ApplyMove for zero-latency feedback,
// then reconciles: on success it replaces local state with the server's
// authoritative list, on any failure it restores the exact pre-move snapshot.
//
// It is meant for a single UI event loop; methods are not safe for
// concurrent use. A response arriving after newer local changes can roll
// those back - there is no request-generation guard.
type DragController struct {
	api       TaskAPI
	projectID uint64
	tasks     []Task

	dragging   uint64
	hover      TaskStatus
	isHovering bool
}

// NewDragController creates a controller over an already-fetched task list.
func NewDragController(api TaskAPI, projectID uint64, tasks []Task) *DragController {
	return &DragController{
		api:       api,
		projectID: projectID,
		tasks:     tasks,
	}
}

// Tasks returns the current local task list.
func (d *DragController) Tasks() []Task {
	return d.tasks
}

// Refresh replaces local state with the server's authoritative list.
func (d *DragController) Refresh(ctx context.Context) error {
	tasks, err := d.api.ListTasks(ctx, d.projectID)
	if err != nil {
		return err
	}
	d.tasks = tasks
	return nil
}

// DragStart records which task is being dragged.
func (d *DragController) DragStart(taskID uint64) {
	d.dragging = taskID
	d.isHovering = false
}

// DragOverColumn highlights a column hovered via its empty space. Visual
// only; no state mutation happens until DragEnd.
func (d *DragController) DragOverColumn(status TaskStatus) {
	d.hover = status
	d.isHovering = true
}

// DragOverTask highlights the column inferred from the task currently
// overlapped.
func (d *DragController) DragOverTask(taskID uint64) {
	for _, t := range d.tasks {
		if t.ID == taskID {
			d.hover = t.Status
			d.isHovering = true
			return
		}
	}
}

// Hovered returns the currently highlighted column, if any.
func (d *DragController) Hovered() (TaskStatus, bool) {
	return d.hover, d.isHovering
}

// DragEnd completes the drag: it computes the clamped target, skips the
// request entirely when the target equals the current placement, otherwise
// applies the move locally, fires the server move, and reconciles.
func (d *DragController) DragEnd(ctx context.Context, status TaskStatus, index int) error {
	taskID := d.dragging
	d.dragging = 0
	d.isHovering = false
	if taskID == 0 {
		return nil
	}

	var mover *Task
	for i := range d.tasks {
		if d.tasks[i].ID == taskID {
			mover = &d.tasks[i]
			break
		}
	}
	if mover == nil {
		return nil
	}

	target := clampTarget(d.tasks, *mover, status, index)
	if mover.Status == status && mover.Position == target {
		return nil
	}

	snapshot := d.tasks

	d.tasks = ApplyMove(d.tasks, taskID, status, target)

	if _, err := d.api.MoveTask(ctx, taskID, status, target); err != nil {
		// Restore the exact pre-move state, regardless of error kind.
		d.tasks = snapshot
		return err
	}

	// The local shift math is an approximation; trust only the server.
	if tasks, err := d.api.ListTasks(ctx, d.projectID); err == nil {
		d.tasks = tasks
	}
	return nil
}
