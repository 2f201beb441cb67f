package boardclient

// ApplyMove returns a new task list reflecting a move of taskID to
// (status, position), using the same shift semantics the server applies:
// the requested position is clamped to the destination column, the origin
// column closes the gap left behind, and the destination column opens a
// slot. The input slice is never mutated. If taskID is absent, the list is
// returned unchanged (as a copy).
//
// This is a best-effort local approximation for zero-latency feedback; only
// the server's recompute is authoritative, so callers re-fetch after a
// successful move.
func ApplyMove(tasks []Task, taskID uint64, status TaskStatus, position int) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)

	moverIdx := -1
	for i, t := range out {
		if t.ID == taskID {
			moverIdx = i
			break
		}
	}
	if moverIdx < 0 {
		return out
	}

	mover := out[moverIdx]
	target := clampTarget(out, mover, status, position)

	if mover.Status == status {
		if target == mover.Position {
			return out
		}

		if mover.Position < target {
			for i := range out {
				if i == moverIdx || out[i].Status != status {
					continue
				}
				if out[i].Position > mover.Position && out[i].Position <= target {
					out[i].Position--
				}
			}
		} else {
			for i := range out {
				if i == moverIdx || out[i].Status != status {
					continue
				}
				if out[i].Position >= target && out[i].Position < mover.Position {
					out[i].Position++
				}
			}
		}
	} else {
		for i := range out {
			if i == moverIdx {
				continue
			}
			switch out[i].Status {
			case mover.Status:
				if out[i].Position > mover.Position {
					out[i].Position--
				}
			case status:
				if out[i].Position >= target {
					out[i].Position++
				}
			}
		}
	}

	out[moverIdx].Status = status
	out[moverIdx].Position = target
	return out
}

// clampTarget bounds a requested position to the destination column,
// excluding the moving task from the count. Appending at the end is always
// valid, so the upper bound is the number of other tasks in the column.
func clampTarget(tasks []Task, mover Task, status TaskStatus, position int) int {
	others := 0
	for _, t := range tasks {
		if t.ID != mover.ID && t.Status == status {
			others++
		}
	}

	if position < 0 {
		return 0
	}
	if position > others {
		return others
	}
	return position
}

// Column returns the tasks of one column ordered by position, excluding
// nothing. The input is not mutated.
func Column(tasks []Task, status TaskStatus) []Task {
	var col []Task
	for _, t := range tasks {
		if t.Status == status {
			col = append(col, t)
		}
	}
	for i := 1; i < len(col); i++ {
		for j := i; j > 0 && col[j-1].Position > col[j].Position; j-- {
			col[j-1], col[j] = col[j], col[j-1]
		}
	}
	return col
}
