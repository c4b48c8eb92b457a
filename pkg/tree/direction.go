package tree

// AssignDirections sets Direction on every node according to mode.
//
//   - ModeLeft / ModeRight: every branch is forced to that side; pins are ignored.
//   - ModeDown / ModeUp: the direction is a flow marker shared by the whole tree.
//   - ModeAuto: pinned branches keep their pin; unpinned branches go to the
//     side with strictly fewer branches assigned so far, right on ties.
//
// Branch directions propagate unchanged to their subtrees. The root keeps
// DirectionNone. Unrecognized modes behave as ModeAuto.
func AssignDirections(t *Tree, mode Mode) {
	root := t.Root()
	root.Direction = DirectionNone

	var left, right int
	for _, id := range root.Children {
		var dir Direction
		switch mode {
		case ModeLeft:
			dir = DirectionLeft
		case ModeRight:
			dir = DirectionRight
		case ModeDown:
			dir = DirectionDown
		case ModeUp:
			dir = DirectionUp
		default:
			dir = t.Nodes[id].Pin
			if dir == DirectionNone {
				dir = DirectionRight
				if left < right {
					dir = DirectionLeft
				}
			}
			if dir == DirectionLeft {
				left++
			} else {
				right++
			}
		}
		propagate(t, id, dir)
	}
}

func propagate(t *Tree, id int, dir Direction) {
	stack := []int{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		t.Nodes[cur].Direction = dir
		stack = append(stack, t.Nodes[cur].Children...)
	}
}
