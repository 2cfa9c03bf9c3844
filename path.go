package main

// Path is an ordered waypoint sequence from the start toward the goal.
// Validated is false for the best-effort sequence of a failed run; such a path
// ends at whatever node was processed last, not at the goal.
type Path struct {
	Waypoints []Point `json:"waypoints"`
	Validated bool    `json:"validated"`
}

// ExtractPath walks parent handles back to the root. On success it starts from the
// goal; otherwise from the last node the engine processed.
func ExtractPath(t *Tree) Path {
	from := t.Last()
	if id, ok := t.GoalID(); ok {
		from = id
	}

	var rev []Point
	for id := from; ; {
		rev = append(rev, t.Pos(id))
		parent, ok := t.Parent(id)
		if !ok {
			break
		}
		id = parent
	}

	waypoints := make([]Point, len(rev))
	for i, p := range rev {
		waypoints[len(rev)-1-i] = p
	}
	return Path{Waypoints: waypoints, Validated: t.Success()}
}

// Length is the summed Euclidean length of consecutive waypoints
func (p Path) Length() float64 {
	total := 0.0
	for i := 1; i < len(p.Waypoints); i++ {
		total += p.Waypoints[i-1].Distance(p.Waypoints[i])
	}
	return total
}

// MaxSegment is the longest distance between consecutive waypoints
func (p Path) MaxSegment() float64 {
	longest := 0.0
	for i := 1; i < len(p.Waypoints); i++ {
		longest = max(longest, p.Waypoints[i-1].Distance(p.Waypoints[i]))
	}
	return longest
}
