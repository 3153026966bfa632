package state

// Command is one user intent dispatched into a Session. apply mutates the
// session and reports whether anything changed, together with the follow-up
// commands that must run before control returns to the caller.
type Command interface {
	apply(s *Session) (changed bool, followUps []Command)
}

type SelectTool struct {
	Tool Tool
}

func (c SelectTool) apply(s *Session) (bool, []Command) {
	if s.tool == c.Tool {
		return false, nil
	}
	s.tool = c.Tool
	return true, nil
}

// PointerMove is a pointer down or drag at a screen position. Outside add
// mode it appends a segment; in add mode it drags the last segment's end.
type PointerMove struct {
	At Point
}

func (c PointerMove) apply(s *Session) (bool, []Command) {
	last, ok := s.last()
	if s.adding && ok {
		return false, []Command{UpdateGuide{ID: last.ID, Guide: Guide{Type: GuideTo, Position: c.At}}}
	}

	end := ToStored(c.At, s.zoom.Level(), s.width, true)
	seg := Segment{ID: s.nextID(), Kind: Move{}, Start: end, End: end}
	if ok {
		// the first segment is a move whatever the tool
		seg.Start = last.End
		seg.Kind = DefaultKind(s.tool, seg.Start, end)
	}
	s.segments.Add(seg.ID, seg)
	s.adding = true
	s.log.Debug("segment added", "id", seg.ID, "kind", seg.Kind, "end", seg.End)
	return true, nil
}

type PointerUp struct{}

func (PointerUp) apply(s *Session) (bool, []Command) {
	if !s.adding {
		return false, nil
	}
	s.adding = false
	return true, nil
}

// UpdateGuide drags one point of the segment with the given id to a screen
// position. End point moves propagate to the following segment's start.
type UpdateGuide struct {
	ID    string
	Guide Guide
}

func (c UpdateGuide) apply(s *Session) (bool, []Command) {
	idx, ok := s.segments.IndexByKeyTry(c.ID)
	if !ok {
		s.log.Debug("guide for unknown segment ignored", "id", c.ID)
		return false, nil
	}
	isTo := c.Guide.Type == GuideTo
	pos := ToStored(c.Guide.Position, s.zoom.Level(), s.width, isTo)

	seg := s.segments.ValueByIndex(idx)
	updated := ApplyGuide(seg, Guide{Type: c.Guide.Type, Position: pos})
	if updated == seg {
		return false, nil
	}
	s.segments.Add(c.ID, updated)

	if isTo && idx+1 < s.segments.Len() {
		next := s.segments.KeyByIndex(idx + 1)
		return true, []Command{setStart{ID: next, At: updated.End}}
	}
	return true, nil
}

// setStart keeps a segment attached to its predecessor's end point.
type setStart struct {
	ID string
	At Point
}

func (c setStart) apply(s *Session) (bool, []Command) {
	seg, ok := s.segments.ValueByKeyTry(c.ID)
	if !ok || seg.Start == c.At {
		return false, nil
	}
	seg.Start = c.At
	s.segments.Add(c.ID, seg)
	return true, nil
}

// RemoveSegment deletes a segment and reattaches its successor to its
// predecessor.
type RemoveSegment struct {
	ID string
}

func (c RemoveSegment) apply(s *Session) (bool, []Command) {
	idx, ok := s.segments.IndexByKeyTry(c.ID)
	if !ok {
		s.log.Debug("remove of unknown segment ignored", "id", c.ID)
		return false, nil
	}
	wasLast := idx == s.segments.Len()-1
	s.segments.DeleteKey(c.ID)
	s.log.Debug("segment removed", "id", c.ID)

	if wasLast {
		// nothing left to drag in add mode
		s.adding = false
		return true, nil
	}
	if idx == 0 {
		return true, nil
	}
	prev := s.segments.ValueByIndex(idx - 1)
	return true, []Command{setStart{ID: s.segments.KeyByIndex(idx), At: prev.End}}
}

// SetHovered toggles the presentation-only hover flag of a segment.
type SetHovered struct {
	ID      string
	Hovered bool
}

func (c SetHovered) apply(s *Session) (bool, []Command) {
	seg, ok := s.segments.ValueByKeyTry(c.ID)
	if !ok || seg.Hovered == c.Hovered {
		return false, nil
	}
	seg.Hovered = c.Hovered
	s.segments.Add(c.ID, seg)
	return true, nil
}

// Clear removes every segment and leaves add mode.
type Clear struct{}

func (Clear) apply(s *Session) (bool, []Command) {
	if s.segments.Len() == 0 && !s.adding {
		return false, nil
	}
	s.segments.Reset()
	s.adding = false
	return true, nil
}

type SetZoom struct {
	Level float64
}

func (c SetZoom) apply(s *Session) (bool, []Command) {
	return s.zoom.Set(c.Level), nil
}

type IncrementZoom struct{}

func (IncrementZoom) apply(s *Session) (bool, []Command) {
	return s.zoom.Increment(), nil
}

type DecrementZoom struct{}

func (DecrementZoom) apply(s *Session) (bool, []Command) {
	return s.zoom.Decrement(), nil
}

// GestureChanged reports the raw cumulative scale of a pinch or scroll
// gesture in progress.
type GestureChanged struct {
	Scale float64
}

func (c GestureChanged) apply(s *Session) (bool, []Command) {
	return s.zoom.GestureChanged(c.Scale), nil
}

type GestureEnded struct{}

func (GestureEnded) apply(s *Session) (bool, []Command) {
	s.zoom.GestureEnded()
	return false, nil
}
