package pcb

// GetBoundingBox calculates the bounding box of a footprint read from disk.
// Pads are approximated by their unrotated rectangle.
func (fp *Footprint) GetBoundingBox() BoundingBox {
	bbox := NewBoundingBox()

	for _, pad := range fp.Pads {
		halfWidth := pad.Size.Width / 2.0
		halfHeight := pad.Size.Height / 2.0

		bbox.Expand(Position{X: pad.Position.X - halfWidth, Y: pad.Position.Y - halfHeight})
		bbox.Expand(Position{X: pad.Position.X + halfWidth, Y: pad.Position.Y + halfHeight})
	}

	for _, line := range fp.Lines {
		bbox.Expand(line.Start)
		bbox.Expand(line.End)
	}

	for _, circle := range fp.Circles {
		radius := circle.Radius()
		bbox.Expand(Position{X: circle.Center.X - radius, Y: circle.Center.Y - radius})
		bbox.Expand(Position{X: circle.Center.X + radius, Y: circle.Center.Y + radius})
	}

	// Approximate arcs by their three defining points
	for _, arc := range fp.Arcs {
		bbox.Expand(arc.Start)
		bbox.Expand(arc.Mid)
		bbox.Expand(arc.End)
	}

	return bbox
}
