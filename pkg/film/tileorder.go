package film

// TileOrder produces the bounds of every tile covering a width x height
// image in an approximately concentric order, derived from the square
// spiral sequence OEIS A174344: starting at the tile nearest the image
// center and spiraling outward (right, up, left, down, growing by one tile
// every two turns) so the center of the image refines first. This is
// purely an observability nicety for progressive preview — final output is
// identical regardless of order.
func TileOrder(width, height, tileSize int) []Bounds {
	cols := (width + tileSize - 1) / tileSize
	rows := (height + tileSize - 1) / tileSize

	if cols == 0 || rows == 0 {
		return nil
	}

	visited := make([]bool, cols*rows)
	var order []Bounds

	col, row := (cols-1)/2, (rows-1)/2

	// Directions cycle right, up, left, down; A174344's spiral grows its
	// run length by one every two direction changes.
	dCol := [4]int{1, 0, -1, 0}
	dRow := [4]int{0, -1, 0, 1}
	dir := 0
	runLength := 1
	remaining := cols * rows

	emit := func(c, r int) bool {
		if c < 0 || c >= cols || r < 0 || r >= rows {
			return false
		}
		idx := r*cols + c
		if visited[idx] {
			return false
		}
		visited[idx] = true
		order = append(order, tileBounds(c, r, tileSize, width, height))
		remaining--
		return true
	}

	emit(col, row)

	for remaining > 0 {
		for leg := 0; leg < 2 && remaining > 0; leg++ {
			for step := 0; step < runLength && remaining > 0; step++ {
				col += dCol[dir]
				row += dRow[dir]
				emit(col, row)
			}
			dir = (dir + 1) % 4
		}
		runLength++
	}

	return order
}

func tileBounds(col, row, tileSize, width, height int) Bounds {
	minX := col * tileSize
	minY := row * tileSize
	maxX := minX + tileSize
	maxY := minY + tileSize
	if maxX > width {
		maxX = width
	}
	if maxY > height {
		maxY = height
	}
	return Bounds{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}
