package stroke

import "github.com/closset/meshpaint"

// floodFill fills every pixel whose color lies within tolerance of the
// seed pixel. In contiguous mode growth is limited to 4-connected
// neighbors reachable without crossing the threshold; otherwise the whole
// buffer is scanned. Returns the number of pixels written.
//
// The color distance is Euclidean over the four RGBA byte channels, so
// tolerance 0 fills exactly the pixels equal to the seed.
func floodFill(pm *meshpaint.Pixmap, sx, sy int, fill meshpaint.RGBA, tolerance float64, contiguous bool) int {
	if !pm.InBounds(sx, sy) {
		return 0
	}

	w, h := pm.Width(), pm.Height()
	data := pm.Data()

	seed := pm.Offset(sx, sy)
	var seedPx [4]uint8
	copy(seedPx[:], data[seed:seed+4])

	tolSq := tolerance * tolerance
	matches := func(i int) bool {
		var distSq float64
		for c := 0; c < 4; c++ {
			d := float64(data[i+c]) - float64(seedPx[c])
			distSq += d * d
		}
		return distSq <= tolSq
	}

	fr := uint8(clampByte(fill.R * 255))
	fg := uint8(clampByte(fill.G * 255))
	fb := uint8(clampByte(fill.B * 255))
	fa := uint8(clampByte(fill.A * 255))
	write := func(i int) {
		data[i+0] = fr
		data[i+1] = fg
		data[i+2] = fb
		data[i+3] = fa
	}

	if !contiguous {
		count := 0
		for i := 0; i < w*h*4; i += 4 {
			if matches(i) {
				write(i)
				count++
			}
		}
		return count
	}

	visited := make([]bool, w*h)
	queue := make([]int, 0, 256)
	push := func(x, y int) {
		idx := y*w + x
		if visited[idx] {
			return
		}
		visited[idx] = true
		if matches(idx * 4) {
			queue = append(queue, idx)
		}
	}

	push(sx, sy)
	count := 0
	for len(queue) > 0 {
		idx := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		write(idx * 4)
		count++

		x, y := idx%w, idx/w
		if x > 0 {
			push(x-1, y)
		}
		if x < w-1 {
			push(x+1, y)
		}
		if y > 0 {
			push(x, y-1)
		}
		if y < h-1 {
			push(x, y+1)
		}
	}
	return count
}

func clampByte(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}
