// Package warp implements the tabulated 2D distribution machinery the
// measured BSDF samples and evaluates through: a discretized density over
// the unit square, conditioned on up to three auxiliary parameters, with
// marginal/conditional CDFs built once at load time so importance sampling
// is a pair of binary searches plus a bilinear solve.
package warp

import "math"

// Marginal2D is a bilinearly-interpolated 2D density (resolution size.X by
// size.Y) optionally conditioned on N auxiliary parameters (incidence angle,
// color channel, ...), each discretized over its own grid. It plays the
// role the Rust original calls Marginal2d<N>, with N carried as a runtime
// slice length instead of a const generic: Go has no zero-cost const
// generics.
type Marginal2D struct {
	size [2]int // x, y

	patchSize    [2]float64
	invPatchSize [2]float64

	paramSize    []int
	paramStrides []int
	paramValues  [][]float64

	data           []float64
	marginalCDF    []float64
	conditionalCDF []float64
}

// findInterval performs the branchless binary search the sampling and
// inversion code needs repeatedly: the largest index i in [0, size-2] such
// that pred(i) holds, assuming pred is monotonically true-then-false.
func findInterval(size int, pred func(int) bool) int {
	first := 1
	length := size - 2
	for length > 0 {
		half := length >> 1
		middle := first + half
		if pred(middle) {
			first = middle + 1
			length -= half + 1
		} else {
			length = half
		}
	}
	idx := first - 1
	if idx < 0 {
		idx = 0
	}
	max := size - 2
	if max < 0 {
		max = 0
	}
	if idx > max {
		idx = max
	}
	return idx
}

// NewMarginal2D builds a distribution over a size.X by size.Y grid, one
// copy per combination of paramValues entries, optionally normalizing and
// building the marginal/conditional CDFs needed for Sample/Invert. Pass no
// paramValues for an unconditioned table (the ndf/sigma tables of a
// measured BRDF); two for direction-conditioned tables (vndf, luminance);
// three for the RGB table (direction plus channel).
func NewMarginal2D(size [2]int, data []float64, paramValues [][]float64, normalize, buildCDF bool) *Marginal2D {
	n := len(paramValues)
	paramSize := make([]int, n)
	paramStrides := make([]int, n)
	slices := 1
	for i := n - 1; i >= 0; i-- {
		if len(paramValues[i]) == 0 {
			panic("warp: parameter resolution must not be empty")
		}
		paramSize[i] = len(paramValues[i])
		if paramSize[i] > 1 {
			paramStrides[i] = slices
		}
		slices *= paramSize[i]
	}

	nValues := size[0] * size[1]
	dataOut := make([]float64, nValues*slices)

	m := &Marginal2D{
		size:         size,
		invPatchSize: [2]float64{float64(size[0] - 1), float64(size[1] - 1)},
		paramSize:    paramSize,
		paramStrides: paramStrides,
		paramValues:  paramValues,
		data:         dataOut,
	}
	m.patchSize = [2]float64{1.0 / m.invPatchSize[0], 1.0 / m.invPatchSize[1]}

	if !buildCDF {
		copy(dataOut, data)
		dataOff := 0
		dataOutOff := 0
		for s := 0; s < slices; s++ {
			normalization := 1.0 / (m.invPatchSize[0] * m.invPatchSize[1])
			if normalize {
				sum := 0.0
				for y := 0; y < size[1]-1; y++ {
					i := y * size[0]
					for x := 0; x < size[0]-1; x++ {
						v00 := data[dataOff+i]
						v10 := data[dataOff+i+1]
						v01 := data[dataOff+i+size[0]]
						v11 := data[dataOff+i+1+size[0]]
						sum += 0.25 * (v00 + v10 + v01 + v11)
						i++
					}
				}
				normalization = 1.0 / sum
			}
			for k := 0; k < nValues; k++ {
				dataOut[dataOutOff+k] = data[dataOff+k] * normalization
			}
			dataOutOff += nValues
			dataOff += nValues
		}
		return m
	}

	marginalCDF := make([]float64, slices*size[1])
	conditionalCDF := make([]float64, slices*nValues)

	marginalOff := 0
	conditionalOff := 0
	dataOff := 0
	dataOutOff := 0

	for s := 0; s < slices; s++ {
		for y := 0; y < size[1]; y++ {
			sum := 0.0
			i := y * size[0]
			for x := 0; x < size[0]-1; x++ {
				sum += 0.5 * (data[dataOff+i] + data[dataOff+i+1])
				conditionalCDF[conditionalOff+i+1] = sum
				i++
			}
		}

		marginalCDF[marginalOff] = 0.0
		sum := 0.0
		for y := 0; y < size[1]-1; y++ {
			sum += 0.5 * (conditionalCDF[conditionalOff+(y+1)*size[0]-1] + conditionalCDF[conditionalOff+(y+2)*size[0]-1])
			marginalCDF[marginalOff+y+1] = sum
		}

		normalization := 1.0 / marginalCDF[marginalOff+size[1]-1]
		for i := 0; i < nValues; i++ {
			conditionalCDF[conditionalOff+i] *= normalization
		}
		for i := 0; i < size[1]; i++ {
			marginalCDF[marginalOff+i] *= normalization
		}
		for i := 0; i < nValues; i++ {
			dataOut[dataOutOff+i] = data[dataOff+i] * normalization
		}

		marginalOff += size[1]
		conditionalOff += nValues
		dataOutOff += nValues
		dataOff += nValues
	}

	m.marginalCDF = marginalCDF
	m.conditionalCDF = conditionalCDF
	return m
}

// lookup fetches a (possibly parameter-blended) scalar from a flat table at
// base index i0, recursing over the N parameter dimensions and blending
// with the two bilinear weights computed for each from paramWeight.
func (m *Marginal2D) lookup(d int, data []float64, i0, size int, paramWeight []float64) float64 {
	if d == 0 {
		return data[i0]
	}
	i1 := i0 + m.paramStrides[d-1]*size
	w0 := paramWeight[2*d-2]
	w1 := paramWeight[2*d-1]
	v0 := m.lookup(d-1, data, i0, size, paramWeight)
	v1 := m.lookup(d-1, data, i1, size, paramWeight)
	return v0*w0 + v1*w1
}

// paramWeights computes the bilinear parameter-blend weights and the flat
// slice offset for a given parameter vector, shared by Sample/Eval/Invert.
func (m *Marginal2D) paramWeights(param []float64) (weights []float64, sliceOffset int) {
	n := len(m.paramSize)
	weights = make([]float64, 2*n)
	for d := 0; d < n; d++ {
		if m.paramSize[d] == 1 {
			weights[2*d] = 1.0
			weights[2*d+1] = 0.0
			continue
		}
		values := m.paramValues[d]
		idx := findInterval(m.paramSize[d], func(i int) bool { return values[i] <= param[d] })
		p0, p1 := values[idx], values[idx+1]
		w1 := clamp01((param[d] - p0) / (p1 - p0))
		weights[2*d+1] = w1
		weights[2*d] = 1.0 - w1
		sliceOffset += m.paramStrides[d] * idx
	}
	return weights, sliceOffset
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Sample draws a point in the unit square distributed according to the
// conditioned density, returning the point and its pdf. sample is a pair of
// uniform [0,1) draws.
func (m *Marginal2D) Sample(sample [2]float64, param []float64) (p [2]float64, pdf float64) {
	const eps = 1.0 - 0.99999994
	sx := clampRange(sample[0], eps, 0.99999994)
	sy := clampRange(sample[1], eps, 0.99999994)

	paramWeight, sliceOffset := m.paramWeights(param)

	offset := 0
	if len(m.paramSize) != 0 {
		offset = sliceOffset * m.size[1]
	}
	n := len(m.paramSize)

	fetchMarginal := func(idx int) float64 {
		return m.lookup(n, m.marginalCDF, offset+idx, m.size[1], paramWeight)
	}

	row := findInterval(m.size[1], func(idx int) bool { return fetchMarginal(idx) < sy })
	sy -= fetchMarginal(row)

	sliceSize := m.size[0] * m.size[1]
	offset = row * m.size[0]
	if n != 0 {
		offset += sliceOffset * sliceSize
	}

	r0 := m.lookup(n, m.conditionalCDF, offset+m.size[0]-1, sliceSize, paramWeight)
	r1 := m.lookup(n, m.conditionalCDF, offset+m.size[0]*2-1, sliceSize, paramWeight)

	if math.Abs(r0-r1) < 0.0001*(r0+r1) {
		sy = (2.0 * sy) / (r0 + r1)
	} else {
		sy = (r0 - math.Sqrt(r0*r0-2.0*sy*(r0-r1))) / (r0 - r1)
	}
	sx *= (1.0-sy)*r0 + sy*r1

	fetchConditional := func(idx int) float64 {
		v0 := m.lookup(n, m.conditionalCDF, offset+idx, sliceSize, paramWeight)
		v1 := m.lookup(n, m.conditionalCDF[m.size[0]:], offset+idx, sliceSize, paramWeight)
		return (1.0-sy)*v0 + sy*v1
	}

	col := findInterval(m.size[0], func(idx int) bool { return fetchConditional(idx) < sx })
	sx -= fetchConditional(col)

	offset += col

	v00 := m.lookup(n, m.data, offset, sliceSize, paramWeight)
	v10 := m.lookup(n, m.data[1:], offset, sliceSize, paramWeight)
	v01 := m.lookup(n, m.data[m.size[0]:], offset, sliceSize, paramWeight)
	v11 := m.lookup(n, m.data[m.size[0]+1:], offset, sliceSize, paramWeight)

	c0 := (1.0-sy)*v00 + sy*v01
	c1 := (1.0-sy)*v10 + sy*v11
	if math.Abs(c0-c1) < 1e-4*(c0+c1) {
		sx = (2.0 * sx) / (c0 + c1)
	} else {
		sx = (c0 - math.Sqrt(c0*c0-2.0*sx*(c0-c1))) / (c0 - c1)
	}

	p = [2]float64{
		(float64(col) + sx) * m.patchSize[0],
		(float64(row) + sy) * m.patchSize[1],
	}
	pdf = ((1.0-sx)*c0 + sx*c1) * (m.invPatchSize[0] * m.invPatchSize[1])
	return p, pdf
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Eval returns the bilinearly-interpolated density at pos (in the unit
// square), conditioned on param.
func (m *Marginal2D) Eval(pos [2]float64, param []float64) float64 {
	paramWeight, sliceOffset := m.paramWeights(param)
	n := len(m.paramSize)

	px := pos[0] * m.invPatchSize[0]
	py := pos[1] * m.invPatchSize[1]

	ox := math.Min(px, float64(m.size[0])-2)
	oy := math.Min(py, float64(m.size[1])-2)
	ox = math.Floor(ox)
	oy = math.Floor(oy)

	w1x := px - ox
	w1y := py - oy
	w0x := 1.0 - w1x
	w0y := 1.0 - w1y

	size := m.size[0] * m.size[1]
	index := int(ox) + int(oy)*m.size[0]
	if n != 0 {
		index += sliceOffset * size
	}

	v00 := m.lookup(n, m.data, index, size, paramWeight)
	v10 := m.lookup(n, m.data[1:], index, size, paramWeight)
	v01 := m.lookup(n, m.data[m.size[0]:], index, size, paramWeight)
	v11 := m.lookup(n, m.data[m.size[0]+1:], index, size, paramWeight)

	return (w0y*(w0x*v00+w1x*v10) + w1y*(w0x*v01+w1x*v11)) * (m.invPatchSize[0] * m.invPatchSize[1])
}

// Invert maps a point in the unit square back to the (sample, pdf) pair
// that Sample would have needed to produce it; used by the measured BSDF's
// Eval to recover an importance-sampling pdf for a given outgoing
// direction instead of the full table scan eval would otherwise require.
func (m *Marginal2D) Invert(sample [2]float64, param []float64) (s [2]float64, pdf float64) {
	paramWeight, sliceOffset := m.paramWeights(param)
	n := len(m.paramSize)

	sx := sample[0] * m.invPatchSize[0]
	sy := sample[1] * m.invPatchSize[1]

	posX := math.Min(math.Floor(sx), float64(m.size[0])-2)
	posY := math.Min(math.Floor(sy), float64(m.size[1])-2)
	sx -= posX
	sy -= posY

	sliceSize := m.size[0] * m.size[1]
	offset := int(posX) + int(posY)*m.size[0]
	if n != 0 {
		offset += sliceOffset * sliceSize
	}

	v00 := m.lookup(n, m.data, offset, sliceSize, paramWeight)
	v10 := m.lookup(n, m.data[1:], offset, sliceSize, paramWeight)
	v01 := m.lookup(n, m.data[m.size[0]:], offset, sliceSize, paramWeight)
	v11 := m.lookup(n, m.data[m.size[0]+1:], offset, sliceSize, paramWeight)

	w1x, w1y := sx, sy
	w0x, w0y := 1.0-w1x, 1.0-w1y

	c0 := w0y*v00 + w1y*v01
	c1 := w0y*v10 + w1y*v11
	pdf = w0x*c0 + w1x*c1

	sx = w1x * (c0 + 0.5*w1x*(c1-c0))

	v0 := m.lookup(n, m.conditionalCDF, offset, sliceSize, paramWeight)
	v1 := m.lookup(n, m.conditionalCDF[m.size[0]:], offset, sliceSize, paramWeight)
	sx += (1.0-w1y)*v0 + w1y*v1

	rowOffset := int(posY) * m.size[0]
	if n != 0 {
		rowOffset += sliceOffset * sliceSize
	}
	r0 := m.lookup(n, m.conditionalCDF, rowOffset+m.size[0]-1, sliceSize, paramWeight)
	r1 := m.lookup(n, m.conditionalCDF, rowOffset+m.size[0]*2-1, sliceSize, paramWeight)
	sx /= (1.0-w1y)*r0 + w1y*r1

	sy = w1y * (r0 + 0.5*w1y*(r1-r0))

	marginalOffset := int(posY)
	if n != 0 {
		marginalOffset += sliceOffset * m.size[1]
	}
	sy += m.lookup(n, m.marginalCDF, marginalOffset, m.size[1], paramWeight)

	s = [2]float64{sx, sy}
	pdf *= m.invPatchSize[0] * m.invPatchSize[1]
	return s, pdf
}
