package indicators

import "fmt"

type axis struct {
	bins  int
	lower float64
	upper float64
}

func (a axis) width() float64 {
	return (a.upper - a.lower) / float64(a.bins)
}

// findBin returns 0 for underflow, bins+1 for overflow and 1..bins otherwise.
func (a axis) findBin(v float64) int {
	if v < a.lower {
		return 0
	}

	if v >= a.upper {
		return a.bins + 1
	}

	bin := 1 + int(float64(a.bins)*(v-a.lower)/(a.upper-a.lower))
	if bin > a.bins {
		bin = a.bins
	}

	return bin
}

func (a axis) center(bin int) float64 {
	return a.lower + (float64(bin)-0.5)*a.width()
}

// VolumeHistogram is a weighted two dimensional histogram of price (x) against time (y),
// with underflow and overflow bins on both axes.
type VolumeHistogram struct {
	x        axis
	y        axis
	contents [][]float64
	entries  int
}

func NewVolumeHistogram(priceBins int, priceLower, priceUpper float64, timeBins int, timeLower, timeUpper float64) (*VolumeHistogram, error) {
	if priceBins <= 0 || timeBins <= 0 {
		return nil, fmt.Errorf("NewVolumeHistogram: bins must be positive: price=%d, time=%d", priceBins, timeBins)
	}

	if priceLower >= priceUpper || timeLower >= timeUpper {
		return nil, fmt.Errorf("NewVolumeHistogram: lower bounds must be below upper bounds")
	}

	contents := make([][]float64, timeBins+2)
	for i := range contents {
		contents[i] = make([]float64, priceBins+2)
	}

	return &VolumeHistogram{
		x:        axis{bins: priceBins, lower: priceLower, upper: priceUpper},
		y:        axis{bins: timeBins, lower: timeLower, upper: timeUpper},
		contents: contents,
	}, nil
}

func (h *VolumeHistogram) Fill(price, t, weight float64) {
	h.contents[h.y.findBin(t)][h.x.findBin(price)] += weight
	h.entries++
}

func (h *VolumeHistogram) Entries() int {
	return h.entries
}

func (h *VolumeHistogram) TimeBins() int {
	return h.y.bins
}

func (h *VolumeHistogram) FindTimeBin(t float64) int {
	return h.y.findBin(t)
}

// ProjectionX sums the in range price bins over time bins first..last inclusive.
func (h *VolumeHistogram) ProjectionX(first, last int) []float64 {
	if first < 0 {
		first = 0
	}

	if last > h.y.bins+1 {
		last = h.y.bins + 1
	}

	projection := make([]float64, h.x.bins)
	for y := first; y <= last; y++ {
		for x := 1; x <= h.x.bins; x++ {
			projection[x-1] += h.contents[y][x]
		}
	}

	return projection
}

func (h *VolumeHistogram) PriceCenters() []float64 {
	centers := make([]float64, h.x.bins)
	for i := range centers {
		centers[i] = h.x.center(i + 1)
	}

	return centers
}
