package telemetry

// Sample is one recorded point of the rolling chart window.
type Sample struct {
	Throttle float64 `json:"throttle"`
	Brake    float64 `json:"brake"`
	Steering float64 `json:"steering"`
}

// History is a fixed-capacity FIFO of chart samples. When full, pushing a
// new sample evicts the oldest. Not safe for concurrent use; the owning
// Session serializes access.
type History struct {
	buf  []Sample
	head int // index of the oldest sample
	size int
}

func NewHistory(capacity int) *History {
	if capacity < 2 {
		capacity = 2
	}
	return &History{buf: make([]Sample, capacity)}
}

func (h *History) Cap() int { return len(h.buf) }
func (h *History) Len() int { return h.size }

// Push appends s, evicting the oldest sample once at capacity.
func (h *History) Push(s Sample) {
	if h.size < len(h.buf) {
		h.buf[(h.head+h.size)%len(h.buf)] = s
		h.size++
		return
	}
	h.buf[h.head] = s
	h.head = (h.head + 1) % len(h.buf)
}

// At returns the i-th sample, oldest first.
func (h *History) At(i int) Sample {
	return h.buf[(h.head+i)%len(h.buf)]
}

// Snapshot copies the window oldest-first.
func (h *History) Snapshot() []Sample {
	out := make([]Sample, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.At(i)
	}
	return out
}
