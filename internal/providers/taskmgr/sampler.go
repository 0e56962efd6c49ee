package taskmgr

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sample is one reading of the performance counters, in percent
type Sample struct {
	CPU       int       `json:"cpu"`
	Memory    int       `json:"memory"`
	Disk      int       `json:"disk"`
	Network   int       `json:"network"`
	Timestamp time.Time `json:"timestamp"`
}

// Process is one row of the process table. WindowID is set for rows backed
// by an open window, which are the only ones that can be ended.
type Process struct {
	Name     string  `json:"name"`
	CPU      float64 `json:"cpu"`    // percent
	Memory   float64 `json:"memory"` // MB
	Status   string  `json:"status"`
	WindowID *uint64 `json:"windowId,omitempty"`
}

// App identifies an open window for the process table
type App struct {
	ID    uint64
	Title string
}

var systemProcesses = []Process{
	{Name: "System", CPU: 0.1, Memory: 124.5, Status: "Running"},
	{Name: "Aurora Explorer", CPU: 0.2, Memory: 89.3, Status: "Running"},
	{Name: "Runtime Broker", CPU: 0.1, Memory: 45.2, Status: "Running"},
	{Name: "dwm.exe", CPU: 0.3, Memory: 67.8, Status: "Running"},
	{Name: "Service Host", CPU: 0.2, Memory: 234.6, Status: "Running"},
	{Name: "Antimalware Service", CPU: 0.1, Memory: 178.4, Status: "Running"},
	{Name: "Microsoft Edge", CPU: 1.2, Memory: 456.7, Status: "Running"},
}

// Sampler fabricates task manager figures. None of them reflect real
// resource accounting.
type Sampler struct {
	mu sync.Mutex

	cpu     distuv.Uniform
	memory  distuv.Uniform
	disk    distuv.Uniform
	network distuv.Uniform
	appCPU  distuv.Uniform
	appMem  distuv.Uniform

	now func() time.Time
}

// NewSampler creates a sampler drawing from src, or from a time-seeded
// source when src is nil.
func NewSampler(src rand.Source) *Sampler {
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed>>1|1)
	}
	uniform := func(min, max float64) distuv.Uniform {
		return distuv.Uniform{Min: min, Max: max, Src: src}
	}

	return &Sampler{
		cpu:     uniform(10, 40),
		memory:  uniform(40, 60),
		disk:    uniform(5, 15),
		network: uniform(10, 60),
		appCPU:  uniform(0, 2),
		appMem:  uniform(50, 150),
		now:     time.Now,
	}
}

// Sample draws CPU 10-39, memory 40-59, disk 5-14 and network 10-59
func (s *Sampler) Sample() Sample {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Sample{
		CPU:       draw(s.cpu),
		Memory:    draw(s.memory),
		Disk:      draw(s.disk),
		Network:   draw(s.network),
		Timestamp: s.now(),
	}
}

// Processes returns the fixed system rows followed by one row per app
func (s *Sampler) Processes(apps []App) []Process {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Process, 0, len(systemProcesses)+len(apps))
	out = append(out, systemProcesses...)
	for _, app := range apps {
		id := app.ID
		out = append(out, Process{
			Name:     app.Title,
			CPU:      round1(s.appCPU.Rand()),
			Memory:   round1(s.appMem.Rand()),
			Status:   "Running",
			WindowID: &id,
		})
	}
	return out
}

// draw returns an integer in [Min, Max)
func draw(u distuv.Uniform) int {
	v := int(math.Floor(u.Rand()))
	if v >= int(u.Max) {
		v = int(u.Max) - 1
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
