// Package stats samples process memory and CPU while a map is generated.
package stats

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/royalcat/rdensity/internal/fileio"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/process"
)

// RuntimeStats holds all collected runtime statistics
type RuntimeStats struct {
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	TotalElapsed time.Duration `json:"total_elapsed_ns"`
	Samples      []Sample      `json:"samples"`
	Summary      Summary       `json:"summary"`
}

// Sample is one reading, tagged with the pipeline stage running at the time.
type Sample struct {
	Timestamp      time.Time `json:"timestamp"`
	ElapsedSeconds float64   `json:"elapsed_seconds"`
	Stage          string    `json:"stage"`

	HeapAlloc       uint64 `json:"heap_alloc"`
	Sys             uint64 `json:"sys"`
	NumGC           uint32 `json:"num_gc"`
	ProcessRSSBytes uint64 `json:"process_rss_bytes"`

	CPUPercent    float64 `json:"cpu_percent"`
	SystemCPU     float64 `json:"system_cpu_percent"`
	NumGoroutines int     `json:"num_goroutines"`
}

type Summary struct {
	PeakHeapAlloc  uint64  `json:"peak_heap_alloc"`
	PeakSys        uint64  `json:"peak_sys"`
	PeakProcessRSS uint64  `json:"peak_process_rss"`
	PeakCPUPercent float64 `json:"peak_cpu_percent"`
	AvgCPUPercent  float64 `json:"avg_cpu_percent"`
	TotalGCCycles  uint32  `json:"total_gc_cycles"`
	SampleCount    int     `json:"sample_count"`
	// Stages in the order they were entered.
	Stages []string `json:"stages"`
}

type Collector struct {
	mu        sync.Mutex
	stats     RuntimeStats
	stage     string
	startTime time.Time
	stopChan  chan struct{}
	doneChan  chan struct{}
	interval  time.Duration
	proc      *process.Process
}

func NewCollector(interval time.Duration) (*Collector, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("failed to get process info: %w", err)
	}

	return &Collector{
		stats: RuntimeStats{
			Samples: make([]Sample, 0, 256),
		},
		interval: interval,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
		proc:     proc,
	}, nil
}

func (c *Collector) Start() {
	c.startTime = time.Now()
	c.stats.StartTime = c.startTime

	go c.collect()
}

// SetStage labels the following samples and takes one immediately.
func (c *Collector) SetStage(stage string) {
	c.mu.Lock()
	c.stage = stage
	c.stats.Summary.Stages = append(c.stats.Summary.Stages, stage)
	c.mu.Unlock()

	c.sample()
}

func (c *Collector) collect() {
	defer close(c.doneChan)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.sample()
	for {
		select {
		case <-c.stopChan:
			c.sample()
			return
		case <-ticker.C:
			c.sample()
		}
	}
}

func (c *Collector) sample() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	s := Sample{
		Timestamp:      time.Now(),
		ElapsedSeconds: time.Since(c.startTime).Seconds(),
		HeapAlloc:      memStats.HeapAlloc,
		Sys:            memStats.Sys,
		NumGC:          memStats.NumGC,
		NumGoroutines:  runtime.NumGoroutine(),
	}

	if memInfo, err := c.proc.MemoryInfo(); err == nil && memInfo != nil {
		s.ProcessRSSBytes = memInfo.RSS
	}
	if cpuPercent, err := c.proc.CPUPercent(); err == nil {
		s.CPUPercent = cpuPercent
	}
	if systemCPU, err := cpu.Percent(0, false); err == nil && len(systemCPU) > 0 {
		s.SystemCPU = systemCPU[0]
	}

	c.mu.Lock()
	s.Stage = c.stage
	c.stats.Samples = append(c.stats.Samples, s)
	c.mu.Unlock()
}

// Stop ends sampling and returns the final stats.
func (c *Collector) Stop() RuntimeStats {
	close(c.stopChan)
	<-c.doneChan

	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.EndTime = time.Now()
	c.stats.TotalElapsed = c.stats.EndTime.Sub(c.stats.StartTime)
	c.stats.Summary = summarize(c.stats.Samples, c.stats.Summary.Stages)

	return c.stats
}

func summarize(samples []Sample, stages []string) Summary {
	s := Summary{SampleCount: len(samples), Stages: stages}
	if len(samples) == 0 {
		return s
	}

	var totalCPU float64
	for _, p := range samples {
		s.PeakHeapAlloc = max(s.PeakHeapAlloc, p.HeapAlloc)
		s.PeakSys = max(s.PeakSys, p.Sys)
		s.PeakProcessRSS = max(s.PeakProcessRSS, p.ProcessRSSBytes)
		s.PeakCPUPercent = max(s.PeakCPUPercent, p.CPUPercent)
		s.TotalGCCycles = max(s.TotalGCCycles, p.NumGC)
		totalCPU += p.CPUPercent
	}
	s.AvgCPUPercent = totalCPU / float64(len(samples))
	return s
}

func (stats RuntimeStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Duration("elapsed", stats.TotalElapsed),
		slog.String("peak_heap", humanize.IBytes(stats.Summary.PeakHeapAlloc)),
		slog.String("peak_rss", humanize.IBytes(stats.Summary.PeakProcessRSS)),
		slog.String("peak_cpu", fmt.Sprintf("%.1f%%", stats.Summary.PeakCPUPercent)),
		slog.Int("samples", stats.Summary.SampleCount),
	)
}

// WriteReport renders a plain text report. At most maxSamples rows are
// listed, evenly spread over the run.
func (stats RuntimeStats) WriteReport(w io.Writer, maxSamples int) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Start:    %s\n", stats.StartTime.Format(time.RFC3339))
	fmt.Fprintf(&sb, "End:      %s\n", stats.EndTime.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Duration: %s\n", stats.TotalElapsed)
	fmt.Fprintf(&sb, "Stages:   %s\n\n", strings.Join(stats.Summary.Stages, " > "))

	fmt.Fprintf(&sb, "Peak heap:    %s\n", humanize.IBytes(stats.Summary.PeakHeapAlloc))
	fmt.Fprintf(&sb, "Peak sys:     %s\n", humanize.IBytes(stats.Summary.PeakSys))
	fmt.Fprintf(&sb, "Peak RSS:     %s\n", humanize.IBytes(stats.Summary.PeakProcessRSS))
	fmt.Fprintf(&sb, "Peak CPU:     %.2f%%\n", stats.Summary.PeakCPUPercent)
	fmt.Fprintf(&sb, "Average CPU:  %.2f%%\n", stats.Summary.AvgCPUPercent)
	fmt.Fprintf(&sb, "GC cycles:    %s\n\n", humanize.Comma(int64(stats.Summary.TotalGCCycles)))

	fmt.Fprintf(&sb, "%-10s %-10s %-12s %-12s %-8s\n", "Elapsed", "Stage", "Heap", "RSS", "CPU %")
	for _, s := range spread(stats.Samples, maxSamples) {
		fmt.Fprintf(&sb, "%-10.1f %-10s %-12s %-12s %-8.1f\n",
			s.ElapsedSeconds, s.Stage, humanize.IBytes(s.HeapAlloc), humanize.IBytes(s.ProcessRSSBytes), s.CPUPercent)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (stats RuntimeStats) SaveToFile(filename string) error {
	return fileio.WriteAtomic(filename, func(w io.Writer) error {
		return stats.WriteReport(w, 100)
	})
}

func spread(samples []Sample, n int) []Sample {
	if n <= 0 || len(samples) <= n {
		return samples
	}
	if n == 1 {
		return samples[:1]
	}

	out := make([]Sample, 0, n)
	step := float64(len(samples)-1) / float64(n-1)
	for i := range n {
		out = append(out, samples[int(float64(i)*step)])
	}
	return out
}
