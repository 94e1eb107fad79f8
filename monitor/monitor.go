// Package monitor provides passive, poll-driven resource tracking for one
// sandboxed execution attempt: memory, wall time, descriptors, and network
// byte counters.
package monitor

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// ResourceMonitor tracks usage alongside an execution. It never samples on
// its own timer: the host loop calls UpdatePeakMemory periodically, which
// keeps the monitor lock-free. A monitor is owned by exactly one execution
// attempt and is not safe for concurrent use.
//
// Elapsed wall clock since Start is the accepted proxy for CPU time.
type ResourceMonitor struct {
	startTime     time.Time
	cpuTime       time.Duration
	peakMemory    uint64
	currentMemory uint64
	fileCount     int
	bytesSent     uint64
	bytesReceived uint64
	running       bool

	proc *process.Process
}

// NewResourceMonitor builds a monitor for the current process. Platform
// introspection is best-effort: when process stats are unavailable, memory
// and descriptor queries report zero rather than failing.
func NewResourceMonitor() *ResourceMonitor {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		proc = nil
	}
	return &ResourceMonitor{proc: proc}
}

// Start begins a monitoring window and takes an initial memory snapshot.
func (m *ResourceMonitor) Start() {
	m.startTime = time.Now()
	m.running = true
	m.currentMemory = m.processMemory()
	m.peakMemory = m.currentMemory
}

// Stop ends the window, freezing the elapsed time.
func (m *ResourceMonitor) Stop() {
	if !m.startTime.IsZero() {
		m.cpuTime = time.Since(m.startTime)
	}
	m.running = false
}

// IsRunning reports whether a window is open.
func (m *ResourceMonitor) IsRunning() bool {
	return m.running
}

// MemoryUsage returns current process memory in bytes, 0 when unknown.
func (m *ResourceMonitor) MemoryUsage() uint64 {
	if m.running {
		return m.processMemory()
	}
	return m.currentMemory
}

// PeakMemoryUsage returns the highest memory observation so far.
func (m *ResourceMonitor) PeakMemoryUsage() uint64 {
	if current := m.MemoryUsage(); current > m.peakMemory {
		return current
	}
	return m.peakMemory
}

// UpdatePeakMemory takes a fresh sample. The host loop must call this
// periodically; the monitor never self-samples.
func (m *ResourceMonitor) UpdatePeakMemory() {
	current := m.processMemory()
	if current > m.peakMemory {
		m.peakMemory = current
	}
	m.currentMemory = current
}

// CPUTime returns elapsed wall clock for the window (the CPU-time proxy).
func (m *ResourceMonitor) CPUTime() time.Duration {
	if m.running {
		if m.startTime.IsZero() {
			return 0
		}
		return time.Since(m.startTime)
	}
	return m.cpuTime
}

// FileCount returns open descriptors, best-effort. Falls back to the
// explicit open/close counters when the platform offers no introspection.
func (m *ResourceMonitor) FileCount() int {
	if m.proc != nil {
		if n, err := m.proc.NumFDs(); err == nil && n >= 0 {
			return int(n)
		}
	}
	return m.fileCount
}

// TrackFileOpen increments the explicit descriptor counter.
func (m *ResourceMonitor) TrackFileOpen() {
	m.fileCount++
}

// TrackFileClose decrements the explicit descriptor counter.
func (m *ResourceMonitor) TrackFileClose() {
	if m.fileCount > 0 {
		m.fileCount--
	}
}

// BytesSent returns bytes reported by TrackSend.
func (m *ResourceMonitor) BytesSent() uint64 { return m.bytesSent }

// BytesReceived returns bytes reported by TrackReceive.
func (m *ResourceMonitor) BytesReceived() uint64 { return m.bytesReceived }

// TrackSend records outbound bytes. Fed explicitly by the network layer.
func (m *ResourceMonitor) TrackSend(bytes uint64) {
	m.bytesSent += bytes
}

// TrackReceive records inbound bytes. Fed explicitly by the network layer.
func (m *ResourceMonitor) TrackReceive(bytes uint64) {
	m.bytesReceived += bytes
}

// Report renders a human-readable usage summary. The format is for
// diagnostics only and is not stable.
func (m *ResourceMonitor) Report() string {
	return fmt.Sprintf(
		"resource usage:\n"+
			"  memory: %d bytes (peak: %d bytes)\n"+
			"  cpu time: %v\n"+
			"  open files: %d\n"+
			"  network: %d sent, %d received",
		m.MemoryUsage(), m.PeakMemoryUsage(), m.CPUTime(),
		m.FileCount(), m.bytesSent, m.bytesReceived,
	)
}

func (m *ResourceMonitor) processMemory() uint64 {
	if m.proc == nil {
		return 0
	}
	info, err := m.proc.MemoryInfo()
	if err != nil || info == nil {
		return 0
	}
	return info.RSS
}
