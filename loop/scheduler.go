package loop

import (
	"context"
	"math"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats summarises how often and how long systems ran.
type SchedulerStats struct {
	SystemCount int
	Frames      uint64
	Systems     []SystemStats
}

// SystemStats is the timing record of one registered system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemTiming struct {
	name  string
	count int64
	min   time.Duration
	max   time.Duration
	total time.Duration
	last  time.Duration
}

func (t *systemTiming) record(d time.Duration) {
	t.count++
	t.last = d
	t.total += d
	if d < t.min {
		t.min = d
	}
	if d > t.max {
		t.max = d
	}
}

// Scheduler executes its systems in registration order, then flushes the
// frame's command buffer.
type Scheduler struct {
	resources *Resources
	systems   []System
	timings   []*systemTiming
	commands  Commands
	frames    uint64
}

// NewScheduler creates a scheduler over resources. A nil set is replaced by
// an empty one.
func NewScheduler(resources *Resources) *Scheduler {
	if resources == nil {
		resources = NewResources()
	}
	return &Scheduler{resources: resources}
}

// Resources returns the set shared by the scheduler's systems.
func (s *Scheduler) Resources() *Resources {
	return s.resources
}

// Register appends a system and binds its Resource fields.
func (s *Scheduler) Register(system System) {
	s.bindResources(system)
	s.systems = append(s.systems, system)
	s.timings = append(s.timings, &systemTiming{
		name: systemName(system),
		min:  time.Duration(math.MaxInt64),
	})
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}

func (s *Scheduler) bindResources(system System) {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}
		if !strings.HasPrefix(field.Type().Name(), "Resource[") {
			continue
		}

		initMethod := field.Addr().MethodByName("Init")
		if !initMethod.IsValid() {
			panic("loop: Init method not found on Resource field " + t.Field(i).Name)
		}
		initMethod.Call([]reflect.Value{reflect.ValueOf(s.resources)})
	}
}

// Once runs every system with the given delta time.
func (s *Scheduler) Once(dt time.Duration) {
	frame := newFrame(dt, s.frames, s.resources, &s.commands)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		s.timings[i].record(time.Since(start))
	}

	s.commands.Flush()
	s.frames++
}

// Run ticks at the given interval until ctx is cancelled. Each tick's delta
// is the measured time since the previous one.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			s.Once(dt)
		}
	}
}

// Stats returns a snapshot of the timing records.
func (s *Scheduler) Stats() SchedulerStats {
	stats := SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.timings)),
	}
	for i, t := range s.timings {
		var avg, min time.Duration
		if t.count > 0 {
			avg = t.total / time.Duration(t.count)
			min = t.min
		}
		stats.Systems[i] = SystemStats{
			Name:           t.name,
			ExecutionCount: t.count,
			MinDuration:    min,
			MaxDuration:    t.max,
			AvgDuration:    avg,
			LastDuration:   t.last,
			TotalDuration:  t.total,
		}
	}
	return stats
}
