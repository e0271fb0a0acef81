package platform

import "sync"

type probeResult struct {
	once sync.Once
	caps Capabilities
}

var probes sync.Map // platform name -> *probeResult

// Detect probes p once per platform name for the life of the process.
// The native capability check loads libraries and is not repeated per window.
func Detect(p Platform) Capabilities {
	if p == nil {
		return Disabled{}.Probe()
	}
	v, _ := probes.LoadOrStore(p.Name(), &probeResult{})
	r := v.(*probeResult)
	r.once.Do(func() { r.caps = p.Probe() })
	return r.caps
}

// ResetDetection forgets cached probe results
func ResetDetection() {
	probes.Range(func(k, _ any) bool {
		probes.Delete(k)
		return true
	})
}
