package cache

// Operation names passed to Recorder.
const (
	OpGet    = "get"
	OpSet    = "set"
	OpDelete = "delete"
	OpHas    = "has"
	OpClear  = "clear"
)

// Outcomes passed to Recorder.
const (
	ResultHitMemory = "hit_memory"
	ResultHitDisk   = "hit_disk"
	ResultMiss      = "miss"
	ResultStored    = "stored"
	ResultRejected  = "rejected"
	ResultFailed    = "failed"
	ResultOK        = "ok"
)

// Recorder observes operation outcomes, typically to feed metrics.
type Recorder interface {
	Record(op, result string)
}

type nopRecorder struct{}

func (nopRecorder) Record(string, string) {}
