package http

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"videotube-api"`
	Started string `json:"started" example:"2026-03-01T09:00:00Z"`
	Now     string `json:"now"     example:"2026-03-01T09:05:00Z"`
}

// Check is one backend's readiness; Status is ok, fail or skipped
type Check struct {
	Name   string `json:"name"            example:"redis"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:6379: connect: connection refused"`
}

// ReadyResponse is ok unless an enabled backend failed its ping
type ReadyResponse struct {
	Status string  `json:"status" example:"ok"`
	Checks []Check `json:"checks"`
	Now    string  `json:"now"    example:"2026-03-01T09:05:00Z"`
}

// ServiceResponse reports uptime in whole seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"videotube-api"`
	Started string `json:"started" example:"2026-03-01T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// CacheResponse reports the YouTube response cache counters
type CacheResponse struct {
	Enabled bool    `json:"enabled"  example:"true"`
	Hits    int64   `json:"hits"     example:"120"`
	Misses  int64   `json:"misses"   example:"30"`
	HitRate float64 `json:"hit_rate" example:"0.8"`
}
