package mqtt

// KindAssigned tags the message sent when a job is buffered on a vehicle.
// Ride events use the vehicle event kind names.
const KindAssigned = "assigned"

// VehicleMessage is the payload of every vehicle topic.
type VehicleMessage struct {
	RunID      string `json:"run_id"`
	Dataset    string `json:"dataset"`
	Vehicle    int    `json:"vehicle"`
	Kind       string `json:"kind"`
	Tick       int    `json:"tick"`
	Job        int    `json:"job"`
	Distance   *int   `json:"distance,omitempty"`
	Relaxation string `json:"relaxation,omitempty"`
}

// RunMessage is the payload of run topics.
type RunMessage struct {
	RunID     string `json:"run_id"`
	Dataset   string `json:"dataset"`
	Phase     string `json:"phase"`
	Vehicles  int    `json:"vehicles"`
	Jobs      int    `json:"jobs"`
	Ticks     int    `json:"ticks"`
	Score     int    `json:"score"`
	Remaining int    `json:"remaining"`
}
