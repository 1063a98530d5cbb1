package mqtt

import "testing"

func TestTopics(t *testing.T) {
	cases := map[string]string{
		VehicleTopic("ridesim", 3, "job_start"):   "ridesim/vehicle/3/job_start",
		VehicleTopic("fleet/a/", 0, KindAssigned): "fleet/a/vehicle/0/assigned",
		VehicleTopic("", 7, "job_complete"):       "vehicle/7/job_complete",
		RunTopic("ridesim", "r1", "end"):          "ridesim/run/r1/end",
	}
	for got, want := range cases {
		if got != want {
			t.Errorf("got %q want %q", got, want)
		}
	}
}
