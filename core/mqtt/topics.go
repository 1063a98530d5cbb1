package mqtt

import (
	"strconv"
	"strings"
)

// VehicleTopic returns <prefix>/vehicle/<id>/<kind>.
func VehicleTopic(prefix string, vehicle int, kind string) string {
	return join(prefix, "vehicle", strconv.Itoa(vehicle), kind)
}

// RunTopic returns <prefix>/run/<run id>/<phase>.
func RunTopic(prefix, runID, phase string) string {
	return join(prefix, "run", runID, phase)
}

func join(prefix string, parts ...string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return strings.Join(parts, "/")
	}
	return prefix + "/" + strings.Join(parts, "/")
}
