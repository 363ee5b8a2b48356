package region

import "strings"

// Endpoints describes the matchmaking service endpoints of a single region.
type Endpoints struct {
	// Hosts are the hostnames of the region's matchmaking endpoints.
	Hosts []string `json:"hosts"`

	// Stable is true if the region is considered reliable enough to be
	// offered to users.
	Stable bool `json:"stable"`
}

// Selectable returns the regions that users may choose from, keyed by display
// name.  The returned map is newly allocated on each call and may be modified
// by the caller.
func Selectable() (regions map[string]*Endpoints) {
	return map[string]*Endpoints{
		// Europe.
		"Europe (London)": {
			Hosts: []string{
				"gamelift.eu-west-2.amazonaws.com",
				"gamelift-ping.eu-west-2.api.aws",
			},
			Stable: false,
		},
		"Europe (Ireland)": {
			Hosts: []string{
				"gamelift.eu-west-1.amazonaws.com",
				"gamelift-ping.eu-west-1.api.aws",
			},
			Stable: true,
		},
		"Europe (Frankfurt am Main)": {
			Hosts: []string{
				"gamelift.eu-central-1.amazonaws.com",
				"gamelift-ping.eu-central-1.api.aws",
			},
			Stable: true,
		},

		// The Americas.
		"US East (N. Virginia)": {
			Hosts: []string{
				"gamelift.us-east-1.amazonaws.com",
				"gamelift-ping.us-east-1.api.aws",
			},
			Stable: true,
		},
		"US East (Ohio)": {
			Hosts: []string{
				"gamelift.us-east-2.amazonaws.com",
				"gamelift-ping.us-east-2.api.aws",
			},
			Stable: false,
		},
		"US West (N. California)": {
			Hosts: []string{
				"gamelift.us-west-1.amazonaws.com",
				"gamelift-ping.us-west-1.api.aws",
			},
			Stable: true,
		},
		"US West (Oregon)": {
			Hosts: []string{
				"gamelift.us-west-2.amazonaws.com",
				"gamelift-ping.us-west-2.api.aws",
			},
			Stable: true,
		},
		"Canada (Central)": {
			Hosts: []string{
				"gamelift.ca-central-1.amazonaws.com",
				"gamelift-ping.ca-central-1.api.aws",
			},
			Stable: false,
		},
		"South America (São Paulo)": {
			Hosts: []string{
				"gamelift.sa-east-1.amazonaws.com",
				"gamelift-ping.sa-east-1.api.aws",
			},
			Stable: true,
		},

		// Asia, excluding Mainland China.
		"Asia Pacific (Tokyo)": {
			Hosts: []string{
				"gamelift.ap-northeast-1.amazonaws.com",
				"gamelift-ping.ap-northeast-1.api.aws",
			},
			Stable: true,
		},
		"Asia Pacific (Seoul)": {
			Hosts: []string{
				"gamelift.ap-northeast-2.amazonaws.com",
				"gamelift-ping.ap-northeast-2.api.aws",
			},
			Stable: true,
		},
		"Asia Pacific (Mumbai)": {
			Hosts: []string{
				"gamelift.ap-south-1.amazonaws.com",
				"gamelift-ping.ap-south-1.api.aws",
			},
			Stable: true,
		},
		"Asia Pacific (Singapore)": {
			Hosts: []string{
				"gamelift.ap-southeast-1.amazonaws.com",
				"gamelift-ping.ap-southeast-1.api.aws",
			},
			Stable: true,
		},
		"Asia Pacific (Hong Kong)": {
			Hosts: []string{
				"ec2.ap-east-1.amazonaws.com",
				"gamelift-ping.ap-east-1.api.aws",
			},
			Stable: true,
		},

		// Oceania.
		"Asia Pacific (Sydney)": {
			Hosts: []string{
				"gamelift.ap-southeast-2.amazonaws.com",
				"gamelift-ping.ap-southeast-2.api.aws",
			},
			Stable: true,
		},
	}
}

// Blocked returns the regions that are never offered to users and are always
// blocked for stability purposes, keyed by display name.  The returned map is
// newly allocated on each call and may be modified by the caller.
func Blocked() (regions map[string]*Endpoints) {
	return map[string]*Endpoints{
		"Africa (Cape Town)": {
			Hosts: []string{
				"gamelift.af-south-1.amazonaws.com",
				"gamelift-ping.af-south-1.api.aws",
			},
			Stable: true,
		},
		"Asia Pacific (Osaka)": {
			Hosts: []string{
				"gamelift.ap-northeast-3.amazonaws.com",
				"gamelift-ping.ap-northeast-3.api.aws",
			},
			Stable: true,
		},
		"Europe (Stockholm)": {
			Hosts: []string{
				"gamelift.eu-north-1.amazonaws.com",
				"gamelift-ping.eu-north-1.api.aws",
			},
			Stable: true,
		},
		"Europe (Paris)": {
			Hosts: []string{
				"gamelift.eu-west-3.amazonaws.com",
				"gamelift-ping.eu-west-3.api.aws",
			},
			Stable: true,
		},
		"Europe (Milan)": {
			Hosts: []string{
				"gamelift.eu-south-1.amazonaws.com",
				"gamelift-ping.eu-south-1.api.aws",
			},
			Stable: true,
		},
		"Middle East (Bahrain)": {
			Hosts: []string{
				"gamelift.me-south-1.amazonaws.com",
				"gamelift-ping.me-south-1.api.aws",
			},
			Stable: true,
		},
		"Asia Pacific (Malaysia)": {
			Hosts: []string{
				"gamelift.ap-southeast-5.amazonaws.com",
				"gamelift-ping.ap-southeast-5.api.aws",
			},
			Stable: true,
		},
		"Asia Pacific (Thailand)": {
			Hosts: []string{
				"gamelift.ap-southeast-7.amazonaws.com",
				"gamelift-ping.ap-southeast-7.api.aws",
			},
			Stable: true,
		},
		"China (Beijing)": {
			Hosts: []string{
				"gamelift.cn-north-1.amazonaws.com.cn",
				"gamelift-ping.cn-north-1.api.aws",
			},
			Stable: true,
		},
		"China (Ningxia)": {
			Hosts: []string{
				"gamelift.cn-northwest-1.amazonaws.com.cn",
				"gamelift-ping.cn-northwest-1.api.aws",
			},
			Stable: true,
		},
	}
}

// GroupName returns the name of the geographic group for the region with
// display name n.
func GroupName(n string) (group string) {
	switch {
	case strings.HasPrefix(n, "Europe"):
		return "Europe"
	case strings.HasPrefix(n, "US"),
		strings.HasPrefix(n, "Canada"),
		strings.HasPrefix(n, "South America"):
		return "Americas"
	case strings.Contains(n, "Sydney"):
		return "Oceania"
	case strings.Contains(n, "China"):
		return "China"
	default:
		return "Asia"
	}
}
