// Package region contains the static data about cloud-provider regions:
// display names for the short region codes used in the published IP-range
// registry and the per-region service endpoint registry.
package region

// Code is the short identifier of a cloud-provider region, e.g. "us-east-1".
type Code string

// displayNames maps region codes to their human-readable names.  The mapping
// is immutable and process-wide.
var displayNames = map[Code]string{
	"us-east-1":      "US East (N. Virginia)",
	"us-east-2":      "US East (Ohio)",
	"us-west-1":      "US West (N. California)",
	"us-west-2":      "US West (Oregon)",
	"ca-central-1":   "Canada (Central)",
	"sa-east-1":      "South America (São Paulo)",
	"eu-west-1":      "Europe (Ireland)",
	"eu-west-2":      "Europe (London)",
	"eu-west-3":      "Europe (Paris)",
	"eu-central-1":   "Europe (Frankfurt am Main)",
	"eu-north-1":     "Europe (Stockholm)",
	"eu-south-1":     "Europe (Milan)",
	"ap-northeast-1": "Asia Pacific (Tokyo)",
	"ap-northeast-2": "Asia Pacific (Seoul)",
	"ap-northeast-3": "Asia Pacific (Osaka)",
	"ap-south-1":     "Asia Pacific (Mumbai)",
	"ap-southeast-1": "Asia Pacific (Singapore)",
	"ap-southeast-2": "Asia Pacific (Sydney)",
	"ap-east-1":      "Asia Pacific (Hong Kong)",
	"af-south-1":     "Africa (Cape Town)",
	"me-south-1":     "Middle East (Bahrain)",
}

// Name returns the human-readable name of the region with code c.  Unknown
// codes pass through unchanged.
func Name(c Code) (n string) {
	n, ok := displayNames[c]
	if !ok {
		return string(c)
	}

	return n
}
