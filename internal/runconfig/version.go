package runconfig

// Version system: vMAJOR.MINOR.PATCH

// Centralized version control, in the same spirit as the teacher repo's
// config/version_control.go.
const (
	ModuleVersion  = "v1.0.0"
	NumericVersion = "v1.0.0"
	BetaBinomVersion = "v1.0.0"
)
