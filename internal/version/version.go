package version

// cliVersion is set at build time via -ldflags "-X ...version.cliVersion=".
var cliVersion = "dev"

// GetVersion returns the CLI build version.
func GetVersion() string {
	return cliVersion
}
